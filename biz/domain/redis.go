package domain

import (
	"sync"

	"github.com/xh-polaris/psych-resilience/biz/infrastructure/config"
	"github.com/zeromicro/go-zero/core/stores/redis"
)

var (
	instance *RedisHelper
	once     sync.Once
)

const (
	prefixLastStrategy = "coach:laststrategy:"

	// lastStrategyExpire 最近策略标记的过期时间(秒), 七天
	lastStrategyExpire = 7 * 24 * 3600
)

// RedisHelper 封装redis读写, 记录每个用户最近一次使用的策略
// 防重复规则依赖这个标记, 记忆落库是异步的, 单靠mongo拿不到实时值
type RedisHelper struct {
	rs *redis.Redis
}

func GetRedisHelper() *RedisHelper {
	c := config.GetConfig()
	once.Do(func() {
		instance = &RedisHelper{
			rs: redis.MustNewRedis(*c.Redis),
		}
	})
	return instance
}

// SetLastStrategy 记录该用户最近一次使用的策略
func (r *RedisHelper) SetLastStrategy(userId, strategy string) error {
	return r.rs.Setex(prefixLastStrategy+userId, strategy, lastStrategyExpire)
}

// LastStrategy 获取该用户最近一次使用的策略, 没有时返回空串
func (r *RedisHelper) LastStrategy(userId string) (string, error) {
	v, err := r.rs.Get(prefixLastStrategy + userId)
	if err != nil {
		return "", err
	}
	return v, nil
}

// Remove 删除该用户的策略标记, 随隐私清除一起调用
func (r *RedisHelper) Remove(userId string) error {
	_, err := r.rs.Del(prefixLastStrategy + userId)
	return err
}
