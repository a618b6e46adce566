package config

import (
	"os"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/service"
	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/redis"
)

var config *Config

type SMTP struct {
	Username string
	Password string
	Host     string
	Port     int
	Alert    string
}

type Config struct {
	service.ServiceConf
	ListenOn string
	State    string
	Auth     Auth
	Mongo    struct {
		URL string
		DB  string
	}
	Cache    cache.CacheConf
	Redis    *redis.RedisConf
	RabbitMQ RabbitMQ
	SMTP     SMTP
	Gemini   Gemini
	Coach    Coach
}

type Auth struct {
	SecretKey    string
	AccessExpire int64
}

type RabbitMQ struct {
	Url string
}

// Gemini 大模型相关配置
type Gemini struct {
	ApiKey     string
	Model      string
	EmbedModel string
	BaseUrl    string
}

// Coach 流程相关的可调参数, 阈值类的产品决策都放在这里
type Coach struct {
	// RateLimit 每个窗口内单个用户允许的请求数
	RateLimit int
	// RateWindowSeconds 限流窗口长度(秒)
	RateWindowSeconds int
	// CrisisThreshold 危机分流阈值
	CrisisThreshold float64
	// MemoryTopK 相似记忆检索条数
	MemoryTopK int
	// PatternWindow 情绪模式统计的最近记录条数
	PatternWindow int
	// MessageMaxLen 响应消息最大长度
	MessageMaxLen int
	// TimeoutSeconds 外部模型调用超时(秒)
	TimeoutSeconds int
}

func NewConfig() (*Config, error) {
	c := new(Config)
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "etc/config.yaml"
	}
	err := conf.Load(path, c)
	if err != nil {
		return nil, err
	}
	err = c.SetUp()
	if err != nil {
		return nil, err
	}
	c.FillDefault()
	config = c
	return c, nil
}

// FillDefault 填充未配置的流程参数
func (c *Config) FillDefault() {
	if c.Coach.RateLimit <= 0 {
		c.Coach.RateLimit = 15
	}
	if c.Coach.RateWindowSeconds <= 0 {
		c.Coach.RateWindowSeconds = 60
	}
	if c.Coach.CrisisThreshold <= 0 {
		c.Coach.CrisisThreshold = 0.7
	}
	if c.Coach.MemoryTopK <= 0 {
		c.Coach.MemoryTopK = 3
	}
	if c.Coach.PatternWindow <= 0 {
		c.Coach.PatternWindow = 10
	}
	if c.Coach.MessageMaxLen <= 0 {
		c.Coach.MessageMaxLen = 500
	}
	if c.Coach.TimeoutSeconds <= 0 {
		c.Coach.TimeoutSeconds = 30
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.0-flash-lite"
	}
	if c.Gemini.EmbedModel == "" {
		c.Gemini.EmbedModel = "embedding-001"
	}
	if c.Gemini.BaseUrl == "" {
		c.Gemini.BaseUrl = "https://generativelanguage.googleapis.com/v1beta"
	}
}

func GetConfig() *Config {
	return config
}
