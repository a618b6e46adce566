package guard

import (
	"sync"
	"time"
)

// AnonymousId 未携带用户标识的请求共享一个匿名桶
const AnonymousId = "anonymous"

// Limiter 滑动窗口限流器
// 只在内存里计数, 进程重启即清零; 这是软性的滥用防护, 不是计费控制
type Limiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration

	// buckets 用户 -> 窗口内的请求时间戳, 访问时惰性淘汰
	buckets   map[string][]time.Time
	lastSweep time.Time
}

func NewLimiter(limit int, window time.Duration) *Limiter {
	return &Limiter{
		limit:   limit,
		window:  window,
		buckets: make(map[string][]time.Time),
	}
}

// Admit 判断该用户此刻是否放行
// 拒绝时返回建议的重试等待时间
func (l *Limiter) Admit(identity string, now time.Time) (time.Duration, bool) {
	if identity == "" {
		identity = AnonymousId
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)

	cutoff := now.Add(-l.window)
	stamps := l.buckets[identity]

	// 惰性淘汰过期时间戳
	i := 0
	for ; i < len(stamps); i++ {
		if stamps[i].After(cutoff) {
			break
		}
	}
	stamps = stamps[i:]

	if len(stamps) >= l.limit {
		l.buckets[identity] = stamps
		retryAfter := stamps[0].Add(l.window).Sub(now)
		if retryAfter < time.Second {
			retryAfter = time.Second
		}
		return retryAfter, false
	}

	l.buckets[identity] = append(stamps, now)
	return 0, true
}

// sweep 周期性清理其他用户的过期桶, 约束内存
func (l *Limiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	l.lastSweep = now
	cutoff := now.Add(-l.window)
	for id, stamps := range l.buckets {
		if len(stamps) == 0 || !stamps[len(stamps)-1].After(cutoff) {
			delete(l.buckets, id)
		}
	}
}
