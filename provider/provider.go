package provider

import (
	"time"

	"github.com/google/wire"
	"github.com/xh-polaris/psych-resilience/biz/application/service"
	"github.com/xh-polaris/psych-resilience/biz/domain"
	"github.com/xh-polaris/psych-resilience/biz/domain/coach"
	"github.com/xh-polaris/psych-resilience/biz/domain/guard"
	"github.com/xh-polaris/psych-resilience/biz/domain/model/gemini"
	"github.com/xh-polaris/psych-resilience/biz/infrastructure/config"
	"github.com/xh-polaris/psych-resilience/biz/infrastructure/mapper/memory"
	"github.com/xh-polaris/psych-resilience/biz/infrastructure/mq"
	"github.com/xh-polaris/psych-resilience/biz/infrastructure/util"
)

var provider *Provider

func Init() {
	var err error
	provider, err = NewProvider()
	if err != nil {
		panic(err)
	}
}

// Provider 提供controller依赖的对象
type Provider struct {
	Config            *config.Config
	ResilienceService *service.ResilienceService
	MemoryService     *service.MemoryService
}

func Get() *Provider {
	return provider
}

// NewLimiter 按配置构造限流器
func NewLimiter(c *config.Config) *guard.Limiter {
	return guard.NewLimiter(c.Coach.RateLimit, time.Duration(c.Coach.RateWindowSeconds)*time.Second)
}

// NewCoachEngine 按配置构造管线, 未配置的外部依赖整体降级
func NewCoachEngine(c *config.Config, mapper *memory.MongoMapper) *coach.Engine {
	timeout := time.Duration(c.Coach.TimeoutSeconds) * time.Second
	util.InitHttpClient(timeout)

	var rec coach.Recorder
	if c.RabbitMQ.Url != "" {
		rec = mq.GetInteractionProducer()
	}
	var marker coach.StrategyMarker
	if c.Redis != nil {
		marker = domain.GetRedisHelper()
	}

	return coach.NewEngine(
		gemini.NewEmotionApp(c.Gemini.BaseUrl, c.Gemini.Model, c.Gemini.ApiKey),
		gemini.NewEmbedApp(c.Gemini.BaseUrl, c.Gemini.EmbedModel, c.Gemini.ApiKey),
		mapper, rec, marker,
		coach.Options{
			CrisisThreshold: c.Coach.CrisisThreshold,
			MemoryTopK:      c.Coach.MemoryTopK,
			PatternWindow:   c.Coach.PatternWindow,
			MessageMaxLen:   c.Coach.MessageMaxLen,
			Timeout:         timeout,
		})
}

var ApplicationSet = wire.NewSet(
	service.ResilienceServiceSet,
	service.MemoryServiceSet,
)

var DomainSet = wire.NewSet(
	NewLimiter,
	NewCoachEngine,
)

var InfrastructureSet = wire.NewSet(
	config.NewConfig,
	memory.NewMongoMapper,
)

var AllProvider = wire.NewSet(
	ApplicationSet,
	DomainSet,
	InfrastructureSet,
)
