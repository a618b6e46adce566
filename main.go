package main

import (
	"github.com/bytedance/gopkg/util/gopool"
	"github.com/cloudwego/hertz/pkg/app/server"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
	"github.com/xh-polaris/psych-resilience/biz/adaptor/router"
	"github.com/xh-polaris/psych-resilience/biz/infrastructure/mq"
	"github.com/xh-polaris/psych-resilience/provider"
)

func main() {
	provider.Init()
	c := provider.Get().Config

	// 启动互动记录消费者, 异步完成记忆落库
	if c.RabbitMQ.Url != "" {
		gopool.Go(mq.Consume)
	}

	tracer, cfg := hertztracing.NewServerTracer()
	h := server.Default(server.WithHostPorts(c.ListenOn), tracer)
	h.Use(hertztracing.ServerMiddleware(cfg))

	router.Register(h)
	h.Spin()
}
