package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/xh-polaris/psych-resilience/biz/adaptor/controller/memory"
	"github.com/xh-polaris/psych-resilience/biz/adaptor/controller/resilience"
)

func Register(r *server.Hertz) {
	root := r.Group("/")
	{
		root.GET("/health", resilience.Health)
		root.POST("/resilience", resilience.Resilience)
	}
	{
		_memory := root.Group("/memory")
		_memory.GET("/list", memory.ListMemory)
		_memory.POST("/erase", memory.EraseMemory)
	}
}
