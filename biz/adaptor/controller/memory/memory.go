package memory

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/xh-polaris/psych-resilience/biz/adaptor"
	"github.com/xh-polaris/psych-resilience/biz/adaptor/cmd"
	"github.com/xh-polaris/psych-resilience/provider"
)

// ListMemory .
// @router /memory/list [GET]
func ListMemory(ctx context.Context, c *app.RequestContext) {
	var err error
	var req cmd.ListMemoryReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.MemoryService.ListMemory(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// EraseMemory 按用户清除全部记忆
// @router /memory/erase [POST]
func EraseMemory(ctx context.Context, c *app.RequestContext) {
	var err error
	var req cmd.EraseMemoryReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.MemoryService.EraseMemory(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
