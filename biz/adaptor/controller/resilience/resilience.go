package resilience

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/xh-polaris/psych-resilience/biz/adaptor"
	"github.com/xh-polaris/psych-resilience/biz/adaptor/cmd"
	"github.com/xh-polaris/psych-resilience/provider"
)

// Resilience 主入口, 处理一次求助请求
// @router /resilience [POST]
func Resilience(ctx context.Context, c *app.RequestContext) {
	var req cmd.ResilienceReq
	if err := c.BindAndValidate(&req); err != nil {
		adaptor.BadRequest(c, "Request body must be a JSON object with agent and input_text")
		return
	}

	identity := adaptor.Identity(c, req.Metadata)

	p := provider.Get()
	resp, err := p.ResilienceService.Resilience(ctx, &req, identity)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// Health 存活探测
// @router /health [GET]
func Health(ctx context.Context, c *app.RequestContext) {
	p := provider.Get()
	c.JSON(consts.StatusOK, p.ResilienceService.Health())
}
