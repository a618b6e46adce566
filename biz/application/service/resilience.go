package service

import (
	"context"
	"time"

	"github.com/google/wire"
	"github.com/xh-polaris/psych-resilience/biz/adaptor/cmd"
	"github.com/xh-polaris/psych-resilience/biz/application/dto"
	"github.com/xh-polaris/psych-resilience/biz/domain/coach"
	"github.com/xh-polaris/psych-resilience/biz/domain/guard"
	"github.com/xh-polaris/psych-resilience/biz/infrastructure/config"
	"github.com/xh-polaris/psych-resilience/biz/infrastructure/consts"
)

type IResilienceService interface {
	Resilience(ctx context.Context, req *cmd.ResilienceReq, identity string) (*dto.ResilienceResp, error)
	Health() *cmd.HealthResp
}

// ResilienceService 主流程服务: 校验 -> 限流 -> 管线
type ResilienceService struct {
	Config  *config.Config
	Engine  *coach.Engine
	Limiter *guard.Limiter
}

var ResilienceServiceSet = wire.NewSet(
	wire.Struct(new(ResilienceService), "*"),
	wire.Bind(new(IResilienceService), new(*ResilienceService)),
)

// Resilience 处理一次求助请求
// identity是适配层解析出的用户标识, 为空按匿名处理
func (s *ResilienceService) Resilience(ctx context.Context, req *cmd.ResilienceReq, identity string) (*dto.ResilienceResp, error) {
	// 校验失败立即终止, 不产生任何付费调用
	text, errno := guard.Validate(req.Agent, req.InputText)
	if errno != nil {
		return nil, errno
	}

	if retryAfter, ok := s.Limiter.Admit(identity, time.Now()); !ok {
		return nil, consts.NewRateLimited(retryAfter)
	}

	// 管线内部自行降级, 永远给出完整信封
	return s.Engine.Run(ctx, identity, text), nil
}

// Health 存活探测
func (s *ResilienceService) Health() *cmd.HealthResp {
	return &cmd.HealthResp{
		Status:  "ok",
		Agent:   consts.AgentName,
		Version: consts.AgentVersion,
		Message: "Resilience Coach Agent is running",
	}
}
