package service

import (
	"context"

	"github.com/google/wire"
	"github.com/jinzhu/copier"
	"github.com/xh-polaris/gopkg/util/log"
	"github.com/xh-polaris/psych-resilience/biz/adaptor/cmd"
	"github.com/xh-polaris/psych-resilience/biz/domain"
	"github.com/xh-polaris/psych-resilience/biz/infrastructure/config"
	"github.com/xh-polaris/psych-resilience/biz/infrastructure/consts"
	"github.com/xh-polaris/psych-resilience/biz/infrastructure/mapper/memory"
)

type IMemoryService interface {
	ListMemory(ctx context.Context, req *cmd.ListMemoryReq) (*cmd.ListMemoryResp, error)
	EraseMemory(ctx context.Context, req *cmd.EraseMemoryReq) (*cmd.EraseMemoryResp, error)
}

// MemoryService 记忆库的查询与隐私清除
type MemoryService struct {
	Config       *config.Config
	MemoryMapper *memory.MongoMapper
}

var MemoryServiceSet = wire.NewSet(
	wire.Struct(new(MemoryService), "*"),
	wire.Bind(new(IMemoryService), new(*MemoryService)),
)

func (s *MemoryService) ListMemory(ctx context.Context, req *cmd.ListMemoryReq) (*cmd.ListMemoryResp, error) {
	data, total, err := s.MemoryMapper.FindMany(ctx, req.UserId, &req.Paging)
	if err != nil {
		return nil, err
	}

	mems := make([]*cmd.Memory, 0, len(data))
	for _, m := range data {
		cm := &cmd.Memory{}
		if err := copier.Copy(cm, m); err != nil {
			return nil, err
		}
		cm.ID = m.ID.Hex()
		cm.CreateTime = m.CreateTime.Unix()
		mems = append(mems, cm)
	}
	return &cmd.ListMemoryResp{
		Code:   0,
		Msg:    "success",
		Memory: mems,
		Total:  total,
	}, nil
}

// EraseMemory 删除某个用户的全部记忆, 不可恢复
func (s *MemoryService) EraseMemory(ctx context.Context, req *cmd.EraseMemoryReq) (*cmd.EraseMemoryResp, error) {
	if req.UserId == "" {
		return nil, consts.ErrMissingUserId
	}

	deleted, err := s.MemoryMapper.DeleteByUser(ctx, req.UserId)
	if err != nil {
		return nil, err
	}

	// 最近策略标记一并清掉, 失败不影响结果
	if s.Config.Redis != nil {
		if err := domain.GetRedisHelper().Remove(req.UserId); err != nil {
			log.CtxError(ctx, "remove last strategy failed: %v", err)
		}
	}

	return &cmd.EraseMemoryResp{
		Code:    0,
		Msg:     "success",
		Deleted: deleted,
	}, nil
}
