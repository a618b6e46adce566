package model

import (
	"context"
	"errors"

	"github.com/xh-polaris/psych-resilience/biz/application/dto"
)

// ErrQuotaExceeded 上游配额耗尽, 与其他失败区分以便信封里携带不同哨兵
var ErrQuotaExceeded = errors.New("upstream quota exceeded")

// EmotionApp 是第三方情绪分析大模型应用的抽象
type EmotionApp interface {
	// Analyze 分析一段文本的情绪状态, summary可为nil
	Analyze(ctx context.Context, text string, summary *dto.PatternSummary) (*dto.Analysis, error)

	// Support 基于分析结果生成一条支持性短消息
	Support(ctx context.Context, text string, analysis *dto.Analysis) (string, error)

	// Close 关闭资源
	Close() error
}

// EmbedApp 是第三方向量化模型应用的抽象
type EmbedApp interface {
	// Embed 将文本转换为向量
	Embed(ctx context.Context, text string) ([]float64, error)

	// Close 关闭资源
	Close() error
}
