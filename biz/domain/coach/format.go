package coach

import (
	"strings"

	"github.com/xh-polaris/psych-resilience/biz/application/dto"
	"github.com/xh-polaris/psych-resilience/biz/infrastructure/consts"
)

// 固定文案
const (
	// CrisisMessage 危机分支的固定高优先级消息, 包含求助热线
	CrisisMessage = "Your safety matters, and what you're feeling deserves immediate care. " +
		"Please call or text 988 (Suicide & Crisis Lifeline) right now - trained counselors are available 24/7. " +
		"You don't have to face this alone."

	// DegradedMessage 分析服务不可用时的诚实提示
	DegradedMessage = "I'm having trouble reaching the analysis service right now, so I can't fully assess how you're feeling. " +
		"The suggestion below is a general one. If you're in distress, please reach out to someone you trust."

	// DefaultMessage 支持消息缺失时的兜底文案
	DefaultMessage = "I'm here to support you. Take things one step at a time."

	// maxReasoningLen rationale字段的长度上限
	maxReasoningLen = 300

	// maxSteps 推荐步骤条数上限
	maxSteps = 6
)

var validSentiments = map[string]bool{
	consts.SentimentPositive:       true,
	consts.SentimentNeutral:        true,
	consts.SentimentNegative:       true,
	consts.SentimentDeeplyNegative: true,
	consts.SentimentQuotaExceeded:  true,
	consts.SentimentApiFailed:      true,
}

var validStress = map[string]bool{
	consts.StressLow:         true,
	consts.StressMedium:      true,
	consts.StressHigh:        true,
	consts.StressCrisis:      true,
	consts.StressUnavailable: true,
}

// Format 组装最终响应信封
// 永不失败: 上游任何字段缺失或非法都替换成文档化的默认值,
// 保证200响应始终是同一个形状
func Format(analysis *dto.Analysis, crisisScore float64, rec *dto.Recommendation, message string, maxMsgLen int) *dto.ResilienceResp {
	if analysis == nil {
		analysis = &dto.Analysis{}
	}

	a := &dto.Analysis{
		Sentiment:   analysis.Sentiment,
		StressLevel: analysis.StressLevel,
		Emotions:    analysis.Emotions,
		Confidence:  analysis.Confidence,
		Reasoning:   analysis.Reasoning,
	}

	// 枚举兜底: error_变体是合法成员, 不会被矫正成neutral
	if !validSentiments[a.Sentiment] {
		a.Sentiment = consts.SentimentNeutral
	}
	if !validStress[a.StressLevel] {
		a.StressLevel = consts.StressMedium
	}
	if len(a.Emotions) == 0 {
		a.Emotions = []string{"uncertain"}
	}
	if a.Confidence < 0 {
		a.Confidence = 0
	}
	if a.Confidence > 1 {
		a.Confidence = 1
	}
	// 错误变体下强制置信度为0, 调用方以此区分服务降级和真实中性
	if a.Sentiment == consts.SentimentQuotaExceeded || a.Sentiment == consts.SentimentApiFailed {
		a.Confidence = 0
	}
	a.Reasoning = truncate(a.Reasoning, maxReasoningLen)

	if rec == nil || rec.Type == "" {
		rec = buildRecommendation(consts.StrategyBreathing)
	}
	if len(rec.Steps) > maxSteps && rec.Type != consts.StrategyCrisis {
		rec.Steps = rec.Steps[:maxSteps]
	}

	if strings.TrimSpace(message) == "" {
		message = DefaultMessage
	}
	if maxMsgLen > 0 {
		message = truncate(message, maxMsgLen)
	}

	if crisisScore < 0 {
		crisisScore = 0
	}
	if crisisScore > 1 {
		crisisScore = 1
	}

	return &dto.ResilienceResp{
		Agent:          consts.AgentName,
		Status:         consts.StatusSuccess,
		Analysis:       a,
		CrisisScore:    crisisScore,
		Recommendation: rec,
		Message:        message,
	}
}

// truncate 按rune截断并加省略号
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
