package dto

type (
	// Analysis 情绪分析结果
	// 当分析服务不可用时sentiment/stress_level会携带error_变体,
	// confidence必须为0, emotions携带对应哨兵标记, 调用方无需看原文即可区分
	// "服务降级"和"真实中性"
	Analysis struct {
		Sentiment   string   `json:"sentiment"`
		StressLevel string   `json:"stress_level"`
		Emotions    []string `json:"emotions"`
		Confidence  float64  `json:"confidence"`
		Reasoning   string   `json:"reasoning"`
	}

	// Recommendation 选中的应对策略模板
	Recommendation struct {
		Type  string   `json:"type"`
		Name  string   `json:"name"`
		Steps []string `json:"steps"`
	}

	// ResilienceResp 主入口成功响应信封, 200时始终是这个形状
	ResilienceResp struct {
		Agent          string          `json:"agent"`
		Status         string          `json:"status"`
		Analysis       *Analysis       `json:"analysis"`
		CrisisScore    float64         `json:"crisis_score"`
		Recommendation *Recommendation `json:"recommendation"`
		Message        string          `json:"message"`
	}

	// ErrorResp 业务错误信封
	ErrorResp struct {
		Status  string `json:"status"`
		Agent   string `json:"agent"`
		Message string `json:"message"`
	}
)

// PatternSummary 读取时从最近若干条记忆聚合出的情绪模式, 不落库
type PatternSummary struct {
	RecurringEmotions []string `json:"recurring_emotions"`
	AvgStress         string   `json:"avg_stress"`
	CrisisFrequency   float64  `json:"crisis_frequency"`
	TotalInteractions int      `json:"total_interactions"`
	// LastStrategy 最近一次使用的策略, 供防重复规则使用
	LastStrategy string `json:"last_strategy,omitempty"`
}

// Interaction 一次完成的互动, 投递到MQ后由消费者补全向量并落库
type Interaction struct {
	Id           string   `json:"id"`
	UserId       string   `json:"user_id"`
	Text         string   `json:"text"`
	Sentiment    string   `json:"sentiment"`
	StressLevel  string   `json:"stress_level"`
	Emotions     []string `json:"emotions"`
	CrisisScore  float64  `json:"crisis_score"`
	StrategyType string   `json:"strategy_type"`
	Timestamp    int64    `json:"timestamp"`
}
