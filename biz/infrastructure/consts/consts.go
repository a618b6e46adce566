package consts

// 智能体标识
const (
	AgentName    = "resilience_coach"
	AgentVersion = "1.0.0"
)

// 数据库相关
const (
	CreateTime = "create_time"
	UserId     = "user_id"
)

// Post http
const (
	Post = "POST"
)

// 状态值
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// 情绪倾向枚举, error_开头的表示分析服务不可用时的诚实标记, 不允许退化成neutral
const (
	SentimentPositive       = "positive"
	SentimentNeutral        = "neutral"
	SentimentNegative       = "negative"
	SentimentDeeplyNegative = "deeply_negative"
	SentimentQuotaExceeded  = "error_quota_exceeded"
	SentimentApiFailed      = "error_api_failed"
)

// 压力水平枚举
const (
	StressLow         = "low"
	StressMedium      = "medium"
	StressHigh        = "high"
	StressCrisis      = "crisis"
	StressUnavailable = "api_unavailable"
)

// 分析失败时emotions里的哨兵标记
const (
	EmotionTagApiError      = "api_error"
	EmotionTagQuotaExceeded = "quota_exceeded"
)

// 应对策略枚举
const (
	StrategyBreathing    = "breathing_exercise"
	StrategyGrounding    = "grounding_technique"
	StrategyRelaxation   = "progressive_relaxation"
	StrategyMeditation   = "mindful_meditation"
	StrategyAffirmations = "positive_affirmations"
	StrategyPhysical     = "physical_activity"
	StrategyJournaling   = "journaling"
	StrategySocial       = "social_connection"
	StrategyCrisis       = "crisis"
)

// 分析服务不可用时的默认危机基准分, 对风险保持沉默比误报更糟
const DegradedCrisisScore = 0.5

// 关键词直接命中时的危机分, 即使模型判断不一致也强制走危机分支
const KeywordCrisisScore = 0.9
