package coach

import (
	"strings"

	"github.com/xh-polaris/psych-resilience/biz/application/dto"
	"github.com/xh-polaris/psych-resilience/biz/infrastructure/consts"
)

// crisisKeywords 原文关键词, 命中任意一个直接抬高危机分
// 这是对模型判断的兜底, 模型说没事也不放过字面上的危险信号
var crisisKeywords = []string{
	"suicide",
	"suicidal",
	"kill myself",
	"end my life",
	"end it all",
	"self-harm",
	"self harm",
	"hurt myself",
	"want to die",
	"no reason to live",
	"better off without me",
}

// despairTags 分析结果里的绝望类情绪标签
var despairTags = []string{"hopeless", "worthless", "despair", "helpless"}

// CrisisScore 计算危机分值, 范围[0,1]
// degraded表示分析服务不可用, 此时基准分固定抬高到0.5, 对风险沉默比误报更糟
func CrisisScore(analysis *dto.Analysis, degraded bool, rawText string) float64 {
	var score float64

	if degraded {
		score = consts.DegradedCrisisScore
	} else {
		switch analysis.StressLevel {
		case consts.StressCrisis:
			score = 0.85
		case consts.StressHigh:
			score = 0.5
		case consts.StressMedium:
			score = 0.25
		default:
			score = 0.1
		}
		if analysis.Sentiment == consts.SentimentDeeplyNegative {
			score += 0.15
		}
		for _, e := range analysis.Emotions {
			if containsAny(e, despairTags) {
				score += 0.1
				break
			}
		}
	}

	// 关键词命中强制走高分, 与模型判断取更大者
	if containsAny(strings.ToLower(rawText), crisisKeywords) && score < consts.KeywordCrisisScore {
		score = consts.KeywordCrisisScore
	}

	if score > 1 {
		score = 1
	}
	if score < 0 {
		score = 0
	}
	return score
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
