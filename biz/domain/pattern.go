package domain

import (
	"sort"

	"github.com/xh-polaris/psych-resilience/biz/application/dto"
	"github.com/xh-polaris/psych-resilience/biz/infrastructure/consts"
	"github.com/xh-polaris/psych-resilience/biz/infrastructure/mapper/memory"
)

// topEmotions 模式摘要里保留的高频情绪个数
const topEmotions = 3

// BuildPatternSummary 从一批记忆记录聚合出情绪模式, 读取时计算, 不落库
// records按时间倒序, 空输入返回空摘要, 下游按无记忆逻辑降级
func BuildPatternSummary(records []*memory.Memory) *dto.PatternSummary {
	summary := &dto.PatternSummary{
		RecurringEmotions: []string{},
		AvgStress:         consts.StressMedium,
	}
	if len(records) == 0 {
		return summary
	}

	counts := make(map[string]int)
	stressSum := 0
	crisisCount := 0
	for _, r := range records {
		for _, e := range r.Emotions {
			counts[e]++
		}
		stressSum += stressWeight(r.StressLevel)
		if r.CrisisScore >= 0.7 {
			crisisCount++
		}
	}

	// 高频情绪取前三, 频次相同时按字典序保证稳定
	type pair struct {
		emotion string
		count   int
	}
	pairs := make([]pair, 0, len(counts))
	for e, c := range counts {
		pairs = append(pairs, pair{e, c})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		return pairs[i].emotion < pairs[j].emotion
	})
	for i := 0; i < len(pairs) && i < topEmotions; i++ {
		summary.RecurringEmotions = append(summary.RecurringEmotions, pairs[i].emotion)
	}

	avg := float64(stressSum) / float64(len(records))
	switch {
	case avg < 1.5:
		summary.AvgStress = consts.StressLow
	case avg < 2.5:
		summary.AvgStress = consts.StressMedium
	default:
		summary.AvgStress = consts.StressHigh
	}

	summary.CrisisFrequency = float64(crisisCount) / float64(len(records))
	summary.TotalInteractions = len(records)
	// 记录按时间倒序, 第一条就是最近一次
	summary.LastStrategy = records[0].StrategyType

	return summary
}

// stressWeight 压力水平的数值权重, 未知值按中等处理
func stressWeight(level string) int {
	switch level {
	case consts.StressLow:
		return 1
	case consts.StressHigh:
		return 3
	case consts.StressCrisis:
		return 4
	default:
		return 2
	}
}
