package coach

import (
	"math"
	"testing"

	"github.com/xh-polaris/psych-resilience/biz/application/dto"
	"github.com/xh-polaris/psych-resilience/biz/infrastructure/consts"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCrisisScore_StressBase(t *testing.T) {
	t.Parallel()

	cases := []struct {
		stress string
		want   float64
	}{
		{consts.StressCrisis, 0.85},
		{consts.StressHigh, 0.5},
		{consts.StressMedium, 0.25},
		{consts.StressLow, 0.1},
	}
	for _, c := range cases {
		a := &dto.Analysis{Sentiment: consts.SentimentNegative, StressLevel: c.stress, Emotions: []string{"sad"}}
		got := CrisisScore(a, false, "having a rough week")
		if !almostEqual(got, c.want) {
			t.Fatalf("stress %s: score=%v want=%v", c.stress, got, c.want)
		}
	}
}

func TestCrisisScore_Boosts(t *testing.T) {
	t.Parallel()

	// deeply_negative 加成
	a := &dto.Analysis{Sentiment: consts.SentimentDeeplyNegative, StressLevel: consts.StressHigh, Emotions: []string{"sad"}}
	if got := CrisisScore(a, false, "everything is heavy"); !almostEqual(got, 0.65) {
		t.Fatalf("score=%v", got)
	}

	// 绝望类情绪标签加成
	a = &dto.Analysis{Sentiment: consts.SentimentNegative, StressLevel: consts.StressMedium, Emotions: []string{"hopeless"}}
	if got := CrisisScore(a, false, "nothing helps"); !almostEqual(got, 0.35) {
		t.Fatalf("score=%v", got)
	}

	// 叠加后不超过1
	a = &dto.Analysis{Sentiment: consts.SentimentDeeplyNegative, StressLevel: consts.StressCrisis, Emotions: []string{"despair"}}
	if got := CrisisScore(a, false, "it all collapsed"); !almostEqual(got, 1.0) {
		t.Fatalf("score=%v", got)
	}
}

func TestCrisisScore_KeywordOverride(t *testing.T) {
	t.Parallel()

	// 模型说没事也不放过字面危险信号
	a := &dto.Analysis{Sentiment: consts.SentimentNeutral, StressLevel: consts.StressLow, Emotions: []string{"calm"}}
	if got := CrisisScore(a, false, "sometimes I think about suicide"); !almostEqual(got, consts.KeywordCrisisScore) {
		t.Fatalf("score=%v", got)
	}
	if got := CrisisScore(a, false, "I want to End My Life"); !almostEqual(got, consts.KeywordCrisisScore) {
		t.Fatalf("score=%v", got)
	}

	// 模型分更高时保留模型分
	a = &dto.Analysis{Sentiment: consts.SentimentDeeplyNegative, StressLevel: consts.StressCrisis, Emotions: []string{"hopeless"}}
	if got := CrisisScore(a, false, "I want to end my life"); !almostEqual(got, 1.0) {
		t.Fatalf("score=%v", got)
	}
}

func TestCrisisScore_Degraded(t *testing.T) {
	t.Parallel()

	a := &dto.Analysis{Sentiment: consts.SentimentApiFailed, StressLevel: consts.StressUnavailable}
	if got := CrisisScore(a, true, "just a hard day"); !almostEqual(got, consts.DegradedCrisisScore) {
		t.Fatalf("score=%v", got)
	}

	// 降级状态下关键词依然抬分
	if got := CrisisScore(a, true, "I might hurt myself"); !almostEqual(got, consts.KeywordCrisisScore) {
		t.Fatalf("score=%v", got)
	}
}
