package gemini

import (
	"strings"
	"testing"

	"github.com/xh-polaris/psych-resilience/biz/application/dto"
	"github.com/xh-polaris/psych-resilience/biz/infrastructure/consts"
)

func TestParseAnalysis_FullOutput(t *testing.T) {
	t.Parallel()

	raw := `SENTIMENT: Deeply_Negative
STRESS_LEVEL: HIGH
EMOTIONS: Sadness, loneliness , fatigue
CONFIDENCE: 0.85
REASONING: Multiple signals of prolonged sadness.`

	a := parseAnalysis(raw)
	if a.Sentiment != consts.SentimentDeeplyNegative {
		t.Fatalf("sentiment=%s", a.Sentiment)
	}
	if a.StressLevel != consts.StressHigh {
		t.Fatalf("stress=%s", a.StressLevel)
	}
	want := []string{"sadness", "loneliness", "fatigue"}
	if len(a.Emotions) != len(want) {
		t.Fatalf("emotions=%v", a.Emotions)
	}
	for i := range want {
		if a.Emotions[i] != want[i] {
			t.Fatalf("emotions=%v", a.Emotions)
		}
	}
	if a.Confidence != 0.85 {
		t.Fatalf("confidence=%v", a.Confidence)
	}
	if a.Reasoning != "Multiple signals of prolonged sadness." {
		t.Fatalf("reasoning=%q", a.Reasoning)
	}
}

func TestParseAnalysis_Defaults(t *testing.T) {
	t.Parallel()

	// 模型输出完全不按格式来时落回安全默认
	a := parseAnalysis("the user seems fine, nothing to report")
	if a.Sentiment != consts.SentimentNeutral || a.StressLevel != consts.StressMedium {
		t.Fatalf("analysis=%+v", a)
	}
	if len(a.Emotions) != 1 || a.Emotions[0] != "mixed" {
		t.Fatalf("emotions=%v", a.Emotions)
	}
	if a.Confidence != 0.5 {
		t.Fatalf("confidence=%v", a.Confidence)
	}
}

func TestParseAnalysis_Normalization(t *testing.T) {
	t.Parallel()

	raw := `SENTIMENT: jubilant
STRESS_LEVEL: catastrophic
EMOTIONS: a, b, c, d, e, f
CONFIDENCE: 1.8`

	a := parseAnalysis(raw)
	// 未知枚举概不透传
	if a.Sentiment != consts.SentimentNeutral {
		t.Fatalf("sentiment=%s", a.Sentiment)
	}
	if a.StressLevel != consts.StressMedium {
		t.Fatalf("stress=%s", a.StressLevel)
	}
	if len(a.Emotions) != 4 {
		t.Fatalf("emotions=%v", a.Emotions)
	}
	if a.Confidence != 1 {
		t.Fatalf("confidence=%v", a.Confidence)
	}
}

func TestBuildAnalysisPrompt_IncludesHistory(t *testing.T) {
	t.Parallel()

	summary := &dto.PatternSummary{
		RecurringEmotions: []string{"anxious", "tired"},
		AvgStress:         consts.StressHigh,
		TotalInteractions: 5,
	}
	p := buildAnalysisPrompt("another sleepless night", summary)
	if !strings.Contains(p, "another sleepless night") {
		t.Fatal("prompt missing user text")
	}
	if !strings.Contains(p, "anxious") {
		t.Fatal("prompt missing recurring emotions")
	}

	// 无历史时不渲染上下文段落
	p = buildAnalysisPrompt("hello there", nil)
	if strings.Contains(p, "anxious") {
		t.Fatal("prompt leaked history")
	}
}
