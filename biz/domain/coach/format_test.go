package coach

import (
	"strings"
	"testing"

	"github.com/xh-polaris/psych-resilience/biz/application/dto"
	"github.com/xh-polaris/psych-resilience/biz/infrastructure/consts"
)

func TestFormat_NilInputs(t *testing.T) {
	t.Parallel()

	resp := Format(nil, 0.2, nil, "", 500)
	if resp.Agent != consts.AgentName || resp.Status != consts.StatusSuccess {
		t.Fatalf("envelope=%s/%s", resp.Agent, resp.Status)
	}
	if resp.Analysis.Sentiment != consts.SentimentNeutral || resp.Analysis.StressLevel != consts.StressMedium {
		t.Fatalf("analysis=%+v", resp.Analysis)
	}
	if len(resp.Analysis.Emotions) != 1 || resp.Analysis.Emotions[0] != "uncertain" {
		t.Fatalf("emotions=%v", resp.Analysis.Emotions)
	}
	if resp.Recommendation.Type != consts.StrategyBreathing {
		t.Fatalf("recommendation=%+v", resp.Recommendation)
	}
	if resp.Message != DefaultMessage {
		t.Fatalf("message=%q", resp.Message)
	}
}

func TestFormat_InvalidEnumsFallBack(t *testing.T) {
	t.Parallel()

	a := &dto.Analysis{Sentiment: "ecstatic", StressLevel: "extreme", Emotions: []string{"joy"}, Confidence: 0.8}
	resp := Format(a, 0.1, buildRecommendation(consts.StrategyMeditation), "hi there", 500)
	if resp.Analysis.Sentiment != consts.SentimentNeutral {
		t.Fatalf("sentiment=%s", resp.Analysis.Sentiment)
	}
	if resp.Analysis.StressLevel != consts.StressMedium {
		t.Fatalf("stress=%s", resp.Analysis.StressLevel)
	}
}

func TestFormat_ErrorVariantsSurvive(t *testing.T) {
	t.Parallel()

	// error_变体是合法枚举, 且置信度强制为0以区分真实中性
	a := &dto.Analysis{
		Sentiment:   consts.SentimentQuotaExceeded,
		StressLevel: consts.StressUnavailable,
		Emotions:    []string{consts.EmotionTagQuotaExceeded},
		Confidence:  0.9,
	}
	resp := Format(a, 0.5, buildRecommendation(consts.StrategyBreathing), DegradedMessage, 500)
	if resp.Analysis.Sentiment != consts.SentimentQuotaExceeded {
		t.Fatalf("sentiment=%s", resp.Analysis.Sentiment)
	}
	if resp.Analysis.StressLevel != consts.StressUnavailable {
		t.Fatalf("stress=%s", resp.Analysis.StressLevel)
	}
	if resp.Analysis.Confidence != 0 {
		t.Fatalf("confidence=%v", resp.Analysis.Confidence)
	}
}

func TestFormat_Clamps(t *testing.T) {
	t.Parallel()

	a := &dto.Analysis{Sentiment: consts.SentimentPositive, StressLevel: consts.StressLow, Emotions: []string{"calm"}, Confidence: 1.7}
	resp := Format(a, 2.5, buildRecommendation(consts.StrategyMeditation), "ok", 500)
	if resp.Analysis.Confidence != 1 {
		t.Fatalf("confidence=%v", resp.Analysis.Confidence)
	}
	if resp.CrisisScore != 1 {
		t.Fatalf("crisisScore=%v", resp.CrisisScore)
	}

	resp = Format(a, -0.3, buildRecommendation(consts.StrategyMeditation), "ok", 500)
	if resp.CrisisScore != 0 {
		t.Fatalf("crisisScore=%v", resp.CrisisScore)
	}
}

func TestFormat_Truncation(t *testing.T) {
	t.Parallel()

	a := &dto.Analysis{
		Sentiment:   consts.SentimentNegative,
		StressLevel: consts.StressMedium,
		Emotions:    []string{"sad"},
		Confidence:  0.6,
		Reasoning:   strings.Repeat("r", 400),
	}
	resp := Format(a, 0.2, buildRecommendation(consts.StrategyJournaling), strings.Repeat("m", 600), 500)
	if n := len([]rune(resp.Analysis.Reasoning)); n != maxReasoningLen {
		t.Fatalf("reasoning length=%d", n)
	}
	if !strings.HasSuffix(resp.Analysis.Reasoning, "...") {
		t.Fatal("reasoning not marked truncated")
	}
	if n := len([]rune(resp.Message)); n != 500 {
		t.Fatalf("message length=%d", n)
	}
	if !strings.HasSuffix(resp.Message, "...") {
		t.Fatal("message not marked truncated")
	}
}

func TestFormat_StepClamp(t *testing.T) {
	t.Parallel()

	rec := &dto.Recommendation{
		Type:  consts.StrategyBreathing,
		Name:  "Breathing Exercise",
		Steps: []string{"1", "2", "3", "4", "5", "6", "7", "8"},
	}
	a := &dto.Analysis{Sentiment: consts.SentimentNeutral, StressLevel: consts.StressMedium, Emotions: []string{"calm"}, Confidence: 0.5}
	resp := Format(a, 0.1, rec, "ok", 500)
	if len(resp.Recommendation.Steps) != maxSteps {
		t.Fatalf("steps=%d", len(resp.Recommendation.Steps))
	}
}
