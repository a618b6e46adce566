package coach

import (
	"strings"
	"testing"

	"github.com/xh-polaris/psych-resilience/biz/application/dto"
	"github.com/xh-polaris/psych-resilience/biz/infrastructure/consts"
)

func TestSelectStrategy_EmotionRules(t *testing.T) {
	t.Parallel()

	cases := []struct {
		emotions []string
		want     string
	}{
		{[]string{"anxiety"}, consts.StrategyBreathing},
		{[]string{"overwhelmed"}, consts.StrategyBreathing},
		{[]string{"lonely"}, consts.StrategySocial},
		{[]string{"sad", "tired"}, consts.StrategyAffirmations},
		{[]string{"angry"}, consts.StrategyPhysical},
		{[]string{"exhausted"}, consts.StrategyPhysical},
		{[]string{"worried"}, consts.StrategyJournaling},
	}
	for _, c := range cases {
		a := &dto.Analysis{StressLevel: consts.StressMedium, Emotions: c.emotions}
		rec := SelectStrategy(a, "")
		if rec.Type != c.want {
			t.Fatalf("emotions %v: type=%s want=%s", c.emotions, rec.Type, c.want)
		}
	}
}

func TestSelectStrategy_StressFallback(t *testing.T) {
	t.Parallel()

	cases := []struct {
		stress string
		want   string
	}{
		{consts.StressHigh, consts.StrategyBreathing},
		{consts.StressCrisis, consts.StrategyBreathing},
		{consts.StressLow, consts.StrategyAffirmations},
		{consts.StressMedium, consts.StrategyMeditation},
	}
	for _, c := range cases {
		a := &dto.Analysis{StressLevel: c.stress, Emotions: []string{"mixed"}}
		rec := SelectStrategy(a, "")
		if rec.Type != c.want {
			t.Fatalf("stress %s: type=%s want=%s", c.stress, rec.Type, c.want)
		}
	}
}

func TestSelectStrategy_AntiRepetition(t *testing.T) {
	t.Parallel()

	a := &dto.Analysis{StressLevel: consts.StressMedium, Emotions: []string{"anxious"}}

	// 首选与上次相同时换到次选
	rec := SelectStrategy(a, consts.StrategyBreathing)
	if rec.Type != consts.StrategyGrounding {
		t.Fatalf("type=%s", rec.Type)
	}

	// 上次用的是次选则维持首选
	rec = SelectStrategy(a, consts.StrategyGrounding)
	if rec.Type != consts.StrategyBreathing {
		t.Fatalf("type=%s", rec.Type)
	}
}

func TestStrategies_StepLimit(t *testing.T) {
	t.Parallel()

	for typ, tpl := range strategies {
		if len(tpl.Steps) == 0 || len(tpl.Steps) > maxSteps {
			t.Fatalf("strategy %s has %d steps", typ, len(tpl.Steps))
		}
		if tpl.Name == "" {
			t.Fatalf("strategy %s missing name", typ)
		}
	}
}

func TestBuildRecommendation_UnknownType(t *testing.T) {
	t.Parallel()

	rec := buildRecommendation("no_such_strategy")
	if rec.Type != consts.StrategyBreathing {
		t.Fatalf("type=%s", rec.Type)
	}
}

func TestCrisisRecommendation(t *testing.T) {
	t.Parallel()

	rec := crisisRecommendation()
	if rec.Type != consts.StrategyCrisis {
		t.Fatalf("type=%s", rec.Type)
	}
	if !strings.Contains(strings.Join(rec.Steps, " "), "988") {
		t.Fatalf("steps missing hotline: %v", rec.Steps)
	}
}
