package coach

import (
	"strings"

	"github.com/xh-polaris/psych-resilience/biz/application/dto"
	"github.com/xh-polaris/psych-resilience/biz/infrastructure/consts"
)

// strategyTemplate 应对策略模板
type strategyTemplate struct {
	Name  string
	Steps []string
}

// strategies 八种常规策略模板
var strategies = map[string]strategyTemplate{
	consts.StrategyBreathing: {
		Name: "Breathing Exercise",
		Steps: []string{
			"Find a comfortable seated position",
			"Inhale slowly through your nose for 4 counts",
			"Hold your breath gently for 2 counts",
			"Exhale slowly through your mouth for 6 counts",
			"Repeat this cycle 5-10 times",
			"Notice how your body feels calmer",
		},
	},
	consts.StrategyGrounding: {
		Name: "Grounding Technique (5-4-3-2-1)",
		Steps: []string{
			"Acknowledge 5 things you can see around you",
			"Acknowledge 4 things you can touch",
			"Acknowledge 3 things you can hear",
			"Acknowledge 2 things you can smell",
			"Acknowledge 1 thing you can taste",
			"Take a deep breath and return to the present moment",
		},
	},
	consts.StrategyRelaxation: {
		Name: "Progressive Muscle Relaxation",
		Steps: []string{
			"Start with your toes - tense them for 5 seconds, then release",
			"Move to your calves - tense and release",
			"Continue with thighs, abdomen, and chest",
			"Tense and release your hands and arms",
			"Finally, tense and release your neck and face",
			"Breathe deeply and enjoy the calm",
		},
	},
	consts.StrategyMeditation: {
		Name: "Mindful Meditation",
		Steps: []string{
			"Sit or lie down in a comfortable position",
			"Close your eyes and focus on your breath",
			"Notice the sensation of air entering and leaving",
			"When thoughts arise, acknowledge them without judgment",
			"Gently return your focus to your breath",
			"Continue for 5-10 minutes",
		},
	},
	consts.StrategyAffirmations: {
		Name: "Positive Affirmations",
		Steps: []string{
			"Take three deep breaths",
			"Say aloud: \"I am capable and strong\"",
			"Say aloud: \"I can handle difficult emotions\"",
			"Say aloud: \"This feeling is temporary\"",
			"Say aloud: \"I am worthy of peace and happiness\"",
			"Repeat these as often as needed",
		},
	},
	consts.StrategyPhysical: {
		Name: "Gentle Physical Activity",
		Steps: []string{
			"Stand up and stretch your arms overhead",
			"Roll your shoulders backward 5 times",
			"Take a short 5-minute walk, even if just around your room",
			"Stretch your neck gently side to side",
			"Shake out your hands and arms",
			"Notice the energy shift in your body",
		},
	},
	consts.StrategyJournaling: {
		Name: "Reflective Journaling",
		Steps: []string{
			"Get a notebook or open a digital document",
			"Write down what you're feeling right now",
			"Don't judge your thoughts - just let them flow",
			"Write one thing you're grateful for today",
			"Write one small action you can take to feel better",
			"Close by writing a kind message to yourself",
		},
	},
	consts.StrategySocial: {
		Name: "Social Connection",
		Steps: []string{
			"Think of someone who makes you feel safe",
			"Reach out with a text, call, or video chat",
			"Share how you're feeling (if comfortable)",
			"Ask them about their day",
			"Remember: asking for support is a sign of strength",
			"Thank them for being there",
		},
	},
}

// emotionRule 情绪到策略的显式映射, 按声明顺序匹配, 前面的优先
type emotionRule struct {
	words      []string
	candidates []string
}

var emotionRules = []emotionRule{
	{
		words:      []string{"anxiety", "anxious", "panic", "overwhelm", "stress"},
		candidates: []string{consts.StrategyBreathing, consts.StrategyGrounding},
	},
	{
		words:      []string{"lonely", "loneliness", "isolat"},
		candidates: []string{consts.StrategySocial, consts.StrategyAffirmations},
	},
	{
		words:      []string{"sad", "depress", "hopeless", "down", "grief"},
		candidates: []string{consts.StrategyAffirmations, consts.StrategySocial},
	},
	{
		words:      []string{"angry", "anger", "frustrat", "irritat", "annoy"},
		candidates: []string{consts.StrategyPhysical, consts.StrategyRelaxation},
	},
	{
		words:      []string{"exhaust", "tired", "fatigue", "burnout"},
		candidates: []string{consts.StrategyPhysical, consts.StrategyRelaxation},
	},
	{
		words:      []string{"worried", "worry", "rumin", "confus", "overthink"},
		candidates: []string{consts.StrategyJournaling, consts.StrategyMeditation},
	},
}

// rankCandidates 生成有序候选: 情绪表优先, 无命中时退回压力水平
func rankCandidates(analysis *dto.Analysis) []string {
	joined := strings.ToLower(strings.Join(analysis.Emotions, " "))
	for _, rule := range emotionRules {
		if containsAny(joined, rule.words) {
			return rule.candidates
		}
	}

	switch analysis.StressLevel {
	case consts.StressHigh, consts.StressCrisis:
		return []string{consts.StrategyBreathing, consts.StrategyGrounding}
	case consts.StressLow:
		return []string{consts.StrategyAffirmations, consts.StrategyMeditation}
	default:
		return []string{consts.StrategyMeditation, consts.StrategyJournaling}
	}
}

// SelectStrategy 选择应对策略
// 首选与最近一次使用的策略相同时换到次选, 没有次选就保留首选
func SelectStrategy(analysis *dto.Analysis, lastStrategy string) *dto.Recommendation {
	candidates := rankCandidates(analysis)
	pick := candidates[0]
	if pick == lastStrategy && len(candidates) > 1 {
		pick = candidates[1]
	}
	return buildRecommendation(pick)
}

// buildRecommendation 由策略类型构造推荐对象
func buildRecommendation(strategyType string) *dto.Recommendation {
	tpl, ok := strategies[strategyType]
	if !ok {
		strategyType = consts.StrategyBreathing
		tpl = strategies[strategyType]
	}
	steps := make([]string, len(tpl.Steps))
	copy(steps, tpl.Steps)
	return &dto.Recommendation{
		Type:  strategyType,
		Name:  tpl.Name,
		Steps: steps,
	}
}

// crisisRecommendation 危机分支的哨兵推荐, 不走策略选择
func crisisRecommendation() *dto.Recommendation {
	return &dto.Recommendation{
		Type: consts.StrategyCrisis,
		Name: "Immediate Support",
		Steps: []string{
			"Call or text 988 (Suicide & Crisis Lifeline) right now",
			"If you are outside the US, contact your local emergency number",
			"Stay with someone you trust, or ask someone to stay with you",
			"Remove anything you could use to hurt yourself",
			"You deserve support - trained counselors are there to listen",
		},
	}
}
