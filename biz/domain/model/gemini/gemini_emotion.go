package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/xh-polaris/psych-resilience/biz/application/dto"
	"github.com/xh-polaris/psych-resilience/biz/domain/model"
	"github.com/xh-polaris/psych-resilience/biz/infrastructure/consts"
	"github.com/xh-polaris/psych-resilience/biz/infrastructure/util"
)

var _ model.EmotionApp = (*EmotionApp)(nil)

// EmotionApp 是Gemini情绪分析应用
// 单轮调用, 上下文通过提示词携带, 本地不管理会话
type EmotionApp struct {
	apiKey string
	model  string
	url    string
	header http.Header
}

// NewEmotionApp 创建一个Gemini情绪分析应用实例
func NewEmotionApp(baseUrl, apiModel, apiKey string) *EmotionApp {
	app := &EmotionApp{
		apiKey: apiKey,
		model:  apiModel,
		url:    fmt.Sprintf("%s/models/%s:generateContent", baseUrl, apiModel),
		header: http.Header{},
	}

	app.header.Set("Content-Type", "application/json")
	app.header.Set("x-goog-api-key", apiKey)

	return app
}

// Analyze 调用模型分析情绪状态
// 返回error时由上层决定降级策略, 这里不做任何兜底
func (app *EmotionApp) Analyze(ctx context.Context, text string, summary *dto.PatternSummary) (*dto.Analysis, error) {
	raw, err := app.generate(ctx, buildAnalysisPrompt(text, summary), 0.3, 500)
	if err != nil {
		return nil, err
	}
	return parseAnalysis(raw), nil
}

// Support 生成一条支持性短消息
func (app *EmotionApp) Support(ctx context.Context, text string, analysis *dto.Analysis) (string, error) {
	raw, err := app.generate(ctx, buildSupportPrompt(text, analysis), 0.8, 150)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

// Close 释放相关资源
// 目前没有需要释放的资源
func (app *EmotionApp) Close() error {
	return nil
}

// generate 发起一次generateContent调用并取回文本
func (app *EmotionApp) generate(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error) {
	body := map[string]any{
		"contents": []map[string]any{
			{
				"role":  "user",
				"parts": []map[string]any{{"text": prompt}},
			},
		},
		"generationConfig": map[string]any{
			"temperature":     temperature,
			"maxOutputTokens": maxTokens,
		},
	}

	res, err := util.GetHttpClient().Req(ctx, consts.Post, app.url, app.header, body)
	if err != nil {
		var se *util.StatusError
		if errors.As(err, &se) && se.Code == http.StatusTooManyRequests {
			return "", model.ErrQuotaExceeded
		}
		return "", err
	}

	return extractText(res)
}

// extractText 从响应里取出候选文本
func extractText(res map[string]any) (string, error) {
	candidates, ok := res["candidates"].([]any)
	if !ok || len(candidates) == 0 {
		return "", fmt.Errorf("gemini响应缺少candidates")
	}
	content, ok := candidates[0].(map[string]any)["content"].(map[string]any)
	if !ok {
		return "", fmt.Errorf("gemini响应缺少content")
	}
	parts, ok := content["parts"].([]any)
	if !ok || len(parts) == 0 {
		return "", fmt.Errorf("gemini响应缺少parts")
	}
	text, ok := parts[0].(map[string]any)["text"].(string)
	if !ok {
		return "", fmt.Errorf("gemini响应缺少text")
	}
	return text, nil
}

// buildAnalysisPrompt 拼接情绪分析提示词
func buildAnalysisPrompt(text string, summary *dto.PatternSummary) string {
	var sb strings.Builder
	sb.WriteString(`You are an empathetic mental wellness AI assistant. Analyze the following user input for emotional state and stress level.

User Input: "`)
	sb.WriteString(text)
	sb.WriteString("\"\n")

	// 有历史模式时作为附加上下文
	if summary != nil && summary.TotalInteractions > 0 {
		sb.WriteString(fmt.Sprintf(`
Context from this user's recent history:
- Recurring emotions: %s
- Average stress: %s
- Crisis frequency: %.2f
`, strings.Join(summary.RecurringEmotions, ", "), summary.AvgStress, summary.CrisisFrequency))
	}

	sb.WriteString(`
Provide your analysis in EXACTLY this format (one line each, no extra text):
SENTIMENT: [positive/neutral/negative/deeply_negative]
STRESS_LEVEL: [low/medium/high/crisis]
EMOTIONS: [list 2-4 specific emotions separated by commas, e.g., anxiety, overwhelm, sadness]
CONFIDENCE: [number between 0 and 1]
REASONING: [one short sentence explaining the judgment]

Be precise and concise. Only output the five lines above, nothing else.`)
	return sb.String()
}

// buildSupportPrompt 拼接支持性消息提示词
func buildSupportPrompt(text string, analysis *dto.Analysis) string {
	return fmt.Sprintf(`You are a compassionate mental wellness coach. The user shared: "%s"

Analysis shows:
- Sentiment: %s
- Stress Level: %s
- Emotions: %s

Write ONE SHORT supportive message (2-3 sentences max) that:
1. Validates their feelings
2. Offers gentle encouragement
3. Is warm and empathetic

Keep it conversational and natural. Do not give medical advice.`,
		text, analysis.Sentiment, analysis.StressLevel, strings.Join(analysis.Emotions, ", "))
}

// parseAnalysis 解析行式分析结果
// 模型输出枚举外的值时就地归一, 不让非法值流向下游
func parseAnalysis(raw string) *dto.Analysis {
	a := &dto.Analysis{
		Sentiment:   consts.SentimentNeutral,
		StressLevel: consts.StressMedium,
		Confidence:  0.5,
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "SENTIMENT:"):
			a.Sentiment = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(line, "SENTIMENT:")))
		case strings.HasPrefix(line, "STRESS_LEVEL:"):
			a.StressLevel = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(line, "STRESS_LEVEL:")))
		case strings.HasPrefix(line, "EMOTIONS:"):
			for _, e := range strings.Split(strings.TrimPrefix(line, "EMOTIONS:"), ",") {
				if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
					a.Emotions = append(a.Emotions, e)
				}
			}
		case strings.HasPrefix(line, "CONFIDENCE:"):
			if v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimPrefix(line, "CONFIDENCE:")), 64); err == nil {
				a.Confidence = v
			}
		case strings.HasPrefix(line, "REASONING:"):
			a.Reasoning = strings.TrimSpace(strings.TrimPrefix(line, "REASONING:"))
		}
	}

	switch a.Sentiment {
	case consts.SentimentPositive, consts.SentimentNeutral, consts.SentimentNegative, consts.SentimentDeeplyNegative:
	default:
		a.Sentiment = consts.SentimentNeutral
	}
	switch a.StressLevel {
	case consts.StressLow, consts.StressMedium, consts.StressHigh, consts.StressCrisis:
	default:
		a.StressLevel = consts.StressMedium
	}
	if len(a.Emotions) == 0 {
		a.Emotions = []string{"mixed"}
	}
	if len(a.Emotions) > 4 {
		a.Emotions = a.Emotions[:4]
	}
	if a.Confidence < 0 {
		a.Confidence = 0
	}
	if a.Confidence > 1 {
		a.Confidence = 1
	}

	return a
}
