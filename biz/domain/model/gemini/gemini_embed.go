package gemini

import (
	"context"
	"fmt"
	"net/http"

	"github.com/xh-polaris/psych-resilience/biz/domain/model"
	"github.com/xh-polaris/psych-resilience/biz/infrastructure/consts"
	"github.com/xh-polaris/psych-resilience/biz/infrastructure/util"
)

var _ model.EmbedApp = (*EmbedApp)(nil)

// EmbedApp 是Gemini向量化应用, 用于相似记忆检索
type EmbedApp struct {
	apiKey string
	model  string
	url    string
	header http.Header
}

// NewEmbedApp 创建一个Gemini向量化应用实例
func NewEmbedApp(baseUrl, apiModel, apiKey string) *EmbedApp {
	app := &EmbedApp{
		apiKey: apiKey,
		model:  apiModel,
		url:    fmt.Sprintf("%s/models/%s:embedContent", baseUrl, apiModel),
		header: http.Header{},
	}

	app.header.Set("Content-Type", "application/json")
	app.header.Set("x-goog-api-key", apiKey)

	return app
}

// Embed 将文本转换为向量
func (app *EmbedApp) Embed(ctx context.Context, text string) ([]float64, error) {
	body := map[string]any{
		"model": "models/" + app.model,
		"content": map[string]any{
			"parts": []map[string]any{{"text": text}},
		},
	}

	res, err := util.GetHttpClient().Req(ctx, consts.Post, app.url, app.header, body)
	if err != nil {
		return nil, err
	}

	embedding, ok := res["embedding"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("embedContent响应缺少embedding")
	}
	values, ok := embedding["values"].([]any)
	if !ok || len(values) == 0 {
		return nil, fmt.Errorf("embedContent响应缺少values")
	}

	vec := make([]float64, 0, len(values))
	for _, v := range values {
		f, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("embedContent响应向量格式异常")
		}
		vec = append(vec, f)
	}
	return vec, nil
}

// Close 释放相关资源
func (app *EmbedApp) Close() error {
	return nil
}
