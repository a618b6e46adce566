package util

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

var client *HttpClient

// HttpClient 是一个简单的 HTTP 客户端
type HttpClient struct {
	Client *http.Client
}

// NewHttpClient 创建一个新的 HttpClient 实例
// timeout是整体超时, 外部模型调用超时应视作服务降级而不是致命错误
func NewHttpClient(timeout time.Duration) *HttpClient {
	return &HttpClient{
		Client: &http.Client{Timeout: timeout},
	}
}

// InitHttpClient 按配置的超时初始化客户端单例
func InitHttpClient(timeout time.Duration) {
	client = NewHttpClient(timeout)
}

// GetHttpClient 获取客户端单例
func GetHttpClient() *HttpClient {
	if client == nil {
		client = NewHttpClient(30 * time.Second)
	}
	return client
}

// Req 发送 HTTP 请求
func (c *HttpClient) Req(ctx context.Context, method, url string, headers http.Header, body interface{}) (map[string]interface{}, error) {
	resp, err := c.do(ctx, method, url, headers, body)
	if err != nil {
		return nil, fmt.Errorf("发送请求失败: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// 读取响应
	_resp, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应失败: %w", err)
	}

	// 检查响应状态码
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(_resp)}
	}

	// 反序列化响应体
	var respMap map[string]interface{}
	if err := json.Unmarshal(_resp, &respMap); err != nil {
		return nil, fmt.Errorf("反序列化响应失败: %w", err)
	}

	return respMap, nil
}

// do 实际执行请求
func (c *HttpClient) do(ctx context.Context, method, url string, headers http.Header, body interface{}) (*http.Response, error) {
	// 将 body 序列化为 JSON
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("请求体序列化失败: %w", err)
	}

	// 创建新的请求
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewBuffer(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}

	// 设置请求头
	for key, values := range headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	// 发送请求
	return c.Client.Do(req)
}

// StatusError 非2xx响应, 保留状态码供上层区分限流和其他失败
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d, response body: %s", e.Code, e.Body)
}
