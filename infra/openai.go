package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cafe-backend/model"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultChatModel     = "gpt-4o-mini"
	chatTemperature      = 0.6
)

// ErrMissingOpenAIKey API 金鑰未設定，呼叫端應回 500（設定缺失）而非 502
var ErrMissingOpenAIKey = errors.New("OPENAI_API_KEY not configured")

type OpenAIConfig struct {
	APIKey        string
	Model         string
	FallbackModel string
	BaseURL       string // 測試用，空值時使用官方端點
}

// OpenAIClient 聊天補全客戶端
type OpenAIClient struct {
	apiKey        string
	model         string
	fallbackModel string
	baseURL       string
	httpClient    *http.Client
}

func NewOpenAIClient(config OpenAIConfig) *OpenAIClient {
	model := config.Model
	if model == "" {
		model = defaultChatModel
	}
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	return &OpenAIClient{
		apiKey:        config.APIKey,
		model:         model,
		fallbackModel: config.FallbackModel,
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpClient:    &http.Client{Timeout: 60 * time.Second},
	}
}

type chatCompletionRequest struct {
	Model       string              `json:"model"`
	Messages    []model.ChatMessage `json:"messages"`
	Temperature float64             `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// ChatComplete 呼叫聊天補全模型一次；主模型失敗時用備援模型重試一次，仍失敗則回傳錯誤。
// 回傳值為 trim 過的第一個 choice 內容。
func (c *OpenAIClient) ChatComplete(ctx context.Context, messages []model.ChatMessage) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingOpenAIKey
	}

	content, err := c.complete(ctx, c.model, messages)
	if err == nil {
		return content, nil
	}

	if c.fallbackModel != "" && c.fallbackModel != c.model {
		fallbackContent, fallbackErr := c.complete(ctx, c.fallbackModel, messages)
		if fallbackErr == nil {
			return fallbackContent, nil
		}
		return "", fmt.Errorf("chat completion failed (model %s: %v; fallback %s: %w)", c.model, err, c.fallbackModel, fallbackErr)
	}

	return "", err
}

func (c *OpenAIClient) complete(ctx context.Context, chatModel string, messages []model.ChatMessage) (string, error) {
	payload := chatCompletionRequest{
		Model:       chatModel,
		Messages:    messages,
		Temperature: chatTemperature,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var result chatCompletionResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", fmt.Errorf("openai api: unexpected response (status %d)", resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		if result.Error != nil && result.Error.Message != "" {
			return "", fmt.Errorf("openai api: %s", result.Error.Message)
		}
		return "", fmt.Errorf("openai api: status %d", resp.StatusCode)
	}

	if len(result.Choices) == 0 {
		return "", errors.New("openai api: empty choices")
	}

	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}
