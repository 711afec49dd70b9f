package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const (
	defaultElevenLabsBaseURL = "https://api.elevenlabs.io"
	// DefaultVoiceID Rachel
	DefaultVoiceID  = "21m00Tcm4TlvDq8ikWAM"
	ttsModelID      = "eleven_monolingual_v1"
	maxTTSTextChars = 2500
)

// ErrMissingElevenLabsKey API 金鑰未設定，呼叫端應回 500（設定缺失）
var ErrMissingElevenLabsKey = errors.New("ELEVENLABS_API_KEY not configured")

// UpstreamError 上游語音 API 的失敗，保留原始狀態碼供呼叫端 bubble
type UpstreamError struct {
	StatusCode int
	Detail     string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("elevenlabs api: status %d: %s", e.StatusCode, e.Detail)
}

type ElevenLabsConfig struct {
	APIKey  string
	VoiceID string
	BaseURL string // 測試用，空值時使用官方端點
}

// ElevenLabsClient 語音轉文字 / 文字轉語音客戶端
type ElevenLabsClient struct {
	apiKey     string
	voiceID    string
	baseURL    string
	httpClient *http.Client
}

func NewElevenLabsClient(config ElevenLabsConfig) *ElevenLabsClient {
	voiceID := config.VoiceID
	if voiceID == "" {
		voiceID = DefaultVoiceID
	}
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultElevenLabsBaseURL
	}
	return &ElevenLabsClient{
		apiKey:     config.APIKey,
		voiceID:    voiceID,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// SpeechToText 將音檔轉發到 STT API，回傳逐字稿
func (c *ElevenLabsClient) SpeechToText(ctx context.Context, filename string, audio io.Reader) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingElevenLabsKey
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/speech-to-text", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Detail: string(raw)}
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", fmt.Errorf("elevenlabs stt: unexpected response: %w", err)
	}

	return result.Text, nil
}

// TextToSpeech 將文字（截斷到 2500 字元）轉成語音，回傳 audio/mpeg 位元組
func (c *ElevenLabsClient) TextToSpeech(ctx context.Context, text string) ([]byte, error) {
	if c.apiKey == "" {
		return nil, ErrMissingElevenLabsKey
	}

	if runes := []rune(text); len(runes) > maxTTSTextChars {
		text = string(runes[:maxTTSTextChars])
	}

	payload := map[string]string{
		"text":     text,
		"model_id": ttsModelID,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", c.baseURL, c.voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Detail: string(raw)}
	}

	return raw, nil
}
