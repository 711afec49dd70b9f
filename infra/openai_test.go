package infra

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cafe-backend/model"
)

func fakeChatCompletionServer(t *testing.T, handler func(w http.ResponseWriter, req chatCompletionRequest)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("非預期的路徑: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		var req chatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("解析請求失敗: %v", err)
		}
		handler(w, req)
	}))
}

func writeChatReply(w http.ResponseWriter, content string) {
	resp := chatCompletionResponse{}
	resp.Choices = append(resp.Choices, struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}{})
	resp.Choices[0].Message.Content = content
	_ = json.NewEncoder(w).Encode(resp)
}

func TestChatCompleteSuccess(t *testing.T) {
	server := fakeChatCompletionServer(t, func(w http.ResponseWriter, req chatCompletionRequest) {
		if req.Model != "gpt-4o-mini" {
			t.Errorf("model = %s, 預期 gpt-4o-mini", req.Model)
		}
		if len(req.Messages) != 2 {
			t.Errorf("messages 數量 = %d, 預期 2", len(req.Messages))
		}
		writeChatReply(w, "  Sure! Hot or iced?  ")
	})
	defer server.Close()

	client := NewOpenAIClient(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL})
	content, err := client.ChatComplete(context.Background(), []model.ChatMessage{
		{Role: model.ChatRoleSystem, Content: "you are a cashier"},
		{Role: model.ChatRoleUser, Content: "a latte please"},
	})
	if err != nil {
		t.Fatalf("ChatComplete 失敗: %v", err)
	}
	if content != "Sure! Hot or iced?" {
		t.Errorf("回覆內容 = %q, 應 trim 前後空白", content)
	}
}

func TestChatCompleteFallbackModel(t *testing.T) {
	var calls []string
	server := fakeChatCompletionServer(t, func(w http.ResponseWriter, req chatCompletionRequest) {
		calls = append(calls, req.Model)
		if req.Model == "gpt-4o-mini" {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]string{"message": "model overloaded"}})
			return
		}
		writeChatReply(w, "fallback reply")
	})
	defer server.Close()

	client := NewOpenAIClient(OpenAIConfig{APIKey: "test-key", FallbackModel: "gpt-4o", BaseURL: server.URL})
	content, err := client.ChatComplete(context.Background(), []model.ChatMessage{{Role: model.ChatRoleUser, Content: "hi"}})
	if err != nil {
		t.Fatalf("備援模型應成功: %v", err)
	}
	if content != "fallback reply" {
		t.Errorf("content = %q", content)
	}
	if len(calls) != 2 || calls[0] != "gpt-4o-mini" || calls[1] != "gpt-4o" {
		t.Errorf("呼叫順序應為主模型再備援模型: %v", calls)
	}
}

func TestChatCompleteBothModelsFail(t *testing.T) {
	server := fakeChatCompletionServer(t, func(w http.ResponseWriter, req chatCompletionRequest) {
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]string{"message": "upstream down"}})
	})
	defer server.Close()

	client := NewOpenAIClient(OpenAIConfig{APIKey: "test-key", FallbackModel: "gpt-4o", BaseURL: server.URL})
	_, err := client.ChatComplete(context.Background(), []model.ChatMessage{{Role: model.ChatRoleUser, Content: "hi"}})
	if err == nil {
		t.Fatal("兩個模型都失敗時應回傳錯誤")
	}
}

func TestChatCompleteMissingKey(t *testing.T) {
	client := NewOpenAIClient(OpenAIConfig{})
	_, err := client.ChatComplete(context.Background(), []model.ChatMessage{{Role: model.ChatRoleUser, Content: "hi"}})
	if !errors.Is(err, ErrMissingOpenAIKey) {
		t.Errorf("err = %v, 預期 ErrMissingOpenAIKey", err)
	}
}
