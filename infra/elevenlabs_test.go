package infra

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSpeechToTextForwardsMultipart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/speech-to-text" {
			t.Errorf("非預期的路徑: %s", r.URL.Path)
		}
		if r.Header.Get("xi-api-key") != "test-key" {
			t.Error("缺少 xi-api-key 標頭")
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("讀取 file 欄位失敗: %v", err)
		}
		defer file.Close()
		if header.Filename != "voice.webm" {
			t.Errorf("檔名 = %s", header.Filename)
		}
		data, _ := io.ReadAll(file)
		if string(data) != "fake-audio-bytes" {
			t.Error("音檔內容未完整轉發")
		}
		w.Write([]byte(`{"text":"two lattes please"}`))
	}))
	defer server.Close()

	client := NewElevenLabsClient(ElevenLabsConfig{APIKey: "test-key", BaseURL: server.URL})
	text, err := client.SpeechToText(context.Background(), "voice.webm", strings.NewReader("fake-audio-bytes"))
	if err != nil {
		t.Fatalf("SpeechToText 失敗: %v", err)
	}
	if text != "two lattes please" {
		t.Errorf("逐字稿 = %q", text)
	}
}

func TestSpeechToTextUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":"invalid audio"}`))
	}))
	defer server.Close()

	client := NewElevenLabsClient(ElevenLabsConfig{APIKey: "test-key", BaseURL: server.URL})
	_, err := client.SpeechToText(context.Background(), "voice.webm", strings.NewReader("x"))
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("err = %v, 預期 UpstreamError", err)
	}
	if upstream.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("狀態碼 = %d, 應保留上游狀態碼", upstream.StatusCode)
	}
}

func TestTextToSpeechTruncatesLongText(t *testing.T) {
	var gotLen int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/v1/text-to-speech/") {
			t.Errorf("非預期的路徑: %s", r.URL.Path)
		}
		var payload struct {
			Text    string `json:"text"`
			ModelID string `json:"model_id"`
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Fatalf("解析請求失敗: %v", err)
		}
		gotLen = len([]rune(payload.Text))
		if payload.ModelID != "eleven_monolingual_v1" {
			t.Errorf("model_id = %s", payload.ModelID)
		}
		w.Write([]byte("mp3-bytes"))
	}))
	defer server.Close()

	client := NewElevenLabsClient(ElevenLabsConfig{APIKey: "test-key", BaseURL: server.URL})
	longText := strings.Repeat("a", 3000)
	audio, err := client.TextToSpeech(context.Background(), longText)
	if err != nil {
		t.Fatalf("TextToSpeech 失敗: %v", err)
	}
	if gotLen != maxTTSTextChars {
		t.Errorf("送出文字長度 = %d, 應截斷為 %d", gotLen, maxTTSTextChars)
	}
	if string(audio) != "mp3-bytes" {
		t.Error("應回傳原始音訊位元組")
	}
}

func TestTextToSpeechDefaultVoice(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := NewElevenLabsClient(ElevenLabsConfig{APIKey: "test-key", BaseURL: server.URL})
	if _, err := client.TextToSpeech(context.Background(), "hello"); err != nil {
		t.Fatalf("TextToSpeech 失敗: %v", err)
	}
	if gotPath != "/v1/text-to-speech/"+DefaultVoiceID {
		t.Errorf("路徑 = %s, 未設定語音時應使用預設 voice", gotPath)
	}
}

func TestSpeechMissingKey(t *testing.T) {
	client := NewElevenLabsClient(ElevenLabsConfig{})
	if _, err := client.SpeechToText(context.Background(), "a.webm", strings.NewReader("x")); !errors.Is(err, ErrMissingElevenLabsKey) {
		t.Errorf("STT err = %v", err)
	}
	if _, err := client.TextToSpeech(context.Background(), "hi"); !errors.Is(err, ErrMissingElevenLabsKey) {
		t.Errorf("TTS err = %v", err)
	}
}
