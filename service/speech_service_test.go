package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

type fakeSpeechProvider struct {
	transcript string
	audio      []byte
	err        error
	gotText    string
}

func (f *fakeSpeechProvider) SpeechToText(_ context.Context, _ string, audio io.Reader) (string, error) {
	_, _ = io.ReadAll(audio)
	return f.transcript, f.err
}

func (f *fakeSpeechProvider) TextToSpeech(_ context.Context, text string) ([]byte, error) {
	f.gotText = text
	return f.audio, f.err
}

func TestTranscribe(t *testing.T) {
	provider := &fakeSpeechProvider{transcript: "two lattes"}
	ss := NewSpeechService(zerolog.Nop(), provider)

	text, err := ss.Transcribe(context.Background(), "voice.webm", strings.NewReader("audio"))
	if err != nil {
		t.Fatalf("Transcribe 失敗: %v", err)
	}
	if text != "two lattes" {
		t.Errorf("逐字稿 = %q", text)
	}
}

func TestTranscribeProviderError(t *testing.T) {
	upstreamErr := errors.New("stt down")
	ss := NewSpeechService(zerolog.Nop(), &fakeSpeechProvider{err: upstreamErr})

	_, err := ss.Transcribe(context.Background(), "voice.webm", strings.NewReader("audio"))
	if !errors.Is(err, upstreamErr) {
		t.Errorf("err = %v, 應原樣傳遞上游錯誤", err)
	}
}

func TestSynthesizeEmptyText(t *testing.T) {
	ss := NewSpeechService(zerolog.Nop(), &fakeSpeechProvider{})
	_, err := ss.Synthesize(context.Background(), "")
	if !errors.Is(err, ErrEmptySpeechText) {
		t.Errorf("err = %v, 預期 ErrEmptySpeechText", err)
	}
}

func TestSynthesize(t *testing.T) {
	provider := &fakeSpeechProvider{audio: []byte("mp3")}
	ss := NewSpeechService(zerolog.Nop(), provider)

	audio, err := ss.Synthesize(context.Background(), "your order is ready")
	if err != nil {
		t.Fatalf("Synthesize 失敗: %v", err)
	}
	if string(audio) != "mp3" {
		t.Error("應回傳供應商的音訊位元組")
	}
	if provider.gotText != "your order is ready" {
		t.Errorf("供應商收到文字 = %q", provider.gotText)
	}
}
