package service

import (
	"context"
	"errors"
	"io"
	"time"

	"cafe-backend/infra"
	"cafe-backend/metrics"

	"github.com/rs/zerolog"
)

// ErrEmptySpeechText 文字轉語音的輸入為空
var ErrEmptySpeechText = errors.New("text required")

// SpeechProvider 語音供應商介面，測試時可替換
type SpeechProvider interface {
	SpeechToText(ctx context.Context, filename string, audio io.Reader) (string, error)
	TextToSpeech(ctx context.Context, text string) ([]byte, error)
}

type SpeechService struct {
	logger   zerolog.Logger
	provider SpeechProvider
}

func NewSpeechService(logger zerolog.Logger, provider SpeechProvider) *SpeechService {
	return &SpeechService{
		logger:   logger.With().Str("module", "speech_service").Logger(),
		provider: provider,
	}
}

// Transcribe 將上傳的音檔轉發給語音供應商，回傳逐字稿
func (ss *SpeechService) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	startTime := time.Now()
	opStatus := metrics.StatusSuccess
	defer func() {
		metrics.RecordSpeechOperation(metrics.OperationTranscribe, opStatus, time.Since(startTime))
	}()

	ctx, span := infra.StartSpeechSpan(ctx, "transcribe", infra.AttrString("filename", filename))
	defer span.End()

	text, err := ss.provider.SpeechToText(ctx, filename, audio)
	if err != nil {
		opStatus = metrics.StatusError
		infra.RecordError(span, err, "語音轉文字失敗")
		ss.logger.Error().Err(err).Str("filename", filename).Msg("語音轉文字失敗 (Speech to text failed)")
		return "", err
	}

	infra.MarkSuccess(span, infra.AttrInt("text_length", len(text)))
	return text, nil
}

// Synthesize 將文字轉為語音，回傳 audio/mpeg 位元組
func (ss *SpeechService) Synthesize(ctx context.Context, text string) ([]byte, error) {
	startTime := time.Now()
	opStatus := metrics.StatusSuccess
	defer func() {
		metrics.RecordSpeechOperation(metrics.OperationSynthesize, opStatus, time.Since(startTime))
	}()

	if text == "" {
		opStatus = metrics.StatusError
		return nil, ErrEmptySpeechText
	}

	ctx, span := infra.StartSpeechSpan(ctx, "synthesize", infra.AttrInt("text_length", len(text)))
	defer span.End()

	audio, err := ss.provider.TextToSpeech(ctx, text)
	if err != nil {
		opStatus = metrics.StatusError
		infra.RecordError(span, err, "文字轉語音失敗")
		ss.logger.Error().Err(err).Msg("文字轉語音失敗 (Text to speech failed)")
		return nil, err
	}

	infra.MarkSuccess(span, infra.AttrInt("audio_bytes", len(audio)))
	return audio, nil
}
