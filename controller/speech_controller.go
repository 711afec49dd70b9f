package controller

import (
	"context"
	"errors"

	speechModels "cafe-backend/data-models/speech"
	"cafe-backend/infra"
	"cafe-backend/service"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog"
)

type SpeechController struct {
	logger        zerolog.Logger
	speechService *service.SpeechService
}

func NewSpeechController(logger zerolog.Logger, speechService *service.SpeechService) *SpeechController {
	return &SpeechController{
		logger:        logger.With().Str("module", "speech_controller").Logger(),
		speechService: speechService,
	}
}

// mapSpeechError 將語音服務錯誤轉為對應的 HTTP 錯誤；上游失敗保留原始狀態碼
func (c *SpeechController) mapSpeechError(err error) error {
	if errors.Is(err, infra.ErrMissingElevenLabsKey) {
		c.logger.Error().Msg("ELEVENLABS_API_KEY 未設定")
		return huma.Error500InternalServerError("ELEVENLABS_API_KEY not configured", err)
	}

	var upstream *infra.UpstreamError
	if errors.As(err, &upstream) {
		return huma.NewError(upstream.StatusCode, "語音服務上游錯誤", err)
	}

	return huma.Error502BadGateway("語音服務呼叫失敗", err)
}

func (c *SpeechController) RegisterRoutes(api huma.API) {
	// 語音轉文字：multipart 上傳音檔，轉發給語音供應商
	huma.Register(api, huma.Operation{
		OperationID: "speech-to-text",
		Method:      "POST",
		Path:        "/api/speech-to-text",
		Summary:     "語音轉文字",
		Tags:        []string{"speech"},
	}, func(ctx context.Context, input *speechModels.TranscribeInput) (*speechModels.TranscribeResponse, error) {
		formData := input.RawBody.Data()
		if !formData.File.IsSet {
			return nil, huma.Error400BadRequest("缺少音檔 file 欄位")
		}

		text, err := c.speechService.Transcribe(ctx, formData.File.Filename, formData.File)
		if err != nil {
			return nil, c.mapSpeechError(err)
		}

		return &speechModels.TranscribeResponse{Body: speechModels.TranscribeData{Text: text}}, nil
	})

	// 文字轉語音：回傳 audio/mpeg 位元組
	huma.Register(api, huma.Operation{
		OperationID: "text-to-speech",
		Method:      "POST",
		Path:        "/api/text-to-speech",
		Summary:     "文字轉語音",
		Tags:        []string{"speech"},
	}, func(ctx context.Context, input *speechModels.SpeakInput) (*speechModels.SpeakResponse, error) {
		audio, err := c.speechService.Synthesize(ctx, input.Body.Text)
		if err != nil {
			if errors.Is(err, service.ErrEmptySpeechText) {
				return nil, huma.Error400BadRequest("text required", err)
			}
			return nil, c.mapSpeechError(err)
		}

		return &speechModels.SpeakResponse{
			ContentType: "audio/mpeg",
			Body:        audio,
		}, nil
	})
}
