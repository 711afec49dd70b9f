package speech

import (
	"github.com/danielgtaylor/huma/v2"
)

type TranscribeFormData struct {
	File huma.FormFile `form:"file" contentType:"audio/webm,audio/mpeg,audio/wav,audio/mp4,application/octet-stream" required:"true"`
}

type TranscribeInput struct {
	RawBody huma.MultipartFormFiles[TranscribeFormData]
}

type TranscribeData struct {
	Text string `json:"text" doc:"語音逐字稿"`
}

type TranscribeResponse struct {
	Body TranscribeData `json:"body"`
}

type SpeakInput struct {
	Body struct {
		Text string `json:"text" minLength:"1" doc:"要朗讀的文字，超過 2500 字元將被截斷"`
	} `json:"body"`
}

// SpeakResponse 回傳原始 audio/mpeg 位元組
type SpeakResponse struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}
