package infra

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		AppVersion string `yaml:"app_version"`
	} `yaml:"app"`
	MongoDB struct {
		URI      string `yaml:"uri"`
		Database string `yaml:"database"`
	} `yaml:"mongodb"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	RabbitMQ struct {
		URL string `yaml:"url"`
	} `yaml:"rabbitmq"`
	OpenAI struct {
		APIKey        string `yaml:"api_key"`        // 空值時改讀 OPENAI_API_KEY
		Model         string `yaml:"model"`          // 預設 gpt-4o-mini
		FallbackModel string `yaml:"fallback_model"` // 主模型失敗時重試一次
	} `yaml:"openai"`
	ElevenLabs struct {
		APIKey  string `yaml:"api_key"`  // 空值時改讀 ELEVENLABS_API_KEY
		VoiceID string `yaml:"voice_id"` // 空值時使用預設語音
	} `yaml:"elevenlabs"`
	Discord struct {
		BotToken  string `yaml:"bot_token"`
		ChannelID string `yaml:"channel_id"` // 新訂單通知頻道
	} `yaml:"discord"`
	BaseURL string `yaml:"base_url"`
}

var AppConfig Config

func LoadConfig() error {
	f, err := os.Open("config.yml")
	if err != nil {
		return err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	err = decoder.Decode(&AppConfig)
	if err != nil {
		return err
	}

	// 機敏金鑰允許用環境變數覆寫 config.yml
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		AppConfig.OpenAI.APIKey = key
	}
	if key := os.Getenv("ELEVENLABS_API_KEY"); key != "" {
		AppConfig.ElevenLabs.APIKey = key
	}
	if voice := os.Getenv("ELEVENLABS_VOICE_ID"); voice != "" {
		AppConfig.ElevenLabs.VoiceID = voice
	}
	return nil
}
