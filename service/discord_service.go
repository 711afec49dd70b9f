package service

import (
	"fmt"
	"strings"

	"cafe-backend/model"
	"cafe-backend/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// DiscordService 店主通知頻道：新訂單與完成訂單推送到指定 Discord 頻道。
// 未設定 bot token 時服務停用，所有通知靜默略過。
type DiscordService struct {
	logger    zerolog.Logger
	session   *discordgo.Session
	channelID string
}

// NewDiscordService 建立並連線 Discord bot
func NewDiscordService(logger zerolog.Logger, botToken, channelID string) (*DiscordService, error) {
	dg, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	service := &DiscordService{
		logger:    logger.With().Str("service", "discord").Logger(),
		session:   dg,
		channelID: channelID,
	}

	dg.AddHandler(service.ready)
	dg.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsGuilds

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	logger.Info().Msg("Discord bot is now running")
	return service, nil
}

// ready 處理 Discord ready 事件
func (s *DiscordService) ready(_ *discordgo.Session, r *discordgo.Ready) {
	s.logger.Info().
		Str("username", r.User.Username).
		Str("user_id", r.User.ID).
		Int("guild_count", len(r.Guilds)).
		Msg("Discord bot ready")
}

// Close 關閉 Discord 連線
func (s *DiscordService) Close() {
	if s.session != nil {
		_ = s.session.Close()
	}
}

// SendMessage 發送訊息到指定頻道
func (s *DiscordService) SendMessage(channelID, message string) (*discordgo.Message, error) {
	return s.session.ChannelMessageSend(channelID, message)
}

// NotifyOrderEvent 依事件類型發送店主通知；只推播新訂單與完成訂單
func (s *DiscordService) NotifyOrderEvent(event *model.OrderEvent) {
	if s.channelID == "" {
		return
	}

	var message string
	switch {
	case event.Type == model.OrderEventCreated:
		message = formatNewOrderMessage(event.Order)
	case event.Type == model.OrderEventStatusChanged && event.NewStatus == model.OrderStatusCompleted:
		message = formatCompletedOrderMessage(event.Order)
	default:
		return
	}

	if message == "" {
		return
	}

	if _, err := s.SendMessage(s.channelID, message); err != nil {
		s.logger.Error().Err(err).
			Str("order_id", event.OrderID).
			Str("event_type", string(event.Type)).
			Msg("發送 Discord 通知失敗 (Failed to send Discord notification)")
		return
	}

	s.logger.Debug().
		Str("order_id", event.OrderID).
		Str("event_type", string(event.Type)).
		Msg("Discord 通知已發送")
}

// formatNewOrderMessage 新訂單通知訊息
func formatNewOrderMessage(order *model.Order) string {
	if order == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🧾 **New order #%s** — $%.2f\n", utils.ShortOrderID(order.HexID()), order.Total))
	for _, item := range order.Items {
		sb.WriteString(utils.FormatReceiptLine(item))
		sb.WriteString("\n")
	}
	if order.PriceVerified != nil && !*order.PriceVerified {
		sb.WriteString("⚠️ 金額與菜單重算結果不符，請人工確認\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// formatCompletedOrderMessage 完成訂單通知訊息
func formatCompletedOrderMessage(order *model.Order) string {
	if order == nil {
		return ""
	}
	return fmt.Sprintf("✅ **Order #%s completed** — $%.2f", utils.ShortOrderID(order.HexID()), order.Total)
}
