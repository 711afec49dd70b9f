package service

import (
	"context"
	"errors"
	"testing"

	"cafe-backend/model"

	"github.com/rs/zerolog"
)

type fakeCompleter struct {
	reply    string
	err      error
	received []model.ChatMessage
}

func (f *fakeCompleter) ChatComplete(_ context.Context, messages []model.ChatMessage) (string, error) {
	f.received = messages
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestChatEmptyMessages(t *testing.T) {
	cs := NewChatService(zerolog.Nop(), &fakeCompleter{}, nil)
	_, err := cs.Chat(context.Background(), nil)
	if !errors.Is(err, ErrEmptyMessages) {
		t.Errorf("err = %v, 預期 ErrEmptyMessages", err)
	}
}

func TestChatInvalidRole(t *testing.T) {
	cs := NewChatService(zerolog.Nop(), &fakeCompleter{}, nil)
	_, err := cs.Chat(context.Background(), []model.ChatMessage{
		{Role: "robot", Content: "hi"},
	})
	if !errors.Is(err, ErrInvalidChatRole) {
		t.Errorf("err = %v, 預期 ErrInvalidChatRole", err)
	}
}

func TestChatPrependsSystemPrompt(t *testing.T) {
	completer := &fakeCompleter{reply: "Hot or iced?"}
	cs := NewChatService(zerolog.Nop(), completer, nil)

	data, err := cs.Chat(context.Background(), []model.ChatMessage{
		{Role: model.ChatRoleUser, Content: "a latte please"},
	})
	if err != nil {
		t.Fatalf("Chat 失敗: %v", err)
	}

	if len(completer.received) != 2 {
		t.Fatalf("模型收到 %d 則訊息, 預期 2（系統提示詞＋使用者訊息）", len(completer.received))
	}
	if completer.received[0].Role != model.ChatRoleSystem || completer.received[0].Content != CashierSystemPrompt {
		t.Error("第一則訊息應為收銀員系統提示詞")
	}
	if data.Message != "Hot or iced?" {
		t.Errorf("message = %q", data.Message)
	}
	if data.OrderID != "" {
		t.Error("對話未結帳時不應有訂單ID")
	}
}

func TestChatCompleterError(t *testing.T) {
	upstreamErr := errors.New("model overloaded")
	cs := NewChatService(zerolog.Nop(), &fakeCompleter{err: upstreamErr}, nil)

	_, err := cs.Chat(context.Background(), []model.ChatMessage{
		{Role: model.ChatRoleUser, Content: "hi"},
	})
	if !errors.Is(err, upstreamErr) {
		t.Errorf("err = %v, 應原樣傳遞上游錯誤", err)
	}
}
