package telegram

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tokenwatch/pkg/errors"
	"tokenwatch/pkg/logger"
	"tokenwatch/pkg/telegram"
)

func testLogger() *logger.Logger {
	zl, _ := zap.NewDevelopment()
	return &logger.Logger{SugaredLogger: zl.Sugar()}
}

type mockBot struct {
	sendMessageFn func(chatID int64, text string) error
	answerFn      func(callbackQueryID, text string, showAlert bool) error
}

func (m *mockBot) Start(ctx context.Context) error          { return nil }
func (m *mockBot) Stop()                                    {}
func (m *mockBot) SetHandler(handler func(telegram.Update)) {}

func (m *mockBot) SendMessage(chatID int64, text string) error {
	if m.sendMessageFn != nil {
		return m.sendMessageFn(chatID, text)
	}
	return nil
}

func (m *mockBot) SendMessageWithKeyboard(chatID int64, text string, keyboard telegram.InlineKeyboardMarkup) error {
	return nil
}

func (m *mockBot) SendMessageWithOptions(chatID int64, text string, opts telegram.MessageOptions) (int, error) {
	return 1, nil
}

func (m *mockBot) EditMessage(chatID int64, messageID int, text string, keyboard *telegram.InlineKeyboardMarkup) error {
	return nil
}

func (m *mockBot) DeleteMessage(chatID int64, messageID int) error {
	return nil
}

func (m *mockBot) AnswerCallback(callbackQueryID, text string, showAlert bool) error {
	if m.answerFn != nil {
		return m.answerFn(callbackQueryID, text, showAlert)
	}
	return nil
}

type mockWatchService struct {
	onDetectFn  func(ctx context.Context, chatID int64, text string) error
	onRefreshFn func(ctx context.Context, chatID int64, callbackID, payload string) error
}

func (m *mockWatchService) OnDetect(ctx context.Context, chatID int64, text string) error {
	if m.onDetectFn != nil {
		return m.onDetectFn(ctx, chatID, text)
	}
	return nil
}

func (m *mockWatchService) OnRefresh(ctx context.Context, chatID int64, callbackID, payload string) error {
	if m.onRefreshFn != nil {
		return m.onRefreshFn(ctx, chatID, callbackID, payload)
	}
	return nil
}

type mockPriceFeed struct {
	solPriceFn func(ctx context.Context) (decimal.Decimal, error)
}

func (m *mockPriceFeed) SolPrice(ctx context.Context) (decimal.Decimal, error) {
	return m.solPriceFn(ctx)
}

func newMessageUpdate(chatID int64, text string) telegram.Update {
	msg := &telegram.Message{
		MessageID: 10,
		From:      &telegram.User{ID: 7, Username: "alice"},
		Chat:      &telegram.Chat{ID: chatID, Type: "group"},
		Text:      text,
	}
	msg.ParseCommand()
	return telegram.Update{UpdateID: 1, Message: msg}
}

func TestHandleUpdateRoutesTextToDetection(t *testing.T) {
	var gotChatID int64
	var gotText string
	watch := &mockWatchService{
		onDetectFn: func(_ context.Context, chatID int64, text string) error {
			gotChatID = chatID
			gotText = text
			return nil
		},
	}

	bot := &mockBot{}
	registry := telegram.NewCommandRegistry(bot, testLogger())
	h := NewHandler(bot, registry, watch, testLogger())

	h.HandleUpdate(newMessageUpdate(-100, "look at this one EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"))

	assert.Equal(t, int64(-100), gotChatID)
	assert.Contains(t, gotText, "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
}

func TestHandleUpdateRoutesCommandsToRegistry(t *testing.T) {
	detected := false
	watch := &mockWatchService{
		onDetectFn: func(context.Context, int64, string) error {
			detected = true
			return nil
		},
	}

	var reply string
	bot := &mockBot{
		sendMessageFn: func(_ int64, text string) error {
			reply = text
			return nil
		},
	}

	registry := telegram.NewCommandRegistry(bot, testLogger())
	RegisterCommands(registry, &mockPriceFeed{
		solPriceFn: func(context.Context) (decimal.Decimal, error) {
			return decimal.RequireFromString("142.5"), nil
		},
	}, testLogger())

	h := NewHandler(bot, registry, watch, testLogger())
	h.HandleUpdate(newMessageUpdate(-100, "/solana"))

	assert.False(t, detected, "commands must not go through address detection")
	assert.Contains(t, reply, "$142.50")
}

func TestHandleUpdateIgnoresBotMessages(t *testing.T) {
	watch := &mockWatchService{
		onDetectFn: func(context.Context, int64, string) error {
			t.Fatal("bot messages must not be processed")
			return nil
		},
	}

	bot := &mockBot{}
	h := NewHandler(bot, telegram.NewCommandRegistry(bot, testLogger()), watch, testLogger())

	update := newMessageUpdate(-100, "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	update.Message.From.IsBot = true
	h.HandleUpdate(update)
}

func TestHandleUpdateRoutesCallbackToRefresh(t *testing.T) {
	var gotChatID int64
	var gotCallbackID, gotPayload string
	watch := &mockWatchService{
		onRefreshFn: func(_ context.Context, chatID int64, callbackID, payload string) error {
			gotChatID = chatID
			gotCallbackID = callbackID
			gotPayload = payload
			return nil
		},
	}

	bot := &mockBot{}
	h := NewHandler(bot, telegram.NewCommandRegistry(bot, testLogger()), watch, testLogger())

	h.HandleUpdate(telegram.Update{
		UpdateID: 2,
		CallbackQuery: &telegram.CallbackQuery{
			ID:   "cb42",
			From: &telegram.User{ID: 7},
			Message: &telegram.Message{
				MessageID: 55,
				Chat:      &telegram.Chat{ID: -100, Type: "group"},
			},
			Data: "update_EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
		},
	})

	assert.Equal(t, int64(-100), gotChatID)
	assert.Equal(t, "cb42", gotCallbackID)
	assert.Equal(t, "update_EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", gotPayload)
}

func TestHandleUpdateAnswersOrphanCallback(t *testing.T) {
	answered := false
	bot := &mockBot{
		answerFn: func(callbackQueryID, _ string, _ bool) error {
			answered = true
			assert.Equal(t, "cb42", callbackQueryID)
			return nil
		},
	}

	watch := &mockWatchService{
		onRefreshFn: func(context.Context, int64, string, string) error {
			t.Fatal("callback without message context must not reach the engine")
			return nil
		},
	}

	h := NewHandler(bot, telegram.NewCommandRegistry(bot, testLogger()), watch, testLogger())
	h.HandleUpdate(telegram.Update{
		UpdateID:      3,
		CallbackQuery: &telegram.CallbackQuery{ID: "cb42", Data: "update_x"},
	})

	assert.True(t, answered)
}

func TestSolanaCommandReportsFeedFailure(t *testing.T) {
	var reply string
	bot := &mockBot{
		sendMessageFn: func(_ int64, text string) error {
			reply = text
			return nil
		},
	}

	registry := telegram.NewCommandRegistry(bot, testLogger())
	RegisterCommands(registry, &mockPriceFeed{
		solPriceFn: func(context.Context) (decimal.Decimal, error) {
			return decimal.Zero, errors.Wrap(errors.ErrProviderUnavailable, "status 429")
		},
	}, testLogger())

	require.NoError(t, registry.Handle(context.Background(), 7, -100, "solana", "", "/solana"))
	assert.Contains(t, reply, "Could not fetch")
}

func TestStartCommand(t *testing.T) {
	var reply string
	bot := &mockBot{
		sendMessageFn: func(_ int64, text string) error {
			reply = text
			return nil
		},
	}

	registry := telegram.NewCommandRegistry(bot, testLogger())
	RegisterCommands(registry, &mockPriceFeed{}, testLogger())

	require.NoError(t, registry.Handle(context.Background(), 7, 7, "start", "", "/start"))
	assert.Contains(t, reply, "contract address")
}
