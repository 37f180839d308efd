package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"mention_bot/internal/config"
	"mention_bot/internal/model"
	"mention_bot/internal/mutelist"
)

type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Scheduler controls the per-chat polling jobs.
type Scheduler interface {
	Start(ctx context.Context, chatID int64)
	Stop(chatID int64) bool
}

// Bot is the Telegram bot that handles user commands, mute toggles, and
// delivers mention notifications.
type Bot struct {
	api   telegramAPI
	mutes *mutelist.Store
	sched Scheduler
	cfg   *config.Config
	log   *slog.Logger
}

// New creates a Bot with the given Telegram token, mute-list, and config.
// The scheduler is attached separately because it needs the bot as its
// sender.
func New(token string, mutes *mutelist.Store, cfg *config.Config, log *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	return &Bot{
		api:   api,
		mutes: mutes,
		cfg:   cfg,
		log:   log,
	}, nil
}

// SetScheduler attaches the polling scheduler. Must be called before Run.
func (b *Bot) SetScheduler(sched Scheduler) {
	b.sched = sched
}

// Run starts the bot's long-polling loop, blocking until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update := <-updates:
			if update.CallbackQuery != nil {
				b.handleCallback(update.CallbackQuery)
				continue
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			if !b.cfg.IsUserAllowed(update.Message.From.ID) {
				b.reply(update.Message.Chat.ID, "Доступ запрещён.")
				continue
			}
			b.handleCommand(ctx, update.Message)
		}
	}
}

// SendPosts delivers one cycle's posts to the chat, oldest first. The
// accumulated list arrives newest-first (the API's typical order), so it is
// walked in reverse. Every message carries the mute toggle for its group.
func (b *Bot) SendPosts(chatID int64, posts []model.Post) {
	now := time.Now()
	for i := len(posts) - 1; i >= 0; i-- {
		msg := tgbotapi.NewMessage(chatID, FormatPost(posts[i], now))
		msg.ReplyMarkup = activeKeyboard()
		if _, err := b.api.Send(msg); err != nil {
			b.log.Error("send post", "chat_id", chatID, "post", posts[i].Key(), "error", err)
		}

		// Rate limit: ~20 messages/sec max for Telegram
		time.Sleep(50 * time.Millisecond)
	}
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send message", "chat_id", chatID, "error", err)
	}
}
