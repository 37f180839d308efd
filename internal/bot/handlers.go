package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	cmd := msg.Command()
	args := strings.TrimSpace(msg.CommandArguments())
	chatID := msg.Chat.ID

	b.log.Debug("command", "cmd", cmd, "args", args, "chat_id", chatID)

	switch cmd {
	case "start":
		b.handleStart(ctx, chatID)
	case "stop":
		b.handleStop(chatID)
	case "muted":
		b.handleMuted(chatID)
	case "unmute":
		b.handleUnmute(chatID, args)
	case "help":
		b.handleHelp(chatID)
	default:
		b.reply(chatID, "Неизвестная команда. /help — список команд.")
	}
}

// handleStart (re)starts the polling schedule for the issuing chat. The
// passed context is the bot's run context, so the schedule outlives the
// update that started it.
func (b *Bot) handleStart(ctx context.Context, chatID int64) {
	b.sched.Start(ctx, chatID)
	b.reply(chatID, fmt.Sprintf(
		"Мониторинг запущен.\nКлючевые слова: %s\nИнтервал проверки: %d сек.",
		strings.Join(b.cfg.SearchKeys, ", "),
		int(b.cfg.PollInterval.Seconds()),
	))
}

func (b *Bot) handleStop(chatID int64) {
	if b.sched.Stop(chatID) {
		b.reply(chatID, "Мониторинг остановлен.")
		return
	}
	b.reply(chatID, "Мониторинг не был запущен.")
}

func (b *Bot) handleMuted(chatID int64) {
	muted := b.mutes.Muted()
	if len(muted) == 0 {
		b.reply(chatID, "Заглушённых групп нет.")
		return
	}

	var sb strings.Builder
	sb.WriteString("Заглушённые группы:\n")
	for _, id := range muted {
		fmt.Fprintf(&sb, "https://vk.com/public%s\n", id)
	}
	sb.WriteString("\n/unmute <id> — включить уведомления группы.")
	b.reply(chatID, sb.String())
}

func (b *Bot) handleUnmute(chatID int64, args string) {
	groupID := strings.TrimSpace(args)
	if groupID == "" || !isDigits(groupID) {
		b.reply(chatID, "Использование: /unmute <id группы>")
		return
	}

	if !b.mutes.Contains(groupID) {
		b.reply(chatID, fmt.Sprintf("Группа %s не заглушена.", groupID))
		return
	}

	if err := b.mutes.Unmute(groupID); err != nil {
		b.log.Error("unmute group", "group_id", groupID, "error", err)
		b.reply(chatID, "Не удалось сохранить список групп.")
		return
	}
	b.reply(chatID, fmt.Sprintf("Уведомления группы %s включены.", groupID))
}

func (b *Bot) handleHelp(chatID int64) {
	b.reply(chatID, `Бот следит за упоминаниями ключевых слов во ВКонтакте и присылает новые посты.

/start — запустить (или перезапустить) мониторинг в этом чате
/stop — остановить мониторинг
/muted — список заглушённых групп
/unmute <id> — включить уведомления группы
/help — эта справка

Кнопка 🔔 под постом заглушает его группу, 🔕 — включает обратно.`)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
