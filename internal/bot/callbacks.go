package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Callback data of the two states of the inline mute toggle.
const (
	callbackDisable = "notifications_disable"
	callbackEnable  = "notifications_enable"
)

func activeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔔", callbackDisable),
		),
	)
}

func mutedKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔕", callbackEnable),
		),
	)
}

// handleCallback reacts to the mute toggle under a notification message.
// The keyboard is flipped to the opposite state first; the mute-list update
// follows and is not rolled back if persistence fails.
func (b *Bot) handleCallback(cb *tgbotapi.CallbackQuery) {
	callback := tgbotapi.NewCallback(cb.ID, "")
	if _, err := b.api.Send(callback); err != nil {
		b.log.Error("send callback ack", "error", err)
	}

	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID

	b.log.Info("callback",
		"action", cb.Data,
		"chat_id", chatID,
		"user_id", cb.From.ID,
		"username", cb.From.UserName,
	)

	switch cb.Data {
	case callbackDisable:
		b.setKeyboard(chatID, cb.Message.MessageID, mutedKeyboard())

		groupID, err := ExtractGroupID(cb.Message.Text)
		if err != nil {
			b.log.Warn("extract group id", "chat_id", chatID, "error", err)
			return
		}
		if err := b.mutes.Mute(groupID); err != nil {
			b.log.Error("mute group", "group_id", groupID, "error", err)
			return
		}
		b.log.Info("group muted", "group_id", groupID)

	case callbackEnable:
		b.setKeyboard(chatID, cb.Message.MessageID, activeKeyboard())

		groupID, err := ExtractGroupID(cb.Message.Text)
		if err != nil {
			b.log.Warn("extract group id", "chat_id", chatID, "error", err)
			return
		}
		if err := b.mutes.Unmute(groupID); err != nil {
			b.log.Error("unmute group", "group_id", groupID, "error", err)
			return
		}
		b.log.Info("group unmuted", "group_id", groupID)
	}
}

func (b *Bot) setKeyboard(chatID int64, messageID int, kb tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, kb)
	if _, err := b.api.Send(edit); err != nil {
		b.log.Error("edit reply markup", "chat_id", chatID, "message_id", messageID, "error", err)
	}
}
