// Package bot is the Telegram shell around the dialog engine: it classifies
// inbound updates into commands, free text and callbacks, and renders the
// engine's replies back through the Bot API.
package bot

import (
	"context"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ravel57/grosze-bot/internal/dialog"
)

type Handler struct {
	api    *tgbotapi.BotAPI
	engine *dialog.Engine
	log    *slog.Logger
}

func NewHandler(api *tgbotapi.BotAPI, engine *dialog.Engine, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{api: api, engine: engine, log: log}
}

func (h *Handler) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.CallbackQuery != nil {
		h.handleCallback(ctx, upd.CallbackQuery)
		return
	}
	if upd.Message == nil {
		return
	}

	msg := upd.Message
	// Только личка: долги — не групповое дело.
	if !msg.Chat.IsPrivate() {
		return
	}
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	var (
		replies []dialog.Reply
		err     error
	)
	if msg.IsCommand() {
		replies, err = h.engine.HandleCommand(ctx, msg.From.ID, msg.From.UserName, dialog.Command(msg.Command()))
	} else {
		replies, err = h.engine.HandleText(ctx, msg.From.ID, msg.From.UserName, text)
	}
	if err != nil {
		h.log.Error("dialog failed", "telegram_id", msg.From.ID, "err", err)
		h.send(msg.Chat.ID, dialog.Reply{Text: "Что-то сломалось, попробуй ещё раз"})
		return
	}
	for _, r := range replies {
		// Edits only make sense for callbacks; here everything is a message.
		h.send(msg.Chat.ID, r)
	}
}

func (h *Handler) handleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) {
	// Telegram ждёт ответ на каждый callback, иначе кнопка "висит".
	defer h.api.Request(tgbotapi.NewCallback(q.ID, ""))

	if q.Message == nil {
		return
	}
	chatID := q.Message.Chat.ID
	messageID := q.Message.MessageID

	replies, err := h.engine.HandleCallback(ctx, q.From.ID, q.From.UserName, q.Data)
	if err != nil {
		h.log.Error("callback failed", "telegram_id", q.From.ID, "data", q.Data, "err", err)
		h.send(chatID, dialog.Reply{Text: "Что-то сломалось, попробуй ещё раз"})
		return
	}
	for _, r := range replies {
		if r.Edit {
			h.edit(chatID, messageID, r)
		} else {
			h.send(chatID, r)
		}
	}
}

func (h *Handler) send(chatID int64, r dialog.Reply) {
	msg := tgbotapi.NewMessage(chatID, r.Text)
	if kb, ok := keyboard(r); ok {
		msg.ReplyMarkup = kb
	}
	if _, err := h.api.Send(msg); err != nil {
		h.log.Error("send failed", "chat_id", chatID, "err", err)
	}
}

func (h *Handler) edit(chatID int64, messageID int, r dialog.Reply) {
	var err error
	if kb, ok := keyboard(r); ok {
		_, err = h.api.Send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, r.Text, kb))
	} else {
		_, err = h.api.Send(tgbotapi.NewEditMessageText(chatID, messageID, r.Text))
	}
	if err != nil {
		h.log.Error("edit failed", "chat_id", chatID, "err", err)
	}
}

func keyboard(r dialog.Reply) (tgbotapi.InlineKeyboardMarkup, bool) {
	if len(r.Keyboard) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(r.Keyboard))
	for _, line := range r.Keyboard {
		row := make([]tgbotapi.InlineKeyboardButton, 0, len(line))
		for _, b := range line {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Data))
		}
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...), true
}
