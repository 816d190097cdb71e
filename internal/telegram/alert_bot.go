// Package telegram pushes grievance escalations to the responsible
// authority's Telegram chat. The bot is just another feed subscriber:
// escalations arrive through the same hub channel the websocket watchers
// use.
package telegram

import (
	"fmt"
	"log"

	"gramalert/backend/internal/config"
	"gramalert/backend/internal/feedhub"
	"gramalert/backend/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// AlertBot implements the feedhub.Client interface over the Telegram Bot
// API. It filters the feed down to newly overdue grievances and notifies
// the configured chat once per grievance.
type AlertBot struct {
	BotAPI *tgbotapi.BotAPI
	ChatID int64
	Hub    *feedhub.ManagerService
	Send   chan models.GrievanceSnapshot
}

// NewAlertBot authorizes the bot and prepares its feed subscription. The
// caller still has to register it on the hub and call Run.
func NewAlertBot(token string, chatID int64, hub *feedhub.ManagerService) (*AlertBot, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = false
	log.Printf("✅ Authorized on account %s", bot.Self.UserName)

	return &AlertBot{
		BotAPI: bot,
		ChatID: chatID,
		Hub:    hub,
		Send:   make(chan models.GrievanceSnapshot, 64),
	}, nil
}

func (b *AlertBot) GetID() string { return "telegram-alert-bot" }
func (b *AlertBot) GetSendChannel() chan<- models.GrievanceSnapshot {
	return b.Send
}

// Run starts the write pump. There is no read pump: the authority chat is
// notify-only.
func (b *AlertBot) Run() {
	go b.writePump()
}

// Close closes the Send channel, stopping the write pump.
func (b *AlertBot) Close() {
	close(b.Send)
}

// writePump listens on the Send channel and relays qualifying snapshots to
// Telegram. Send failures are logged and dropped; the feed must never back
// up behind a Telegram outage.
func (b *AlertBot) writePump() {
	alerted := make(map[string]bool)

	for snapshot := range b.Send {
		if !shouldAlert(snapshot, alerted) {
			continue
		}
		alerted[snapshot.ID] = true

		msg := tgbotapi.NewMessage(b.ChatID, formatAlert(snapshot))
		if _, err := b.BotAPI.Send(msg); err != nil {
			log.Printf("ERROR: Failed to send Telegram alert for grievance %s: %v", snapshot.ID, err)
		}
	}
}

// shouldAlert reports whether the snapshot is a fresh, unresolved
// escalation this bot has not alerted on yet.
func shouldAlert(snapshot models.GrievanceSnapshot, alerted map[string]bool) bool {
	if !snapshot.IsOverdue || snapshot.Status == config.ResolvedStatus {
		return false
	}
	return !alerted[snapshot.ID]
}

func formatAlert(snapshot models.GrievanceSnapshot) string {
	return fmt.Sprintf(
		"⚠️ Grievance overdue: %s\nCategory: %s\nPriority: %s\nSubmitted by: %s",
		snapshot.Title, snapshot.Category, snapshot.Priority, snapshot.SubmittedBy,
	)
}
