package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"nutrilog/internal/repository"
	"nutrilog/internal/service"
)

const helpText = `🍽 <b>nutrilog</b>

/today — totals and entries for today
/start — subscribe this chat to the evening summary
/stop — unsubscribe`

// Bot pushes daily nutrition summaries to subscribed Telegram chats and
// answers a small set of query commands.
type Bot struct {
	api         *tgbotapi.BotAPI
	subscribers *repository.SubscriberRepository
	summarySvc  *service.SummaryService
	loc         *time.Location
}

func New(token string, subscribers *repository.SubscriberRepository, summarySvc *service.SummaryService, loc *time.Location) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Printf("[info] bot authorized on account %s", api.Self.UserName)

	return &Bot{
		api:         api,
		subscribers: subscribers,
		summarySvc:  summarySvc,
		loc:         loc,
	}, nil
}

// Start begins polling updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	log.Println("[info] start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		if update.Message == nil {
			continue
		}
		if update.Message.Chat == nil || !update.Message.Chat.IsPrivate() {
			continue
		}
		if err := b.handleMessage(ctx, update.Message); err != nil {
			log.Printf("handle message: %v", err)
		}
	}

	return nil
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	chatID := msg.Chat.ID

	switch strings.ToLower(msg.Command()) {
	case "start":
		created, err := b.subscribers.Subscribe(ctx, chatID)
		if err != nil {
			return err
		}
		text := "Already subscribed. You'll keep getting the evening summary."
		if created {
			text = "Subscribed! You'll get your daily summary every evening."
		}
		return b.send(chatID, text)
	case "stop":
		if err := b.subscribers.Unsubscribe(ctx, chatID); err != nil {
			return err
		}
		return b.send(chatID, "Unsubscribed. /start to turn the summary back on.")
	case "today":
		summary, err := b.summarySvc.DailySummary(ctx, service.Today(time.Now(), b.loc))
		if err != nil {
			return err
		}
		return b.send(chatID, summary)
	default:
		return b.send(chatID, helpText)
	}
}

// SendDailySummaries pushes today's summary to every subscriber. A
// failure for one chat is logged and does not stop the rest.
func (b *Bot) SendDailySummaries(ctx context.Context) error {
	subs, err := b.subscribers.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list subscribers: %w", err)
	}

	date := service.Today(time.Now(), b.loc)
	for _, sub := range subs {
		summary, err := b.summarySvc.DailySummary(ctx, date)
		if err != nil {
			return err
		}
		if err := b.send(sub.ChatID, summary); err != nil {
			log.Printf("send summary to %d: %v", sub.ChatID, err)
		}
	}
	return nil
}

func (b *Bot) send(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}
