package bot

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"diet-calculator/config"
	"diet-calculator/internal/models"
	"diet-calculator/internal/planner"
	"diet-calculator/internal/report"
	"diet-calculator/pkg/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	maxMessageLen    = 4000
	generateTimeout  = 90 * time.Second
	keyboardRowWidth = 2
)

type Generator interface {
	Generate(ctx context.Context, p models.UserProfile) (planner.Result, error)
}

type PlanStore interface {
	SavePlan(ctx context.Context, sp *models.StoredPlan) error
}

type TelegramBot struct {
	bot           *tgbotapi.BotAPI
	generator     Generator
	store         PlanStore
	logger        *logger.Logger
	conversations map[int64]*Conversation
	stateMutex    sync.RWMutex
	wg            sync.WaitGroup
}

// NewTelegramBot authorizes against the Bot API. store may be nil.
func NewTelegramBot(cfg config.TelegramConfig, generator Generator, store PlanStore, logger *logger.Logger) (*TelegramBot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}
	bot.Debug = cfg.Debug

	logger.Infow("Authorized on Telegram", "username", bot.Self.UserName)

	return &TelegramBot{
		bot:           bot,
		generator:     generator,
		store:         store,
		logger:        logger,
		conversations: make(map[int64]*Conversation),
	}, nil
}

// Start begins receiving updates from Telegram via polling
func (t *TelegramBot) Start(ctx context.Context) error {
	t.logger.Info("Removing any existing webhook")
	_, err := t.bot.Request(tgbotapi.DeleteWebhookConfig{
		DropPendingUpdates: true,
	})
	if err != nil {
		return fmt.Errorf("failed to delete webhook: %w", err)
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := t.bot.GetUpdatesChan(updateConfig)
	t.logger.Info("Started receiving Telegram updates")

	go t.handleUpdates(ctx, updates)
	return nil
}

func (t *TelegramBot) handleUpdates(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil {
				continue
			}
			t.wg.Add(1)
			go func(message *tgbotapi.Message) {
				defer t.wg.Done()
				defer func() {
					if r := recover(); r != nil {
						t.logger.Errorw("Recovered from panic while processing update", "error", r)
					}
				}()

				if message.IsCommand() {
					t.handleCommand(message)
				} else {
					t.handleMessage(ctx, message)
				}
			}(update.Message)
		}
	}
}

func (t *TelegramBot) handleCommand(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	t.logger.Infow("Handling command", "command", message.Command(), "chat_id", chatID)

	switch message.Command() {
	case "start":
		conv := NewConversation()
		step := conv.Start()
		t.stateMutex.Lock()
		t.conversations[chatID] = conv
		t.stateMutex.Unlock()
		t.reply(chatID, step)

	case "cancel":
		t.stateMutex.Lock()
		delete(t.conversations, chatID)
		t.stateMutex.Unlock()
		t.send(chatID, "Cancelled. Send /start whenever you want a new plan.", nil)

	case "help":
		t.send(chatID, "I build personalized nutrition plans. Send /start to answer a few questions, /cancel to stop.", nil)

	default:
		t.send(chatID, "Unknown command. Send /start to begin.", nil)
	}
}

func (t *TelegramBot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	t.stateMutex.RLock()
	conv, exists := t.conversations[chatID]
	t.stateMutex.RUnlock()

	if !exists {
		t.send(chatID, "Please send /start to begin.", nil)
		return
	}

	t.stateMutex.Lock()
	step := conv.Handle(message.Text)
	state := conv.State()
	t.stateMutex.Unlock()

	t.logger.Debugw("Conversation step", "chat_id", chatID, "state", state)
	t.reply(chatID, step)

	if step.Done {
		t.deliverPlan(ctx, message, conv, step.Profile)
	}
}

// deliverPlan generates, stores and sends the plan, then forgets the conversation.
func (t *TelegramBot) deliverPlan(ctx context.Context, message *tgbotapi.Message, conv *Conversation, profile models.UserProfile) {
	chatID := message.Chat.ID
	defer t.forget(chatID, conv)

	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	res, err := t.generator.Generate(ctx, profile)
	if err != nil {
		t.logger.Errorw("Failed to generate diet plan", "error", err, "chat_id", chatID)
		t.send(chatID, "Sorry, I could not build a plan from those answers. Send /start to try again.", nil)
		return
	}

	sp := models.StoredPlan{
		SessionID: fmt.Sprintf("telegram:%d", chatID),
		Profile:   res.Profile,
		Targets:   res.Targets,
		Plan:      *res.Plan,
		CreatedAt: time.Now().UTC(),
	}
	if message.From != nil {
		sp.OwnerID = fmt.Sprintf("telegram:%d", message.From.ID)
	}
	if t.store != nil {
		if err := t.store.SavePlan(ctx, &sp); err != nil {
			t.logger.Errorw("Failed to save diet plan", "error", err, "chat_id", chatID)
		}
	}

	for _, chunk := range splitMessage(report.Text(sp), maxMessageLen) {
		t.send(chatID, chunk, nil)
	}
	t.logger.Infow("Diet plan delivered", "chat_id", chatID, "ai_generated", sp.Plan.AIGenerated)
}

// forget drops the chat's conversation unless /start replaced it in the meantime.
func (t *TelegramBot) forget(chatID int64, conv *Conversation) {
	t.stateMutex.Lock()
	defer t.stateMutex.Unlock()
	if t.conversations[chatID] == conv {
		delete(t.conversations, chatID)
	}
}

func (t *TelegramBot) reply(chatID int64, step Step) {
	t.send(chatID, step.Reply, step.Options)
}

func (t *TelegramBot) send(chatID int64, text string, options []string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if len(options) > 0 {
		msg.ReplyMarkup = keyboard(options)
	} else {
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	}
	if _, err := t.bot.Send(msg); err != nil {
		t.logger.Errorw("Failed to send message", "error", err, "chat_id", chatID)
	}
}

func keyboard(options []string) tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton
	for i := 0; i < len(options); i += keyboardRowWidth {
		end := i + keyboardRowWidth
		if end > len(options) {
			end = len(options)
		}
		var row []tgbotapi.KeyboardButton
		for _, o := range options[i:end] {
			row = append(row, tgbotapi.NewKeyboardButton(o))
		}
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(row...))
	}
	markup := tgbotapi.NewReplyKeyboard(rows...)
	markup.OneTimeKeyboard = true
	return markup
}

// splitMessage breaks text into chunks of at most limit bytes, preferring line breaks.
func splitMessage(text string, limit int) []string {
	var chunks []string
	for len(text) > limit {
		cut := strings.LastIndex(text[:limit], "\n")
		if cut <= 0 {
			cut = limit
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
		}
		chunks = append(chunks, text[:cut])
		text = strings.TrimPrefix(text[cut:], "\n")
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}

// Stop stops polling and waits for in-flight updates until ctx expires.
func (t *TelegramBot) Stop(ctx context.Context) error {
	t.bot.StopReceivingUpdates()

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}
