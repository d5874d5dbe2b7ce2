package bot

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/example/espabot/internal/database"
	"github.com/example/espabot/internal/game"
	"github.com/example/espabot/internal/scheduler"
	"github.com/example/espabot/internal/sentences"
	"github.com/example/espabot/internal/spaced_repetition"
	"github.com/example/espabot/internal/wordsync"
	"github.com/example/espabot/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MenuButton represents a button in the menu
type MenuButton struct {
	Text         string
	CallbackData string
}

// createKeyboard creates a keyboard from menu buttons
func createKeyboard(buttons [][]MenuButton) tgbotapi.InlineKeyboardMarkup {
	var keyboard [][]tgbotapi.InlineKeyboardButton
	for _, row := range buttons {
		var keyboardRow []tgbotapi.InlineKeyboardButton
		for _, button := range row {
			keyboardRow = append(keyboardRow, tgbotapi.NewInlineKeyboardButtonData(button.Text, button.CallbackData))
		}
		keyboard = append(keyboard, keyboardRow)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

// reviewSession tracks one chat's flashcard review sitting
type reviewSession struct {
	active      []models.WordRecord
	current     *models.WordRecord
	lastShownID int64
	shownIDs    map[int64]bool
	shown       int
	correct     int
}

// gameSession ties a running game to its cancel function so exiting the game
// aborts any in-flight sentence lookup
type gameSession struct {
	session *game.Session
	cancel  context.CancelFunc
	ctx     context.Context
}

// Bot represents the Telegram bot application
type Bot struct {
	api              *tgbotapi.BotAPI
	token            string
	reminderChatID   int64
	schedulerEnabled bool
	scheduler        *scheduler.Scheduler

	words      *database.WordRepository
	hardWords  *database.HardWordRepository
	meta       *database.MetaRepository
	sched      *spaced_repetition.Scheduler
	selector   *spaced_repetition.Selector
	bootstrap  *wordsync.Bootstrapper
	config     *BotConfig

	reviews            map[int64]*reviewSession
	games              map[int64]*gameSession
	awaitingFileUpload map[int64]bool
}

// New creates a new bot instance
func New() (*Bot, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}

	if database.DB == nil {
		return nil, fmt.Errorf("database connection is not established")
	}

	var reminderChatID int64
	if idStr := os.Getenv("REMINDER_CHAT_ID"); idStr != "" {
		id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64)
		if err != nil {
			log.Printf("Warning: Invalid REMINDER_CHAT_ID: %s", idStr)
		} else {
			reminderChatID = id
		}
	}

	words := database.NewWordRepository()
	bot := &Bot{
		token:              token,
		reminderChatID:     reminderChatID,
		schedulerEnabled:   os.Getenv("ENABLE_SCHEDULER") != "false",
		words:              words,
		hardWords:          database.NewHardWordRepository(),
		meta:               database.NewMetaRepository(),
		sched:              spaced_repetition.NewScheduler(words),
		selector:           spaced_repetition.NewSelector(words),
		bootstrap:          wordsync.NewBootstrapper(words, database.NewMetaRepository()),
		config:             DefaultConfig(),
		reviews:            make(map[int64]*reviewSession),
		games:              make(map[int64]*gameSession),
		awaitingFileUpload: make(map[int64]bool),
	}

	return bot, nil
}

// Start connects to Telegram and handles updates until the channel closes
func (b *Bot) Start() error {
	botAPI, err := tgbotapi.NewBotAPI(b.token)
	if err != nil {
		return fmt.Errorf("unable to create bot: %v", err)
	}

	b.api = botAPI
	log.Printf("Authorized on account %s", botAPI.Self.UserName)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := b.api.GetUpdatesChan(updateConfig)

	if b.schedulerEnabled {
		b.scheduler = scheduler.New(b)
		b.scheduler.Start()
		log.Println("Reminder scheduler started")
	}

	for update := range updates {
		go b.handleUpdate(update)
	}

	return nil
}

// Stop gracefully stops the bot
func (b *Bot) Stop() {
	for chatID, g := range b.games {
		g.cancel()
		delete(b.games, chatID)
	}
	if b.schedulerEnabled && b.scheduler != nil {
		b.scheduler.Stop()
	}
	log.Println("Bot stopped")
}

// SendDueReminder implements the scheduler.Notifier interface
func (b *Bot) SendDueReminder(count int) error {
	if b.reminderChatID == 0 {
		// Reminders are opt-in; without a chat configured there is nowhere
		// to send them.
		return nil
	}

	cardForm := "cards"
	if count == 1 {
		cardForm = "card"
	}

	msg := tgbotapi.NewMessage(b.reminderChatID, fmt.Sprintf("You have %d %s due for review! Use /review to start.", count, cardForm))
	_, err := b.api.Send(msg)

	if err != nil {
		log.Printf("Error sending due reminder: %v", err)
	} else {
		log.Printf("Sent due reminder for %d cards", count)
	}

	return err
}

// handleUpdate handles incoming updates from Telegram
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.Message != nil {
		if update.Message.IsCommand() {
			switch update.Message.Command() {
			case "start":
				b.handleStartCommand(update.Message)
			case "help":
				b.handleStartCommand(update.Message)
			case "menu":
				b.showMainMenu(update.Message.Chat.ID)
			case "review":
				b.handleReviewCommand(update.Message.Chat.ID)
			case "games":
				b.showGamesMenu(update.Message.Chat.ID)
			case "stats":
				b.handleStatsCommand(update.Message.Chat.ID)
			case "sync":
				b.handleSyncCommand(update.Message.Chat.ID)
			case "export":
				b.handleExportCommand(update.Message.Chat.ID)
			case "import":
				b.handleImportCommand(update.Message.Chat.ID)
			case "hardwords":
				b.handleHardWordsCommand(update.Message.Chat.ID)
			default:
				msg := tgbotapi.NewMessage(update.Message.Chat.ID, "Unknown command. Use /menu to show the main menu.")
				msg.ReplyMarkup = createKeyboard(b.MainMenuButtons())
				b.api.Send(msg)
			}
		} else if b.awaitingFileUpload[update.Message.Chat.ID] {
			if update.Message.Document != nil {
				b.processImportFile(update.Message)
			} else {
				msg := tgbotapi.NewMessage(update.Message.Chat.ID, "Please send an .xlsx or .csv file with your vocabulary.")
				b.api.Send(msg)
			}
		} else if g, ok := b.games[update.Message.Chat.ID]; ok && g.session.State() == game.StateAwaitingAnswer {
			b.handleGameTextAnswer(update.Message.Chat.ID, update.Message.Text)
		} else {
			msg := tgbotapi.NewMessage(update.Message.Chat.ID, "I don't understand. Use /menu to show the main menu.")
			msg.ReplyMarkup = createKeyboard(b.MainMenuButtons())
			b.api.Send(msg)
		}
	} else if update.CallbackQuery != nil {
		b.handleCallbackQuery(update.CallbackQuery)
	}
}

// showMainMenu shows the main menu
func (b *Bot) showMainMenu(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "What would you like to do?")
	msg.ReplyMarkup = createKeyboard(b.MainMenuButtons())
	b.api.Send(msg)
}

// MainMenuButtons returns the main menu layout
func (b *Bot) MainMenuButtons() [][]MenuButton {
	return [][]MenuButton{
		{{Text: "📖 Review due cards", CallbackData: "start_review"}},
		{{Text: "🎮 Games", CallbackData: "games_menu"}},
		{{Text: "📊 Stats", CallbackData: "show_stats"}},
	}
}

// showGamesMenu shows the game mode picker
func (b *Bot) showGamesMenu(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "Pick a game:")
	msg.ReplyMarkup = createKeyboard([][]MenuButton{
		{{Text: "🔀 Matching", CallbackData: "game_start:matching"}},
		{{Text: "✏️ Fill in the blank", CallbackData: "game_start:fill_in_blank"}},
		{{Text: "🔤 Conjugation", CallbackData: "game_start:conjugation"}},
	})
	b.api.Send(msg)
}

// newGameMode builds the mode implementation for a game type tag
func newGameMode(gameType string) (game.Mode, error) {
	switch gameType {
	case game.TypeMatching:
		return game.NewMatchingMode(), nil
	case game.TypeFillBlank:
		return game.NewFillBlankMode(sentences.New()), nil
	case game.TypeConjugation:
		return game.NewConjugationMode(), nil
	default:
		return nil, fmt.Errorf("unknown game type %q", gameType)
	}
}
