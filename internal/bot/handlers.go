package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/example/espabot/internal/database"
	"github.com/example/espabot/internal/excel"
	"github.com/example/espabot/internal/game"
	"github.com/example/espabot/internal/session"
	"github.com/example/espabot/internal/spaced_repetition"
	"github.com/example/espabot/internal/wordsync"
	"github.com/example/espabot/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// handleStartCommand handles the /start and /help commands
func (b *Bot) handleStartCommand(message *tgbotapi.Message) {
	welcomeText := `Welcome to the Spanish vocabulary trainer! 🇪🇸

Available commands:
/review - Review cards that are due
/games - Matching, fill-in-the-blank, and conjugation games
/stats - Your learning statistics
/sync - Pull the latest word list
/import - Import vocabulary from an .xlsx or .csv file
/export - Export your vocabulary with progress
/hardwords - List words you flagged as hard
/menu - Show the main menu`

	msg := tgbotapi.NewMessage(message.Chat.ID, welcomeText)
	msg.ReplyMarkup = createKeyboard(b.MainMenuButtons())
	b.api.Send(msg)
}

// --- Review flow -----------------------------------------------------------

// handleReviewCommand starts a review sitting over the full vocabulary
func (b *Bot) handleReviewCommand(chatID int64) {
	words, err := b.words.ToArray()
	if err != nil {
		log.Printf("Error loading vocabulary: %v", err)
		b.sendText(chatID, "Could not load your vocabulary, please try again.")
		return
	}

	// Known words are retired from active study
	active := session.GenerateFlashcardsListWithExclusions(words, -1, nil).Words

	b.reviews[chatID] = &reviewSession{
		active:   active,
		shownIDs: make(map[int64]bool),
	}

	b.showNextDueCard(chatID)
}

// showNextDueCard asks the selector for the next due card and presents it
func (b *Bot) showNextDueCard(chatID int64) {
	review, ok := b.reviews[chatID]
	if !ok {
		b.sendText(chatID, "No review in progress. Use /review to start.")
		return
	}

	card, err := b.selector.SelectNext(review.active, review.lastShownID)
	if errors.Is(err, spaced_repetition.ErrNothingDue) {
		delete(b.reviews, chatID)
		text := "🎉 All caught up! Nothing is due for review."
		if review.shown > 0 {
			text = fmt.Sprintf("🎉 All caught up! You reviewed %d cards (%d correct).", review.shown, review.correct)
		}
		b.sendText(chatID, text)
		return
	}
	if err != nil {
		log.Printf("Error selecting next card: %v", err)
		b.sendText(chatID, "Could not pick the next card, please try again.")
		return
	}

	review.current = &card
	review.lastShownID = card.ID
	review.shownIDs[card.ID] = true

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("🇪🇸 *%s*\n\nBox %d · due now", card.Spanish, card.LeitnerBox))
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = createKeyboard([][]MenuButton{
		{{Text: "Show answer", CallbackData: "review_reveal"}},
		{{Text: "Stop reviewing", CallbackData: "review_stop"}},
	})
	b.api.Send(msg)
}

// handleReviewReveal shows the English side plus the answer buttons
func (b *Bot) handleReviewReveal(chatID int64) {
	review, ok := b.reviews[chatID]
	if !ok || review.current == nil {
		b.sendText(chatID, "No card to reveal. Use /review to start.")
		return
	}

	card := review.current
	text := fmt.Sprintf("🇪🇸 *%s*\n🇬🇧 *%s*", card.Spanish, card.English)
	if len(card.SynonymsEnglish) > 0 {
		text += fmt.Sprintf("\nAlso: %s", strings.Join(card.SynonymsEnglish, ", "))
	}
	if card.Notes != "" {
		text += fmt.Sprintf("\n\n_%s_", card.Notes)
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = createKeyboard([][]MenuButton{
		{
			{Text: "✅ I was right", CallbackData: "review_answer:1"},
			{Text: "❌ I was wrong", CallbackData: "review_answer:0"},
		},
		{
			{Text: "⭐ Toggle hard", CallbackData: "review_hard"},
			{Text: "🧠 Mark as known", CallbackData: "review_known"},
		},
	})
	b.api.Send(msg)
}

// handleReviewAnswer applies the Leitner transition and moves on
func (b *Bot) handleReviewAnswer(chatID int64, correct bool) {
	review, ok := b.reviews[chatID]
	if !ok || review.current == nil {
		b.sendText(chatID, "No review in progress. Use /review to start.")
		return
	}

	updated, err := b.sched.ReviewAnswer(*review.current, correct)
	if err != nil {
		// Best-effort durability: the review continues on the in-memory state
		b.sendText(chatID, "⚠️ Could not save that review, but your session continues.")
	}

	review.shown++
	if correct {
		review.correct++
	}
	review.current = nil

	days := spaced_repetition.ScheduleDays[updated.LeitnerBox]
	when := "today"
	if days == 1 {
		when = "tomorrow"
	} else if days > 1 {
		when = fmt.Sprintf("in %d days", days)
	}
	b.sendText(chatID, fmt.Sprintf("Box %d · next review %s", updated.LeitnerBox, when))

	b.showNextDueCard(chatID)
}

// handleReviewHardToggle flags or unflags the current card as hard
func (b *Bot) handleReviewHardToggle(chatID int64) {
	review, ok := b.reviews[chatID]
	if !ok || review.current == nil {
		return
	}

	flagged, err := b.hardWords.Toggle(review.current.Spanish, review.current.English)
	if err != nil {
		log.Printf("Error toggling hard word: %v", err)
		b.sendText(chatID, "Could not update the hard-word flag.")
		return
	}
	if flagged {
		b.sendText(chatID, fmt.Sprintf("⭐ %q flagged as hard.", review.current.Spanish))
	} else {
		b.sendText(chatID, fmt.Sprintf("%q unflagged.", review.current.Spanish))
	}
}

// handleReviewMarkKnown permanently retires the current card
func (b *Bot) handleReviewMarkKnown(chatID int64) {
	review, ok := b.reviews[chatID]
	if !ok || review.current == nil {
		return
	}

	known := spaced_repetition.MarkWordAsKnown(*review.current)
	if _, err := b.words.Put(&known); err != nil {
		log.Printf("Error marking word as known: %v", err)
		b.sendText(chatID, "Could not mark the word as known.")
		return
	}

	// Drop it from the active set so the selector won't offer it again
	var active []models.WordRecord
	for _, w := range review.active {
		if w.ID != known.ID {
			active = append(active, w)
		}
	}
	review.active = active
	review.current = nil

	b.sendText(chatID, fmt.Sprintf("🧠 %q marked as known and retired from study.", known.Spanish))
	b.showNextDueCard(chatID)
}

// --- Game flow -------------------------------------------------------------

// handleGameStart launches a game session for the chat
func (b *Bot) handleGameStart(chatID int64, gameType string) {
	mode, err := newGameMode(gameType)
	if err != nil {
		b.sendText(chatID, "Unknown game.")
		return
	}

	words, err := b.words.ToArray()
	if err != nil {
		log.Printf("Error loading vocabulary: %v", err)
		b.sendText(chatID, "Could not load your vocabulary, please try again.")
		return
	}

	candidates := session.GenerateDailyMix(words, b.config.GameListSize).Words

	gameSess, err := game.NewSession(mode, candidates, b.sched)
	if errors.Is(err, game.ErrNotEnoughWords) {
		b.sendText(chatID, "Not enough suitable words for this game yet. Add more vocabulary first!")
		return
	}
	if err != nil {
		log.Printf("Error starting %s game: %v", gameType, err)
		b.sendText(chatID, "Could not start the game, please try again.")
		return
	}

	// Cancel any previous game before replacing it
	if old, ok := b.games[chatID]; ok {
		old.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	b.games[chatID] = &gameSession{session: gameSess, cancel: cancel, ctx: ctx}

	b.askNextGameQuestion(chatID)
}

// askNextGameQuestion builds and presents the next question
func (b *Bot) askNextGameQuestion(chatID int64) {
	g, ok := b.games[chatID]
	if !ok {
		return
	}

	question, err := g.session.NextQuestion(g.ctx)
	if errors.Is(err, game.ErrQuestionExhausted) {
		b.sendText(chatID, "Couldn't build a question right now, try /games again in a moment.")
		return
	}
	if err != nil {
		if g.ctx.Err() == nil {
			log.Printf("Error building question: %v", err)
			b.sendText(chatID, "Something went wrong building the question.")
		}
		return
	}

	switch {
	case len(question.Options) > 0:
		var rows [][]MenuButton
		for i, option := range question.Options {
			rows = append(rows, []MenuButton{{Text: option, CallbackData: fmt.Sprintf("game_option:%d", i)}})
		}
		rows = append(rows, []MenuButton{{Text: "🚪 Exit game", CallbackData: "game_exit"}})
		msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("Which one means *%s*?", question.Prompt))
		msg.ParseMode = tgbotapi.ModeMarkdown
		msg.ReplyMarkup = createKeyboard(rows)
		b.api.Send(msg)
	case question.Sentence != "":
		msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("Fill in the blank (hint: %s):\n\n%s", question.Prompt, question.Sentence))
		msg.ReplyMarkup = createKeyboard([][]MenuButton{{{Text: "🚪 Exit game", CallbackData: "game_exit"}}})
		b.api.Send(msg)
	default:
		msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("Conjugate: *%s*", question.Prompt))
		msg.ParseMode = tgbotapi.ModeMarkdown
		msg.ReplyMarkup = createKeyboard([][]MenuButton{{{Text: "🚪 Exit game", CallbackData: "game_exit"}}})
		b.api.Send(msg)
	}
}

// handleGameTextAnswer handles a typed answer for fill-in-the-blank and
// conjugation questions
func (b *Bot) handleGameTextAnswer(chatID int64, answer string) {
	b.resolveGameAnswer(chatID, answer)
}

// handleGameOption handles a tapped matching option
func (b *Bot) handleGameOption(chatID int64, optionIdx int) {
	g, ok := b.games[chatID]
	if !ok {
		return
	}
	question := g.session.CurrentQuestion()
	if question == nil || optionIdx < 0 || optionIdx >= len(question.Options) {
		return
	}
	b.resolveGameAnswer(chatID, question.Options[optionIdx])
}

// resolveGameAnswer submits the answer, reports feedback, and advances
func (b *Bot) resolveGameAnswer(chatID int64, answer string) {
	g, ok := b.games[chatID]
	if !ok {
		return
	}

	feedback, err := g.session.SubmitAnswer(answer)
	if err != nil {
		return
	}

	var text string
	if feedback.Correct {
		text = "✅ Correct!"
	} else {
		text = fmt.Sprintf("❌ Not quite. The answer was: %s", feedback.CorrectAnswer)
	}
	if feedback.Update.HasLeveledUp {
		text += fmt.Sprintf("\n🎉 %q leveled up to *%s*!", feedback.Update.Word.Spanish, feedback.Update.NewLevel)
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	b.api.Send(msg)

	if g.session.Advance() == game.StateComplete {
		asked, correct := g.session.Score()
		g.cancel()
		delete(b.games, chatID)
		b.sendText(chatID, fmt.Sprintf("🏁 Game complete! %d/%d correct.", correct, asked))
		return
	}

	b.askNextGameQuestion(chatID)
}

// handleGameExit abandons the running game, cancelling in-flight lookups
func (b *Bot) handleGameExit(chatID int64) {
	g, ok := b.games[chatID]
	if !ok {
		return
	}
	asked, correct := g.session.Score()
	g.cancel()
	delete(b.games, chatID)
	b.sendText(chatID, fmt.Sprintf("Game over. %d/%d correct.", correct, asked))
}

// --- Stats, sync, export, import ------------------------------------------

// handleStatsCommand reports vocabulary and scheduling statistics
func (b *Bot) handleStatsCommand(chatID int64) {
	words, err := b.words.ToArray()
	if err != nil {
		log.Printf("Error loading vocabulary: %v", err)
		b.sendText(chatID, "Could not load your stats.")
		return
	}

	due, err := b.words.WhereDueDateBelowOrEqual(time.Now())
	if err != nil {
		log.Printf("Error counting due words: %v", err)
		b.sendText(chatID, "Could not load your stats.")
		return
	}

	levels := make(map[string]int)
	boxes := make(map[int]int)
	for _, w := range words {
		levels[w.Level()]++
		boxes[w.LeitnerBox]++
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 Your vocabulary: %d words, %d due now\n\n", len(words), len(due))
	sb.WriteString("Exposure levels:\n")
	for _, level := range []string{models.ExposureNew, models.ExposureLearning, models.ExposureFamiliar, models.ExposureMastered, models.ExposureKnown} {
		fmt.Fprintf(&sb, "  %s: %d\n", level, levels[level])
	}
	sb.WriteString("\nLeitner boxes:\n")
	for box := 0; box <= models.MaxLeitnerBox; box++ {
		fmt.Fprintf(&sb, "  box %d: %d\n", box, boxes[box])
	}

	b.sendText(chatID, sb.String())
}

// handleSyncCommand pulls the remote word list and replaces the local copy
// when its version changed
func (b *Bot) handleSyncCommand(chatID int64) {
	url := os.Getenv("WORD_LIST_URL")
	if url == "" {
		b.sendText(chatID, "No word list URL is configured.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	remote, err := b.bootstrap.FetchRemoteWordList(ctx, url)
	if err != nil {
		log.Printf("Error fetching word list: %v", err)
		b.sendText(chatID, "Could not fetch the word list, please try again later.")
		return
	}

	replaced, err := b.bootstrap.Sync(remote)
	if err != nil {
		log.Printf("Error syncing word list: %v", err)
		b.sendText(chatID, "Sync failed, your local vocabulary is unchanged.")
		return
	}

	if replaced {
		b.sendText(chatID, fmt.Sprintf("🔄 Vocabulary replaced with version %s (%d words).", remote.Version, len(remote.Words)))
	} else {
		b.sendText(chatID, "Already up to date.")
	}
}

// handleExportCommand sends the vocabulary with progress as a JSON document
func (b *Bot) handleExportCommand(chatID int64) {
	words, err := b.words.ToArray()
	if err != nil {
		log.Printf("Error loading vocabulary: %v", err)
		b.sendText(chatID, "Could not build the export.")
		return
	}

	version, err := b.meta.Get(database.MetaWordListVersion)
	if err != nil {
		log.Printf("Error reading word list version: %v", err)
	}

	export := wordsync.BuildExport(version, words, "telegram", time.Now())
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		log.Printf("Error encoding export: %v", err)
		b.sendText(chatID, "Could not build the export.")
		return
	}

	file := tgbotapi.FileBytes{
		Name:  fmt.Sprintf("vocabulary-%s.json", time.Now().Format("2006-01-02")),
		Bytes: data,
	}
	doc := tgbotapi.NewDocument(chatID, file)
	doc.Caption = fmt.Sprintf("%d words, %d with progress", export.ExportMetadata.TotalWords, export.ExportMetadata.WordsWithProgress)
	if _, err := b.api.Send(doc); err != nil {
		log.Printf("Error sending export: %v", err)
		b.sendText(chatID, "Could not send the export file.")
	}
}

// handleImportCommand asks for a vocabulary file
func (b *Bot) handleImportCommand(chatID int64) {
	b.awaitingFileUpload[chatID] = true
	b.sendText(chatID, "Send me an .xlsx or .csv file: spanish, english, category, notes, spanish synonyms, english synonyms, frequency rank.")
}

// processImportFile downloads the uploaded document and runs the importer
func (b *Bot) processImportFile(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	delete(b.awaitingFileUpload, chatID)

	doc := message.Document
	ext := strings.ToLower(filepath.Ext(doc.FileName))
	if ext != ".xlsx" && ext != ".csv" {
		b.sendText(chatID, "Only .xlsx and .csv files are supported.")
		return
	}

	url, err := b.api.GetFileDirectURL(doc.FileID)
	if err != nil {
		log.Printf("Error resolving file URL: %v", err)
		b.sendText(chatID, "Could not download the file, please try again.")
		return
	}

	path, err := downloadToTemp(url, ext)
	if err != nil {
		log.Printf("Error downloading import file: %v", err)
		b.sendText(chatID, "Could not download the file, please try again.")
		return
	}
	defer os.Remove(path)

	config := excel.DefaultImportConfig()
	config.FilePath = path

	result, err := excel.ImportWords(config)
	if err != nil {
		log.Printf("Error importing words: %v", err)
		b.sendText(chatID, "Import failed, please check the file format.")
		return
	}

	text := fmt.Sprintf("Imported %d rows: %d created, %d updated, %d awaiting translation, %d skipped.",
		result.TotalProcessed, result.Created, result.Updated, result.Incomplete, result.Skipped)
	if len(result.Errors) > 0 {
		text += fmt.Sprintf("\n%d rows had errors, first: %s", len(result.Errors), result.Errors[0])
	}
	b.sendText(chatID, text)
}

// downloadToTemp fetches a URL into a temporary file and returns its path
func downloadToTemp(url, ext string) (string, error) {
	resp, err := http.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	f, err := os.CreateTemp("", "espabot-import-*"+ext)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// handleHardWordsCommand lists the flagged pairs
func (b *Bot) handleHardWordsCommand(chatID int64) {
	hard, err := b.hardWords.GetAll()
	if err != nil {
		log.Printf("Error loading hard words: %v", err)
		b.sendText(chatID, "Could not load your hard words.")
		return
	}

	if len(hard) == 0 {
		b.sendText(chatID, "You haven't flagged any words as hard.")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "⭐ Hard words (%d):\n", len(hard))
	for _, w := range hard {
		fmt.Fprintf(&sb, "  %s — %s\n", w.Spanish, w.English)
	}
	b.sendText(chatID, sb.String())
}

// --- Callbacks -------------------------------------------------------------

// handleCallbackQuery dispatches inline keyboard presses
func (b *Bot) handleCallbackQuery(callback *tgbotapi.CallbackQuery) {
	// Acknowledge the press so the button stops spinning
	b.api.Request(tgbotapi.NewCallback(callback.ID, ""))

	chatID := callback.Message.Chat.ID
	data := callback.Data

	switch {
	case data == "start_review":
		b.handleReviewCommand(chatID)
	case data == "review_reveal":
		b.handleReviewReveal(chatID)
	case data == "review_stop":
		delete(b.reviews, chatID)
		b.sendText(chatID, "Review stopped. Come back soon!")
	case data == "review_hard":
		b.handleReviewHardToggle(chatID)
	case data == "review_known":
		b.handleReviewMarkKnown(chatID)
	case strings.HasPrefix(data, "review_answer:"):
		b.handleReviewAnswer(chatID, strings.TrimPrefix(data, "review_answer:") == "1")
	case data == "games_menu":
		b.showGamesMenu(chatID)
	case strings.HasPrefix(data, "game_start:"):
		b.handleGameStart(chatID, strings.TrimPrefix(data, "game_start:"))
	case strings.HasPrefix(data, "game_option:"):
		idx, err := strconv.Atoi(strings.TrimPrefix(data, "game_option:"))
		if err == nil {
			b.handleGameOption(chatID, idx)
		}
	case data == "game_exit":
		b.handleGameExit(chatID)
	case data == "show_stats":
		b.handleStatsCommand(chatID)
	default:
		log.Printf("Unknown callback data: %s", data)
	}
}

// sendText sends a plain text message
func (b *Bot) sendText(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}
