package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/example/espabot/internal/spaced_repetition"
	"github.com/example/espabot/pkg/models"
)

// State is the phase a game session is in
type State string

const (
	StateIdle            State = "idle"
	StateLoadingQuestion State = "loading_question"
	StateAwaitingAnswer  State = "awaiting_answer"
	StateShowingFeedback State = "showing_feedback"
	StateComplete        State = "game_complete"
)

// maxQuestionAttempts bounds how many candidate words a session tries before
// giving up on building a question (e.g. no usable example sentence found)
const maxQuestionAttempts = 15

// ErrNotEnoughWords means the vocabulary can't support the game mode.
// Surfaced as a transient message; the game does not start.
var ErrNotEnoughWords = errors.New("not enough words for this game mode")

// ErrQuestionExhausted means no question could be built within the retry
// budget. Retryable, not fatal.
var ErrQuestionExhausted = errors.New("could not build a question, try again")

// progressRecorder is the slice of the scheduler a session needs
type progressRecorder interface {
	RecordGameAnswer(word models.WordRecord, correct bool, gameType string) (spaced_repetition.ExposureUpdate, error)
}

// Feedback reports the outcome of one answered question
type Feedback struct {
	Correct       bool
	CorrectAnswer string
	Update        spaced_repetition.ExposureUpdate
}

// Session runs one sitting of a game mode:
// idle → loading_question → awaiting_answer → showing_feedback → next|complete.
// Endless modes cycle until the user exits; modes with a question limit
// complete after the fixed count.
type Session struct {
	mode     Mode
	recorder progressRecorder

	candidates []models.WordRecord
	queue      []models.WordRecord
	state      State
	current    *Question
	asked      int
	correct    int
	rnd        *rand.Rand
}

// NewSession filters the word list through the mode and prepares a shuffled
// question queue. Returns ErrNotEnoughWords when too few candidates qualify.
func NewSession(mode Mode, words []models.WordRecord, recorder progressRecorder) (*Session, error) {
	candidates := mode.FilterCandidates(words)
	if len(candidates) < mode.MinWords() {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrNotEnoughWords, mode.MinWords(), len(candidates))
	}

	s := &Session{
		mode:       mode,
		recorder:   recorder,
		candidates: candidates,
		state:      StateIdle,
		rnd:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	s.refillQueue()
	return s, nil
}

// State returns the current session phase
func (s *Session) State() State { return s.state }

// Score returns answered and correct counts
func (s *Session) Score() (asked, correct int) { return s.asked, s.correct }

// CurrentQuestion returns the question awaiting an answer, nil otherwise
func (s *Session) CurrentQuestion() *Question {
	if s.state != StateAwaitingAnswer {
		return nil
	}
	return s.current
}

func (s *Session) refillQueue() {
	s.queue = append([]models.WordRecord(nil), s.candidates...)
	s.rnd.Shuffle(len(s.queue), func(i, j int) {
		s.queue[i], s.queue[j] = s.queue[j], s.queue[i]
	})
}

// NextQuestion builds the next question, retrying across candidate words when
// generation fails (up to maxQuestionAttempts). The context cancels in-flight
// lookups when the user exits mid-fetch.
func (s *Session) NextQuestion(ctx context.Context) (*Question, error) {
	if s.state == StateComplete {
		return nil, fmt.Errorf("game is complete")
	}
	if s.state == StateAwaitingAnswer {
		return nil, fmt.Errorf("current question has not been answered")
	}
	s.state = StateLoadingQuestion

	for attempt := 0; attempt < maxQuestionAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			s.state = StateIdle
			return nil, err
		}

		if len(s.queue) == 0 {
			s.refillQueue()
		}
		word := s.queue[0]
		s.queue = s.queue[1:]

		question, err := s.mode.BuildQuestion(ctx, word, s.candidates)
		if err != nil {
			if ctx.Err() != nil {
				s.state = StateIdle
				return nil, ctx.Err()
			}
			continue
		}

		s.current = question
		s.state = StateAwaitingAnswer
		return question, nil
	}

	s.state = StateIdle
	return nil, ErrQuestionExhausted
}

// SubmitAnswer judges the answer, records the exposure transition, and moves
// the session to showing_feedback. A persistence failure is already logged by
// the recorder; the feedback is returned regardless.
func (s *Session) SubmitAnswer(answer string) (Feedback, error) {
	if s.state != StateAwaitingAnswer {
		return Feedback{}, fmt.Errorf("no question awaiting an answer")
	}

	correct := s.mode.CheckAnswer(s.current, answer)
	update, _ := s.recorder.RecordGameAnswer(s.current.Word, correct, s.mode.Type())

	s.asked++
	if correct {
		s.correct++
	}
	s.state = StateShowingFeedback

	return Feedback{
		Correct:       correct,
		CorrectAnswer: s.current.Answer,
		Update:        update,
	}, nil
}

// Advance leaves the feedback phase: to game_complete when the mode's
// question limit is reached, back to idle otherwise.
func (s *Session) Advance() State {
	if s.state != StateShowingFeedback {
		return s.state
	}
	if limit := s.mode.QuestionLimit(); limit > 0 && s.asked >= limit {
		s.state = StateComplete
	} else {
		s.state = StateIdle
		s.current = nil
	}
	return s.state
}
