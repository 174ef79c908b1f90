package entities

import "time"

// GameSession tracks one player's progress through a quiz.
// It is created when the player starts a game and discarded when they leave.
type GameSession struct {
	PlayerID        int64      // telegram chat or API client id
	Category        Category   // selected category, empty until chosen
	SelectedCountry string     // country picked from the pool
	Pool            []Country  // countries offered for selection
	Questions       []Question // current question set
	CurrentIndex    int        // index into Questions
	HasAnswered     bool       // whether the current question was answered
	Score           int        // correct answers so far
	Wrong           int        // incorrect answers so far
	Streak          int        // current run of correct answers
	BestStreak      int        // longest run of correct answers in this quiz
	IsComplete      bool       // set after the last question
	StartedAt       time.Time  // when the current quiz started
}

// NewGameSession creates a game with the given pool and no category.
func NewGameSession(playerID int64, pool []Country) *GameSession {
	return &GameSession{
		PlayerID: playerID,
		Pool:     pool,
	}
}

// ResetQuiz clears questions and progress but keeps category, pool and selection.
func (g *GameSession) ResetQuiz() {
	g.Questions = nil
	g.CurrentIndex = 0
	g.HasAnswered = false
	g.Score = 0
	g.Wrong = 0
	g.Streak = 0
	g.BestStreak = 0
	g.IsComplete = false
	g.StartedAt = time.Time{}
}

// Started reports whether a question set is in play.
func (g *GameSession) Started() bool {
	return len(g.Questions) > 0
}

// CurrentQuestion returns the question being answered, if any.
func (g *GameSession) CurrentQuestion() (Question, bool) {
	if g.CurrentIndex < 0 || g.CurrentIndex >= len(g.Questions) {
		return Question{}, false
	}
	return g.Questions[g.CurrentIndex], true
}

// IsLastQuestion reports whether the current question is the final one.
func (g *GameSession) IsLastQuestion() bool {
	return g.CurrentIndex == len(g.Questions)-1
}

// PoolCountry returns the pool entry with the given name.
func (g *GameSession) PoolCountry(name string) (Country, bool) {
	for _, c := range g.Pool {
		if c.Name == name {
			return c, true
		}
	}
	return Country{}, false
}

// RecordAnswer updates the tally for one answer.
func (g *GameSession) RecordAnswer(correct bool) {
	g.HasAnswered = true
	if !correct {
		g.Wrong++
		g.Streak = 0
		return
	}

	g.Score++
	g.Streak++
	if g.Streak > g.BestStreak {
		g.BestStreak = g.Streak
	}
}

// AnswerResult describes the outcome of answering a question.
type AnswerResult struct {
	Question      Question
	SelectedIndex int
	IsCorrect     bool
	Score         int
	Wrong         int
	Streak        int
	IsLast        bool
}
