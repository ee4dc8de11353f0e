package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type AckResponse struct {
	Status string `json:"status"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type OptionDTO struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// RedactedQuestionDTO is what the quiz-taker sees: prompt and options only.
// The correct label and internal question ID are never exposed here.
type RedactedQuestionDTO struct {
	Position   int         `json:"position"`
	Prompt     string      `json:"prompt"`
	Category   string      `json:"category"`
	Difficulty string      `json:"difficulty"`
	Options    []OptionDTO `json:"options"`
}

// StartQuizResponse reports the delivered batch; Delivered may be smaller
// than Requested when the provider runs short on supply.
type StartQuizResponse struct {
	Requested int                   `json:"requested"`
	Delivered int                   `json:"delivered"`
	Questions []RedactedQuestionDTO `json:"questions"`
}

type QuestionResultDTO struct {
	Position     int    `json:"position"`
	Prompt       string `json:"prompt"`
	ChosenLabel  string `json:"chosen_label,omitempty"`
	CorrectLabel string `json:"correct_label"`
	Correct      bool   `json:"correct"`
}

type QuizResultResponse struct {
	Score          int                 `json:"score"`
	CorrectCount   int                 `json:"correct_count"`
	IncorrectCount int                 `json:"incorrect_count"`
	TotalQuestions int                 `json:"total_questions"`
	ElapsedSeconds int                 `json:"elapsed_seconds"`
	SubmittedAt    time.Time           `json:"submitted_at"`
	Questions      []QuestionResultDTO `json:"questions"`
}

type AttemptDTO struct {
	ID             uint                `json:"id"`
	Score          int                 `json:"score"`
	CorrectCount   int                 `json:"correct_count"`
	IncorrectCount int                 `json:"incorrect_count"`
	TotalQuestions int                 `json:"total_questions"`
	ElapsedSeconds int                 `json:"elapsed_seconds"`
	SubmittedAt    time.Time           `json:"submitted_at"`
	Answers        []QuestionResultDTO `json:"answers,omitempty"`
}

type ProfileStatsResponse struct {
	BestScore    *int         `json:"best_score"`
	AverageScore *float64     `json:"average_score"`
	AttemptCount int          `json:"attempt_count"`
	History      []AttemptDTO `json:"history"`
}

type LeaderboardEntryDTO struct {
	Rank      int    `json:"rank"`
	Username  string `json:"username"`
	BestScore int    `json:"best_score"`
}

type LeaderboardResponse struct {
	Top             []LeaderboardEntryDTO `json:"top"`
	CurrentUserRank *int                  `json:"current_user_rank"`
}
