package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"

	"github.com/hoanglm/quizforge/internal/dto"
	"github.com/hoanglm/quizforge/internal/quiz"
	"github.com/hoanglm/quizforge/internal/service"
	"github.com/hoanglm/quizforge/internal/session"
)

type QuizController struct {
	quizSvc  service.QuizService
	sessions session.Store
}

func NewQuizController(quizSvc service.QuizService, sessions session.Store) *QuizController {
	return &QuizController{quizSvc: quizSvc, sessions: sessions}
}

// StartQuiz godoc
// @Summary Start a new quiz
// @Description Builds a fresh question batch, abandoning any quiz in progress. Count outside [1,10] is clamped.
// @Tags Quiz
// @Accept json
// @Produce json
// @Param request body dto.StartQuizRequest true "Question count and optional category"
// @Success 200 {object} dto.StartQuizResponse
// @Failure 401 {object} dto.ErrorResponse "Not logged in"
// @Failure 422 {object} dto.ErrorResponse "No questions for these parameters"
// @Failure 503 {object} dto.ErrorResponse "Question provider unavailable"
// @Router /quiz/start [post]
func (c *QuizController) StartQuiz(ctx *gin.Context) {
	var req dto.StartQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	requested := req.Count
	if requested < service.MinQuizSize {
		requested = service.MinQuizSize
	}
	if requested > service.MaxQuizSize {
		requested = service.MaxQuizSize
	}

	state := currentState(ctx)
	state, err := c.quizSvc.StartQuiz(ctx.Request.Context(), state, req.Count, req.Category)
	if err != nil {
		respondDomainError(ctx, err)
		return
	}
	if !c.saveState(ctx, state) {
		return
	}

	ctx.JSON(http.StatusOK, dto.StartQuizResponse{
		Requested: requested,
		Delivered: len(state.Quiz.Questions),
		Questions: redactQuestions(state.Quiz.Questions),
	})
}

// SubmitAnswer godoc
// @Summary Answer one question of the active quiz
// @Description Records the chosen option for a question position. Re-answering a position overwrites the previous choice.
// @Tags Quiz
// @Accept json
// @Produce json
// @Param request body dto.AnswerRequest true "Question position and chosen option label"
// @Success 200 {object} dto.AckResponse
// @Failure 400 {object} dto.ErrorResponse "Position out of range"
// @Failure 409 {object} dto.ErrorResponse "No active quiz"
// @Router /quiz/answer [post]
func (c *QuizController) SubmitAnswer(ctx *gin.Context) {
	var req dto.AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	state := currentState(ctx)
	state, err := c.quizSvc.SubmitAnswer(state, *req.Position, req.Label)
	if err != nil {
		respondDomainError(ctx, err)
		return
	}
	if !c.saveState(ctx, state) {
		return
	}
	ctx.JSON(http.StatusOK, dto.AckResponse{Status: "answered"})
}

// SubmitQuiz godoc
// @Summary Submit the active quiz for scoring
// @Tags Quiz
// @Produce json
// @Success 200 {object} dto.QuizResultResponse
// @Failure 409 {object} dto.ErrorResponse "No active quiz"
// @Router /quiz/submit [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	state := currentState(ctx)
	state, result, err := c.quizSvc.SubmitQuiz(state)
	if err != nil {
		respondDomainError(ctx, err)
		return
	}
	if !c.saveState(ctx, state) {
		return
	}
	ctx.JSON(http.StatusOK, toResultResponse(result))
}

// GetLastResult godoc
// @Summary Re-read the most recent quiz result
// @Tags Quiz
// @Produce json
// @Success 200 {object} dto.QuizResultResponse
// @Failure 404 {object} dto.ErrorResponse "Nothing submitted yet"
// @Router /quiz/result [get]
func (c *QuizController) GetLastResult(ctx *gin.Context) {
	result, err := c.quizSvc.LastResult(currentState(ctx))
	if err != nil {
		respondDomainError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toResultResponse(result))
}

// ResetQuiz godoc
// @Summary Clear quiz state for the caller
// @Description Drops the active quiz, the seen-questions ledger and the last result.
// @Tags Quiz
// @Produce json
// @Success 200 {object} dto.AckResponse
// @Router /quiz/reset [post]
func (c *QuizController) ResetQuiz(ctx *gin.Context) {
	state := c.quizSvc.Reset(currentState(ctx))
	if !c.saveState(ctx, state) {
		return
	}
	ctx.JSON(http.StatusOK, dto.AckResponse{Status: "reset"})
}

func (c *QuizController) saveState(ctx *gin.Context, state session.State) bool {
	if err := c.sessions.Set(ctx.Request.Context(), currentToken(ctx), state); err != nil {
		log.Error().Err(err).Uint("userID", state.UserID).Msg("Failed to save session state")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to save session state"})
		return false
	}
	return true
}

// redactQuestions strips everything the quiz-taker must not see: the correct
// label and the internal question identifier.
func redactQuestions(questions []quiz.Question) []dto.RedactedQuestionDTO {
	redacted := make([]dto.RedactedQuestionDTO, len(questions))
	for idx, question := range questions {
		options := make([]dto.OptionDTO, len(question.Options))
		for o, option := range question.Options {
			options[o] = dto.OptionDTO{Label: option.Label, Text: option.Text}
		}
		redacted[idx] = dto.RedactedQuestionDTO{
			Position:   idx,
			Prompt:     question.Prompt,
			Category:   question.Category,
			Difficulty: question.Difficulty,
			Options:    options,
		}
	}
	return redacted
}

func toResultResponse(result *quiz.Result) dto.QuizResultResponse {
	var resp dto.QuizResultResponse
	if err := copier.Copy(&resp, result); err != nil {
		log.Error().Err(err).Msg("Failed to copy quiz result to response DTO")
	}
	return resp
}
