package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/hoanglm/quizforge/internal/dto"
	"github.com/hoanglm/quizforge/internal/quiz"
	"github.com/hoanglm/quizforge/internal/service"
	"github.com/hoanglm/quizforge/internal/session"
)

// SessionCookie is the cookie carrying the opaque session token.
const SessionCookie = "quiz_session"

const (
	ctxKeyState = "session_state"
	ctxKeyToken = "session_token"
)

// SessionRequired resolves the caller's session token into a session.State
// and aborts with 401 when the caller is not identified.
func SessionRequired(store session.Store) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie(SessionCookie)
		if err != nil || token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Not logged in"})
			return
		}

		state, ok, err := store.Get(ctx.Request.Context(), token)
		if err != nil {
			log.Error().Err(err).Msg("Session store lookup failed")
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Session lookup failed"})
			return
		}
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Session expired or unknown"})
			return
		}

		ctx.Set(ctxKeyState, state)
		ctx.Set(ctxKeyToken, token)
		ctx.Next()
	}
}

func currentState(ctx *gin.Context) session.State {
	return ctx.MustGet(ctxKeyState).(session.State)
}

func currentToken(ctx *gin.Context) string {
	return ctx.MustGet(ctxKeyToken).(string)
}

// respondDomainError maps the error taxonomy onto HTTP statuses. Every
// failure body is a structured dto.ErrorResponse, never a bare fault.
func respondDomainError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, quiz.ErrInvalidIndex):
		status = http.StatusBadRequest
	case errors.Is(err, quiz.ErrNoResult):
		status = http.StatusNotFound
	case errors.Is(err, quiz.ErrNoActiveSession), errors.Is(err, service.ErrUsernameTaken):
		status = http.StatusConflict
	case errors.Is(err, quiz.ErrProviderNoResults):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, quiz.ErrProviderUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	}
	ctx.JSON(status, dto.ErrorResponse{Message: err.Error()})
}
