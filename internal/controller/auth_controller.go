package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/hoanglm/quizforge/internal/dto"
	"github.com/hoanglm/quizforge/internal/model"
	"github.com/hoanglm/quizforge/internal/service"
	"github.com/hoanglm/quizforge/internal/session"
)

type AuthController struct {
	accounts service.AccountService
	sessions session.Store
}

func NewAuthController(accounts service.AccountService, sessions session.Store) *AuthController {
	return &AuthController{accounts: accounts, sessions: sessions}
}

// Register godoc
// @Summary Register a new account
// @Description Creates an account and logs the new user in.
// @Tags Auth
// @Accept json
// @Produce json
// @Param registration body dto.RegisterRequest true "Account details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 409 {object} dto.ErrorResponse "Username already taken"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	user, err := c.accounts.Register(req.Username, req.Email, req.Password)
	if err != nil {
		respondDomainError(ctx, err)
		return
	}

	if err := c.openSession(ctx, user); err != nil {
		log.Error().Err(err).Uint("userID", user.ID).Msg("Failed to open session after registration")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Account created but login failed; please log in"})
		return
	}

	ctx.JSON(http.StatusCreated, dto.UserResponse{ID: user.ID, Username: user.Username, Email: user.Email})
}

// Login godoc
// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	user, err := c.accounts.Authenticate(req.Username, req.Password)
	if err != nil {
		respondDomainError(ctx, err)
		return
	}

	if err := c.openSession(ctx, user); err != nil {
		log.Error().Err(err).Uint("userID", user.ID).Msg("Failed to open session on login")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Login failed"})
		return
	}

	ctx.JSON(http.StatusOK, dto.UserResponse{ID: user.ID, Username: user.Username, Email: user.Email})
}

// Logout godoc
// @Summary Log out and destroy the session
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.AckResponse
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	if token, err := ctx.Cookie(SessionCookie); err == nil && token != "" {
		if err := c.sessions.Destroy(ctx.Request.Context(), token); err != nil {
			log.Warn().Err(err).Msg("Failed to destroy session state")
		}
	}
	ctx.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	ctx.JSON(http.StatusOK, dto.AckResponse{Status: "logged_out"})
}

// openSession issues a fresh token, stores a clean state for the user and
// sets the cookie. Any previous quiz state under an old token is abandoned.
func (c *AuthController) openSession(ctx *gin.Context, user *model.User) error {
	token := uuid.NewString()
	state := session.State{UserID: user.ID, Username: user.Username}
	if err := c.sessions.Set(ctx.Request.Context(), token, state); err != nil {
		return err
	}
	ctx.SetCookie(SessionCookie, token, 0, "/", "", false, true)
	return nil
}
