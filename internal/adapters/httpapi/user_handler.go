package httpapi

import (
	"net/http"

	"gavel-auction-service/internal/ports/inbound"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type UserHandler struct {
	users  inbound.UserService
	logger zerolog.Logger
}

type UserHandlerParams struct {
	Users  inbound.UserService
	Logger zerolog.Logger
}

func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		users:  params.Users,
		logger: params.Logger.With().Str("component", "user_handler").Logger(),
	}
}

type signupPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (h *UserHandler) Signup(c *gin.Context) {
	var payload signupPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		invalidPayload(c, err)
		return
	}

	created, err := h.users.Signup(c.Request.Context(), inbound.SignupRequest{
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.logger.Info().Str("user_id", created.ID.String()).Msg("user signed up")
	respondJSON(c, http.StatusCreated, created)
}
