package app

import (
	"context"

	"gavel-auction-service/internal/domain/user"
	apperrors "gavel-auction-service/internal/errors"
	"gavel-auction-service/internal/ports/inbound"
	"gavel-auction-service/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// UserService implements account registration
type UserService struct {
	userRepo outbound.UserRepository
	logger   zerolog.Logger
}

type UserServiceParams struct {
	UserRepo outbound.UserRepository
	Logger   zerolog.Logger
}

// NewUserService creates a new user service
func NewUserService(params UserServiceParams) *UserService {
	return &UserService{
		userRepo: params.UserRepo,
		logger:   params.Logger.With().Str("component", "user_service").Logger(),
	}
}

// Signup registers a new account. The password is stored only as a bcrypt
// hash and the entity never serializes it.
func (service *UserService) Signup(ctx context.Context, req inbound.SignupRequest) (*user.User, error) {
	service.logger.Info().Str("email", req.Email).Msg("Attempting signup")

	_, err := service.userRepo.GetByEmail(ctx, req.Email)
	if err == nil {
		service.logger.Warn().Str("email", req.Email).Msg("Email already registered")
		return nil, apperrors.NewBadRequestError("EMAIL_TAKEN", "email is already registered")
	}
	if !apperrors.IsKind(err, apperrors.KindNotFound) {
		return nil, apperrors.Classify(err, "something went wrong while checking email availability")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Classify(err, "something went wrong while hashing the password")
	}

	newUser := &user.User{
		ID:       uuid.New(),
		Email:    req.Email,
		Password: string(hash),
	}

	if err := service.userRepo.Create(ctx, newUser); err != nil {
		service.logger.Error().Err(err).Str("email", req.Email).Msg("Failed to create user")
		return nil, apperrors.Classify(err, "something went wrong while creating the user")
	}

	service.logger.Info().Str("user_id", newUser.ID.String()).Msg("User registered")
	return newUser, nil
}
