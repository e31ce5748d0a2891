package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-trip-keeper/internal/config"
	"github.com/MKhiriev/go-trip-keeper/internal/crypto"
	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/internal/store"
	"github.com/MKhiriev/go-trip-keeper/internal/utils"
	"github.com/MKhiriev/go-trip-keeper/internal/validators"
	"github.com/MKhiriev/go-trip-keeper/models"
)

// minPasswordLength applies to sign-up and password changes.
const minPasswordLength = 8

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and JWT token
// lifecycle using a UserRepository for persistence and Argon2id for
// password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	hasher    crypto.PasswordHasher
	validator validators.Validator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, hasher crypto.PasswordHasher, validator validators.Validator, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		hasher:         hasher,
		validator:      validator,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// SignUp creates a new user account.
//
// The e-mail is normalised to lower case and validated, the password must
// have at least minPasswordLength characters. Returns the first session or:
//   - ErrInvalidDataProvided if the e-mail, name or password is invalid.
//   - store.ErrEmailAlreadyExists if the e-mail is taken.
func (a *authService) SignUp(ctx context.Context, user models.User) (models.AuthResponse, error) {
	log := logger.FromContext(ctx)

	user.Email = normalizeEmail(user.Email)
	if err := a.validator.Validate(ctx, user, validators.FieldEmail, validators.FieldName); err != nil {
		log.Err(err).Str("email", user.Email).Msg("invalid user data provided")
		return models.AuthResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if len(user.Password) < minPasswordLength {
		log.Error().Str("email", user.Email).Msg("password too short")
		return models.AuthResponse{}, fmt.Errorf("%w: password must have at least %d characters", ErrInvalidDataProvided, minPasswordLength)
	}

	hash, err := a.hasher.Hash(user.Password)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("error hashing password: %w", err)
	}
	user.PasswordHash = hash
	user.Password = ""

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("email", user.Email).Msg("user creation ended with error")
		return models.AuthResponse{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return a.session(registeredUser)
}

// SignIn authenticates an existing user.
//
// An unknown e-mail and a wrong password both yield ErrWrongPassword so
// that callers cannot probe for registered addresses.
func (a *authService) SignIn(ctx context.Context, user models.User) (models.AuthResponse, error) {
	log := logger.FromContext(ctx)

	email := normalizeEmail(user.Email)
	if email == "" || user.Password == "" {
		log.Error().Str("email", email).Msg("invalid user data provided")
		return models.AuthResponse{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Warn().Str("email", email).Msg("sign in for unknown email")
			return models.AuthResponse{}, ErrWrongPassword
		}
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.AuthResponse{}, fmt.Errorf("user search by email failed: %w", err)
	}

	ok, err := a.hasher.Verify(user.Password, foundUser.PasswordHash)
	if err != nil {
		log.Err(err).Int64("id", foundUser.UserID).Msg("stored password hash is unreadable")
		return models.AuthResponse{}, fmt.Errorf("error verifying password: %w", err)
	}
	if !ok {
		log.Warn().Int64("id", foundUser.UserID).Msg("wrong password")
		return models.AuthResponse{}, ErrWrongPassword
	}

	return a.session(foundUser)
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised
// to ErrTokenIsExpiredOrInvalid so that callers do not need to inspect
// low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

func (a *authService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}
	return user.Public(), nil
}

func (a *authService) UpdateUser(ctx context.Context, userID int64, update models.UserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	if update.IsEmpty() {
		return models.User{}, ErrInvalidDataProvided
	}
	if update.Email != nil {
		email := normalizeEmail(*update.Email)
		update.Email = &email
	}
	if err := a.validator.Validate(ctx, update); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("invalid user update")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Password != nil {
		hash, err := a.hasher.Hash(*update.Password)
		if err != nil {
			return models.User{}, fmt.Errorf("error hashing password: %w", err)
		}
		user.PasswordHash = hash
	}

	updated, err := a.userRepository.UpdateUser(ctx, user)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("user update failed")
		return models.User{}, fmt.Errorf("user update failed: %w", err)
	}
	return updated.Public(), nil
}

// session issues a signed JWT for user.
func (a *authService) session(user models.User) (models.AuthResponse, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return models.AuthResponse{
		AccessToken: token.SignedString,
		ExpiresAt:   token.Expiry(),
		User:        user.Public(),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
