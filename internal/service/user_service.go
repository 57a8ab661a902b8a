package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/workdeck/workdeck-api/internal/domain"
	"github.com/workdeck/workdeck-api/internal/platform/logger"
	"github.com/workdeck/workdeck-api/internal/service/auth"
	"github.com/workdeck/workdeck-api/internal/store"
)

// Mailer sends account-related mail. Implementations must be safe for
// concurrent use.
type Mailer interface {
	// SendWelcome delivers the post-registration welcome message.
	SendWelcome(user *domain.User) error
}

// RegisterParams carries the fields accepted at registration.
type RegisterParams struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// UserService manages account registration, authentication and deletion.
type UserService struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	verifier  auth.PasswordVerifier
	mailer    Mailer // nil disables outbound mail
	logger    *slog.Logger
}

// NewUserService creates a UserService.
// It returns an error if any of the required dependencies are nil.
func NewUserService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	mailer Mailer,
	log *slog.Logger,
) (*UserService, error) {
	if userStore == nil {
		return nil, domain.NewValidationError("userStore", "cannot be nil", domain.ErrValidation)
	}
	if hasher == nil {
		return nil, domain.NewValidationError("hasher", "cannot be nil", domain.ErrValidation)
	}
	if verifier == nil {
		return nil, domain.NewValidationError("verifier", "cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}

	return &UserService{
		userStore: userStore,
		hasher:    hasher,
		verifier:  verifier,
		mailer:    mailer,
		logger:    log.With(slog.String("component", "user_service")),
	}, nil
}

// Register creates a new account with a hashed credential and kicks off the
// welcome mail in the background.
func (s *UserService) Register(ctx context.Context, params RegisterParams) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(params.Username, params.Email, params.Password)
	if err != nil {
		return nil, err
	}
	user.FirstName = params.FirstName
	user.LastName = params.LastName

	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Info("user registered",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username))

	s.sendWelcome(user)

	return user, nil
}

// sendWelcome delivers the welcome mail without blocking the request. A
// delivery failure is logged, never surfaced to the caller.
func (s *UserService) sendWelcome(user *domain.User) {
	if s.mailer == nil {
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("welcome mail goroutine panicked",
					slog.Any("panic", r),
					slog.String("user_id", user.ID.String()))
			}
		}()

		if err := s.mailer.SendWelcome(user); err != nil {
			s.logger.Error("failed to send welcome mail",
				slog.String("error", err.Error()),
				slog.String("user_id", user.ID.String()))
		}
	}()
}

// Authenticate checks the username/password pair and returns the account.
// Unknown usernames and wrong passwords both yield ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("authentication failed: unknown username")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("authentication failed: password mismatch",
			slog.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetByID returns the account with the given ID.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userStore.GetByID(ctx, id)
}

// Delete removes an account. Staff only.
func (s *UserService) Delete(ctx context.Context, actorID, targetID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	actor, err := s.userStore.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.IsStaff {
		return ErrForbidden
	}

	if err := s.userStore.Delete(ctx, targetID); err != nil {
		return err
	}

	log.Info("user deleted",
		slog.String("user_id", targetID.String()),
		slog.String("actor_id", actorID.String()))
	return nil
}

// EnsureSuperuser creates the bootstrap staff account if no account with the
// given username or email exists yet. Called once at startup.
func (s *UserService) EnsureSuperuser(ctx context.Context, username, email, password string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if username == "" {
		return nil
	}

	if _, err := s.userStore.GetByUsername(ctx, username); err == nil {
		log.Debug("bootstrap user already exists", slog.String("username", username))
		return nil
	} else if !store.IsNotFoundError(err) {
		return err
	}

	if _, err := s.userStore.GetByEmail(ctx, email); err == nil {
		log.Debug("bootstrap email already in use", slog.String("email", email))
		return nil
	} else if !store.IsNotFoundError(err) {
		return err
	}

	user, err := domain.NewUser(username, email, password)
	if err != nil {
		return fmt.Errorf("invalid bootstrap user: %w", err)
	}
	user.IsStaff = true

	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		return fmt.Errorf("failed to hash bootstrap password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := s.userStore.Create(ctx, user); err != nil {
		// A concurrent boot may have won the race; duplicates are fine.
		if store.IsDuplicateError(err) {
			return nil
		}
		return err
	}

	log.Info("bootstrap staff user created", slog.String("username", username))
	return nil
}
