package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/clubnautico/club_service/internal/core/domain"
	"github.com/clubnautico/club_service/internal/core/ports"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// MailTimeout bounds a password reset email so a slow relay cannot stall the request.
const MailTimeout = 15 * time.Second

type UserService struct {
	userRepo      ports.UserRepository
	mailer        ports.Mailer
	logger        ports.LoggerPort
	validate      *validator.Validate
	publicBaseURL string
	mailTimeout   time.Duration
	now           func() time.Time
}

func NewUserService(
	userRepo ports.UserRepository,
	mailer ports.Mailer,
	logger ports.LoggerPort,
	validate *validator.Validate,
	publicBaseURL string,
) *UserService {
	return &UserService{
		userRepo:      userRepo,
		mailer:        mailer,
		logger:        logger,
		validate:      validate,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		mailTimeout:   MailTimeout,
		now:           time.Now,
	}
}

func (s *UserService) CreateUser(ctx context.Context, in domain.UserInput) (*domain.User, error) {
	if in.Password == nil || len(*in.Password) < domain.MinPasswordLength {
		return nil, fmt.Errorf("%w: password must have at least %d characters", domain.ErrValidation, domain.MinPasswordLength)
	}

	user := &domain.User{ID: uuid.New()}
	if err := s.applyInput(user, in); err != nil {
		return nil, err
	}
	if err := validationError(s.validate, user); err != nil {
		return nil, err
	}

	createdUser, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		s.logger.Error("Failed to create user", map[string]interface{}{
			"error": err.Error(),
			"email": user.Email,
		})
		return nil, err
	}

	s.logger.Info("User created", map[string]interface{}{
		"user_id": createdUser.ID,
		"role":    createdUser.Role,
	})
	return createdUser, nil
}

func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	id, err := parseID("user", userID)
	if err != nil {
		return nil, err
	}
	return s.userRepo.GetUserByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.ListUsers(ctx, nil)
}

func (s *UserService) ListTrainers(ctx context.Context) ([]*domain.User, error) {
	role := domain.Trainer
	return s.userRepo.ListUsers(ctx, &role)
}

func (s *UserService) UpdateUser(ctx context.Context, userID string, in domain.UserInput) (*domain.User, error) {
	id, err := parseID("user", userID)
	if err != nil {
		return nil, err
	}
	if in.Password != nil && len(*in.Password) < domain.MinPasswordLength {
		return nil, fmt.Errorf("%w: password must have at least %d characters", domain.ErrValidation, domain.MinPasswordLength)
	}

	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyInput(user, in); err != nil {
		return nil, err
	}
	if err := validationError(s.validate, user); err != nil {
		return nil, err
	}

	updatedUser, err := s.userRepo.UpdateUser(ctx, user)
	if err != nil {
		s.logger.Error("Failed to update user", map[string]interface{}{
			"error":   err.Error(),
			"user_id": id,
		})
		return nil, err
	}

	s.logger.Info("User updated", map[string]interface{}{
		"user_id": id,
	})
	return updatedUser, nil
}

func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	id, err := parseID("user", userID)
	if err != nil {
		return err
	}
	if err := s.userRepo.DeleteUser(ctx, id); err != nil {
		return err
	}

	s.logger.Info("User deleted", map[string]interface{}{
		"user_id": id,
	})
	return nil
}

// Login looks the user up by email or document number and checks the password.
// Unknown users and wrong passwords produce the same error.
func (s *UserService) Login(ctx context.Context, identifier, password string) (*domain.User, error) {
	if strings.TrimSpace(identifier) == "" || password == "" {
		return nil, fmt.Errorf("%w: identifier and password are required", domain.ErrValidation)
	}

	user, err := s.findByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("Login for unknown user", map[string]interface{}{
				"identifier": identifier,
			})
			return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("Login with wrong password", map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}

	s.logger.Info("User logged in", map[string]interface{}{
		"user_id": user.ID,
		"role":    user.Role,
	})
	return user, nil
}

// RequestPasswordReset stores a fresh one-hour token. The token is emailed when
// a mailer is configured; otherwise, or when sending fails, it is returned in the
// result for the caller to hand out. With devMode the token is always returned.
func (s *UserService) RequestPasswordReset(ctx context.Context, identifier string, devMode bool) (*domain.PasswordReset, error) {
	if strings.TrimSpace(identifier) == "" {
		return nil, fmt.Errorf("%w: identifier is required", domain.ErrValidation)
	}

	user, err := s.findByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}

	token, err := newResetToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate reset token: %w", err)
	}
	expiresAt := s.now().UTC().Add(domain.ResetTokenTTL)
	user.ResetToken = &token
	user.ResetTokenExpiry = &expiresAt

	if _, err := s.userRepo.UpdateUser(ctx, user); err != nil {
		s.logger.Error("Failed to store reset token", map[string]interface{}{
			"error":   err.Error(),
			"user_id": user.ID,
		})
		return nil, err
	}

	reset := &domain.PasswordReset{Token: token, ExpiresAt: expiresAt}
	if devMode || !s.mailer.Enabled() || user.Email == "" {
		return reset, nil
	}

	mailCtx, cancel := context.WithTimeout(ctx, s.mailTimeout)
	defer cancel()

	if err := s.mailer.SendPasswordReset(mailCtx, user.Email, s.resetLink(token)); err != nil {
		s.logger.Warn("Failed to send reset email, returning token instead", map[string]interface{}{
			"error":   err.Error(),
			"user_id": user.ID,
		})
		return reset, nil
	}

	reset.Emailed = true
	s.logger.Info("Password reset email sent", map[string]interface{}{
		"user_id": user.ID,
	})
	return reset, nil
}

// ConfirmPasswordReset replaces the password of the user holding a live token and burns the token.
func (s *UserService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("%w: token is required", domain.ErrValidation)
	}

	user, err := s.userRepo.GetUserByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: invalid or expired token", domain.ErrValidation)
		}
		return err
	}
	if user.ResetTokenExpiry == nil || !user.ResetTokenExpiry.After(s.now()) {
		return fmt.Errorf("%w: invalid or expired token", domain.ErrValidation)
	}
	if len(newPassword) < domain.MinPasswordLength {
		return fmt.Errorf("%w: password must have at least %d characters", domain.ErrValidation, domain.MinPasswordLength)
	}

	if err := setPassword(user, newPassword); err != nil {
		return err
	}
	user.ResetToken = nil
	user.ResetTokenExpiry = nil

	if _, err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return err
	}

	s.logger.Info("Password reset confirmed", map[string]interface{}{
		"user_id": user.ID,
	})
	return nil
}

func (s *UserService) ChangePassword(ctx context.Context, identifier, currentPassword, newPassword string) error {
	user, err := s.Login(ctx, identifier, currentPassword)
	if err != nil {
		return err
	}
	if len(newPassword) < domain.MinPasswordLength {
		return fmt.Errorf("%w: password must have at least %d characters", domain.ErrValidation, domain.MinPasswordLength)
	}

	if err := setPassword(user, newPassword); err != nil {
		return err
	}
	if _, err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return err
	}

	s.logger.Info("Password changed", map[string]interface{}{
		"user_id": user.ID,
	})
	return nil
}

func (s *UserService) findByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	identifier = strings.TrimSpace(identifier)
	if strings.Contains(identifier, "@") {
		return s.userRepo.GetUserByEmail(ctx, identifier)
	}
	return s.userRepo.GetUserByDNI(ctx, identifier)
}

func (s *UserService) resetLink(token string) string {
	return fmt.Sprintf("%s/reset-password?token=%s", s.publicBaseURL, url.QueryEscape(token))
}

func (s *UserService) applyInput(user *domain.User, in domain.UserInput) error {
	if in.Nombre != nil {
		user.Nombre = strings.TrimSpace(*in.Nombre)
	}
	if in.Apellido != nil {
		user.Apellido = strings.TrimSpace(*in.Apellido)
	}
	if in.DNI != nil {
		dni := strings.TrimSpace(*in.DNI)
		if dni == "" {
			user.DNI = nil
		} else {
			user.DNI = &dni
		}
	}
	if in.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Role != nil {
		user.Role = domain.NormalizeRole(*in.Role)
	}
	if in.Password != nil {
		return setPassword(user, *in.Password)
	}
	return nil
}

func setPassword(user *domain.User, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return fmt.Errorf("%w: password is too long", domain.ErrValidation)
	}
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	return nil
}

func newResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
