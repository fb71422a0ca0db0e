package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"finanger/internal/backend"
	"finanger/internal/core"
	"finanger/internal/crypto"
	"finanger/internal/log"
	"finanger/internal/store"
)

var (
	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords so login failures are indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrEmptyUsername          = errors.New("empty username")
	ErrEmptyPassword          = errors.New("empty password")
	ErrSecurityAnswerMismatch = errors.New("security answer does not match")
)

// UserService orchestrates registration, login and the security-question
// password reset. Passwords are stored as Argon2id hashes; the security
// answer is AES-GCM encrypted at rest when a field key is configured.
type UserService struct {
	users    backend.UserRepository
	fieldKey []byte
	logger   *log.Logger
}

func NewUserService(users backend.UserRepository, fieldKey []byte, logger *log.Logger) *UserService {
	return &UserService{
		users:    users,
		fieldKey: fieldKey,
		logger:   logger.WithComponent(log.ComponentUsers),
	}
}

// Register creates a user. Username uniqueness is case-insensitive, the
// stored casing is whatever the user typed.
func (s *UserService) Register(ctx context.Context, username, password, question, answer string) (core.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return core.User{}, ErrEmptyUsername
	}
	if password == "" {
		return core.User{}, ErrEmptyPassword
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return core.User{}, fmt.Errorf("hash password: %w", err)
	}

	storedAnswer := strings.TrimSpace(answer)
	if storedAnswer != "" && s.fieldKey != nil {
		storedAnswer, err = crypto.EncryptField(s.fieldKey, storedAnswer)
		if err != nil {
			return core.User{}, fmt.Errorf("encrypt security answer: %w", err)
		}
	}

	u := core.User{
		ID:               uuid.NewString(),
		Username:         username,
		Password:         hash,
		SecurityQuestion: strings.TrimSpace(question),
		SecurityAnswer:   storedAnswer,
	}

	if err := s.users.Append(u); err != nil {
		return core.User{}, err
	}

	s.logger.InfoContext(ctx, "User registered",
		log.FieldOperation, log.OpRegister,
		log.FieldUserID, u.ID,
		log.FieldUsername, u.Username)

	return u, nil
}

// Login finds the user case-insensitively and verifies the password
// case-sensitively.
func (s *UserService) Login(ctx context.Context, username, password string) (core.User, error) {
	u, err := s.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return core.User{}, ErrInvalidCredentials
		}
		return core.User{}, err
	}

	if err := crypto.VerifyPassword(password, u.Password); err != nil {
		s.logger.WarnContext(ctx, "Login rejected",
			log.FieldOperation, log.OpLogin,
			log.FieldUsername, username)
		return core.User{}, ErrInvalidCredentials
	}

	s.logger.InfoContext(ctx, "User logged in",
		log.FieldOperation, log.OpLogin,
		log.FieldUserID, u.ID,
		log.FieldUsername, u.Username)

	return u, nil
}

// FindByID returns the stored user record.
func (s *UserService) FindByID(id string) (core.User, error) {
	return s.users.FindByID(id)
}

// SecurityQuestion returns the user's recovery question. Unknown usernames
// surface as ErrInvalidCredentials to avoid account enumeration.
func (s *UserService) SecurityQuestion(ctx context.Context, username string) (string, error) {
	u, err := s.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	return u.SecurityQuestion, nil
}

// ResetPassword verifies the security answer and replaces the password hash.
func (s *UserService) ResetPassword(ctx context.Context, username, answer, newPassword string) error {
	if newPassword == "" {
		return ErrEmptyPassword
	}

	u, err := s.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}

	stored := u.SecurityAnswer
	if stored != "" && s.fieldKey != nil {
		if decrypted, err := crypto.DecryptField(s.fieldKey, stored); err == nil {
			stored = decrypted
		}
		// A decrypt failure falls through to the plaintext comparison, which
		// covers records written before the field key was configured.
	}
	if stored == "" || stored != strings.TrimSpace(answer) {
		return ErrSecurityAnswerMismatch
	}

	hash, err := crypto.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.Password = hash

	if err := s.users.Update(u.Username, u); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Password reset",
		log.FieldOperation, log.OpUpdate,
		log.FieldUserID, u.ID,
		log.FieldUsername, u.Username)

	return nil
}
