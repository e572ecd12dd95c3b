package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"goflare.io/merchant/audit"
	"goflare.io/merchant/models"
	"goflare.io/merchant/token"
)

// TokenIssuer mints the access/refresh pair at login. Satisfied by
// *token.Manager.
type TokenIssuer interface {
	IssuePair(userID string) (token.Pair, error)
}

// PasswordHasher is satisfied by *password.Hasher.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

type Service interface {
	Register(ctx context.Context, email, username, password string) (*models.User, error)
	Login(ctx context.Context, email, username, password string) (*models.User, token.Pair, error)
	Logout(ctx context.Context, userID string) error
}

type service struct {
	repo     Repository
	tokens   TokenIssuer
	hasher   PasswordHasher
	recorder audit.Recorder
	logger   *zap.Logger
}

func NewService(repo Repository, tokens TokenIssuer, hasher PasswordHasher, recorder audit.Recorder, logger *zap.Logger) Service {
	return &service{
		repo:     repo,
		tokens:   tokens,
		hasher:   hasher,
		recorder: recorder,
		logger:   logger,
	}
}

// Register creates an account and returns the sanitized record. The username
// is lowercased before both the uniqueness check and storage. The password is
// only checked for emptiness; it is hashed exactly as supplied, so login must
// present the identical bytes.
func (s *service) Register(ctx context.Context, email, username, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	username = strings.ToLower(strings.TrimSpace(username))

	if email == "" || username == "" || strings.TrimSpace(password) == "" {
		return nil, ErrFieldsRequired
	}

	existing, err := s.repo.FindByEmailOrUsername(ctx, email, username)
	if err != nil {
		s.logger.Error("failed to check for existing user", zap.Error(err))
		return nil, fmt.Errorf("%w while registering the user", ErrInternal)
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("%w while registering the user", ErrInternal)
	}

	record := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: hash,
	}

	if err = s.repo.Create(ctx, record); err != nil {
		s.logger.Error("failed to create user", zap.Error(err))
		return nil, fmt.Errorf("%w while registering the user", ErrInternal)
	}

	created, err := s.repo.FindByID(ctx, record.ID)
	if err != nil || created == nil {
		s.logger.Error("created user could not be re-fetched",
			zap.Error(err), zap.String("user_id", record.ID))
		return nil, fmt.Errorf("%w while registering the user", ErrInternal)
	}

	s.recorder.Record(models.AuditUserRegistered, created.ID, created.Username)

	return created.Sanitized(), nil
}

// Login verifies credentials and issues a fresh token pair, persisting the
// refresh token onto the account. A new login overwrites the previous token,
// so only the latest refresh token stays valid per account.
func (s *service) Login(ctx context.Context, email, username, password string) (*models.User, token.Pair, error) {
	email = strings.TrimSpace(email)
	username = strings.ToLower(strings.TrimSpace(username))

	if email == "" && username == "" {
		return nil, token.Pair{}, ErrIdentifierRequired
	}

	account, err := s.repo.FindByEmailOrUsername(ctx, email, username)
	if err != nil {
		s.logger.Error("failed to look up user", zap.Error(err))
		return nil, token.Pair{}, fmt.Errorf("%w while logging in", ErrInternal)
	}
	if account == nil {
		return nil, token.Pair{}, ErrUserNotFound
	}

	ok, err := s.hasher.Verify(password, account.PasswordHash)
	if err != nil {
		s.logger.Error("failed to verify password", zap.Error(err), zap.String("user_id", account.ID))
		return nil, token.Pair{}, fmt.Errorf("%w while logging in", ErrInternal)
	}
	if !ok {
		return nil, token.Pair{}, ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(account.ID)
	if err != nil {
		s.logger.Error("failed to issue token pair", zap.Error(err), zap.String("user_id", account.ID))
		return nil, token.Pair{}, fmt.Errorf("%w while generating refresh and access token", ErrInternal)
	}

	if err = s.repo.UpdateRefreshToken(ctx, account.ID, &pair.RefreshToken); err != nil {
		s.logger.Error("failed to persist refresh token", zap.Error(err), zap.String("user_id", account.ID))
		return nil, token.Pair{}, fmt.Errorf("%w while generating refresh and access token", ErrInternal)
	}

	s.recorder.Record(models.AuditUserLoggedIn, account.ID, account.Username)

	return account.Sanitized(), pair, nil
}

// Logout clears the stored refresh token. Idempotent: a second call finds the
// token already absent and still succeeds.
func (s *service) Logout(ctx context.Context, userID string) error {
	if err := s.repo.UpdateRefreshToken(ctx, userID, nil); err != nil {
		s.logger.Error("failed to clear refresh token", zap.Error(err), zap.String("user_id", userID))
		return fmt.Errorf("%w while logging out", ErrInternal)
	}

	s.recorder.Record(models.AuditUserLoggedOut, userID, "")

	return nil
}
