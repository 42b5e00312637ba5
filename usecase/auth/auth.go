package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taskboard/backend/domain"
	"github.com/taskboard/backend/pkg/hasher"
	"github.com/taskboard/backend/repository"
)

type UseCase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	hasher   hasher.Hasher
	ttl      time.Duration
	logger   *zap.Logger
}

func New(users repository.UserRepository, sessions repository.SessionRepository, h hasher.Hasher, ttl time.Duration, logger *zap.Logger) *UseCase {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:    users,
		sessions: sessions,
		hasher:   h,
		ttl:      ttl,
		logger:   logger,
	}
}

// Signup hashes the password and creates the user. A duplicate email
// surfaces as a conflict.
func (uc *UseCase) Signup(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "name, email and password are required")
	}

	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "failed to hash password", err)
	}

	user, err := uc.users.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("user signed up", zap.String("user_id", user.ID))
	return user, nil
}

// Login verifies credentials and creates a session. Unknown email and wrong
// password are indistinguishable to the caller.
func (uc *UseCase) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	if !uc.hasher.Compare(user.PasswordHash, password) {
		return nil, domain.ErrUnauthorized
	}

	now := time.Now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		UserName:  user.Name,
		LoggedIn:  true,
		CreatedAt: now,
		ExpiresAt: now.Add(uc.ttl),
	}

	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	uc.logger.Info("user logged in", zap.String("user_id", user.ID))
	return session, nil
}

// GetSession resolves a session id, evicting it when expired. Expiration is
// sliding: every successful validation pushes the session out by the full TTL.
func (uc *UseCase) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.LoggedIn || session.IsExpired(time.Now()) {
		_ = uc.sessions.Delete(ctx, sessionID)
		return nil, domain.ErrSessionNotFound
	}

	if err := uc.sessions.Extend(ctx, sessionID, int(uc.ttl.Seconds())); err != nil {
		// The session is still valid for this request; it just keeps its
		// current deadline.
		uc.logger.Warn("failed to extend session",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return session, nil
	}
	session.ExpiresAt = time.Now().Add(uc.ttl)
	return session, nil
}

// Logout deletes the session. Deleting an absent session is not an error.
func (uc *UseCase) Logout(ctx context.Context, sessionID string) error {
	return uc.sessions.Delete(ctx, sessionID)
}

// Me returns the current user.
func (uc *UseCase) Me(ctx context.Context, userID string) (*domain.User, error) {
	return uc.users.GetByID(ctx, userID)
}
