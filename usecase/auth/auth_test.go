package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/backend/domain"
	"github.com/taskboard/backend/pkg/hasher"
)

type memUserRepo struct {
	byEmail map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: map[string]*domain.User{}}
}

func (m *memUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (m *memUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := m.byEmail[user.Email]; ok {
		return nil, domain.ErrEmailTaken
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	m.byEmail[user.Email] = user
	return user, nil
}

type memSessionRepo struct {
	sessions map[string]*domain.Session
	extended int
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: map[string]*domain.Session{}}
}

func (m *memSessionRepo) Get(ctx context.Context, id string) (*domain.Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

func (m *memSessionRepo) Save(ctx context.Context, session *domain.Session) error {
	m.sessions[session.ID] = session
	return nil
}

func (m *memSessionRepo) Delete(ctx context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

func (m *memSessionRepo) Extend(ctx context.Context, id string, ttlSeconds int) error {
	s, ok := m.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	s.ExpiresAt = time.Now().Add(time.Duration(ttlSeconds) * time.Second)
	m.extended++
	return nil
}

func newTestUseCase(t *testing.T) (*UseCase, *memUserRepo, *memSessionRepo) {
	t.Helper()
	users := newMemUserRepo()
	sessions := newMemSessionRepo()
	// Lowest bcrypt cost keeps the suite fast.
	return New(users, sessions, hasher.NewBcrypt(4), time.Hour, nil), users, sessions
}

func TestSignupHashesPassword(t *testing.T) {
	uc, users, _ := newTestUseCase(t)

	created, err := uc.Signup(context.Background(), " Alice ", " alice@example.com ", "s3cret")
	require.NoError(t, err)

	assert.Equal(t, "Alice", created.Name)
	assert.Equal(t, "alice@example.com", created.Email)
	assert.NotEmpty(t, created.PasswordHash)
	assert.NotEqual(t, "s3cret", created.PasswordHash)

	stored := users.byEmail["alice@example.com"]
	require.NotNil(t, stored)
	assert.True(t, hasher.NewBcrypt(4).Compare(stored.PasswordHash, "s3cret"))
}

func TestSignupRejectsMissingFields(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	for _, tc := range []struct{ name, email, password string }{
		{"", "alice@example.com", "s3cret"},
		{"Alice", "", "s3cret"},
		{"Alice", "alice@example.com", ""},
	} {
		_, err := uc.Signup(context.Background(), tc.name, tc.email, tc.password)
		require.Error(t, err)
		assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
	}
}

func TestSignupDuplicateEmailConflicts(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	_, err := uc.Signup(context.Background(), "Alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	_, err = uc.Signup(context.Background(), "Alias", "alice@example.com", "0ther")
	require.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLoginCreatesSession(t *testing.T) {
	uc, _, sessions := newTestUseCase(t)
	created, err := uc.Signup(context.Background(), "Alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	session, err := uc.Login(context.Background(), "alice@example.com", "s3cret")
	require.NoError(t, err)

	assert.NotEmpty(t, session.ID)
	assert.Equal(t, created.ID, session.UserID)
	assert.Equal(t, "Alice", session.UserName)
	assert.True(t, session.LoggedIn)
	assert.True(t, session.ExpiresAt.After(time.Now()))
	assert.Contains(t, sessions.sessions, session.ID)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	_, err := uc.Signup(context.Background(), "Alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	_, wrongPassword := uc.Login(context.Background(), "alice@example.com", "nope")
	_, unknownEmail := uc.Login(context.Background(), "bob@example.com", "s3cret")

	require.ErrorIs(t, wrongPassword, domain.ErrUnauthorized)
	require.ErrorIs(t, unknownEmail, domain.ErrUnauthorized)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestGetSessionSlidesExpiry(t *testing.T) {
	uc, _, sessions := newTestUseCase(t)
	now := time.Now()
	nearDeadline := now.Add(10 * time.Minute)
	sessions.sessions["s1"] = &domain.Session{
		ID:        "s1",
		UserID:    "u1",
		LoggedIn:  true,
		CreatedAt: now.Add(-50 * time.Minute),
		ExpiresAt: nearDeadline,
	}

	session, err := uc.GetSession(context.Background(), "s1")
	require.NoError(t, err)

	// The hour TTL is reapplied on every validation.
	assert.Equal(t, 1, sessions.extended)
	assert.True(t, session.ExpiresAt.After(nearDeadline))
	assert.True(t, sessions.sessions["s1"].ExpiresAt.After(nearDeadline))
}

func TestGetSessionEvictsExpired(t *testing.T) {
	uc, _, sessions := newTestUseCase(t)
	now := time.Now()
	sessions.sessions["stale"] = &domain.Session{
		ID:        "stale",
		UserID:    "u1",
		LoggedIn:  true,
		CreatedAt: now.Add(-2 * time.Hour),
		ExpiresAt: now.Add(-time.Hour),
	}

	_, err := uc.GetSession(context.Background(), "stale")
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.NotContains(t, sessions.sessions, "stale", "expired session must be evicted")
}

func TestLogout(t *testing.T) {
	uc, _, sessions := newTestUseCase(t)
	_, err := uc.Signup(context.Background(), "Alice", "alice@example.com", "s3cret")
	require.NoError(t, err)
	session, err := uc.Login(context.Background(), "alice@example.com", "s3cret")
	require.NoError(t, err)

	require.NoError(t, uc.Logout(context.Background(), session.ID))
	assert.NotContains(t, sessions.sessions, session.ID)

	// Logging out an absent session is a no-op.
	require.NoError(t, uc.Logout(context.Background(), session.ID))
}
