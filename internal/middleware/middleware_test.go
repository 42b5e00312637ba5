package middleware

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/taskboard/backend/domain"
	"github.com/taskboard/backend/pkg/httpcontext"
	"github.com/taskboard/backend/pkg/sessiontoken"
	authUC "github.com/taskboard/backend/usecase/auth"
	projectUC "github.com/taskboard/backend/usecase/project"
)

type memberKey struct {
	projectID string
	userID    string
}

type stubProjectRepo struct {
	members      map[memberKey]*domain.Member
	lastDeadline time.Time
	hadDeadline  bool
}

func (s *stubProjectRepo) CreateWithOwner(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	return project, nil
}

func (s *stubProjectRepo) ListByUser(ctx context.Context, userID string) ([]domain.Project, error) {
	return nil, nil
}

func (s *stubProjectRepo) GetMember(ctx context.Context, projectID, userID string) (*domain.Member, error) {
	s.lastDeadline, s.hadDeadline = ctx.Deadline()
	member, ok := s.members[memberKey{projectID, userID}]
	if !ok {
		return nil, domain.ErrNotMember
	}
	return member, nil
}

func (s *stubProjectRepo) ListMembers(ctx context.Context, projectID string) ([]domain.Member, error) {
	return nil, nil
}

func (s *stubProjectRepo) AddMember(ctx context.Context, member domain.Member) error {
	return nil
}

type stubSessionRepo struct {
	sessions map[string]*domain.Session
}

func (s *stubSessionRepo) Get(ctx context.Context, id string) (*domain.Session, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func (s *stubSessionRepo) Save(ctx context.Context, session *domain.Session) error {
	s.sessions[session.ID] = session
	return nil
}

func (s *stubSessionRepo) Delete(ctx context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

func (s *stubSessionRepo) Extend(ctx context.Context, id string, ttlSeconds int) error {
	return nil
}

type stubUserRepo struct{}

func (stubUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (stubUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (stubUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	return user, nil
}

func newGuard(members map[memberKey]*domain.Member) *Guard {
	projects := projectUC.New(&stubProjectRepo{members: members}, stubUserRepo{}, nil, nil)
	return NewGuard(projects, httpcontext.NewAdapter(time.Second), nil)
}

func runHandler(t *testing.T, handler fasthttp.RequestHandler, values map[string]interface{}) *fasthttp.RequestCtx {
	t.Helper()
	var ctx fasthttp.RequestCtx
	for k, v := range values {
		ctx.SetUserValue(k, v)
	}
	handler(&ctx)
	return &ctx
}

func TestRequireMemberAdmitsMember(t *testing.T) {
	guard := newGuard(map[memberKey]*domain.Member{
		{"p1", "u1"}: {ProjectID: "p1", UserID: "u1", Role: domain.RoleMember},
	})

	var reached bool
	handler := guard.RequireMember(func(ctx *fasthttp.RequestCtx) {
		reached = true
		role, _ := ctx.UserValue("member_role").(string)
		assert.Equal(t, domain.RoleMember, role)
	})

	ctx := runHandler(t, handler, map[string]interface{}{"user_id": "u1", "id": "p1"})
	assert.True(t, reached)
	assert.NotEqual(t, fasthttp.StatusForbidden, ctx.Response.StatusCode())
}

func TestRequireMemberDeniesNonMember(t *testing.T) {
	guard := newGuard(map[memberKey]*domain.Member{})

	handler := guard.RequireMember(func(ctx *fasthttp.RequestCtx) {
		t.Fatal("handler must not run for a non-member")
	})

	ctx := runHandler(t, handler, map[string]interface{}{"user_id": "u1", "id": "p1"})
	assert.Equal(t, fasthttp.StatusForbidden, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), "not a member")
}

func TestRequireOwnerDeniesPlainMember(t *testing.T) {
	guard := newGuard(map[memberKey]*domain.Member{
		{"p1", "u1"}: {ProjectID: "p1", UserID: "u1", Role: domain.RoleMember},
		{"p1", "u2"}: {ProjectID: "p1", UserID: "u2", Role: domain.RoleOwner},
	})

	denied := guard.RequireOwner(func(ctx *fasthttp.RequestCtx) {
		t.Fatal("handler must not run for a plain member")
	})
	ctx := runHandler(t, denied, map[string]interface{}{"user_id": "u1", "id": "p1"})
	assert.Equal(t, fasthttp.StatusForbidden, ctx.Response.StatusCode())

	var reached bool
	admitted := guard.RequireOwner(func(ctx *fasthttp.RequestCtx) { reached = true })
	runHandler(t, admitted, map[string]interface{}{"user_id": "u2", "id": "p1"})
	assert.True(t, reached)
}

func TestGuardUsesConfiguredRequestDeadline(t *testing.T) {
	repo := &stubProjectRepo{members: map[memberKey]*domain.Member{
		{"p1", "u1"}: {ProjectID: "p1", UserID: "u1", Role: domain.RoleMember},
	}}
	projects := projectUC.New(repo, stubUserRepo{}, nil, nil)
	guard := NewGuard(projects, httpcontext.NewAdapter(250*time.Millisecond), nil)

	handler := guard.RequireMember(func(ctx *fasthttp.RequestCtx) {})
	before := time.Now()
	runHandler(t, handler, map[string]interface{}{"user_id": "u1", "id": "p1"})

	require.True(t, repo.hadDeadline, "membership lookup must carry a deadline")
	assert.WithinDuration(t, before.Add(250*time.Millisecond), repo.lastDeadline, 100*time.Millisecond)
}

func TestRequireMemberDeniesMissingIdentity(t *testing.T) {
	guard := newGuard(map[memberKey]*domain.Member{})

	handler := guard.RequireMember(func(ctx *fasthttp.RequestCtx) {
		t.Fatal("handler must not run without an identity")
	})

	ctx := runHandler(t, handler, map[string]interface{}{"id": "p1"})
	assert.Equal(t, fasthttp.StatusForbidden, ctx.Response.StatusCode())
}

func TestSessionAuth(t *testing.T) {
	codec := sessiontoken.NewCodec("test-secret", "taskboard")
	sessions := &stubSessionRepo{sessions: map[string]*domain.Session{}}
	auth := authUC.New(stubUserRepo{}, sessions, nil, time.Hour, nil)

	now := time.Now()
	require.NoError(t, sessions.Save(context.Background(), &domain.Session{
		ID:        "s1",
		UserID:    "u1",
		UserName:  "Alice",
		LoggedIn:  true,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}))

	token, err := codec.Encode("s1", now.Add(time.Hour))
	require.NoError(t, err)

	wrap := SessionAuth(codec, auth, "session", httpcontext.NewAdapter(time.Second), nil)

	t.Run("valid cookie", func(t *testing.T) {
		var reached bool
		handler := wrap(func(ctx *fasthttp.RequestCtx) {
			reached = true
			assert.Equal(t, "u1", ctx.UserValue("user_id"))
			assert.Equal(t, "Alice", ctx.UserValue("user_name"))
			assert.Equal(t, "s1", ctx.UserValue("session_id"))
		})

		var ctx fasthttp.RequestCtx
		ctx.Request.Header.SetCookie("session", token)
		handler(&ctx)
		assert.True(t, reached)
	})

	t.Run("missing cookie", func(t *testing.T) {
		handler := wrap(func(ctx *fasthttp.RequestCtx) {
			t.Fatal("handler must not run without a cookie")
		})

		var ctx fasthttp.RequestCtx
		handler(&ctx)
		assert.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
	})

	t.Run("tampered cookie", func(t *testing.T) {
		handler := wrap(func(ctx *fasthttp.RequestCtx) {
			t.Fatal("handler must not run with a forged cookie")
		})

		var ctx fasthttp.RequestCtx
		ctx.Request.Header.SetCookie("session", token+"x")
		handler(&ctx)
		assert.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
	})

	t.Run("stale session id", func(t *testing.T) {
		orphan, err := codec.Encode("gone", now.Add(time.Hour))
		require.NoError(t, err)

		handler := wrap(func(ctx *fasthttp.RequestCtx) {
			t.Fatal("handler must not run for a deleted session")
		})

		var ctx fasthttp.RequestCtx
		ctx.Request.Header.SetCookie("session", orphan)
		handler(&ctx)
		assert.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
	})
}
