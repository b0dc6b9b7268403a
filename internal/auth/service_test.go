package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"blog/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memRepo struct {
	users  []*User
	nextID int64
	err    error
}

func (r *memRepo) Create(ctx context.Context, u *User) error {
	if r.err != nil {
		return r.err
	}
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return ErrUsernameExists
		}
		if existing.Email == u.Email {
			return ErrEmailExists
		}
	}
	r.nextID++
	u.ID = r.nextID
	cp := *u
	r.users = append(r.users, &cp)
	return nil
}

func (r *memRepo) FindByLogin(ctx context.Context, login string) (*User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Username == login || u.Email == login {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func newTestService(t *testing.T, repo Repository) (Service, *security.TokenProvider) {
	t.Helper()
	provider, err := security.NewTokenProvider(&security.Config{Secret: "auth-secret", Expiration: time.Hour})
	require.NoError(t, err)

	svc := NewService(repo, provider, nil)
	svc.(*service).cost = bcrypt.MinCost
	return svc, provider
}

var alice = SignupRequest{Name: "Alice", Username: "alice", Email: "alice@example.com", Password: "s3cret-pass"}

func TestSignup_HashesPassword(t *testing.T) {
	repo := &memRepo{}
	svc, _ := newTestService(t, repo)

	u, err := svc.Signup(context.Background(), alice)
	require.NoError(t, err)
	assert.NotZero(t, u.ID)

	require.Len(t, repo.users, 1)
	stored := repo.users[0].Password
	assert.NotEqual(t, alice.Password, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte(alice.Password)))
}

func TestSignup_Conflicts(t *testing.T) {
	repo := &memRepo{}
	svc, _ := newTestService(t, repo)
	ctx := context.Background()

	_, err := svc.Signup(ctx, alice)
	require.NoError(t, err)

	sameName := alice
	sameName.Email = "other@example.com"
	_, err = svc.Signup(ctx, sameName)
	assert.ErrorIs(t, err, ErrUsernameExists)
	assert.ErrorIs(t, err, ErrUserExists)

	sameEmail := alice
	sameEmail.Username = "alice2"
	_, err = svc.Signup(ctx, sameEmail)
	assert.ErrorIs(t, err, ErrEmailExists)
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestSignin_IssuesTokenForUsernameOrEmail(t *testing.T) {
	repo := &memRepo{}
	svc, provider := newTestService(t, repo)
	ctx := context.Background()

	_, err := svc.Signup(ctx, alice)
	require.NoError(t, err)

	for _, login := range []string{"alice", "alice@example.com"} {
		resp, err := svc.Signin(ctx, SigninRequest{UsernameOrEmail: login, Password: alice.Password})
		require.NoError(t, err, login)
		assert.Equal(t, "Bearer", resp.TokenType)

		subject, err := provider.UsernameFromToken(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "alice", subject)
	}
}

func TestSignin_BadCredentials(t *testing.T) {
	repo := &memRepo{}
	svc, _ := newTestService(t, repo)
	ctx := context.Background()

	_, err := svc.Signup(ctx, alice)
	require.NoError(t, err)

	_, err = svc.Signin(ctx, SigninRequest{UsernameOrEmail: "alice", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, err = svc.Signin(ctx, SigninRequest{UsernameOrEmail: "nobody", Password: alice.Password})
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestSignin_RepositoryError(t *testing.T) {
	repo := &memRepo{err: errors.New("connection refused")}
	svc, _ := newTestService(t, repo)

	_, err := svc.Signin(context.Background(), SigninRequest{UsernameOrEmail: "alice", Password: "x"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrBadCredentials)
}
