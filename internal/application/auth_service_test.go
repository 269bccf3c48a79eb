package application

import (
	"context"
	"testing"
	"time"

	"github.com/linskybing/robolab-go/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignInAndOut(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	ctx := context.Background()

	acct, err := env.svcs.Auth.CreateAccount(ctx, " Head@Example.edu ", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "head@example.edu", acct.Email)
	assert.NotEqual(t, "correct-horse", acct.PasswordHash)

	var events []SessionEvent
	unsubscribe := env.svcs.Auth.OnSessionChange(func(ev SessionEvent) { events = append(events, ev) })

	token, sess, err := env.svcs.Auth.SignIn(ctx, "head@example.edu", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, acct.ID, sess.AccountID)
	assert.True(t, sess.ExpiresAt.Equal(env.clock.Now().Add(time.Hour)))

	got, err := env.svcs.Auth.GetSession(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)

	require.NoError(t, env.svcs.Auth.SignOut(ctx, sess.ID))
	_, err = env.svcs.Auth.GetSession(ctx, token)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	require.Len(t, events, 2)
	assert.Equal(t, SessionSignedIn, events[0].Type)
	assert.Equal(t, SessionSignedOut, events[1].Type)

	unsubscribe()
	_, _, err = env.svcs.Auth.SignIn(ctx, "head@example.edu", "correct-horse")
	require.NoError(t, err)
	assert.Len(t, events, 2)

	assert.NoError(t, env.svcs.Auth.SignOut(ctx, "unknown-session"))
}

func TestSignIn_InvalidCredentials(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	ctx := context.Background()
	_, err := env.svcs.Auth.CreateAccount(ctx, "head@example.edu", "correct-horse")
	require.NoError(t, err)

	_, _, err = env.svcs.Auth.SignIn(ctx, "head@example.edu", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	_, _, err = env.svcs.Auth.SignIn(ctx, "nobody@example.edu", "correct-horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetSession_Expired(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	ctx := context.Background()
	_, err := env.svcs.Auth.CreateAccount(ctx, "head@example.edu", "correct-horse")
	require.NoError(t, err)

	_, sess, err := env.svcs.Auth.SignIn(ctx, "head@example.edu", "correct-horse")
	require.NoError(t, err)

	env.clock.Advance(2 * time.Hour)
	n, err := env.svcs.Auth.CleanupExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = env.repos.Session.GetSessionByID(ctx, sess.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGetSession_GarbageToken(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	_, err := env.svcs.Auth.GetSession(context.Background(), "garbage")
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestCreateAccount_Validation(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	ctx := context.Background()

	_, err := env.svcs.Auth.CreateAccount(ctx, "not-an-email", "correct-horse")
	var ve *apperr.ValidationError
	assert.ErrorAs(t, err, &ve)

	_, err = env.svcs.Auth.CreateAccount(ctx, "a@example.edu", "short")
	assert.ErrorAs(t, err, &ve)

	_, err = env.svcs.Auth.CreateAccount(ctx, "a@example.edu", "correct-horse")
	require.NoError(t, err)
	_, err = env.svcs.Auth.CreateAccount(ctx, "A@example.edu", "another-pass")
	assert.ErrorAs(t, err, &ve)
}

func TestBootstrapAndResetPassword(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	ctx := context.Background()

	first, err := env.svcs.Auth.Bootstrap(ctx, "root@example.edu", "first-password")
	require.NoError(t, err)
	second, err := env.svcs.Auth.Bootstrap(ctx, "root@example.edu", "other-password")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	require.NoError(t, env.svcs.Auth.ResetPassword(ctx, "root@example.edu", "rotated-password"))
	_, _, err = env.svcs.Auth.SignIn(ctx, "root@example.edu", "first-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = env.svcs.Auth.SignIn(ctx, "root@example.edu", "rotated-password")
	assert.NoError(t, err)
}
