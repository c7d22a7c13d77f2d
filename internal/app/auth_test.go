package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baileyjas4/MoniquesCritique-backend/internal/domain"
)

func TestRegisterLoginRoundTrip(t *testing.T) {
	ctx := context.Background()
	users := newFakeUsers()
	svc := NewAuthService(users, "test-secret", time.Hour)

	registered, err := svc.Register(ctx, "  Monique@Example.com ", "s3cretpass", "Monique")
	require.NoError(t, err)
	assert.Equal(t, "monique@example.com", registered.User.Email)
	assert.NotEmpty(t, registered.Token)
	assert.NotEqual(t, "s3cretpass", registered.User.PasswordHash)

	logged, err := svc.Login(ctx, "monique@example.com", "s3cretpass")
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, logged.User.ID)

	subject, err := svc.ParseToken(logged.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, subject)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeUsers(), "test-secret", time.Hour)

	_, err := svc.Register(ctx, "", "s3cretpass", "Monique")
	assert.Equal(t, domain.KindInvalid, domain.KindOf(err))

	_, err = svc.Register(ctx, "monique@example.com", "short", "Monique")
	assert.Equal(t, domain.KindInvalid, domain.KindOf(err))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeUsers(), "test-secret", time.Hour)

	_, err := svc.Register(ctx, "monique@example.com", "s3cretpass", "Monique")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "MONIQUE@example.com", "otherpassword", "Imposter")
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeUsers(), "test-secret", time.Hour)

	_, err := svc.Register(ctx, "monique@example.com", "s3cretpass", "Monique")
	require.NoError(t, err)

	_, badPass := svc.Login(ctx, "monique@example.com", "wrongpassword")
	_, noUser := svc.Login(ctx, "nobody@example.com", "whatever123")

	require.Error(t, badPass)
	require.Error(t, noUser)
	assert.Equal(t, badPass.Error(), noUser.Error())
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(badPass))
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(noUser))
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	ctx := context.Background()
	users := newFakeUsers()
	issuer := NewAuthService(users, "secret-a", time.Hour)
	verifier := NewAuthService(users, "secret-b", time.Hour)

	res, err := issuer.Register(ctx, "monique@example.com", "s3cretpass", "Monique")
	require.NoError(t, err)

	_, err = verifier.ParseToken(res.Token)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))
}

func TestParseTokenRejectsExpired(t *testing.T) {
	ctx := context.Background()
	users := newFakeUsers()
	// The constructor normalizes non-positive TTLs, so build the service
	// directly to sign an already-expired token (beyond the 30s leeway).
	svc := &AuthService{users: users, secret: []byte("test-secret"), tokenTTL: -2 * time.Minute}

	res, err := svc.Register(ctx, "monique@example.com", "s3cretpass", "Monique")
	require.NoError(t, err)

	_, err = svc.ParseToken(res.Token)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))
}
