package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus/config"
	"campus/internal/domain/entity"
)

func newTestTokenService(t *testing.T, secret string) *jwtService {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Token = secret

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc.(*jwtService)
}

func newTokenAccount(t *testing.T) *entity.Account {
	t.Helper()

	account := entity.NewAccount("alice", "alice@example.com", "$2a$12$hash", entity.RoleTeacher)
	require.NoError(t, account.Activate())

	return account
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	cfg := &config.Config{}

	_, err := NewJWTService(cfg)
	assert.Error(t, err)
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	svc := newTestTokenService(t, "test-secret")
	account := newTokenAccount(t)
	entityID := uuid.New()
	account.LinkEntity(entityID)

	token, err := svc.Issue(account)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)

	assert.Equal(t, account.ID, claims.AccountID)
	assert.Equal(t, account.ID.String(), claims.Subject)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, entity.RoleTeacher, claims.Role)
	require.NotNil(t, claims.EntityID)
	assert.Equal(t, entityID, *claims.EntityID)
}

func TestJWTService_Validate_RejectsWrongSecret(t *testing.T) {
	issuer := newTestTokenService(t, "secret-a")
	verifier := newTestTokenService(t, "secret-b")

	token, err := issuer.Issue(newTokenAccount(t))
	require.NoError(t, err)

	claims, err := verifier.Validate(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_Validate_RejectsTamperedToken(t *testing.T) {
	svc := newTestTokenService(t, "test-secret")

	token, err := svc.Issue(newTokenAccount(t))
	require.NoError(t, err)

	// Flip a character in the payload segment.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	claims, err := svc.Validate(tampered)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_Validate_RejectsExpiredToken(t *testing.T) {
	svc := newTestTokenService(t, "test-secret")
	svc.tokenTTL = -time.Minute

	token, err := svc.Issue(newTokenAccount(t))
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_Validate_RejectsGarbage(t *testing.T) {
	svc := newTestTokenService(t, "test-secret")

	claims, err := svc.Validate("not-a-token")
	assert.Error(t, err)
	assert.Nil(t, claims)
}
