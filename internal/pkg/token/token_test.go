package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleClaims() Claims {
	return Claims{ID: 7, Email: "a@x.com", Role: RoleClaim{ID: 1, Name: "client"}}
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	svc := NewService("secret", time.Hour)

	raw, err := svc.Issue(sampleClaims())
	require.NoError(t, err)

	claims, err := svc.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.ID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "client", claims.Role.Name)
	assert.Equal(t, uint(1), claims.Role.ID)
	require.NotNil(t, claims.ExpiresAt)
}

func TestVerify_Expired(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	now := issuedAt
	svc := NewService("secret", time.Minute, WithClock(func() time.Time { return now }))

	raw, err := svc.Issue(sampleClaims())
	require.NoError(t, err)

	now = issuedAt.Add(30 * time.Second)
	_, err = svc.Verify(raw)
	require.NoError(t, err)

	now = issuedAt.Add(2 * time.Minute)
	_, err = svc.Verify(raw)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestVerify_WrongSecret(t *testing.T) {
	raw, err := NewService("secret-a", time.Hour).Issue(sampleClaims())
	require.NoError(t, err)

	_, err = NewService("secret-b", time.Hour).Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerify_TamperedPayload(t *testing.T) {
	svc := NewService("secret", time.Hour)
	raw, err := svc.Issue(sampleClaims())
	require.NoError(t, err)

	other, err := svc.Issue(Claims{ID: 99, Email: "admin@x.com", Role: RoleClaim{ID: 4, Name: "admin"}})
	require.NoError(t, err)

	parts := strings.Split(raw, ".")
	otherParts := strings.Split(other, ".")
	forged := parts[0] + "." + otherParts[1] + "." + parts[2]

	_, err = svc.Verify(forged)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerify_Malformed(t *testing.T) {
	svc := NewService("secret", time.Hour)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Verify(raw)
		assert.ErrorIs(t, err, ErrMalformed, "input %q", raw)
	}
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	c := sampleClaims()
	c.RegisteredClaims = jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS512, &c).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewService("secret", time.Hour).Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerify_RequiresExpiry(t *testing.T) {
	c := sampleClaims()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &c).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewService("secret", time.Hour).Verify(raw)
	assert.Error(t, err)
}

func TestVerify_MissingSubject(t *testing.T) {
	c := Claims{Email: "a@x.com"}
	c.RegisteredClaims = jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &c).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewService("secret", time.Hour).Verify(raw)
	assert.ErrorIs(t, err, ErrMalformed)
}
