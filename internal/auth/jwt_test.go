package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenMaker_RoundTrip(t *testing.T) {
	tm := NewTokenMaker(testSecret, time.Hour)

	tok, issued, err := tm.Issue("admin", RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	got, err := tm.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Subject)
	assert.Equal(t, RoleAdmin, got.Role)
	assert.Equal(t, issued.ID, got.ID)
}

func TestTokenMaker_Rejects(t *testing.T) {
	tm := NewTokenMaker(testSecret, time.Hour)
	tok, _, err := tm.Issue("admin", RoleAdmin)
	require.NoError(t, err)

	other := NewTokenMaker("another-secret-another-secret-xx", time.Hour)
	_, err = other.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken, "wrong secret")

	_, err = tm.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	tm.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = tm.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken, "expired")
}

func TestPasswordVerifier(t *testing.T) {
	hash, err := HashPassword("letmein-please")
	require.NoError(t, err)

	v := NewPasswordVerifier(hash)
	assert.NoError(t, v.Verify("letmein-please"))
	assert.ErrorIs(t, v.Verify("wrong"), ErrInvalidCredentials)
	assert.ErrorIs(t, v.Verify(""), ErrInvalidCredentials)

	empty := NewPasswordVerifier("")
	assert.ErrorIs(t, empty.Verify("letmein-please"), ErrInvalidCredentials)
}
