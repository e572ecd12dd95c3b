package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(Config{
		Secret:     []byte("0123456789abcdef0123456789abcdef"),
		Issuer:     "merchant-test",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	})
	require.NoError(t, err)
	return m
}

func TestIssuePair(t *testing.T) {
	m := newTestManager(t)

	pair, err := m.IssuePair("user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	claims, err := m.ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)

	claims, err = m.ParseRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	m := newTestManager(t)

	pair, err := m.IssuePair("user-1")
	require.NoError(t, err)

	_, err = m.ParseAccess(pair.RefreshToken)
	assert.Error(t, err)
	_, err = m.ParseRefresh(pair.AccessToken)
	assert.Error(t, err)
}

func TestParseRejectsForeignSignature(t *testing.T) {
	m := newTestManager(t)
	other, err := NewManager(Config{
		Secret:     []byte("another-secret-another-secret-xx"),
		Issuer:     "merchant-test",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	})
	require.NoError(t, err)

	pair, err := other.IssuePair("user-1")
	require.NoError(t, err)

	_, err = m.ParseAccess(pair.AccessToken)
	assert.Error(t, err)
}

func TestNewManagerValidatesConfig(t *testing.T) {
	_, err := NewManager(Config{AccessTTL: time.Minute, RefreshTTL: time.Hour})
	assert.Error(t, err, "missing secret")

	_, err = NewManager(Config{Secret: []byte("s"), AccessTTL: time.Hour, RefreshTTL: time.Minute})
	assert.Error(t, err, "refresh TTL not exceeding access TTL")
}
