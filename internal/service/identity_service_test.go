// internal/service/identity_service_test.go
package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chainpilot-wallet/internal/repository/kvstore"
	"chainpilot-wallet/internal/util"
	"chainpilot-wallet/pkg/kv"
)

func newTestIdentityService(t *testing.T) (IdentityService, *kv.MemoryStore) {
	t.Helper()
	store := kv.NewMemoryStore()
	return NewIdentityService(
		kvstore.NewIdentityRepository(store),
		kvstore.NewLedgerRepository(store),
	), store
}

func TestRegister(t *testing.T) {
	t.Run("SuccessfulRegistration", func(t *testing.T) {
		svc, _ := newTestIdentityService(t)

		identity, err := svc.Register("alice", "hunter22")
		require.NoError(t, err)
		assert.Equal(t, "alice", identity.Username)
		assert.NotEqual(t, "hunter22", identity.PassHash)
		assert.Len(t, identity.PassHash, 64) // SHA-256 hex

		authed, err := svc.IsAuthenticated()
		require.NoError(t, err)
		assert.True(t, authed)
	})

	t.Run("SeedsZeroHoldings", func(t *testing.T) {
		svc, store := newTestIdentityService(t)
		_, err := svc.Register("alice", "hunter22")
		require.NoError(t, err)

		holdings, err := kvstore.NewLedgerRepository(store).HoldingsFor("alice")
		require.NoError(t, err)
		assert.True(t, holdings.IsEmpty())
		assert.Len(t, holdings, 3)
	})

	t.Run("EmptyCredentials", func(t *testing.T) {
		svc, _ := newTestIdentityService(t)

		_, err := svc.Register("", "pw")
		assert.ErrorIs(t, err, util.ErrValidation)
		_, err = svc.Register("alice", "")
		assert.ErrorIs(t, err, util.ErrValidation)
	})

	t.Run("OverwritesPriorAccount", func(t *testing.T) {
		svc, _ := newTestIdentityService(t)
		_, err := svc.Register("alice", "pw1")
		require.NoError(t, err)
		_, err = svc.Register("bob", "pw2")
		require.NoError(t, err)

		_, err = svc.Authenticate("alice", "pw1")
		assert.ErrorIs(t, err, util.ErrInvalidCredentials)
		_, err = svc.Authenticate("bob", "pw2")
		assert.NoError(t, err)
	})
}

func TestAuthenticate(t *testing.T) {
	t.Run("NoAccount", func(t *testing.T) {
		svc, _ := newTestIdentityService(t)
		_, err := svc.Authenticate("alice", "pw")
		assert.ErrorIs(t, err, util.ErrNoAccount)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		svc, _ := newTestIdentityService(t)
		_, err := svc.Register("alice", "pw")
		require.NoError(t, err)

		_, err = svc.Authenticate("alice", "wrong")
		assert.ErrorIs(t, err, util.ErrInvalidCredentials)
	})

	t.Run("WrongUsername", func(t *testing.T) {
		svc, _ := newTestIdentityService(t)
		_, err := svc.Register("alice", "pw")
		require.NoError(t, err)

		_, err = svc.Authenticate("mallory", "pw")
		assert.ErrorIs(t, err, util.ErrInvalidCredentials)
	})

	t.Run("EstablishesSession", func(t *testing.T) {
		svc, _ := newTestIdentityService(t)
		_, err := svc.Register("alice", "pw")
		require.NoError(t, err)
		require.NoError(t, svc.Logout())

		session, err := svc.Authenticate("alice", "pw")
		require.NoError(t, err)
		assert.Equal(t, "alice", session.Username)
		assert.NotZero(t, session.Ts)
	})
}

func TestChangePassword(t *testing.T) {
	svc, _ := newTestIdentityService(t)
	_, err := svc.Register("alice", "old-pw")
	require.NoError(t, err)

	t.Run("WrongCurrentPassword", func(t *testing.T) {
		err := svc.ChangePassword("nope", "new-pw")
		assert.ErrorIs(t, err, util.ErrInvalidCredentials)
	})

	t.Run("EmptyNewPassword", func(t *testing.T) {
		err := svc.ChangePassword("old-pw", "")
		assert.ErrorIs(t, err, util.ErrValidation)
	})

	t.Run("SuccessfulChange", func(t *testing.T) {
		require.NoError(t, svc.ChangePassword("old-pw", "new-pw"))

		_, err := svc.Authenticate("alice", "old-pw")
		assert.ErrorIs(t, err, util.ErrInvalidCredentials)
		_, err = svc.Authenticate("alice", "new-pw")
		assert.NoError(t, err)
	})
}

func TestSessionLifecycle(t *testing.T) {
	t.Run("LogoutClearsSession", func(t *testing.T) {
		svc, _ := newTestIdentityService(t)
		_, err := svc.Register("alice", "pw")
		require.NoError(t, err)

		require.NoError(t, svc.Logout())

		authed, err := svc.IsAuthenticated()
		require.NoError(t, err)
		assert.False(t, authed)
		_, err = svc.CurrentSession()
		assert.ErrorIs(t, err, util.ErrNotFound)
	})

	t.Run("OrphanedSessionIsNotAuthenticated", func(t *testing.T) {
		// A session established for one identity must not survive the
		// identity being replaced without a matching login.
		store := kv.NewMemoryStore()
		identityRepo := kvstore.NewIdentityRepository(store)
		svc := NewIdentityService(identityRepo, kvstore.NewLedgerRepository(store))

		_, err := svc.Register("alice", "pw")
		require.NoError(t, err)

		// Replace the identity behind the session's back.
		identity, err := identityRepo.GetIdentity()
		require.NoError(t, err)
		identity.Username = "bob"
		require.NoError(t, identityRepo.SaveIdentity(identity))

		authed, err := svc.IsAuthenticated()
		require.NoError(t, err)
		assert.False(t, authed)
	})
}

func TestPasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     int
	}{
		{"Empty", "", 0},
		{"ShortLower", "abc", 0},
		{"LongLower", "abcdefgh", 20},
		{"LongWithUpper", "Abcdefgh", 40},
		{"LongWithUpperDigit", "Abcdefg1", 60},
		{"LongWithUpperDigitSymbol", "Abcdef1!", 80},
		{"Everything", "Abcdefghijk1!", 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PasswordStrength(tt.password))
		})
	}
}
