package user

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*OTPStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewOTPStore(rdb), mr
}

func TestOTPStore_IssueAndVerify(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	otp, err := store.Issue(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, otp, 6)

	require.NoError(t, store.Verify(ctx, "user-1", otp))

	// Consumed on success: a second verify must fail.
	assert.ErrorIs(t, store.Verify(ctx, "user-1", otp), ErrOTPNotFound)
}

func TestOTPStore_WrongCode(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	otp, err := store.Issue(ctx, "user-1")
	require.NoError(t, err)

	assert.ErrorIs(t, store.Verify(ctx, "user-1", "000000"), ErrOTPInvalid)

	// A wrong attempt does not consume the code.
	assert.NoError(t, store.Verify(ctx, "user-1", otp))
}

func TestOTPStore_Expiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	otp, err := store.Issue(ctx, "user-1")
	require.NoError(t, err)

	mr.FastForward(otpTTL + time.Second)
	assert.ErrorIs(t, store.Verify(ctx, "user-1", otp), ErrOTPNotFound)
}

func TestOTPStore_ReissueReplaces(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	first, err := store.Issue(ctx, "user-1")
	require.NoError(t, err)
	second, err := store.Issue(ctx, "user-1")
	require.NoError(t, err)

	if first != second {
		assert.ErrorIs(t, store.Verify(ctx, "user-1", first), ErrOTPInvalid)
	}
	assert.NoError(t, store.Verify(ctx, "user-1", second))
}

func TestOTPStore_IsolatedPerUser(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	otp, err := store.Issue(ctx, "user-1")
	require.NoError(t, err)

	assert.ErrorIs(t, store.Verify(ctx, "user-2", otp), ErrOTPNotFound)
}
