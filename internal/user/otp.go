package user

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrOTPNotFound = errors.New("otp not found or expired")
	ErrOTPInvalid  = errors.New("invalid otp")
)

const otpTTL = 5 * time.Minute

// OTPStore keeps one pending account-deletion code per user. Codes expire on
// their own through the key TTL.
type OTPStore struct {
	rdb *redis.Client
}

func NewOTPStore(rdb *redis.Client) *OTPStore {
	return &OTPStore{rdb: rdb}
}

func otpKey(userID string) string {
	return "delete-otp:" + userID
}

// Issue generates a fresh 6-digit code and stores it, replacing any pending
// one for the same user.
func (s *OTPStore) Issue(ctx context.Context, userID string) (string, error) {
	otp := fmt.Sprintf("%06d", 100000+rand.IntN(900000))
	if err := s.rdb.Set(ctx, otpKey(userID), otp, otpTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store otp: %w", err)
	}
	return otp, nil
}

// Verify checks the code and consumes it on success.
func (s *OTPStore) Verify(ctx context.Context, userID, otp string) error {
	stored, err := s.rdb.Get(ctx, otpKey(userID)).Result()
	if err == redis.Nil {
		return ErrOTPNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read otp: %w", err)
	}
	if stored != otp {
		return ErrOTPInvalid
	}
	return s.rdb.Del(ctx, otpKey(userID)).Err()
}
