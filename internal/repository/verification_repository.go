package repository

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

// VerificationRepo stores email verification codes in Redis with a short
// TTL.  Keeping them out of process memory means verification survives
// restarts and works when the API runs as more than one instance.  When
// no Redis client is available the repo degrades to rejecting every
// verification attempt.
type VerificationRepo struct {
	rdb *redis.Client
	ttl time.Duration
}

// ErrCodeMismatch is returned when the submitted code does not match the
// stored one or no code is pending for the user.
var ErrCodeMismatch = errors.New("verification code mismatch")

// ErrVerificationUnavailable is returned when no Redis backend is
// configured.
var ErrVerificationUnavailable = errors.New("verification store unavailable")

func NewVerificationRepo(rdb *redis.Client) *VerificationRepo {
	return &VerificationRepo{rdb: rdb, ttl: 10 * time.Minute}
}

func verificationKey(userID uint64) string {
	return fmt.Sprintf("verify:%d", userID)
}

// IssueCode generates a six digit code for the user and stores it with
// the TTL.  Re-issuing replaces any previous code.
func (r *VerificationRepo) IssueCode(ctx context.Context, userID uint64) (string, error) {
	if r.rdb == nil {
		return "", ErrVerificationUnavailable
	}
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	code := fmt.Sprintf("%06d", n.Int64())
	if err := r.rdb.Set(ctx, verificationKey(userID), code, r.ttl).Err(); err != nil {
		return "", err
	}
	return code, nil
}

// Verify checks the submitted code against the stored one and deletes it
// on success so a code cannot be replayed.
func (r *VerificationRepo) Verify(ctx context.Context, userID uint64, code string) error {
	if r.rdb == nil {
		return ErrVerificationUnavailable
	}
	stored, err := r.rdb.Get(ctx, verificationKey(userID)).Result()
	if err == redis.Nil {
		return ErrCodeMismatch
	}
	if err != nil {
		return err
	}
	if stored != code {
		return ErrCodeMismatch
	}
	return r.rdb.Del(ctx, verificationKey(userID)).Err()
}
