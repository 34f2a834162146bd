package otp

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/hallticket-service/internal/domain"
)

const challengeKeyPrefix = "otp:challenge:"

// RedisChallengeStore keeps challenges in Redis with a TTL matching the code
// validity window, so expiry needs no sweeper.
type RedisChallengeStore struct {
	client *redis.Client
}

// NewRedisChallengeStore wraps an existing client.
func NewRedisChallengeStore(client *redis.Client) *RedisChallengeStore {
	return &RedisChallengeStore{client: client}
}

// Put stores the challenge hash under the email key, replacing any prior one.
func (s *RedisChallengeStore) Put(ctx context.Context, challenge domain.VerificationChallenge) error {
	ttl := time.Until(challenge.ExpiresAt)
	if ttl <= 0 {
		ttl = time.Minute
	}
	return s.client.Set(ctx, challengeKeyPrefix+challenge.Email, challenge.CodeHash, ttl).Err()
}

// Get returns the active challenge for the email.
func (s *RedisChallengeStore) Get(ctx context.Context, email string) (*domain.VerificationChallenge, error) {
	key := challengeKeyPrefix + email
	hash, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrChallengeNotFound
	}
	if err != nil {
		return nil, err
	}
	ttl, err := s.client.TTL(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	return &domain.VerificationChallenge{
		Email:     email,
		CodeHash:  hash,
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}

// Delete consumes the challenge.
func (s *RedisChallengeStore) Delete(ctx context.Context, email string) error {
	return s.client.Del(ctx, challengeKeyPrefix+email).Err()
}
