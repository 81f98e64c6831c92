package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore persists refresh tokens by hash. Implementations must
// expire tokens at their deadline and never reveal whether a lookup
// failed because the token was unknown, expired or revoked.
type TokenStore interface {
	StoreRefresh(ctx context.Context, userID, tokenHash string, exp time.Time) error
	ValidateRefresh(ctx context.Context, tokenHash string) (string, error)
	RevokeByHash(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID string) error
}

// ErrTokenStoreDown is returned when no Redis connection is
// available. Login still works; only refresh-token persistence is
// affected.
var ErrTokenStoreDown = errors.New("token store unavailable")

// RedisTokenRepo keeps refresh-token hashes in Redis. Each hash maps
// to its owner's user id with a TTL equal to the token lifetime, and
// a per-user set indexes the hashes so logout can revoke every
// session at once. Revocation is deletion: an absent key and an
// expired key are indistinguishable by design.
type RedisTokenRepo struct {
	RDB    *redis.Client
	Prefix string
}

func NewRedisTokenRepo(rdb *redis.Client) *RedisTokenRepo {
	return &RedisTokenRepo{RDB: rdb, Prefix: "rt"}
}

func (r *RedisTokenRepo) tokenKey(hash string) string { return r.Prefix + ":token:" + hash }
func (r *RedisTokenRepo) userKey(id string) string    { return r.Prefix + ":user:" + id }

// StoreRefresh writes hash -> userID with the token's remaining
// lifetime and indexes it under the user's session set.
func (r *RedisTokenRepo) StoreRefresh(ctx context.Context, userID, tokenHash string, exp time.Time) error {
	if r.RDB == nil {
		return ErrTokenStoreDown
	}
	ttl := time.Until(exp)
	if ttl <= 0 {
		return ErrInvalidRefresh
	}
	pipe := r.RDB.TxPipeline()
	pipe.Set(ctx, r.tokenKey(tokenHash), userID, ttl)
	pipe.SAdd(ctx, r.userKey(userID), tokenHash)
	// The set only needs to outlive its longest-lived member.
	pipe.Expire(ctx, r.userKey(userID), ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// ValidateRefresh resolves a hash to its owner, or ErrInvalidRefresh.
func (r *RedisTokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) (string, error) {
	if r.RDB == nil {
		return "", ErrTokenStoreDown
	}
	userID, err := r.RDB.Get(ctx, r.tokenKey(tokenHash)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrInvalidRefresh
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

// RevokeByHash deletes one token and its index entry.
func (r *RedisTokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	if r.RDB == nil {
		return ErrTokenStoreDown
	}
	userID, err := r.RDB.Get(ctx, r.tokenKey(tokenHash)).Result()
	if errors.Is(err, redis.Nil) {
		return nil // already gone
	}
	if err != nil {
		return err
	}
	pipe := r.RDB.TxPipeline()
	pipe.Del(ctx, r.tokenKey(tokenHash))
	pipe.SRem(ctx, r.userKey(userID), tokenHash)
	_, err = pipe.Exec(ctx)
	return err
}

// RevokeAllForUser deletes every token indexed for the user.
func (r *RedisTokenRepo) RevokeAllForUser(ctx context.Context, userID string) error {
	if r.RDB == nil {
		return ErrTokenStoreDown
	}
	hashes, err := r.RDB.SMembers(ctx, r.userKey(userID)).Result()
	if err != nil {
		return err
	}
	pipe := r.RDB.TxPipeline()
	for _, h := range hashes {
		pipe.Del(ctx, r.tokenKey(h))
	}
	pipe.Del(ctx, r.userKey(userID))
	_, err = pipe.Exec(ctx)
	return err
}
