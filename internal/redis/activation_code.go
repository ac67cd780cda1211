package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	c "simpleauth/internal/core/domain/common"
	e "simpleauth/internal/core/domain/errors"
	"simpleauth/internal/core/domain/user"
	"time"

	"github.com/go-redis/redis/v9"
)

const keyPrefix = "activation-code::"

// Expired codes are kept for a retention window past their expiry so that
// an activation attempt with a stale code can still be told apart from one
// with no code at all. Redis drops the key afterwards on its own.
const retention = 24 * time.Hour

type codePayload struct {
	Code       string     `json:"code"`
	CreatedAt  time.Time  `json:"created_at"`
	ExpiresAt  time.Time  `json:"expires_at"`
	ConsumedAt *time.Time `json:"consumed_at,omitempty"`
}

// ActivationCodeRepository keeps activation codes in Redis, one key per
// user. It is a drop-in alternative to the pgx repository for deployments
// that do not want code rows in PostgreSQL.
type ActivationCodeRepository struct {
	redisClient *redis.Client
}

func NewActivationCodeRepository(redisClient *redis.Client) *ActivationCodeRepository {
	if redisClient == nil {
		panic(e.NewNilArgumentError("redisClient"))
	}
	return &ActivationCodeRepository{redisClient: redisClient}
}

func (r *ActivationCodeRepository) Put(
	ctx context.Context,
	code user.ActivationCode,
) (result user.ActivationCode, err error) {
	content, err := json.Marshal(encodeCode(code))
	if err != nil {
		return result, err
	}
	ttl := code.ExpiresAt.Add(retention).Sub(code.CreatedAt)
	if err := r.redisClient.Set(ctx, codeKey(code.UserID), content, ttl).Err(); err != nil {
		return result, err
	}
	return code, nil
}

func (r *ActivationCodeRepository) GetActiveForUser(
	ctx context.Context,
	userID user.ID,
) (code user.ActivationCode, err error) {
	content, err := r.redisClient.Get(ctx, codeKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return code, user.ErrNoActiveCode
	}
	if err != nil {
		return code, err
	}
	code, err = decodeCode(userID, content)
	if err != nil {
		return code, err
	}
	if code.IsConsumed() {
		return code, user.ErrNoActiveCode
	}
	return code, nil
}

const consumeRetries = 3

func (r *ActivationCodeRepository) Consume(
	ctx context.Context,
	userID user.ID,
	at time.Time,
) (bool, error) {
	for i := 0; i < consumeRetries; i++ {
		consumed, err := r.consume(ctx, userID, at)
		if errors.Is(err, redis.TxFailedErr) {
			// Another writer touched the key; take another look at it.
			continue
		}
		return consumed, err
	}
	return false, redis.TxFailedErr
}

func (r *ActivationCodeRepository) consume(
	ctx context.Context,
	userID user.ID,
	at time.Time,
) (consumed bool, err error) {
	key := codeKey(userID)
	err = r.redisClient.Watch(ctx, func(tx *redis.Tx) error {
		content, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return err
		}
		code, err := decodeCode(userID, content)
		if err != nil {
			return err
		}
		if code.IsConsumed() {
			return nil
		}

		code.ConsumedAt = c.NewOptional(at, true)
		updated, err := json.Marshal(encodeCode(code))
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, redis.KeepTTL)
			return nil
		})
		if err != nil {
			return err
		}
		consumed = true
		return nil
	}, key)
	if err != nil {
		return false, err
	}
	return consumed, nil
}

func (r *ActivationCodeRepository) Delete(ctx context.Context, userID user.ID) (bool, error) {
	count, err := r.redisClient.Del(ctx, codeKey(userID)).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ActivationCodeRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	iter := r.redisClient.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		content, err := r.redisClient.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return count, err
		}
		payload := codePayload{}
		if err := json.Unmarshal(content, &payload); err != nil {
			return count, err
		}
		if payload.ConsumedAt != nil || now.Before(payload.ExpiresAt) {
			continue
		}
		deleted, err := r.redisClient.Del(ctx, key).Result()
		if err != nil {
			return count, err
		}
		count += deleted
	}
	if err := iter.Err(); err != nil {
		return count, err
	}
	return count, nil
}

func codeKey(userID user.ID) string {
	return fmt.Sprintf("%s%d", keyPrefix, int64(userID))
}

func encodeCode(code user.ActivationCode) codePayload {
	payload := codePayload{
		Code:      string(code.Code),
		CreatedAt: code.CreatedAt,
		ExpiresAt: code.ExpiresAt,
	}
	if code.ConsumedAt.IsPresent {
		consumedAt := code.ConsumedAt.Value
		payload.ConsumedAt = &consumedAt
	}
	return payload
}

func decodeCode(userID user.ID, content []byte) (code user.ActivationCode, err error) {
	payload := codePayload{}
	if err := json.Unmarshal(content, &payload); err != nil {
		return code, err
	}
	code = user.ActivationCode{
		UserID:    userID,
		Code:      user.Code(payload.Code),
		CreatedAt: payload.CreatedAt,
		ExpiresAt: payload.ExpiresAt,
	}
	if payload.ConsumedAt != nil {
		code.ConsumedAt = c.NewOptional(*payload.ConsumedAt, true)
	}
	return code, nil
}
