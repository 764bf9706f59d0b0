package sessions

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"gotodo/models"
)

const opTimeout = 5 * time.Second

// Redis stores each session as a hash under "session:<token>" with the
// key's TTL doubling as the session lifetime.
type Redis struct {
	client *redis.Client
}

func OpenRedis(dsn string) (*Redis, error) {
	opt, err := redis.ParseURL(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing Redis DSN: %w", err)
	}

	opt.MinIdleConns = 2
	opt.DialTimeout = 5 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return &Redis{client: client}, nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) Create(ctx context.Context, userID int64, ttl time.Duration) (models.Session, error) {
	now := time.Now()
	session := models.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	key := "session:" + session.Token
	fields := map[string]any{
		"user_id":    strconv.FormatInt(session.UserID, 10),
		"created_at": session.CreatedAt.Format(time.RFC3339),
		"expires_at": session.ExpiresAt.Format(time.RFC3339),
	}
	if err := r.client.HSet(ctx, key, fields).Err(); err != nil {
		return models.Session{}, fmt.Errorf("storing session: %w", err)
	}
	if err := r.client.Expire(ctx, key, ttl).Err(); err != nil {
		return models.Session{}, fmt.Errorf("expiring session key: %w", err)
	}

	return session, nil
}

func (r *Redis) Get(ctx context.Context, token string) (models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	data, err := r.client.HGetAll(ctx, "session:"+token).Result()
	if err != nil {
		return models.Session{}, fmt.Errorf("reading session: %w", err)
	}
	if len(data) == 0 {
		return models.Session{}, ErrNoSession
	}

	userID, err := strconv.ParseInt(data["user_id"], 10, 64)
	if err != nil {
		return models.Session{}, fmt.Errorf("parsing session user id: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339, data["created_at"])
	if err != nil {
		return models.Session{}, fmt.Errorf("parsing session created_at: %w", err)
	}
	expiresAt, err := time.Parse(time.RFC3339, data["expires_at"])
	if err != nil {
		return models.Session{}, fmt.Errorf("parsing session expires_at: %w", err)
	}

	// Redis evicts the key on TTL anyway; the explicit check covers
	// clock skew between the stamp and the key TTL.
	if time.Now().After(expiresAt) {
		return models.Session{}, ErrNoSession
	}

	return models.Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: createdAt,
		ExpiresAt: expiresAt,
	}, nil
}

func (r *Redis) Destroy(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return r.client.Del(ctx, "session:"+token).Err()
}
