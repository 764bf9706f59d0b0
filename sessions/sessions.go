// Package sessions maps cookie tokens to user ids with a TTL. The
// contract is create/read/destroy only; everything else about a request's
// identity is derived from the user row.
package sessions

import (
	"context"
	"errors"
	"time"

	"gotodo/models"
)

// ErrNoSession is returned for tokens that are unknown or expired.
var ErrNoSession = errors.New("session not found")

type Store interface {
	Create(ctx context.Context, userID int64, ttl time.Duration) (models.Session, error)
	Get(ctx context.Context, token string) (models.Session, error)
	// Destroy is idempotent: destroying an unknown token is not an error.
	Destroy(ctx context.Context, token string) error
}
