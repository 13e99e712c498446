// Package session implements the server-side session store. The cookie holds
// a signed token whose sid claim keys a redis record with the authenticated
// identity; deleting the record invalidates the token immediately.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwalitptl/patient-portal/internal/apperror"
	"github.com/jwalitptl/patient-portal/internal/config"
	"github.com/jwalitptl/patient-portal/internal/model"
)

const keyPrefix = "session:"

type Store struct {
	client *redis.Client
	secret []byte
	ttl    time.Duration
}

func NewStore(redisCfg config.RedisConfig, sessionCfg config.SessionConfig) (*Store, error) {
	opts, err := redis.ParseURL(redisCfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Store{
		client: client,
		secret: []byte(sessionCfg.Secret),
		ttl:    time.Duration(sessionCfg.TTLHours) * time.Hour,
	}, nil
}

// Create establishes a session for the identity and returns the cookie value.
func (s *Store) Create(ctx context.Context, ident model.Identity) (string, error) {
	sid := uuid.New().String()

	payload, err := json.Marshal(ident)
	if err != nil {
		return "", fmt.Errorf("failed to marshal identity: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+sid, payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return signToken(s.secret, sid, time.Now().Add(s.ttl))
}

// Identity resolves a cookie value to the bound identity. Any failure, from a
// bad signature to a missing record, reads as anonymous.
func (s *Store) Identity(ctx context.Context, token string) (*model.Identity, error) {
	sid, err := parseToken(s.secret, token)
	if err != nil {
		return nil, apperror.Authentication()
	}

	payload, err := s.client.Get(ctx, keyPrefix+sid).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperror.Authentication()
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var ident model.Identity
	if err := json.Unmarshal(payload, &ident); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &ident, nil
}

// Destroy clears the bound identity. Destroying an unknown or already
// expired session is not an error.
func (s *Store) Destroy(ctx context.Context, token string) error {
	sid, err := parseToken(s.secret, token)
	if err != nil {
		return nil
	}

	if err := s.client.Del(ctx, keyPrefix+sid).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Ping reports whether the backing redis is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
