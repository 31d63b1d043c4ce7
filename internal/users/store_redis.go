// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/library/internal/platform/constants"
)

// CachedRepository puts a Redis cache-aside layer in front of another
// [Repository] for single-user lookups.
//
// Users are never updated or deleted, so a cached entry stays correct until
// it expires. Any Redis failure is logged and the call falls through to the
// wrapped repository.
type CachedRepository struct {
	next   Repository
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedRepository wraps next with a cache stored in client.
func NewCachedRepository(next Repository, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedRepository {
	return &CachedRepository{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (repository *CachedRepository) Create(context context.Context, user *User) (int, error) {
	id, err := repository.next.Create(context, user)
	if err != nil {
		return 0, err
	}

	repository.store(context, user)
	return id, nil
}

/*
GetByID serves the user from Redis when present.

Description: On a miss the wrapped repository is queried and a found user is
written back. Absent users are not cached.
*/
func (repository *CachedRepository) GetByID(context context.Context, id int) (*User, error) {
	if cached, err := repository.load(context, id); err != nil {
		repository.logger.Warn("user_cache_read_failed", slog.Int("user_id", id), slog.Any("error", err))
	} else if cached != nil {
		return cached, nil
	}

	user, err := repository.next.GetByID(context, id)
	if err != nil || user == nil {
		return user, err
	}

	repository.store(context, user)
	return user, nil
}

func (repository *CachedRepository) Exists(context context.Context, id int) (bool, error) {
	count, err := repository.client.Exists(context, cacheKey(id)).Result()
	if err != nil {
		repository.logger.Warn("user_cache_read_failed", slog.Int("user_id", id), slog.Any("error", err))
	} else if count > 0 {
		return true, nil
	}

	return repository.next.Exists(context, id)
}

func (repository *CachedRepository) GetByName(context context.Context, name string) ([]*User, error) {
	return repository.next.GetByName(context, name)
}

func (repository *CachedRepository) GetAll(context context.Context) ([]*User, error) {
	return repository.next.GetAll(context)
}

// load returns nil, nil on a cache miss.
func (repository *CachedRepository) load(context context.Context, id int) (*User, error) {
	value, err := repository.client.Get(context, cacheKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis_user_get_failed: %w", err)
	}

	var user User
	if err := json.Unmarshal(value, &user); err != nil {
		return nil, fmt.Errorf("redis_user_decode_failed: %w", err)
	}
	return &user, nil
}

func (repository *CachedRepository) store(context context.Context, user *User) {
	value, err := json.Marshal(user)
	if err != nil {
		repository.logger.Warn("user_cache_encode_failed", slog.Int("user_id", user.ID), slog.Any("error", err))
		return
	}

	if err := repository.client.Set(context, cacheKey(user.ID), value, repository.ttl).Err(); err != nil {
		repository.logger.Warn("user_cache_write_failed", slog.Int("user_id", user.ID), slog.Any("error", err))
	}
}

func cacheKey(id int) string {
	return constants.RedisPrefixUser + strconv.Itoa(id)
}
