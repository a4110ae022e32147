// Package agenda keeps per-user task lists in Redis sets.
//
// The set for a user is keyed by display name, which means two users with
// the same name share an agenda. That is a known limitation inherited from
// the store layout, not something this package tries to resolve.
package agenda

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	// ErrEmpty is returned when removing from an agenda with no entries.
	ErrEmpty = errors.New("agenda: no entries")
	// ErrOutOfRange is returned when a removal position is not within the
	// current listing.
	ErrOutOfRange = errors.New("agenda: position out of range")
)

// Commands is the subset of Redis commands the store needs. *redis.Client
// satisfies it; tests substitute a fake.
type Commands interface {
	SAdd(ctx context.Context, key string, members ...interface{}) *redis.IntCmd
	SRem(ctx context.Context, key string, members ...interface{}) *redis.IntCmd
	SMembers(ctx context.Context, key string) *redis.StringSliceCmd
}

// Store is the agenda store. Entries are unordered: Redis sets do not keep
// duplicates apart and give no stable enumeration order between calls.
type Store struct {
	rdb    Commands
	logger *zap.Logger
}

// New constructs a Store on top of a Redis connection.
func New(rdb Commands, logger *zap.Logger) *Store {
	return &Store{rdb: rdb, logger: logger}
}

// Add puts a task on the user's agenda.
func (s *Store) Add(ctx context.Context, user, task string) error {
	if err := s.rdb.SAdd(ctx, user, task).Err(); err != nil {
		s.logger.Error("adding agenda task failed",
			zap.String("user", user),
			zap.Error(err))
		return fmt.Errorf("adding task for %q: %w", user, err)
	}
	return nil
}

// Remove deletes the task at the given 1-based position of a freshly
// fetched listing and returns it. The position refers to the listing made
// inside this call; concurrent mutations of the same agenda can shift which
// entry it lands on. That race is inherent to remove-by-position and is
// left as is.
func (s *Store) Remove(ctx context.Context, user string, position int) (string, error) {
	tasks, err := s.rdb.SMembers(ctx, user).Result()
	if err != nil {
		s.logger.Error("listing agenda failed",
			zap.String("user", user),
			zap.Error(err))
		return "", fmt.Errorf("listing tasks for %q: %w", user, err)
	}

	if len(tasks) == 0 {
		return "", ErrEmpty
	}
	if position < 1 || position > len(tasks) {
		return "", ErrOutOfRange
	}

	task := tasks[position-1]
	if err := s.rdb.SRem(ctx, user, task).Err(); err != nil {
		s.logger.Error("removing agenda task failed",
			zap.String("user", user),
			zap.Error(err))
		return "", fmt.Errorf("removing task for %q: %w", user, err)
	}
	return task, nil
}

// List returns the user's agenda in whatever order the store enumerates it.
func (s *Store) List(ctx context.Context, user string) ([]string, error) {
	tasks, err := s.rdb.SMembers(ctx, user).Result()
	if err != nil {
		s.logger.Error("listing agenda failed",
			zap.String("user", user),
			zap.Error(err))
		return nil, fmt.Errorf("listing tasks for %q: %w", user, err)
	}
	return tasks, nil
}
