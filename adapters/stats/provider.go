// Package stats provides read-only user posting history for quotes.
// The engine never writes stats; callers fetch a fresh snapshot before checkout.
package stats

import (
	"context"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"listing-pricing/core/types"
	"listing-pricing/internal/errors"
	"listing-pricing/internal/logging"
)

// Provider supplies a user's posting stats
type Provider interface {
	Stats(ctx context.Context, userID string) (types.UserPostingStats, error)
}

// snapshotFile is the on-disk YAML layout:
//
//	users:
//	  u-123:
//	    posts:
//	      job: 2
//	      booth: 1
//	    referrals: 3
type snapshotFile struct {
	Users map[string]userEntry `yaml:"users"`
}

type userEntry struct {
	Posts     map[string]int `yaml:"posts"`
	Referrals int            `yaml:"referrals"`
}

// FileProvider serves stats from a YAML snapshot file. The file is read on
// first use and cached until Reload.
type FileProvider struct {
	path string

	mu    sync.RWMutex
	users map[string]types.UserPostingStats
}

// NewFileProvider creates a provider over a snapshot file
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

// Stats returns the snapshot for a user. Unknown users are NOT_FOUND.
func (p *FileProvider) Stats(ctx context.Context, userID string) (types.UserPostingStats, error) {
	if err := ctx.Err(); err != nil {
		return types.UserPostingStats{}, err
	}

	users, err := p.snapshot()
	if err != nil {
		return types.UserPostingStats{}, err
	}

	s, ok := users[userID]
	if !ok {
		return types.UserPostingStats{}, errors.NotFound("user stats", userID)
	}
	return copyStats(s), nil
}

// snapshot returns the cached users, reading the file once when nothing is cached
func (p *FileProvider) snapshot() (map[string]types.UserPostingStats, error) {
	p.mu.RLock()
	users := p.users
	p.mu.RUnlock()
	if users != nil {
		return users, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.users == nil {
		if err := p.loadLocked(); err != nil {
			return nil, err
		}
	}
	return p.users, nil
}

// Reload re-reads the snapshot file
func (p *FileProvider) Reload() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadLocked()
}

// loadLocked reads the file into the cache; p.mu must be held for writing
func (p *FileProvider) loadLocked() error {
	users, err := readSnapshot(p.path)
	if err != nil {
		return err
	}
	p.users = users

	logging.Debug("stats snapshot loaded", zap.String("path", p.path), zap.Int("users", len(users)))
	return nil
}

func readSnapshot(path string) (map[string]types.UserPostingStats, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("stats file", path)
		}
		return nil, errors.Wrap(errors.TypeInput, "failed to read stats file", err)
	}

	var f snapshotFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, errors.Wrap(errors.TypeInput, "failed to parse stats file", err).WithContext("path", path)
	}

	users := make(map[string]types.UserPostingStats, len(f.Users))
	for id, entry := range f.Users {
		s, err := entry.toStats()
		if err != nil {
			return nil, errors.Wrapf(errors.TypeInput, err, "invalid stats for user %s", id).WithContext("path", path)
		}
		users[id] = s
	}
	return users, nil
}

func (e userEntry) toStats() (types.UserPostingStats, error) {
	if e.Referrals < 0 {
		return types.UserPostingStats{}, fmt.Errorf("referral count %d is negative", e.Referrals)
	}
	s := types.UserPostingStats{
		PostCounts:    make(map[types.Category]int, len(e.Posts)),
		ReferralCount: e.Referrals,
	}
	for name, n := range e.Posts {
		category, err := types.ParseCategory(name)
		if err != nil {
			return types.UserPostingStats{}, err
		}
		if n < 0 {
			return types.UserPostingStats{}, fmt.Errorf("post count for %s is negative", category)
		}
		s.PostCounts[category] += n
	}
	return s, nil
}

// MemoryProvider serves stats held in memory
type MemoryProvider struct {
	mu    sync.RWMutex
	users map[string]types.UserPostingStats
}

// NewMemoryProvider creates an empty in-memory provider
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{users: make(map[string]types.UserPostingStats)}
}

// Set stores a copy of a user's stats
func (p *MemoryProvider) Set(userID string, s types.UserPostingStats) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.users[userID] = copyStats(s)
}

// Stats returns the user's stats. Unknown users are NOT_FOUND.
func (p *MemoryProvider) Stats(ctx context.Context, userID string) (types.UserPostingStats, error) {
	if err := ctx.Err(); err != nil {
		return types.UserPostingStats{}, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()

	s, ok := p.users[userID]
	if !ok {
		return types.UserPostingStats{}, errors.NotFound("user stats", userID)
	}
	return copyStats(s), nil
}

func copyStats(s types.UserPostingStats) types.UserPostingStats {
	out := types.UserPostingStats{ReferralCount: s.ReferralCount}
	if s.PostCounts != nil {
		out.PostCounts = make(map[types.Category]int, len(s.PostCounts))
		for k, v := range s.PostCounts {
			out.PostCounts[k] = v
		}
	}
	return out
}
