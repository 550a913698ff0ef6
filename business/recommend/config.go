package recommend

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"myMealPlanner/pkg/logger"
)

// SettingRepository reads and writes the scoring configuration store.
type SettingRepository interface {
	GetSetting(ctx context.Context, key string) (string, bool, error)
	UpsertSetting(ctx context.Context, key, value string) error
}

const (
	scoringModeKey       = "scoring_mode"
	defaultModeCacheTTL  = 30 * time.Second
	scoringModeCacheSlot = "current"
)

// ModeProvider serves the current scoring mode, re-read from the store at
// most once per TTL. A request may observe a mode at most one interval
// stale; within one request the mode is read once, so normalization stays
// internally consistent.
type ModeProvider struct {
	settingRepo SettingRepository
	cache       *gocache.Cache
}

func NewModeProvider(settingRepo SettingRepository, ttl time.Duration) *ModeProvider {
	if ttl <= 0 {
		ttl = defaultModeCacheTTL
	}
	return &ModeProvider{
		settingRepo: settingRepo,
		cache:       gocache.New(ttl, 2*ttl),
	}
}

// Current returns the configured scoring mode, falling back to the
// default when the store is unreachable, empty, or holds an unknown value.
func (p *ModeProvider) Current(ctx context.Context) Mode {
	if cached, ok := p.cache.Get(scoringModeCacheSlot); ok {
		return cached.(Mode)
	}

	mode := DefaultMode
	if p.settingRepo != nil {
		value, found, err := p.settingRepo.GetSetting(ctx, scoringModeKey)
		switch {
		case err != nil:
			logger.Warn("Failed to read scoring mode, using default", "error", err)
		case found:
			if parsed, ok := ParseMode(value); ok {
				mode = parsed
			} else {
				logger.Warn("Unknown scoring mode in store, using default", "value", value)
			}
		}
	}

	p.cache.SetDefault(scoringModeCacheSlot, mode)
	return mode
}

// Set persists a new scoring mode and drops the cached value so the next
// request sees it immediately.
func (p *ModeProvider) Set(ctx context.Context, mode Mode) error {
	if _, ok := ParseMode(string(mode)); !ok {
		return fmt.Errorf("unknown scoring mode: %s", mode)
	}
	if p.settingRepo == nil {
		return fmt.Errorf("no scoring setting store configured")
	}
	if err := p.settingRepo.UpsertSetting(ctx, scoringModeKey, string(mode)); err != nil {
		return fmt.Errorf("save scoring mode: %w", err)
	}
	p.cache.Delete(scoringModeCacheSlot)
	return nil
}
