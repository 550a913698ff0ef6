package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSettingRepo struct {
	values map[string]string
	err    error
	reads  int
}

func (f *fakeSettingRepo) GetSetting(_ context.Context, key string) (string, bool, error) {
	f.reads++
	if f.err != nil {
		return "", false, f.err
	}
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *fakeSettingRepo) UpsertSetting(_ context.Context, key, value string) error {
	if f.err != nil {
		return f.err
	}
	if f.values == nil {
		f.values = map[string]string{}
	}
	f.values[key] = value
	return nil
}

func TestModeProviderDefaultWhenEmpty(t *testing.T) {
	p := NewModeProvider(&fakeSettingRepo{}, time.Minute)
	assert.Equal(t, DefaultMode, p.Current(context.Background()))
}

func TestModeProviderDefaultOnStoreError(t *testing.T) {
	p := NewModeProvider(&fakeSettingRepo{err: errors.New("db down")}, time.Minute)
	assert.Equal(t, DefaultMode, p.Current(context.Background()))
}

func TestModeProviderDefaultOnUnknownValue(t *testing.T) {
	repo := &fakeSettingRepo{values: map[string]string{"scoring_mode": "nonsense"}}
	p := NewModeProvider(repo, time.Minute)
	assert.Equal(t, DefaultMode, p.Current(context.Background()))
}

func TestModeProviderSetThenCurrent(t *testing.T) {
	repo := &fakeSettingRepo{}
	p := NewModeProvider(repo, time.Minute)

	// warm the cache with the default, then change the mode
	assert.Equal(t, DefaultMode, p.Current(context.Background()))
	require.NoError(t, p.Set(context.Background(), ModeWilson))

	// Set drops the cache, the next read sees the new mode immediately
	assert.Equal(t, ModeWilson, p.Current(context.Background()))
}

func TestModeProviderRejectsUnknownMode(t *testing.T) {
	p := NewModeProvider(&fakeSettingRepo{}, time.Minute)
	assert.Error(t, p.Set(context.Background(), Mode("nonsense")))
}

func TestModeProviderCachesReads(t *testing.T) {
	repo := &fakeSettingRepo{values: map[string]string{"scoring_mode": "percentile"}}
	p := NewModeProvider(repo, time.Minute)

	for i := 0; i < 5; i++ {
		assert.Equal(t, ModePercentile, p.Current(context.Background()))
	}
	assert.Equal(t, 1, repo.reads, "store hit once per TTL window")
}
