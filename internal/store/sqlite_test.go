package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerdmakr/claude-notify/internal/store"
	"github.com/nerdmakr/claude-notify/tests/testutil"
)

func TestSettingsStore_FallbackWhenUnset(t *testing.T) {
	s := testutil.NewTestSettings(t)

	value, err := s.Get(context.Background(), store.SettingSoundCue, "Pop")

	require.NoError(t, err)
	assert.Equal(t, "Pop", value)
}

func TestSettingsStore_SetAndGet(t *testing.T) {
	s := testutil.NewTestSettings(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, store.SettingSoundCue, "Glass"))

	value, err := s.Get(ctx, store.SettingSoundCue, "Pop")
	require.NoError(t, err)
	assert.Equal(t, "Glass", value)
}

func TestSettingsStore_Overwrite(t *testing.T) {
	s := testutil.NewTestSettings(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, store.SettingGroupMode, "date"))
	require.NoError(t, s.Set(ctx, store.SettingGroupMode, "project"))

	value, err := s.Get(ctx, store.SettingGroupMode, "date")
	require.NoError(t, err)
	assert.Equal(t, "project", value)
}

func TestSettingsStore_KeysAreIndependent(t *testing.T) {
	s := testutil.NewTestSettings(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, store.SettingSoundCue, "Hero"))

	value, err := s.Get(ctx, store.SettingGroupMode, "date")
	require.NoError(t, err)
	assert.Equal(t, "date", value)
}
