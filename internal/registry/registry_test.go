package registry_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerdmakr/claude-notify/internal/model"
	"github.com/nerdmakr/claude-notify/internal/registry"
	"github.com/nerdmakr/claude-notify/tests/testutil"
)

func TestRegistry_AddAssignsIdentity(t *testing.T) {
	r := testutil.NewTestRegistry(t, time.Hour)

	a := r.Add("demo", "/home/u/demo", "first", nil, nil, "")
	b := r.Add("demo", "/home/u/demo", "second", nil, nil, "")

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.Timestamp.IsZero())
}

func TestRegistry_AddDefaultsMessage(t *testing.T) {
	r := testutil.NewTestRegistry(t, time.Hour)

	n := r.Add("demo", "/home/u/demo", "", nil, nil, "")

	assert.Equal(t, model.DefaultMessage, n.Message)
}

func TestRegistry_SnapshotNewestFirst(t *testing.T) {
	r := testutil.NewTestRegistry(t, time.Hour)

	r.Add("demo", "/home/u/demo", "first", nil, nil, "")
	r.Add("demo", "/home/u/demo", "second", nil, nil, "")
	r.Add("demo", "/home/u/demo", "third", nil, nil, "")

	records := r.Snapshot()
	require.Len(t, records, 3)
	assert.Equal(t, "third", records[0].Message)
	assert.Equal(t, "second", records[1].Message)
	assert.Equal(t, "first", records[2].Message)

	for i := 1; i < len(records); i++ {
		assert.False(t, records[i].Timestamp.After(records[i-1].Timestamp))
	}
}

func TestRegistry_AddShowsPanel(t *testing.T) {
	r := testutil.NewTestRegistry(t, time.Hour)

	require.False(t, r.PanelVisible())
	r.Add("demo", "/home/u/demo", "done", nil, nil, "")

	assert.True(t, r.PanelVisible())
}

func TestRegistry_RemoveUnknownIsNoop(t *testing.T) {
	r := testutil.NewTestRegistry(t, time.Hour)
	r.Add("demo", "/home/u/demo", "done", nil, nil, "")

	r.Remove("nope")

	assert.Len(t, r.Snapshot(), 1)
}

func TestRegistry_RemoveLastHidesPanel(t *testing.T) {
	r := testutil.NewTestRegistry(t, time.Hour)
	n := r.Add("demo", "/home/u/demo", "done", nil, nil, "")
	require.True(t, r.PanelVisible())

	r.Remove(n.ID)

	assert.Empty(t, r.Snapshot())
	assert.False(t, r.PanelVisible())
}

func TestRegistry_RemoveKeepsPanelWhenRecordsRemain(t *testing.T) {
	r := testutil.NewTestRegistry(t, time.Hour)
	first := r.Add("demo", "/home/u/demo", "first", nil, nil, "")
	r.Add("demo", "/home/u/demo", "second", nil, nil, "")

	r.Remove(first.ID)

	assert.Len(t, r.Snapshot(), 1)
	assert.True(t, r.PanelVisible())
}

func TestRegistry_ToggleRead(t *testing.T) {
	r := testutil.NewTestRegistry(t, time.Hour)
	n := r.Add("demo", "/home/u/demo", "done", nil, nil, "")

	r.ToggleRead(n.ID)
	assert.True(t, r.Snapshot()[0].IsRead)

	r.ToggleRead(n.ID)
	assert.False(t, r.Snapshot()[0].IsRead)

	// Unknown id leaves everything untouched.
	r.ToggleRead("nope")
	assert.False(t, r.Snapshot()[0].IsRead)
}

func TestRegistry_ClearAll(t *testing.T) {
	r := testutil.NewTestRegistry(t, time.Hour)
	r.Add("demo", "/home/u/demo", "first", nil, nil, "")
	r.Add("demo", "/home/u/demo", "second", nil, nil, "")

	r.ClearAll()

	assert.Empty(t, r.Snapshot())
	assert.False(t, r.PanelVisible())
}

func TestRegistry_AutoDismissAfterDelay(t *testing.T) {
	r := testutil.NewTestRegistry(t, 40*time.Millisecond)

	r.Add("demo", "/home/u/demo", "done", nil, nil, "")
	require.True(t, r.PanelVisible())

	assert.Eventually(t, func() bool {
		return !r.PanelVisible()
	}, time.Second, 5*time.Millisecond)

	// Dismissal hides the panel but never touches the records.
	assert.Len(t, r.Snapshot(), 1)
}

func TestRegistry_NewArrivalRestartsCountdown(t *testing.T) {
	r := testutil.NewTestRegistry(t, 120*time.Millisecond)

	r.Add("demo", "/home/u/demo", "first", nil, nil, "")
	time.Sleep(70 * time.Millisecond)
	r.Add("demo", "/home/u/demo", "second", nil, nil, "")
	time.Sleep(70 * time.Millisecond)

	// 140ms after the first arrival the panel is still up because the
	// second arrival restarted the countdown.
	assert.True(t, r.PanelVisible())

	assert.Eventually(t, func() bool {
		return !r.PanelVisible()
	}, time.Second, 5*time.Millisecond)
}

func TestRegistry_ManualShowStaysUp(t *testing.T) {
	r := testutil.NewTestRegistry(t, 40*time.Millisecond)
	r.Add("demo", "/home/u/demo", "done", nil, nil, "")

	r.ShowPanel()
	time.Sleep(100 * time.Millisecond)

	assert.True(t, r.PanelVisible())

	r.DismissPanel()
	assert.False(t, r.PanelVisible())
}

func TestRegistry_PersistsAcrossRestart(t *testing.T) {
	recordLog := testutil.NewTestRecordLog(t)

	r := registry.New(recordLog, time.Hour, 5, nil, nil, testutil.NewTestLogger())
	require.NoError(t, r.Start())
	r.SetScreenSize(120, 40)
	r.Add("demo", "/home/u/demo", "first", nil, nil, "")
	r.Add("demo", "/home/u/demo", "second", nil, nil, "")
	r.Stop()

	restarted := registry.New(recordLog, time.Hour, 5, nil, nil, testutil.NewTestLogger())
	require.NoError(t, restarted.Start())
	defer restarted.Stop()

	records := restarted.Snapshot()
	require.Len(t, records, 2)
	assert.Equal(t, "second", records[0].Message)
	assert.Equal(t, "first", records[1].Message)
}

func TestRegistry_ClearAllDoesNotTruncateLog(t *testing.T) {
	recordLog := testutil.NewTestRecordLog(t)

	r := registry.New(recordLog, time.Hour, 5, nil, nil, testutil.NewTestLogger())
	require.NoError(t, r.Start())
	r.SetScreenSize(120, 40)
	r.Add("demo", "/home/u/demo", "done", nil, nil, "")
	r.ClearAll()
	r.Stop()

	records, err := recordLog.LoadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestRegistry_CueSelection(t *testing.T) {
	r := testutil.NewTestRegistry(t, time.Hour)

	assert.Equal(t, "Pop", r.Cue())

	r.SetCue("Glass")
	assert.Equal(t, "Glass", r.Cue())
}
