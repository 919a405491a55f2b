package prefs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moppie/ops-console/internal/infrastructure/store"
)

func TestDefaultsAreOff(t *testing.T) {
	m := NewManager(store.NewMemory())
	assert.False(t, m.DarkMode())
	assert.False(t, m.SidebarCollapsed())
	assert.False(t, m.MobileSidebarOpen())
}

func TestDarkModePersistsAcrossManagers(t *testing.T) {
	st := store.NewMemory()

	m := NewManager(st)
	m.SetDarkMode(true)
	assert.True(t, m.DarkMode())

	// a fresh manager over the same store sees the persisted value
	m2 := NewManager(st)
	assert.True(t, m2.DarkMode())
}

func TestToggleDarkMode(t *testing.T) {
	m := NewManager(store.NewMemory())
	assert.True(t, m.ToggleDarkMode())
	assert.False(t, m.ToggleDarkMode())
	assert.False(t, m.DarkMode())
}

func TestSidebarCollapsedPersists(t *testing.T) {
	st := store.NewMemory()

	m := NewManager(st)
	m.SetSidebarCollapsed(true)

	m2 := NewManager(st)
	assert.True(t, m2.SidebarCollapsed())
}

func TestMobileSidebarDoesNotPersist(t *testing.T) {
	st := store.NewMemory()

	m := NewManager(st)
	m.SetMobileSidebarOpen(true)
	assert.True(t, m.MobileSidebarOpen())

	m2 := NewManager(st)
	assert.False(t, m2.MobileSidebarOpen(), "the mobile flag is session scoped")
}

func TestSubscribersSeeEveryChange(t *testing.T) {
	m := NewManager(store.NewMemory())

	var snapshots []Snapshot
	m.Subscribe(func(s Snapshot) { snapshots = append(snapshots, s) })

	m.SetDarkMode(true)
	m.SetSidebarCollapsed(true)
	m.SetMobileSidebarOpen(true)

	require.Len(t, snapshots, 3)
	assert.True(t, snapshots[0].DarkMode)
	assert.False(t, snapshots[0].SidebarCollapsed)
	assert.True(t, snapshots[1].SidebarCollapsed)
	assert.True(t, snapshots[2].MobileSidebar)
}

func TestSnapshot(t *testing.T) {
	m := NewManager(store.NewMemory())
	m.SetDarkMode(true)
	m.SetMobileSidebarOpen(true)

	s := m.Snapshot()
	assert.True(t, s.DarkMode)
	assert.False(t, s.SidebarCollapsed)
	assert.True(t, s.MobileSidebar)
}
