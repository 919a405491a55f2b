package prefs

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/moppie/ops-console/internal/infrastructure/store"
)

const (
	keyDarkMode         = "prefs.dark_mode"
	keySidebarCollapsed = "prefs.sidebar_collapsed"
)

// Manager holds the cross-cutting UI preferences. Dark mode and sidebar
// collapse survive restarts through the store; the mobile sidebar flag is
// session-scoped and lives in memory only.
type Manager struct {
	store store.Store

	mu          sync.RWMutex
	dark        bool
	collapsed   bool
	mobileOpen  bool
	subscribers []func(Snapshot)
}

// Snapshot is the full preference state handed to observers.
type Snapshot struct {
	DarkMode         bool
	SidebarCollapsed bool
	MobileSidebar    bool
}

// NewManager loads persisted preferences from the store.
func NewManager(st store.Store) *Manager {
	m := &Manager{store: st}
	if v, err := st.Get(keyDarkMode); err == nil {
		m.dark = v == "true"
	}
	if v, err := st.Get(keySidebarCollapsed); err == nil {
		m.collapsed = v == "true"
	}
	return m
}

// Subscribe registers an observer invoked after every change.
func (m *Manager) Subscribe(fn func(Snapshot)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers = append(m.subscribers, fn)
}

// DarkMode reports whether dark mode is on.
func (m *Manager) DarkMode() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dark
}

// SetDarkMode flips the theme and persists it.
func (m *Manager) SetDarkMode(on bool) {
	m.mu.Lock()
	m.dark = on
	m.mu.Unlock()
	m.persist(keyDarkMode, on)
	m.notify()
}

// ToggleDarkMode flips the theme.
func (m *Manager) ToggleDarkMode() bool {
	m.mu.Lock()
	m.dark = !m.dark
	on := m.dark
	m.mu.Unlock()
	m.persist(keyDarkMode, on)
	m.notify()
	return on
}

// SidebarCollapsed reports whether the sidebar is collapsed.
func (m *Manager) SidebarCollapsed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collapsed
}

// SetSidebarCollapsed persists the collapse state.
func (m *Manager) SetSidebarCollapsed(collapsed bool) {
	m.mu.Lock()
	m.collapsed = collapsed
	m.mu.Unlock()
	m.persist(keySidebarCollapsed, collapsed)
	m.notify()
}

// MobileSidebarOpen reports the session-scoped mobile flag.
func (m *Manager) MobileSidebarOpen() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.mobileOpen
}

// SetMobileSidebarOpen flips the session-scoped mobile flag.
func (m *Manager) SetMobileSidebarOpen(open bool) {
	m.mu.Lock()
	m.mobileOpen = open
	m.mu.Unlock()
	m.notify()
}

// Snapshot returns the current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{
		DarkMode:         m.dark,
		SidebarCollapsed: m.collapsed,
		MobileSidebar:    m.mobileOpen,
	}
}

func (m *Manager) persist(key string, on bool) {
	value := "false"
	if on {
		value = "true"
	}
	if err := m.store.Set(key, value); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to persist preference")
	}
}

func (m *Manager) notify() {
	m.mu.RLock()
	snapshot := Snapshot{DarkMode: m.dark, SidebarCollapsed: m.collapsed, MobileSidebar: m.mobileOpen}
	subs := append([]func(Snapshot){}, m.subscribers...)
	m.mu.RUnlock()
	for _, fn := range subs {
		fn(snapshot)
	}
}
