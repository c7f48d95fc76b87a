package uistate

import (
	"encoding/json"
	"sync"

	"github.com/031wnstjd/appkit/pkg/observability/logger"
)

// Theme constants
const (
	// ThemeLight is the light UI theme
	ThemeLight = "light"
	// ThemeDark is the dark UI theme
	ThemeDark = "dark"
	// ThemeSystem defers to the platform preference
	ThemeSystem = "system"
)

// preferencesKey is the fixed key the persisted field subset is mirrored under.
const preferencesKey = "appkit:ui-preferences"

// State is a snapshot of the UI state container. Fields are replaced
// atomically by the Store's action methods.
type State struct {
	SidebarCollapsed bool   `json:"sidebar_collapsed"`
	Theme            string `json:"theme"`
	ActiveModal      string `json:"active_modal"`
	Loading          bool   `json:"loading"`
}

// persistedState is the subset of fields mirrored to the SyncStore.
type persistedState struct {
	SidebarCollapsed bool   `json:"sidebar_collapsed"`
	Theme            string `json:"theme"`
}

// Subscriber receives the new snapshot after every state change.
type Subscriber func(State)

// Store is a reactive container over a flat UI state snapshot. Action methods
// replace fields atomically and notify subscribers; the theme and sidebar
// fields are additionally mirrored to a synchronous key/value store when one
// is supplied, and reloaded from it at construction.
type Store struct {
	mu     sync.Mutex
	state  State
	subs   map[int]Subscriber
	nextID int
	sync   SyncStore
	logger logger.Logger
}

// NewStore creates a Store. sync may be nil, in which case persistence is
// skipped entirely (non-browser-equivalent context).
func NewStore(sync SyncStore, log logger.Logger) *Store {
	if log == nil {
		log = logger.NewNopLogger()
	}

	s := &Store{
		state: State{
			Theme: ThemeSystem,
		},
		subs:   make(map[int]Subscriber),
		sync:   sync,
		logger: log,
	}
	s.restore()
	return s
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to be called with every new snapshot. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// SetSidebarCollapsed sets the sidebar collapsed flag.
func (s *Store) SetSidebarCollapsed(collapsed bool) {
	s.update(func(st *State) { st.SidebarCollapsed = collapsed }, true)
}

// ToggleSidebar flips the sidebar collapsed flag.
func (s *Store) ToggleSidebar() {
	s.update(func(st *State) { st.SidebarCollapsed = !st.SidebarCollapsed }, true)
}

// SetTheme sets the UI theme. Unknown values fall back to the system theme.
func (s *Store) SetTheme(theme string) {
	switch theme {
	case ThemeLight, ThemeDark, ThemeSystem:
	default:
		theme = ThemeSystem
	}
	s.update(func(st *State) { st.Theme = theme }, true)
}

// OpenModal records the active modal name.
func (s *Store) OpenModal(name string) {
	s.update(func(st *State) { st.ActiveModal = name }, false)
}

// CloseModal clears the active modal.
func (s *Store) CloseModal() {
	s.update(func(st *State) { st.ActiveModal = "" }, false)
}

// SetLoading sets the global loading flag.
func (s *Store) SetLoading(loading bool) {
	s.update(func(st *State) { st.Loading = loading }, false)
}

// Reset restores the default state and removes the persisted subset.
func (s *Store) Reset() {
	s.mu.Lock()
	s.state = State{Theme: ThemeSystem}
	snapshot := s.state
	subs := s.subscribers()
	s.mu.Unlock()

	if s.sync != nil {
		if err := s.sync.Delete(preferencesKey); err != nil {
			s.logger.Warn("failed to clear persisted preferences", "error", err)
		}
	}
	for _, fn := range subs {
		fn(snapshot)
	}
}

// update applies mutate under the lock, persists when the touched fields are
// part of the mirrored subset, then notifies subscribers outside the lock.
func (s *Store) update(mutate func(*State), persist bool) {
	s.mu.Lock()
	mutate(&s.state)
	snapshot := s.state
	subs := s.subscribers()
	s.mu.Unlock()

	if persist {
		s.persist(snapshot)
	}
	for _, fn := range subs {
		fn(snapshot)
	}
}

func (s *Store) subscribers() []Subscriber {
	subs := make([]Subscriber, 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return subs
}

// persist mirrors the persisted subset to the SyncStore. Persistence failures
// are logged and do not fail the action; the in-memory state is the source of
// truth for the running process.
func (s *Store) persist(snapshot State) {
	if s.sync == nil {
		return
	}

	data, err := json.Marshal(persistedState{
		SidebarCollapsed: snapshot.SidebarCollapsed,
		Theme:            snapshot.Theme,
	})
	if err != nil {
		s.logger.Warn("failed to encode preferences", "error", err)
		return
	}
	if err := s.sync.Set(preferencesKey, string(data)); err != nil {
		s.logger.Warn("failed to persist preferences", "error", err)
	}
}

// restore reloads the persisted subset at construction.
func (s *Store) restore() {
	if s.sync == nil {
		return
	}

	raw, ok := s.sync.Get(preferencesKey)
	if !ok {
		return
	}

	var persisted persistedState
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil {
		s.logger.Warn("ignoring corrupt persisted preferences", "error", err)
		return
	}

	s.state.SidebarCollapsed = persisted.SidebarCollapsed
	switch persisted.Theme {
	case ThemeLight, ThemeDark, ThemeSystem:
		s.state.Theme = persisted.Theme
	}
}
