package settings

import (
	"sync/atomic"

	"github.com/goliatone/go-cms-l10n/internal/runtimeconfig"
)

// State holds the current snapshot for lock-free reads by request handlers.
type State struct {
	current atomic.Pointer[runtimeconfig.Snapshot]
}

func NewState(initial runtimeconfig.Snapshot) *State {
	st := &State{}
	st.Store(initial)
	return st
}

// Load returns the current snapshot.
func (s *State) Load() runtimeconfig.Snapshot {
	if s == nil {
		return runtimeconfig.Snapshot{}
	}
	if snap := s.current.Load(); snap != nil {
		return *snap
	}
	return runtimeconfig.Snapshot{}
}

func (s *State) Store(snap runtimeconfig.Snapshot) {
	if s == nil {
		return
	}
	s.current.Store(&snap)
}
