package settings

import (
	"context"
	"sync"
)

// MemoryRepository stores settings in memory.
type MemoryRepository struct {
	mu          sync.RWMutex
	settings    *Settings
	broadcaster *changeBroadcaster
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{broadcaster: newChangeBroadcaster()}
}

func (r *MemoryRepository) Get(context.Context) (Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.settings == nil {
		return Settings{}, ErrSettingsNotFound
	}
	return r.settings.clone(), nil
}

// Upsert stores settings. Unchanged values emit no event.
func (r *MemoryRepository) Upsert(_ context.Context, settings Settings) (Settings, error) {
	r.mu.Lock()
	created := r.settings == nil
	unchanged := !created && r.settings.Equal(settings)
	stored := settings.clone()
	r.settings = &stored
	r.mu.Unlock()

	if unchanged {
		return settings.clone(), nil
	}
	changeType := ChangeUpdated
	if created {
		changeType = ChangeCreated
	}
	r.broadcaster.Broadcast(newChangeEvent(changeType, settings))
	return settings.clone(), nil
}

func (r *MemoryRepository) Delete(context.Context) error {
	r.mu.Lock()
	if r.settings == nil {
		r.mu.Unlock()
		return ErrSettingsNotFound
	}
	r.settings = nil
	r.mu.Unlock()

	r.broadcaster.Broadcast(newChangeEvent(ChangeDeleted, Settings{}))
	return nil
}

func (r *MemoryRepository) Subscribe(ctx context.Context) (<-chan ChangeEvent, error) {
	return r.broadcaster.Subscribe(ctx)
}
