package profile

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository implements Repository using in-memory storage,
// used in tests and local development.
type InMemoryRepository struct {
	mu       sync.RWMutex
	profiles map[int64]Profile
	nextID   int64
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		profiles: make(map[int64]Profile),
		nextID:   1,
	}
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id int64) (Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[id]
	if !ok {
		return Profile{}, ErrProfileNotFound
	}
	return p, nil
}

func (r *InMemoryRepository) FindProfiles(ctx context.Context) ([]Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *InMemoryRepository) Create(ctx context.Context, description string) (Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := Profile{ID: r.nextID, Description: description, Active: true}
	r.nextID++
	r.profiles[p.ID] = p
	return p, nil
}

// Seed inserts a profile with a fixed id, used to set up test fixtures
// such as the default signup profile.
func (r *InMemoryRepository) Seed(p Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.profiles[p.ID] = p
	if p.ID >= r.nextID {
		r.nextID = p.ID + 1
	}
}
