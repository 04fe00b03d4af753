package role

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository implements Repository using in-memory storage,
// used in tests and local development.
type InMemoryRepository struct {
	mu           sync.RWMutex
	roles        map[int64]Role
	profileRoles map[int64][]int64
	nextID       int64
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		roles:        make(map[int64]Role),
		profileRoles: make(map[int64][]int64),
		nextID:       1,
	}
}

func (r *InMemoryRepository) FindRoles(ctx context.Context) ([]Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Role, 0, len(r.roles))
	for _, role := range r.roles {
		out = append(out, role)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *InMemoryRepository) FindRoleByName(ctx context.Context, name string) (Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, role := range r.roles {
		if role.Name == name {
			return role, nil
		}
	}
	return Role{}, ErrRoleNotFound
}

func (r *InMemoryRepository) CreateRole(ctx context.Context, name, description string) (Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, role := range r.roles {
		if role.Name == name {
			return Role{}, ErrRoleExists
		}
	}
	role := Role{ID: r.nextID, Name: name, Description: description}
	r.nextID++
	r.roles[role.ID] = role
	return role, nil
}

func (r *InMemoryRepository) FindRoleNamesByProfileID(ctx context.Context, profileID int64) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.profileRoles[profileID]
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if role, ok := r.roles[id]; ok {
			names = append(names, role.Name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (r *InMemoryRepository) SetProfileRoles(ctx context.Context, profileID int64, roleIDs []int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range roleIDs {
		if _, ok := r.roles[id]; !ok {
			return ErrRoleNotFound
		}
	}
	r.profileRoles[profileID] = append([]int64(nil), roleIDs...)
	return nil
}
