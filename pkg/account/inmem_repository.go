package account

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

// ErrDuplicateKey is returned when a save would violate the email or
// national-id uniqueness invariant.
var ErrDuplicateKey = errors.New("account with this email or national id already exists")

// InMemoryRepository implements Repository using in-memory storage,
// used in tests and local development.
type InMemoryRepository struct {
	mu           sync.RWMutex
	accounts     map[int64]Account
	byEmail      map[string]int64
	byNationalID map[string]int64
	nextID       int64
}

// NewInMemoryRepository creates an empty in-memory account repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		accounts:     make(map[int64]Account),
		byEmail:      make(map[string]int64),
		byNationalID: make(map[string]int64),
		nextID:       1,
	}
}

// FindByID looks an account up by its numeric id
func (r *InMemoryRepository) FindByID(ctx context.Context, id int64) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	acct, ok := r.accounts[id]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return acct, nil
}

// FindByEmail looks an account up by email, case-insensitively
func (r *InMemoryRepository) FindByEmail(ctx context.Context, email string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return r.accounts[id], nil
}

// FindByNationalID looks an account up by national identity document
func (r *InMemoryRepository) FindByNationalID(ctx context.Context, nationalID string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byNationalID[nationalID]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return r.accounts[id], nil
}

// Save inserts the account when ID is zero, otherwise updates it.
func (r *InMemoryRepository) Save(ctx context.Context, acct Account) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	emailKey := strings.ToLower(acct.Email)

	if existingID, ok := r.byEmail[emailKey]; ok && existingID != acct.ID {
		return Account{}, ErrDuplicateKey
	}
	if existingID, ok := r.byNationalID[acct.NationalID]; ok && existingID != acct.ID {
		return Account{}, ErrDuplicateKey
	}

	now := time.Now()
	if acct.ID == 0 {
		acct.ID = r.nextID
		r.nextID++
		acct.CreatedAt = now
	} else if prev, ok := r.accounts[acct.ID]; ok {
		// Drop stale index entries when email or national id changed.
		delete(r.byEmail, strings.ToLower(prev.Email))
		delete(r.byNationalID, prev.NationalID)
		acct.CreatedAt = prev.CreatedAt
	}
	acct.LastModifiedAt = now

	r.accounts[acct.ID] = acct
	r.byEmail[emailKey] = acct.ID
	r.byNationalID[acct.NationalID] = acct.ID
	return acct, nil
}

// UpdatePassword replaces the stored password hash
func (r *InMemoryRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	acct, ok := r.accounts[id]
	if !ok {
		return ErrAccountNotFound
	}
	acct.Password = passwordHash
	acct.LastModifiedAt = time.Now()
	r.accounts[id] = acct
	return nil
}

// ExistsByID reports whether an account with the given id exists
func (r *InMemoryRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.accounts[id]
	return ok, nil
}
