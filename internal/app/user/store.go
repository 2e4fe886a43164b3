/*
Package user contains the shared user record and the in-memory store that is
synchronized across all connected clients.

This file defines the Store struct, the insertion-ordered collection of User
records guarded for concurrent access. The store lives only for the process
lifetime; a durable deployment would put a database behind the same methods.
*/
package user

import (
	"sync"

	"usersync/internal/pkg/errs"
)

// Store holds the shared user collection. Any number of List calls may run
// concurrently; Insert, Replace and Delete take exclusive access.
type Store struct {
	// mu protects concurrent access to the users slice.
	mu sync.RWMutex

	// users keeps records in insertion order. Edits preserve position,
	// deletes remove the slot.
	users []User
}

// NewStore constructs and returns an empty Store.
func NewStore() *Store {
	return &Store{}
}

// List returns a snapshot copy of the current collection.
// The returned slice is owned by the caller and never aliases store memory.
func (s *Store) List() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]User, len(s.users))
	copy(snapshot, s.users)

	return snapshot
}

// Insert appends a new record to the collection.
// It fails with ErrUserIDExists if a record with the same ID is already present,
// leaving the collection unchanged.
func (s *Store) Insert(u User) *errs.CustomError {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(u.ID) >= 0 {
		return errs.NewError(errs.ErrUserIDExists, u.ID)
	}

	s.users = append(s.users, u)
	return nil
}

// Replace swaps the record identified by id with the given payload, keeping
// the record's position. The stored ID is preserved regardless of the ID the
// payload carries: identifiers are immutable after creation.
// It fails with ErrUserNotFound if no record with id exists.
func (s *Store) Replace(id string, u User) *errs.CustomError {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.indexOf(id)
	if index < 0 {
		return errs.NewError(errs.ErrUserNotFound, id)
	}

	u.ID = s.users[index].ID
	s.users[index] = u
	return nil
}

// Delete removes the record identified by id.
// It fails with ErrUserNotFound if no record with id exists.
func (s *Store) Delete(id string) *errs.CustomError {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.indexOf(id)
	if index < 0 {
		return errs.NewError(errs.ErrUserNotFound, id)
	}

	s.users = append(s.users[:index], s.users[index+1:]...)
	return nil
}

// indexOf returns the position of the record with the given id, or -1.
// Callers must hold mu.
func (s *Store) indexOf(id string) int {
	for i := range s.users {
		if s.users[i].ID == id {
			return i
		}
	}
	return -1
}
