// Package otp holds short-lived one-time codes bound to an email address.
package otp

import (
	"errors"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	ErrNotFound  = errors.New("otp entry not found")
	ErrCodeInUse = errors.New("otp code is held by another entry")
)

// Entry is a snapshot of one stored code. Data carries the workflow payload.
type Entry[T any] struct {
	ID        ulid.ULID
	Email     string
	Code      string
	ExpiresAt time.Time
	Data      T
}

func (e Entry[T]) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// Store keeps one record per email. Each record has a stable identity and is
// reachable through two secondary indices, by email and by code, which are
// always updated together under one lock.
type Store[T any] struct {
	mu      sync.Mutex
	records map[ulid.ULID]*Entry[T]
	byEmail map[string]ulid.ULID
	byCode  map[string]ulid.ULID
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{
		records: make(map[ulid.ULID]*Entry[T]),
		byEmail: make(map[string]ulid.ULID),
		byCode:  make(map[string]ulid.ULID),
	}
}

// Put stores code for email. An existing record for the email is overwritten
// in place: it keeps its identity and its previous code stops resolving.
func (s *Store[T]) Put(email, code string, expiresAt time.Time, data T) (Entry[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, exists := s.byEmail[email]
	if err := s.checkCodeLocked(code, id, exists); err != nil {
		return Entry[T]{}, err
	}

	if exists {
		e := s.records[id]
		delete(s.byCode, e.Code)
		e.Code = code
		e.ExpiresAt = expiresAt
		e.Data = data
		s.byCode[code] = id
		return *e, nil
	}

	e := &Entry[T]{
		ID:        ulid.Make(),
		Email:     email,
		Code:      code,
		ExpiresAt: expiresAt,
		Data:      data,
	}
	s.records[e.ID] = e
	s.byEmail[email] = e.ID
	s.byCode[code] = e.ID
	return *e, nil
}

// Rekey replaces the code and expiry of the record for email, keeping its payload.
func (s *Store[T]) Rekey(email, code string, expiresAt time.Time) (Entry[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[email]
	if !ok {
		return Entry[T]{}, ErrNotFound
	}
	if err := s.checkCodeLocked(code, id, true); err != nil {
		return Entry[T]{}, err
	}

	e := s.records[id]
	delete(s.byCode, e.Code)
	e.Code = code
	e.ExpiresAt = expiresAt
	s.byCode[code] = id
	return *e, nil
}

func (s *Store[T]) checkCodeLocked(code string, owner ulid.ULID, hasOwner bool) error {
	holder, taken := s.byCode[code]
	if !taken {
		return nil
	}
	if hasOwner && holder == owner {
		return nil
	}
	return ErrCodeInUse
}

func (s *Store[T]) ByEmail(email string) (Entry[T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[email]
	if !ok {
		return Entry[T]{}, false
	}
	return *s.records[id], true
}

func (s *Store[T]) ByCode(code string) (Entry[T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byCode[code]
	if !ok {
		return Entry[T]{}, false
	}
	return *s.records[id], true
}

// Delete removes the record for email from both indices.
func (s *Store[T]) Delete(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[email]
	if !ok {
		return false
	}
	s.removeLocked(id)
	return true
}

// Remove removes the record with the given identity.
func (s *Store[T]) Remove(id ulid.ULID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return false
	}
	s.removeLocked(id)
	return true
}

// RemoveIfExpired removes the record only if it is still expired at now, so a
// concurrent resend that refreshed it is left alone.
func (s *Store[T]) RemoveIfExpired(id ulid.ULID, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.records[id]
	if !ok || !e.Expired(now) {
		return false
	}
	s.removeLocked(id)
	return true
}

// Sweep removes every record expired at now and returns how many were removed.
func (s *Store[T]) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.records {
		if e.Expired(now) {
			s.removeLocked(id)
			removed++
		}
	}
	return removed
}

func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *Store[T]) removeLocked(id ulid.ULID) {
	e := s.records[id]
	delete(s.byCode, e.Code)
	delete(s.byEmail, e.Email)
	delete(s.records, id)
}
