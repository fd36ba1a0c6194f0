// Package state holds the application document, the store that owns it,
// and the mutation API. The document only ever changes through
// Store.Commit: mutate, write through to persistence, notify observers.
package state

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// Updater computes a new document from the current one. It must not
// mutate the input.
type Updater func(AppState) AppState

// Store owns the in-memory document and writes it through to an injected
// Persistence collaborator on every commit. It is not safe for concurrent
// use; the application is single-threaded by design.
type Store struct {
	persist Persistence
	state   AppState

	subs    map[int]func(AppState)
	nextSub int

	notifying bool
	queued    []Updater

	// now supplies mutation timestamps; overridable in tests.
	now func() int64
}

// New loads the document from persistence and returns a ready store.
// A missing, unreadable or unparsable document falls back to the default
// document; load errors are never fatal.
func New(persist Persistence) *Store {
	s := &Store{
		persist: persist,
		subs:    map[int]func(AppState){},
		now:     func() int64 { return time.Now().UnixMilli() },
	}
	s.state = s.load()
	return s
}

// NewMemory creates a store backed by in-memory persistence, for tests.
func NewMemory() *Store {
	return New(NewMemoryPersistence())
}

func (s *Store) load() AppState {
	data, ok, err := s.persist.Load()
	if err != nil || !ok {
		return DefaultState()
	}
	st, err := Decode(data)
	if err != nil {
		return DefaultState()
	}
	st.Version = Version
	return st
}

// State returns the current document. Read-only by convention: callers
// must not mutate it; all writes go through Commit.
func (s *Store) State() AppState {
	return s.state
}

// Subscribe registers an observer called with the new document after
// every commit, in registration order. The returned function removes the
// observer.
func (s *Store) Subscribe(fn func(AppState)) func() {
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() { delete(s.subs, id) }
}

// Commit applies an updater, persists the result, and notifies observers.
// The in-memory document is updated and observers fire even when the
// write-through fails; the persistence error is returned for callers that
// want to surface a warning. A commit issued from inside a notification
// is queued and applied after the current cycle.
func (s *Store) Commit(up Updater) error {
	if s.notifying {
		s.queued = append(s.queued, up)
		return nil
	}

	err := s.apply(up)

	for len(s.queued) > 0 {
		next := s.queued[0]
		s.queued = s.queued[1:]
		if qerr := s.apply(next); err == nil {
			err = qerr
		}
	}
	return err
}

func (s *Store) apply(up Updater) error {
	s.state = up(s.state)

	var saveErr error
	data, err := json.Marshal(s.state)
	if err != nil {
		saveErr = fmt.Errorf("encode document: %w", err)
	} else if err := s.persist.Save(data); err != nil {
		saveErr = fmt.Errorf("persist document: %w", err)
	}

	s.notifying = true
	for _, id := range s.subOrder() {
		if fn, ok := s.subs[id]; ok {
			fn(s.state)
		}
	}
	s.notifying = false

	return saveErr
}

func (s *Store) subOrder() []int {
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Replace swaps in a whole new document through a single commit. Used by
// backup import.
func (s *Store) Replace(st AppState) error {
	return s.Commit(func(AppState) AppState { return st })
}

// Close releases the persistence collaborator.
func (s *Store) Close() error {
	return s.persist.Close()
}
