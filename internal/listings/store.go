package listings

import (
	"sync"

	"github.com/mealbridge-dev/mealbridge/pkg/models"
)

// Action is a listing store transition. The set is closed: Reduce handles
// every variant exhaustively and unknown actions leave state unchanged.
type Action interface{ isAction() }

// Add appends a listing to the active collection. Validation happens
// before dispatch; Reduce itself never rejects a structurally valid input.
type Add struct{ Listing models.Listing }

// Delete removes a listing from active by ID. No-op if absent.
type Delete struct{ ID string }

// Claim moves a listing from active to past, overwriting its expiration
// descriptor with the claimed marker. No-op if absent.
type Claim struct{ ID string }

// BulkClaim claims every listed ID as a single transition.
type BulkClaim struct{ IDs []string }

// BulkDelete deletes every listed ID as a single transition.
type BulkDelete struct{ IDs []string }

func (Add) isAction()        {}
func (Delete) isAction()     {}
func (Claim) isAction()      {}
func (BulkClaim) isAction()  {}
func (BulkDelete) isAction() {}

// State holds the two disjoint listing collections. A listing is in
// exactly one of them at any time once created.
type State struct {
	Active []models.Listing
	Past   []models.Listing
}

// Reduce produces the next state for an action without mutating the
// previous one. Every transition moves listings rather than copying them,
// so Active and Past stay disjoint by construction.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case Add:
		active := make([]models.Listing, 0, len(s.Active)+1)
		active = append(active, s.Active...)
		active = append(active, a.Listing)
		return State{Active: active, Past: s.Past}
	case Delete:
		return State{Active: removeByID(s.Active, a.ID), Past: s.Past}
	case Claim:
		return claim(s, []string{a.ID})
	case BulkClaim:
		return claim(s, a.IDs)
	case BulkDelete:
		active := s.Active
		for _, id := range a.IDs {
			active = removeByID(active, id)
		}
		return State{Active: active, Past: s.Past}
	default:
		return s
	}
}

// claim moves each matching ID from active to past, newest claim first.
// IDs not present in active are skipped, which makes Claim idempotent.
func claim(s State, ids []string) State {
	active := append([]models.Listing(nil), s.Active...)
	past := append([]models.Listing(nil), s.Past...)

	for _, id := range ids {
		for i, l := range active {
			if l.ID != id {
				continue
			}
			active = append(active[:i], active[i+1:]...)
			l.Expires = models.ClaimedMarker
			past = append([]models.Listing{l}, past...)
			break
		}
	}
	return State{Active: active, Past: past}
}

func removeByID(in []models.Listing, id string) []models.Listing {
	out := make([]models.Listing, 0, len(in))
	for _, l := range in {
		if l.ID != id {
			out = append(out, l)
		}
	}
	return out
}

// Store serializes dispatches against a single State and fans the result
// out to subscribers. It is the only writer of listing state.
type Store struct {
	mu    sync.RWMutex
	state State
	subs  []func(State)
}

// NewStore creates an empty listing store.
func NewStore() *Store {
	return &Store{}
}

// Dispatch applies an action and notifies subscribers with the new state.
// Bulk actions are applied as one transition: subscribers never observe an
// intermediate state.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	next := s.snapshotLocked()
	subs := s.subs
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
}

// Subscribe registers a callback invoked after every dispatch.
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Active returns a copy of the active listings.
func (s *Store) Active() []models.Listing {
	return s.State().Active
}

// Past returns a copy of the past listings.
func (s *Store) Past() []models.Listing {
	return s.State().Past
}

// Get returns the active listing with the given ID, or (zero, false).
func (s *Store) Get(id string) (models.Listing, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.state.Active {
		if l.ID == id {
			return l, true
		}
	}
	return models.Listing{}, false
}

func (s *Store) snapshotLocked() State {
	return State{
		Active: append([]models.Listing(nil), s.state.Active...),
		Past:   append([]models.Listing(nil), s.state.Past...),
	}
}
