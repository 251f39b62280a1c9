package dna

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/turtacn/SonicAtlas/pkg/errors"
)

// Provider is the boundary to the external DNA pipeline.  The engine only
// needs to enumerate profiles and look one up by track ID.
type Provider interface {
	All() []*Profile
	Get(trackID string) (*Profile, bool)
}

// Store is a Provider backed by the JSON file the extraction pipeline writes:
// a single object keyed by track ID.  The store is read-only; SonicAtlas
// never persists profiles itself.
type Store struct {
	byID  map[string]*Profile
	order []string
}

// NewStore returns an empty store.  Useful for tests that add profiles
// programmatically via Put.
func NewStore() *Store {
	return &Store{byID: make(map[string]*Profile)}
}

// LoadStore reads the profile file at path and returns a populated store.
// Profiles that fail Validate are dropped rather than aborting the load; a
// fully unreadable or undecodable file is an error.
func LoadStore(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeProfileStoreRead, "failed to read profile file "+path)
	}

	var decoded map[string]*Profile
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeProfileStoreDecode, "failed to decode profile file "+path)
	}

	s := NewStore()

	// Map iteration order is random; sort the IDs so every load of the same
	// file yields the same profile ordering, which downstream determinism
	// (embedding, tie-breaks) depends on.
	ids := make([]string, 0, len(decoded))
	for id := range decoded {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		p := decoded[id]
		if p == nil {
			continue
		}
		if p.TrackID == "" {
			p.TrackID = id
		}
		if err := p.Validate(); err != nil {
			continue
		}
		s.Put(p)
	}
	return s, nil
}

// Put inserts or replaces a profile.  Insertion order is preserved for All.
func (s *Store) Put(p *Profile) {
	if _, exists := s.byID[p.TrackID]; !exists {
		s.order = append(s.order, p.TrackID)
	}
	s.byID[p.TrackID] = p
}

// All returns every profile in insertion order.
func (s *Store) All() []*Profile {
	out := make([]*Profile, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// Get returns the profile for trackID, if present.
func (s *Store) Get(trackID string) (*Profile, bool) {
	p, ok := s.byID[trackID]
	return p, ok
}

// Len returns the number of stored profiles.
func (s *Store) Len() int { return len(s.order) }
