package titlekit

import "sync"

// GroupStore accumulates filtered records from both datasets grouped by
// title id, then expands each id's group into the cross product of its
// titles and ratings. Ids present on only one side yield no pairs (inner
// join). Implementations must allow AddTitle and AddRating to be called
// from different goroutines; Pairs is only called after all adds are done.
type GroupStore interface {
	AddTitle(t Title) error
	AddRating(r Rating) error

	// Pairs calls emit once for every (title, rating) pair sharing an id.
	// Emission order is unspecified. A non-nil error from emit stops the
	// iteration and is returned.
	Pairs(emit func(t Title, r Rating) error) error

	Close() error
}

// MemStore is an in-memory GroupStore backed by a map keyed on title id.
type MemStore struct {
	mu     sync.Mutex
	groups map[string]*group
}

type group struct {
	titles  []Title
	ratings []Rating
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{groups: make(map[string]*group)}
}

func (s *MemStore) group(id string) *group {
	g, ok := s.groups[id]
	if !ok {
		g = &group{}
		s.groups[id] = g
	}
	return g
}

// AddTitle adds a basic record to its id's group.
func (s *MemStore) AddTitle(t Title) error {
	s.mu.Lock()
	g := s.group(t.ID)
	g.titles = append(g.titles, t)
	s.mu.Unlock()
	return nil
}

// AddRating adds a rating record to its id's group.
func (s *MemStore) AddRating(r Rating) error {
	s.mu.Lock()
	g := s.group(r.ID)
	g.ratings = append(g.ratings, r)
	s.mu.Unlock()
	return nil
}

// Pairs implements GroupStore.
func (s *MemStore) Pairs(emit func(t Title, r Rating) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.groups {
		for _, t := range g.titles {
			for _, r := range g.ratings {
				if err := emit(t, r); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Close releases the store's memory.
func (s *MemStore) Close() error {
	s.mu.Lock()
	s.groups = nil
	s.mu.Unlock()
	return nil
}
