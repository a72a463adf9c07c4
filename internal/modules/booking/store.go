package booking

import "sync"

// DraftStore keeps in-flight drafts and lets interested components
// observe changes through an explicit subscribe/notify contract instead
// of ambient global state. Drafts are memory-resident only.
type DraftStore interface {
	Get(id string) (*Draft, bool)
	Put(d *Draft)
	Delete(id string)
	Subscribe(fn func(*Draft)) (unsubscribe func())
}

type MemoryDraftStore struct {
	mu      sync.RWMutex
	drafts  map[string]*Draft
	subs    map[int]func(*Draft)
	nextSub int
}

func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{
		drafts: make(map[string]*Draft),
		subs:   make(map[int]func(*Draft)),
	}
}

func (s *MemoryDraftStore) Get(id string) (*Draft, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.drafts[id]
	return d, ok
}

func (s *MemoryDraftStore) Put(d *Draft) {
	s.mu.Lock()
	s.drafts[d.ID] = d
	subs := make([]func(*Draft), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(d)
	}
}

func (s *MemoryDraftStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.drafts, id)
}

func (s *MemoryDraftStore) Subscribe(fn func(*Draft)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}
