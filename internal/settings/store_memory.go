package settings

import (
	"context"
	"sync"
	"time"
)

// MemStore keeps rows in creation order. It mirrors PostgresStore, including
// tolerance of extra rows that predate the singleton id.
type MemStore struct {
	mu   sync.RWMutex
	rows []Record
	now  func() time.Time
}

func NewMemStore() *MemStore {
	return &MemStore{now: time.Now}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Earliest(ctx context.Context) (Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.rows) == 0 {
		return Record{}, false, nil
	}
	return cloneRecord(s.rows[0]), true, nil
}

func (s *MemStore) Update(ctx context.Context, id string, key Key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrRecordGone
	}
	s.rows[i].Values[key] = value
	s.rows[i].UpdatedAt = s.now()
	return nil
}

func (s *MemStore) InsertSingleton(ctx context.Context, key Key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if i := s.indexOf(SingletonID); i >= 0 {
		s.rows[i].Values[key] = value
		s.rows[i].UpdatedAt = now
		return nil
	}

	s.rows = append(s.rows, Record{
		ID:        SingletonID,
		Values:    Values{key: value},
		CreatedAt: now,
	})
	return nil
}

// Len reports how many rows exist.
func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

func (s *MemStore) indexOf(id string) int {
	for i := range s.rows {
		if s.rows[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneRecord(r Record) Record {
	vals := make(Values, len(r.Values))
	for k, v := range r.Values {
		vals[k] = v
	}
	r.Values = vals
	return r
}
