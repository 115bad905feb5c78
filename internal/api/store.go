package api

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/samcharles93/sacmask/pkg/sac"
)

type maskRecord struct {
	ID        string
	Doc       *sac.Document
	Source    string
	CreatedAt time.Time
}

func (r *maskRecord) info() MaskInfo {
	st := r.Doc.Stats()
	return MaskInfo{
		ID:        r.ID,
		Object:    "mask",
		CreatedAt: r.CreatedAt.Unix(),
		Source:    r.Source,
		Length:    r.Doc.Len(),
		Width:     r.Doc.Header.Width,
		Height:    r.Doc.Header.Height,
		Flags:     r.Doc.Meta.Flags,
		Reserved:  r.Doc.Meta.Reserved,
		Bytes:     len(r.Doc.Bytes()),
		Stats: StatsInfo{
			MinA: st.MinA, MaxA: st.MaxA,
			MinB: st.MinB, MaxB: st.MaxB,
		},
	}
}

// MaskStore keeps decoded masks in memory so they can be re-rendered
// without re-fetching. Stored documents own their bytes.
type MaskStore struct {
	mu    sync.Mutex
	masks map[string]*maskRecord
}

func NewMaskStore() *MaskStore {
	return &MaskStore{
		masks: make(map[string]*maskRecord),
	}
}

// Save stores doc under a fresh id. doc must not alias memory the caller
// will reuse.
func (s *MaskStore) Save(doc *sac.Document, source string, now time.Time) *maskRecord {
	rec := &maskRecord{
		ID:        newMaskID(),
		Doc:       doc,
		Source:    source,
		CreatedAt: now,
	}
	s.mu.Lock()
	s.masks[rec.ID] = rec
	s.mu.Unlock()
	return rec
}

func (s *MaskStore) Get(id string) (*maskRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.masks[id]
	return rec, ok
}

func (s *MaskStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.masks[id]; !ok {
		return false
	}
	delete(s.masks, id)
	return true
}

// List returns every record, oldest first.
func (s *MaskStore) List() []*maskRecord {
	s.mu.Lock()
	out := make([]*maskRecord, 0, len(s.masks))
	for _, rec := range s.masks {
		out = append(out, rec)
	}
	s.mu.Unlock()
	slices.SortFunc(out, func(a, b *maskRecord) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	return out
}

func (s *MaskStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.masks)
}

func newMaskID() string {
	return "mask_" + uuid.NewString()
}
