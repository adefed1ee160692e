package services

import (
	"cmp"
	"context"
	"encoding/json"
	"slices"
	"strings"
	"sync"
	"time"

	"along/internal/domain"
	"along/internal/domain/models"
	"along/internal/repositories"
	"along/internal/utils"

	"go.uber.org/zap"
)

// HistoryKey is the storage key of the default session's table.
const HistoryKey = "along-search-history"

// HistoryStore counts searches per origin/destination pair and persists the
// whole table after every change. Storage failures never reach the caller:
// the store keeps working from memory for the rest of the session.
type HistoryStore struct {
	KV  repositories.KeyValueStore
	Key string
	Now func() time.Time

	mu         sync.Mutex
	entries    []models.HistoryEntry
	clock      int64
	loaded     bool
	memoryOnly bool
}

func NewHistoryStore(kv repositories.KeyValueStore, key string) *HistoryStore {
	if key == "" {
		key = HistoryKey
	}
	return &HistoryStore{KV: kv, Key: key, Now: utils.NowUTC}
}

// Load replaces the in-memory table with the stored one. Missing, corrupt
// or unreachable data yields an empty table.
func (s *HistoryStore) Load(ctx context.Context) []models.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)
	return slices.Clone(s.entries)
}

// EnsureLoaded runs Load once.
func (s *HistoryStore) EnsureLoaded(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		s.loadLocked(ctx)
	}
}

func (s *HistoryStore) loadLocked(ctx context.Context) {
	s.loaded = true
	s.entries = []models.HistoryEntry{}
	if s.KV == nil {
		s.memoryOnly = true
		return
	}

	data, ok, err := s.KV.Get(ctx, s.Key)
	if err != nil {
		// writing now would clobber whatever the store still holds
		s.memoryOnly = true
		utils.Log.Warn("history load failed, keeping history in memory",
			zap.String("key", s.Key), zap.Error(err))
		return
	}
	if !ok || len(data) == 0 {
		return
	}

	var stored []models.HistoryEntry
	if err := json.Unmarshal(data, &stored); err != nil {
		utils.Log.Warn("history data corrupt, starting empty",
			zap.String("key", s.Key), zap.Error(err))
		return
	}
	for _, e := range stored {
		e.Origin = strings.TrimSpace(e.Origin)
		e.Destination = strings.TrimSpace(e.Destination)
		if e.Origin == "" || e.Destination == "" || e.Count < 1 {
			continue
		}
		if i := s.indexLocked(e.Origin, e.Destination); i >= 0 {
			s.entries[i].Count += e.Count
			s.entries[i].LastUsed = max(s.entries[i].LastUsed, e.LastUsed)
		} else {
			s.entries = append(s.entries, e)
		}
		s.clock = max(s.clock, e.LastUsed)
	}
}

func (s *HistoryStore) indexLocked(origin, destination string) int {
	o, d := utils.FoldKey(origin), utils.FoldKey(destination)
	return slices.IndexFunc(s.entries, func(e models.HistoryEntry) bool {
		return utils.FoldKey(e.Origin) == o && utils.FoldKey(e.Destination) == d
	})
}

// Record counts one search. Blank origin or destination is rejected.
func (s *HistoryStore) Record(ctx context.Context, origin, destination string, region domain.Region) error {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if origin == "" {
		return domain.ValidationError{Field: "origin", Msg: "must not be blank"}
	}
	if destination == "" {
		return domain.ValidationError{Field: "destination", Msg: "must not be blank"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		s.loadLocked(ctx)
	}

	s.clock = max(s.clock+1, s.now().UnixNano())
	if i := s.indexLocked(origin, destination); i >= 0 {
		s.entries[i].Count++
		s.entries[i].LastUsed = s.clock
		s.entries[i].Region = region
	} else {
		s.entries = append(s.entries, models.HistoryEntry{
			Origin:      origin,
			Destination: destination,
			Count:       1,
			LastUsed:    s.clock,
			Region:      region,
		})
	}
	s.persistLocked(ctx)
	return nil
}

func (s *HistoryStore) persistLocked(ctx context.Context) {
	if s.memoryOnly {
		return
	}
	data, err := json.Marshal(s.entries)
	if err == nil {
		err = s.KV.Set(ctx, s.Key, data)
	}
	if err != nil {
		s.memoryOnly = true
		utils.Log.Warn("history save failed, keeping history in memory",
			zap.String("key", s.Key),
			zap.Bool("storage_unavailable", domain.IsStorageUnavailable(err)),
			zap.Error(err))
	}
}

// List returns the table by count, most recently used first among equal counts.
func (s *HistoryStore) List() []models.HistoryEntry {
	s.mu.Lock()
	out := slices.Clone(s.entries)
	s.mu.Unlock()

	if out == nil {
		out = []models.HistoryEntry{}
	}
	slices.SortStableFunc(out, func(a, b models.HistoryEntry) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(b.LastUsed, a.LastUsed)
	})
	return out
}

// MemoryOnly reports whether storage has been given up on for this session.
func (s *HistoryStore) MemoryOnly() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.memoryOnly
}

func (s *HistoryStore) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}
