// README: Settlement ledger service (save/list/delete, settled-key set).
package settlement

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"yongcha/internal/modules/driver"
	"yongcha/internal/types"
)

var ErrBadRecord = errors.New("settlement record missing date or driver name")

type Service struct {
	store Storage
	mu    sync.Mutex
}

func NewService(store Storage) *Service {
	return &Service{store: store}
}

type ListFilter struct {
	StartDate string
	EndDate   string
	Name      string // substring, whitespace- and case-insensitive
}

// Save creates the record when it has no id, updates it otherwise. An update
// aimed at an id that no longer exists falls back to a create under a fresh
// id rather than dropping the user's row.
func (s *Service) Save(ctx context.Context, rec Record) (Record, error) {
	if strings.TrimSpace(rec.Date) == "" || driver.NameKey(rec.DriverName) == "" {
		return Record{}, ErrBadRecord
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	rec.UpdatedAt = now

	if rec.ID != 0 {
		ok, err := s.store.Update(ctx, rec)
		if err != nil {
			return Record{}, err
		}
		if ok {
			return rec, nil
		}
		// Stale id: fall through to create.
	}

	rec.ID = types.NewScatteredID()
	rec.CreatedAt = now
	if err := s.store.Insert(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Delete(ctx, id)
}

// List returns the ledger filtered and sorted newest first (date, then id).
func (s *Service) List(ctx context.Context, f ListFilter) ([]Record, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(driver.NameKey(f.Name))
	out := make([]Record, 0, len(all))
	for _, r := range all {
		if f.StartDate != "" && r.Date < f.StartDate {
			continue
		}
		if f.EndDate != "" && r.Date > f.EndDate {
			continue
		}
		if needle != "" {
			hay := strings.ToLower(driver.NameKey(r.DriverName))
			if !strings.Contains(hay, needle) {
				continue
			}
		}
		out = append(out, r)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// SettledKeys returns the (date, driver) keys already present in the ledger.
// The consolidator uses this to keep settlement runs idempotent.
func (s *Service) SettledKeys(ctx context.Context) (map[string]bool, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	keys := make(map[string]bool, len(all))
	for _, r := range all {
		keys[r.Key()] = true
	}
	return keys, nil
}
