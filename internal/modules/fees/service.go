// README: Fee master service implements freeze-on-write versioning over the store.
package fees

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"yongcha/internal/types"
)

var (
	ErrBadRecord = errors.New("fee record missing required fields")
	ErrReadonly  = errors.New("archived fee records are immutable")
)

// Invalidator is notified after every successful table write so cached
// snapshots never outlive a mutation.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// Service owns all mutations of the fee master. Writes are serialized by a
// single mutex: the freeze-then-insert sequence must never interleave for the
// same (affiliation, region, year) tuple.
type Service struct {
	store Storage
	cache Invalidator
	mu    sync.Mutex
}

func NewService(store Storage, cache Invalidator) *Service {
	return &Service{store: store, cache: cache}
}

type UpsertCommand struct {
	Record FeeRecord
	// PriceChanged, when set, overrides price comparison against the stored
	// record. Spreadsheet uploads set it explicitly.
	PriceChanged *bool
}

type ListFilter struct {
	Year        int
	Affiliation string
	ActiveOnly  bool
}

// Upsert creates or revises one fee record. A price change (detected or
// flagged) archives every active record for the normalized tuple and inserts
// a fresh active record under a new id; an unchanged price with a known id is
// an in-place field update.
func (s *Service) Upsert(ctx context.Context, cmd UpsertCommand) (FeeRecord, error) {
	if err := validate(cmd.Record); err != nil {
		return FeeRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.store.ListAll(ctx)
	if err != nil {
		return FeeRecord{}, err
	}
	_, rec, err := s.applyUpsert(ctx, list, cmd, time.Now())
	if err != nil {
		return FeeRecord{}, err
	}
	s.invalidate(ctx)
	return rec, nil
}

// BulkUpsert applies upsert semantics to each record against one working
// snapshot, so a freeze triggered by an earlier record is visible to later
// records targeting the same tuple. Malformed records are skipped; the count
// of applied records is returned.
func (s *Service) BulkUpsert(ctx context.Context, records []FeeRecord) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.store.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, r := range records {
		if validate(r) != nil {
			continue
		}
		list, _, err = s.applyUpsert(ctx, list, UpsertCommand{Record: r}, time.Now())
		if err != nil {
			if errors.Is(err, ErrReadonly) {
				continue
			}
			return applied, err
		}
		applied++
	}
	if applied > 0 {
		s.invalidate(ctx)
	}
	return applied, nil
}

// Archive forces a record into the archived state regardless of price,
// appending a dated note. Returns false when the id is unknown.
func (s *Service) Archive(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.store.ListAll(ctx)
	if err != nil {
		return false, err
	}
	now := time.Now()
	for i := range list {
		if list[i].ID != id {
			continue
		}
		appendMemoNote(&list[i], "["+now.Format("06.01.02")+" 이력전환]")
		list[i].Archived = true
		list[i].UpdatedAt = now
		if err := s.store.Update(ctx, list[i]); err != nil {
			return false, err
		}
		s.invalidate(ctx)
		return true, nil
	}
	return false, nil
}

// Delete removes a record outright. Archived records may be deleted too.
func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.store.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if ok {
		s.invalidate(ctx)
	}
	return ok, nil
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]FeeRecord, error) {
	list, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]FeeRecord, 0, len(list))
	needle := strings.ToLower(strings.ReplaceAll(f.Affiliation, " ", ""))
	for _, r := range list {
		if f.ActiveOnly && r.Archived {
			continue
		}
		if f.Year != 0 && r.Year != f.Year {
			continue
		}
		if needle != "" {
			hay := strings.ToLower(strings.ReplaceAll(r.Affiliation, " ", ""))
			if !strings.Contains(hay, needle) {
				continue
			}
		}
		out = append(out, r)
	}
	return out, nil
}

// ActiveTable returns the current lookup snapshot (active records only).
func (s *Service) ActiveTable(ctx context.Context) (Table, error) {
	list, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	t := make(Table, 0, len(list))
	for _, r := range list {
		if r.Active() {
			t = append(t, r)
		}
	}
	return t, nil
}

// applyUpsert mutates the working snapshot and the store together and returns
// the updated snapshot plus the resulting record. Caller holds the mutex.
func (s *Service) applyUpsert(ctx context.Context, list []FeeRecord, cmd UpsertCommand, now time.Time) ([]FeeRecord, FeeRecord, error) {
	rec := cmd.Record

	targetIdx := -1
	if rec.ID != 0 {
		for i := range list {
			if list[i].ID == rec.ID {
				targetIdx = i
				break
			}
		}
	}
	if targetIdx != -1 && list[targetIdx].Archived {
		return list, FeeRecord{}, ErrReadonly
	}

	priceChanged := false
	if cmd.PriceChanged != nil {
		priceChanged = *cmd.PriceChanged
	} else if targetIdx != -1 && list[targetIdx].Price != rec.Price {
		priceChanged = true
	}

	if !priceChanged && targetIdx != -1 {
		// Plain field update: id, lifecycle state and creation time survive.
		updated := list[targetIdx]
		updated.Affiliation = rec.Affiliation
		updated.Region = rec.Region
		updated.Year = rec.Year
		updated.Price = rec.Price
		updated.Memo = rec.Memo
		updated.UpdatedAt = now
		if err := s.store.Update(ctx, updated); err != nil {
			return list, FeeRecord{}, err
		}
		list[targetIdx] = updated
		return list, updated, nil
	}

	// Fresh active record; carry the prior memo forward when none is given.
	if rec.Memo == "" && targetIdx != -1 {
		rec.Memo = list[targetIdx].Memo
	}
	rec.ID = types.NewID()
	rec.Archived = false
	rec.CreatedAt = now
	rec.UpdatedAt = now

	// Freeze every record still active for the tuple. Prices are untouched:
	// the frozen rows remain the audit trail of what was once charged.
	affKey := NormalizeAffiliation(rec.Affiliation)
	regKey := strings.TrimSpace(rec.Region)
	note := "[" + now.Format("06.01.02") + " 수정]"
	for i := range list {
		item := &list[i]
		if !item.Active() || item.Year != rec.Year {
			continue
		}
		if strings.TrimSpace(item.Region) != regKey || NormalizeAffiliation(item.Affiliation) != affKey {
			continue
		}
		appendMemoNote(item, note)
		item.Archived = true
		item.UpdatedAt = now
		if err := s.store.Update(ctx, *item); err != nil {
			return list, FeeRecord{}, err
		}
	}

	if err := s.store.Insert(ctx, rec); err != nil {
		return list, FeeRecord{}, err
	}
	return append(list, rec), rec, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx)
	}
}

func validate(r FeeRecord) error {
	if strings.TrimSpace(r.Affiliation) == "" || strings.TrimSpace(r.Region) == "" {
		return ErrBadRecord
	}
	if r.Year == 0 || r.Price < 0 {
		return ErrBadRecord
	}
	return nil
}

func appendMemoNote(r *FeeRecord, note string) {
	if r.Memo == "" {
		r.Memo = note
		return
	}
	r.Memo = r.Memo + " " + note
}
