// README: Fee service tests for freeze-on-write versioning (in-memory storage).
package fees

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// memStorage is an in-memory Storage used to exercise the versioning rules
// without a database.
type memStorage struct {
	records []FeeRecord
}

func (m *memStorage) ListAll(_ context.Context) ([]FeeRecord, error) {
	return append([]FeeRecord(nil), m.records...), nil
}

func (m *memStorage) Insert(_ context.Context, r FeeRecord) error {
	m.records = append(m.records, r)
	return nil
}

func (m *memStorage) Update(_ context.Context, r FeeRecord) error {
	for i := range m.records {
		if m.records[i].ID == r.ID {
			m.records[i] = r
			return nil
		}
	}
	return errors.New("update: id not found")
}

func (m *memStorage) Delete(_ context.Context, id int64) (bool, error) {
	for i := range m.records {
		if m.records[i].ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func newTestService() (*Service, *memStorage) {
	st := &memStorage{}
	return NewService(st, nil), st
}

func mustUpsert(t *testing.T, svc *Service, r FeeRecord) FeeRecord {
	t.Helper()
	rec, err := svc.Upsert(context.Background(), UpsertCommand{Record: r})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	return rec
}

func activeForTuple(records []FeeRecord, aff string, year int, region string) []FeeRecord {
	var out []FeeRecord
	for _, r := range records {
		if r.Active() && r.Year == year &&
			NormalizeAffiliation(r.Affiliation) == NormalizeAffiliation(aff) &&
			strings.TrimSpace(r.Region) == region {
			out = append(out, r)
		}
	}
	return out
}

func TestUpsertCreatesActiveRecord(t *testing.T) {
	svc, st := newTestService()

	rec := mustUpsert(t, svc, FeeRecord{Affiliation: "엔디와이", Region: "창원", Year: 2026, Price: 90000})
	if rec.ID == 0 {
		t.Fatal("expected generated id")
	}
	if rec.Archived {
		t.Fatal("new record must be active")
	}
	if len(st.records) != 1 {
		t.Fatalf("expected 1 stored record, got %d", len(st.records))
	}
}

func TestUpsertSamePriceIsIdempotent(t *testing.T) {
	svc, st := newTestService()

	rec := mustUpsert(t, svc, FeeRecord{Affiliation: "엔디와이", Region: "창원", Year: 2026, Price: 90000})

	// Same id, same price, new memo: in-place update, no archival.
	again := mustUpsert(t, svc, FeeRecord{
		ID: rec.ID, Affiliation: "엔디와이", Region: "창원", Year: 2026, Price: 90000, Memo: "거리 기준 협의",
	})
	if again.ID != rec.ID {
		t.Fatalf("id changed on unchanged price: %d -> %d", rec.ID, again.ID)
	}
	if len(st.records) != 1 {
		t.Fatalf("expected 1 record after idempotent upsert, got %d", len(st.records))
	}
	if st.records[0].Memo != "거리 기준 협의" {
		t.Fatalf("memo not updated: %q", st.records[0].Memo)
	}
	if st.records[0].Archived {
		t.Fatal("idempotent upsert must not archive")
	}
}

func TestUpsertPriceChangeFreezesPriorRecords(t *testing.T) {
	svc, st := newTestService()

	old := mustUpsert(t, svc, FeeRecord{Affiliation: "엔디와이", Region: "창원", Year: 2026, Price: 90000})
	fresh := mustUpsert(t, svc, FeeRecord{Affiliation: "엔디와이2", Region: "창원", Year: 2026, Price: 95000})

	active := activeForTuple(st.records, "엔디와이", 2026, "창원")
	if len(active) != 1 {
		t.Fatalf("expected exactly 1 active record for the tuple, got %d", len(active))
	}
	if active[0].ID != fresh.ID {
		t.Fatalf("active record is not the fresh one")
	}

	var frozen *FeeRecord
	for i := range st.records {
		if st.records[i].ID == old.ID {
			frozen = &st.records[i]
		}
	}
	if frozen == nil || !frozen.Archived {
		t.Fatal("prior record was not archived")
	}
	if frozen.Price != 90000 {
		t.Fatalf("archival must not alter price, got %d", frozen.Price)
	}
	if !strings.Contains(frozen.Memo, "수정") {
		t.Fatalf("expected dated note in frozen memo, got %q", frozen.Memo)
	}
}

func TestUpsertExplicitPriceChangedFlag(t *testing.T) {
	svc, st := newTestService()

	rec := mustUpsert(t, svc, FeeRecord{Affiliation: "한성운수", Region: "김해", Year: 2026, Price: 70000})

	changed := true
	_, err := svc.Upsert(context.Background(), UpsertCommand{
		Record:       FeeRecord{ID: rec.ID, Affiliation: "한성운수", Region: "김해", Year: 2026, Price: 70000},
		PriceChanged: &changed,
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	// Flag forces the freeze even though the price is numerically unchanged.
	if active := activeForTuple(st.records, "한성운수", 2026, "김해"); len(active) != 1 {
		t.Fatalf("expected 1 active record, got %d", len(active))
	}
	if len(st.records) != 2 {
		t.Fatalf("expected 2 records (frozen + fresh), got %d", len(st.records))
	}
}

func TestUpsertRejectsArchivedTarget(t *testing.T) {
	svc, st := newTestService()

	rec := mustUpsert(t, svc, FeeRecord{Affiliation: "엔디와이", Region: "창원", Year: 2026, Price: 90000})
	if ok, err := svc.Archive(context.Background(), rec.ID); err != nil || !ok {
		t.Fatalf("archive: ok=%v err=%v", ok, err)
	}

	_, err := svc.Upsert(context.Background(), UpsertCommand{
		Record: FeeRecord{ID: rec.ID, Affiliation: "엔디와이", Region: "창원", Year: 2026, Price: 91000},
	})
	if !errors.Is(err, ErrReadonly) {
		t.Fatalf("expected ErrReadonly, got %v", err)
	}
	if !strings.Contains(st.records[0].Memo, "이력전환") {
		t.Fatalf("expected archive note in memo, got %q", st.records[0].Memo)
	}
}

func TestUpsertRejectsMalformedRecord(t *testing.T) {
	svc, _ := newTestService()

	for _, r := range []FeeRecord{
		{Affiliation: "", Region: "창원", Year: 2026, Price: 1000},
		{Affiliation: "엔디와이", Region: "", Year: 2026, Price: 1000},
		{Affiliation: "엔디와이", Region: "창원", Year: 0, Price: 1000},
		{Affiliation: "엔디와이", Region: "창원", Year: 2026, Price: -5},
	} {
		if _, err := svc.Upsert(context.Background(), UpsertCommand{Record: r}); !errors.Is(err, ErrBadRecord) {
			t.Errorf("record %+v: expected ErrBadRecord, got %v", r, err)
		}
	}
}

func TestArchiveAndDeleteUnknownID(t *testing.T) {
	svc, _ := newTestService()

	if ok, err := svc.Archive(context.Background(), 404); err != nil || ok {
		t.Fatalf("archive unknown id: ok=%v err=%v", ok, err)
	}
	if ok, err := svc.Delete(context.Background(), 404); err != nil || ok {
		t.Fatalf("delete unknown id: ok=%v err=%v", ok, err)
	}
}

func TestDeleteRemovesArchivedRecord(t *testing.T) {
	svc, st := newTestService()

	rec := mustUpsert(t, svc, FeeRecord{Affiliation: "엔디와이", Region: "창원", Year: 2026, Price: 90000})
	if ok, _ := svc.Archive(context.Background(), rec.ID); !ok {
		t.Fatal("archive failed")
	}
	if ok, err := svc.Delete(context.Background(), rec.ID); err != nil || !ok {
		t.Fatalf("delete archived: ok=%v err=%v", ok, err)
	}
	if len(st.records) != 0 {
		t.Fatalf("expected empty store, got %d records", len(st.records))
	}
}

func TestBulkUpsertFreezeVisibleWithinBatch(t *testing.T) {
	svc, st := newTestService()

	applied, err := svc.BulkUpsert(context.Background(), []FeeRecord{
		{Affiliation: "엔디와이", Region: "창원", Year: 2026, Price: 90000},
		{Affiliation: "엔디와이", Region: "김해", Year: 2026, Price: 70000},
		// Same tuple as the first entry: must freeze it within the same batch.
		{Affiliation: "엔디와이", Region: "창원", Year: 2026, Price: 95000},
		// Malformed: skipped, not applied.
		{Affiliation: "", Region: "양산", Year: 2026, Price: 50000},
	})
	if err != nil {
		t.Fatalf("bulk upsert: %v", err)
	}
	if applied != 3 {
		t.Fatalf("expected 3 applied, got %d", applied)
	}

	active := activeForTuple(st.records, "엔디와이", 2026, "창원")
	if len(active) != 1 || active[0].Price != 95000 {
		t.Fatalf("expected one active 창원 record at 95000, got %+v", active)
	}
	archived := 0
	for _, r := range st.records {
		if r.Archived {
			archived++
		}
	}
	if archived != 1 {
		t.Fatalf("expected 1 archived record, got %d", archived)
	}
}

func TestActiveTableExcludesArchived(t *testing.T) {
	svc, _ := newTestService()

	rec := mustUpsert(t, svc, FeeRecord{Affiliation: "엔디와이", Region: "창원", Year: 2026, Price: 90000})
	mustUpsert(t, svc, FeeRecord{Affiliation: "엔디와이", Region: "창원", Year: 2026, Price: 95000})

	table, err := svc.ActiveTable(context.Background())
	if err != nil {
		t.Fatalf("active table: %v", err)
	}
	for _, r := range table {
		if r.ID == rec.ID {
			t.Fatal("archived record leaked into the active table")
		}
	}
	if len(table) != 1 {
		t.Fatalf("expected 1 active record, got %d", len(table))
	}
}

func TestListFilter(t *testing.T) {
	svc, _ := newTestService()

	mustUpsert(t, svc, FeeRecord{Affiliation: "엔디와이", Region: "창원", Year: 2025, Price: 85000})
	mustUpsert(t, svc, FeeRecord{Affiliation: "엔디와이", Region: "창원", Year: 2026, Price: 90000})
	mustUpsert(t, svc, FeeRecord{Affiliation: "한성운수", Region: "김해", Year: 2026, Price: 70000})

	got, err := svc.List(context.Background(), ListFilter{Year: 2026, Affiliation: "엔디"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].Region != "창원" || got[0].Year != 2026 {
		t.Fatalf("unexpected filter result: %+v", got)
	}
}

func TestFindActiveTwoTierFallback(t *testing.T) {
	now := time.Now()
	table := Table{
		{ID: 1, Affiliation: "공통", Region: KeyExtraStop, Year: 2026, Price: 8000, CreatedAt: now},
		{ID: 2, Affiliation: "엔디와이", Region: KeyExtraStop, Year: 2026, Price: 10000, CreatedAt: now},
		{ID: 3, Affiliation: "ALL", Region: "회송", Year: 2026, Price: 30000, CreatedAt: now},
	}

	// Company-specific row wins over the shared one.
	if f, ok := table.FindActive("엔디와이2", 2026, KeyExtraStop); !ok || f.ID != 2 {
		t.Fatalf("expected company row (id 2), got %+v ok=%v", f, ok)
	}
	// No company row: shared sentinel applies.
	if f, ok := table.FindActive("한성운수", 2026, KeyExtraStop); !ok || f.ID != 1 {
		t.Fatalf("expected 공통 fallback (id 1), got %+v ok=%v", f, ok)
	}
	if f, ok := table.FindActive("한성운수", 2026, "회송"); !ok || f.ID != 3 {
		t.Fatalf("expected ALL fallback (id 3), got %+v ok=%v", f, ok)
	}
	// Wrong year: no match, no error.
	if _, ok := table.FindActive("엔디와이", 2025, KeyExtraStop); ok {
		t.Fatal("expected no match for wrong year")
	}
}
