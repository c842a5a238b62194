// README: Route-level tests for the summary and quote endpoints.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"yongcha/internal/config"
	"yongcha/internal/http/handlers"
	"yongcha/internal/modules/dispatch"
	"yongcha/internal/modules/driver"
	"yongcha/internal/modules/fees"
	"yongcha/internal/modules/settlement"
)

type stubDispatchSource struct {
	rows []dispatch.Row
}

func (s *stubDispatchSource) Rows(_ context.Context, _, _, _ string) ([]dispatch.Row, error) {
	return s.rows, nil
}

type memDriverStorage struct {
	drivers []driver.Driver
}

func (m *memDriverStorage) List(_ context.Context) ([]driver.Driver, error) {
	return append([]driver.Driver(nil), m.drivers...), nil
}
func (m *memDriverStorage) Insert(_ context.Context, d driver.Driver) error {
	m.drivers = append(m.drivers, d)
	return nil
}
func (m *memDriverStorage) Update(_ context.Context, d driver.Driver) (bool, error) {
	for i := range m.drivers {
		if m.drivers[i].ID == d.ID {
			m.drivers[i] = d
			return true, nil
		}
	}
	return false, nil
}
func (m *memDriverStorage) Delete(_ context.Context, id int64) (bool, error) {
	for i := range m.drivers {
		if m.drivers[i].ID == id {
			m.drivers = append(m.drivers[:i], m.drivers[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type memSettlementStorage struct {
	records []settlement.Record
}

func (m *memSettlementStorage) List(_ context.Context) ([]settlement.Record, error) {
	return append([]settlement.Record(nil), m.records...), nil
}
func (m *memSettlementStorage) Insert(_ context.Context, r settlement.Record) error {
	m.records = append(m.records, r)
	return nil
}
func (m *memSettlementStorage) Update(_ context.Context, r settlement.Record) (bool, error) {
	for i := range m.records {
		if m.records[i].ID == r.ID {
			m.records[i] = r
			return true, nil
		}
	}
	return false, nil
}
func (m *memSettlementStorage) Delete(_ context.Context, id int64) (bool, error) {
	for i := range m.records {
		if m.records[i].ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type staticTableSource struct {
	table fees.Table
}

func (s *staticTableSource) ActiveTable(_ context.Context) (fees.Table, error) {
	return s.table, nil
}

func buildTestRouter(source dispatch.Source, drivers []driver.Driver, table fees.Table) *gin.Engine {
	gin.SetMode(gin.TestMode)
	driverSvc := driver.NewService(&memDriverStorage{drivers: drivers})
	settlementSvc := settlement.NewService(&memSettlementStorage{})
	resolver := fees.NewResolver(&staticTableSource{table: table}, config.BillingConfig{})

	h := handlers.NewSummaryHandler(source, driverSvc, settlementSvc, resolver)
	r := gin.New()
	r.GET("/api/summary", h.Summary)
	r.POST("/api/quote", h.Quote)
	return r
}

func doRequest(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSummaryRequiresDateRange(t *testing.T) {
	r := buildTestRouter(&stubDispatchSource{}, nil, nil)
	w := doRequest(r, http.MethodGet, "/api/summary?start_date=2026-08-01", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestSummaryConsolidatesRegisteredDrivers(t *testing.T) {
	source := &stubDispatchSource{rows: []dispatch.Row{
		{Date: "2026-08-01", DriverName: "김철수", MaxWeightKG: 2500, AddrList: "창원시 1||김해시 2", TotalCount: 2, TotalWeight: 100},
		{Date: "2026-08-01", DriverName: "미등록", AddrList: "서울시 1", TotalCount: 1, TotalWeight: 50},
	}}
	drivers := []driver.Driver{{ID: 1, Name: "김철수", Affiliation: "한빛물류"}}

	r := buildTestRouter(source, drivers, nil)
	w := doRequest(r, http.MethodGet, "/api/summary?start_date=2026-08-01&end_date=2026-08-31", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data    []dispatch.ConsolidatedRow `json:"data"`
		Summary dispatch.Summary           `json:"summary"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("expected 1 consolidated row, got %d", len(resp.Data))
	}
	if resp.Data[0].Affiliation != "한빛물류" || resp.Data[0].DestCount != 2 {
		t.Fatalf("unexpected row: %+v", resp.Data[0])
	}
	if resp.Summary.TotalDrivers != 1 || resp.Summary.TotalShipments != 2 {
		t.Fatalf("unexpected summary: %+v", resp.Summary)
	}
}

func TestQuoteComputesFee(t *testing.T) {
	table := fees.Table{
		{ID: 1, Affiliation: "한빛물류", Region: "창원", Year: 2026, Price: 90000},
		{ID: 2, Affiliation: "한빛물류", Region: fees.KeyExtraStop, Year: 2026, Price: 10000},
	}
	r := buildTestRouter(&stubDispatchSource{}, nil, table)

	w := doRequest(r, http.MethodPost, "/api/quote", map[string]any{
		"date":              "2026-08-01",
		"affiliation":       "한빛물류",
		"address_list":      "창원시 의창구 1||창원시 성산구 2||창원시 진해구 3",
		"destination_count": 3,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result fees.ResolveResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected a match: %+v", result)
	}
	if result.FinalPrice != 110000 {
		t.Fatalf("final price: got %d, want 110000", result.FinalPrice)
	}
}

func TestQuoteRejectsBadBody(t *testing.T) {
	r := buildTestRouter(&stubDispatchSource{}, nil, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/quote", bytes.NewBufferString("{broken"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
