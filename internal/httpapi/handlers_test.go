package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/cupcost/internal/db"
	"github.com/Simplici0/cupcost/internal/migrations"
	"github.com/Simplici0/cupcost/internal/pricing"
	"github.com/Simplici0/cupcost/internal/seed"
	"github.com/Simplici0/cupcost/internal/store"
)

const sampleInputJSON = `{
	"expenses": [{"id": "rent", "name": "Rent", "amount": 1000}, {"id": "power", "name": "Power", "amount": 500}],
	"monthlyProduction": {"production": 100},
	"rawMaterialConfig": {"pricePerKg": 10, "cupWeightInGrams": 2},
	"gstRates": [{"id": "zero", "rate": 0}, {"id": "std", "rate": 18, "description": "Standard"}]
}`

func newTestServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "api-test.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if err := migrations.Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	if _, err := seed.Run(context.Background(), database); err != nil {
		t.Fatalf("run seed: %v", err)
	}

	st := store.New(database)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(st, logger, "INR"), st
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHandleCalculate_ReturnsPricedTable(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := do(t, srv.Routes(), http.MethodPost, "/api/calculate", sampleInputJSON)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var result pricing.Result
	if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if math.Abs(result.BaseCostPerCup-15.02) > 1e-9 {
		t.Fatalf("baseCostPerCup = %v, want 15.02", result.BaseCostPerCup)
	}
	if len(result.PricesWithGST) != 2 || result.PricesWithGST[1].ID != "std" {
		t.Fatalf("unexpected price rows: %+v", result.PricesWithGST)
	}
	if math.Abs(result.PricesWithGST[1].PriceWithGST-17.7236) > 1e-9 {
		t.Fatalf("priceWithGST = %v, want 17.7236", result.PricesWithGST[1].PriceWithGST)
	}
	if !strings.Contains(rr.Body.String(), `"pricesWithGST"`) {
		t.Fatalf("expected camelCase keys, got %s", rr.Body.String())
	}
}

func TestHandleCalculate_ValidationErrors(t *testing.T) {
	srv, _ := newTestServer(t)

	body := `{"expenses": [{"id": "x", "name": "", "amount": 10}], "monthlyProduction": {"production": 0},
		"rawMaterialConfig": {"pricePerKg": 1, "cupWeightInGrams": 1}, "gstRates": []}`
	rr := do(t, srv.Routes(), http.MethodPost, "/api/calculate", body)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if len(resp.Details) != 2 {
		t.Fatalf("expected 2 validation details, got %+v", resp)
	}
}

func TestHandleCalculate_RejectsUnknownFields(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := do(t, srv.Routes(), http.MethodPost, "/api/calculate", `{"bogus": 1}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleCalculate_OverflowingResultIsAnError(t *testing.T) {
	srv, _ := newTestServer(t)

	body := `{"expenses": [{"id": "a", "name": "A", "amount": 1e308}, {"id": "b", "name": "B", "amount": 1e308}],
		"monthlyProduction": {"production": 1},
		"rawMaterialConfig": {"pricePerKg": 1, "cupWeightInGrams": 1}, "gstRates": [{"id": "std", "rate": 18}]}`
	rr := do(t, srv.Routes(), http.MethodPost, "/api/calculate", body)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d: %q", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content-type = %q, want application/json", ct)
	}

	var resp errorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response: %v (body %q)", err, rr.Body.String())
	}
	if resp.Error == "" {
		t.Fatalf("expected error message, got %+v", resp)
	}
}

func TestWriteJSON_UnencodableValue(t *testing.T) {
	rr := httptest.NewRecorder()

	writeJSON(rr, http.StatusOK, map[string]float64{"x": math.NaN()})

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"error"`) {
		t.Fatalf("expected error body, got %q", rr.Body.String())
	}
}

func TestCalculationLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Routes()

	created := do(t, h, http.MethodPost, "/api/calculations", `{"title": "Paper cups", "notes": "March run", "input": `+sampleInputJSON+`}`)
	if created.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", created.Code, created.Body.String())
	}

	var saved store.Calculation
	if err := json.Unmarshal(created.Body.Bytes(), &saved); err != nil {
		t.Fatalf("decode saved calculation: %v", err)
	}
	if saved.ID == "" || saved.Currency != "INR" {
		t.Fatalf("unexpected saved calculation: %+v", saved)
	}

	list := do(t, h, http.MethodGet, "/api/calculations?q=Paper", "")
	var summaries []store.Summary
	if err := json.Unmarshal(list.Body.Bytes(), &summaries); err != nil {
		t.Fatalf("decode summaries: %v", err)
	}
	if len(summaries) != 1 || summaries[0].ID != saved.ID {
		t.Fatalf("unexpected summaries: %+v", summaries)
	}

	got := do(t, h, http.MethodGet, "/api/calculations/"+saved.ID, "")
	if got.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", got.Code)
	}

	deleted := do(t, h, http.MethodDelete, "/api/calculations/"+saved.ID, "")
	if deleted.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", deleted.Code)
	}

	missing := do(t, h, http.MethodGet, "/api/calculations/"+saved.ID, "")
	if missing.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", missing.Code)
	}
}

func TestHandleCreateCalculation_AssignsMissingIDs(t *testing.T) {
	srv, _ := newTestServer(t)

	body := `{"title": "No ids", "input": {"expenses": [{"name": "Rent", "amount": 100}], "monthlyProduction": {"production": 10},
		"rawMaterialConfig": {"pricePerKg": 1, "cupWeightInGrams": 1}, "gstRates": [{"rate": 5}]}}`
	rr := do(t, srv.Routes(), http.MethodPost, "/api/calculations", body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var saved store.Calculation
	if err := json.Unmarshal(rr.Body.Bytes(), &saved); err != nil {
		t.Fatalf("decode saved calculation: %v", err)
	}
	if saved.Input.Expenses[0].ID == "" || saved.Result.PricesWithGST[0].ID == "" {
		t.Fatalf("expected generated ids, got %+v", saved)
	}
	if saved.Result.PricesWithGST[0].ID != saved.Input.GSTRates[0].ID {
		t.Fatalf("priced row id does not match its rate id")
	}
}

func TestHandleCalculationText_ReturnsPlainText(t *testing.T) {
	srv, st := newTestServer(t)

	var in pricing.Input
	if err := json.Unmarshal([]byte(sampleInputJSON), &in); err != nil {
		t.Fatalf("decode input: %v", err)
	}
	saved, err := st.SaveCalculation(context.Background(), store.NewCalculation{
		Title: "Demo", Notes: "48h delivery", Currency: "INR", Input: in, Result: pricing.Calculate(in),
	})
	if err != nil {
		t.Fatalf("SaveCalculation: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/calculations/"+saved.ID+"/text", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", saved.ID)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rr := httptest.NewRecorder()
	srv.handleCalculationText(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Header().Get("Content-Type"), "text/plain") {
		t.Fatalf("expected text/plain content type, got %q", rr.Header().Get("Content-Type"))
	}

	body := rr.Body.String()
	for _, expected := range []string{
		"Calculation: Demo",
		"Notes: 48h delivery",
		"Base cost per unit: 15.02 INR",
		"GST 18%: 17.72 INR (tax 2.70 INR) Standard",
	} {
		if !strings.Contains(body, expected) {
			t.Fatalf("expected body to contain %q, got: %s", expected, body)
		}
	}
}

func TestHandleListGSTPresets_ReturnsSeededSlabs(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := do(t, srv.Routes(), http.MethodGet, "/api/gst-presets", "")

	var presets []store.GSTPreset
	if err := json.Unmarshal(rr.Body.Bytes(), &presets); err != nil {
		t.Fatalf("decode presets: %v", err)
	}
	if len(presets) != 5 || presets[0].Rate != 0 || presets[4].Rate != 28 {
		t.Fatalf("unexpected presets: %+v", presets)
	}
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := do(t, srv.Routes(), http.MethodGet, "/healthz", "")

	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"ok"`) {
		t.Fatalf("unexpected health response: %d %s", rr.Code, rr.Body.String())
	}
}
