package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/cupcost/internal/cli"
	"github.com/Simplici0/cupcost/internal/pricing"
	"github.com/Simplici0/cupcost/internal/scenario"
	"github.com/Simplici0/cupcost/internal/store"
)

const maxBodyBytes = 1 << 20

type createCalculationRequest struct {
	Title string        `json:"title"`
	Notes string        `json:"notes"`
	Input pricing.Input `json:"input"`
}

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var in pricing.Input
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := in.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	result, err := s.calculate(in)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListGSTPresets(w http.ResponseWriter, r *http.Request) {
	presets, err := s.store.ListGSTPresets(r.Context(), r.URL.Query().Get("all") != "1")
	if err != nil {
		s.internalError(w, "failed to load gst presets", err)
		return
	}

	writeJSON(w, http.StatusOK, presets)
}

func (s *Server) handleListCalculations(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.store.ListCalculations(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.internalError(w, "failed to load calculations", err)
		return
	}

	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleCreateCalculation(w http.ResponseWriter, r *http.Request) {
	var req createCalculationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := req.Input.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	scenario.AssignIDs(&req.Input)
	result, err := s.calculate(req.Input)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	saved, err := s.store.SaveCalculation(r.Context(), store.NewCalculation{
		Title:    req.Title,
		Notes:    req.Notes,
		Currency: s.currency,
		Input:    req.Input,
		Result:   result,
	})
	if err != nil {
		s.internalError(w, "failed to save calculation", err)
		return
	}

	s.logger.Info("calculation saved", "id", saved.ID, "title", saved.Title)
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleGetCalculation(w http.ResponseWriter, r *http.Request) {
	calc, ok := s.loadCalculation(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, calc)
}

func (s *Server) handleCalculationText(w http.ResponseWriter, r *http.Request) {
	calc, ok := s.loadCalculation(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, buildCalculationText(calc))
}

func (s *Server) handleDeleteCalculation(w http.ResponseWriter, r *http.Request) {
	err := s.store.DeleteCalculation(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, errors.New("calculation not found"))
		return
	}
	if err != nil {
		s.internalError(w, "failed to delete calculation", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) loadCalculation(w http.ResponseWriter, r *http.Request) (store.Calculation, bool) {
	calc, err := s.store.GetCalculation(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, errors.New("calculation not found"))
		return store.Calculation{}, false
	}
	if err != nil {
		s.internalError(w, "failed to load calculation", err)
		return store.Calculation{}, false
	}
	return calc, true
}

// calculate reports a panic inside the calculation as an error so no
// partial result is returned.
func (s *Server) calculate(in pricing.Input) (result pricing.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("pricing calculation failed", "panic", r)
			result, err = pricing.Result{}, fmt.Errorf("calculation failed: %v", r)
		}
	}()

	return pricing.Calculate(in), nil
}

func (s *Server) internalError(w http.ResponseWriter, msg string, err error) {
	s.logger.Error(msg, "error", err)
	writeError(w, http.StatusInternalServerError, errors.New(msg))
}

func buildCalculationText(c store.Calculation) string {
	var b strings.Builder
	res := c.Result

	title := c.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Fprintf(&b, "Calculation: %s\n", title)
	fmt.Fprintf(&b, "Created: %s\n", c.CreatedAt.Format("2006-01-02 15:04"))
	if c.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", c.Notes)
	}

	b.WriteString("\nCosts:\n")
	fmt.Fprintf(&b, "- Units per month: %s\n", cli.FormatQuantity(c.Input.MonthlyProduction.Production))
	fmt.Fprintf(&b, "- Total monthly expenses: %s\n", cli.FormatMoney(res.TotalMonthlyExpenses, c.Currency))
	fmt.Fprintf(&b, "- Raw material: %s kg, %s\n", cli.FormatQuantity(res.RawMaterialRequiredKg), cli.FormatMoney(res.RawMaterialCostPerMonth, c.Currency))
	fmt.Fprintf(&b, "- Base cost per unit: %s\n", cli.FormatUnitCost(res.BaseCostPerCup, c.Currency))
	fmt.Fprintf(&b, "- Total monthly cost: %s\n", cli.FormatMoney(res.TotalMonthlyCost, c.Currency))

	b.WriteString("\nPrices:\n")
	for _, p := range res.PricesWithGST {
		fmt.Fprintf(&b, "- GST %s: %s (tax %s)", cli.FormatPercent(p.GSTRate), cli.FormatUnitCost(p.PriceWithGST, c.Currency), cli.FormatUnitCost(p.GSTAmount, c.Currency))
		if p.Description != "" {
			fmt.Fprintf(&b, " %s", p.Description)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeValidationError(w http.ResponseWriter, err error) {
	resp := errorResponse{Error: "validation failed"}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			resp.Details = append(resp.Details, e.Error())
		}
	} else {
		resp.Details = []string{err.Error()}
	}
	writeJSON(w, http.StatusBadRequest, resp)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// writeJSON encodes v before the status line goes out, so a value that cannot
// be encoded (NaN or Inf in a result) becomes a 500 with an error body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(errorResponse{Error: fmt.Sprintf("encode response: %v", err)})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
