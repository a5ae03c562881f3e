package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Simplici0/cupcost/internal/pricing"
)

const timeLayout = "2006-01-02 15:04:05"

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// NewCalculation is a calculation about to be saved.
type NewCalculation struct {
	Title    string
	Notes    string
	Currency string
	Input    pricing.Input
	Result   pricing.Result
}

// Calculation is a saved snapshot. Result is stored as computed and never recalculated on read.
type Calculation struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	Title     string         `json:"title"`
	Notes     string         `json:"notes"`
	Currency  string         `json:"currency"`
	Input     pricing.Input  `json:"input"`
	Result    pricing.Result `json:"result"`
}

// Summary is a saved calculation as shown in listings.
type Summary struct {
	ID               string    `json:"id"`
	CreatedAt        time.Time `json:"createdAt"`
	Title            string    `json:"title"`
	Currency         string    `json:"currency"`
	Production       float64   `json:"production"`
	BaseCostPerCup   float64   `json:"baseCostPerCup"`
	TotalMonthlyCost float64   `json:"totalMonthlyCost"`
}

// Store persists calculations and GST presets in SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// New returns a Store backed by db. The schema must already be migrated.
func New(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// SaveCalculation stores a snapshot of c and returns it with its id and timestamp.
func (s *Store) SaveCalculation(ctx context.Context, c NewCalculation) (Calculation, error) {
	inputJSON, err := json.Marshal(c.Input)
	if err != nil {
		return Calculation{}, fmt.Errorf("encode calculation input: %w", err)
	}
	resultJSON, err := json.Marshal(c.Result)
	if err != nil {
		return Calculation{}, fmt.Errorf("encode calculation result: %w", err)
	}

	saved := Calculation{
		ID:        uuid.NewString(),
		CreatedAt: s.now().UTC().Truncate(time.Second),
		Title:     strings.TrimSpace(c.Title),
		Notes:     strings.TrimSpace(c.Notes),
		Currency:  c.Currency,
		Input:     c.Input,
		Result:    c.Result,
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO calculations (
			id, created_at, title, notes, currency, production, base_cost_per_cup, total_monthly_cost, input_json, result_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		saved.ID,
		saved.CreatedAt.Format(timeLayout),
		saved.Title,
		saved.Notes,
		saved.Currency,
		c.Input.MonthlyProduction.Production,
		c.Result.BaseCostPerCup,
		c.Result.TotalMonthlyCost,
		string(inputJSON),
		string(resultJSON),
	)
	if err != nil {
		return Calculation{}, fmt.Errorf("insert calculation: %w", err)
	}

	return saved, nil
}

// ListCalculations returns saved calculations newest first. A non-empty query
// filters by title or notes as a literal substring.
func (s *Store) ListCalculations(ctx context.Context, query string) ([]Summary, error) {
	query = strings.TrimSpace(query)
	search := "%" + escapeLike(query) + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, title, currency, production, base_cost_per_cup, total_monthly_cost
		FROM calculations
		WHERE (? = '' OR title LIKE ? ESCAPE '\' OR notes LIKE ? ESCAPE '\')
		ORDER BY datetime(created_at) DESC, rowid DESC
	`, query, search, search)
	if err != nil {
		return nil, fmt.Errorf("query calculations: %w", err)
	}
	defer rows.Close()

	summaries := make([]Summary, 0)
	for rows.Next() {
		var item Summary
		var createdAt string
		if err := rows.Scan(&item.ID, &createdAt, &item.Title, &item.Currency, &item.Production, &item.BaseCostPerCup, &item.TotalMonthlyCost); err != nil {
			return nil, fmt.Errorf("scan calculation: %w", err)
		}
		if item.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate calculations: %w", err)
	}

	return summaries, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// GetCalculation reads a saved snapshot by id.
func (s *Store) GetCalculation(ctx context.Context, id string) (Calculation, error) {
	var c Calculation
	var createdAt, inputJSON, resultJSON string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, title, notes, currency, input_json, result_json
		FROM calculations
		WHERE id = ?
	`, id).Scan(&c.ID, &createdAt, &c.Title, &c.Notes, &c.Currency, &inputJSON, &resultJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Calculation{}, ErrNotFound
		}
		return Calculation{}, fmt.Errorf("query calculation: %w", err)
	}

	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return Calculation{}, err
	}
	if err := json.Unmarshal([]byte(inputJSON), &c.Input); err != nil {
		return Calculation{}, fmt.Errorf("decode calculation input: %w", err)
	}
	if err := json.Unmarshal([]byte(resultJSON), &c.Result); err != nil {
		return Calculation{}, fmt.Errorf("decode calculation result: %w", err)
	}

	return c, nil
}

// DeleteCalculation removes a saved calculation.
func (s *Store) DeleteCalculation(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM calculations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete calculation: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete calculation: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// PruneCalculations deletes calculations created before cutoff and returns how many were removed.
func (s *Store) PruneCalculations(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM calculations
		WHERE datetime(created_at) < datetime(?)
	`, cutoff.UTC().Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("prune calculations: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune calculations: %w", err)
	}
	return affected, nil
}

func parseTime(raw string) (time.Time, error) {
	for _, layout := range []string{timeLayout, time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("parse timestamp %q", raw)
}
