package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Simplici0/cupcost/internal/pricing"
)

// GSTPreset is a stored tax rate offered as a starting point for new calculations.
type GSTPreset struct {
	ID          string  `json:"id"`
	Rate        float64 `json:"rate"`
	Description string  `json:"description"`
	Active      bool    `json:"active"`
}

// Entry converts p into a calculation input entry.
func (p GSTPreset) Entry() pricing.GSTRateEntry {
	return pricing.GSTRateEntry{ID: p.ID, Rate: p.Rate, Description: p.Description}
}

// ListGSTPresets returns presets ordered by rate. activeOnly hides inactive ones.
func (s *Store) ListGSTPresets(ctx context.Context, activeOnly bool) ([]GSTPreset, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, rate, description, active
		FROM gst_presets
		WHERE (? = FALSE OR active = TRUE)
		ORDER BY rate ASC, id ASC
	`, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("query gst presets: %w", err)
	}
	defer rows.Close()

	presets := make([]GSTPreset, 0)
	for rows.Next() {
		var p GSTPreset
		if err := rows.Scan(&p.ID, &p.Rate, &p.Description, &p.Active); err != nil {
			return nil, fmt.Errorf("scan gst preset: %w", err)
		}
		presets = append(presets, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate gst presets: %w", err)
	}

	return presets, nil
}

// SaveGSTPreset creates p, or updates it when p.ID already exists.
func (s *Store) SaveGSTPreset(ctx context.Context, p GSTPreset) (GSTPreset, error) {
	if !(p.Rate >= 0 && p.Rate <= 100) {
		return GSTPreset{}, fmt.Errorf("rate must be between 0 and 100")
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.Description = strings.TrimSpace(p.Description)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO gst_presets (id, rate, description, active)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			rate = excluded.rate,
			description = excluded.description,
			active = excluded.active,
			updated_at = CURRENT_TIMESTAMP
	`, p.ID, p.Rate, p.Description, p.Active)
	if err != nil {
		return GSTPreset{}, fmt.Errorf("save gst preset: %w", err)
	}

	return p, nil
}
