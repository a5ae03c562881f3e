package pricing

import (
	"errors"
	"log/slog"
	"slices"

	"github.com/google/uuid"
)

// ErrIndexOutOfRange is returned when an entry index does not exist.
var ErrIndexOutOfRange = errors.New("index out of range")

// Listener is notified with the new result after every change.
// A nil result means the last recomputation failed.
type Listener func(result *Result)

// Session owns an editable Input and recomputes its Result after every change.
// A Session is not safe for concurrent use.
type Session struct {
	input     Input
	result    *Result
	listeners []Listener
	logger    *slog.Logger
	calculate func(Input) Result
}

// NewSession returns a session seeded with input and an initial result.
func NewSession(input Input, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		input:     cloneInput(input),
		logger:    logger,
		calculate: Calculate,
	}
	s.recompute()
	return s
}

// Subscribe registers l to be called after each recomputation.
func (s *Session) Subscribe(l Listener) {
	s.listeners = append(s.listeners, l)
}

// Input returns a copy of the current input.
func (s *Session) Input() Input {
	return cloneInput(s.input)
}

// Result returns the latest result, or nil when none is available.
func (s *Session) Result() *Result {
	return s.result
}

// Replace swaps the whole input.
func (s *Session) Replace(input Input) {
	s.input = cloneInput(input)
	s.recompute()
}

// AddExpense appends e, assigning an id when it has none, and returns the id.
func (s *Session) AddExpense(e ExpenseEntry) string {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	s.input.Expenses = append(slices.Clone(s.input.Expenses), e)
	s.recompute()
	return e.ID
}

// UpdateExpense replaces the expense at index i. The entry keeps its id.
func (s *Session) UpdateExpense(i int, e ExpenseEntry) error {
	if i < 0 || i >= len(s.input.Expenses) {
		return ErrIndexOutOfRange
	}
	expenses := slices.Clone(s.input.Expenses)
	e.ID = expenses[i].ID
	expenses[i] = e
	s.input.Expenses = expenses
	s.recompute()
	return nil
}

// RemoveExpense deletes the expense at index i.
func (s *Session) RemoveExpense(i int) error {
	if i < 0 || i >= len(s.input.Expenses) {
		return ErrIndexOutOfRange
	}
	s.input.Expenses = slices.Delete(slices.Clone(s.input.Expenses), i, i+1)
	s.recompute()
	return nil
}

// AddGSTRate appends g, assigning an id when it has none, and returns the id.
func (s *Session) AddGSTRate(g GSTRateEntry) string {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	s.input.GSTRates = append(slices.Clone(s.input.GSTRates), g)
	s.recompute()
	return g.ID
}

// UpdateGSTRate replaces the tax rate at index i. The entry keeps its id.
func (s *Session) UpdateGSTRate(i int, g GSTRateEntry) error {
	if i < 0 || i >= len(s.input.GSTRates) {
		return ErrIndexOutOfRange
	}
	rates := slices.Clone(s.input.GSTRates)
	g.ID = rates[i].ID
	rates[i] = g
	s.input.GSTRates = rates
	s.recompute()
	return nil
}

// RemoveGSTRate deletes the tax rate at index i.
func (s *Session) RemoveGSTRate(i int) error {
	if i < 0 || i >= len(s.input.GSTRates) {
		return ErrIndexOutOfRange
	}
	s.input.GSTRates = slices.Delete(slices.Clone(s.input.GSTRates), i, i+1)
	s.recompute()
	return nil
}

// SetProduction updates the monthly production volume.
func (s *Session) SetProduction(production float64) {
	s.input.MonthlyProduction.Production = production
	s.recompute()
}

// SetRawMaterial updates the raw material configuration.
func (s *Session) SetRawMaterial(cfg RawMaterialConfig) {
	s.input.RawMaterialConfig = cfg
	s.recompute()
}

func (s *Session) recompute() {
	s.result = s.tryCalculate()
	for _, l := range s.listeners {
		l(s.result)
	}
}

// tryCalculate drops the previous result when the calculation panics.
func (s *Session) tryCalculate() (result *Result) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("pricing recomputation failed", "panic", r)
			result = nil
		}
	}()

	res := s.calculate(s.input)
	return &res
}

func cloneInput(in Input) Input {
	in.Expenses = slices.Clone(in.Expenses)
	in.GSTRates = slices.Clone(in.GSTRates)
	return in
}
