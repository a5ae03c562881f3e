package pricing

import (
	"errors"
	"fmt"
	"strings"
)

// Validate reports every field that falls outside the accepted ranges.
// Calculate never calls it; callers that accept user input do.
func (in Input) Validate() error {
	var errs []error

	// Comparisons are negated so NaN is rejected too.
	for i, expense := range in.Expenses {
		if strings.TrimSpace(expense.Name) == "" {
			errs = append(errs, fmt.Errorf("expenses[%d].name is required", i))
		}
		if !(expense.Amount >= 0) {
			errs = append(errs, fmt.Errorf("expenses[%d].amount must be greater than or equal to 0", i))
		}
	}

	if !(in.MonthlyProduction.Production >= 1) {
		errs = append(errs, errors.New("monthlyProduction.production must be at least 1"))
	}
	if !(in.RawMaterialConfig.PricePerKg >= 0) {
		errs = append(errs, errors.New("rawMaterialConfig.pricePerKg must be greater than or equal to 0"))
	}
	if !(in.RawMaterialConfig.CupWeightInGrams > 0) {
		errs = append(errs, errors.New("rawMaterialConfig.cupWeightInGrams must be greater than 0"))
	}

	for i, gst := range in.GSTRates {
		if !(gst.Rate >= 0 && gst.Rate <= 100) {
			errs = append(errs, fmt.Errorf("gstRates[%d].rate must be between 0 and 100", i))
		}
	}

	return errors.Join(errs...)
}
