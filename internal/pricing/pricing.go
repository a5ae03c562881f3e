package pricing

// ExpenseEntry is a fixed monthly expense such as rent or salaries.
type ExpenseEntry struct {
	ID          string  `json:"id" yaml:"id" toml:"id"`
	Name        string  `json:"name" yaml:"name" toml:"name"`
	Amount      float64 `json:"amount" yaml:"amount" toml:"amount"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
}

// GSTRateEntry is one tax-rate scenario, as a percentage.
type GSTRateEntry struct {
	ID          string  `json:"id" yaml:"id" toml:"id"`
	Rate        float64 `json:"rate" yaml:"rate" toml:"rate"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
}

// MonthlyProduction is the number of units produced per period.
type MonthlyProduction struct {
	Production float64 `json:"production" yaml:"production" toml:"production"`
}

// RawMaterialConfig describes the material consumed by a single unit.
type RawMaterialConfig struct {
	PricePerKg       float64 `json:"pricePerKg" yaml:"price_per_kg" toml:"price_per_kg"`
	CupWeightInGrams float64 `json:"cupWeightInGrams" yaml:"cup_weight_in_grams" toml:"cup_weight_in_grams"`
}

// Input groups every value the calculation depends on.
type Input struct {
	Expenses          []ExpenseEntry    `json:"expenses" yaml:"expenses" toml:"expenses"`
	MonthlyProduction MonthlyProduction `json:"monthlyProduction" yaml:"monthly_production" toml:"monthly_production"`
	RawMaterialConfig RawMaterialConfig `json:"rawMaterialConfig" yaml:"raw_material" toml:"raw_material"`
	GSTRates          []GSTRateEntry    `json:"gstRates" yaml:"gst_rates" toml:"gst_rates"`
}

// PriceWithGST is the priced output for a single tax-rate scenario.
type PriceWithGST struct {
	ID           string  `json:"id"`
	GSTRate      float64 `json:"gstRate"`
	PriceWithGST float64 `json:"priceWithGST"`
	GSTAmount    float64 `json:"gstAmount"`
	Description  string  `json:"description,omitempty"`
}

// Result contains totals, per-unit costs and the priced table.
// Expenses and GSTRates are the slices passed in, not copies.
type Result struct {
	TotalMonthlyExpenses    float64        `json:"totalMonthlyExpenses"`
	RawMaterialRequiredKg   float64        `json:"rawMaterialRequiredKg"`
	RawMaterialCostPerMonth float64        `json:"rawMaterialCostPerMonth"`
	RawMaterialCostPerCup   float64        `json:"rawMaterialCostPerCup"`
	FixedCostPerCup         float64        `json:"fixedCostPerCup"`
	BaseCostPerCup          float64        `json:"baseCostPerCup"`
	TotalMonthlyCost        float64        `json:"totalMonthlyCost"`
	PricesWithGST           []PriceWithGST `json:"pricesWithGST"`
	Expenses                []ExpenseEntry `json:"expenses"`
	GSTRates                []GSTRateEntry `json:"gstRates"`
}

// Calculate derives per-unit costs and tax-inclusive prices from input.
// It performs no validation and no rounding.
//
// Only the fixed cost share is guarded against a zero production; the raw
// material share divides unconditionally, so production == 0 yields NaN
// there and in every value derived from it.
func Calculate(input Input) Result {
	production := input.MonthlyProduction.Production
	material := input.RawMaterialConfig

	totalMonthlyExpenses := 0.0
	for _, expense := range input.Expenses {
		totalMonthlyExpenses += expense.Amount
	}

	rawMaterialRequiredKg := (material.CupWeightInGrams * production) / 1000
	rawMaterialCostPerMonth := rawMaterialRequiredKg * material.PricePerKg
	rawMaterialCostPerCup := rawMaterialCostPerMonth / production

	fixedCostPerCup := 0.0
	if production > 0 {
		fixedCostPerCup = totalMonthlyExpenses / production
	}

	baseCostPerCup := rawMaterialCostPerCup + fixedCostPerCup
	totalMonthlyCost := totalMonthlyExpenses + rawMaterialCostPerMonth

	prices := make([]PriceWithGST, 0, len(input.GSTRates))
	for _, gst := range input.GSTRates {
		gstAmount := baseCostPerCup * gst.Rate / 100
		prices = append(prices, PriceWithGST{
			ID:           gst.ID,
			GSTRate:      gst.Rate,
			PriceWithGST: baseCostPerCup + gstAmount,
			GSTAmount:    gstAmount,
			Description:  gst.Description,
		})
	}

	return Result{
		TotalMonthlyExpenses:    totalMonthlyExpenses,
		RawMaterialRequiredKg:   rawMaterialRequiredKg,
		RawMaterialCostPerMonth: rawMaterialCostPerMonth,
		RawMaterialCostPerCup:   rawMaterialCostPerCup,
		FixedCostPerCup:         fixedCostPerCup,
		BaseCostPerCup:          baseCostPerCup,
		TotalMonthlyCost:        totalMonthlyCost,
		PricesWithGST:           prices,
		Expenses:                input.Expenses,
		GSTRates:                input.GSTRates,
	}
}
