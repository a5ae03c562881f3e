package scenario

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Simplici0/cupcost/internal/pricing"
)

const yamlScenario = `
expenses:
  - id: rent
    name: Rent
    amount: 1000
  - name: Electricity
    amount: 500
    description: avg bill
monthly_production:
  production: 100
raw_material:
  price_per_kg: 10
  cup_weight_in_grams: 2
gst_rates:
  - id: exempt
    rate: 0
  - rate: 18
    description: Standard
`

const tomlScenario = `
[monthly_production]
production = 100

[raw_material]
price_per_kg = 10
cup_weight_in_grams = 2

[[expenses]]
id = "rent"
name = "Rent"
amount = 1000

[[expenses]]
name = "Electricity"
amount = 500

[[gst_rates]]
id = "exempt"
rate = 0

[[gst_rates]]
rate = 18
description = "Standard"
`

const jsonScenario = `{
  "expenses": [{"id": "rent", "name": "Rent", "amount": 1000}, {"name": "Electricity", "amount": 500}],
  "monthlyProduction": {"production": 100},
  "rawMaterialConfig": {"pricePerKg": 10, "cupWeightInGrams": 2},
  "gstRates": [{"id": "exempt", "rate": 0}, {"rate": 18, "description": "Standard"}]
}`

func writeScenario(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	return path
}

func assertSampleInput(t *testing.T, in pricing.Input) {
	t.Helper()

	if len(in.Expenses) != 2 || in.Expenses[0].ID != "rent" || in.Expenses[1].ID == "" {
		t.Fatalf("unexpected expenses: %+v", in.Expenses)
	}
	if len(in.GSTRates) != 2 || in.GSTRates[0].ID != "exempt" || in.GSTRates[1].ID == "" {
		t.Fatalf("unexpected gst rates: %+v", in.GSTRates)
	}
	if in.GSTRates[1].Description != "Standard" {
		t.Fatalf("unexpected description: %+v", in.GSTRates[1])
	}

	result := pricing.Calculate(in)
	if math.Abs(result.BaseCostPerCup-15.02) > 1e-9 {
		t.Fatalf("baseCostPerCup = %v, want 15.02", result.BaseCostPerCup)
	}
}

func TestLoad_YAML(t *testing.T) {
	in, err := Load(writeScenario(t, "cups.yaml", yamlScenario))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertSampleInput(t, in)
}

func TestLoad_TOML(t *testing.T) {
	in, err := Load(writeScenario(t, "cups.toml", tomlScenario))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertSampleInput(t, in)
}

func TestLoad_JSON(t *testing.T) {
	in, err := Load(writeScenario(t, "cups.json", jsonScenario))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertSampleInput(t, in)
}

func TestLoad_RejectsUnknownFields(t *testing.T) {
	if _, err := Load(writeScenario(t, "bad.yml", "production: 100\n")); err == nil {
		t.Fatalf("expected error for unknown yaml field")
	}
	if _, err := Load(writeScenario(t, "bad.toml", "production = 100\n")); err == nil {
		t.Fatalf("expected error for unknown toml key")
	}
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	if _, err := Load(writeScenario(t, "cups.ini", "x=1")); err == nil {
		t.Fatalf("expected error for unsupported extension")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
