package reports

import (
	"testing"

	"bitbucket.org/terrafocus/campo_backend/models"
	"github.com/shopspring/decimal"
)

func TestBuildCommissionStatementXLSX(t *testing.T) {
	campaign := "2025-2026"
	summary := &models.AgentCommissionSummary{
		AgentId:   1,
		AgentName: "Corredor Martínez",
		Side:      models.ContractSidePurchase,
		Lines: []*models.CommissionLine{
			{
				DeliveryNoteId:      1,
				NoteNumber:          "ALB-0001",
				ContractCode:        "C-001",
				Date:                "2025-07-03",
				CounterpartName:     "Cooperativa San Isidro",
				Crop:                "trigo duro",
				Quantity:            decimal.NewFromInt(25000),
				UnitPrice:           decimal.RequireFromString("0.25"),
				Amount:              decimal.NewFromInt(6250),
				CommissionMode:      models.CommissionModePercentage,
				CommissionModeLabel: models.CommissionModePercentage.Label(),
				CommissionRate:      decimal.RequireFromString("1.5"),
				CommissionAmount:    decimal.RequireFromString("93.75"),
			},
		},
		TotalQuantity:       decimal.NewFromInt(25000),
		TotalDeliveryAmount: decimal.NewFromInt(6250),
		TotalCommission:     decimal.RequireFromString("93.75"),
	}

	f, err := BuildCommissionStatementXLSX(summary, &campaign)
	if err != nil {
		t.Fatalf("BuildCommissionStatementXLSX: %v", err)
	}

	cases := []struct {
		cell     string
		expected string
	}{
		{"B1", "Corredor Martínez"},
		{"B2", "purchase"},
		{"B3", "2025-2026"},
		{"A5", "Date"},
		{"B6", "ALB-0001"},
		{"C6", "C-001"},
		{"A7", "TOTAL"},
	}
	for _, tc := range cases {
		got, err := f.GetCellValue("Sheet1", tc.cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", tc.cell, err)
		}
		if got != tc.expected {
			t.Fatalf("cell %s: expected %q, got %q", tc.cell, tc.expected, got)
		}
	}
}

func TestBuildCommissionStatementXLSXEmptySummary(t *testing.T) {
	summary := &models.AgentCommissionSummary{
		AgentId:   2,
		AgentName: "Agencia del Campo",
		Side:      models.ContractSideSale,
	}

	f, err := BuildCommissionStatementXLSX(summary, nil)
	if err != nil {
		t.Fatalf("BuildCommissionStatementXLSX: %v", err)
	}
	// No campaign row, headers still present, totals directly under them.
	got, err := f.GetCellValue("Sheet1", "B3")
	if err != nil {
		t.Fatalf("GetCellValue(B3): %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty campaign cell, got %q", got)
	}
	got, err = f.GetCellValue("Sheet1", "A6")
	if err != nil {
		t.Fatalf("GetCellValue(A6): %v", err)
	}
	if got != "TOTAL" {
		t.Fatalf("expected totals row at A6, got %q", got)
	}
}
