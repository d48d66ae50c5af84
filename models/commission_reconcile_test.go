package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// Fixture builders. IDs are arbitrary but stable so expectations read easily.

func decPtrT(t *testing.T, s string) *decimal.Decimal {
	t.Helper()
	d := dec(t, s)
	return &d
}

func modePtr(m CommissionMode) *CommissionMode { return &m }

func intPtr(n int) *int { return &n }

func testDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date literal %q: %v", s, err)
	}
	return d
}

func testNote(t *testing.T, id int, number string, noteType DeliveryNoteType, contractId int, date, quantity, amount string) *DeliveryNote {
	t.Helper()
	note := &DeliveryNote{
		ID:       id,
		Number:   number,
		Type:     noteType,
		DocDate:  testDate(t, date),
		Campaign: "2025-2026",
	}
	if contractId > 0 {
		note.ContractId = intPtr(contractId)
	}
	if amount != "" {
		note.TotalAmount = decPtrT(t, amount)
	}
	if quantity != "" {
		note.Items = []DeliveryNoteItem{
			{ID: id*10 + 1, DeliveryNoteId: id, ProductName: "trigo duro", Quantity: decPtrT(t, quantity)},
		}
	}
	return note
}

func reconcileFixture(t *testing.T) ([]*DeliveryNote, map[int]*Contract, map[int]*Agent) {
	t.Helper()

	agents := map[int]*Agent{
		1: {ID: 1, Name: "Corredor Martínez"},
		2: {ID: 2, Name: "Agencia del Campo"},
	}

	contracts := map[int]*Contract{
		// Per-side purchase configuration.
		10: {
			ID: 10, Code: "C-001", Side: ContractSidePurchase,
			CounterpartName: "Cooperativa San Isidro", Crop: "trigo duro", Campaign: "2025-2026",
			BuyingAgentId:          intPtr(1),
			PurchaseCommissionMode: modePtr(CommissionModePercentage),
			PurchaseCommissionRate: decPtrT(t, "1.5"),
		},
		// Per-side sale configuration.
		20: {
			ID: 20, Code: "V-001", Side: ContractSideSale,
			CounterpartName: "Harinera del Sur", Crop: "trigo duro", Campaign: "2025-2026",
			SellingAgentId:     intPtr(2),
			SaleCommissionMode: modePtr(CommissionModePerKilogram),
			SaleCommissionRate: decPtrT(t, "0.003"),
		},
		// Legacy contract: combined fields only.
		30: {
			ID: 30, Code: "C-002", Side: ContractSidePurchase,
			CounterpartName: "Hermanos Ruiz", Crop: "cebada", Campaign: "2025-2026",
			BuyingAgentId:  intPtr(1),
			CommissionMode: modePtr(CommissionModePercentage),
			CommissionRate: decPtrT(t, "2"),
		},
		// Legacy fields on a sale contract: the sale side has no fallback.
		40: {
			ID: 40, Code: "V-002", Side: ContractSideSale,
			CounterpartName: "Molinos Unidos", Crop: "cebada", Campaign: "2025-2026",
			SellingAgentId: intPtr(2),
			CommissionMode: modePtr(CommissionModePercentage),
			CommissionRate: decPtrT(t, "2"),
		},
		// Commission config present but nobody to credit it to.
		50: {
			ID: 50, Code: "C-003", Side: ContractSidePurchase,
			CounterpartName: "SAT El Llano", Crop: "avena", Campaign: "2025-2026",
			PurchaseCommissionMode: modePtr(CommissionModePercentage),
			PurchaseCommissionRate: decPtrT(t, "1"),
		},
	}

	notes := []*DeliveryNote{
		testNote(t, 1, "ALB-0001", DeliveryNoteTypeEntrada, 10, "2025-07-03", "25000", "6250"),
		testNote(t, 2, "ALB-0002", DeliveryNoteTypeSalida, 20, "2025-07-10", "20000", "7000"),
		testNote(t, 3, "ALB-0003", DeliveryNoteTypeEntrada, 30, "2025-07-04", "10000", "2000"),
		testNote(t, 4, "ALB-0004", DeliveryNoteTypeSalida, 40, "2025-07-11", "5000", "1000"),
		testNote(t, 5, "ALB-0005", DeliveryNoteTypeEntrada, 999, "2025-07-05", "8000", "1600"),
		testNote(t, 6, "ALB-0006", DeliveryNoteTypeEntrada, 10, "2025-07-06", "", "100"),
		testNote(t, 7, "ALB-0007", DeliveryNoteTypeEntrada, 50, "2025-07-07", "3000", "600"),
	}

	return notes, contracts, agents
}

func TestReconcileCommissionsPerSideConfiguration(t *testing.T) {
	notes, contracts, agents := reconcileFixture(t)

	report := reconcileCommissions(notes, contracts, agents, CommissionReportFilter{})

	if len(report.Summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(report.Summaries))
	}

	purchase := report.Summaries[0]
	if purchase.AgentId != 1 || purchase.Side != ContractSidePurchase {
		t.Fatalf("expected purchase summary for agent 1 first, got agent %d side %s", purchase.AgentId, purchase.Side)
	}
	if purchase.AgentName != "Corredor Martínez" {
		t.Fatalf("expected agent name resolved, got %q", purchase.AgentName)
	}
	// ALB-0001 (93.75), ALB-0003 via legacy fallback (40), ALB-0006 (0, no items).
	if len(purchase.Lines) != 3 {
		t.Fatalf("expected 3 purchase lines, got %d", len(purchase.Lines))
	}
	if !purchase.TotalCommission.Equal(dec(t, "133.75")) {
		t.Fatalf("expected purchase total 133.75, got %s", purchase.TotalCommission.String())
	}
	if !purchase.TotalQuantity.Equal(dec(t, "35000")) {
		t.Fatalf("expected purchase quantity 35000, got %s", purchase.TotalQuantity.String())
	}
	if !purchase.TotalDeliveryAmount.Equal(dec(t, "8350")) {
		t.Fatalf("expected purchase amount 8350, got %s", purchase.TotalDeliveryAmount.String())
	}

	sale := report.Summaries[1]
	if sale.AgentId != 2 || sale.Side != ContractSideSale {
		t.Fatalf("expected sale summary for agent 2 second, got agent %d side %s", sale.AgentId, sale.Side)
	}
	// Only ALB-0002: ALB-0004's contract has no sale-side configuration.
	if len(sale.Lines) != 1 {
		t.Fatalf("expected 1 sale line, got %d", len(sale.Lines))
	}
	if !sale.TotalCommission.Equal(dec(t, "60")) {
		t.Fatalf("expected sale total 60, got %s", sale.TotalCommission.String())
	}

	if !report.Totals.TotalCommissionPurchase.Equal(dec(t, "133.75")) {
		t.Fatalf("expected purchase totals 133.75, got %s", report.Totals.TotalCommissionPurchase.String())
	}
	if !report.Totals.TotalCommissionSale.Equal(dec(t, "60")) {
		t.Fatalf("expected sale totals 60, got %s", report.Totals.TotalCommissionSale.String())
	}
	if !report.Totals.TotalGeneral.Equal(dec(t, "193.75")) {
		t.Fatalf("expected general total 193.75, got %s", report.Totals.TotalGeneral.String())
	}
}

func TestReconcileCommissionsLineDerivation(t *testing.T) {
	notes, contracts, agents := reconcileFixture(t)

	report := reconcileCommissions(notes, contracts, agents, CommissionReportFilter{})
	line := report.Summaries[0].Lines[0]

	if line.NoteNumber != "ALB-0001" || line.ContractCode != "C-001" {
		t.Fatalf("unexpected first line: %s / %s", line.NoteNumber, line.ContractCode)
	}
	if line.Date != "2025-07-03" {
		t.Fatalf("expected line date 2025-07-03, got %s", line.Date)
	}
	if !line.UnitPrice.Equal(dec(t, "0.25")) {
		t.Fatalf("expected unit price 0.25, got %s", line.UnitPrice.String())
	}
	if !line.CommissionAmount.Equal(dec(t, "93.75")) {
		t.Fatalf("expected commission 93.75, got %s", line.CommissionAmount.String())
	}
	if line.CommissionModeLabel != "% sobre importe" {
		t.Fatalf("unexpected mode label %q", line.CommissionModeLabel)
	}
}

func TestReconcileCommissionsLegacyFallbackIsPurchaseOnly(t *testing.T) {
	notes, contracts, agents := reconcileFixture(t)

	report := reconcileCommissions(notes, contracts, agents, CommissionReportFilter{})

	purchase := report.Summaries[0]
	var legacyLine *CommissionLine
	for _, line := range purchase.Lines {
		if line.NoteNumber == "ALB-0003" {
			legacyLine = line
		}
	}
	if legacyLine == nil {
		t.Fatal("expected legacy contract note ALB-0003 to produce a purchase line")
	}
	if !legacyLine.CommissionAmount.Equal(dec(t, "40")) {
		t.Fatalf("expected legacy commission 40, got %s", legacyLine.CommissionAmount.String())
	}

	sale := report.Summaries[1]
	for _, line := range sale.Lines {
		if line.NoteNumber == "ALB-0004" {
			t.Fatal("legacy combined fields must not apply on the sale side")
		}
	}
}

func TestReconcileCommissionsSkipsMalformedRows(t *testing.T) {
	notes, contracts, agents := reconcileFixture(t)

	report := reconcileCommissions(notes, contracts, agents, CommissionReportFilter{})

	for _, summary := range report.Summaries {
		for _, line := range summary.Lines {
			switch line.NoteNumber {
			case "ALB-0005":
				t.Fatal("note with dangling contract reference must be dropped")
			case "ALB-0007":
				t.Fatal("note whose contract has no agent must be dropped")
			}
		}
	}
}

func TestReconcileCommissionsZeroQuantityNote(t *testing.T) {
	notes, contracts, agents := reconcileFixture(t)

	report := reconcileCommissions(notes, contracts, agents, CommissionReportFilter{})

	var zeroLine *CommissionLine
	for _, line := range report.Summaries[0].Lines {
		if line.NoteNumber == "ALB-0006" {
			zeroLine = line
		}
	}
	if zeroLine == nil {
		t.Fatal("note without items still settles when the contract has commission config")
	}
	if !zeroLine.Quantity.IsZero() || !zeroLine.UnitPrice.IsZero() {
		t.Fatalf("expected zero quantity and unit price, got %s / %s", zeroLine.Quantity.String(), zeroLine.UnitPrice.String())
	}
	if !zeroLine.CommissionAmount.IsZero() {
		t.Fatalf("expected zero commission, got %s", zeroLine.CommissionAmount.String())
	}
	if !zeroLine.Amount.Equal(dec(t, "100")) {
		t.Fatalf("expected amount 100 preserved, got %s", zeroLine.Amount.String())
	}
}

func TestReconcileCommissionsFilters(t *testing.T) {
	notes, contracts, agents := reconcileFixture(t)

	side := ContractSideSale
	report := reconcileCommissions(notes, contracts, agents, CommissionReportFilter{Side: &side})
	if len(report.Summaries) != 1 || report.Summaries[0].Side != ContractSideSale {
		t.Fatalf("side filter: expected only the sale summary, got %d summaries", len(report.Summaries))
	}
	if !report.Totals.TotalCommissionPurchase.IsZero() {
		t.Fatalf("side filter: purchase totals must be zero, got %s", report.Totals.TotalCommissionPurchase.String())
	}

	agentId := 1
	report = reconcileCommissions(notes, contracts, agents, CommissionReportFilter{AgentId: &agentId})
	if len(report.Summaries) != 1 || report.Summaries[0].AgentId != 1 {
		t.Fatalf("agent filter: expected only agent 1, got %d summaries", len(report.Summaries))
	}

	otherAgent := 99
	report = reconcileCommissions(notes, contracts, agents, CommissionReportFilter{AgentId: &otherAgent})
	if len(report.Summaries) != 0 {
		t.Fatalf("unknown agent filter: expected empty report, got %d summaries", len(report.Summaries))
	}
	if !report.Totals.TotalGeneral.IsZero() {
		t.Fatalf("unknown agent filter: expected zero totals, got %s", report.Totals.TotalGeneral.String())
	}
}

func TestReconcileCommissionsEmptyInput(t *testing.T) {
	report := reconcileCommissions(nil, map[int]*Contract{}, map[int]*Agent{}, CommissionReportFilter{})
	if report == nil {
		t.Fatal("expected a report, got nil")
	}
	if len(report.Summaries) != 0 {
		t.Fatalf("expected no summaries, got %d", len(report.Summaries))
	}
	if !report.Totals.TotalGeneral.IsZero() {
		t.Fatalf("expected zero totals, got %s", report.Totals.TotalGeneral.String())
	}
}
