// seed-demo loads a small demo dataset: a few agents, parcels, contracts for
// the current campaign and a handful of delivery notes against them. Intended
// for local development and UI demos; it is additive and safe to rerun, every
// invocation appends a fresh batch.
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-demo
package main

import (
	"context"
	"fmt"
	"os"

	"bitbucket.org/terrafocus/campo_backend/config"
	"bitbucket.org/terrafocus/campo_backend/models"
	"bitbucket.org/terrafocus/campo_backend/utils"
	"github.com/shopspring/decimal"
)

const campaign = "2025-2026"

func strPtr(s string) *string { return &s }

func decPtr(s string) *decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	if config.GetDB() == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}
	ctx = utils.SetUserNameInContext(ctx, "Seed")

	models.MigrateTable()

	buyer, err := models.CreateAgent(ctx, &models.NewAgent{
		Name:  "Corredor Martínez",
		TaxId: strPtr("B12345678"),
		Phone: strPtr("+34 612 345 678"),
		Email: strPtr("martinez@example.com"),
	})
	if err != nil {
		fail("create buying agent", err)
	}
	seller, err := models.CreateAgent(ctx, &models.NewAgent{
		Name:  "Agencia del Campo SL",
		TaxId: strPtr("B87654321"),
	})
	if err != nil {
		fail("create selling agent", err)
	}

	parcel, err := models.CreateParcel(ctx, &models.NewParcel{
		Name:         "La Vega",
		Municipality: strPtr("Antequera"),
		Polygon:      strPtr("12"),
		PlotNumber:   strPtr("245"),
		AreaHa:       decPtr("14.50"),
		Crop:         strPtr("trigo duro"),
	})
	if err != nil {
		fail("create parcel", err)
	}

	percentage := string(models.CommissionModePercentage)
	perKilogram := string(models.CommissionModePerKilogram)

	purchase, err := models.CreateContract(ctx, &models.NewContract{
		Code:                   "C-2025-001",
		Side:                   string(models.ContractSidePurchase),
		CounterpartName:        "Cooperativa San Isidro",
		Crop:                   "trigo duro",
		Campaign:               campaign,
		BuyingAgentId:          &buyer.ID,
		PurchaseCommissionMode: &percentage,
		PurchaseCommissionRate: decPtr("1.5"),
	})
	if err != nil {
		fail("create purchase contract", err)
	}

	sale, err := models.CreateContract(ctx, &models.NewContract{
		Code:               "V-2025-001",
		Side:               string(models.ContractSideSale),
		CounterpartName:    "Harinera del Sur SA",
		Crop:               "trigo duro",
		Campaign:           campaign,
		SellingAgentId:     &seller.ID,
		SaleCommissionMode: &perKilogram,
		SaleCommissionRate: decPtr("0.003"),
	})
	if err != nil {
		fail("create sale contract", err)
	}

	// Legacy-style contract: combined commission config only.
	legacy, err := models.CreateContract(ctx, &models.NewContract{
		Code:            "C-2025-002",
		Side:            string(models.ContractSidePurchase),
		CounterpartName: "Hermanos Ruiz CB",
		Crop:            "cebada",
		Campaign:        campaign,
		BuyingAgentId:   &buyer.ID,
		CommissionMode:  &percentage,
		CommissionRate:  decPtr("2"),
	})
	if err != nil {
		fail("create legacy contract", err)
	}

	notes := []models.NewDeliveryNote{
		{
			Number:      "ALB-0001",
			Type:        string(models.DeliveryNoteTypeEntrada),
			ContractId:  &purchase.ID,
			DocDate:     "2025-07-03",
			Campaign:    campaign,
			TotalAmount: decPtr("6250.00"),
			Items: []models.NewDeliveryNoteItem{
				{ProductName: "trigo duro", Quantity: decPtr("25000")},
			},
		},
		{
			Number:      "ALB-0002",
			Type:        string(models.DeliveryNoteTypeEntrada),
			ContractId:  &legacy.ID,
			DocDate:     "2025-07-04",
			Campaign:    campaign,
			TotalAmount: decPtr("3900.00"),
			Items: []models.NewDeliveryNoteItem{
				{ProductName: "cebada", Quantity: decPtr("20000")},
			},
		},
		{
			Number:      "ALB-0003",
			Type:        string(models.DeliveryNoteTypeSalida),
			ContractId:  &sale.ID,
			DocDate:     "2025-07-10",
			Campaign:    campaign,
			TotalAmount: decPtr("7100.00"),
			Items: []models.NewDeliveryNoteItem{
				{ProductName: "trigo duro", Quantity: decPtr("26000")},
			},
		},
	}
	for i := range notes {
		if _, err := models.CreateDeliveryNote(ctx, &notes[i]); err != nil {
			fail("create delivery note "+notes[i].Number, err)
		}
	}

	if _, err := models.CreateHarvest(ctx, &models.NewHarvest{
		ParcelId:    parcel.ID,
		HarvestDate: "2025-06-28",
		Campaign:    campaign,
		Crop:        "trigo duro",
		QuantityKg:  decPtr("25000"),
	}); err != nil {
		fail("create harvest", err)
	}

	fmt.Println("Demo data loaded:")
	fmt.Printf("  agents:    %d, %d\n", buyer.ID, seller.ID)
	fmt.Printf("  parcel:    %d\n", parcel.ID)
	fmt.Printf("  contracts: %d, %d, %d\n", purchase.ID, sale.ID, legacy.ID)
	fmt.Printf("  notes:     %d\n", len(notes))
}

func fail(what string, err error) {
	fmt.Fprintf(os.Stderr, "failed to %s: %v\n", what, err)
	os.Exit(1)
}
