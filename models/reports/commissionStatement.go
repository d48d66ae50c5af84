package reports

import (
	"fmt"

	"bitbucket.org/terrafocus/campo_backend/models"
	"github.com/xuri/excelize/v2"
)

// BuildCommissionStatementXLSX renders one agent's commission statement as a
// spreadsheet: a header block, one row per delivery note line, and a totals row.
func BuildCommissionStatementXLSX(summary *models.AgentCommissionSummary, campaign *string) (*excelize.File, error) {

	f := excelize.NewFile()
	sheetName := "Sheet1"
	_, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}

	f.SetCellValue(sheetName, "A1", "Agent")
	f.SetCellValue(sheetName, "B1", summary.AgentName)
	f.SetCellValue(sheetName, "A2", "Side")
	f.SetCellValue(sheetName, "B2", string(summary.Side))
	if campaign != nil {
		f.SetCellValue(sheetName, "A3", "Campaign")
		f.SetCellValue(sheetName, "B3", *campaign)
	}

	// Line table headers
	headerRow := 5
	headings := []string{"Date", "Note", "Contract", "Counterpart", "Crop", "Quantity (kg)", "Unit Price", "Amount", "Commission Mode", "Rate", "Commission"}
	col := 'A'
	for _, h := range headings {
		f.SetCellValue(sheetName, string(col)+fmt.Sprint(headerRow), h)
		col++
	}

	rowNo := headerRow + 1
	for _, line := range summary.Lines {
		f.SetCellValue(sheetName, "A"+fmt.Sprint(rowNo), line.Date)
		f.SetCellValue(sheetName, "B"+fmt.Sprint(rowNo), line.NoteNumber)
		f.SetCellValue(sheetName, "C"+fmt.Sprint(rowNo), line.ContractCode)
		f.SetCellValue(sheetName, "D"+fmt.Sprint(rowNo), line.CounterpartName)
		f.SetCellValue(sheetName, "E"+fmt.Sprint(rowNo), line.Crop)
		f.SetCellValue(sheetName, "F"+fmt.Sprint(rowNo), line.Quantity.InexactFloat64())
		f.SetCellValue(sheetName, "G"+fmt.Sprint(rowNo), line.UnitPrice.InexactFloat64())
		f.SetCellValue(sheetName, "H"+fmt.Sprint(rowNo), line.Amount.InexactFloat64())
		f.SetCellValue(sheetName, "I"+fmt.Sprint(rowNo), line.CommissionModeLabel)
		f.SetCellValue(sheetName, "J"+fmt.Sprint(rowNo), line.CommissionRate.InexactFloat64())
		f.SetCellValue(sheetName, "K"+fmt.Sprint(rowNo), line.CommissionAmount.InexactFloat64())
		rowNo++
	}

	f.SetCellValue(sheetName, "A"+fmt.Sprint(rowNo), "TOTAL")
	f.SetCellValue(sheetName, "F"+fmt.Sprint(rowNo), summary.TotalQuantity.InexactFloat64())
	f.SetCellValue(sheetName, "H"+fmt.Sprint(rowNo), summary.TotalDeliveryAmount.InexactFloat64())
	f.SetCellValue(sheetName, "K"+fmt.Sprint(rowNo), summary.TotalCommission.InexactFloat64())

	return f, nil
}
