// commission-audit recomputes the commission report for a campaign and prints
// the per-agent totals. Run it against production data to cross-check the
// figures the API serves before settling with an agent.
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... \
//     go run ./cmd/commission-audit --campaign 2025-2026 [--agent-id 3] [--side purchase]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"bitbucket.org/terrafocus/campo_backend/config"
	"bitbucket.org/terrafocus/campo_backend/models"
)

func main() {
	campaign := flag.String("campaign", "", "Required: campaign label (e.g. 2025-2026)")
	agentID := flag.Int("agent-id", 0, "Optional: restrict to one agent")
	side := flag.String("side", "", "Optional: purchase or sale")
	flag.Parse()

	if strings.TrimSpace(*campaign) == "" {
		fmt.Fprintln(os.Stderr, "--campaign is required")
		os.Exit(1)
	}

	config.ConnectDatabaseWithRetry()
	if config.GetDB() == nil {
		fmt.Fprintln(os.Stderr, "database not initialized")
		os.Exit(1)
	}

	filter := models.CommissionReportFilter{Campaign: campaign}
	if *agentID > 0 {
		filter.AgentId = agentID
	}
	if strings.TrimSpace(*side) != "" {
		s, err := models.ParseContractSide(strings.TrimSpace(*side))
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid side: %v\n", err)
			os.Exit(1)
		}
		filter.Side = &s
	}

	report, err := models.GetCommissionReport(context.Background(), filter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "report failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Commission report for campaign %s\n", *campaign)
	for _, s := range report.Summaries {
		fmt.Printf("\n%s (%s)\n", s.AgentName, s.Side)
		for _, line := range s.Lines {
			fmt.Printf("  %s  %-12s %-12s qty=%s  amount=%s  commission=%s (%s %s)\n",
				line.Date, line.NoteNumber, line.ContractCode,
				line.Quantity.String(), line.Amount.String(), line.CommissionAmount.String(),
				line.CommissionRate.String(), line.CommissionModeLabel)
		}
		fmt.Printf("  lines=%d  qty=%s  amount=%s  commission=%s\n",
			len(s.Lines), s.TotalQuantity.String(), s.TotalDeliveryAmount.String(), s.TotalCommission.String())
	}
	fmt.Printf("\nTotals: purchase=%s  sale=%s  general=%s\n",
		report.Totals.TotalCommissionPurchase.String(),
		report.Totals.TotalCommissionSale.String(),
		report.Totals.TotalGeneral.String())
}
