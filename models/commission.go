package models

import (
	"context"
	"sort"
	"time"

	"bitbucket.org/terrafocus/campo_backend/config"
	"bitbucket.org/terrafocus/campo_backend/utils"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CalculateCommission converts (mode, rate, quantity, unitPrice) into a
// monetary amount rounded to 2 decimals. It never fails: a missing, zero or
// negative rate and an unknown mode both yield zero. Operands are expected
// to be non-negative; the loading boundary coalesces missing values to zero.
func CalculateCommission(mode CommissionMode, rate, quantity, unitPrice decimal.Decimal) decimal.Decimal {
	if !rate.IsPositive() {
		return decimal.Zero
	}
	switch mode {
	case CommissionModePercentage:
		return quantity.Mul(unitPrice).Mul(rate).Div(hundred).Round(2)
	case CommissionModePerKilogram:
		return quantity.Mul(rate).Round(2)
	default:
		return decimal.Zero
	}
}

// CommissionLine is one settled delivery note. Derived, never persisted.
// It carries every field the printed statement needs so the renderer does
// not recompute anything.
type CommissionLine struct {
	DeliveryNoteId      int              `json:"delivery_note_id"`
	NoteNumber          string           `json:"note_number"`
	ContractCode        string           `json:"contract_code"`
	Date                string           `json:"date"`
	CounterpartName     string           `json:"counterpart_name"`
	Crop                string           `json:"crop"`
	Quantity            decimal.Decimal  `json:"quantity"`
	UnitPrice           decimal.Decimal  `json:"unit_price"`
	Amount              decimal.Decimal  `json:"amount"`
	CommissionMode      CommissionMode   `json:"commission_mode"`
	CommissionModeLabel string           `json:"commission_mode_label"`
	CommissionRate      decimal.Decimal  `json:"commission_rate"`
	CommissionAmount    decimal.Decimal  `json:"commission_amount"`
}

type AgentCommissionSummary struct {
	AgentId             int               `json:"agent_id"`
	AgentName           string            `json:"agent_name"`
	Side                ContractSide      `json:"side"`
	Lines               []*CommissionLine `json:"lines"`
	TotalQuantity       decimal.Decimal   `json:"total_quantity"`
	TotalDeliveryAmount decimal.Decimal   `json:"total_delivery_amount"`
	TotalCommission     decimal.Decimal   `json:"total_commission"`
}

type CommissionTotals struct {
	TotalCommissionPurchase decimal.Decimal `json:"total_commission_purchase"`
	TotalCommissionSale     decimal.Decimal `json:"total_commission_sale"`
	TotalGeneral            decimal.Decimal `json:"total_general"`
}

type CommissionReport struct {
	Summaries []*AgentCommissionSummary `json:"summaries"`
	Totals    CommissionTotals          `json:"totals"`
}

// All filters optional, combined with AND.
type CommissionReportFilter struct {
	Campaign *string
	AgentId  *int
	Side     *ContractSide
	DateFrom *time.Time
	DateTo   *time.Time
}

// GetCommissionReport loads the matching delivery notes, their contracts and
// the agent directory, and derives the per-agent commission summaries.
// Every invocation re-reads source rows; nothing is cached.
func GetCommissionReport(ctx context.Context, filter CommissionReportFilter) (*CommissionReport, error) {

	db := config.GetDB()

	var notes []*DeliveryNote
	dbCtx := db.WithContext(ctx).Preload("Items").
		Where("contract_id IS NOT NULL AND contract_id > 0")
	if filter.Campaign != nil && *filter.Campaign != "" {
		dbCtx = dbCtx.Where("campaign = ?", *filter.Campaign)
	}
	if filter.DateFrom != nil {
		dbCtx = dbCtx.Where("doc_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		dbCtx = dbCtx.Where("doc_date <= ?", *filter.DateTo)
	}
	if err := dbCtx.Find(&notes).Error; err != nil {
		return nil, err
	}

	contractIds := make([]int, 0, len(notes))
	for _, note := range notes {
		if note.ContractId != nil && *note.ContractId > 0 {
			contractIds = append(contractIds, *note.ContractId)
		}
	}
	contractIds = utils.UniqueSlice(contractIds)

	contracts := map[int]*Contract{}
	if len(contractIds) > 0 {
		var rows []*Contract
		if err := db.WithContext(ctx).Where("id IN ?", contractIds).Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, c := range rows {
			contracts[c.ID] = c
		}
	}

	agentRows, err := utils.FetchAllModels[Agent](ctx)
	if err != nil {
		return nil, err
	}
	agents := map[int]*Agent{}
	for _, a := range agentRows {
		agents[a.ID] = a
	}

	return reconcileCommissions(notes, contracts, agents, filter), nil
}

type summaryKey struct {
	agentId int
	side    ContractSide
}

// reconcileCommissions is the pure core of the engine: it joins loaded
// delivery notes to their contracts, resolves the commission configuration
// for the side the note settles against, computes each line and aggregates
// per agent. Malformed rows never abort the report: dangling contract
// references, unknown note types and missing numeric fields are skipped or
// coalesced to zero.
func reconcileCommissions(notes []*DeliveryNote, contracts map[int]*Contract, agents map[int]*Agent, filter CommissionReportFilter) *CommissionReport {

	accumulators := map[summaryKey]*AgentCommissionSummary{}
	var keys []summaryKey

	for _, note := range notes {
		if note.ContractId == nil || *note.ContractId <= 0 {
			continue
		}
		contract, ok := contracts[*note.ContractId]
		if !ok {
			// dangling reference, dropped silently
			continue
		}

		lineQuantity := decimal.Zero
		for _, item := range note.Items {
			lineQuantity = lineQuantity.Add(utils.CoalesceDecimal(item.Quantity))
		}
		lineAmount := utils.CoalesceDecimal(note.TotalAmount)

		unitPrice := decimal.Zero
		if lineQuantity.IsPositive() {
			unitPrice = lineAmount.DivRound(lineQuantity, 4)
		}

		var (
			side    ContractSide
			agentId *int
			mode    *CommissionMode
			rate    *decimal.Decimal
		)
		switch note.Type {
		case DeliveryNoteTypeEntrada:
			side = ContractSidePurchase
			agentId = contract.BuyingAgentId
			mode = contract.PurchaseCommissionMode
			rate = contract.PurchaseCommissionRate
			// Contracts created before the per-side split only carry the
			// combined commission fields. The fallback is purchase-only;
			// the sale side has no legacy equivalent.
			if mode == nil {
				mode = contract.CommissionMode
			}
			if rate == nil {
				rate = contract.CommissionRate
			}
		case DeliveryNoteTypeSalida:
			side = ContractSideSale
			agentId = contract.SellingAgentId
			mode = contract.SaleCommissionMode
			rate = contract.SaleCommissionRate
		default:
			// unrecognized movement type, contributes nothing
			continue
		}

		if agentId == nil {
			continue
		}
		if filter.Side != nil && *filter.Side != side {
			continue
		}
		if filter.AgentId != nil && *filter.AgentId != *agentId {
			continue
		}
		if mode == nil && rate == nil {
			// contract has no commission configuration for this side
			continue
		}

		resolvedMode := CommissionMode("")
		if mode != nil {
			resolvedMode = *mode
		}
		commission := CalculateCommission(resolvedMode, utils.CoalesceDecimal(rate), lineQuantity, unitPrice)

		line := &CommissionLine{
			DeliveryNoteId:      note.ID,
			NoteNumber:          note.Number,
			ContractCode:        contract.Code,
			Date:                note.DocDate.Format("2006-01-02"),
			CounterpartName:     contract.CounterpartName,
			Crop:                contract.Crop,
			Quantity:            lineQuantity,
			UnitPrice:           unitPrice,
			Amount:              lineAmount,
			CommissionMode:      resolvedMode,
			CommissionModeLabel: resolvedMode.Label(),
			CommissionRate:      utils.CoalesceDecimal(rate),
			CommissionAmount:    commission,
		}

		key := summaryKey{agentId: *agentId, side: side}
		summary, ok := accumulators[key]
		if !ok {
			agentName := ""
			if agent, found := agents[*agentId]; found {
				agentName = agent.Name
			}
			summary = &AgentCommissionSummary{
				AgentId:             *agentId,
				AgentName:           agentName,
				Side:                side,
				TotalQuantity:       decimal.Zero,
				TotalDeliveryAmount: decimal.Zero,
				TotalCommission:     decimal.Zero,
			}
			accumulators[key] = summary
			keys = append(keys, key)
		}
		summary.Lines = append(summary.Lines, line)
		summary.TotalQuantity = summary.TotalQuantity.Add(lineQuantity)
		summary.TotalDeliveryAmount = summary.TotalDeliveryAmount.Add(lineAmount)
		summary.TotalCommission = summary.TotalCommission.Add(commission)
	}

	report := &CommissionReport{
		Summaries: []*AgentCommissionSummary{},
		Totals: CommissionTotals{
			TotalCommissionPurchase: decimal.Zero,
			TotalCommissionSale:     decimal.Zero,
			TotalGeneral:            decimal.Zero,
		},
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].side != keys[j].side {
			return keys[i].side == ContractSidePurchase
		}
		return keys[i].agentId < keys[j].agentId
	})

	for _, key := range keys {
		summary := accumulators[key]
		if len(summary.Lines) == 0 {
			continue
		}
		summary.TotalQuantity = summary.TotalQuantity.Round(2)
		summary.TotalDeliveryAmount = summary.TotalDeliveryAmount.Round(2)
		summary.TotalCommission = summary.TotalCommission.Round(2)
		report.Summaries = append(report.Summaries, summary)

		switch summary.Side {
		case ContractSidePurchase:
			report.Totals.TotalCommissionPurchase = report.Totals.TotalCommissionPurchase.Add(summary.TotalCommission)
		case ContractSideSale:
			report.Totals.TotalCommissionSale = report.Totals.TotalCommissionSale.Add(summary.TotalCommission)
		}
	}

	report.Totals.TotalCommissionPurchase = report.Totals.TotalCommissionPurchase.Round(2)
	report.Totals.TotalCommissionSale = report.Totals.TotalCommissionSale.Round(2)
	report.Totals.TotalGeneral = report.Totals.TotalCommissionPurchase.Add(report.Totals.TotalCommissionSale).Round(2)

	return report
}

// GetCommissionAgents lists the agents referenced by at least one contract
// carrying a commission configuration on the side they act on. Used to
// populate the report filter dropdown.
const commissionAgentsCacheKey = "CommissionAgents"

func GetCommissionAgents(ctx context.Context) ([]*Agent, error) {

	var cached []*Agent
	exists, err := config.GetRedisObject(commissionAgentsCacheKey, &cached)
	if err != nil {
		return nil, err
	}
	if exists {
		return cached, nil
	}

	contracts, err := utils.FetchAllModels[Contract](ctx)
	if err != nil {
		return nil, err
	}

	var agentIds []int
	for _, c := range contracts {
		if c.BuyingAgentId != nil && (c.PurchaseCommissionMode != nil || c.PurchaseCommissionRate != nil ||
			c.CommissionMode != nil || c.CommissionRate != nil) {
			agentIds = append(agentIds, *c.BuyingAgentId)
		}
		if c.SellingAgentId != nil && (c.SaleCommissionMode != nil || c.SaleCommissionRate != nil) {
			agentIds = append(agentIds, *c.SellingAgentId)
		}
	}
	agentIds = utils.UniqueSlice(agentIds)
	if len(agentIds) == 0 {
		return []*Agent{}, nil
	}

	db := config.GetDB()
	var agents []*Agent
	err = db.WithContext(ctx).Where("id IN ?", agentIds).Order("name").Find(&agents).Error
	if err != nil {
		return nil, err
	}
	if err := config.SetRedisObject(commissionAgentsCacheKey, agents, 10*time.Minute); err != nil {
		return nil, err
	}
	return agents, nil
}

// GetAgentCommissionStatement resolves the agent (hard NotFound failure, the
// only one in this module) and returns its summary for the requested side.
// An agent with no qualifying deliveries yields an empty summary, not an
// error: the rendered statement simply has no rows.
func GetAgentCommissionStatement(ctx context.Context, agentId int, side ContractSide, filter CommissionReportFilter) (*AgentCommissionSummary, error) {

	agent, err := utils.FetchModel[Agent](ctx, agentId)
	if err != nil {
		return nil, err
	}

	filter.AgentId = &agentId
	filter.Side = &side
	report, err := GetCommissionReport(ctx, filter)
	if err != nil {
		return nil, err
	}

	for _, summary := range report.Summaries {
		if summary.AgentId == agentId && summary.Side == side {
			return summary, nil
		}
	}

	return &AgentCommissionSummary{
		AgentId:             agent.ID,
		AgentName:           agent.Name,
		Side:                side,
		Lines:               []*CommissionLine{},
		TotalQuantity:       decimal.Zero,
		TotalDeliveryAmount: decimal.Zero,
		TotalCommission:     decimal.Zero,
	}, nil
}
