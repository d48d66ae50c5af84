package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/terrafocus/campo_backend/config"
	"bitbucket.org/terrafocus/campo_backend/utils"
	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
)

// Contract is a purchase or sale agreement for a crop and campaign.
// Commission configuration is kept per side; the undifferentiated
// CommissionMode/CommissionRate pair predates the split and is still
// consulted as a purchase-side fallback (see commission.go).
type Contract struct {
	ID              int          `gorm:"primary_key" json:"id"`
	Code            string       `gorm:"size:30;not null;uniqueIndex" json:"code" binding:"required"`
	Side            ContractSide `gorm:"size:10;not null" json:"side" binding:"required"`
	CounterpartName string       `gorm:"size:150;not null" json:"counterpart_name" binding:"required"`
	Crop            string       `gorm:"size:100;not null" json:"crop" binding:"required"`
	Campaign        string       `gorm:"size:30;not null" json:"campaign" binding:"required"`

	BuyingAgentId  *int `json:"buying_agent_id"`
	SellingAgentId *int `json:"selling_agent_id"`

	PurchaseCommissionMode *CommissionMode  `gorm:"size:20" json:"purchase_commission_mode"`
	PurchaseCommissionRate *decimal.Decimal `gorm:"type:decimal(20,4)" json:"purchase_commission_rate"`
	SaleCommissionMode     *CommissionMode  `gorm:"size:20" json:"sale_commission_mode"`
	SaleCommissionRate     *decimal.Decimal `gorm:"type:decimal(20,4)" json:"sale_commission_rate"`

	// Legacy combined commission config, kept for contracts created before
	// the per-side split. Purchase-side fallback only.
	CommissionMode *CommissionMode  `gorm:"size:20" json:"commission_mode"`
	CommissionRate *decimal.Decimal `gorm:"type:decimal(20,4)" json:"commission_rate"`

	SignedDate *time.Time `gorm:"type:date" json:"signed_date"`
	Notes      *string    `gorm:"size:500" json:"notes"`
	IsActive   *bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewContract struct {
	Code            string `json:"code" binding:"required"`
	Side            string `json:"side" binding:"required"`
	CounterpartName string `json:"counterpart_name" binding:"required"`
	Crop            string `json:"crop" binding:"required"`
	Campaign        string `json:"campaign" binding:"required"`

	BuyingAgentId  *int `json:"buying_agent_id"`
	SellingAgentId *int `json:"selling_agent_id"`

	PurchaseCommissionMode *string          `json:"purchase_commission_mode"`
	PurchaseCommissionRate *decimal.Decimal `json:"purchase_commission_rate"`
	SaleCommissionMode     *string          `json:"sale_commission_mode"`
	SaleCommissionRate     *decimal.Decimal `json:"sale_commission_rate"`
	CommissionMode         *string          `json:"commission_mode"`
	CommissionRate         *decimal.Decimal `json:"commission_rate"`

	SignedDate *time.Time `json:"signed_date"`
	Notes      *string    `json:"notes"`
}

// validate input for both create & update. (id = 0 for create)
func (input *NewContract) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[Contract](ctx, id); err != nil {
			return err
		}
	}
	if _, err := ParseContractSide(input.Side); err != nil {
		return err
	}
	for _, mode := range []*string{input.PurchaseCommissionMode, input.SaleCommissionMode, input.CommissionMode} {
		if mode == nil {
			continue
		}
		if _, err := ParseCommissionMode(*mode); err != nil {
			return err
		}
	}
	for _, rate := range []*decimal.Decimal{input.PurchaseCommissionRate, input.SaleCommissionRate, input.CommissionRate} {
		if rate != nil && rate.IsNegative() {
			return errors.New("commission rate must not be negative")
		}
	}
	if input.BuyingAgentId != nil {
		if err := utils.ValidateResourceId[Agent](ctx, *input.BuyingAgentId); err != nil {
			return errors.New("buying agent not found")
		}
	}
	if input.SellingAgentId != nil {
		if err := utils.ValidateResourceId[Agent](ctx, *input.SellingAgentId); err != nil {
			return errors.New("selling agent not found")
		}
	}
	return nil
}

func (input *NewContract) toModel() Contract {
	side, _ := ParseContractSide(input.Side)
	c := Contract{
		Code:                   input.Code,
		Side:                   side,
		CounterpartName:        input.CounterpartName,
		Crop:                   input.Crop,
		Campaign:               input.Campaign,
		BuyingAgentId:          input.BuyingAgentId,
		SellingAgentId:         input.SellingAgentId,
		PurchaseCommissionRate: input.PurchaseCommissionRate,
		SaleCommissionRate:     input.SaleCommissionRate,
		CommissionRate:         input.CommissionRate,
		SignedDate:             input.SignedDate,
		Notes:                  input.Notes,
		IsActive:               utils.NewTrue(),
	}
	if input.PurchaseCommissionMode != nil {
		m, _ := ParseCommissionMode(*input.PurchaseCommissionMode)
		c.PurchaseCommissionMode = &m
	}
	if input.SaleCommissionMode != nil {
		m, _ := ParseCommissionMode(*input.SaleCommissionMode)
		c.SaleCommissionMode = &m
	}
	if input.CommissionMode != nil {
		m, _ := ParseCommissionMode(*input.CommissionMode)
		c.CommissionMode = &m
	}
	return c
}

func CreateContract(ctx context.Context, input *NewContract) (*Contract, error) {

	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	contract := input.toModel()

	// db action
	db := config.GetDB()
	err := db.WithContext(ctx).Create(&contract).Error
	if err != nil {
		if isDuplicateKeyErr(err) {
			return nil, errors.New("contract code already exists")
		}
		return nil, err
	}
	_ = config.RemoveRedisKey(commissionAgentsCacheKey)

	return &contract, nil
}

func isDuplicateKeyErr(err error) bool {
	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return false
}

func UpdateContract(ctx context.Context, id int, input *NewContract) (*Contract, error) {

	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	existing, err := utils.FetchModel[Contract](ctx, id)
	if err != nil {
		return nil, err
	}

	updated := input.toModel()
	updated.ID = existing.ID
	updated.IsActive = existing.IsActive
	updated.CreatedAt = existing.CreatedAt

	// Full-row save: commission fields must be clearable back to NULL.
	db := config.GetDB()
	err = db.WithContext(ctx).Save(&updated).Error
	if err != nil {
		if isDuplicateKeyErr(err) {
			return nil, errors.New("contract code already exists")
		}
		return nil, err
	}
	_ = config.RemoveRedisKey(commissionAgentsCacheKey)
	return &updated, nil
}

func DeleteContract(ctx context.Context, id int) (*Contract, error) {

	db := config.GetDB()

	result, err := utils.FetchModel[Contract](ctx, id)
	if err != nil {
		return nil, err
	}

	var noteCount int64
	if err := db.WithContext(ctx).Model(&DeliveryNote{}).Where("contract_id = ?", id).Count(&noteCount).Error; err != nil {
		return nil, err
	}
	if noteCount > 0 {
		return nil, errors.New("contract has delivery notes")
	}

	// db action
	err = db.WithContext(ctx).Delete(result).Error
	if err != nil {
		return nil, err
	}
	_ = config.RemoveRedisKey(commissionAgentsCacheKey)

	return result, nil
}

func GetContract(ctx context.Context, id int) (*Contract, error) {
	return utils.FetchModel[Contract](ctx, id)
}

type ContractFilter struct {
	Campaign *string
	Side     *ContractSide
	Crop     *string
	AgentId  *int
}

func GetContracts(ctx context.Context, filter ContractFilter) ([]*Contract, error) {

	db := config.GetDB()
	var results []*Contract

	dbCtx := db.WithContext(ctx)
	if filter.Campaign != nil && *filter.Campaign != "" {
		dbCtx = dbCtx.Where("campaign = ?", *filter.Campaign)
	}
	if filter.Side != nil {
		dbCtx = dbCtx.Where("side = ?", *filter.Side)
	}
	if filter.Crop != nil && *filter.Crop != "" {
		dbCtx = dbCtx.Where("crop LIKE ?", "%"+*filter.Crop+"%")
	}
	if filter.AgentId != nil {
		dbCtx = dbCtx.Where("buying_agent_id = ? OR selling_agent_id = ?", *filter.AgentId, *filter.AgentId)
	}
	err := dbCtx.Order("campaign DESC, code").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
