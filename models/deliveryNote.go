package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/terrafocus/campo_backend/config"
	"bitbucket.org/terrafocus/campo_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DeliveryNote (albarán) records a physical goods movement settled against a
// contract. ContractId is a plain reference on purpose: legacy data contains
// notes pointing at contracts that no longer exist, and the commission engine
// skips those silently instead of failing the report.
type DeliveryNote struct {
	ID         int              `gorm:"primary_key" json:"id"`
	Number     string           `gorm:"size:30;not null" json:"number" binding:"required"`
	Type       DeliveryNoteType `gorm:"size:10;not null" json:"type" binding:"required"`
	ContractId *int             `json:"contract_id"`
	DocDate    time.Time        `gorm:"type:date;not null" json:"doc_date"`
	Campaign   string           `gorm:"size:30;not null" json:"campaign" binding:"required"`

	// Total monetary amount of the note, precomputed at capture time.
	TotalAmount *decimal.Decimal `gorm:"type:decimal(20,4)" json:"total_amount"`

	Carrier   *string            `gorm:"size:150" json:"carrier"`
	PlateNo   *string            `gorm:"size:20" json:"plate_no"`
	Items     []DeliveryNoteItem `gorm:"foreignKey:DeliveryNoteId" json:"items"`
	CreatedAt time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

type DeliveryNoteItem struct {
	ID             int              `gorm:"primary_key" json:"id"`
	DeliveryNoteId int              `gorm:"not null;index" json:"delivery_note_id"`
	ProductName    string           `gorm:"size:150;not null" json:"product_name"`
	Quantity       *decimal.Decimal `gorm:"type:decimal(20,4)" json:"quantity"`
	Lot            *string          `gorm:"size:50" json:"lot"`
}

type NewDeliveryNoteItem struct {
	ProductName string           `json:"product_name" binding:"required"`
	Quantity    *decimal.Decimal `json:"quantity"`
	Lot         *string          `json:"lot"`
}

type NewDeliveryNote struct {
	Number      string                `json:"number" binding:"required"`
	Type        string                `json:"type" binding:"required"`
	ContractId  *int                  `json:"contract_id"`
	DocDate     string                `json:"doc_date" binding:"required"`
	Campaign    string                `json:"campaign" binding:"required"`
	TotalAmount *decimal.Decimal      `json:"total_amount"`
	Carrier     *string               `json:"carrier"`
	PlateNo     *string               `json:"plate_no"`
	Items       []NewDeliveryNoteItem `json:"items"`
}

// validate input for both create & update. (id = 0 for create)
func (input *NewDeliveryNote) validate(ctx context.Context, id int) (time.Time, error) {
	if id > 0 {
		if err := utils.ValidateResourceId[DeliveryNote](ctx, id); err != nil {
			return time.Time{}, err
		}
	}
	if input.Type != string(DeliveryNoteTypeEntrada) && input.Type != string(DeliveryNoteTypeSalida) {
		return time.Time{}, errors.New("invalid delivery note type")
	}
	docDate, err := time.Parse("2006-01-02", input.DocDate)
	if err != nil {
		return time.Time{}, errors.New("doc_date must be YYYY-MM-DD")
	}
	if input.TotalAmount != nil && input.TotalAmount.IsNegative() {
		return time.Time{}, errors.New("total_amount must not be negative")
	}
	for _, item := range input.Items {
		if item.Quantity != nil && item.Quantity.IsNegative() {
			return time.Time{}, errors.New("item quantity must not be negative")
		}
	}
	// Contract existence is NOT validated: captures may legitimately arrive
	// before (or outlive) their contract record.
	return docDate, nil
}

func CreateDeliveryNote(ctx context.Context, input *NewDeliveryNote) (*DeliveryNote, error) {

	docDate, err := input.validate(ctx, 0)
	if err != nil {
		return nil, err
	}

	note := DeliveryNote{
		Number:      input.Number,
		Type:        DeliveryNoteType(input.Type),
		ContractId:  input.ContractId,
		DocDate:     docDate,
		Campaign:    input.Campaign,
		TotalAmount: input.TotalAmount,
		Carrier:     input.Carrier,
		PlateNo:     input.PlateNo,
	}
	for _, item := range input.Items {
		note.Items = append(note.Items, DeliveryNoteItem{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Lot:         item.Lot,
		})
	}

	// db action
	db := config.GetDB()
	err = db.WithContext(ctx).Create(&note).Error
	if err != nil {
		return nil, err
	}
	_ = config.RemoveRedisKey(campaignsCacheKey)

	return &note, nil
}

func UpdateDeliveryNote(ctx context.Context, id int, input *NewDeliveryNote) (*DeliveryNote, error) {

	docDate, err := input.validate(ctx, id)
	if err != nil {
		return nil, err
	}

	note, err := utils.FetchModel[DeliveryNote](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(note).Updates(map[string]interface{}{
			"Number":      input.Number,
			"Type":        DeliveryNoteType(input.Type),
			"ContractId":  input.ContractId,
			"DocDate":     docDate,
			"Campaign":    input.Campaign,
			"TotalAmount": input.TotalAmount,
			"Carrier":     input.Carrier,
			"PlateNo":     input.PlateNo,
		}).Error; err != nil {
			return err
		}
		// replace line items
		if err := tx.Where("delivery_note_id = ?", id).Delete(&DeliveryNoteItem{}).Error; err != nil {
			return err
		}
		for _, item := range input.Items {
			row := DeliveryNoteItem{
				DeliveryNoteId: id,
				ProductName:    item.ProductName,
				Quantity:       item.Quantity,
				Lot:            item.Lot,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	_ = config.RemoveRedisKey(campaignsCacheKey)

	return utils.FetchModel[DeliveryNote](ctx, id, "Items")
}

func DeleteDeliveryNote(ctx context.Context, id int) (*DeliveryNote, error) {

	result, err := utils.FetchModel[DeliveryNote](ctx, id, "Items")
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("delivery_note_id = ?", id).Delete(&DeliveryNoteItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&DeliveryNote{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	_ = config.RemoveRedisKey(campaignsCacheKey)

	return result, nil
}

func GetDeliveryNote(ctx context.Context, id int) (*DeliveryNote, error) {
	return utils.FetchModel[DeliveryNote](ctx, id, "Items")
}

type DeliveryNoteFilter struct {
	Campaign   *string
	Type       *DeliveryNoteType
	ContractId *int
	DateFrom   *time.Time
	DateTo     *time.Time
}

func GetDeliveryNotes(ctx context.Context, filter DeliveryNoteFilter) ([]*DeliveryNote, error) {

	db := config.GetDB()
	var results []*DeliveryNote

	dbCtx := db.WithContext(ctx).Preload("Items")
	if filter.Campaign != nil && *filter.Campaign != "" {
		dbCtx = dbCtx.Where("campaign = ?", *filter.Campaign)
	}
	if filter.Type != nil {
		dbCtx = dbCtx.Where("type = ?", *filter.Type)
	}
	if filter.ContractId != nil {
		dbCtx = dbCtx.Where("contract_id = ?", *filter.ContractId)
	}
	if filter.DateFrom != nil {
		dbCtx = dbCtx.Where("doc_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		dbCtx = dbCtx.Where("doc_date <= ?", *filter.DateTo)
	}
	err := dbCtx.Order("doc_date DESC, id DESC").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

const campaignsCacheKey = "Campaigns"

// GetCampaigns lists the distinct campaigns that have at least one delivery
// note linked to a contract. Used to populate UI filters.
func GetCampaigns(ctx context.Context) ([]string, error) {

	var cached []string
	exists, err := config.GetRedisObject(campaignsCacheKey, &cached)
	if err != nil {
		return nil, err
	}
	if exists {
		return cached, nil
	}

	db := config.GetDB()
	var campaigns []string
	err = db.WithContext(ctx).Model(&DeliveryNote{}).
		Where("contract_id IS NOT NULL AND contract_id > 0").
		Distinct("campaign").
		Order("campaign DESC").
		Pluck("campaign", &campaigns).Error
	if err != nil {
		return nil, err
	}
	if err := config.SetRedisObject(campaignsCacheKey, campaigns, 10*time.Minute); err != nil {
		return nil, err
	}
	return campaigns, nil
}
