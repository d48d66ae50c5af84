package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/terrafocus/campo_backend/config"
	"bitbucket.org/terrafocus/campo_backend/utils"
	"github.com/shopspring/decimal"
)

type Harvest struct {
	ID          int              `gorm:"primary_key" json:"id"`
	ParcelId    int              `gorm:"not null;index" json:"parcel_id" binding:"required"`
	HarvestDate time.Time        `gorm:"type:date;not null" json:"harvest_date"`
	Campaign    string           `gorm:"size:30;not null" json:"campaign" binding:"required"`
	Crop        string           `gorm:"size:100;not null" json:"crop" binding:"required"`
	QuantityKg  *decimal.Decimal `gorm:"type:decimal(20,4)" json:"quantity_kg"`
	Notes       *string          `gorm:"size:500" json:"notes"`
	CreatedAt   time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewHarvest struct {
	ParcelId    int              `json:"parcel_id" binding:"required"`
	HarvestDate string           `json:"harvest_date" binding:"required"`
	Campaign    string           `json:"campaign" binding:"required"`
	Crop        string           `json:"crop" binding:"required"`
	QuantityKg  *decimal.Decimal `json:"quantity_kg"`
	Notes       *string          `json:"notes"`
}

func (input *NewHarvest) validate(ctx context.Context, id int) (time.Time, error) {
	if id > 0 {
		if err := utils.ValidateResourceId[Harvest](ctx, id); err != nil {
			return time.Time{}, err
		}
	}
	if err := utils.ValidateResourceId[Parcel](ctx, input.ParcelId); err != nil {
		return time.Time{}, errors.New("parcel not found")
	}
	harvestDate, err := time.Parse("2006-01-02", input.HarvestDate)
	if err != nil {
		return time.Time{}, errors.New("harvest_date must be YYYY-MM-DD")
	}
	if input.QuantityKg != nil && input.QuantityKg.IsNegative() {
		return time.Time{}, errors.New("quantity_kg must not be negative")
	}
	return harvestDate, nil
}

func CreateHarvest(ctx context.Context, input *NewHarvest) (*Harvest, error) {

	harvestDate, err := input.validate(ctx, 0)
	if err != nil {
		return nil, err
	}

	harvest := Harvest{
		ParcelId:    input.ParcelId,
		HarvestDate: harvestDate,
		Campaign:    input.Campaign,
		Crop:        input.Crop,
		QuantityKg:  input.QuantityKg,
		Notes:       input.Notes,
	}

	// db action
	db := config.GetDB()
	err = db.WithContext(ctx).Create(&harvest).Error
	if err != nil {
		return nil, err
	}

	return &harvest, nil
}

func UpdateHarvest(ctx context.Context, id int, input *NewHarvest) (*Harvest, error) {

	harvestDate, err := input.validate(ctx, id)
	if err != nil {
		return nil, err
	}

	harvest, err := utils.FetchModel[Harvest](ctx, id)
	if err != nil {
		return nil, err
	}

	// db action
	db := config.GetDB()
	err = db.WithContext(ctx).Model(harvest).Updates(map[string]interface{}{
		"ParcelId":    input.ParcelId,
		"HarvestDate": harvestDate,
		"Campaign":    input.Campaign,
		"Crop":        input.Crop,
		"QuantityKg":  input.QuantityKg,
		"Notes":       input.Notes,
	}).Error
	if err != nil {
		return nil, err
	}
	return harvest, nil
}

func DeleteHarvest(ctx context.Context, id int) (*Harvest, error) {

	db := config.GetDB()

	result, err := utils.FetchModel[Harvest](ctx, id)
	if err != nil {
		return nil, err
	}

	// db action
	err = db.WithContext(ctx).Delete(result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func GetHarvest(ctx context.Context, id int) (*Harvest, error) {
	return utils.FetchModel[Harvest](ctx, id)
}

type HarvestFilter struct {
	ParcelId *int
	Campaign *string
	Crop     *string
}

func GetHarvests(ctx context.Context, filter HarvestFilter) ([]*Harvest, error) {

	db := config.GetDB()
	var results []*Harvest

	dbCtx := db.WithContext(ctx)
	if filter.ParcelId != nil {
		dbCtx = dbCtx.Where("parcel_id = ?", *filter.ParcelId)
	}
	if filter.Campaign != nil && *filter.Campaign != "" {
		dbCtx = dbCtx.Where("campaign = ?", *filter.Campaign)
	}
	if filter.Crop != nil && *filter.Crop != "" {
		dbCtx = dbCtx.Where("crop LIKE ?", "%"+*filter.Crop+"%")
	}
	err := dbCtx.Order("harvest_date DESC, id DESC").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
