package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/terrafocus/campo_backend/config"
	"bitbucket.org/terrafocus/campo_backend/utils"
	"github.com/shopspring/decimal"
)

type IrrigationLog struct {
	ID              int              `gorm:"primary_key" json:"id"`
	ParcelId        int              `gorm:"not null;index" json:"parcel_id" binding:"required"`
	IrrigationDate  time.Time        `gorm:"type:date;not null" json:"irrigation_date"`
	DurationMinutes *int             `json:"duration_minutes"`
	WaterM3         *decimal.Decimal `gorm:"type:decimal(12,4)" json:"water_m3"`
	System          *string          `gorm:"size:50" json:"system"`
	Notes           *string          `gorm:"size:500" json:"notes"`
	CreatedAt       time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewIrrigationLog struct {
	ParcelId        int              `json:"parcel_id" binding:"required"`
	IrrigationDate  string           `json:"irrigation_date" binding:"required"`
	DurationMinutes *int             `json:"duration_minutes"`
	WaterM3         *decimal.Decimal `json:"water_m3"`
	System          *string          `json:"system"`
	Notes           *string          `json:"notes"`
}

func (input *NewIrrigationLog) validate(ctx context.Context, id int) (time.Time, error) {
	if id > 0 {
		if err := utils.ValidateResourceId[IrrigationLog](ctx, id); err != nil {
			return time.Time{}, err
		}
	}
	if err := utils.ValidateResourceId[Parcel](ctx, input.ParcelId); err != nil {
		return time.Time{}, errors.New("parcel not found")
	}
	irrigationDate, err := time.Parse("2006-01-02", input.IrrigationDate)
	if err != nil {
		return time.Time{}, errors.New("irrigation_date must be YYYY-MM-DD")
	}
	if input.DurationMinutes != nil && *input.DurationMinutes < 0 {
		return time.Time{}, errors.New("duration_minutes must not be negative")
	}
	if input.WaterM3 != nil && input.WaterM3.IsNegative() {
		return time.Time{}, errors.New("water_m3 must not be negative")
	}
	return irrigationDate, nil
}

func CreateIrrigationLog(ctx context.Context, input *NewIrrigationLog) (*IrrigationLog, error) {

	irrigationDate, err := input.validate(ctx, 0)
	if err != nil {
		return nil, err
	}

	irrigation := IrrigationLog{
		ParcelId:        input.ParcelId,
		IrrigationDate:  irrigationDate,
		DurationMinutes: input.DurationMinutes,
		WaterM3:         input.WaterM3,
		System:          input.System,
		Notes:           input.Notes,
	}

	// db action
	db := config.GetDB()
	err = db.WithContext(ctx).Create(&irrigation).Error
	if err != nil {
		return nil, err
	}

	return &irrigation, nil
}

func UpdateIrrigationLog(ctx context.Context, id int, input *NewIrrigationLog) (*IrrigationLog, error) {

	irrigationDate, err := input.validate(ctx, id)
	if err != nil {
		return nil, err
	}

	irrigation, err := utils.FetchModel[IrrigationLog](ctx, id)
	if err != nil {
		return nil, err
	}

	// db action
	db := config.GetDB()
	err = db.WithContext(ctx).Model(irrigation).Updates(map[string]interface{}{
		"ParcelId":        input.ParcelId,
		"IrrigationDate":  irrigationDate,
		"DurationMinutes": input.DurationMinutes,
		"WaterM3":         input.WaterM3,
		"System":          input.System,
		"Notes":           input.Notes,
	}).Error
	if err != nil {
		return nil, err
	}
	return irrigation, nil
}

func DeleteIrrigationLog(ctx context.Context, id int) (*IrrigationLog, error) {

	db := config.GetDB()

	result, err := utils.FetchModel[IrrigationLog](ctx, id)
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

func GetIrrigationLog(ctx context.Context, id int) (*IrrigationLog, error) {
	return utils.FetchModel[IrrigationLog](ctx, id)
}

func GetIrrigationLogs(ctx context.Context, parcelId *int) ([]*IrrigationLog, error) {

	db := config.GetDB()
	var results []*IrrigationLog

	dbCtx := db.WithContext(ctx)
	if parcelId != nil {
		dbCtx = dbCtx.Where("parcel_id = ?", *parcelId)
	}
	err := dbCtx.Order("irrigation_date DESC, id DESC").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
