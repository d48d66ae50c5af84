package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/terrafocus/campo_backend/config"
	"bitbucket.org/terrafocus/campo_backend/utils"
	"github.com/shopspring/decimal"
)

// Treatment is a phytosanitary application on a parcel. Dose and units are
// recorded as captured in the field notebook; no stock is kept here.
type Treatment struct {
	ID            int              `gorm:"primary_key" json:"id"`
	ParcelId      int              `gorm:"not null;index" json:"parcel_id" binding:"required"`
	TreatmentDate time.Time        `gorm:"type:date;not null" json:"treatment_date"`
	Product       string           `gorm:"size:150;not null" json:"product" binding:"required"`
	ActiveAgent   *string          `gorm:"size:150" json:"active_agent"`
	Dose          *decimal.Decimal `gorm:"type:decimal(12,4)" json:"dose"`
	DoseUnit      *string          `gorm:"size:20" json:"dose_unit"`
	Target        *string          `gorm:"size:150" json:"target"`
	Applicator    *string          `gorm:"size:150" json:"applicator"`
	CreatedAt     time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewTreatment struct {
	ParcelId      int              `json:"parcel_id" binding:"required"`
	TreatmentDate string           `json:"treatment_date" binding:"required"`
	Product       string           `json:"product" binding:"required"`
	ActiveAgent   *string          `json:"active_agent"`
	Dose          *decimal.Decimal `json:"dose"`
	DoseUnit      *string          `json:"dose_unit"`
	Target        *string          `json:"target"`
	Applicator    *string          `json:"applicator"`
}

func (input *NewTreatment) validate(ctx context.Context, id int) (time.Time, error) {
	if id > 0 {
		if err := utils.ValidateResourceId[Treatment](ctx, id); err != nil {
			return time.Time{}, err
		}
	}
	if err := utils.ValidateResourceId[Parcel](ctx, input.ParcelId); err != nil {
		return time.Time{}, errors.New("parcel not found")
	}
	treatmentDate, err := time.Parse("2006-01-02", input.TreatmentDate)
	if err != nil {
		return time.Time{}, errors.New("treatment_date must be YYYY-MM-DD")
	}
	if input.Dose != nil && input.Dose.IsNegative() {
		return time.Time{}, errors.New("dose must not be negative")
	}
	return treatmentDate, nil
}

func CreateTreatment(ctx context.Context, input *NewTreatment) (*Treatment, error) {

	treatmentDate, err := input.validate(ctx, 0)
	if err != nil {
		return nil, err
	}

	treatment := Treatment{
		ParcelId:      input.ParcelId,
		TreatmentDate: treatmentDate,
		Product:       input.Product,
		ActiveAgent:   input.ActiveAgent,
		Dose:          input.Dose,
		DoseUnit:      input.DoseUnit,
		Target:        input.Target,
		Applicator:    input.Applicator,
	}

	// db action
	db := config.GetDB()
	err = db.WithContext(ctx).Create(&treatment).Error
	if err != nil {
		return nil, err
	}

	return &treatment, nil
}

func UpdateTreatment(ctx context.Context, id int, input *NewTreatment) (*Treatment, error) {

	treatmentDate, err := input.validate(ctx, id)
	if err != nil {
		return nil, err
	}

	treatment, err := utils.FetchModel[Treatment](ctx, id)
	if err != nil {
		return nil, err
	}

	// db action
	db := config.GetDB()
	err = db.WithContext(ctx).Model(treatment).Updates(map[string]interface{}{
		"ParcelId":      input.ParcelId,
		"TreatmentDate": treatmentDate,
		"Product":       input.Product,
		"ActiveAgent":   input.ActiveAgent,
		"Dose":          input.Dose,
		"DoseUnit":      input.DoseUnit,
		"Target":        input.Target,
		"Applicator":    input.Applicator,
	}).Error
	if err != nil {
		return nil, err
	}
	return treatment, nil
}

func DeleteTreatment(ctx context.Context, id int) (*Treatment, error) {

	db := config.GetDB()

	result, err := utils.FetchModel[Treatment](ctx, id)
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

func GetTreatment(ctx context.Context, id int) (*Treatment, error) {
	return utils.FetchModel[Treatment](ctx, id)
}

func GetTreatments(ctx context.Context, parcelId *int) ([]*Treatment, error) {

	db := config.GetDB()
	var results []*Treatment

	dbCtx := db.WithContext(ctx)
	if parcelId != nil {
		dbCtx = dbCtx.Where("parcel_id = ?", *parcelId)
	}
	err := dbCtx.Order("treatment_date DESC, id DESC").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
