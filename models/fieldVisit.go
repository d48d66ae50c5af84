package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/terrafocus/campo_backend/config"
	"bitbucket.org/terrafocus/campo_backend/utils"
)

type FieldVisit struct {
	ID           int       `gorm:"primary_key" json:"id"`
	ParcelId     int       `gorm:"not null;index" json:"parcel_id" binding:"required"`
	VisitDate    time.Time `gorm:"type:date;not null" json:"visit_date"`
	Technician   string    `gorm:"size:150;not null" json:"technician" binding:"required"`
	Observations *string   `gorm:"size:2000" json:"observations"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewFieldVisit struct {
	ParcelId     int     `json:"parcel_id" binding:"required"`
	VisitDate    string  `json:"visit_date" binding:"required"`
	Technician   string  `json:"technician" binding:"required"`
	Observations *string `json:"observations"`
}

func (input *NewFieldVisit) validate(ctx context.Context, id int) (time.Time, error) {
	if id > 0 {
		if err := utils.ValidateResourceId[FieldVisit](ctx, id); err != nil {
			return time.Time{}, err
		}
	}
	if err := utils.ValidateResourceId[Parcel](ctx, input.ParcelId); err != nil {
		return time.Time{}, errors.New("parcel not found")
	}
	visitDate, err := time.Parse("2006-01-02", input.VisitDate)
	if err != nil {
		return time.Time{}, errors.New("visit_date must be YYYY-MM-DD")
	}
	return visitDate, nil
}

func CreateFieldVisit(ctx context.Context, input *NewFieldVisit) (*FieldVisit, error) {

	visitDate, err := input.validate(ctx, 0)
	if err != nil {
		return nil, err
	}

	visit := FieldVisit{
		ParcelId:     input.ParcelId,
		VisitDate:    visitDate,
		Technician:   input.Technician,
		Observations: input.Observations,
	}

	// db action
	db := config.GetDB()
	err = db.WithContext(ctx).Create(&visit).Error
	if err != nil {
		return nil, err
	}

	return &visit, nil
}

func UpdateFieldVisit(ctx context.Context, id int, input *NewFieldVisit) (*FieldVisit, error) {

	visitDate, err := input.validate(ctx, id)
	if err != nil {
		return nil, err
	}

	visit, err := utils.FetchModel[FieldVisit](ctx, id)
	if err != nil {
		return nil, err
	}

	// db action
	db := config.GetDB()
	err = db.WithContext(ctx).Model(visit).Updates(map[string]interface{}{
		"ParcelId":     input.ParcelId,
		"VisitDate":    visitDate,
		"Technician":   input.Technician,
		"Observations": input.Observations,
	}).Error
	if err != nil {
		return nil, err
	}
	return visit, nil
}

func DeleteFieldVisit(ctx context.Context, id int) (*FieldVisit, error) {

	db := config.GetDB()

	result, err := utils.FetchModel[FieldVisit](ctx, id)
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

func GetFieldVisit(ctx context.Context, id int) (*FieldVisit, error) {
	return utils.FetchModel[FieldVisit](ctx, id)
}

func GetFieldVisits(ctx context.Context, parcelId *int) ([]*FieldVisit, error) {

	db := config.GetDB()
	var results []*FieldVisit

	dbCtx := db.WithContext(ctx)
	if parcelId != nil {
		dbCtx = dbCtx.Where("parcel_id = ?", *parcelId)
	}
	err := dbCtx.Order("visit_date DESC, id DESC").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
