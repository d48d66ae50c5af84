package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/terrafocus/campo_backend/config"
	"bitbucket.org/terrafocus/campo_backend/utils"
	"github.com/shopspring/decimal"
)

type Parcel struct {
	ID           int              `gorm:"primary_key" json:"id"`
	Name         string           `gorm:"size:150;not null" json:"name" binding:"required"`
	Municipality *string          `gorm:"size:150" json:"municipality"`
	Polygon      *string          `gorm:"size:30" json:"polygon"`
	PlotNumber   *string          `gorm:"size:30" json:"plot_number"`
	AreaHa       *decimal.Decimal `gorm:"type:decimal(12,4)" json:"area_ha"`
	Crop         *string          `gorm:"size:100" json:"crop"`
	IsActive     *bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewParcel struct {
	Name         string           `json:"name" binding:"required"`
	Municipality *string          `json:"municipality"`
	Polygon      *string          `json:"polygon"`
	PlotNumber   *string          `json:"plot_number"`
	AreaHa       *decimal.Decimal `json:"area_ha"`
	Crop         *string          `json:"crop"`
}

func (input *NewParcel) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[Parcel](ctx, id); err != nil {
			return err
		}
	}
	if input.AreaHa != nil && input.AreaHa.IsNegative() {
		return errors.New("area_ha must not be negative")
	}
	return nil
}

func CreateParcel(ctx context.Context, input *NewParcel) (*Parcel, error) {

	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	parcel := Parcel{
		Name:         input.Name,
		Municipality: input.Municipality,
		Polygon:      input.Polygon,
		PlotNumber:   input.PlotNumber,
		AreaHa:       input.AreaHa,
		Crop:         input.Crop,
		IsActive:     utils.NewTrue(),
	}

	// db action
	db := config.GetDB()
	err := db.WithContext(ctx).Create(&parcel).Error
	if err != nil {
		return nil, err
	}

	return &parcel, nil
}

func UpdateParcel(ctx context.Context, id int, input *NewParcel) (*Parcel, error) {

	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	parcel, err := utils.FetchModel[Parcel](ctx, id)
	if err != nil {
		return nil, err
	}

	// db action
	db := config.GetDB()
	err = db.WithContext(ctx).Model(parcel).Updates(map[string]interface{}{
		"Name":         input.Name,
		"Municipality": input.Municipality,
		"Polygon":      input.Polygon,
		"PlotNumber":   input.PlotNumber,
		"AreaHa":       input.AreaHa,
		"Crop":         input.Crop,
	}).Error
	if err != nil {
		return nil, err
	}
	return parcel, nil
}

func DeleteParcel(ctx context.Context, id int) (*Parcel, error) {

	db := config.GetDB()

	result, err := utils.FetchModel[Parcel](ctx, id)
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

func GetParcel(ctx context.Context, id int) (*Parcel, error) {
	return utils.FetchModel[Parcel](ctx, id)
}

func GetParcels(ctx context.Context, name *string) ([]*Parcel, error) {

	db := config.GetDB()
	var results []*Parcel

	dbCtx := db.WithContext(ctx)
	if name != nil && len(*name) > 0 {
		dbCtx = dbCtx.Where("name LIKE ?", "%"+*name+"%")
	}
	err := dbCtx.Order("name").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
