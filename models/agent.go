package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/terrafocus/campo_backend/config"
	"bitbucket.org/terrafocus/campo_backend/utils"
)

// Agent is an intermediary entitled to a commission on a contract side.
// Whether it acts as buyer or seller is contextual to the contract that
// references it, not an attribute of the agent itself.
type Agent struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"size:150;not null" json:"name" binding:"required"`
	TaxId     *string   `gorm:"size:20" json:"tax_id"`
	Phone     *string   `gorm:"size:30" json:"phone"`
	Email     *string   `gorm:"size:150" json:"email"`
	Notes     *string   `gorm:"size:500" json:"notes"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewAgent struct {
	Name  string  `json:"name" binding:"required"`
	TaxId *string `json:"tax_id"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
	Notes *string `json:"notes"`
}

// validate input for both create & update. (id = 0 for create)
func (input *NewAgent) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[Agent](ctx, id); err != nil {
			return err
		}
	}
	if input.Phone != nil && *input.Phone != "" {
		if err := utils.ValidatePhoneNumber(*input.Phone, utils.CountryCode); err != nil {
			return err
		}
	}
	if input.Email != nil && *input.Email != "" && !utils.IsValidEmail(*input.Email) {
		return errors.New("invalid email")
	}
	return nil
}

func CreateAgent(ctx context.Context, input *NewAgent) (*Agent, error) {

	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	agent := Agent{
		Name:     input.Name,
		TaxId:    input.TaxId,
		Phone:    input.Phone,
		Email:    input.Email,
		Notes:    input.Notes,
		IsActive: utils.NewTrue(),
	}

	// db action
	db := config.GetDB()
	err := db.WithContext(ctx).Create(&agent).Error
	if err != nil {
		return nil, err
	}

	return &agent, nil
}

func UpdateAgent(ctx context.Context, id int, input *NewAgent) (*Agent, error) {

	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	agent, err := utils.FetchModel[Agent](ctx, id)
	if err != nil {
		return nil, err
	}

	// db action
	db := config.GetDB()
	err = db.WithContext(ctx).Model(agent).Updates(map[string]interface{}{
		"Name":  input.Name,
		"TaxId": input.TaxId,
		"Phone": input.Phone,
		"Email": input.Email,
		"Notes": input.Notes,
	}).Error
	if err != nil {
		return nil, err
	}
	_ = config.RemoveRedisKey(commissionAgentsCacheKey)
	return agent, nil
}

func DeleteAgent(ctx context.Context, id int) (*Agent, error) {

	db := config.GetDB()

	result, err := utils.FetchModel[Agent](ctx, id)
	if err != nil {
		return nil, err
	}

	// db action
	err = db.WithContext(ctx).Delete(result).Error
	if err != nil {
		return nil, err
	}
	_ = config.RemoveRedisKey(commissionAgentsCacheKey)

	return result, nil
}

func GetAgent(ctx context.Context, id int) (*Agent, error) {
	return utils.FetchModel[Agent](ctx, id)
}

func GetAgents(ctx context.Context, name *string) ([]*Agent, error) {

	db := config.GetDB()
	var results []*Agent

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
