package models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bitbucket.org/terrafocus/campo_backend/config"
	"bitbucket.org/terrafocus/campo_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type WeatherObservation struct {
	ID             int              `gorm:"primary_key" json:"id"`
	ParcelId       *int             `gorm:"index" json:"parcel_id"`
	ObservedAt     time.Time        `gorm:"not null;index" json:"observed_at"`
	TemperatureMin *decimal.Decimal `gorm:"type:decimal(8,2)" json:"temperature_min"`
	TemperatureMax *decimal.Decimal `gorm:"type:decimal(8,2)" json:"temperature_max"`
	RainMm         *decimal.Decimal `gorm:"type:decimal(8,2)" json:"rain_mm"`
	WindKmh        *decimal.Decimal `gorm:"type:decimal(8,2)" json:"wind_kmh"`
	Source         *string          `gorm:"size:100" json:"source"`
	CreatedAt      time.Time        `gorm:"autoCreateTime" json:"created_at"`
}

type NewWeatherObservation struct {
	ParcelId       *int             `json:"parcel_id"`
	ObservedAt     time.Time        `json:"observed_at" binding:"required"`
	TemperatureMin *decimal.Decimal `json:"temperature_min"`
	TemperatureMax *decimal.Decimal `json:"temperature_max"`
	RainMm         *decimal.Decimal `json:"rain_mm"`
	WindKmh        *decimal.Decimal `json:"wind_kmh"`
	Source         *string          `json:"source"`
}

func CreateWeatherObservation(ctx context.Context, input *NewWeatherObservation) (*WeatherObservation, error) {

	if input.ParcelId != nil {
		if err := utils.ValidateResourceId[Parcel](ctx, *input.ParcelId); err != nil {
			return nil, errors.New("parcel not found")
		}
	}

	obs := WeatherObservation{
		ParcelId:       input.ParcelId,
		ObservedAt:     input.ObservedAt,
		TemperatureMin: input.TemperatureMin,
		TemperatureMax: input.TemperatureMax,
		RainMm:         input.RainMm,
		WindKmh:        input.WindKmh,
		Source:         input.Source,
	}

	db := config.GetDB()
	err := db.WithContext(ctx).Create(&obs).Error
	if err != nil {
		return nil, err
	}
	return &obs, nil
}

// WeatherRule raises an alert when an observation crosses threshold.
// Scope narrows via ParcelId; a rule without a parcel applies everywhere.
type WeatherRule struct {
	ID         int             `gorm:"primary_key" json:"id"`
	Name       string          `gorm:"size:150;not null" json:"name" binding:"required"`
	ParcelId   *int            `json:"parcel_id"`
	Metric     WeatherMetric   `gorm:"size:30;not null" json:"metric" binding:"required"`
	Comparator RuleComparator  `gorm:"size:10;not null" json:"comparator" binding:"required"`
	Threshold  decimal.Decimal `gorm:"type:decimal(8,2);not null" json:"threshold"`
	Severity   AlertSeverity   `gorm:"size:10;not null" json:"severity"`
	IsActive   *bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewWeatherRule struct {
	Name       string          `json:"name" binding:"required"`
	ParcelId   *int            `json:"parcel_id"`
	Metric     string          `json:"metric" binding:"required"`
	Comparator string          `json:"comparator" binding:"required"`
	Threshold  decimal.Decimal `json:"threshold"`
	Severity   string          `json:"severity"`
}

func (input *NewWeatherRule) validate(ctx context.Context, id int) (WeatherMetric, RuleComparator, AlertSeverity, error) {
	if id > 0 {
		if err := utils.ValidateResourceId[WeatherRule](ctx, id); err != nil {
			return "", "", "", err
		}
	}
	metric, err := ParseWeatherMetric(input.Metric)
	if err != nil {
		return "", "", "", err
	}
	comparator, err := ParseRuleComparator(input.Comparator)
	if err != nil {
		return "", "", "", err
	}
	severity := AlertSeverity(input.Severity)
	if severity == "" {
		severity = AlertSeverityWarning
	}
	if severity != AlertSeverityInfo && severity != AlertSeverityWarning && severity != AlertSeverityCritical {
		return "", "", "", errors.New("invalid alert severity")
	}
	if input.ParcelId != nil {
		if err := utils.ValidateResourceId[Parcel](ctx, *input.ParcelId); err != nil {
			return "", "", "", errors.New("parcel not found")
		}
	}
	return metric, comparator, severity, nil
}

func CreateWeatherRule(ctx context.Context, input *NewWeatherRule) (*WeatherRule, error) {

	metric, comparator, severity, err := input.validate(ctx, 0)
	if err != nil {
		return nil, err
	}

	rule := WeatherRule{
		Name:       input.Name,
		ParcelId:   input.ParcelId,
		Metric:     metric,
		Comparator: comparator,
		Threshold:  input.Threshold,
		Severity:   severity,
		IsActive:   utils.NewTrue(),
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Create(&rule).Error
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func UpdateWeatherRule(ctx context.Context, id int, input *NewWeatherRule) (*WeatherRule, error) {

	metric, comparator, severity, err := input.validate(ctx, id)
	if err != nil {
		return nil, err
	}

	rule, err := utils.FetchModel[WeatherRule](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(rule).Updates(map[string]interface{}{
		"Name":       input.Name,
		"ParcelId":   input.ParcelId,
		"Metric":     metric,
		"Comparator": comparator,
		"Threshold":  input.Threshold,
		"Severity":   severity,
	}).Error
	if err != nil {
		return nil, err
	}
	return rule, nil
}

func DeleteWeatherRule(ctx context.Context, id int) (*WeatherRule, error) {

	result, err := utils.FetchModel[WeatherRule](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Delete(result).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}

func GetWeatherRules(ctx context.Context) ([]*WeatherRule, error) {
	return utils.FetchAllModels[WeatherRule](ctx)
}

type WeatherAlert struct {
	ID            int             `gorm:"primary_key" json:"id"`
	RuleId        int             `gorm:"not null;index" json:"rule_id"`
	ObservationId int             `gorm:"not null;index" json:"observation_id"`
	ParcelId      *int            `json:"parcel_id"`
	Metric        WeatherMetric   `gorm:"size:30;not null" json:"metric"`
	Severity      AlertSeverity   `gorm:"size:10;not null" json:"severity"`
	Value         decimal.Decimal `gorm:"type:decimal(8,2)" json:"value"`
	Threshold     decimal.Decimal `gorm:"type:decimal(8,2)" json:"threshold"`
	Message       string          `gorm:"size:500" json:"message"`
	ObservedAt    time.Time       `json:"observed_at"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

// AlertEventRecord is the transactional outbox row for a raised alert.
// The dispatcher publishes it to Pub/Sub after commit.
type AlertEventRecord struct {
	ID               int        `gorm:"primary_key" json:"id"`
	AlertId          int        `gorm:"not null;index" json:"alert_id"`
	Payload          []byte     `gorm:"type:json" json:"payload"`
	PublishStatus    string     `gorm:"size:15;not null;default:PENDING;index" json:"publish_status"`
	PublishAttempts  int        `gorm:"not null;default:0" json:"publish_attempts"`
	LastPublishError *string    `gorm:"size:1000" json:"last_publish_error"`
	NextAttemptAt    *time.Time `json:"next_attempt_at"`
	LockedAt         *time.Time `json:"locked_at"`
	LockedBy         *string    `gorm:"size:50" json:"locked_by"`
	PublishedAt      *time.Time `json:"published_at"`
	PubSubMessageId  *string    `gorm:"size:50" json:"pub_sub_message_id"`
	CorrelationId    string     `gorm:"size:50" json:"correlation_id"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func GetWeatherAlerts(ctx context.Context, parcelId *int) ([]*WeatherAlert, error) {

	db := config.GetDB()
	var results []*WeatherAlert

	dbCtx := db.WithContext(ctx)
	if parcelId != nil {
		dbCtx = dbCtx.Where("parcel_id = ?", *parcelId)
	}
	err := dbCtx.Order("observed_at DESC, id DESC").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// ruleMatches reports whether the observation trips the rule, and the
// observed value for the rule's metric. Observations missing the metric
// never match.
func ruleMatches(rule *WeatherRule, obs *WeatherObservation) (decimal.Decimal, bool) {
	if rule.ParcelId != nil {
		if obs.ParcelId == nil || *obs.ParcelId != *rule.ParcelId {
			return decimal.Zero, false
		}
	}

	var value *decimal.Decimal
	switch rule.Metric {
	case WeatherMetricTemperatureMin:
		value = obs.TemperatureMin
	case WeatherMetricTemperatureMax:
		value = obs.TemperatureMax
	case WeatherMetricRainMm:
		value = obs.RainMm
	case WeatherMetricWindKmh:
		value = obs.WindKmh
	}
	if value == nil {
		return decimal.Zero, false
	}

	switch rule.Comparator {
	case RuleComparatorAbove:
		return *value, value.GreaterThan(rule.Threshold)
	case RuleComparatorBelow:
		return *value, value.LessThan(rule.Threshold)
	default:
		return decimal.Zero, false
	}
}

// evaluateRules is the pure matching core: active rules against a batch of
// observations, one alert per (rule, observation) hit.
func evaluateRules(rules []*WeatherRule, observations []*WeatherObservation) []*WeatherAlert {
	var alerts []*WeatherAlert
	for _, rule := range rules {
		if rule.IsActive != nil && !*rule.IsActive {
			continue
		}
		for _, obs := range observations {
			value, hit := ruleMatches(rule, obs)
			if !hit {
				continue
			}
			alerts = append(alerts, &WeatherAlert{
				RuleId:        rule.ID,
				ObservationId: obs.ID,
				ParcelId:      obs.ParcelId,
				Metric:        rule.Metric,
				Severity:      rule.Severity,
				Value:         value,
				Threshold:     rule.Threshold,
				Message:       fmt.Sprintf("%s: %s %s %s (threshold %s)", rule.Name, rule.Metric, rule.Comparator, value.String(), rule.Threshold.String()),
				ObservedAt:    obs.ObservedAt,
			})
		}
	}
	return alerts
}

func alertEventPayload(alert *WeatherAlert, correlationId string) ([]byte, error) {
	return json.Marshal(config.AlertEvent{
		ID:            alert.ID,
		RuleId:        alert.RuleId,
		ParcelId:      alert.ParcelId,
		Metric:        string(alert.Metric),
		Severity:      string(alert.Severity),
		Message:       alert.Message,
		ObservedAt:    alert.ObservedAt,
		CorrelationId: correlationId,
	})
}

// EvaluateWeatherRules matches active rules against observations recorded
// since the given time, persisting alerts and their outbox rows in one
// transaction. Callers serialize invocations with a redis lock; an
// observation evaluated twice yields duplicate alerts otherwise.
func EvaluateWeatherRules(ctx context.Context, since time.Time) ([]*WeatherAlert, error) {

	db := config.GetDB()

	rules, err := utils.FetchAllModels[WeatherRule](ctx)
	if err != nil {
		return nil, err
	}

	var observations []*WeatherObservation
	if err := db.WithContext(ctx).Where("observed_at >= ?", since).Find(&observations).Error; err != nil {
		return nil, err
	}

	alerts := evaluateRules(rules, observations)
	if len(alerts) == 0 {
		return []*WeatherAlert{}, nil
	}

	correlationId, _ := utils.GetCorrelationIdFromContext(ctx)
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, alert := range alerts {
			if err := tx.Create(alert).Error; err != nil {
				return err
			}
			payload, err := alertEventPayload(alert, correlationId)
			if err != nil {
				return err
			}
			record := AlertEventRecord{
				AlertId:       alert.ID,
				Payload:       payload,
				PublishStatus: OutboxPublishStatusPending,
				CorrelationId: correlationId,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return alerts, nil
}
