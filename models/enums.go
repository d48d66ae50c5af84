package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
)

type ContractSide string

const (
	ContractSidePurchase ContractSide = "purchase"
	ContractSideSale     ContractSide = "sale"
)

func ParseContractSide(s string) (ContractSide, error) {
	switch s {
	case "purchase":
		return ContractSidePurchase, nil
	case "sale":
		return ContractSideSale, nil
	default:
		return "", errors.New("invalid contract side")
	}
}

func (t ContractSide) Value() (driver.Value, error) { return string(t), nil }

func (t *ContractSide) Scan(value interface{}) error {
	return scanEnumString((*string)(t), value, "contract side")
}

type CommissionMode string

const (
	CommissionModePercentage  CommissionMode = "percentage"
	CommissionModePerKilogram CommissionMode = "per_kilogram"
)

// Label returns the display name used on printed statements.
func (t CommissionMode) Label() string {
	switch t {
	case CommissionModePercentage:
		return "% sobre importe"
	case CommissionModePerKilogram:
		return "€/kg"
	default:
		return string(t)
	}
}

func ParseCommissionMode(s string) (CommissionMode, error) {
	switch s {
	case "percentage":
		return CommissionModePercentage, nil
	case "per_kilogram":
		return CommissionModePerKilogram, nil
	default:
		return "", errors.New("invalid commission mode")
	}
}

func (t CommissionMode) Value() (driver.Value, error) { return string(t), nil }

func (t *CommissionMode) Scan(value interface{}) error {
	return scanEnumString((*string)(t), value, "commission mode")
}

// DeliveryNoteType keeps the legacy Spanish document labels.
// Entrada settles against the purchase side, Salida against the sale side.
type DeliveryNoteType string

const (
	DeliveryNoteTypeEntrada DeliveryNoteType = "Entrada"
	DeliveryNoteTypeSalida  DeliveryNoteType = "Salida"
)

func (t DeliveryNoteType) Value() (driver.Value, error) { return string(t), nil }

func (t *DeliveryNoteType) Scan(value interface{}) error {
	return scanEnumString((*string)(t), value, "delivery note type")
}

type WeatherMetric string

const (
	WeatherMetricTemperatureMin WeatherMetric = "temperature_min"
	WeatherMetricTemperatureMax WeatherMetric = "temperature_max"
	WeatherMetricRainMm         WeatherMetric = "rain_mm"
	WeatherMetricWindKmh        WeatherMetric = "wind_kmh"
)

func ParseWeatherMetric(s string) (WeatherMetric, error) {
	switch s {
	case "temperature_min":
		return WeatherMetricTemperatureMin, nil
	case "temperature_max":
		return WeatherMetricTemperatureMax, nil
	case "rain_mm":
		return WeatherMetricRainMm, nil
	case "wind_kmh":
		return WeatherMetricWindKmh, nil
	default:
		return "", errors.New("invalid weather metric")
	}
}

func (t WeatherMetric) Value() (driver.Value, error) { return string(t), nil }

func (t *WeatherMetric) Scan(value interface{}) error {
	return scanEnumString((*string)(t), value, "weather metric")
}

type RuleComparator string

const (
	RuleComparatorAbove RuleComparator = "above"
	RuleComparatorBelow RuleComparator = "below"
)

func ParseRuleComparator(s string) (RuleComparator, error) {
	switch s {
	case "above":
		return RuleComparatorAbove, nil
	case "below":
		return RuleComparatorBelow, nil
	default:
		return "", errors.New("invalid rule comparator")
	}
}

func (t RuleComparator) Value() (driver.Value, error) { return string(t), nil }

func (t *RuleComparator) Scan(value interface{}) error {
	return scanEnumString((*string)(t), value, "rule comparator")
}

type AlertSeverity string

const (
	AlertSeverityInfo     AlertSeverity = "info"
	AlertSeverityWarning  AlertSeverity = "warning"
	AlertSeverityCritical AlertSeverity = "critical"
)

func (t AlertSeverity) Value() (driver.Value, error) { return string(t), nil }

func (t *AlertSeverity) Scan(value interface{}) error {
	return scanEnumString((*string)(t), value, "alert severity")
}

// Outbox publish lifecycle for alert events.
const (
	OutboxPublishStatusPending    = "PENDING"
	OutboxPublishStatusProcessing = "PROCESSING"
	OutboxPublishStatusSent       = "SENT"
	OutboxPublishStatusFailed     = "FAILED"
	OutboxPublishStatusDead       = "DEAD"
)

func scanEnumString(dest *string, value interface{}, what string) error {
	switch v := value.(type) {
	case string:
		*dest = v
	case []byte:
		*dest = string(v)
	case nil:
		*dest = ""
	default:
		return fmt.Errorf("cannot scan %T into %s", value, what)
	}
	return nil
}
