package models

import (
	"strings"
	"testing"

	"bitbucket.org/terrafocus/campo_backend/utils"
)

func testObservation(t *testing.T, id int, parcelId *int, tempMax, rainMm string) *WeatherObservation {
	t.Helper()
	obs := &WeatherObservation{
		ID:         id,
		ParcelId:   parcelId,
		ObservedAt: testDate(t, "2026-08-20"),
	}
	if tempMax != "" {
		obs.TemperatureMax = decPtrT(t, tempMax)
	}
	if rainMm != "" {
		obs.RainMm = decPtrT(t, rainMm)
	}
	return obs
}

func TestEvaluateRulesComparators(t *testing.T) {
	rules := []*WeatherRule{
		{ID: 1, Name: "heat", Metric: WeatherMetricTemperatureMax, Comparator: RuleComparatorAbove, Threshold: dec(t, "38"), Severity: AlertSeverityCritical, IsActive: utils.NewTrue()},
		{ID: 2, Name: "drought", Metric: WeatherMetricRainMm, Comparator: RuleComparatorBelow, Threshold: dec(t, "1"), Severity: AlertSeverityInfo, IsActive: utils.NewTrue()},
	}
	observations := []*WeatherObservation{
		testObservation(t, 1, nil, "41.5", "0"),
		testObservation(t, 2, nil, "35", "12"),
	}

	alerts := evaluateRules(rules, observations)
	if len(alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(alerts))
	}

	heat := alerts[0]
	if heat.RuleId != 1 || heat.ObservationId != 1 {
		t.Fatalf("expected heat alert for observation 1, got rule %d obs %d", heat.RuleId, heat.ObservationId)
	}
	if !heat.Value.Equal(dec(t, "41.5")) || !heat.Threshold.Equal(dec(t, "38")) {
		t.Fatalf("expected value 41.5 over threshold 38, got %s / %s", heat.Value.String(), heat.Threshold.String())
	}
	if heat.Severity != AlertSeverityCritical {
		t.Fatalf("expected rule severity on the alert, got %s", heat.Severity)
	}
	if !strings.Contains(heat.Message, "heat") {
		t.Fatalf("expected rule name in message, got %q", heat.Message)
	}

	drought := alerts[1]
	if drought.RuleId != 2 || drought.ObservationId != 1 {
		t.Fatalf("expected drought alert for observation 1, got rule %d obs %d", drought.RuleId, drought.ObservationId)
	}
}

func TestEvaluateRulesThresholdIsExclusive(t *testing.T) {
	rules := []*WeatherRule{
		{ID: 1, Name: "heat", Metric: WeatherMetricTemperatureMax, Comparator: RuleComparatorAbove, Threshold: dec(t, "38"), Severity: AlertSeverityWarning, IsActive: utils.NewTrue()},
	}
	observations := []*WeatherObservation{
		testObservation(t, 1, nil, "38", ""),
	}
	if alerts := evaluateRules(rules, observations); len(alerts) != 0 {
		t.Fatalf("value equal to threshold must not trip the rule, got %d alerts", len(alerts))
	}
}

func TestEvaluateRulesParcelScoping(t *testing.T) {
	rules := []*WeatherRule{
		{ID: 1, Name: "heat on la vega", ParcelId: intPtr(7), Metric: WeatherMetricTemperatureMax, Comparator: RuleComparatorAbove, Threshold: dec(t, "30"), Severity: AlertSeverityWarning, IsActive: utils.NewTrue()},
	}
	observations := []*WeatherObservation{
		testObservation(t, 1, intPtr(7), "32", ""),
		testObservation(t, 2, intPtr(8), "35", ""),
		testObservation(t, 3, nil, "35", ""),
	}

	alerts := evaluateRules(rules, observations)
	if len(alerts) != 1 {
		t.Fatalf("parcel-scoped rule must only match its parcel, got %d alerts", len(alerts))
	}
	if alerts[0].ObservationId != 1 {
		t.Fatalf("expected observation 1, got %d", alerts[0].ObservationId)
	}
}

func TestEvaluateRulesSkipsMissingMetricAndInactiveRules(t *testing.T) {
	rules := []*WeatherRule{
		{ID: 1, Name: "rain", Metric: WeatherMetricRainMm, Comparator: RuleComparatorAbove, Threshold: dec(t, "20"), Severity: AlertSeverityWarning, IsActive: utils.NewTrue()},
		{ID: 2, Name: "disabled heat", Metric: WeatherMetricTemperatureMax, Comparator: RuleComparatorAbove, Threshold: dec(t, "30"), Severity: AlertSeverityWarning, IsActive: utils.NewFalse()},
	}
	observations := []*WeatherObservation{
		// Has temperature but no rain reading: the rain rule cannot match.
		testObservation(t, 1, nil, "40", ""),
	}

	if alerts := evaluateRules(rules, observations); len(alerts) != 0 {
		t.Fatalf("expected no alerts, got %d", len(alerts))
	}
}
