package config

import (
	"testing"
	"time"
)

// Without a connected client the cache helpers degrade to no-ops: reads miss
// and writes succeed, so cached projections fall through to the database.
func TestRedisHelpersWithoutClient(t *testing.T) {
	var dest []string
	exists, err := GetRedisObject("Campaigns", &dest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Fatalf("expected a cache miss without a client")
	}
	if err := SetRedisObject("Campaigns", []string{"2025"}, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := RemoveRedisKey("Campaigns", "CommissionAgents"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
