package handlers

import (
	"net/http"
	"strings"
	"testing"
)

func TestGetCommissionStatementRequiresAgentId(t *testing.T) {
	w := performRequest(t, "/commissions/statement?side=purchase")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "agent_id is required") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestGetCommissionStatementRequiresSide(t *testing.T) {
	w := performRequest(t, "/commissions/statement?agent_id=1")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "side is required") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestGetCommissionStatementRejectsUnknownSide(t *testing.T) {
	w := performRequest(t, "/commissions/statement?agent_id=1&side=retail")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
