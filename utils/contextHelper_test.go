package utils

import (
	"context"
	"testing"
)

func TestUserNameContextRoundTrip(t *testing.T) {
	ctx := SetUserNameInContext(context.Background(), "operator")
	name, ok := GetUserNameFromContext(ctx)
	if !ok || name != "operator" {
		t.Fatalf("expected operator, got %q (ok=%v)", name, ok)
	}
	if _, ok := GetUserNameFromContext(context.Background()); ok {
		t.Fatalf("expected no user name on an empty context")
	}
}
