package payment

import (
	"errors"
	"testing"
)

func TestMockGateway(t *testing.T) {
	mock := NewMockGateway()
	if mock == nil {
		t.Fatal("expected non-nil mock")
	}

	ref, err := mock.Charge("o-1", 100, "card", "")
	if err != nil {
		t.Fatalf("unexpected charge error: %v", err)
	}
	if ref != "txn-test" {
		t.Fatalf("unexpected transaction ref: %s", ref)
	}

	mock.ChargeErr = errors.New("charge failed")
	if _, err := mock.Charge("o-2", 100, "card", ""); err == nil {
		t.Fatal("expected charge error")
	}

	if mock.ChargeCalls != 2 {
		t.Fatalf("unexpected call counter: %d", mock.ChargeCalls)
	}
}
