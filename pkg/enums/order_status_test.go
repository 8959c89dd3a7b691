package enums

import "testing"

func TestOrderStatusIsTerminal(t *testing.T) {
	terminal := []OrderStatus{OrderStatusRefunded, OrderStatusCancelled, OrderStatusDelivered}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Fatalf("expected %s to be terminal", s)
		}
	}
	open := []OrderStatus{OrderStatusProcessing, OrderStatusPending, OrderStatusShipped, OrderStatusCancelling, OrderStatusRequested}
	for _, s := range open {
		if s.IsTerminal() {
			t.Fatalf("expected %s to be non-terminal", s)
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("PENDING")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != OrderStatusPending {
		t.Fatalf("unexpected status %s", status)
	}
	if _, err := ParseOrderStatus("pending"); err == nil {
		t.Fatal("expected lowercase input to be rejected")
	}
	if _, err := ParseOrderStatus("UNKNOWN"); err == nil {
		t.Fatal("expected unknown status to be rejected")
	}
}
