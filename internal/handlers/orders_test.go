package handlers

import (
	"testing"

	"foodstore/internal/models"
)

func TestIsValidOrderStatus(t *testing.T) {
	for _, status := range []string{
		models.OrderStatusPending,
		models.OrderStatusProcessing,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
		models.OrderStatusCancelled,
	} {
		if !isValidOrderStatus(status) {
			t.Fatalf("expected %q to be valid", status)
		}
	}

	for _, status := range []string{"", "pending", "Returned", "Paid"} {
		if isValidOrderStatus(status) {
			t.Fatalf("expected %q to be rejected", status)
		}
	}
}

func TestValidateOrderStatusChange(t *testing.T) {
	cases := []struct {
		current string
		next    string
		wantErr bool
	}{
		{models.OrderStatusPending, models.OrderStatusProcessing, false},
		{models.OrderStatusProcessing, models.OrderStatusShipped, false},
		{models.OrderStatusShipped, models.OrderStatusDelivered, false},
		{models.OrderStatusPending, models.OrderStatusCancelled, false},
		{models.OrderStatusPending, models.OrderStatusPending, true},
		{models.OrderStatusDelivered, models.OrderStatusDelivered, true},
		{models.OrderStatusPending, "Returned", true},
		{models.OrderStatusPending, "", true},
	}
	for _, tc := range cases {
		err := validateOrderStatusChange(tc.current, tc.next)
		if tc.wantErr && err == nil {
			t.Fatalf("expected %q -> %q to be rejected", tc.current, tc.next)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("expected %q -> %q to be allowed, got %v", tc.current, tc.next, err)
		}
	}
}
