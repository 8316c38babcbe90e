package handlers

import (
	"errors"
	"testing"

	"foodstore/internal/models"
)

func TestResolveFinalizeMissPaidQuoteIsNoOp(t *testing.T) {
	// A duplicate delivery for a quote another call already flipped to Paid
	// must report success without creating a second order.
	alreadyPaid, err := resolveFinalizeMiss(models.QuoteStatusPaid)
	if err != nil {
		t.Fatalf("expected no error for a paid quote, got %v", err)
	}
	if !alreadyPaid {
		t.Fatal("expected the paid quote to be reported as already paid")
	}
}

func TestResolveFinalizeMissRejectsUnpayableStatuses(t *testing.T) {
	for _, status := range []string{
		models.QuoteStatusPendingReview,
		models.QuoteStatusPendingUserAction,
		"Cancelled",
		"",
	} {
		alreadyPaid, err := resolveFinalizeMiss(status)
		if !errors.Is(err, ErrQuoteNotPayable) {
			t.Fatalf("expected ErrQuoteNotPayable for %q, got %v", status, err)
		}
		if alreadyPaid {
			t.Fatalf("status %q must not be treated as already paid", status)
		}
	}
}
