package domain

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func archivedInvoice(id, number string, total float64) InvoiceData {
	return InvoiceData{
		ID:            id,
		InvoiceNumber: number,
		Items:         []InvoiceItem{{ID: id + "-1", Description: "Service", Price: total, Quantity: 1}},
		TVARate:       0,
		PaymentMethod: PaymentTransfer,
		Total:         &total,
	}
}

func sampleArchive() []InvoiceData {
	return []InvoiceData{
		archivedInvoice("c", "2026/300", 300),
		archivedInvoice("b", "2026/200", 200),
		archivedInvoice("a", "2026/100", 100),
	}
}

func TestSaveToArchive_DuplicateNumberRejected(t *testing.T) {
	archive := sampleArchive()
	before := sampleArchive()

	candidate := InvoiceData{
		ID:            "new",
		InvoiceNumber: "2026/200",
		Items:         []InvoiceItem{{ID: "x", Price: 50, Quantity: 1}},
		TVARate:       19,
		PaymentMethod: PaymentCash,
	}

	res, err := SaveToArchive(archive, candidate)
	if !errors.Is(err, ErrDuplicateInvoiceNumber) {
		t.Fatalf("expected ErrDuplicateInvoiceNumber, got %v", err)
	}
	if res.Archive != nil {
		t.Fatalf("expected no archive on failure, got %d entries", len(res.Archive))
	}
	if diff := cmp.Diff(before, archive); diff != "" {
		t.Fatalf("archive changed on failed save (-want +got):\n%s", diff)
	}
}

func TestSaveToArchive_UpdateInPlace(t *testing.T) {
	archive := sampleArchive()

	candidate := archive[1].Clone()
	candidate.Total = nil
	candidate.Items = []InvoiceItem{{ID: "b-1", Price: 1000, Quantity: 1}}
	candidate.TVARate = 19

	res, err := SaveToArchive(archive, candidate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != OutcomeUpdated {
		t.Fatalf("expected OutcomeUpdated, got %s", res.Outcome)
	}
	if len(res.Archive) != len(archive) {
		t.Fatalf("expected length %d, got %d", len(archive), len(res.Archive))
	}
	if res.Archive[1].ID != "b" {
		t.Fatalf("expected updated entry at index 1, got %q", res.Archive[1].ID)
	}
	if res.Archive[1].Total == nil || *res.Archive[1].Total != 1190 {
		t.Fatalf("expected total snapshot 1190, got %v", res.Archive[1].Total)
	}
	if res.Archive[0].ID != "c" || res.Archive[2].ID != "a" {
		t.Fatalf("neighbours moved: %q, %q", res.Archive[0].ID, res.Archive[2].ID)
	}
	// the input archive is untouched
	if *archive[1].Total != 200 {
		t.Fatalf("input archive was modified")
	}
}

func TestSaveToArchive_KeepOwnNumber(t *testing.T) {
	archive := sampleArchive()
	candidate := archive[2].Clone()
	candidate.Notes = "edited"

	res, err := SaveToArchive(archive, candidate)
	if err != nil {
		t.Fatalf("re-saving with own number should succeed: %v", err)
	}
	if res.Outcome != OutcomeUpdated {
		t.Fatalf("expected OutcomeUpdated, got %s", res.Outcome)
	}
	if res.Archive[2].Notes != "edited" {
		t.Fatalf("expected notes to be updated")
	}
}

func TestSaveToArchive_InsertAtFront(t *testing.T) {
	archive := sampleArchive()

	candidate := InvoiceData{
		ID:            "d",
		InvoiceNumber: "2026/400",
		Items:         []InvoiceItem{{ID: "d-1", Price: 500, Quantity: 1}},
		TVARate:       19,
		PaymentMethod: PaymentCash,
	}

	res, err := SaveToArchive(archive, candidate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != OutcomeInserted {
		t.Fatalf("expected OutcomeInserted, got %s", res.Outcome)
	}
	if len(res.Archive) != len(archive)+1 {
		t.Fatalf("expected length %d, got %d", len(archive)+1, len(res.Archive))
	}
	if res.Archive[0].ID != "d" {
		t.Fatalf("expected new entry first, got %q", res.Archive[0].ID)
	}
	if res.Saved.Total == nil || !almostEqual(*res.Saved.Total, 600.95) {
		t.Fatalf("expected total 600.95 including stamp duty, got %v", res.Saved.Total)
	}
	if candidate.Total != nil {
		t.Fatalf("candidate must not be modified")
	}

	wantOrder := []string{"d", "c", "b", "a"}
	for i, id := range wantOrder {
		if res.Archive[i].ID != id {
			t.Fatalf("index %d: expected %q, got %q", i, id, res.Archive[i].ID)
		}
	}
}

func TestSaveToArchive_EmptyArchive(t *testing.T) {
	res, err := SaveToArchive(nil, InvoiceData{ID: "x", InvoiceNumber: "2026/123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != OutcomeInserted || len(res.Archive) != 1 {
		t.Fatalf("expected single inserted entry, got %s with %d", res.Outcome, len(res.Archive))
	}
	if *res.Archive[0].Total != 0 {
		t.Fatalf("expected zero total for empty invoice, got %v", *res.Archive[0].Total)
	}
}

func TestSaveToArchive_SnapshotIsIndependent(t *testing.T) {
	candidate := InvoiceData{
		ID:            "x",
		InvoiceNumber: "2026/555",
		Items:         []InvoiceItem{{ID: "1", Price: 10, Quantity: 1}},
	}
	res, err := SaveToArchive(nil, candidate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	candidate.Items[0].Price = 99
	if res.Archive[0].Items[0].Price != 10 {
		t.Fatalf("archived items alias the editor invoice")
	}
}

func TestRemoveFromArchive(t *testing.T) {
	archive := sampleArchive()

	out := RemoveFromArchive(archive, "b")
	if len(out) != 2 || out[0].ID != "c" || out[1].ID != "a" {
		t.Fatalf("unexpected archive after removal: %+v", out)
	}
	if len(archive) != 3 {
		t.Fatalf("input archive was modified")
	}

	same := RemoveFromArchive(archive, "missing")
	if diff := cmp.Diff(archive, same); diff != "" {
		t.Fatalf("removing unknown id changed archive:\n%s", diff)
	}
}

func TestFindInArchive(t *testing.T) {
	archive := sampleArchive()

	inv, err := FindInArchive(archive, "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	inv.Items[0].Description = "changed"
	if archive[2].Items[0].Description != "Service" {
		t.Fatalf("FindInArchive must return a copy")
	}

	if _, err := FindInArchive(archive, "zzz"); !errors.Is(err, ErrInvoiceNotFound) {
		t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
	}
}
