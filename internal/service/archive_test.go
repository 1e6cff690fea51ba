package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/andy/fatoura/internal/domain"
	"github.com/andy/fatoura/internal/repository"
	"github.com/google/go-cmp/cmp"
)

func TestSaveToArchive_InsertThenUpdate(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	w := openWorkspace(t, store)

	item := w.Current().Items[0]
	_ = w.UpdateItem(ctx, item.ID, domain.SetPrice{Value: 500})

	outcome, err := w.SaveToArchive(ctx)
	if err != nil {
		t.Fatalf("SaveToArchive: %v", err)
	}
	if outcome != domain.OutcomeInserted {
		t.Fatalf("outcome = %v, want inserted", outcome)
	}

	_ = w.UpdateItem(ctx, item.ID, domain.SetPrice{Value: 1000})
	outcome, err = w.SaveToArchive(ctx)
	if err != nil {
		t.Fatalf("SaveToArchive: %v", err)
	}
	if outcome != domain.OutcomeUpdated {
		t.Fatalf("outcome = %v, want updated", outcome)
	}

	archive := w.Archive()
	if len(archive) != 1 {
		t.Fatalf("archive len = %d, want 1", len(archive))
	}
	if archive[0].Total == nil || *archive[0].Total != 1190 {
		t.Fatalf("archived total = %v, want 1190", archive[0].Total)
	}

	stored, err := repository.NewArchiveRepo(store).List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if diff := cmp.Diff(archive, stored); diff != "" {
		t.Fatalf("stored archive differs (-session +stored):\n%s", diff)
	}
}

func TestSaveToArchive_DuplicateNumberLeavesArchive(t *testing.T) {
	ctx := context.Background()
	store := newFailingStore()
	w := openWorkspace(t, store)

	if _, err := w.SaveToArchive(ctx); err != nil {
		t.Fatalf("SaveToArchive: %v", err)
	}
	before := w.Archive()
	writes := store.puts[repository.KeyArchive]

	// The test factory always rolls the same number
	if _, err := w.NewInvoice(ctx); err != nil {
		t.Fatalf("NewInvoice: %v", err)
	}
	_, err := w.SaveToArchive(ctx)
	if !errors.Is(err, domain.ErrDuplicateInvoiceNumber) {
		t.Fatalf("expected ErrDuplicateInvoiceNumber, got %v", err)
	}
	if diff := cmp.Diff(before, w.Archive()); diff != "" {
		t.Fatalf("archive changed (-before +after):\n%s", diff)
	}
	if store.puts[repository.KeyArchive] != writes {
		t.Fatal("rejected save should not write the archive")
	}
}

func TestSaveToArchive_WriteFailure(t *testing.T) {
	ctx := context.Background()
	store := newFailingStore()
	w := openWorkspace(t, store)

	store.failPut[repository.KeyArchive] = true
	if _, err := w.SaveToArchive(ctx); err == nil {
		t.Fatal("expected error")
	}
	if len(w.Archive()) != 0 {
		t.Fatal("failed save should not reach the session archive")
	}
}

func TestOpenFromArchive(t *testing.T) {
	ctx := context.Background()
	w := openWorkspace(t, repository.NewMemoryStore())

	_ = w.SetNotes(ctx, "archived notes")
	if _, err := w.SaveToArchive(ctx); err != nil {
		t.Fatalf("SaveToArchive: %v", err)
	}
	archivedID := w.Current().ID

	if _, err := w.NewInvoice(ctx); err != nil {
		t.Fatalf("NewInvoice: %v", err)
	}
	if err := w.OpenFromArchive(ctx, archivedID); err != nil {
		t.Fatalf("OpenFromArchive: %v", err)
	}

	cur := w.Current()
	if cur.ID != archivedID || cur.Notes != "archived notes" {
		t.Fatalf("wrong invoice reopened: %+v", cur)
	}

	// Editing the reopened invoice does not touch the archive until saved
	_ = w.SetNotes(ctx, "edited")
	if got := w.Archive()[0].Notes; got != "archived notes" {
		t.Fatalf("archive changed to %q", got)
	}

	if err := w.OpenFromArchive(ctx, "missing"); !errors.Is(err, domain.ErrInvoiceNotFound) {
		t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
	}
}

func TestDeleteFromArchive(t *testing.T) {
	ctx := context.Background()
	w := openWorkspace(t, repository.NewMemoryStore())

	if _, err := w.SaveToArchive(ctx); err != nil {
		t.Fatalf("SaveToArchive: %v", err)
	}
	id := w.Current().ID

	if err := w.DeleteFromArchive(ctx, id); err != nil {
		t.Fatalf("DeleteFromArchive: %v", err)
	}
	if len(w.Archive()) != 0 {
		t.Fatal("invoice still archived")
	}
	if w.Current().ID != id {
		t.Fatal("live invoice should be unaffected")
	}
	if err := w.DeleteFromArchive(ctx, id); !errors.Is(err, domain.ErrInvoiceNotFound) {
		t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
	}
	if _, err := w.ArchivedInvoice(id); !errors.Is(err, domain.ErrInvoiceNotFound) {
		t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
	}
}

func TestSummarizeArchive(t *testing.T) {
	total := func(v float64) *float64 { return &v }
	date := func(s string) domain.Date {
		d, _ := domain.ParseDate(s)
		return d
	}
	archive := []domain.InvoiceData{
		{ID: "1", Date: date("2026-01-10"), Client: domain.ClientInfo{Name: "A"}, Total: total(100)},
		{ID: "2", Date: date("2026-01-20"), Client: domain.ClientInfo{Name: "B"}, Total: total(300)},
		{ID: "3", Date: date("2026-02-01"), Client: domain.ClientInfo{Name: "A"}, Total: total(50)},
		{ID: "4", Date: date("2025-12-31"), Client: domain.ClientInfo{Name: "A"}, Total: total(1000)},
	}

	sum := SummarizeArchive(archive, 2026)
	if sum.Invoices != 3 || sum.Total != 450 {
		t.Fatalf("got %d invoices totaling %v", sum.Invoices, sum.Total)
	}
	if sum.ByMonth[time.January] != 400 || sum.ByMonth[time.February] != 50 {
		t.Fatalf("ByMonth = %v", sum.ByMonth)
	}
	want := []ClientRevenue{{Name: "B", Invoices: 1, Total: 300}, {Name: "A", Invoices: 2, Total: 150}}
	if diff := cmp.Diff(want, sum.ByClient); diff != "" {
		t.Fatalf("ByClient (-want +got):\n%s", diff)
	}

	if all := SummarizeArchive(archive, 0); all.Invoices != 4 || all.Total != 1450 {
		t.Fatalf("all years: %d invoices totaling %v", all.Invoices, all.Total)
	}
}
