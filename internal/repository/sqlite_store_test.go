package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/andy/fatoura/internal/db"
)

func newMockStore(t *testing.T) (*SQLiteStore, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })
	return NewSQLiteStore(db.Wrap(sqlDB)), mock
}

func TestSQLiteStore_Get(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM kv_store WHERE key = ?")).
		WithArgs(KeyCompany).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`{"name":"Acme"}`))

	b, ok, err := store.Get(context.Background(), KeyCompany)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || string(b) != `{"name":"Acme"}` {
		t.Fatalf("got %q, %v", b, ok)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM kv_store WHERE key = ?")).
		WithArgs(KeyArchive).
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, ok, err := store.Get(context.Background(), KeyArchive)
	if err != nil {
		t.Fatalf("missing key should not error: %v", err)
	}
	if ok {
		t.Fatal("expected ok=false for missing key")
	}
}

func TestSQLiteStore_GetError(t *testing.T) {
	store, mock := newMockStore(t)

	boom := errors.New("disk I/O error")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM kv_store")).WillReturnError(boom)

	if _, _, err := store.Get(context.Background(), KeyClients); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestSQLiteStore_PutUpserts(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO kv_store .* ON CONFLICT\\(key\\) DO UPDATE").
		WithArgs(KeyClients, `[]`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := store.Put(context.Background(), KeyClients, []byte(`[]`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSQLiteStore_Delete(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM kv_store WHERE key = ?")).
		WithArgs(KeyDraft).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := store.Delete(context.Background(), KeyDraft); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
