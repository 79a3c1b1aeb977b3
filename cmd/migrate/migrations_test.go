package main

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/5w1tchy/catalog-api/internal/store/migrations"
	"github.com/pressly/goose/v3"
)

func TestCollectMigrations_ParsesEmbeddedSet(t *testing.T) {
	goose.SetBaseFS(migrations.FS)
	t.Cleanup(func() { goose.SetBaseFS(nil) })

	ms, err := goose.CollectMigrations(".", 0, goose.MaxVersion)
	if err != nil {
		t.Fatalf("expected migrations to parse, got error: %v", err)
	}
	if len(ms) == 0 {
		t.Fatal("no migrations embedded")
	}
}

func TestSQLMigrations_HaveGooseDirectives(t *testing.T) {
	entries, err := fs.ReadDir(migrations.FS, ".")
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		b, err := fs.ReadFile(migrations.FS, e.Name())
		if err != nil {
			t.Fatalf("ReadFile(%s): %v", e.Name(), err)
		}
		s := string(b)
		if !strings.Contains(s, "-- +goose Up") {
			t.Fatalf("%s missing '-- +goose Up'", e.Name())
		}
		if !strings.Contains(s, "-- +goose Down") {
			t.Fatalf("%s missing '-- +goose Down'", e.Name())
		}
	}
}

func TestSchema_NamesConstraintsTheErrorMapperKnows(t *testing.T) {
	b, err := fs.ReadFile(migrations.FS, "00001_catalog.sql")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"authors_email_key", "books_isbn_key", "books_author_id_fkey", "ON DELETE CASCADE"} {
		if !strings.Contains(string(b), name) {
			t.Errorf("schema missing %q", name)
		}
	}
}

func TestDatabaseURL_FromConfig(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://x@db/catalog")
	got, err := databaseURL()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != "postgres://x@db/catalog" {
		t.Fatalf("expected DATABASE_URL, got %q", got)
	}
}

func TestDatabaseURL_MissingIsError(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if got, err := databaseURL(); err == nil {
		t.Fatalf("expected error without DATABASE_URL, got %q", got)
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	if err := run(nil, "sideways", "."); err == nil {
		t.Fatal("expected error for unknown command")
	}
}
