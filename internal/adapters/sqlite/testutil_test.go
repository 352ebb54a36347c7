// Package sqlite_test contains integration tests for SQLite repositories.
//
// This file is the single point where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() so tests run against the
// authoritative schema. Do not hardcode CREATE TABLE statements in test files;
// use setupTestDB() and the seed* helpers instead.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/launchpad/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// A second pooled connection would see a different empty database.
	testDB.SetMaxOpenConns(1)

	if _, err := testDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedDocument inserts a test document and returns its ID.
func seedDocument(t *testing.T, db *sql.DB, id, content string) string {
	t.Helper()
	if id == "" {
		id = "DOC-001"
	}
	if content == "" {
		content = "# PHASE 1: SETUP\n- [ ] First step\n"
	}
	_, err := db.Exec(
		"INSERT INTO checklist_documents (id, name, doc_type, raw_content) VALUES (?, ?, 'engine', ?)",
		id, "Doc "+id, content,
	)
	if err != nil {
		t.Fatalf("failed to seed document: %v", err)
	}
	return id
}

// seedProject inserts a test project in setup and returns its ID.
func seedProject(t *testing.T, db *sql.DB, id, phase string) string {
	t.Helper()
	if id == "" {
		id = "LAUNCH-001"
	}
	if phase == "" {
		phase = "SETUP"
	}
	_, err := db.Exec(
		"INSERT INTO projects (id, title, document_ids, status, current_phase) VALUES (?, ?, '[\"DOC-001\"]', 'setup', ?)",
		id, "Project "+id, phase,
	)
	if err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}
	return id
}

// seedItem inserts a checklist item and returns its ID.
func seedItem(t *testing.T, db *sql.DB, id, projectID, phase string, sortOrder int, tags string) string {
	t.Helper()
	if tags == "" {
		tags = "[]"
	}
	_, err := db.Exec(
		`INSERT INTO checklist_items (id, project_id, source_document_id, phase, item_text, sort_order, tags)
		 VALUES (?, ?, 'DOC-001', ?, ?, ?, ?)`,
		id, projectID, phase, "Item "+id, sortOrder, tags,
	)
	if err != nil {
		t.Fatalf("failed to seed item: %v", err)
	}
	return id
}

// countRows returns the number of rows in table for a project.
func countRows(t *testing.T, db *sql.DB, table, projectID string) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM "+table+" WHERE project_id = ?", projectID).Scan(&n); err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return n
}

func intPtr(v int) *int { return &v }
