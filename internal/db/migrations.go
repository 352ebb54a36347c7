package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_documents_projects_and_items",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_tasks_ledger",
		Up:      migrationV2,
	},
	{
		Version: 3,
		Name:    "add_check_ins_item_notes_and_activity_log",
		Up:      migrationV3,
	},
}

// LatestVersion returns the highest known migration version.
func LatestVersion() int {
	return migrations[len(migrations)-1].Version
}

func createVersionTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}
	return nil
}

// CurrentVersion returns the highest applied migration version.
func CurrentVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to get current schema version: %w", err)
	}
	return version, nil
}

// RunMigrations executes all pending migrations, each in its own transaction.
func RunMigrations(db *sql.DB) error {
	if err := createVersionTable(db); err != nil {
		return err
	}

	currentVersion, err := CurrentVersion(db)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}
		if err := applyMigration(db, migration); err != nil {
			return err
		}
	}

	return nil
}

func applyMigration(db *sql.DB, migration Migration) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
	}
	defer tx.Rollback()

	if err := migration.Up(tx); err != nil {
		return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
	}

	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version); err != nil {
		return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
	}
	return nil
}

func execAll(tx *sql.Tx, stmts ...string) error {
	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// migrationV1 creates documents, projects, checklist items, posting log and metrics.
func migrationV1(tx *sql.Tx) error {
	return execAll(tx,
		`CREATE TABLE IF NOT EXISTS checklist_documents (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			doc_type TEXT NOT NULL CHECK(doc_type IN ('engine', 'playbook', 'operations')),
			raw_content TEXT NOT NULL,
			version TEXT NOT NULL DEFAULT '1',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_checklist_documents_type ON checklist_documents(doc_type)`,
		`CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY,
			owner TEXT,
			title TEXT NOT NULL,
			document_ids TEXT NOT NULL DEFAULT '[]',
			target_launch_date TEXT,
			status TEXT NOT NULL DEFAULT 'setup',
			current_phase TEXT NOT NULL,
			meta TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			completed_at DATETIME
		)`,
		`CREATE INDEX IF NOT EXISTS idx_projects_status ON projects(status)`,
		`CREATE TABLE IF NOT EXISTS checklist_items (
			id TEXT PRIMARY KEY,
			project_id TEXT NOT NULL,
			source_document_id TEXT NOT NULL,
			phase TEXT NOT NULL,
			section TEXT,
			item_text TEXT NOT NULL,
			sort_order INTEGER NOT NULL,
			tags TEXT NOT NULL DEFAULT '[]',
			due_offset INTEGER,
			recurrence TEXT,
			completed INTEGER NOT NULL DEFAULT 0,
			completed_at DATETIME,
			linked_task_id TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE,
			FOREIGN KEY (source_document_id) REFERENCES checklist_documents(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_checklist_items_project ON checklist_items(project_id, sort_order)`,
		`CREATE INDEX IF NOT EXISTS idx_checklist_items_phase ON checklist_items(project_id, phase)`,
		`CREATE TABLE IF NOT EXISTS posting_log (
			id TEXT PRIMARY KEY,
			project_id TEXT NOT NULL,
			platform TEXT NOT NULL,
			date TEXT NOT NULL,
			count INTEGER NOT NULL DEFAULT 0 CHECK(count >= 0),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE,
			UNIQUE(project_id, platform, date)
		)`,
		`CREATE TABLE IF NOT EXISTS metrics (
			id TEXT PRIMARY KEY,
			project_id TEXT NOT NULL,
			date TEXT NOT NULL,
			metric_type TEXT NOT NULL,
			metric_name TEXT NOT NULL,
			value REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_metrics_project ON metrics(project_id, metric_type, metric_name)`,
	)
}

// migrationV2 adds the local task ledger that surfacing writes to.
func migrationV2(tx *sql.Tx) error {
	return execAll(tx,
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			notes TEXT,
			priority INTEGER NOT NULL DEFAULT 3 CHECK(priority BETWEEN 1 AND 5),
			status TEXT NOT NULL CHECK(status IN ('ready', 'complete')) DEFAULT 'ready',
			project_id TEXT,
			checklist_item_id TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			completed_at DATETIME
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status)`,
	)
}

// migrationV3 adds check-ins, per-item notes and the activity log.
func migrationV3(tx *sql.Tx) error {
	return execAll(tx,
		`ALTER TABLE checklist_items ADD COLUMN notes TEXT`,
		`CREATE TABLE IF NOT EXISTS check_ins (
			id TEXT PRIMARY KEY,
			project_id TEXT NOT NULL,
			date TEXT NOT NULL,
			notes TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_check_ins_project ON check_ins(project_id, date)`,
		`CREATE TABLE IF NOT EXISTS activity_log (
			id TEXT PRIMARY KEY,
			actor_id TEXT,
			entity_type TEXT NOT NULL,
			entity_id TEXT NOT NULL,
			action TEXT NOT NULL CHECK(action IN ('create', 'update', 'delete')),
			field_name TEXT,
			old_value TEXT,
			new_value TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_activity_log_entity ON activity_log(entity_type, entity_id)`,
		`CREATE INDEX IF NOT EXISTS idx_activity_log_created ON activity_log(created_at)`,
	)
}
