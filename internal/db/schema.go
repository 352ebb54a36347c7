package db

import "database/sql"

// SchemaSQL is the complete schema for fresh launchpad installs.
// This schema reflects the current state after all migrations.
//
// This is the single source of truth for the database schema. Repository tests
// load it via GetSchemaSQL() instead of hardcoding CREATE TABLE statements, so
// a column referenced by repository code but missing here fails immediately
// with "no such column".
//
// When adding new columns or tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
//  3. TestMigrationsMatchSchema keeps both in step
const SchemaSQL = `
-- Checklist documents (playbook templates)
CREATE TABLE IF NOT EXISTS checklist_documents (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	doc_type TEXT NOT NULL CHECK(doc_type IN ('engine', 'playbook', 'operations')),
	raw_content TEXT NOT NULL,
	version TEXT NOT NULL DEFAULT '1',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_checklist_documents_type ON checklist_documents(doc_type);

-- Launch projects composed from one or more documents
CREATE TABLE IF NOT EXISTS projects (
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
);

CREATE INDEX IF NOT EXISTS idx_projects_status ON projects(status);

-- Checklist items copied from documents at compose time
CREATE TABLE IF NOT EXISTS checklist_items (
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
	notes TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE,
	FOREIGN KEY (source_document_id) REFERENCES checklist_documents(id)
);

CREATE INDEX IF NOT EXISTS idx_checklist_items_project ON checklist_items(project_id, sort_order);
CREATE INDEX IF NOT EXISTS idx_checklist_items_phase ON checklist_items(project_id, phase);

-- Posting log (one row per project/platform/day)
CREATE TABLE IF NOT EXISTS posting_log (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	platform TEXT NOT NULL,
	date TEXT NOT NULL,
	count INTEGER NOT NULL DEFAULT 0 CHECK(count >= 0),
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE,
	UNIQUE(project_id, platform, date)
);

-- Metric entries
CREATE TABLE IF NOT EXISTS metrics (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	date TEXT NOT NULL,
	metric_type TEXT NOT NULL,
	metric_name TEXT NOT NULL,
	value REAL NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_metrics_project ON metrics(project_id, metric_type, metric_name);

-- Tasks (local ledger for surfaced checklist items)
CREATE TABLE IF NOT EXISTS tasks (
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
);

CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id);
CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);

-- Check-ins
CREATE TABLE IF NOT EXISTS check_ins (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	date TEXT NOT NULL,
	notes TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_check_ins_project ON check_ins(project_id, date);

-- Activity log (audit trail)
CREATE TABLE IF NOT EXISTS activity_log (
	id TEXT PRIMARY KEY,
	actor_id TEXT,
	entity_type TEXT NOT NULL,
	entity_id TEXT NOT NULL,
	action TEXT NOT NULL CHECK(action IN ('create', 'update', 'delete')),
	field_name TEXT,
	old_value TEXT,
	new_value TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_activity_log_entity ON activity_log(entity_type, entity_id);
CREATE INDEX IF NOT EXISTS idx_activity_log_created ON activity_log(created_at);
`

// InitSchema creates the database schema
func InitSchema(db *sql.DB) error {
	// Check if schema_version table exists to determine if this is a fresh install
	var tableCount int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount > 0 {
		// schema_version table exists - run any pending migrations
		return RunMigrations(db)
	}

	// Fresh install - create the current schema directly and mark every
	// migration as applied.
	if _, err := db.Exec(SchemaSQL); err != nil {
		return err
	}
	if err := createVersionTable(db); err != nil {
		return err
	}
	for _, m := range migrations {
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return err
		}
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
