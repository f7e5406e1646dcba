package schema

import (
	"database/sql"
	"fmt"
)

// Init creates all tables if absent. It is idempotent and runs at process
// start; there is no schema versioning.
func Init(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return tx.Commit()
}

var statements = []string{
	`CREATE TABLE IF NOT EXISTS projects (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT,
	target_area TEXT,
	start_date TEXT NOT NULL,
	expected_completion_date TEXT,
	actual_completion_date TEXT,
	status TEXT NOT NULL DEFAULT 'In Progress',
	current_phase TEXT NOT NULL DEFAULT 'Preparation',
	progress_percentage INTEGER NOT NULL DEFAULT 0,
	team_members_json TEXT,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`,
	`CREATE TABLE IF NOT EXISTS five_whys (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	problem_statement TEXT NOT NULL,
	why_1 TEXT,
	why_2 TEXT,
	why_3 TEXT,
	why_4 TEXT,
	why_5 TEXT,
	additional_whys_json TEXT,
	root_cause TEXT,
	is_completed INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`,
	`CREATE INDEX IF NOT EXISTS idx_five_whys_project ON five_whys(project_id);`,
	`CREATE TABLE IF NOT EXISTS ishikawa_diagrams (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	problem_statement TEXT NOT NULL,
	is_completed INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`,
	`CREATE INDEX IF NOT EXISTS idx_ishikawa_diagrams_project ON ishikawa_diagrams(project_id);`,
	`CREATE TABLE IF NOT EXISTS ishikawa_categories (
	id TEXT PRIMARY KEY,
	diagram_id TEXT NOT NULL REFERENCES ishikawa_diagrams(id) ON DELETE CASCADE,
	name TEXT NOT NULL,
	causes_json TEXT,
	sort_order INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`,
	`CREATE INDEX IF NOT EXISTS idx_ishikawa_categories_diagram ON ishikawa_categories(diagram_id);`,
	`CREATE TABLE IF NOT EXISTS action_plans (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	is_completed INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`,
	`CREATE INDEX IF NOT EXISTS idx_action_plans_project ON action_plans(project_id);`,
	`CREATE TABLE IF NOT EXISTS action_plan_tasks (
	id TEXT PRIMARY KEY,
	action_plan_id TEXT NOT NULL REFERENCES action_plans(id) ON DELETE CASCADE,
	task_description TEXT NOT NULL,
	responsible_person TEXT,
	deadline TEXT,
	status TEXT NOT NULL DEFAULT 'Not Started',
	priority TEXT NOT NULL DEFAULT 'Medium',
	notes TEXT,
	completed_date TEXT,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`,
	`CREATE INDEX IF NOT EXISTS idx_action_plan_tasks_plan ON action_plan_tasks(action_plan_id);`,
}
