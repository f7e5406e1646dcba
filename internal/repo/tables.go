package repo

import (
	"database/sql"

	"kaizenblitz/internal/domain"
)

// Table bindings for each entity kind. Column order matches the Values and
// Scan implementations below; keep the three in sync when the schema moves.

type (
	FiveWhysRepo   = Repo[domain.FiveWhys, *domain.FiveWhys]
	DiagramRepo    = Repo[domain.IshikawaDiagram, *domain.IshikawaDiagram]
	CategoryRepo   = Repo[domain.IshikawaCategory, *domain.IshikawaCategory]
	ActionPlanRepo = Repo[domain.ActionPlan, *domain.ActionPlan]
	TaskRepo       = Repo[domain.ActionPlanTask, *domain.ActionPlanTask]
)

var projectTable = Table[domain.Project]{
	Name: "projects",
	Columns: []string{
		"id", "name", "description", "target_area", "start_date",
		"expected_completion_date", "actual_completion_date", "status",
		"current_phase", "progress_percentage", "team_members_json",
		"created_at", "updated_at",
	},
	Values: func(p *domain.Project) []any {
		return []any{
			p.ID, p.Name, nullable(p.Description), nullable(p.TargetArea), p.StartDate,
			nullableStringPtr(p.ExpectedCompletionDate), nullableStringPtr(p.ActualCompletionDate),
			p.Status, p.CurrentPhase, p.ProgressPercentage, nullable(p.TeamMembersJSON),
			p.CreatedAt, p.UpdatedAt,
		}
	},
	Scan: scanProject,
}

func scanProject(row RowScanner) (domain.Project, error) {
	var p domain.Project
	var desc, area, expected, actual, team sql.NullString
	err := row.Scan(&p.ID, &p.Name, &desc, &area, &p.StartDate,
		&expected, &actual, &p.Status, &p.CurrentPhase, &p.ProgressPercentage,
		&team, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return p, err
	}
	p.Description = desc.String
	p.TargetArea = area.String
	p.ExpectedCompletionDate = stringPtr(expected)
	p.ActualCompletionDate = stringPtr(actual)
	p.TeamMembersJSON = team.String
	return p, nil
}

var fiveWhysTable = Table[domain.FiveWhys]{
	Name: "five_whys",
	Columns: []string{
		"id", "project_id", "problem_statement",
		"why_1", "why_2", "why_3", "why_4", "why_5",
		"additional_whys_json", "root_cause", "is_completed",
		"created_at", "updated_at",
	},
	Values: func(f *domain.FiveWhys) []any {
		return []any{
			f.ID, f.ProjectID, f.ProblemStatement,
			nullableStringPtr(f.Why1), nullableStringPtr(f.Why2), nullableStringPtr(f.Why3),
			nullableStringPtr(f.Why4), nullableStringPtr(f.Why5),
			nullable(f.AdditionalWhysJSON), nullableStringPtr(f.RootCause), f.IsCompleted,
			f.CreatedAt, f.UpdatedAt,
		}
	},
	Scan: scanFiveWhys,
}

func scanFiveWhys(row RowScanner) (domain.FiveWhys, error) {
	var f domain.FiveWhys
	var why1, why2, why3, why4, why5, additional, rootCause sql.NullString
	err := row.Scan(&f.ID, &f.ProjectID, &f.ProblemStatement,
		&why1, &why2, &why3, &why4, &why5,
		&additional, &rootCause, &f.IsCompleted,
		&f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return f, err
	}
	f.Why1 = stringPtr(why1)
	f.Why2 = stringPtr(why2)
	f.Why3 = stringPtr(why3)
	f.Why4 = stringPtr(why4)
	f.Why5 = stringPtr(why5)
	f.AdditionalWhysJSON = additional.String
	f.RootCause = stringPtr(rootCause)
	return f, nil
}

var diagramTable = Table[domain.IshikawaDiagram]{
	Name: "ishikawa_diagrams",
	Columns: []string{
		"id", "project_id", "problem_statement", "is_completed",
		"created_at", "updated_at",
	},
	Values: func(d *domain.IshikawaDiagram) []any {
		return []any{d.ID, d.ProjectID, d.ProblemStatement, d.IsCompleted, d.CreatedAt, d.UpdatedAt}
	},
	Scan: scanDiagram,
}

func scanDiagram(row RowScanner) (domain.IshikawaDiagram, error) {
	var d domain.IshikawaDiagram
	err := row.Scan(&d.ID, &d.ProjectID, &d.ProblemStatement, &d.IsCompleted, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

var categoryTable = Table[domain.IshikawaCategory]{
	Name: "ishikawa_categories",
	Columns: []string{
		"id", "diagram_id", "name", "causes_json", "sort_order",
		"created_at", "updated_at",
	},
	Values: func(c *domain.IshikawaCategory) []any {
		return []any{c.ID, c.DiagramID, c.Name, nullable(c.CausesJSON), c.SortOrder, c.CreatedAt, c.UpdatedAt}
	},
	Scan: scanCategory,
}

func scanCategory(row RowScanner) (domain.IshikawaCategory, error) {
	var c domain.IshikawaCategory
	var causes sql.NullString
	err := row.Scan(&c.ID, &c.DiagramID, &c.Name, &causes, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return c, err
	}
	c.CausesJSON = causes.String
	return c, nil
}

var actionPlanTable = Table[domain.ActionPlan]{
	Name: "action_plans",
	Columns: []string{
		"id", "project_id", "is_completed", "created_at", "updated_at",
	},
	Values: func(a *domain.ActionPlan) []any {
		return []any{a.ID, a.ProjectID, a.IsCompleted, a.CreatedAt, a.UpdatedAt}
	},
	Scan: scanActionPlan,
}

func scanActionPlan(row RowScanner) (domain.ActionPlan, error) {
	var a domain.ActionPlan
	err := row.Scan(&a.ID, &a.ProjectID, &a.IsCompleted, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

var taskTable = Table[domain.ActionPlanTask]{
	Name: "action_plan_tasks",
	Columns: []string{
		"id", "action_plan_id", "task_description", "responsible_person",
		"deadline", "status", "priority", "notes", "completed_date",
		"created_at", "updated_at",
	},
	Values: func(t *domain.ActionPlanTask) []any {
		return []any{
			t.ID, t.ActionPlanID, t.TaskDescription, nullableStringPtr(t.ResponsiblePerson),
			nullableStringPtr(t.Deadline), t.Status, t.Priority, nullableStringPtr(t.Notes),
			nullableStringPtr(t.CompletedDate), t.CreatedAt, t.UpdatedAt,
		}
	},
	Scan: scanTask,
}

func scanTask(row RowScanner) (domain.ActionPlanTask, error) {
	var t domain.ActionPlanTask
	var person, deadline, notes, completed sql.NullString
	err := row.Scan(&t.ID, &t.ActionPlanID, &t.TaskDescription, &person,
		&deadline, &t.Status, &t.Priority, &notes, &completed,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return t, err
	}
	t.ResponsiblePerson = stringPtr(person)
	t.Deadline = stringPtr(deadline)
	t.Notes = stringPtr(notes)
	t.CompletedDate = stringPtr(completed)
	return t, nil
}

// NewFiveWhys builds the five-whys repository.
func NewFiveWhys(db *sql.DB) *FiveWhysRepo {
	return New[domain.FiveWhys, *domain.FiveWhys](db, fiveWhysTable)
}

// NewDiagrams builds the Ishikawa diagram repository.
func NewDiagrams(db *sql.DB) *DiagramRepo {
	return New[domain.IshikawaDiagram, *domain.IshikawaDiagram](db, diagramTable)
}

// NewCategories builds the Ishikawa category repository.
func NewCategories(db *sql.DB) *CategoryRepo {
	return New[domain.IshikawaCategory, *domain.IshikawaCategory](db, categoryTable)
}

// NewActionPlans builds the action plan repository.
func NewActionPlans(db *sql.DB) *ActionPlanRepo {
	return New[domain.ActionPlan, *domain.ActionPlan](db, actionPlanTable)
}

// NewTasks builds the action plan task repository.
func NewTasks(db *sql.DB) *TaskRepo {
	return New[domain.ActionPlanTask, *domain.ActionPlanTask](db, taskTable)
}
