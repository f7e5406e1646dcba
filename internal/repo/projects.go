package repo

import (
	"context"
	"database/sql"
	"fmt"

	"kaizenblitz/internal/domain"
)

// ProjectRepo layers project-specific read conveniences on the generic
// repository. None of the additional methods mutate.
type ProjectRepo struct {
	*Repo[domain.Project, *domain.Project]

	fiveWhys   *FiveWhysRepo
	diagrams   *DiagramRepo
	categories *CategoryRepo
	plans      *ActionPlanRepo
	tasks      *TaskRepo
}

// NewProjects builds the project repository.
func NewProjects(db *sql.DB) *ProjectRepo {
	return &ProjectRepo{
		Repo:       New[domain.Project, *domain.Project](db, projectTable),
		fiveWhys:   NewFiveWhys(db),
		diagrams:   NewDiagrams(db),
		categories: NewCategories(db),
		plans:      NewActionPlans(db),
		tasks:      NewTasks(db),
	}
}

// GetWithChildren returns the project with all three child collections
// eagerly loaded, or nil when absent. Categories come back sorted by their
// display order and tasks by creation time, the order exporters expect.
func (r *ProjectRepo) GetWithChildren(ctx context.Context, id string) (*domain.Project, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil || p == nil {
		return p, err
	}
	p.FiveWhys, err = r.fiveWhys.queryMany(ctx, r.DB,
		`SELECT `+r.fiveWhys.selectList()+` FROM five_whys WHERE project_id=? ORDER BY created_at ASC, id ASC`, id)
	if err != nil {
		return nil, err
	}
	p.Diagrams, err = r.diagrams.queryMany(ctx, r.DB,
		`SELECT `+r.diagrams.selectList()+` FROM ishikawa_diagrams WHERE project_id=? ORDER BY created_at ASC, id ASC`, id)
	if err != nil {
		return nil, err
	}
	for i := range p.Diagrams {
		p.Diagrams[i].Categories, err = r.categories.queryMany(ctx, r.DB,
			`SELECT `+r.categories.selectList()+` FROM ishikawa_categories WHERE diagram_id=? ORDER BY sort_order ASC, id ASC`, p.Diagrams[i].ID)
		if err != nil {
			return nil, err
		}
	}
	p.ActionPlans, err = r.plans.queryMany(ctx, r.DB,
		`SELECT `+r.plans.selectList()+` FROM action_plans WHERE project_id=? ORDER BY created_at ASC, id ASC`, id)
	if err != nil {
		return nil, err
	}
	for i := range p.ActionPlans {
		p.ActionPlans[i].Tasks, err = r.tasks.queryMany(ctx, r.DB,
			`SELECT `+r.tasks.selectList()+` FROM action_plan_tasks WHERE action_plan_id=? ORDER BY created_at ASC, id ASC`, p.ActionPlans[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

// ByStatus returns projects with the given status, most recently updated
// first.
func (r *ProjectRepo) ByStatus(ctx context.Context, status string) ([]domain.Project, error) {
	return r.queryMany(ctx, r.DB,
		`SELECT `+r.selectList()+` FROM projects WHERE status=? ORDER BY updated_at DESC, id DESC`, status)
}

// Completed returns all completed projects, most recently updated first.
func (r *ProjectRepo) Completed(ctx context.Context) ([]domain.Project, error) {
	return r.ByStatus(ctx, domain.StatusCompleted)
}

// InProgress returns all in-progress projects, most recently updated first.
func (r *ProjectRepo) InProgress(ctx context.Context) ([]domain.Project, error) {
	return r.ByStatus(ctx, domain.StatusInProgress)
}

// SearchByName returns projects whose name contains the term,
// case-insensitively, most recently updated first.
func (r *ProjectRepo) SearchByName(ctx context.Context, name string) ([]domain.Project, error) {
	return r.queryMany(ctx, r.DB,
		`SELECT `+r.selectList()+` FROM projects WHERE name LIKE ? COLLATE NOCASE ORDER BY updated_at DESC, id DESC`,
		"%"+name+"%")
}

// Recent returns the limit most recently updated projects.
func (r *ProjectRepo) Recent(ctx context.Context, limit int) ([]domain.Project, error) {
	if limit <= 0 {
		limit = 10
	}
	return r.queryMany(ctx, r.DB,
		fmt.Sprintf(`SELECT %s FROM projects ORDER BY updated_at DESC, id DESC LIMIT ?`, r.selectList()), limit)
}
