package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"kaizenblitz/internal/domain"
	"kaizenblitz/internal/repo"
)

// ErrValidation marks failures caught before any persistence attempt.
// Callers match it with errors.Is.
var ErrValidation = errors.New("validation failed")

// Engine owns the write paths: validation, the completion state machine, and
// the multi-entity sequences the repositories leave to callers.
type Engine struct {
	DB         *sql.DB
	Projects   *repo.ProjectRepo
	FiveWhys   *repo.FiveWhysRepo
	Diagrams   *repo.DiagramRepo
	Categories *repo.CategoryRepo
	Plans      *repo.ActionPlanRepo
	Tasks      *repo.TaskRepo
	Now        func() time.Time
}

func New(db *sql.DB) *Engine {
	e := &Engine{
		DB:         db,
		Projects:   repo.NewProjects(db),
		FiveWhys:   repo.NewFiveWhys(db),
		Diagrams:   repo.NewDiagrams(db),
		Categories: repo.NewCategories(db),
		Plans:      repo.NewActionPlans(db),
		Tasks:      repo.NewTasks(db),
		Now:        time.Now,
	}
	now := func() time.Time { return e.now() }
	e.Projects.Now = now
	e.FiveWhys.Now = now
	e.Diagrams.Now = now
	e.Categories.Now = now
	e.Plans.Now = now
	e.Tasks.Now = now
	return e
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Engine) today() string {
	return e.now().UTC().Format("2006-01-02")
}

// SaveProject validates and persists a project, creating it when it has no id
// yet. Defaults are filled in: start date today, status In Progress, phase
// Preparation.
func (e *Engine) SaveProject(ctx context.Context, p *domain.Project) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: project name is required", ErrValidation)
	}
	if p.StartDate == "" {
		p.StartDate = e.today()
	}
	if p.Status == "" {
		p.Status = domain.StatusInProgress
	}
	if p.CurrentPhase == "" {
		p.CurrentPhase = domain.PhasePreparation
	}
	if !domain.ValidProjectStatus(p.Status) {
		return fmt.Errorf("%w: unknown project status %q", ErrValidation, p.Status)
	}
	if !domain.ValidPhase(p.CurrentPhase) {
		return fmt.Errorf("%w: unknown phase %q", ErrValidation, p.CurrentPhase)
	}
	if p.ID == "" {
		return e.Projects.Create(ctx, p)
	}
	return e.Projects.Update(ctx, p)
}

// DeleteProject removes a project and, via the schema's cascading foreign
// keys, all of its five-whys, diagrams with categories, and plans with tasks.
func (e *Engine) DeleteProject(ctx context.Context, id string) (bool, error) {
	return e.Projects.Delete(ctx, id)
}

// SaveFiveWhys validates and persists a five-whys analysis.
func (e *Engine) SaveFiveWhys(ctx context.Context, f *domain.FiveWhys) error {
	if strings.TrimSpace(f.ProblemStatement) == "" {
		return fmt.Errorf("%w: problem statement is required", ErrValidation)
	}
	if err := e.requireProject(ctx, f.ProjectID); err != nil {
		return err
	}
	if f.ID == "" {
		return e.FiveWhys.Create(ctx, f)
	}
	return e.FiveWhys.Update(ctx, f)
}

// SaveDiagram validates and persists an Ishikawa diagram (without touching
// its categories; see ReplaceCategories).
func (e *Engine) SaveDiagram(ctx context.Context, d *domain.IshikawaDiagram) error {
	if strings.TrimSpace(d.ProblemStatement) == "" {
		return fmt.Errorf("%w: problem statement is required", ErrValidation)
	}
	if err := e.requireProject(ctx, d.ProjectID); err != nil {
		return err
	}
	if d.ID == "" {
		return e.Diagrams.Create(ctx, d)
	}
	return e.Diagrams.Update(ctx, d)
}

// ReplaceCategories swaps a diagram's category set for the given one inside a
// single transaction. Sort order is assigned from slice position.
func (e *Engine) ReplaceCategories(ctx context.Context, diagramID string, categories []domain.IshikawaCategory) error {
	d, err := e.Diagrams.GetByID(ctx, diagramID)
	if err != nil {
		return err
	}
	if d == nil {
		return fmt.Errorf("diagram %s: %w", diagramID, repo.ErrNotFound)
	}
	tx, err := e.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, `DELETE FROM ishikawa_categories WHERE diagram_id=?`, diagramID); err != nil {
		return fmt.Errorf("clear categories: %w", err)
	}
	for i := range categories {
		categories[i].ID = ""
		categories[i].CreatedAt = ""
		categories[i].DiagramID = diagramID
		categories[i].SortOrder = i
		if err := e.Categories.CreateTx(ctx, tx, &categories[i]); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// SaveActionPlan persists an action plan container.
func (e *Engine) SaveActionPlan(ctx context.Context, ap *domain.ActionPlan) error {
	if err := e.requireProject(ctx, ap.ProjectID); err != nil {
		return err
	}
	if ap.ID == "" {
		return e.Plans.Create(ctx, ap)
	}
	return e.Plans.Update(ctx, ap)
}

// SaveTask validates and persists an action plan task. Moving into status
// Completed stamps completed_date; moving out clears it.
func (e *Engine) SaveTask(ctx context.Context, t *domain.ActionPlanTask) error {
	if strings.TrimSpace(t.TaskDescription) == "" {
		return fmt.Errorf("%w: task description is required", ErrValidation)
	}
	if t.ActionPlanID == "" {
		return fmt.Errorf("%w: action plan is required", ErrValidation)
	}
	ap, err := e.Plans.GetByID(ctx, t.ActionPlanID)
	if err != nil {
		return err
	}
	if ap == nil {
		return fmt.Errorf("action plan %s: %w", t.ActionPlanID, repo.ErrNotFound)
	}
	if t.Status == "" {
		t.Status = domain.TaskNotStarted
	}
	if t.Priority == "" {
		t.Priority = domain.PriorityMedium
	}
	if !domain.ValidTaskStatus(t.Status) {
		return fmt.Errorf("%w: unknown task status %q", ErrValidation, t.Status)
	}
	if !domain.ValidPriority(t.Priority) {
		return fmt.Errorf("%w: unknown priority %q", ErrValidation, t.Priority)
	}
	if t.Status == domain.TaskCompleted {
		if t.CompletedDate == nil {
			today := e.today()
			t.CompletedDate = &today
		}
	} else {
		t.CompletedDate = nil
	}
	if t.ID == "" {
		return e.Tasks.Create(ctx, t)
	}
	return e.Tasks.Update(ctx, t)
}

// CompleteFiveWhys marks a persisted analysis complete. The transition is
// one-way and requires the entity to have been saved first. Progress is not
// recomputed here; callers invoke RecalculateProgress afterwards.
func (e *Engine) CompleteFiveWhys(ctx context.Context, f *domain.FiveWhys) error {
	if f.ID == "" {
		return fmt.Errorf("%w: save the analysis before marking it complete", ErrValidation)
	}
	f.IsCompleted = true
	return e.FiveWhys.Update(ctx, f)
}

// CompleteDiagram marks a persisted diagram complete. See CompleteFiveWhys.
func (e *Engine) CompleteDiagram(ctx context.Context, d *domain.IshikawaDiagram) error {
	if d.ID == "" {
		return fmt.Errorf("%w: save the diagram before marking it complete", ErrValidation)
	}
	d.IsCompleted = true
	return e.Diagrams.Update(ctx, d)
}

// CompleteActionPlan marks a persisted plan complete. See CompleteFiveWhys.
func (e *Engine) CompleteActionPlan(ctx context.Context, ap *domain.ActionPlan) error {
	if ap.ID == "" {
		return fmt.Errorf("%w: save the plan before marking it complete", ErrValidation)
	}
	ap.IsCompleted = true
	return e.Plans.Update(ctx, ap)
}

// RecalculateProgress recomputes a project's completion percentage from its
// current children and persists the cached value. The cache is refreshed only
// here; completing an artifact does not trigger it.
func (e *Engine) RecalculateProgress(ctx context.Context, projectID string) (int, error) {
	p, err := e.Projects.GetWithChildren(ctx, projectID)
	if err != nil {
		return 0, err
	}
	if p == nil {
		return 0, fmt.Errorf("project %s: %w", projectID, repo.ErrNotFound)
	}
	progress := p.CalculateProgress()
	if err := e.Projects.Update(ctx, p); err != nil {
		return 0, err
	}
	return progress, nil
}

func (e *Engine) requireProject(ctx context.Context, projectID string) error {
	if projectID == "" {
		return fmt.Errorf("%w: project is required", ErrValidation)
	}
	p, err := e.Projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("project %s: %w", projectID, repo.ErrNotFound)
	}
	return nil
}
