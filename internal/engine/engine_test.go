package engine_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"kaizenblitz/internal/db"
	"kaizenblitz/internal/domain"
	"kaizenblitz/internal/engine"
	"kaizenblitz/internal/repo"
	"kaizenblitz/internal/schema"
	"kaizenblitz/internal/seed"
)

type testEnv struct {
	Engine *engine.Engine
	Ctx    context.Context
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	conn, err := db.Open(db.Config{Workspace: t.TempDir()})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := schema.Init(conn); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	eng := engine.New(conn)
	clock := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	eng.Now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return testEnv{Engine: eng, Ctx: context.Background()}
}

func (env testEnv) mustProject(t *testing.T, name string) *domain.Project {
	t.Helper()
	p := &domain.Project{Name: name}
	if err := env.Engine.SaveProject(env.Ctx, p); err != nil {
		t.Fatalf("save project: %v", err)
	}
	return p
}

func TestSaveProjectDefaults(t *testing.T) {
	env := newTestEnv(t)
	p := env.mustProject(t, "Defaults")
	if p.StartDate != "2024-03-15" {
		t.Fatalf("start date = %q", p.StartDate)
	}
	if p.Status != domain.StatusInProgress {
		t.Fatalf("status = %q", p.Status)
	}
	if p.CurrentPhase != domain.PhasePreparation {
		t.Fatalf("phase = %q", p.CurrentPhase)
	}
	if p.ID == "" {
		t.Fatalf("id not assigned")
	}
}

func TestSaveProjectValidation(t *testing.T) {
	env := newTestEnv(t)
	for name, p := range map[string]*domain.Project{
		"empty name":     {Name: "   "},
		"unknown status": {Name: "x", Status: "Done"},
		"unknown phase":  {Name: "x", CurrentPhase: "Kickoff"},
		"lowercase enum": {Name: "x", Status: "completed"},
	} {
		err := env.Engine.SaveProject(env.Ctx, p)
		if !errors.Is(err, engine.ErrValidation) {
			t.Fatalf("%s: err = %v, want ErrValidation", name, err)
		}
	}
}

func TestSaveFiveWhysRequiresExistingProject(t *testing.T) {
	env := newTestEnv(t)
	f := &domain.FiveWhys{ProblemStatement: "problem"}
	if err := env.Engine.SaveFiveWhys(env.Ctx, f); !errors.Is(err, engine.ErrValidation) {
		t.Fatalf("no project id: %v", err)
	}
	f.ProjectID = "ghost"
	if err := env.Engine.SaveFiveWhys(env.Ctx, f); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("ghost project: %v", err)
	}
	f.ProblemStatement = ""
	if err := env.Engine.SaveFiveWhys(env.Ctx, f); !errors.Is(err, engine.ErrValidation) {
		t.Fatalf("empty problem: %v", err)
	}

	p := env.mustProject(t, "Host")
	good := &domain.FiveWhys{ProjectID: p.ID, ProblemStatement: "problem"}
	if err := env.Engine.SaveFiveWhys(env.Ctx, good); err != nil {
		t.Fatalf("valid save: %v", err)
	}
	if good.ID == "" {
		t.Fatalf("id not assigned")
	}
}

func TestCompleteRequiresPersistedEntity(t *testing.T) {
	env := newTestEnv(t)
	if err := env.Engine.CompleteFiveWhys(env.Ctx, &domain.FiveWhys{}); !errors.Is(err, engine.ErrValidation) {
		t.Fatalf("five whys: %v", err)
	}
	if err := env.Engine.CompleteDiagram(env.Ctx, &domain.IshikawaDiagram{}); !errors.Is(err, engine.ErrValidation) {
		t.Fatalf("diagram: %v", err)
	}
	if err := env.Engine.CompleteActionPlan(env.Ctx, &domain.ActionPlan{}); !errors.Is(err, engine.ErrValidation) {
		t.Fatalf("plan: %v", err)
	}
}

func TestCompleteIsOneWayAndPersisted(t *testing.T) {
	env := newTestEnv(t)
	p := env.mustProject(t, "Completion")
	f := &domain.FiveWhys{ProjectID: p.ID, ProblemStatement: "problem"}
	if err := env.Engine.SaveFiveWhys(env.Ctx, f); err != nil {
		t.Fatal(err)
	}
	if err := env.Engine.CompleteFiveWhys(env.Ctx, f); err != nil {
		t.Fatalf("complete: %v", err)
	}
	got, err := env.Engine.FiveWhys.GetByID(env.Ctx, f.ID)
	if err != nil || got == nil {
		t.Fatalf("reload: %v", err)
	}
	if !got.IsCompleted {
		t.Fatalf("completion not persisted")
	}
	// completing again is a no-op, not an error
	if err := env.Engine.CompleteFiveWhys(env.Ctx, got); err != nil {
		t.Fatalf("re-complete: %v", err)
	}
}

func TestCompleteDoesNotRefreshProgressCache(t *testing.T) {
	env := newTestEnv(t)
	p := env.mustProject(t, "Stale cache")
	f := &domain.FiveWhys{ProjectID: p.ID, ProblemStatement: "problem"}
	if err := env.Engine.SaveFiveWhys(env.Ctx, f); err != nil {
		t.Fatal(err)
	}
	if err := env.Engine.CompleteFiveWhys(env.Ctx, f); err != nil {
		t.Fatal(err)
	}
	got, err := env.Engine.Projects.GetByID(env.Ctx, p.ID)
	if err != nil || got == nil {
		t.Fatalf("reload project: %v", err)
	}
	if got.ProgressPercentage != 0 {
		t.Fatalf("cache refreshed eagerly: %d", got.ProgressPercentage)
	}
	progress, err := env.Engine.RecalculateProgress(env.Ctx, p.ID)
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	if progress != 100 {
		t.Fatalf("progress = %d, want 100", progress)
	}
	got, _ = env.Engine.Projects.GetByID(env.Ctx, p.ID)
	if got.ProgressPercentage != 100 {
		t.Fatalf("cache not persisted: %d", got.ProgressPercentage)
	}
}

func TestRecalculateProgressTruncatesAndHandlesMissing(t *testing.T) {
	env := newTestEnv(t)
	p := env.mustProject(t, "Two thirds")
	for i, complete := range []bool{true, true, false} {
		f := &domain.FiveWhys{ProjectID: p.ID, ProblemStatement: "problem"}
		if err := env.Engine.SaveFiveWhys(env.Ctx, f); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
		if complete {
			if err := env.Engine.CompleteFiveWhys(env.Ctx, f); err != nil {
				t.Fatal(err)
			}
		}
	}
	progress, err := env.Engine.RecalculateProgress(env.Ctx, p.ID)
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	if progress != 66 {
		t.Fatalf("progress = %d, want 66", progress)
	}

	if _, err := env.Engine.RecalculateProgress(env.Ctx, "missing"); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("missing project: %v", err)
	}
}

func TestRecalculateProgressMixedArtifactKinds(t *testing.T) {
	env := newTestEnv(t)
	p := env.mustProject(t, "Half done")
	f := &domain.FiveWhys{ProjectID: p.ID, ProblemStatement: "problem"}
	if err := env.Engine.SaveFiveWhys(env.Ctx, f); err != nil {
		t.Fatal(err)
	}
	if err := env.Engine.CompleteFiveWhys(env.Ctx, f); err != nil {
		t.Fatal(err)
	}
	d := &domain.IshikawaDiagram{ProjectID: p.ID, ProblemStatement: "problem"}
	if err := env.Engine.SaveDiagram(env.Ctx, d); err != nil {
		t.Fatal(err)
	}
	progress, err := env.Engine.RecalculateProgress(env.Ctx, p.ID)
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	if progress != 50 {
		t.Fatalf("progress = %d, want 50", progress)
	}
}

func TestReplaceCategoriesSwapsSetAtomically(t *testing.T) {
	env := newTestEnv(t)
	p := env.mustProject(t, "Fishbone")
	d := &domain.IshikawaDiagram{ProjectID: p.ID, ProblemStatement: "problem"}
	if err := env.Engine.SaveDiagram(env.Ctx, d); err != nil {
		t.Fatal(err)
	}
	first := []domain.IshikawaCategory{{Name: "People"}, {Name: "Process"}}
	if err := env.Engine.ReplaceCategories(env.Ctx, d.ID, first); err != nil {
		t.Fatalf("first replace: %v", err)
	}
	second := []domain.IshikawaCategory{{Name: "Equipment"}, {Name: "Materials"}, {Name: "Management"}}
	if err := env.Engine.ReplaceCategories(env.Ctx, d.ID, second); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	loaded, err := env.Engine.Projects.GetWithChildren(env.Ctx, p.ID)
	if err != nil || loaded == nil || len(loaded.Diagrams) != 1 {
		t.Fatalf("reload: %v", err)
	}
	cats := loaded.Diagrams[0].Categories
	if len(cats) != 3 {
		t.Fatalf("categories = %d, want 3 (old set not replaced?)", len(cats))
	}
	for i, want := range []string{"Equipment", "Materials", "Management"} {
		if cats[i].Name != want || cats[i].SortOrder != i {
			t.Fatalf("cats[%d] = %q/%d, want %q/%d", i, cats[i].Name, cats[i].SortOrder, want, i)
		}
	}

	if err := env.Engine.ReplaceCategories(env.Ctx, "no-such-diagram", first); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("unknown diagram: %v", err)
	}
}

func TestSaveTaskCompletedDateLifecycle(t *testing.T) {
	env := newTestEnv(t)
	p := env.mustProject(t, "Tasks")
	ap := &domain.ActionPlan{ProjectID: p.ID}
	if err := env.Engine.SaveActionPlan(env.Ctx, ap); err != nil {
		t.Fatal(err)
	}

	task := &domain.ActionPlanTask{ActionPlanID: ap.ID, TaskDescription: "tighten bolts"}
	if err := env.Engine.SaveTask(env.Ctx, task); err != nil {
		t.Fatalf("save: %v", err)
	}
	if task.Status != domain.TaskNotStarted || task.Priority != domain.PriorityMedium {
		t.Fatalf("defaults = %q/%q", task.Status, task.Priority)
	}
	if task.CompletedDate != nil {
		t.Fatalf("completed date set on open task")
	}

	task.Status = domain.TaskCompleted
	if err := env.Engine.SaveTask(env.Ctx, task); err != nil {
		t.Fatal(err)
	}
	if task.CompletedDate == nil || *task.CompletedDate != "2024-03-15" {
		t.Fatalf("completed date = %v", task.CompletedDate)
	}

	task.Status = domain.TaskInProgress
	if err := env.Engine.SaveTask(env.Ctx, task); err != nil {
		t.Fatal(err)
	}
	if task.CompletedDate != nil {
		t.Fatalf("completed date not cleared on reopen")
	}

	bad := &domain.ActionPlanTask{ActionPlanID: ap.ID, TaskDescription: "x", Status: "Paused"}
	if err := env.Engine.SaveTask(env.Ctx, bad); !errors.Is(err, engine.ErrValidation) {
		t.Fatalf("unknown status: %v", err)
	}
	orphan := &domain.ActionPlanTask{ActionPlanID: "ghost", TaskDescription: "x"}
	if err := env.Engine.SaveTask(env.Ctx, orphan); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("orphan task: %v", err)
	}
}

func TestDeleteProjectCascades(t *testing.T) {
	env := newTestEnv(t)
	p := env.mustProject(t, "Cascade")
	f := &domain.FiveWhys{ProjectID: p.ID, ProblemStatement: "problem"}
	if err := env.Engine.SaveFiveWhys(env.Ctx, f); err != nil {
		t.Fatal(err)
	}
	found, err := env.Engine.DeleteProject(env.Ctx, p.ID)
	if err != nil || !found {
		t.Fatalf("delete: found=%v err=%v", found, err)
	}
	left, err := env.Engine.FiveWhys.GetByID(env.Ctx, f.ID)
	if err != nil {
		t.Fatal(err)
	}
	if left != nil {
		t.Fatalf("child survived project delete")
	}
}

func TestSeedSampleProjects(t *testing.T) {
	env := newTestEnv(t)
	projects, err := seed.SampleProjects(env.Ctx, env.Engine)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if len(projects) != 3 {
		t.Fatalf("seeded %d projects, want 3", len(projects))
	}
	all, err := env.Engine.Projects.GetAll(env.Ctx)
	if err != nil || len(all) != 3 {
		t.Fatalf("persisted %d projects (err %v)", len(all), err)
	}
	for _, p := range projects {
		if p.ID == "" || p.Name == "" {
			t.Fatalf("incomplete sample project: %+v", p)
		}
		if !domain.ValidProjectStatus(p.Status) {
			t.Fatalf("sample status %q invalid", p.Status)
		}
	}
}
