package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"kaizenblitz/internal/config"
	"kaizenblitz/internal/db"
	"kaizenblitz/internal/domain"
	"kaizenblitz/internal/engine"
	"kaizenblitz/internal/repo"
	"kaizenblitz/internal/schema"
	"kaizenblitz/internal/seed"
)

var rootCmd = &cobra.Command{
	Use:   "kb",
	Short: "Kaizen Blitz CLI",
	Long: `Kaizen Blitz tracks structured improvement projects and their analysis tools.
Each project owns three kinds of artifacts:
- Five Whys: iterative root-cause analysis (five fixed whys plus extras).
- Ishikawa: fishbone diagram grouping causes under six standard headings.
- Action Plan: assigned, deadline-bound remediation tasks.
Project progress is the share of artifacts marked complete; run 'kb progress'
after completing an artifact to refresh the cached percentage.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		workspace := viper.GetString("workspace")
		if _, err := db.EnsureWorkspace(workspace); err != nil {
			return err
		}
		return nil
	},
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("KAIZEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().StringP("workspace", "w", ".", "workspace directory")
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	_ = viper.BindPFlag("workspace", rootCmd.PersistentFlags().Lookup("workspace"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func registerCommands() {
	rootCmd.AddCommand(projectCmd())
	rootCmd.AddCommand(fiveWhysCmd())
	rootCmd.AddCommand(ishikawaCmd())
	rootCmd.AddCommand(planCmd())
	rootCmd.AddCommand(progressCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(configCmd())
}

// --- project ---

func projectCmd() *cobra.Command {
	prj := &cobra.Command{Use: "project", Short: "Manage projects"}
	prj.AddCommand(projectListCmd())
	prj.AddCommand(projectCreateCmd())
	prj.AddCommand(projectShowCmd())
	prj.AddCommand(projectUpdateCmd())
	prj.AddCommand(projectDeleteCmd())
	prj.AddCommand(projectSearchCmd())
	prj.AddCommand(projectRecentCmd())
	return prj
}

func projectListCmd() *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e *engine.Engine) error {
				var items []domain.Project
				var err error
				if status != "" {
					items, err = e.Projects.ByStatus(ctx, status)
				} else {
					items, err = e.Projects.GetAll(ctx)
				}
				if err != nil {
					return err
				}
				return printProjects(items)
			})
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "filter by status (In Progress, Completed, On Hold, Cancelled)")
	return cmd
}

func projectCreateCmd() *cobra.Command {
	var name, desc, area, start, expected string
	var team []string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e *engine.Engine) error {
				p := domain.Project{
					Name:        name,
					Description: desc,
					TargetArea:  area,
					StartDate:   start,
				}
				if expected != "" {
					p.ExpectedCompletionDate = &expected
				}
				if len(team) > 0 {
					p.SetTeamMemberList(team)
				}
				if err := e.SaveProject(ctx, &p); err != nil {
					return err
				}
				return printJSONOrTable(p)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "project name")
	cmd.Flags().StringVar(&desc, "description", "", "description")
	cmd.Flags().StringVar(&area, "target-area", "", "target area")
	cmd.Flags().StringVar(&start, "start", "", "start date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&expected, "expected", "", "expected completion date (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&team, "member", nil, "team member (repeatable)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func projectShowCmd() *cobra.Command {
	var full bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e *engine.Engine) error {
				var p *domain.Project
				var err error
				if full {
					p, err = e.Projects.GetWithChildren(ctx, args[0])
				} else {
					p, err = e.Projects.GetByID(ctx, args[0])
				}
				if err != nil {
					return err
				}
				if p == nil {
					return fmt.Errorf("project %s: %w", args[0], repo.ErrNotFound)
				}
				return printJSONOrTable(p)
			})
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "include five-whys, diagrams, and action plans")
	return cmd
}

func projectUpdateCmd() *cobra.Command {
	var name, desc, area, status, phase, expected, actual string
	var team []string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e *engine.Engine) error {
				p, err := e.Projects.GetByID(ctx, args[0])
				if err != nil {
					return err
				}
				if p == nil {
					return fmt.Errorf("project %s: %w", args[0], repo.ErrNotFound)
				}
				if cmd.Flags().Changed("name") {
					p.Name = name
				}
				if cmd.Flags().Changed("description") {
					p.Description = desc
				}
				if cmd.Flags().Changed("target-area") {
					p.TargetArea = area
				}
				if cmd.Flags().Changed("status") {
					p.Status = status
				}
				if cmd.Flags().Changed("phase") {
					p.CurrentPhase = phase
				}
				if cmd.Flags().Changed("expected") {
					p.ExpectedCompletionDate = optionalString(expected)
				}
				if cmd.Flags().Changed("actual") {
					p.ActualCompletionDate = optionalString(actual)
				}
				if cmd.Flags().Changed("member") {
					p.SetTeamMemberList(team)
				}
				if err := e.SaveProject(ctx, p); err != nil {
					return err
				}
				return printJSONOrTable(p)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "project name")
	cmd.Flags().StringVar(&desc, "description", "", "description")
	cmd.Flags().StringVar(&area, "target-area", "", "target area")
	cmd.Flags().StringVar(&status, "status", "", "status (In Progress, Completed, On Hold, Cancelled)")
	cmd.Flags().StringVar(&phase, "phase", "", "phase (Preparation, Analysis, Improvement, Implementation, Review)")
	cmd.Flags().StringVar(&expected, "expected", "", "expected completion date")
	cmd.Flags().StringVar(&actual, "actual", "", "actual completion date")
	cmd.Flags().StringArrayVar(&team, "member", nil, "team member (repeatable, replaces the list)")
	return cmd
}

func projectDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project and all of its artifacts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e *engine.Engine) error {
				found, err := e.DeleteProject(ctx, args[0])
				if err != nil {
					return err
				}
				if !found {
					fmt.Println("nothing to delete")
					return nil
				}
				fmt.Println("deleted", args[0])
				return nil
			})
		},
	}
	return cmd
}

func projectSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search projects by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e *engine.Engine) error {
				items, err := e.Projects.SearchByName(ctx, args[0])
				if err != nil {
					return err
				}
				return printProjects(items)
			})
		},
	}
	return cmd
}

func projectRecentCmd() *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List the most recently updated projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e *engine.Engine) error {
				items, err := e.Projects.Recent(ctx, n)
				if err != nil {
					return err
				}
				return printProjects(items)
			})
		},
	}
	cmd.Flags().IntVar(&n, "n", 10, "number of projects")
	return cmd
}

// --- five whys ---

func fiveWhysCmd() *cobra.Command {
	fw := &cobra.Command{Use: "fivewhys", Short: "Manage five-whys analyses"}
	fw.AddCommand(fiveWhysCreateCmd())
	fw.AddCommand(fiveWhysShowCmd())
	fw.AddCommand(fiveWhysListCmd())
	fw.AddCommand(fiveWhysSetWhyCmd())
	fw.AddCommand(fiveWhysAddWhyCmd())
	fw.AddCommand(fiveWhysRootCauseCmd())
	fw.AddCommand(fiveWhysCompleteCmd())
	return fw
}

func fiveWhysCreateCmd() *cobra.Command {
	var projectID, problem string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a five-whys analysis",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e *engine.Engine) error {
				f := domain.FiveWhys{ProjectID: projectID, ProblemStatement: problem}
				if err := e.SaveFiveWhys(ctx, &f); err != nil {
					return err
				}
				return printJSONOrTable(f)
			})
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "project id")
	cmd.Flags().StringVar(&problem, "problem", "", "problem statement")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("problem")
	return cmd
}

func fiveWhysShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a five-whys analysis with the chain in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e *engine.Engine) error {
				f, err := e.FiveWhys.GetByID(ctx, args[0])
				if err != nil {
					return err
				}
				if f == nil {
					return fmt.Errorf("five-whys %s: %w", args[0], repo.ErrNotFound)
				}
				if viper.GetBool("json") {
					return printJSON(f)
				}
				fmt.Println("Problem:", f.ProblemStatement)
				for i, why := range f.AllWhys() {
					fmt.Printf("Why %d: %s\n", i+1, why)
				}
				if f.RootCause != nil {
					fmt.Println("Root cause:", *f.RootCause)
				}
				fmt.Println("Completed:", f.IsCompleted)
				return nil
			})
		},
	}
	return cmd
}

func fiveWhysListCmd() *cobra.Command {
	var projectID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List five-whys analyses for a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e *engine.Engine) error {
				items, err := e.FiveWhys.Search(ctx, map[string]any{"project_id": projectID})
				if err != nil {
					return err
				}
				return printJSONOrTable(items)
			})
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "project id")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func fiveWhysSetWhyCmd() *cobra.Command {
	var n int
	var text string
	cmd := &cobra.Command{
		Use:   "set-why <id>",
		Short: "Set one of the five fixed why slots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e *engine.Engine) error {
				f, err := e.FiveWhys.GetByID(ctx, args[0])
				if err != nil {
					return err
				}
				if f == nil {
					return fmt.Errorf("five-whys %s: %w", args[0], repo.ErrNotFound)
				}
				if !f.SetWhy(n, text) {
					return fmt.Errorf("why slot must be 1-5, got %d", n)
				}
				if err := e.SaveFiveWhys(ctx, f); err != nil {
					return err
				}
				return printJSONOrTable(f)
			})
		},
	}
	cmd.Flags().IntVar(&n, "n", 0, "slot number (1-5)")
	cmd.Flags().StringVar(&text, "text", "", "why statement (empty clears the slot)")
	_ = cmd.MarkFlagRequired("n")
	return cmd
}

func fiveWhysAddWhyCmd() *cobra.Command {
	var text string
	cmd := &cobra.Command{
		Use:   "add-why <id>",
		Short: "Append a why beyond the fixed five",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e *engine.Engine) error {
				f, err := e.FiveWhys.GetByID(ctx, args[0])
				if err != nil {
					return err
				}
				if f == nil {
					return fmt.Errorf("five-whys %s: %w", args[0], repo.ErrNotFound)
				}
				f.SetAdditionalWhyList(append(f.AdditionalWhyList(), text))
				if err := e.SaveFiveWhys(ctx, f); err != nil {
					return err
				}
				return printJSONOrTable(f)
			})
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "why statement")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}

func fiveWhysRootCauseCmd() *cobra.Command {
	var text string
	cmd := &cobra.Command{
		Use:   "root-cause <id>",
		Short: "Record the root cause conclusion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e *engine.Engine) error {
				f, err := e.FiveWhys.GetByID(ctx, args[0])
				if err != nil {
					return err
				}
				if f == nil {
					return fmt.Errorf("five-whys %s: %w", args[0], repo.ErrNotFound)
				}
				f.RootCause = optionalString(text)
				if err := e.SaveFiveWhys(ctx, f); err != nil {
					return err
				}
				return printJSONOrTable(f)
			})
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "root cause")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}

func fiveWhysCompleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a five-whys analysis complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e *engine.Engine) error {
				f, err := e.FiveWhys.GetByID(ctx, args[0])
				if err != nil {
					return err
				}
				if f == nil {
					return fmt.Errorf("five-whys %s: %w", args[0], repo.ErrNotFound)
				}
				if err := e.CompleteFiveWhys(ctx, f); err != nil {
					return err
				}
				fmt.Println("completed; run 'kb progress", f.ProjectID+"' to refresh the cached percentage")
				return nil
			})
		},
	}
	return cmd
}

// --- ishikawa ---

func ishikawaCmd() *cobra.Command {
	ish := &cobra.Command{Use: "ishikawa", Short: "Manage Ishikawa (fishbone) diagrams"}
	ish.AddCommand(ishikawaCreateCmd())
	ish.AddCommand(ishikawaShowCmd())
	ish.AddCommand(ishikawaAddCauseCmd())
	ish.AddCommand(ishikawaCompleteCmd())
	return ish
}

func ishikawaCreateCmd() *cobra.Command {
	var projectID, problem string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a diagram with the six standard categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e *engine.Engine) error {
				d := domain.IshikawaDiagram{ProjectID: projectID, ProblemStatement: problem}
				if err := e.SaveDiagram(ctx, &d); err != nil {
					return err
				}
				var cats []domain.IshikawaCategory
				for _, name := range domain.DefaultCategories() {
					cats = append(cats, domain.IshikawaCategory{Name: name})
				}
				if err := e.ReplaceCategories(ctx, d.ID, cats); err != nil {
					return err
				}
				return printJSONOrTable(d)
			})
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "project id")
	cmd.Flags().StringVar(&problem, "problem", "", "problem statement")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("problem")
	return cmd
}

func ishikawaShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a diagram with its categories in display order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e *engine.Engine) error {
				d, cats, err := loadDiagram(ctx, e, args[0])
				if err != nil {
					return err
				}
				d.Categories = cats
				if viper.GetBool("json") {
					return printJSON(d)
				}
				fmt.Println("Problem:", d.ProblemStatement)
				for _, c := range cats {
					fmt.Println(c.Name + ":")
					for _, cause := range c.CauseList() {
						fmt.Println("  -", cause)
					}
				}
				fmt.Println("Completed:", d.IsCompleted)
				return nil
			})
		},
	}
	return cmd
}

func ishikawaAddCauseCmd() *cobra.Command {
	var category, cause string
	cmd := &cobra.Command{
		Use:   "add-cause <id>",
		Short: "Append a cause under a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e *engine.Engine) error {
				_, cats, err := loadDiagram(ctx, e, args[0])
				if err != nil {
					return err
				}
				found := false
				for i := range cats {
					if cats[i].Name == category {
						cats[i].SetCauseList(append(cats[i].CauseList(), cause))
						found = true
						break
					}
				}
				if !found {
					c := domain.IshikawaCategory{Name: category}
					c.SetCauseList([]string{cause})
					cats = append(cats, c)
				}
				if err := e.ReplaceCategories(ctx, args[0], cats); err != nil {
					return err
				}
				return printJSONOrTable(cats)
			})
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "category name (People, Process, Materials, Equipment, Environment, Management)")
	cmd.Flags().StringVar(&cause, "cause", "", "cause statement")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("cause")
	return cmd
}

func ishikawaCompleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a diagram complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e *engine.Engine) error {
				d, err := e.Diagrams.GetByID(ctx, args[0])
				if err != nil {
					return err
				}
				if d == nil {
					return fmt.Errorf("diagram %s: %w", args[0], repo.ErrNotFound)
				}
				if err := e.CompleteDiagram(ctx, d); err != nil {
					return err
				}
				fmt.Println("completed; run 'kb progress", d.ProjectID+"' to refresh the cached percentage")
				return nil
			})
		},
	}
	return cmd
}

func loadDiagram(ctx context.Context, e *engine.Engine, id string) (*domain.IshikawaDiagram, []domain.IshikawaCategory, error) {
	d, err := e.Diagrams.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if d == nil {
		return nil, nil, fmt.Errorf("diagram %s: %w", id, repo.ErrNotFound)
	}
	p, err := e.Projects.GetWithChildren(ctx, d.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	if p != nil {
		for _, loaded := range p.Diagrams {
			if loaded.ID == d.ID {
				return d, loaded.Categories, nil
			}
		}
	}
	return d, nil, nil
}

// --- action plan ---

func planCmd() *cobra.Command {
	plan := &cobra.Command{Use: "plan", Short: "Manage action plans"}
	plan.AddCommand(planCreateCmd())
	plan.AddCommand(planCompleteCmd())
	plan.AddCommand(taskCmd())
	return plan
}

func planCreateCmd() *cobra.Command {
	var projectID string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an action plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e *engine.Engine) error {
				ap := domain.ActionPlan{ProjectID: projectID}
				if err := e.SaveActionPlan(ctx, &ap); err != nil {
					return err
				}
				return printJSONOrTable(ap)
			})
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "project id")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func planCompleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark an action plan complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e *engine.Engine) error {
				ap, err := e.Plans.GetByID(ctx, args[0])
				if err != nil {
					return err
				}
				if ap == nil {
					return fmt.Errorf("action plan %s: %w", args[0], repo.ErrNotFound)
				}
				if err := e.CompleteActionPlan(ctx, ap); err != nil {
					return err
				}
				fmt.Println("completed; run 'kb progress", ap.ProjectID+"' to refresh the cached percentage")
				return nil
			})
		},
	}
	return cmd
}

func taskCmd() *cobra.Command {
	task := &cobra.Command{Use: "task", Short: "Manage action plan tasks"}
	task.AddCommand(taskAddCmd())
	task.AddCommand(taskUpdateCmd())
	task.AddCommand(taskListCmd())
	return task
}

func taskAddCmd() *cobra.Command {
	var planID, desc, person, deadline, priority, notes string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task to an action plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e *engine.Engine) error {
				t := domain.ActionPlanTask{
					ActionPlanID:      planID,
					TaskDescription:   desc,
					ResponsiblePerson: optionalString(person),
					Deadline:          optionalString(deadline),
					Priority:          priority,
					Notes:             optionalString(notes),
				}
				if err := e.SaveTask(ctx, &t); err != nil {
					return err
				}
				return printJSONOrTable(t)
			})
		},
	}
	cmd.Flags().StringVar(&planID, "plan", "", "action plan id")
	cmd.Flags().StringVar(&desc, "description", "", "task description")
	cmd.Flags().StringVar(&person, "person", "", "responsible person")
	cmd.Flags().StringVar(&deadline, "deadline", "", "deadline (YYYY-MM-DD)")
	cmd.Flags().StringVar(&priority, "priority", "", "priority (Low, Medium, High, Critical)")
	cmd.Flags().StringVar(&notes, "notes", "", "notes")
	_ = cmd.MarkFlagRequired("plan")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

func taskUpdateCmd() *cobra.Command {
	var desc, person, deadline, status, priority, notes string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e *engine.Engine) error {
				t, err := e.Tasks.GetByID(ctx, args[0])
				if err != nil {
					return err
				}
				if t == nil {
					return fmt.Errorf("task %s: %w", args[0], repo.ErrNotFound)
				}
				if cmd.Flags().Changed("description") {
					t.TaskDescription = desc
				}
				if cmd.Flags().Changed("person") {
					t.ResponsiblePerson = optionalString(person)
				}
				if cmd.Flags().Changed("deadline") {
					t.Deadline = optionalString(deadline)
				}
				if cmd.Flags().Changed("status") {
					t.Status = status
				}
				if cmd.Flags().Changed("priority") {
					t.Priority = priority
				}
				if cmd.Flags().Changed("notes") {
					t.Notes = optionalString(notes)
				}
				if err := e.SaveTask(ctx, t); err != nil {
					return err
				}
				return printJSONOrTable(t)
			})
		},
	}
	cmd.Flags().StringVar(&desc, "description", "", "task description")
	cmd.Flags().StringVar(&person, "person", "", "responsible person")
	cmd.Flags().StringVar(&deadline, "deadline", "", "deadline (YYYY-MM-DD)")
	cmd.Flags().StringVar(&status, "status", "", "status (Not Started, In Progress, Completed, Blocked)")
	cmd.Flags().StringVar(&priority, "priority", "", "priority (Low, Medium, High, Critical)")
	cmd.Flags().StringVar(&notes, "notes", "", "notes")
	return cmd
}

func taskListCmd() *cobra.Command {
	var planID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks of an action plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e *engine.Engine) error {
				items, err := e.Tasks.Search(ctx, map[string]any{"action_plan_id": planID})
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(items)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Description", "Status", "Priority", "Responsible", "Deadline"})
				for _, t := range items {
					tw.AppendRow(table.Row{t.ID, t.TaskDescription, t.Status, t.Priority,
						deref(t.ResponsiblePerson), deref(t.Deadline)})
				}
				tw.Render()
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&planID, "plan", "", "action plan id")
	_ = cmd.MarkFlagRequired("plan")
	return cmd
}

// --- progress / seed / config ---

func progressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress <project-id>",
		Short: "Recompute a project's completion percentage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e *engine.Engine) error {
				progress, err := e.RecalculateProgress(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Printf("%d%%\n", progress)
				return nil
			})
		},
	}
	return cmd
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create sample projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e *engine.Engine) error {
				projects, err := seed.SampleProjects(ctx, e)
				if err != nil {
					return err
				}
				return printProjects(projects)
			})
		},
	}
	return cmd
}

func configCmd() *cobra.Command {
	cfg := &cobra.Command{Use: "config", Short: "Manage settings"}
	cfg.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show effective settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(viper.GetString("workspace"))
			if err != nil {
				return err
			}
			return printJSON(c)
		},
	})
	return cfg
}

// --- helpers ---

func withEngine(ctx context.Context, fn func(context.Context, *engine.Engine) error) error {
	workspace := viper.GetString("workspace")
	conn, err := db.Open(db.Config{Workspace: workspace})
	if err != nil {
		return err
	}
	defer conn.Close()
	if err := schema.Init(conn); err != nil {
		return err
	}
	return fn(ctx, engine.New(conn))
}

func printProjects(items []domain.Project) error {
	if viper.GetBool("json") {
		return printJSON(items)
	}
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"ID", "Name", "Status", "Phase", "Progress", "Updated"})
	for _, p := range items {
		tw.AppendRow(table.Row{p.ID, p.Name, p.Status, p.CurrentPhase,
			fmt.Sprintf("%d%%", p.ProgressPercentage), p.UpdatedAt})
	}
	tw.Render()
	return nil
}

func printJSONOrTable(v any) error {
	if viper.GetBool("json") {
		return printJSON(v)
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
