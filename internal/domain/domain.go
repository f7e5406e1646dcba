package domain

// Project is a Kaizen Blitz improvement project. Child slices are populated
// only by eager-loading reads; CalculateProgress works off whatever is loaded.
type Project struct {
	ID                     string  `json:"id"`
	Name                   string  `json:"name"`
	Description            string  `json:"description,omitempty"`
	TargetArea             string  `json:"target_area,omitempty"`
	StartDate              string  `json:"start_date" format:"date"`
	ExpectedCompletionDate *string `json:"expected_completion_date,omitempty" format:"date"`
	ActualCompletionDate   *string `json:"actual_completion_date,omitempty" format:"date"`
	Status                 string  `json:"status" enum:"In Progress,Completed,On Hold,Cancelled"`
	CurrentPhase           string  `json:"current_phase" enum:"Preparation,Analysis,Improvement,Implementation,Review"`
	ProgressPercentage     int     `json:"progress_percentage"`
	TeamMembersJSON        string  `json:"team_members_json,omitempty"`
	CreatedAt              string  `json:"created_at" format:"date-time"`
	UpdatedAt              string  `json:"updated_at" format:"date-time"`

	FiveWhys    []FiveWhys        `json:"five_whys,omitempty"`
	Diagrams    []IshikawaDiagram `json:"ishikawa_diagrams,omitempty"`
	ActionPlans []ActionPlan      `json:"action_plans,omitempty"`
}

// FiveWhys is a root-cause analysis attached to a project.
type FiveWhys struct {
	ID                 string  `json:"id"`
	ProjectID          string  `json:"project_id"`
	ProblemStatement   string  `json:"problem_statement"`
	Why1               *string `json:"why_1,omitempty"`
	Why2               *string `json:"why_2,omitempty"`
	Why3               *string `json:"why_3,omitempty"`
	Why4               *string `json:"why_4,omitempty"`
	Why5               *string `json:"why_5,omitempty"`
	AdditionalWhysJSON string  `json:"additional_whys_json,omitempty"`
	RootCause          *string `json:"root_cause,omitempty"`
	IsCompleted        bool    `json:"is_completed"`
	CreatedAt          string  `json:"created_at" format:"date-time"`
	UpdatedAt          string  `json:"updated_at" format:"date-time"`
}

// IshikawaDiagram is a fishbone cause diagram attached to a project.
type IshikawaDiagram struct {
	ID               string `json:"id"`
	ProjectID        string `json:"project_id"`
	ProblemStatement string `json:"problem_statement"`
	IsCompleted      bool   `json:"is_completed"`
	CreatedAt        string `json:"created_at" format:"date-time"`
	UpdatedAt        string `json:"updated_at" format:"date-time"`

	Categories []IshikawaCategory `json:"categories,omitempty"`
}

// IshikawaCategory is one heading of a fishbone diagram (People, Process, ...).
type IshikawaCategory struct {
	ID         string `json:"id"`
	DiagramID  string `json:"diagram_id"`
	Name       string `json:"name"`
	CausesJSON string `json:"causes_json,omitempty"`
	SortOrder  int    `json:"sort_order"`
	CreatedAt  string `json:"created_at" format:"date-time"`
	UpdatedAt  string `json:"updated_at" format:"date-time"`
}

// ActionPlan is a project's remediation plan, a container for tasks.
type ActionPlan struct {
	ID          string `json:"id"`
	ProjectID   string `json:"project_id"`
	IsCompleted bool   `json:"is_completed"`
	CreatedAt   string `json:"created_at" format:"date-time"`
	UpdatedAt   string `json:"updated_at" format:"date-time"`

	Tasks []ActionPlanTask `json:"tasks,omitempty"`
}

// ActionPlanTask is a single tracked task within an action plan.
type ActionPlanTask struct {
	ID                string  `json:"id"`
	ActionPlanID      string  `json:"action_plan_id"`
	TaskDescription   string  `json:"task_description"`
	ResponsiblePerson *string `json:"responsible_person,omitempty"`
	Deadline          *string `json:"deadline,omitempty" format:"date"`
	Status            string  `json:"status" enum:"Not Started,In Progress,Completed,Blocked"`
	Priority          string  `json:"priority" enum:"Low,Medium,High,Critical"`
	Notes             *string `json:"notes,omitempty"`
	CompletedDate     *string `json:"completed_date,omitempty" format:"date"`
	CreatedAt         string  `json:"created_at" format:"date-time"`
	UpdatedAt         string  `json:"updated_at" format:"date-time"`
}

// CalculateProgress derives the project completion percentage from the
// completion flags of the loaded child artifacts and writes it back into
// ProgressPercentage as a cache. Division truncates: two of three complete
// is 66, not 67.
func (p *Project) CalculateProgress() int {
	completed := 0
	total := 0

	total += len(p.FiveWhys)
	for _, fw := range p.FiveWhys {
		if fw.IsCompleted {
			completed++
		}
	}
	total += len(p.Diagrams)
	for _, d := range p.Diagrams {
		if d.IsCompleted {
			completed++
		}
	}
	total += len(p.ActionPlans)
	for _, ap := range p.ActionPlans {
		if ap.IsCompleted {
			completed++
		}
	}

	if total == 0 {
		p.ProgressPercentage = 0
		return 0
	}
	progress := completed * 100 / total
	p.ProgressPercentage = progress
	return progress
}

// CalculateCompletion returns the percentage of tasks in status Completed,
// truncating like CalculateProgress. It does not touch IsCompleted.
func (ap *ActionPlan) CalculateCompletion() int {
	if len(ap.Tasks) == 0 {
		return 0
	}
	completed := 0
	for _, t := range ap.Tasks {
		if t.Status == TaskCompleted {
			completed++
		}
	}
	return completed * 100 / len(ap.Tasks)
}

// AllWhys returns why_1..why_5 in slot order, skipping unset slots, followed
// by the additional whys in stored order. Exporters rely on this ordering.
func (f *FiveWhys) AllWhys() []string {
	var whys []string
	for _, w := range []*string{f.Why1, f.Why2, f.Why3, f.Why4, f.Why5} {
		if w != nil && *w != "" {
			whys = append(whys, *w)
		}
	}
	return append(whys, f.AdditionalWhyList()...)
}

// SetWhy assigns the fixed why slot n (1-based). An empty value clears the
// slot. Returns false when n is out of range.
func (f *FiveWhys) SetWhy(n int, value string) bool {
	var slot **string
	switch n {
	case 1:
		slot = &f.Why1
	case 2:
		slot = &f.Why2
	case 3:
		slot = &f.Why3
	case 4:
		slot = &f.Why4
	case 5:
		slot = &f.Why5
	default:
		return false
	}
	if value == "" {
		*slot = nil
	} else {
		*slot = &value
	}
	return true
}
