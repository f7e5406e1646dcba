package seed

import (
	"context"
	"time"

	"kaizenblitz/internal/domain"
	"kaizenblitz/internal/engine"
)

func daysFrom(now time.Time, days int) string {
	return now.AddDate(0, 0, days).UTC().Format("2006-01-02")
}

// SampleProjects creates three demonstration projects and returns them.
func SampleProjects(ctx context.Context, e *engine.Engine) ([]domain.Project, error) {
	now := e.Now()
	expected1 := daysFrom(now, 30)
	expected2 := daysFrom(now, 45)
	expected3 := daysFrom(now, -10)
	actual3 := daysFrom(now, -5)

	projects := []domain.Project{
		{
			Name:                   "Assembly Line Optimization",
			Description:            "Improve efficiency of the main assembly line by reducing bottlenecks and minimizing downtime.",
			TargetArea:             "Manufacturing - Assembly Line A",
			StartDate:              daysFrom(now, -30),
			ExpectedCompletionDate: &expected1,
			Status:                 domain.StatusInProgress,
			CurrentPhase:           domain.PhaseAnalysis,
			ProgressPercentage:     35,
		},
		{
			Name:                   "Quality Control Process Review",
			Description:            "Streamline quality control procedures to reduce inspection time while maintaining standards.",
			TargetArea:             "Quality Assurance Department",
			StartDate:              daysFrom(now, -15),
			ExpectedCompletionDate: &expected2,
			Status:                 domain.StatusInProgress,
			CurrentPhase:           domain.PhasePreparation,
			ProgressPercentage:     15,
		},
		{
			Name:                   "Inventory Management System",
			Description:            "Implement lean inventory management practices to reduce waste and improve stock accuracy.",
			TargetArea:             "Warehouse & Logistics",
			StartDate:              daysFrom(now, -60),
			ExpectedCompletionDate: &expected3,
			ActualCompletionDate:   &actual3,
			Status:                 domain.StatusCompleted,
			CurrentPhase:           domain.PhaseReview,
			ProgressPercentage:     100,
		},
	}

	for i := range projects {
		projects[i].SetTeamMemberList([]string{
			"John Smith",
			"Sarah Johnson",
			"Michael Chen",
			"Emily Davis",
		})
		if err := e.SaveProject(ctx, &projects[i]); err != nil {
			return nil, err
		}
	}
	return projects, nil
}
