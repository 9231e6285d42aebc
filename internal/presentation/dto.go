package presentation

import (
	"time"

	"github.com/zjrosen/weekly/internal/report"
)

// TeamReportDTO is the structured form of one team's report section.
type TeamReportDTO struct {
	ID                string           `json:"id" yaml:"id"`
	Name              string           `json:"name" yaml:"name"`
	UpdatedAt         time.Time        `json:"updated_at" yaml:"updated_at"`
	AverageCompletion float64          `json:"average_completion" yaml:"average_completion"`
	Tasks             []TaskDTO        `json:"tasks" yaml:"tasks"`
	Achievements      []AchievementDTO `json:"achievements" yaml:"achievements"`
	Challenges        []ChallengeDTO   `json:"challenges" yaml:"challenges"`
}

type TaskDTO struct {
	ID                 string `json:"id" yaml:"id"`
	Text               string `json:"text" yaml:"text"`
	Status             string `json:"status" yaml:"status"`
	CompletionRate     int    `json:"completion_rate" yaml:"completion_rate"`
	WeeklyProgressRate int    `json:"weekly_progress_rate" yaml:"weekly_progress_rate"`
	LatestUpdate       string `json:"latest_update,omitempty" yaml:"latest_update,omitempty"`
}

type AchievementDTO struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
	Date string `json:"date" yaml:"date"`
}

type ChallengeDTO struct {
	ID            string `json:"id" yaml:"id"`
	Text          string `json:"text" yaml:"text"`
	SupportNeeded string `json:"support_needed,omitempty" yaml:"support_needed,omitempty"`
}

// FromSummaries converts report summaries to DTOs.
func FromSummaries(summaries []report.Summary) []TeamReportDTO {
	out := make([]TeamReportDTO, 0, len(summaries))
	for _, s := range summaries {
		dto := TeamReportDTO{
			ID:                s.Team.ID,
			Name:              s.Team.Name,
			UpdatedAt:         s.Team.UpdatedAt,
			AverageCompletion: s.AverageCompletion,
			Tasks:             make([]TaskDTO, 0, len(s.Tasks)),
			Achievements:      make([]AchievementDTO, 0, len(s.Achievements)),
			Challenges:        make([]ChallengeDTO, 0, len(s.Challenges)),
		}
		for _, t := range s.Tasks {
			dto.Tasks = append(dto.Tasks, TaskDTO{
				ID:                 t.ID,
				Text:               t.Text,
				Status:             string(t.Status),
				CompletionRate:     t.CompletionRate,
				WeeklyProgressRate: t.WeeklyProgressRate,
				LatestUpdate:       t.LatestUpdate,
			})
		}
		for _, a := range s.Achievements {
			dto.Achievements = append(dto.Achievements, AchievementDTO{ID: a.ID, Text: a.Text, Date: a.Date})
		}
		for _, c := range s.Challenges {
			dto.Challenges = append(dto.Challenges, ChallengeDTO{ID: c.ID, Text: c.Text, SupportNeeded: c.SupportNeeded})
		}
		out = append(out, dto)
	}
	return out
}
