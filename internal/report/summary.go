package report

import (
	"context"
)

// AllTeams selects every team in Summaries.
const AllTeams = "all"

// Summary is one team's section of the manager report.
type Summary struct {
	Team              Team          `json:"team" yaml:"team"`
	Tasks             []Task        `json:"tasks" yaml:"tasks"`
	Achievements      []Achievement `json:"achievements" yaml:"achievements"`
	Challenges        []Challenge   `json:"challenges" yaml:"challenges"`
	AverageCompletion float64       `json:"averageCompletion" yaml:"average_completion"`
}

// Summaries gathers every team's entries, or only teamID's when it is
// neither "" nor AllTeams. An unknown teamID yields *TeamNotFoundError.
func (r *Repository) Summaries(ctx context.Context, teamID string) ([]Summary, error) {
	teams, err := r.Teams(ctx)
	if err != nil {
		return nil, err
	}

	if teamID != "" && teamID != AllTeams {
		team, err := r.Team(ctx, teamID)
		if err != nil {
			return nil, err
		}
		teams = []Team{team}
	}

	out := make([]Summary, 0, len(teams))
	for _, team := range teams {
		s := Summary{Team: team}
		if s.Tasks, err = r.Tasks(ctx, team.ID); err != nil {
			return nil, err
		}
		if s.Achievements, err = r.Achievements(ctx, team.ID); err != nil {
			return nil, err
		}
		if s.Challenges, err = r.Challenges(ctx, team.ID); err != nil {
			return nil, err
		}
		s.AverageCompletion = averageCompletion(s.Tasks)
		out = append(out, s)
	}
	return out, nil
}

func averageCompletion(tasks []Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	total := 0
	for _, t := range tasks {
		total += t.CompletionRate
	}
	return float64(total) / float64(len(tasks))
}
