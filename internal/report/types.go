// Package report stores teams and their weekly entries (tasks, achievements,
// challenges) and aggregates them for the manager report.
package report

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// TaskStatus is stored as its Arabic label.
type TaskStatus string

const (
	StatusDevelopment      TaskStatus = "تطوير"
	StatusStudy            TaskStatus = "دراسة"
	StatusReview           TaskStatus = "مراجعة"
	StatusPending          TaskStatus = "معلقة"
	StatusStudyDevelopment TaskStatus = "دراسة و تطوير"
)

var statusNames = map[string]TaskStatus{
	"development":       StatusDevelopment,
	"study":             StatusStudy,
	"review":            StatusReview,
	"pending":           StatusPending,
	"study+development": StatusStudyDevelopment,
}

// Statuses returns every status in display order.
func Statuses() []TaskStatus {
	return []TaskStatus{StatusDevelopment, StatusStudy, StatusReview, StatusPending, StatusStudyDevelopment}
}

// ParseTaskStatus accepts either the English name (development, study,
// review, pending, study+development) or the stored Arabic label.
func ParseTaskStatus(s string) (TaskStatus, error) {
	s = strings.TrimSpace(s)
	if st, ok := statusNames[strings.ToLower(s)]; ok {
		return st, nil
	}
	for _, st := range Statuses() {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown task status %q", s)
}

// Team is a reporting unit. Passcode is empty when the team is open.
type Team struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Passcode  string    `json:"passcode,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Task struct {
	ID                 string     `json:"id"`
	TeamID             string     `json:"teamId"`
	Text               string     `json:"taskText"`
	Status             TaskStatus `json:"status"`
	CompletionRate     int        `json:"completionRate"`
	WeeklyProgressRate int        `json:"weeklyProgressRate"`
	LastUpdateDate     string     `json:"lastUpdateDate"`
	LatestUpdate       string     `json:"latestUpdate"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// UnmarshalJSON accepts fractional rates, which the web client can store,
// and rounds them half up.
func (t *Task) UnmarshalJSON(data []byte) error {
	type plain Task
	aux := struct {
		*plain
		CompletionRate     float64 `json:"completionRate"`
		WeeklyProgressRate float64 `json:"weeklyProgressRate"`
	}{plain: (*plain)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t.CompletionRate = roundRate(aux.CompletionRate)
	t.WeeklyProgressRate = roundRate(aux.WeeklyProgressRate)
	return nil
}

func roundRate(v float64) int {
	return int(math.Floor(v + 0.5))
}

type Achievement struct {
	ID        string    `json:"id"`
	TeamID    string    `json:"teamId"`
	Text      string    `json:"text"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Challenge struct {
	ID            string    `json:"id"`
	TeamID        string    `json:"teamId"`
	Text          string    `json:"text"`
	SupportNeeded string    `json:"supportNeeded,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// clampRate keeps a percentage within [0,100].
func clampRate(v int) int {
	return min(max(v, 0), 100)
}

func tasksKey(teamID string) string        { return "tasks_" + teamID }
func achievementsKey(teamID string) string { return "achievements_" + teamID }
func challengesKey(teamID string) string   { return "challenges_" + teamID }

const teamsKey = "teams"
