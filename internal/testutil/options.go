package testutil

import "time"

// fixedTime is the default timestamp for seeded records.
var fixedTime = time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)

type teamData struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Passcode  string    `json:"passcode,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type taskData struct {
	ID                 string    `json:"id"`
	TeamID             string    `json:"teamId"`
	Text               string    `json:"taskText"`
	Status             string    `json:"status"`
	CompletionRate     int       `json:"completionRate"`
	WeeklyProgressRate int       `json:"weeklyProgressRate"`
	LastUpdateDate     string    `json:"lastUpdateDate"`
	LatestUpdate       string    `json:"latestUpdate"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type achievementData struct {
	ID        string    `json:"id"`
	TeamID    string    `json:"teamId"`
	Text      string    `json:"text"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type challengeData struct {
	ID            string    `json:"id"`
	TeamID        string    `json:"teamId"`
	Text          string    `json:"text"`
	SupportNeeded string    `json:"supportNeeded,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// TeamOption configures a team during builder setup.
type TeamOption func(*teamData)

// Passcode protects the team.
func Passcode(code string) TeamOption {
	return func(t *teamData) { t.Passcode = code }
}

// TeamUpdatedAt sets the team's last update time.
func TeamUpdatedAt(at time.Time) TeamOption {
	return func(t *teamData) { t.UpdatedAt = at }
}

// TaskOption configures a task during builder setup.
type TaskOption func(*taskData)

// Status sets the stored status label, e.g. "مراجعة".
func Status(label string) TaskOption {
	return func(t *taskData) { t.Status = label }
}

// Completion sets completionRate. Values are stored as given, unclamped.
func Completion(rate int) TaskOption {
	return func(t *taskData) { t.CompletionRate = rate }
}

// WeeklyProgress sets weeklyProgressRate.
func WeeklyProgress(rate int) TaskOption {
	return func(t *taskData) { t.WeeklyProgressRate = rate }
}

// LatestUpdate sets the free-text latest update.
func LatestUpdate(text string) TaskOption {
	return func(t *taskData) { t.LatestUpdate = text }
}
