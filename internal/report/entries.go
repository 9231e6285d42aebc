package report

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// requireTeam fails with *TeamNotFoundError when teamID is unknown.
func (r *Repository) requireTeam(ctx context.Context, teamID string) error {
	_, err := r.Team(ctx, teamID)
	return err
}

// saveEntries writes a team's collection and touches the team.
func saveEntries[T any](ctx context.Context, r *Repository, key, teamID string, items []T) error {
	if err := saveList(ctx, r.storage, key, items); err != nil {
		return err
	}
	return r.touchTeam(ctx, teamID)
}

// ----- tasks -----

func (r *Repository) Tasks(ctx context.Context, teamID string) ([]Task, error) {
	return loadList[Task](ctx, r.storage, tasksKey(teamID))
}

// SaveTasks replaces the team's task list.
func (r *Repository) SaveTasks(ctx context.Context, teamID string, tasks []Task) error {
	for i := range tasks {
		tasks[i].CompletionRate = clampRate(tasks[i].CompletionRate)
		tasks[i].WeeklyProgressRate = clampRate(tasks[i].WeeklyProgressRate)
	}
	return saveEntries(ctx, r, tasksKey(teamID), teamID, tasks)
}

// AddTask appends t to the team's tasks, assigning ID, team and timestamps.
func (r *Repository) AddTask(ctx context.Context, teamID string, t Task) (Task, error) {
	if strings.TrimSpace(t.Text) == "" {
		return Task{}, ErrEmptyText
	}
	if err := r.requireTeam(ctx, teamID); err != nil {
		return Task{}, err
	}
	tasks, err := r.Tasks(ctx, teamID)
	if err != nil {
		return Task{}, err
	}

	now := r.now().UTC()
	t.ID = r.newID()
	t.TeamID = teamID
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Status == "" {
		t.Status = StatusDevelopment
	}
	if t.LastUpdateDate == "" {
		t.LastUpdateDate = now.Format("2006-01-02")
	}

	tasks = append(tasks, t)
	if err := r.SaveTasks(ctx, teamID, tasks); err != nil {
		return Task{}, err
	}
	return tasks[len(tasks)-1], nil
}

// UpdateTask replaces the task with t.ID, keeping its creation time.
func (r *Repository) UpdateTask(ctx context.Context, teamID string, t Task) (Task, error) {
	if err := r.requireTeam(ctx, teamID); err != nil {
		return Task{}, err
	}
	tasks, err := r.Tasks(ctx, teamID)
	if err != nil {
		return Task{}, err
	}
	i := slices.IndexFunc(tasks, func(x Task) bool { return x.ID == t.ID })
	if i < 0 {
		return Task{}, fmt.Errorf("task %q: %w", t.ID, ErrEntryNotFound)
	}

	t.TeamID = teamID
	t.CreatedAt = tasks[i].CreatedAt
	t.UpdatedAt = r.now().UTC()
	tasks[i] = t

	if err := r.SaveTasks(ctx, teamID, tasks); err != nil {
		return Task{}, err
	}
	return tasks[i], nil
}

func (r *Repository) DeleteTask(ctx context.Context, teamID, taskID string) error {
	tasks, err := r.Tasks(ctx, teamID)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(tasks, func(x Task) bool { return x.ID == taskID })
	if i < 0 {
		return fmt.Errorf("task %q: %w", taskID, ErrEntryNotFound)
	}
	return r.SaveTasks(ctx, teamID, slices.Delete(tasks, i, i+1))
}

// ----- achievements -----

func (r *Repository) Achievements(ctx context.Context, teamID string) ([]Achievement, error) {
	return loadList[Achievement](ctx, r.storage, achievementsKey(teamID))
}

func (r *Repository) SaveAchievements(ctx context.Context, teamID string, items []Achievement) error {
	return saveEntries(ctx, r, achievementsKey(teamID), teamID, items)
}

func (r *Repository) AddAchievement(ctx context.Context, teamID, text, date string) (Achievement, error) {
	if strings.TrimSpace(text) == "" {
		return Achievement{}, ErrEmptyText
	}
	if err := r.requireTeam(ctx, teamID); err != nil {
		return Achievement{}, err
	}
	items, err := r.Achievements(ctx, teamID)
	if err != nil {
		return Achievement{}, err
	}

	now := r.now().UTC()
	if date == "" {
		date = now.Format("2006-01-02")
	}
	a := Achievement{
		ID:        r.newID(),
		TeamID:    teamID,
		Text:      text,
		Date:      date,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.SaveAchievements(ctx, teamID, append(items, a)); err != nil {
		return Achievement{}, err
	}
	return a, nil
}

// UpdateAchievement changes an achievement's text and date. An empty date
// keeps the current one.
func (r *Repository) UpdateAchievement(ctx context.Context, teamID, id, text, date string) (Achievement, error) {
	if strings.TrimSpace(text) == "" {
		return Achievement{}, ErrEmptyText
	}
	if err := r.requireTeam(ctx, teamID); err != nil {
		return Achievement{}, err
	}
	items, err := r.Achievements(ctx, teamID)
	if err != nil {
		return Achievement{}, err
	}
	i := slices.IndexFunc(items, func(x Achievement) bool { return x.ID == id })
	if i < 0 {
		return Achievement{}, fmt.Errorf("achievement %q: %w", id, ErrEntryNotFound)
	}

	items[i].Text = text
	if date != "" {
		items[i].Date = date
	}
	items[i].UpdatedAt = r.now().UTC()
	if err := r.SaveAchievements(ctx, teamID, items); err != nil {
		return Achievement{}, err
	}
	return items[i], nil
}

func (r *Repository) DeleteAchievement(ctx context.Context, teamID, id string) error {
	items, err := r.Achievements(ctx, teamID)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(items, func(x Achievement) bool { return x.ID == id })
	if i < 0 {
		return fmt.Errorf("achievement %q: %w", id, ErrEntryNotFound)
	}
	return r.SaveAchievements(ctx, teamID, slices.Delete(items, i, i+1))
}

// ----- challenges -----

func (r *Repository) Challenges(ctx context.Context, teamID string) ([]Challenge, error) {
	return loadList[Challenge](ctx, r.storage, challengesKey(teamID))
}

func (r *Repository) SaveChallenges(ctx context.Context, teamID string, items []Challenge) error {
	return saveEntries(ctx, r, challengesKey(teamID), teamID, items)
}

// AddChallenge records a challenge. supportNeeded may be empty.
func (r *Repository) AddChallenge(ctx context.Context, teamID, text, supportNeeded string) (Challenge, error) {
	if strings.TrimSpace(text) == "" {
		return Challenge{}, ErrEmptyText
	}
	if err := r.requireTeam(ctx, teamID); err != nil {
		return Challenge{}, err
	}
	items, err := r.Challenges(ctx, teamID)
	if err != nil {
		return Challenge{}, err
	}

	now := r.now().UTC()
	c := Challenge{
		ID:            r.newID(),
		TeamID:        teamID,
		Text:          text,
		SupportNeeded: supportNeeded,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := r.SaveChallenges(ctx, teamID, append(items, c)); err != nil {
		return Challenge{}, err
	}
	return c, nil
}

// UpdateChallenge changes a challenge's text and the support it needs.
func (r *Repository) UpdateChallenge(ctx context.Context, teamID, id, text, supportNeeded string) (Challenge, error) {
	if strings.TrimSpace(text) == "" {
		return Challenge{}, ErrEmptyText
	}
	if err := r.requireTeam(ctx, teamID); err != nil {
		return Challenge{}, err
	}
	items, err := r.Challenges(ctx, teamID)
	if err != nil {
		return Challenge{}, err
	}
	i := slices.IndexFunc(items, func(x Challenge) bool { return x.ID == id })
	if i < 0 {
		return Challenge{}, fmt.Errorf("challenge %q: %w", id, ErrEntryNotFound)
	}

	items[i].Text = text
	items[i].SupportNeeded = supportNeeded
	items[i].UpdatedAt = r.now().UTC()
	if err := r.SaveChallenges(ctx, teamID, items); err != nil {
		return Challenge{}, err
	}
	return items[i], nil
}

func (r *Repository) DeleteChallenge(ctx context.Context, teamID, id string) error {
	items, err := r.Challenges(ctx, teamID)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(items, func(x Challenge) bool { return x.ID == id })
	if i < 0 {
		return fmt.Errorf("challenge %q: %w", id, ErrEntryNotFound)
	}
	return r.SaveChallenges(ctx, teamID, slices.Delete(items, i, i+1))
}
