package report

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/weekly/internal/kv"
)

type fixture struct {
	repo  *Repository
	mem   *kv.Memory
	clock time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		mem:   kv.NewMemory(nil),
		clock: time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC),
	}
	n := 0
	f.repo = NewRepository(f.mem,
		WithClock(func() time.Time { return f.clock }),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
	return f
}

func (f *fixture) advance(d time.Duration) { f.clock = f.clock.Add(d) }

func TestTeams_CreateGetUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	teams, err := f.repo.Teams(ctx)
	require.NoError(t, err)
	require.Empty(t, teams)

	team, err := f.repo.CreateTeam(ctx, "  فريق التطوير  ", "1234")
	require.NoError(t, err)
	require.Equal(t, "id-1", team.ID)
	require.Equal(t, "فريق التطوير", team.Name)
	require.Equal(t, f.clock, team.CreatedAt)

	got, err := f.repo.Team(ctx, "id-1")
	require.NoError(t, err)
	require.Equal(t, team, got)

	f.advance(time.Hour)
	updated, err := f.repo.UpdateTeam(ctx, "id-1", "Platform", "")
	require.NoError(t, err)
	require.Equal(t, "Platform", updated.Name)
	require.Empty(t, updated.Passcode)
	require.Equal(t, team.CreatedAt, updated.CreatedAt)
	require.Equal(t, f.clock, updated.UpdatedAt)

	_, err = f.repo.CreateTeam(ctx, " ", "")
	require.ErrorIs(t, err, ErrEmptyName)
}

func TestTeams_NotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.repo.Team(ctx, "ghost")
	require.ErrorIs(t, err, ErrTeamNotFound)

	var nf *TeamNotFoundError
	require.ErrorAs(t, err, &nf)
	require.Equal(t, "ghost", nf.ID)

	_, err = f.repo.UpdateTeam(ctx, "ghost", "x", "")
	require.ErrorIs(t, err, ErrTeamNotFound)
	require.ErrorIs(t, f.repo.DeleteTeam(ctx, "ghost"), ErrTeamNotFound)

	_, err = f.repo.AddTask(ctx, "ghost", Task{Text: "x"})
	require.ErrorIs(t, err, ErrTeamNotFound)
}

func TestTeams_StoredFormat(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.repo.CreateTeam(ctx, "A", "")
	require.NoError(t, err)

	raw, _, _ := f.mem.Get(ctx, "teams")
	require.JSONEq(t, `[{"id":"id-1","name":"A","createdAt":"2025-03-02T09:00:00Z","updatedAt":"2025-03-02T09:00:00Z"}]`, raw)
}

func TestTeams_ReadsBrowserExport(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory(map[string]string{
		"teams": `[{"id":"t1","name":"Ops","passcode":"9","createdAt":"2024-11-05T10:20:30.123Z","updatedAt":"2024-11-05T10:20:30.123Z"}]`,
		"tasks_t1": `[{"id":"k1","teamId":"t1","taskText":"Migrate","status":"مراجعة","completionRate":40,` +
			`"weeklyProgressRate":10,"lastUpdateDate":"2024-11-05","latestUpdate":"half done",` +
			`"createdAt":"2024-11-05T10:20:30.123Z","updatedAt":"2024-11-05T10:20:30.123Z"}]`,
	})
	repo := NewRepository(mem)

	team, err := repo.Team(ctx, "t1")
	require.NoError(t, err)
	require.Equal(t, "Ops", team.Name)

	tasks, err := repo.Tasks(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, StatusReview, tasks[0].Status)
	require.Equal(t, 40, tasks[0].CompletionRate)
}

func TestDeleteTeam_Cascades(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	keep, err := f.repo.CreateTeam(ctx, "keep", "")
	require.NoError(t, err)
	drop, err := f.repo.CreateTeam(ctx, "drop", "")
	require.NoError(t, err)

	for _, id := range []string{keep.ID, drop.ID} {
		_, err = f.repo.AddTask(ctx, id, Task{Text: "t"})
		require.NoError(t, err)
		_, err = f.repo.AddAchievement(ctx, id, "a", "")
		require.NoError(t, err)
		_, err = f.repo.AddChallenge(ctx, id, "c", "")
		require.NoError(t, err)
	}

	require.NoError(t, f.repo.DeleteTeam(ctx, drop.ID))

	snapshot := f.mem.Snapshot()
	for _, key := range []string{"tasks_", "achievements_", "challenges_"} {
		require.NotContains(t, snapshot, key+drop.ID)
		require.Contains(t, snapshot, key+keep.ID)
	}

	teams, err := f.repo.Teams(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	require.Equal(t, keep.ID, teams[0].ID)
}

func TestTasks_Lifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	team, err := f.repo.CreateTeam(ctx, "A", "")
	require.NoError(t, err)

	f.advance(time.Minute)
	task, err := f.repo.AddTask(ctx, team.ID, Task{Text: "Ship it", CompletionRate: 150, WeeklyProgressRate: -5})
	require.NoError(t, err)
	require.Equal(t, team.ID, task.TeamID)
	require.Equal(t, StatusDevelopment, task.Status)
	require.Equal(t, 100, task.CompletionRate)
	require.Equal(t, 0, task.WeeklyProgressRate)
	require.Equal(t, "2025-03-02", task.LastUpdateDate)

	touched, err := f.repo.Team(ctx, team.ID)
	require.NoError(t, err)
	require.Equal(t, f.clock, touched.UpdatedAt, "saving entries touches the team")

	f.advance(time.Minute)
	task.Status = StatusPending
	task.CompletionRate = 60
	updated, err := f.repo.UpdateTask(ctx, team.ID, task)
	require.NoError(t, err)
	require.Equal(t, StatusPending, updated.Status)
	require.Equal(t, task.CreatedAt, updated.CreatedAt)
	require.Equal(t, f.clock, updated.UpdatedAt)

	_, err = f.repo.UpdateTask(ctx, team.ID, Task{ID: "nope", Text: "x"})
	require.ErrorIs(t, err, ErrEntryNotFound)

	require.NoError(t, f.repo.DeleteTask(ctx, team.ID, task.ID))
	tasks, err := f.repo.Tasks(ctx, team.ID)
	require.NoError(t, err)
	require.Empty(t, tasks)
	require.ErrorIs(t, f.repo.DeleteTask(ctx, team.ID, task.ID), ErrEntryNotFound)

	_, err = f.repo.AddTask(ctx, team.ID, Task{Text: "  "})
	require.ErrorIs(t, err, ErrEmptyText)
}

func TestAchievementsAndChallenges(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	team, err := f.repo.CreateTeam(ctx, "A", "")
	require.NoError(t, err)

	a, err := f.repo.AddAchievement(ctx, team.ID, "Released v2", "2025-02-28")
	require.NoError(t, err)
	require.Equal(t, "2025-02-28", a.Date)

	c, err := f.repo.AddChallenge(ctx, team.ID, "Flaky CI", "More runners")
	require.NoError(t, err)
	require.Equal(t, "More runners", c.SupportNeeded)

	achievements, err := f.repo.Achievements(ctx, team.ID)
	require.NoError(t, err)
	require.Equal(t, []Achievement{a}, achievements)

	require.NoError(t, f.repo.DeleteAchievement(ctx, team.ID, a.ID))
	require.NoError(t, f.repo.DeleteChallenge(ctx, team.ID, c.ID))
	require.ErrorIs(t, f.repo.DeleteChallenge(ctx, team.ID, c.ID), ErrEntryNotFound)

	challenges, err := f.repo.Challenges(ctx, team.ID)
	require.NoError(t, err)
	require.Empty(t, challenges)
}

func TestUpdateAchievementAndChallenge(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	team, err := f.repo.CreateTeam(ctx, "A", "")
	require.NoError(t, err)

	a, err := f.repo.AddAchievement(ctx, team.ID, "Released v2", "2025-02-28")
	require.NoError(t, err)
	c, err := f.repo.AddChallenge(ctx, team.ID, "Flaky CI", "More runners")
	require.NoError(t, err)

	f.advance(time.Hour)
	a2, err := f.repo.UpdateAchievement(ctx, team.ID, a.ID, "Released v2.1", "")
	require.NoError(t, err)
	require.Equal(t, "Released v2.1", a2.Text)
	require.Equal(t, "2025-02-28", a2.Date, "empty date keeps the current one")
	require.Equal(t, a.CreatedAt, a2.CreatedAt)
	require.Equal(t, f.clock, a2.UpdatedAt)

	a3, err := f.repo.UpdateAchievement(ctx, team.ID, a.ID, "Released v2.1", "2025-03-01")
	require.NoError(t, err)
	require.Equal(t, "2025-03-01", a3.Date)

	c2, err := f.repo.UpdateChallenge(ctx, team.ID, c.ID, "Flaky CI on arm64", "")
	require.NoError(t, err)
	require.Equal(t, "Flaky CI on arm64", c2.Text)
	require.Empty(t, c2.SupportNeeded)
	require.Equal(t, f.clock, c2.UpdatedAt)

	stored, err := f.repo.Challenges(ctx, team.ID)
	require.NoError(t, err)
	require.Equal(t, []Challenge{c2}, stored)

	touched, err := f.repo.Team(ctx, team.ID)
	require.NoError(t, err)
	require.Equal(t, f.clock, touched.UpdatedAt)

	_, err = f.repo.UpdateAchievement(ctx, team.ID, "nope", "x", "")
	require.ErrorIs(t, err, ErrEntryNotFound)
	_, err = f.repo.UpdateChallenge(ctx, team.ID, "nope", "x", "")
	require.ErrorIs(t, err, ErrEntryNotFound)
	_, err = f.repo.UpdateAchievement(ctx, "ghost", a.ID, "x", "")
	require.ErrorIs(t, err, ErrTeamNotFound)
	_, err = f.repo.UpdateChallenge(ctx, "ghost", c.ID, "x", "")
	require.ErrorIs(t, err, ErrTeamNotFound)
	_, err = f.repo.UpdateChallenge(ctx, team.ID, c.ID, " ", "")
	require.ErrorIs(t, err, ErrEmptyText)
}

func TestTasks_DecimalRatesFromClient(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory(map[string]string{
		"teams":    `[{"id":"t1","name":"A","createdAt":"2025-03-01T00:00:00Z","updatedAt":"2025-03-01T00:00:00Z"}]`,
		"tasks_t1": `[{"id":"k1","teamId":"t1","taskText":"Spike","status":"تطوير","completionRate":33.5,"weeklyProgressRate":12.4}]`,
	})
	repo := NewRepository(mem)

	tasks, err := repo.Tasks(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, 34, tasks[0].CompletionRate)
	require.Equal(t, 12, tasks[0].WeeklyProgressRate)
	require.Equal(t, "Spike", tasks[0].Text)

	_, err = repo.UpdateTask(ctx, "ghost", tasks[0])
	require.ErrorIs(t, err, ErrTeamNotFound)
}

func TestCorruptCollectionIsAnError(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(kv.NewMemory(map[string]string{"teams": "[{"}))

	_, err := repo.Teams(ctx)
	require.ErrorContains(t, err, "decoding teams")
}

func TestVerify(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.True(t, f.repo.VerifyAdminPassword("admin123"))
	require.False(t, f.repo.VerifyAdminPassword("admin"))

	custom := NewRepository(f.mem, WithAdminPassword("s3cret"))
	require.True(t, custom.VerifyAdminPassword("s3cret"))
	require.False(t, custom.VerifyAdminPassword("admin123"))

	open, err := f.repo.CreateTeam(ctx, "open", "")
	require.NoError(t, err)
	locked, err := f.repo.CreateTeam(ctx, "locked", "4321")
	require.NoError(t, err)

	require.False(t, f.repo.VerifyTeamPasscode(ctx, "ghost", ""))
	require.True(t, f.repo.VerifyTeamPasscode(ctx, open.ID, "anything"))
	require.True(t, f.repo.VerifyTeamPasscode(ctx, locked.ID, "4321"))
	require.False(t, f.repo.VerifyTeamPasscode(ctx, locked.ID, "0000"))
}

func TestParseTaskStatus(t *testing.T) {
	for name, want := range map[string]TaskStatus{
		"development":       StatusDevelopment,
		"Review":            StatusReview,
		"study+development": StatusStudyDevelopment,
		"معلقة":             StatusPending,
		"دراسة و تطوير":     StatusStudyDevelopment,
	} {
		got, err := ParseTaskStatus(name)
		require.NoError(t, err, name)
		require.Equal(t, want, got, name)
	}

	_, err := ParseTaskStatus("done")
	require.Error(t, err)
}
