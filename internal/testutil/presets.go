package testutil

// WithStandardTestData adds two teams: "platform" with five tasks, an
// achievement and a challenge, and "data" protected by passcode "1234" with
// nothing reported yet.
func (b *Builder) WithStandardTestData() *Builder {
	return b.
		WithTeam("platform", "Platform").
		WithTeam("data", "Data", Passcode("1234")).
		WithTask("platform", "task-1", "Migrate billing", Status("مراجعة"), Completion(80), WeeklyProgress(20)).
		WithTask("platform", "task-2", "Audit logs", Status("دراسة"), Completion(40)).
		WithTask("platform", "task-3", "Ship v2", Completion(60), LatestUpdate("beta in QA")).
		WithTask("platform", "task-4", "Write runbooks", Status("معلقة")).
		WithTask("platform", "task-5", "Retire cron host", Status("دراسة و تطوير"), Completion(20)).
		WithAchievement("platform", "ach-1", "Launched status page", "2025-03-01").
		WithChallenge("platform", "chl-1", "On-call load", "One more engineer")
}
