// Package testutil seeds key-value storage with report records the way the
// web client stored them, for tests that need existing data.
package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/weekly/internal/kv"
)

// Builder accumulates records and writes them as JSON collections.
type Builder struct {
	t            *testing.T
	storage      kv.Storage
	teams        []teamData
	tasks        map[string][]taskData
	achievements map[string][]achievementData
	challenges   map[string][]challengeData
	raw          map[string]string
	order        []string
}

// NewBuilder creates a builder for storage.
func NewBuilder(t *testing.T, storage kv.Storage) *Builder {
	t.Helper()
	return &Builder{
		t:            t,
		storage:      storage,
		tasks:        map[string][]taskData{},
		achievements: map[string][]achievementData{},
		challenges:   map[string][]challengeData{},
		raw:          map[string]string{},
	}
}

// WithTeam adds a team.
func (b *Builder) WithTeam(id, name string, opts ...TeamOption) *Builder {
	team := teamData{ID: id, Name: name, CreatedAt: fixedTime, UpdatedAt: fixedTime}
	for _, opt := range opts {
		opt(&team)
	}
	b.teams = append(b.teams, team)
	return b
}

// WithTask adds a task to teamID.
func (b *Builder) WithTask(teamID, id, text string, opts ...TaskOption) *Builder {
	task := taskData{
		ID:             id,
		TeamID:         teamID,
		Text:           text,
		Status:         "تطوير",
		LastUpdateDate: fixedTime.Format("2006-01-02"),
		CreatedAt:      fixedTime,
		UpdatedAt:      fixedTime,
	}
	for _, opt := range opts {
		opt(&task)
	}
	b.remember(tasksKey(teamID))
	b.tasks[teamID] = append(b.tasks[teamID], task)
	return b
}

// WithAchievement adds an achievement to teamID.
func (b *Builder) WithAchievement(teamID, id, text, date string) *Builder {
	b.remember(achievementsKey(teamID))
	b.achievements[teamID] = append(b.achievements[teamID], achievementData{
		ID: id, TeamID: teamID, Text: text, Date: date, CreatedAt: fixedTime, UpdatedAt: fixedTime,
	})
	return b
}

// WithChallenge adds a challenge to teamID.
func (b *Builder) WithChallenge(teamID, id, text, supportNeeded string) *Builder {
	b.remember(challengesKey(teamID))
	b.challenges[teamID] = append(b.challenges[teamID], challengeData{
		ID: id, TeamID: teamID, Text: text, SupportNeeded: supportNeeded, CreatedAt: fixedTime, UpdatedAt: fixedTime,
	})
	return b
}

// WithRaw stores value under key verbatim, for corrupt or legacy records.
func (b *Builder) WithRaw(key, value string) *Builder {
	b.remember(key)
	b.raw[key] = value
	return b
}

func (b *Builder) remember(key string) {
	for _, k := range b.order {
		if k == key {
			return
		}
	}
	b.order = append(b.order, key)
}

// Build writes teams first, then each collection in the order it was first
// touched. Raw values win over generated ones for the same key.
func (b *Builder) Build() {
	b.t.Helper()
	ctx := context.Background()

	if len(b.teams) > 0 {
		if _, ok := b.raw["teams"]; !ok {
			b.set(ctx, "teams", b.teams)
		}
	}
	for _, key := range b.order {
		if v, ok := b.raw[key]; ok {
			require.NoError(b.t, b.storage.Set(ctx, key, v))
			continue
		}
		var teamID string
		switch {
		case scanKey(key, "tasks_", &teamID):
			b.set(ctx, key, b.tasks[teamID])
		case scanKey(key, "achievements_", &teamID):
			b.set(ctx, key, b.achievements[teamID])
		case scanKey(key, "challenges_", &teamID):
			b.set(ctx, key, b.challenges[teamID])
		}
	}
}

func (b *Builder) set(ctx context.Context, key string, v any) {
	b.t.Helper()
	data, err := json.Marshal(v)
	require.NoError(b.t, err, "encoding %s", key)
	require.NoError(b.t, b.storage.Set(ctx, key, string(data)), "writing %s", key)
}

func scanKey(key, prefix string, id *string) bool {
	if len(key) <= len(prefix) || key[:len(prefix)] != prefix {
		return false
	}
	*id = key[len(prefix):]
	return true
}

func tasksKey(teamID string) string        { return fmt.Sprintf("tasks_%s", teamID) }
func achievementsKey(teamID string) string { return fmt.Sprintf("achievements_%s", teamID) }
func challengesKey(teamID string) string   { return fmt.Sprintf("challenges_%s", teamID) }
