package report

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/weekly/internal/kv"
	"github.com/zjrosen/weekly/internal/log"
)

// DefaultAdminPassword is used when none is configured.
const DefaultAdminPassword = "admin123"

// Repository manages teams and entries in a kv.Storage. Every collection is a
// JSON array under its own key.
type Repository struct {
	storage       kv.Storage
	now           func() time.Time
	newID         func() string
	adminPassword string
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// WithIDGenerator overrides uuid generation.
func WithIDGenerator(fn func() string) Option {
	return func(r *Repository) { r.newID = fn }
}

// WithAdminPassword sets the password VerifyAdminPassword compares against.
// Empty keeps the default.
func WithAdminPassword(pw string) Option {
	return func(r *Repository) {
		if pw != "" {
			r.adminPassword = pw
		}
	}
}

func NewRepository(storage kv.Storage, opts ...Option) *Repository {
	r := &Repository{
		storage:       storage,
		now:           time.Now,
		newID:         uuid.NewString,
		adminPassword: DefaultAdminPassword,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func loadList[T any](ctx context.Context, s kv.Storage, key string) ([]T, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	if !ok {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func saveList[T any](ctx context.Context, s kv.Storage, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := s.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

// ----- teams -----

func (r *Repository) Teams(ctx context.Context) ([]Team, error) {
	return loadList[Team](ctx, r.storage, teamsKey)
}

func (r *Repository) Team(ctx context.Context, id string) (Team, error) {
	teams, err := r.Teams(ctx)
	if err != nil {
		return Team{}, err
	}
	i := slices.IndexFunc(teams, func(t Team) bool { return t.ID == id })
	if i < 0 {
		return Team{}, &TeamNotFoundError{ID: id}
	}
	return teams[i], nil
}

func (r *Repository) CreateTeam(ctx context.Context, name, passcode string) (Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Team{}, ErrEmptyName
	}

	teams, err := r.Teams(ctx)
	if err != nil {
		return Team{}, err
	}

	now := r.now().UTC()
	team := Team{
		ID:        r.newID(),
		Name:      name,
		Passcode:  passcode,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := saveList(ctx, r.storage, teamsKey, append(teams, team)); err != nil {
		return Team{}, err
	}

	log.Info(log.CatReport, "team created", "id", team.ID, "name", name)
	return team, nil
}

// UpdateTeam renames a team and replaces its passcode. An empty passcode
// opens the team.
func (r *Repository) UpdateTeam(ctx context.Context, id, name, passcode string) (Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Team{}, ErrEmptyName
	}

	teams, err := r.Teams(ctx)
	if err != nil {
		return Team{}, err
	}
	i := slices.IndexFunc(teams, func(t Team) bool { return t.ID == id })
	if i < 0 {
		return Team{}, &TeamNotFoundError{ID: id}
	}

	teams[i].Name = name
	teams[i].Passcode = passcode
	teams[i].UpdatedAt = r.now().UTC()

	if err := saveList(ctx, r.storage, teamsKey, teams); err != nil {
		return Team{}, err
	}
	return teams[i], nil
}

// DeleteTeam removes the team and all of its entries.
func (r *Repository) DeleteTeam(ctx context.Context, id string) error {
	teams, err := r.Teams(ctx)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(teams, func(t Team) bool { return t.ID == id })
	if i < 0 {
		return &TeamNotFoundError{ID: id}
	}

	if err := saveList(ctx, r.storage, teamsKey, slices.Delete(teams, i, i+1)); err != nil {
		return err
	}
	for _, key := range []string{tasksKey(id), achievementsKey(id), challengesKey(id)} {
		if err := r.storage.Delete(ctx, key); err != nil {
			return fmt.Errorf("deleting %s: %w", key, err)
		}
	}

	log.Info(log.CatReport, "team deleted", "id", id)
	return nil
}

// touchTeam bumps a team's UpdatedAt after one of its collections changes.
func (r *Repository) touchTeam(ctx context.Context, id string) error {
	teams, err := r.Teams(ctx)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(teams, func(t Team) bool { return t.ID == id })
	if i < 0 {
		return nil
	}
	teams[i].UpdatedAt = r.now().UTC()
	return saveList(ctx, r.storage, teamsKey, teams)
}

// ----- verification -----

// VerifyAdminPassword compares pw with the configured admin password.
func (r *Repository) VerifyAdminPassword(pw string) bool {
	return pw == r.adminPassword
}

// VerifyTeamPasscode reports whether code opens the team. Unknown teams never
// verify; teams without a passcode always do.
func (r *Repository) VerifyTeamPasscode(ctx context.Context, teamID, code string) bool {
	team, err := r.Team(ctx, teamID)
	if err != nil {
		log.Debug(log.CatReport, "passcode check on missing team", "id", teamID, "error", err)
		return false
	}
	if team.Passcode == "" {
		return true
	}
	return team.Passcode == code
}
