package layout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/weekly/internal/kv"
)

// failingStorage fails every call.
type failingStorage struct{}

func (failingStorage) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("storage offline")
}

func (failingStorage) Set(context.Context, string, string) error {
	return errors.New("storage offline")
}

func (failingStorage) Delete(context.Context, string) error {
	return errors.New("storage offline")
}

func TestOpen_FreshKeyUsesDefaults(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory(nil)

	s := Open(ctx, mem, "k", []string{"a", "b", "c"})
	require.Equal(t, []string{"a", "b", "c"}, s.Read())

	_, ok, _ := mem.Get(ctx, "k")
	require.False(t, ok, "opening does not write")
}

func TestOpen_ReorderPersists(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory(nil)
	defaults := []string{"a", "b", "c"}

	s := Open(ctx, mem, "k", defaults)
	require.NoError(t, s.Write(ctx, []string{"c", "a", "b"}))
	require.Equal(t, []string{"c", "a", "b"}, s.Read())

	stored, _, _ := mem.Get(ctx, "k")
	require.JSONEq(t, `["c","a","b"]`, stored)

	again := Open(ctx, mem, "k", defaults)
	require.Equal(t, []string{"c", "a", "b"}, again.Read())
}

func TestOpen_Reconciles(t *testing.T) {
	tests := []struct {
		name     string
		stored   string
		defaults []string
		want     []string
	}{
		{
			name:     "new default appended",
			stored:   `["b","a"]`,
			defaults: []string{"a", "b", "c"},
			want:     []string{"b", "a", "c"},
		},
		{
			name:     "stale item dropped",
			stored:   `["x","a","b"]`,
			defaults: []string{"a", "b"},
			want:     []string{"a", "b"},
		},
		{
			name:     "add and drop together",
			stored:   `["darkmode","old","logo"]`,
			defaults: []string{"logo", "title", "darkmode"},
			want:     []string{"darkmode", "logo", "title"},
		},
		{
			name:     "empty stored array",
			stored:   `[]`,
			defaults: []string{"a", "b"},
			want:     []string{"a", "b"},
		},
		{
			name:     "non-string members ignored",
			stored:   `["c",1,null]`,
			defaults: []string{"a", "b", "c"},
			want:     []string{"c", "a", "b"},
		},
		{
			name:     "corrupt json",
			stored:   `not json`,
			defaults: []string{"a", "b", "c"},
			want:     []string{"a", "b", "c"},
		},
		{
			name:     "json object",
			stored:   `{"a":1}`,
			defaults: []string{"a", "b"},
			want:     []string{"a", "b"},
		},
		{
			name:     "json null",
			stored:   `null`,
			defaults: []string{"a", "b"},
			want:     []string{"a", "b"},
		},
		{
			name:     "empty string",
			stored:   ``,
			defaults: []string{"a", "b"},
			want:     []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			mem := kv.NewMemory(map[string]string{"k": tt.stored})

			s := Open(ctx, mem, "k", tt.defaults)
			require.Equal(t, tt.want, s.Read())
		})
	}
}

func TestOpen_CorruptValueLeftUntilWrite(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory(map[string]string{"k": "{{{"})

	s := Open(ctx, mem, "k", []string{"a", "b"})
	raw, _, _ := mem.Get(ctx, "k")
	require.Equal(t, "{{{", raw)

	require.NoError(t, s.Write(ctx, []string{"b", "a"}))
	raw, _, _ = mem.Get(ctx, "k")
	require.JSONEq(t, `["b","a"]`, raw)
}

func TestOpen_PersistReconciled(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory(map[string]string{"k": `["b","x"]`})

	s := Open(ctx, mem, "k", []string{"a", "b"}, WithPersistReconciled())
	require.Equal(t, []string{"b", "a"}, s.Read())

	raw, _, _ := mem.Get(ctx, "k")
	require.JSONEq(t, `["b","a"]`, raw)
}

func TestOpen_StorageErrorFallsBack(t *testing.T) {
	ctx := context.Background()

	s := Open(ctx, failingStorage{}, "k", []string{"a", "b"})
	require.Equal(t, []string{"a", "b"}, s.Read())

	err := s.Write(ctx, []string{"b", "a"})
	require.ErrorContains(t, err, "storage offline")
	require.Equal(t, []string{"b", "a"}, s.Read(), "in-memory order changes even when persisting fails")
}

func TestStore_WriteIsNotValidated(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory(nil)
	s := Open(ctx, mem, "k", []string{"a", "b"})

	require.NoError(t, s.Write(ctx, []string{"z", "z"}))
	require.Equal(t, []string{"z", "z"}, s.Read())

	// Repaired on the next open.
	require.Equal(t, []string{"a", "b"}, Open(ctx, mem, "k", []string{"a", "b"}).Read())
}

func TestStore_WriteNil(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory(nil)
	s := Open(ctx, mem, "k", []string{"a"})

	require.NoError(t, s.Write(ctx, nil))
	raw, _, _ := mem.Get(ctx, "k")
	require.Equal(t, "[]", raw)
}

func TestStore_ReadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	defaults := []string{"a", "b"}
	s := Open(ctx, kv.NewMemory(nil), "k", defaults)

	got := s.Read()
	got[0] = "mutated"
	defaults[1] = "mutated"

	require.Equal(t, []string{"a", "b"}, s.Read())
	require.Equal(t, []string{"a", "b"}, s.Defaults())
	require.Equal(t, "k", s.Key())
}

func TestStore_ReloadPicksUpExternalWrite(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory(nil)
	s := Open(ctx, mem, "k", []string{"a", "b", "c"})

	other := Open(ctx, mem, "k", []string{"a", "b", "c"})
	require.NoError(t, other.Write(ctx, []string{"c", "b", "a"}))

	require.Equal(t, []string{"a", "b", "c"}, s.Read())
	require.Equal(t, []string{"c", "b", "a"}, s.Reload(ctx))
	require.Equal(t, []string{"c", "b", "a"}, s.Read())
}

func TestStore_LastWriteWins(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory(nil)
	defaults := []string{"a", "b", "c"}

	first := Open(ctx, mem, "k", defaults)
	second := Open(ctx, mem, "k", defaults)

	require.NoError(t, first.Write(ctx, []string{"b", "a", "c"}))
	require.NoError(t, second.Write(ctx, []string{"c", "a", "b"}))

	require.Equal(t, []string{"c", "a", "b"}, Open(ctx, mem, "k", defaults).Read())
}

func TestStore_Reset(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory(map[string]string{"k": `["b","a"]`})
	s := Open(ctx, mem, "k", []string{"a", "b"})

	require.NoError(t, s.Reset(ctx))
	require.Equal(t, []string{"a", "b"}, s.Read())
	raw, _, _ := mem.Get(ctx, "k")
	require.JSONEq(t, `["a","b"]`, raw)
}

func TestStore_OverCachedStorage(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory(nil)
	cached := kv.NewCached(backend, 0)

	s := Open(ctx, cached, "k", []string{"a", "b"})
	require.NoError(t, s.Write(ctx, []string{"b", "a"}))

	raw, _, _ := backend.Get(ctx, "k")
	require.JSONEq(t, `["b","a"]`, raw)
	require.Equal(t, []string{"b", "a"}, Open(ctx, cached, "k", []string{"a", "b"}).Read())
}
