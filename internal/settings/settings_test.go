package settings

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/weekly/internal/kv"
)

type brokenStorage struct{ kv.Storage }

func (brokenStorage) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("io error")
}

func TestLoad_Defaults(t *testing.T) {
	repo := NewRepository(kv.NewMemory(nil))

	got := repo.Load(context.Background())
	require.Equal(t, Defaults(), got)
	require.Equal(t, "التقرير الأسبوعي", got.HeaderTitle)
}

func TestLoad_OverlaysStoredFields(t *testing.T) {
	mem := kv.NewMemory(map[string]string{
		StorageKey: `{"headerTitle":"Weekly","colors":{"primary":"0 100% 50%"}}`,
	})

	got := NewRepository(mem).Load(context.Background())
	require.Equal(t, "Weekly", got.HeaderTitle)
	require.Equal(t, Defaults().HeaderSubtitle, got.HeaderSubtitle)
	require.Equal(t, "0 100% 50%", got.Colors[TokenPrimary])
	require.Equal(t, Defaults().Colors[TokenAccent], got.Colors[TokenAccent])
}

func TestLoad_LegacyRecordWithoutColors(t *testing.T) {
	mem := kv.NewMemory(map[string]string{
		StorageKey: `{"headerTitle":"A","headerSubtitle":"B"}`,
	})

	got := NewRepository(mem).Load(context.Background())
	require.Equal(t, "A", got.HeaderTitle)
	require.Equal(t, "B", got.HeaderSubtitle)
	require.Equal(t, Defaults().Colors, got.Colors)
}

func TestLoad_SoftFailures(t *testing.T) {
	ctx := context.Background()

	corrupt := NewRepository(kv.NewMemory(map[string]string{StorageKey: "{oops"}))
	require.Equal(t, Defaults(), corrupt.Load(ctx))

	broken := NewRepository(brokenStorage{})
	require.Equal(t, Defaults(), broken.Load(ctx))
}

func TestSave_RoundTrip(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory(nil)
	repo := NewRepository(mem)

	s := Defaults()
	s.HeaderTitle = "تقرير الفريق"
	require.NoError(t, s.SetColorHex(TokenPrimary, "#123d59"))
	require.NoError(t, repo.Save(ctx, s))

	raw, ok, _ := mem.Get(ctx, StorageKey)
	require.True(t, ok)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
	require.Equal(t, "تقرير الفريق", decoded["headerTitle"])

	loaded := repo.Load(ctx)
	require.Equal(t, s, loaded)

	hex, err := loaded.ColorHex(TokenPrimary)
	require.NoError(t, err)
	require.Equal(t, "#123d59", hex)
}

func TestSave_Validation(t *testing.T) {
	repo := NewRepository(kv.NewMemory(nil))
	ctx := context.Background()

	s := Defaults()
	s.HeaderTitle = "   "
	require.ErrorIs(t, repo.Save(ctx, s), ErrEmptyTitle)

	s.HeaderTitle = strings.Repeat("ع", MaxTitleLength)
	require.NoError(t, repo.Save(ctx, s))

	s.HeaderTitle = strings.Repeat("ع", MaxTitleLength+1)
	require.ErrorIs(t, repo.Save(ctx, s), ErrTitleTooLong)

	// Combining sequences count once.
	s.HeaderTitle = strings.Repeat("é", MaxTitleLength)
	require.NoError(t, repo.Save(ctx, s))
}

func TestColors(t *testing.T) {
	s := Defaults()

	hex, err := s.ColorHex(TokenPrimary)
	require.NoError(t, err)
	require.Equal(t, "#123d59", hex)

	require.NoError(t, s.SetColorHex(TokenAccent, "#FF8000"))
	require.Equal(t, "30 100% 50%", s.Colors[TokenAccent])

	require.NoError(t, s.SetColorHSL(TokenBackground, "hsl(204, 66%, 21%)"))
	require.Equal(t, "204 66% 21%", s.Colors[TokenBackground])

	// Decimal input snaps through the hex grid, so it may land one unit off.
	require.NoError(t, s.SetColorHSL(TokenBackground, "204.4 66.2% 21%"))
	require.Equal(t, "205 66% 21%", s.Colors[TokenBackground])

	require.NoError(t, s.SetColorHex(TokenForeground, "garbage"))
	require.Equal(t, "0 0% 0%", s.Colors[TokenForeground])

	_, err = s.ColorHex("sidebar")
	require.ErrorIs(t, err, ErrUnknownToken)
	require.ErrorIs(t, s.SetColorHex("sidebar", "#ffffff"), ErrUnknownToken)
	require.ErrorIs(t, s.SetColorHSL("sidebar", "0 0% 0%"), ErrUnknownToken)

	var empty Settings
	require.NoError(t, empty.SetColorHex(TokenPrimary, "#ffffff"))
	require.Equal(t, "0 0% 100%", empty.Colors[TokenPrimary])
}
