package ticketing

import (
	"testing"

	"github.com/go-tiger/mc-launcher-bot/pkg/entities"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func loaderPtr(m entities.ModLoader) *entities.ModLoader {
	return &m
}

func TestApplyUpdate(t *testing.T) {
	tests := []struct {
		name    string
		current SelectionSession
		update  SelectionUpdate
		want    SelectionSession
	}{
		{
			name:    "SetGameVersionOnEmpty",
			current: SelectionSession{},
			update:  SelectionUpdate{GameVersion: strPtr("1.20.1")},
			want:    SelectionSession{GameVersion: "1.20.1"},
		},
		{
			name: "ChangingGameVersionClearsDownstream",
			current: SelectionSession{
				GameVersion:   "1.20.1",
				LoaderKind:    entities.LoaderForge,
				LoaderVersion: "47.2.0",
			},
			update: SelectionUpdate{GameVersion: strPtr("1.21")},
			want:   SelectionSession{GameVersion: "1.21"},
		},
		{
			name: "ChangingLoaderKindClearsLoaderVersionOnly",
			current: SelectionSession{
				GameVersion:   "1.20.1",
				LoaderKind:    entities.LoaderForge,
				LoaderVersion: "47.2.0",
			},
			update: SelectionUpdate{LoaderKind: loaderPtr(entities.LoaderFabric)},
			want: SelectionSession{
				GameVersion: "1.20.1",
				LoaderKind:  entities.LoaderFabric,
			},
		},
		{
			name: "ReselectingSameGameVersionStillClearsDownstream",
			current: SelectionSession{
				GameVersion:   "1.20.1",
				LoaderKind:    entities.LoaderForge,
				LoaderVersion: "47.2.0",
			},
			update: SelectionUpdate{GameVersion: strPtr("1.20.1")},
			want:   SelectionSession{GameVersion: "1.20.1"},
		},
		{
			name: "LoaderKindAndVersionInOneUpdate",
			current: SelectionSession{
				GameVersion: "1.20.1",
			},
			update: SelectionUpdate{
				LoaderKind:    loaderPtr(entities.LoaderForge),
				LoaderVersion: strPtr("47.2.0"),
			},
			want: SelectionSession{
				GameVersion:   "1.20.1",
				LoaderKind:    entities.LoaderForge,
				LoaderVersion: "47.2.0",
			},
		},
		{
			name: "EmptyUpdateIsNoOp",
			current: SelectionSession{
				GameVersion: "1.20.1",
				LoaderKind:  entities.LoaderFabric,
			},
			update: SelectionUpdate{},
			want: SelectionSession{
				GameVersion: "1.20.1",
				LoaderKind:  entities.LoaderFabric,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, applyUpdate(tt.current, tt.update))
		})
	}
}

// TestSelectionStoreCascadeScenario walks the full cascade scenario: set the
// game version, add a loader kind and version, then change the game version
// and watch the downstream selections fall away.
func TestSelectionStoreCascadeScenario(t *testing.T) {
	store := NewSelectionStore()
	const userID = "user-1"

	got := store.Update(userID, SelectionUpdate{GameVersion: strPtr("1.20.1")})
	require.Equal(t, SelectionSession{GameVersion: "1.20.1"}, got)

	got = store.Update(userID, SelectionUpdate{
		LoaderKind:    loaderPtr(entities.LoaderForge),
		LoaderVersion: strPtr("47.2.0"),
	})
	require.Equal(t, SelectionSession{
		GameVersion:   "1.20.1",
		LoaderKind:    entities.LoaderForge,
		LoaderVersion: "47.2.0",
	}, got)
	require.True(t, got.Complete())

	got = store.Update(userID, SelectionUpdate{GameVersion: strPtr("1.21")})
	require.Equal(t, SelectionSession{GameVersion: "1.21"}, got)
	require.False(t, got.Complete())
}

func TestSelectionStoreGetSetClear(t *testing.T) {
	store := NewSelectionStore()
	const userID = "user-1"

	// Absent state is a valid result, not a failure.
	_, ok := store.Get(userID)
	require.False(t, ok)

	store.Set(userID, SelectionSession{GameVersion: "1.21"})
	got, ok := store.Get(userID)
	require.True(t, ok)
	require.Equal(t, SelectionSession{GameVersion: "1.21"}, got)

	// Set replaces rather than merges.
	store.Set(userID, SelectionSession{})
	got, ok = store.Get(userID)
	require.True(t, ok)
	require.Equal(t, SelectionSession{}, got)

	store.Clear(userID)
	_, ok = store.Get(userID)
	require.False(t, ok)

	// Clearing an absent session is fine.
	store.Clear(userID)
}

func TestSelectionStoreKeyedPerUser(t *testing.T) {
	store := NewSelectionStore()

	store.Update("user-1", SelectionUpdate{GameVersion: strPtr("1.20.1")})
	store.Update("user-2", SelectionUpdate{GameVersion: strPtr("1.21")})

	got, ok := store.Get("user-1")
	require.True(t, ok)
	require.Equal(t, "1.20.1", got.GameVersion)

	got, ok = store.Get("user-2")
	require.True(t, ok)
	require.Equal(t, "1.21", got.GameVersion)
}
