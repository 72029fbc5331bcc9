package ticketing

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/go-tiger/mc-launcher-bot/pkg/catalog"
	"github.com/go-tiger/mc-launcher-bot/pkg/entities"
	"github.com/go-tiger/mc-launcher-bot/pkg/logging"
	"github.com/stretchr/testify/require"
)

// fakeCatalog serves canned versions, optionally failing on demand.
type fakeCatalog struct {
	gameVersions   []catalog.GameVersion
	gameErr        error
	loaderVersions map[string][]string
	loaderErr      error
}

func (f *fakeCatalog) ListGameVersions(_ context.Context) ([]catalog.GameVersion, error) {
	if f.gameErr != nil {
		return nil, f.gameErr
	}
	return f.gameVersions, nil
}

func (f *fakeCatalog) ListLoaderVersions(_ context.Context, loader entities.ModLoader, gameVersion string) ([]string, error) {
	if f.loaderErr != nil {
		return nil, f.loaderErr
	}
	return f.loaderVersions[string(loader)+"/"+gameVersion], nil
}

func newTestWizard(t *testing.T, cat catalog.Catalog) *Wizard {
	t.Helper()
	l, err := logging.CommonLogger(logging.NewConfig(`tests`))
	require.NoError(t, err, "Failed to create logger")
	return NewWizard(l, NewSelectionStore(), cat)
}

func releases(n int) []catalog.GameVersion {
	versions := make([]catalog.GameVersion, 0, n)
	for i := 0; i < n; i++ {
		versions = append(versions, catalog.GameVersion{
			ID:   fmt.Sprintf("1.%d", n-i),
			Type: catalog.VersionTypeRelease,
		})
	}
	return versions
}

func TestWizardStart(t *testing.T) {
	cat := &fakeCatalog{
		gameVersions: []catalog.GameVersion{
			{ID: "25w02a", Type: "snapshot"},
			{ID: "1.21.4", Type: catalog.VersionTypeRelease},
			{ID: "1.21.3", Type: catalog.VersionTypeRelease},
		},
	}
	w := newTestWizard(t, cat)

	view, err := w.Start(context.Background(), "user-1")
	require.NoError(t, err)

	// Snapshots are filtered out; catalog order is kept.
	require.Equal(t, []StepOption{
		{Value: "1.21.4"},
		{Value: "1.21.3"},
	}, view.GameVersions)

	require.Len(t, view.LoaderKinds, 3)
	require.False(t, view.LoaderKindsEnabled)
	require.Nil(t, view.LoaderVersions)
	require.False(t, view.CanSubmit)
}

func TestWizardStartCatalogDown(t *testing.T) {
	w := newTestWizard(t, &fakeCatalog{gameErr: errors.New("catalog down")})

	_, err := w.Start(context.Background(), "user-1")
	require.Error(t, err)
}

func TestWizardGameVersionListBounded(t *testing.T) {
	w := newTestWizard(t, &fakeCatalog{gameVersions: releases(40)})

	view, err := w.Start(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, view.GameVersions, MaxSelectOptions)
}

func TestWizardFullFlow(t *testing.T) {
	cat := &fakeCatalog{
		gameVersions: releases(3),
		loaderVersions: map[string][]string{
			"Forge/1.3": {"47.3.0", "47.2.0"},
		},
	}
	w := newTestWizard(t, cat)
	ctx := context.Background()
	const userID = "user-1"

	_, err := w.Start(ctx, userID)
	require.NoError(t, err)

	view, err := w.SelectGameVersion(ctx, userID, "1.3")
	require.NoError(t, err)
	require.True(t, view.LoaderKindsEnabled)
	require.Nil(t, view.LoaderVersions)
	require.False(t, view.CanSubmit)

	view, err = w.SelectLoaderKind(ctx, userID, entities.LoaderForge)
	require.NoError(t, err)
	require.Equal(t, []StepOption{
		{Value: "47.3.0"},
		{Value: "47.2.0"},
	}, view.LoaderVersions)
	require.False(t, view.CanSubmit)

	view, err = w.SelectLoaderVersion(ctx, userID, "47.2.0")
	require.NoError(t, err)
	require.True(t, view.CanSubmit)
	require.Equal(t, []StepOption{
		{Value: "47.3.0"},
		{Value: "47.2.0", Selected: true},
	}, view.LoaderVersions)

	// The completed selection is available for submission.
	selection, err := w.Selection(userID)
	require.NoError(t, err)
	require.Equal(t, SelectionSession{
		GameVersion:   "1.3",
		LoaderKind:    entities.LoaderForge,
		LoaderVersion: "47.2.0",
	}, selection)
}

func TestWizardLoaderVersionLookupFailureOmitsStep(t *testing.T) {
	cat := &fakeCatalog{
		gameVersions: releases(3),
		loaderErr:    errors.New("catalog down"),
	}
	w := newTestWizard(t, cat)
	ctx := context.Background()
	const userID = "user-1"

	_, err := w.Start(ctx, userID)
	require.NoError(t, err)
	_, err = w.SelectGameVersion(ctx, userID, "1.2")
	require.NoError(t, err)

	// The lookup failure is swallowed; the step is simply absent and
	// submission stays blocked.
	view, err := w.SelectLoaderKind(ctx, userID, entities.LoaderFabric)
	require.NoError(t, err)
	require.Nil(t, view.LoaderVersions)
	require.False(t, view.CanSubmit)
}

func TestWizardEmptyLoaderVersionsOmitsStep(t *testing.T) {
	cat := &fakeCatalog{gameVersions: releases(3)}
	w := newTestWizard(t, cat)
	ctx := context.Background()
	const userID = "user-1"

	_, err := w.Start(ctx, userID)
	require.NoError(t, err)
	_, err = w.SelectGameVersion(ctx, userID, "1.2")
	require.NoError(t, err)

	view, err := w.SelectLoaderKind(ctx, userID, entities.LoaderNeoForge)
	require.NoError(t, err)
	require.Nil(t, view.LoaderVersions)
	require.False(t, view.CanSubmit)
}

func TestWizardSelectionIncomplete(t *testing.T) {
	w := newTestWizard(t, &fakeCatalog{gameVersions: releases(3)})
	ctx := context.Background()
	const userID = "user-1"

	// No session at all.
	_, err := w.Selection(userID)
	require.ErrorIs(t, err, ErrSelectionIncomplete)

	// Partial session.
	_, err = w.Start(ctx, userID)
	require.NoError(t, err)
	_, err = w.SelectGameVersion(ctx, userID, "1.2")
	require.NoError(t, err)

	_, err = w.Selection(userID)
	require.ErrorIs(t, err, ErrSelectionIncomplete)

	// Cleared session.
	w.ClearSelection(userID)
	_, err = w.Selection(userID)
	require.ErrorIs(t, err, ErrSelectionIncomplete)
}

func TestWizardRejectsUnknownLoaderKind(t *testing.T) {
	w := newTestWizard(t, &fakeCatalog{gameVersions: releases(3)})

	_, err := w.SelectLoaderKind(context.Background(), "user-1", entities.ModLoader("Quilt"))
	require.ErrorIs(t, err, ErrInvalidLoader)
}

func TestWizardChangingGameVersionResetsDownstream(t *testing.T) {
	cat := &fakeCatalog{
		gameVersions: releases(3),
		loaderVersions: map[string][]string{
			"Forge/1.3": {"47.2.0"},
			"Forge/1.2": {"46.1.0"},
		},
	}
	w := newTestWizard(t, cat)
	ctx := context.Background()
	const userID = "user-1"

	_, err := w.Start(ctx, userID)
	require.NoError(t, err)
	_, err = w.SelectGameVersion(ctx, userID, "1.3")
	require.NoError(t, err)
	_, err = w.SelectLoaderKind(ctx, userID, entities.LoaderForge)
	require.NoError(t, err)
	view, err := w.SelectLoaderVersion(ctx, userID, "47.2.0")
	require.NoError(t, err)
	require.True(t, view.CanSubmit)

	// Changing the game version drops the loader kind and version, so the
	// loader version step disappears and submission is blocked again.
	view, err = w.SelectGameVersion(ctx, userID, "1.2")
	require.NoError(t, err)
	require.Equal(t, SelectionSession{GameVersion: "1.2"}, view.Selection)
	require.Nil(t, view.LoaderVersions)
	require.False(t, view.CanSubmit)
}
