package ticketing

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-tiger/mc-launcher-bot/pkg/catalog"
	"github.com/go-tiger/mc-launcher-bot/pkg/entities"
	"github.com/go-tiger/mc-launcher-bot/pkg/logging"
)

// MaxSelectOptions is the most options a single-choice list may carry. This
// is the Discord limit for a select menu.
const MaxSelectOptions = 25

// StepOption is a single choice in a wizard step.
type StepOption struct {
	// Value is the machine readable option value, also used as the label.
	Value string

	// Selected marks the option the user has already chosen.
	Selected bool
}

// WizardView is everything the platform layer needs to render the cascading
// selection. It carries no rendering concerns, only option lists and
// enabled/disabled state.
type WizardView struct {
	// Selection is the session the view was built from.
	Selection SelectionSession

	// GameVersions are the step 1 options.
	GameVersions []StepOption

	// LoaderKinds are the step 2 options.
	LoaderKinds []StepOption

	// LoaderKindsEnabled is whether step 2 is selectable yet.
	LoaderKindsEnabled bool

	// LoaderVersions are the step 3 options. Nil means the step is omitted
	// entirely, either because the upstream choices are missing or because
	// the catalog had nothing compatible.
	LoaderVersions []StepOption

	// CanSubmit is whether all three selections have been made.
	CanSubmit bool
}

// Wizard drives the three step cascading selection: game version, loader
// kind, loader version.
type Wizard struct {
	// l is the logger.
	l *slog.Logger

	// sessions holds the in-progress selections.
	sessions SelectionStore

	// catalog supplies the available versions.
	catalog catalog.Catalog
}

// NewWizard creates a new wizard controller.
func NewWizard(l *slog.Logger, sessions SelectionStore, cat catalog.Catalog) *Wizard {
	return &Wizard{
		l:        l.With(slog.String(logging.KeyComponent, "wizard")),
		sessions: sessions,
		catalog:  cat,
	}
}

// Start resets the user's session and builds the initial view. The game
// version list is essential; if the catalog cannot supply it the wizard
// cannot start and the error is returned.
func (w *Wizard) Start(ctx context.Context, userID string) (*WizardView, error) {
	w.sessions.Set(userID, SelectionSession{})
	return w.buildView(ctx, SelectionSession{})
}

// SelectGameVersion records a game version choice. Downstream selections are
// cleared by the cascade.
func (w *Wizard) SelectGameVersion(ctx context.Context, userID, version string) (*WizardView, error) {
	session := w.sessions.Update(userID, SelectionUpdate{GameVersion: &version})
	return w.buildView(ctx, session)
}

// SelectLoaderKind records a loader kind choice. The loader version is
// cleared by the cascade.
func (w *Wizard) SelectLoaderKind(ctx context.Context, userID string, kind entities.ModLoader) (*WizardView, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLoader, kind)
	}
	session := w.sessions.Update(userID, SelectionUpdate{LoaderKind: &kind})
	return w.buildView(ctx, session)
}

// SelectLoaderVersion records a loader version choice.
func (w *Wizard) SelectLoaderVersion(ctx context.Context, userID, version string) (*WizardView, error) {
	session := w.sessions.Update(userID, SelectionUpdate{LoaderVersion: &version})
	return w.buildView(ctx, session)
}

// Selection returns the user's completed selection without consuming it. It
// returns ErrSelectionIncomplete when any of the three choices is missing,
// including when the session has expired or been cleared concurrently.
func (w *Wizard) Selection(userID string) (SelectionSession, error) {
	session, ok := w.sessions.Get(userID)
	if !ok || !session.Complete() {
		return SelectionSession{}, ErrSelectionIncomplete
	}
	return session, nil
}

// ClearSelection discards the user's session. Called once a commission has
// been created from it, or on explicit cancellation.
func (w *Wizard) ClearSelection(userID string) {
	w.sessions.Clear(userID)
}

// buildView assembles the view for the current session state.
func (w *Wizard) buildView(ctx context.Context, session SelectionSession) (*WizardView, error) {
	gameVersions, err := w.gameVersionOptions(ctx, session)
	if err != nil {
		return nil, err
	}

	view := &WizardView{
		Selection:          session,
		GameVersions:       gameVersions,
		LoaderKinds:        w.loaderKindOptions(session),
		LoaderKindsEnabled: session.GameVersion != "",
		CanSubmit:          session.Complete(),
	}

	// The loader version step only appears once the upstream choices exist
	// and the catalog has something compatible. A failed or empty lookup
	// omits the step; submission stays blocked until the user picks a
	// combination that has versions.
	if session.GameVersion != "" && session.LoaderKind != "" {
		versions, err := w.catalog.ListLoaderVersions(ctx, session.LoaderKind, session.GameVersion)
		if err != nil {
			w.l.Warn("Loader version lookup failed, omitting step",
				slog.String("game_version", session.GameVersion),
				slog.String("loader", string(session.LoaderKind)),
				slog.String(logging.KeyError, err.Error()),
			)
		} else if len(versions) > 0 {
			if len(versions) > MaxSelectOptions {
				versions = versions[:MaxSelectOptions]
			}
			options := make([]StepOption, 0, len(versions))
			for _, v := range versions {
				options = append(options, StepOption{
					Value:    v,
					Selected: v == session.LoaderVersion,
				})
			}
			view.LoaderVersions = options
		}
	}

	return view, nil
}

// gameVersionOptions lists the stable game versions, bounded to the platform
// UI limit. Catalog order is kept; the first N are taken.
func (w *Wizard) gameVersionOptions(ctx context.Context, session SelectionSession) ([]StepOption, error) {
	versions, err := w.catalog.ListGameVersions(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing game versions: %w", err)
	}

	options := make([]StepOption, 0, MaxSelectOptions)
	for _, v := range versions {
		if v.Type != catalog.VersionTypeRelease {
			continue
		}
		options = append(options, StepOption{
			Value:    v.ID,
			Selected: v.ID == session.GameVersion,
		})
		if len(options) == MaxSelectOptions {
			break
		}
	}
	return options, nil
}

func (w *Wizard) loaderKindOptions(session SelectionSession) []StepOption {
	options := make([]StepOption, 0, len(entities.AllModLoaders))
	for _, loader := range entities.AllModLoaders {
		options = append(options, StepOption{
			Value:    string(loader),
			Selected: loader == session.LoaderKind,
		})
	}
	return options
}
