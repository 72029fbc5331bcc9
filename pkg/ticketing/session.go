package ticketing

import (
	"sync"

	"github.com/go-tiger/mc-launcher-bot/pkg/entities"
)

// SelectionSession is the in-progress wizard state for a single user. It is
// ephemeral; a process restart loses in-flight sessions by design.
type SelectionSession struct {
	// GameVersion is the chosen Minecraft version.
	GameVersion string

	// LoaderKind is the chosen mod loader family.
	LoaderKind entities.ModLoader

	// LoaderVersion is the chosen loader version. Only meaningful once both
	// GameVersion and LoaderKind are set.
	LoaderVersion string
}

// Complete reports whether all three selections have been made.
func (s SelectionSession) Complete() bool {
	return s.GameVersion != "" && s.LoaderKind != "" && s.LoaderVersion != ""
}

// SelectionUpdate is a partial update to a selection session. Nil fields are
// left untouched.
type SelectionUpdate struct {
	GameVersion   *string
	LoaderKind    *entities.ModLoader
	LoaderVersion *string
}

// applyUpdate merges an update into a session, enforcing the cascade: setting
// the game version clears the loader kind and loader version, and setting the
// loader kind clears the loader version. Fields set in the same update are
// applied upstream first, so an update may legitimately set a field the
// cascade just cleared.
func applyUpdate(current SelectionSession, update SelectionUpdate) SelectionSession {
	next := current

	if update.GameVersion != nil {
		next.GameVersion = *update.GameVersion
		next.LoaderKind = ""
		next.LoaderVersion = ""
	}

	if update.LoaderKind != nil {
		next.LoaderKind = *update.LoaderKind
		next.LoaderVersion = ""
	}

	if update.LoaderVersion != nil {
		next.LoaderVersion = *update.LoaderVersion
	}

	return next
}

// SelectionStore holds in-progress wizard sessions keyed by user ID. Absent
// state is a valid result, never an error. Sessions are shared across guilds;
// a user mid-wizard in two guilds at once shares one session.
type SelectionStore interface {
	// Set replaces the session for a user.
	Set(userID string, session SelectionSession)

	// Get returns the session for a user, and whether one exists.
	Get(userID string) (SelectionSession, bool)

	// Update merges a partial update into the user's session, creating it if
	// absent, and returns the resulting session.
	Update(userID string, update SelectionUpdate) SelectionSession

	// Clear removes the session for a user.
	Clear(userID string)
}

type selectionStore struct {
	// mtx guards sessions. Interactions are handled on separate goroutines;
	// rapid double-clicks from one user are last-write-wins.
	mtx sync.Mutex

	sessions map[string]SelectionSession
}

// NewSelectionStore creates a new in-memory selection store.
func NewSelectionStore() SelectionStore {
	return &selectionStore{
		sessions: make(map[string]SelectionSession),
	}
}

func (s *selectionStore) Set(userID string, session SelectionSession) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.sessions[userID] = session
}

func (s *selectionStore) Get(userID string) (SelectionSession, bool) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	session, ok := s.sessions[userID]
	return session, ok
}

func (s *selectionStore) Update(userID string, update SelectionUpdate) SelectionSession {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	next := applyUpdate(s.sessions[userID], update)
	s.sessions[userID] = next
	return next
}

func (s *selectionStore) Clear(userID string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	delete(s.sessions, userID)
}
