// Package catalog looks up the available Minecraft versions and the mod
// loader versions compatible with them. All lookups go over HTTP to the
// upstream version catalogs; callers are expected to degrade gracefully when a
// lookup fails.
package catalog

import (
	"context"

	"github.com/go-tiger/mc-launcher-bot/pkg/entities"
)

// VersionTypeRelease is the classification of a stable game version in the
// Mojang manifest.
const VersionTypeRelease = "release"

// GameVersion is a single entry from the game version manifest.
type GameVersion struct {
	// ID is the version identifier, e.g. "1.20.1".
	ID string `json:"id"`

	// Type is the classification of the version, e.g. "release" or
	// "snapshot".
	Type string `json:"type"`
}

// Catalog supplies the available game versions and the loader versions
// compatible with a (game version, loader) pair.
type Catalog interface {
	// ListGameVersions lists all known game versions, newest first.
	ListGameVersions(ctx context.Context) ([]GameVersion, error)

	// ListLoaderVersions lists the loader versions compatible with the given
	// game version, newest first. An empty slice is a valid result; it means
	// no compatible loader version exists.
	ListLoaderVersions(ctx context.Context, loader entities.ModLoader, gameVersion string) ([]string, error)
}
