package catalog

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-tiger/mc-launcher-bot/pkg/entities"
	"github.com/go-tiger/mc-launcher-bot/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

const (
	defaultManifestURL         = "https://launchermeta.mojang.com/mc/game/version_manifest.json"
	defaultForgeMetadataURL    = "https://maven.minecraftforge.net/net/minecraftforge/forge/maven-metadata.xml"
	defaultNeoForgeMetadataURL = "https://maven.neoforged.net/releases/net/neoforged/neoforge/maven-metadata.xml"
	defaultFabricMetaURL       = "https://meta.fabricmc.net"

	clientName = "catalog_client"
)

// Client is the HTTP implementation of Catalog. Lookups are rate limited so
// that a burst of wizard interactions cannot hammer the upstream catalogs.
type Client struct {
	// l is the logger.
	l *slog.Logger

	// httpClient is the client used for all lookups.
	httpClient *http.Client

	// limiter bounds the rate of outgoing lookups.
	limiter *rate.Limiter

	// Endpoint URLs. Overridable in tests.
	manifestURL         string
	forgeMetadataURL    string
	neoForgeMetadataURL string
	fabricMetaURL       string
}

// NewClient creates a new catalog client.
func NewClient(l *slog.Logger) *Client {
	return &Client{
		l: l.With(slog.String(logging.KeyComponent, clientName)),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter:             rate.NewLimiter(rate.Limit(5), 10),
		manifestURL:         defaultManifestURL,
		forgeMetadataURL:    defaultForgeMetadataURL,
		neoForgeMetadataURL: defaultNeoForgeMetadataURL,
		fabricMetaURL:       defaultFabricMetaURL,
	}
}

// versionManifest is the shape of the Mojang version manifest.
type versionManifest struct {
	Versions []GameVersion `json:"versions"`
}

// mavenMetadata is the shape of a maven-metadata.xml document.
type mavenMetadata struct {
	Versioning struct {
		Versions struct {
			Version []string `xml:"version"`
		} `xml:"versions"`
	} `xml:"versioning"`
}

// fabricLoaderEntry is one entry from the fabric meta loader listing.
type fabricLoaderEntry struct {
	Loader struct {
		Version string `json:"version"`
	} `json:"loader"`
}

func (c *Client) ListGameVersions(ctx context.Context) ([]GameVersion, error) {
	body, err := c.get(ctx, "game_versions", c.manifestURL)
	if err != nil {
		return nil, err
	}

	manifest := new(versionManifest)
	if err := json.Unmarshal(body, manifest); err != nil {
		return nil, fmt.Errorf("error decoding version manifest: %w", err)
	}

	// The manifest lists versions newest first already.
	return manifest.Versions, nil
}

func (c *Client) ListLoaderVersions(ctx context.Context, loader entities.ModLoader, gameVersion string) ([]string, error) {
	switch loader {
	case entities.LoaderForge:
		return c.listForgeVersions(ctx, gameVersion)
	case entities.LoaderFabric:
		return c.listFabricVersions(ctx, gameVersion)
	case entities.LoaderNeoForge:
		return c.listNeoForgeVersions(ctx, gameVersion)
	default:
		return nil, fmt.Errorf("unsupported mod loader %q", loader)
	}
}

// listForgeVersions lists forge builds for the game version. Forge publishes
// entries of the form "<game version>-<forge version>" in a single metadata
// document covering every game version.
func (c *Client) listForgeVersions(ctx context.Context, gameVersion string) ([]string, error) {
	body, err := c.get(ctx, "forge_versions", c.forgeMetadataURL)
	if err != nil {
		return nil, err
	}

	metadata := new(mavenMetadata)
	if err := xml.Unmarshal(body, metadata); err != nil {
		return nil, fmt.Errorf("error decoding forge metadata: %w", err)
	}

	prefix := gameVersion + "-"
	versions := make([]string, 0)
	for _, v := range metadata.Versioning.Versions.Version {
		if strings.HasPrefix(v, prefix) {
			versions = append(versions, strings.TrimPrefix(v, prefix))
		}
	}

	// Maven metadata lists oldest first; present newest first.
	reverse(versions)
	return versions, nil
}

// listFabricVersions lists fabric loader builds for the game version.
func (c *Client) listFabricVersions(ctx context.Context, gameVersion string) ([]string, error) {
	url := fmt.Sprintf("%s/v2/versions/loader/%s", c.fabricMetaURL, gameVersion)

	body, err := c.get(ctx, "fabric_versions", url)
	if err != nil {
		return nil, err
	}

	var entries []fabricLoaderEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("error decoding fabric loader listing: %w", err)
	}

	versions := make([]string, 0, len(entries))
	for _, e := range entries {
		versions = append(versions, e.Loader.Version)
	}
	return versions, nil
}

// listNeoForgeVersions lists neoforge builds for the game version. NeoForge
// drops the leading "1." from the game version in its own version numbers, so
// game version 1.21.4 maps to neoforge builds 21.4.x.
func (c *Client) listNeoForgeVersions(ctx context.Context, gameVersion string) ([]string, error) {
	body, err := c.get(ctx, "neoforge_versions", c.neoForgeMetadataURL)
	if err != nil {
		return nil, err
	}

	metadata := new(mavenMetadata)
	if err := xml.Unmarshal(body, metadata); err != nil {
		return nil, fmt.Errorf("error decoding neoforge metadata: %w", err)
	}

	prefix := neoForgeVersionPrefix(gameVersion)
	versions := make([]string, 0)
	for _, v := range metadata.Versioning.Versions.Version {
		if strings.HasPrefix(v, prefix) {
			versions = append(versions, v)
		}
	}

	reverse(versions)
	return versions, nil
}

// neoForgeVersionPrefix maps a game version onto the prefix of the matching
// neoforge builds. "1.21.4" maps to "21.4."; "1.21" has no patch component
// and maps to "21.0.".
func neoForgeVersionPrefix(gameVersion string) string {
	trimmed := strings.TrimPrefix(gameVersion, "1.")
	if !strings.Contains(trimmed, ".") {
		trimmed += ".0"
	}
	return trimmed + "."
}

// get performs a rate limited GET against the given URL and returns the
// response body.
func (c *Client) get(ctx context.Context, endpoint, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("error waiting for rate limiter: %w", err)
	}

	t := prometheus.NewTimer(CatalogLatency.WithLabelValues(endpoint))
	defer t.ObserveDuration()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		CatalogTotalRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("error requesting %s: %w", endpoint, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.l.Error("Error closing response body", slog.String(logging.KeyError, err.Error()))
		}
	}()

	CatalogTotalRequests.WithLabelValues(endpoint, fmt.Sprintf("%d", resp.StatusCode)).Inc()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, endpoint)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}
	return body, nil
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
