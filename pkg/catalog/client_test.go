package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-tiger/mc-launcher-bot/pkg/entities"
	"github.com/go-tiger/mc-launcher-bot/pkg/logging"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	l, err := logging.CommonLogger(logging.NewConfig(`tests`))
	require.NoError(t, err, "Failed to create logger")
	return NewClient(l)
}

func TestListGameVersions(t *testing.T) {
	const manifest = `{
		"latest": {"release": "1.21.4", "snapshot": "25w02a"},
		"versions": [
			{"id": "25w02a", "type": "snapshot"},
			{"id": "1.21.4", "type": "release"},
			{"id": "1.21.3", "type": "release"}
		]
	}`

	svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(manifest))
	}))
	defer svr.Close()

	c := newTestClient(t)
	c.manifestURL = svr.URL

	got, err := c.ListGameVersions(context.Background())
	require.NoError(t, err)
	require.Equal(t, []GameVersion{
		{ID: "25w02a", Type: "snapshot"},
		{ID: "1.21.4", Type: VersionTypeRelease},
		{ID: "1.21.3", Type: VersionTypeRelease},
	}, got)
}

func TestListGameVersionsUpstreamError(t *testing.T) {
	svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer svr.Close()

	c := newTestClient(t)
	c.manifestURL = svr.URL

	_, err := c.ListGameVersions(context.Background())
	require.Error(t, err)
}

func TestListForgeVersions(t *testing.T) {
	const metadata = `<?xml version="1.0" encoding="UTF-8"?>
<metadata>
  <versioning>
    <versions>
      <version>1.20.1-47.1.0</version>
      <version>1.20.1-47.2.0</version>
      <version>1.21-51.0.33</version>
    </versions>
  </versioning>
</metadata>`

	svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(metadata))
	}))
	defer svr.Close()

	c := newTestClient(t)
	c.forgeMetadataURL = svr.URL

	got, err := c.ListLoaderVersions(context.Background(), entities.LoaderForge, "1.20.1")
	require.NoError(t, err)

	// Only 1.20.1 builds, game version prefix stripped, newest first.
	require.Equal(t, []string{"47.2.0", "47.1.0"}, got)
}

func TestListFabricVersions(t *testing.T) {
	const listing = `[
		{"loader": {"version": "0.16.9"}},
		{"loader": {"version": "0.16.8"}}
	]`

	svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/versions/loader/1.21.4", r.URL.Path)
		_, _ = w.Write([]byte(listing))
	}))
	defer svr.Close()

	c := newTestClient(t)
	c.fabricMetaURL = svr.URL

	got, err := c.ListLoaderVersions(context.Background(), entities.LoaderFabric, "1.21.4")
	require.NoError(t, err)
	require.Equal(t, []string{"0.16.9", "0.16.8"}, got)
}

func TestListNeoForgeVersions(t *testing.T) {
	const metadata = `<?xml version="1.0" encoding="UTF-8"?>
<metadata>
  <versioning>
    <versions>
      <version>21.4.1</version>
      <version>21.4.50</version>
      <version>21.3.8</version>
    </versions>
  </versioning>
</metadata>`

	svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(metadata))
	}))
	defer svr.Close()

	c := newTestClient(t)
	c.neoForgeMetadataURL = svr.URL

	got, err := c.ListLoaderVersions(context.Background(), entities.LoaderNeoForge, "1.21.4")
	require.NoError(t, err)
	require.Equal(t, []string{"21.4.50", "21.4.1"}, got)
}

func TestNeoForgeVersionPrefix(t *testing.T) {
	tests := []struct {
		gameVersion string
		want        string
	}{
		{gameVersion: "1.21.4", want: "21.4."},
		{gameVersion: "1.21", want: "21.0."},
		{gameVersion: "1.20.1", want: "20.1."},
	}

	for _, tt := range tests {
		t.Run(tt.gameVersion, func(t *testing.T) {
			require.Equal(t, tt.want, neoForgeVersionPrefix(tt.gameVersion))
		})
	}
}

func TestListLoaderVersionsUnsupportedLoader(t *testing.T) {
	c := newTestClient(t)
	_, err := c.ListLoaderVersions(context.Background(), entities.ModLoader("Quilt"), "1.21")
	require.Error(t, err)
}
