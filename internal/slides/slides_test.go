package slides

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"resty.dev/v3"
)

func TestSetWraps(t *testing.T) {
	s := NewSet([]string{"a", "b", "c"})

	require.Equal(t, 3, s.Len())
	assert.Equal(t, Slide{Index: 0, Locator: "a"}, s.At(0))
	assert.Equal(t, Slide{Index: 1, Locator: "b"}, s.At(4))
	assert.Equal(t, Slide{Index: 2, Locator: "c"}, s.At(-1))
	assert.Equal(t, 1, s.Next(0))
	assert.Equal(t, 0, s.Next(2))
}

func TestSetSingleSlideNextIsItself(t *testing.T) {
	s := NewSet([]string{"only"})
	assert.Equal(t, 0, s.Next(0))
}

func TestSetIsImmutable(t *testing.T) {
	in := []string{"a", "b"}
	s := NewSet(in)
	in[0] = "changed"

	out := s.Locators()
	out[1] = "changed"

	assert.Equal(t, []string{"a", "b"}, s.Locators())
}

func TestDiscoverFiltersImages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.JPG", "a.png", "notes.txt", "c.webp"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0o755))

	paths, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.png"),
		filepath.Join(dir, "b.JPG"),
		filepath.Join(dir, "c.webp"),
	}, paths)
}

func TestDiscoverMissingDirectory(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestSampleLimitsAndKeepsInput(t *testing.T) {
	in := []string{"a", "b", "c", "d"}

	out := Sample(in, true, 2)
	assert.Len(t, out, 2)
	assert.Subset(t, in, out)
	assert.Equal(t, []string{"a", "b", "c", "d"}, in)

	assert.Equal(t, in, Sample(in, false, 0))
	assert.ElementsMatch(t, in, Sample(in, true, 10))
}

func TestFetchList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/images" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]string{"/img/1.jpg", "/img/2.jpg"})
	}))
	defer srv.Close()

	client := resty.New()
	defer client.Close()

	locators, err := FetchList(context.Background(), client, srv.URL+"/api/images")
	require.NoError(t, err)
	assert.Equal(t, []string{"/img/1.jpg", "/img/2.jpg"}, locators)

	_, err = FetchList(context.Background(), client, srv.URL+"/missing")
	assert.Error(t, err)
}

func TestIsRemote(t *testing.T) {
	assert.True(t, IsRemote("https://example.com/list"))
	assert.True(t, IsRemote("http://localhost:3000"))
	assert.False(t, IsRemote("/home/me/Pictures"))
	assert.False(t, IsRemote("~/Pictures"))
}
