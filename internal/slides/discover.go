package slides

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"resty.dev/v3"
)

// Extensions lists the file suffixes Discover accepts, lower case.
var Extensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp"}

// Discover returns the image files directly inside dir, sorted by name.
// Sub-directories and files with other extensions are skipped.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error reading slides directory: %w", err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if hasImageExtension(entry.Name()) {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	return paths, nil
}

func hasImageExtension(name string) bool {
	name = strings.ToLower(name)
	for _, ext := range Extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// IsRemote reports whether source is an http(s) URL rather than a path.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// FetchList retrieves a JSON array of locators from url.
func FetchList(ctx context.Context, client *resty.Client, url string) ([]string, error) {
	var locators []string

	res, err := client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetResult(&locators).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("error fetching slide list: %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("error fetching slide list: %s", res.Status())
	}
	return locators, nil
}

// Sample shuffles a copy of locators when shuffle is set and truncates it to
// limit entries. A limit of zero or less keeps everything.
func Sample(locators []string, shuffle bool, limit int) []string {
	out := append([]string(nil), locators...)
	if shuffle {
		rand.Shuffle(len(out), func(i, j int) {
			out[i], out[j] = out[j], out[i]
		})
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
