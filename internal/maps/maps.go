package maps

import (
	"fmt"       // Formatting
	"io"        // Stream copy
	"net/http"  // HTTP client for the map download
	"net/url"   // Query escaping
	"os"        // Filesystem
	"path/filepath"
	"strconv" // Cafe id to file name
	"time"    // Client timeout

	"github.com/sirupsen/logrus" // Logging library
)

// Fetcher downloads MapQuest static maps for cafe addresses and caches
// them on disk under Dir as "<cafe id>.jpg".
type Fetcher struct {
	APIKey string        // MapQuest API key; empty disables downloads
	Dir    string        // Target directory for downloaded maps
	Client *http.Client  // HTTP client, defaulted by NewFetcher
}

// NewFetcher creates a map fetcher writing into dir
func NewFetcher(apiKey, dir string) *Fetcher {
	return &Fetcher{
		APIKey: apiKey,
		Dir:    dir,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

// URL returns the MapQuest static map URL for the location
func (f *Fetcher) URL(address, city, state string) string {
	where := url.QueryEscape(fmt.Sprintf("%s,%s,%s", address, city, state))
	return fmt.Sprintf(
		"https://www.mapquestapi.com/staticmap/v5/map?key=%s&center=%s&defaultMarker=marker-red-sm&size=250,200@2x&zoom=15&locations=%s",
		f.APIKey, where, where,
	)
}

// Ensure downloads the static map for a cafe unless it is already on disk.
// Returns the local path the web layer can serve. A download failure is
// logged, not surfaced: the cafe detail page works without a map.
func (f *Fetcher) Ensure(cafeID uint, address, city, state string) string {
	if f.APIKey == "" {
		return "" // Maps disabled
	}
	path := filepath.Join(f.Dir, strconv.Itoa(int(cafeID))+".jpg")
	if _, err := os.Stat(path); err == nil {
		return path // Already downloaded
	}
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		logrus.WithField("dir", f.Dir).Warnf("failed to create maps dir: %v", err)
		return ""
	}
	resp, err := f.Client.Get(f.URL(address, city, state))
	if err != nil {
		logrus.WithField("cafe_id", cafeID).Warnf("map download failed: %v", err)
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		logrus.WithFields(logrus.Fields{
			"cafe_id": cafeID,
			"status":  resp.StatusCode,
		}).Warn("map download not allowed")
		return ""
	}
	out, err := os.Create(path)
	if err != nil {
		logrus.WithField("path", path).Warnf("failed to save map: %v", err)
		return ""
	}
	defer out.Close()
	if _, err := io.Copy(out, resp.Body); err != nil {
		logrus.WithField("path", path).Warnf("failed to write map: %v", err)
		os.Remove(path)
		return ""
	}
	return path
}
