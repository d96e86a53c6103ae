package cache

import (
	"archive/zip"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// countriesBase is the Natural Earth admin-0 dataset the globe needs.
// 1:110m matches the detail level the globe can show in a terminal.
const countriesBase = "ne_110m_admin_0_countries"

const countriesURL = "https://naciscdn.org/naturalearth/110m/cultural/ne_110m_admin_0_countries.zip"

// Manager handles downloading and caching the world boundary dataset
type Manager struct {
	cacheDir string
	logger   zerolog.Logger
}

// NewManager creates a new cache manager.
// If cacheDir is empty, uses ~/.firstglobe/data
func NewManager(cacheDir string, logger zerolog.Logger) (*Manager, error) {
	if cacheDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cacheDir = filepath.Join(home, ".firstglobe", "data")
	}

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &Manager{
		cacheDir: cacheDir,
		logger:   logger,
	}, nil
}

// CountriesPath returns the path to the countries shapefile,
// whether or not it exists yet
func (m *Manager) CountriesPath() string {
	return filepath.Join(m.cacheDir, countriesBase+".shp")
}

// GetCacheDir returns the cache directory
func (m *Manager) GetCacheDir() string {
	return m.cacheDir
}

// EnsureData downloads the boundary dataset if it is not cached yet.
// This is the only network access in the program and happens once,
// before the render loop starts.
func (m *Manager) EnsureData() error {
	shpPath := m.CountriesPath()
	if _, err := os.Stat(shpPath); err == nil {
		return nil
	}

	m.logger.Info().Str("url", countriesURL).Msg("downloading world boundaries")

	client := &http.Client{}
	req, err := http.NewRequest("GET", countriesURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; firstglobe/1.0)")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed with status: %s (URL: %s)", resp.Status, countriesURL)
	}

	tmpFile, err := os.CreateTemp("", "ne_*.zip")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())
	defer tmpFile.Close()

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		return fmt.Errorf("failed to save download: %w", err)
	}

	tmpFile.Close()

	if err := m.extractZip(tmpFile.Name(), m.cacheDir); err != nil {
		return fmt.Errorf("failed to extract: %w", err)
	}

	m.logger.Info().Str("dir", m.cacheDir).Msg("world boundaries cached")
	return nil
}

func (m *Manager) extractZip(zipPath, destDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() || strings.HasPrefix(filepath.Base(f.Name), ".") {
			continue
		}

		destPath := filepath.Join(destDir, filepath.Base(f.Name))
		rc, err := f.Open()

		if err != nil {
			return err
		}

		outFile, err := os.Create(destPath)
		if err != nil {
			rc.Close()
			return err
		}

		_, err = io.Copy(outFile, rc)
		outFile.Close()
		rc.Close()

		if err != nil {
			return err
		}
	}

	return nil
}
