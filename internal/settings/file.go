package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// fileSettings is the TOML shape of the settings file. Pointer fields let a
// partial or hand-edited file leave the remaining defaults untouched.
type fileSettings struct {
	Sonnet      *string `toml:"sonnet"`
	Start       *string `toml:"start"`
	Theme       *string `toml:"theme"`
	LineNumbers *bool   `toml:"line-numbers"`
	SelfTest    *bool   `toml:"self-test"`
}

// Load reads the settings file at path. A missing file is not an error and
// yields the defaults. On a decode error the defaults are returned along
// with the error so the caller can warn and keep rendering.
func Load(path string, now time.Time) (Settings, error) {
	s := Defaults(now)
	if path == "" {
		return s, fmt.Errorf("settings path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("failed to stat settings: %w", err)
	}
	var file fileSettings
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return s, fmt.Errorf("failed to decode settings: %w", err)
	}
	if file.Sonnet != nil {
		s.Sonnet = *file.Sonnet
	}
	if file.Start != nil {
		if start, ok := ParseDate(*file.Start); ok {
			s.Start = start
		}
	}
	if file.Theme != nil {
		s.Theme = *file.Theme
	}
	if file.LineNumbers != nil {
		s.LineNumbers = *file.LineNumbers
	}
	if file.SelfTest != nil {
		s.SelfTest = *file.SelfTest
	}
	return s, nil
}

// Save writes the settings file atomically via a temp file in the same
// directory. ForceReview is deliberately not written.
func Save(path string, s Settings) error {
	if path == "" {
		return fmt.Errorf("settings path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "settings-*.toml")
	if err != nil {
		return fmt.Errorf("failed to create temp settings: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	sonnet := s.Sonnet
	start := s.Start.Format(DateLayout)
	themeKey := s.Theme
	lineNumbers := s.LineNumbers
	selfTest := s.SelfTest
	record := fileSettings{
		Sonnet:      &sonnet,
		Start:       &start,
		Theme:       &themeKey,
		LineNumbers: &lineNumbers,
		SelfTest:    &selfTest,
	}
	if err := toml.NewEncoder(tmpFile).Encode(record); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close settings: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}
