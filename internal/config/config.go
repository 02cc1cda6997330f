package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration for pipeline artifacts.
type Paths struct {
	MessagesDB    string `toml:"messages_db"`
	CandidatesDir string `toml:"candidates_dir"`
	AssetsDir     string `toml:"assets_dir"`
	ManifestDir   string `toml:"manifest_dir"`
	StagingDir    string `toml:"staging_dir"`
	LogDir        string `toml:"log_dir"`
}

// Curation contains settings for selecting and scoring notes.
type Curation struct {
	// Sender is the tracked author whose messages are curated.
	Sender string `toml:"sender"`
	// Prefix is the asset-name prefix; part of the filename join key.
	Prefix string `toml:"prefix"`
	// Profile names the scoring profile (standard, longnote).
	Profile  string  `toml:"profile"`
	MinScore float64 `toml:"min_score"`
	MinWords int     `toml:"min_words"`
}

// TTS contains configuration for the external text-to-speech provider.
type TTS struct {
	BaseURL        string `toml:"base_url"`
	APIKey         string `toml:"api_key"`
	ModelID        string `toml:"model_id"`
	VoiceID        string `toml:"voice_id"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Render contains settings for audio rendering and transcode.
type Render struct {
	FFmpegBinary string `toml:"ffmpeg_binary"`
	// Bitrate is the distribution-format audio bitrate, e.g. "96k".
	Bitrate string `toml:"bitrate"`
	// MinFreeGiB is the free-space floor checked before an apply run.
	MinFreeGiB int `toml:"min_free_gib"`
}

// Sweep contains configuration for scheduled unattended pipeline runs.
type Sweep struct {
	Enabled bool `toml:"enabled"`
	// Schedule is a cron expression, default nightly at 03:00.
	Schedule string `toml:"schedule"`
	// Years limits the sweep; empty means every year present in the corpus.
	Years []string `toml:"years"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for serenade.
//
// Configuration sections by subsystem:
//   - Paths: message DB, candidate CSVs, audio assets, manifests, logs
//   - Curation: tracked sender, scoring profile and thresholds
//   - TTS: provider endpoint, credentials, model and voice
//   - Render: ffmpeg transcode settings and disk-space floor
//   - Sweep: cron schedule for unattended runs
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Curation Curation `toml:"curation"`
	TTS      TTS      `toml:"tts"`
	Render   Render   `toml:"render"`
	Sweep    Sweep    `toml:"sweep"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/serenade/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("serenade.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the pipeline writes into.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{
		c.Paths.CandidatesDir,
		c.Paths.AssetsDir,
		c.Paths.ManifestDir,
		c.Paths.StagingDir,
		c.Paths.LogDir,
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if dir := filepath.Dir(c.Paths.MessagesDB); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// CandidatesPath returns the per-year candidate CSV path.
func (c *Config) CandidatesPath(year string) string {
	return filepath.Join(c.Paths.CandidatesDir, fmt.Sprintf("love-notes-%s.csv", year))
}

// ManifestPath returns the per-year manifest JSON path.
func (c *Config) ManifestPath(year string) string {
	return filepath.Join(c.Paths.ManifestDir, fmt.Sprintf("manifest-%s.json", year))
}

// RenderLockPath returns the per-year render lock file path.
func (c *Config) RenderLockPath(year string) string {
	return filepath.Join(c.Paths.StagingDir, fmt.Sprintf("render-%s.lock", year))
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath expands ~ and returns an absolute, cleaned path.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes the embedded sample configuration to path.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
