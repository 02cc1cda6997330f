package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeCuration()
	c.normalizeTTS()
	c.normalizeRender()
	c.normalizeSweep()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.MessagesDB, err = expandPath(c.Paths.MessagesDB); err != nil {
		return fmt.Errorf("paths.messages_db: %w", err)
	}
	if c.Paths.CandidatesDir, err = expandPath(c.Paths.CandidatesDir); err != nil {
		return fmt.Errorf("paths.candidates_dir: %w", err)
	}
	if c.Paths.AssetsDir, err = expandPath(c.Paths.AssetsDir); err != nil {
		return fmt.Errorf("paths.assets_dir: %w", err)
	}
	if c.Paths.ManifestDir, err = expandPath(c.Paths.ManifestDir); err != nil {
		return fmt.Errorf("paths.manifest_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StagingDir) == "" {
		c.Paths.StagingDir = defaultStagingDir
	}
	if c.Paths.StagingDir, err = expandPath(c.Paths.StagingDir); err != nil {
		return fmt.Errorf("paths.staging_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeCuration() {
	c.Curation.Sender = strings.TrimSpace(c.Curation.Sender)
	c.Curation.Prefix = strings.TrimSpace(c.Curation.Prefix)
	if c.Curation.Prefix == "" {
		c.Curation.Prefix = defaultPrefix
	}
	c.Curation.Profile = strings.ToLower(strings.TrimSpace(c.Curation.Profile))
	if c.Curation.Profile == "" {
		c.Curation.Profile = defaultProfile
	}
}

func (c *Config) normalizeTTS() {
	c.TTS.BaseURL = strings.TrimRight(strings.TrimSpace(c.TTS.BaseURL), "/")
	if c.TTS.BaseURL == "" {
		c.TTS.BaseURL = defaultTTSBaseURL
	}
	if c.TTS.APIKey == "" {
		if value, ok := os.LookupEnv("SERENADE_TTS_API_KEY"); ok {
			c.TTS.APIKey = strings.TrimSpace(value)
		}
	}
	if strings.TrimSpace(c.TTS.ModelID) == "" {
		c.TTS.ModelID = defaultTTSModelID
	}
	if c.TTS.TimeoutSeconds <= 0 {
		c.TTS.TimeoutSeconds = defaultTTSTimeout
	}
}

func (c *Config) normalizeRender() {
	if strings.TrimSpace(c.Render.FFmpegBinary) == "" {
		c.Render.FFmpegBinary = defaultFFmpegBinary
	}
	if strings.TrimSpace(c.Render.Bitrate) == "" {
		c.Render.Bitrate = defaultBitrate
	}
	if c.Render.MinFreeGiB < 0 {
		c.Render.MinFreeGiB = 0
	}
}

func (c *Config) normalizeSweep() {
	if strings.TrimSpace(c.Sweep.Schedule) == "" {
		c.Sweep.Schedule = defaultSweepSchedule
	}
	years := make([]string, 0, len(c.Sweep.Years))
	for _, year := range c.Sweep.Years {
		if trimmed := strings.TrimSpace(year); trimmed != "" {
			years = append(years, trimmed)
		}
	}
	c.Sweep.Years = years
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
