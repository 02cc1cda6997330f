package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCuration(); err != nil {
		return err
	}
	if err := c.validateTTS(); err != nil {
		return err
	}
	if err := c.validateRender(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateCuration() error {
	if c.Curation.Sender == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/serenade/config.toml"
		}
		return fmt.Errorf("curation.sender is required; edit %s (create with 'serenade config init')", defaultPath)
	}
	switch c.Curation.Profile {
	case "standard", "longnote":
	default:
		return fmt.Errorf("curation.profile: unknown profile %q (expected standard or longnote)", c.Curation.Profile)
	}
	if c.Curation.MinWords < 0 {
		return errors.New("curation.min_words must not be negative")
	}
	if strings.ContainsAny(c.Curation.Prefix, "/\\ ") {
		return fmt.Errorf("curation.prefix %q must not contain path separators or spaces", c.Curation.Prefix)
	}
	return nil
}

func (c *Config) validateTTS() error {
	if !strings.HasPrefix(c.TTS.BaseURL, "http://") && !strings.HasPrefix(c.TTS.BaseURL, "https://") {
		return fmt.Errorf("tts.base_url %q must start with http:// or https://", c.TTS.BaseURL)
	}
	if c.TTS.VoiceID == "" {
		return errors.New("tts.voice_id is required")
	}
	return nil
}

func (c *Config) validateRender() error {
	bitrate := c.Render.Bitrate
	if !strings.HasSuffix(bitrate, "k") && !strings.HasSuffix(bitrate, "M") {
		return fmt.Errorf("render.bitrate %q must end in k or M (e.g. 96k)", bitrate)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
