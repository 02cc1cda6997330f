package main

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"serenade/internal/config"
	"serenade/internal/logging"
	"serenade/internal/messages"
	"serenade/internal/pipeline"
	"serenade/internal/services/tts"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) newLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
}

// withRunner opens the message store, builds the pipeline runner around
// it, and releases the store when fn returns.
func (c *commandContext) withRunner(fn func(cmd *cobra.Command, cfg *config.Config, runner *pipeline.Runner) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := c.ensureConfig()
		if err != nil {
			return err
		}
		logger, err := c.newLogger()
		if err != nil {
			return err
		}

		store, err := messages.Open(cfg.Paths.MessagesDB)
		if err != nil {
			return err
		}
		defer store.Close()

		provider := tts.NewClient(cfg.TTS.BaseURL, cfg.TTS.APIKey, time.Duration(cfg.TTS.TimeoutSeconds)*time.Second)
		runner, err := pipeline.New(cfg, store, provider, logger)
		if err != nil {
			return err
		}
		return fn(cmd, cfg, runner)
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
