package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"idverify/internal/config"
	"idverify/internal/document"
	"idverify/internal/history"
	"idverify/internal/logging"
	"idverify/internal/pipeline"
	"idverify/internal/textsource"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	loggerOnce sync.Once
	log        *slog.Logger
	logErr     error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil {
			if level := strings.ToLower(strings.TrimSpace(*c.logLevelFlag)); level != "" {
				cfg.Logging.Level = level
				if err := cfg.Validate(); err != nil {
					c.configErr = err
					return
				}
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

func (c *commandContext) logger(cmd *cobra.Command) (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logErr = err
			return
		}
		c.log, c.logErr = logging.NewFromConfig(cfg, cmd.ErrOrStderr())
		if c.logErr != nil {
			c.logErr = fmt.Errorf("init logger: %w", c.logErr)
		}
	})
	return c.log, c.logErr
}

func (c *commandContext) runner(cmd *cobra.Command) (*pipeline.Runner, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.logger(cmd)
	if err != nil {
		return nil, err
	}
	reader := textsource.New(cfg, textsource.WithLogger(logger))
	return pipeline.New(reader,
		pipeline.WithWorkers(cfg.Extraction.Workers),
		pipeline.WithLogger(logger),
	), nil
}

// resolveKind applies the --kind flag, falling back to the configured default.
func (c *commandContext) resolveKind(flag string) (document.Kind, error) {
	value := strings.TrimSpace(flag)
	if value == "" {
		if cfg, err := c.ensureConfig(); err == nil {
			value = cfg.Extraction.DefaultKind
		}
	}
	return document.ParseKind(value)
}

func (c *commandContext) withHistory(fn func(*history.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := history.Open(cfg)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer store.Close()
	return fn(store)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func okMismatch(value bool) string {
	if value {
		return "ok"
	}
	return "MISMATCH"
}
