package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/oukeidos/tunelate/internal/cleanup"
	"github.com/oukeidos/tunelate/internal/config"
	"github.com/oukeidos/tunelate/internal/files"
	"github.com/oukeidos/tunelate/internal/logger"
)

const skipConfigAnnotation = "skipConfigLoad"

type globalOptions struct {
	configPath string
	debug      bool
	logFile    string
}

// commandContext loads configuration once per invocation and sets up logging
// from it.
type commandContext struct {
	opts *globalOptions

	configOnce sync.Once
	config     *config.Config
	configPath   string
	configExists bool
	configErr    error
}

func newCommandContext(opts *globalOptions) *commandContext {
	return &commandContext{opts: opts}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := loadConfig(strings.TrimSpace(c.opts.configPath))
		if err != nil {
			c.configErr = fmt.Errorf("load config: %w", err)
			return
		}
		if err := c.initLogging(cfg); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
		c.configExists = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) initLogging(cfg *config.Config) error {
	level, err := logger.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	if c.opts.debug {
		level = logger.LevelDebug
	}

	logPath := cfg.Logging.File
	if strings.TrimSpace(c.opts.logFile) != "" {
		logPath, err = config.ExpandPath(strings.TrimSpace(c.opts.logFile))
		if err != nil {
			return fmt.Errorf("resolve log file: %w", err)
		}
	}
	if logPath == "" {
		logger.Init(level, nil)
		return nil
	}
	f, err := files.OpenAppend(logPath)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	cleanup.Register(f.Close)
	logger.Init(level, f)
	return nil
}

func (c *commandContext) configSource() string {
	if c.configPath == "" || !c.configExists {
		return "defaults and environment"
	}
	return c.configPath
}
