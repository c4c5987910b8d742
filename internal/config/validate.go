package config

import (
	"errors"
	"fmt"

	"idverify/internal/document"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateOCR(); err != nil {
		return err
	}
	if err := c.validateExtraction(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateOCR() error {
	if err := ensurePositiveMap(map[string]int{
		"ocr.dpi":             c.OCR.DPI,
		"ocr.timeout_seconds": c.OCR.TimeoutSeconds,
	}); err != nil {
		return err
	}
	if c.OCR.DPI > 1200 {
		return errors.New("ocr.dpi must be at most 1200")
	}
	return nil
}

func (c *Config) validateExtraction() error {
	if _, err := document.ParseKind(c.Extraction.DefaultKind); err != nil {
		return fmt.Errorf("extraction.default_kind: %w", err)
	}
	if c.Extraction.Workers <= 0 {
		return errors.New("extraction.workers must be positive")
	}
	if c.Extraction.MaxTextBytes <= 0 {
		return errors.New("extraction.max_text_bytes must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q (want debug, info, warn, or error)", c.Logging.Level)
	}
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
