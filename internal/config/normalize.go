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
	c.normalizeOCR()
	c.normalizeExtraction()
	c.normalizeHistory()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir()
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeOCR() {
	c.OCR.TesseractBinary = strings.TrimSpace(c.OCR.TesseractBinary)
	if c.OCR.TesseractBinary == "" {
		c.OCR.TesseractBinary = defaultTesseractBinary
	}
	c.OCR.PdfToTextBinary = strings.TrimSpace(c.OCR.PdfToTextBinary)
	if c.OCR.PdfToTextBinary == "" {
		c.OCR.PdfToTextBinary = defaultPdfToTextBinary
	}
	c.OCR.PdfToPPMBinary = strings.TrimSpace(c.OCR.PdfToPPMBinary)
	if c.OCR.PdfToPPMBinary == "" {
		c.OCR.PdfToPPMBinary = defaultPdfToPPMBinary
	}
	c.OCR.Language = strings.TrimSpace(c.OCR.Language)
	if c.OCR.Language == "" {
		if value, ok := os.LookupEnv("IDVERIFY_OCR_LANGUAGE"); ok && strings.TrimSpace(value) != "" {
			c.OCR.Language = strings.TrimSpace(value)
		} else {
			c.OCR.Language = defaultOCRLanguage
		}
	}
	if c.OCR.DPI == 0 {
		c.OCR.DPI = defaultOCRDPI
	}
	if c.OCR.TimeoutSeconds == 0 {
		c.OCR.TimeoutSeconds = defaultOCRTimeout
	}
}

func (c *Config) normalizeExtraction() {
	c.Extraction.DefaultKind = strings.ToLower(strings.TrimSpace(c.Extraction.DefaultKind))
	if c.Extraction.Workers == 0 {
		c.Extraction.Workers = defaultWorkers
	}
	if c.Extraction.MaxTextBytes == 0 {
		c.Extraction.MaxTextBytes = defaultMaxTextBytes
	}
}

func (c *Config) normalizeHistory() {
	if c.History.ListLimit <= 0 {
		c.History.ListLimit = defaultHistoryListLimit
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	if value, ok := os.LookupEnv("IDVERIFY_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
