package config

const (
	defaultDataDirFallback  = "~/.local/share/idverify"
	defaultLogDir           = "~/.local/share/idverify/logs"
	defaultTesseractBinary  = "tesseract"
	defaultPdfToTextBinary  = "pdftotext"
	defaultPdfToPPMBinary   = "pdftoppm"
	defaultOCRLanguage      = "eng"
	defaultOCRDPI           = 200
	defaultOCRTimeout       = 120
	defaultWorkers          = 4
	defaultMaxTextBytes     = 4 << 20
	defaultHistoryEnabled   = true
	defaultHistoryListLimit = 20
	defaultLogFormat        = "console"
	defaultLogLevel         = "warn"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir(),
			LogDir:  defaultLogDir,
		},
		OCR: OCR{
			TesseractBinary: defaultTesseractBinary,
			PdfToTextBinary: defaultPdfToTextBinary,
			PdfToPPMBinary:  defaultPdfToPPMBinary,
			Language:        defaultOCRLanguage,
			DPI:             defaultOCRDPI,
			TimeoutSeconds:  defaultOCRTimeout,
		},
		Extraction: Extraction{
			Workers:      defaultWorkers,
			MaxTextBytes: defaultMaxTextBytes,
		},
		History: History{
			Enabled:   defaultHistoryEnabled,
			ListLimit: defaultHistoryListLimit,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
