package textsource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"idverify/internal/config"
	"idverify/internal/logging"
)

var imageExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".tif":  {},
	".tiff": {},
	".bmp":  {},
}

// pageBreak separates pages in pdftotext output.
const pageBreak = "\f"

// Option configures the reader.
type Option func(*Reader)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(r *Reader) {
		if exec != nil {
			r.exec = exec
		}
	}
}

// WithLogger sets the logger used for tool invocations.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reader) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Reader acquires text from document files.
type Reader struct {
	tesseract string
	pdftotext string
	pdftoppm  string
	language  string
	dpi       int
	timeout   time.Duration
	maxBytes  int64
	exec      Executor
	logger    *slog.Logger
}

// New constructs a Reader from the OCR and extraction configuration.
func New(cfg *config.Config, opts ...Option) *Reader {
	defaults := config.Default()
	if cfg == nil {
		cfg = &defaults
	}
	r := &Reader{
		tesseract: firstNonEmpty(cfg.OCR.TesseractBinary, defaults.OCR.TesseractBinary),
		pdftotext: firstNonEmpty(cfg.OCR.PdfToTextBinary, defaults.OCR.PdfToTextBinary),
		pdftoppm:  firstNonEmpty(cfg.OCR.PdfToPPMBinary, defaults.OCR.PdfToPPMBinary),
		language:  firstNonEmpty(cfg.OCR.Language, defaults.OCR.Language),
		dpi:       cfg.OCR.DPI,
		timeout:   cfg.OCRTimeout(),
		maxBytes:  cfg.Extraction.MaxTextBytes,
		exec:      commandExecutor{},
		logger:    logging.NewNop(),
	}
	if r.dpi <= 0 {
		r.dpi = defaults.OCR.DPI
	}
	if r.maxBytes <= 0 {
		r.maxBytes = defaults.Extraction.MaxTextBytes
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.NewComponentLogger(r.logger, "textsource")
	return r
}

// Read returns the text content of path, dispatching on its extension.
func (r *Reader) Read(ctx context.Context, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrUnreadable, path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrUnreadable, path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == ".pdf":
		return r.readPDF(ctx, path)
	case isImage(ext):
		return r.ocrImage(ctx, path)
	default:
		return r.readPlain(path)
	}
}

// IsSupportedImage reports whether path has an extension handled by OCR.
func IsSupportedImage(path string) bool {
	return isImage(strings.ToLower(filepath.Ext(path)))
}

func isImage(ext string) bool {
	_, ok := imageExtensions[ext]
	return ok
}

func (r *Reader) readPlain(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrUnreadable, path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, r.maxBytes))
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %w", ErrUnreadable, path, err)
	}
	return strings.ToValidUTF8(string(data), ""), nil
}

func (r *Reader) ocrImage(ctx context.Context, path string) (string, error) {
	args := []string{path, "stdout"}
	if r.language != "" {
		args = append(args, "-l", r.language)
	}
	return r.capture(ctx, r.tesseract, args)
}

func (r *Reader) readPDF(ctx context.Context, path string) (string, error) {
	// Default (reading order) output keeps label columns on separate lines.
	layer, err := r.capture(ctx, r.pdftotext, []string{"-enc", "UTF-8", path, "-"})
	if err != nil {
		return "", err
	}

	pages := strings.Split(layer, pageBreak)
	// pdftotext terminates the final page with a form feed.
	if len(pages) > 1 && strings.TrimSpace(pages[len(pages)-1]) == "" {
		pages = pages[:len(pages)-1]
	}

	if strings.TrimSpace(layer) == "" {
		r.logger.Debug("pdf has no text layer, rasterising", logging.String("path", path))
		return r.ocrPDFPages(ctx, path, 0)
	}

	out := make([]string, 0, len(pages))
	for i, page := range pages {
		if strings.TrimSpace(page) != "" {
			out = append(out, page)
			continue
		}
		r.logger.Debug("pdf page has no text layer, rasterising",
			logging.String("path", path),
			logging.Int("page", i+1),
		)
		text, err := r.ocrPDFPages(ctx, path, i+1)
		if err != nil {
			return "", err
		}
		out = append(out, text)
	}
	return strings.Join(out, "\n"), nil
}

// ocrPDFPages renders page (or every page when page is 0) and OCRs the images
// in page order.
func (r *Reader) ocrPDFPages(ctx context.Context, path string, page int) (string, error) {
	tmpDir, err := os.MkdirTemp("", "idverify-pages-")
	if err != nil {
		return "", fmt.Errorf("create raster dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	prefix := filepath.Join(tmpDir, "page")
	args := []string{"-r", strconv.Itoa(r.dpi), "-png"}
	if page > 0 {
		args = append(args, "-f", strconv.Itoa(page), "-l", strconv.Itoa(page))
	}
	args = append(args, path, prefix)
	if _, err := r.capture(ctx, r.pdftoppm, args); err != nil {
		return "", err
	}

	images, err := filepath.Glob(prefix + "*.png")
	if err != nil {
		return "", fmt.Errorf("list rendered pages: %w", err)
	}
	if len(images) == 0 {
		return "", fmt.Errorf("%w: %s produced no page images for %s", ErrExternalTool, r.pdftoppm, path)
	}
	sort.Slice(images, func(i, j int) bool {
		return pageNumber(images[i]) < pageNumber(images[j])
	})

	texts := make([]string, 0, len(images))
	for _, image := range images {
		text, err := r.ocrImage(ctx, image)
		if err != nil {
			return "", err
		}
		texts = append(texts, text)
	}
	return strings.Join(texts, "\n"), nil
}

// pageNumber parses the trailing page index pdftoppm appends to its output
// names (page-1.png, page-01.png, ...).
func pageNumber(path string) int {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	idx := strings.LastIndex(base, "-")
	if idx < 0 {
		return 0
	}
	n, err := strconv.Atoi(base[idx+1:])
	if err != nil {
		return 0
	}
	return n
}

func (r *Reader) capture(ctx context.Context, binary string, args []string) (string, error) {
	runCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var b strings.Builder
	err := r.exec.Run(runCtx, binary, args, func(line string) {
		b.WriteString(line)
		b.WriteByte('\n')
	})
	if err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %s after %s", ErrTimeout, binary, r.timeout)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%w: %s: %w", ErrExternalTool, binary, err)
	}
	return strings.ToValidUTF8(b.String(), ""), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
