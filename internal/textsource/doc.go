// Package textsource turns document files into raw text for field extraction.
//
// Plain text is read directly. PDFs are passed through pdftotext, and pages
// without a text layer are rasterised with pdftoppm and recognised with
// tesseract. Images go straight to tesseract. External tools run through an
// Executor so tests can substitute canned output.
package textsource
