// Package loader reads translation files into messages keyed by message ID.
//
// The format of a file is detected by asking each registered parser, in order,
// whether it can parse the file. The first parser that accepts the file wins.
// Problems inside a file are reported as diagnostics rather than Go errors so the
// caller decides which severities are fatal.
package loader

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/nimburion/i18nbuild/pkg/i18n"
)

// DiagnosticType is the severity of a diagnostic.
type DiagnosticType string

const (
	// DiagnosticError marks a problem that makes the file unusable.
	DiagnosticError DiagnosticType = "error"
	// DiagnosticWarning marks a problem the build can live with.
	DiagnosticWarning DiagnosticType = "warning"
)

// Diagnostic is one message reported while loading a file.
type Diagnostic struct {
	Type    DiagnosticType `json:"type"`
	Message string         `json:"message"`
}

// Diagnostics collects the messages reported for one file.
type Diagnostics struct {
	Messages []Diagnostic `json:"messages"`
}

// Error records an error diagnostic.
func (d *Diagnostics) Error(format string, args ...any) {
	d.Messages = append(d.Messages, Diagnostic{Type: DiagnosticError, Message: fmt.Sprintf(format, args...)})
}

// Warn records a warning diagnostic.
func (d *Diagnostics) Warn(format string, args ...any) {
	d.Messages = append(d.Messages, Diagnostic{Type: DiagnosticWarning, Message: fmt.Sprintf(format, args...)})
}

// HasErrors reports whether at least one error diagnostic was recorded.
func (d *Diagnostics) HasErrors() bool {
	for _, msg := range d.Messages {
		if msg.Type == DiagnosticError {
			return true
		}
	}
	return false
}

// Merge appends the messages of other.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Messages = append(d.Messages, other.Messages...)
}

// Result is the normalized content of one translation file.
type Result struct {
	// Locale is the locale the file declares, empty when it declares none.
	Locale       string
	Translations map[string]i18n.Message
	Format       string
	Integrity    string
	Diagnostics  Diagnostics
}

// Parser understands one translation file format.
type Parser interface {
	// Format is the name recorded on loaded files.
	Format() string
	// CanParse reports whether the file looks like this format. Hints explaining a
	// rejection may be recorded in diags; they are surfaced only when no parser
	// accepts the file.
	CanParse(path string, contents []byte, diags *Diagnostics) bool
	// Parse extracts the declared locale and the messages.
	Parse(path string, contents []byte, diags *Diagnostics) (locale string, messages map[string]i18n.Message)
}

// Loader loads translation files. A Loader is immutable after New and may be shared.
type Loader struct {
	parsers  []Parser
	readFile func(string) ([]byte, error)
}

// Option configures a Loader.
type Option func(*Loader)

// WithParsers replaces the default parser list.
func WithParsers(parsers ...Parser) Option {
	return func(l *Loader) {
		l.parsers = append([]Parser(nil), parsers...)
	}
}

// WithReadFile replaces os.ReadFile.
func WithReadFile(read func(string) ([]byte, error)) Option {
	return func(l *Loader) {
		if read != nil {
			l.readFile = read
		}
	}
}

// DefaultParsers returns the built-in parsers in detection order.
func DefaultParsers() []Parser {
	return []Parser{
		XLIFF2Parser{},
		XLIFF1Parser{},
		XTBParser{},
		JSONParser{},
		ARBParser{},
		YAMLParser{},
		TOMLParser{},
	}
}

// New creates a Loader with the default parsers.
func New(opts ...Option) *Loader {
	l := &Loader{
		parsers:  DefaultParsers(),
		readFile: os.ReadFile,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Formats lists the formats known to the loader, in detection order.
func (l *Loader) Formats() []string {
	out := make([]string, 0, len(l.parsers))
	for _, p := range l.parsers {
		out = append(out, p.Format())
	}
	return out
}

// Load reads and parses path. Read failures are returned as errors; everything
// else, including an unrecognised format, is reported through Result.Diagnostics.
func (l *Loader) Load(path string) (*Result, error) {
	contents, err := l.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("read translation file %s: %w", path, err)
	}

	result := &Result{
		Translations: map[string]i18n.Message{},
		Integrity:    Integrity(contents),
	}

	var hints []string
	for _, parser := range l.parsers {
		var analysis Diagnostics
		if !parser.CanParse(path, contents, &analysis) {
			for _, msg := range analysis.Messages {
				hints = append(hints, fmt.Sprintf("%s: %s", parser.Format(), msg.Message))
			}
			continue
		}
		result.Format = parser.Format()
		result.Diagnostics.Merge(analysis)
		locale, messages := parser.Parse(path, contents, &result.Diagnostics)
		result.Locale = locale
		if messages != nil {
			result.Translations = messages
		}
		return result, nil
	}

	message := fmt.Sprintf("Unsupported translation file format in %s.", path)
	if len(hints) > 0 {
		message += " The following parsers were tried:\n  " + strings.Join(hints, "\n  ")
	}
	result.Diagnostics.Error("%s", message)
	return result, nil
}

// Integrity returns the subresource-integrity style digest of contents.
func Integrity(contents []byte) string {
	sum := sha256.Sum256(contents)
	return "sha256-" + base64.StdEncoding.EncodeToString(sum[:])
}
