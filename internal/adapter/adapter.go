package adapter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tallyhq/tally/internal/model"
)

// ErrNotFound reports a missing statement file. Callers degrade to zero rows.
var ErrNotFound = errors.New("statement file not found")

// ErrUnsupportedSource reports an unknown bank name or a file extension the
// bank's adapter does not accept.
var ErrUnsupportedSource = errors.New("unsupported source")

// FormatError reports a statement that does not match the adapter's expected
// layout (missing columns, unparseable rows).
type FormatError struct {
	Bank   string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s statement format: %s", e.Bank, e.Reason)
}

// Parser converts one bank's statement export into canonical transactions.
type Parser interface {
	Parse(r io.Reader) ([]model.Transaction, error)
	Bank() string
	Ext() string
}

// Registry holds parsers by bank name.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate bank name.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Bank())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate adapter bank: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for bank, or nil.
func (r *Registry) Get(bank string) Parser {
	return r.parsers[strings.ToLower(bank)]
}

// DefaultRegistry returns a registry with all built-in adapters. The Lunar
// adapter is registered only when a PDF table extractor is supplied.
func DefaultRegistry(pdf TableExtractor) *Registry {
	r := NewRegistry()
	r.Register(&DanskeBankParser{})
	r.Register(&WiseParser{})
	r.Register(&NorwegianParser{})
	if pdf != nil {
		r.Register(&LunarParser{Extractor: pdf})
	}
	return r
}

// Load parses the statement at path with the adapter registered for bank.
// An unknown bank or wrong extension is ErrUnsupportedSource; a missing file
// is ErrNotFound.
func (r *Registry) Load(path, bank string) ([]model.Transaction, error) {
	p := r.Get(bank)
	if p == nil {
		return nil, fmt.Errorf("%w: unknown bank %q", ErrUnsupportedSource, bank)
	}

	if ext := strings.ToLower(filepath.Ext(path)); ext != p.Ext() {
		return nil, fmt.Errorf("%w: %s does not accept %s files", ErrUnsupportedSource, p.Bank(), ext)
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("opening statement %s: %w", path, err)
	}
	defer f.Close()

	return p.Parse(f)
}

// statementsDir is the subdirectory for statement exports awaiting import.
const statementsDir = "statements"

// processedDir is the subdirectory for imported statements.
const processedDir = "statements/processed"

// FileInfo describes a statement file awaiting import.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// Scan returns statement files in <root>/statements/.
func Scan(root string) ([]FileInfo, error) {
	dir := filepath.Join(root, statementsDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading statements dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".csv", ".xlsx", ".pdf":
		default:
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from statements/ to statements/processed/.
func MarkProcessed(root, fileName string) error {
	src := filepath.Join(root, statementsDir, fileName)
	dstDir := filepath.Join(root, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
