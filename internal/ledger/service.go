package ledger

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tallyhq/tally/internal/model"
)

// ErrPersistence reports a ledger read or write failure. Writes are atomic
// whole-file replaces, so a failed write leaves the existing ledger intact.
var ErrPersistence = errors.New("ledger persistence")

// Service owns reading and replacing the ledger file.
type Service struct {
	path string
}

// NewService creates a Service for the ledger at path.
func NewService(path string) *Service {
	return &Service{path: path}
}

// Path returns the ledger file path.
func (s *Service) Path() string {
	return s.path
}

// Load reads the current ledger. A ledger that does not exist yet is empty,
// not an error.
func (s *Service) Load() ([]model.Transaction, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: opening %s: %v", ErrPersistence, s.path, err)
	}
	defer f.Close()

	rows, err := ReadRows(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPersistence, s.path, err)
	}
	return rows, nil
}

// Replace writes the full ledger as an atomic whole-file replace: rows go to
// a temp file in the same directory which is then renamed over the ledger.
// The previous ledger is never partially overwritten.
func (s *Service) Replace(rows []model.Transaction) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: creating ledger dir: %v", ErrPersistence, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", ErrPersistence, err)
	}
	tmpPath := tmp.Name()

	if err := WriteRows(tmp, rows); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: writing %s: %v", ErrPersistence, tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: closing %s: %v", ErrPersistence, tmpPath, err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: replacing %s: %v", ErrPersistence, s.path, err)
	}
	return nil
}
