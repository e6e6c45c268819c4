package ledger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyhq/tally/internal/model"
)

func TestService_Load_MissingIsEmpty(t *testing.T) {
	svc := NewService(filepath.Join(t.TempDir(), "ledger.csv"))

	rows, err := svc.Load()
	require.NoError(t, err)
	assert.Nil(t, rows)
}

func TestService_Replace_And_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")
	svc := NewService(path)

	require.NoError(t, svc.Replace([]model.Transaction{sampleRow()}))

	rows, err := svc.Load()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Grocery Store", rows[0].Description)

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ledger.csv", entries[0].Name())
}

func TestService_Replace_Overwrites(t *testing.T) {
	svc := NewService(filepath.Join(t.TempDir(), "ledger.csv"))

	require.NoError(t, svc.Replace([]model.Transaction{rowWithID("a")}))
	require.NoError(t, svc.Replace([]model.Transaction{rowWithID("a"), rowWithID("b")}))

	rows, err := svc.Load()
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestService_Load_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")
	require.NoError(t, os.WriteFile(path, []byte(Header+"\nnot;enough;fields\n"), 0o644))

	_, err := NewService(path).Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistence)
}

func TestValidateRows(t *testing.T) {
	rows := []model.Transaction{rowWithID("a"), rowWithID("b")}
	assert.Empty(t, ValidateRows(rows))

	rows = append(rows, rowWithID("a"))
	errs := ValidateRows(rows)
	require.Len(t, errs, 1)
	assert.Equal(t, "a", errs[0].UniqueID)

	rows = append(rows, rowWithID(""))
	errs = ValidateRows(rows)
	require.Len(t, errs, 2)
}
