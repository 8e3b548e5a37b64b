package records

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selimozcann/doicheck/internal/model"
)

func TestReadTrimsAndKeepsOrder(t *testing.T) {
	in := "https://doi.org/10.1000/xyz , https://example.org/a\n" +
		"\n" +
		" https://doi.org/10.1000/abc,https://example.org/b ,extra,columns\n"

	got, err := Read(strings.NewReader(in))
	require.NoError(t, err)

	want := []model.Record{
		{DOI: "https://doi.org/10.1000/xyz", Standard: "https://example.org/a", Line: 1},
		{DOI: "https://doi.org/10.1000/abc", Standard: "https://example.org/b", Line: 3},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Read() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadQuotedFieldAfterSpace(t *testing.T) {
	got, err := Read(strings.NewReader("https://doi.org/10.1/x, \"https://example.org/x\"\n"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "https://doi.org/10.1/x", got[0].DOI)
	assert.Equal(t, "https://example.org/x", got[0].Standard)
}

func TestReadNoHeaderSkipping(t *testing.T) {
	got, err := Read(strings.NewReader("doi,standard\n"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "doi", got[0].DOI)
}

func TestReadMalformedRow(t *testing.T) {
	_, err := Read(strings.NewReader("a,b\nonly-one-column\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedRow))

	var rowErr *MalformedRowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 2, rowErr.Line)
	assert.Equal(t, 1, rowErr.Fields)
}

func TestReadEmptyField(t *testing.T) {
	_, err := Read(strings.NewReader("https://doi.org/10.1/x,   \n"))
	require.ErrorIs(t, err, ErrMalformedRow)
	assert.Contains(t, err.Error(), "standard is empty")
}

func TestReadEmptyInput(t *testing.T) {
	got, err := Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dois.csv")
	require.NoError(t, os.WriteFile(path, []byte("https://doi.org/10.1/x,https://example.org/x\n"), 0o600))

	got, err := Load(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "https://example.org/x", got[0].Standard)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
