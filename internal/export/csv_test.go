package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/shopkeep/internal/catalog"
	"github.com/five82/shopkeep/internal/state"
)

func TestWriteCSVQuotesTextColumns(t *testing.T) {
	rows := []catalog.Product{
		{ID: 1, Title: `Shirt, "Classic"`, Price: decimal.NewFromInt(10), Category: &catalog.Category{Name: "Clothes"}},
		{ID: 2, Title: "Mug", Price: decimal.RequireFromString("4.5")},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	want := "id,title,price,category\n" +
		`1,"Shirt, ""Classic""",10,"Clothes"` + "\n" +
		`2,"Mug",4.5,"No Category"` + "\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSVEmptyPageHasHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, Header+"\n", buf.String())
}

func TestWriteFileExportsOnlyTheProjectedPage(t *testing.T) {
	view := make([]catalog.Product, 15)
	for i := range view {
		view[i] = catalog.Product{ID: i + 1, Title: fmt.Sprintf("Item %d", i+1), Price: decimal.NewFromInt(int64(i))}
	}
	page := state.Project(view, 2, state.PageSize)

	dir := filepath.Join(t.TempDir(), "out")
	path, err := WriteFile(dir, page.Rows)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(raw), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, Header, lines[0])
	assert.True(t, strings.HasPrefix(lines[1], `11,"Item 11"`), lines[1])
	assert.True(t, strings.HasPrefix(lines[5], `15,"Item 15"`), lines[5])

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should be renamed away")
}

func TestWriteFileOverwrites(t *testing.T) {
	dir := t.TempDir()
	_, err := WriteFile(dir, []catalog.Product{{ID: 1, Title: "first"}})
	require.NoError(t, err)
	path, err := WriteFile(dir, []catalog.Product{{ID: 2, Title: "second"}})
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"second"`)
	assert.NotContains(t, string(raw), `"first"`)
}
