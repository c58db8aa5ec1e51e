// Package export writes the visible page of the product table to a CSV file.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/five82/shopkeep/internal/catalog"
)

// FileName is the fixed name of the exported file.
const FileName = "products.csv"

// Header is the first line of every export.
const Header = "id,title,price,category"

// WriteCSV encodes rows as id,title,price,category. Title and category are
// always quoted, with embedded quotes doubled, so spreadsheets never split a
// title on a comma.
func WriteCSV(w io.Writer, rows []catalog.Product) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Header + "\n"); err != nil {
		return err
	}
	for _, p := range rows {
		line := strings.Join([]string{
			strconv.Itoa(p.ID),
			quote(p.Title),
			p.Price.String(),
			quote(p.CategoryName()),
		}, ",")
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes rows to dir/FileName, creating dir if needed, and returns
// the path written. The file is replaced only once fully written.
func WriteFile(dir string, rows []catalog.Product) (string, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, FileName)

	tmp, err := os.CreateTemp(dir, ".products-*.csv")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := WriteCSV(tmp, rows); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write csv: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", fmt.Errorf("chmod export: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("rename export: %w", err)
	}
	return path, nil
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
