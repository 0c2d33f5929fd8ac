package csv

import (
	"context"
	stdcsv "encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/SscSPs/smart_wallet/internal/core/domain"
	portsrepo "github.com/SscSPs/smart_wallet/internal/core/ports/repositories"
)

// utf8BOM makes spreadsheet programs read the Arabic text as UTF-8.
const utf8BOM = "\uFEFF"

// Header is the first row of every statement.
var Header = []string{"التاريخ", "الوصف", "النوع", "المبلغ", "العملة"}

// Write renders stmt as a semicolon separated CSV document.
func Write(w io.Writer, stmt domain.Statement) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}
	cw := stdcsv.NewWriter(w)
	cw.Comma = ';'
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, row := range stmt.Rows {
		record := []string{
			row.Date.Format(time.DateOnly),
			row.Description,
			row.TypeLabel,
			row.Amount.String(),
			row.CurrencySymbol,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// FileName is the download name of a statement exported at the given time.
func FileName(stmt domain.Statement, at time.Time) string {
	name := strings.Join(strings.Fields(stmt.AccountName), "_")
	return fmt.Sprintf("كشف_حساب_%s_%s.csv", name, at.Format(time.DateOnly))
}

// FileExporter writes statements as CSV files into a directory.
type FileExporter struct {
	dir string
	now func() time.Time
}

// NewFileExporter creates an exporter writing into dir.
func NewFileExporter(dir string) *FileExporter {
	return &FileExporter{dir: dir, now: time.Now}
}

var _ portsrepo.StatementExporter = (*FileExporter)(nil)

// Export implements portsrepo.StatementExporter. It returns the path of the written file.
func (e *FileExporter) Export(_ context.Context, stmt domain.Statement) (string, error) {
	path := filepath.Join(e.dir, FileName(stmt, e.now()))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create statement file: %w", err)
	}
	if err := Write(f, stmt); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write statement file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close statement file: %w", err)
	}
	return path, nil
}
