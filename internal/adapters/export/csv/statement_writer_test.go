package csv

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/smart_wallet/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStatement() domain.Statement {
	return domain.Statement{
		AccountName: "الصندوق المنزلي ($)",
		Rows: []domain.StatementRow{
			{
				Date:           time.Date(2024, 5, 28, 10, 0, 0, 0, time.UTC),
				Description:    `فاتورة "انترنت"; مايو`,
				TypeLabel:      domain.Expense.Label(),
				Amount:         decimal.NewFromInt(50),
				Currency:       domain.USD,
				CurrencySymbol: "$",
			},
		},
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleStatement()))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, utf8BOM))
	lines := strings.Split(strings.TrimSuffix(strings.TrimPrefix(out, utf8BOM), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "التاريخ;الوصف;النوع;المبلغ;العملة", lines[0])
	assert.Equal(t, `2024-05-28;"فاتورة ""انترنت""; مايو";`+domain.Expense.Label()+`;50;$`, lines[1])
}

func TestFileName(t *testing.T) {
	name := FileName(sampleStatement(), time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "كشف_حساب_الصندوق_المنزلي_($)_2024-06-01.csv", name)
}

func TestFileExporter(t *testing.T) {
	dir := t.TempDir()
	exporter := NewFileExporter(dir)
	exporter.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }

	path, err := exporter.Export(context.Background(), sampleStatement())
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "فاتورة")
}
