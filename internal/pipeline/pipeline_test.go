package pipeline

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/product-etl/internal/config"
	"github.com/ginjaninja78/product-etl/internal/extractor"
	"github.com/ginjaninja78/product-etl/internal/loader"
	"github.com/ginjaninja78/product-etl/internal/logging"
	"github.com/ginjaninja78/product-etl/internal/report"
)

const mixedInput = "ProductID,Name,Price,Category\n" +
	"1,Laptop,999.99,Electronics\n" +
	"2,Desk,45,Furniture\n" +
	"\n" +
	"abc,Widget,12.50,Home\n" +
	"7,Widget,notaprice,Home\n" +
	"8,Stapler,10\n" +
	"9,Monitor,555.56,Electronics\n" +
	"10,Phone,600.00,Electronics\n" +
	"11,Pencil,10.00,Office\n" +
	"12,Notebook,10.005,Office\n" +
	"13, lamp ,100.01,Home\n" +
	"14,Cable,11.11,Electronics\n"

func newTestConfig(t *testing.T, input string) *config.Config {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.InputFile = filepath.Join(dir, "data", "products.csv")
	cfg.OutputFile = filepath.Join(dir, "out", "nested", "transformed_products.csv")

	require.NoError(t, os.MkdirAll(filepath.Dir(cfg.InputFile), 0755))
	require.NoError(t, os.WriteFile(cfg.InputFile, []byte(input), 0644))
	return cfg
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// referenceOutput processes the input in a single pass, line by line, with no
// shared code from the extractor, transformer or loader. It is the oracle the
// decomposed pipeline is checked against.
func referenceOutput(t *testing.T, input string) (output string, read, skipped, transformed int) {
	t.Helper()

	var sb strings.Builder
	sb.WriteString("ProductID,Name,Price,Category,PriceRange\n")

	scanner := bufio.NewScanner(strings.NewReader(input))
	scanner.Scan() // header
	for scanner.Scan() {
		line := scanner.Text()
		read++
		if strings.TrimSpace(line) == "" {
			skipped++
			continue
		}
		parts := strings.Split(line, ",")
		for len(parts) > 0 && parts[len(parts)-1] == "" {
			parts = parts[:len(parts)-1]
		}
		if len(parts) != 4 {
			skipped++
			continue
		}
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if _, err := strconv.ParseInt(parts[0], 10, 32); err != nil {
			skipped++
			continue
		}
		price, err := decimal.NewFromString(parts[2])
		if err != nil {
			skipped++
			continue
		}
		price = price.Round(2)

		category := parts[3]
		if category == "Electronics" {
			price = price.Mul(decimal.RequireFromString("0.9")).Round(2)
			if price.GreaterThan(decimal.NewFromInt(500)) {
				category = "Premium Electronics"
			}
		}

		priceRange := "Premium"
		switch {
		case price.LessThanOrEqual(decimal.NewFromInt(10)):
			priceRange = "Low"
		case price.LessThanOrEqual(decimal.NewFromInt(100)):
			priceRange = "Medium"
		case price.LessThanOrEqual(decimal.NewFromInt(500)):
			priceRange = "High"
		}

		sb.WriteString(strings.Join([]string{
			parts[0], strings.ToUpper(parts[1]), price.StringFixed(2), category, priceRange,
		}, ",") + "\n")
		transformed++
	}
	require.NoError(t, scanner.Err())

	return sb.String(), read, skipped, transformed
}

func TestRun_EndToEnd(t *testing.T) {
	cfg := newTestConfig(t, "ProductID,Name,Price,Category\n"+
		"1,Laptop,999.99,Electronics\n"+
		"2,Desk,45,Furniture\n")

	result := New(cfg, logging.Discard()).Run()
	require.NoError(t, result.Error)
	assert.True(t, result.Success)
	assert.NotEmpty(t, result.RunID)

	// 999.99 * 0.9 = 899.991 -> 899.99, which is above 500.
	assert.Equal(t,
		"ProductID,Name,Price,Category,PriceRange\n"+
			"1,LAPTOP,899.99,Premium Electronics,Premium\n"+
			"2,DESK,45.00,Furniture,Medium\n",
		readFile(t, cfg.OutputFile))

	assert.Equal(t, 2, result.Stats.RowsRead)
	assert.Equal(t, 2, result.Stats.RowsTransformed)
	assert.Equal(t, 0, result.Stats.RowsSkipped)
}

func TestRun_MatchesReferenceOracle(t *testing.T) {
	cfg := newTestConfig(t, mixedInput)

	result := New(cfg, logging.Discard()).Run()
	require.NoError(t, result.Error)

	want, read, skipped, transformed := referenceOutput(t, mixedInput)
	assert.Equal(t, want, readFile(t, cfg.OutputFile))
	assert.Equal(t, read, result.Stats.RowsRead)
	assert.Equal(t, skipped, result.Stats.RowsSkipped)
	assert.Equal(t, transformed, result.Stats.RowsTransformed)
}

func TestRun_MixedInputOutput(t *testing.T) {
	cfg := newTestConfig(t, mixedInput)

	result := New(cfg, logging.Discard()).Run()
	require.NoError(t, result.Error)

	assert.Equal(t,
		"ProductID,Name,Price,Category,PriceRange\n"+
			"1,LAPTOP,899.99,Premium Electronics,Premium\n"+
			"2,DESK,45.00,Furniture,Medium\n"+
			"9,MONITOR,500.00,Electronics,High\n"+
			"10,PHONE,540.00,Premium Electronics,Premium\n"+
			"11,PENCIL,10.00,Office,Low\n"+
			"12,NOTEBOOK,10.01,Office,Medium\n"+
			"13,LAMP,100.01,Home,High\n"+
			"14,CABLE,10.00,Electronics,Low\n",
		readFile(t, cfg.OutputFile))

	assert.Equal(t, 12, result.Stats.RowsRead)
	assert.Equal(t, 4, result.Stats.RowsSkipped)
	assert.Equal(t, 8, result.Stats.RowsTransformed)
	assert.Equal(t, result.Stats.RowsRead, result.Stats.RowsSkipped+result.Stats.RowsTransformed)

	require.Len(t, result.Skipped, 4)
	assert.ErrorIs(t, result.Skipped[0].Reason, extractor.ErrBlankLine)
	assert.Equal(t, 4, result.Skipped[0].Line)
	for _, s := range result.Skipped[1:] {
		assert.ErrorIs(t, s.Reason, extractor.ErrMalformedRow)
	}
}

func TestRun_Idempotent(t *testing.T) {
	cfg := newTestConfig(t, mixedInput)
	p := New(cfg, logging.Discard())

	first := p.Run()
	require.NoError(t, first.Error)
	firstOutput := readFile(t, cfg.OutputFile)

	second := p.Run()
	require.NoError(t, second.Error)

	assert.Equal(t, firstOutput, readFile(t, cfg.OutputFile))
	assert.Equal(t, first.Stats.RowsRead, second.Stats.RowsRead)
	assert.Equal(t, first.Stats.RowsTransformed, second.Stats.RowsTransformed)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestRun_MissingInputWritesNothing(t *testing.T) {
	cfg := newTestConfig(t, "")
	require.NoError(t, os.Remove(cfg.InputFile))
	cfg.XLSXReport = filepath.Join(filepath.Dir(cfg.OutputFile), "report.xlsx")
	cfg.SummaryDir = filepath.Join(t.TempDir(), "logs")

	result := New(cfg, logging.Discard()).Run()

	assert.False(t, result.Success)
	assert.ErrorIs(t, result.Error, extractor.ErrMissingInputFile)
	assert.Nil(t, result.Products)

	_, err := os.Stat(filepath.Dir(cfg.OutputFile))
	assert.True(t, os.IsNotExist(err), "output directory must not be created")
	_, err = os.Stat(cfg.SummaryDir)
	assert.True(t, os.IsNotExist(err), "summary directory must not be created")
}

func TestRun_HeaderOnlyInputWritesHeader(t *testing.T) {
	cfg := newTestConfig(t, "ProductID,Name,Price,Category\n")

	result := New(cfg, logging.Discard()).Run()
	require.NoError(t, result.Error)

	assert.Equal(t, "ProductID,Name,Price,Category,PriceRange\n", readFile(t, cfg.OutputFile))
	assert.Zero(t, result.Stats.RowsRead)
}

func TestRun_UnwritableOutput(t *testing.T) {
	cfg := newTestConfig(t, mixedInput)

	// A regular file where the output directory should be.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	cfg.OutputFile = filepath.Join(blocker, "out.csv")
	cfg.SummaryDir = filepath.Join(t.TempDir(), "logs")

	result := New(cfg, logging.Discard()).Run()

	assert.False(t, result.Success)
	assert.ErrorIs(t, result.Error, loader.ErrOutputWrite)
	require.NotEmpty(t, result.SummaryFile)
	assert.Contains(t, readFile(t, result.SummaryFile), "FAILED")
}

func TestRun_DryRun(t *testing.T) {
	cfg := newTestConfig(t, mixedInput)
	cfg.XLSXReport = filepath.Join(t.TempDir(), "report.xlsx")

	result := New(cfg, logging.Discard()).WithDryRun(true).Run()
	require.NoError(t, result.Error)

	assert.True(t, result.Success)
	assert.True(t, result.DryRun)
	assert.Equal(t, 8, result.Stats.RowsTransformed)
	assert.Len(t, result.Products, 8)

	_, err := os.Stat(cfg.OutputFile)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(cfg.XLSXReport)
	assert.True(t, os.IsNotExist(err))
}

func TestRun_CustomDelimiter(t *testing.T) {
	cfg := newTestConfig(t, "ProductID;Name;Price;Category\n1;Desk;45;Furniture\n")
	cfg.Delimiter = ";"

	result := New(cfg, logging.Discard()).Run()
	require.NoError(t, result.Error)

	assert.Equal(t,
		"ProductID;Name;Price;Category;PriceRange\n1;DESK;45.00;Furniture;Medium\n",
		readFile(t, cfg.OutputFile))
}

func TestRun_WritesReports(t *testing.T) {
	cfg := newTestConfig(t, mixedInput)
	cfg.XLSXReport = filepath.Join(t.TempDir(), "reports", "run.xlsx")
	cfg.SummaryDir = filepath.Join(t.TempDir(), "logs")

	result := New(cfg, logging.Discard()).Run()
	require.NoError(t, result.Error)

	f, err := excelize.OpenFile(cfg.XLSXReport)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(report.ProductsSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1+result.Stats.RowsTransformed)

	summaryRows, err := f.GetRows(report.SummarySheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Run ID", result.RunID}, summaryRows[0])

	require.NotEmpty(t, result.SummaryFile)
	summary := readFile(t, result.SummaryFile)
	assert.Contains(t, summary, result.RunID)
	assert.Contains(t, summary, "Rows Skipped:     4")
	assert.Contains(t, summary, "blank line")
}

func TestCheck(t *testing.T) {
	cfg := newTestConfig(t, mixedInput)

	extraction, err := New(cfg, logging.Discard()).Check()
	require.NoError(t, err)

	assert.Equal(t, 12, extraction.RowsRead)
	assert.Equal(t, 4, extraction.RowsSkipped)
	assert.Len(t, extraction.Records, 8)

	_, err = os.Stat(cfg.OutputFile)
	assert.True(t, os.IsNotExist(err))
}

func TestCheck_MissingInput(t *testing.T) {
	cfg := newTestConfig(t, "")
	require.NoError(t, os.Remove(cfg.InputFile))

	extraction, err := New(cfg, logging.Discard()).Check()
	assert.Nil(t, extraction)
	assert.ErrorIs(t, err, extractor.ErrMissingInputFile)
}

func TestRun_LogsHeaderMismatchAndReplacedOutput(t *testing.T) {
	cfg := newTestConfig(t, "id,Name,Cost,Category\n2,Desk,45,Furniture\n")

	var logs bytes.Buffer
	logger, err := logging.New(&logs, "debug")
	require.NoError(t, err)

	first := New(cfg, logger).Run()
	require.NoError(t, first.Error)
	assert.Contains(t, logs.String(), "unexpected header [id Name Cost Category]")
	assert.NotContains(t, logs.String(), "replacing existing")

	logs.Reset()
	second := New(cfg, logger).Run()
	require.NoError(t, second.Error)
	assert.Contains(t, logs.String(), "replacing existing "+cfg.OutputFile)
	assert.Equal(t, "ProductID,Name,Price,Category,PriceRange\n2,DESK,45.00,Furniture,Medium\n", readFile(t, cfg.OutputFile))
}

func TestRun_LongLineDoesNotAbort(t *testing.T) {
	cfg := newTestConfig(t, "ProductID,Name,Price,Category\n"+
		"2,Desk,45,Furniture"+strings.Repeat(" ", 100*1024)+"\n"+
		"3,Pen,1.5,Office\n")

	result := New(cfg, logging.Discard()).Run()
	require.NoError(t, result.Error)
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.Stats.RowsRead)
	assert.Equal(t, 2, result.Stats.RowsTransformed)
	assert.Equal(t,
		"ProductID,Name,Price,Category,PriceRange\n2,DESK,45.00,Furniture,Medium\n3,PEN,1.50,Office,Low\n",
		readFile(t, cfg.OutputFile))
}
