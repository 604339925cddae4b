// Package statement normalizes heterogeneous bank CSV exports into
// canonical parsed transactions. Row-level failures are skipped and
// counted, never fatal: the parser returns whatever valid subset it
// could extract.
package statement

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/sankalpa/khaata/internal/common"
	"github.com/sankalpa/khaata/internal/model"
)

// placeholderDescription is used when a row has no description cell.
const placeholderDescription = "Unknown transaction"

// previewRowCount caps the raw rows echoed back for UI preview.
const previewRowCount = 5

// ParseResult is the outcome of parsing one statement.
type ParseResult struct {
	DetectedFormat string
	Headers        []string
	PreviewRows    []map[string]string
	Transactions   []model.ParsedTransaction
	Dropped        int
}

// ColumnMapping is an explicit user-supplied column assignment, used
// when format auto-detection fails or is overridden.
type ColumnMapping struct {
	Date        string
	Description string
	Amount      string
	Debit       string
	Credit      string
	DrCr        string
	Merchant    string
}

// Parser turns raw CSV statement bytes into parsed transactions.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a statement parser.
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// Parse auto-detects the bank format from the header row and extracts
// transactions. declaredSource, when non-empty, labels the resulting
// transactions; otherwise the detected format name is used.
func (p *Parser) Parse(ctx context.Context, data []byte, declaredSource string) (*ParseResult, error) {
	headers, rows, err := readCSV(data)
	if err != nil {
		return nil, err
	}

	format := DetectFormat(headers)
	p.logger.Debug("detected statement format",
		"format", format.Name,
		"columns", len(headers))

	result := p.parseRows(ctx, format, headers, rows, declaredSource)
	result.DetectedFormat = format.Name
	if len(result.Transactions) == 0 {
		return result, common.ErrNoRowsParsed
	}
	return result, nil
}

// ParseWithMapping parses using an explicit column mapping instead of
// format detection.
func (p *Parser) ParseWithMapping(ctx context.Context, data []byte, mapping ColumnMapping, declaredSource string) (*ParseResult, error) {
	headers, rows, err := readCSV(data)
	if err != nil {
		return nil, err
	}

	format := Format{Name: "custom"}
	if mapping.Date != "" {
		format.DateColumns = []string{mapping.Date}
	}
	if mapping.Description != "" {
		format.DescriptionColumns = []string{mapping.Description}
	}
	if mapping.Amount != "" {
		format.AmountColumns = []string{mapping.Amount}
	}
	if mapping.Debit != "" {
		format.DebitColumns = []string{mapping.Debit}
	}
	if mapping.Credit != "" {
		format.CreditColumns = []string{mapping.Credit}
	}
	if mapping.DrCr != "" {
		format.DrCrColumns = []string{mapping.DrCr}
	}
	if mapping.Merchant != "" {
		format.MerchantColumns = []string{mapping.Merchant}
	}

	result := p.parseRows(ctx, format, headers, rows, declaredSource)
	result.DetectedFormat = format.Name
	if len(result.Transactions) == 0 {
		return result, common.ErrNoRowsParsed
	}
	return result, nil
}

func (p *Parser) parseRows(ctx context.Context, format Format, headers []string, rows [][]string, declaredSource string) *ParseResult {
	generic := formats[len(formats)-1]
	source := declaredSource
	if source == "" {
		source = format.Name
	}

	result := &ParseResult{Headers: headers}

	for _, values := range rows {
		if ctx.Err() != nil {
			break
		}
		if emptyRow(values) {
			continue
		}

		row := rowReader{headers: headers, values: values}
		original := row.asMap()
		if len(result.PreviewRows) < previewRowCount {
			result.PreviewRows = append(result.PreviewRows, original)
		}

		date, err := parseDate(resolveField(row, format.DateColumns, generic.DateColumns))
		if err != nil {
			result.Dropped++
			p.logger.Debug("dropping row with unparseable date", "error", err)
			continue
		}

		rawAmount, err := resolveAmount(row, withGenericAmounts(format, generic))
		if err != nil {
			result.Dropped++
			p.logger.Debug("dropping row with no amount", "error", err)
			continue
		}
		signed, err := parseAmount(rawAmount)
		if err != nil {
			result.Dropped++
			p.logger.Debug("dropping row with unparseable amount", "error", err)
			continue
		}

		description := resolveField(row, format.DescriptionColumns, generic.DescriptionColumns)
		if description == "" {
			description = placeholderDescription
		}

		merchant := resolveField(row, format.MerchantColumns, generic.MerchantColumns)
		if merchant == "" {
			merchant = ExtractMerchant(description)
		}

		result.Transactions = append(result.Transactions, model.ParsedTransaction{
			Date:        date,
			Description: description,
			Amount:      math.Abs(signed),
			Merchant:    merchant,
			Type:        ClassifyType(description, signed),
			Source:      source,
			OriginalRow: original,
		})
	}

	return result
}

// withGenericAmounts extends a format's amount columns with the generic
// fallback guesses so specific formats still extract when a statement
// deviates slightly from its usual header names.
func withGenericAmounts(f, generic Format) Format {
	if len(f.DebitColumns) == 0 && len(f.CreditColumns) == 0 && len(f.AmountColumns) == 0 {
		f.AmountColumns = generic.AmountColumns
		f.DebitColumns = generic.DebitColumns
		f.CreditColumns = generic.CreditColumns
	}
	return f
}

func resolveField(row rowReader, primary, fallback []string) string {
	if v := row.resolve(primary); v != "" {
		return v
	}
	return row.resolve(fallback)
}

// readCSV decodes the statement bytes, tolerating ragged rows and lazy
// quoting. Unreadable records are skipped, not fatal.
func readCSV(data []byte) ([]string, [][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var records [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			continue
		}
		records = append(records, record)
	}

	// The header is the first record with any content; bank exports
	// sometimes lead with blank lines.
	for i, record := range records {
		if !emptyRow(record) {
			headers := make([]string, len(record))
			for j, h := range record {
				headers[j] = strings.TrimSpace(h)
			}
			return headers, records[i+1:], nil
		}
	}

	return nil, nil, common.ErrMissingHeader
}

func emptyRow(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// rowReader resolves logical fields against one CSV record.
type rowReader struct {
	headers []string
	values  []string
}

func (r rowReader) at(i int) string {
	if i < len(r.values) {
		return strings.TrimSpace(r.values[i])
	}
	return ""
}

func (r rowReader) asMap() map[string]string {
	m := make(map[string]string, len(r.headers))
	for i, h := range r.headers {
		m[h] = r.at(i)
	}
	return m
}

// resolve tries each candidate column name through the resolution
// ladder: exact match, case-insensitive, whitespace-trimmed, then
// substring in either direction. The first non-empty value wins.
func (r rowReader) resolve(candidates []string) string {
	for _, cand := range candidates {
		for i, h := range r.headers {
			if h == cand {
				if v := r.at(i); v != "" {
					return v
				}
			}
		}
		for i, h := range r.headers {
			if strings.EqualFold(h, cand) {
				if v := r.at(i); v != "" {
					return v
				}
			}
		}
		trimmed := strings.TrimSpace(cand)
		for i, h := range r.headers {
			if strings.EqualFold(strings.TrimSpace(h), trimmed) {
				if v := r.at(i); v != "" {
					return v
				}
			}
		}
		lower := strings.ToLower(trimmed)
		for i, h := range r.headers {
			lh := strings.ToLower(strings.TrimSpace(h))
			if lh == "" {
				continue
			}
			if strings.Contains(lh, lower) || strings.Contains(lower, lh) {
				if v := r.at(i); v != "" {
					return v
				}
			}
		}
	}
	return ""
}
