// Package source discovers and parses bank and platform statement files.
package source

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/theirongolddev/gigfin/internal/model"
)

// importNamespace seeds the deterministic ids given to imported rows, so the
// same row imported twice maps to the same transaction id.
var importNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("gigfin/statement-import"))

// ErrMissingColumn is returned when a CSV header lacks a required column.
var ErrMissingColumn = errors.New("source: missing required column")

// ParseFile reads a statement file and converts every row it can into a
// transaction. Rows that cannot be parsed are counted in ParseErrors.
func ParseFile(df DiscoveredFile) ParseResult {
	f, err := os.Open(df.Path)
	if err != nil {
		return ParseResult{File: df, Err: err}
	}
	defer func() { _ = f.Close() }()

	switch df.Format {
	case FormatCSV:
		return parseCSV(f, df)
	case FormatJSONL:
		return parseJSONL(f, df)
	}
	return ParseResult{File: df, Err: fmt.Errorf("source: unsupported format %q", df.Format)}
}

func parseCSV(r io.Reader, df DiscoveredFile) ParseResult {
	res := ParseResult{File: df}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return res
		}
		res.Err = fmt.Errorf("reading header: %w", err)
		return res
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, required := range []string{"date", "amount"} {
		if _, ok := cols[required]; !ok {
			res.Err = fmt.Errorf("%w: %s", ErrMissingColumn, required)
			return res
		}
	}

	field := func(rec []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			res.ParseErrors++
			continue
		}

		amount, err := parseAmount(field(rec, "amount"))
		if err != nil {
			res.ParseErrors++
			continue
		}

		raw := RawEntry{
			ID:          field(rec, "id"),
			Type:        field(rec, "type"),
			Amount:      amount,
			Category:    field(rec, "category"),
			Date:        field(rec, "date"),
			Description: field(rec, "description"),
		}
		tx, err := toTransaction(raw, df, line, strings.Join(rec, ","))
		if err != nil {
			res.ParseErrors++
			continue
		}
		res.Transactions = append(res.Transactions, tx)
	}

	return res
}

func parseJSONL(r io.Reader, df DiscoveredFile) ParseResult {
	res := ParseResult{File: df}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var raw RawEntry
		if err := json.Unmarshal([]byte(text), &raw); err != nil {
			res.ParseErrors++
			continue
		}
		tx, err := toTransaction(raw, df, line, text)
		if err != nil {
			res.ParseErrors++
			continue
		}
		res.Transactions = append(res.Transactions, tx)
	}
	if err := scanner.Err(); err != nil {
		res.Err = err
	}

	return res
}

func toTransaction(raw RawEntry, df DiscoveredFile, line int, text string) (model.Transaction, error) {
	date, err := model.ParseDate(raw.Date)
	if err != nil {
		return model.Transaction{}, err
	}
	typ, amount, err := resolveType(raw.Type, raw.Amount)
	if err != nil {
		return model.Transaction{}, err
	}

	category := raw.Category
	if category == "" && df.Platform != "" {
		category = df.Platform
	}

	id := raw.ID
	if id == "" {
		key := fmt.Sprintf("%s|%d|%s", filepath.Base(df.Path), line, text)
		id = uuid.NewSHA1(importNamespace, []byte(key)).String()
	}

	return model.Transaction{
		ID:          id,
		Type:        typ,
		Amount:      amount,
		Category:    NormalizeCategory(category),
		Date:        date,
		Description: raw.Description,
	}, nil
}

// resolveType maps a statement's type label onto a transaction type. With no
// label, negative amounts are expenses and everything else is income.
// The returned amount is always non-negative.
func resolveType(label string, amount float64) (model.TxType, float64, error) {
	var typ model.TxType
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "income", "credit", "revenue", "payout", "cr":
		typ = model.TypeIncome
	case "expense", "debit", "dr":
		typ = model.TypeExpense
	case "withdrawal", "transfer":
		typ = model.TypeWithdrawal
	case "":
		if amount < 0 {
			typ = model.TypeExpense
		} else {
			typ = model.TypeIncome
		}
	default:
		return "", 0, fmt.Errorf("source: unknown transaction type %q", label)
	}
	return typ, math.Abs(amount), nil
}

// parseAmount accepts plain numbers with optional currency symbols and
// thousands separators, e.g. "₹1,200.50" or "-300".
func parseAmount(s string) (float64, error) {
	cleaned := strings.NewReplacer(",", "", "₹", "", "$", "", "Rs.", "", "INR", "", " ", "").Replace(s)
	if cleaned == "" {
		return 0, errors.New("source: empty amount")
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("source: invalid amount %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("source: invalid amount %q", s)
	}
	return v, nil
}
