// Package importer loads specialty pizzas from a CSV menu export.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"pizza-storefront/internal/domain"
)

type PizzaWriter interface {
	Upsert(ctx context.Context, pizza domain.PizzaDefinition) error
}

// CSVImporter reads menu CSV files. A row with an id starts a pizza; rows
// without one only carry an extra base topping for the pizza above them.
//
//	id,name,group,description,price.small,price.medium,price.large,topping
//	hawaiian,Hawaiian,classics,Ham and pineapple,11.99,14.99,17.99,ham
//	,,,,,,,pineapple
type CSVImporter struct {
	reader *csv.Reader
	writer PizzaWriter
}

func NewCSVImporter(r io.Reader, writer PizzaWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // continuation rows may be short
	return &CSVImporter{
		reader: csvr,
		writer: writer,
	}
}

type csvRow struct {
	ID          string
	Name        string
	Group       string
	Description string
	Prices      map[domain.Size]string
	Toppings    []string
}

// Run parses CSV rows and upserts one pizza per id.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	var (
		current  *csvRow
		imported int
	)

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		row := parseRow(record, index)
		if row == nil {
			continue
		}

		if row.ID != "" {
			if current != nil {
				if err := i.save(ctx, current); err != nil {
					return imported, err
				}
				imported++
			}
			current = row
			continue
		}

		if current != nil {
			current.Toppings = append(current.Toppings, row.Toppings...)
		}
	}

	if current != nil {
		if err := i.save(ctx, current); err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, row *csvRow) error {
	if row.Name == "" {
		return fmt.Errorf("invalid pizza row (missing name) for id %q", row.ID)
	}

	prices := make(map[domain.Size]decimal.Decimal, len(domain.Sizes))
	for _, size := range domain.Sizes {
		raw := row.Prices[size]
		if raw == "" {
			return fmt.Errorf("pizza %q: missing %s price", row.ID, size)
		}
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return fmt.Errorf("pizza %q: %s price %q: %w", row.ID, size, raw, err)
		}
		if amount.IsNegative() {
			return fmt.Errorf("pizza %q: negative %s price", row.ID, size)
		}
		prices[size] = amount
	}

	toppings := make(domain.BaseToppings, 0, len(row.Toppings))
	for _, t := range row.Toppings {
		toppings = append(toppings, domain.NormalizeTopping(t))
	}

	p := domain.PizzaDefinition{
		ID:           row.ID,
		Name:         row.Name,
		Description:  row.Description,
		Group:        domain.PizzaGroup(strings.ToLower(row.Group)),
		Kind:         domain.KindSpecialty,
		BaseToppings: toppings,
		Price:        prices,
	}
	if err := i.writer.Upsert(ctx, p); err != nil {
		return fmt.Errorf("upsert pizza %q: %w", row.ID, err)
	}
	return nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) *csvRow {
	id := pick(record, index, "id")
	topping := pick(record, index, "topping")
	if id == "" && topping == "" {
		return nil
	}

	row := &csvRow{
		ID:          id,
		Name:        pick(record, index, "name"),
		Group:       pick(record, index, "group"),
		Description: pick(record, index, "description"),
		Prices:      make(map[domain.Size]string, len(domain.Sizes)),
	}
	for _, size := range domain.Sizes {
		row.Prices[size] = pick(record, index, "price."+string(size))
	}
	if topping != "" {
		row.Toppings = []string{topping}
	}
	return row
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
