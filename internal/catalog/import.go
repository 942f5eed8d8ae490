package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/harpsglobal/harps-portal-backend/pkg/db/models"
	pkgerrors "github.com/harpsglobal/harps-portal-backend/pkg/errors"
	"github.com/harpsglobal/harps-portal-backend/pkg/types"
	"github.com/lib/pq"
	"github.com/xuri/excelize/v2"
	"go.uber.org/multierr"
)

// ImportResult summarizes a bulk product upload. RowErrors carries the
// aggregated per-row failures for logging; it is never sent to clients.
type ImportResult struct {
	Imported  int   `json:"imported"`
	Failed    int   `json:"failed"`
	RowErrors error `json:"-"`
}

// importColumns are the recognized header names, case-insensitive.
var importColumns = []string{
	"name", "sku", "category", "base_price", "image_url",
	"unit", "items_per_dispenser", "dispensers_per_carton",
	"specifications", "variants",
}

// Import parses an xlsx upload and upserts products by SKU. A bad row
// fails alone; the rest of the sheet still imports.
func (s *service) Import(ctx context.Context, file io.Reader) (*ImportResult, error) {
	book, err := excelize.OpenReader(file)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unreadable spreadsheet")
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "spreadsheet has no sheets")
	}

	rows, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "reading sheet rows")
	}
	if len(rows) < 2 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "spreadsheet has no data rows")
	}

	columns, err := mapHeader(rows[0])
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header
		product, err := parseImportRow(row, columns)
		if err != nil {
			result.Failed++
			result.RowErrors = multierr.Append(result.RowErrors, fmt.Errorf("row %d: %w", rowNum, err))
			continue
		}
		if err := s.repo.UpsertBySKU(ctx, product); err != nil {
			result.Failed++
			result.RowErrors = multierr.Append(result.RowErrors, fmt.Errorf("row %d: upsert %q: %w", rowNum, product.SKU, err))
			continue
		}
		result.Imported++
	}

	return result, nil
}

func mapHeader(header []string) (map[string]int, error) {
	columns := map[string]int{}
	for idx, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		for _, known := range importColumns {
			if name == known {
				columns[known] = idx
			}
		}
	}
	if _, ok := columns["sku"]; !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "missing required column sku")
	}
	if _, ok := columns["name"]; !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "missing required column name")
	}
	return columns, nil
}

func parseImportRow(row []string, columns map[string]int) (*models.Product, error) {
	cell := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	sku := cell("sku")
	if sku == "" {
		return nil, fmt.Errorf("empty sku")
	}
	name := cell("name")
	if name == "" {
		return nil, fmt.Errorf("empty name")
	}

	var basePrice int64
	if raw := cell("base_price"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid base_price %q", raw)
		}
		if parsed < 0 {
			return nil, fmt.Errorf("negative base_price %d", parsed)
		}
		basePrice = parsed
	}

	spec := parseSpecifications(cell("specifications"))
	for _, key := range []string{SpecKeyUnit, SpecKeyItemsPerDispenser, SpecKeyDispensersPerCarton} {
		if value := cell(key); value != "" {
			spec[key] = value
		}
	}

	product := &models.Product{
		SKU:            sku,
		Name:           name,
		Category:       cell("category"),
		BasePrice:      basePrice,
		Specifications: spec,
		Variants:       parseVariants(cell("variants")),
	}
	if url := cell("image_url"); url != "" {
		product.ImageURL = &url
	}
	return product, nil
}

// parseSpecifications accepts a JSON object or a `key:value,key:value`
// fallback, matching what the bulk sheets in the wild contain.
func parseSpecifications(raw string) types.JSONMap {
	spec := types.JSONMap{}
	if raw == "" {
		return spec
	}

	if strings.HasPrefix(raw, "{") {
		var decoded map[string]any
		if err := json.Unmarshal([]byte(raw), &decoded); err == nil {
			for k, v := range decoded {
				spec[k] = fmt.Sprintf("%v", v)
			}
			return spec
		}
	}

	for _, pair := range strings.Split(raw, ",") {
		parts := strings.SplitN(pair, ":", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key != "" {
			spec[key] = value
		}
	}
	return spec
}

func parseVariants(raw string) pq.StringArray {
	if raw == "" {
		return pq.StringArray{}
	}
	var out pq.StringArray
	for _, part := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
