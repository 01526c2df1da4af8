// internal/core/services/importer.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lojinha/inventory-be/internal/core/domain"
	"github.com/lojinha/inventory-be/internal/core/ports"
)

// canonical attribute names after header normalization.
const (
	colName         = "name"
	colGender       = "gender"
	colSize         = "size"
	colColorPrint   = "color_print"
	colSupplier     = "supplier"
	colCost         = "cost"
	colRetailPrice  = "retail_price"
	colQuantity     = "quantity"
	colPurchaseDate = "purchase_date"
)

// headerAliases maps the column spellings seen in supplier spreadsheets
// (Portuguese and English, spacing and case already folded) to the
// canonical attribute names.
var headerAliases = map[string]string{
	"name":          colName,
	"product":       colName,
	"product_name":  colName,
	"produto":       colName,
	"nome":          colName,
	"gender":        colGender,
	"genero":        colGender,
	"gênero":        colGender,
	"categoria":     colGender,
	"size":          colSize,
	"tamanho":       colSize,
	"tam":           colSize,
	"color":         colColorPrint,
	"color_print":   colColorPrint,
	"print":         colColorPrint,
	"cor":           colColorPrint,
	"estampa":       colColorPrint,
	"cor_estampa":   colColorPrint,
	"supplier":      colSupplier,
	"fornecedor":    colSupplier,
	"cost":          colCost,
	"custo":         colCost,
	"preco_custo":   colCost,
	"preço_custo":   colCost,
	"retail_price":  colRetailPrice,
	"price":         colRetailPrice,
	"preco":         colRetailPrice,
	"preço":         colRetailPrice,
	"preco_venda":   colRetailPrice,
	"preço_venda":   colRetailPrice,
	"valor":         colRetailPrice,
	"quantity":      colQuantity,
	"qty":           colQuantity,
	"quantidade":    colQuantity,
	"qtd":           colQuantity,
	"purchase_date": colPurchaseDate,
	"date":          colPurchaseDate,
	"data":          colPurchaseDate,
	"data_compra":   colPurchaseDate,
}

var importDateLayouts = []string{"2006-01-02", "02/01/2006", "02-01-2006"}

// ImporterConfig tunes batch validation.
type ImporterConfig struct {
	// MaxRowErrors caps how many row-level errors a rejection reports.
	MaxRowErrors int
}

// Importer ingests spreadsheet rows as stock units, all-or-nothing.
// Unknown size/color/supplier values are auto-created as active options;
// if the batch then fails to persist, those options are removed again.
type Importer struct {
	units    ports.UnitRepository
	options  ports.OptionRepository
	registry ports.OptionRegistry
	cfg      ImporterConfig
	logger   *slog.Logger
}

var _ ports.Importer = (*Importer)(nil)

// NewImporter creates a new bulk importer service.
func NewImporter(units ports.UnitRepository, options ports.OptionRepository, registry ports.OptionRegistry, cfg ImporterConfig, logger *slog.Logger) *Importer {
	if cfg.MaxRowErrors <= 0 {
		cfg.MaxRowErrors = 10
	}
	return &Importer{
		units:    units,
		options:  options,
		registry: registry,
		cfg:      cfg,
		logger:   logger.With(slog.String("service", "importer")),
	}
}

// parsedRow is one validated import row before expansion into units.
type parsedRow struct {
	Name         string
	Gender       string
	Size         string
	ColorPrint   string
	Supplier     string
	Cost         decimal.Decimal
	RetailPrice  decimal.Decimal
	Quantity     int
	PurchaseDate time.Time
}

// ImportRows validates every row up front, auto-creates missing options,
// expands quantities into individual units and persists them in one
// batch. Any row error rejects the entire batch with a BatchError
// reporting up to MaxRowErrors failures.
func (s *Importer) ImportRows(ctx context.Context, rows []ports.ImportRow) (*ports.ImportResult, error) {
	if len(rows) == 0 {
		return nil, domain.InvalidAmount("rows", "import requires at least one row")
	}

	parsed := make([]parsedRow, 0, len(rows))
	var rowErrs []string
	truncated := false
	for i, raw := range rows {
		row, err := parseRow(normalizeRow(raw))
		if err != nil {
			if len(rowErrs) < s.cfg.MaxRowErrors {
				rowErrs = append(rowErrs, fmt.Sprintf("row %d: %v", i+1, err))
			} else {
				truncated = true
			}
			continue
		}
		parsed = append(parsed, row)
	}
	if len(rowErrs) > 0 {
		return nil, &domain.BatchError{RowErrors: rowErrs, Truncated: truncated}
	}

	created, err := s.ensureOptions(ctx, parsed)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	units := make([]domain.StockUnit, 0, len(parsed))
	for _, row := range parsed {
		for i := 0; i < row.Quantity; i++ {
			units = append(units, domain.StockUnit{
				ID:           uuid.Must(uuid.NewV7()),
				Name:         row.Name,
				Gender:       row.Gender,
				Size:         row.Size,
				ColorPrint:   row.ColorPrint,
				Supplier:     row.Supplier,
				Cost:         row.Cost,
				RetailPrice:  row.RetailPrice,
				PurchaseDate: row.PurchaseDate,
				Status:       domain.UnitAvailable,
				CreatedAt:    now,
				UpdatedAt:    now,
			})
		}
	}

	if err := s.units.SaveBatch(ctx, units); err != nil {
		s.rollbackOptions(ctx, created)
		return nil, fmt.Errorf("failed to save imported units: %w", err)
	}

	result := &ports.ImportResult{
		Units:          units,
		UnitCount:      len(units),
		RowCount:       len(parsed),
		CreatedOptions: make(map[domain.FieldType][]string, len(created)),
	}
	for _, opt := range created {
		result.CreatedOptions[opt.Type] = append(result.CreatedOptions[opt.Type], opt.Value)
	}

	s.logger.InfoContext(ctx, "bulk import completed",
		slog.Int("rows", len(parsed)),
		slog.Int("units", len(units)),
		slog.Int("created_options", len(created)))

	return result, nil
}

// ensureOptions auto-creates the size/color/supplier values the batch
// references that are not yet active options. Returns what it created
// so a later failure can compensate.
func (s *Importer) ensureOptions(ctx context.Context, rows []parsedRow) ([]domain.FieldOption, error) {
	type need struct {
		fieldType domain.FieldType
		value     string
	}
	seen := make(map[need]struct{})
	var needs []need
	for _, row := range rows {
		for _, n := range []need{
			{domain.FieldSize, row.Size},
			{domain.FieldColorPrint, row.ColorPrint},
			{domain.FieldSupplier, row.Supplier},
		} {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			needs = append(needs, n)
		}
	}

	var created []domain.FieldOption
	for _, n := range needs {
		existing, err := s.options.FindActiveByValue(ctx, n.fieldType, n.value)
		if err != nil {
			s.rollbackOptions(ctx, created)
			return nil, fmt.Errorf("failed to check option %s/%s: %w", n.fieldType, n.value, err)
		}
		if existing != nil {
			continue
		}
		opt, err := s.registry.AddOption(ctx, n.fieldType, n.value)
		if err != nil {
			s.rollbackOptions(ctx, created)
			return nil, err
		}
		created = append(created, *opt)
	}
	return created, nil
}

func (s *Importer) rollbackOptions(ctx context.Context, created []domain.FieldOption) {
	for _, opt := range created {
		if err := s.options.Delete(ctx, opt.ID); err != nil {
			s.logger.ErrorContext(ctx, "failed to remove option during import rollback",
				slog.String("option_id", opt.ID.String()),
				slog.String("error", err.Error()))
		}
	}
}

// normalizeRow folds heterogeneous column names to the canonical set.
// Unrecognized columns are dropped.
func normalizeRow(raw ports.ImportRow) ports.ImportRow {
	out := make(ports.ImportRow, len(raw))
	for key, value := range raw {
		canonical, ok := headerAliases[normalizeHeader(key)]
		if !ok {
			continue
		}
		out[canonical] = strings.TrimSpace(value)
	}
	return out
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "_")
	h = strings.ReplaceAll(h, "-", "_")
	h = strings.ReplaceAll(h, "/", "_")
	return h
}

func parseRow(row ports.ImportRow) (parsedRow, error) {
	var p parsedRow

	for _, required := range []string{colName, colSize, colColorPrint, colSupplier, colCost, colRetailPrice} {
		if row[required] == "" {
			return p, fmt.Errorf("missing required field %q", required)
		}
	}

	p.Name = row[colName]
	p.Gender = row[colGender]
	p.Size = row[colSize]
	p.ColorPrint = row[colColorPrint]
	p.Supplier = row[colSupplier]

	var err error
	if p.Cost, err = parseMoney(row[colCost]); err != nil {
		return p, fmt.Errorf("invalid cost %q", row[colCost])
	}
	if p.RetailPrice, err = parseMoney(row[colRetailPrice]); err != nil {
		return p, fmt.Errorf("invalid retail_price %q", row[colRetailPrice])
	}
	if p.Cost.IsNegative() || p.RetailPrice.IsNegative() {
		return p, fmt.Errorf("monetary values cannot be negative")
	}

	p.Quantity = 1
	if qty := row[colQuantity]; qty != "" {
		p.Quantity, err = strconv.Atoi(qty)
		if err != nil || p.Quantity < 1 {
			return p, fmt.Errorf("invalid quantity %q", qty)
		}
	}

	p.PurchaseDate = time.Now()
	if d := row[colPurchaseDate]; d != "" {
		if p.PurchaseDate, err = parseImportDate(d); err != nil {
			return p, fmt.Errorf("invalid purchase_date %q", d)
		}
	}

	return p, nil
}

// parseMoney accepts plain decimals plus the "R$ 1.234,56" style used in
// supplier spreadsheets.
func parseMoney(v string) (decimal.Decimal, error) {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "R$")
	v = strings.TrimPrefix(v, "r$")
	v = strings.TrimSpace(v)
	if strings.Contains(v, ",") {
		v = strings.ReplaceAll(v, ".", "")
		v = strings.ReplaceAll(v, ",", ".")
	}
	return decimal.NewFromString(v)
}

func parseImportDate(v string) (time.Time, error) {
	for _, layout := range importDateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format")
}
