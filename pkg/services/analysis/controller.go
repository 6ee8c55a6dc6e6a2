// Package analysis orchestrates the ingestion pipeline end to end: header
// detection, tabular reading, column classification, numeric and date
// normalization, and metric computation. Analyses live in an in-memory
// registry for the lifetime of the process; filters always derive a new
// analysis instead of mutating a stored one.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/smaport/insight/pkg/models/domain"
	"github.com/smaport/insight/pkg/services/classify"
	"github.com/smaport/insight/pkg/services/ingest"
	"github.com/smaport/insight/pkg/services/metrics"
	"github.com/smaport/insight/pkg/services/numeric"
)

// ErrAnalysisNotFound means the requested upload id is unknown.
var ErrAnalysisNotFound = errors.New("analysis not found")

type Controller struct {
	mu       sync.RWMutex
	analyses map[string]*domain.Analysis
}

func NewController() *Controller {
	return &Controller{analyses: make(map[string]*domain.Analysis)}
}

// Analyze runs the full pipeline over a raw upload and registers the
// result. Structural parse failures abort; missing semantic columns only
// degrade the snapshot.
func (c *Controller) Analyze(
	ctx context.Context,
	fileName string,
	data []byte,
	cfg domain.AnalysisConfig,
) (*domain.Analysis, error) {
	logger := zerolog.Ctx(ctx)

	kind := domain.KindForFilename(fileName)
	skipRows := ingest.DetectHeader(data, kind)

	table, err := ingest.Read(data, kind, skipRows)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", fileName, err)
	}

	roles := classify.Columns(table.ColumnNames())
	normalize(table, roles)

	// Rows without a parseable date carry no position on the time axis,
	// so they are dropped whenever a date column exists.
	if dateName, ok := roles.Column(domain.RoleDate); ok {
		table = dropUndatedRows(table, dateName)
		if table.RowCount() == 0 {
			return nil, fmt.Errorf("read %q: %w", fileName, ingest.ErrEmptyTable)
		}
	}

	a := &domain.Analysis{
		ID:        uuid.NewString(),
		FileName:  fileName,
		Table:     table,
		Roles:     roles,
		Config:    cfg,
		Snapshot:  metrics.Compute(table, roles, cfg),
		Products:  productList(table, roles),
		CreatedAt: time.Now().UTC(),
	}

	c.mu.Lock()
	c.analyses[a.ID] = a
	c.mu.Unlock()

	logger.Info().
		Str("analysis_id", a.ID).
		Str("file", fileName).
		Int("skip_rows", skipRows).
		Int("rows", table.RowCount()).
		Int("columns", len(table.Columns)).
		Msg("upload analyzed")

	return a, nil
}

func (c *Controller) Get(_ context.Context, id string) (*domain.Analysis, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.analyses[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAnalysisNotFound, id)
	}
	return a, nil
}

// Filter derives a new analysis restricted to the given product and/or
// inclusive date range, and registers it under a fresh id. The parent
// analysis is never touched.
func (c *Controller) Filter(ctx context.Context, id string, filter domain.TableFilter) (*domain.Analysis, error) {
	parent, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if filter.Empty() {
		return parent, nil
	}

	keep := make([]bool, parent.Table.RowCount())
	for i := range keep {
		keep[i] = true
	}

	if filter.Product != "" {
		if productName, ok := parent.Roles.Column(domain.RoleProduct); ok {
			col := parent.Table.Column(productName)
			for i := range keep {
				if col.Cells[i].Raw != filter.Product {
					keep[i] = false
				}
			}
		}
	}

	if filter.Start != nil || filter.End != nil {
		if dateName, ok := parent.Roles.Column(domain.RoleDate); ok {
			col := parent.Table.Column(dateName)
			for i := range keep {
				cell := col.Cells[i]
				if !cell.IsTime {
					keep[i] = false
					continue
				}
				if filter.Start != nil && cell.Time.Before(*filter.Start) {
					keep[i] = false
				}
				if filter.End != nil && cell.Time.After(*filter.End) {
					keep[i] = false
				}
			}
		}
	}

	table := parent.Table.FilterRows(keep)
	derived := &domain.Analysis{
		ID:        uuid.NewString(),
		FileName:  parent.FileName,
		Table:     table,
		Roles:     parent.Roles,
		Config:    parent.Config,
		Snapshot:  metrics.Compute(table, parent.Roles, parent.Config),
		Products:  productList(table, parent.Roles),
		CreatedAt: time.Now().UTC(),
	}

	c.mu.Lock()
	c.analyses[derived.ID] = derived
	c.mu.Unlock()

	return derived, nil
}

// Snapshot recomputes the metric snapshot of a stored analysis under a
// different configuration without altering the stored one.
func (c *Controller) Snapshot(ctx context.Context, id string, cfg domain.AnalysisConfig) (domain.Snapshot, error) {
	a, err := c.Get(ctx, id)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return metrics.Compute(a.Table, a.Roles, cfg), nil
}

// normalize installs typed values on every role-bearing column.
func normalize(t *domain.Table, roles domain.RoleMapping) {
	for _, role := range []domain.Role{domain.RoleRevenue, domain.RoleCost, domain.RoleUnits} {
		name, ok := roles.Column(role)
		if !ok {
			continue
		}
		col := t.Column(name)
		if col == nil {
			continue
		}
		col.SetNumbers(numeric.NormalizeColumn(rawCells(col)))
	}
	if name, ok := roles.Column(domain.RoleDate); ok {
		if col := t.Column(name); col != nil {
			col.SetTimes(numeric.ParseDates(rawCells(col)))
		}
	}
}

func rawCells(col *domain.Column) []string {
	raw := make([]string, len(col.Cells))
	for i, cell := range col.Cells {
		raw[i] = cell.Raw
	}
	return raw
}

func dropUndatedRows(t *domain.Table, dateName string) *domain.Table {
	col := t.Column(dateName)
	if col == nil {
		return t
	}
	keep := make([]bool, len(col.Cells))
	for i, cell := range col.Cells {
		keep[i] = cell.IsTime
	}
	return t.FilterRows(keep)
}

func productList(t *domain.Table, roles domain.RoleMapping) []string {
	name, ok := roles.Column(domain.RoleProduct)
	if !ok {
		return nil
	}
	col := t.Column(name)
	if col == nil {
		return nil
	}
	seen := map[string]struct{}{}
	var products []string
	for _, cell := range col.Cells {
		if cell.Raw == "" {
			continue
		}
		if _, ok := seen[cell.Raw]; ok {
			continue
		}
		seen[cell.Raw] = struct{}{}
		products = append(products, cell.Raw)
	}
	sort.Strings(products)
	return products
}
