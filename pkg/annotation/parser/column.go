package parser

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"slr-hq/atlas/pkg/annotation/ast"
	"slr-hq/atlas/pkg/annotation/errors"
)

// ParseColumn decodes every cell of a column. The result always has the
// same length as cells so it can be zipped with sibling columns; cells that
// fail strict parsing are empty and their diagnostics are returned as an
// *errors.ErrorList.
func (p *Parser) ParseColumn(column string, cells []string) ([]ast.Value, error) {
	values := make([]ast.Value, len(cells))
	failures := errors.NewErrorList()

	for i, cell := range cells {
		res := p.inspect(cell, ast.Location{Column: column, Row: i + 1})
		p.logDiagnostics(res.Diagnostics)
		if err := p.strictError(res.Diagnostics); err != nil {
			failures.Merge(err.(*errors.ErrorList))
			values[i] = ast.Empty()
			continue
		}
		values[i] = res.Value
	}

	return values, failures.ToError()
}

// InspectColumn decodes every cell of a column and keeps the diagnostics.
// Rows are 1-based in diagnostic locations.
func (p *Parser) InspectColumn(column string, cells []string) []Result {
	results := make([]Result, len(cells))
	for i, cell := range cells {
		results[i] = p.inspect(cell, ast.Location{Column: column, Row: i + 1})
	}
	return results
}

// ParseColumnContext is ParseColumn spread over a bounded pool of workers.
// The output is identical to ParseColumn. It stops early and returns the
// context error when ctx is cancelled.
func (p *Parser) ParseColumnContext(ctx context.Context, column string, cells []string) ([]ast.Value, error) {
	values := make([]ast.Value, len(cells))
	failures := errors.NewErrorList()
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.workers())

	for i, cell := range cells {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := p.inspect(cell, ast.Location{Column: column, Row: i + 1})
			p.logDiagnostics(res.Diagnostics)
			if err := p.strictError(res.Diagnostics); err != nil {
				mu.Lock()
				failures.Merge(err.(*errors.ErrorList))
				mu.Unlock()
				values[i] = ast.Empty()
				return nil
			}
			values[i] = res.Value
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Workers finish out of order; keep diagnostics in row order.
	sortByRow(failures)

	return values, failures.ToError()
}

func sortByRow(list *errors.ErrorList) {
	sort.SliceStable(list.Errors, func(i, j int) bool {
		return list.Errors[i].Location.Row < list.Errors[j].Location.Row
	})
}
