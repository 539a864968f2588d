package ledger

import (
	"context"
	"fmt"

	"github.com/JaimeStill/cmdreview/pkg/pagination"
	"github.com/JaimeStill/cmdreview/pkg/query"
	"github.com/JaimeStill/cmdreview/pkg/repository"
)

func (r *repo) history(validatorID int64, filters Filters) *query.Builder {
	qb := query.NewBuilder(projection, historySort...).
		WhereEquals("ValidatorID", validatorID)
	return filters.Apply(qb)
}

func (r *repo) Query(ctx context.Context, validatorID int64, filters Filters) ([]Record, error) {
	q, args := r.history(validatorID, filters).BuildWindow(MaxHistoryRows, 0)

	records, err := repository.QueryMany(ctx, r.db, q, args, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	return records, nil
}

func (r *repo) List(
	ctx context.Context,
	validatorID int64,
	filters Filters,
	page pagination.PageRequest,
) (*pagination.PageResult[Record], error) {
	page.Normalize(r.pagination)
	qb := r.history(validatorID, filters)

	countSQL, countArgs := qb.BuildCount()
	total, err := repository.QueryInt(ctx, r.db, countSQL, countArgs...)
	if err != nil {
		return nil, fmt.Errorf("count history: %w", err)
	}
	total = min(total, MaxHistoryRows)

	records := []Record{}
	if size, offset, ok := page.Window(MaxHistoryRows); ok {
		pageSQL, pageArgs := qb.BuildWindow(size, offset)
		records, err = repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanRecord)
		if err != nil {
			return nil, fmt.Errorf("query history: %w", err)
		}
	}

	result := pagination.NewPageResult(records, total, page.Page, page.PageSize)
	return &result, nil
}
