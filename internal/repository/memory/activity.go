package memory

import (
	"context"
	"sort"

	"github.com/hashicorp/go-memdb"
	"github.com/linskybing/robolab-go/internal/domain/activity"
)

type ActivityRepo struct {
	db *memdb.MemDB
}

func (r *ActivityRepo) CreateEntry(_ context.Context, e *activity.Entry) error {
	row := e.Clone()
	return insert(r.db, tableActivity, &row)
}

func (r *ActivityRepo) ListEntries(_ context.Context, params activity.QueryParams) ([]activity.Entry, error) {
	txn := r.db.Txn(false)
	defer txn.Abort()
	rows, err := all[activity.Entry](txn, tableActivity, indexID)
	if err != nil {
		return nil, err
	}
	var out []activity.Entry
	for _, row := range rows {
		if params.Matches(*row) {
			out = append(out, row.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	if params.Offset > 0 {
		if params.Offset >= len(out) {
			return nil, nil
		}
		out = out[params.Offset:]
	}
	if params.Limit > 0 && len(out) > params.Limit {
		out = out[:params.Limit]
	}
	return out, nil
}
