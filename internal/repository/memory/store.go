package memory

import (
	"fmt"

	"github.com/hashicorp/go-memdb"
	"github.com/linskybing/robolab-go/internal/repository"
	"github.com/linskybing/robolab-go/pkg/apperr"
)

// Store is the in-memory persistence gateway used for local runs and tests.
// Every value handed out is a copy; callers never alias stored rows.
type Store struct {
	db *memdb.MemDB
}

func NewStore() (*Store, error) {
	db, err := memdb.NewMemDB(Schema())
	if err != nil {
		return nil, fmt.Errorf("memdb schema: %w", err)
	}
	return &Store{db: db}, nil
}

// NewRepositories builds the full gateway over a fresh in-memory store.
func NewRepositories() (*repository.Repos, error) {
	s, err := NewStore()
	if err != nil {
		return nil, err
	}
	return s.Repos(), nil
}

func (s *Store) Repos() *repository.Repos {
	return &repository.Repos{
		Submission:   &SubmissionRepo{db: s.db},
		Profile:      &ProfileRepo{db: s.db},
		Account:      &AccountRepo{db: s.db},
		Session:      &SessionRepo{db: s.db},
		Notification: &NotificationRepo{db: s.db},
		Activity:     &ActivityRepo{db: s.db},
	}
}

func first[T any](db *memdb.MemDB, table, index string, args ...any) (*T, error) {
	txn := db.Txn(false)
	defer txn.Abort()
	raw, err := txn.First(table, index, args...)
	if err != nil {
		return nil, apperr.Store("lookup "+table, err)
	}
	if raw == nil {
		return nil, apperr.ErrNotFound
	}
	return raw.(*T), nil
}

// all scans an index. With no args it walks the whole table in index order.
func all[T any](txn *memdb.Txn, table, index string, args ...any) ([]*T, error) {
	if len(args) == 0 {
		index, args = index+"_prefix", []any{""}
	}
	it, err := txn.Get(table, index, args...)
	if err != nil {
		return nil, apperr.Store("scan "+table, err)
	}
	var out []*T
	for raw := it.Next(); raw != nil; raw = it.Next() {
		out = append(out, raw.(*T))
	}
	return out, nil
}

func insert(db *memdb.MemDB, table string, obj any) error {
	txn := db.Txn(true)
	defer txn.Abort()
	if err := txn.Insert(table, obj); err != nil {
		return apperr.Store("insert "+table, err)
	}
	txn.Commit()
	return nil
}
