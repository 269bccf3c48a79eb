package memory

import (
	"context"
	"time"

	"github.com/hashicorp/go-memdb"
	"github.com/linskybing/robolab-go/internal/domain/account"
	"github.com/linskybing/robolab-go/pkg/apperr"
)

type AccountRepo struct {
	db *memdb.MemDB
}

func (r *AccountRepo) CreateAccount(_ context.Context, a *account.Account) error {
	txn := r.db.Txn(true)
	defer txn.Abort()
	for _, lookup := range [][2]string{{indexID, a.ID}, {indexEmail, a.Email}} {
		raw, err := txn.First(tableAccounts, lookup[0], lookup[1])
		if err != nil {
			return apperr.Store("create account", err)
		}
		if raw != nil {
			return apperr.ErrConflict
		}
	}
	row := *a
	if err := txn.Insert(tableAccounts, &row); err != nil {
		return apperr.Store("create account", err)
	}
	txn.Commit()
	return nil
}

func (r *AccountRepo) GetAccountByEmail(_ context.Context, email string) (account.Account, error) {
	row, err := first[account.Account](r.db, tableAccounts, indexEmail, account.NormalizeEmail(email))
	if err != nil {
		return account.Account{}, err
	}
	return *row, nil
}

func (r *AccountRepo) GetAccountByID(_ context.Context, id string) (account.Account, error) {
	row, err := first[account.Account](r.db, tableAccounts, indexID, id)
	if err != nil {
		return account.Account{}, err
	}
	return *row, nil
}

func (r *AccountRepo) UpdatePassword(_ context.Context, id, hash string, now time.Time) error {
	txn := r.db.Txn(true)
	defer txn.Abort()
	raw, err := txn.First(tableAccounts, indexID, id)
	if err != nil {
		return apperr.Store("update password", err)
	}
	if raw == nil {
		return apperr.ErrNotFound
	}
	row := *raw.(*account.Account)
	row.PasswordHash = hash
	row.UpdatedAt = now
	if err := txn.Insert(tableAccounts, &row); err != nil {
		return apperr.Store("update password", err)
	}
	txn.Commit()
	return nil
}

type SessionRepo struct {
	db *memdb.MemDB
}

func (r *SessionRepo) CreateSession(_ context.Context, s *account.Session) error {
	row := *s
	return insert(r.db, tableSessions, &row)
}

func (r *SessionRepo) GetSessionByID(_ context.Context, id string) (account.Session, error) {
	row, err := first[account.Session](r.db, tableSessions, indexID, id)
	if err != nil {
		return account.Session{}, err
	}
	return *row, nil
}

func (r *SessionRepo) DeleteSession(_ context.Context, id string) error {
	txn := r.db.Txn(true)
	defer txn.Abort()
	if _, err := txn.DeleteAll(tableSessions, indexID, id); err != nil {
		return apperr.Store("delete session", err)
	}
	txn.Commit()
	return nil
}

func (r *SessionRepo) DeleteExpiredSessions(_ context.Context, now time.Time) (int64, error) {
	txn := r.db.Txn(true)
	defer txn.Abort()
	rows, err := all[account.Session](txn, tableSessions, indexID)
	if err != nil {
		return 0, err
	}
	var n int64
	for _, row := range rows {
		if row.Expired(now) {
			if err := txn.Delete(tableSessions, row); err != nil {
				return 0, apperr.Store("delete expired sessions", err)
			}
			n++
		}
	}
	txn.Commit()
	return n, nil
}
