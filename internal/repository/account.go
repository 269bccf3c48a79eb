package repository

import (
	"context"
	"time"

	"github.com/linskybing/robolab-go/internal/domain/account"
	"gorm.io/gorm"
)

type AccountRepo interface {
	CreateAccount(ctx context.Context, a *account.Account) error
	GetAccountByEmail(ctx context.Context, email string) (account.Account, error)
	GetAccountByID(ctx context.Context, id string) (account.Account, error)
	UpdatePassword(ctx context.Context, id, hash string, now time.Time) error
}

type SessionRepo interface {
	CreateSession(ctx context.Context, s *account.Session) error
	GetSessionByID(ctx context.Context, id string) (account.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

type DBAccountRepo struct {
	db *gorm.DB
}

func NewAccountRepo(db *gorm.DB) *DBAccountRepo {
	return &DBAccountRepo{
		db: db,
	}
}

func (r *DBAccountRepo) CreateAccount(ctx context.Context, a *account.Account) error {
	return translate("create account", r.db.WithContext(ctx).Create(a).Error)
}

func (r *DBAccountRepo) GetAccountByEmail(ctx context.Context, email string) (account.Account, error) {
	var a account.Account
	err := r.db.WithContext(ctx).Where("email = ?", account.NormalizeEmail(email)).First(&a).Error
	return a, translate("get account", err)
}

func (r *DBAccountRepo) GetAccountByID(ctx context.Context, id string) (account.Account, error) {
	var a account.Account
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error
	return a, translate("get account", err)
}

func (r *DBAccountRepo) UpdatePassword(ctx context.Context, id, hash string, now time.Time) error {
	res := r.db.WithContext(ctx).Model(&account.Account{}).Where("id = ?", id).
		Updates(map[string]any{"password_hash": hash, "updated_at": now})
	if res.Error != nil {
		return translate("update password", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate("update password", gorm.ErrRecordNotFound)
	}
	return nil
}

type DBSessionRepo struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) *DBSessionRepo {
	return &DBSessionRepo{
		db: db,
	}
}

func (r *DBSessionRepo) CreateSession(ctx context.Context, s *account.Session) error {
	return translate("create session", r.db.WithContext(ctx).Create(s).Error)
}

func (r *DBSessionRepo) GetSessionByID(ctx context.Context, id string) (account.Session, error) {
	var s account.Session
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	return s, translate("get session", err)
}

func (r *DBSessionRepo) DeleteSession(ctx context.Context, id string) error {
	return translate("delete session", r.db.WithContext(ctx).Where("id = ?", id).Delete(&account.Session{}).Error)
}

func (r *DBSessionRepo) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&account.Session{})
	return res.RowsAffected, translate("delete expired sessions", res.Error)
}
