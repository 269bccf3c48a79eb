package repository

import (
	"context"
	"time"

	"github.com/linskybing/robolab-go/internal/domain/profile"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepo interface {
	GetProfileByID(ctx context.Context, id string) (profile.Profile, error)
	// CreateProfileIfAbsent inserts p unless a profile with the same id exists,
	// and returns whichever row is stored afterwards.
	CreateProfileIfAbsent(ctx context.Context, p *profile.Profile) (profile.Profile, error)
	UpdateRole(ctx context.Context, id string, role profile.Role, now time.Time) (profile.Profile, error)
	SetEmailOnNewProject(ctx context.Context, id string, enabled bool, now time.Time) error
	ListProfiles(ctx context.Context) ([]profile.Profile, error)
	// ListNewProjectRecipients returns admin-class profiles that opted into new-project mail.
	ListNewProjectRecipients(ctx context.Context) ([]profile.Profile, error)
}

type DBProfileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) *DBProfileRepo {
	return &DBProfileRepo{
		db: db,
	}
}

func (r *DBProfileRepo) GetProfileByID(ctx context.Context, id string) (profile.Profile, error) {
	var p profile.Profile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	return p, translate("get profile", err)
}

func (r *DBProfileRepo) CreateProfileIfAbsent(ctx context.Context, p *profile.Profile) (profile.Profile, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(p).Error
	if err != nil {
		return profile.Profile{}, translate("create profile", err)
	}
	return r.GetProfileByID(ctx, p.ID)
}

func (r *DBProfileRepo) UpdateRole(ctx context.Context, id string, role profile.Role, now time.Time) (profile.Profile, error) {
	res := r.db.WithContext(ctx).Model(&profile.Profile{}).Where("id = ?", id).
		Updates(map[string]any{"role": role, "updated_at": now})
	if res.Error != nil {
		return profile.Profile{}, translate("update role", res.Error)
	}
	if res.RowsAffected == 0 {
		return profile.Profile{}, translate("update role", gorm.ErrRecordNotFound)
	}
	return r.GetProfileByID(ctx, id)
}

func (r *DBProfileRepo) SetEmailOnNewProject(ctx context.Context, id string, enabled bool, now time.Time) error {
	res := r.db.WithContext(ctx).Model(&profile.Profile{}).Where("id = ?", id).
		Updates(map[string]any{"email_on_new_project": enabled, "updated_at": now})
	if res.Error != nil {
		return translate("update preference", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate("update preference", gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *DBProfileRepo) ListProfiles(ctx context.Context) ([]profile.Profile, error) {
	var profiles []profile.Profile
	err := r.db.WithContext(ctx).Order("email ASC").Find(&profiles).Error
	return profiles, translate("list profiles", err)
}

func (r *DBProfileRepo) ListNewProjectRecipients(ctx context.Context) ([]profile.Profile, error) {
	var profiles []profile.Profile
	err := r.db.WithContext(ctx).
		Where("role IN ? AND email_on_new_project = ?", []profile.Role{profile.RoleSuperAdmin, profile.RoleAdmin}, true).
		Order("email ASC").
		Find(&profiles).Error
	return profiles, translate("list recipients", err)
}
