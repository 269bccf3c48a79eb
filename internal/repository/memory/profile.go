package memory

import (
	"context"
	"sort"
	"time"

	"github.com/hashicorp/go-memdb"
	"github.com/linskybing/robolab-go/internal/domain/profile"
	"github.com/linskybing/robolab-go/pkg/apperr"
)

type ProfileRepo struct {
	db *memdb.MemDB
}

func (r *ProfileRepo) GetProfileByID(_ context.Context, id string) (profile.Profile, error) {
	row, err := first[profile.Profile](r.db, tableProfiles, indexID, id)
	if err != nil {
		return profile.Profile{}, err
	}
	return row.Clone(), nil
}

func (r *ProfileRepo) CreateProfileIfAbsent(_ context.Context, p *profile.Profile) (profile.Profile, error) {
	txn := r.db.Txn(true)
	defer txn.Abort()
	raw, err := txn.First(tableProfiles, indexID, p.ID)
	if err != nil {
		return profile.Profile{}, apperr.Store("create profile", err)
	}
	if raw != nil {
		return raw.(*profile.Profile).Clone(), nil
	}
	row := p.Clone()
	if err := txn.Insert(tableProfiles, &row); err != nil {
		return profile.Profile{}, apperr.Store("create profile", err)
	}
	txn.Commit()
	return row.Clone(), nil
}

func (r *ProfileRepo) update(id string, fn func(*profile.Profile)) (profile.Profile, error) {
	txn := r.db.Txn(true)
	defer txn.Abort()
	raw, err := txn.First(tableProfiles, indexID, id)
	if err != nil {
		return profile.Profile{}, apperr.Store("update profile", err)
	}
	if raw == nil {
		return profile.Profile{}, apperr.ErrNotFound
	}
	row := raw.(*profile.Profile).Clone()
	fn(&row)
	stored := row.Clone()
	if err := txn.Insert(tableProfiles, &stored); err != nil {
		return profile.Profile{}, apperr.Store("update profile", err)
	}
	txn.Commit()
	return row, nil
}

func (r *ProfileRepo) UpdateRole(_ context.Context, id string, role profile.Role, now time.Time) (profile.Profile, error) {
	return r.update(id, func(p *profile.Profile) {
		p.Role = role
		p.UpdatedAt = now
	})
}

func (r *ProfileRepo) SetEmailOnNewProject(_ context.Context, id string, enabled bool, now time.Time) error {
	_, err := r.update(id, func(p *profile.Profile) {
		p.EmailOnNewProject = enabled
		p.UpdatedAt = now
	})
	return err
}

func (r *ProfileRepo) ListProfiles(_ context.Context) ([]profile.Profile, error) {
	return r.list(func(profile.Profile) bool { return true })
}

func (r *ProfileRepo) ListNewProjectRecipients(_ context.Context) ([]profile.Profile, error) {
	return r.list(func(p profile.Profile) bool { return p.IsAdmin() && p.EmailOnNewProject })
}

func (r *ProfileRepo) list(keep func(profile.Profile) bool) ([]profile.Profile, error) {
	txn := r.db.Txn(false)
	defer txn.Abort()
	rows, err := all[profile.Profile](txn, tableProfiles, indexID)
	if err != nil {
		return nil, err
	}
	var out []profile.Profile
	for _, row := range rows {
		if keep(*row) {
			out = append(out, row.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}
