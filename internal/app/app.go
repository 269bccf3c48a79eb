// Package app assembles the runtime shared by the API server and labctl.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/linskybing/robolab-go/internal/application"
	"github.com/linskybing/robolab-go/internal/config"
	"github.com/linskybing/robolab-go/internal/config/db"
	"github.com/linskybing/robolab-go/internal/domain/profile"
	"github.com/linskybing/robolab-go/internal/mailer"
	"github.com/linskybing/robolab-go/internal/storage"
	"github.com/linskybing/robolab-go/pkg/apperr"
)

type App struct {
	Config   *config.Config
	Gateway  *db.Gateway
	Services *application.Services
	Sender   mailer.Sender
}

// Build opens the store, selects the mail backend and wires the services.
// MinIO archiving is optional; a connection failure only disables it.
func Build(ctx context.Context, cfg *config.Config, w io.Writer) (*App, error) {
	gw, err := db.OpenGateway(ctx, cfg.Store, w)
	if err != nil {
		return nil, err
	}

	sender, err := mailer.New(cfg.Mail)
	if err != nil {
		_ = gw.Close()
		return nil, fmt.Errorf("mail backend: %w", err)
	}
	if cfg.Minio.Enabled() {
		client, err := storage.NewMinio(ctx, cfg.Minio)
		if err != nil {
			log.Printf("Warning: email archive disabled: %v", err)
		} else {
			sender = mailer.NewArchivingSender(sender, client, cfg.Minio.Bucket)
			log.Printf("Archiving delivered email to bucket %s", cfg.Minio.Bucket)
		}
	}
	log.Printf("Mail backend: %s", sender.Name())

	return &App{
		Config:   cfg,
		Gateway:  gw,
		Services: application.New(cfg, gw.Repos, sender),
		Sender:   sender,
	}, nil
}

// BootstrapAdmin creates the configured admin account and its super_admin
// profile if they do not exist yet.
func (a *App) BootstrapAdmin(ctx context.Context) error {
	email, password := a.Config.Auth.BootstrapEmail, a.Config.Auth.BootstrapPassword
	if email == "" {
		return nil
	}
	acct, err := a.Services.Auth.Bootstrap(ctx, email, password)
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	// new-project alerts default on for the first grant only
	var notify *bool
	if _, err := a.Gateway.Repos.Profile.GetProfileByID(ctx, acct.ID); errors.Is(err, apperr.ErrNotFound) {
		on := true
		notify = &on
	}
	_, err = a.Services.Access.GrantRole(ctx, acct, profile.RoleSuperAdmin, notify)
	return err
}

func (a *App) Close() error {
	return a.Gateway.Close()
}
