// Package devseed populates a development database with a known admin
// principal and a few pending inquiries so the portal is usable immediately
// after `docker-compose up`. It must never run against production data.
package devseed

import (
	"context"
	"database/sql"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/copperline/bizportal/internal/core"
	"github.com/copperline/bizportal/internal/data"
	domainauth "github.com/copperline/bizportal/internal/domain/auth"
	"github.com/copperline/bizportal/internal/domain/model"
	apperrors "github.com/copperline/bizportal/internal/errors"
)

// Admin credentials for local development only.
const (
	adminUsername = "admin"
	adminEmail    = "admin@localhost"
	adminPassword = "admin-password"
)

// Seed inserts the dev admin and sample inquiries. Existing records are left
// untouched, so re-running on a warm database is a no-op.
func Seed(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	principals := data.NewPrincipalRepo(db)
	inquiries := data.NewInquiryRepo(db)

	if err := seedAdmin(ctx, principals, logger); err != nil {
		return err
	}
	return seedInquiries(ctx, inquiries, logger)
}

func seedAdmin(ctx context.Context, principals *data.PrincipalRepo, logger *slog.Logger) error {
	if _, err := principals.GetByUsername(ctx, adminUsername); err == nil {
		logger.InfoContext(ctx, "dev admin already present", "username", adminUsername)
		return nil
	} else if !apperrors.IsNotFound(err) {
		return err
	}

	// MinCost keeps seeding fast; dev credentials need no protection.
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	if err != nil {
		return err
	}

	admin, err := principals.Create(ctx, core.CreatePrincipalParams{
		Username:     adminUsername,
		Email:        adminEmail,
		PasswordHash: string(hash),
		Role:         domainauth.RoleAdmin,
	})
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "seeded dev admin",
		"username", admin.Username,
		"password", adminPassword)
	return nil
}

func seedInquiries(ctx context.Context, inquiries *data.InquiryRepo, logger *slog.Logger) error {
	existing, err := inquiries.List(ctx, model.InquiriesListOptions{Limit: 1})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.InfoContext(ctx, "dev inquiries already present")
		return nil
	}

	details := "Looking for help migrating our invoices."
	company := "Sample Co"
	samples := []*model.CreateInquiryRequest{
		{
			Username:       "sample-co",
			Email:          "owner@sample-co.example.com",
			CompanyName:    &company,
			InquiryDetails: &details,
		},
		{
			Username: "north-studio",
			Email:    "hello@north-studio.example.com",
		},
	}

	for _, req := range samples {
		if _, err := inquiries.Create(ctx, req); err != nil {
			return err
		}
	}

	logger.InfoContext(ctx, "seeded dev inquiries", "count", len(samples))
	return nil
}
