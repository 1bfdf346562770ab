package data

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/copperline/bizportal/internal/core"
	"github.com/copperline/bizportal/internal/data/database"
	"github.com/copperline/bizportal/internal/data/pgxutil"
	"github.com/copperline/bizportal/internal/domain/model"
	apperrors "github.com/copperline/bizportal/internal/errors"
)

const inquiryColumns = `id, username, email, phone_number, company_name, inquiry_details, status, external_client_id, created_at, imported_at`

// InquiryRepo provides database operations for pending inquiries.
type InquiryRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewInquiryRepo creates a new InquiryRepo with real time provider.
func NewInquiryRepo(db *sql.DB) *InquiryRepo {
	return &InquiryRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewInquiryRepoWithTimeProvider creates a new InquiryRepo with a custom time provider (useful for tests).
func NewInquiryRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *InquiryRepo {
	return &InquiryRepo{DB: db, timeProvider: tp}
}

// Create inserts a new pending inquiry from an anonymous submission.
func (r *InquiryRepo) Create(ctx context.Context, req *model.CreateInquiryRequest) (*model.PendingInquiry, error) {
	if req == nil {
		return nil, apperrors.Validation("create inquiry request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	createdAt := r.timeProvider.Now().UTC()
	var out model.PendingInquiry
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO pending_inquiries (
				username, email, phone_number, company_name, inquiry_details, status, external_client_id, created_at, imported_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, NULL, $7, NULL
			) RETURNING `+inquiryColumns,
			req.Username,
			req.Email,
			req.PhoneNumber,
			req.CompanyName,
			req.InquiryDetails,
			model.InquiryStatusPending,
			createdAt,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.PendingInquiry])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves an inquiry by ID.
func (r *InquiryRepo) GetByID(ctx context.Context, id int64) (*model.PendingInquiry, error) {
	var out model.PendingInquiry
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+inquiryColumns+` FROM pending_inquiries WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.PendingInquiry])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundf("inquiry %d not found", id)
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// List retrieves inquiries with optional status filtering, newest first.
func (r *InquiryRepo) List(ctx context.Context, opts model.InquiriesListOptions) ([]*model.PendingInquiry, error) {
	if opts.Limit <= 0 {
		opts.Limit = 50
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}

	queryOpts := []database.ListQueryOption{
		database.WithColumns("id", "username", "email", "phone_number", "company_name",
			"inquiry_details", "status", "external_client_id", "created_at", "imported_at"),
		database.WithOrderBy("created_at", "desc"),
		database.WithLimit(opts.Limit),
		database.WithOffset(opts.Offset),
	}
	if opts.Status != nil {
		queryOpts = append(queryOpts,
			database.WithCondition(database.WhereCond("status", database.CondEq, string(*opts.Status))))
	}

	query, params := database.BuildListQuery(database.NewListQueryOptions("pending_inquiries", queryOpts...))

	var out []*model.PendingInquiry
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, params...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[model.PendingInquiry])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return out, nil
}

// MarkImported performs the one-way pending -> imported transition. The WHERE
// clause keeps the transition conditional: a zero row count means another
// approval already imported this inquiry.
func (r *InquiryRepo) MarkImported(ctx context.Context, params core.MarkImportedParams) (bool, error) {
	importedAt := r.timeProvider.Now().UTC()
	var updated bool
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		tag, err := conn.Exec(ctx, `
			UPDATE pending_inquiries
			SET status = $2, external_client_id = $3, imported_at = $4
			WHERE id = $1 AND status = $5`,
			params.InquiryID,
			model.InquiryStatusImported,
			params.ExternalClientID,
			importedAt,
			model.InquiryStatusPending,
		)
		if err != nil {
			return err
		}
		updated = tag.RowsAffected() == 1
		return nil
	}); err != nil {
		return false, apperrors.MapDBError(err)
	}
	return updated, nil
}
