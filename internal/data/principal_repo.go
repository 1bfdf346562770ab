package data

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/copperline/bizportal/internal/core"
	domainauth "github.com/copperline/bizportal/internal/domain/auth"
	"github.com/copperline/bizportal/internal/domain/model"
	apperrors "github.com/copperline/bizportal/internal/errors"
	"github.com/copperline/bizportal/internal/data/pgxutil"
)

const principalColumns = `id, username, email, password_hash, role, external_client_id, created_at, updated_at`

// PrincipalRepo provides database operations for principals.
type PrincipalRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewPrincipalRepo creates a new PrincipalRepo with real time provider.
func NewPrincipalRepo(db *sql.DB) *PrincipalRepo {
	return &PrincipalRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewPrincipalRepoWithTimeProvider creates a new PrincipalRepo with a custom time provider (useful for tests).
func NewPrincipalRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *PrincipalRepo {
	return &PrincipalRepo{DB: db, timeProvider: tp}
}

// Create inserts a new principal. The password is hashed by the caller.
func (r *PrincipalRepo) Create(ctx context.Context, req core.CreatePrincipalParams) (*model.Principal, error) {
	if strings.TrimSpace(req.Username) == "" {
		return nil, apperrors.ValidationField("username", "username is required")
	}
	if req.PasswordHash == "" {
		return nil, apperrors.ValidationField("password", "password hash is required")
	}
	role := req.Role
	if role == "" {
		role = domainauth.RolePending
	}

	now := r.timeProvider.Now().UTC()
	var out model.Principal
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO principals (
				id, username, email, password_hash, role, external_client_id, created_at, updated_at
			) VALUES (
				$1, $2, $3, $4, $5, NULL, $6, $6
			) RETURNING `+principalColumns,
			uuid.NewString(),
			strings.TrimSpace(req.Username),
			strings.TrimSpace(req.Email),
			req.PasswordHash,
			role,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Principal])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a principal by ID.
func (r *PrincipalRepo) GetByID(ctx context.Context, id string) (*model.Principal, error) {
	return r.getByQuery(ctx, `SELECT `+principalColumns+` FROM principals WHERE id = $1`, id)
}

// GetByUsername retrieves a principal by username.
func (r *PrincipalRepo) GetByUsername(ctx context.Context, username string) (*model.Principal, error) {
	return r.getByQuery(ctx, `SELECT `+principalColumns+` FROM principals WHERE username = $1`, username)
}

// List retrieves principals with pagination, newest first.
func (r *PrincipalRepo) List(ctx context.Context, limit, offset int) ([]*model.Principal, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var out []*model.Principal
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+principalColumns+`
			FROM principals
			ORDER BY created_at DESC
			LIMIT $1 OFFSET $2`, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[model.Principal])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return out, nil
}

// UpdateRole transitions a principal's role. Promoting to customer records the
// external client linkage; any other role clears it.
func (r *PrincipalRepo) UpdateRole(ctx context.Context, id string, req model.UpdateRoleRequest) (*model.Principal, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var externalID *string
	if req.Role == domainauth.RoleCustomer {
		externalID = req.ExternalClientID
	}

	now := r.timeProvider.Now().UTC()
	var out model.Principal
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE principals
			SET role = $2, external_client_id = $3, updated_at = $4
			WHERE id = $1
			RETURNING `+principalColumns,
			id, req.Role, externalID, now)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Principal])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundf("principal %s not found", id)
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

func (r *PrincipalRepo) getByQuery(ctx context.Context, query, arg string) (*model.Principal, error) {
	var out model.Principal
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, arg)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Principal])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("principal not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}
