package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wanderplan/trip_pricing_app/internal/apperrors"
	"github.com/wanderplan/trip_pricing_app/internal/core/domain"
	portsrepo "github.com/wanderplan/trip_pricing_app/internal/core/ports/repositories"
	"github.com/wanderplan/trip_pricing_app/internal/models"
	"github.com/wanderplan/trip_pricing_app/internal/utils/mapping"
)

type PgxProvinceRepository struct {
	BaseRepository
}

// newPgxProvinceRepository creates a new repository for province data.
func newPgxProvinceRepository(pool *pgxpool.Pool) portsrepo.ProvinceRepositoryFacade {
	return &PgxProvinceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ProvinceRepositoryFacade = (*PgxProvinceRepository)(nil)

const provinceColumns = `province_id, name, region, country, is_active, created_at, created_by, last_updated_at, last_updated_by`

// SaveProvince persists a new province.
func (r *PgxProvinceRepository) SaveProvince(ctx context.Context, province domain.Province) error {
	modelProv := mapping.ToModelProvince(province)

	query := `
		INSERT INTO provinces (province_id, name, region, country, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`

	_, err := r.Pool.Exec(ctx, query,
		modelProv.ProvinceID,
		modelProv.Name,
		modelProv.Region,
		modelProv.Country,
		modelProv.IsActive,
		modelProv.CreatedAt,
		modelProv.CreatedBy,
		modelProv.LastUpdatedAt,
		modelProv.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save province %s: %w", modelProv.ProvinceID, err)
	}
	return nil
}

// FindProvinceByID retrieves a specific province by its ID.
func (r *PgxProvinceRepository) FindProvinceByID(ctx context.Context, provinceID string) (*domain.Province, error) {
	query := `
		SELECT ` + provinceColumns + `
		FROM provinces
		WHERE province_id = $1;
	`
	var modelProv models.Province
	err := r.Pool.QueryRow(ctx, query, provinceID).Scan(
		&modelProv.ProvinceID,
		&modelProv.Name,
		&modelProv.Region,
		&modelProv.Country,
		&modelProv.IsActive,
		&modelProv.CreatedAt,
		&modelProv.CreatedBy,
		&modelProv.LastUpdatedAt,
		&modelProv.LastUpdatedBy,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find province by ID %s: %w", provinceID, err)
	}

	domainProv := mapping.ToDomainProvince(modelProv)
	return &domainProv, nil
}

// ListProvinces retrieves provinces ordered by country then name.
func (r *PgxProvinceRepository) ListProvinces(ctx context.Context, activeOnly bool, limit, offset int) ([]domain.Province, error) {
	query := `
		SELECT ` + provinceColumns + `
		FROM provinces
		WHERE ($1 = false OR is_active = true)
		ORDER BY country, name
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, activeOnly, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query provinces: %w", err)
	}
	defer rows.Close()

	modelProvinces, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Province, error) {
		var province models.Province
		err := row.Scan(
			&province.ProvinceID,
			&province.Name,
			&province.Region,
			&province.Country,
			&province.IsActive,
			&province.CreatedAt,
			&province.CreatedBy,
			&province.LastUpdatedAt,
			&province.LastUpdatedBy,
		)
		return province, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan provinces: %w", err)
	}

	return mapping.ToDomainProvinceSlice(modelProvinces), nil
}

// UpdateProvince updates name and region of an existing province.
func (r *PgxProvinceRepository) UpdateProvince(ctx context.Context, province domain.Province) error {
	modelProv := mapping.ToModelProvince(province)

	query := `
		UPDATE provinces
		SET name = $2, region = $3, last_updated_at = $4, last_updated_by = $5
		WHERE province_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelProv.ProvinceID,
		modelProv.Name,
		modelProv.Region,
		modelProv.LastUpdatedAt,
		modelProv.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update province %s: %w", modelProv.ProvinceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateProvince soft deletes a province.
func (r *PgxProvinceRepository) DeactivateProvince(ctx context.Context, provinceID string, deactivatedAt time.Time, deactivatedBy string) error {
	query := `
		UPDATE provinces
		SET is_active = false, last_updated_at = $2, last_updated_by = $3
		WHERE province_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, provinceID, deactivatedAt, deactivatedBy)
	if err != nil {
		return fmt.Errorf("failed to deactivate province %s: %w", provinceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
