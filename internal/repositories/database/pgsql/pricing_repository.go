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

type PgxPriceRecordRepository struct {
	BaseRepository
}

// newPgxPriceRecordRepository creates a new repository for price record data.
func newPgxPriceRecordRepository(pool *pgxpool.Pool) portsrepo.PriceRecordRepositoryFacade {
	return &PgxPriceRecordRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.PriceRecordRepositoryFacade = (*PgxPriceRecordRepository)(nil)

const priceRecordColumns = `price_id, province_id, category, service_name, unit_price, secondary_price, currency_code, unit_description, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanPriceRecord(row pgx.CollectableRow) (models.PriceRecord, error) {
	var record models.PriceRecord
	err := row.Scan(
		&record.PriceID,
		&record.ProvinceID,
		&record.Category,
		&record.ServiceName,
		&record.UnitPrice,
		&record.SecondaryPrice,
		&record.CurrencyCode,
		&record.UnitDescription,
		&record.IsActive,
		&record.CreatedAt,
		&record.CreatedBy,
		&record.LastUpdatedAt,
		&record.LastUpdatedBy,
	)
	return record, err
}

// SavePriceRecord persists a new price record.
func (r *PgxPriceRecordRepository) SavePriceRecord(ctx context.Context, record domain.PriceRecord) error {
	modelRec := mapping.ToModelPriceRecord(record)

	query := `
		INSERT INTO price_records (price_id, province_id, category, service_name, unit_price, secondary_price, currency_code, unit_description, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`

	_, err := r.Pool.Exec(ctx, query,
		modelRec.PriceID,
		modelRec.ProvinceID,
		modelRec.Category,
		modelRec.ServiceName,
		modelRec.UnitPrice,
		modelRec.SecondaryPrice,
		modelRec.CurrencyCode,
		modelRec.UnitDescription,
		modelRec.IsActive,
		modelRec.CreatedAt,
		modelRec.CreatedBy,
		modelRec.LastUpdatedAt,
		modelRec.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.ErrDuplicate
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationError("province or currency does not exist")
			}
		}
		return fmt.Errorf("failed to save price record %s: %w", modelRec.PriceID, err)
	}
	return nil
}

// FindPriceRecordByID retrieves a specific price record by its ID.
func (r *PgxPriceRecordRepository) FindPriceRecordByID(ctx context.Context, priceID string) (*domain.PriceRecord, error) {
	query := `
		SELECT ` + priceRecordColumns + `
		FROM price_records
		WHERE price_id = $1;
	`
	rows, err := r.Pool.Query(ctx, query, priceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query price record %s: %w", priceID, err)
	}
	defer rows.Close()

	modelRec, err := pgx.CollectOneRow(rows, scanPriceRecord)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find price record by ID %s: %w", priceID, err)
	}

	domainRec := mapping.ToDomainPriceRecord(modelRec)
	return &domainRec, nil
}

// FindPriceRecordsByIDs retrieves a batch of price records keyed by ID.
func (r *PgxPriceRecordRepository) FindPriceRecordsByIDs(ctx context.Context, priceIDs []string) (map[string]domain.PriceRecord, error) {
	if len(priceIDs) == 0 {
		return map[string]domain.PriceRecord{}, nil
	}

	query := `
		SELECT ` + priceRecordColumns + `
		FROM price_records
		WHERE price_id = ANY($1);
	`
	rows, err := r.Pool.Query(ctx, query, priceIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query price records by IDs: %w", err)
	}
	defer rows.Close()

	modelRecords, err := pgx.CollectRows(rows, scanPriceRecord)
	if err != nil {
		return nil, fmt.Errorf("failed to scan price records by IDs: %w", err)
	}

	result := make(map[string]domain.PriceRecord, len(modelRecords))
	for _, m := range modelRecords {
		result[m.PriceID] = mapping.ToDomainPriceRecord(m)
	}
	return result, nil
}

// ListPriceRecords retrieves price records with optional filters, paginated.
func (r *PgxPriceRecordRepository) ListPriceRecords(ctx context.Context, provinceID *string, category *domain.ServiceCategory, activeOnly bool, limit, offset int) ([]domain.PriceRecord, int, error) {
	var categoryFilter *string
	if category != nil {
		s := string(*category)
		categoryFilter = &s
	}

	whereClause := ` WHERE ($1::text IS NULL OR province_id = $1)
		AND ($2::text IS NULL OR category = $2)
		AND ($3 = false OR is_active = true)`

	var total int
	countQuery := `SELECT COUNT(*) FROM price_records` + whereClause + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, provinceID, categoryFilter, activeOnly).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count price records: %w", err)
	}

	listQuery := `
		SELECT ` + priceRecordColumns + `
		FROM price_records` + whereClause + `
		ORDER BY service_name, price_id
		LIMIT $4 OFFSET $5;
	`
	rows, err := r.Pool.Query(ctx, listQuery, provinceID, categoryFilter, activeOnly, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query price records: %w", err)
	}
	defer rows.Close()

	modelRecords, err := pgx.CollectRows(rows, scanPriceRecord)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan price records: %w", err)
	}

	return mapping.ToDomainPriceRecordSlice(modelRecords), total, nil
}

// UpdatePriceRecord updates an existing price record.
func (r *PgxPriceRecordRepository) UpdatePriceRecord(ctx context.Context, record domain.PriceRecord) error {
	modelRec := mapping.ToModelPriceRecord(record)

	query := `
		UPDATE price_records
		SET service_name = $2, unit_price = $3, secondary_price = $4, currency_code = $5, unit_description = $6, last_updated_at = $7, last_updated_by = $8
		WHERE price_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelRec.PriceID,
		modelRec.ServiceName,
		modelRec.UnitPrice,
		modelRec.SecondaryPrice,
		modelRec.CurrencyCode,
		modelRec.UnitDescription,
		modelRec.LastUpdatedAt,
		modelRec.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return apperrors.NewValidationError("currency does not exist")
		}
		return fmt.Errorf("failed to update price record %s: %w", modelRec.PriceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivatePriceRecord soft deletes a price record.
func (r *PgxPriceRecordRepository) DeactivatePriceRecord(ctx context.Context, priceID string, deactivatedAt time.Time, deactivatedBy string) error {
	query := `
		UPDATE price_records
		SET is_active = false, last_updated_at = $2, last_updated_by = $3
		WHERE price_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, priceID, deactivatedAt, deactivatedBy)
	if err != nil {
		return fmt.Errorf("failed to deactivate price record %s: %w", priceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
