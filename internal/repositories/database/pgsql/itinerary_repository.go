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
	"github.com/wanderplan/trip_pricing_app/internal/utils/pagination"
)

type PgxItineraryRepository struct {
	BaseRepository
}

// newPgxItineraryRepository creates a new repository for itinerary data.
func newPgxItineraryRepository(pool *pgxpool.Pool) portsrepo.ItineraryRepositoryWithTx {
	return &PgxItineraryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ItineraryRepositoryWithTx = (*PgxItineraryRepository)(nil)

const itineraryColumns = `itinerary_id, name, client_name, start_date, display_currency, status, created_at, created_by, last_updated_at, last_updated_by`

func scanItinerary(row pgx.CollectableRow) (models.Itinerary, error) {
	var itinerary models.Itinerary
	err := row.Scan(
		&itinerary.ItineraryID,
		&itinerary.Name,
		&itinerary.ClientName,
		&itinerary.StartDate,
		&itinerary.DisplayCurrency,
		&itinerary.Status,
		&itinerary.CreatedAt,
		&itinerary.CreatedBy,
		&itinerary.LastUpdatedAt,
		&itinerary.LastUpdatedBy,
	)
	return itinerary, err
}

// SaveItinerary persists a new itinerary with its days and items in one
// transaction.
func (r *PgxItineraryRepository) SaveItinerary(ctx context.Context, itinerary domain.Itinerary) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelItin := mapping.ToModelItinerary(itinerary)
	headerQuery := `
		INSERT INTO itineraries (itinerary_id, name, client_name, start_date, display_currency, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, headerQuery,
		modelItin.ItineraryID,
		modelItin.Name,
		modelItin.ClientName,
		modelItin.StartDate,
		modelItin.DisplayCurrency,
		modelItin.Status,
		modelItin.CreatedAt,
		modelItin.CreatedBy,
		modelItin.LastUpdatedAt,
		modelItin.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to insert itinerary %s: %w", modelItin.ItineraryID, err)
	}

	if err := insertItineraryRows(ctx, tx, itinerary); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// ReplaceItinerary updates the header and replaces the full day/item set
// in one transaction.
func (r *PgxItineraryRepository) ReplaceItinerary(ctx context.Context, itinerary domain.Itinerary) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelItin := mapping.ToModelItinerary(itinerary)
	headerQuery := `
		UPDATE itineraries
		SET name = $2, client_name = $3, start_date = $4, display_currency = $5, last_updated_at = $6, last_updated_by = $7
		WHERE itinerary_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, headerQuery,
		modelItin.ItineraryID,
		modelItin.Name,
		modelItin.ClientName,
		modelItin.StartDate,
		modelItin.DisplayCurrency,
		modelItin.LastUpdatedAt,
		modelItin.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update itinerary %s: %w", modelItin.ItineraryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	// Items reference days, so delete them first.
	if _, err := tx.Exec(ctx, `DELETE FROM itinerary_items WHERE itinerary_id = $1;`, modelItin.ItineraryID); err != nil {
		return fmt.Errorf("failed to clear itinerary items for %s: %w", modelItin.ItineraryID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM itinerary_days WHERE itinerary_id = $1;`, modelItin.ItineraryID); err != nil {
		return fmt.Errorf("failed to clear itinerary days for %s: %w", modelItin.ItineraryID, err)
	}

	if err := insertItineraryRows(ctx, tx, itinerary); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// insertItineraryRows batch-inserts the flattened day and item rows.
func insertItineraryRows(ctx context.Context, tx pgx.Tx, itinerary domain.Itinerary) error {
	dayRows, itemRows := mapping.ToModelItineraryRows(itinerary)

	batch := &pgx.Batch{}
	dayQuery := `
		INSERT INTO itinerary_days (itinerary_id, day_number, title)
		VALUES ($1, $2, $3);
	`
	for _, day := range dayRows {
		batch.Queue(dayQuery, day.ItineraryID, day.DayNumber, day.Title)
	}

	itemQuery := `
		INSERT INTO itinerary_items (item_id, itinerary_id, day_number, position, price_id, quantity, price_override, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for _, item := range itemRows {
		batch.Queue(itemQuery,
			item.ItemID,
			item.ItineraryID,
			item.DayNumber,
			item.Position,
			item.PriceID,
			item.Quantity,
			item.PriceOverride,
			item.Note,
		)
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationError("itinerary item references an unknown price record")
			}
			return fmt.Errorf("failed to insert itinerary rows for %s: %w", itinerary.ItineraryID, err)
		}
	}
	return nil
}

// FindItineraryByID retrieves an itinerary with its days and items.
func (r *PgxItineraryRepository) FindItineraryByID(ctx context.Context, itineraryID string) (*domain.Itinerary, error) {
	headerQuery := `
		SELECT ` + itineraryColumns + `
		FROM itineraries
		WHERE itinerary_id = $1;
	`
	headerRows, err := r.Pool.Query(ctx, headerQuery, itineraryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query itinerary %s: %w", itineraryID, err)
	}
	modelItin, err := pgx.CollectOneRow(headerRows, scanItinerary)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find itinerary by ID %s: %w", itineraryID, err)
	}

	dayQuery := `
		SELECT itinerary_id, day_number, title
		FROM itinerary_days
		WHERE itinerary_id = $1
		ORDER BY day_number;
	`
	dayRowsRaw, err := r.Pool.Query(ctx, dayQuery, itineraryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query itinerary days for %s: %w", itineraryID, err)
	}
	dayRows, err := pgx.CollectRows(dayRowsRaw, func(row pgx.CollectableRow) (models.ItineraryDay, error) {
		var day models.ItineraryDay
		err := row.Scan(&day.ItineraryID, &day.DayNumber, &day.Title)
		return day, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan itinerary days for %s: %w", itineraryID, err)
	}

	itemQuery := `
		SELECT item_id, itinerary_id, day_number, position, price_id, quantity, price_override, note
		FROM itinerary_items
		WHERE itinerary_id = $1
		ORDER BY day_number, position;
	`
	itemRowsRaw, err := r.Pool.Query(ctx, itemQuery, itineraryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query itinerary items for %s: %w", itineraryID, err)
	}
	itemRows, err := pgx.CollectRows(itemRowsRaw, func(row pgx.CollectableRow) (models.ItineraryItem, error) {
		var item models.ItineraryItem
		err := row.Scan(
			&item.ItemID,
			&item.ItineraryID,
			&item.DayNumber,
			&item.Position,
			&item.PriceID,
			&item.Quantity,
			&item.PriceOverride,
			&item.Note,
		)
		return item, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan itinerary items for %s: %w", itineraryID, err)
	}

	domainItin := mapping.ToDomainItinerary(modelItin, dayRows, itemRows)
	return &domainItin, nil
}

// ListItineraries retrieves itinerary headers newest first using a
// created_at cursor token.
func (r *PgxItineraryRepository) ListItineraries(ctx context.Context, status *domain.ItineraryStatus, limit int, pageToken string) ([]domain.Itinerary, string, error) {
	var statusFilter *string
	if status != nil {
		s := string(*status)
		statusFilter = &s
	}

	var cursor *time.Time
	if pageToken != "" {
		decoded, err := pagination.DecodeDateBasedToken(pageToken)
		if err != nil {
			return nil, "", apperrors.NewValidationError("invalid page token")
		}
		cursor = &decoded
	}

	// Fetch one extra row to know whether another page exists.
	query := `
		SELECT ` + itineraryColumns + `
		FROM itineraries
		WHERE ($1::text IS NULL OR status = $1)
			AND ($2::timestamptz IS NULL OR created_at < $2)
		ORDER BY created_at DESC
		LIMIT $3;
	`
	rows, err := r.Pool.Query(ctx, query, statusFilter, cursor, limit+1)
	if err != nil {
		return nil, "", fmt.Errorf("failed to query itineraries: %w", err)
	}
	defer rows.Close()

	modelItineraries, err := pgx.CollectRows(rows, scanItinerary)
	if err != nil {
		return nil, "", fmt.Errorf("failed to scan itineraries: %w", err)
	}

	nextToken := ""
	if len(modelItineraries) > limit {
		modelItineraries = modelItineraries[:limit]
		nextToken = pagination.EncodeDateBasedToken(modelItineraries[len(modelItineraries)-1].CreatedAt)
	}

	domainItineraries := make([]domain.Itinerary, len(modelItineraries))
	for i, m := range modelItineraries {
		domainItineraries[i] = mapping.ToDomainItineraryHeader(m)
	}
	return domainItineraries, nextToken, nil
}

// UpdateItineraryStatus sets the status of an itinerary.
func (r *PgxItineraryRepository) UpdateItineraryStatus(ctx context.Context, itineraryID string, status domain.ItineraryStatus, updatedAt time.Time, updatedBy string) error {
	query := `
		UPDATE itineraries
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE itinerary_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, itineraryID, string(status), updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update itinerary status for %s: %w", itineraryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteItinerary removes an itinerary and its days and items.
func (r *PgxItineraryRepository) DeleteItinerary(ctx context.Context, itineraryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM itinerary_items WHERE itinerary_id = $1;`, itineraryID); err != nil {
		return fmt.Errorf("failed to delete itinerary items for %s: %w", itineraryID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM itinerary_days WHERE itinerary_id = $1;`, itineraryID); err != nil {
		return fmt.Errorf("failed to delete itinerary days for %s: %w", itineraryID, err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM itineraries WHERE itinerary_id = $1;`, itineraryID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return apperrors.NewConflictError("itinerary is still referenced by documents")
		}
		return fmt.Errorf("failed to delete itinerary %s: %w", itineraryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}
