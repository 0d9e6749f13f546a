package cancelreason

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/domain"
	"github.com/dmarkin/TirePoint-SchedulingService/pkg/dbmetrics"
	"github.com/dmarkin/TirePoint-SchedulingService/pkg/psqlbuilder"
)

// Repository репозиторий справочника причин отмены
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория причин отмены
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает причину отмены по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.CancellationReason, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "title", "visible_to_client", "visible_to_partner",
	).
		From("cancellation_reasons").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build query: %v", ErrBuildQuery, err)
	}

	var reason domain.CancellationReason
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reason.ID, &reason.Title, &reason.VisibleToClient, &reason.VisibleToPartner,
	)

	if err == sql.ErrNoRows {
		return nil, ErrReasonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reason: %v", ErrScanRow, err)
	}

	return &reason, nil
}

// GetAll получает весь справочник причин отмены
func (r *Repository) GetAll(ctx context.Context) ([]*domain.CancellationReason, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "title", "visible_to_client", "visible_to_partner",
	).
		From("cancellation_reasons").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reasons := make([]*domain.CancellationReason, 0)
	for rows.Next() {
		var reason domain.CancellationReason
		if err := rows.Scan(&reason.ID, &reason.Title, &reason.VisibleToClient, &reason.VisibleToPartner); err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan row: %v", ErrScanRow, err)
		}
		reasons = append(reasons, &reason)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %v", ErrScanRow, err)
	}

	return reasons, nil
}
