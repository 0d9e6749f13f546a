package servicepoint

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/domain"
	"github.com/dmarkin/TirePoint-SchedulingService/pkg/dbmetrics"
	"github.com/dmarkin/TirePoint-SchedulingService/pkg/psqlbuilder"
)

// Repository репозиторий сервисных точек.
// Точки создаются и редактируются партнерским контуром - здесь только
// чтение и смена операционного статуса.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория сервисных точек
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает сервисную точку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ServicePoint, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "partner_id", "name", "post_count", "default_slot_duration_minutes",
		"is_active", "operational_status", "created_at", "updated_at",
	).
		From("service_points").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build query: %v", ErrBuildQuery, err)
	}

	var point domain.ServicePoint
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&point.ID,
		&point.PartnerID,
		&point.Name,
		&point.PostCount,
		&point.DefaultSlotDurationMinutes,
		&point.IsActive,
		&point.OperationalStatus,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPointNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan point: %w", ErrScanRow, err)
	}

	point.CreatedAt = createdAt.Time
	point.UpdatedAt = updatedAt.Time

	return &point, nil
}

// UpdateOperationalStatus меняет операционный статус точки.
// Точки никогда не удаляются физически - закрытие это смена статуса.
func (r *Repository) UpdateOperationalStatus(ctx context.Context, id int64, status domain.OperationalStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("service_points").
		Set("operational_status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateOperationalStatus - build query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateOperationalStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateOperationalStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrPointNotFound
	}

	return nil
}
