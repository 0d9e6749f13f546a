package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/domain"
	"github.com/dmarkin/TirePoint-SchedulingService/pkg/dbmetrics"
	"github.com/dmarkin/TirePoint-SchedulingService/pkg/psqlbuilder"
)

// Repository репозиторий недельных шаблонов и дат-исключений расписания.
// Валидация часов (закрытие строго позже открытия) выполняется сервисом
// расписания ДО записи - сюда приходят только корректные данные.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// UpsertTemplate создает или обновляет шаблон на (точка, день недели).
// Уникальность пары обеспечивает констрейнт БД + ON CONFLICT.
func (r *Repository) UpsertTemplate(ctx context.Context, tpl *domain.ScheduleTemplate) (*domain.ScheduleTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_templates").
		Columns("service_point_id", "weekday", "is_working", "opens_at", "closes_at").
		Values(tpl.ServicePointID, int(tpl.Weekday), tpl.IsWorking, tpl.OpensAt, tpl.ClosesAt).
		Suffix(`ON CONFLICT (service_point_id, weekday) DO UPDATE
			SET is_working = EXCLUDED.is_working,
			    opens_at = EXCLUDED.opens_at,
			    closes_at = EXCLUDED.closes_at,
			    updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertTemplate - build query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&tpl.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertTemplate - execute upsert: %v", ErrExecQuery, err)
	}

	tpl.CreatedAt = createdAt.Time
	tpl.UpdatedAt = updatedAt.Time

	return tpl, nil
}

// UpsertException создает или обновляет исключение на (точка, дата)
func (r *Repository) UpsertException(ctx context.Context, exc *domain.ScheduleException) (*domain.ScheduleException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_exceptions").
		Columns("service_point_id", "date", "is_working", "opens_at", "closes_at").
		Values(exc.ServicePointID, exc.Date, exc.IsWorking, exc.OpensAt, exc.ClosesAt).
		Suffix(`ON CONFLICT (service_point_id, date) DO UPDATE
			SET is_working = EXCLUDED.is_working,
			    opens_at = EXCLUDED.opens_at,
			    closes_at = EXCLUDED.closes_at,
			    updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertException - build query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&exc.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertException - execute upsert: %v", ErrExecQuery, err)
	}

	exc.CreatedAt = createdAt.Time
	exc.UpdatedAt = updatedAt.Time

	return exc, nil
}

// GetTemplateByWeekday получает шаблон точки на день недели
func (r *Repository) GetTemplateByWeekday(ctx context.Context, servicePointID int64, weekday time.Weekday) (*domain.ScheduleTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "service_point_id", "weekday", "is_working", "opens_at", "closes_at",
		"created_at", "updated_at",
	).
		From("schedule_templates").
		Where(squirrel.Eq{"service_point_id": servicePointID}).
		Where(squirrel.Eq{"weekday": int(weekday)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetTemplateByWeekday - build query: %v", ErrBuildQuery, err)
	}

	var tpl domain.ScheduleTemplate
	var weekdayInt int
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&tpl.ID, &tpl.ServicePointID, &weekdayInt, &tpl.IsWorking,
		&tpl.OpensAt, &tpl.ClosesAt, &createdAt, &updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetTemplateByWeekday - scan template: %w", ErrScanRow, err)
	}

	tpl.Weekday = time.Weekday(weekdayInt)
	tpl.CreatedAt = createdAt.Time
	tpl.UpdatedAt = updatedAt.Time

	return &tpl, nil
}

// GetTemplatesByPoint получает все шаблоны точки, упорядоченные по дню недели
func (r *Repository) GetTemplatesByPoint(ctx context.Context, servicePointID int64) ([]*domain.ScheduleTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "service_point_id", "weekday", "is_working", "opens_at", "closes_at",
		"created_at", "updated_at",
	).
		From("schedule_templates").
		Where(squirrel.Eq{"service_point_id": servicePointID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetTemplatesByPoint - build query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTemplatesByPoint - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	templates := make([]*domain.ScheduleTemplate, 0)
	for rows.Next() {
		var tpl domain.ScheduleTemplate
		var weekdayInt int
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&tpl.ID, &tpl.ServicePointID, &weekdayInt, &tpl.IsWorking,
			&tpl.OpensAt, &tpl.ClosesAt, &createdAt, &updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: GetTemplatesByPoint - scan row: %v", ErrScanRow, err)
		}

		tpl.Weekday = time.Weekday(weekdayInt)
		tpl.CreatedAt = createdAt.Time
		tpl.UpdatedAt = updatedAt.Time
		templates = append(templates, &tpl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetTemplatesByPoint - rows error: %v", ErrScanRow, err)
	}

	return templates, nil
}

// GetExceptionByDate получает исключение точки на конкретную дату
func (r *Repository) GetExceptionByDate(ctx context.Context, servicePointID int64, date time.Time) (*domain.ScheduleException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "service_point_id", "date", "is_working", "opens_at", "closes_at",
		"created_at", "updated_at",
	).
		From("schedule_exceptions").
		Where(squirrel.Eq{"service_point_id": servicePointID}).
		Where(squirrel.Eq{"date": date}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetExceptionByDate - build query: %v", ErrBuildQuery, err)
	}

	var exc domain.ScheduleException
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&exc.ID, &exc.ServicePointID, &exc.Date, &exc.IsWorking,
		&exc.OpensAt, &exc.ClosesAt, &createdAt, &updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrExceptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetExceptionByDate - scan exception: %w", ErrScanRow, err)
	}

	exc.CreatedAt = createdAt.Time
	exc.UpdatedAt = updatedAt.Time

	return &exc, nil
}

// DeleteException удаляет исключение (возврат к недельному шаблону)
func (r *Repository) DeleteException(ctx context.Context, servicePointID int64, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedule_exceptions").
		Where(squirrel.Eq{"service_point_id": servicePointID}).
		Where(squirrel.Eq{"date": date}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteException - build query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteException - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteException - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrExceptionNotFound
	}

	return nil
}
