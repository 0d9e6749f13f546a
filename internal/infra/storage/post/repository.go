package post

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/domain"
	"github.com/dmarkin/TirePoint-SchedulingService/pkg/dbmetrics"
	"github.com/dmarkin/TirePoint-SchedulingService/pkg/psqlbuilder"
)

// Repository репозиторий постов обслуживания
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория постов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByPoint получает все посты точки, упорядоченные по номеру
func (r *Repository) GetByPoint(ctx context.Context, servicePointID int64) ([]*domain.ServicePost, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "service_point_id", "sequence_number", "slot_duration_minutes",
		"is_active", "category_id", "custom_schedule", "created_at", "updated_at",
	).
		From("service_posts").
		Where(squirrel.Eq{"service_point_id": servicePointID}).
		OrderBy("sequence_number ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByPoint - build query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPoint - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	posts := make([]*domain.ServicePost, 0)
	for rows.Next() {
		var post domain.ServicePost
		var schedule *domain.WeeklySchedule
		var rawSchedule []byte
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&post.ID,
			&post.ServicePointID,
			&post.SequenceNumber,
			&post.SlotDurationMinutes,
			&post.IsActive,
			&post.CategoryID,
			&rawSchedule,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: GetByPoint - scan row: %w", ErrScanRow, err)
		}

		if rawSchedule != nil {
			schedule = &domain.WeeklySchedule{}
			if err := schedule.Scan(rawSchedule); err != nil {
				return nil, fmt.Errorf("%w: GetByPoint - parse custom schedule: %v", ErrScanRow, err)
			}
		}

		post.CustomSchedule = schedule
		post.CreatedAt = createdAt.Time
		post.UpdatedAt = updatedAt.Time
		posts = append(posts, &post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByPoint - rows error: %w", ErrScanRow, err)
	}

	return posts, nil
}

// CreateBatch создает несколько постов одной вставкой.
// Используется автосозданием постов по умолчанию для точки без каталога.
func (r *Repository) CreateBatch(ctx context.Context, posts []*domain.ServicePost) error {
	if len(posts) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("service_posts").
		Columns("service_point_id", "sequence_number", "slot_duration_minutes", "is_active", "category_id", "custom_schedule")

	for _, p := range posts {
		insertBuilder = insertBuilder.Values(
			p.ServicePointID, p.SequenceNumber, p.SlotDurationMinutes, p.IsActive, p.CategoryID, p.CustomSchedule,
		)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateBatch - build query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateBatch - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// Update обновляет настройки поста (активность, специализацию, расписание).
// Кастомное расписание валидируется сервисом каталога постов до записи.
func (r *Repository) Update(ctx context.Context, post *domain.ServicePost) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("service_posts").
		Set("slot_duration_minutes", post.SlotDurationMinutes).
		Set("is_active", post.IsActive).
		Set("category_id", post.CategoryID).
		Set("custom_schedule", post.CustomSchedule).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": post.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrPostNotFound
	}

	return nil
}
