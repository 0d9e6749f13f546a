package posts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/domain"
	pointRepo "github.com/dmarkin/TirePoint-SchedulingService/internal/infra/storage/servicepoint"
	"github.com/dmarkin/TirePoint-SchedulingService/pkg/types"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fakePostRepo struct {
	posts  []*domain.ServicePost
	nextID int64
}

func (r *fakePostRepo) GetByPoint(_ context.Context, servicePointID int64) ([]*domain.ServicePost, error) {
	var result []*domain.ServicePost
	for _, p := range r.posts {
		if p.ServicePointID == servicePointID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *fakePostRepo) CreateBatch(_ context.Context, posts []*domain.ServicePost) error {
	for _, p := range posts {
		r.nextID++
		p.ID = r.nextID
		r.posts = append(r.posts, p)
	}
	return nil
}

func (r *fakePostRepo) Update(_ context.Context, post *domain.ServicePost) error {
	for i, p := range r.posts {
		if p.ID == post.ID {
			r.posts[i] = post
			return nil
		}
	}
	return ErrPostNotFound
}

type fakePointRepo struct {
	points map[int64]*domain.ServicePoint
}

func (r *fakePointRepo) GetByID(_ context.Context, id int64) (*domain.ServicePoint, error) {
	p, ok := r.points[id]
	if !ok {
		return nil, pointRepo.ErrPointNotFound
	}
	return p, nil
}

func ts(s string) *types.TimeString {
	v := types.TimeString(s)
	return &v
}

func point(postCount, defaultDuration int) *fakePointRepo {
	return &fakePointRepo{points: map[int64]*domain.ServicePoint{
		1: {
			ID:                         1,
			Name:                       "Шиномонтаж на Ленина",
			PostCount:                  postCount,
			DefaultSlotDurationMinutes: defaultDuration,
			IsActive:                   true,
			OperationalStatus:          domain.PointWorking,
		},
	}}
}

// 2026-04-14 - вторник
var tuesday = time.Date(2026, 4, 14, 0, 0, 0, 0, time.UTC)

func TestEnsureDefaults_ProvisionsFromPointSettings(t *testing.T) {
	repo := &fakePostRepo{}
	svc := NewService(repo, point(3, 45), noopLogger{})

	posts, err := svc.EnsureDefaults(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, posts, 3)

	for i, p := range posts {
		assert.Equal(t, i+1, p.SequenceNumber)
		assert.Equal(t, 45, p.SlotDurationMinutes)
		assert.True(t, p.IsActive)
		assert.Nil(t, p.CategoryID)
	}
}

func TestEnsureDefaults_ExistingCatalogUntouched(t *testing.T) {
	repo := &fakePostRepo{
		posts: []*domain.ServicePost{
			{ID: 1, ServicePointID: 1, SequenceNumber: 1, SlotDurationMinutes: 60, IsActive: true},
		},
		nextID: 1,
	}
	svc := NewService(repo, point(5, 30), noopLogger{})

	posts, err := svc.EnsureDefaults(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, 60, posts[0].SlotDurationMinutes)
}

func TestEnsureDefaults_PointNotFound(t *testing.T) {
	svc := NewService(&fakePostRepo{}, &fakePointRepo{points: map[int64]*domain.ServicePoint{}}, noopLogger{})

	_, err := svc.EnsureDefaults(context.Background(), 7)
	assert.ErrorIs(t, err, ErrPointNotFound)
}

func TestEligiblePosts_SkipsInactive(t *testing.T) {
	repo := &fakePostRepo{
		posts: []*domain.ServicePost{
			{ID: 1, ServicePointID: 1, SequenceNumber: 1, SlotDurationMinutes: 30, IsActive: true},
			{ID: 2, ServicePointID: 1, SequenceNumber: 2, SlotDurationMinutes: 30, IsActive: false},
		},
		nextID: 2,
	}
	svc := NewService(repo, point(2, 30), noopLogger{})

	posts, err := svc.EligiblePosts(context.Background(), 1, tuesday, nil)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, int64(1), posts[0].ID)
}

func TestEligiblePosts_CustomScheduleExcludesDayOff(t *testing.T) {
	workingHours := domain.DaySchedule{IsWorking: true, OpensAt: ts("10:00"), ClosesAt: ts("19:00")}
	// У поста 2 вторник нерабочий
	schedule := &domain.WeeklySchedule{
		Monday: workingHours, Wednesday: workingHours, Thursday: workingHours,
		Friday: workingHours, Saturday: workingHours, Sunday: workingHours,
	}

	repo := &fakePostRepo{
		posts: []*domain.ServicePost{
			{ID: 1, ServicePointID: 1, SequenceNumber: 1, SlotDurationMinutes: 30, IsActive: true},
			{ID: 2, ServicePointID: 1, SequenceNumber: 2, SlotDurationMinutes: 30, IsActive: true, CustomSchedule: schedule},
		},
		nextID: 2,
	}
	svc := NewService(repo, point(2, 30), noopLogger{})

	posts, err := svc.EligiblePosts(context.Background(), 1, tuesday, nil)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, int64(1), posts[0].ID)

	// В среду оба поста в работе
	posts, err = svc.EligiblePosts(context.Background(), 1, tuesday.AddDate(0, 0, 1), nil)
	require.NoError(t, err)
	assert.Len(t, posts, 2)
}

func TestEligiblePosts_CategoryFilter(t *testing.T) {
	tiresCat := int64(5)
	otherCat := int64(7)

	repo := &fakePostRepo{
		posts: []*domain.ServicePost{
			{ID: 1, ServicePointID: 1, SequenceNumber: 1, SlotDurationMinutes: 30, IsActive: true, CategoryID: &tiresCat},
			{ID: 2, ServicePointID: 1, SequenceNumber: 2, SlotDurationMinutes: 30, IsActive: true},
		},
		nextID: 2,
	}
	svc := NewService(repo, point(2, 30), noopLogger{})

	// Без категории доступны все посты
	posts, err := svc.EligiblePosts(context.Background(), 1, tuesday, nil)
	require.NoError(t, err)
	assert.Len(t, posts, 2)

	// Специализированный пост не обслуживает чужую категорию
	posts, err = svc.EligiblePosts(context.Background(), 1, tuesday, &otherCat)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, int64(2), posts[0].ID)

	// Своя категория попадает и на специализированный, и на универсальный пост
	posts, err = svc.EligiblePosts(context.Background(), 1, tuesday, &tiresCat)
	require.NoError(t, err)
	assert.Len(t, posts, 2)
}

func TestUpdatePost_RejectsInvalidSchedule(t *testing.T) {
	repo := &fakePostRepo{
		posts: []*domain.ServicePost{
			{ID: 1, ServicePointID: 1, SequenceNumber: 1, SlotDurationMinutes: 30, IsActive: true},
		},
		nextID: 1,
	}
	svc := NewService(repo, point(1, 30), noopLogger{})

	err := svc.UpdatePost(context.Background(), &domain.ServicePost{
		ID: 1, ServicePointID: 1, SequenceNumber: 1, SlotDurationMinutes: 30, IsActive: true,
		CustomSchedule: &domain.WeeklySchedule{
			Monday: domain.DaySchedule{IsWorking: true, OpensAt: ts("18:00"), ClosesAt: ts("09:00")},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestUpdatePost_ValidSchedule(t *testing.T) {
	repo := &fakePostRepo{
		posts: []*domain.ServicePost{
			{ID: 1, ServicePointID: 1, SequenceNumber: 1, SlotDurationMinutes: 30, IsActive: true},
		},
		nextID: 1,
	}
	svc := NewService(repo, point(1, 30), noopLogger{})

	err := svc.UpdatePost(context.Background(), &domain.ServicePost{
		ID: 1, ServicePointID: 1, SequenceNumber: 1, SlotDurationMinutes: 45, IsActive: true,
		CustomSchedule: &domain.WeeklySchedule{
			Monday: domain.DaySchedule{IsWorking: true, OpensAt: ts("09:00"), ClosesAt: ts("18:00")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 45, repo.posts[0].SlotDurationMinutes)
}

func TestMinActiveSlotDuration(t *testing.T) {
	repo := &fakePostRepo{
		posts: []*domain.ServicePost{
			{ID: 1, ServicePointID: 1, SequenceNumber: 1, SlotDurationMinutes: 60, IsActive: true},
			{ID: 2, ServicePointID: 1, SequenceNumber: 2, SlotDurationMinutes: 15, IsActive: true},
			{ID: 3, ServicePointID: 1, SequenceNumber: 3, SlotDurationMinutes: 5, IsActive: false},
		},
		nextID: 3,
	}
	svc := NewService(repo, point(3, 30), noopLogger{})

	// Неактивный пост в расчете шага не участвует
	min, err := svc.MinActiveSlotDuration(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 15, min)
}

func TestMinActiveSlotDuration_FallsBackToPointDefault(t *testing.T) {
	repo := &fakePostRepo{
		posts: []*domain.ServicePost{
			{ID: 1, ServicePointID: 1, SequenceNumber: 1, SlotDurationMinutes: 30, IsActive: false},
		},
		nextID: 1,
	}
	svc := NewService(repo, point(1, 20), noopLogger{})

	min, err := svc.MinActiveSlotDuration(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 20, min)
}
