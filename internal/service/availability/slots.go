package availability

import (
	"time"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/domain"
	"github.com/dmarkin/TirePoint-SchedulingService/pkg/types"
)

// intervalsOverlap проверяет пересечение двух полуоткрытых интервалов [aStart, aEnd)
// и [bStart, bEnd). Касание границами (конец одного == начало другого)
// пересечением не считается.
func intervalsOverlap(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && bStart.IsBefore(aEnd)
}

// countOverlapping считает бронирования, пересекающие окно [start, end)
// и потребляющие посты из пула категории categoryID.
// Бронирования с невосстановимым временем окончания пропускаются.
func countOverlapping(bookings []*domain.Booking, start, end types.TimeString, categoryID *int64) int {
	count := 0
	for _, b := range bookings {
		if !b.ConsumesFromCategoryPool(categoryID) {
			continue
		}

		bEnd, err := b.EndTimeResolved()
		if err != nil {
			continue
		}

		if intervalsOverlap(start, end, b.StartTime, bEnd) {
			count++
		}
	}
	return count
}

// postCoversWindow проверяет, что пост открыт на всем окне [start, end).
// Пост без кастомного расписания наследует рабочие часы точки и покрывает
// любое окно внутри них; кастомные часы должны содержать окно целиком.
func postCoversWindow(post *domain.ServicePost, weekday time.Weekday, start, end types.TimeString) bool {
	if post.CustomSchedule == nil {
		return true
	}

	day := post.CustomSchedule.ForWeekday(weekday)
	if !day.IsWorking || day.OpensAt == nil || day.ClosesAt == nil {
		return false
	}

	return !start.IsBefore(*day.OpensAt) && !day.ClosesAt.IsBefore(end)
}

// countCovering считает посты, чьи часы покрывают окно [start, end)
func countCovering(posts []*domain.ServicePost, weekday time.Weekday, start, end types.TimeString) int {
	count := 0
	for _, post := range posts {
		if postCoversWindow(post, weekday, start, end) {
			count++
		}
	}
	return count
}

// gridTimes перечисляет стартовые времена сетки: от opensAt с шагом step минут,
// пока окно длительностью duration целиком помещается до closesAt.
func gridTimes(opensAt, closesAt types.TimeString, step, duration int) []types.TimeString {
	var result []types.TimeString

	for t := opensAt; ; {
		end, err := t.AddMinutes(duration)
		if err != nil || end.IsAfter(closesAt) {
			break
		}
		result = append(result, t)

		next, err := t.AddMinutes(step)
		if err != nil {
			break
		}
		t = next
	}

	return result
}
