package domain

import "errors"

var (
	// ErrInvalidTransition возвращается при попытке перехода,
	// отсутствующего в таблице переходов статусов
	ErrInvalidTransition = errors.New("domain: invalid booking status transition")

	// ErrUnknownStatus возвращается для строки, не являющейся статусом бронирования
	ErrUnknownStatus = errors.New("domain: unknown booking status")
)

// Actor инициатор перехода статуса
type Actor string

const (
	ActorClient  Actor = "client"
	ActorPartner Actor = "partner"
)

// transition разрешенный переход статуса с допустимыми инициаторами
type transition struct {
	to     BookingStatus
	actors []Actor
}

// transitionTable единственная таблица разрешенных переходов статусов.
// Все мутирующие операции обязаны проверять переход через CanTransition -
// никаких разрозненных проверок статуса по месту вызова.
var transitionTable = map[BookingStatus][]transition{
	StatusPending: {
		{to: StatusConfirmed, actors: []Actor{ActorPartner}},
		{to: StatusCanceledByClient, actors: []Actor{ActorClient}},
		{to: StatusCanceledByPartner, actors: []Actor{ActorPartner}},
	},
	StatusConfirmed: {
		{to: StatusInProgress, actors: []Actor{ActorPartner}},
		{to: StatusCompleted, actors: []Actor{ActorPartner}},
		{to: StatusNoShow, actors: []Actor{ActorPartner}},
		{to: StatusCanceledByClient, actors: []Actor{ActorClient}},
		{to: StatusCanceledByPartner, actors: []Actor{ActorPartner}},
	},
	StatusInProgress: {
		{to: StatusCompleted, actors: []Actor{ActorPartner}},
	},
	// Терминальные статусы - исходящих переходов нет
	StatusCompleted:         {},
	StatusCanceledByClient:  {},
	StatusCanceledByPartner: {},
	StatusNoShow:            {},
}

// CanTransition проверяет, разрешен ли переход from -> to для инициатора actor.
// Возвращает ErrInvalidTransition, если перехода нет в таблице.
func CanTransition(from, to BookingStatus, actor Actor) error {
	for _, tr := range transitionTable[from] {
		if tr.to != to {
			continue
		}
		for _, a := range tr.actors {
			if a == actor {
				return nil
			}
		}
	}
	return ErrInvalidTransition
}

// IsTerminalStatus возвращает true для статусов без исходящих переходов
func IsTerminalStatus(s BookingStatus) bool {
	return len(transitionTable[s]) == 0
}

// AllowedTransitions возвращает список статусов, в которые можно перейти
// из from силами actor. Используется для подсказок в API.
func AllowedTransitions(from BookingStatus, actor Actor) []BookingStatus {
	var result []BookingStatus
	for _, tr := range transitionTable[from] {
		for _, a := range tr.actors {
			if a == actor {
				result = append(result, tr.to)
				break
			}
		}
	}
	return result
}
