package domain

import "strings"

// EntityState - Внутренний числовой идентификатор состояния сущности
type EntityState uint8

const (
	StateIdle EntityState = iota
	StateMoving
	StateAttacking
	StateCasting
	StateHurt
	StateDead
)

// Маппинг для конвертации снапшотов/конфигов -> Domain
var stateStringToState = map[string]EntityState{
	"IDLE":      StateIdle,
	"MOVING":    StateMoving,
	"ATTACKING": StateAttacking,
	"CASTING":   StateCasting,
	"HURT":      StateHurt,
	"DEAD":      StateDead,
}

// Маппинг для логов Domain -> String
var stateToString = map[EntityState]string{
	StateIdle:      "IDLE",
	StateMoving:    "MOVING",
	StateAttacking: "ATTACKING",
	StateCasting:   "CASTING",
	StateHurt:      "HURT",
	StateDead:      "DEAD",
}

// ParseState конвертирует строку в EntityState.
// Неизвестные значения считаются IDLE.
func ParseState(s string) EntityState {
	if val, ok := stateStringToState[strings.ToUpper(s)]; ok {
		return val
	}
	return StateIdle
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (st EntityState) String() string {
	if val, ok := stateToString[st]; ok {
		return val
	}
	return "IDLE"
}

// IsTimed сообщает, что состояние завершается по таймеру, а не по вводу.
func (st EntityState) IsTimed() bool {
	return st == StateAttacking || st == StateCasting || st == StateHurt
}

// CanAct сообщает, принимает ли состояние новые намерения
// (движение, коммит атаки или заклинания).
func (st EntityState) CanAct() bool {
	return st == StateIdle || st == StateMoving
}
