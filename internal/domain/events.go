package domain

import "strings"

// EventType - Внутренний числовой идентификатор события симуляции.
// События отдаются аудио-коллаборатору по принципу fire-and-forget.
type EventType uint8

const (
	EventUnknown EventType = iota
	EventAttackCommitted
	EventSpellCast
	EventHitLanded
	EventEnemyDied
	EventUpgradeApplied
)

// Маппинг для конвертации JSON -> Domain
var eventStringToType = map[string]EventType{
	"ATTACK_COMMITTED": EventAttackCommitted,
	"SPELL_CAST":       EventSpellCast,
	"HIT_LANDED":       EventHitLanded,
	"ENEMY_DIED":       EventEnemyDied,
	"UPGRADE_APPLIED":  EventUpgradeApplied,
}

// Маппинг для логов Domain -> String
var eventTypeToString = map[EventType]string{
	EventAttackCommitted: "ATTACK_COMMITTED",
	EventSpellCast:       "SPELL_CAST",
	EventHitLanded:       "HIT_LANDED",
	EventEnemyDied:       "ENEMY_DIED",
	EventUpgradeApplied:  "UPGRADE_APPLIED",
}

// ParseEvent конвертирует строку в EventType
func ParseEvent(s string) EventType {
	if val, ok := eventStringToType[strings.ToUpper(s)]; ok {
		return val
	}
	return EventUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (e EventType) String() string {
	if val, ok := eventTypeToString[e]; ok {
		return val
	}
	return "UNKNOWN"
}

// Event - дискретное событие одного шага симуляции.
type Event struct {
	Type     EventType
	EntityID string
	TargetID string
	// Amount - значение события: урон для HIT_LANDED, опыт для ENEMY_DIED.
	Amount float64
}
