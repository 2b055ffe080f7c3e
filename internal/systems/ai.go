package systems

import (
	"terramythica-server/internal/domain"
)

// AIAction - Внутренний числовой идентификатор решения врага
type AIAction uint8

const (
	AIActionIdle AIAction = iota
	AIActionPursue
	AIActionAttack
)

var aiActionToString = map[AIAction]string{
	AIActionIdle:   "IDLE",
	AIActionPursue: "PURSUE",
	AIActionAttack: "ATTACK",
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a AIAction) String() string {
	if val, ok := aiActionToString[a]; ok {
		return val
	}
	return "IDLE"
}

// AIDecision - намерение врага на текущий шаг.
type AIDecision struct {
	Action AIAction

	// Direction - единичный вектор движения (для PURSUE).
	Direction domain.Vec2

	// AimAt - точка прицеливания атаки (для ATTACK).
	AimAt domain.Vec2
}

// ComputeEnemyDecision решает, что делать врагу, по расстоянию до
// игрока. Метрика одна для всех проверок: прямая дистанция между
// центрами сущностей.
//
//   - дальше радиуса восприятия: стоим, намерения движения нет;
//   - в радиусе восприятия: фиксируем последнюю известную позицию
//     цели и идем к ней по прямой, без поиска пути - застрять об
//     препятствие допустимо;
//   - в радиусе атаки при истекшем кулдауне: коммит атаки по текущей
//     позиции игрока.
func ComputeEnemyDecision(enemy, player *domain.Entity, now int64) AIDecision {
	if enemy.AI == nil || enemy.IsDead() {
		return AIDecision{Action: AIActionIdle}
	}
	if player == nil || player.IsDead() {
		enemy.AI.HasTarget = false
		return AIDecision{Action: AIActionIdle}
	}

	dist := enemy.Pos.DistanceTo(player.Pos)

	if dist > enemy.AI.PerceptionRadius {
		enemy.AI.HasTarget = false
		return AIDecision{Action: AIActionIdle}
	}

	if dist <= enemy.AI.AttackRadius && enemy.Combat != nil && now >= enemy.Combat.NextAttackAt {
		return AIDecision{Action: AIActionAttack, AimAt: player.Pos}
	}

	// Преследование: позиция цели фиксируется при входе в ветку.
	enemy.AI.LastKnown = player.Pos
	enemy.AI.HasTarget = true

	dir := enemy.AI.LastKnown.Sub(enemy.Pos).Normalized()
	return AIDecision{Action: AIActionPursue, Direction: dir}
}
