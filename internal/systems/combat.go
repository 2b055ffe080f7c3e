package systems

import (
	"github.com/sirupsen/logrus"

	"terramythica-server/internal/domain"
	"terramythica-server/pkg/logger"
)

// Hit - результат применения атаки к одному защитнику.
type Hit struct {
	Defender *domain.Entity
	Damage   float64

	// Knockback - вектор отбрасывания от атакующего к защитнику,
	// с учетом сопротивления защитника.
	Knockback domain.Vec2

	Died bool
}

// ResolveAttack применяет зону атаки к кандидатам. Урон наносится
// каждому защитнику, чей хитбокс перекрывает зону, если он не
// атакующий, не мертв, не в окне неуязвимости и эта атака против него
// еще не срабатывала. Урон детерминирован: вариативности и критов нет.
func ResolveAttack(atk *domain.AttackInstance, candidates []*domain.Entity, now int64) []Hit {
	combatLogger := logger.Log.WithFields(logrus.Fields{
		"component":   "combat_system",
		"attack_id":   atk.ID,
		"attacker_id": atk.AttackerID,
		"attack_kind": atk.Kind.String(),
	})

	var hits []Hit

	for _, defender := range EntitiesInRegion(atk.Region, candidates) {
		if defender.ID == atk.AttackerID {
			continue
		}
		if defender.Stats == nil {
			continue
		}
		if defender.IsDead() || defender.Stats.HP <= 0 {
			continue
		}
		if defender.Invulnerable(now) {
			combatLogger.WithField("defender_id", defender.ID).
				Debug("Attack ignored: defender is invulnerable.")
			continue
		}
		if atk.AppliedTo(defender.ID) {
			continue
		}

		atk.MarkApplied(defender.ID)

		hpBefore := defender.Stats.HP
		died := defender.Stats.TakeDamage(atk.Damage)

		kb := knockbackVector(atk, defender)

		combatLogger.WithFields(logrus.Fields{
			"defender_id":   defender.ID,
			"defender_kind": defender.Kind,
			"damage":        atk.Damage,
			"hp_before":     hpBefore,
			"hp_after":      defender.Stats.HP,
			"target_died":   died,
		}).Info("Attack resolved.")

		hits = append(hits, Hit{
			Defender:  defender,
			Damage:    atk.Damage,
			Knockback: kb,
			Died:      died,
		})
	}

	return hits
}

// knockbackVector направлен от позиции атакующего в момент коммита к
// защитнику. Если позиции совпали, отбрасываем по взгляду защитника назад.
func knockbackVector(atk *domain.AttackInstance, defender *domain.Entity) domain.Vec2 {
	dir := defender.Pos.Sub(atk.Origin).Normalized()
	if dir.IsZero() {
		dir = defender.Facing.Vec().Scale(-1)
	}

	magnitude := atk.Knockback
	if defender.Stats != nil && defender.Stats.Resistance > 0 {
		magnitude *= defender.Stats.Resistance
	}
	return dir.Scale(magnitude)
}
