package engine

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"terramythica-server/internal/defs"
	"terramythica-server/internal/domain"
	"terramythica-server/internal/systems"
	"terramythica-server/pkg/api"
	"terramythica-server/pkg/logger"
)

// Step продвигает симуляцию ровно на один фиксированный шаг.
// Порядок фаз жестко закреплен, он и дает детерминизм: одинаковая
// последовательность кадров ввода при одинаковой библиотеке определений
// дает одинаковую последовательность снимков.
//
//  1. часы и пауза;
//  2. намерение игрока из кадра ввода;
//  3. смена оружия и магии;
//  4. решения AI по позициям предыдущих фаз;
//  5. движение всех сущностей;
//  6. истечение таймерных состояний;
//  7. коммиты атак и заклинаний;
//  8. резолюция живых зон атак;
//  9. удаление отлежавших мертвых;
// 10. регенерация энергии.
func (s *Session) Step(in api.InputFrame) {
	s.tick++
	s.now += s.cfg.TickMillis

	if in.ToggleMenu {
		s.paused = !s.paused
		logger.Log.WithFields(logrus.Fields{
			"component": "engine",
			"paused":    s.paused,
		}).Debug("Menu toggled")
	}
	if s.paused {
		return
	}

	s.applyPlayerIntent(in)
	s.applyCycling(in)

	decisions := s.computeDecisions()

	s.applyMovement()
	s.expireTimers()
	s.applyCommits(in, decisions)
	s.resolveAttacks()
	s.reapDead()
	s.regenEnergy()
}

// applyPlayerIntent превращает уровни направлений в намерение движения.
// В таймерном состоянии ввод движения игнорируется полностью.
func (s *Session) applyPlayerIntent(in api.InputFrame) {
	p := s.player
	if !p.State.CanAct() {
		p.Direction = domain.Vec2{}
		return
	}

	var dir domain.Vec2
	if in.Up {
		dir.Y -= 1
	}
	if in.Down {
		dir.Y += 1
	}
	if in.Left {
		dir.X -= 1
	}
	if in.Right {
		dir.X += 1
	}

	p.Direction = dir.Normalized()
	p.Facing = domain.FacingFromDirection(p.Direction, p.Facing)
}

// applyCycling листает активное оружие и магию. Смена закольцована в
// обе стороны и ограничена по частоте, но не прерывает уже
// закоммиченную атаку: выбор применится к следующей.
func (s *Session) applyCycling(in api.InputFrame) {
	if n := len(s.lib.WeaponOrder); n > 0 && s.now >= s.nextWeaponSwitchAt {
		switch {
		case in.WeaponNext:
			s.weaponIdx = (s.weaponIdx + 1) % n
			s.nextWeaponSwitchAt = s.now + s.lib.Player.SwitchCooldownMillis
		case in.WeaponPrev:
			s.weaponIdx = (s.weaponIdx - 1 + n) % n
			s.nextWeaponSwitchAt = s.now + s.lib.Player.SwitchCooldownMillis
		}
	}

	if n := len(s.lib.SpellOrder); n > 0 && s.now >= s.nextSpellSwitchAt {
		switch {
		case in.MagicNext:
			s.spellIdx = (s.spellIdx + 1) % n
			s.nextSpellSwitchAt = s.now + s.lib.Player.SwitchCooldownMillis
		case in.MagicPrev:
			s.spellIdx = (s.spellIdx - 1 + n) % n
			s.nextSpellSwitchAt = s.now + s.lib.Player.SwitchCooldownMillis
		}
	}
}

// computeDecisions опрашивает AI всех врагов и сразу проставляет им
// намерение движения. Коммит атак откладывается до фазы коммитов.
func (s *Session) computeDecisions() map[string]systems.AIDecision {
	decisions := make(map[string]systems.AIDecision, len(s.entities))

	for _, e := range s.entities {
		if e.AI == nil {
			continue
		}

		d := systems.ComputeEnemyDecision(e, s.player, s.now)
		decisions[e.ID] = d

		if d.Action == systems.AIActionPursue && e.State.CanAct() {
			e.Direction = d.Direction
			e.Facing = domain.FacingFromDirection(d.Direction, e.Facing)
		} else {
			e.Direction = domain.Vec2{}
		}
	}

	return decisions
}

// applyMovement двигает всех, у кого есть намерение движения, через
// расчет коллизий. Состояния idle и moving переключаются здесь же.
func (s *Session) applyMovement() {
	dt := float64(s.cfg.TickMillis) / 1000

	for _, e := range s.entities {
		if !e.State.CanAct() {
			continue
		}

		if e.Direction.IsZero() {
			if e.State == domain.StateMoving {
				e.EnterState(domain.StateIdle, s.now, 0)
			}
			continue
		}

		res := systems.CalculateMove(e, e.Direction.Scale(e.Speed*dt), s.obstacles)
		e.Pos = res.Pos

		if e.State == domain.StateIdle {
			e.EnterState(domain.StateMoving, s.now, 0)
		}
	}
}

// expireTimers возвращает сущности из истекших таймерных состояний в idle.
// Выполняется до коммитов: атака возможна на том же шаге, на котором
// истек таймер предыдущей.
func (s *Session) expireTimers() {
	for _, e := range s.entities {
		if e.State.IsTimed() && s.now >= e.StateUntil {
			e.EnterState(domain.StateIdle, s.now, 0)
		}
	}
}

// applyCommits фиксирует атаки и заклинания: игрока из кадра ввода,
// врагов из решений AI этого шага.
func (s *Session) applyCommits(in api.InputFrame, decisions map[string]systems.AIDecision) {
	if in.Attack {
		s.commitPlayerAttack()
	}
	if in.Cast {
		s.commitPlayerCast()
	}

	for _, e := range s.entities {
		d, ok := decisions[e.ID]
		if !ok || d.Action != systems.AIActionAttack {
			continue
		}
		s.commitEnemyAttack(e, d.AimAt)
	}
}

func (s *Session) commitPlayerAttack() {
	p := s.player
	if !p.State.CanAct() || s.now < p.Combat.NextAttackAt {
		return
	}

	weapon := s.ActiveWeapon()
	duration := s.lib.Player.AttackCooldownMillis + weapon.CooldownMillis

	p.EnterState(domain.StateAttacking, s.now, duration)
	p.Combat.NextAttackAt = s.now + duration

	damage := s.model.Value("attack") * weapon.Multiplier
	region := facingRegion(p, weapon.Reach, weapon.Width)

	// Зона удара живет один шаг.
	s.attacks = append(s.attacks, domain.NewAttackInstance(
		uuid.NewString(), p.ID, domain.AttackMelee,
		p.Pos, damage, weapon.Knockback, region, s.now,
	))

	s.pushEvent(domain.EventAttackCommitted, p.ID, "", damage)

	logger.Log.WithFields(logrus.Fields{
		"component": "engine",
		"weapon":    weapon.ID,
		"damage":    damage,
	}).Debug("Player attack committed")
}

func (s *Session) commitPlayerCast() {
	p := s.player
	if !p.State.CanAct() || s.now < s.nextCastAt {
		return
	}

	spell := s.ActiveSpell()
	duration := s.lib.Player.AttackCooldownMillis + spell.CooldownMillis

	switch spell.Kind {
	case defs.SpellRestore:
		// Лечение впустую не кастуется: нужен недобор здоровья и энергия.
		if p.Stats.HP >= p.Stats.MaxHP || !p.Stats.HasEnergy(spell.Cost) {
			return
		}
		p.Stats.SpendEnergy(spell.Cost)
		p.Stats.Heal(spell.Strength)

	case defs.SpellOffense:
		if !p.Stats.HasEnergy(spell.Cost) {
			return
		}
		p.Stats.SpendEnergy(spell.Cost)

		damage := s.model.Value("magic") * spell.Multiplier
		region := facingRegion(p, spell.Reach, spell.Width)

		s.attacks = append(s.attacks, domain.NewAttackInstance(
			uuid.NewString(), p.ID, domain.AttackSpell,
			p.Pos, damage, spell.Knockback, region,
			s.now+s.lib.Timing.SpellLifetimeMillis,
		))

	default:
		return
	}

	p.EnterState(domain.StateCasting, s.now, duration)
	s.nextCastAt = s.now + duration

	s.pushEvent(domain.EventSpellCast, p.ID, "", spell.Cost)

	logger.Log.WithFields(logrus.Fields{
		"component": "engine",
		"spell":     spell.ID,
	}).Debug("Spell cast committed")
}

// commitEnemyAttack фиксирует атаку врага в упор. Зона центрирована на
// точке прицеливания, снятой AI на этом же шаге.
func (s *Session) commitEnemyAttack(e *domain.Entity, aimAt domain.Vec2) {
	if !e.State.CanAct() || e.Combat == nil {
		return
	}

	def, ok := s.lib.Enemies[e.Kind]
	if !ok {
		return
	}

	e.Facing = domain.FacingFromDirection(aimAt.Sub(e.Pos).Normalized(), e.Facing)
	e.EnterState(domain.StateAttacking, s.now, s.lib.Timing.EnemyAttackMillis)
	e.Combat.NextAttackAt = s.now + def.CooldownMillis

	region := domain.RectAround(aimAt, e.Combat.Reach, e.Combat.ReachWidth)

	s.attacks = append(s.attacks, domain.NewAttackInstance(
		uuid.NewString(), e.ID, domain.AttackTouch,
		e.Pos, e.Stats.AttackPower, e.Combat.Knockback, region, s.now,
	))

	s.pushEvent(domain.EventAttackCommitted, e.ID, "", e.Stats.AttackPower)
}

// resolveAttacks прогоняет все живые зоны атак через резолвер боя и
// отбрасывает истекшие. Истечение проверяется до резолюции: зона
// ближнего боя срабатывает ровно на шаге коммита.
func (s *Session) resolveAttacks() {
	live := s.attacks[:0]

	for _, atk := range s.attacks {
		if atk.Expired(s.now) {
			continue
		}
		for _, h := range systems.ResolveAttack(atk, s.entities, s.now) {
			s.applyHit(atk, h)
		}
		live = append(live, atk)
	}

	for i := len(live); i < len(s.attacks); i++ {
		s.attacks[i] = nil
	}
	s.attacks = live
}

// applyHit переводит результат резолюции в изменения состояния мира:
// события, смерть или hurt с неуязвимостью и отбрасыванием.
func (s *Session) applyHit(atk *domain.AttackInstance, h systems.Hit) {
	d := h.Defender

	s.pushEvent(domain.EventHitLanded, atk.AttackerID, d.ID, h.Damage)

	if h.Died {
		d.EnterState(domain.StateDead, s.now, 0)
		d.Direction = domain.Vec2{}

		if !d.IsPlayer() {
			d.RemoveAt = s.now + s.lib.Timing.DeadLingerMillis
			s.model.AddExperience(d.Stats.Exp)
			s.pushEvent(domain.EventEnemyDied, d.ID, atk.AttackerID, d.Stats.Exp)
		}

		logger.Log.WithFields(logrus.Fields{
			"component": "engine",
			"entity_id": d.ID,
			"kind":      d.Kind,
		}).Info("Entity died")
		return
	}

	d.EnterState(domain.StateHurt, s.now, s.lib.Timing.HurtMillis)
	if d.Combat != nil {
		d.InvulnerableUntil = s.now + d.Combat.InvulnerabilityMillis
	}

	// Отбрасывание мгновенное, но проходит через расчет коллизий:
	// сквозь стену защитника не выталкивает.
	if !h.Knockback.IsZero() {
		res := systems.CalculateMove(d, h.Knockback, s.obstacles)
		d.Pos = res.Pos
	}
}

// reapDead удаляет врагов, отлежавших свой интервал после смерти.
// Игрок из живого набора не удаляется никогда.
func (s *Session) reapDead() {
	var expired []string
	for _, e := range s.entities {
		if e.IsPlayer() || !e.IsDead() {
			continue
		}
		if e.RemoveAt != 0 && s.now >= e.RemoveAt {
			expired = append(expired, e.ID)
		}
	}
	for _, id := range expired {
		s.RemoveEntity(id)
	}
}

// regenEnergy восстанавливает энергию игрока пропорционально силе магии.
func (s *Session) regenEnergy() {
	if s.player.IsDead() {
		return
	}
	rate := 0.01 * s.model.Value("magic") * 60 / 1000
	s.player.Stats.RestoreEnergy(rate * float64(s.cfg.TickMillis))
}

// facingRegion строит зону удара перед сущностью: от края хитбокса на
// глубину reach по направлению взгляда, шириной width поперек.
func facingRegion(e *domain.Entity, reach, width float64) domain.Rect {
	hb := e.Hitbox()

	switch e.Facing {
	case domain.FacingUp:
		return domain.Rect{X: e.Pos.X - width/2, Y: hb.Y - reach, W: width, H: reach}
	case domain.FacingDown:
		return domain.Rect{X: e.Pos.X - width/2, Y: hb.Bottom(), W: width, H: reach}
	case domain.FacingLeft:
		return domain.Rect{X: hb.X - reach, Y: e.Pos.Y - width/2, W: reach, H: width}
	default:
		return domain.Rect{X: hb.Right(), Y: e.Pos.Y - width/2, W: reach, H: width}
	}
}
