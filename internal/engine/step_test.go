package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"terramythica-server/internal/defs"
	"terramythica-server/internal/domain"
	"terramythica-server/pkg/api"
)

// steps прогоняет n шагов с одним и тем же кадром ввода.
func steps(s *Session, n int, frame api.InputFrame) {
	for i := 0; i < n; i++ {
		s.Step(frame)
	}
}

func eventTypes(events []api.GameEvent) []string {
	out := make([]string, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.Type)
	}
	return out
}

func TestPlayerMeleeAttack(t *testing.T) {
	s := newSessionForTest(t, testArena())
	s.weaponIdx = 4 // sai: multiplier 1.0, knockback 16

	enemy := spawnEnemy(s, "squid", domain.Vec2{X: 260, Y: 200}, true)
	s.player.Facing = domain.FacingRight

	s.Step(api.InputFrame{Attack: true})

	// Сила атаки 10, множитель 1.0
	require.Equal(t, 90.0, enemy.Stats.HP)
	require.Equal(t, domain.StateHurt, enemy.State)
	require.Equal(t, int64(16+300), enemy.InvulnerableUntil)

	// Отбрасывание: направление от игрока, величина 16 * сопротивление 3
	require.InDelta(t, 260+48, enemy.Pos.X, 1e-9)
	require.InDelta(t, 200, enemy.Pos.Y, 1e-9)

	// Игрок заперт в attacking на базовый кулдаун + кулдаун оружия
	require.Equal(t, domain.StateAttacking, s.player.State)
	require.Equal(t, int64(16+400+80), s.player.StateUntil)

	require.Equal(t, []string{"ATTACK_COMMITTED", "HIT_LANDED"}, eventTypes(s.DrainEvents()))
}

func TestKnockbackStopsAtWall(t *testing.T) {
	// Стена сразу за врагом: отбрасывание - один большой мгновенный
	// сдвиг, но сквозь стену оно выталкивать не должно.
	s := newSessionForTest(t, testArena(defs.ObstacleDef{X: 300, Y: 100, W: 32, H: 200}))
	s.weaponIdx = 1 // lance: knockback 36

	enemy := spawnEnemy(s, "squid", domain.Vec2{X: 265, Y: 200}, true)
	s.player.Facing = domain.FacingRight

	s.Step(api.InputFrame{Attack: true})

	require.Equal(t, 70.0, enemy.Stats.HP, "lance multiplier 3.0 against power 10")
	require.Equal(t, domain.StateHurt, enemy.State)

	// 36 * сопротивление 3 = 108: без стены враг улетел бы на x=373.
	// Коллизионный бокс 52 шириной прижимается к стене: 300 - 26.
	require.InDelta(t, 274, enemy.Pos.X, 1e-9)
	require.Less(t, enemy.Pos.X, 300.0)
}

func TestMeleeRegionRespectsFacing(t *testing.T) {
	s := newSessionForTest(t, testArena())
	s.weaponIdx = 4

	// Враг справа, игрок смотрит влево: взмах бьет в пустоту.
	enemy := spawnEnemy(s, "squid", domain.Vec2{X: 260, Y: 200}, true)
	s.player.Facing = domain.FacingLeft

	s.Step(api.InputFrame{Attack: true})

	require.Equal(t, 100.0, enemy.Stats.HP)
	require.Equal(t, []string{"ATTACK_COMMITTED"}, eventTypes(s.DrainEvents()))
}

func TestAttackCooldownBlocksSpam(t *testing.T) {
	s := newSessionForTest(t, testArena())
	s.weaponIdx = 4

	enemy := spawnEnemy(s, "squid", domain.Vec2{X: 260, Y: 200}, true)
	s.player.Facing = domain.FacingRight

	s.Step(api.InputFrame{Attack: true})
	require.Equal(t, 90.0, enemy.Stats.HP)

	// Пока не истек таймер атаки, новые коммиты игнорируются.
	steps(s, 10, api.InputFrame{Attack: true})
	require.Equal(t, 90.0, enemy.Stats.HP)

	// 400 + 80 мс = 30 шагов. Враг давно вышел из неуязвимости.
	steps(s, 25, api.InputFrame{})
	s.Step(api.InputFrame{Attack: true})
	require.Equal(t, 80.0, enemy.Stats.HP)
}

func TestEnemyDeath(t *testing.T) {
	s := newSessionForTest(t, testArena())
	s.weaponIdx = 4

	enemy := spawnEnemy(s, "squid", domain.Vec2{X: 260, Y: 200}, true)
	enemy.Stats.HP = 10
	s.player.Facing = domain.FacingRight

	s.Step(api.InputFrame{Attack: true})

	require.Equal(t, domain.StateDead, enemy.State)
	require.Equal(t, 0.0, enemy.Stats.HP)
	require.Equal(t, int64(16+400), enemy.RemoveAt)
	require.Equal(t, 100.0, s.model.Experience(), "squid grants 100 exp")

	require.Equal(t,
		[]string{"ATTACK_COMMITTED", "HIT_LANDED", "ENEMY_DIED"},
		eventTypes(s.DrainEvents()))

	// Труп лежит до истечения интервала, затем исчезает.
	steps(s, 24, api.InputFrame{})
	require.Len(t, s.entities, 2)
	require.Equal(t, domain.StateDead, enemy.State)

	s.Step(api.InputFrame{})
	require.Len(t, s.entities, 1)
	require.Nil(t, s.Entity(enemy.ID))
}

func TestDeadIsTerminal(t *testing.T) {
	s := newSessionForTest(t, testArena())

	enemy := spawnEnemy(s, "squid", domain.Vec2{X: 260, Y: 200}, true)
	enemy.Stats.HP = 1
	s.player.Facing = domain.FacingRight
	s.weaponIdx = 4

	s.Step(api.InputFrame{Attack: true})
	require.Equal(t, domain.StateDead, enemy.State)

	// Никакие переходы из dead невозможны.
	enemy.EnterState(domain.StateIdle, s.now, 0)
	require.Equal(t, domain.StateDead, enemy.State)
}

func TestPlayerDeath(t *testing.T) {
	s := newSessionForTest(t, testArena())
	s.player.Stats.HP = 5

	// Сквид вплотную: радиус атаки 80, кулдаун готов.
	spawnEnemy(s, "squid", domain.Vec2{X: 240, Y: 200}, false)

	s.Step(api.InputFrame{})

	p := s.player
	require.Equal(t, domain.StateDead, p.State)
	require.Equal(t, 0.0, p.Stats.HP)
	require.Equal(t, int64(0), p.RemoveAt, "player is never scheduled for removal")

	// Мертвый игрок остается в наборе и не реагирует на ввод.
	pos := p.Pos
	steps(s, 60, api.InputFrame{Right: true, Attack: true})
	require.Equal(t, domain.StateDead, p.State)
	require.Equal(t, pos, p.Pos)
	require.Len(t, s.entities, 2)
}

func TestMovementAndFacing(t *testing.T) {
	s := newSessionForTest(t, testArena())
	p := s.player

	s.Step(api.InputFrame{Right: true})
	require.InDelta(t, 200+5.76, p.Pos.X, 1e-9, "360 px/s over 16 ms")
	require.Equal(t, domain.FacingRight, p.Facing)
	require.Equal(t, domain.StateMoving, p.State)

	// Диагональ нормализована: по каждой оси меньше, чем по прямой.
	before := p.Pos
	s.Step(api.InputFrame{Right: true, Down: true})
	require.InDelta(t, before.X+5.76/math.Sqrt2, p.Pos.X, 1e-9)
	require.InDelta(t, before.Y+5.76/math.Sqrt2, p.Pos.Y, 1e-9)
	require.Equal(t, domain.FacingRight, p.Facing, "horizontal wins on diagonals")

	// Отпустили все: idle, взгляд сохраняется.
	s.Step(api.InputFrame{})
	require.Equal(t, domain.StateIdle, p.State)
	require.Equal(t, domain.FacingRight, p.Facing)
}

func TestMovementSlidesAlongWall(t *testing.T) {
	// Стена справа: x от 250, во всю высоту теста.
	s := newSessionForTest(t, testArena(defs.ObstacleDef{X: 250, Y: 100, W: 32, H: 400}))
	p := s.player

	steps(s, 20, api.InputFrame{Right: true, Down: true})

	// Коллизионный бокс 52 шириной: центр прижат к 250 - 26.
	require.InDelta(t, 224, p.Pos.X, 1e-9)
	require.Greater(t, p.Pos.Y, 270.0, "movement keeps sliding along the free axis")
}

func TestWeaponCycling(t *testing.T) {
	s := newSessionForTest(t, testArena())
	require.Equal(t, "sword", s.ActiveWeapon().ID)

	s.Step(api.InputFrame{WeaponNext: true})
	require.Equal(t, "lance", s.ActiveWeapon().ID)

	// Кулдаун смены 200 мс: мгновенный повтор игнорируется.
	s.Step(api.InputFrame{WeaponNext: true})
	require.Equal(t, "lance", s.ActiveWeapon().ID)

	steps(s, 12, api.InputFrame{})
	s.Step(api.InputFrame{WeaponNext: true})
	require.Equal(t, "axe", s.ActiveWeapon().ID)

	// Листание назад закольцовано.
	steps(s, 13, api.InputFrame{})
	s.Step(api.InputFrame{WeaponPrev: true})
	steps(s, 13, api.InputFrame{})
	s.Step(api.InputFrame{WeaponPrev: true})
	steps(s, 13, api.InputFrame{})
	s.Step(api.InputFrame{WeaponPrev: true})
	require.Equal(t, "sai", s.ActiveWeapon().ID, "prev from the first wraps to the last")
}

func TestMagicCycling(t *testing.T) {
	s := newSessionForTest(t, testArena())
	require.Equal(t, "flame", s.ActiveSpell().ID)

	s.Step(api.InputFrame{MagicNext: true})
	require.Equal(t, "heal", s.ActiveSpell().ID)

	steps(s, 13, api.InputFrame{})
	s.Step(api.InputFrame{MagicNext: true})
	require.Equal(t, "flame", s.ActiveSpell().ID, "cycle wraps around")
}

func TestFlameSpell(t *testing.T) {
	s := newSessionForTest(t, testArena())
	s.player.Facing = domain.FacingRight

	enemy := spawnEnemy(s, "squid", domain.Vec2{X: 400, Y: 200}, true)

	s.Step(api.InputFrame{Cast: true})

	// Сила магии 4, множитель 1.25
	require.Equal(t, 95.0, enemy.Stats.HP)
	require.Equal(t, domain.StateCasting, s.player.State)
	require.InDelta(t, 40.0, s.player.Stats.Energy, 0.1, "cost 20 deducted on commit")

	require.Equal(t, []string{"SPELL_CAST", "HIT_LANDED"}, eventTypes(s.DrainEvents()))

	// Зона заклинания живет дольше одного шага.
	require.Len(t, s.attacks, 1)
	steps(s, 13, api.InputFrame{})
	require.Empty(t, s.attacks, "spell region expired")
}

func TestFlameSpellRequiresEnergy(t *testing.T) {
	s := newSessionForTest(t, testArena())
	s.player.Stats.Energy = 5

	s.Step(api.InputFrame{Cast: true})

	require.Equal(t, domain.StateIdle, s.player.State)
	require.Empty(t, s.attacks)
	require.Empty(t, s.DrainEvents())
}

func TestHealSpell(t *testing.T) {
	s := newSessionForTest(t, testArena())
	s.spellIdx = 1 // heal
	s.player.Stats.HP = 50

	s.Step(api.InputFrame{Cast: true})

	require.Equal(t, 70.0, s.player.Stats.HP)
	require.InDelta(t, 50.0, s.player.Stats.Energy, 0.1)
	require.Equal(t, domain.StateCasting, s.player.State)
}

func TestHealSpellClampsAtMaxHealth(t *testing.T) {
	s := newSessionForTest(t, testArena())
	s.spellIdx = 1
	s.player.Stats.HP = 95

	s.Step(api.InputFrame{Cast: true})

	// Сила лечения 20 упирается в потолок здоровья.
	require.Equal(t, 100.0, s.player.Stats.HP)
	require.InDelta(t, 50.0, s.player.Stats.Energy, 0.1)
}

func TestHealSpellAtFullHealth(t *testing.T) {
	s := newSessionForTest(t, testArena())
	s.spellIdx = 1

	s.Step(api.InputFrame{Cast: true})

	// Лечение впустую не кастуется и энергию не тратит.
	require.Equal(t, domain.StateIdle, s.player.State)
	require.InDelta(t, 60.0, s.player.Stats.Energy, 0.1)
}

func TestEnergyRegen(t *testing.T) {
	s := newSessionForTest(t, testArena())
	s.player.Stats.Energy = 0

	steps(s, 10, api.InputFrame{})

	// 0.01 * сила магии 4 за кадр 60 Гц
	require.InDelta(t, 10*0.01*4*60.0/1000*16, s.player.Stats.Energy, 1e-9)
}

func TestEnemyPursuit(t *testing.T) {
	s := newSessionForTest(t, testArena())
	enemy := spawnEnemy(s, "squid", domain.Vec2{X: 500, Y: 200}, false)

	s.Step(api.InputFrame{})

	// Дистанция 300 внутри радиуса восприятия 360: идет к игроку.
	require.InDelta(t, 500-2.88, enemy.Pos.X, 1e-9, "180 px/s over 16 ms")
	require.Equal(t, domain.StateMoving, enemy.State)
	require.Equal(t, domain.FacingLeft, enemy.Facing)
	require.True(t, enemy.AI.HasTarget)
}

func TestEnemyOutOfPerception(t *testing.T) {
	s := newSessionForTest(t, testArena())
	enemy := spawnEnemy(s, "squid", domain.Vec2{X: 600, Y: 200}, false)

	steps(s, 5, api.InputFrame{})

	// Дистанция 400 за радиусом восприятия 360: стоит на месте.
	require.Equal(t, domain.Vec2{X: 600, Y: 200}, enemy.Pos)
	require.Equal(t, domain.StateIdle, enemy.State)
	require.False(t, enemy.AI.HasTarget)
}

func TestEnemyAttacksPlayer(t *testing.T) {
	s := newSessionForTest(t, testArena())
	enemy := spawnEnemy(s, "squid", domain.Vec2{X: 240, Y: 200}, false)

	s.Step(api.InputFrame{})

	p := s.player
	require.Equal(t, 90.0, p.Stats.HP, "squid hits for 10")
	require.Equal(t, domain.StateHurt, p.State)
	require.Equal(t, int64(16+500), p.InvulnerableUntil)

	require.Equal(t, domain.StateAttacking, enemy.State)
	require.Equal(t, int64(16+600), enemy.Combat.NextAttackAt)
}

func TestMenuPause(t *testing.T) {
	s := newSessionForTest(t, testArena())
	enemy := spawnEnemy(s, "squid", domain.Vec2{X: 500, Y: 200}, false)

	s.Step(api.InputFrame{ToggleMenu: true})
	require.True(t, s.Paused())

	// Мир заморожен: ни движение игрока, ни AI не работают.
	playerPos := s.player.Pos
	enemyPos := enemy.Pos
	steps(s, 10, api.InputFrame{Right: true, Attack: true})

	require.Equal(t, playerPos, s.player.Pos)
	require.Equal(t, enemyPos, enemy.Pos)
	require.Equal(t, domain.StateIdle, s.player.State)

	// Часы продолжают идти, снимок помечен паузой.
	snap := s.BuildSnapshot()
	require.True(t, snap.Paused)
	require.Equal(t, int64(11), snap.Tick)

	// Прокачка на паузе работает: меню и есть пауза.
	s.model.AddExperience(100)
	s.Upgrade("health")
	require.Equal(t, 120.0, s.player.Stats.MaxHP)

	s.Step(api.InputFrame{ToggleMenu: true})
	require.False(t, s.Paused())

	s.Step(api.InputFrame{Right: true})
	require.Greater(t, s.player.Pos.X, playerPos.X)
}

// entityFrame - снимок сущности без ID: идентификаторы уникальны для
// сеанса, а траектории при одинаковом вводе обязаны совпадать.
type entityFrame struct {
	Kind   string
	X, Y   float64
	Facing string
	State  string
	HP     float64
}

func stripSnapshot(snap *api.Snapshot) []entityFrame {
	out := make([]entityFrame, 0, len(snap.Entities))
	for _, e := range snap.Entities {
		out = append(out, entityFrame{
			Kind:   e.Kind,
			X:      e.X,
			Y:      e.Y,
			Facing: e.Facing,
			State:  e.State,
			HP:     e.HP,
		})
	}
	return out
}

func TestDeterminism(t *testing.T) {
	newOverworld := func() *Session {
		s, err := NewSession(defs.Default(), NewConfig())
		require.NoError(t, err)
		return s
	}

	script := make([]api.InputFrame, 0, 120)
	for i := 0; i < 120; i++ {
		var f api.InputFrame
		switch {
		case i < 30:
			f.Right = true
			f.Down = true
		case i == 30:
			f.Attack = true
		case i < 60:
			f.Down = true
		case i == 60:
			f.Cast = true
		case i == 61:
			f.WeaponNext = true
		case i < 100:
			f.Left = true
		case i == 100:
			f.ToggleMenu = true
		}
		script = append(script, f)
	}

	a := newOverworld()
	b := newOverworld()

	for i, frame := range script {
		a.Step(frame)
		b.Step(frame)

		snapA := a.BuildSnapshot()
		snapB := b.BuildSnapshot()

		require.Equal(t, stripSnapshot(snapA), stripSnapshot(snapB), "tick %d diverged", i)
		require.Equal(t, snapA.Player, snapB.Player, "tick %d player view diverged", i)
		require.Equal(t, eventTypes(a.DrainEvents()), eventTypes(b.DrainEvents()), "tick %d events diverged", i)
	}
}
