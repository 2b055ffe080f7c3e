package domain

// Тип сущности. Игрок один, враги определяются идентификатором вида из defs.
const KindPlayer = "player"

// --- КОМПОНЕНТЫ ---

// CombatComponent - боевые параметры и таймеры сущности.
type CombatComponent struct {
	// NextAttackAt - момент (мс симуляции), когда кулдаун атаки истечет.
	NextAttackAt int64

	// Зона ближней атаки: глубина по направлению взгляда и ширина поперек.
	Reach      float64
	ReachWidth float64

	// Knockback - базовая величина отбрасывания этой атакой.
	Knockback float64

	// InvulnerabilityMillis - окно неуязвимости после полученного удара.
	InvulnerabilityMillis int64
}

// AIComponent - восприятие и память врага. У игрока отсутствует (nil).
type AIComponent struct {
	PerceptionRadius float64
	AttackRadius     float64

	// LastKnown - последняя зафиксированная позиция цели.
	LastKnown Vec2
	HasTarget bool
}

// --- СУЩНОСТЬ ---

// Entity - единица симуляции. Игрок и враги используют одну форму,
// различаясь тегом Kind и наличием AI-компонента.
type Entity struct {
	ID   string
	Kind string

	// Pos - центр сущности в мировых координатах.
	Pos Vec2
	// Direction - намерение движения на текущий шаг (единичный или нулевой).
	Direction Vec2
	Facing    Facing
	// Speed - скорость в пикселях в секунду.
	Speed float64

	// Хитбокс (зона поражения) и коллизионный бокс (обычно меньше).
	HitboxW, HitboxH float64
	BodyW, BodyH     float64

	State      EntityState
	StateSince int64
	// StateUntil - момент истечения таймерного состояния (attacking/casting/hurt).
	StateUntil int64

	InvulnerableUntil int64
	// RemoveAt - момент удаления из живого набора после смерти. 0 - не назначено.
	RemoveAt int64

	Stats  *StatsComponent
	Combat *CombatComponent
	AI     *AIComponent
}

// Hitbox возвращает зону поражения сущности вокруг её центра.
func (e *Entity) Hitbox() Rect {
	return RectAround(e.Pos, e.HitboxW, e.HitboxH)
}

// Body возвращает коллизионный бокс сущности вокруг её центра.
func (e *Entity) Body() Rect {
	return RectAround(e.Pos, e.BodyW, e.BodyH)
}

func (e *Entity) IsPlayer() bool {
	return e.Kind == KindPlayer
}

func (e *Entity) IsDead() bool {
	return e.State == StateDead
}

// Invulnerable проверяет, находится ли сущность в окне неуязвимости.
func (e *Entity) Invulnerable(now int64) bool {
	return now < e.InvulnerableUntil
}

// EnterState переводит сущность в новое состояние.
// Состояние dead терминально: из него выхода нет.
func (e *Entity) EnterState(st EntityState, now, durationMillis int64) {
	if e.State == StateDead {
		return
	}
	e.State = st
	e.StateSince = now
	e.StateUntil = now + durationMillis
}
