package defs

// Пакет defs содержит библиотеки определений: оружие, заклинания, виды
// врагов, базовые параметры игрока и разметку зон. Числовой баланс - это
// данные, а не код: он грузится из YAML и имеет встроенные значения по
// умолчанию.

// WeaponDef описывает одно оружие ближнего боя.
type WeaponDef struct {
	ID string `yaml:"id"`

	// Multiplier - множитель к силе атаки игрока.
	Multiplier float64 `yaml:"multiplier"`

	// CooldownMillis добавляется к базовому кулдауну атаки игрока.
	CooldownMillis int64 `yaml:"cooldown_ms"`

	// Зона удара: глубина по направлению взгляда и ширина поперек.
	Reach float64 `yaml:"reach"`
	Width float64 `yaml:"width"`

	Knockback float64 `yaml:"knockback"`
}

// Тип заклинания: атакующее или восстанавливающее.
const (
	SpellOffense = "offense"
	SpellRestore = "restore"
)

// SpellDef описывает одно заклинание.
type SpellDef struct {
	ID   string `yaml:"id"`
	Kind string `yaml:"kind"`

	// Multiplier - множитель к силе магии (для атакующих).
	Multiplier float64 `yaml:"multiplier"`

	// Strength - восстанавливаемое здоровье (для восстанавливающих).
	Strength float64 `yaml:"strength"`

	// Cost - стоимость в ресурсе магии. Списывается при коммите.
	Cost float64 `yaml:"cost"`

	CooldownMillis int64 `yaml:"cooldown_ms"`

	// Зона поражения атакующего заклинания вдоль направления взгляда.
	Reach float64 `yaml:"reach"`
	Width float64 `yaml:"width"`

	Knockback float64 `yaml:"knockback"`
}

// EnemyDef описывает вид врага. Враги не прокачиваются: их
// характеристики фиксированы на весь сеанс.
type EnemyDef struct {
	ID string `yaml:"id"`

	Health float64 `yaml:"health"`
	Exp    float64 `yaml:"exp"`
	Damage float64 `yaml:"damage"`

	// Speed в пикселях за кадр при 60 Гц, как в исходных данных.
	Speed float64 `yaml:"speed"`

	// Resistance - множитель отбрасывания при получении удара.
	Resistance float64 `yaml:"resistance"`

	AttackRadius float64 `yaml:"attack_radius"`
	NoticeRadius float64 `yaml:"notice_radius"`

	// Зона атаки в упор.
	Reach float64 `yaml:"reach"`
	Width float64 `yaml:"width"`

	Knockback      float64 `yaml:"knockback"`
	CooldownMillis int64   `yaml:"cooldown_ms"`

	InvulnerabilityMillis int64 `yaml:"invulnerability_ms"`

	HitboxW float64 `yaml:"hitbox_w"`
	HitboxH float64 `yaml:"hitbox_h"`
	BodyW   float64 `yaml:"body_w"`
	BodyH   float64 `yaml:"body_h"`
}

// AttributeDef описывает один прокачиваемый атрибут игрока.
type AttributeDef struct {
	Name string `yaml:"name"`

	// Base - значение на уровне 1. Max - потолок значения.
	Base float64 `yaml:"base"`
	Max  float64 `yaml:"max"`

	MaxLevel int `yaml:"max_level"`

	// BaseCost - стоимость перехода с уровня 1 на уровень 2.
	BaseCost float64 `yaml:"base_cost"`
}

// PlayerDef описывает базовые параметры игрока.
type PlayerDef struct {
	Attributes []AttributeDef `yaml:"attributes"`

	// AttackCooldownMillis - базовый кулдаун атаки, к нему добавляется
	// кулдаун оружия или заклинания.
	AttackCooldownMillis int64 `yaml:"attack_cooldown_ms"`

	// SwitchCooldownMillis ограничивает частоту смены оружия/магии.
	SwitchCooldownMillis int64 `yaml:"switch_cooldown_ms"`

	InvulnerabilityMillis int64 `yaml:"invulnerability_ms"`

	HitboxW float64 `yaml:"hitbox_w"`
	HitboxH float64 `yaml:"hitbox_h"`
	BodyW   float64 `yaml:"body_w"`
	BodyH   float64 `yaml:"body_h"`
}

// SpawnDef - начальное размещение врага в зоне.
type SpawnDef struct {
	Kind string  `yaml:"kind"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

// ObstacleDef - статическое препятствие (непроходимый прямоугольник).
type ObstacleDef struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// AreaDef - разметка одной игровой зоны.
type AreaDef struct {
	ID string `yaml:"id"`

	PlayerSpawnX float64 `yaml:"player_spawn_x"`
	PlayerSpawnY float64 `yaml:"player_spawn_y"`

	Obstacles []ObstacleDef `yaml:"obstacles"`
	Spawns    []SpawnDef    `yaml:"spawns"`
}

// TimingDef - общие длительности состояний.
type TimingDef struct {
	// HurtMillis - длительность состояния hurt.
	HurtMillis int64 `yaml:"hurt_ms"`
	// EnemyAttackMillis - длительность состояния attacking у врага.
	EnemyAttackMillis int64 `yaml:"enemy_attack_ms"`
	// DeadLingerMillis - задержка перед удалением мертвого врага.
	DeadLingerMillis int64 `yaml:"dead_linger_ms"`
	// SpellLifetimeMillis - время жизни зоны атакующего заклинания.
	SpellLifetimeMillis int64 `yaml:"spell_lifetime_ms"`
}

// Library - полный набор определений, которым питается симуляция.
type Library struct {
	Weapons     map[string]WeaponDef
	WeaponOrder []string

	Spells     map[string]SpellDef
	SpellOrder []string

	Enemies map[string]EnemyDef

	Player PlayerDef
	Timing TimingDef

	Areas map[string]AreaDef
}

// Weapon возвращает оружие по позиции в фиксированном порядке.
func (l *Library) Weapon(index int) WeaponDef {
	return l.Weapons[l.WeaponOrder[index]]
}

// Spell возвращает заклинание по позиции в фиксированном порядке.
func (l *Library) Spell(index int) SpellDef {
	return l.Spells[l.SpellOrder[index]]
}
