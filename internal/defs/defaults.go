package defs

// Default возвращает встроенную библиотеку баланса.
// Числа повторяют исходные таблицы игры; это рабочие значения по
// умолчанию, а не контракт - YAML-файл может их заменить целиком.
func Default() *Library {
	weapons := []WeaponDef{
		{ID: "sword", Multiplier: 1.5, CooldownMillis: 100, Reach: 64, Width: 48, Knockback: 28},
		{ID: "lance", Multiplier: 3.0, CooldownMillis: 400, Reach: 96, Width: 40, Knockback: 36},
		{ID: "axe", Multiplier: 2.0, CooldownMillis: 300, Reach: 56, Width: 56, Knockback: 32},
		{ID: "rapier", Multiplier: 0.8, CooldownMillis: 50, Reach: 80, Width: 24, Knockback: 16},
		{ID: "sai", Multiplier: 1.0, CooldownMillis: 80, Reach: 48, Width: 32, Knockback: 16},
	}

	spells := []SpellDef{
		{ID: "flame", Kind: SpellOffense, Multiplier: 1.25, Cost: 20, CooldownMillis: 600, Reach: 320, Width: 64, Knockback: 40},
		{ID: "heal", Kind: SpellRestore, Strength: 20, Cost: 10, CooldownMillis: 400},
	}

	enemies := []EnemyDef{
		{ID: "squid", Health: 100, Exp: 100, Damage: 10, Speed: 3, Resistance: 3,
			AttackRadius: 80, NoticeRadius: 360},
		{ID: "raccoon", Health: 300, Exp: 250, Damage: 40, Speed: 2, Resistance: 3,
			AttackRadius: 120, NoticeRadius: 400},
		{ID: "spirit", Health: 100, Exp: 110, Damage: 8, Speed: 4, Resistance: 3,
			AttackRadius: 60, NoticeRadius: 350},
		{ID: "bamboo", Health: 70, Exp: 120, Damage: 6, Speed: 3, Resistance: 3,
			AttackRadius: 50, NoticeRadius: 300},
	}

	lib := &Library{
		Weapons: make(map[string]WeaponDef),
		Spells:  make(map[string]SpellDef),
		Enemies: make(map[string]EnemyDef),
		Areas:   make(map[string]AreaDef),
		Player: PlayerDef{
			Attributes: []AttributeDef{
				{Name: "health", Base: 100, Max: 300, MaxLevel: 7, BaseCost: 100},
				{Name: "energy", Base: 60, Max: 140, MaxLevel: 6, BaseCost: 100},
				{Name: "attack", Base: 10, Max: 20, MaxLevel: 5, BaseCost: 100},
				{Name: "magic", Base: 4, Max: 10, MaxLevel: 7, BaseCost: 100},
				{Name: "speed", Base: 6, Max: 10, MaxLevel: 4, BaseCost: 100},
			},
			AttackCooldownMillis:  400,
			SwitchCooldownMillis:  200,
			InvulnerabilityMillis: 500,
			HitboxW:               64, HitboxH: 64,
			BodyW: 52, BodyH: 38,
		},
		Timing: TimingDef{
			HurtMillis:          200,
			EnemyAttackMillis:   400,
			DeadLingerMillis:    400,
			SpellLifetimeMillis: 200,
		},
	}

	for _, w := range weapons {
		lib.Weapons[w.ID] = w
		lib.WeaponOrder = append(lib.WeaponOrder, w.ID)
	}
	for _, sp := range spells {
		lib.Spells[sp.ID] = sp
		lib.SpellOrder = append(lib.SpellOrder, sp.ID)
	}
	for _, e := range enemies {
		lib.Enemies[e.ID] = fillEnemyDefaults(e)
	}

	lib.Areas["overworld"] = AreaDef{
		ID:           "overworld",
		PlayerSpawnX: 200, PlayerSpawnY: 200,
		Obstacles: []ObstacleDef{
			// Рамка зоны
			{X: 0, Y: 0, W: 1280, H: 32},
			{X: 0, Y: 736, W: 1280, H: 32},
			{X: 0, Y: 32, W: 32, H: 704},
			{X: 1248, Y: 32, W: 32, H: 704},
			// Внутренние блоки
			{X: 512, Y: 256, W: 128, H: 64},
			{X: 832, Y: 448, W: 64, H: 192},
		},
		Spawns: []SpawnDef{
			{Kind: "squid", X: 480, Y: 480},
			{Kind: "bamboo", X: 960, Y: 288},
			{Kind: "spirit", X: 640, Y: 640},
			{Kind: "raccoon", X: 1100, Y: 620},
		},
	}

	return lib
}

// fillEnemyDefaults заполняет поля вида врага, общие для всех видов,
// если YAML их не переопределил.
func fillEnemyDefaults(e EnemyDef) EnemyDef {
	if e.Reach == 0 {
		e.Reach = 48
	}
	if e.Width == 0 {
		e.Width = 48
	}
	if e.Knockback == 0 {
		e.Knockback = 24
	}
	if e.CooldownMillis == 0 {
		e.CooldownMillis = 600
	}
	if e.InvulnerabilityMillis == 0 {
		e.InvulnerabilityMillis = 300
	}
	if e.HitboxW == 0 {
		e.HitboxW = 64
	}
	if e.HitboxH == 0 {
		e.HitboxH = 64
	}
	if e.BodyW == 0 {
		e.BodyW = 52
	}
	if e.BodyH == 0 {
		e.BodyH = 44
	}
	return e
}
