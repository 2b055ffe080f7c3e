package domain

// AttackKind - Внутренний числовой идентификатор типа атаки
type AttackKind uint8

const (
	AttackMelee AttackKind = iota
	AttackSpell
	AttackTouch // атака врага в упор
)

var attackKindToString = map[AttackKind]string{
	AttackMelee: "MELEE",
	AttackSpell: "SPELL",
	AttackTouch: "TOUCH",
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (k AttackKind) String() string {
	if val, ok := attackKindToString[k]; ok {
		return val
	}
	return "MELEE"
}

// AttackInstance - эфемерная запись одного закоммиченного удара или
// заклинания. Живет один шаг (ближний бой) или короткое фиксированное
// время (зона заклинания). Принадлежит циклу симуляции, никогда не
// сохраняется.
type AttackInstance struct {
	ID         string
	AttackerID string
	Kind       AttackKind

	// Origin - позиция атакующего в момент коммита. От неё считается
	// направление отбрасывания.
	Origin Vec2

	// Damage - урон после применения характеристик, до резолюции.
	Damage    float64
	Knockback float64

	Region Rect

	// ExpiresAt - момент, после которого зона недействительна.
	ExpiresAt int64

	// applied - защитники, против которых эта атака уже сработала.
	// Один взмах бьет нескольких врагов, но каждого не более одного раза.
	applied map[string]bool
}

// NewAttackInstance создает запись атаки с пустым набором примененных целей.
func NewAttackInstance(id, attackerID string, kind AttackKind, origin Vec2, damage, knockback float64, region Rect, expiresAt int64) *AttackInstance {
	return &AttackInstance{
		ID:         id,
		AttackerID: attackerID,
		Kind:       kind,
		Origin:     origin,
		Damage:     damage,
		Knockback:  knockback,
		Region:     region,
		ExpiresAt:  expiresAt,
		applied:    make(map[string]bool),
	}
}

// AppliedTo проверяет, резолвилась ли атака против этого защитника.
func (a *AttackInstance) AppliedTo(defenderID string) bool {
	return a.applied[defenderID]
}

// MarkApplied фиксирует, что атака сработала против защитника.
func (a *AttackInstance) MarkApplied(defenderID string) {
	a.applied[defenderID] = true
}

// Expired сообщает, что зона атаки больше не действительна.
func (a *AttackInstance) Expired(now int64) bool {
	return now > a.ExpiresAt
}
