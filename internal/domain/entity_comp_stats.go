package domain

// StatsComponent - Характеристики и Ресурсы.
// У врагов значения фиксированные (из defs), у игрока производные от уровней
// атрибутов; пересчитываются моделью прокачки, здесь только хранение.
type StatsComponent struct {
	HP    float64
	MaxHP float64

	// Energy - ресурс магии. У врагов не используется.
	Energy    float64
	MaxEnergy float64

	AttackPower float64
	MagicPower  float64

	// Resistance - множитель отбрасывания при получении удара.
	Resistance float64

	// Exp - награда опытом за убийство этой сущности.
	Exp float64
}

// TakeDamage наносит урон. Здоровье не уходит ниже нуля.
// Возвращает true, если цель погибла от этого урона.
func (s *StatsComponent) TakeDamage(amount float64) bool {
	if amount < 0 {
		amount = 0
	}
	if s.HP <= 0 {
		return false
	}

	s.HP -= amount
	if s.HP <= 0 {
		s.HP = 0
		return true
	}
	return false
}

// Heal лечит сущность. Здоровье не превышает максимум.
func (s *StatsComponent) Heal(amount float64) {
	if s.HP <= 0 {
		return // Не лечим трупы
	}
	s.HP += amount
	if s.HP > s.MaxHP {
		s.HP = s.MaxHP
	}
}

// HasEnergy проверяет, хватает ли ресурса магии.
func (s *StatsComponent) HasEnergy(cost float64) bool {
	return s.Energy >= cost
}

// SpendEnergy тратит ресурс магии. Возвращает false, если не хватило.
func (s *StatsComponent) SpendEnergy(cost float64) bool {
	if s.Energy < cost {
		return false
	}
	s.Energy -= cost
	return true
}

// RestoreEnergy восстанавливает ресурс магии (пассивный реген).
func (s *StatsComponent) RestoreEnergy(amount float64) {
	s.Energy += amount
	if s.Energy > s.MaxEnergy {
		s.Energy = s.MaxEnergy
	}
}
