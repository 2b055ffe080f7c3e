package stats

import (
	"math"
	"strings"
)

// Кривые роста: значение и стоимость растут геометрически с уровнем.
const (
	valueGrowth = 1.2
	costGrowth  = 1.4
)

// AttributeSpec описывает один прокачиваемый атрибут.
type AttributeSpec struct {
	Name string

	// Base - значение на уровне 1, Max - потолок значения.
	Base float64
	Max  float64

	MaxLevel int

	// BaseCost - стоимость перехода с уровня 1 на 2.
	BaseCost float64
}

type attribute struct {
	spec  AttributeSpec
	level int
}

// Model - модель характеристик и прокачки игрока. Единственный мутатор
// характеристик: бой и AI читают производные значения, но не пишут их.
type Model struct {
	order      []string
	attributes map[string]*attribute
	experience float64
}

// NewModel создает модель с уровнями 1 по всем атрибутам.
func NewModel(specs []AttributeSpec) *Model {
	m := &Model{attributes: make(map[string]*attribute)}
	for _, spec := range specs {
		name := strings.ToLower(spec.Name)
		m.order = append(m.order, name)
		m.attributes[name] = &attribute{spec: spec, level: 1}
	}
	return m
}

// Names возвращает имена атрибутов в фиксированном порядке.
func (m *Model) Names() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Level возвращает текущий уровень атрибута (0 для неизвестного).
func (m *Model) Level(name string) int {
	if a, ok := m.attributes[strings.ToLower(name)]; ok {
		return a.level
	}
	return 0
}

// Value возвращает текущее значение атрибута.
// Значение - чистая функция уровня: base * 1.2^(level-1), с потолком.
// На максимальном уровне кривая завершается ровно на потолке.
func (m *Model) Value(name string) float64 {
	a, ok := m.attributes[strings.ToLower(name)]
	if !ok {
		return 0
	}
	if a.level >= a.spec.MaxLevel {
		return a.spec.Max
	}
	v := a.spec.Base * math.Pow(valueGrowth, float64(a.level-1))
	if v > a.spec.Max {
		return a.spec.Max
	}
	return v
}

// Cost возвращает стоимость следующего уровня атрибута.
func (m *Model) Cost(name string) float64 {
	a, ok := m.attributes[strings.ToLower(name)]
	if !ok {
		return 0
	}
	return a.spec.BaseCost * math.Pow(costGrowth, float64(a.level-1))
}

// Experience возвращает накопленный опыт (он же валюта прокачки).
func (m *Model) Experience() float64 {
	return m.experience
}

// AddExperience начисляет опыт. Отрицательные значения игнорируются.
func (m *Model) AddExperience(amount float64) {
	if amount > 0 {
		m.experience += amount
	}
}

// Upgrade пытается поднять атрибут на один уровень.
// Состояние меняется только при исходе OutcomeSuccess.
func (m *Model) Upgrade(name string) Outcome {
	a, ok := m.attributes[strings.ToLower(name)]
	if !ok {
		return OutcomeUnknownAttribute
	}
	if a.level >= a.spec.MaxLevel {
		return OutcomeMaxLevel
	}

	cost := m.Cost(name)
	if m.experience < cost {
		return OutcomeInsufficientResource
	}

	m.experience -= cost
	a.level++
	return OutcomeSuccess
}
