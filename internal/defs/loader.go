package defs

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"terramythica-server/pkg/logger"
)

// fileSchema - форма YAML-файла баланса. Все секции опциональны:
// отсутствующая секция берется из встроенных значений по умолчанию.
type fileSchema struct {
	Weapons []WeaponDef `yaml:"weapons"`
	Spells  []SpellDef  `yaml:"spells"`
	Enemies []EnemyDef  `yaml:"enemies"`
	Player  *PlayerDef  `yaml:"player"`
	Timing  *TimingDef  `yaml:"timing"`
	Areas   []AreaDef   `yaml:"areas"`
}

// Load читает библиотеку определений из YAML-файла поверх значений
// по умолчанию.
func Load(path string) (*Library, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definitions file: %w", err)
	}

	var schema fileSchema
	if err := yaml.Unmarshal(raw, &schema); err != nil {
		return nil, fmt.Errorf("failed to unmarshal definitions: %w", err)
	}

	lib := Default()

	if len(schema.Weapons) > 0 {
		lib.Weapons = make(map[string]WeaponDef)
		lib.WeaponOrder = nil
		for _, w := range schema.Weapons {
			lib.Weapons[w.ID] = w
			lib.WeaponOrder = append(lib.WeaponOrder, w.ID)
		}
	}
	if len(schema.Spells) > 0 {
		lib.Spells = make(map[string]SpellDef)
		lib.SpellOrder = nil
		for _, sp := range schema.Spells {
			lib.Spells[sp.ID] = sp
			lib.SpellOrder = append(lib.SpellOrder, sp.ID)
		}
	}
	if len(schema.Enemies) > 0 {
		lib.Enemies = make(map[string]EnemyDef)
		for _, e := range schema.Enemies {
			lib.Enemies[e.ID] = fillEnemyDefaults(e)
		}
	}
	if schema.Player != nil {
		lib.Player = *schema.Player
	}
	if schema.Timing != nil {
		lib.Timing = *schema.Timing
	}
	for _, a := range schema.Areas {
		lib.Areas[a.ID] = a
	}

	if err := lib.Validate(); err != nil {
		return nil, err
	}

	logger.Log.Infof("Loaded definitions: %d weapons, %d spells, %d enemy kinds, %d areas",
		len(lib.Weapons), len(lib.Spells), len(lib.Enemies), len(lib.Areas))

	return lib, nil
}

// Validate проверяет согласованность библиотеки.
func (l *Library) Validate() error {
	if len(l.WeaponOrder) == 0 {
		return fmt.Errorf("definitions: no weapons")
	}
	if len(l.SpellOrder) == 0 {
		return fmt.Errorf("definitions: no spells")
	}
	for _, sp := range l.Spells {
		if sp.Kind != SpellOffense && sp.Kind != SpellRestore {
			return fmt.Errorf("definitions: spell %q has unknown kind %q", sp.ID, sp.Kind)
		}
	}
	if len(l.Player.Attributes) == 0 {
		return fmt.Errorf("definitions: player has no attributes")
	}
	for _, area := range l.Areas {
		for _, spawn := range area.Spawns {
			if _, ok := l.Enemies[spawn.Kind]; !ok {
				return fmt.Errorf("definitions: area %q spawns unknown enemy kind %q", area.ID, spawn.Kind)
			}
		}
	}
	return nil
}
