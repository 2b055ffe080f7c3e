package engine

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"terramythica-server/internal/defs"
	"terramythica-server/internal/domain"
	"terramythica-server/internal/stats"
	"terramythica-server/internal/systems"
	"terramythica-server/pkg/logger"
)

// Session - один игровой сеанс: живой набор сущностей, статическая
// геометрия зоны и модель прокачки игрока. Сеанс принадлежит циклу
// симуляции целиком: все мутации происходят внутри Step и Upgrade,
// всегда из одной горутины.
type Session struct {
	lib *defs.Library
	cfg Config

	// now - время симуляции в миллисекундах, tick - номер шага.
	now  int64
	tick int64

	paused bool

	player   *domain.Entity
	entities []*domain.Entity // игрок первый, далее враги в порядке спавна

	obstacles *systems.ObstacleIndex

	// attacks - живые зоны атак. Принадлежат сеансу, не сохраняются.
	attacks []*domain.AttackInstance

	model *stats.Model

	// Активный выбор оружия и магии.
	weaponIdx int
	spellIdx  int

	nextWeaponSwitchAt int64
	nextSpellSwitchAt  int64
	nextCastAt         int64

	events []domain.Event

	removed map[string]bool
}

// NewSession собирает сеанс по зоне из библиотеки определений.
func NewSession(lib *defs.Library, cfg Config) (*Session, error) {
	area, ok := lib.Areas[cfg.AreaID]
	if !ok {
		return nil, fmt.Errorf("area %q not found in definitions", cfg.AreaID)
	}

	obstacles := make([]domain.Rect, 0, len(area.Obstacles))
	for _, o := range area.Obstacles {
		obstacles = append(obstacles, domain.Rect{X: o.X, Y: o.Y, W: o.W, H: o.H})
	}

	s := &Session{
		lib:       lib,
		cfg:       cfg,
		obstacles: systems.NewObstacleIndex(obstacles),
		removed:   make(map[string]bool),
	}

	specs := make([]stats.AttributeSpec, 0, len(lib.Player.Attributes))
	for _, a := range lib.Player.Attributes {
		specs = append(specs, stats.AttributeSpec{
			Name:     a.Name,
			Base:     a.Base,
			Max:      a.Max,
			MaxLevel: a.MaxLevel,
			BaseCost: a.BaseCost,
		})
	}
	s.model = stats.NewModel(specs)

	s.player = s.newPlayer(domain.Vec2{X: area.PlayerSpawnX, Y: area.PlayerSpawnY})
	s.entities = append(s.entities, s.player)

	for _, spawn := range area.Spawns {
		def, ok := lib.Enemies[spawn.Kind]
		if !ok {
			return nil, fmt.Errorf("area %q spawns unknown enemy kind %q", area.ID, spawn.Kind)
		}
		s.entities = append(s.entities, newEnemy(def, domain.Vec2{X: spawn.X, Y: spawn.Y}))
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "engine",
		"area":      area.ID,
		"enemies":   len(s.entities) - 1,
	}).Info("Session created")

	return s, nil
}

func (s *Session) newPlayer(pos domain.Vec2) *domain.Entity {
	p := &domain.Entity{
		ID:      uuid.NewString(),
		Kind:    domain.KindPlayer,
		Pos:     pos,
		Facing:  domain.FacingDown,
		HitboxW: s.lib.Player.HitboxW,
		HitboxH: s.lib.Player.HitboxH,
		BodyW:   s.lib.Player.BodyW,
		BodyH:   s.lib.Player.BodyH,
		State:   domain.StateIdle,
		Stats:   &domain.StatsComponent{Resistance: 1},
		Combat: &domain.CombatComponent{
			InvulnerabilityMillis: s.lib.Player.InvulnerabilityMillis,
		},
	}

	s.player = p
	s.syncPlayerDerived()
	p.Stats.HP = p.Stats.MaxHP
	p.Stats.Energy = p.Stats.MaxEnergy
	return p
}

func newEnemy(def defs.EnemyDef, pos domain.Vec2) *domain.Entity {
	return &domain.Entity{
		ID:      uuid.NewString(),
		Kind:    def.ID,
		Pos:     pos,
		Facing:  domain.FacingDown,
		Speed:   def.Speed * 60,
		HitboxW: def.HitboxW,
		HitboxH: def.HitboxH,
		BodyW:   def.BodyW,
		BodyH:   def.BodyH,
		State:   domain.StateIdle,
		Stats: &domain.StatsComponent{
			HP:          def.Health,
			MaxHP:       def.Health,
			AttackPower: def.Damage,
			Resistance:  def.Resistance,
			Exp:         def.Exp,
		},
		Combat: &domain.CombatComponent{
			Reach:                 def.Reach,
			ReachWidth:            def.Width,
			Knockback:             def.Knockback,
			InvulnerabilityMillis: def.InvulnerabilityMillis,
		},
		AI: &domain.AIComponent{
			PerceptionRadius: def.NoticeRadius,
			AttackRadius:     def.AttackRadius,
		},
	}
}

// syncPlayerDerived пересчитывает производные характеристики игрока из
// модели прокачки. Значения - чистая функция уровней атрибутов.
func (s *Session) syncPlayerDerived() {
	st := s.player.Stats

	st.MaxHP = s.model.Value("health")
	if st.HP > st.MaxHP {
		st.HP = st.MaxHP
	}
	st.MaxEnergy = s.model.Value("energy")
	if st.Energy > st.MaxEnergy {
		st.Energy = st.MaxEnergy
	}
	st.AttackPower = s.model.Value("attack")
	st.MagicPower = s.model.Value("magic")

	// Скорость в данных - пиксели за кадр при 60 Гц
	s.player.Speed = s.model.Value("speed") * 60
}

// Upgrade - единственный мутатор характеристик игрока. Принимается и
// при открытом меню (симуляция на паузе).
func (s *Session) Upgrade(attribute string) stats.Outcome {
	outcome := s.model.Upgrade(attribute)

	logger.Log.WithFields(logrus.Fields{
		"component": "engine",
		"attribute": attribute,
		"outcome":   outcome.String(),
	}).Info("Upgrade requested")

	if outcome == stats.OutcomeSuccess {
		s.syncPlayerDerived()
		s.pushEvent(domain.EventUpgradeApplied, s.player.ID, "", float64(s.model.Level(attribute)))
	}
	return outcome
}

// RemoveEntity удаляет сущность из живого набора. Идемпотентно:
// повторное удаление того же ID - no-op. Игрок не удаляется никогда.
func (s *Session) RemoveEntity(id string) {
	if s.removed[id] || id == s.player.ID {
		return
	}
	s.removed[id] = true

	kept := s.entities[:0]
	for _, e := range s.entities {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.entities = kept
}

// Entity возвращает живую сущность по ID (nil, если удалена).
func (s *Session) Entity(id string) *domain.Entity {
	for _, e := range s.entities {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Player возвращает сущность игрока. Она живет весь сеанс.
func (s *Session) Player() *domain.Entity {
	return s.player
}

func (s *Session) Paused() bool {
	return s.paused
}

// ActiveWeapon и ActiveSpell - текущий выбор игрока.
func (s *Session) ActiveWeapon() defs.WeaponDef {
	return s.lib.Weapon(s.weaponIdx)
}

func (s *Session) ActiveSpell() defs.SpellDef {
	return s.lib.Spell(s.spellIdx)
}

func (s *Session) pushEvent(t domain.EventType, entityID, targetID string, amount float64) {
	s.events = append(s.events, domain.Event{
		Type:     t,
		EntityID: entityID,
		TargetID: targetID,
		Amount:   amount,
	})
}
