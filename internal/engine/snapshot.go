package engine

import (
	"terramythica-server/pkg/api"
)

// BuildSnapshot собирает полный DTO-снимок живого набора после шага.
// Снимок самодостаточен: рендер-коллаборатору не нужна история, только
// последний снимок.
func (s *Session) BuildSnapshot() *api.Snapshot {
	snap := &api.Snapshot{
		Tick:       s.tick,
		TimeMillis: s.now,
		Paused:     s.paused,
		Entities:   make([]api.EntityView, 0, len(s.entities)),
	}

	for _, e := range s.entities {
		view := api.EntityView{
			ID:     e.ID,
			Kind:   e.Kind,
			X:      e.Pos.X,
			Y:      e.Pos.Y,
			Facing: e.Facing.String(),
			State:  e.State.String(),
		}
		if e.Stats != nil {
			view.HP = e.Stats.HP
			view.MaxHP = e.Stats.MaxHP
		}
		snap.Entities = append(snap.Entities, view)
	}

	snap.Player = s.buildPlayerView()
	return snap
}

func (s *Session) buildPlayerView() *api.PlayerView {
	view := &api.PlayerView{
		Levels: make(map[string]int),
		Values: make(map[string]float64),
		Costs:  make(map[string]float64),

		Energy:    s.player.Stats.Energy,
		MaxEnergy: s.player.Stats.MaxEnergy,

		Experience: s.model.Experience(),

		Weapon: s.ActiveWeapon().ID,
		Spell:  s.ActiveSpell().ID,
	}

	for _, name := range s.model.Names() {
		view.Levels[name] = s.model.Level(name)
		view.Values[name] = s.model.Value(name)
		view.Costs[name] = s.model.Cost(name)
	}

	return view
}

// DrainEvents отдает накопленные события шага и очищает буфер.
// События одноразовые: повторная доставка не предусмотрена.
func (s *Session) DrainEvents() []api.GameEvent {
	if len(s.events) == 0 {
		return nil
	}

	out := make([]api.GameEvent, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, api.GameEvent{
			Type:     ev.Type.String(),
			EntityID: ev.EntityID,
			TargetID: ev.TargetID,
			Amount:   ev.Amount,
		})
	}

	s.events = s.events[:0]
	return out
}
