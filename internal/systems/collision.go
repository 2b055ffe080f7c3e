package systems

import (
	"math"

	"terramythica-server/internal/domain"
)

// ObstacleIndex отвечает на запросы "что блокирует это место" по
// статической геометрии зоны. Сущностей - десятки, поэтому хватает
// простого списка; важна корректность, а не асимптотика.
type ObstacleIndex struct {
	obstacles []domain.Rect
}

// NewObstacleIndex строит индекс. Вырожденные прямоугольники
// (нулевая площадь) отбрасываются: по контракту они ни с чем не
// пересекаются.
func NewObstacleIndex(obstacles []domain.Rect) *ObstacleIndex {
	ix := &ObstacleIndex{}
	for _, r := range obstacles {
		if r.IsDegenerate() {
			continue
		}
		ix.obstacles = append(ix.obstacles, r)
	}
	return ix
}

// Blocked проверяет, перекрывает ли бокс хоть одно препятствие.
func (ix *ObstacleIndex) Blocked(box domain.Rect) bool {
	for _, obs := range ix.obstacles {
		if box.Intersects(obs) {
			return true
		}
	}
	return false
}

// MovementResult - результат вычисления движения.
type MovementResult struct {
	Pos      domain.Vec2
	BlockedX bool
	BlockedY bool
}

// CalculateMove вычисляет новый центр сущности после сдвига на delta.
// Оси проверяются независимо: упершись в стену по одной оси, сущность
// продолжает скользить по другой. Проверка заметающая: бокс проверяется
// на всем отрезке перемещения, а не только в точке назначения, поэтому
// большой сдвиг (отбрасывание) не проскакивает тонкое препятствие.
// Коллизия считается только со статическими препятствиями - перекрытие
// с другими сущностями разрешено. Не меняет состояние мира.
func CalculateMove(e *domain.Entity, delta domain.Vec2, ix *ObstacleIndex) MovementResult {
	res := MovementResult{Pos: e.Pos}

	// Ось X
	if delta.X != 0 {
		candidate := res.Pos.X + delta.X
		for _, obs := range ix.obstacles {
			swept := sweptBox(res.Pos, domain.Vec2{X: candidate, Y: res.Pos.Y}, e.BodyW, e.BodyH)
			if !swept.Intersects(obs) {
				continue
			}
			res.BlockedX = true
			if delta.X > 0 {
				candidate = obs.X - e.BodyW/2
			} else {
				candidate = obs.Right() + e.BodyW/2
			}
		}
		res.Pos.X = candidate
	}

	// Ось Y
	if delta.Y != 0 {
		candidate := res.Pos.Y + delta.Y
		for _, obs := range ix.obstacles {
			swept := sweptBox(res.Pos, domain.Vec2{X: res.Pos.X, Y: candidate}, e.BodyW, e.BodyH)
			if !swept.Intersects(obs) {
				continue
			}
			res.BlockedY = true
			if delta.Y > 0 {
				candidate = obs.Y - e.BodyH/2
			} else {
				candidate = obs.Bottom() + e.BodyH/2
			}
		}
		res.Pos.Y = candidate
	}

	return res
}

// sweptBox - прямоугольник, покрывающий коллизионный бокс в начале и в
// конце перемещения вместе со всем отрезком между ними.
func sweptBox(from, to domain.Vec2, w, h float64) domain.Rect {
	return domain.Rect{
		X: math.Min(from.X, to.X) - w/2,
		Y: math.Min(from.Y, to.Y) - h/2,
		W: math.Abs(to.X-from.X) + w,
		H: math.Abs(to.Y-from.Y) + h,
	}
}

// EntitiesInRegion возвращает сущности, чьи хитбоксы перекрывают зону.
// Используется резолвером боя и восприятием AI. Вырожденная зона не
// перекрывает никого.
func EntitiesInRegion(region domain.Rect, entities []*domain.Entity) []*domain.Entity {
	if region.IsDegenerate() {
		return nil
	}
	var out []*domain.Entity
	for _, e := range entities {
		if e.Hitbox().Intersects(region) {
			out = append(out, e)
		}
	}
	return out
}
