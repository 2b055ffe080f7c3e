package domain

import "math"

// Vec2 - непрерывная 2D координата / вектор в пикселях мира.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// Len возвращает длину вектора.
func (v Vec2) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalized возвращает единичный вектор того же направления.
// Нулевой вектор остается нулевым.
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// DistanceTo возвращает точное расстояние до другой точки (float)
func (v Vec2) DistanceTo(other Vec2) float64 {
	return other.Sub(v).Len()
}

func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}
