package domain

// Facing - дискретное направление взгляда сущности (4 стороны).
type Facing uint8

const (
	FacingDown Facing = iota
	FacingUp
	FacingLeft
	FacingRight
)

var facingToString = map[Facing]string{
	FacingDown:  "down",
	FacingUp:    "up",
	FacingLeft:  "left",
	FacingRight: "right",
}

// String реализует интерфейс Stringer (для fmt.Printf и снапшотов)
func (f Facing) String() string {
	if val, ok := facingToString[f]; ok {
		return val
	}
	return "down"
}

// Vec возвращает единичный вектор направления взгляда.
// Ось Y направлена вниз, как в экранных координатах.
func (f Facing) Vec() Vec2 {
	switch f {
	case FacingUp:
		return Vec2{Y: -1}
	case FacingLeft:
		return Vec2{X: -1}
	case FacingRight:
		return Vec2{X: 1}
	default:
		return Vec2{Y: 1}
	}
}

// FacingFromDirection выбирает сторону взгляда по вектору движения.
// Горизонталь приоритетнее вертикали. Нулевой вектор сохраняет текущую сторону.
func FacingFromDirection(dir Vec2, current Facing) Facing {
	if dir.X > 0 {
		return FacingRight
	}
	if dir.X < 0 {
		return FacingLeft
	}
	if dir.Y < 0 {
		return FacingUp
	}
	if dir.Y > 0 {
		return FacingDown
	}
	return current
}
