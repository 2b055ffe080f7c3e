package domain

// Rect - прямоугольник в мировых координатах (левый верхний угол + размер).
// Используется и для хитбоксов, и для коллизионных боксов, и для зон атак.
type Rect struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	W float64 `json:"w" yaml:"w"`
	H float64 `json:"h" yaml:"h"`
}

// RectAround строит прямоугольник заданного размера вокруг центра.
func RectAround(center Vec2, w, h float64) Rect {
	return Rect{X: center.X - w/2, Y: center.Y - h/2, W: w, H: h}
}

func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// IsDegenerate сообщает, что прямоугольник не имеет площади.
// Такие зоны по контракту ни с чем не пересекаются.
func (r Rect) IsDegenerate() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersects проверяет перекрытие двух прямоугольников.
// Касание ребрами перекрытием не считается.
func (r Rect) Intersects(other Rect) bool {
	if r.IsDegenerate() || other.IsDegenerate() {
		return false
	}
	return r.X < other.Right() && other.X < r.Right() &&
		r.Y < other.Bottom() && other.Y < r.Bottom()
}
