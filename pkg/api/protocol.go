package api

// --- КЛИЕНТ -> СЕРВЕР ---

// Типы клиентских сообщений.
const (
	MessageInput   = "INPUT"
	MessageUpgrade = "UPGRADE"
)

// ClientMessage - корневой объект, который клиент отправляет серверу.
type ClientMessage struct {
	Type string `json:"type"`

	// Input заполнен для сообщений типа INPUT.
	Input *InputFrame `json:"input,omitempty"`

	// Attribute заполнен для сообщений типа UPGRADE.
	Attribute string `json:"attribute,omitempty"`
}

// InputFrame - снимок устройства ввода на один шаг симуляции.
// Направления - это уровни (клавиша удерживается), остальные поля -
// фронты (нажатие), взводимые клиентом один раз на нажатие.
type InputFrame struct {
	Up    bool `json:"up"`
	Down  bool `json:"down"`
	Left  bool `json:"left"`
	Right bool `json:"right"`

	Attack bool `json:"attack"`
	Cast   bool `json:"cast"`

	WeaponNext bool `json:"weaponNext"`
	WeaponPrev bool `json:"weaponPrev"`
	MagicNext  bool `json:"magicNext"`
	MagicPrev  bool `json:"magicPrev"`

	ToggleMenu bool `json:"toggleMenu"`
}

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerMessage - корневой объект, который сервер рассылает клиентам
// после каждого шага симуляции.
type ServerMessage struct {
	Type string `json:"type"`

	Snapshot *Snapshot `json:"snapshot,omitempty"`

	// Events - дискретные события шага для аудио-коллаборатора.
	Events []GameEvent `json:"events,omitempty"`
}

// Snapshot - полный снимок живого набора сущностей после шага.
// Рендер-коллаборатор сам выбирает спрайты по State и Facing;
// симуляция кадры анимации не выбирает.
type Snapshot struct {
	Tick       int64 `json:"tick"`
	TimeMillis int64 `json:"timeMillis"`
	Paused     bool  `json:"paused"`

	Entities []EntityView `json:"entities"`

	Player *PlayerView `json:"player,omitempty"`
}

// EntityView - DTO одной сущности для рендера.
type EntityView struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`

	X float64 `json:"x"`
	Y float64 `json:"y"`

	Facing string `json:"facing"`
	State  string `json:"state"`

	HP    float64 `json:"hp"`
	MaxHP float64 `json:"maxHp"`
}

// PlayerView - персональный блок игрока: уровни и значения атрибутов,
// ресурсы и активный выбор оружия/магии.
type PlayerView struct {
	Levels map[string]int     `json:"levels"`
	Values map[string]float64 `json:"values"`
	Costs  map[string]float64 `json:"costs"`

	Energy    float64 `json:"energy"`
	MaxEnergy float64 `json:"maxEnergy"`

	Experience float64 `json:"experience"`

	Weapon string `json:"weapon"`
	Spell  string `json:"spell"`
}

// GameEvent - дискретное событие симуляции (fire-and-forget).
type GameEvent struct {
	Type     string  `json:"type"`
	EntityID string  `json:"entityId,omitempty"`
	TargetID string  `json:"targetId,omitempty"`
	Amount   float64 `json:"amount,omitempty"`
}
