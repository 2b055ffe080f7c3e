package engine

// Config хранит параметры запуска симуляции.
type Config struct {
	// TickMillis - длительность одного фиксированного шага.
	TickMillis int64

	// DefsPath - путь к YAML-файлу баланса. Пусто - встроенные значения.
	DefsPath string

	// AreaID - зона, загружаемая при старте сеанса.
	AreaID string

	Port string
}

// NewConfig создает конфиг по умолчанию (60 Гц, встроенный баланс).
func NewConfig() Config {
	return Config{
		TickMillis: 16,
		AreaID:     "overworld",
		Port:       "8080",
	}
}
