package stats

// Outcome - Внутренний числовой идентификатор исхода прокачки
type Outcome uint8

const (
	OutcomeSuccess Outcome = iota
	OutcomeInsufficientResource
	OutcomeMaxLevel
	OutcomeUnknownAttribute
)

// Маппинг для логов и протокола Domain -> String
var outcomeToString = map[Outcome]string{
	OutcomeSuccess:              "SUCCESS",
	OutcomeInsufficientResource: "INSUFFICIENT_RESOURCE",
	OutcomeMaxLevel:             "MAX_LEVEL",
	OutcomeUnknownAttribute:     "UNKNOWN_ATTRIBUTE",
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (o Outcome) String() string {
	if val, ok := outcomeToString[o]; ok {
		return val
	}
	return "UNKNOWN_ATTRIBUTE"
}
