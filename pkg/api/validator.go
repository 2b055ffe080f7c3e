package api

import "fmt"

// ValidateClientMessage проверяет форму клиентского сообщения до того,
// как оно попадет в цикл симуляции.
func ValidateClientMessage(msg ClientMessage) error {
	switch msg.Type {
	case MessageInput:
		if msg.Input == nil {
			return fmt.Errorf("INPUT message without input frame")
		}
		return nil
	case MessageUpgrade:
		if msg.Attribute == "" {
			return fmt.Errorf("UPGRADE message without attribute")
		}
		return nil
	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}
}
