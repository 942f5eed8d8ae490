package enums

import "fmt"

// EmailKind identifies a notification template slot.
type EmailKind string

const (
	EmailKindNewOrder    EmailKind = "new_order"
	EmailKindOrderStatus EmailKind = "order_status"
	EmailKindNewTicket   EmailKind = "new_ticket"
)

var validEmailKinds = []EmailKind{
	EmailKindNewOrder,
	EmailKindOrderStatus,
	EmailKindNewTicket,
}

// String implements fmt.Stringer.
func (e EmailKind) String() string {
	return string(e)
}

// IsValid reports whether the value is a known EmailKind.
func (e EmailKind) IsValid() bool {
	for _, candidate := range validEmailKinds {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseEmailKind converts raw input into an EmailKind.
func ParseEmailKind(value string) (EmailKind, error) {
	for _, candidate := range validEmailKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid email kind %q", value)
}
