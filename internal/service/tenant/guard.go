package tenant

import (
	"fmt"
	"slices"
)

// Decision is the outcome of an access check.
type Decision struct {
	Allowed bool
	Reason  string
}

// Allowed is the decision that lets a caller through.
var Allowed = Decision{Allowed: true}

// Denied returns a negative decision carrying reason.
func Denied(reason string) Decision {
	return Decision{Reason: reason}
}

// Guard gates transport entry points on an optional allow-list.
type Guard struct {
	allow []int64
}

// NewGuard creates a guard. An empty list admits everyone.
func NewGuard(allowList []int64) *Guard {
	return &Guard{allow: slices.Clone(allowList)}
}

// Check decides whether userID may use the bot.
func (g *Guard) Check(userID int64) Decision {
	if len(g.allow) == 0 || slices.Contains(g.allow, userID) {
		return Allowed
	}
	return Denied(fmt.Sprintf("user %d is not on the allow list", userID))
}
