package domain

import "github.com/metinatakli/catalog-admin/internal/validator"

// AggregateRoot gives an aggregate its own Notification. Embed it by value.
type AggregateRoot struct {
	notification *Notification
}

func (a *AggregateRoot) Notification() *Notification {
	if a.notification == nil {
		a.notification = NewNotification()
	}

	return a.notification
}

// validateRules starts a fresh pass over fields: their previous messages are
// dropped, then the rule violations found in rules are recorded.
func validateRules(n *Notification, rules any, fields ...string) bool {
	for _, field := range fields {
		n.SetFieldError(field)
	}

	for _, m := range validator.Validate(rules) {
		if m.Field == "" {
			n.AddError(m.Message)
			continue
		}
		n.AddFieldError(m.Field, m.Message)
	}

	return !n.HasErrors()
}
