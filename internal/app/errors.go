package app

import (
	"github.com/metinatakli/catalog-admin/internal/domain"
	appvalidator "github.com/metinatakli/catalog-admin/internal/validator"
)

// validateInput records every struct tag violation of input on n, next to the
// errors the aggregate already holds.
func (app *Application) validateInput(n *domain.Notification, input any) {
	for _, m := range appvalidator.Messages(app.validator.Struct(input)) {
		if m.Field == "" {
			n.AddError(m.Message)
			continue
		}
		n.AddFieldError(m.Field, m.Message)
	}
}

func validationFailure(n *domain.Notification) error {
	if !n.HasErrors() {
		return nil
	}

	return domain.NewEntityValidationError(n)
}
