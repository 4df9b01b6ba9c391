package validator

import (
	"fmt"

	apperrors "paysim/pkg/errors"
	"paysim/pkg/logger"
	"paysim/pkg/model"

	"github.com/go-playground/validator/v10"
)

type TicketValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewTicketValidator(log *logger.Logger) *TicketValidator {
	return &TicketValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   log,
	}
}

func (v *TicketValidator) ValidateGenerateRequest(req *model.GenerateTicketRequest) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.Internal("failed to validate request", err)
	}

	details := make(map[string]any, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = translate(fe)
	}

	v.logger.Debug("Ticket generation request failed validation", "fields", len(details))
	return apperrors.Validation("invalid ticket generation request", details)
}

func translate(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
