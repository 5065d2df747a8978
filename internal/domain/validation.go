package domain

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validation messages reported back to API clients.
const (
	MsgTitleRequired       = "Title is required"
	MsgTitleEmpty          = "Title cannot be empty"
	MsgTitleTooLong        = "Title cannot be longer than 255 characters"
	MsgTitleNotString      = "Title must be a string"
	MsgDescriptionTooLong  = "Description cannot be longer than 1000 characters"
	MsgDescriptionNotText  = "Description must be a string"
	MsgCompletedNotBoolean = "Completed must be a boolean value"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// boolish accepts the raw JSON text of a completed value.
	if err := v.RegisterValidation("boolish", func(fl validator.FieldLevel) bool {
		_, err := ParseCompleted([]byte(fl.Field().String()))
		return err == nil
	}); err != nil {
		panic(fmt.Sprintf("register boolish validation: %v", err))
	}
	return v
}

// ValidationErrors is the full list of violations found in one input.
type ValidationErrors []string

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(e, "; "))
}

// Unwrap lets errors.Is match ErrValidation.
func (e ValidationErrors) Unwrap() error {
	return ErrValidation
}

// ValidateTaskInput checks in against the create (isUpdate=false) or update
// policy and returns every violation. It returns nil when the input is valid.
func ValidateTaskInput(in TaskInput, isUpdate bool) ValidationErrors {
	var errs ValidationErrors

	title := in.Title.Trimmed()
	switch {
	case in.Title.NotString:
		errs = append(errs, MsgTitleNotString)
	case !isUpdate && (!in.Title.Present || validate.Var(title, "required") != nil):
		errs = append(errs, MsgTitleRequired)
	case isUpdate && in.Title.Present && validate.Var(title, "required") != nil:
		errs = append(errs, MsgTitleEmpty)
	}

	if in.Title.Present && !in.Title.NotString {
		if validate.Var(title, fmt.Sprintf("max=%d", MaxTitleLength)) != nil {
			errs = append(errs, MsgTitleTooLong)
		}
	}

	if in.Description.Present {
		if in.Description.NotString {
			errs = append(errs, MsgDescriptionNotText)
		} else if validate.Var(in.Description.Trimmed(), fmt.Sprintf("max=%d", MaxDescriptionLength)) != nil {
			errs = append(errs, MsgDescriptionTooLong)
		}
	}

	if in.Completed.Present && validate.Var(string(in.Completed.Raw), "boolish") != nil {
		errs = append(errs, MsgCompletedNotBoolean)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
