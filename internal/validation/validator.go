// Package validation checks model fields with go-playground/validator and
// reports failures as domain validation errors keyed by column name.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm/schema"

	domainerrors "usertags/backend/internal/errors"
)

// Validator wraps go-playground/validator with domain error conversion.
type Validator struct {
	v *validator.Validate
}

// New creates a validator that names fields the way gorm names their columns.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	naming := schema.NamingStrategy{}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return naming.ColumnName("", fld.Name)
	})

	return &Validator{v: v}
}

// Validate validates a struct and returns a domain validation error listing
// every failing column.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fieldErrors := make(map[string]string, len(validationErrs))
	for _, e := range validationErrs {
		fieldErrors[e.Field()] = friendlyMessage(e)
	}

	fields := make([]string, 0, len(fieldErrors))
	for f := range fieldErrors {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+" "+fieldErrors[f])
	}

	entity := entityName(validationErrs[0].StructNamespace())
	msg := fmt.Sprintf("%s: %s", entity, strings.Join(parts, "; "))
	return domainerrors.ValidationWithDetails(msg, fieldErrors)
}

// entityName turns "UserTag.Text" into "user_tag".
func entityName(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		namespace = namespace[:i]
	}
	return schema.NamingStrategy{SingularTable: true}.TableName(namespace)
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "gt":
		return "must be greater than " + e.Param()
	default:
		return "is invalid"
	}
}
