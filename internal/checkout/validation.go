package checkout

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	pkgerrors "github.com/ateliersillage/sillage-backend/pkg/errors"
)

// Address is the shipping destination submitted with a checkout. Optional
// fields carry no validate tag on purpose.
type Address struct {
	RecipientName string `json:"recipientName" validate:"required,max=120"`
	Phone         string `json:"phone" validate:"max=40"`
	AddressLine1  string `json:"addressLine1" validate:"required,max=200"`
	AddressLine2  string `json:"addressLine2" validate:"max=200"`
	City          string `json:"city" validate:"required,max=100"`
	PostalCode    string `json:"postalCode" validate:"required,max=20"`
	Country       string `json:"country" validate:"required,max=60"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// ValidateAddress checks the shipping fields and reports every failing field
// at once, keyed the way the storefront renders them.
func ValidateAddress(addr Address) *pkgerrors.Error {
	err := validate.Struct(addr)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = validationMessage(fieldErr)
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "is too long"
	}
	return "is invalid"
}
