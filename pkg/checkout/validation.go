package checkout

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shoptodo/shoptodo-backend/pkg/enums"
	pkgerrors "github.com/shoptodo/shoptodo-backend/pkg/errors"
	"github.com/shoptodo/shoptodo-backend/pkg/types"
)

// BasicEmailPattern is the local@domain.tld shape accepted by the shipping form.
var BasicEmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	_ = RegisterBasicEmail(v)
	return v
}

// RegisterBasicEmail installs the basic_email tag on v.
func RegisterBasicEmail(v *validator.Validate) error {
	return v.RegisterValidation("basic_email", func(fl validator.FieldLevel) bool {
		return BasicEmailPattern.MatchString(fl.Field().String())
	})
}

// ValidateShipping trims info and checks every field. The returned error is a
// VALIDATION_ERROR whose details map json field names to messages.
func ValidateShipping(info types.ShippingInfo) (types.ShippingInfo, error) {
	trimmed := info.Trimmed()
	if err := validate.Struct(trimmed); err != nil {
		var errs validator.ValidationErrors
		if !errors.As(err, &errs) {
			return trimmed, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid shipping information")
		}
		details := make(map[string]string, len(errs))
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = shippingMessage(fieldErr)
		}
		return trimmed, pkgerrors.New(pkgerrors.CodeValidation, "invalid shipping information").WithDetails(details)
	}
	return trimmed, nil
}

// ValidatePaymentMethod requires one of the supported payment methods.
func ValidatePaymentMethod(method enums.PaymentMethod) error {
	if method == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "payment method is required").
			WithDetails(map[string]string{"payment_method": "is required"})
	}
	if !method.IsValid() {
		return pkgerrors.Newf(pkgerrors.CodeValidation, "unsupported payment method %q", method).
			WithDetails(map[string]string{"payment_method": "is invalid"})
	}
	return nil
}

func shippingMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "basic_email":
		return "must be a valid email"
	}
	return "is invalid"
}
