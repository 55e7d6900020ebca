package checkout

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"pizza-storefront/internal/domain"
)

const formMessage = "Please fill in all fields"

// Form is the customer's checkout input. The CVV is collected and checked
// for presence only; it is never forwarded.
type Form struct {
	FirstName     string                 `json:"firstName" validate:"required"`
	LastName      string                 `json:"lastName" validate:"required"`
	Email         string                 `json:"email" validate:"required"`
	Fulfillment   domain.FulfillmentType `json:"fulfillment" validate:"required,oneof=pickup delivery"`
	Street        string                 `json:"street" validate:"required_if=Fulfillment delivery"`
	City          string                 `json:"city" validate:"required_if=Fulfillment delivery"`
	State         string                 `json:"state" validate:"required_if=Fulfillment delivery"`
	ZipCode       string                 `json:"zipCode" validate:"required_if=Fulfillment delivery"`
	PaymentMethod domain.PaymentMethod   `json:"paymentMethod" validate:"required,oneof=credit_card cash"`
	CardNumber    string                 `json:"cardNumber" validate:"required_if=PaymentMethod credit_card"`
	CVV           string                 `json:"cvv" validate:"required_if=PaymentMethod credit_card"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// trimmed returns a copy with surrounding whitespace removed so blank input
// counts as missing.
func (f Form) trimmed() Form {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
	f.Fulfillment = domain.FulfillmentType(strings.ToLower(strings.TrimSpace(string(f.Fulfillment))))
	f.Street = strings.TrimSpace(f.Street)
	f.City = strings.TrimSpace(f.City)
	f.State = strings.TrimSpace(f.State)
	f.ZipCode = strings.TrimSpace(f.ZipCode)
	f.PaymentMethod = domain.PaymentMethod(strings.ToLower(strings.TrimSpace(string(f.PaymentMethod))))
	f.CardNumber = strings.TrimSpace(f.CardNumber)
	f.CVV = strings.TrimSpace(f.CVV)
	return f
}

// Validate checks required fields, including the address for delivery and
// card details for card payments.
func (f Form) Validate() error {
	err := validate.Struct(f.trimmed())
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	verr := &domain.ValidationError{Message: formMessage, Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "oneof":
			verr.Fields[fe.Field()] = "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
		default:
			verr.Fields[fe.Field()] = "is required"
		}
	}
	return verr
}
