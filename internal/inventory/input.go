package inventory

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrInvalidInput marks form values that could not be coerced into a product.
var ErrInvalidInput = errors.New("invalid input")

// InputError reports which form field failed coercion or validation.
type InputError struct {
	Field string
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *InputError) Unwrap() []error {
	return []error{ErrInvalidInput, e.Err}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Compare decimals numerically so gte/lte tags apply to prices.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		d, ok := field.Interface().(decimal.Decimal)
		if !ok {
			return nil
		}
		f, _ := d.Float64()
		return f
	}, decimal.Decimal{})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ParseInput coerces raw form text into a ProductInput. Quantity must be a
// whole number and price a decimal, both non-negative; name must be non-blank.
// Nothing is sent when this fails.
func ParseInput(name, quantity, price string) (ProductInput, error) {
	in := ProductInput{Name: strings.TrimSpace(name)}

	q, err := strconv.Atoi(strings.TrimSpace(quantity))
	if err != nil {
		return ProductInput{}, &InputError{Field: "quantity", Err: fmt.Errorf("%q is not a whole number", quantity)}
	}
	in.Quantity = q

	p, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil {
		return ProductInput{}, &InputError{Field: "price", Err: fmt.Errorf("%q is not a number", price)}
	}
	in.Price = p

	if err := in.Validate(); err != nil {
		return ProductInput{}, err
	}
	return in, nil
}

// Validate checks the struct-level constraints of the input.
func (in ProductInput) Validate() error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &InputError{Field: fe.Field(), Err: describeRule(fe)}
	}
	return &InputError{Field: "product", Err: err}
}

func describeRule(fe validator.FieldError) error {
	switch fe.Tag() {
	case "required":
		return errors.New("is required")
	case "gte":
		return fmt.Errorf("must be at least %s", fe.Param())
	default:
		return fmt.Errorf("failed %s", fe.Tag())
	}
}
