package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the wire format for stay dates
const DateLayout = "2006-01-02"

// MsgPastCheckIn is reported for a check-in date before today
const MsgPastCheckIn = "check-in date cannot be in the past"

// InputError carries per-field validation messages
type InputError struct {
	Fields map[string][]string `json:"fields"`
}

func (e *InputError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], ", ")))
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Add records a message for field
func (e *InputError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// Remove drops msg from field, and the field once it has no messages left
func (e *InputError) Remove(field, msg string) {
	var kept []string
	for _, m := range e.Fields[field] {
		if m != msg {
			kept = append(kept, m)
		}
	}
	if len(kept) == 0 {
		delete(e.Fields, field)
		return
	}
	e.Fields[field] = kept
}

// OrNil returns e when it holds at least one message
func (e *InputError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// AsInputError unwraps err into an InputError
func AsInputError(err error) (*InputError, bool) {
	var inputErr *InputError
	ok := errors.As(err, &inputErr)
	return inputErr, ok
}

// Validator wraps validator/v10 with the stay date rules
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// New builds a validator. now decides what "today" is for notpast.
func New(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}

	v := &Validator{validate: validator.New(validator.WithRequiredStructEnabled()), now: now}

	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// notpast: a YYYY-MM-DD date that is today or later
	_ = v.validate.RegisterValidation("notpast", func(fl validator.FieldLevel) bool {
		d, err := time.Parse(DateLayout, fl.Field().String())
		if err != nil {
			return false
		}
		return !d.Before(Today(v.now()))
	})

	// stayafter=Field: a YYYY-MM-DD date strictly after the named sibling field
	_ = v.validate.RegisterValidation("stayafter", func(fl validator.FieldLevel) bool {
		other := fl.Parent().FieldByName(fl.Param())
		if !other.IsValid() || other.Kind() != reflect.String {
			return false
		}
		out, err := time.Parse(DateLayout, fl.Field().String())
		if err != nil {
			return false
		}
		in, err := time.Parse(DateLayout, other.String())
		if err != nil {
			// reported on the other field
			return true
		}
		return out.After(in)
	})

	return v
}

// Struct validates s and converts failures into an InputError
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	inputErr := &InputError{}
	for _, fe := range verrs {
		inputErr.Add(fieldPath(fe), message(fe))
	}
	return inputErr
}

// Today truncates t to midnight UTC
func Today(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD stay date
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notpast":
		return MsgPastCheckIn
	case "stayafter":
		return "check-out date must be after check-in date"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "email":
		return "must be a valid email address"
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max", "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
