package fraktjakt

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate holds the shared validator instance. Field names in reported
// errors come from the `name` struct tag so callers see the same keys
// the wire documents use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("name"), ",", 2)[0]
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// checkRequired validates s against its struct tags and converts any
// failures into a single MissingInformationError listing every missing
// field in declared order.
func checkRequired(operation string, s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Non-validation failures (nil input etc.) still mean the
		// caller handed us something unusable.
		return &MissingInformationError{Operation: operation, Fields: []string{err.Error()}}
	}

	fields := make([]string, 0, len(verrs))
	seen := make(map[string]struct{}, len(verrs))
	for _, fe := range verrs {
		f := fe.Field()
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		fields = append(fields, f)
	}
	return &MissingInformationError{Operation: operation, Fields: fields}
}

// missingInformation builds a MissingInformationError for structural
// checks that the tag-driven validator cannot express, such as an empty
// parcel list at document build time.
func missingInformation(operation string, fields ...string) error {
	return &MissingInformationError{Operation: operation, Fields: fields}
}
