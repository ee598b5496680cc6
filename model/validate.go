package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/mbolis/formpilot/fault"
)

const dateLayout = "2006-01-02"

// ValidateForm checks a form name and field list before it is stored.
// Field violations are all collected into a single Validation fault.
func ValidateForm(name string, fields []Field) error {
	if strings.TrimSpace(name) == "" {
		return fault.NewValidation("Form Name is Required.")
	}
	if len(fields) == 0 {
		return fault.NewValidation("At Least One Field is Required.")
	}

	var result *multierror.Error
	seen := make(map[string]bool, len(fields))
	for i, f := range fields {
		if f.ID != "" {
			if seen[f.ID] {
				result = multierror.Append(result, fmt.Errorf("field %d: duplicate id %q", i+1, f.ID))
			}
			seen[f.ID] = true
		}
		for _, err := range fieldViolations(f) {
			result = multierror.Append(result, fmt.Errorf("field %d: %w", i+1, err))
		}
	}

	if result.ErrorOrNil() != nil {
		return fault.NewValidation("Invalid Form Fields.", messages(result)...)
	}
	return nil
}

func fieldViolations(f Field) []error {
	var errs []error
	if strings.TrimSpace(f.ID) == "" {
		errs = append(errs, fmt.Errorf("id is required"))
	}
	if !f.Type.Valid() {
		errs = append(errs, fmt.Errorf("type is required"))
		return errs
	}

	switch f.Type {
	case FieldMultipleChoice, FieldCheckbox, FieldDropdown:
		if len(f.Options) == 0 {
			errs = append(errs, fmt.Errorf("%s field needs at least one option", f.Type))
		}
	case FieldText, FieldNumber, FieldDate:
		if f.Required && strings.TrimSpace(f.Label) == "" {
			errs = append(errs, fmt.Errorf("required %s field needs a label", f.Type))
		}
	}
	return errs
}

// NormalizeFields returns a copy of fields with options dropped from
// types that do not use them.
func NormalizeFields(fields []Field) Fields {
	out := make(Fields, len(fields))
	for i, f := range fields {
		if f.Type.HasOptions() {
			f.Options = append([]string{}, f.Options...)
		} else {
			f.Options = nil
		}
		out[i] = f
	}
	return out
}

// ValidateSubmission checks answers against the form they were submitted for.
func ValidateSubmission(form Form, data ResponseData) error {
	var result *multierror.Error

	known := make(map[string]bool, len(form.Fields))
	for _, f := range form.Fields {
		known[f.ID] = true
	}
	var unknown []string
	for id := range data {
		if !known[id] {
			unknown = append(unknown, id)
		}
	}
	sort.Strings(unknown)
	for _, id := range unknown {
		result = multierror.Append(result, fmt.Errorf("unknown field %q", id))
	}

	for _, f := range form.Fields {
		answer, ok := data[f.ID]
		if !ok || answer.IsEmpty() {
			if f.Required {
				result = multierror.Append(result, fmt.Errorf("%s is required", fieldName(f)))
			}
			continue
		}
		for _, err := range answerViolations(f, answer) {
			result = multierror.Append(result, fmt.Errorf("%s: %w", fieldName(f), err))
		}
	}

	if result.ErrorOrNil() != nil {
		return fault.NewValidation("Invalid Form Response.", messages(result)...)
	}
	return nil
}

func answerViolations(f Field, a Answer) []error {
	if f.Type.MultiValued() != a.IsMulti() {
		if a.IsMulti() {
			return []error{fmt.Errorf("expects a single value")}
		}
		return []error{fmt.Errorf("expects a list of options")}
	}

	var errs []error
	switch f.Type {
	case FieldNumber:
		if _, err := strconv.ParseFloat(strings.TrimSpace(a.Text()), 64); err != nil {
			errs = append(errs, fmt.Errorf("%q is not a number", a.Text()))
		}
	case FieldDate:
		if _, err := time.Parse(dateLayout, strings.TrimSpace(a.Text())); err != nil {
			errs = append(errs, fmt.Errorf("%q is not a date", a.Text()))
		}
	case FieldMultipleChoice, FieldCheckbox, FieldDropdown:
		for _, v := range a.Values() {
			if !contains(f.Options, v) {
				errs = append(errs, fmt.Errorf("%q is not one of the options", v))
			}
		}
	case FieldText:
	}
	return errs
}

func fieldName(f Field) string {
	if strings.TrimSpace(f.Label) != "" {
		return fmt.Sprintf("%q", f.Label)
	}
	return fmt.Sprintf("field %q", f.ID)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func messages(result *multierror.Error) []string {
	out := make([]string, len(result.Errors))
	for i, err := range result.Errors {
		out[i] = err.Error()
	}
	return out
}
