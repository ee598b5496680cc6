package model

import (
	"fmt"

	"github.com/mbolis/formpilot/fault"
)

// FieldType is the kind of input a form field collects.
type FieldType int

const (
	FieldText FieldType = iota + 1
	FieldNumber
	FieldMultipleChoice
	FieldCheckbox
	FieldDropdown
	FieldDate
)

// FieldTypes lists every field type in palette order.
var FieldTypes = []FieldType{
	FieldText,
	FieldNumber,
	FieldMultipleChoice,
	FieldCheckbox,
	FieldDropdown,
	FieldDate,
}

func (t FieldType) String() string {
	switch t {
	case FieldText:
		return "Text"
	case FieldNumber:
		return "Number"
	case FieldMultipleChoice:
		return "Multiple Choice"
	case FieldCheckbox:
		return "Checkbox"
	case FieldDropdown:
		return "Dropdown"
	case FieldDate:
		return "Date"
	}
	return fmt.Sprintf("FieldType(%d)", int(t))
}

func (t FieldType) Valid() bool {
	return t >= FieldText && t <= FieldDate
}

// HasOptions reports whether answers are picked from Field.Options.
func (t FieldType) HasOptions() bool {
	switch t {
	case FieldMultipleChoice, FieldCheckbox, FieldDropdown:
		return true
	case FieldText, FieldNumber, FieldDate:
		return false
	}
	return false
}

// MultiValued reports whether an answer is a list of selected options.
func (t FieldType) MultiValued() bool {
	return t == FieldCheckbox
}

func ParseFieldType(s string) (FieldType, error) {
	for _, t := range FieldTypes {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fault.NewValidation(fmt.Sprintf("Unknown Field Type %q.", s))
}

func (t FieldType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid field type %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *FieldType) UnmarshalText(text []byte) error {
	parsed, err := ParseFieldType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
