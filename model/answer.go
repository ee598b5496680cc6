package model

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/mbolis/formpilot/fault"
)

// Answer is the value submitted for one field: a single string, or an
// ordered list of strings for Checkbox fields.
type Answer struct {
	values []string
	multi  bool
}

func SingleAnswer(v string) Answer {
	return Answer{values: []string{v}}
}

// MultiAnswer keeps the selections in the order given.
func MultiAnswer(vs ...string) Answer {
	return Answer{values: append([]string{}, vs...), multi: true}
}

func (a Answer) IsMulti() bool {
	return a.multi
}

// Text returns the single value, or the selections joined with ", ".
func (a Answer) Text() string {
	return strings.Join(a.values, ", ")
}

func (a Answer) Values() []string {
	return append([]string{}, a.values...)
}

func (a Answer) IsEmpty() bool {
	for _, v := range a.values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.multi {
		return json.Marshal(a.Values())
	}
	return json.Marshal(a.Text())
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		values := make([]string, 0, len(raw))
		for _, r := range raw {
			v, err := scalarText(r)
			if err != nil {
				return err
			}
			values = append(values, v)
		}
		*a = Answer{values: values, multi: true}
		return nil
	}

	v, err := scalarText(data)
	if err != nil {
		return err
	}
	*a = SingleAnswer(v)
	return nil
}

// scalarText converts a JSON string, number, boolean or null into its text.
func scalarText(data json.RawMessage) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return "", nil
	}
	switch data[0] {
	case '"':
		var s string
		err := json.Unmarshal(data, &s)
		return s, err
	case 'n':
		return "", nil
	case '{', '[':
		return "", fault.NewValidation("Unsupported Answer Value.")
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		return n.String(), nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return "", err
	}
	if b {
		return "true", nil
	}
	return "false", nil
}
