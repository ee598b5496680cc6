package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"-"`
}

type Form struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"form_name" json:"form_name"`
	Fields    Fields    `db:"fields" json:"fields"`
	OwnerID   string    `db:"user_id" json:"user_id,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type FormSummary struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"form_name" json:"form_name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Field struct {
	ID       string    `json:"id"`
	Type     FieldType `json:"type"`
	Label    string    `json:"label"`
	Options  []string  `json:"options,omitempty"`
	Required bool      `json:"required"`
}

type Response struct {
	ID        string       `db:"id" json:"id"`
	FormID    string       `db:"form_id" json:"form_id"`
	Data      ResponseData `db:"response_data" json:"response_data"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
}

// Fields is the ordered field list of a form, persisted as a single JSON document.
type Fields []Field

func (f Fields) Value() (driver.Value, error) {
	if f == nil {
		f = Fields{}
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (f *Fields) Scan(src any) error {
	return scanJSON(src, f)
}

// ResponseData maps a field id to the answer given for it.
type ResponseData map[string]Answer

func (d ResponseData) Value() (driver.Value, error) {
	if d == nil {
		d = ResponseData{}
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (d *ResponseData) Scan(src any) error {
	return scanJSON(src, d)
}

func scanJSON(src any, dst any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	case nil:
		return nil
	default:
		return fmt.Errorf("cannot scan %T as JSON", src)
	}
}
