package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList stores an ordered list of strings as a JSON column.
type StringList []string

// Value implements driver.Valuer. A nil list is stored as [].
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}
}

// GormDataType tells GORM which column type to create.
func (StringList) GormDataType() string { return "jsonb" }

// JSONMap stores an open string-keyed mapping as a JSON column. It backs the
// per-type structured extension data on reservations.
type JSONMap map[string]interface{}

// Value implements driver.Valuer. A nil map is stored as {}.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		m = JSONMap{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = JSONMap{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("cannot scan %T into JSONMap", value)
	}
}

// GormDataType tells GORM which column type to create.
func (JSONMap) GormDataType() string { return "jsonb" }

const dateLayout = "2006-01-02"

// DateOnly is a calendar date without a time component, serialized as
// "YYYY-MM-DD" in JSON and stored in a DATE column.
type DateOnly time.Time

// MarshalJSON formats the date as "YYYY-MM-DD".
func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(d).Format(dateLayout) + `"`), nil
}

// UnmarshalJSON parses a "YYYY-MM-DD" string.
func (d *DateOnly) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	*d = DateOnly(t)
	return nil
}

// Value implements driver.Valuer.
func (d DateOnly) Value() (driver.Value, error) {
	return time.Time(d), nil
}

// Scan implements sql.Scanner.
func (d *DateOnly) Scan(value interface{}) error {
	switch v := value.(type) {
	case time.Time:
		*d = DateOnly(v)
		return nil
	case []byte:
		return d.parse(string(v))
	case string:
		return d.parse(v)
	default:
		return fmt.Errorf("cannot scan %T into DateOnly", value)
	}
}

func (d *DateOnly) parse(s string) error {
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	*d = DateOnly(t)
	return nil
}

// GormDataType tells GORM which column type to create.
func (DateOnly) GormDataType() string { return "date" }

// String returns the date in YYYY-MM-DD form.
func (d DateOnly) String() string { return time.Time(d).Format(dateLayout) }
