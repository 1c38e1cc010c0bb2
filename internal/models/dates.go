package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DateFormat is the calendar-date layout used for check-in/check-out and
// service date columns.
const DateFormat = "2006-01-02"

// DateList is a sorted set of calendar dates (YYYY-MM-DD strings) persisted
// as a JSON array in a TEXT column. An empty list is stored as NULL.
type DateList []string

func (d DateList) Value() (driver.Value, error) {
	if len(d) == 0 {
		return nil, nil
	}
	b, err := json.Marshal([]string(d))
	if err != nil {
		return nil, fmt.Errorf("marshal date list: %w", err)
	}
	return string(b), nil
}

func (d *DateList) Scan(value any) error {
	if value == nil {
		*d = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported date list column type %T", value)
	}
	if len(raw) == 0 {
		*d = nil
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("unmarshal date list: %w", err)
	}
	*d = out
	return nil
}

// GormDataType keeps the column TEXT like the rest of the schema.
func (DateList) GormDataType() string { return "text" }

// ParseDate parses a calendar-date string in DateFormat.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}
