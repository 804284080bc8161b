package entities

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is an ordered list of strings persisted as a JSON array in a TEXT column.
// The empty list is always stored as "[]" and read back as a non-nil empty slice.
type StringList []string

// EncodeList serializes a list to its stored textual form.
func EncodeList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("encode list: %w", err)
	}
	return string(raw), nil
}

// DecodeList parses the stored textual form back into a list.
// Empty and "null" columns decode to an empty list.
func DecodeList(text string) ([]string, error) {
	if text == "" || text == "null" {
		return []string{}, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(text), &list); err != nil {
		return nil, fmt.Errorf("decode list %q: %w", text, err)
	}
	if list == nil {
		list = []string{}
	}
	return list, nil
}

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	return EncodeList(l)
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	var text string
	switch v := src.(type) {
	case nil:
	case string:
		text = v
	case []byte:
		text = string(v)
	default:
		return fmt.Errorf("scan list: unsupported type %T", src)
	}

	list, err := DecodeList(text)
	if err != nil {
		return err
	}
	*l = list
	return nil
}

// GormDataType tells AutoMigrate to use a TEXT column.
func (StringList) GormDataType() string {
	return "text"
}

// MarshalJSON keeps empty lists as [] rather than null in API responses.
func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}
