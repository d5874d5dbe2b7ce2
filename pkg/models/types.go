package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// Validation errors shared by the repositories and the import pipeline
var (
	ErrEmptySpanish    = errors.New("spanish text must be a non-empty string")
	ErrEmptyEnglish    = errors.New("english text must be a non-empty string")
	ErrCounterMismatch = errors.New("times_correct cannot exceed times_studied")
)

// StringList is a string slice stored as a JSON text column
type StringList []string

// Value implements driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
}

// GameScore tracks answers for one game mode
type GameScore struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// GamePerformance maps a game type to its running score, stored as JSON text
type GamePerformance map[string]GameScore

// Value implements driver.Valuer
func (p GamePerformance) Value() (driver.Value, error) {
	if len(p) == 0 {
		return "{}", nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (p *GamePerformance) Scan(src interface{}) error {
	if src == nil {
		*p = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("cannot scan %T into GamePerformance", src)
	}
}
