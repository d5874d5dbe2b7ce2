package models

import "time"

// HardWord marks a (spanish, english) pair the user flagged as difficult.
// It carries no scheduling state of its own.
type HardWord struct {
	ID        int64     `json:"id" db:"id"`
	Spanish   string    `json:"spanish" db:"spanish"`
	English   string    `json:"english" db:"english"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
