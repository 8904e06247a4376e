package models

import "time"

// User represents an account created under a session. Passwords are stored
// as provided and never rendered in responses.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-" gorm:"type:varchar(255)"`
	SessionID string    `json:"session_id,omitempty" gorm:"index;type:varchar(36)"`
	CreatedAt time.Time `json:"created_at"`
}
