package model

import (
	"time"

	"github.com/google/uuid"
)

// FormSession is a registration form held by the server between requests.
type FormSession struct {
	ID        uuid.UUID        `json:"id"`
	Form      RegistrationForm `json:"form"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}
