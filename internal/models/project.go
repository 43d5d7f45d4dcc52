package models

import "time"

// Statuses the frontend offers. The field itself is free form.
const (
	StatusPlanned    = "à prévoir"
	StatusInProgress = "en cours"
	StatusDone       = "terminé"
)

// Project is a stored project record. OwnerID and CreatedAt are set once
// at creation; only Status changes afterwards.
type Project struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	OwnerID     int       `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
}
