package model

import "time"

// Client is the agency customer a project belongs to.
type Client struct {
	ID        uint `gorm:"primaryKey"`
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time

	Projects []Project `gorm:"foreignKey:ClientID"`
}
