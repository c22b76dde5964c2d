package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin      = "ADMIN"
	RoleVillaOwner = "VILLA_OWNER"
	RoleGuest      = "GUEST"
)

type User struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name      string    `json:"name"`
	Email     string    `gorm:"index" json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `gorm:"type:varchar(20);not null;default:'GUEST'" json:"role"`
	Villas    []Villa   `gorm:"foreignKey:OwnerID" json:"villas,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Location struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name      string    `gorm:"not null;uniqueIndex" json:"name"`
	State     string    `json:"state,omitempty"`
	Popular   bool      `gorm:"not null" json:"popular"`
	CreatedAt time.Time `json:"createdAt"`
}

func (l *Location) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
