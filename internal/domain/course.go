package domain

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID     uuid.UUID `gorm:"type:uuid;index" json:"owner_id"`
	Title       string    `gorm:"index" json:"title"`
	Description string    `json:"description"`
	Category    string    `gorm:"index" json:"category"`
	Price       int       `json:"price"` // Цена в рублях

	// Связь один-ко-многим: у курса много видео
	Videos []Video `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;" json:"videos,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Video struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID    uuid.UUID `gorm:"type:uuid;index" json:"course_id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	Order       int       `json:"order"` // Для сортировки (1, 2, 3...)

	CreatedAt time.Time `json:"created_at"`
}
