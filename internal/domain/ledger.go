package domain

import (
	"time"

	"github.com/google/uuid"
)

// Четыре коллекции леджера. Составные первичные ключи делают каждую из них
// множеством: дубликат (user_id, course_id) невозможен на уровне стора.

type CartItem struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	CourseID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"course_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Purchase struct {
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"user_id"`
	CourseID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"course_id"`
	PurchasedAt time.Time `json:"purchased_at"`
}

// CompletedVideo — одна запись на каждое досмотренное видео.
type CompletedVideo struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"user_id"`
	CourseID  uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"course_id"`
	VideoID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"video_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Certificate struct {
	UserID   uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"user_id"`
	CourseID uuid.UUID `gorm:"type:uuid;primaryKey" json:"course_id"`
	IssuedAt time.Time `json:"issued_at"`
}

type Favorite struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"user_id"`
	CourseID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"course_id"`
	CreatedAt time.Time `json:"created_at"`
}
