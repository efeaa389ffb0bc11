package usecase

import (
	"context"
	"errors"
	"time"

	"courseledger/internal/domain"
	"courseledger/internal/infrastructure/repository"
	"courseledger/internal/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogUseCase — тонкий CRUD каталога. Леджер контент курсов не мутирует,
// эти операции нужны инструкторам и странице курса.
type CatalogUseCase struct {
	courses *repository.CourseRepository
	ledger  *repository.LedgerRepository
	log     *logger.Logger
}

func NewCatalogUseCase(cr *repository.CourseRepository, lr *repository.LedgerRepository, log *logger.Logger) *CatalogUseCase {
	return &CatalogUseCase{courses: cr, ledger: lr, log: log}
}

type CourseList struct {
	Courses []domain.Course `json:"courses"`
	Total   int64           `json:"total"`
}

// VideoView — видео в выдаче детали курса. URL отдается только покупателю
// и владельцу, флаг Completed — только покупателю.
type VideoView struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url,omitempty"`
	Description string    `json:"description"`
	Order       int       `json:"order"`
	Completed   bool      `json:"completed"`
}

type CourseDetail struct {
	Course    domain.Course `json:"course"`
	Videos    []VideoView   `json:"videos"`
	Purchased bool          `json:"purchased"`
}

type NewVideo struct {
	Title       string `json:"title" binding:"required"`
	URL         string `json:"url" binding:"required"`
	Description string `json:"description"`
}

type NewCourse struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Price       int        `json:"price"`
	Videos      []NewVideo `json:"videos"`
}

func (uc *CatalogUseCase) List(ctx context.Context, search, category string, limit, offset int) (*CourseList, error) {
	if limit <= 0 {
		limit = 20
	}
	courses, total, err := uc.courses.List(ctx, search, category, limit, offset)
	if err != nil {
		return nil, domain.Internal(err)
	}
	return &CourseList{Courses: courses, Total: total}, nil
}

// Get собирает деталь курса и, если вызывающий известен, сливает в нее
// пометки "просмотрено" из его прогресса.
func (uc *CatalogUseCase) Get(ctx context.Context, userID, courseID uuid.UUID) (*CourseDetail, error) {
	if courseID == uuid.Nil {
		return nil, domain.Invalid("course id is required")
	}

	course, err := uc.courses.GetWithVideos(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("course not found")
		}
		return nil, domain.Internal(err)
	}

	purchased := false
	completedIDs := make(map[uuid.UUID]bool)
	if userID != uuid.Nil {
		purchased, err = uc.ledger.HasPurchase(ctx, userID, courseID)
		if err != nil {
			return nil, domain.Internal(err)
		}
		if purchased {
			ids, err := uc.ledger.CompletedVideoIDs(ctx, userID, courseID)
			if err != nil {
				return nil, domain.Internal(err)
			}
			for _, id := range ids {
				completedIDs[id] = true
			}
		}
	}

	isOwner := userID != uuid.Nil && userID == course.OwnerID

	videos := make([]VideoView, 0, len(course.Videos))
	for _, v := range course.Videos {
		view := VideoView{
			ID:          v.ID,
			Title:       v.Title,
			Description: v.Description,
			Order:       v.Order,
		}
		if purchased || isOwner {
			view.URL = v.URL
			view.Completed = completedIDs[v.ID]
		}
		videos = append(videos, view)
	}

	detail := &CourseDetail{Course: *course, Videos: videos, Purchased: purchased}
	detail.Course.Videos = nil // видео уже в Videos, без URL-ов
	return detail, nil
}

func (uc *CatalogUseCase) Create(ctx context.Context, ownerID uuid.UUID, input NewCourse) (*domain.Course, error) {
	if input.Title == "" {
		return nil, domain.Invalid("title is required")
	}

	courseID := uuid.New()
	course := &domain.Course{
		ID:          courseID,
		OwnerID:     ownerID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
	}
	for i, v := range input.Videos {
		course.Videos = append(course.Videos, domain.Video{
			ID:          uuid.New(),
			CourseID:    courseID,
			Title:       v.Title,
			URL:         v.URL,
			Description: v.Description,
			Order:       i + 1,
			CreatedAt:   time.Now(),
		})
	}

	if err := uc.courses.Create(ctx, course); err != nil {
		uc.log.Error("course create failed", "owner_id", ownerID, "error", err)
		return nil, domain.Internal(err)
	}

	uc.log.Info("course published", "course_id", courseID, "owner_id", ownerID, "videos", len(course.Videos))
	return course, nil
}

func (uc *CatalogUseCase) Delete(ctx context.Context, callerID, courseID uuid.UUID) error {
	if courseID == uuid.Nil {
		return domain.Invalid("course id is required")
	}

	course, err := uc.courses.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NotFound("course not found")
		}
		return domain.Internal(err)
	}
	if course.OwnerID != callerID {
		return domain.Forbidden("only the course owner can delete it")
	}

	if err := uc.courses.Delete(ctx, courseID); err != nil {
		uc.log.Error("course delete failed", "course_id", courseID, "error", err)
		return domain.Internal(err)
	}
	return nil
}
