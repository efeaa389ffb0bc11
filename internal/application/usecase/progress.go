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

type ProgressUseCase struct {
	courses *repository.CourseRepository
	ledger  *repository.LedgerRepository
	log     *logger.Logger
}

func NewProgressUseCase(cr *repository.CourseRepository, lr *repository.LedgerRepository, log *logger.Logger) *ProgressUseCase {
	return &ProgressUseCase{courses: cr, ledger: lr, log: log}
}

// WatchProgress — снимок прогресса по курсу после отметки.
type WatchProgress struct {
	CourseID    uuid.UUID   `json:"course_id"`
	Completed   []uuid.UUID `json:"completed_video_ids"`
	TotalVideos int         `json:"total_videos"`
}

// MarkVideoComplete отмечает видео досмотренным. Порядок проверок фиксирован:
// не куплен -> 403, курса нет -> 404, видео нет в курсе -> 404.
// Повторная отметка того же видео — no-op. Сертификат здесь НЕ выдается,
// его запрашивают отдельной операцией.
func (uc *ProgressUseCase) MarkVideoComplete(ctx context.Context, userID, courseID, videoID uuid.UUID) (*WatchProgress, error) {
	if courseID == uuid.Nil || videoID == uuid.Nil {
		return nil, domain.Invalid("course id and video id are required")
	}

	bought, err := uc.ledger.HasPurchase(ctx, userID, courseID)
	if err != nil {
		return nil, domain.Internal(err)
	}
	if !bought {
		return nil, domain.Forbidden("course is not purchased")
	}

	course, err := uc.courses.GetWithVideos(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("course not found")
		}
		return nil, domain.Internal(err)
	}

	found := false
	for _, v := range course.Videos {
		if v.ID == videoID {
			found = true
			break
		}
	}
	if !found {
		return nil, domain.NotFound("video does not exist in course")
	}

	cv := &domain.CompletedVideo{UserID: userID, CourseID: courseID, VideoID: videoID, CreatedAt: time.Now()}
	if err := uc.ledger.AddCompletedVideo(ctx, cv); err != nil {
		uc.log.Error("mark video failed", "user_id", userID, "video_id", videoID, "error", err)
		return nil, domain.Internal(err)
	}

	completed, err := uc.ledger.CompletedVideoIDs(ctx, userID, courseID)
	if err != nil {
		return nil, domain.Internal(err)
	}

	return &WatchProgress{
		CourseID:    courseID,
		Completed:   completed,
		TotalVideos: len(course.Videos),
	}, nil
}

// CompletedVideoIDs — read-сторона для страницы курса (пометки "просмотрено").
func (uc *ProgressUseCase) CompletedVideoIDs(ctx context.Context, userID, courseID uuid.UUID) ([]uuid.UUID, error) {
	ids, err := uc.ledger.CompletedVideoIDs(ctx, userID, courseID)
	if err != nil {
		return nil, domain.Internal(err)
	}
	return ids, nil
}
