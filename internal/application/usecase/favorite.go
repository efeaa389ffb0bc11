package usecase

import (
	"context"
	"time"

	"courseledger/internal/domain"
	"courseledger/internal/infrastructure/repository"
	"courseledger/internal/pkg/logger"

	"github.com/google/uuid"
)

// Избранное живет по тем же set-операторам, что и корзина,
// но без каких-либо предусловий по покупке.
type FavoriteUseCase struct {
	courses *repository.CourseRepository
	ledger  *repository.LedgerRepository
	log     *logger.Logger
}

func NewFavoriteUseCase(cr *repository.CourseRepository, lr *repository.LedgerRepository, log *logger.Logger) *FavoriteUseCase {
	return &FavoriteUseCase{courses: cr, ledger: lr, log: log}
}

func (uc *FavoriteUseCase) Add(ctx context.Context, userID, courseID uuid.UUID) ([]domain.Course, error) {
	if courseID == uuid.Nil {
		return nil, domain.Invalid("course id is required")
	}

	exists, err := uc.courses.Exists(ctx, courseID)
	if err != nil {
		return nil, domain.Internal(err)
	}
	if !exists {
		return nil, domain.NotFound("course not found")
	}

	fav := &domain.Favorite{UserID: userID, CourseID: courseID, CreatedAt: time.Now()}
	if _, err := uc.ledger.AddFavorite(ctx, fav); err != nil {
		uc.log.Error("favorite add failed", "user_id", userID, "course_id", courseID, "error", err)
		return nil, domain.Internal(err)
	}
	return uc.List(ctx, userID)
}

func (uc *FavoriteUseCase) Remove(ctx context.Context, userID, courseID uuid.UUID) ([]domain.Course, error) {
	if courseID == uuid.Nil {
		return nil, domain.Invalid("course id is required")
	}

	exists, err := uc.courses.Exists(ctx, courseID)
	if err != nil {
		return nil, domain.Internal(err)
	}
	if !exists {
		return nil, domain.NotFound("course not found")
	}

	removed, err := uc.ledger.RemoveFavorite(ctx, userID, courseID)
	if err != nil {
		return nil, domain.Internal(err)
	}
	if !removed {
		return nil, domain.Conflict("course is not in favorites")
	}
	return uc.List(ctx, userID)
}

func (uc *FavoriteUseCase) List(ctx context.Context, userID uuid.UUID) ([]domain.Course, error) {
	ids, err := uc.ledger.FavoriteCourseIDs(ctx, userID)
	if err != nil {
		return nil, domain.Internal(err)
	}
	courses, err := uc.courses.ByIDs(ctx, ids)
	if err != nil {
		return nil, domain.Internal(err)
	}
	return courses, nil
}
