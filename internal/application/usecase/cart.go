package usecase

import (
	"context"
	"time"

	"courseledger/internal/domain"
	"courseledger/internal/infrastructure/repository"
	"courseledger/internal/pkg/logger"

	"github.com/google/uuid"
)

type CartUseCase struct {
	courses *repository.CourseRepository
	ledger  *repository.LedgerRepository
	log     *logger.Logger
}

func NewCartUseCase(cr *repository.CourseRepository, lr *repository.LedgerRepository, log *logger.Logger) *CartUseCase {
	return &CartUseCase{courses: cr, ledger: lr, log: log}
}

// Add — идемпотентная вставка в корзину. Проверки владения или покупки нет:
// фронт сам прячет кнопку у купленных курсов.
func (uc *CartUseCase) Add(ctx context.Context, userID, courseID uuid.UUID) ([]domain.Course, error) {
	if courseID == uuid.Nil {
		return nil, domain.Invalid("course id is required")
	}

	exists, err := uc.courses.Exists(ctx, courseID)
	if err != nil {
		uc.log.Error("cart add: course lookup failed", "error", err)
		return nil, domain.Internal(err)
	}
	if !exists {
		return nil, domain.NotFound("course not found")
	}

	item := &domain.CartItem{UserID: userID, CourseID: courseID, CreatedAt: time.Now()}
	if _, err := uc.ledger.AddCartItem(ctx, item); err != nil {
		uc.log.Error("cart add failed", "user_id", userID, "course_id", courseID, "error", err)
		return nil, domain.Internal(err)
	}

	return uc.List(ctx, userID)
}

func (uc *CartUseCase) Remove(ctx context.Context, userID, courseID uuid.UUID) ([]domain.Course, error) {
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

	removed, err := uc.ledger.RemoveCartItem(ctx, userID, courseID)
	if err != nil {
		uc.log.Error("cart remove failed", "user_id", userID, "course_id", courseID, "error", err)
		return nil, domain.Internal(err)
	}
	if !removed {
		return nil, domain.Conflict("course is not in the cart")
	}

	return uc.List(ctx, userID)
}

// List возвращает документы курсов из корзины. Пустая корзина — успех.
func (uc *CartUseCase) List(ctx context.Context, userID uuid.UUID) ([]domain.Course, error) {
	ids, err := uc.ledger.CartCourseIDs(ctx, userID)
	if err != nil {
		return nil, domain.Internal(err)
	}
	courses, err := uc.courses.ByIDs(ctx, ids)
	if err != nil {
		return nil, domain.Internal(err)
	}
	return courses, nil
}
