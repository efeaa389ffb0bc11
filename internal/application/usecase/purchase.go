package usecase

import (
	"context"
	"time"

	"courseledger/internal/domain"
	"courseledger/internal/infrastructure/repository"
	"courseledger/internal/pkg/logger"

	"github.com/google/uuid"
)

type PurchaseUseCase struct {
	courses *repository.CourseRepository
	ledger  *repository.LedgerRepository
	log     *logger.Logger
}

func NewPurchaseUseCase(cr *repository.CourseRepository, lr *repository.LedgerRepository, log *logger.Logger) *PurchaseUseCase {
	return &PurchaseUseCase{courses: cr, ledger: lr, log: log}
}

// PurchasedCourse — строка списка покупок: документ курса плюс момент покупки.
type PurchasedCourse struct {
	Course      domain.Course `json:"course"`
	PurchasedAt time.Time     `json:"purchased_at"`
}

// Buy — прямая покупка. Вставка в purchases и удаление из корзины идут одной
// транзакцией стора; если вставка не произошла, покупка уже была и корзина
// не трогается. Гонка двух одинаковых Buy решается на уровне стора, а не чтением.
func (uc *PurchaseUseCase) Buy(ctx context.Context, userID, courseID uuid.UUID) (*domain.Purchase, error) {
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

	p := &domain.Purchase{UserID: userID, CourseID: courseID, PurchasedAt: time.Now()}
	inserted, err := uc.ledger.CreatePurchase(ctx, p)
	if err != nil {
		uc.log.Error("buy failed", "user_id", userID, "course_id", courseID, "error", err)
		return nil, domain.Internal(err)
	}
	if !inserted {
		return nil, domain.Conflict("course already bought")
	}

	uc.log.Info("course bought", "user_id", userID, "course_id", courseID)
	return p, nil
}

// Checkout — батч-покупка всего списка. Дубликаты молча поглощаются
// (checkout идемпотентен по каждому id), существование курсов по id
// намеренно не перепроверяется.
func (uc *PurchaseUseCase) Checkout(ctx context.Context, userID uuid.UUID, courseIDs []uuid.UUID) ([]domain.Purchase, error) {
	if len(courseIDs) == 0 {
		return nil, domain.Invalid("course ids are required")
	}

	now := time.Now()
	purchases := make([]domain.Purchase, 0, len(courseIDs))
	for _, id := range courseIDs {
		if id == uuid.Nil {
			return nil, domain.Invalid("course id is required")
		}
		purchases = append(purchases, domain.Purchase{UserID: userID, CourseID: id, PurchasedAt: now})
	}

	if err := uc.ledger.CreatePurchases(ctx, purchases); err != nil {
		uc.log.Error("checkout failed", "user_id", userID, "error", err)
		return nil, domain.Internal(err)
	}

	uc.log.Info("checkout done", "user_id", userID, "count", len(purchases))
	return purchases, nil
}

// Withdraw убирает курс из купленных. Прогресс и сертификат НЕ каскадятся:
// после повторной покупки курс продолжается с прежней историей просмотра.
func (uc *PurchaseUseCase) Withdraw(ctx context.Context, userID, courseID uuid.UUID) error {
	if courseID == uuid.Nil {
		return domain.Invalid("course id is required")
	}

	removed, err := uc.ledger.DeletePurchase(ctx, userID, courseID)
	if err != nil {
		uc.log.Error("withdraw failed", "user_id", userID, "course_id", courseID, "error", err)
		return domain.Internal(err)
	}
	if !removed {
		return domain.Conflict("course is not bought")
	}
	return nil
}

func (uc *PurchaseUseCase) List(ctx context.Context, userID uuid.UUID) ([]PurchasedCourse, error) {
	purchases, err := uc.ledger.Purchases(ctx, userID)
	if err != nil {
		return nil, domain.Internal(err)
	}

	ids := make([]uuid.UUID, 0, len(purchases))
	for _, p := range purchases {
		ids = append(ids, p.CourseID)
	}
	courses, err := uc.courses.ByIDs(ctx, ids)
	if err != nil {
		return nil, domain.Internal(err)
	}

	byID := make(map[uuid.UUID]domain.Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}

	result := make([]PurchasedCourse, 0, len(purchases))
	for _, p := range purchases {
		// Курс могли удалить из каталога — запись о покупке остается, строку пропускаем
		c, ok := byID[p.CourseID]
		if !ok {
			continue
		}
		result = append(result, PurchasedCourse{Course: c, PurchasedAt: p.PurchasedAt})
	}
	return result, nil
}
