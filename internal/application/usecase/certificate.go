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

type CertificateUseCase struct {
	courses *repository.CourseRepository
	ledger  *repository.LedgerRepository
	log     *logger.Logger
}

func NewCertificateUseCase(cr *repository.CourseRepository, lr *repository.LedgerRepository, log *logger.Logger) *CertificateUseCase {
	return &CertificateUseCase{courses: cr, ledger: lr, log: log}
}

// Issue фиксирует право на сертификат. Контракт операции — "eligibility
// recorded", сам документ генерит отдельный сервис.
// "Already issued" проверяется ДО полноты просмотра: повторный запрос после
// выдачи всегда отвечает конфликтом, а не пересчетом прогресса.
// Финальная вставка условная, так что проигравший гонку тоже получает конфликт.
func (uc *CertificateUseCase) Issue(ctx context.Context, userID, courseID uuid.UUID) (*domain.Certificate, error) {
	if courseID == uuid.Nil {
		return nil, domain.Invalid("course id is required")
	}

	bought, err := uc.ledger.HasPurchase(ctx, userID, courseID)
	if err != nil {
		return nil, domain.Internal(err)
	}
	if !bought {
		return nil, domain.Forbidden("course is not purchased")
	}

	course, err := uc.courses.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("course not found")
		}
		return nil, domain.Internal(err)
	}

	issued, err := uc.ledger.HasCertificate(ctx, userID, courseID)
	if err != nil {
		return nil, domain.Internal(err)
	}
	if issued {
		return nil, domain.Conflict("certificate already issued")
	}

	totalVideos, err := uc.courses.VideoCount(ctx, course.ID)
	if err != nil {
		return nil, domain.Internal(err)
	}
	watched, err := uc.ledger.CountCompletedVideos(ctx, userID, courseID)
	if err != nil {
		return nil, domain.Internal(err)
	}
	if watched < totalVideos {
		return nil, domain.Forbidden("course is not completed yet")
	}

	cert := &domain.Certificate{UserID: userID, CourseID: courseID, IssuedAt: time.Now()}
	inserted, err := uc.ledger.CreateCertificate(ctx, cert)
	if err != nil {
		uc.log.Error("certificate issue failed", "user_id", userID, "course_id", courseID, "error", err)
		return nil, domain.Internal(err)
	}
	if !inserted {
		return nil, domain.Conflict("certificate already issued")
	}

	uc.log.Info("certificate issued", "user_id", userID, "course_id", courseID)
	return cert, nil
}

func (uc *CertificateUseCase) List(ctx context.Context, userID uuid.UUID) ([]domain.Certificate, error) {
	certs, err := uc.ledger.Certificates(ctx, userID)
	if err != nil {
		return nil, domain.Internal(err)
	}
	return certs, nil
}
