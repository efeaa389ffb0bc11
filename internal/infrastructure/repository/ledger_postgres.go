package repository

import (
	"context"

	"courseledger/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LedgerRepository — узкое API мутаций по коллекциям леджера.
// Каждая операция трогает ровно одну коллекцию (Buy/Checkout — две, но в одной
// транзакции), поэтому параллельные мутации разных коллекций не теряют записи.
// Условные вставки (ON CONFLICT DO NOTHING) возвращают флаг "вставилось или нет" —
// проверка и запись становятся одним атомарным шагом стора.
type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// === CART ===

func (r *LedgerRepository) AddCartItem(ctx context.Context, item *domain.CartItem) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(item)
	return res.RowsAffected > 0, res.Error
}

func (r *LedgerRepository) RemoveCartItem(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Delete(&domain.CartItem{})
	return res.RowsAffected > 0, res.Error
}

func (r *LedgerRepository) CartCourseIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var items []domain.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.CourseID)
	}
	return ids, nil
}

// === PURCHASES ===

// CreatePurchase атомарно добавляет покупку и убирает курс из корзины.
// Если запись уже есть, вставка не происходит и корзина не трогается.
func (r *LedgerRepository) CreatePurchase(ctx context.Context, p *domain.Purchase) (bool, error) {
	inserted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(p)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		inserted = true
		return tx.Where("user_id = ? AND course_id = ?", p.UserID, p.CourseID).
			Delete(&domain.CartItem{}).Error
	})
	return inserted, err
}

// CreatePurchases — батч для checkout: дубликаты молча поглощаются,
// все указанные курсы выдергиваются из корзины той же транзакцией.
func (r *LedgerRepository) CreatePurchases(ctx context.Context, purchases []domain.Purchase) error {
	if len(purchases) == 0 {
		return nil
	}
	userID := purchases[0].UserID
	ids := make([]uuid.UUID, 0, len(purchases))
	for _, p := range purchases {
		ids = append(ids, p.CourseID)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&purchases).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ? AND course_id IN ?", userID, ids).
			Delete(&domain.CartItem{}).Error
	})
}

func (r *LedgerRepository) DeletePurchase(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Delete(&domain.Purchase{})
	return res.RowsAffected > 0, res.Error
}

func (r *LedgerRepository) HasPurchase(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Purchase{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

func (r *LedgerRepository) Purchases(ctx context.Context, userID uuid.UUID) ([]domain.Purchase, error) {
	var purchases []domain.Purchase
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("purchased_at desc").
		Find(&purchases).Error
	return purchases, err
}

// === WATCH PROGRESS ===

// AddCompletedVideo — идемпотентная вставка, повтор того же видео это no-op.
func (r *LedgerRepository) AddCompletedVideo(ctx context.Context, cv *domain.CompletedVideo) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(cv).Error
}

func (r *LedgerRepository) CompletedVideoIDs(ctx context.Context, userID, courseID uuid.UUID) ([]uuid.UUID, error) {
	var rows []domain.CompletedVideo
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.VideoID)
	}
	return ids, nil
}

func (r *LedgerRepository) CountCompletedVideos(ctx context.Context, userID, courseID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.CompletedVideo{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count, err
}

// === CERTIFICATES ===

func (r *LedgerRepository) CreateCertificate(ctx context.Context, cert *domain.Certificate) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(cert)
	return res.RowsAffected > 0, res.Error
}

func (r *LedgerRepository) HasCertificate(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Certificate{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

func (r *LedgerRepository) Certificates(ctx context.Context, userID uuid.UUID) ([]domain.Certificate, error) {
	var certs []domain.Certificate
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("issued_at desc").
		Find(&certs).Error
	return certs, err
}

// === FAVORITES ===

func (r *LedgerRepository) AddFavorite(ctx context.Context, fav *domain.Favorite) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(fav)
	return res.RowsAffected > 0, res.Error
}

func (r *LedgerRepository) RemoveFavorite(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Delete(&domain.Favorite{})
	return res.RowsAffected > 0, res.Error
}

func (r *LedgerRepository) FavoriteCourseIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var favs []domain.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&favs).Error
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(favs))
	for _, f := range favs {
		ids = append(ids, f.CourseID)
	}
	return ids, nil
}
