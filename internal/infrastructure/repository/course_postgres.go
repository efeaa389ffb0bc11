package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"courseledger/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CourseRepository struct {
	db  *gorm.DB
	rdb *redis.Client
}

// rdb может быть nil (тесты) — тогда работаем без кеша.
func NewCourseRepository(db *gorm.DB, rdb *redis.Client) *CourseRepository {
	return &CourseRepository{db: db, rdb: rdb}
}

// === КЕШИРУЕМ СПИСОК КУРСОВ ===
func (r *CourseRepository) List(ctx context.Context, search, category string, limit, offset int) ([]domain.Course, int64, error) {
	key := fmt.Sprintf("courses:list:%s:%s:%d:%d", search, category, limit, offset)

	// 1. Читаем из кеша
	if r.rdb != nil {
		val, err := r.rdb.Get(ctx, key).Result()
		if err == nil {
			var result struct {
				Courses []domain.Course
				Total   int64
			}
			if json.Unmarshal([]byte(val), &result) == nil {
				return result.Courses, result.Total, nil
			}
		}
	}

	// 2. Читаем из БД
	var courses []domain.Course
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Course{})
	if search != "" {
		query = query.Where("title ILIKE ?", "%"+search+"%")
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Limit(limit).Offset(offset).Order("created_at desc").Find(&courses).Error; err != nil {
		return nil, 0, err
	}

	// 3. Пишем в кеш (на 10 минут, курсы публикуются не часто)
	if r.rdb != nil {
		cacheData := struct {
			Courses []domain.Course
			Total   int64
		}{courses, total}
		if data, err := json.Marshal(cacheData); err == nil {
			r.rdb.Set(ctx, key, data, 10*time.Minute)
		}
	}

	return courses, total, nil
}

// === КЕШИРУЕМ ОДИН КУРС (С ВИДЕО) ===
func (r *CourseRepository) GetWithVideos(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	key := "course:detail:" + id.String()

	if r.rdb != nil {
		val, err := r.rdb.Get(ctx, key).Result()
		if err == nil {
			var c domain.Course
			if json.Unmarshal([]byte(val), &c) == nil {
				return &c, nil
			}
		}
	}

	var course domain.Course
	err := r.db.WithContext(ctx).
		Preload("Videos", func(db *gorm.DB) *gorm.DB {
			return db.Order("\"order\" asc")
		}).
		First(&course, "id = ?", id).Error
	if err != nil {
		return nil, err
	}

	if r.rdb != nil {
		if data, err := json.Marshal(course); err == nil {
			r.rdb.Set(ctx, key, data, 1*time.Hour)
		}
	}

	return &course, nil
}

func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	var course domain.Course
	err := r.db.WithContext(ctx).First(&course, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Course{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *CourseRepository) ByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Course, error) {
	if len(ids) == 0 {
		return []domain.Course{}, nil
	}
	var courses []domain.Course
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&courses).Error
	return courses, err
}

// VideoCount — целевое число видео, с которым сравнивается прогресс.
func (r *CourseRepository) VideoCount(ctx context.Context, courseID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Video{}).
		Where("course_id = ?", courseID).
		Count(&count).Error
	return count, err
}

func (r *CourseRepository) Create(ctx context.Context, c *domain.Course) error {
	// Видео сохраняются вместе с курсом одной ассоциацией
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if r.rdb != nil {
		r.rdb.Del(ctx, "course:detail:"+id.String())
	}
	return r.db.WithContext(ctx).Select("Videos").Delete(&domain.Course{ID: id}).Error
}
