package usecase_test

import (
	"fmt"
	"testing"

	"courseledger/internal/application/usecase"
	"courseledger/internal/domain"
	"courseledger/internal/infrastructure/repository"
	"courseledger/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type env struct {
	db           *gorm.DB
	courses      *repository.CourseRepository
	ledger       *repository.LedgerRepository
	Cart         *usecase.CartUseCase
	Purchases    *usecase.PurchaseUseCase
	Progress     *usecase.ProgressUseCase
	Certificates *usecase.CertificateUseCase
	Favorites    *usecase.FavoriteUseCase
	Catalog      *usecase.CatalogUseCase
}

func newTestEnv(t *testing.T) *env {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// :memory: живет на соединение — держим ровно одно
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&domain.Course{},
		&domain.Video{},
		&domain.CartItem{},
		&domain.Purchase{},
		&domain.CompletedVideo{},
		&domain.Certificate{},
		&domain.Favorite{},
	))

	courses := repository.NewCourseRepository(db, nil)
	ledger := repository.NewLedgerRepository(db)
	log := logger.Nop()

	return &env{
		db:           db,
		courses:      courses,
		ledger:       ledger,
		Cart:         usecase.NewCartUseCase(courses, ledger, log),
		Purchases:    usecase.NewPurchaseUseCase(courses, ledger, log),
		Progress:     usecase.NewProgressUseCase(courses, ledger, log),
		Certificates: usecase.NewCertificateUseCase(courses, ledger, log),
		Favorites:    usecase.NewFavoriteUseCase(courses, ledger, log),
		Catalog:      usecase.NewCatalogUseCase(courses, ledger, log),
	}
}

// seedCourse публикует курс с numVideos видео и возвращает его с видео внутри.
func (e *env) seedCourse(t *testing.T, ownerID uuid.UUID, numVideos int) *domain.Course {
	t.Helper()

	input := usecase.NewCourse{
		Title:    fmt.Sprintf("Course %s", uuid.NewString()[:8]),
		Category: "Программирование",
		Price:    1000,
	}
	for i := 0; i < numVideos; i++ {
		input.Videos = append(input.Videos, usecase.NewVideo{
			Title: fmt.Sprintf("Video %d", i+1),
			URL:   fmt.Sprintf("https://cdn.example.com/video-%d.mp4", i+1),
		})
	}

	course, err := e.Catalog.Create(t.Context(), ownerID, input)
	require.NoError(t, err)
	return course
}

func (e *env) buy(t *testing.T, userID uuid.UUID, courseID uuid.UUID) {
	t.Helper()
	_, err := e.Purchases.Buy(t.Context(), userID, courseID)
	require.NoError(t, err)
}
