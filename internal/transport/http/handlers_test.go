package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"courseledger/internal/application/usecase"
	"courseledger/internal/domain"
	"courseledger/internal/infrastructure/repository"
	"courseledger/internal/infrastructure/security"
	"courseledger/internal/middleware"
	"courseledger/internal/pkg/logger"
	handlers "courseledger/internal/transport/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testServer struct {
	router *gin.Engine
	tm     *security.TokenManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&domain.Course{}, &domain.Video{}, &domain.CartItem{}, &domain.Purchase{},
		&domain.CompletedVideo{}, &domain.Certificate{}, &domain.Favorite{},
	))

	courses := repository.NewCourseRepository(db, nil)
	ledger := repository.NewLedgerRepository(db)
	log := logger.Nop()

	tm := security.NewTokenManager("test-secret")
	// Redis тут недоступен — лимитер обязан пропускать запросы
	limiter := middleware.NewRateLimiter(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}))

	router := handlers.NewRouter(
		handlers.NewCourseHandler(usecase.NewCatalogUseCase(courses, ledger, log)),
		handlers.NewCartHandler(usecase.NewCartUseCase(courses, ledger, log)),
		handlers.NewPurchaseHandler(usecase.NewPurchaseUseCase(courses, ledger, log)),
		handlers.NewProgressHandler(usecase.NewProgressUseCase(courses, ledger, log)),
		handlers.NewCertificateHandler(usecase.NewCertificateUseCase(courses, ledger, log)),
		handlers.NewFavoriteHandler(usecase.NewFavoriteUseCase(courses, ledger, log)),
		limiter,
		tm,
		"",
	)

	return &testServer{router: router, tm: tm}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return w.Code, env
}

func (s *testServer) token(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := s.tm.Generate(userID.String())
	require.NoError(t, err)
	return token
}

func (s *testServer) publishCourse(t *testing.T, ownerToken string, numVideos int) (uuid.UUID, []uuid.UUID) {
	t.Helper()

	body := map[string]interface{}{
		"title":    "Fullstack Go Разработчик",
		"category": "Программирование",
		"price":    4990,
	}
	var videos []map[string]string
	for i := 0; i < numVideos; i++ {
		videos = append(videos, map[string]string{
			"title": fmt.Sprintf("Урок %d", i+1),
			"url":   fmt.Sprintf("https://cdn.example.com/lesson-%d.mp4", i+1),
		})
	}
	body["videos"] = videos

	code, env := s.do(t, http.MethodPost, "/api/v1/courses", ownerToken, body)
	require.Equal(t, http.StatusCreated, code)
	require.True(t, env.Success)

	var course domain.Course
	require.NoError(t, json.Unmarshal(env.Data, &course))
	videoIDs := make([]uuid.UUID, 0, len(course.Videos))
	for _, v := range course.Videos {
		videoIDs = append(videoIDs, v.ID)
	}
	return course.ID, videoIDs
}

func TestHTTP_RequiresAuth(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/v1/cart", "/api/v1/purchases", "/api/v1/certificates"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestHTTP_MalformedCourseID(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, uuid.New())

	code, env := s.do(t, http.MethodPost, "/api/v1/cart/not-a-uuid", token, nil)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, env.Success)
}

func TestHTTP_FullLearningFlow(t *testing.T) {
	// Публикация -> корзина -> покупка -> просмотр -> сертификат
	s := newTestServer(t)
	owner := s.token(t, uuid.New())
	student := s.token(t, uuid.New())

	courseID, videoIDs := s.publishCourse(t, owner, 2)

	// В корзину
	code, env := s.do(t, http.MethodPost, "/api/v1/cart/"+courseID.String(), student, nil)
	require.Equal(t, http.StatusOK, code)
	require.True(t, env.Success)

	// Покупка — курс уходит из корзины
	code, env = s.do(t, http.MethodPost, "/api/v1/purchases/"+courseID.String(), student, nil)
	require.Equal(t, http.StatusCreated, code)
	require.True(t, env.Success)

	code, env = s.do(t, http.MethodGet, "/api/v1/cart", student, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, "[]", string(env.Data))

	// Сертификат до просмотра — 403
	code, env = s.do(t, http.MethodPost, "/api/v1/certificates/"+courseID.String(), student, nil)
	require.Equal(t, http.StatusForbidden, code)
	assert.False(t, env.Success)

	// Смотрим оба видео
	for _, vid := range videoIDs {
		code, env = s.do(t, http.MethodPost,
			fmt.Sprintf("/api/v1/progress/%s/videos/%s", courseID, vid), student, nil)
		require.Equal(t, http.StatusOK, code, env.Message)
	}

	// Теперь сертификат выдается
	code, env = s.do(t, http.MethodPost, "/api/v1/certificates/"+courseID.String(), student, nil)
	require.Equal(t, http.StatusCreated, code)
	require.True(t, env.Success)

	// Повторная выдача — 409
	code, env = s.do(t, http.MethodPost, "/api/v1/certificates/"+courseID.String(), student, nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.False(t, env.Success)
	assert.Equal(t, "certificate already issued", env.Message)
}

func TestHTTP_BuyTwice_Conflict(t *testing.T) {
	s := newTestServer(t)
	owner := s.token(t, uuid.New())
	student := s.token(t, uuid.New())
	courseID, _ := s.publishCourse(t, owner, 1)

	code, _ := s.do(t, http.MethodPost, "/api/v1/purchases/"+courseID.String(), student, nil)
	require.Equal(t, http.StatusCreated, code)

	code, env := s.do(t, http.MethodPost, "/api/v1/purchases/"+courseID.String(), student, nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.False(t, env.Success)
	assert.Equal(t, "course already bought", env.Message)
}

func TestHTTP_Checkout(t *testing.T) {
	s := newTestServer(t)
	owner := s.token(t, uuid.New())
	student := s.token(t, uuid.New())
	c1, _ := s.publishCourse(t, owner, 1)
	c2, _ := s.publishCourse(t, owner, 1)

	code, env := s.do(t, http.MethodPost, "/api/v1/purchases/checkout", student, map[string]interface{}{
		"course_ids": []string{c1.String(), c2.String()},
	})
	require.Equal(t, http.StatusCreated, code)
	require.True(t, env.Success)

	code, env = s.do(t, http.MethodGet, "/api/v1/purchases", student, nil)
	require.Equal(t, http.StatusOK, code)
	var purchases []usecase.PurchasedCourse
	require.NoError(t, json.Unmarshal(env.Data, &purchases))
	assert.Len(t, purchases, 2)
}

func TestHTTP_Checkout_MalformedID(t *testing.T) {
	s := newTestServer(t)
	student := s.token(t, uuid.New())

	code, env := s.do(t, http.MethodPost, "/api/v1/purchases/checkout", student, map[string]interface{}{
		"course_ids": []string{"garbage"},
	})

	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, env.Success)
}

func TestHTTP_CourseDetail_PublicWithoutToken(t *testing.T) {
	s := newTestServer(t)
	owner := s.token(t, uuid.New())
	courseID, _ := s.publishCourse(t, owner, 1)

	code, env := s.do(t, http.MethodGet, "/api/v1/courses/"+courseID.String(), "", nil)

	require.Equal(t, http.StatusOK, code)
	require.True(t, env.Success)

	var detail usecase.CourseDetail
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	require.Len(t, detail.Videos, 1)
	assert.Empty(t, detail.Videos[0].URL)
}
