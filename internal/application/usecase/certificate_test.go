package usecase_test

import (
	"testing"

	"courseledger/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssue_NotPurchased_Forbidden(t *testing.T) {
	e := newTestEnv(t)
	course := e.seedCourse(t, uuid.New(), 1)

	_, err := e.Certificates.Issue(t.Context(), uuid.New(), course.ID)

	require.Error(t, err)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
}

func TestIssue_EmptyWatchHistory_Forbidden(t *testing.T) {
	// Сценарий A: курс из 3 видео куплен, ничего не смотрели — 403
	e := newTestEnv(t)
	userID := uuid.New()
	course := e.seedCourse(t, uuid.New(), 3)
	e.buy(t, userID, course.ID)

	_, err := e.Certificates.Issue(t.Context(), userID, course.ID)

	require.Error(t, err)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))

	certs, err := e.Certificates.List(t.Context(), userID)
	require.NoError(t, err)
	assert.Empty(t, certs, "failed issue must not change state")
}

func TestIssue_AllVideosWatched_Success(t *testing.T) {
	// Сценарий B: все 3 видео отмечены — сертификат выдан ровно один
	e := newTestEnv(t)
	userID := uuid.New()
	course := e.seedCourse(t, uuid.New(), 3)
	e.buy(t, userID, course.ID)

	for _, v := range course.Videos {
		_, err := e.Progress.MarkVideoComplete(t.Context(), userID, course.ID, v.ID)
		require.NoError(t, err)
	}

	cert, err := e.Certificates.Issue(t.Context(), userID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, course.ID, cert.CourseID)
	assert.False(t, cert.IssuedAt.IsZero())

	certs, err := e.Certificates.List(t.Context(), userID)
	require.NoError(t, err)
	assert.Len(t, certs, 1)
}

func TestIssue_SecondTime_Conflict(t *testing.T) {
	// Сценарий C: повторный запрос — конфликт "already issued", без изменений
	e := newTestEnv(t)
	userID := uuid.New()
	course := e.seedCourse(t, uuid.New(), 1)
	e.buy(t, userID, course.ID)

	_, err := e.Progress.MarkVideoComplete(t.Context(), userID, course.ID, course.Videos[0].ID)
	require.NoError(t, err)
	_, err = e.Certificates.Issue(t.Context(), userID, course.ID)
	require.NoError(t, err)

	_, err = e.Certificates.Issue(t.Context(), userID, course.ID)
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	certs, err := e.Certificates.List(t.Context(), userID)
	require.NoError(t, err)
	assert.Len(t, certs, 1, "at most one certificate per user and course")
}

func TestIssue_AlreadyIssuedWinsOverIncomplete(t *testing.T) {
	// "Already issued" проверяется до полноты: если после выдачи в курс
	// добавили видео, повторный запрос все равно отвечает конфликтом
	e := newTestEnv(t)
	userID := uuid.New()
	course := e.seedCourse(t, uuid.New(), 1)
	e.buy(t, userID, course.ID)

	_, err := e.Progress.MarkVideoComplete(t.Context(), userID, course.ID, course.Videos[0].ID)
	require.NoError(t, err)
	_, err = e.Certificates.Issue(t.Context(), userID, course.ID)
	require.NoError(t, err)

	// Владелец расширил курс — watched < total
	require.NoError(t, e.db.Create(&domain.Video{
		ID:       uuid.New(),
		CourseID: course.ID,
		Title:    "Bonus",
		URL:      "https://cdn.example.com/bonus.mp4",
		Order:    2,
	}).Error)

	_, err = e.Certificates.Issue(t.Context(), userID, course.ID)
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err), "conflict, not forbidden")
}

func TestIssue_ZeroVideoCourse_IssuesImmediately(t *testing.T) {
	// Курс без видео: watched (0) >= total (0) — выдача проходит
	e := newTestEnv(t)
	userID := uuid.New()
	course := e.seedCourse(t, uuid.New(), 0)
	e.buy(t, userID, course.ID)

	_, err := e.Certificates.Issue(t.Context(), userID, course.ID)
	require.NoError(t, err)
}
