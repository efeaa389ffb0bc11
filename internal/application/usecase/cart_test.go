package usecase_test

import (
	"testing"

	"courseledger/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_AddUnknownCourse_NotFound(t *testing.T) {
	e := newTestEnv(t)
	userID := uuid.New()

	_, err := e.Cart.Add(t.Context(), userID, uuid.New())

	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestCart_Add_Idempotent(t *testing.T) {
	// GIVEN: курс в корзине
	// WHEN: его добавляют второй раз
	// THEN: корзина та же, что после первого добавления
	e := newTestEnv(t)
	userID := uuid.New()
	course := e.seedCourse(t, uuid.New(), 1)

	first, err := e.Cart.Add(t.Context(), userID, course.ID)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := e.Cart.Add(t.Context(), userID, course.ID)
	require.NoError(t, err)
	assert.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
}

func TestCart_Remove_NotInCart_Conflict(t *testing.T) {
	e := newTestEnv(t)
	userID := uuid.New()
	course := e.seedCourse(t, uuid.New(), 1)

	_, err := e.Cart.Remove(t.Context(), userID, course.ID)

	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
}

func TestCart_Remove_ThenEmpty(t *testing.T) {
	e := newTestEnv(t)
	userID := uuid.New()
	course := e.seedCourse(t, uuid.New(), 1)

	_, err := e.Cart.Add(t.Context(), userID, course.ID)
	require.NoError(t, err)

	after, err := e.Cart.Remove(t.Context(), userID, course.ID)
	require.NoError(t, err)
	assert.Empty(t, after)
}

func TestCart_EmptyList_IsSuccess(t *testing.T) {
	e := newTestEnv(t)

	courses, err := e.Cart.List(t.Context(), uuid.New())

	require.NoError(t, err)
	assert.NotNil(t, courses)
	assert.Empty(t, courses)
}

func TestCart_AddAlreadyBoughtCourse_Allowed(t *testing.T) {
	// Ядро не мешает положить в корзину уже купленный курс — это забота UI
	e := newTestEnv(t)
	userID := uuid.New()
	course := e.seedCourse(t, uuid.New(), 1)
	e.buy(t, userID, course.ID)

	cart, err := e.Cart.Add(t.Context(), userID, course.ID)

	require.NoError(t, err)
	assert.Len(t, cart, 1)
}
