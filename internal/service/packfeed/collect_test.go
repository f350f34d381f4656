package packfeed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	QuizID uint
	UserID uint
	Note   string
}

func TestCollect_GroupsByCompositeKey(t *testing.T) {
	// Arrange
	records := []record{
		{QuizID: 1, UserID: 5, Note: "a"},
		{QuizID: 2, UserID: 5, Note: "b"},
		{QuizID: 1, UserID: 5, Note: "c"},
		{QuizID: 1, UserID: 9, Note: "d"},
	}

	// Act
	groups := Collect(records, func(r record) [2]uint { return [2]uint{r.QuizID, r.UserID} })

	// Assert: три различных ключа - три группы в порядке первого появления
	require.Len(t, groups, 3)
	assert.Equal(t, []record{{1, 5, "a"}, {1, 5, "c"}}, groups[0], "Группа (1,5) должна сохранять исходный порядок")
	assert.Equal(t, []record{{2, 5, "b"}}, groups[1])
	assert.Equal(t, []record{{1, 9, "d"}}, groups[2])
}

func TestCollect_PreservesTotalCount(t *testing.T) {
	// Arrange
	records := []record{
		{1, 1, ""}, {1, 2, ""}, {2, 1, ""}, {1, 1, ""}, {2, 1, ""}, {3, 3, ""},
	}

	// Act
	groups := Collect(records, func(r record) [2]uint { return [2]uint{r.QuizID, r.UserID} })

	// Assert: каждая запись ровно в одной группе, пустых групп нет
	total := 0
	for _, g := range groups {
		require.NotEmpty(t, g, "Пустых групп быть не должно")
		total += len(g)
	}
	assert.Equal(t, len(records), total, "Общее количество элементов должно сохраняться")
}

func TestCollect_KeyHomogeneity(t *testing.T) {
	// Arrange
	records := []record{
		{1, 5, ""}, {2, 5, ""}, {1, 5, ""}, {2, 9, ""}, {2, 5, ""},
	}
	key := func(r record) [2]uint { return [2]uint{r.QuizID, r.UserID} }

	// Act
	groups := Collect(records, key)

	// Assert: внутри группы все записи с одинаковым ключом,
	// у разных групп ключи различны
	seen := make(map[[2]uint]bool)
	for _, g := range groups {
		k := key(g[0])
		for _, r := range g {
			assert.Equal(t, k, key(r), "Все записи группы должны иметь один ключ")
		}
		assert.False(t, seen[k], "Ключи разных групп должны быть различны")
		seen[k] = true
	}
}

func TestCollect_EmptyInput(t *testing.T) {
	groups := Collect([]record{}, func(r record) uint { return r.QuizID })
	assert.Empty(t, groups, "Пустой вход должен давать пустой результат")
}

func TestCollect_Deterministic(t *testing.T) {
	// Arrange
	records := []record{{3, 1, ""}, {1, 1, ""}, {3, 2, ""}, {1, 1, ""}}
	key := func(r record) [2]uint { return [2]uint{r.QuizID, r.UserID} }

	// Act: два запуска на одном входе
	first := Collect(records, key)
	second := Collect(records, key)

	// Assert
	assert.Equal(t, first, second, "Результат должен быть детерминированным для одного входа")
}
