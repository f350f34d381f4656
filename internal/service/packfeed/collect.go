package packfeed

// Collect группирует записи по составному ключу.
// Порядок групп - порядок первого появления ключа во входной
// последовательности; внутри группы сохраняется исходный относительный
// порядок записей (стабильное разбиение, не сортировка).
// Каждая входная запись попадает ровно в одну группу, пустых групп не бывает.
func Collect[T any, K comparable](items []T, key func(T) K) [][]T {
	indexByKey := make(map[K]int, len(items))
	groups := make([][]T, 0)

	for _, item := range items {
		k := key(item)
		idx, seen := indexByKey[k]
		if !seen {
			idx = len(groups)
			indexByKey[k] = idx
			groups = append(groups, nil)
		}
		groups[idx] = append(groups[idx], item)
	}

	return groups
}
