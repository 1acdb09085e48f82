package appeals

// PerPage — размер страницы в админ-панели.
const PerPage = 5

// Pages считает число страниц: ceil(count/perPage), 0 при пустой выборке.
func Pages(count int64, perPage int) int {
	if count <= 0 || perPage <= 0 {
		return 0
	}
	return int((count + int64(perPage) - 1) / int64(perPage))
}
