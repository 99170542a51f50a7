package util

// PageSize is fixed for product listings.
const PageSize = 5

func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
