package pagination

// DefaultLimit is the standard page size when a limit is not provided.
const DefaultLimit = 20

// MaxLimit caps how many rows any list query can request.
const MaxLimit = 100

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// NormalizePage coerces the page number to a sane lower bound.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// Offset converts page/limit into a row offset.
func Offset(page, limit int) int {
	return (NormalizePage(page) - 1) * NormalizeLimit(limit)
}

// TotalPages computes the page count for the given total row count.
func TotalPages(total int64, limit int) int {
	limit = NormalizeLimit(limit)
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	if pages < 1 {
		pages = 1
	}
	return pages
}
