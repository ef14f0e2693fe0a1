package pagination

// CalculateOffset calculates the database OFFSET value based on page number
// and page size. Page numbers are 1-based, so page 1 has offset 0.
//
// Formula: offset = (page - 1) * pageSize
func CalculateOffset(page, pageSize int) int {
	return (page - 1) * pageSize
}

// CalculateTotalPages calculates the total number of pages using ceiling
// division. A total of 0 yields 1 page: page 1 of an empty set is valid.
func CalculateTotalPages(total int64, pageSize int) int {
	if total == 0 {
		return 1
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
