package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

// Pagination defaults for admin listings.
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 200
)
