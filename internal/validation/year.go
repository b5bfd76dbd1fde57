package validation

import (
	"fmt"
	"time"
)

// MinTitleYear is the earliest release year a title may carry.
const MinTitleYear = 1700

// now is swapped in tests.
var now = time.Now

// ValidateYear fails when year is before MinTitleYear or later than next year.
func ValidateYear(year int) error {
	maxYear := now().Year() + 1
	if year < MinTitleYear || year > maxYear {
		return NewError("year", fmt.Sprintf("year must be between %d and %d", MinTitleYear, maxYear))
	}
	return nil
}
