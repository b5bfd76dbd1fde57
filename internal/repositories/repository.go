package repositories

import (
	"errors"
	"math"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is wrapped by every lookup that matches no row.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is wrapped when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate")
)

// Page selects a 1-based page of Size rows.
type Page struct {
	Number int
	Size   int
}

// Offset is the number of rows skipped before the page.
func (p Page) Offset() int {
	if p.Number < 1 || p.Size <= 0 {
		return 0
	}
	if p.Number-1 > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return (p.Number - 1) * p.Size
}

func (p Page) scope(db *gorm.DB) *gorm.DB {
	if p.Size <= 0 {
		return db
	}
	return db.Offset(p.Offset()).Limit(p.Size)
}

// translate folds gorm sentinels into the package sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsLike is the condition matching likePattern against LOWER(column).
func containsLike(column string) string {
	return "LOWER(" + column + ") LIKE ? ESCAPE '\\'"
}

// likePattern builds a case-insensitive contains pattern with wildcards in s
// matched literally.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(s))) + "%"
}
