package repositories

import (
	"strings"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// nameContains narrows q to rows whose name contains keyword, ignoring case.
// Postgres folds Unicode in ILIKE. SQLite's LOWER and LIKE only fold ASCII, so there
// the query is left unfiltered and filterByName does the matching.
func nameContains(q *gorm.DB, keyword string) *gorm.DB {
	if q.Dialector.Name() != "postgres" {
		return q
	}
	return q.Where("name ILIKE ? ESCAPE '\\'", "%"+escapeLike(keyword)+"%")
}

// filterByName keeps the items whose name contains keyword under Unicode case folding.
func filterByName[T any](items []T, keyword string, name func(T) string) []T {
	needle := strings.ToLower(keyword)
	matched := make([]T, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(name(item)), needle) {
			matched = append(matched, item)
		}
	}
	return matched
}
