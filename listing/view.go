package listing

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/bkaya/pricelist-api/models"
)

// SortKey selects the ordering inside each folder-status group.
type SortKey string

const (
	NameAscending  SortKey = "name_asc"
	NameDescending SortKey = "name_desc"
	DateAscending  SortKey = "date_asc"
	DateDescending SortKey = "date_desc"
)

// ParseSortKey maps free-text query input to a key; anything
// unrecognized falls back to NameAscending.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case NameDescending, DateAscending, DateDescending:
		return SortKey(s)
	}
	return NameAscending
}

// Project derives the display list: a case-insensitive substring
// filter on the name followed by a stable sort. Folders always come
// before documents whatever the sort key says. Name ordering follows
// Turkish collation (the price lists are named in Turkish, dotted
// and dotless I must not interleave). Pure: the input slice is left
// untouched and equal keys keep their encounter order.
func Project(entries []models.FileEntry, search string, key SortKey) []models.FileEntry {
	term := strings.ToLower(search)

	out := make([]models.FileEntry, 0, len(entries))
	for _, e := range entries {
		if term == "" || strings.Contains(strings.ToLower(e.Name), term) {
			out = append(out, e)
		}
	}

	// collators carry internal buffers, so build one per call
	// instead of sharing a package-level instance
	c := collate.New(language.Turkish)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.IsFolder != b.IsFolder {
			return a.IsFolder
		}
		switch key {
		case NameDescending:
			return c.CompareString(a.Name, b.Name) > 0
		case DateAscending:
			return a.Modified.Before(b.Modified)
		case DateDescending:
			return b.Modified.Before(a.Modified)
		default:
			return c.CompareString(a.Name, b.Name) < 0
		}
	})

	return out
}
