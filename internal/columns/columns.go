package columns

import (
	"strings"

	"courseplan/internal/textutil"
)

// NotFound marks a category with no matching header.
const NotFound = -1

// Category identifies one of the columns the mapper resolves.
type Category int

const (
	CategoryCode Category = iota
	CategoryName
	CategoryMajor
)

func (c Category) String() string {
	switch c {
	case CategoryCode:
		return "code"
	case CategoryName:
		return "name"
	case CategoryMajor:
		return "major"
	default:
		return "unknown"
	}
}

// Keywords holds the substrings that identify each category.
type Keywords struct {
	Code  []string
	Name  []string
	Major []string
}

// DefaultKeywords returns the built-in keyword lists covering the Chinese
// registrar exports and common English spellings.
func DefaultKeywords() Keywords {
	return Keywords{
		Code:  []string{"课程号", "课程代码", "course code", "course_code", "course no", "course_no", "course id"},
		Name:  []string{"课程名", "课程名称", "course name", "course_name", "course title"},
		Major: []string{"上课专业", "专业", "major", "program"},
	}
}

func (k Keywords) list(c Category) []string {
	switch c {
	case CategoryCode:
		return k.Code
	case CategoryName:
		return k.Name
	case CategoryMajor:
		return k.Major
	}
	return nil
}

// Indices holds resolved column positions; unresolved ones are NotFound.
type Indices struct {
	Code  int `json:"code"`
	Name  int `json:"name"`
	Major int `json:"major"`
}

// Unresolved returns Indices with every category NotFound.
func Unresolved() Indices {
	return Indices{Code: NotFound, Name: NotFound, Major: NotFound}
}

// Usable reports whether both course code and course name were found.
func (ix Indices) Usable() bool {
	return ix.Code != NotFound && ix.Name != NotFound
}

// HasMajor reports whether the major-list column was found.
func (ix Indices) HasMajor() bool {
	return ix.Major != NotFound
}

// MaxRequired returns the highest resolved index. A row needs more cells
// than this to be usable.
func (ix Indices) MaxRequired() int {
	return max(ix.Code, ix.Name, ix.Major)
}

func (ix *Indices) get(c Category) int {
	switch c {
	case CategoryCode:
		return ix.Code
	case CategoryName:
		return ix.Name
	default:
		return ix.Major
	}
}

func (ix *Indices) set(c Category, idx int) {
	switch c {
	case CategoryCode:
		ix.Code = idx
	case CategoryName:
		ix.Name = idx
	default:
		ix.Major = idx
	}
}

// Mapper resolves header rows against a keyword set.
type Mapper struct {
	keywords [3][]string
}

// NewMapper folds the keyword lists once so Map only folds headers.
// Blank keywords are dropped; they would match every header.
func NewMapper(k Keywords) *Mapper {
	m := &Mapper{}
	for _, c := range []Category{CategoryCode, CategoryName, CategoryMajor} {
		for _, kw := range k.list(c) {
			folded := textutil.Fold(strings.TrimSpace(kw))
			if folded == "" {
				continue
			}
			m.keywords[c] = append(m.keywords[c], folded)
		}
	}
	return m
}

// Map scans header once in order. Each header is offered to the categories
// in code, name, major order and claimed by the first unresolved category
// whose keywords it contains; a resolved category ignores later matches.
func (m *Mapper) Map(header []string) Indices {
	ix := Unresolved()
	for i, cell := range header {
		folded := textutil.Fold(cell)
		if folded == "" {
			continue
		}
		for _, c := range []Category{CategoryCode, CategoryName, CategoryMajor} {
			if ix.get(c) != NotFound {
				continue
			}
			if containsAny(folded, m.keywords[c]) {
				ix.set(c, i)
				break
			}
		}
		if ix.Usable() && ix.HasMajor() {
			break
		}
	}
	return ix
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
