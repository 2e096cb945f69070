package reconcile

import (
	"cmp"
	"slices"

	"courseplan/internal/extract"
)

// CourseMap maps course codes to names and remembers insertion order.
type CourseMap struct {
	order []string
	names map[string]string
}

// NewCourseMap returns an empty map.
func NewCourseMap() *CourseMap {
	return &CourseMap{names: make(map[string]string)}
}

// Add stores name for code unless code is already present. It returns the
// stored name and whether the incoming name disagreed with it.
func (m *CourseMap) Add(code, name string) (stored string, conflict bool) {
	if existing, ok := m.names[code]; ok {
		return existing, existing != name
	}
	m.names[code] = name
	m.order = append(m.order, code)
	return name, false
}

func (m *CourseMap) Len() int { return len(m.order) }

// Courses returns every course in first-seen order.
func (m *CourseMap) Courses() []extract.Course {
	out := make([]extract.Course, 0, len(m.order))
	for _, code := range m.order {
		out = append(out, extract.Course{Code: code, Name: m.names[code]})
	}
	return out
}

// SortedCourses returns every course ordered by code.
func (m *CourseMap) SortedCourses() []extract.Course {
	out := m.Courses()
	slices.SortFunc(out, func(a, b extract.Course) int {
		return cmp.Compare(a.Code, b.Code)
	})
	return out
}

// MajorSet is an unordered set of major names.
type MajorSet struct {
	members map[string]struct{}
}

// NewMajorSet returns an empty set.
func NewMajorSet() *MajorSet {
	return &MajorSet{members: make(map[string]struct{})}
}

// Add inserts name and reports whether it was new.
func (s *MajorSet) Add(name string) bool {
	if _, ok := s.members[name]; ok {
		return false
	}
	s.members[name] = struct{}{}
	return true
}

func (s *MajorSet) Len() int { return len(s.members) }

// Sorted returns the members in byte-wise lexicographic order.
func (s *MajorSet) Sorted() []string {
	out := make([]string, 0, len(s.members))
	for name := range s.members {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// Catalog is the merged state of one run.
type Catalog struct {
	Courses *CourseMap
	Majors  *MajorSet
	// Pairs keeps every association in discovery order, duplicates included.
	Pairs []extract.Association
	// Seeded counts the distinct majors loaded from the seed list.
	Seeded int
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{Courses: NewCourseMap(), Majors: NewMajorSet()}
}
