package sqlgen

import (
	"strconv"
	"strings"

	"courseplan/internal/extract"
)

// ParseMajorInsert reads back a statement rendered by MajorInsert.
func ParseMajorInsert(stmt string) (MajorID, bool) {
	body, ok := statementBody(stmt, majorPrefix)
	if !ok {
		return MajorID{}, false
	}
	id, rest, ok := leadingInt(body)
	if !ok {
		return MajorID{}, false
	}
	name, rest, ok := leadingLiteral(rest)
	if !ok || rest != "" {
		return MajorID{}, false
	}
	return MajorID{ID: id, Name: name}, true
}

// ParseCourseInsert reads back a statement rendered by CourseInsert.
func ParseCourseInsert(stmt string) (extract.Course, bool) {
	body, ok := statementBody(stmt, coursePrefix)
	if !ok {
		return extract.Course{}, false
	}
	code, rest, ok := leadingLiteral(body)
	if !ok {
		return extract.Course{}, false
	}
	rest, ok = strings.CutPrefix(rest, ", ")
	if !ok {
		return extract.Course{}, false
	}
	name, rest, ok := leadingLiteral(rest)
	if !ok || rest != "" {
		return extract.Course{}, false
	}
	return extract.Course{Code: code, Name: name}, true
}

// ParseAssociationInsert reads back a statement rendered by
// AssociationInsert.
func ParseAssociationInsert(stmt string) (majorID int, code string, ok bool) {
	body, ok := statementBody(stmt, associationPrefix)
	if !ok {
		return 0, "", false
	}
	majorID, rest, ok := leadingInt(body)
	if !ok {
		return 0, "", false
	}
	code, rest, ok = leadingLiteral(rest)
	if !ok || rest != "" {
		return 0, "", false
	}
	return majorID, code, true
}

func statementBody(stmt, prefix string) (string, bool) {
	body, ok := strings.CutPrefix(strings.TrimSpace(stmt), prefix)
	if !ok {
		return "", false
	}
	return strings.CutSuffix(body, statementEnd)
}

// leadingInt parses "<int>, " at the start of s.
func leadingInt(s string) (int, string, bool) {
	digits, rest, found := strings.Cut(s, ", ")
	if !found {
		return 0, "", false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, "", false
	}
	return n, rest, true
}

// leadingLiteral parses a single-quoted literal at the start of s, where a
// doubled quote stands for one quote character.
func leadingLiteral(s string) (string, string, bool) {
	if !strings.HasPrefix(s, "'") {
		return "", "", false
	}
	for i := 1; i < len(s); i++ {
		if s[i] != '\'' {
			continue
		}
		if i+1 < len(s) && s[i+1] == '\'' {
			i++
			continue
		}
		return Unescape(s[1:i]), s[i+1:], true
	}
	return "", "", false
}
