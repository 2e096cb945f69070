package sqlgen_test

import (
	"testing"

	"courseplan/internal/extract"
	"courseplan/internal/sqlgen"
)

func TestParseInsertsReadBackRenderedStatements(t *testing.T) {
	major, ok := sqlgen.ParseMajorInsert(sqlgen.MajorInsert(7, "O'Brien's, Studies"))
	if !ok || major != (sqlgen.MajorID{ID: 7, Name: "O'Brien's, Studies"}) {
		t.Fatalf("major = %+v, %v", major, ok)
	}

	course, ok := sqlgen.ParseCourseInsert(sqlgen.CourseInsert("X', 'Y", "Intro ''quoted''"))
	if !ok || course != (extract.Course{Code: "X', 'Y", Name: "Intro ''quoted''"}) {
		t.Fatalf("course = %+v, %v", course, ok)
	}

	course, ok = sqlgen.ParseCourseInsert(sqlgen.CourseInsert("CS999", ""))
	if !ok || course.Code != "CS999" || course.Name != "" {
		t.Fatalf("empty name course = %+v, %v", course, ok)
	}

	id, code, ok := sqlgen.ParseAssociationInsert("  " + sqlgen.AssociationInsert(12, "MA'201") + "\n")
	if !ok || id != 12 || code != "MA'201" {
		t.Fatalf("association = %d %q %v", id, code, ok)
	}
}

func TestParseInsertsRejectForeignStatements(t *testing.T) {
	for _, stmt := range []string{
		"",
		"DELETE FROM course;",
		sqlgen.CourseInsert("CS101", "Intro"),
		"INSERT INTO major_course(major_no, course_no) VALUES (x, 'CS101');",
		"INSERT INTO major_course(major_no, course_no) VALUES (1, 'CS101') ;",
		"INSERT INTO major_course(major_no, course_no) VALUES (1, 'CS101', 'extra');",
		"INSERT INTO major_course(major_no, course_no) VALUES (1, 'unterminated);",
	} {
		if _, _, ok := sqlgen.ParseAssociationInsert(stmt); ok {
			t.Errorf("ParseAssociationInsert(%q) should fail", stmt)
		}
	}
	if _, ok := sqlgen.ParseMajorInsert(sqlgen.AssociationInsert(1, "CS101")); ok {
		t.Error("association statement parsed as a major")
	}
	if _, ok := sqlgen.ParseCourseInsert("INSERT INTO course(course_no, course_name) VALUES ('CS101','Intro');"); ok {
		t.Error("course without the rendered separator should fail")
	}
}
