// Package route maps a request path to the view that should render it.
package route

import "strings"

// View identifies one of the two pages of the shell.
type View string

const (
	ViewCatalog View = "catalog"
	ViewLesson  View = "lesson"
)

// CatalogPath is the root of the shell.
const CatalogPath = "/"

const lessonPrefix = "/lesson/"

// Resolution is the outcome of resolving a path.
type Resolution struct {
	View     View   `json:"view"`
	CourseID string `json:"course_id,omitempty"`
	// Redirect is set when the path was not recognised and the client should
	// be sent to CatalogPath, replacing the invalid location.
	Redirect bool `json:"redirect"`
}

// Resolve selects the view for path. Lesson ids are taken verbatim and are
// not checked against the catalog.
func Resolve(path string) Resolution {
	if path == "" || path == CatalogPath {
		return Resolution{View: ViewCatalog}
	}

	if strings.HasPrefix(path, lessonPrefix) {
		id := strings.TrimPrefix(path, lessonPrefix)
		id = strings.TrimSuffix(id, "/")
		if id != "" && !strings.Contains(id, "/") {
			return Resolution{View: ViewLesson, CourseID: id}
		}
	}

	return Resolution{View: ViewCatalog, Redirect: true}
}

// LessonPath returns the path of the lesson view for a course id.
func LessonPath(courseID string) string {
	return lessonPrefix + courseID
}
