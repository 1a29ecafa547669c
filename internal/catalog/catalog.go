// Package catalog holds the fixed, compiled-in list of courses and the
// lookups the views run against it.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/pydata-academy/academy/internal/embeds"
)

// ErrCourseNotFound is returned by FindByID for an id absent from the catalog.
var ErrCourseNotFound = errors.New("course not found")

//go:embed courses.yml
var coursesYAML []byte

// Catalog is a read-only ordered set of courses keyed by id.
type Catalog struct {
	courses []Course
	byID    map[string]int
}

// New validates the given records and builds a Catalog. Records are sorted
// by Order; records with equal Order keep their relative position.
func New(courses []Course) (*Catalog, error) {
	sorted := make([]Course, len(courses))
	copy(sorted, courses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})

	byID := make(map[string]int, len(sorted))
	for i := range sorted {
		c := &sorted[i]
		if c.ID == "" {
			return nil, fmt.Errorf("course at position %d has an empty id", i)
		}
		if _, dup := byID[c.ID]; dup {
			return nil, fmt.Errorf("duplicate course id %q", c.ID)
		}
		if !validLanguages[c.Language] {
			return nil, fmt.Errorf("course %q: invalid language %q", c.ID, c.Language)
		}
		if !validDifficulties[c.Difficulty] {
			return nil, fmt.Errorf("course %q: invalid difficulty %q", c.ID, c.Difficulty)
		}
		if c.Thumbnail == "" && c.YouTubeID != "" {
			c.Thumbnail = embeds.ThumbnailURL(c.YouTubeID)
		}
		byID[c.ID] = i
	}

	return &Catalog{courses: sorted, byID: byID}, nil
}

// Parse decodes a YAML list of courses and builds a Catalog from it.
func Parse(data []byte) (*Catalog, error) {
	var courses []Course
	if err := yaml.Unmarshal(data, &courses); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	return New(courses)
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(coursesYAML)
}

// ListAll returns every course in display order. The slice is a copy.
func (c *Catalog) ListAll() []Course {
	out := make([]Course, len(c.courses))
	copy(out, c.courses)
	return out
}

// FindByID returns the course with the given id, or an error wrapping
// ErrCourseNotFound.
func (c *Catalog) FindByID(id string) (Course, error) {
	i, ok := c.byID[id]
	if !ok {
		return Course{}, fmt.Errorf("%w: %q", ErrCourseNotFound, id)
	}
	return c.courses[i], nil
}

// Filter returns the courses matching q, in display order.
func (c *Catalog) Filter(q Query) []Course {
	out := make([]Course, 0, len(c.courses))
	for _, course := range c.courses {
		if q.Language != "" && course.Language != q.Language {
			continue
		}
		if q.Difficulty != "" && course.Difficulty != q.Difficulty {
			continue
		}
		out = append(out, course)
	}
	return out
}

// Len returns the number of courses.
func (c *Catalog) Len() int { return len(c.courses) }
