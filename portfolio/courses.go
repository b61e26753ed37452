package portfolio

import (
	"errors"
	"strings"
	"unicode"

	"private-chef-api/models"
)

var (
	ErrCourseExists   = errors.New("course already exists")
	ErrCourseNotFound = errors.New("course not found")
	ErrEmptyCourse    = errors.New("course name is empty")
)

// Course is one rendered section of a menu.
type Course struct {
	Key    string        `json:"key"`
	Dishes []models.Dish `json:"dishes"`
}

// CourseKey slugs a display name: trimmed, lower-cased, whitespace runs
// collapsed to a single underscore.
func CourseKey(name string) string {
	return strings.ToLower(strings.Join(strings.FieldsFunc(strings.TrimSpace(name), unicode.IsSpace), "_"))
}

// NewMenu returns a menu with the default empty courses.
func NewMenu(id, name string, pricePerHead float64) models.Menu {
	m := models.Menu{
		ID:           id,
		Name:         name,
		PricePerHead: pricePerHead,
		Courses:      map[string][]models.Dish{},
		CourseOrder:  append([]string(nil), models.DefaultCourseOrder...),
	}
	for _, k := range m.CourseOrder {
		m.Courses[k] = []models.Dish{}
	}
	return m
}

// Normalize makes every order key have a dish list. Dish lists missing from
// the order stay hidden.
func Normalize(m models.Menu) models.Menu {
	courses := make(map[string][]models.Dish, len(m.Courses))
	for k, v := range m.Courses {
		courses[k] = v
	}

	order := make([]string, 0, len(m.Order()))
	seen := map[string]bool{}
	for _, k := range m.Order() {
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		order = append(order, k)
		if _, ok := courses[k]; !ok {
			courses[k] = []models.Dish{}
		}
	}

	for k, v := range courses {
		if v == nil {
			courses[k] = []models.Dish{}
		}
	}

	m.Courses = courses
	m.CourseOrder = order
	return m
}

// AddCourse appends an empty course named by its slug.
func AddCourse(m models.Menu, name string) (models.Menu, string, error) {
	key := CourseKey(name)
	if key == "" {
		return m, "", ErrEmptyCourse
	}
	m = Normalize(m)
	if _, ok := m.Courses[key]; ok {
		return m, key, ErrCourseExists
	}
	m.Courses[key] = []models.Dish{}
	m.CourseOrder = append(m.CourseOrder, key)
	return m, key, nil
}

// RemoveCourse drops key from both the dish map and the order.
func RemoveCourse(m models.Menu, key string) models.Menu {
	m = Normalize(m)
	delete(m.Courses, key)
	order := m.CourseOrder[:0:0]
	for _, k := range m.CourseOrder {
		if k != key {
			order = append(order, k)
		}
	}
	m.CourseOrder = order
	return m
}

// SetDishes replaces the whole dish list of one course.
func SetDishes(m models.Menu, key string, dishes []models.Dish) (models.Menu, error) {
	m = Normalize(m)
	if _, ok := m.Courses[key]; !ok {
		return m, ErrCourseNotFound
	}
	if dishes == nil {
		dishes = []models.Dish{}
	}
	m.Courses[key] = dishes
	return m, nil
}

// OrderedCourses lists courses for display, skipping order keys that have
// no dish list behind them.
func OrderedCourses(m models.Menu) []Course {
	out := make([]Course, 0, len(m.Order()))
	for _, k := range m.Order() {
		dishes, ok := m.Courses[k]
		if !ok {
			continue
		}
		out = append(out, Course{Key: k, Dishes: dishes})
	}
	return out
}
