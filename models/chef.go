package models

// Default course keys a fresh menu starts with, in display order.
var DefaultCourseOrder = []string{"starter", "main", "dessert"}

type ChefStatus string

const (
	ChefActive   ChefStatus = "ACTIVE"
	ChefInactive ChefStatus = "INACTIVE"
)

type Dish struct {
	Name         string   `json:"name" yaml:"name"`
	Description  string   `json:"description" yaml:"description"`
	IsSignature  bool     `json:"isSignature,omitempty" yaml:"isSignature,omitempty"`
	Ingredients  []string `json:"ingredients" yaml:"ingredients"`
	Allergens    []string `json:"allergens" yaml:"allergens"`
	Image        string   `json:"image,omitempty" yaml:"image,omitempty"`
	PlatingStyle string   `json:"platingStyle,omitempty" yaml:"platingStyle,omitempty"`
}

// Menu is a bookable offering. Courses maps a course key to its dishes and
// CourseOrder decides which keys are shown, and in what order.
type Menu struct {
	ID           string            `json:"id" yaml:"id"`
	Name         string            `json:"name" yaml:"name"`
	PricePerHead float64           `json:"pricePerHead" yaml:"pricePerHead"`
	Description  string            `json:"description" yaml:"description"`
	CoverImage   string            `json:"coverImage,omitempty" yaml:"coverImage,omitempty"`
	Courses      map[string][]Dish `json:"courses" yaml:"courses"`
	CourseOrder  []string          `json:"courseOrder,omitempty" yaml:"courseOrder,omitempty"`
}

// Order returns the effective course order, falling back to the defaults
// for menus stored before courseOrder existed.
func (m Menu) Order() []string {
	if m.CourseOrder == nil {
		return append([]string(nil), DefaultCourseOrder...)
	}
	return m.CourseOrder
}

type Chef struct {
	ID               string     `json:"id" yaml:"id"`
	Name             string     `json:"name" yaml:"name"`
	Location         string     `json:"location" yaml:"location"`
	Bio              string     `json:"bio" yaml:"bio"`
	Rating           float64    `json:"rating" yaml:"rating"`
	ReviewsCount     int        `json:"reviewsCount" yaml:"reviewsCount"`
	Cuisines         []string   `json:"cuisines" yaml:"cuisines"`
	ImageURL         string     `json:"imageUrl" yaml:"imageUrl"`
	MinPrice         float64    `json:"minPrice" yaml:"minPrice"`
	MinSpend         float64    `json:"minSpend" yaml:"minSpend"`
	Menus            []Menu     `json:"menus" yaml:"menus"`
	YearsExperience  int        `json:"yearsExperience" yaml:"yearsExperience"`
	EventsCount      int        `json:"eventsCount" yaml:"eventsCount"`
	Badges           []string   `json:"badges" yaml:"badges"`
	Tags             []string   `json:"tags" yaml:"tags"`
	TeaserVideo      string     `json:"teaserVideo,omitempty" yaml:"teaserVideo,omitempty"`
	Status           ChefStatus `json:"status,omitempty" yaml:"status,omitempty"`
	IsFeatured       bool       `json:"isFeatured,omitempty" yaml:"isFeatured,omitempty"`
	FeaturedCategory string     `json:"featuredCategory,omitempty" yaml:"featuredCategory,omitempty"`
}

func (c Chef) GetID() string { return c.ID }

// MenuByID looks a menu up among the chef's offerings
func (c Chef) MenuByID(id string) (Menu, int, bool) {
	for i, m := range c.Menus {
		if m.ID == id {
			return m, i, true
		}
	}
	return Menu{}, -1, false
}
