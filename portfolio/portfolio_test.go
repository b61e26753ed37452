package portfolio

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"private-chef-api/models"
	"private-chef-api/store"
)

type fakeAssistant struct {
	text  string
	image string
	video string
	err   error
}

func (f *fakeAssistant) GenerateMenuDescription(context.Context, string) (string, error) {
	return f.text, f.err
}

func (f *fakeAssistant) GenerateDishDescription(context.Context, string, []string) (string, error) {
	return f.text, f.err
}

func (f *fakeAssistant) GenerateDishImage(context.Context, models.Dish) (string, error) {
	return f.image, f.err
}

func (f *fakeAssistant) GenerateDishPhotoFromNarrative(context.Context, models.Dish, string) (string, error) {
	return f.image, f.err
}

func (f *fakeAssistant) GenerateMenuCoverImage(context.Context, string, string) (string, error) {
	return f.image, f.err
}

func (f *fakeAssistant) GenerateChefPortrait(context.Context, string) (string, error) {
	return f.image, f.err
}

func (f *fakeAssistant) GenerateChefTeaser(context.Context, string, string) (string, error) {
	return f.video, f.err
}

func newTestService(t *testing.T, ai *fakeAssistant) (*Service, *store.Store) {
	t.Helper()
	seed := store.MustLoadSeed()
	st := store.New(store.NewMemoryKV(), seed)
	require.NoError(t, st.CacheChefs(context.Background(), seed.Chefs()))
	return NewService(st, ai), st
}

const (
	marcoID = "chef-fallback-1"
	menuID  = "menu-fallback-1"
)

func TestCourseKey(t *testing.T) {
	assert.Equal(t, "amuse_bouche", CourseKey("  Amuse   Bouche "))
	assert.Equal(t, "cheese", CourseKey("Cheese"))
	assert.Equal(t, "pre_dessert", CourseKey("Pre\tDessert"))
	assert.Equal(t, "", CourseKey("   "))
}

func TestAddCourse_RejectsCollisionAndEmpty(t *testing.T) {
	m := NewMenu("m1", "Tasting", 120)

	m, key, err := AddCourse(m, "Amuse Bouche")
	require.NoError(t, err)
	assert.Equal(t, "amuse_bouche", key)
	assert.Equal(t, []string{"starter", "main", "dessert", "amuse_bouche"}, m.CourseOrder)

	_, _, err = AddCourse(m, "amuse   bouche")
	assert.ErrorIs(t, err, ErrCourseExists)

	_, _, err = AddCourse(m, "  ")
	assert.ErrorIs(t, err, ErrEmptyCourse)
}

func TestRemoveCourse_GoneFromBothPlaces(t *testing.T) {
	m := NewMenu("m1", "Tasting", 120)

	m = RemoveCourse(m, "main")

	assert.NotContains(t, m.Courses, "main")
	assert.NotContains(t, m.CourseOrder, "main")
	assert.Equal(t, []string{"starter", "dessert"}, m.CourseOrder)
}

func TestOrderedCourses_SkipsKeysWithoutDishes(t *testing.T) {
	m := models.Menu{
		Courses:     map[string][]models.Dish{"main": {{Name: "Risotto"}}},
		CourseOrder: []string{"starter", "main"},
	}

	courses := OrderedCourses(m)

	require.Len(t, courses, 1)
	assert.Equal(t, "main", courses[0].Key)
}

func TestOrderedCourses_LegacyMenuUsesDefaultOrder(t *testing.T) {
	m := models.Menu{Courses: map[string][]models.Dish{"dessert": {}, "starter": {}}}

	courses := OrderedCourses(m)

	require.Len(t, courses, 2)
	assert.Equal(t, "starter", courses[0].Key)
	assert.Equal(t, "dessert", courses[1].Key)
}

func TestNormalize_GivesOrderKeysADishList(t *testing.T) {
	m := models.Menu{
		Courses:     map[string][]models.Dish{"main": nil, "cheese": {}},
		CourseOrder: []string{"main", "dessert", "main"},
	}

	n := Normalize(m)

	assert.Equal(t, []string{"main", "dessert"}, n.CourseOrder)
	assert.NotNil(t, n.Courses["dessert"])
	assert.NotNil(t, n.Courses["main"])
	assert.Contains(t, n.Courses, "cheese")
}

func TestCourseEdits_KeepUnorderedCoursesHidden(t *testing.T) {
	m := models.Menu{
		Courses: map[string][]models.Dish{
			"starter": {{Name: "Burrata"}},
			"secret":  {{Name: "Off-menu Tartare"}},
		},
		CourseOrder: []string{"starter"},
	}

	m, _, err := AddCourse(m, "Main")
	require.NoError(t, err)
	assert.Equal(t, []string{"starter", "main"}, m.CourseOrder)

	m, err = SetDishes(m, "main", []models.Dish{{Name: "Risotto"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"starter", "main"}, m.CourseOrder)

	m = RemoveCourse(m, "starter")
	assert.Equal(t, []string{"main"}, m.CourseOrder)

	for _, c := range OrderedCourses(m) {
		assert.NotEqual(t, "secret", c.Key)
	}
	assert.Equal(t, "Off-menu Tartare", m.Courses["secret"][0].Name)
}

func TestSetDishes_ReplacesWholeList(t *testing.T) {
	svc, st := newTestService(t, &fakeAssistant{})
	ctx := context.Background()

	menu, err := svc.SetDishes(ctx, marcoID, menuID, "main", []models.Dish{{Name: "Ossobuco"}, {Name: "Risotto"}})
	require.NoError(t, err)
	assert.Len(t, menu.Courses["main"], 2)

	chef, _ := st.ChefByID(ctx, marcoID)
	stored, _, _ := chef.MenuByID(menuID)
	assert.Equal(t, "Ossobuco", stored.Courses["main"][0].Name)

	_, err = svc.SetDishes(ctx, marcoID, menuID, "cheese", nil)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestMenuLifecycle(t *testing.T) {
	svc, st := newTestService(t, &fakeAssistant{})
	ctx := context.Background()

	menu, err := svc.AddMenu(ctx, marcoID, "Winter Truffle", 140)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCourseOrder, menu.CourseOrder)

	menu, err = svc.AddCourse(ctx, marcoID, menu.ID, "Cheese Course")
	require.NoError(t, err)
	menu, err = svc.RemoveCourse(ctx, marcoID, menu.ID, "starter")
	require.NoError(t, err)
	assert.Equal(t, []string{"main", "dessert", "cheese_course"}, menu.CourseOrder)

	menu.PricePerHead = 150
	menu, err = svc.UpdateMenu(ctx, marcoID, menu)
	require.NoError(t, err)
	assert.Equal(t, 150.0, menu.PricePerHead)

	chef, _ := st.ChefByID(ctx, marcoID)
	require.Len(t, chef.Menus, 2)

	require.NoError(t, svc.RemoveMenu(ctx, marcoID, menu.ID))
	chef, _ = st.ChefByID(ctx, marcoID)
	require.Len(t, chef.Menus, 1)
	assert.ErrorIs(t, svc.RemoveMenu(ctx, marcoID, menu.ID), ErrMenuNotFound)
}

func TestEnsureChefProfile(t *testing.T) {
	svc, st := newTestService(t, &fakeAssistant{})
	ctx := context.Background()
	user := models.User{ID: "u-chef", Name: "Nadia Haddad", Role: models.RoleChef, Avatar: "https://ui-avatars.com/api/?name=Nadia"}

	chef, created, err := svc.EnsureChefProfile(ctx, user)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "u-chef", chef.ID)
	assert.Equal(t, "Global", chef.Location)
	assert.Equal(t, 5.0, chef.Rating)
	assert.Equal(t, 50.0, chef.MinPrice)
	assert.Equal(t, 300.0, chef.MinSpend)
	assert.Equal(t, []string{"New Talent"}, chef.Badges)

	_, created, err = svc.EnsureChefProfile(ctx, user)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Len(t, st.CachedChefs(ctx), 2)

	existing, created, err := svc.EnsureChefProfile(ctx, models.User{ID: "u-marco", Name: "Marco Rossi"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, marcoID, existing.ID)
}

func TestGenerateMenuNarrative(t *testing.T) {
	svc, _ := newTestService(t, &fakeAssistant{text: "A slow evening in Tuscany."})

	menu, err := svc.GenerateMenuNarrative(context.Background(), marcoID, menuID)

	require.NoError(t, err)
	assert.Equal(t, "A slow evening in Tuscany.", menu.Description)
}

func TestAIFailureMutatesNothing(t *testing.T) {
	svc, st := newTestService(t, &fakeAssistant{err: errors.New("429")})
	ctx := context.Background()
	before, _ := st.ChefByID(ctx, marcoID)

	_, err := svc.GenerateMenuCover(ctx, marcoID, menuID)
	require.Error(t, err)
	_, err = svc.DishWizard(ctx, marcoID, menuID, "main", 0)
	require.Error(t, err)
	_, err = svc.GeneratePortrait(ctx, marcoID)
	require.Error(t, err)
	_, err = svc.GenerateTeaser(ctx, marcoID, "plating", "16:9")
	require.Error(t, err)

	after, _ := st.ChefByID(ctx, marcoID)
	assert.Equal(t, before, after)
}

func TestDishWizard_WritesNarrativeAndImage(t *testing.T) {
	svc, _ := newTestService(t, &fakeAssistant{text: "Earthy and bright.", image: "data:image/png;base64,AA"})

	menu, err := svc.DishWizard(context.Background(), marcoID, menuID, "main", 0)

	require.NoError(t, err)
	dish := menu.Courses["main"][0]
	assert.Equal(t, "Earthy and bright.", dish.Description)
	assert.Equal(t, "data:image/png;base64,AA", dish.Image)
}

func TestGenerateDishImage_Guards(t *testing.T) {
	svc, _ := newTestService(t, &fakeAssistant{image: "data:image/png;base64,AA"})
	ctx := context.Background()

	_, err := svc.GenerateDishImage(ctx, marcoID, menuID, "main", 7)
	assert.ErrorIs(t, err, ErrDishNotFound)

	_, err = svc.SetDishes(ctx, marcoID, menuID, "starter", []models.Dish{{Name: ""}})
	require.NoError(t, err)
	_, err = svc.GenerateDishImage(ctx, marcoID, menuID, "starter", 0)
	assert.ErrorIs(t, err, ErrDishUnnamed)
}

func TestGenerateTeaser_StoresURL(t *testing.T) {
	svc, _ := newTestService(t, &fakeAssistant{video: "https://video.example/v1/files/abc?alt=media"})

	chef, err := svc.GenerateTeaser(context.Background(), marcoID, "hands plating pasta", "9:16")

	require.NoError(t, err)
	assert.Equal(t, "https://video.example/v1/files/abc?alt=media", chef.TeaserVideo)
}
