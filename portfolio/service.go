package portfolio

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"private-chef-api/models"
	"private-chef-api/store"
)

var (
	ErrChefNotFound = errors.New("chef not found")
	ErrMenuNotFound = errors.New("menu not found")
	ErrDishNotFound = errors.New("dish not found")
	ErrDishUnnamed  = errors.New("dish needs a name first")
)

// Assistant produces the AI-generated portfolio fields.
type Assistant interface {
	GenerateMenuDescription(ctx context.Context, menuName string) (string, error)
	GenerateDishDescription(ctx context.Context, dishName string, ingredients []string) (string, error)
	GenerateDishImage(ctx context.Context, dish models.Dish) (string, error)
	GenerateDishPhotoFromNarrative(ctx context.Context, dish models.Dish, narrative string) (string, error)
	GenerateMenuCoverImage(ctx context.Context, menuName, description string) (string, error)
	GenerateChefPortrait(ctx context.Context, chefName string) (string, error)
	GenerateChefTeaser(ctx context.Context, prompt, aspectRatio string) (string, error)
}

// Service edits a chef's profile and menus. Every change rewrites the
// whole chef record at once.
type Service struct {
	store *store.Store
	ai    Assistant
	mu    sync.Mutex
}

func NewService(st *store.Store, ai Assistant) *Service {
	return &Service{store: st, ai: ai}
}

func (s *Service) Chef(ctx context.Context, chefID string) (models.Chef, error) {
	chef, ok := s.store.ChefByID(ctx, chefID)
	if !ok {
		return models.Chef{}, fmt.Errorf("%w: %s", ErrChefNotFound, chefID)
	}
	return chef, nil
}

// EnsureChefProfile returns the chef record behind a CHEF account, creating
// a starter profile the first time. An existing chef matches by id or name.
func (s *Service) EnsureChefProfile(ctx context.Context, user models.User) (models.Chef, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if chef, ok := s.store.Chefs.Find(ctx, func(c models.Chef) bool {
		return c.ID == user.ID || c.Name == user.Name
	}); ok {
		return chef, false, nil
	}

	chef := models.Chef{
		ID:       user.ID,
		Name:     user.Name,
		Location: "Global",
		Bio:      "Welcome to LuxePlate.",
		Rating:   5.0,
		Cuisines: []string{"European"},
		ImageURL: user.Avatar,
		MinPrice: 50,
		MinSpend: 300,
		Menus:    []models.Menu{},
		Badges:   []string{"New Talent"},
		Tags:     []string{},
		Status:   models.ChefActive,
	}
	if err := s.store.SaveChef(ctx, chef); err != nil {
		return models.Chef{}, false, fmt.Errorf("save chef: %w", err)
	}
	logrus.WithFields(logrus.Fields{"chef": chef.ID, "name": chef.Name}).Info("Provisioned chef profile")
	return chef, true, nil
}

// ProfileUpdate carries the fields a chef edits on their dashboard.
type ProfileUpdate struct {
	Name            string   `json:"name" binding:"required"`
	Location        string   `json:"location"`
	Bio             string   `json:"bio"`
	ImageURL        string   `json:"imageUrl"`
	MinPrice        float64  `json:"minPrice" binding:"gte=0"`
	MinSpend        float64  `json:"minSpend" binding:"gte=0"`
	YearsExperience int      `json:"yearsExperience" binding:"gte=0"`
	Cuisines        []string `json:"cuisines"`
	Tags            []string `json:"tags"`
}

func (s *Service) UpdateProfile(ctx context.Context, chefID string, u ProfileUpdate) (models.Chef, error) {
	return s.mutateChef(ctx, chefID, func(c *models.Chef) error {
		c.Name = u.Name
		c.Location = u.Location
		c.Bio = u.Bio
		c.ImageURL = u.ImageURL
		c.MinPrice = u.MinPrice
		c.MinSpend = u.MinSpend
		c.YearsExperience = u.YearsExperience
		if u.Cuisines != nil {
			c.Cuisines = u.Cuisines
		}
		if u.Tags != nil {
			c.Tags = u.Tags
		}
		return nil
	})
}

func (s *Service) mutateChef(ctx context.Context, chefID string, fn func(*models.Chef) error) (models.Chef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chef, ok := s.store.ChefByID(ctx, chefID)
	if !ok {
		return models.Chef{}, fmt.Errorf("%w: %s", ErrChefNotFound, chefID)
	}
	if err := fn(&chef); err != nil {
		return models.Chef{}, err
	}
	if err := s.store.SaveChef(ctx, chef); err != nil {
		return models.Chef{}, fmt.Errorf("save chef: %w", err)
	}
	return chef, nil
}

func (s *Service) mutateMenu(ctx context.Context, chefID, menuID string, fn func(*models.Menu) error) (models.Menu, error) {
	var out models.Menu
	_, err := s.mutateChef(ctx, chefID, func(c *models.Chef) error {
		menu, i, ok := c.MenuByID(menuID)
		if !ok {
			return fmt.Errorf("%w: %s", ErrMenuNotFound, menuID)
		}
		if err := fn(&menu); err != nil {
			return err
		}
		menus := append([]models.Menu(nil), c.Menus...)
		menus[i] = menu
		c.Menus = menus
		out = menu
		return nil
	})
	return out, err
}

func (s *Service) AddMenu(ctx context.Context, chefID, name string, pricePerHead float64) (models.Menu, error) {
	menu := NewMenu("menu-"+uuid.NewString(), name, pricePerHead)
	_, err := s.mutateChef(ctx, chefID, func(c *models.Chef) error {
		c.Menus = append(append([]models.Menu(nil), c.Menus...), menu)
		return nil
	})
	if err != nil {
		return models.Menu{}, err
	}
	return menu, nil
}

// UpdateMenu replaces a menu wholesale, keeping its id.
func (s *Service) UpdateMenu(ctx context.Context, chefID string, menu models.Menu) (models.Menu, error) {
	return s.mutateMenu(ctx, chefID, menu.ID, func(m *models.Menu) error {
		*m = Normalize(menu)
		return nil
	})
}

func (s *Service) RemoveMenu(ctx context.Context, chefID, menuID string) error {
	_, err := s.mutateChef(ctx, chefID, func(c *models.Chef) error {
		_, i, ok := c.MenuByID(menuID)
		if !ok {
			return fmt.Errorf("%w: %s", ErrMenuNotFound, menuID)
		}
		menus := make([]models.Menu, 0, len(c.Menus)-1)
		menus = append(menus, c.Menus[:i]...)
		c.Menus = append(menus, c.Menus[i+1:]...)
		return nil
	})
	return err
}

func (s *Service) AddCourse(ctx context.Context, chefID, menuID, name string) (models.Menu, error) {
	return s.mutateMenu(ctx, chefID, menuID, func(m *models.Menu) error {
		updated, _, err := AddCourse(*m, name)
		if err != nil {
			return err
		}
		*m = updated
		return nil
	})
}

func (s *Service) RemoveCourse(ctx context.Context, chefID, menuID, key string) (models.Menu, error) {
	return s.mutateMenu(ctx, chefID, menuID, func(m *models.Menu) error {
		*m = RemoveCourse(*m, key)
		return nil
	})
}

func (s *Service) SetDishes(ctx context.Context, chefID, menuID, key string, dishes []models.Dish) (models.Menu, error) {
	return s.mutateMenu(ctx, chefID, menuID, func(m *models.Menu) error {
		updated, err := SetDishes(*m, key, dishes)
		if err != nil {
			return err
		}
		*m = updated
		return nil
	})
}
