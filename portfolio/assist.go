package portfolio

import (
	"context"
	"fmt"

	"private-chef-api/models"
)

// The AI helpers below call the model without holding the editor lock and
// apply the result to a fresh read of the chef. A failed generation leaves
// the record untouched; two concurrent generations for one field resolve
// as last write wins.

func (s *Service) menuFor(ctx context.Context, chefID, menuID string) (models.Chef, models.Menu, error) {
	chef, err := s.Chef(ctx, chefID)
	if err != nil {
		return models.Chef{}, models.Menu{}, err
	}
	menu, _, ok := chef.MenuByID(menuID)
	if !ok {
		return models.Chef{}, models.Menu{}, fmt.Errorf("%w: %s", ErrMenuNotFound, menuID)
	}
	return chef, menu, nil
}

func dishAt(m models.Menu, key string, idx int) (models.Dish, error) {
	dishes, ok := m.Courses[key]
	if !ok {
		return models.Dish{}, ErrCourseNotFound
	}
	if idx < 0 || idx >= len(dishes) {
		return models.Dish{}, ErrDishNotFound
	}
	return dishes[idx], nil
}

// setDish swaps one dish in a menu without touching the stored slice.
func setDish(m *models.Menu, key string, idx int, update func(*models.Dish)) error {
	if _, err := dishAt(*m, key, idx); err != nil {
		return err
	}
	n := Normalize(*m)
	dishes := append([]models.Dish(nil), n.Courses[key]...)
	update(&dishes[idx])
	n.Courses[key] = dishes
	*m = n
	return nil
}

func (s *Service) GenerateMenuNarrative(ctx context.Context, chefID, menuID string) (models.Menu, error) {
	_, menu, err := s.menuFor(ctx, chefID, menuID)
	if err != nil {
		return models.Menu{}, err
	}
	narrative, err := s.ai.GenerateMenuDescription(ctx, menu.Name)
	if err != nil {
		return models.Menu{}, err
	}
	return s.mutateMenu(ctx, chefID, menuID, func(m *models.Menu) error {
		m.Description = narrative
		return nil
	})
}

func (s *Service) GenerateMenuCover(ctx context.Context, chefID, menuID string) (models.Menu, error) {
	_, menu, err := s.menuFor(ctx, chefID, menuID)
	if err != nil {
		return models.Menu{}, err
	}
	img, err := s.ai.GenerateMenuCoverImage(ctx, menu.Name, menu.Description)
	if err != nil {
		return models.Menu{}, err
	}
	return s.mutateMenu(ctx, chefID, menuID, func(m *models.Menu) error {
		m.CoverImage = img
		return nil
	})
}

// GenerateDishImage photographs a dish from its current details.
func (s *Service) GenerateDishImage(ctx context.Context, chefID, menuID, key string, idx int) (models.Menu, error) {
	_, menu, err := s.menuFor(ctx, chefID, menuID)
	if err != nil {
		return models.Menu{}, err
	}
	dish, err := dishAt(menu, key, idx)
	if err != nil {
		return models.Menu{}, err
	}
	if dish.Name == "" {
		return models.Menu{}, ErrDishUnnamed
	}
	img, err := s.ai.GenerateDishImage(ctx, dish)
	if err != nil {
		return models.Menu{}, err
	}
	return s.mutateMenu(ctx, chefID, menuID, func(m *models.Menu) error {
		return setDish(m, key, idx, func(d *models.Dish) { d.Image = img })
	})
}

// DishWizard writes the dish narrative and then shoots it. Both fields
// are written together or not at all.
func (s *Service) DishWizard(ctx context.Context, chefID, menuID, key string, idx int) (models.Menu, error) {
	_, menu, err := s.menuFor(ctx, chefID, menuID)
	if err != nil {
		return models.Menu{}, err
	}
	dish, err := dishAt(menu, key, idx)
	if err != nil {
		return models.Menu{}, err
	}
	if dish.Name == "" {
		return models.Menu{}, ErrDishUnnamed
	}
	narrative, err := s.ai.GenerateDishDescription(ctx, dish.Name, dish.Ingredients)
	if err != nil {
		return models.Menu{}, err
	}
	img, err := s.ai.GenerateDishPhotoFromNarrative(ctx, dish, narrative)
	if err != nil {
		return models.Menu{}, err
	}
	return s.mutateMenu(ctx, chefID, menuID, func(m *models.Menu) error {
		return setDish(m, key, idx, func(d *models.Dish) {
			d.Description = narrative
			d.Image = img
		})
	})
}

func (s *Service) GeneratePortrait(ctx context.Context, chefID string) (models.Chef, error) {
	chef, err := s.Chef(ctx, chefID)
	if err != nil {
		return models.Chef{}, err
	}
	img, err := s.ai.GenerateChefPortrait(ctx, chef.Name)
	if err != nil {
		return models.Chef{}, err
	}
	return s.mutateChef(ctx, chefID, func(c *models.Chef) error {
		c.ImageURL = img
		return nil
	})
}

func (s *Service) GenerateTeaser(ctx context.Context, chefID, prompt, aspectRatio string) (models.Chef, error) {
	if _, err := s.Chef(ctx, chefID); err != nil {
		return models.Chef{}, err
	}
	url, err := s.ai.GenerateChefTeaser(ctx, prompt, aspectRatio)
	if err != nil {
		return models.Chef{}, err
	}
	return s.mutateChef(ctx, chefID, func(c *models.Chef) error {
		c.TeaserVideo = url
		return nil
	})
}
