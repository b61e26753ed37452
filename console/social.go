package console

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"private-chef-api/ai"
	"private-chef-api/models"
)

// CampaignRequest describes a social campaign to draft.
type CampaignRequest struct {
	Theme      string                  `json:"theme" binding:"required"`
	TargetType models.SocialTargetType `json:"targetType"`
	TargetID   string                  `json:"targetId"`
}

func (c *Console) targetName(ctx context.Context, t models.SocialTargetType, id string) string {
	switch t {
	case models.TargetChef:
		if chef, ok := c.store.ChefByID(ctx, id); ok {
			return chef.Name
		}
		return "Chef Partner"
	case models.TargetEvent:
		if lead, ok := c.store.EventLeads.Get(ctx, id); ok {
			return lead.ClientName
		}
		return "Gala Event"
	default:
		return "LuxePlate Official"
	}
}

// GenerateCampaign drafts a cross-platform post and schedules it a day out.
func (c *Console) GenerateCampaign(ctx context.Context, req CampaignRequest) (models.SocialPost, error) {
	if strings.TrimSpace(req.Theme) == "" {
		return models.SocialPost{}, ErrThemeRequired
	}
	if req.TargetType == "" {
		req.TargetType = models.TargetPlatform
	}
	if req.TargetType != models.TargetPlatform && req.TargetID == "" {
		return models.SocialPost{}, ErrTargetRequired
	}

	name := c.targetName(ctx, req.TargetType, req.TargetID)
	res, err := c.Trigger(ctx, "SOCIAL_CAMPAIGN", func(ctx context.Context) (any, error) {
		return c.ai.GenerateSocialCampaign(ctx, req.Theme, fmt.Sprintf("%s: %s", req.TargetType, name))
	})
	if err != nil {
		return models.SocialPost{}, err
	}
	campaign := res.(ai.Campaign)

	post := models.SocialPost{
		ID:           uuid.NewString(),
		TargetType:   req.TargetType,
		TargetID:     req.TargetID,
		TargetName:   name,
		Platforms:    []models.SocialPlatform{models.PlatformInstagram, models.PlatformFacebook, models.PlatformX},
		Content:      campaign.Content,
		Hashtags:     campaign.Hashtags,
		VisualPrompt: campaign.VisualPrompt,
		Status:       models.PostScheduled,
		ScheduledAt:  c.now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
	}
	if err := c.store.SocialPosts.Save(ctx, post); err != nil {
		return models.SocialPost{}, fmt.Errorf("save social post: %w", err)
	}
	return post, nil
}

// PublishPost marks a scheduled post as live.
func (c *Console) PublishPost(ctx context.Context, id string) (models.SocialPost, error) {
	post, ok := c.store.SocialPosts.Get(ctx, id)
	if !ok {
		return models.SocialPost{}, fmt.Errorf("%w: social post %s", ErrNotFound, id)
	}
	post.Status = models.PostPublished
	post.PublishedAt = c.now().UTC().Format(time.RFC3339)
	if _, err := c.store.SocialPosts.Update(ctx, post); err != nil {
		return models.SocialPost{}, fmt.Errorf("update social post: %w", err)
	}
	c.store.AddSystemLog(ctx, "Social post published for "+post.TargetName)
	return post, nil
}

// OptimizePostHashtags asks the model for regional hashtags and stores them
// on the post.
func (c *Console) OptimizePostHashtags(ctx context.Context, id, region string) (models.SocialPost, error) {
	post, ok := c.store.SocialPosts.Get(ctx, id)
	if !ok {
		return models.SocialPost{}, fmt.Errorf("%w: social post %s", ErrNotFound, id)
	}
	tags, err := c.ai.OptimizeHashtags(ctx, post.Content.Instagram, region)
	if err != nil {
		return models.SocialPost{}, err
	}
	post.Hashtags = tags
	if _, err := c.store.SocialPosts.Update(ctx, post); err != nil {
		return models.SocialPost{}, fmt.Errorf("update social post: %w", err)
	}
	return post, nil
}

func (c *Console) DeletePost(ctx context.Context, id string) error {
	removed, err := c.store.SocialPosts.Remove(ctx, id)
	if err != nil {
		return fmt.Errorf("remove social post: %w", err)
	}
	if !removed {
		return fmt.Errorf("%w: social post %s", ErrNotFound, id)
	}
	return nil
}
