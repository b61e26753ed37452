// Package store is the record store: each logical collection lives as one
// serialized JSON document under a fixed key of a KV substrate.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"private-chef-api/models"

	"github.com/sirupsen/logrus"
)

// Storage keys, one per collection
const (
	KeyUsers            = "luxeplate_users"
	KeyBookings         = "luxeplate_bookings"
	KeyChefs            = "luxeplate_chefs_cache"
	KeySessions         = "luxeplate_current_sessions"
	KeySettings         = "luxeplate_platform_settings"
	KeyPromotions       = "luxeplate_promotions"
	KeyGiftCards        = "luxeplate_gift_cards"
	KeyRecruitmentLeads = "luxeplate_recruitment_leads"
	KeyChefRequests     = "luxeplate_chef_requests"
	KeyEventLeads       = "luxeplate_event_leads"
	KeySystemLogs       = "luxeplate_system_logs"
	KeySocialPosts      = "luxeplate_social_posts"
	KeyBookingHistory   = "luxeplate_booking_history"
)

// MaxSystemLogs caps the admin activity feed
const MaxSystemLogs = 100

type Store struct {
	kv   KV
	seed *Seed
	now  func() time.Time

	Users            *Collection[models.User]
	Chefs            *Collection[models.Chef]
	Bookings         *Collection[models.Booking]
	Sessions         *Collection[models.Session]
	Promotions       *Collection[models.Promotion]
	GiftCards        *Collection[models.GiftCard]
	RecruitmentLeads *Collection[models.RecruitmentLead]
	ChefRequests     *Collection[models.ChefRequest]
	EventLeads       *Collection[models.EventLead]
	SocialPosts      *Collection[models.SocialPost]
	BookingHistory   *Collection[models.BookingStatusChange]

	logMu sync.Mutex
}

type Option func(*Store)

// WithClock overrides the time source used for log stamps and seed dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(kv KV, seed *Seed, opts ...Option) *Store {
	if seed == nil {
		seed = &Seed{}
	}
	s := &Store{kv: kv, seed: seed, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	s.Users = newCollection[models.User](kv, KeyUsers, false, nil)
	s.Chefs = newCollection[models.Chef](kv, KeyChefs, false, nil)
	s.Bookings = newCollection[models.Booking](kv, KeyBookings, false, nil)
	s.Sessions = newCollection[models.Session](kv, KeySessions, false, nil)
	s.Promotions = newCollection[models.Promotion](kv, KeyPromotions, true, nil)
	s.GiftCards = newCollection[models.GiftCard](kv, KeyGiftCards, true, nil)
	s.RecruitmentLeads = newCollection[models.RecruitmentLead](kv, KeyRecruitmentLeads, true, nil)
	s.ChefRequests = newCollection(kv, KeyChefRequests, true, func() []models.ChefRequest {
		return seed.chefRequests(s.now())
	})
	s.EventLeads = newCollection(kv, KeyEventLeads, true, func() []models.EventLead {
		return seed.eventLeads(s.now())
	})
	s.SocialPosts = newCollection[models.SocialPost](kv, KeySocialPosts, false, nil)
	s.BookingHistory = newCollection[models.BookingStatusChange](kv, KeyBookingHistory, false, nil)
	return s
}

// ── Settings ────────────────────────────────────────────────────────────────

// Settings returns the stored platform settings, or the defaults when none
// were ever written (or the stored document is unreadable).
func (s *Store) Settings(ctx context.Context) models.PlatformSettings {
	raw, ok, err := s.kv.Get(ctx, KeySettings)
	if err != nil || !ok {
		return s.seed.Settings
	}
	var settings models.PlatformSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		logrus.WithError(err).Warn("corrupt platform settings, using defaults")
		return s.seed.Settings
	}
	return settings
}

func (s *Store) UpdateSettings(ctx context.Context, settings models.PlatformSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, KeySettings, raw)
}

// ── System log ──────────────────────────────────────────────────────────────

// SystemLogs returns the activity feed, newest first.
func (s *Store) SystemLogs(ctx context.Context) []string {
	raw, ok, err := s.kv.Get(ctx, KeySystemLogs)
	if err != nil || !ok {
		return []string{}
	}
	var logs []string
	if err := json.Unmarshal(raw, &logs); err != nil {
		return []string{}
	}
	return logs
}

// AddSystemLog prepends a time-stamped line and drops anything past MaxSystemLogs.
func (s *Store) AddSystemLog(ctx context.Context, message string) {
	s.logMu.Lock()
	defer s.logMu.Unlock()

	line := fmt.Sprintf("[%s] %s", s.now().Format("15:04:05"), message)
	logs := append([]string{line}, s.SystemLogs(ctx)...)
	if len(logs) > MaxSystemLogs {
		logs = logs[:MaxSystemLogs]
	}
	raw, _ := json.Marshal(logs)
	if err := s.kv.Set(ctx, KeySystemLogs, raw); err != nil {
		logrus.WithError(err).Error("failed to append system log")
	}
}

// ── Users ───────────────────────────────────────────────────────────────────

func (s *Store) FindUserByEmail(ctx context.Context, email string) (models.User, bool) {
	return s.Users.Find(ctx, func(u models.User) bool { return u.Email == email })
}

// ── Chefs ───────────────────────────────────────────────────────────────────

func (s *Store) CachedChefs(ctx context.Context) []models.Chef {
	return s.Chefs.GetAll(ctx)
}

func (s *Store) SaveChef(ctx context.Context, chef models.Chef) error {
	return s.Chefs.Save(ctx, chef)
}

// CacheChefs replaces the cached chef list wholesale.
func (s *Store) CacheChefs(ctx context.Context, chefs []models.Chef) error {
	return s.Chefs.Replace(ctx, chefs)
}

func (s *Store) ChefByID(ctx context.Context, id string) (models.Chef, bool) {
	return s.Chefs.Get(ctx, id)
}

// ── Bookings ────────────────────────────────────────────────────────────────

func (s *Store) CreateBooking(ctx context.Context, b models.Booking) error {
	return s.Bookings.Append(ctx, b)
}

// UpdateBooking replaces a booking; unknown ids are ignored.
func (s *Store) UpdateBooking(ctx context.Context, b models.Booking) (bool, error) {
	return s.Bookings.Update(ctx, b)
}

func (s *Store) BookingsByUserID(ctx context.Context, userID string) []models.Booking {
	return s.Bookings.Filter(ctx, func(b models.Booking) bool { return b.UserID == userID })
}

func (s *Store) BookingsByChefID(ctx context.Context, chefID string) []models.Booking {
	return s.Bookings.Filter(ctx, func(b models.Booking) bool { return b.ChefID == chefID })
}

// ── Social ──────────────────────────────────────────────────────────────────

// SortedSocialPosts returns posts by scheduledAt, latest first.
func (s *Store) SortedSocialPosts(ctx context.Context) []models.SocialPost {
	posts := s.SocialPosts.GetAll(ctx)
	sort.SliceStable(posts, func(i, j int) bool {
		return parseTime(posts[i].ScheduledAt).After(parseTime(posts[j].ScheduledAt))
	})
	return posts
}

func parseTime(v string) time.Time {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}
	}
	return t
}
