package models

// BookingStatus represents all possible states of a chef booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusCancelled BookingStatus = "CANCELLED"
	StatusRefunded  BookingStatus = "REFUNDED"
)

// Booking keeps a denormalized snapshot of the chef and menu as they were at
// booking time. Date and Time are display strings, not timestamps.
type Booking struct {
	ID         string        `json:"id"`
	UserID     string        `json:"userId"`
	ChefID     string        `json:"chefId"`
	ChefName   string        `json:"chefName"`
	ChefImage  string        `json:"chefImage"`
	MenuName   string        `json:"menuName"`
	Date       string        `json:"date"`
	Time       string        `json:"time"`
	Guests     int           `json:"guests"`
	TotalPrice float64       `json:"totalPrice"`
	Status     BookingStatus `json:"status"`
	CreatedAt  string        `json:"createdAt"`
}

func (b Booking) GetID() string { return b.ID }

// BookingStatusChange tracks every status change of a booking
type BookingStatusChange struct {
	ID         string        `json:"id"`
	BookingID  string        `json:"bookingId"`
	FromStatus BookingStatus `json:"fromStatus"`
	ToStatus   BookingStatus `json:"toStatus"`
	ChangedBy  string        `json:"changedBy"`
	Note       string        `json:"note,omitempty"`
	CreatedAt  string        `json:"createdAt"`
}

func (h BookingStatusChange) GetID() string { return h.ID }
