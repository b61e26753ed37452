package checkout

import (
	"errors"
	"fmt"

	"private-chef-api/models"
)

// View is the screen a user's session is on.
type View string

const (
	ViewHome            View = "HOME"
	ViewSearchResults   View = "SEARCH_RESULTS"
	ViewChefProfile     View = "CHEF_PROFILE"
	ViewBookingDetails  View = "BOOKING_DETAILS"
	ViewPayment         View = "PAYMENT"
	ViewBookingSuccess  View = "BOOKING_SUCCESS"
	ViewAdmin           View = "ADMIN"
	ViewAdminLogin      View = "ADMIN_LOGIN"
	ViewChefDashboard   View = "CHEF_DASHBOARD"
	ViewRequestChefForm View = "REQUEST_CHEF_FORM"
	ViewVideoGeneration View = "VIDEO_GENERATION"
	ViewUserProfile     View = "USER_PROFILE"
)

type Action string

const (
	ActionSearch           Action = "search"
	ActionSelectChef       Action = "select_chef"
	ActionSetDetails       Action = "set_details"
	ActionBookMenu         Action = "book_menu"
	ActionProceedToPayment Action = "proceed_to_payment"
	ActionPaymentSucceeded Action = "payment_succeeded"
	ActionBack             Action = "back"
	ActionGoHome           Action = "go_home"
	ActionRequestChef      Action = "request_chef"
	ActionOpenProfile      Action = "open_profile"
)

// DefaultGuests is the party size a fresh session starts with.
const DefaultGuests = 6

var (
	ErrInvalidAction     = errors.New("action not allowed from current view")
	ErrNoChefSelected    = errors.New("no chef selected")
	ErrMenuNotFound      = errors.New("menu not found")
	ErrIncompleteBooking = errors.New("booking details incomplete")
	ErrInvalidGuests     = errors.New("guests must be at least 1")
)

// step is one edge of the view graph
type step struct {
	From   View
	Action Action
	To     View
}

var steps = []step{
	{ViewHome, ActionSearch, ViewSearchResults},
	{ViewSearchResults, ActionSearch, ViewSearchResults},

	{ViewHome, ActionSelectChef, ViewChefProfile},
	{ViewSearchResults, ActionSelectChef, ViewChefProfile},
	{ViewChefProfile, ActionSelectChef, ViewChefProfile},

	{ViewChefProfile, ActionSetDetails, ViewChefProfile},
	{ViewBookingDetails, ActionSetDetails, ViewBookingDetails},

	{ViewChefProfile, ActionBookMenu, ViewBookingDetails},
	{ViewBookingDetails, ActionProceedToPayment, ViewPayment},
	{ViewPayment, ActionPaymentSucceeded, ViewBookingSuccess},

	{ViewChefProfile, ActionBack, ViewHome},
	{ViewSearchResults, ActionBack, ViewHome},
	{ViewBookingDetails, ActionBack, ViewChefProfile},
	{ViewPayment, ActionBack, ViewBookingDetails},

	{ViewHome, ActionRequestChef, ViewRequestChefForm},
	{ViewHome, ActionOpenProfile, ViewUserProfile},
}

type stepKey struct {
	From   View
	Action Action
}

var stepMap = func() map[stepKey]View {
	m := make(map[stepKey]View, len(steps))
	for _, s := range steps {
		m[stepKey{s.From, s.Action}] = s.To
	}
	return m
}()

// Next resolves where an action leads. go_home is valid from anywhere.
func Next(from View, action Action) (View, error) {
	if action == ActionGoHome {
		return ViewHome, nil
	}
	if to, ok := stepMap[stepKey{from, action}]; ok {
		return to, nil
	}
	return from, fmt.Errorf("%w: %s from %s", ErrInvalidAction, action, from)
}

// LandingView is where a user goes right after signing in.
func LandingView(role models.UserRole) View {
	switch role {
	case models.RoleAdmin:
		return ViewAdmin
	case models.RoleChef:
		return ViewChefDashboard
	default:
		return ViewHome
	}
}

// Flow is one user's in-progress checkout. It lives in memory only.
type Flow struct {
	View     View         `json:"view"`
	Location string       `json:"location"`
	Cuisine  string       `json:"cuisine,omitempty"`
	Chef     *models.Chef `json:"chef,omitempty"`
	Menu     *models.Menu `json:"menu,omitempty"`
	Date     string       `json:"date,omitempty"`
	Time     string       `json:"time,omitempty"`
	Guests   int          `json:"guests"`
	// Advisory warns when the party is below the chef's minimum spend.
	Advisory     string          `json:"advisory,omitempty"`
	LastBooking  *models.Booking `json:"lastBooking,omitempty"`
	Confirmation string          `json:"confirmation,omitempty"`
}

func NewFlow() Flow {
	return Flow{View: ViewHome, Location: "London", Guests: DefaultGuests}
}

func (f *Flow) fire(action Action) error {
	to, err := Next(f.View, action)
	if err != nil {
		return err
	}
	f.View = to
	return nil
}

// Go applies a pure navigation action. Back-navigation never discards the
// selections already made.
func (f *Flow) Go(action Action) error {
	switch action {
	case ActionSelectChef, ActionSetDetails, ActionBookMenu, ActionProceedToPayment, ActionPaymentSucceeded:
		return fmt.Errorf("%w: %s needs arguments", ErrInvalidAction, action)
	}
	return f.fire(action)
}

func (f *Flow) Search(location, cuisine string) error {
	if err := f.fire(ActionSearch); err != nil {
		return err
	}
	if location != "" {
		f.Location = location
	}
	f.Cuisine = cuisine
	return nil
}

func (f *Flow) SelectChef(chef models.Chef) error {
	if err := f.fire(ActionSelectChef); err != nil {
		return err
	}
	if f.Chef == nil || f.Chef.ID != chef.ID {
		f.Menu = nil
	}
	f.Chef = &chef
	f.Advisory = MinSpendAdvisory(chef, f.Guests)
	return nil
}

func (f *Flow) SetDetails(date, at string, guests int) error {
	if guests < 1 {
		return ErrInvalidGuests
	}
	if err := f.fire(ActionSetDetails); err != nil {
		return err
	}
	f.Date, f.Time, f.Guests = date, at, guests
	if f.Chef != nil {
		f.Advisory = MinSpendAdvisory(*f.Chef, guests)
	}
	return nil
}

func (f *Flow) BookMenu(menuID string) error {
	if f.Chef == nil {
		return ErrNoChefSelected
	}
	menu, _, ok := f.Chef.MenuByID(menuID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrMenuNotFound, menuID)
	}
	if err := f.fire(ActionBookMenu); err != nil {
		return err
	}
	f.Menu = &menu
	return nil
}

func (f *Flow) ProceedToPayment() error {
	if err := f.ready(); err != nil {
		return err
	}
	return f.fire(ActionProceedToPayment)
}

func (f *Flow) ready() error {
	if f.Chef == nil || f.Menu == nil || f.Date == "" || f.Time == "" || f.Guests < 1 {
		return ErrIncompleteBooking
	}
	return nil
}

// Total is pricePerHead × guests for the selected menu.
func (f *Flow) Total() float64 {
	if f.Menu == nil {
		return 0
	}
	return TotalPrice(*f.Menu, f.Guests)
}

func TotalPrice(menu models.Menu, guests int) float64 {
	return menu.PricePerHead * float64(guests)
}

// MinSpendAdvisory never blocks a booking, it only warns.
func MinSpendAdvisory(chef models.Chef, guests int) string {
	if chef.MinSpend <= 0 {
		return ""
	}
	if float64(guests)*chef.MinPrice >= chef.MinSpend {
		return ""
	}
	return fmt.Sprintf("This chef has a minimum spend of £%.0f. Your current selection may not meet this.", chef.MinSpend)
}
