package domain

import "time"

// Enumerations
const (
	RoleMember UserRole = "member"
	RoleAdmin  UserRole = "admin"

	CategoryBeverage     MenuCategory = "Beverage"
	CategorySnack        MenuCategory = "Snack"
	CategoryProductivity MenuCategory = "Productivity"
	CategoryCreative     MenuCategory = "Creative"

	OrderPending   OrderStatus = "Pending"
	OrderPreparing OrderStatus = "Preparing"
	OrderReady     OrderStatus = "Ready"
	OrderCollected OrderStatus = "Collected"
	OrderCancelled OrderStatus = "Cancelled"

	DeliveryPickup DeliveryMethod = "pickup"
	DeliveryDesk   DeliveryMethod = "delivery"

	BookingConfirmed BookingStatus = "confirmed"

	FacilityGaming      FacilityID = "gaming"
	FacilityQuietZone   FacilityID = "quiet_zone"
	FacilityMeetingPod  FacilityID = "meeting_pod"
	FacilityCreativeCnr FacilityID = "creative_corner"

	LogInfo    ActivityLogType = "info"
	LogWarning ActivityLogType = "warning"
	LogError   ActivityLogType = "error"

	NotificationInfo  NotificationType = "info"
	NotificationOrder NotificationType = "order"
)

type UserRole string
type MenuCategory string
type OrderStatus string
type DeliveryMethod string
type BookingStatus string
type FacilityID string
type ActivityLogType string
type NotificationType string

type Money struct {
	Amount   int64
	Currency string
}

// User is a café member or an admin. MemberID is the human-readable
// OT#### identity assigned once at first sign-in via the member counter.
type User struct {
	ID              int64
	MemberID        string
	Name            string
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	Role            UserRole
	Tier            string
	CoffeeCount     int
	FreeCoffees     int
	BirthDate       *string
	ProfileComplete bool
	IsGoogle        bool
	PasswordHash    *string
	JoinedAt        time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time
}

// Counter backs the sequential ID schemes. Date is set only for daily
// sequences and detects day rollover.
type Counter struct {
	Name      string
	Count     int64
	Date      *string
	UpdatedAt time.Time
}

// MenuOption is a configurable size or add-on for a menu item.
type MenuOption struct {
	Name  string
	Price Money
}

type MenuItem struct {
	ID            int64
	Name          string
	Category      MenuCategory
	Price         Money
	Description   string
	Tags          []string
	IsRecommended bool
	Rating        *float64
	ReviewCount   *int
	Sizes         []MenuOption
	AddOns        []MenuOption
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}

// OrderLine is a denormalized snapshot of the menu item at order time,
// not a live reference.
type OrderLine struct {
	ID        int64
	OrderID   int64
	Name      string
	Category  MenuCategory
	Size      *string
	AddOns    []string
	UnitPrice Money
	Qty       int
}

type Order struct {
	ID             int64
	UserID         int64
	UserName       string
	OrderNumber    int64
	RefCode        string
	Status         OrderStatus
	DeliveryMethod DeliveryMethod
	DeskLocation   string
	Total          Money
	Items          []OrderLine
	CreatedAt      time.Time
	UpdatedAt      time.Time
	CollectedAt    *time.Time
	DeletedAt      *time.Time
}

// Booking claims one fixed 2-hour slot of a facility for a day.
// Immutable once created.
type Booking struct {
	ID        int64
	Facility  FacilityID
	Date      time.Time
	Slot      string
	UserName  string
	Status    BookingStatus
	CreatedAt time.Time
	DeletedAt *time.Time
}

// FacilityStatus is the live occupied/available flag per facility.
// ManualHold marks a staff override the auto-pilot must respect until
// the next booking window boundary.
type FacilityStatus struct {
	Facility   FacilityID
	Occupied   bool
	Message    string
	AutoPilot  bool
	ManualHold bool
	UpdatedAt  time.Time
}

// Settings is the singleton tunables row: loyalty goal, store open state,
// holiday closures and the gaming library titles.
type Settings struct {
	CoffeeGoal   int
	StoreOpen    bool
	StoreMessage string
	ClosedDates  []string
	GamingTitles []string
	UpdatedAt    time.Time
}

type ActivityLog struct {
	ID        int64
	Title     string
	Message   string
	Actor     string
	Type      ActivityLogType
	LoggedAt  time.Time
	DeletedAt *time.Time
}

type Notification struct {
	ID        int64
	UserID    *int64
	Title     string
	Message   string
	Type      NotificationType
	CreatedAt time.Time
	ReadAt    *time.Time
	DeletedAt *time.Time
}

// Facilities lists every bookable facility in display order.
func Facilities() []FacilityID {
	return []FacilityID{FacilityGaming, FacilityQuietZone, FacilityMeetingPod, FacilityCreativeCnr}
}

// ValidFacility reports whether id names a known facility.
func ValidFacility(id FacilityID) bool {
	for _, f := range Facilities() {
		if f == id {
			return true
		}
	}
	return false
}
