package booking

import (
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"rentalapp/internal/domain"
)

// Step is the wizard position of an in-progress draft. Transitions are
// strictly forward via Continue/BeginSubmit; Back returns one step
// without discarding data already entered for later steps.
type Step int

const (
	StepDates Step = iota + 1
	StepGuests
	StepUserInfo
	StepPayment
	StepSubmitting
	StepConfirmed
	StepFailed
)

func (s Step) String() string {
	switch s {
	case StepDates:
		return "collecting_dates"
	case StepGuests:
		return "collecting_guests"
	case StepUserInfo:
		return "collecting_user_info"
	case StepPayment:
		return "collecting_payment"
	case StepSubmitting:
		return "submitting"
	case StepConfirmed:
		return "confirmed"
	case StepFailed:
		return "failed"
	}
	return "unknown"
}

type GuestCategory string

const (
	GuestAdult  GuestCategory = "adult"
	GuestChild  GuestCategory = "child"
	GuestInfant GuestCategory = "infant"
)

type guestBound struct {
	min, max int
}

// Bounds mirror the +/- controls on the guest selector: adults 1..10,
// children 0..10, infants 0..5.
var guestBounds = map[GuestCategory]guestBound{
	GuestAdult:  {min: 1, max: 10},
	GuestChild:  {min: 0, max: 10},
	GuestInfant: {min: 0, max: 5},
}

type GuestCounts struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

func defaultGuestCounts() GuestCounts {
	return GuestCounts{Adults: 1}
}

func (g *GuestCounts) get(cat GuestCategory) *int {
	switch cat {
	case GuestAdult:
		return &g.Adults
	case GuestChild:
		return &g.Children
	case GuestInfant:
		return &g.Infants
	}
	return nil
}

// Increment raises the category count by one. A request beyond the
// category maximum is a silent no-op, matching the UI control that
// simply disables at the bound.
func (g *GuestCounts) Increment(cat GuestCategory) {
	v := g.get(cat)
	if v == nil {
		return
	}
	if *v+1 > guestBounds[cat].max {
		return
	}
	*v++
}

// Decrement lowers the category count by one, never below the category
// minimum. Adults can never drop below 1.
func (g *GuestCounts) Decrement(cat GuestCategory) {
	v := g.get(cat)
	if v == nil {
		return
	}
	if *v-1 < guestBounds[cat].min {
		return
	}
	*v--
}

func (g GuestCounts) Total() int {
	return g.Adults + g.Children + g.Infants
}

func (g GuestCounts) withinBounds() bool {
	return g.Adults >= guestBounds[GuestAdult].min && g.Adults <= guestBounds[GuestAdult].max &&
		g.Children >= guestBounds[GuestChild].min && g.Children <= guestBounds[GuestChild].max &&
		g.Infants >= guestBounds[GuestInfant].min && g.Infants <= guestBounds[GuestInfant].max
}

// DateRange is a pair of date-only calendar dates with the invariant
// that check-out is strictly after check-in. Fields are unexported so
// the invariant cannot be bypassed.
type DateRange struct {
	checkIn  time.Time
	checkOut time.Time
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SetCheckIn assigns the check-in date. If a check-out is already set
// and would not come strictly after the new check-in, the assignment
// is rejected and the range is left unchanged.
func (r *DateRange) SetCheckIn(d time.Time) error {
	d = dateOnly(d)
	if !r.checkOut.IsZero() && !r.checkOut.After(d) {
		return ErrInvalidRange
	}
	r.checkIn = d
	return nil
}

// SetCheckOut assigns the check-out date, rejecting any value at or
// before the current check-in.
func (r *DateRange) SetCheckOut(d time.Time) error {
	d = dateOnly(d)
	if !r.checkIn.IsZero() && !d.After(r.checkIn) {
		return ErrInvalidRange
	}
	r.checkOut = d
	return nil
}

func (r DateRange) CheckIn() time.Time  { return r.checkIn }
func (r DateRange) CheckOut() time.Time { return r.checkOut }

func (r DateRange) valid() bool {
	return !r.checkIn.IsZero() && !r.checkOut.IsZero() && r.checkOut.After(r.checkIn)
}

// Nights returns the stay length in nights, ceil of the day span.
// An unset or invalid range is an error, never a negative count.
func (r DateRange) Nights() (int, error) {
	if !r.valid() {
		return 0, ErrInvalidRange
	}
	return int(math.Ceil(r.checkOut.Sub(r.checkIn).Hours() / 24)), nil
}

// CardDetails are raw strings; checksum and format validation belong
// to the payment collaborator, the draft only requires presence.
type CardDetails struct {
	HolderName string `json:"holder_name"`
	Number     string `json:"number"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

func (c CardDetails) complete() bool {
	return strings.TrimSpace(c.HolderName) != "" &&
		strings.TrimSpace(c.Number) != "" &&
		strings.TrimSpace(c.Expiry) != "" &&
		strings.TrimSpace(c.CVV) != ""
}

type GuestInfo struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Gender      string `json:"gender,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Country     string `json:"country,omitempty"`
}

// Draft is the mutable working state of an in-progress booking. It is
// created when the user opens the booking flow for a property, mutated
// across wizard steps, and either consumed on submission or discarded.
// Never persisted.
type Draft struct {
	mu sync.Mutex

	ID         string
	PropertyID int64
	UserID     int64

	Dates         DateRange
	Guests        GuestCounts
	Guest         GuestInfo
	Note          string
	PaymentMethod domain.PaymentMethod
	Card          CardDetails

	step Step
}

func NewDraft(propertyID, userID int64) *Draft {
	return &Draft{
		ID:            uuid.NewString(),
		PropertyID:    propertyID,
		UserID:        userID,
		Guests:        defaultGuestCounts(),
		PaymentMethod: domain.PayCreditCard,
		step:          StepDates,
	}
}

func (d *Draft) Step() Step {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.step
}

// Continue advances one collecting step. Leaving the dates step
// requires a valid range; the remaining collecting steps have no
// forward precondition of their own. Payment is left via BeginSubmit.
func (d *Draft) Continue() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch d.step {
	case StepDates:
		if !d.Dates.valid() {
			ve := newValidationError()
			ve.add("dates", "select a valid check-in and check-out")
			return ve
		}
		d.step = StepGuests
	case StepGuests:
		d.step = StepUserInfo
	case StepUserInfo:
		d.step = StepPayment
	default:
		return ErrWrongStep
	}
	return nil
}

// Back returns to the immediately prior step. Data entered for later
// steps is kept. From Failed the wizard returns to the payment step so
// the user can retry without re-entering anything.
func (d *Draft) Back() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch d.step {
	case StepGuests, StepUserInfo, StepPayment:
		d.step--
	case StepFailed:
		d.step = StepPayment
	default:
		return ErrWrongStep
	}
	return nil
}

// BeginSubmit performs the payment -> submitting transition. All
// preconditions are checked here; any unmet one blocks the transition
// with a ValidationError and no partial submission is possible. A
// draft already submitting is rejected so at most one submission is in
// flight.
func (d *Draft) BeginSubmit() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch d.step {
	case StepSubmitting:
		return ErrSubmitInFlight
	case StepPayment, StepFailed:
	default:
		return ErrWrongStep
	}

	ve := newValidationError()
	if !d.Dates.valid() {
		ve.add("dates", "select a valid check-in and check-out")
	}
	if d.Guests.Adults < 1 || !d.Guests.withinBounds() {
		ve.add("guests", "at least one adult is required")
	}
	if !d.PaymentMethod.Valid() {
		ve.add("payment_method", "unsupported payment method")
	}
	if d.PaymentMethod == domain.PayCreditCard && !d.Card.complete() {
		ve.add("card", "fill in all card details")
	}
	if len(ve.Fields) > 0 {
		return ve
	}

	d.step = StepSubmitting
	return nil
}

// Confirm completes a submission: Submitting -> Confirmed.
func (d *Draft) Confirm() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.step != StepSubmitting {
		return ErrWrongStep
	}
	d.step = StepConfirmed
	return nil
}

// Fail records an adapter failure: Submitting -> Failed. The draft is
// retained so the user may retry without re-entering data.
func (d *Draft) Fail() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.step != StepSubmitting {
		return ErrWrongStep
	}
	d.step = StepFailed
	return nil
}
