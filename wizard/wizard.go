package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/models"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/pricing"
)

// Step is a position in the booking flow
type Step int

const (
	StepRoomSelect Step = iota
	StepDetails
	StepPayment
	StepConfirmation
)

var stepNames = [...]string{"ROOM_SELECT", "DETAILS", "PAYMENT", "CONFIRMATION"}

func (s Step) String() string {
	if s < StepRoomSelect || s > StepConfirmation {
		return fmt.Sprintf("Step(%d)", int(s))
	}
	return stepNames[s]
}

func (s Step) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Step) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, n := range stepNames {
		if n == name {
			*s = Step(i)
			return nil
		}
	}
	return fmt.Errorf("unknown step %q", name)
}

// Guest count bounds
const (
	MinGuests = 1
	MaxGuests = 6
)

var (
	ErrStepGuard            = errors.New("current step is incomplete")
	ErrWrongStep            = errors.New("operation not allowed at the current step")
	ErrNoPreviousStep       = errors.New("no previous step")
	ErrPaymentRequired      = errors.New("payment step advances only through a payment confirmation")
	ErrWizardClosed         = errors.New("reservation already confirmed")
	ErrSubmissionInProgress = errors.New("reservation submission already in progress")
	ErrPaymentNotApproved   = errors.New("payment was not approved")
	ErrGuestCountOutOfRange = fmt.Errorf("guest count must be between %d and %d", MinGuests, MaxGuests)
)

// Draft is the in-progress reservation owned by one wizard
type Draft struct {
	RoomID             string                   `json:"roomId,omitempty"`
	RoomName           string                   `json:"roomName,omitempty"`
	PricePerNight      int64                    `json:"pricePerNight"`
	Capacity           int                      `json:"capacity,omitempty"`
	BedCount           int                      `json:"bedCount,omitempty"`
	ImageURL           string                   `json:"imageUrl,omitempty"`
	AvailableAmenities []string                 `json:"availableAmenities"`
	CheckIn            time.Time                `json:"checkIn,omitzero"`
	CheckOut           time.Time                `json:"checkOut,omitzero"`
	GuestCount         int                      `json:"guestCount"`
	AdditionalServices []models.ServiceSnapshot `json:"additionalServices"`
	Comments           string                   `json:"comments,omitempty"`
	ContactName        string                   `json:"contactName,omitempty"`
	ContactEmail       string                   `json:"contactEmail,omitempty"`
	ContactPhone       string                   `json:"contactPhone,omitempty"`
	CurrentStep        Step                     `json:"currentStep"`
}

func (d Draft) clone() Draft {
	c := d
	c.AvailableAmenities = append([]string{}, d.AvailableAmenities...)
	c.AdditionalServices = append([]models.ServiceSnapshot{}, d.AdditionalServices...)
	return c
}

func (d Draft) quoteInput() pricing.QuoteInput {
	return pricing.QuoteInput{
		RoomID:        d.RoomID,
		RoomName:      d.RoomName,
		PricePerNight: d.PricePerNight,
		CheckIn:       d.CheckIn,
		CheckOut:      d.CheckOut,
		Services:      d.AdditionalServices,
	}
}

// PaymentConfirmation is what the payment provider reports back to the wizard
type PaymentConfirmation struct {
	Method    string
	Approved  bool
	Reference string
}

// SubmitRequest carries a frozen draft to the backend
type SubmitRequest struct {
	Draft   Draft
	Quote   models.Quote
	Payment PaymentConfirmation
	UserID  string
}

// Confirmation is the result of a successful submission
type Confirmation struct {
	ReservationID string    `json:"reservationId"`
	PaymentID     string    `json:"paymentId"`
	Total         int64     `json:"total"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Submitter persists a reservation and its payment
type Submitter interface {
	SubmitReservation(ctx context.Context, req SubmitRequest) (*Confirmation, error)
}

// Wizard drives one booking attempt through ROOM_SELECT → DETAILS → PAYMENT → CONFIRMATION.
// It is safe for concurrent use; the lock is never held during submission.
type Wizard struct {
	mu           sync.Mutex
	ownerID      string
	draft        Draft
	submitting   bool
	confirmation *Confirmation
}

// New returns a wizard at ROOM_SELECT with an empty draft
func New(ownerID string) *Wizard {
	return &Wizard{
		ownerID: ownerID,
		draft: Draft{
			GuestCount:         MinGuests,
			AvailableAmenities: []string{},
			AdditionalServices: []models.ServiceSnapshot{},
			CurrentStep:        StepRoomSelect,
		},
	}
}

// OwnerID returns the user the wizard was opened for
func (w *Wizard) OwnerID() string {
	return w.ownerID
}

// Snapshot returns a copy of the draft
func (w *Wizard) Snapshot() Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft.clone()
}

// Step returns the current step
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft.CurrentStep
}

// Confirmation returns the submission result once the wizard reached CONFIRMATION
func (w *Wizard) Confirmation() (*Confirmation, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.confirmation == nil {
		return nil, false
	}
	c := *w.confirmation
	return &c, true
}

// SelectRoom copies the room's display and pricing data into the draft
func (w *Wizard) SelectRoom(room models.Room) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.requireStep(StepRoomSelect); err != nil {
		return err
	}
	if room.Status != models.RoomStatusAvailable {
		return models.ErrRoomUnavailable
	}

	w.draft.RoomID = room.ID
	w.draft.RoomName = room.Name
	w.draft.PricePerNight = room.PricePerNight
	w.draft.Capacity = room.Capacity
	w.draft.BedCount = room.BedCount
	w.draft.ImageURL = room.ImageURL
	w.draft.AvailableAmenities = append([]string{}, room.Amenities...)
	log.Printf("🛏️ Wizard: room selected id=%s price=%d", room.ID, room.PricePerNight)
	return nil
}

// SetStay records dates and guest count. Dates are always stored, even when the range
// or the guest count is invalid, so the form keeps what the guest typed. An out-of-range
// guest count keeps the previous one. The returned error joins every problem found and
// the step guard blocks advancing until they are fixed.
func (w *Wizard) SetStay(checkIn, checkOut time.Time, guests int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.requireStep(StepDetails); err != nil {
		return err
	}

	w.draft.CheckIn = checkIn
	w.draft.CheckOut = checkOut

	var problems []error
	if guests < MinGuests || guests > MaxGuests {
		problems = append(problems, ErrGuestCountOutOfRange)
	} else {
		w.draft.GuestCount = guests
	}
	if !checkIn.IsZero() && !checkOut.IsZero() && !checkOut.After(checkIn) {
		problems = append(problems, models.ErrInvalidDateRange)
	}
	return errors.Join(problems...)
}

// SetContact records the guest's contact data
func (w *Wizard) SetContact(name, email, phone string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.requireStep(StepDetails); err != nil {
		return err
	}
	w.draft.ContactName = strings.TrimSpace(name)
	w.draft.ContactEmail = strings.TrimSpace(email)
	w.draft.ContactPhone = strings.TrimSpace(phone)
	return nil
}

// SetComments records free-form notes for the property
func (w *Wizard) SetComments(comments string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.requireStep(StepDetails); err != nil {
		return err
	}
	w.draft.Comments = strings.TrimSpace(comments)
	return nil
}

// ToggleService adds the add-on when absent and removes it when present (matched by id).
// The snapshot keeps the price seen at selection time.
func (w *Wizard) ToggleService(svc models.ServiceSnapshot) (selected bool, err error) {
	return w.ToggleServiceByID(svc.ID, func(string) (models.ServiceSnapshot, error) {
		return svc, nil
	})
}

// ToggleServiceByID removes the add-on with id when selected, otherwise adds the snapshot
// returned by lookup. The presence check, lookup and update happen under the wizard lock,
// so concurrent toggles of one id alternate instead of racing. A lookup error leaves the
// draft untouched.
func (w *Wizard) ToggleServiceByID(id string, lookup func(id string) (models.ServiceSnapshot, error)) (selected bool, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.draft.CurrentStep == StepConfirmation {
		return false, ErrWizardClosed
	}
	if w.submitting {
		return false, ErrSubmissionInProgress
	}

	for i, s := range w.draft.AdditionalServices {
		if s.ID == id {
			w.draft.AdditionalServices = append(w.draft.AdditionalServices[:i:i], w.draft.AdditionalServices[i+1:]...)
			return false, nil
		}
	}
	svc, err := lookup(id)
	if err != nil {
		return false, err
	}
	w.draft.AdditionalServices = append(w.draft.AdditionalServices, svc)
	return true, nil
}

// Quote prices the current draft
func (w *Wizard) Quote() models.Quote {
	w.mu.Lock()
	defer w.mu.Unlock()
	return pricing.Quote(w.draft.quoteInput())
}

// ComputeTotal returns nights × pricePerNight + add-ons, or 0 while dates or price are missing
func (w *Wizard) ComputeTotal() int64 {
	return w.Quote().Total
}

// CanAdvance reports whether Next would succeed from the current step
func (w *Wizard) CanAdvance() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.canAdvance()
}

func (w *Wizard) canAdvance() bool {
	d := w.draft
	switch d.CurrentStep {
	case StepRoomSelect:
		return d.RoomID != ""
	case StepDetails:
		return !d.CheckIn.IsZero() &&
			!d.CheckOut.IsZero() &&
			d.CheckOut.After(d.CheckIn) &&
			d.GuestCount >= MinGuests && d.GuestCount <= MaxGuests &&
			d.ContactName != "" &&
			d.ContactEmail != "" &&
			d.ContactPhone != ""
	}
	return false
}

// Next moves forward one step when the guard allows it
func (w *Wizard) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.draft.CurrentStep {
	case StepConfirmation:
		return ErrWizardClosed
	case StepPayment:
		return ErrPaymentRequired
	}
	if !w.canAdvance() {
		return ErrStepGuard
	}
	w.draft.CurrentStep++
	return nil
}

// Back moves to the previous step. CONFIRMATION is terminal.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.draft.CurrentStep {
	case StepConfirmation:
		return ErrWizardClosed
	case StepRoomSelect:
		return ErrNoPreviousStep
	}
	if w.submitting {
		return ErrSubmissionInProgress
	}
	w.draft.CurrentStep--
	return nil
}

// Submit sends the draft to the backend after the payment provider approved it.
// On failure the wizard stays at PAYMENT so the guest can retry.
func (w *Wizard) Submit(ctx context.Context, sub Submitter, payment PaymentConfirmation) (*Confirmation, error) {
	w.mu.Lock()
	if w.draft.CurrentStep == StepConfirmation {
		w.mu.Unlock()
		return nil, ErrWizardClosed
	}
	if w.draft.CurrentStep != StepPayment {
		w.mu.Unlock()
		return nil, ErrWrongStep
	}
	if w.submitting {
		w.mu.Unlock()
		return nil, ErrSubmissionInProgress
	}
	if !payment.Approved {
		w.mu.Unlock()
		return nil, ErrPaymentNotApproved
	}

	draft := w.draft.clone()
	req := SubmitRequest{
		Draft:   draft,
		Quote:   pricing.Quote(draft.quoteInput()),
		Payment: payment,
		UserID:  w.ownerID,
	}
	w.submitting = true
	w.mu.Unlock()

	conf, err := sub.SubmitReservation(ctx, req)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitting = false
	if err != nil {
		log.Printf("❌ Wizard: submission failed room=%s: %v", draft.RoomID, err)
		return nil, fmt.Errorf("submit reservation: %w", err)
	}

	w.confirmation = conf
	w.draft.CurrentStep = StepConfirmation
	log.Printf("✅ Wizard: reservation %s confirmed total=%d", conf.ReservationID, conf.Total)
	c := *conf
	return &c, nil
}

func (w *Wizard) inFlight() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submitting
}

func (w *Wizard) requireStep(step Step) error {
	if w.draft.CurrentStep == StepConfirmation {
		return ErrWizardClosed
	}
	if w.submitting {
		return ErrSubmissionInProgress
	}
	if w.draft.CurrentStep != step {
		return ErrWrongStep
	}
	return nil
}
