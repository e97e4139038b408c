// Package wizard implements the multi-step registration flow controller:
// per-role step tables, field state, batch validation, and the guarded
// forward transition with its availability and billing round-trips.
package wizard

import (
	"context"
	"sync"
)

// AvailabilityChecker reports whether a handle is still free server-side.
type AvailabilityChecker interface {
	UsernameAvailable(ctx context.Context, username string) (bool, error)
	EmailAvailable(ctx context.Context, email string) (bool, error)
}

// BillingVerifier runs the card check that gates the final step.
type BillingVerifier interface {
	VerifyCard(ctx context.Context, number, expiry, cvc, email string) error
}

// Operation identifies a long-running check tracked by a loading flag.
type Operation string

const (
	OpAvailability Operation = "availability"
	OpBilling      Operation = "billing"
)

// Image holds an encoded binary asset and the display name it was picked
// under.
type Image struct {
	Data string
	Name string
}

// Wizard holds the full state of one registration flow. All methods are
// safe for concurrent use; forward navigation is additionally serialized
// by an explicit lock so a duplicate tap is ignored rather than queued.
type Wizard struct {
	mu           sync.Mutex
	role         Role
	currentStep  int
	values       map[Field]string
	flags        map[Field]bool
	images       map[Field]Image
	fieldErrors  map[Field]string
	loading      map[Operation]bool
	navLock      bool
	availability AvailabilityChecker
	billing      BillingVerifier
}

// New returns a wizard positioned on step 1 of the given role's flow.
func New(role Role, availability AvailabilityChecker, billing BillingVerifier) *Wizard {
	return &Wizard{
		role:         role,
		currentStep:  1,
		values:       make(map[Field]string),
		flags:        make(map[Field]bool),
		images:       make(map[Field]Image),
		fieldErrors:  make(map[Field]string),
		loading:      make(map[Operation]bool),
		availability: availability,
		billing:      billing,
	}
}

// Role returns the flow this wizard was created for.
func (w *Wizard) Role() Role {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.role
}

// CurrentStep returns the 1-based step the wizard is on.
func (w *Wizard) CurrentStep() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.currentStep
}

// UpdateField stores a text value and clears any stale error on the field.
func (w *Wizard) UpdateField(f Field, value string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.values[f] = value
	delete(w.fieldErrors, f)
}

// UpdateFlag stores a boolean confirmation and clears any stale error.
func (w *Wizard) UpdateFlag(f Field, value bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.flags[f] = value
	delete(w.fieldErrors, f)
}

// UpdateImage stores an encoded asset together with its display name. A
// nil data pointer clears both.
func (w *Wizard) UpdateImage(f Field, data *string, name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if data == nil {
		delete(w.images, f)
	} else {
		w.images[f] = Image{Data: *data, Name: name}
	}
	delete(w.fieldErrors, f)
}

// Value returns the stored text value of a field.
func (w *Wizard) Value(f Field) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.values[f]
}

// Flag returns the stored boolean value of a field.
func (w *Wizard) Flag(f Field) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.flags[f]
}

// ImageFor returns the stored asset for an image field, if any.
func (w *Wizard) ImageFor(f Field) (Image, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	img, ok := w.images[f]
	return img, ok
}

// FieldError returns the current validation message for a field, if any.
func (w *Wizard) FieldError(f Field) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	msg, ok := w.fieldErrors[f]
	return msg, ok
}

// Loading reports whether the given operation is in flight.
func (w *Wizard) Loading(op Operation) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.loading[op]
}

// SetStep moves to an earlier step without validation. Forward jumps are
// refused; the only way forward is NextStep.
func (w *Wizard) SetStep(step int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if step < 1 || step > w.currentStep {
		return false
	}
	w.currentStep = step
	return true
}

// Reset discards all field state and returns to step 1. Calling it on a
// fresh wizard is a no-op.
func (w *Wizard) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.currentStep = 1
	w.values = make(map[Field]string)
	w.flags = make(map[Field]bool)
	w.images = make(map[Field]Image)
	w.fieldErrors = make(map[Field]string)
	w.loading = make(map[Operation]bool)
	w.navLock = false
}

// NextStep validates the current step and, when its server-side checks
// pass, advances the wizard. It returns true only when the step actually
// advanced. A second call while one is in flight is ignored. Check
// failures are written into the field errors of the step that caused
// them; transport failures are returned as an error with the step left
// unchanged.
func (w *Wizard) NextStep(ctx context.Context) (bool, error) {
	w.mu.Lock()
	if w.navLock {
		w.mu.Unlock()
		return false, nil
	}
	w.navLock = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.navLock = false
		w.mu.Unlock()
	}()

	if !w.ValidateCurrentStep() {
		return false, nil
	}

	w.mu.Lock()
	step := w.currentStep
	last := len(stepFields[w.role])
	w.mu.Unlock()

	// The two round-trips are serialized deliberately: availability
	// first, billing only on the final step, never in parallel.
	if step == availabilityStep(w.role) {
		ok, err := w.checkAvailability(ctx)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	if step == billingStep(w.role) {
		ok, err := w.checkBilling(ctx)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.currentStep < last {
		w.currentStep++
	}
	return true, nil
}

func (w *Wizard) checkAvailability(ctx context.Context) (bool, error) {
	if w.availability == nil {
		return true, nil
	}
	w.setLoading(OpAvailability, true)
	defer w.setLoading(OpAvailability, false)

	switch w.role {
	case RoleDriver:
		email := normalizeValue(FieldEmail, w.Value(FieldEmail))
		free, err := w.availability.EmailAvailable(ctx, email)
		if err != nil {
			return false, err
		}
		if !free {
			w.setError(FieldEmail, "an account with this email already exists")
			return false, nil
		}
	default:
		username := normalizeValue(FieldUsername, w.Value(FieldUsername))
		free, err := w.availability.UsernameAvailable(ctx, username)
		if err != nil {
			return false, err
		}
		if !free {
			w.setError(FieldUsername, "this username is already taken")
			return false, nil
		}
	}
	return true, nil
}

func (w *Wizard) checkBilling(ctx context.Context) (bool, error) {
	if w.billing == nil {
		return true, nil
	}
	w.setLoading(OpBilling, true)
	defer w.setLoading(OpBilling, false)

	err := w.billing.VerifyCard(ctx,
		w.Value(FieldCardNumber),
		w.Value(FieldCardExpiry),
		w.Value(FieldCardCVC),
		normalizeValue(FieldCardEmail, w.Value(FieldCardEmail)),
	)
	if err == nil {
		return true, nil
	}
	if ctx.Err() != nil {
		return false, err
	}
	w.setError(FieldCardNumber, "card verification failed: "+err.Error())
	return false, nil
}

func (w *Wizard) setLoading(op Operation, v bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if v {
		w.loading[op] = true
	} else {
		delete(w.loading, op)
	}
}

func (w *Wizard) setError(f Field, msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.fieldErrors[f] = msg
}
