package wizard

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern  = regexp.MustCompile(`^\+?[0-9\s\-()]+$`)
	nonDigits     = regexp.MustCompile(`[^0-9]`)
	digitsPattern = regexp.MustCompile(`^[0-9]+$`)
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/([0-9]{2}|[0-9]{4})$`)
)

// lowercasedFields are trimmed and lowercased when normalized for checks
// and for the outgoing payload.
var lowercasedFields = map[Field]bool{
	FieldEmail:     true,
	FieldCardEmail: true,
	FieldUsername:  true,
}

func normalizeValue(f Field, v string) string {
	v = strings.TrimSpace(v)
	if lowercasedFields[f] {
		v = strings.ToLower(v)
	}
	return v
}

// validateField returns the error message for a single field, or "" when
// the field is acceptable.
func (w *Wizard) validateField(f Field) string {
	if imageFields[f] {
		if _, ok := w.images[f]; !ok {
			return "this photo is required"
		}
		return ""
	}
	if boolFields[f] {
		if !w.flags[f] {
			return "please confirm to continue"
		}
		return ""
	}

	v := normalizeValue(f, w.values[f])
	if v == "" {
		if optionalFields[f] {
			return ""
		}
		return "this field is required"
	}

	switch f {
	case FieldEmail, FieldCardEmail:
		if !emailPattern.MatchString(v) {
			return "enter a valid email address"
		}
	case FieldPhoneNumber:
		if !phonePattern.MatchString(v) || len(nonDigits.ReplaceAllString(v, "")) < 10 {
			return "enter a valid phone number"
		}
	case FieldUsername:
		if len(v) < 3 {
			return "username must be at least 3 characters"
		}
	case FieldPassword:
		if len(v) < 6 {
			return "password must be at least 6 characters"
		}
	case FieldConfirmPassword:
		if v != strings.TrimSpace(w.values[FieldPassword]) {
			return "passwords do not match"
		}
	case FieldVehicleYear:
		if msg := checkVehicleYear(v); msg != "" {
			return msg
		}
	case FieldCardNumber:
		stripped := strings.ReplaceAll(strings.ReplaceAll(v, " ", ""), "-", "")
		if !digitsPattern.MatchString(stripped) || len(stripped) < 13 || len(stripped) > 19 {
			return "enter a valid card number"
		}
	case FieldCardExpiry:
		if msg := checkCardExpiry(v); msg != "" {
			return msg
		}
	case FieldCardCVC:
		if !digitsPattern.MatchString(v) || len(v) < 3 || len(v) > 4 {
			return "enter a valid security code"
		}
	}
	return ""
}

func checkVehicleYear(v string) string {
	if !digitsPattern.MatchString(v) || len(v) != 4 {
		return "enter a 4-digit year"
	}
	year, _ := strconv.Atoi(v)
	if year < 1900 || year > time.Now().Year()+1 {
		return "enter a valid vehicle year"
	}
	return ""
}

func checkCardExpiry(v string) string {
	m := expiryPattern.FindStringSubmatch(v)
	if m == nil {
		return "use MM/YY format"
	}
	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])
	if year < 100 {
		year += 2000
	}
	now := time.Now()
	if year < now.Year() || (year == now.Year() && month < int(now.Month())) {
		return "this card has expired"
	}
	return ""
}

// ValidateCurrentStep validates every field of the current step and
// replaces the step's error set in one batch. It reports whether the
// step is clean.
func (w *Wizard) ValidateCurrentStep() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.validateStepLocked(w.currentStep)
}

func (w *Wizard) validateStepLocked(step int) bool {
	table := stepFields[w.role]
	if step < 1 || step > len(table) {
		return false
	}
	clean := true
	for _, f := range table[step-1] {
		delete(w.fieldErrors, f)
		if msg := w.validateField(f); msg != "" {
			w.fieldErrors[f] = msg
			clean = false
		}
	}
	return clean
}

// ValidateCompleteRegistration re-validates every step of the flow before
// submission and returns the messages of any field that fails.
func (w *Wizard) ValidateCompleteRegistration() (bool, []string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var messages []string
	for step := 1; step <= len(stepFields[w.role]); step++ {
		if !w.validateStepLocked(step) {
			for _, f := range stepFields[w.role][step-1] {
				if msg, ok := w.fieldErrors[f]; ok {
					messages = append(messages, string(f)+": "+msg)
				}
			}
		}
	}
	return len(messages) == 0, messages
}
