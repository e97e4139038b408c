package wizard

import "time"

const registrationSource = "mobile"

// RegistrationData assembles the flat payload the registration endpoint
// expects. Text values are trimmed and email-like fields lowercased;
// image fields carry their encoded blob; the password travels as typed
// and the confirmation never leaves the client. Registration metadata is
// injected here rather than held as wizard fields.
func (w *Wizard) RegistrationData() map[string]any {
	w.mu.Lock()
	defer w.mu.Unlock()

	data := make(map[string]any)
	for _, step := range stepFields[w.role] {
		for _, f := range step {
			key, ok := payloadKeys[f]
			if !ok {
				continue
			}
			switch {
			case imageFields[f]:
				if img, present := w.images[f]; present {
					data[key] = img.Data
				}
			case boolFields[f]:
				data[key] = w.flags[f]
			case f == FieldPassword:
				data[key] = w.values[f]
			default:
				if v := normalizeValue(f, w.values[f]); v != "" {
					data[key] = v
				}
			}
		}
	}

	data["registrationdate"] = time.Now().UTC().Format(time.RFC3339)
	data["registrationsource"] = registrationSource
	data["status"] = "pending"
	return data
}
