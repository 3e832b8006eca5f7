package normalize

import "strings"

const (
	LabelAvailable   = "Disponible"
	LabelUnavailable = "No disponible"
)

// Availability interprets an availability field. Text keeps its original
// label; bools and numbers get the canonical labels. The flag is nil when
// the value cannot be interpreted.
func Availability(v any) (string, *bool) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		lower := strings.ToLower(strings.TrimSpace(t))
		switch {
		case lower == "false" || strings.Contains(lower, "no disp"):
			return t, boolPtr(false)
		case lower == "true" || strings.Contains(lower, "disponible"):
			return t, boolPtr(true)
		}
		return t, nil
	case bool:
		return AvailabilityLabel(t), boolPtr(t)
	}
	if f, ok := ToFloat(v); ok {
		return AvailabilityLabel(f != 0), boolPtr(f != 0)
	}
	return "", nil
}

// AvailabilityLabel renders a flag with the canonical label.
func AvailabilityLabel(available bool) string {
	if available {
		return LabelAvailable
	}
	return LabelUnavailable
}

// PaymentStatus maps Spanish or English status names to the (estado, status)
// pair the BaaS stores.
func PaymentStatus(s string) (estado, status string, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "aprobado", "approved":
		return "aprobado", "approved", true
	case "rechazado", "rejected":
		return "rechazado", "rejected", true
	case "pendiente", "pending":
		return "pendiente", "pending", true
	}
	return "", "", false
}

// UserState reads the enabled flag of a user record. A missing value means
// the account is active.
func UserState(r Record) bool {
	return r.Bool(true, "state")
}

func boolPtr(b bool) *bool { return &b }
