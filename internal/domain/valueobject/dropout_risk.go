package valueobject

// DropoutRisk is an immutable value object holding the binary outcome of a prediction.
type DropoutRisk struct {
	value string
}

var (
	DropoutRiskAtRisk     = DropoutRisk{value: "AT_RISK"}
	DropoutRiskContinuing = DropoutRisk{value: "CONTINUING"}
)

// AtRiskClass is the raw classifier output that marks a student as likely to drop out.
const AtRiskClass = 1.0

// DropoutRiskFromClass maps a raw classifier class to a label.
// Only AtRiskClass means at risk; every other value means continuing.
func DropoutRiskFromClass(class float64) DropoutRisk {
	if class == AtRiskClass {
		return DropoutRiskAtRisk
	}
	return DropoutRiskContinuing
}

// String returns the string representation.
func (d DropoutRisk) String() string {
	return d.value
}

// DisplayText returns the human-readable label shown to users.
func (d DropoutRisk) DisplayText() string {
	switch d.value {
	case "AT_RISK":
		return "YES (Student may Dropout)"
	case "CONTINUING":
		return "NO (Student will Continue)"
	default:
		return ""
	}
}

// IsAtRisk returns true if the student is predicted to drop out.
func (d DropoutRisk) IsAtRisk() bool {
	return d.value == "AT_RISK"
}

// IsZero returns true if the DropoutRisk has not been set.
func (d DropoutRisk) IsZero() bool {
	return d.value == ""
}

// Equal checks equality with another DropoutRisk.
func (d DropoutRisk) Equal(other DropoutRisk) bool {
	return d.value == other.value
}
