package schedule

// ===============================
// Entity Scope
// ===============================

// Scope selects which of the two parallel override collections (and which
// template owner) an operation targets. The engine logic is identical for
// both; only the backing table and the booking query differ.
type Scope string

const (
	ScopePractitioner Scope = "practitioner"
	ScopeSalon        Scope = "salon"
)

// OverrideTable is the gorm table backing the scope's daily overrides.
func (s Scope) OverrideTable() string {
	if s == ScopeSalon {
		return "salon_day_overrides"
	}
	return "practitioner_day_overrides"
}

func (s Scope) Valid() bool {
	return s == ScopePractitioner || s == ScopeSalon
}
