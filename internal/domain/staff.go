package domain

// StaffUser is one entry of the fixed staff roster.
type StaffUser struct {
	ID   string
	Name string
	Role Role
	PIN  string
}

// Roster is the in-memory staff lookup table, loaded once at process start.
type Roster []StaffUser

// Find returns the staff member matching role and pin.
func (r Roster) Find(role Role, pin string) (StaffUser, bool) {
	for _, u := range r {
		if u.Role == role && u.PIN == pin {
			return u, true
		}
	}
	return StaffUser{}, false
}

// ShiftWindow is the [Start, End) hour-of-day window during which non-admin
// staff may sign in.
type ShiftWindow struct {
	Start int
	End   int
}

func (w ShiftWindow) Contains(hour int) bool {
	return hour >= w.Start && hour < w.End
}
