package domain

import "fmt"

type Status string

const (
	StatusNew        Status = "NEW"
	StatusPreparing  Status = "PREPARING"
	StatusPacking    Status = "PACKING"
	StatusReady      Status = "READY"
	StatusDispatched Status = "DISPATCHED"
)

// statusServed is a legacy alias for StatusDispatched. It is accepted on
// input only and never written back out.
const statusServed Status = "SERVED"

// ParseStatus normalizes a raw status string to a canonical Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if s == statusServed {
		return StatusDispatched, nil
	}
	switch s {
	case StatusNew, StatusPreparing, StatusPacking, StatusReady, StatusDispatched:
		return s, nil
	}
	return "", fmt.Errorf("unknown order status %q", raw)
}

// Station is a role-scoped workstation view. Each station sees a restricted
// slice of the board and may trigger a restricted set of transitions.
type Station string

const (
	StationFrontDesk Station = "FRONT_DESK"
	StationChef      Station = "CHEF"
	StationPacker    Station = "PACKER"
)

// Role is either a station or ADMIN. ADMIN may work any station.
type Role string

const (
	RoleFrontDesk Role = Role(StationFrontDesk)
	RoleChef      Role = Role(StationChef)
	RolePacker    Role = Role(StationPacker)
	RoleAdmin     Role = "ADMIN"
)

func ParseStation(raw string) (Station, error) {
	s := Station(raw)
	switch s {
	case StationFrontDesk, StationChef, StationPacker:
		return s, nil
	}
	return "", fmt.Errorf("unknown station %q", raw)
}

func ParseRole(raw string) (Role, error) {
	r := Role(raw)
	switch r {
	case RoleFrontDesk, RoleChef, RolePacker, RoleAdmin:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", raw)
}

// transition describes one allowed step of the workflow and the station
// permitted to trigger it.
type transition struct {
	next Status
	by   Station
}

// transitions is the canonical forward-only sequence. The one allowed skip,
// the bulk PREPARING->READY shortcut, is handled separately by the lifecycle
// engine and is never reachable through CanTransition.
var transitions = map[Status]transition{
	StatusNew:       {StatusPreparing, StationChef},
	StatusPreparing: {StatusPacking, StationChef},
	StatusPacking:   {StatusReady, StationPacker},
	StatusReady:     {StatusDispatched, StationFrontDesk},
}

// CanTransition reports whether the given station may move an order from one
// status to another. Any pair not in the canonical sequence is rejected.
func CanTransition(by Station, from, to Status) bool {
	t, ok := transitions[from]
	return ok && t.next == to && t.by == by
}

// NextStatus returns the canonical next status for the given one; ok is false
// for the terminal status.
func NextStatus(from Status) (Status, bool) {
	t, ok := transitions[from]
	return t.next, ok
}
