package models

import "fmt"

type RoomStatus string

const (
	RoomAvailable    RoomStatus = "available"
	RoomOccupied     RoomStatus = "occupied"
	RoomDirty        RoomStatus = "dirty"
	RoomOutOfService RoomStatus = "out_of_service"
)

func ParseRoomStatus(s string) (RoomStatus, error) {
	return parseEnum("room status", s, RoomAvailable, RoomOccupied, RoomDirty, RoomOutOfService)
}

func (s RoomStatus) Valid() bool {
	_, err := ParseRoomStatus(string(s))
	return err == nil
}

func (s *RoomStatus) UnmarshalText(b []byte) error {
	v, err := ParseRoomStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// RoomTrigger names who drives a room status edge.
type RoomTrigger string

const (
	TriggerOperator RoomTrigger = "operator"
	TriggerCheckIn  RoomTrigger = "check_in"
	TriggerCheckOut RoomTrigger = "check_out"
)

// RoomTransition is one allowed edge of the room status machine.
type RoomTransition struct {
	From    RoomStatus
	To      RoomStatus
	Trigger RoomTrigger
}

var roomTransitions = []RoomTransition{
	{From: RoomAvailable, To: RoomOccupied, Trigger: TriggerCheckIn},
	{From: RoomOccupied, To: RoomDirty, Trigger: TriggerCheckOut},

	// housekeeping
	{From: RoomDirty, To: RoomAvailable, Trigger: TriggerOperator},
	{From: RoomAvailable, To: RoomDirty, Trigger: TriggerOperator},

	// maintenance
	{From: RoomAvailable, To: RoomOutOfService, Trigger: TriggerOperator},
	{From: RoomDirty, To: RoomOutOfService, Trigger: TriggerOperator},
	{From: RoomOutOfService, To: RoomAvailable, Trigger: TriggerOperator},
	{From: RoomOutOfService, To: RoomDirty, Trigger: TriggerOperator},
}

// CanTransitionRoom reports whether from -> to is an edge for the given trigger.
func CanTransitionRoom(from, to RoomStatus, trigger RoomTrigger) bool {
	for _, t := range roomTransitions {
		if t.From == from && t.To == to && t.Trigger == trigger {
			return true
		}
	}
	return false
}

// TransitionRoom moves the room along an allowed edge or returns an error naming the refused edge.
func (r *Room) TransitionRoom(to RoomStatus, trigger RoomTrigger) error {
	if !CanTransitionRoom(r.Status, to, trigger) {
		return fmt.Errorf("room %s cannot move from %s to %s on %s", r.RoomNumber, r.Status, to, trigger)
	}
	r.Status = to
	return nil
}
