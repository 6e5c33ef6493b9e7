package models

import "fmt"

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCheckedIn ReservationStatus = "checked_in"
	ReservationCanceled  ReservationStatus = "canceled"
	ReservationNoShow    ReservationStatus = "no_show"
)

func ParseReservationStatus(s string) (ReservationStatus, error) {
	return parseEnum("reservation status", s,
		ReservationPending, ReservationConfirmed, ReservationCheckedIn, ReservationCanceled, ReservationNoShow)
}

func (s *ReservationStatus) UnmarshalText(b []byte) error {
	v, err := ParseReservationStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationPending:   {ReservationConfirmed, ReservationCheckedIn, ReservationCanceled, ReservationNoShow},
	ReservationConfirmed: {ReservationCheckedIn, ReservationCanceled, ReservationNoShow},
}

func CanTransitionReservation(from, to ReservationStatus) bool {
	for _, next := range reservationTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further lifecycle edge leaves s.
func (s ReservationStatus) Terminal() bool {
	return len(reservationTransitions[s]) == 0
}

func (r *Reservation) TransitionTo(to ReservationStatus) error {
	if !CanTransitionReservation(r.Status, to) {
		return fmt.Errorf("reservation cannot move from %s to %s", r.Status, to)
	}
	r.Status = to
	return nil
}
