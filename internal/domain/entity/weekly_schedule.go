package entity

import (
	"encoding/json"
	"sort"
)

// DefaultSlotMinutes is the slot duration used when none is configured.
const DefaultSlotMinutes = 60

// WeeklySchedule is a doctor's working-hours template plus the slots
// currently taken on each attended day.
//
// Invariant: every occupied time lies within [Start, End-SlotMinutes] on an
// attended day, and Occupied has an entry for every attended day.
type WeeklySchedule struct {
	Start       TimeOfDay           `json:"start"`
	End         TimeOfDay           `json:"end"`
	Days        []Day               `json:"days"`
	SlotMinutes int                 `json:"slot_minutes"`
	Occupied    map[Day][]TimeOfDay `json:"occupied"`
}

// Slot is one bookable start time and whether it is taken.
type Slot struct {
	Time     TimeOfDay `json:"time"`
	Occupied bool      `json:"occupied"`
}

// NewWeeklySchedule validates the template and returns a schedule with no
// occupied slots. A non-positive slotMinutes falls back to DefaultSlotMinutes.
func NewWeeklySchedule(start, end TimeOfDay, days []Day, slotMinutes int) (*WeeklySchedule, error) {
	if end <= start {
		return nil, ErrInvalidWorkingHours
	}
	if slotMinutes == 0 {
		slotMinutes = DefaultSlotMinutes
	}
	if slotMinutes < 0 {
		return nil, ErrInvalidSlotDuration
	}

	set := make(map[Day]struct{}, len(days))
	for _, d := range days {
		if !d.Valid() {
			return nil, ErrInvalidDay
		}
		set[d] = struct{}{}
	}
	if len(set) == 0 {
		return nil, ErrNoWorkingDays
	}

	s := &WeeklySchedule{
		Start:       start,
		End:         end,
		SlotMinutes: slotMinutes,
		Occupied:    make(map[Day][]TimeOfDay, len(set)),
	}
	for d := range set {
		s.Days = append(s.Days, d)
		s.Occupied[d] = []TimeOfDay{}
	}
	sort.Slice(s.Days, func(i, j int) bool { return s.Days[i] < s.Days[j] })
	return s, nil
}

// Attends reports whether day is a working day.
func (s *WeeklySchedule) Attends(day Day) bool {
	for _, d := range s.Days {
		if d == day {
			return true
		}
	}
	return false
}

func (s *WeeklySchedule) withinHours(t TimeOfDay) bool {
	return t >= s.Start && t.Add(s.SlotMinutes) <= s.End
}

// IsOccupied reports whether t is already taken on day.
func (s *WeeklySchedule) IsOccupied(day Day, t TimeOfDay) bool {
	for _, o := range s.Occupied[day] {
		if o == t {
			return true
		}
	}
	return false
}

// IsAvailable reports whether t on day is a free slot inside working hours.
func (s *WeeklySchedule) IsAvailable(day Day, t TimeOfDay) bool {
	return s.Attends(day) && s.withinHours(t) && !s.IsOccupied(day, t)
}

// Book marks t on day as occupied. It returns false and leaves the schedule
// unchanged when the slot is not available, including when already booked.
func (s *WeeklySchedule) Book(day Day, t TimeOfDay) bool {
	if !s.IsAvailable(day, t) {
		return false
	}
	if s.Occupied == nil {
		s.Occupied = make(map[Day][]TimeOfDay)
	}
	taken := append(s.Occupied[day], t)
	sort.Slice(taken, func(i, j int) bool { return taken[i] < taken[j] })
	s.Occupied[day] = taken
	return true
}

// Cancel frees t on day and reports whether a slot was actually removed.
func (s *WeeklySchedule) Cancel(day Day, t TimeOfDay) bool {
	if !s.Attends(day) {
		return false
	}
	taken := s.Occupied[day]
	for i, o := range taken {
		if o == t {
			s.Occupied[day] = append(taken[:i:i], taken[i+1:]...)
			return true
		}
	}
	return false
}

// Reschedule cancels the old slot and, only if that succeeded, books the new
// one. When the new booking fails the old slot stays freed.
func (s *WeeklySchedule) Reschedule(oldDay Day, oldTime TimeOfDay, newDay Day, newTime TimeOfDay) bool {
	if !s.Cancel(oldDay, oldTime) {
		return false
	}
	return s.Book(newDay, newTime)
}

// RescheduleStrict behaves like Reschedule but puts the old slot back when
// the new booking fails, so a failed call leaves the schedule unchanged.
func (s *WeeklySchedule) RescheduleStrict(oldDay Day, oldTime TimeOfDay, newDay Day, newTime TimeOfDay) bool {
	if !s.Cancel(oldDay, oldTime) {
		return false
	}
	if s.Book(newDay, newTime) {
		return true
	}
	s.Book(oldDay, oldTime)
	return false
}

// Slots lists every slot start for day in order. Days off yield nil.
func (s *WeeklySchedule) Slots(day Day) []Slot {
	if !s.Attends(day) || s.SlotMinutes <= 0 {
		return nil
	}
	var slots []Slot
	for t := s.Start; s.withinHours(t); t = t.Add(s.SlotMinutes) {
		slots = append(slots, Slot{Time: t, Occupied: s.IsOccupied(day, t)})
	}
	return slots
}

// Clone returns a deep copy.
func (s *WeeklySchedule) Clone() *WeeklySchedule {
	c := &WeeklySchedule{
		Start:       s.Start,
		End:         s.End,
		Days:        append([]Day(nil), s.Days...),
		SlotMinutes: s.SlotMinutes,
		Occupied:    make(map[Day][]TimeOfDay, len(s.Occupied)),
	}
	for d, taken := range s.Occupied {
		c.Occupied[d] = append([]TimeOfDay{}, taken...)
	}
	return c
}

// UnmarshalJSON decodes a stored schedule and fills in an empty occupancy
// entry for every attended day missing one, including "occupied": null.
func (s *WeeklySchedule) UnmarshalJSON(data []byte) error {
	type plain WeeklySchedule
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*s = WeeklySchedule(decoded)
	s.normalizeOccupancy()
	return nil
}

func (s *WeeklySchedule) normalizeOccupancy() {
	if s.Occupied == nil {
		s.Occupied = make(map[Day][]TimeOfDay, len(s.Days))
	}
	for _, d := range s.Days {
		if s.Occupied[d] == nil {
			s.Occupied[d] = []TimeOfDay{}
		}
	}
}
