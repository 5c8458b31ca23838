package entity

import "strings"

// Day is a day of the week, Monday first.
type Day int

const (
	Monday Day = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var dayNames = [...]string{"", "MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY", "SUNDAY"}

var dayAliases = map[string]Day{
	"monday":    Monday,
	"lunes":     Monday,
	"tuesday":   Tuesday,
	"martes":    Tuesday,
	"wednesday": Wednesday,
	"miércoles": Wednesday,
	"miercoles": Wednesday,
	"thursday":  Thursday,
	"jueves":    Thursday,
	"friday":    Friday,
	"viernes":   Friday,
	"saturday":  Saturday,
	"sábado":    Saturday,
	"sabado":    Saturday,
	"sunday":    Sunday,
	"domingo":   Sunday,
}

// AllDays returns Monday through Sunday.
func AllDays() []Day {
	return []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// ParseDay accepts English or Spanish day names in any case.
func ParseDay(s string) (Day, error) {
	d, ok := dayAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, ErrInvalidDay
	}
	return d, nil
}

func (d Day) Valid() bool {
	return d >= Monday && d <= Sunday
}

func (d Day) String() string {
	if !d.Valid() {
		return "UNKNOWN"
	}
	return dayNames[d]
}

func (d Day) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, ErrInvalidDay
	}
	return []byte(d.String()), nil
}

func (d *Day) UnmarshalText(text []byte) error {
	parsed, err := ParseDay(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
