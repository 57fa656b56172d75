package models

// Day is a day-of-week value used by recurring records.
// A record with a non-null Day repeats weekly; its Date is ignored
// for scheduling even when present.
type Day string

const (
	Monday    Day = "MON"
	Tuesday   Day = "TUE"
	Wednesday Day = "WED"
	Thursday  Day = "THU"
	Friday    Day = "FRI"
	Saturday  Day = "SAT"
	Sunday    Day = "SUN"
)

// DayAll is the sentinel filter value meaning "no day filter".
const DayAll = "ALL"

var allDays = map[Day]bool{
	Monday: true, Tuesday: true, Wednesday: true, Thursday: true,
	Friday: true, Saturday: true, Sunday: true,
}

// Valid reports whether d is one of the seven known values.
func (d Day) Valid() bool {
	return allDays[d]
}
