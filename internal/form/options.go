package form

import "time"

// monthNames are fixed English names; the month selector must not depend
// on the system locale.
var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// yearSpan is how many years back the year selector reaches.
const yearSpan = 100

// Choice is one selectable entry. Value is what gets stored in State.
type Choice struct {
	Value string
	Label string
}

// Days returns 1 through 31 in ascending order.
func Days() []int {
	days := make([]int, 31)
	for i := range days {
		days[i] = i + 1
	}
	return days
}

// Months returns January through December with matching value and label.
func Months() []Choice {
	months := make([]Choice, len(monthNames))
	for i, name := range monthNames {
		months[i] = Choice{Value: name, Label: name}
	}
	return months
}

// Years returns now's year down to 100 years earlier, inclusive.
func Years(now time.Time) []int {
	current := now.Year()
	years := make([]int, 0, yearSpan+1)
	for y := current; y >= current-yearSpan; y-- {
		years = append(years, y)
	}
	return years
}
