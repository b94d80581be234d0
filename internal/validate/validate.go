// Package validate implements input validation for booking details. Error
// messages are user-facing and returned verbatim in workflow responses.
package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// maxBookingWindow is how far ahead a flight can be booked.
const maxBookingWindow = 365 * 24 * time.Hour

var namePattern = regexp.MustCompile(`^[A-Za-z\s\-']+$`)

var monthNames = [...]string{"", "Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// daysInMonth allows 29 for February; the leap-year rule is checked
// separately so it gets its own message.
var daysInMonth = [...]int{0, 31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// Date checks that dateStr is a well-formed YYYY-MM-DD calendar date strictly
// after now's date and at most a year out. now is injected so callers and
// tests control the reference day.
func Date(dateStr string, now time.Time) error {
	parsed, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return describeDateError(dateStr)
	}

	// Compare calendar days, ignoring now's clock time and zone.
	today, _ := time.Parse(dateLayout, now.Format(dateLayout))
	date := parsed
	if !date.After(today) {
		return fmt.Errorf("⚠️ The date %s is in the past!\n\nToday is %s. Please provide a future date.",
			dateStr, today.Format(dateLayout))
	}

	maxFuture := today.Add(maxBookingWindow)
	if date.After(maxFuture) {
		return fmt.Errorf("⚠️ The date %s is too far in the future!\n\nWe can only book flights up to %s.",
			dateStr, maxFuture.Format(dateLayout))
	}
	return nil
}

// describeDateError inspects an unparseable date string to produce a message
// naming the specific problem (bad year, month out of range, too many days,
// Feb 29 in a non-leap year) instead of a generic parse failure.
func describeDateError(dateStr string) error {
	generic := fmt.Errorf("⚠️ Invalid date! Use YYYY-MM-DD (e.g., 2025-12-25).")

	parts := strings.Split(dateStr, "-")
	if len(parts) != 3 {
		return fmt.Errorf("⚠️ Invalid date format! Use YYYY-MM-DD (e.g., 2025-12-25).")
	}

	year, errY := strconv.Atoi(parts[0])
	month, errM := strconv.Atoi(parts[1])
	day, errD := strconv.Atoi(parts[2])
	if errY != nil || errM != nil || errD != nil {
		return generic
	}

	if year < 2025 || year > 2100 {
		return fmt.Errorf("⚠️ Invalid year: %d\nUse a year between 2025-2100.", year)
	}
	if month < 1 || month > 12 {
		return fmt.Errorf("⚠️ Invalid month: %d\nMonth must be 01-12.", month)
	}
	if day < 1 || day > daysInMonth[month] {
		return fmt.Errorf("⚠️ Invalid day: %d for %s\n\n%s has only %d days!",
			day, monthNames[month], monthNames[month], daysInMonth[month])
	}
	if month == 2 && day == 29 && !isLeapYear(year) {
		return fmt.Errorf("⚠️ %d is not a leap year!\nFeb %d has only 28 days.", year, year)
	}
	return generic
}

func isLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// PassengerName checks that name is 2-50 characters of letters, spaces,
// hyphens, and apostrophes.
func PassengerName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("⚠️ Passenger name is required!")
	}
	if len(name) < 2 {
		return fmt.Errorf("⚠️ Name too short! Please provide a valid name.")
	}
	if len(name) > 50 {
		return fmt.Errorf("⚠️ Name too long! Max 50 characters.")
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("⚠️ Invalid name! Use only letters, spaces, hyphens, apostrophes.")
	}
	return nil
}

// AirportCode checks that code is a 2-3 letter airport code. fieldLabel names
// the field in error messages, e.g. "Departure city".
func AirportCode(code, fieldLabel string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return fmt.Errorf("⚠️ %s is required!", fieldLabel)
	}
	if len(code) < 2 || len(code) > 3 {
		return fmt.Errorf("⚠️ Invalid %s: %s\nUse 2-3 letter codes.", strings.ToLower(fieldLabel), code)
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return fmt.Errorf("⚠️ Invalid %s: %s\nUse only letters.", strings.ToLower(fieldLabel), code)
		}
	}
	return nil
}
