package nlu

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/SkyDeskLabs/SkyDesk/internal/models"
)

var (
	bookingIDPattern = regexp.MustCompile(`(?i)\b(BK\d{3})\b`)
	flightNumPattern = regexp.MustCompile(`(?i)\b([A-Z]{2}\d{3})\b`)
	isoDatePattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	datePattern      = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2}|\d{1,2}/\d{1,2}/\d{4})\b`)
	routePattern     = regexp.MustCompile(`(?i)(?:from\s+)?([A-Z]{2,3}|[A-Z][a-z]+)\s+(?:to|→)\s+([A-Z]{2,3}|[A-Z][a-z]+)`)
	codeTokenPattern = regexp.MustCompile(`\b([A-Z]{2,3})\b`)
)

// questionMarkers flag messages that are questions or informational queries;
// entity extraction is skipped for those so policy questions don't get
// mistaken for booking data.
var questionMarkers = []string{
	"is there", "are there", "do you", "can i", "can you",
	"what is", "what are", "how much", "how many", "when",
	"tell me", "show me", "explain", "policy", "allowed",
	"file", "complaint", "complain", "damaged", "missing", "lost",
	"discount", "deal", "offer", "fare", "price", "cost",
	"schedule", "insurance", "medical", "prohibited", "banned",
	"sport", "music", "instrument", "equipment", "need to file",
	"want to file", "i have", "report",
}

// codeStopWords are 2-3 letter words that look like airport codes but never
// are.
var codeStopWords = map[string]bool{
	"TO": true, "FROM": true, "ON": true, "AT": true,
	"FOR": true, "AND": true, "THE": true, "OR": true,
}

// cityToCode maps recognized city names (upper-cased) to airport codes.
var cityToCode = map[string]string{
	"CHENNAI":       "MAA",
	"DELHI":         "DEL",
	"MUMBAI":        "BOM",
	"BANGALORE":     "BLR",
	"BENGALURU":     "BLR",
	"BANGLORE":      "BLR",
	"COIMBATORE":    "CJB",
	"KOLKATA":       "CCU",
	"HYDERABAD":     "HYD",
	"PUNE":          "PNQ",
	"NEWYORK":       "JFK",
	"NEW YORK":      "JFK",
	"CALIFORNIA":    "LAX",
	"LASVEGAS":      "LAS",
	"LAS VEGAS":     "LAS",
	"LOS ANGELES":   "LAX",
	"LOSANGELES":    "LAX",
	"SAN FRANCISCO": "SFO",
	"SANFRANCISCO":  "SFO",
	"CHICAGO":       "ORD",
	"MIAMI":         "MIA",
	"BOSTON":        "BOS",
	"SEATTLE":       "SEA",
	"ATLANTA":       "ATL",
	"DALLAS":        "DFW",
	"HOUSTON":       "IAH",
	"WASHINGTON":    "DCA",
	"PHILADELPHIA":  "PHL",
	"PHOENIX":       "PHX",
	"DENVER":        "DEN",
}

// ExtractEntities pulls booking slots out of a message: booking ids, flight
// numbers, dates, passenger names, and origin/destination airports. Question
// and policy messages yield no entities.
func ExtractEntities(message string) map[models.EntityKey]string {
	entities := make(map[models.EntityKey]string)

	lower := strings.ToLower(message)
	for _, marker := range questionMarkers {
		if strings.Contains(lower, marker) {
			return entities
		}
	}

	// Comma-separated input: categorize each part as date, airport, or name.
	if strings.Contains(message, ",") {
		extractCommaSeparated(message, entities)
	}

	if m := bookingIDPattern.FindStringSubmatch(message); m != nil {
		entities[models.EntityBookingID] = strings.ToUpper(m[1])
	}

	if m := flightNumPattern.FindStringSubmatch(message); m != nil {
		entities[models.EntityFlightNumber] = strings.ToUpper(m[1])
	}

	if _, ok := entities[models.EntityDate]; !ok {
		if m := datePattern.FindStringSubmatch(message); m != nil {
			entities[models.EntityDate] = m[1]
		}
	}

	if _, ok := entities[models.EntityPassengerName]; !ok {
		extractNameByKeyword(message, entities)
	}

	// Route phrasing: "from X to Y" or "X to Y".
	if entities[models.EntityOrigin] == "" || entities[models.EntityDestination] == "" {
		if m := routePattern.FindStringSubmatch(message); m != nil {
			entities[models.EntityOrigin] = resolveAirport(m[1])
			entities[models.EntityDestination] = resolveAirport(m[2])
		}
	}

	// Last resort: bare 2-3 letter uppercase tokens.
	if entities[models.EntityOrigin] == "" || entities[models.EntityDestination] == "" {
		extractBareCodes(message, entities)
	}

	return entities
}

func extractCommaSeparated(message string, entities map[models.EntityKey]string) {
	var dates, airports, names []string

	for _, part := range strings.Split(message, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		switch {
		case isoDatePattern.MatchString(part):
			dates = append(dates, part)
		case len(part) <= 3 && isAlpha(part):
			airports = append(airports, strings.ToUpper(part))
		case cityToCode[strings.ToUpper(part)] != "":
			airports = append(airports, cityToCode[strings.ToUpper(part)])
		case unicode.IsUpper(rune(part[0])) && isAlpha(strings.ReplaceAll(part, " ", "")):
			names = append(names, titleCase(part))
		}
	}

	if len(dates) > 0 {
		entities[models.EntityDate] = dates[0]
	}
	switch {
	case len(airports) >= 2:
		entities[models.EntityOrigin] = airports[0]
		entities[models.EntityDestination] = airports[1]
	case len(airports) == 1:
		entities[models.EntityOrigin] = airports[0]
	}
	if len(names) > 0 {
		entities[models.EntityPassengerName] = names[0]
	}
}

func extractNameByKeyword(message string, entities map[models.EntityKey]string) {
	for _, keyword := range []string{"passenger", "name", "traveler", "for"} {
		pattern := regexp.MustCompile(`(?i)` + keyword + `\s+(?:is\s+)?([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`)
		if m := pattern.FindStringSubmatch(message); m != nil {
			entities[models.EntityPassengerName] = titleCase(m[1])
			return
		}
	}
}

func extractBareCodes(message string, entities map[models.EntityKey]string) {
	var codes []string
	for _, m := range codeTokenPattern.FindAllStringSubmatch(strings.ToUpper(message), -1) {
		if !codeStopWords[m[1]] {
			codes = append(codes, m[1])
		}
	}
	switch {
	case len(codes) >= 2:
		if entities[models.EntityOrigin] == "" {
			entities[models.EntityOrigin] = codes[0]
		}
		if entities[models.EntityDestination] == "" {
			entities[models.EntityDestination] = codes[1]
		}
	case len(codes) == 1:
		if entities[models.EntityOrigin] == "" {
			entities[models.EntityOrigin] = codes[0]
		}
	}
}

// resolveAirport maps a city name to its airport code, or upper-cases what is
// already a code.
func resolveAirport(s string) string {
	upper := strings.ToUpper(s)
	if len(upper) > 3 {
		if code, ok := cityToCode[upper]; ok {
			return code
		}
	}
	return upper
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
