package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"lakbay/internal/models/response_models"
)

// ItineraryPreferences is the slice of the trip brief the policy
// validator needs.
type ItineraryPreferences struct {
	ActivityPreference int
}

type ItineraryValidatorServiceInterface interface {
	// ValidateItinerary enforces the day-structure rules: check-in on day
	// one, check-out on the last day, hotel returns in between, activity
	// counts per day type, and airport reachability. Violations are
	// reported, never auto-fixed.
	ValidateItinerary(trip *response_models.NormalizedTrip, prefs ItineraryPreferences) *response_models.PolicyResult

	// GetRemediationHint maps the error categories present in a result to
	// an ordered list of short fixes.
	GetRemediationHint(result *response_models.PolicyResult) []string
}

type ItineraryValidatorService struct{}

func NewItineraryValidatorService() ItineraryValidatorServiceInterface {
	return &ItineraryValidatorService{}
}

// Activities excluded from the main-activity count, as ordered rule
// tables rather than inline conditions.
var (
	mealRE      = regexp.MustCompile(`(?i)\b(breakfast|lunch|dinner|snack|coffee break|merienda)\b`)
	transitRE   = regexp.MustCompile(`(?i)\b(transfer|arriv|depart|check[\s-]?in|check[\s-]?out)\b|(return|back) to`)
	localRideRE = regexp.MustCompile(`(?i)^(taxi|grab|jeepney|tricycle|habal[\s-]?habal)\b|\b(bus|van|ferry|flight|boat) to\b`)

	checkInRE        = regexp.MustCompile(`(?i)check[\s-]?in`)
	checkOutRE       = regexp.MustCompile(`(?i)check[\s-]?out`)
	hotelReturnRE    = regexp.MustCompile(`(?i)(return|back|head back|go back) to|overnight at`)
	flightArrivalRE  = regexp.MustCompile(`(?i)(direct )?flight to|arrive .{0,30}via flight|fly (in)?to|flight arriv`)
	groundTransferRE = regexp.MustCompile(`(?i)\b(bus|van|ferry|transfer|shuttle|boat)\b`)
)

// gatewayRoute describes how to actually reach a destination that has no
// direct airport service.
type gatewayRoute struct {
	Gateway  string
	Mode     string
	Duration string
	Cost     string
}

var noDirectAirport = map[string]gatewayRoute{
	"el nido":     {"Puerto Princesa International Airport", "van", "5-6 hours", "PHP 600-800"},
	"sagada":      {"Loakan Airport (Baguio)", "bus", "5-6 hours", "PHP 300-450"},
	"siquijor":    {"Sibulan Airport (Dumaguete)", "ferry", "1 hour", "PHP 200-300"},
	"vigan":       {"Laoag International Airport", "bus", "1.5-2 hours", "PHP 150-250"},
	"moalboal":    {"Mactan-Cebu International Airport", "bus", "3 hours", "PHP 200-300"},
	"port barton": {"Puerto Princesa International Airport", "van", "3-4 hours", "PHP 500-600"},
}

func IsMainActivity(act response_models.Activity) bool {
	text := act.PlaceName
	if mealRE.MatchString(text) {
		return false
	}
	if transitRE.MatchString(text) {
		return false
	}
	if localRideRE.MatchString(text) {
		return false
	}
	return true
}

func countMainActivities(day response_models.DayPlan) int {
	count := 0
	for _, act := range day.Plan {
		if IsMainActivity(act) {
			count++
		}
	}
	return count
}

func dayMentions(day response_models.DayPlan, re *regexp.Regexp) bool {
	for _, act := range day.Plan {
		if re.MatchString(act.PlaceName) || re.MatchString(act.PlaceDetails) {
			return true
		}
	}
	return false
}

func (v *ItineraryValidatorService) ValidateItinerary(trip *response_models.NormalizedTrip, prefs ItineraryPreferences) *response_models.PolicyResult {
	result := &response_models.PolicyResult{
		IsValid:  true,
		Errors:   []string{},
		Warnings: []string{},
	}
	if trip == nil || len(trip.Itinerary) == 0 {
		result.Errors = append(result.Errors, "itinerary is empty")
		result.IsValid = false
		return result
	}

	if len(trip.Hotels) == 0 {
		result.Warnings = append(result.Warnings, "trip has no hotel data")
	}

	totalDays := len(trip.Itinerary)
	for i, day := range trip.Itinerary {
		dayNum := day.Day
		if dayNum == 0 {
			dayNum = i + 1
		}
		mainCount := countMainActivities(day)

		switch {
		case i == 0:
			if !dayMentions(day, checkInRE) {
				result.Errors = append(result.Errors,
					fmt.Sprintf("day %d: arrival day must include a hotel check-in activity", dayNum))
			}
			if mainCount > 2 {
				result.Errors = append(result.Errors,
					fmt.Sprintf("day %d: arrival day has %d main activities, maximum is 2", dayNum, mainCount))
			}
		case i == totalDays-1:
			if !dayMentions(day, checkOutRE) {
				result.Errors = append(result.Errors,
					fmt.Sprintf("day %d: departure day must include a hotel check-out activity", dayNum))
			}
			if mainCount > 1 {
				result.Errors = append(result.Errors,
					fmt.Sprintf("day %d: departure day has %d main activities, maximum is 1", dayNum, mainCount))
			}
		default:
			if len(day.Plan) > 0 {
				last := day.Plan[len(day.Plan)-1]
				if !hotelReturnRE.MatchString(last.PlaceName) {
					result.Errors = append(result.Errors,
						fmt.Sprintf("day %d: last activity must be a hotel return, found %q", dayNum, last.PlaceName))
				}
			}
			if prefs.ActivityPreference > 0 && mainCount != prefs.ActivityPreference {
				result.Errors = append(result.Errors,
					fmt.Sprintf("day %d: has %d main activities, expected exactly %d", dayNum, mainCount, prefs.ActivityPreference))
			}
		}

		v.checkLateActivities(day, dayNum, result)
	}

	v.checkAirportReachability(trip, result)

	result.IsValid = len(result.Errors) == 0
	return result
}

var timeRE = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})\s*(am|pm)?`)

// parseStartHour extracts the starting hour from free-form time text
// ("9:00 AM", "10:00 PM - 11:00 PM", "22:30"). Returns -1 when no time is
// present.
func parseStartHour(timeText string) int {
	m := timeRE.FindStringSubmatch(timeText)
	if m == nil {
		return -1
	}
	hour, err := strconv.Atoi(m[1])
	if err != nil || hour > 23 {
		return -1
	}
	switch strings.ToLower(m[3]) {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}
	return hour
}

func (v *ItineraryValidatorService) checkLateActivities(day response_models.DayPlan, dayNum int, result *response_models.PolicyResult) {
	lastTimed := -1
	for i, act := range day.Plan {
		if parseStartHour(act.Time) >= 0 {
			lastTimed = i
		}
	}
	if lastTimed < 0 {
		return
	}
	act := day.Plan[lastTimed]
	if parseStartHour(act.Time) >= 22 && !hotelReturnRE.MatchString(act.PlaceName) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("day %d: last timed activity %q starts at or after 22:00", dayNum, act.PlaceName))
	}
}

func (v *ItineraryValidatorService) checkAirportReachability(trip *response_models.NormalizedTrip, result *response_models.PolicyResult) {
	day1 := trip.Itinerary[0]

	var textBuilder strings.Builder
	for _, act := range day1.Plan {
		textBuilder.WriteString(strings.ToLower(act.PlaceName))
		textBuilder.WriteString(" ")
		textBuilder.WriteString(strings.ToLower(act.PlaceDetails))
		textBuilder.WriteString(" ")
	}
	day1Text := textBuilder.String()

	for dest, route := range noDirectAirport {
		if !strings.Contains(day1Text, dest) {
			continue
		}
		if flightArrivalRE.MatchString(day1Text) && strings.Contains(day1Text, dest) && mentionsFlightTo(day1Text, dest) {
			result.Errors = append(result.Errors,
				fmt.Sprintf("day 1: airport error: %s has no direct airport service; fly to %s, then %s transfer (%s, %s)",
					titleCase(dest), route.Gateway, route.Mode, route.Duration, route.Cost))
			continue
		}
		if !groundTransferRE.MatchString(day1Text) && !strings.Contains(day1Text, strings.ToLower(route.Gateway)) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("day 1: reaching %s requires a %s transfer from %s (%s); itinerary does not mention it",
					titleCase(dest), route.Mode, route.Gateway, route.Duration))
		}
	}
}

// mentionsFlightTo reports whether the day-1 text claims a direct flight
// arrival naming the unreachable destination itself.
func mentionsFlightTo(text, dest string) bool {
	patterns := []string{
		"flight to " + dest,
		"fly to " + dest,
		"flight arriving in " + dest,
		"arrive at " + dest + " via flight",
		"arrive in " + dest + " via flight",
		dest + " airport",
	}
	for _, p := range patterns {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// Hint order is fixed: airport first, then hotel return, check-in,
// check-out. Deterministic output for the UI.
var remediationOrder = []struct {
	marker string
	hint   string
}{
	{"airport error", "Replace the direct flight with the gateway airport routing named in the error"},
	{"hotel return", "End each middle day with a return-to-hotel activity"},
	{"check-in", "Add a hotel check-in activity to day 1"},
	{"check-out", "Add a hotel check-out activity to the final day"},
}

func (v *ItineraryValidatorService) GetRemediationHint(result *response_models.PolicyResult) []string {
	hints := []string{}
	if result == nil {
		return hints
	}
	for _, entry := range remediationOrder {
		for _, errText := range result.Errors {
			if strings.Contains(strings.ToLower(errText), entry.marker) {
				hints = append(hints, entry.hint)
				break
			}
		}
	}
	return hints
}
