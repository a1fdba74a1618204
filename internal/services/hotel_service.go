package services

import (
	"fmt"
	"regexp"
	"strings"

	"lakbay/internal/models/response_models"
)

// ReferenceKind classifies how an itinerary entry talks about the hotel.
type ReferenceKind string

const (
	ReferenceNone     ReferenceKind = "none"
	ReferenceGeneric  ReferenceKind = "generic"
	ReferenceSpecific ReferenceKind = "specific"
)

type HotelServiceInterface interface {
	// ExtractCanonicalHotelName picks the single hotel name every generic
	// reference must resolve to. Returns "" when none qualifies.
	ExtractCanonicalHotelName(trip *response_models.NormalizedTrip) string

	ClassifyReference(text string) ReferenceKind

	// Resolve rewrites a generic hotel reference against hotelName,
	// leaving already-specific text untouched.
	Resolve(text string, hotelName string) string

	// ResolveAll maps every activity through Resolve. The returned flags
	// mark which entries changed. The input slice is not mutated.
	ResolveAll(activities []response_models.Activity, hotelName string) ([]response_models.Activity, []bool)

	// ValidateConsistency re-scans a full trip for leftover generic
	// references and produces a corrected copy.
	ValidateConsistency(trip *response_models.NormalizedTrip) *response_models.HotelFixPlan
}

type HotelService struct{}

func NewHotelService() HotelServiceInterface {
	return &HotelService{}
}

// The classification tables are ordered data, not inline logic, so the
// rule set can be tested and extended on its own.
var hotelActivityRE = regexp.MustCompile(`(?i)hotel|accommodation|check[\s-]?in|check[\s-]?out`)

var genericReferenceREs = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^hotel check[\s-]?in$`),
	regexp.MustCompile(`(?i)^hotel check[\s-]?out$`),
	regexp.MustCompile(`(?i)^check[\s-]?in (at|to) (the )?hotel$`),
	regexp.MustCompile(`(?i)^check[\s-]?out (from|of) (the )?hotel$`),
	regexp.MustCompile(`(?i)(return|back|head back|go back) to (the )?hotel`),
	regexp.MustCompile(`(?i)^(breakfast|lunch|dinner) at (the )?hotel$`),
	regexp.MustCompile(`(?i)^(the )?hotel$`),
	regexp.MustCompile(`(?i)^(the )?accommodation$`),
	regexp.MustCompile(`(?i)^rest at (the )?hotel$`),
	regexp.MustCompile(`(?i)^overnight at (the )?hotel$`),
}

type replacementRule struct {
	pattern  *regexp.Regexp
	template string
}

// Ordered: the first matching rule wins.
var replacementRules = []replacementRule{
	{regexp.MustCompile(`(?i)^hotel check[\s-]?in$|^check[\s-]?in (at|to) (the )?hotel$`), "Check-in at %s"},
	{regexp.MustCompile(`(?i)^hotel check[\s-]?out$|^check[\s-]?out (from|of) (the )?hotel$`), "Check-out from %s"},
	{regexp.MustCompile(`(?i)(return|back|head back|go back) to (the )?hotel`), "Return to %s"},
	{regexp.MustCompile(`(?i)^breakfast at (the )?hotel$`), "Breakfast at %s"},
	{regexp.MustCompile(`(?i)^lunch at (the )?hotel$`), "Lunch at %s"},
	{regexp.MustCompile(`(?i)^dinner at (the )?hotel$`), "Dinner at %s"},
	{regexp.MustCompile(`(?i)^rest at (the )?hotel$`), "Rest at %s"},
	{regexp.MustCompile(`(?i)^overnight at (the )?hotel$`), "Overnight at %s"},
}

var bareHotelWordRE = regexp.MustCompile(`(?i)\bhotel\b`)
var refWordRE = regexp.MustCompile(`[A-Za-z0-9]+`)

func (h *HotelService) ExtractCanonicalHotelName(trip *response_models.NormalizedTrip) string {
	if trip == nil || len(trip.Hotels) == 0 {
		return ""
	}

	var candidates []string
	for _, hotel := range trip.Hotels {
		if hotel.IsRecommended {
			candidates = append(candidates, hotel.HotelName)
		}
	}
	for _, hotel := range trip.Hotels {
		if hotel.IsPrimary {
			candidates = append(candidates, hotel.HotelName)
		}
	}
	candidates = append(candidates, trip.Hotels[0].HotelName)

	for _, name := range candidates {
		name = strings.TrimSpace(name)
		// Short fragments are noise, not names.
		if len(name) >= 4 {
			return name
		}
	}
	return ""
}

func (h *HotelService) ClassifyReference(text string) ReferenceKind {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || !hotelActivityRE.MatchString(trimmed) {
		return ReferenceNone
	}
	for _, re := range genericReferenceREs {
		if re.MatchString(trimmed) {
			return ReferenceGeneric
		}
	}
	// More than three words usually means a real hotel is already named.
	// Short specific mentions can misclassify here; known limitation.
	if len(refWordRE.FindAllString(trimmed, -1)) > 3 {
		return ReferenceSpecific
	}
	return ReferenceGeneric
}

func (h *HotelService) Resolve(text string, hotelName string) string {
	hotelName = strings.TrimSpace(hotelName)
	if hotelName == "" {
		return text
	}
	kind := h.ClassifyReference(text)
	if kind != ReferenceGeneric {
		return text
	}

	trimmed := strings.TrimSpace(text)
	for _, rule := range replacementRules {
		if rule.pattern.MatchString(trimmed) {
			return fmt.Sprintf(rule.template, hotelName)
		}
	}
	// No template fits; swap the bare word in place.
	return bareHotelWordRE.ReplaceAllString(trimmed, hotelName)
}

func (h *HotelService) ResolveAll(activities []response_models.Activity, hotelName string) ([]response_models.Activity, []bool) {
	out := make([]response_models.Activity, len(activities))
	changed := make([]bool, len(activities))
	for i, act := range activities {
		resolved := h.Resolve(act.PlaceName, hotelName)
		act.PlaceName = resolved
		out[i] = act
		changed[i] = resolved != activities[i].PlaceName
	}
	return out, changed
}

func (h *HotelService) ValidateConsistency(trip *response_models.NormalizedTrip) *response_models.HotelFixPlan {
	plan := &response_models.HotelFixPlan{
		IssuesByDay: []response_models.DayIssueCount{},
		Fixes:       []response_models.HotelFix{},
	}
	if trip == nil {
		return plan
	}

	corrected := trip.Clone()
	plan.Data = corrected

	hotelName := h.ExtractCanonicalHotelName(trip)
	if hotelName == "" {
		return plan
	}

	for di := range corrected.Itinerary {
		day := &corrected.Itinerary[di]
		dayIssues := 0
		for ai := range day.Plan {
			old := day.Plan[ai].PlaceName
			if h.ClassifyReference(old) != ReferenceGeneric {
				continue
			}
			fixed := h.Resolve(old, hotelName)
			if fixed == old {
				continue
			}
			day.Plan[ai].PlaceName = fixed
			dayIssues++
			plan.Fixes = append(plan.Fixes, response_models.HotelFix{
				Day:      day.Day,
				Activity: ai,
				OldValue: old,
				NewValue: fixed,
			})
		}
		if dayIssues > 0 {
			plan.IssuesByDay = append(plan.IssuesByDay, response_models.DayIssueCount{Day: day.Day, Issues: dayIssues})
		}
	}

	plan.TotalIssues = len(plan.Fixes)
	plan.Fixed = plan.TotalIssues > 0
	return plan
}
