package services

import (
	"fmt"
	"regexp"
	"strings"

	"lakbay/internal/models/response_models"
	"lakbay/internal/repositories"
)

const (
	placeCategoryHotel     = "hotel"
	placeCategoryItinerary = "itinerary"
	placeCategoryPlace     = "place"
)

type GeoValidatorServiceInterface interface {
	// ValidateTripLocations checks every place name in the trip against
	// the region knowledge base entry for destination.
	ValidateTripLocations(trip *response_models.NormalizedTrip, destination string) *response_models.ValidationReport

	// FilterSuspiciousPlaces returns a copy of the trip with every
	// flagged place removed. The input is not mutated.
	FilterSuspiciousPlaces(trip *response_models.NormalizedTrip, report *response_models.ValidationReport) *response_models.NormalizedTrip
}

type GeoValidatorService struct {
	regions repositories.RegionRepository
}

func NewGeoValidatorService(regions repositories.RegionRepository) GeoValidatorServiceInterface {
	return &GeoValidatorService{regions: regions}
}

var hotelWordRE = regexp.MustCompile(`(?i)\b(hotel|resort|inn|lodge|hostel|suites?)\b`)

type placeRef struct {
	name     string
	category string
	day      int
}

func collectPlaceRefs(trip *response_models.NormalizedTrip) []placeRef {
	var refs []placeRef
	for _, h := range trip.Hotels {
		if strings.TrimSpace(h.HotelName) != "" {
			refs = append(refs, placeRef{name: h.HotelName, category: placeCategoryHotel})
		}
	}
	for _, day := range trip.Itinerary {
		for _, act := range day.Plan {
			if strings.TrimSpace(act.PlaceName) != "" {
				refs = append(refs, placeRef{name: act.PlaceName, category: placeCategoryItinerary, day: day.Day})
			}
		}
	}
	for _, p := range trip.PlacesToVisit {
		if strings.TrimSpace(p.PlaceName) != "" {
			refs = append(refs, placeRef{name: p.PlaceName, category: placeCategoryPlace})
		}
	}
	return refs
}

func (g *GeoValidatorService) ValidateTripLocations(trip *response_models.NormalizedTrip, destination string) *response_models.ValidationReport {
	report := &response_models.ValidationReport{
		IsValid:          true,
		Errors:           []string{},
		Warnings:         []string{},
		SuspiciousPlaces: []response_models.SuspiciousPlace{},
	}

	refs := collectPlaceRefs(trip)
	report.Stats.Total = len(refs)

	destKey, profile, known := g.regions.Lookup(destination)
	if !known {
		// No reference data is not evidence of anything being wrong.
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("no region reference data for %q; location validation skipped", destination))
		report.Stats.Unknown = len(refs)
		return report
	}

	for _, ref := range refs {
		verdict, confidence, reason := g.checkPlace(ref.name, destKey, profile)
		switch verdict {
		case placeInvalid:
			report.Stats.Suspicious++
			report.SuspiciousPlaces = append(report.SuspiciousPlaces, response_models.SuspiciousPlace{
				Name:       ref.name,
				Category:   ref.category,
				Day:        ref.day,
				Reason:     reason,
				Confidence: confidence,
			})
			if confidence == response_models.ConfidenceHigh {
				report.Errors = append(report.Errors, fmt.Sprintf("%s: %s", ref.name, reason))
			} else {
				report.Warnings = append(report.Warnings, fmt.Sprintf("%s: %s", ref.name, reason))
			}
		case placeValid:
			report.Stats.Validated++
		default:
			report.Stats.Unknown++
		}
	}

	if report.Stats.Total > 0 && report.Stats.Unknown > report.Stats.Total/2 {
		report.Warnings = append(report.Warnings,
			"most places could not be matched against reference data; validation evidence is weak")
	}

	report.IsValid = len(report.Errors) == 0
	return report
}

type placeVerdict int

const (
	placeUnknown placeVerdict = iota
	placeValid
	placeInvalid
)

// checkPlace runs the checks in spec priority order: cross-region
// conflicts first, then the hotel-name exception, then positive signals.
func (g *GeoValidatorService) checkPlace(name, destKey string, profile *repositories.RegionProfile) (placeVerdict, string, string) {
	lower := strings.ToLower(name)

	// A famous attraction of a different region is the most damaging
	// failure mode, so it wins over every positive signal.
	if otherDest, otherProfile, ok := g.regions.FindAttraction(name); ok && otherProfile.Region != profile.Region {
		return placeInvalid, response_models.ConfidenceHigh,
			fmt.Sprintf("belongs to %s (%s), not %s", titleCase(otherDest), otherProfile.Region, titleCase(destKey))
	}

	// Hotels often carry a city name in their brand ("Manila Hotel").
	// Allowed only when that city shares the destination's region.
	if otherDest, otherProfile, ok := g.regions.DestinationIn(name, destKey); ok && hotelWordRE.MatchString(name) {
		if otherProfile.Region == profile.Region {
			return placeValid, response_models.ConfidenceMedium, ""
		}
		return placeInvalid, response_models.ConfidenceHigh,
			fmt.Sprintf("hotel name references %s (%s), outside the %s region", titleCase(otherDest), otherProfile.Region, profile.Region)
	}

	if strings.Contains(lower, destKey) {
		return placeValid, response_models.ConfidenceHigh, ""
	}
	for _, kw := range profile.Keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return placeValid, response_models.ConfidenceHigh, ""
		}
	}
	for _, attraction := range profile.FamousAttractions {
		if strings.Contains(lower, strings.ToLower(attraction)) {
			return placeValid, response_models.ConfidenceHigh, ""
		}
	}
	for _, area := range profile.NearbyAreas {
		if strings.Contains(lower, strings.ToLower(area)) {
			return placeValid, response_models.ConfidenceMedium, ""
		}
	}

	return placeUnknown, response_models.ConfidenceLow, ""
}

func (g *GeoValidatorService) FilterSuspiciousPlaces(trip *response_models.NormalizedTrip, report *response_models.ValidationReport) *response_models.NormalizedTrip {
	out := trip.Clone()
	if report == nil || len(report.SuspiciousPlaces) == 0 {
		return out
	}

	flagged := make(map[string]bool, len(report.SuspiciousPlaces))
	for _, sp := range report.SuspiciousPlaces {
		flagged[strings.ToLower(sp.Name)] = true
	}

	hotels := out.Hotels[:0]
	for _, h := range out.Hotels {
		if !flagged[strings.ToLower(h.HotelName)] {
			hotels = append(hotels, h)
		}
	}
	out.Hotels = hotels

	places := out.PlacesToVisit[:0]
	for _, p := range out.PlacesToVisit {
		if !flagged[strings.ToLower(p.PlaceName)] {
			places = append(places, p)
		}
	}
	out.PlacesToVisit = places

	for i := range out.Itinerary {
		plan := out.Itinerary[i].Plan[:0]
		for _, act := range out.Itinerary[i].Plan {
			if !flagged[strings.ToLower(act.PlaceName)] {
				plan = append(plan, act)
			}
		}
		out.Itinerary[i].Plan = plan
	}

	return out
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
