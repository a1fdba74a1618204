package utils

import (
	"context"
	"fmt"
	"strings"

	"lakbay/internal/models/request_models"
)

// GeneratorClientInterface is the AI-generation collaborator boundary.
// Its output is raw and untrusted; the recovery parser deals with it.
type GeneratorClientInterface interface {
	GenerateItinerary(ctx context.Context, selection request_models.TripSelection) (string, error)
}

// buildItineraryPrompt asks for JSON matching the canonical trip shape.
// The model does not always comply, which is exactly why the pipeline
// downstream assumes nothing about the result.
func buildItineraryPrompt(selection request_models.TripSelection) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a %d-day travel plan for %s, Philippines", selection.DurationDays, selection.Destination)
	if selection.Travelers != "" {
		fmt.Fprintf(&b, " for %s", selection.Travelers)
	}
	if selection.Budget != "" {
		fmt.Fprintf(&b, " on a %s budget", selection.Budget)
	}
	b.WriteString(". Return JSON only, matching this shape exactly:\n")
	b.WriteString(`{
  "hotels": [{"hotelName":"","hotelAddress":"","price":"","rating":"","description":"","isRecommended":false}],
  "itinerary": [{"day":1,"theme":"","plan":[{"placeName":"","placeDetails":"","time":"9:00 AM","ticketPricing":"","timeTravel":"","rating":""}]}],
  "placesToVisit": [{"placeName":"","placeDetails":"","ticketPricing":"","rating":""}],
  "dailyCosts": [{"day":1,"amount":0,"description":""}]
}`)
	b.WriteString("\n\nHard constraints:\n")
	fmt.Fprintf(&b, "- Exactly %d days in \"itinerary\", day = 1..%d with no gaps.\n", selection.DurationDays, selection.DurationDays)
	b.WriteString("- Day 1 must include a hotel check-in; the last day must include a check-out.\n")
	b.WriteString("- Every middle day ends with a return to the hotel.\n")
	if selection.ActivityPreference > 0 {
		fmt.Fprintf(&b, "- Exactly %d main sightseeing activities per middle day (meals and transfers excluded).\n", selection.ActivityPreference)
	}
	b.WriteString("- Times formatted like \"9:00 AM\". No markdown, no comments, JSON only.")

	return b.String()
}
