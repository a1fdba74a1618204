package response_models

// Confidence levels used by the geographic validator.
const (
	ConfidenceHigh    = "high"
	ConfidenceMedium  = "medium"
	ConfidenceLow     = "low"
	ConfidenceUnknown = "unknown"
)

type SuspiciousPlace struct {
	Name       string `json:"name"`
	Category   string `json:"category"` // hotel | itinerary | place
	Day        int    `json:"day,omitempty"`
	Reason     string `json:"reason"`
	Confidence string `json:"confidence"`
}

type ValidationStats struct {
	Total      int `json:"total"`
	Validated  int `json:"validated"`
	Suspicious int `json:"suspicious"`
	Unknown    int `json:"unknown"`
}

type ValidationReport struct {
	IsValid          bool              `json:"isValid"`
	Errors           []string          `json:"errors"`
	Warnings         []string          `json:"warnings"`
	SuspiciousPlaces []SuspiciousPlace `json:"suspiciousPlaces"`
	Stats            ValidationStats   `json:"stats"`
}

type HotelFix struct {
	Day      int    `json:"day"`
	Activity int    `json:"activity"`
	OldValue string `json:"oldValue"`
	NewValue string `json:"newValue"`
}

type DayIssueCount struct {
	Day    int `json:"day"`
	Issues int `json:"issues"`
}

// HotelFixPlan lists every leftover generic hotel reference found in a
// trip and carries a corrected copy ready to be saved or rendered.
type HotelFixPlan struct {
	Fixed       bool            `json:"fixed"`
	TotalIssues int             `json:"totalIssues"`
	IssuesByDay []DayIssueCount `json:"issuesByDay"`
	Fixes       []HotelFix      `json:"fixes"`
	Data        *NormalizedTrip `json:"data"`
}

type PolicyResult struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// TripBundle is what the pipeline hands to the presentation layer: the
// normalized (and hotel-corrected) trip plus every report computed on it.
type TripBundle struct {
	TripID     string            `json:"tripId,omitempty"`
	Trip       *NormalizedTrip   `json:"trip"`
	Warnings   []string          `json:"warnings"`
	Geo        *ValidationReport `json:"geoValidation,omitempty"`
	Policy     *PolicyResult     `json:"policyValidation,omitempty"`
	HotelFix   *HotelFixPlan     `json:"hotelFix,omitempty"`
	Hints      []string          `json:"hints,omitempty"`
}
