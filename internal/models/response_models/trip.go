package response_models

// GeoPoint holds WGS84 coordinates as returned by the generation
// collaborator or the geocoding client.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Hotel struct {
	HotelName     string    `json:"hotelName"`
	HotelAddress  string    `json:"hotelAddress"`
	Price         string    `json:"price"`
	HotelImageURL string    `json:"hotelImageUrl"`
	Rating        string    `json:"rating"`
	Description   string    `json:"description"`
	GeoCoordinates *GeoPoint `json:"geoCoordinates,omitempty"`

	// IsRecommended marks the entry the generator flagged as its pick;
	// IsPrimary marks the entry tied to the day-1 check-in.
	IsRecommended bool `json:"isRecommended"`
	IsPrimary     bool `json:"isPrimary"`
}

type Activity struct {
	PlaceName      string    `json:"placeName"`
	PlaceDetails   string    `json:"placeDetails"`
	Time           string    `json:"time"`
	TicketPricing  string    `json:"ticketPricing"`
	TimeTravel     string    `json:"timeTravel"`
	Rating         string    `json:"rating"`
	GeoCoordinates *GeoPoint `json:"geoCoordinates,omitempty"`
}

// DayPlan is one itinerary day. Plan is ordered; the slice index is the
// visiting order within the day.
type DayPlan struct {
	Day   int        `json:"day"`
	Theme string     `json:"theme"`
	Plan  []Activity `json:"plan"`
}

type Place struct {
	PlaceName      string    `json:"placeName"`
	PlaceDetails   string    `json:"placeDetails"`
	TicketPricing  string    `json:"ticketPricing"`
	Rating         string    `json:"rating"`
	GeoCoordinates *GeoPoint `json:"geoCoordinates,omitempty"`
}

type CostEntry struct {
	Day         int     `json:"day"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

// Budget sources, in resolution priority order.
const (
	BudgetSourceExplicit = "explicit"
	BudgetSourceCustom   = "custom"
	BudgetSourceComputed = "computed"
	BudgetSourceUnset    = "unset"
)

type BudgetInfo struct {
	Amount  float64 `json:"amount"`
	Display string  `json:"display"`
	Source  string  `json:"source"`
}

// NormalizedTrip is the canonical trip record produced by the normalizer.
// The slice fields are always non-nil; absence is an empty slice.
type NormalizedTrip struct {
	Hotels        []Hotel     `json:"hotels"`
	Itinerary     []DayPlan   `json:"itinerary"`
	PlacesToVisit []Place     `json:"placesToVisit"`
	DailyCosts    []CostEntry `json:"dailyCosts"`
	Budget        BudgetInfo  `json:"budget"`
}

// Clone returns a deep copy so validators can hand back corrected data
// without mutating their input.
func (t *NormalizedTrip) Clone() *NormalizedTrip {
	if t == nil {
		return nil
	}
	out := &NormalizedTrip{
		Hotels:        make([]Hotel, len(t.Hotels)),
		Itinerary:     make([]DayPlan, len(t.Itinerary)),
		PlacesToVisit: make([]Place, len(t.PlacesToVisit)),
		DailyCosts:    make([]CostEntry, len(t.DailyCosts)),
		Budget:        t.Budget,
	}
	copy(out.Hotels, t.Hotels)
	copy(out.PlacesToVisit, t.PlacesToVisit)
	copy(out.DailyCosts, t.DailyCosts)
	for i, day := range t.Itinerary {
		plan := make([]Activity, len(day.Plan))
		copy(plan, day.Plan)
		day.Plan = plan
		out.Itinerary[i] = day
	}
	return out
}
