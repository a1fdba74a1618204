package services

import (
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"lakbay/internal/models/response_models"
)

// Field-name aliases the generation collaborator has used historically,
// in lookup priority order.
var (
	containerAliases = []string{"tripData", "trip_data", "data"}
	hotelAliases     = []string{"hotels", "hotelOptions", "hotel_options", "accommodations", "hotelsList"}
	itineraryAliases = []string{"itinerary", "dailyItinerary", "daily_itinerary", "days", "dayPlans"}
	placesAliases    = []string{"placesToVisit", "places_to_visit", "places", "attractions", "placesToVisitNearby"}
	costAliases      = []string{"dailyCosts", "daily_costs", "dailyCost", "costBreakdown"}
)

type NormalizerServiceInterface interface {
	// Normalize turns a raw payload into the canonical trip record. The
	// returned warnings describe upstream data-quality defects that were
	// compensated for; Normalize itself never fails.
	Normalize(raw any) (*response_models.NormalizedTrip, []string)
}

type NormalizerService struct {
	parser ParserServiceInterface
}

func NewNormalizerService(parser ParserServiceInterface) NormalizerServiceInterface {
	return &NormalizerService{parser: parser}
}

func (n *NormalizerService) Normalize(raw any) (*response_models.NormalizedTrip, []string) {
	trip := &response_models.NormalizedTrip{
		Hotels:        []response_models.Hotel{},
		Itinerary:     []response_models.DayPlan{},
		PlacesToVisit: []response_models.Place{},
		DailyCosts:    []response_models.CostEntry{},
		Budget:        response_models.BudgetInfo{Display: "not set", Source: response_models.BudgetSourceUnset},
	}
	var warnings []string

	records, diag := n.parser.ParseRecords(raw)
	if diag.Stage == ParseStageUnrecoverable || len(records) == 0 {
		warnings = append(warnings, "payload could not be parsed; returning empty trip")
		return trip, warnings
	}
	if diag.Stage != ParseStageDirect {
		warnings = append(warnings, fmt.Sprintf("payload required recovery parsing (stage=%s, dropped=%d)", diag.Stage, diag.Dropped))
	}
	data := records[0]

	// Known upstream defect: the itinerary container field sometimes
	// nests a full duplicate payload one level deep.
	if inner, ok := nestedPayload(data); ok {
		warnings = append(warnings, "flattened self-nested trip payload")
		log.Printf("normalizer: flattened one-level self-nested payload")
		data = inner
	}

	trip.Hotels = decodeSlice[response_models.Hotel](n, data, hotelAliases, &warnings)
	trip.PlacesToVisit = decodeSlice[response_models.Place](n, data, placesAliases, &warnings)
	trip.DailyCosts = decodeSlice[response_models.CostEntry](n, data, costAliases, &warnings)
	trip.Itinerary = n.decodeItinerary(data, &warnings)
	trip.Budget = resolveBudget(data, trip.DailyCosts)

	return trip, warnings
}

// nestedPayload reports whether one of the container fields holds another
// complete trip payload and returns it if so.
func nestedPayload(data map[string]any) (map[string]any, bool) {
	for _, alias := range containerAliases {
		inner, ok := data[alias].(map[string]any)
		if !ok {
			continue
		}
		if looksLikeTripPayload(inner) {
			return inner, true
		}
	}
	return nil, false
}

func looksLikeTripPayload(data map[string]any) bool {
	for _, aliases := range [][]string{hotelAliases, itineraryAliases, placesAliases} {
		for _, alias := range aliases {
			if _, ok := data[alias]; ok {
				return true
			}
		}
	}
	return false
}

// firstAlias returns the first populated alias value for a canonical
// field, decoding string-encoded values through the recovery parser.
func (n *NormalizerService) firstAlias(data map[string]any, aliases []string, warnings *[]string) (any, bool) {
	for _, alias := range aliases {
		v, ok := data[alias]
		if !ok || v == nil {
			continue
		}
		if s, isString := v.(string); isString {
			records, diag := n.parser.ParseRecords(s)
			if diag.Stage == ParseStageUnrecoverable {
				*warnings = append(*warnings, fmt.Sprintf("field %q was string-encoded and unrecoverable", alias))
				continue
			}
			return records, true
		}
		return v, true
	}
	return nil, false
}

// decodeSlice converts whatever shape an alias field holds into a typed
// slice. A single object is wrapped; anything undecodable yields empty.
func decodeSlice[T any](n *NormalizerService, data map[string]any, aliases []string, warnings *[]string) []T {
	v, ok := n.firstAlias(data, aliases, warnings)
	if !ok {
		return []T{}
	}
	if rec, isRec := v.(map[string]any); isRec {
		v = []any{rec}
	}
	return decodeSliceValue[T](v)
}

var dayKeyRE = regexp.MustCompile(`(?i)^day\s*(\d+)$`)

// decodeItinerary handles the two historical itinerary shapes: an ordered
// array of day plans, or an object keyed "day1".."dayN".
func (n *NormalizerService) decodeItinerary(data map[string]any, warnings *[]string) []response_models.DayPlan {
	v, ok := n.firstAlias(data, itineraryAliases, warnings)
	if !ok {
		return []response_models.DayPlan{}
	}

	if keyed, isMap := v.(map[string]any); isMap {
		return decodeKeyedItinerary(keyed, warnings)
	}

	days := decodeSliceValue[response_models.DayPlan](v)
	for i := range days {
		if days[i].Day == 0 {
			days[i].Day = i + 1
		}
		if days[i].Plan == nil {
			days[i].Plan = []response_models.Activity{}
		}
	}
	sort.SliceStable(days, func(i, j int) bool { return days[i].Day < days[j].Day })
	return days
}

func decodeKeyedItinerary(keyed map[string]any, warnings *[]string) []response_models.DayPlan {
	*warnings = append(*warnings, "itinerary arrived keyed by day name; converted to ordered array")
	days := make([]response_models.DayPlan, 0, len(keyed))
	for key, val := range keyed {
		m := dayKeyRE.FindStringSubmatch(strings.TrimSpace(key))
		if m == nil {
			continue
		}
		num, _ := strconv.Atoi(m[1])
		raw, err := json.Marshal(val)
		if err != nil {
			continue
		}
		var day response_models.DayPlan
		if err := json.Unmarshal(raw, &day); err != nil {
			continue
		}
		day.Day = num
		if day.Plan == nil {
			day.Plan = []response_models.Activity{}
		}
		days = append(days, day)
	}
	sort.SliceStable(days, func(i, j int) bool { return days[i].Day < days[j].Day })
	return days
}

func decodeSliceValue[T any](v any) []T {
	items, ok := v.([]any)
	if !ok {
		if recs, isRecs := v.([]map[string]any); isRecs {
			items = make([]any, len(recs))
			for i, r := range recs {
				items[i] = r
			}
		} else {
			return []T{}
		}
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		raw, err := json.Marshal(item)
		if err != nil {
			continue
		}
		var typed T
		if err := json.Unmarshal(raw, &typed); err != nil {
			continue
		}
		out = append(out, typed)
	}
	return out
}

var numericRE = regexp.MustCompile(`[\d,]+(?:\.\d+)?`)

// resolveBudget applies the priority chain: explicit numeric amount,
// parsed custom-budget string, summed daily costs, then "not set".
func resolveBudget(data map[string]any, costs []response_models.CostEntry) response_models.BudgetInfo {
	for _, key := range []string{"budget", "budgetAmount", "totalBudget"} {
		switch v := data[key].(type) {
		case float64:
			if v > 0 {
				return response_models.BudgetInfo{Amount: v, Display: formatAmount(v), Source: response_models.BudgetSourceExplicit}
			}
		case string:
			if amount, ok := parseAmount(v); ok {
				return response_models.BudgetInfo{Amount: amount, Display: formatAmount(amount), Source: response_models.BudgetSourceExplicit}
			}
		case map[string]any:
			// An already-resolved BudgetInfo arriving on re-normalization
			// of a persisted trip. Keep its amount and source.
			if amount, ok := v["amount"].(float64); ok && amount > 0 {
				source, _ := v["source"].(string)
				if source == "" {
					source = response_models.BudgetSourceExplicit
				}
				return response_models.BudgetInfo{Amount: amount, Display: formatAmount(amount), Source: source}
			}
		}
	}

	if s, ok := data["customBudget"].(string); ok {
		if amount, parsed := parseAmount(s); parsed {
			return response_models.BudgetInfo{Amount: amount, Display: formatAmount(amount), Source: response_models.BudgetSourceCustom}
		}
	}

	var total float64
	for _, c := range costs {
		total += c.Amount
	}
	if total > 0 {
		return response_models.BudgetInfo{Amount: total, Display: formatAmount(total), Source: response_models.BudgetSourceComputed}
	}

	return response_models.BudgetInfo{Display: "not set", Source: response_models.BudgetSourceUnset}
}

func parseAmount(s string) (float64, bool) {
	match := numericRE.FindString(s)
	if match == "" {
		return 0, false
	}
	match = strings.ReplaceAll(match, ",", "")
	amount, err := strconv.ParseFloat(match, 64)
	if err != nil || amount <= 0 {
		return 0, false
	}
	return amount, true
}

func formatAmount(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
