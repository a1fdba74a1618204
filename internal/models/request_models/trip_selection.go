package request_models

// TripSelection is the user's trip brief. Immutable once submitted; the
// pipeline only reads it.
type TripSelection struct {
	Destination        string `json:"destination" binding:"required"`
	DurationDays       int    `json:"durationDays" binding:"required,min=1,max=30"`
	Travelers          string `json:"travelers"`
	TravelerCount      int    `json:"travelerCount"`
	Budget             string `json:"budget"`
	CustomBudget       string `json:"customBudget"`
	StartDate          string `json:"startDate"`
	EndDate            string `json:"endDate"`
	ActivityPreference int    `json:"activityPreference"`
}

// ValidateTripRequest carries an already-generated payload to be pushed
// through the normalization pipeline. TripData is untyped on purpose: the
// collaborator may send a string, an object, or an array.
type ValidateTripRequest struct {
	TripData           any    `json:"tripData" binding:"required"`
	Destination        string `json:"destination" binding:"required"`
	ActivityPreference int    `json:"activityPreference"`
}

type SaveTripRequest struct {
	Selection TripSelection `json:"selection" binding:"required"`
	TripData  any           `json:"tripData" binding:"required"`
}
