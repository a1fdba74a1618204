package db_models

type Trip struct {
	BaseModel
	UserID       string `gorm:"index"`
	Destination  string
	DurationDays int
	Travelers    string
	Budget       string
	StartDate    string
	EndDate      string

	// ActivityPreference rides along so reload-time policy validation
	// re-checks the same exact-count rule the trip was saved under.
	ActivityPreference int

	// TripData is the normalized trip serialized as JSON. Older rows may
	// hold string-encoded sub-fields, so it goes back through the
	// normalizer on every load.
	TripData string `gorm:"type:jsonb"`
}
