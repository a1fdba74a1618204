package repositories

import (
	"sort"
	"strings"
)

// RegionProfile is static reference data about a known destination, used
// by the geographic validator for plausibility checks only.
type RegionProfile struct {
	Region            string   `json:"region"`
	Province          string   `json:"province"`
	NearbyAreas       []string `json:"nearbyAreas"`
	Keywords          []string `json:"keywords"`
	FamousAttractions []string `json:"famousAttractions"`
}

type RegionRepository interface {
	// Lookup resolves a destination name to its profile. Matching is
	// case-insensitive and tolerates decorations like "Boracay Island".
	Lookup(destination string) (string, *RegionProfile, bool)

	// FindAttraction resolves a place name to the destination whose famous
	// attraction it mentions, if any.
	FindAttraction(placeName string) (string, *RegionProfile, bool)

	// DestinationIn reports whether placeName mentions any known
	// destination other than exclude, returning the first hit.
	DestinationIn(placeName string, exclude string) (string, *RegionProfile, bool)

	ListDestinations() []string
}

type regionRepository struct {
	profiles map[string]*RegionProfile
}

func NewRegionRepository() RegionRepository {
	return &regionRepository{profiles: regionProfiles}
}

func (r *regionRepository) Lookup(destination string) (string, *RegionProfile, bool) {
	key := strings.ToLower(strings.TrimSpace(destination))
	if profile, ok := r.profiles[key]; ok {
		return key, profile, true
	}
	// "El Nido, Palawan" or "Boracay Island" style names.
	for name, profile := range r.profiles {
		if strings.Contains(key, name) {
			return name, profile, true
		}
	}
	return "", nil, false
}

func (r *regionRepository) FindAttraction(placeName string) (string, *RegionProfile, bool) {
	lower := strings.ToLower(placeName)
	for _, name := range r.ListDestinations() {
		profile := r.profiles[name]
		for _, attraction := range profile.FamousAttractions {
			if strings.Contains(lower, strings.ToLower(attraction)) {
				return name, profile, true
			}
		}
	}
	return "", nil, false
}

func (r *regionRepository) DestinationIn(placeName string, exclude string) (string, *RegionProfile, bool) {
	lower := strings.ToLower(placeName)
	exclude = strings.ToLower(strings.TrimSpace(exclude))
	for _, name := range r.ListDestinations() {
		if name == exclude {
			continue
		}
		if strings.Contains(lower, name) {
			return name, r.profiles[name], true
		}
	}
	return "", nil, false
}

func (r *regionRepository) ListDestinations() []string {
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Static table. Keys are lowercase destination names.
var regionProfiles = map[string]*RegionProfile{
	"boracay": {
		Region:      "Western Visayas",
		Province:    "Aklan",
		NearbyAreas: []string{"caticlan", "malay", "kalibo", "aklan"},
		Keywords: []string{
			"white beach", "station 1", "station 2", "station 3", "d'mall",
			"bulabog", "puka", "diniwid", "boat station",
		},
		FamousAttractions: []string{
			"White Beach", "Puka Shell Beach", "Willy's Rock", "D'Mall",
			"Bulabog Beach", "Crystal Cove Island", "Ariel's Point",
			"Mount Luho", "Diniwid Beach",
		},
	},
	"bohol": {
		Region:      "Central Visayas",
		Province:    "Bohol",
		NearbyAreas: []string{"panglao", "tagbilaran", "loboc", "anda"},
		Keywords: []string{
			"chocolate hills", "tarsier", "loboc river", "panglao",
			"alona", "baclayon", "hinagdanan",
		},
		FamousAttractions: []string{
			"Chocolate Hills", "Tarsier Sanctuary", "Loboc River",
			"Alona Beach", "Baclayon Church", "Hinagdanan Cave",
			"Blood Compact Shrine", "Balicasag Island",
		},
	},
	"cebu": {
		Region:      "Central Visayas",
		Province:    "Cebu",
		NearbyAreas: []string{"mactan", "lapu-lapu", "moalboal", "oslob", "bantayan", "malapascua", "badian"},
		Keywords: []string{
			"magellan", "sinulog", "kawasan", "oslob", "lechon",
			"sirao", "tops lookout", "carbon market",
		},
		FamousAttractions: []string{
			"Magellan's Cross", "Basilica del Santo Niño", "Fort San Pedro",
			"Kawasan Falls", "Temple of Leah", "Tops Lookout",
			"Sirao Flower Garden", "Osmeña Peak",
		},
	},
	"el nido": {
		Region:      "Mimaropa",
		Province:    "Palawan",
		NearbyAreas: []string{"palawan", "taytay", "corong corong", "lio", "nacpan"},
		Keywords: []string{
			"big lagoon", "small lagoon", "island hopping", "tour a",
			"tour b", "tour c", "bacuit bay", "kayangan",
		},
		FamousAttractions: []string{
			"Big Lagoon", "Small Lagoon", "Secret Lagoon", "Nacpan Beach",
			"Las Cabañas Beach", "Seven Commandos Beach", "Taraw Cliff",
			"Snake Island", "Shimizu Island",
		},
	},
	"coron": {
		Region:      "Mimaropa",
		Province:    "Palawan",
		NearbyAreas: []string{"busuanga", "palawan", "culion"},
		Keywords: []string{
			"kayangan", "twin lagoon", "wreck diving", "maquinit",
			"mount tapyas",
		},
		FamousAttractions: []string{
			"Kayangan Lake", "Twin Lagoon", "Barracuda Lake",
			"Mount Tapyas", "Maquinit Hot Spring", "Malcapuya Island",
			"Siete Pecados",
		},
	},
	"puerto princesa": {
		Region:      "Mimaropa",
		Province:    "Palawan",
		NearbyAreas: []string{"palawan", "sabang", "honda bay"},
		Keywords: []string{
			"underground river", "honda bay", "iwahig", "baywalk",
		},
		FamousAttractions: []string{
			"Underground River", "Honda Bay", "Baker's Hill",
			"Mitra's Ranch", "Iwahig Firefly Watching", "Plaza Cuartel",
		},
	},
	"manila": {
		Region:      "National Capital Region",
		Province:    "Metro Manila",
		NearbyAreas: []string{"makati", "pasay", "quezon city", "taguig", "ermita", "malate", "binondo", "bgc"},
		Keywords: []string{
			"intramuros", "rizal", "baywalk", "mall of asia", "divisoria",
			"escolta", "manila bay",
		},
		FamousAttractions: []string{
			"Intramuros", "Rizal Park", "Fort Santiago", "National Museum",
			"Manila Ocean Park", "San Agustin Church", "Binondo",
			"Mall of Asia", "Manila Baywalk",
		},
	},
	"tagaytay": {
		Region:      "Calabarzon",
		Province:    "Cavite",
		NearbyAreas: []string{"silang", "alfonso", "amadeo", "mendez"},
		Keywords: []string{
			"taal", "ridge", "bulalo", "picnic grove",
		},
		FamousAttractions: []string{
			"Taal Volcano", "People's Park in the Sky", "Sky Ranch",
			"Picnic Grove", "Puzzle Mansion", "Sonya's Garden",
		},
	},
	"baguio": {
		Region:      "Cordillera Administrative Region",
		Province:    "Benguet",
		NearbyAreas: []string{"la trinidad", "itogon", "tuba"},
		Keywords: []string{
			"burnham", "session road", "strawberry", "pine",
			"panagbenga",
		},
		FamousAttractions: []string{
			"Burnham Park", "Mines View Park", "Camp John Hay",
			"Strawberry Farm", "Bell Church", "Wright Park",
			"The Mansion", "BenCab Museum",
		},
	},
	"siargao": {
		Region:      "Caraga",
		Province:    "Surigao del Norte",
		NearbyAreas: []string{"general luna", "dapa", "del carmen", "pilar"},
		Keywords: []string{
			"cloud 9", "surfing", "magpupungko", "sugba",
		},
		FamousAttractions: []string{
			"Cloud 9", "Magpupungko Rock Pools", "Sugba Lagoon",
			"Naked Island", "Daku Island", "Guyam Island",
			"Sohoton Cove",
		},
	},
	"davao": {
		Region:      "Davao Region",
		Province:    "Davao del Sur",
		NearbyAreas: []string{"samal", "tagum", "digos"},
		Keywords: []string{
			"durian", "mount apo", "eagle", "samal island",
		},
		FamousAttractions: []string{
			"Mount Apo", "Eden Nature Park", "Philippine Eagle Center",
			"Samal Island", "People's Park", "Roxas Night Market",
		},
	},
	"vigan": {
		Region:      "Ilocos Region",
		Province:    "Ilocos Sur",
		NearbyAreas: []string{"bantay", "laoag", "ilocos"},
		Keywords: []string{
			"calle crisologo", "heritage", "kalesa", "empanada",
		},
		FamousAttractions: []string{
			"Calle Crisologo", "Bantay Bell Tower", "Vigan Cathedral",
			"Plaza Salcedo", "Syquia Mansion", "Hidden Garden",
		},
	},
	"sagada": {
		Region:      "Cordillera Administrative Region",
		Province:    "Mountain Province",
		NearbyAreas: []string{"bontoc", "banaue", "besao"},
		Keywords: []string{
			"hanging coffins", "sumaguing", "kiltepan", "etag",
		},
		FamousAttractions: []string{
			"Hanging Coffins", "Sumaguing Cave", "Echo Valley",
			"Kiltepan Peak", "Bomod-ok Falls", "Marlboro Hills",
		},
	},
	"siquijor": {
		Region:      "Central Visayas",
		Province:    "Siquijor",
		NearbyAreas: []string{"dumaguete", "larena", "lazi", "san juan"},
		Keywords: []string{
			"cambugahay", "balete", "healing", "paliton",
		},
		FamousAttractions: []string{
			"Cambugahay Falls", "Salagdoong Beach", "Enchanted Balete Tree",
			"Paliton Beach", "Lazi Church", "Guiwanon Spring Park",
		},
	},
	"dumaguete": {
		Region:      "Central Visayas",
		Province:    "Negros Oriental",
		NearbyAreas: []string{"valencia", "dauin", "sibulan", "bacong"},
		Keywords: []string{
			"rizal boulevard", "silliman", "apo island", "sandurot",
		},
		FamousAttractions: []string{
			"Rizal Boulevard", "Silliman University", "Apo Island",
			"Casaroro Falls", "Twin Lakes", "Pulangbato Falls",
		},
	},
}
