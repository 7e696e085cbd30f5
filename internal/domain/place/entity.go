// internal/domain/place/entity.go
package place

import (
	"strings"

	"github.com/Madman-dev/ZZin/internal/domain/document"
)

// Collection is the store collection for places. DocID == PID.
const Collection = "places"

// Wire field names.
const (
	FieldPID         = "pid"
	FieldRID         = "rid"
	FieldPlaceName   = "placeName"
	FieldPlaceImg    = "placeImg"
	FieldPlaceTelNum = "placeTelNum"
	FieldCity        = "city"
	FieldTown        = "town"
	FieldAddress     = "address"
	FieldLat         = "lat"
	FieldLong        = "long"
	FieldCompanion   = "companion"
	FieldCondition   = "condition"
	FieldKindOfFood  = "kindOfFood"
	// FieldUID records the author of the latest write. It is stored but not
	// part of Place.
	FieldUID = "uid"
)

// Place is a restaurant. RID and PlaceImg grow by set-union; the descriptive
// fields and tags reflect the latest review written against it.
type Place struct {
	PID         string   `json:"pid"`
	RID         []string `json:"rid"`
	PlaceName   string   `json:"placeName"`
	PlaceImg    []string `json:"placeImg"`
	PlaceTelNum string   `json:"placeTelNum"`
	City        string   `json:"city"`
	Town        string   `json:"town"`
	Address     string   `json:"address"`
	Lat         *float64 `json:"lat,omitempty"`
	Long        *float64 `json:"long,omitempty"`
	Companion   string   `json:"companion"`
	Condition   string   `json:"condition"`
	KindOfFood  string   `json:"kindOfFood"`
}

// Schema is the explicit wire layout of Place.
var Schema = document.Schema{
	Name: "place",
	Fields: []document.FieldSpec{
		{Wire: FieldPID, Kind: document.KindString, Required: true},
		{Wire: FieldRID, Kind: document.KindStringList, Required: true},
		{Wire: FieldPlaceName, Kind: document.KindString, Required: true},
		{Wire: FieldPlaceImg, Kind: document.KindStringList, Required: true},
		{Wire: FieldPlaceTelNum, Kind: document.KindString, Required: true},
		{Wire: FieldCity, Kind: document.KindString, Required: true},
		{Wire: FieldTown, Kind: document.KindString, Required: true},
		{Wire: FieldAddress, Kind: document.KindString, Required: true},
		{Wire: FieldLat, Kind: document.KindFloat},
		{Wire: FieldLong, Kind: document.KindFloat},
		{Wire: FieldCompanion, Kind: document.KindString, Required: true},
		{Wire: FieldCondition, Kind: document.KindString, Required: true},
		{Wire: FieldKindOfFood, Kind: document.KindString, Required: true},
	},
}

// AnyTown selects every town of a city.
const AnyTown = "전체"

// Filter selects places by tag and location. Empty fields match anything;
// Town also accepts AnyTown.
type Filter struct {
	Companion  string `json:"companion"`
	Condition  string `json:"condition"`
	KindOfFood string `json:"kindOfFood"`
	City       string `json:"city"`
	Town       string `json:"town"`
}

// Normalize trims every field and folds AnyTown to "".
func (f Filter) Normalize() Filter {
	out := Filter{
		Companion:  strings.TrimSpace(f.Companion),
		Condition:  strings.TrimSpace(f.Condition),
		KindOfFood: strings.TrimSpace(f.KindOfFood),
		City:       strings.TrimSpace(f.City),
		Town:       strings.TrimSpace(f.Town),
	}
	if out.Town == AnyTown {
		out.Town = ""
	}
	return out
}

// IsZero reports whether the filter matches every place.
func (f Filter) IsZero() bool {
	return f.Normalize() == Filter{}
}

// Matches reports whether p satisfies every set field of f.
func (p Place) Matches(f Filter) bool {
	f = f.Normalize()
	return matchTag(f.Companion, p.Companion) &&
		matchTag(f.Condition, p.Condition) &&
		matchTag(f.KindOfFood, p.KindOfFood) &&
		matchTag(f.City, p.City) &&
		matchTag(f.Town, p.Town)
}

func matchTag(want, got string) bool {
	return want == "" || want == strings.TrimSpace(got)
}
