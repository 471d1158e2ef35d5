// internal/estimator/location.go
package estimator

type regionRule struct {
	location Location
	match    func(latitude, longitude float64) bool
}

// RegionTable is an ordered list of rectangle checks. The first match wins and the
// last rule always matches.
type RegionTable []regionRule

func (t RegionTable) Classify(latitude, longitude float64) Location {
	for _, rule := range t {
		if rule.match(latitude, longitude) {
			return rule.location
		}
	}
	return inlandNorth
}

var (
	bayArea = Location{
		Name:        "San Francisco Bay Area",
		Description: "Premium market - highest prices in California",
	}
	losAngelesMetro = Location{
		Name:        "Los Angeles Metro",
		Description: "Major urban center - high demand",
	}
	southernCoast = Location{
		Name:        "Southern California Coast",
		Description: "Coastal premium - desirable location",
	}
	sanDiegoCoast = Location{
		Name:        "San Diego Coast",
		Description: "Coastal premium - mild climate and strong demand",
	}
	centralCoast = Location{
		Name:        "Central Coast",
		Description: "Coastal living - moderate to high prices",
	}
	inlandSouth = Location{
		Name:        "Southern California Inland",
		Description: "Affordable inland areas",
	}
	inlandNorth = Location{
		Name:        "Northern California Inland",
		Description: "More affordable rural areas",
	}
)

func always(float64, float64) bool { return true }

// heuristicRegions is the region table of the heuristic pricing form.
var heuristicRegions = RegionTable{
	{bayArea, func(lat, lon float64) bool { return lon < -121.5 && lat > 37.0 }},
	{losAngelesMetro, func(lat, lon float64) bool { return -118.5 < lon && lon < -117.5 && 33.5 < lat && lat < 34.5 }},
	{southernCoast, func(lat, lon float64) bool { return lon < -118.5 && lat < 34.5 }},
	{centralCoast, func(lat, lon float64) bool { return lon < -118.5 }},
	{inlandSouth, func(lat, lon float64) bool { return lat < 35.0 }},
	{inlandNorth, always},
}

// modelRegions is shared by the standardized and regression forms. Its cutoffs differ
// from heuristicRegions.
var modelRegions = RegionTable{
	{bayArea, func(lat, lon float64) bool { return lon < -121.0 && lat > 37.0 }},
	{losAngelesMetro, func(lat, lon float64) bool { return -118.7 < lon && lon < -117.0 && 33.6 < lat && lat < 34.4 }},
	{sanDiegoCoast, func(lat, lon float64) bool { return lon < -117.0 && lat < 33.6 }},
	{centralCoast, func(lat, lon float64) bool { return lon < -119.0 }},
	{inlandSouth, func(lat, lon float64) bool { return lat < 35.0 }},
	{inlandNorth, always},
}

// ClassifyLocation classifies a coordinate with the heuristic region table.
func ClassifyLocation(latitude, longitude float64) Location {
	return heuristicRegions.Classify(latitude, longitude)
}
