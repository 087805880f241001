package wmata

// Station represents one physical platform entry from the rail station
// reference feed. StationTogether1 names the sibling platform code when a
// logical station spans two platforms (e.g. Metro Center, L'Enfant Plaza).
type Station struct {
	Code             string `json:"Code"`
	Name             string `json:"Name"`
	LineCode1        string `json:"LineCode1"`
	LineCode2        string `json:"LineCode2"`
	LineCode3        string `json:"LineCode3"`
	LineCode4        string `json:"LineCode4"`
	StationTogether1 string `json:"StationTogether1"`
}

// LineCodes returns the station's non-empty line codes in declared order.
// Duplicates are kept; the feed never has them but the order matters for
// incident relevance.
func (s Station) LineCodes() []string {
	var codes []string
	for _, c := range []string{s.LineCode1, s.LineCode2, s.LineCode3, s.LineCode4} {
		if c != "" {
			codes = append(codes, c)
		}
	}
	return codes
}

// Prediction represents one upcoming rail arrival at a platform. Min is a
// string because the feed mixes numeric minutes with state markers such as
// "BRD" and "ARR".
type Prediction struct {
	Car             string `json:"Car"`
	Destination     string `json:"Destination"`
	DestinationName string `json:"DestinationName"`
	Group           string `json:"Group"`
	Line            string `json:"Line"`
	LocationCode    string `json:"LocationCode"`
	LocationName    string `json:"LocationName"`
	Min             string `json:"Min"`
}

// Incident represents an active rail service disruption. LinesAffected is
// the raw delimiter-joined string from the feed ("RD; BL;"); tokenizing it
// is the incident filter's job.
type Incident struct {
	IncidentID    string `json:"IncidentID"`
	IncidentType  string `json:"IncidentType"`
	LinesAffected string `json:"LinesAffected"`
	Description   string `json:"Description"`
	DateUpdated   string `json:"DateUpdated"`
}

// BusIncident represents an active bus service disruption.
type BusIncident struct {
	IncidentID     string   `json:"IncidentID"`
	IncidentType   string   `json:"IncidentType"`
	RoutesAffected []string `json:"RoutesAffected"`
	Description    string   `json:"Description"`
	DateUpdated    string   `json:"DateUpdated"`
}

// BusPrediction represents one upcoming bus arrival at a stop.
type BusPrediction struct {
	RouteID       string `json:"RouteID"`
	DirectionText string `json:"DirectionText"`
	Minutes       int    `json:"Minutes"`
	VehicleID     string `json:"VehicleID"`
	TripID        string `json:"TripID"`
}

// API response envelopes
type stationsResponse struct {
	Stations []Station `json:"Stations"`
}

type predictionsResponse struct {
	Trains []Prediction `json:"Trains"`
}

type incidentsResponse struct {
	Incidents []Incident `json:"Incidents"`
}

type busIncidentsResponse struct {
	BusIncidents []BusIncident `json:"BusIncidents"`
}

type busPredictionsResponse struct {
	StopName    string          `json:"StopName"`
	Predictions []BusPrediction `json:"Predictions"`
}
