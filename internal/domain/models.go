package domain

import "time"

// MovieRecord is the result of a successful title lookup
type MovieRecord struct {
	Title    string
	Year     string
	Genre    string
	Director string
	Awards   string

	// Extra fields, shown only in the details pager
	Plot       string
	Actors     string
	Runtime    string
	Rated      string
	ImdbRating string
	ImdbID     string
	Poster     string
}

// Coordinates is a single location fix
type Coordinates struct {
	Latitude  float64
	Longitude float64
	Accuracy  float64 // metres, 0 if unknown
	Source    string  // "geoip", "static"
	Timestamp time.Time
}

// PermissionStatus is the answer to a foreground location permission request
type PermissionStatus int

const (
	PermissionUndetermined PermissionStatus = iota
	PermissionGranted
	PermissionDenied
)

func (s PermissionStatus) String() string {
	switch s {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	default:
		return "undetermined"
	}
}

// LocationState is the state of the location flow
type LocationState int

const (
	LocationIdle LocationState = iota
	LocationPermissionRequested
	LocationGranted
	LocationFetching
	LocationFixed
	LocationDenied
)

func (s LocationState) String() string {
	switch s {
	case LocationPermissionRequested:
		return "PermissionRequested"
	case LocationGranted:
		return "Granted"
	case LocationFetching:
		return "Fetching"
	case LocationFixed:
		return "Fixed"
	case LocationDenied:
		return "Denied"
	default:
		return "Idle"
	}
}

// InFlight reports whether the flow is waiting on an external call
func (s LocationState) InFlight() bool {
	return s == LocationPermissionRequested || s == LocationGranted || s == LocationFetching
}
