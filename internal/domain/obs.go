package domain

import "time"

// SkyLayer is one reported cloud layer: a cover code plus an optional base
// height. Cover codes follow METAR conventions: CLR, FEW, SCT, BKN, OVC.
type SkyLayer struct {
	Cover  string   `json:"cover"`
	BaseFt *float64 `json:"level_ft,omitempty"`
}

// Observation is a single decoded surface report. Temperature and position
// are required; everything else is optional and nil when the station did not
// report it. Observations are treated as immutable once built.
type Observation struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	ObsTime *time.Time `json:"obsTimeUtc,omitempty"`
	Lat     float64    `json:"lat"`
	Lon     float64    `json:"lon"`

	TempC       float64  `json:"tempC"`
	DewpointC   *float64 `json:"dewpointC,omitempty"`
	WindDirDeg  *float64 `json:"windDirDeg,omitempty"`
	WindSpeedKt *float64 `json:"windSpeedKt,omitempty"`
	WindGustKt  *float64 `json:"windGustKt,omitempty"`

	VisibilityMi *float64   `json:"visibilityMi,omitempty"`
	CeilingFt    *float64   `json:"ceilingFt,omitempty"`
	SkyLayers    []SkyLayer `json:"skyConditions,omitempty"`

	AltimeterInHg     *float64 `json:"altimeterInhg,omitempty"`
	PressureMb        *float64 `json:"pressureMb,omitempty"`
	PressureEstimated bool     `json:"pressureIsEstimated,omitempty"`

	RelativeHumidity *float64 `json:"relativeHumidity,omitempty"`
	WeatherCodes     string   `json:"weatherCodes,omitempty"`

	FlightRule FlightRule `json:"flightRule"`
	RawMETAR   string     `json:"rawMetar,omitempty"`
}

// HasWind reports whether the observation carries a usable direction/speed pair.
func (o Observation) HasWind() bool {
	return o.WindDirDeg != nil && o.WindSpeedKt != nil
}

// SkyCoverFraction maps the most opaque reported layer to a 0..1 coverage
// fraction for the station-model sky wedge. A station with no layers is
// treated as clear.
func (o Observation) SkyCoverFraction() float64 {
	frac := 0.0
	for _, layer := range o.SkyLayers {
		if f := coverFraction(layer.Cover); f > frac {
			frac = f
		}
	}
	return frac
}

func coverFraction(cover string) float64 {
	switch cover {
	case "FEW":
		return 0.25
	case "SCT":
		return 0.5
	case "BKN":
		return 0.75
	case "OVC", "VV":
		return 1.0
	default: // CLR, SKC, unknown
		return 0
	}
}

// FahrenheitToCelsius converts a temperature; nil passes through.
func FahrenheitToCelsius(f *float64) *float64 {
	if f == nil {
		return nil
	}
	c := (*f - 32) * 5 / 9
	return &c
}

// CelsiusToFahrenheit converts a temperature value.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}
