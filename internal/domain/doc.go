// Package domain models decoded METAR surface observations.
//
// # Data Source
//
// Observations originate from the Iowa Environmental Mesonet (IEM) ASOS CSV
// service at https://mesonet.agron.iastate.edu/cgi-bin/request/asos.py. The
// ingest adapter fetches the last hour of reports for the ASOS network,
// keeps the most recent row per station, and decodes each row into an
// [Observation].
//
// # Conventions
//
// Temperatures arrive in Fahrenheit and are stored in Celsius. Wind
// direction is degrees true in the meteorological "from" sense; speeds and
// gusts are knots. Sea-level pressure is millibars and may be flagged as
// estimated when derived from the altimeter setting. Missing values in the
// source CSV are the sentinels "M", "null", or an empty string, and decode
// to nil pointers here rather than zero values.
//
// Sky cover uses METAR layer codes (CLR, FEW, SCT, BKN, OVC) with optional
// base heights in feet. The ceiling is the lowest broken or overcast layer.
//
// # Flight Rules
//
// Each observation carries a VFR/MVFR/IFR/LIFR classification derived from
// visibility and ceiling by [ClassifyFlightRule], using the standard
// aviation category boundaries (5 SM / 3000 ft, 3 SM / 1000 ft,
// 1 SM / 500 ft). The worst of the two conditions wins.
package domain
