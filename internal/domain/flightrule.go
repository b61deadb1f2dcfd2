package domain

// FlightRule is the categorical ceiling/visibility classification used on
// aviation weather charts.
type FlightRule string

const (
	VFR     FlightRule = "VFR"
	MVFR    FlightRule = "MVFR"
	IFR     FlightRule = "IFR"
	LIFR    FlightRule = "LIFR"
	Unknown FlightRule = "UNKNOWN"
)

// ClassifyFlightRule derives the flight rule from visibility (statute miles)
// and ceiling (feet AGL). The worst condition wins:
//
//	VFR:  visibility > 5 SM and ceiling > 3000 ft
//	MVFR: visibility 3–5 SM or ceiling 1000–3000 ft
//	IFR:  visibility 1–3 SM or ceiling 500–1000 ft
//	LIFR: visibility < 1 SM or ceiling < 500 ft
//
// A missing input is treated as unlimited; when both are missing the rule is
// Unknown.
func ClassifyFlightRule(visibilityMi, ceilingFt *float64) FlightRule {
	if visibilityMi == nil && ceilingFt == nil {
		return Unknown
	}

	visVFR := visibilityMi == nil || *visibilityMi > 5.0
	visMVFR := visibilityMi != nil && *visibilityMi >= 3.0 && *visibilityMi <= 5.0
	visIFR := visibilityMi != nil && *visibilityMi >= 1.0 && *visibilityMi < 3.0
	visLIFR := visibilityMi != nil && *visibilityMi < 1.0

	ceilVFR := ceilingFt == nil || *ceilingFt > 3000
	ceilMVFR := ceilingFt != nil && *ceilingFt >= 1000 && *ceilingFt <= 3000
	ceilIFR := ceilingFt != nil && *ceilingFt >= 500 && *ceilingFt < 1000
	ceilLIFR := ceilingFt != nil && *ceilingFt < 500

	switch {
	case visLIFR || ceilLIFR:
		return LIFR
	case visIFR || ceilIFR:
		return IFR
	case visMVFR || ceilMVFR:
		return MVFR
	case visVFR && ceilVFR:
		return VFR
	}

	// Inputs between category boundaries: fall back to the more restrictive
	// interpretation rather than reporting clear conditions.
	if visibilityMi != nil && *visibilityMi < 3.0 {
		return IFR
	}
	if ceilingFt != nil && *ceilingFt < 1000 {
		return IFR
	}
	return MVFR
}
