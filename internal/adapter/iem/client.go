// Package iem fetches surface observations from the Iowa Environmental
// Mesonet ASOS CSV service and decodes them into domain observations.
package iem

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/mesowx/mesoanalysis/internal/domain"
)

// DefaultBaseURL is the production IEM endpoint.
const DefaultBaseURL = "https://mesonet.agron.iastate.edu"

const (
	asosPath    = "/cgi-bin/request/asos.py"
	stationPath = "/cgi-bin/request/station.py"
)

// Client fetches ASOS network observations over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	backoff    BackoffConfig
	logger     *slog.Logger

	// stationNames maps station ID to a display name, loaded from the FAA
	// airport file or the IEM station API. May be empty.
	stationNames map[string]string
}

// NewClient creates an IEM client. baseURL falls back to the production
// endpoint when empty.
func NewClient(baseURL string, timeout time.Duration, stationNames map[string]string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "iem",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
		backoff: BackoffConfig{
			MaxRetries:      2,
			InitialInterval: 2 * time.Second,
			MaxInterval:     10 * time.Second,
		},
		logger:       logger,
		stationNames: stationNames,
	}
}

// FetchCurrent downloads the past hour of ASOS reports and returns the most
// recent decoded observation per station.
func (c *Client) FetchCurrent(ctx context.Context) ([]domain.Observation, error) {
	params := url.Values{
		"network": {"ASOS"},
		"data":    {"all"},
		"format":  {"onlycomma"},
		"latlon":  {"yes"},
		"hours":   {"1"},
	}
	fullURL := c.baseURL + asosPath + "?" + params.Encode()

	resp, err := c.doResilient(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		setRequestHeaders(req)
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch observations: %w", err)
	}
	defer resp.Body.Close()

	obs, err := c.decodeObservations(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode observations: %w", err)
	}

	c.logger.Info("fetched observations", "count", len(obs))
	return obs, nil
}

func setRequestHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "mesoanalysis/1.0 (surface analysis service)")
	req.Header.Set("Accept", "text/csv,text/plain,*/*")
}

// NormalizeStationID upper-cases the code and adds the K prefix a bare
// three-letter US identifier is missing.
func NormalizeStationID(station string) string {
	station = strings.ToUpper(strings.TrimSpace(station))
	if len(station) == 3 && !strings.HasPrefix(station, "K") {
		return "K" + station
	}
	return station
}

// decodeObservations parses the onlycomma CSV body. Rows are reduced to the
// most recent report per station; rows without a usable position or
// temperature are dropped.
func (c *Client) decodeObservations(r io.Reader) ([]domain.Observation, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// IEM occasionally ships a malformed trailing row.
			c.logger.Warn("skipping malformed csv row", "error", err)
			continue
		}
		rows = append(rows, rec)
	}

	// Most recent first, then first-seen wins per station.
	sort.SliceStable(rows, func(i, j int) bool {
		return fieldAt(rows[i], col, "valid") > fieldAt(rows[j], col, "valid")
	})

	seen := make(map[string]struct{})
	var obs []domain.Observation
	for _, row := range rows {
		station := strings.TrimSpace(fieldAt(row, col, "station"))
		if station == "" {
			continue
		}
		id := NormalizeStationID(station)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		o, ok := c.decodeRow(row, col, id)
		if !ok {
			continue
		}
		obs = append(obs, o)
	}
	return obs, nil
}

func (c *Client) decodeRow(row []string, col map[string]int, id string) (domain.Observation, bool) {
	lat, latOK := parseFloat(fieldAt(row, col, "lat"))
	lon, lonOK := parseFloat(fieldAt(row, col, "lon"))
	if !latOK || !lonOK || (lat == 0 && lon == 0) {
		return domain.Observation{}, false
	}

	tempF := optFloat(fieldAt(row, col, "tmpf"))
	tempC := domain.FahrenheitToCelsius(tempF)
	if tempC == nil {
		// Temperature anchors every analysis field; a report without one
		// is useless downstream.
		return domain.Observation{}, false
	}

	o := domain.Observation{
		ID:          id,
		Name:        id,
		Lat:         round(lat, 4),
		Lon:         round(lon, 4),
		TempC:       round(*tempC, 1),
		DewpointC:   roundOpt(domain.FahrenheitToCelsius(optFloat(fieldAt(row, col, "dwpf"))), 1),
		WindDirDeg:  roundOpt(optFloat(fieldAt(row, col, "drct")), 0),
		WindSpeedKt: roundOpt(optFloat(fieldAt(row, col, "sknt")), 1),
		WindGustKt:  roundOpt(optFloat(fieldAt(row, col, "gust")), 1),

		VisibilityMi: roundOpt(optFloat(fieldAt(row, col, "vsby")), 2),

		AltimeterInHg:    roundOpt(optFloat(fieldAt(row, col, "alti")), 2),
		PressureMb:       roundOpt(optFloat(fieldAt(row, col, "mslp")), 1),
		RelativeHumidity: roundOpt(optFloat(fieldAt(row, col, "relh")), 1),

		WeatherCodes: strings.TrimSpace(fieldAt(row, col, "wxcodes")),
		RawMETAR:     strings.TrimSpace(fieldAt(row, col, "metar")),
	}

	if name, ok := c.stationNames[id]; ok {
		o.Name = name
	}

	if t, ok := parseValidTime(fieldAt(row, col, "valid")); ok {
		o.ObsTime = &t
	}

	// Sky layers 1..4; the ceiling is the lowest broken or overcast layer.
	for i := 1; i <= 4; i++ {
		cover := strings.ToUpper(strings.TrimSpace(fieldAt(row, col, fmt.Sprintf("skyc%d", i))))
		if cover == "" || cover == "M" || cover == "NULL" {
			continue
		}
		base := roundOpt(optFloat(fieldAt(row, col, fmt.Sprintf("skyl%d", i))), 0)
		o.SkyLayers = append(o.SkyLayers, domain.SkyLayer{Cover: cover, BaseFt: base})
		if o.CeilingFt == nil && base != nil && (cover == "BKN" || cover == "OVC") {
			o.CeilingFt = base
		}
	}

	// Stations without a sea-level pressure still get one, estimated from
	// the altimeter setting, so the isobar field keeps its coverage.
	if o.PressureMb == nil && o.AltimeterInHg != nil {
		p := round(*o.AltimeterInHg*33.8639, 1)
		o.PressureMb = &p
		o.PressureEstimated = true
	}

	o.FlightRule = domain.ClassifyFlightRule(o.VisibilityMi, o.CeilingFt)
	return o, true
}

// parseValidTime accepts the "YYYY-MM-DD HH:MM" UTC stamps IEM emits, plus
// RFC 3339 in case the format ever changes.
func parseValidTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, time.UTC); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}

func fieldAt(row []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// optFloat parses an IEM field, treating the "M" and "null" missing-data
// sentinels as absent.
func optFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "m", "null":
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v, err == nil
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

func roundOpt(v *float64, places int) *float64 {
	if v == nil {
		return nil
	}
	r := round(*v, places)
	return &r
}
