package iem

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// LoadStationNames reads the FAA airport base file (APT_BASE.csv) and maps
// station IDs to "CITY/AIRPORT NAME" display names. Rows without a usable ID
// or name are skipped.
func LoadStationNames(path string, logger *slog.Logger) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open station file: %w", err)
	}
	defer f.Close()

	names, err := decodeStationNames(f, "ICAO_ID", "ARPT_ID", "CITY", "ARPT_NAME")
	if err != nil {
		return nil, fmt.Errorf("parse station file: %w", err)
	}
	logger.Info("loaded station names", "path", path, "count", len(names))
	return names, nil
}

// FetchStationNames pulls ASOS station metadata from the IEM station API.
// Used as a fallback when no local airport file is configured.
func (c *Client) FetchStationNames(ctx context.Context) (map[string]string, error) {
	params := url.Values{
		"network": {"ASOS"},
		"format":  {"csv"},
	}
	fullURL := c.baseURL + stationPath + "?" + params.Encode()

	resp, err := c.doResilient(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		setRequestHeaders(req)
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch station metadata: %w", err)
	}
	defer resp.Body.Close()

	names, err := decodeStationNames(resp.Body, "id", "", "", "name")
	if err != nil {
		return nil, fmt.Errorf("parse station metadata: %w", err)
	}
	c.logger.Info("fetched station names", "count", len(names))
	return names, nil
}

// decodeStationNames handles both station CSV shapes: the FAA file keyed by
// ICAO_ID with ARPT_ID fallback, and the IEM API keyed by id. An empty
// column name disables that lookup.
func decodeStationNames(r io.Reader, idCol, altIDCol, cityCol, nameCol string) (map[string]string, error) {
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

	names := make(map[string]string)
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		id := strings.ToUpper(strings.TrimSpace(fieldAt(row, col, idCol)))
		if id == "" && altIDCol != "" {
			if alt := strings.ToUpper(strings.TrimSpace(fieldAt(row, col, altIDCol))); alt != "" {
				id = NormalizeStationID(alt)
			}
		}
		if id == "" {
			continue
		}

		city := strings.TrimSpace(fieldAt(row, col, cityCol))
		name := strings.TrimSpace(fieldAt(row, col, nameCol))
		switch {
		case city != "" && name != "":
			names[id] = city + "/" + name
		case city != "":
			names[id] = city
		case name != "":
			names[id] = name
		}
	}
	return names, nil
}
