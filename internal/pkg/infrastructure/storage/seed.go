package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

var createdDateLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

// SeedRequests loads service requests from a semicolon separated file with the
// header srnumber;requesttype;latitude;longitude;nc;createddate. Requests that
// already exist are left untouched.
func SeedRequests(ctx context.Context, s Store, reader io.Reader) error {
	r := csv.NewReader(reader)
	r.Comma = ';'

	rows, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read csv data: %w", err)
	}

	requests := make([]ServiceRequest, 0, len(rows))

	for idx, row := range rows {
		if idx == 0 {
			// Skip the CSV header
			continue
		}

		sr, err := parseServiceRequest(row)
		if err != nil {
			return fmt.Errorf("%w on line %d: %s", ErrBadRecord, idx+1, err.Error())
		}

		requests = append(requests, sr)
	}

	log := logging.GetFromContext(ctx)
	log.Info().Msgf("loaded %d service requests from file", len(requests))

	return s.Save(ctx, requests...)
}

func parseServiceRequest(row []string) (ServiceRequest, error) {
	if len(row) != 6 {
		return ServiceRequest{}, fmt.Errorf("expected 6 fields, got %d", len(row))
	}

	srnumber := strings.TrimSpace(row[0])
	if srnumber == "" {
		return ServiceRequest{}, fmt.Errorf("srnumber is empty")
	}

	lat, err := strconv.ParseFloat(row[2], 64)
	if err != nil || lat < -90 || lat > 90 {
		return ServiceRequest{}, fmt.Errorf("bad latitude %q", row[2])
	}

	lon, err := strconv.ParseFloat(row[3], 64)
	if err != nil || lon < -180 || lon > 180 {
		return ServiceRequest{}, fmt.Errorf("bad longitude %q", row[3])
	}

	created, err := parseCreatedDate(row[5])
	if err != nil {
		return ServiceRequest{}, err
	}

	return ServiceRequest{
		SRNumber:    srnumber,
		RequestType: strings.TrimSpace(row[1]),
		Latitude:    lat,
		Longitude:   lon,
		NC:          strings.TrimSpace(row[4]),
		CreatedDate: created,
	}, nil
}

func parseCreatedDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range createdDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("bad created date %q", s)
}
