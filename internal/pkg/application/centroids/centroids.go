// Package centroids holds the representative position of every neighborhood
// council. The dataset is loaded once and never changes afterwards.
package centroids

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/hackforla/map-service/pkg/types"
)

var ErrCentroidsInvalid = errors.New("invalid centroid data")

// Dataset maps neighborhood council ids to their centroid. It is safe for
// concurrent use since nothing mutates it after loading.
type Dataset struct {
	byNC map[string]types.Centroid
	ids  []string
}

func (d *Dataset) Get(nc string) (types.Centroid, bool) {
	if d == nil {
		return types.Centroid{}, false
	}
	c, ok := d.byNC[nc]
	return c, ok
}

func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.ids)
}

// IDs returns the council ids in ascending order.
func (d *Dataset) IDs() []string {
	ids := make([]string, len(d.ids))
	copy(ids, d.ids)
	return ids
}

// Load reads a dataset from a file, decompressing it if the name ends in .zst
func Load(path string) (*Dataset, error) {
	r, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return Parse(r)
}

// Parse reads comma separated rows of nc,latitude,longitude after a header row.
func Parse(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCentroidsInvalid, err.Error())
	}

	d := &Dataset{
		byNC: map[string]types.Centroid{},
		ids:  []string{},
	}

	for idx, row := range rows {
		if idx == 0 {
			// Skip the CSV header
			continue
		}

		nc := strings.TrimSpace(row[0])
		if nc == "" {
			return nil, fmt.Errorf("%w: empty nc on line %d", ErrCentroidsInvalid, idx+1)
		}

		if _, ok := d.byNC[nc]; ok {
			return nil, fmt.Errorf("%w: duplicate nc %s found on line %d", ErrCentroidsInvalid, nc, idx+1)
		}

		lat, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil || lat < -90 || lat > 90 {
			return nil, fmt.Errorf("%w: bad latitude %q on line %d", ErrCentroidsInvalid, row[1], idx+1)
		}

		lon, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err != nil || lon < -180 || lon > 180 {
			return nil, fmt.Errorf("%w: bad longitude %q on line %d", ErrCentroidsInvalid, row[2], idx+1)
		}

		d.byNC[nc] = types.Centroid{NC: nc, Latitude: lat, Longitude: lon}
		d.ids = append(d.ids, nc)
	}

	sort.Strings(d.ids)

	return d, nil
}

// New builds a dataset from centroids already in memory.
func New(centroids []types.Centroid) (*Dataset, error) {
	d := &Dataset{
		byNC: map[string]types.Centroid{},
		ids:  []string{},
	}

	for _, c := range centroids {
		if _, ok := d.byNC[c.NC]; ok {
			return nil, fmt.Errorf("%w: duplicate nc %s", ErrCentroidsInvalid, c.NC)
		}
		d.byNC[c.NC] = c
		d.ids = append(d.ids, c.NC)
	}

	sort.Strings(d.ids)

	return d, nil
}

func openReader(name string) (io.ReadCloser, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("could not open centroids file: %w", err)
	}

	if strings.HasSuffix(name, ".zst") {
		dec, err := zstd.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("could not create zstd reader: %w", err)
		}

		return &zstdReadCloser{dec: dec, file: file}, nil
	}

	return file, nil
}

type zstdReadCloser struct {
	dec  *zstd.Decoder
	file *os.File
}

func (z *zstdReadCloser) Read(p []byte) (int, error) {
	return z.dec.Read(p)
}

func (z *zstdReadCloser) Close() error {
	z.dec.Close()
	return z.file.Close()
}
