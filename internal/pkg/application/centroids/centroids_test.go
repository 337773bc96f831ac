package centroids

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/matryer/is"

	"github.com/hackforla/map-service/pkg/types"
)

func TestParse(t *testing.T) {
	is := is.New(t)

	d, err := Parse(strings.NewReader(centroidsCSV))
	is.NoErr(err)
	is.Equal(d.Len(), 3)
	is.Equal(d.IDs(), []string{"52", "76", "9"})

	c, ok := d.Get("76")
	is.True(ok)
	is.Equal(c, types.Centroid{NC: "76", Latitude: 34.1, Longitude: -118.3})

	_, ok = d.Get("1000")
	is.True(!ok)
}

func TestThatParseFailsOnDuplicates(t *testing.T) {
	is := is.New(t)

	_, err := Parse(strings.NewReader(centroidsWithDuplicatesCSV))
	is.True(errors.Is(err, ErrCentroidsInvalid))
	is.True(strings.Contains(err.Error(), "line 3"))
}

func TestThatParseFailsOnBadLatitude(t *testing.T) {
	is := is.New(t)

	_, err := Parse(strings.NewReader(centroidsWithBadLatitudeCSV))
	is.True(errors.Is(err, ErrCentroidsInvalid))
}

func TestThatParseFailsOnBadLongitude(t *testing.T) {
	is := is.New(t)

	_, err := Parse(strings.NewReader(centroidsWithBadLongitudeCSV))
	is.True(errors.Is(err, ErrCentroidsInvalid))
}

func TestLoadCompressedFile(t *testing.T) {
	is := is.New(t)

	enc, err := zstd.NewWriter(nil)
	is.NoErr(err)
	compressed := enc.EncodeAll([]byte(centroidsCSV), nil)
	is.NoErr(enc.Close())

	path := filepath.Join(t.TempDir(), "centroids.csv.zst")
	is.NoErr(os.WriteFile(path, compressed, 0o600))

	d, err := Load(path)
	is.NoErr(err)
	is.Equal(d.Len(), 3)
}

func TestLoadPlainFile(t *testing.T) {
	is := is.New(t)

	path := filepath.Join(t.TempDir(), "centroids.csv")
	is.NoErr(os.WriteFile(path, []byte(centroidsCSV), 0o600))

	d, err := Load(path)
	is.NoErr(err)
	is.Equal(d.Len(), 3)
}

func TestLoadMissingFile(t *testing.T) {
	is := is.New(t)

	_, err := Load(filepath.Join(t.TempDir(), "nosuchfile.csv"))
	is.True(err != nil)
}

func TestThatIDsCannotBeMutated(t *testing.T) {
	is := is.New(t)

	d, err := New([]types.Centroid{{NC: "b"}, {NC: "a"}})
	is.NoErr(err)

	ids := d.IDs()
	ids[0] = "mutated"

	is.Equal(d.IDs(), []string{"a", "b"})
}

const centroidsCSV string = `nc,latitude,longitude
52,34.05,-118.24
76,34.1,-118.3
9,34.02,-118.4`

const centroidsWithDuplicatesCSV string = `nc,latitude,longitude
52,34.05,-118.24
52,34.1,-118.3`

const centroidsWithBadLatitudeCSV string = `nc,latitude,longitude
52,gurka,-118.24`

const centroidsWithBadLongitudeCSV string = `nc,latitude,longitude
52,34.05,200`
