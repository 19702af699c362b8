package evaluate

import (
	"errors"
	"fmt"
	"io"

	"placing/internal/records"
	"placing/internal/streamio"
)

// ErrMissingGroundTruth marks a candidate whose hash has no ground truth.
var ErrMissingGroundTruth = errors.New("hash not in ground truth")

// Point is a latitude/longitude pair in decimal degrees.
type Point struct {
	Lat float64
	Lon float64
}

// GroundTruth maps hash identifiers to their true location. It is immutable
// once loaded.
type GroundTruth struct {
	points  map[string]Point
	ignored int
}

// LoadGroundTruth reads "hash,lat,lon" rows. Rows that do not have exactly
// three fields (headers, blank lines) are ignored; a non-numeric coordinate is
// an error. Later rows for the same hash replace earlier ones.
func LoadGroundTruth(name string, r io.Reader) (*GroundTruth, error) {
	gt := &GroundTruth{points: make(map[string]Point)}
	err := streamio.ForEachLine(r, func(lineNo int, line string) error {
		hash, lat, lon, err := records.ParseGroundTruth(line)
		if errors.Is(err, records.ErrFieldCount) {
			gt.ignored++
			return nil
		}
		if err != nil {
			return records.At(err, name, lineNo, line)
		}
		gt.points[hash] = Point{Lat: lat, Lon: lon}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load ground truth %s: %w", name, err)
	}
	return gt, nil
}

// LoadGroundTruthFile opens path (compressed or plain) and loads it.
func LoadGroundTruthFile(path string) (gt *GroundTruth, err error) {
	r, err := streamio.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := r.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return LoadGroundTruth(path, r)
}

// Lookup returns the true location of hash.
func (g *GroundTruth) Lookup(hash string) (Point, bool) {
	p, ok := g.points[hash]
	return p, ok
}

// Len returns the number of distinct hashes.
func (g *GroundTruth) Len() int { return len(g.points) }

// Ignored returns the number of rows skipped for having the wrong shape.
func (g *GroundTruth) Ignored() int { return g.ignored }
