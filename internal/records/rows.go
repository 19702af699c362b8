package records

import (
	"math"
	"strconv"
	"strings"
)

// Column positions of the tab-delimited metadata streams.
const (
	ColIdentifier  = 0
	ColTitle       = 6
	ColDescription = 7
	ColUserTags    = 8
	ColMachineTags = 9
	ColLongitude   = 10
	ColLatitude    = 11
)

// Column positions of reference rows.
const (
	ColRefIdentifier = 0
	ColRefHash       = 1
)

// Metadata is the subset of a metadata row the build pipelines use.
// Coordinates are kept verbatim; they are passed through, never interpreted.
type Metadata struct {
	Identifier  string
	Title       string
	Description string
	UserTags    string
	MachineTags string
	Longitude   string
	Latitude    string
}

// Reference is one row of a reference (index) file.
type Reference struct {
	Identifier string
	Hash       string
	// Labels holds the requested label columns, in request order.
	Labels []string
}

// Candidate is one predicted location.
type Candidate struct {
	Hash      string
	Latitude  float64
	Longitude float64
}

// Mapping pairs an identifier with its hash identifier.
type Mapping struct {
	Identifier string
	Hash       string
}

// TrimEOL strips a trailing line terminator ("\n" or "\r\n"). Trailing tabs are
// kept so empty trailing columns still count.
func TrimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

// FirstField returns the text before the first tab without splitting the rest
// of the row.
func FirstField(line string) string {
	if i := strings.IndexByte(line, '\t'); i >= 0 {
		return line[:i]
	}
	return line
}

// ParseMetadata parses a tab-delimited metadata row. Coordinates are only
// required when withCoordinates is set.
func ParseMetadata(line string, withCoordinates bool) (Metadata, error) {
	need := ColMachineTags + 1
	if withCoordinates {
		need = ColLatitude + 1
	}
	fields := strings.SplitN(line, "\t", need+1)
	if len(fields) < need {
		return Metadata{}, shortRow(need, len(fields))
	}
	md := Metadata{
		Identifier:  fields[ColIdentifier],
		Title:       fields[ColTitle],
		Description: fields[ColDescription],
		UserTags:    fields[ColUserTags],
		MachineTags: fields[ColMachineTags],
	}
	if withCoordinates {
		md.Longitude = strings.TrimSpace(fields[ColLongitude])
		md.Latitude = strings.TrimSpace(fields[ColLatitude])
	}
	return md, nil
}

// ParseReference parses a tab-delimited reference row, extracting the given
// label columns.
func ParseReference(line string, labelColumns []int) (Reference, error) {
	need := ColRefHash + 1
	for _, col := range labelColumns {
		if col+1 > need {
			need = col + 1
		}
	}
	fields := strings.Split(line, "\t")
	if len(fields) < need {
		return Reference{}, shortRow(need, len(fields))
	}
	ref := Reference{
		Identifier: fields[ColRefIdentifier],
		Hash:       fields[ColRefHash],
	}
	if len(labelColumns) > 0 {
		ref.Labels = make([]string, len(labelColumns))
		for i, col := range labelColumns {
			ref.Labels[i] = fields[col]
		}
	}
	return ref, nil
}

// ParseMapping parses an "identifier<TAB>hash" row.
func ParseMapping(line string) (Mapping, error) {
	fields := strings.SplitN(line, "\t", 3)
	if len(fields) < 2 {
		return Mapping{}, shortRow(2, len(fields))
	}
	return Mapping{Identifier: fields[0], Hash: fields[1]}, nil
}

// ParseGroundTruth parses a "hash,lat,lon" row.
func ParseGroundTruth(line string) (string, float64, float64, error) {
	fields := strings.Split(strings.TrimRight(line, " \t\r\n"), ",")
	if len(fields) != 3 {
		return "", 0, 0, fieldCount(3, len(fields))
	}
	lat, lon, err := parseLatLon(fields[1], fields[2])
	if err != nil {
		return "", 0, 0, err
	}
	return fields[0], lat, lon, nil
}

// ParseCandidate parses a "hash;lat;lon" row.
func ParseCandidate(line string) (Candidate, error) {
	fields := strings.Split(strings.TrimRight(line, " \t\r\n"), ";")
	if len(fields) != 3 {
		return Candidate{}, fieldCount(3, len(fields))
	}
	lat, lon, err := parseLatLon(fields[1], fields[2])
	if err != nil {
		return Candidate{}, err
	}
	return Candidate{Hash: fields[0], Latitude: lat, Longitude: lon}, nil
}

func parseLatLon(latText, lonText string) (float64, float64, error) {
	lat, err := parseCoordinate("latitude", latText, 90)
	if err != nil {
		return 0, 0, err
	}
	lon, err := parseCoordinate("longitude", lonText, math.MaxFloat64)
	if err != nil {
		return 0, 0, err
	}
	return lat, lon, nil
}

func parseCoordinate(name, text string, limit float64) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > limit {
		return 0, badCoordinate(name, text)
	}
	return v, nil
}
