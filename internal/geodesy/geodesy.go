// Package geodesy computes distances on the WGS84 ellipsoid.
package geodesy

import "github.com/tidwall/geodesic"

// DistanceMeters returns the length of the shortest geodesic between two
// points given in decimal degrees. The result is exact to within nanometres
// for any pair of points, antipodal ones included.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	var s12 float64
	geodesic.WGS84.Inverse(lat1, lon1, lat2, lon2, &s12, nil, nil)
	return s12
}

// DistanceKm is DistanceMeters in kilometres.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	return DistanceMeters(lat1, lon1, lat2, lon2) / 1000
}
