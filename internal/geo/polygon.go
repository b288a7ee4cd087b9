package geo

// PointInRing tests a point against a polygon ring with the ray-casting
// algorithm: a vertical ray from the point crosses the ring's edges, and
// odd crossing parity means inside. Vertices are [lon, lat] pairs.
func PointInRing(x, y float64, ring [][]float64) bool {
	inside := false
	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		xi, yi := ring[i][0], ring[i][1]
		xj, yj := ring[j][0], ring[j][1]
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

// RingCentroid returns the mean vertex position of a ring as (lon, lat).
func RingCentroid(ring [][]float64) (lon, lat float64) {
	var sumLon, sumLat float64
	for _, vertex := range ring {
		sumLon += vertex[0]
		sumLat += vertex[1]
	}
	n := float64(len(ring))
	return sumLon / n, sumLat / n
}
