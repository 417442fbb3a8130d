package track

// Bounds represents track coordinate boundaries
type Bounds struct {
	MinLat, MinLng float64
	MaxLat, MaxLng float64
}

// North returns the northern latitude bound
func (b Bounds) North() float64 { return b.MaxLat }

// South returns the southern latitude bound
func (b Bounds) South() float64 { return b.MinLat }

// East returns the eastern longitude bound
func (b Bounds) East() float64 { return b.MaxLng }

// West returns the western longitude bound
func (b Bounds) West() float64 { return b.MinLng }

// Extend extends boundaries from given decimal degrees
func (b Bounds) Extend(inc float64) Bounds {
	b.MinLat -= inc
	b.MinLng -= inc
	b.MaxLat += inc
	b.MaxLng += inc
	return b
}

// Contains returns true if the given coordinates are within the boundaries
func (b Bounds) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat &&
		lng >= b.MinLng && lng <= b.MaxLng
}

// Valid returns true if the boundaries are ordered and within WGS84 ranges.
// Antimeridian crossing is not supported.
func (b Bounds) Valid() bool {
	return b.MinLat <= b.MaxLat &&
		b.MinLng <= b.MaxLng &&
		b.MinLat >= -90 && b.MaxLat <= 90 &&
		b.MinLng >= -180 && b.MaxLng <= 180
}
