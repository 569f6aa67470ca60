package utils

// PDF user space runs at 72 points per inch.
const (
	pointsPerInch = 72.0
	mmPerInch     = 25.4
)

func MMToPoints(mm float64) float64 {
	return mm * pointsPerInch / mmPerInch
}

func PointsToMM(pt float64) float64 {
	return pt * mmPerInch / pointsPerInch
}
