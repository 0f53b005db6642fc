package scoring

import "math"

const metersPerSecondToMph = 2.23694

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var sumSq float64
	for _, v := range values {
		sumSq += (v - m) * (v - m)
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

// coefficientOfVariation returns stdev/mean, or 0 when the mean is 0.
func coefficientOfVariation(values []float64) float64 {
	m := mean(values)
	if m == 0 {
		return 0
	}
	return stdDev(values) / m
}

// clampScore rounds and clamps a raw score into the [0,100] integer range.
func clampScore(raw float64) int {
	rounded := int(math.Round(raw))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}

// capPoints clamps a component contribution into [0,cap].
func capPoints(raw, cap float64) int {
	if raw < 0 {
		raw = 0
	}
	if raw > cap {
		raw = cap
	}
	return int(math.Round(raw))
}
