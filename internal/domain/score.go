package domain

import "math"

const (
	MinImportanceScore = 1.0
	MaxImportanceScore = 10.0
	MinConfidenceScore = 0.1
	MaxConfidenceScore = 1.0
)

// ClampImportance forces an importance score into [1.0, 10.0].
func ClampImportance(v float64) float64 {
	return clamp(v, MinImportanceScore, MaxImportanceScore)
}

// ClampConfidence forces a confidence score into [0.1, 1.0].
func ClampConfidence(v float64) float64 {
	return clamp(v, MinConfidenceScore, MaxConfidenceScore)
}

// RoundScore rounds to one decimal place.
func RoundScore(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
