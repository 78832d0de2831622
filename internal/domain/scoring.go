package domain

import "math"

// Percentage calcula round(count/games × 100).
// Devuelve 0 si games <= 0: un historial vacío nunca produce NaN ni Inf.
// El resultado se acota a [0, 100].
func Percentage(count, games int) int {
	if games <= 0 || count <= 0 {
		return 0
	}
	if count >= games {
		return 100
	}
	return int(math.Round(float64(count) / float64(games) * 100))
}

// Average calcula sum/games redondeado a 2 decimales. 0 si games <= 0.
func Average(sum float64, games int) float64 {
	if games <= 0 {
		return 0
	}
	return Round2(sum / float64(games))
}

// Round2 redondea a 2 decimales.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}

// Clamp acota v al rango [lo, hi].
func Clamp(lo, hi, v float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Mean2 es la media de dos valores, redondeada a 2 decimales.
func Mean2(a, b float64) float64 {
	return Round2((a + b) / 2)
}

// MeanPct es la media entera de dos porcentajes.
func MeanPct(a, b int) int {
	return int(math.Round(float64(a+b) / 2))
}
