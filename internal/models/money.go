package models

import "math"

// Round2 redondea a centavos. Todos los montos persisten ya redondeados.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
