// Package jitter разносит во времени события с одинаковой длительностью,
// например истечение записей кэша, созданных в одну секунду.
package jitter

import (
	"math/rand/v2"
	"time"
)

// DefaultFactor — стандартный коэффициент джиттера (10%).
const DefaultFactor = 0.1

// Duration возвращает d, увеличенную на случайную долю в пределах [0, factor).
// Неположительные d и factor возвращаются без изменений.
func Duration(d time.Duration, factor float64) time.Duration {
	if d <= 0 || factor <= 0 {
		return d
	}

	return d + time.Duration(rand.Float64()*factor*float64(d))
}
