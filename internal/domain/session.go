package domain

import "time"

// Session — состояние одного посетителя витрины. Живёт только в памяти.
type Session struct {
	ID       string
	Cart     *Cart
	Quiz     *Quiz // nil, если окно квиза закрыто
	LastSeen time.Time
}

func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:       id,
		Cart:     NewCart(),
		LastSeen: now,
	}
}
