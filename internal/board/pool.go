package board

import "github.com/vovakirdan/hexgems/internal/hex"

// Pool is a Factory that hands out gems with sequential IDs and counts how
// many are alive. It has no visual side effects.
type Pool struct {
	nextID uint64
	live   int
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{}
}

// Create returns a new gem of type t.
func (p *Pool) Create(t GemType, _ hex.Coord) *Gem {
	p.nextID++
	p.live++
	return &Gem{ID: p.nextID, Type: t}
}

// Destroy releases g. Nil gems are ignored.
func (p *Pool) Destroy(g *Gem) {
	if g == nil {
		return
	}
	p.live--
}

// Live returns the number of created gems not yet destroyed.
func (p *Pool) Live() int {
	return p.live
}

// Created returns the total number of gems ever created.
func (p *Pool) Created() uint64 {
	return p.nextID
}
