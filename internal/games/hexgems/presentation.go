package hexgems

import (
	"time"

	"github.com/vovakirdan/hexgems/internal/board"
	"github.com/vovakirdan/hexgems/internal/core"
	"github.com/vovakirdan/hexgems/internal/hex"
)

// Animation lengths in ticks (~60fps).
const (
	fallTicks  = 8
	spawnTicks = 6
	flashTicks = 10
)

// motion moves a gem's visual from one cell to another.
type motion struct {
	from   hex.Coord
	to     hex.Coord
	start  uint64
	length uint64
}

// progress returns how far the motion is at tick now, in [0, 1].
func (m motion) progress(now uint64) float64 {
	if m.length == 0 || now < m.start {
		return 1
	}
	return core.ClampF(float64(now-m.start)/float64(m.length), 0, 1)
}

// presentation keeps the tick-based visual state of the board. The board
// itself always holds the final arrangement; motions only affect drawing.
type presentation struct {
	board   *board.Board
	tickDur time.Duration
	now     uint64

	moves   map[uint64]motion    // by gem ID
	spawns  map[uint64]uint64    // gem ID -> start tick
	flashes map[hex.Coord]uint64 // cleared cell -> start tick
}

func newPresentation(b *board.Board, tickDur time.Duration) *presentation {
	return &presentation{
		board:   b,
		tickDur: tickDur,
		moves:   make(map[uint64]motion),
		spawns:  make(map[uint64]uint64),
		flashes: make(map[hex.Coord]uint64),
	}
}

// Snap records a fall. Several waves resolve within one tick, so a gem that
// already started falling this tick keeps its original start cell.
func (p *presentation) Snap(g *board.Gem, from, to hex.Coord) {
	if m, ok := p.moves[g.ID]; ok && m.start == p.now {
		from = m.from
	}
	p.moves[g.ID] = motion{from: from, to: to, start: p.now, length: fallTicks}
}

// AnimateSwap records two gems trading places; the board already holds
// them at their new cells.
func (p *presentation) AnimateSwap(a, b hex.Coord, d time.Duration) {
	length := p.ticks(d)
	if g, ok := p.board.TryGet(a); ok {
		p.moves[g.ID] = motion{from: b, to: a, start: p.now, length: length}
	}
	if g, ok := p.board.TryGet(b); ok {
		p.moves[g.ID] = motion{from: a, to: b, start: p.now, length: length}
	}
}

func (p *presentation) ticks(d time.Duration) uint64 {
	if p.tickDur <= 0 || d <= 0 {
		return 0
	}
	return uint64(d / p.tickDur)
}

func (p *presentation) spawn(g *board.Gem) {
	p.spawns[g.ID] = p.now
}

func (p *presentation) forget(g *board.Gem) {
	delete(p.moves, g.ID)
	delete(p.spawns, g.ID)
}

func (p *presentation) flash(cells []hex.Coord) {
	for _, c := range cells {
		p.flashes[c] = p.now
	}
}

// prune drops finished animations.
func (p *presentation) prune() {
	for id, m := range p.moves {
		if p.now >= m.start+m.length {
			delete(p.moves, id)
		}
	}
	for id, start := range p.spawns {
		if p.now >= start+spawnTicks {
			delete(p.spawns, id)
		}
	}
	for c, start := range p.flashes {
		if p.now >= start+flashTicks {
			delete(p.flashes, c)
		}
	}
}

func (p *presentation) motionOf(g *board.Gem) (motion, bool) {
	m, ok := p.moves[g.ID]
	return m, ok
}

func (p *presentation) spawning(g *board.Gem) bool {
	_, ok := p.spawns[g.ID]
	return ok
}

func (p *presentation) flashing(c hex.Coord) bool {
	_, ok := p.flashes[c]
	return ok
}

// gemFactory creates gems from the pool and starts their spawn animation.
type gemFactory struct {
	pool *board.Pool
	anim *presentation
}

func (f *gemFactory) Create(t board.GemType, c hex.Coord) *board.Gem {
	g := f.pool.Create(t, c)
	f.anim.spawn(g)
	return g
}

func (f *gemFactory) Destroy(g *board.Gem) {
	if g == nil {
		return
	}
	f.pool.Destroy(g)
	f.anim.forget(g)
}
