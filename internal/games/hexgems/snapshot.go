package hexgems

// Snapshot contains the complete logical game state for replay and tests.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick      uint64
	Score     int
	Moves     int
	BestChain int
	Shuffles  int
	GameOver  bool
	Paused    bool
	SwapState string

	CursorX, CursorY int
	Selected         bool
	SelectedX        int
	SelectedY        int

	// Gem type per valid cell in row order, -1 for an empty cell.
	Cells       []int
	GemsCreated uint64
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	cells := g.board.Cells()
	data := make([]int, len(cells))
	for i, c := range cells {
		if t, ok := g.board.TypeAt(c); ok {
			data[i] = int(t)
		} else {
			data[i] = -1
		}
	}

	return Snapshot{
		Tick:        g.tick,
		Score:       g.score,
		Moves:       g.moves,
		BestChain:   g.bestChain,
		Shuffles:    g.shuffles,
		GameOver:    g.gameOver,
		Paused:      g.paused,
		SwapState:   g.swaps.State().String(),
		CursorX:     g.cursor.X,
		CursorY:     g.cursor.Y,
		Selected:    g.hasSelection,
		SelectedX:   g.selected.X,
		SelectedY:   g.selected.Y,
		Cells:       data,
		GemsCreated: g.pool.Created(),
	}
}
