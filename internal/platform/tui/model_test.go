package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hexgems/internal/core"
	"github.com/vovakirdan/hexgems/internal/games/hexgems"
	"github.com/vovakirdan/hexgems/internal/storage"
)

// scriptedGame reports whatever state the test sets.
type scriptedGame struct {
	state  core.GameState
	resets int
	steps  int
	inputs []core.InputFrame
}

func (g *scriptedGame) ID() string    { return "scripted" }
func (g *scriptedGame) Title() string { return "Scripted" }

func (g *scriptedGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{}
}

func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.inputs = append(g.inputs, in.Clone())
	return core.StepResult{State: g.state}
}

func (g *scriptedGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "scripted")
}

func (g *scriptedGame) State() core.GameState { return g.state }

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "tui.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
}

func send(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm, cmd
}

func tick(t *testing.T, m GameModel) GameModel {
	t.Helper()
	m, _ = send(t, m, TickMsg(time.Now()))
	return m
}

func TestGameModelSavesScoreOnce(t *testing.T) {
	store := openStore(t)
	game := &scriptedGame{}
	m := NewGameModel(game, store, testConfig(), "session-1")
	m.Init()

	game.state = core.GameState{Score: 120, Moves: 7, BestChain: 3, GameOver: true}
	m = tick(t, m)
	m = tick(t, m)

	scores, err := store.TopScores("scripted", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 1 {
		t.Fatalf("saved %d scores, want 1", len(scores))
	}
	got := scores[0]
	if got.Score != 120 || got.Moves != 7 || got.BestChain != 3 || got.SessionID != "session-1" {
		t.Errorf("saved %+v", got)
	}

	// Restart starts a fresh game that may be saved again.
	m, _ = send(t, m, runeKey("r"))
	m = tick(t, m)
	if game.resets != 2 {
		t.Errorf("resets = %d, want 2", game.resets)
	}
	game.state = core.GameState{Score: 40, GameOver: true}
	tick(t, m)

	scores, _ = store.TopScores("scripted", 10)
	if len(scores) != 2 {
		t.Errorf("saved %d scores after restart, want 2", len(scores))
	}
}

func TestGameModelSkipsEmptyScore(t *testing.T) {
	store := openStore(t)
	game := &scriptedGame{}
	m := NewGameModel(game, store, testConfig(), "")
	m.Init()

	game.state = core.GameState{GameOver: true}
	tick(t, m)

	if hs, _ := store.HighScore("scripted"); hs != 0 {
		t.Errorf("HighScore = %d, want 0", hs)
	}
}

func TestGameModelQuitSavesUnfinishedGame(t *testing.T) {
	store := openStore(t)
	game := &scriptedGame{}
	m := NewGameModel(game, store, testConfig(), "endless")
	m.Init()

	game.state = core.GameState{Score: 55, Moves: 4}
	m = tick(t, m)

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.IsQuitting() || cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	if m.View() != "" {
		t.Error("View should be empty after quitting")
	}
	if hs, _ := store.HighScore("scripted"); hs != 55 {
		t.Errorf("HighScore = %d, want 55", hs)
	}
}

func TestGameModelInputReachesGame(t *testing.T) {
	game := &scriptedGame{}
	m := NewGameModel(game, nil, testConfig(), "")
	m.Init()

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = tick(t, m)
	tick(t, m)

	if game.steps != 2 {
		t.Fatalf("steps = %d, want 2", game.steps)
	}
	first := game.inputs[0]
	if !first.Has(core.ActionRight) || !first.Has(core.ActionConfirm) {
		t.Error("first frame should carry both key presses")
	}
	if !game.inputs[1].Empty() {
		t.Error("frame should be cleared after each tick")
	}
}

func TestGameModelBackToMenu(t *testing.T) {
	game := &scriptedGame{}
	m := NewGameModel(game, nil, testConfig(), "")
	m.Init()

	// Esc during play is a deselect, not a menu request.
	m = tick(t, m)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("esc while playing should stay in the game")
	}

	game.state.Paused = true
	m = tick(t, m)
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Fatal("esc while paused should return to the menu")
	}
	if cmd != nil {
		t.Error("session models should not quit the program")
	}

	standalone := NewGameModel(&scriptedGame{state: core.GameState{GameOver: true}}, nil, testConfig(), "")
	standalone.standalone = true
	standalone = tick(t, standalone)
	if _, cmd := send(t, standalone, tea.KeyMsg{Type: tea.KeyEsc}); cmd == nil {
		t.Error("standalone models should quit when leaving the game")
	}
}

func TestGameModelHelpFreezesGame(t *testing.T) {
	game := &scriptedGame{}
	m := NewGameModel(game, nil, testConfig(), "")
	m.Init()

	m, _ = send(t, m, runeKey("?"))
	if !strings.Contains(m.View(), "Controls") {
		t.Error("help overlay missing")
	}
	m = tick(t, m)
	if game.steps != 0 {
		t.Error("game should not step while help is shown")
	}

	m, _ = send(t, m, runeKey("x"))
	m = tick(t, m)
	if game.steps != 1 {
		t.Error("closing help should resume the game")
	}
	if !strings.Contains(m.View(), "scripted") {
		t.Error("game view missing after closing help")
	}
}

func TestGameModelScreenshot(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	m := NewGameModel(&scriptedGame{}, nil, testConfig(), "")
	m.Init()
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	path := m.Screenshot()
	if !strings.HasPrefix(path, filepath.Join(home, ".hexgems", "screenshots")) {
		t.Fatalf("screenshot path = %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "scripted") {
		t.Errorf("screenshot = %q", string(data)[:20])
	}
}

func TestGameModelResizeKeepsHexBoard(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	game := hexgems.New()
	m := NewGameModel(game, nil, testConfig(), "")
	m.Init()
	m = tick(t, m)

	before := game.Board()
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if game.Board() != before {
		t.Error("resize should keep the board")
	}

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 20, Height: 8})
	if !strings.Contains(m.View(), "too small") {
		t.Error("tiny terminal should show a warning")
	}
}

func TestGameModelResizeResetsPlainGame(t *testing.T) {
	game := &scriptedGame{}
	m := NewGameModel(game, nil, testConfig(), "")
	m.Init()

	send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if game.resets != 2 {
		t.Errorf("resets = %d, want 2", game.resets)
	}
}
