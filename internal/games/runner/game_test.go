package runner

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/events"
	"github.com/vovakirdan/lane-runner/internal/registry"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

func emptyFrame() core.InputFrame {
	return core.NewInputFrame()
}

func frameWith(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// stepUntilOver runs the game until the run ends or maxTicks pass.
func stepUntilOver(t *testing.T, g *Game, maxTicks int) {
	t.Helper()
	for i := 0; i < maxTicks; i++ {
		if g.Step(emptyFrame()).State.GameOver {
			return
		}
	}
	t.Fatalf("run did not end within %d ticks", maxTicks)
}

func TestModesAreRegistered(t *testing.T) {
	for _, id := range []string{"classic", "timetrial"} {
		if !registry.Exists(id) {
			t.Fatalf("mode %q not registered", id)
		}
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q): %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, want %q", g.ID(), id)
		}
		if g.Title() == "" {
			t.Errorf("mode %q has no title", id)
		}
	}
}

func TestGameRunProgresses(t *testing.T) {
	g := New(ModeClassic)
	g.Reset(testRuntime(42))

	// Stay within the hazard-free opening stretch
	var st core.GameState
	for i := 0; i < 100; i++ {
		st = g.Step(emptyFrame()).State
	}

	if st.Distance <= 0 {
		t.Error("distance did not advance")
	}
	if st.Score <= 0 {
		t.Error("score did not accrue from distance")
	}
	if st.GameOver {
		t.Error("run ended inside the opening stretch")
	}
}

func TestGamePauseFreezesSimulation(t *testing.T) {
	g := New(ModeClassic)
	g.Reset(testRuntime(42))
	g.Step(emptyFrame())

	shown := 0
	hidden := 0
	g.Bus().Subscribe(events.EventPanelShown, func(p any) {
		if p.(events.PanelInfo).Name == "pause" {
			shown++
		}
	})
	g.Bus().Subscribe(events.EventPanelHidden, func(p any) {
		if p.(events.PanelInfo).Name == "pause" {
			hidden++
		}
	})

	g.Step(frameWith(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}

	dist := g.State().Distance
	for i := 0; i < 60; i++ {
		g.Step(emptyFrame())
	}
	if g.State().Distance != dist {
		t.Error("distance advanced while paused")
	}

	g.Step(frameWith(core.ActionPause))
	if g.State().Paused {
		t.Fatal("game should have resumed")
	}
	g.Step(emptyFrame())
	if g.State().Distance <= dist {
		t.Error("distance frozen after resume")
	}

	if shown != 1 || hidden != 1 {
		t.Errorf("pause panel events = %d shown / %d hidden, want 1/1", shown, hidden)
	}
}

func TestGameIsDeterministic(t *testing.T) {
	g1 := New(ModeClassic)
	g2 := New(ModeClassic)
	g1.Reset(testRuntime(1234))
	g2.Reset(testRuntime(1234))

	for i := 0; i < 3000; i++ {
		s1 := g1.Step(emptyFrame()).State
		s2 := g2.Step(emptyFrame()).State
		if s1 != s2 {
			t.Fatalf("tick %d: states diverged: %+v vs %+v", i, s1, s2)
		}
	}
}

func TestGameOverOnCrash(t *testing.T) {
	g := New(ModeClassic)
	g.Reset(testRuntime(7))

	crashed := 0
	overs := 0
	gameOverPanels := 0
	g.Step(emptyFrame())
	g.Bus().Subscribe(events.EventPlayerCrashed, func(any) { crashed++ })
	g.Bus().Subscribe(events.EventGameOver, func(any) { overs++ })
	g.Bus().Subscribe(events.EventPanelShown, func(p any) {
		if p.(events.PanelInfo).Name == "game_over" {
			gameOverPanels++
		}
	})

	stepUntilOver(t, g, 60000)

	if crashed != 1 || overs != 1 || gameOverPanels != 1 {
		t.Errorf("events: crashed=%d over=%d panel=%d, want 1 each", crashed, overs, gameOverPanels)
	}

	data := g.GameOver()
	if data == nil {
		t.Fatal("no game-over snapshot")
	}
	if data.GameMode != "classic" {
		t.Errorf("mode = %q", data.GameMode)
	}
	if data.DistanceTraveled <= 0 || data.Duration <= 0 {
		t.Errorf("snapshot = %+v, want positive distance and duration", *data)
	}
	if data.FinalScore != g.State().Score {
		t.Errorf("snapshot score %d != state score %d", data.FinalScore, g.State().Score)
	}

	// Further steps are inert
	st := g.State()
	g.Step(frameWith(core.ActionJump))
	if g.State() != st {
		t.Error("state moved after game over")
	}
}

func TestGameHighScoreHook(t *testing.T) {
	g := New(ModeClassic)
	g.SetHighScoreFunc(func(mode string, score int) bool {
		return mode == "classic" && score >= 0
	})
	g.Reset(testRuntime(7))

	highs := 0
	g.Step(emptyFrame())
	g.Bus().Subscribe(events.EventHighScore, func(any) { highs++ })

	stepUntilOver(t, g, 60000)

	if data := g.GameOver(); data == nil || !data.IsHighScore {
		t.Error("snapshot should be flagged as a high score")
	}
	if highs != 1 {
		t.Errorf("high-score events = %d, want 1", highs)
	}
}

func TestGameResetStartsFresh(t *testing.T) {
	g := New(ModeClassic)
	g.Reset(testRuntime(7))
	g.Step(emptyFrame())
	stepUntilOver(t, g, 60000)

	g.Reset(testRuntime(8))
	st := g.State()
	if st.GameOver || st.Score != 0 || st.Distance != 0 || st.Coins != 0 {
		t.Errorf("state after reset = %+v", st)
	}
	if g.GameOver() != nil {
		t.Error("stale game-over snapshot after reset")
	}
	if g.Bus().SubscriberCount(events.EventGameOver) != 0 {
		t.Error("stale subscribers survived reset")
	}
}

func TestGamePickupActivatesEffect(t *testing.T) {
	g := New(ModeClassic)
	g.Reset(testRuntime(42))
	g.Step(emptyFrame())

	// Drop a shield pickup right in front of the runner
	seg := g.track.Segments()[0]
	seg.Pickups = append(seg.Pickups, Pickup{
		Lane: g.player.Lane(),
		Z:    g.player.Distance() + 0.3,
		Type: PowerUpShield,
	})

	g.Step(emptyFrame())
	if g.powerups.ActiveType() != PowerUpShield {
		t.Errorf("active = %v, want shield after pickup", g.powerups.ActiveType())
	}
	if !g.player.Invincible() {
		t.Error("shield pickup should grant invincibility")
	}
}

func TestGameShieldAbsorbsCrash(t *testing.T) {
	g := New(ModeClassic)
	g.Reset(testRuntime(42))
	g.Step(emptyFrame())

	g.powerups.Activate(PowerUpShield)

	seg := g.track.Segments()[0]
	seg.Obstacles = append(seg.Obstacles, Obstacle{
		Lane: g.player.Lane(),
		Z:    g.player.Distance() + 0.3,
		Kind: ObstacleBlock,
	})
	idx := len(seg.Obstacles) - 1

	g.Step(emptyFrame())

	if g.State().GameOver {
		t.Fatal("shielded crash ended the run")
	}
	if !seg.Obstacles[idx].Destroyed {
		t.Error("absorbed obstacle should be destroyed")
	}
	if g.powerups.ActiveType() != PowerUpNone {
		t.Error("shield should pop after absorbing the hit")
	}
	if g.player.Invincible() {
		t.Error("invincibility should end with the shield")
	}
}

func TestTimeTrialEndsOnBudget(t *testing.T) {
	// A clean track so the time budget, not a crash, ends the run
	cfg := config.DefaultRunnerConfig()
	cfg.Track.ObstacleChance = 0
	cfg.Track.PowerUpChance = 0
	data, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "runner.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })

	g := New(ModeTimeTrial)
	g.Reset(testRuntime(1))
	g.Step(emptyFrame())

	stepUntilOver(t, g, 60*125)

	data2 := g.GameOver()
	if data2 == nil {
		t.Fatal("no game-over snapshot")
	}
	if data2.GameMode != "timetrial" {
		t.Errorf("mode = %q", data2.GameMode)
	}
	if data2.Duration < timeTrialDuration-1 {
		t.Errorf("run lasted %vs, want the full %vs budget", data2.Duration, timeTrialDuration)
	}
}

func TestGameRenderDoesNotPanic(t *testing.T) {
	g := New(ModeClassic)
	g.Reset(testRuntime(42))

	scr := core.NewScreen(80, 24)
	for i := 0; i < 200; i++ {
		g.Step(emptyFrame())
		g.Render(scr)
	}

	g.Step(frameWith(core.ActionPause))
	g.Render(scr)
}
