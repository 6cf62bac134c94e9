// Package runner implements the lane-runner gameplay core: a three-lane
// endless runner with coins, power-ups, and procedural track segments.
// The package contains pure game logic driven by fixed simulation ticks;
// the platform layer handles input mapping, timing, and display.
package runner

import (
	"fmt"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/events"
	"github.com/vovakirdan/lane-runner/internal/registry"
)

// GameMode selects the win condition of a run.
type GameMode string

const (
	// ModeClassic runs until the player crashes.
	ModeClassic GameMode = "classic"
	// ModeTimeTrial runs until a fixed time budget is spent.
	ModeTimeTrial GameMode = "timetrial"
)

// timeTrialDuration is the time budget of a time-trial run in seconds.
const timeTrialDuration = 120.0

// Visual characters for rendering
const (
	PlayerChar   = '◆'
	PlayerSlide  = '▬'
	CoinChar     = 'o'
	JumpableChar = '▄'
	DuckableChar = '▀'
	BlockChar    = '█'
	LaneChar     = '│'
	GroundChar   = '═'
)

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	switch preset {
	case "easy":
		difficultyPreset = config.DifficultyEasy
	case "normal":
		difficultyPreset = config.DifficultyNormal
	case "hard":
		difficultyPreset = config.DifficultyHard
	case "fixed":
		difficultyPreset = config.DifficultyFixed
	default:
		difficultyPreset = "" // Use config default
	}
}

// Game implements the lane runner logic for one mode.
type Game struct {
	mode    GameMode
	runtime core.RuntimeConfig
	cfg     config.RunnerConfig

	bus        *events.Bus
	player     *Player
	coins      *CoinManager
	score      *ScoreManager
	track      *Track
	powerups   *PowerUpController
	difficulty *config.DifficultyManager

	tickCount int
	timeLeft  float64 // Time trial budget, unused in classic
	started   bool    // Whether EventGameStarted was published this run
	gameOver  bool
	paused    bool
	over      *events.GameOverData

	// highScoreCheck reports whether a score beats the stored best.
	// Injected by the platform; nil means no high-score detection.
	highScoreCheck func(mode string, score int) bool
}

// New creates a game instance for the given mode. The event bus lives as
// long as the instance; Reset clears it at every run boundary.
func New(mode GameMode) *Game {
	return &Game{
		mode: mode,
		bus:  events.New(),
	}
}

// ID returns the unique identifier for this game mode.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name for this game mode.
func (g *Game) Title() string {
	switch g.mode {
	case ModeTimeTrial:
		return "Lane Runner (Time Trial)"
	default:
		return "Lane Runner"
	}
}

// Bus exposes the event bus so platform collaborators (UI, audio, logging)
// can observe gameplay events. Subscription must happen after Reset: the bus
// is cleared at run boundaries.
func (g *Game) Bus() *events.Bus {
	return g.bus
}

// SetHighScoreFunc injects the high-score check used when building the
// game-over snapshot.
func (g *Game) SetHighScoreFunc(fn func(mode string, score int) bool) {
	g.highScoreCheck = fn
}

// Reset initializes or restarts the run.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	// Load game config
	cfg, err := config.LoadRunner(configPath)
	if err != nil {
		cfg = config.DefaultRunnerConfig()
	}

	// Apply difficulty preset if set
	if difficultyPreset != "" {
		config.ApplyRunnerPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg

	// Stale subscribers from the previous run must not leak into this one
	g.bus.Clear()

	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.player = NewPlayer(&g.cfg, g.bus)
	g.score = NewScoreManager(g.cfg.Score, g.bus)
	g.coins = NewCoinManager(&g.cfg, g.bus, g.score)
	g.track = NewTrack(runtime.Seed, &g.cfg, g.difficulty, g.coins, g.bus)
	g.powerups = NewPowerUpController(&g.cfg.PowerUps, g.player, g.coins, g.score, g.bus, runtime.Seed)

	g.tickCount = 0
	g.timeLeft = timeTrialDuration
	g.started = false
	g.gameOver = false
	g.paused = false
	g.over = nil
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	// The first tick announces the run; subscribers attach after Reset
	if !g.started {
		g.started = true
		g.bus.Publish(events.EventGameStarted, string(g.mode))
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.togglePause()
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++
	dt := g.dt()

	// Player input
	if in.Has(core.ActionLeft) {
		g.player.MoveLeft()
	}
	if in.Has(core.ActionRight) {
		g.player.MoveRight()
	}
	if in.Has(core.ActionJump) {
		g.player.Jump()
	}
	if in.Has(core.ActionSlide) {
		g.player.Slide()
	}

	// Simulation: difficulty-scaled speed, then movement and track flow
	prevDistance := g.player.Distance()
	g.player.SetBaseSpeed(g.difficulty.Speed(g.cfg.Physics.BaseSpeed, g.score.Score(), g.tickCount))
	g.player.Update(dt)
	g.track.Update(g.player.Distance(), g.score.Score(), g.tickCount)
	g.coins.Update(dt, g.player)
	g.powerups.Update(dt)
	g.score.AddDistance(g.player.Distance() - prevDistance)

	// Power-up pickups
	if t := g.track.TakePickup(g.player, g.cfg.Player.PickupRange); t != PowerUpNone {
		g.powerups.Activate(t)
	}

	// Collision resolution
	if obs := g.track.CollisionAt(g.player); obs != nil {
		g.resolveHit(obs)
	}

	// Time trial budget
	if g.mode == ModeTimeTrial && !g.gameOver {
		g.timeLeft -= dt
		if g.timeLeft <= 0 {
			g.timeLeft = 0
			g.finish(false)
		}
	}

	return core.StepResult{State: g.State()}
}

// resolveHit applies the crash rules: a shield absorbs the hit and expires,
// other invincibility plows through the obstacle, anything else ends the run.
func (g *Game) resolveHit(obs *Obstacle) {
	if g.player.Invincible() {
		obs.Destroyed = true
		if g.powerups.ActiveType() == PowerUpShield {
			g.powerups.OnHitAbsorbed()
		}
		return
	}
	g.bus.Publish(events.EventPlayerCrashed, obs.Kind.String())
	g.finish(true)
}

// togglePause flips the pause state and announces the pause panel.
func (g *Game) togglePause() {
	g.paused = !g.paused
	if g.paused {
		g.bus.Publish(events.EventGamePaused, nil)
		g.bus.Publish(events.EventPanelShown, events.PanelInfo{Name: "pause"})
	} else {
		g.bus.Publish(events.EventGameResumed, nil)
		g.bus.Publish(events.EventPanelHidden, events.PanelInfo{Name: "pause"})
	}
}

// finish ends the run and publishes the immutable game-over snapshot.
func (g *Game) finish(crashed bool) {
	if g.gameOver {
		return
	}
	g.gameOver = true

	// Active effects must not outlive the run
	g.powerups.Deactivate()

	data := events.GameOverData{
		FinalScore:       g.score.Score(),
		CoinsCollected:   g.score.Coins(),
		DistanceTraveled: g.player.Distance(),
		GameMode:         string(g.mode),
		Duration:         float64(g.tickCount) * g.dt(),
	}
	if g.highScoreCheck != nil {
		data.IsHighScore = g.highScoreCheck(string(g.mode), data.FinalScore)
	}
	g.over = &data

	if data.IsHighScore {
		g.bus.Publish(events.EventHighScore, data.FinalScore)
	}
	g.bus.Publish(events.EventGameOver, data)
	g.bus.Publish(events.EventPanelShown, events.PanelInfo{Name: "game_over"})
	_ = crashed
}

// GameOver returns the run snapshot, or nil while the run is live.
func (g *Game) GameOver() *events.GameOverData {
	return g.over
}

// dt returns the fixed tick duration in seconds.
func (g *Game) dt() float64 {
	rate := g.runtime.TickRate
	if rate <= 0 {
		rate = 60
	}
	return 1.0 / float64(rate)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score.Score(),
		Coins:    g.score.Coins(),
		Distance: g.player.Distance(),
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Register the game modes with the registry
func init() {
	registry.Register(string(ModeClassic), func() registry.Game {
		return New(ModeClassic)
	})
	registry.Register(string(ModeTimeTrial), func() registry.Game {
		return New(ModeTimeTrial)
	})
}

// Rendering maps the track ahead of the player onto screen rows: the player
// runs near the bottom and the generated track scrolls toward them.

const visibleAhead = 30.0 // Track units shown above the player row

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	laneW := g.cfg.Lanes.Width
	lanes := g.cfg.Lanes.Count
	trackW := lanes*laneW + 1
	offsetX := (dst.Width() - trackW) / 2
	groundY := dst.Height() - 3
	topY := 2

	// Lane separators
	for lane := 0; lane <= lanes; lane++ {
		dst.DrawVLine(offsetX+lane*laneW, topY, groundY-topY+1, LaneChar)
	}
	dst.DrawHLine(offsetX, groundY+1, trackW, GroundChar)

	rowZ := func(z float64) (int, bool) {
		row := groundY - int((z-g.player.Distance())/visibleAhead*float64(groundY-topY))
		return row, row >= topY && row <= groundY
	}
	laneX := func(lane float64) int {
		return offsetX + int(lane*float64(laneW)) + laneW/2
	}

	// Obstacles and pickups
	for _, seg := range g.track.Segments() {
		for _, o := range seg.Obstacles {
			if o.Destroyed {
				continue
			}
			if row, ok := rowZ(o.Z); ok {
				dst.SetColor(laneX(float64(o.Lane)), row, obstacleGlyph(o.Kind), core.ColorBrightRed)
			}
		}
		for _, pk := range seg.Pickups {
			if pk.Taken {
				continue
			}
			if row, ok := rowZ(pk.Z); ok {
				dst.SetColor(laneX(float64(pk.Lane)), row, pk.Type.Glyph(), core.ColorBrightCyan)
			}
		}
	}

	// Coins
	for _, c := range g.coins.Coins() {
		if row, ok := rowZ(c.Z); ok {
			dst.SetColor(laneX(c.LaneX), row, CoinChar, core.ColorGold)
		}
	}

	// Player, lifted by altitude
	g.drawPlayer(dst, laneX, groundY)

	g.drawHUD(dst)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.gameOver {
		g.drawGameOver(dst)
	}
}

// drawPlayer renders the runner and the shield bubble.
func (g *Game) drawPlayer(dst *core.Screen, laneX func(float64) int, groundY int) {
	x := laneX(float64(g.player.Lane()))
	y := groundY - int(g.player.Altitude()+0.5)

	ch := PlayerChar
	if g.player.Sliding() {
		ch = PlayerSlide
	}
	color := core.ColorBrightWhite
	if g.player.Invincible() {
		color = core.ColorBrightYellow
	}
	dst.SetColor(x, y, ch, color)

	// Shield bubble
	if shield, ok := g.powerups.Effect(PowerUpShield).(*ShieldEffect); ok && shield.BubbleVisible() {
		dst.SetColor(x-1, y, '(', core.ColorBrightBlue)
		dst.SetColor(x+1, y, ')', core.ColorBrightBlue)
	}
}

// drawHUD renders the status line at the top of the screen.
func (g *Game) drawHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" Score: %d  Coins: %d  Dist: %dm ",
		g.score.Score(), g.score.Coins(), int(g.player.Distance()))
	dst.DrawText(2, 0, hud)

	right := fmt.Sprintf(" %s ", g.track.Theme())
	if g.mode == ModeTimeTrial {
		right = fmt.Sprintf(" %s  %.0fs ", g.track.Theme(), g.timeLeft)
	}
	dst.DrawText(dst.Width()-len(right)-2, 0, right)

	if t := g.powerups.ActiveType(); t != PowerUpNone {
		status := fmt.Sprintf(" %s %.1fs ", t, g.powerups.Remaining())
		dst.DrawTextColor(2, 1, status, core.ColorBrightGreen)
	}
}

// drawGameOver renders the end-of-run panel.
func (g *Game) drawGameOver(dst *core.Screen) {
	sub := fmt.Sprintf("Score: %d  |  Press R to restart", g.score.Score())
	title := "GAME OVER"
	if g.over != nil && g.over.IsHighScore {
		title = "NEW HIGH SCORE!"
	}
	if g.mode == ModeTimeTrial {
		title = "TIME!"
		if g.over != nil && g.over.IsHighScore {
			title = "TIME! NEW BEST"
		}
	}
	g.drawCenteredMessage(dst, title, sub)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	titleX := boxX + (boxW-len(title))/2
	dst.DrawText(titleX, boxY+1, title)

	subtitleX := boxX + (boxW-len(subtitle))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}

// obstacleGlyph returns the display character for an obstacle kind.
func obstacleGlyph(k ObstacleKind) rune {
	switch k {
	case ObstacleJumpable:
		return JumpableChar
	case ObstacleDuckable:
		return DuckableChar
	case ObstacleBlock:
		return BlockChar
	default:
		return '?'
	}
}
