package runner

import (
	"math"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/events"
)

// The five power-up effect variants. Each keeps a non-owning reference to the
// player it was last activated on and tolerates missing collaborators by
// skipping the affected side effect rather than failing the activation.

// publishOn sends a power-up lifecycle event if a bus is attached.
func publishOn(bus *events.Bus, name string, t PowerUpType) {
	if bus != nil {
		bus.Publish(name, t)
	}
}

// MagnetEffect pulls nearby coins toward the player.
type MagnetEffect struct {
	cfg   config.MagnetConfig
	coins *CoinManager
	bus   *events.Bus

	player *Player
	active bool
}

// NewMagnetEffect creates the magnet effect. The coin manager may be nil.
func NewMagnetEffect(cfg config.MagnetConfig, coins *CoinManager, bus *events.Bus) *MagnetEffect {
	return &MagnetEffect{cfg: cfg, coins: coins, bus: bus}
}

// Type implements Effect.
func (e *MagnetEffect) Type() PowerUpType { return PowerUpMagnet }

// IsActive implements Effect.
func (e *MagnetEffect) IsActive() bool { return e.active }

// Activate enables coin attraction anchored to the player. Re-activation
// re-applies the radius with the latest range multiplier.
func (e *MagnetEffect) Activate(p *Player) {
	if p == nil {
		return
	}
	e.player = p
	e.active = true
	e.applyRange()
	publishOn(e.bus, events.EventPowerUpActivated, PowerUpMagnet)
}

// Deactivate clears coin attraction. Safe without a prior Activate.
func (e *MagnetEffect) Deactivate() {
	if !e.active {
		return
	}
	e.active = false
	if e.coins != nil {
		e.coins.DisableMagnet()
	}
	publishOn(e.bus, events.EventPowerUpDeactivated, PowerUpMagnet)
}

// Update implements Effect. The magnet has no per-frame animation; the coin
// manager does the actual attraction work.
func (e *MagnetEffect) Update(float64) {}

// SetRangeMultiplier adjusts the attraction range. Takes effect immediately
// when the magnet is already active.
func (e *MagnetEffect) SetRangeMultiplier(m float64) {
	if m <= 0 {
		return
	}
	e.cfg.RangeMultiplier = m
	if e.active {
		e.applyRange()
	}
}

// Range returns the effective attraction radius.
func (e *MagnetEffect) Range() float64 {
	return e.cfg.BaseRange * e.cfg.RangeMultiplier
}

// applyRange pushes the current radius to the coin subsystem.
func (e *MagnetEffect) applyRange() {
	if e.coins != nil && e.player != nil {
		e.coins.EnableMagnet(e.player, e.Range())
	}
}

// ShieldEffect makes the player invincible until one hit is absorbed or the
// duration runs out. The bubble is the shield's visual; the renderer reads
// its visibility and pulse.
type ShieldEffect struct {
	cfg config.ShieldConfig
	bus *events.Bus

	player        *Player
	active        bool
	bubbleVisible bool
	pulsePhase    float64
	hitsAbsorbed  int
}

// NewShieldEffect creates the shield effect.
func NewShieldEffect(cfg config.ShieldConfig, bus *events.Bus) *ShieldEffect {
	return &ShieldEffect{cfg: cfg, bus: bus}
}

// Type implements Effect.
func (e *ShieldEffect) Type() PowerUpType { return PowerUpShield }

// IsActive implements Effect.
func (e *ShieldEffect) IsActive() bool { return e.active }

// Activate grants invincibility and shows the bubble.
func (e *ShieldEffect) Activate(p *Player) {
	if p == nil {
		return
	}
	e.player = p
	e.active = true
	e.bubbleVisible = true
	e.pulsePhase = 0
	p.SetInvincible(true)
	publishOn(e.bus, events.EventPowerUpActivated, PowerUpShield)
}

// Deactivate clears invincibility and hides the bubble.
func (e *ShieldEffect) Deactivate() {
	if !e.active {
		return
	}
	e.active = false
	e.bubbleVisible = false
	if e.player != nil {
		e.player.SetInvincible(false)
	}
	publishOn(e.bus, events.EventPowerUpDeactivated, PowerUpShield)
}

// Update animates the bubble pulse while the shield is up.
func (e *ShieldEffect) Update(dt float64) {
	if !e.active {
		return
	}
	e.pulsePhase += e.cfg.PulseRate * dt
	if e.pulsePhase > 2*math.Pi {
		e.pulsePhase -= 2 * math.Pi
	}
}

// OnHitAbsorbed records the absorbed hit. The collision path calls this and
// then deactivates the shield through the controller.
func (e *ShieldEffect) OnHitAbsorbed() {
	if !e.active {
		return
	}
	e.hitsAbsorbed++
	publishOn(e.bus, events.EventHitAbsorbed, PowerUpShield)
}

// BubbleVisible returns whether the bubble visual should be drawn.
func (e *ShieldEffect) BubbleVisible() bool { return e.bubbleVisible }

// PulsePhase returns the bubble animation phase in radians.
func (e *ShieldEffect) PulsePhase() float64 { return e.pulsePhase }

// HitsAbsorbed returns how many hits this shield instance has absorbed.
func (e *ShieldEffect) HitsAbsorbed() int { return e.hitsAbsorbed }

// SpeedBoostEffect raises the player's forward speed and grants
// invincibility while it lasts.
type SpeedBoostEffect struct {
	cfg config.SpeedBoostConfig
	bus *events.Bus

	player *Player
	active bool
}

// NewSpeedBoostEffect creates the speed boost effect.
func NewSpeedBoostEffect(cfg config.SpeedBoostConfig, bus *events.Bus) *SpeedBoostEffect {
	return &SpeedBoostEffect{cfg: cfg, bus: bus}
}

// Type implements Effect.
func (e *SpeedBoostEffect) Type() PowerUpType { return PowerUpSpeedBoost }

// IsActive implements Effect.
func (e *SpeedBoostEffect) IsActive() bool { return e.active }

// Activate applies the speed multiplier and invincibility.
func (e *SpeedBoostEffect) Activate(p *Player) {
	if p == nil {
		return
	}
	e.player = p
	e.active = true
	p.SetSpeedMultiplier(e.cfg.Multiplier)
	p.SetInvincible(true)
	publishOn(e.bus, events.EventPowerUpActivated, PowerUpSpeedBoost)
}

// Deactivate clears invincibility only. The speed multiplier is left to
// decay naturally; resetting it is the player's own behavior.
func (e *SpeedBoostEffect) Deactivate() {
	if !e.active {
		return
	}
	e.active = false
	if e.player != nil {
		e.player.SetInvincible(false)
	}
	publishOn(e.bus, events.EventPowerUpDeactivated, PowerUpSpeedBoost)
}

// Update implements Effect. The boost needs no per-frame work.
func (e *SpeedBoostEffect) Update(float64) {}

// StarPowerEffect lifts the player above the track, grants invincibility,
// and attracts coins from a wide radius.
type StarPowerEffect struct {
	cfg   config.StarPowerConfig
	coins *CoinManager
	bus   *events.Bus

	player        *Player
	active        bool
	startAltitude float64
}

// NewStarPowerEffect creates the star power effect. The coin manager may be nil.
func NewStarPowerEffect(cfg config.StarPowerConfig, coins *CoinManager, bus *events.Bus) *StarPowerEffect {
	return &StarPowerEffect{cfg: cfg, coins: coins, bus: bus}
}

// Type implements Effect.
func (e *StarPowerEffect) Type() PowerUpType { return PowerUpStarPower }

// IsActive implements Effect.
func (e *StarPowerEffect) IsActive() bool { return e.active }

// Activate starts flight. Records the starting altitude so deactivation can
// return the player there; re-activation keeps the original start.
func (e *StarPowerEffect) Activate(p *Player) {
	if p == nil {
		return
	}
	wasActive := e.active
	e.player = p
	e.active = true
	if !wasActive {
		e.startAltitude = p.Altitude()
	}
	p.SetInvincible(true)
	p.SetFlying(true)
	if e.coins != nil {
		e.coins.EnableMagnet(p, e.cfg.CollectRange)
	}
	publishOn(e.bus, events.EventPowerUpActivated, PowerUpStarPower)
}

// Deactivate ends flight: invincibility and the mega-magnet are cleared and
// the altitude is reset to where the flight began, stopping any drift.
func (e *StarPowerEffect) Deactivate() {
	if !e.active {
		return
	}
	e.active = false
	if e.coins != nil {
		e.coins.DisableMagnet()
	}
	if e.player != nil {
		e.player.SetInvincible(false)
		e.player.SetAltitude(e.startAltitude)
		e.player.SetFlying(false)
	}
	publishOn(e.bus, events.EventPowerUpDeactivated, PowerUpStarPower)
}

// Update interpolates the altitude toward the flight height with exponential
// smoothing: each tick covers transitionSpeed*dt of the remaining gap.
func (e *StarPowerEffect) Update(dt float64) {
	if !e.active || e.player == nil {
		return
	}
	target := e.startAltitude + e.cfg.FlyHeight
	next := core.Lerp(e.player.Altitude(), target, e.cfg.TransitionSpeed*dt)
	e.player.SetAltitude(next)
}

// MultiplierEffect multiplies every score gain.
type MultiplierEffect struct {
	cfg   config.MultiplierConfig
	score *ScoreManager
	bus   *events.Bus

	player *Player
	active bool
}

// NewMultiplierEffect creates the score multiplier effect. The score manager
// may be nil.
func NewMultiplierEffect(cfg config.MultiplierConfig, score *ScoreManager, bus *events.Bus) *MultiplierEffect {
	return &MultiplierEffect{cfg: cfg, score: score, bus: bus}
}

// Type implements Effect.
func (e *MultiplierEffect) Type() PowerUpType { return PowerUpMultiplier }

// IsActive implements Effect.
func (e *MultiplierEffect) IsActive() bool { return e.active }

// Activate applies the configured multiplier to the score subsystem.
func (e *MultiplierEffect) Activate(p *Player) {
	if p == nil {
		return
	}
	e.player = p
	e.active = true
	if e.score != nil {
		v := e.cfg.Value
		if v < 1 {
			v = 1
		}
		e.score.SetScoreMultiplier(v)
	}
	publishOn(e.bus, events.EventPowerUpActivated, PowerUpMultiplier)
}

// Deactivate resets the score multiplier to 1.
func (e *MultiplierEffect) Deactivate() {
	if !e.active {
		return
	}
	e.active = false
	if e.score != nil {
		e.score.SetScoreMultiplier(1)
	}
	publishOn(e.bus, events.EventPowerUpDeactivated, PowerUpMultiplier)
}

// Update implements Effect. The multiplier needs no per-frame work.
func (e *MultiplierEffect) Update(float64) {}
