package runner

import (
	"math/rand"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/events"
)

// PowerUpType identifies a power-up collectible and its effect.
type PowerUpType int

const (
	PowerUpNone       PowerUpType = iota
	PowerUpMagnet                 // Attract nearby coins
	PowerUpShield                 // Absorb one hit
	PowerUpSpeedBoost             // Run faster, briefly invincible
	PowerUpStarPower              // Fly above the track, mega-magnet
	PowerUpMultiplier             // Multiply all score gains
	PowerUpMysteryBox             // Rerolls into a random concrete power-up
)

// String returns the display name of the power-up type.
func (t PowerUpType) String() string {
	switch t {
	case PowerUpNone:
		return "None"
	case PowerUpMagnet:
		return "Magnet"
	case PowerUpShield:
		return "Shield"
	case PowerUpSpeedBoost:
		return "Boost"
	case PowerUpStarPower:
		return "Star"
	case PowerUpMultiplier:
		return "Multi"
	case PowerUpMysteryBox:
		return "Mystery"
	default:
		return "?"
	}
}

// Glyph returns the display character for a power-up pickup.
func (t PowerUpType) Glyph() rune {
	switch t {
	case PowerUpMagnet:
		return 'M'
	case PowerUpShield:
		return 'S'
	case PowerUpSpeedBoost:
		return '»'
	case PowerUpStarPower:
		return '★'
	case PowerUpMultiplier:
		return 'x'
	case PowerUpMysteryBox:
		return '?'
	default:
		return ' '
	}
}

// Effect is the capability shared by all power-up effects. Implementations
// keep their own parameters and visual state, are constructed once, and are
// reused across many activation cycles.
//
// Contract: Activate with a nil player is a no-op guard. Re-activating an
// already active effect re-applies the latest parameters without registering
// twice with collaborators. Deactivate without a prior Activate is a safe
// no-op, as is deactivating twice. Update runs every tick regardless of the
// active flag; implementations check IsActive themselves before animating.
type Effect interface {
	Type() PowerUpType
	Activate(p *Player)
	Deactivate()
	Update(dt float64)
	IsActive() bool
}

// PowerUpController owns one effect instance per concrete power-up type,
// enforces mutual exclusion, and runs the single active duration timer.
// Effects themselves carry no timers.
type PowerUpController struct {
	player *Player
	bus    *events.Bus
	cfg    *config.PowerUpsConfig
	rng    *rand.Rand

	effects   map[PowerUpType]Effect
	active    PowerUpType
	remaining float64
}

// NewPowerUpController builds the controller and its five effect variants.
// Collaborators may be nil; the affected effects then skip those pieces.
func NewPowerUpController(cfg *config.PowerUpsConfig, player *Player, coins *CoinManager, score *ScoreManager, bus *events.Bus, seed int64) *PowerUpController {
	pc := &PowerUpController{
		player: player,
		bus:    bus,
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(seed)),
		active: PowerUpNone,
	}
	pc.effects = map[PowerUpType]Effect{
		PowerUpMagnet:     NewMagnetEffect(cfg.Magnet, coins, bus),
		PowerUpShield:     NewShieldEffect(cfg.Shield, bus),
		PowerUpSpeedBoost: NewSpeedBoostEffect(cfg.SpeedBoost, bus),
		PowerUpStarPower:  NewStarPowerEffect(cfg.StarPower, coins, bus),
		PowerUpMultiplier: NewMultiplierEffect(cfg.Multiplier, score, bus),
	}
	return pc
}

// Reset deactivates everything and reseeds the mystery roll.
func (pc *PowerUpController) Reset(seed int64) {
	pc.Deactivate()
	pc.rng = rand.New(rand.NewSource(seed))
}

// Activate starts the effect for the given type, deactivating the current
// one first: at most one power-up is ever active. Mystery boxes reroll into
// a concrete type. Picking up the active type again restarts its timer with
// the latest parameters.
func (pc *PowerUpController) Activate(t PowerUpType) {
	if t == PowerUpMysteryBox {
		t = pc.rollMystery()
	}
	eff, ok := pc.effects[t]
	if !ok {
		return
	}

	if pc.active != PowerUpNone && pc.active != t {
		pc.deactivateEffect(pc.active)
	}

	eff.Activate(pc.player)
	pc.active = t
	pc.remaining = pc.duration(t)
}

// Deactivate stops the active effect, if any. Idempotent.
func (pc *PowerUpController) Deactivate() {
	if pc.active == PowerUpNone {
		return
	}
	pc.deactivateEffect(pc.active)
}

// deactivateEffect stops one effect and clears the active slot.
func (pc *PowerUpController) deactivateEffect(t PowerUpType) {
	if eff, ok := pc.effects[t]; ok {
		eff.Deactivate()
	}
	if pc.active == t {
		pc.active = PowerUpNone
		pc.remaining = 0
	}
}

// Update ticks every effect every frame and counts the active duration down.
func (pc *PowerUpController) Update(dt float64) {
	for _, eff := range pc.effects {
		eff.Update(dt)
	}

	if pc.active == PowerUpNone {
		return
	}
	pc.remaining -= dt
	if pc.remaining <= 0 {
		pc.Deactivate()
	}
}

// OnHitAbsorbed routes a crash into the shield: the hit is absorbed and the
// shield deactivates. Does nothing when the shield is not the active effect.
func (pc *PowerUpController) OnHitAbsorbed() {
	if pc.active != PowerUpShield {
		return
	}
	if shield, ok := pc.effects[PowerUpShield].(*ShieldEffect); ok {
		shield.OnHitAbsorbed()
	}
	pc.Deactivate()
}

// ActiveType returns the currently active power-up, or PowerUpNone.
func (pc *PowerUpController) ActiveType() PowerUpType {
	return pc.active
}

// Remaining returns the seconds left on the active effect, 0 when inactive.
func (pc *PowerUpController) Remaining() float64 {
	if pc.remaining < 0 {
		return 0
	}
	return pc.remaining
}

// Effect exposes a variant for collaborators that need its concrete surface
// (the collision path talks to the shield).
func (pc *PowerUpController) Effect(t PowerUpType) Effect {
	return pc.effects[t]
}

// duration returns the configured active time for a type, scaled by the
// ability multiplier.
func (pc *PowerUpController) duration(t PowerUpType) float64 {
	var d float64
	switch t {
	case PowerUpMagnet:
		d = pc.cfg.Durations.Magnet
	case PowerUpShield:
		d = pc.cfg.Durations.Shield
	case PowerUpSpeedBoost:
		d = pc.cfg.Durations.SpeedBoost
	case PowerUpStarPower:
		d = pc.cfg.Durations.StarPower
	case PowerUpMultiplier:
		d = pc.cfg.Durations.Multiplier
	}
	scale := pc.cfg.AbilityScale
	if scale <= 0 {
		scale = 1
	}
	return d * scale
}

// rollMystery selects a concrete power-up based on configured weights.
func (pc *PowerUpController) rollMystery() PowerUpType {
	w := pc.cfg.MysteryWeights
	weights := []struct {
		Type   PowerUpType
		Weight int
	}{
		{PowerUpMagnet, w.Magnet},
		{PowerUpShield, w.Shield},
		{PowerUpSpeedBoost, w.SpeedBoost},
		{PowerUpStarPower, w.StarPower},
		{PowerUpMultiplier, w.Multiplier},
	}

	total := 0
	for _, e := range weights {
		if e.Weight > 0 {
			total += e.Weight
		}
	}
	if total <= 0 {
		return PowerUpMagnet
	}

	roll := pc.rng.Intn(total)
	cumulative := 0
	for _, e := range weights {
		if e.Weight <= 0 {
			continue
		}
		cumulative += e.Weight
		if roll < cumulative {
			return e.Type
		}
	}
	return PowerUpMagnet
}
