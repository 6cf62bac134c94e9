package runner

import (
	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/events"
)

// laneUnit is the lateral distance between adjacent lane centers in track
// units. Used when measuring distances between the player and track objects.
const laneUnit = 2.0

// Player is the runner entity. It owns its own movement state: lane,
// altitude, slide, and the forward speed multiplier. Power-up effects mutate
// it only through SetInvincible, SetSpeedMultiplier, and the altitude
// accessors; the multiplier decays back to baseline on its own.
type Player struct {
	cfg *config.RunnerConfig
	bus *events.Bus

	lane        int
	laneTimer   float64 // Cooldown until the next lane change
	altitude    float64 // 0 = ground, positive = above
	verticalVel float64
	grounded    bool
	flying      bool // Gravity suspended (star power flight)
	sliding     bool
	slideTimer  float64
	baseSpeed   float64 // Forward speed before the multiplier, set per tick
	speedMult   float64
	invincible  bool
	distance    float64 // Total track units traveled
}

// NewPlayer creates a player bound to the given config and bus.
// The bus may be nil; movement then happens without notifications.
func NewPlayer(cfg *config.RunnerConfig, bus *events.Bus) *Player {
	p := &Player{cfg: cfg, bus: bus}
	p.Reset()
	return p
}

// Reset returns the player to the starting state: center lane, on the
// ground, baseline speed.
func (p *Player) Reset() {
	p.lane = p.cfg.Lanes.Count / 2
	p.laneTimer = 0
	p.altitude = 0
	p.verticalVel = 0
	p.grounded = true
	p.flying = false
	p.sliding = false
	p.slideTimer = 0
	p.baseSpeed = p.cfg.Physics.BaseSpeed
	p.speedMult = 1.0
	p.invincible = false
	p.distance = 0
}

// Update advances player movement by one tick.
func (p *Player) Update(dt float64) {
	if p.laneTimer > 0 {
		p.laneTimer -= dt
	}

	// Slide runs on its own timer
	if p.sliding {
		p.slideTimer -= dt
		if p.slideTimer <= 0 {
			p.sliding = false
		}
	}

	// Vertical physics, unless an effect holds the player in the air
	if !p.flying && !p.grounded {
		p.verticalVel -= p.cfg.Physics.Gravity * dt
		if p.verticalVel < -p.cfg.Physics.MaxFallSpeed {
			p.verticalVel = -p.cfg.Physics.MaxFallSpeed
		}
		p.altitude += p.verticalVel * dt

		if p.altitude <= 0 {
			p.altitude = 0
			p.verticalVel = 0
			p.grounded = true
		}
	}

	// Speed multiplier decays exponentially back to baseline. This is the
	// player's own behavior: speed boost never resets it on deactivation.
	if p.speedMult != 1.0 {
		decay := p.cfg.Physics.SpeedDecay * dt
		if decay > 1 {
			decay = 1
		}
		p.speedMult += (1.0 - p.speedMult) * decay
		if p.speedMult > 0.999 && p.speedMult < 1.001 {
			p.speedMult = 1.0
		}
	}

	p.distance += p.CurrentSpeed() * dt
}

// Jump starts a jump if the player is on the ground. Jumping cancels a slide.
func (p *Player) Jump() {
	if !p.grounded || p.flying {
		return
	}
	p.grounded = false
	p.verticalVel = p.cfg.Physics.JumpImpulse
	p.sliding = false
	p.slideTimer = 0
	p.publish(events.EventPlayerJumped, nil)
}

// Slide starts a slide if the player is on the ground.
func (p *Player) Slide() {
	if !p.grounded {
		return
	}
	p.sliding = true
	p.slideTimer = p.cfg.Physics.SlideDuration
	p.publish(events.EventPlayerSlid, nil)
}

// MoveLeft shifts the player one lane to the left if possible.
func (p *Player) MoveLeft() {
	p.changeLane(p.lane - 1)
}

// MoveRight shifts the player one lane to the right if possible.
func (p *Player) MoveRight() {
	p.changeLane(p.lane + 1)
}

// changeLane moves to the target lane, respecting bounds and the cooldown.
func (p *Player) changeLane(target int) {
	if p.laneTimer > 0 {
		return
	}
	if target < 0 || target >= p.cfg.Lanes.Count {
		return
	}
	from := p.lane
	p.lane = target
	p.laneTimer = p.cfg.Lanes.ChangeCooldown
	p.publish(events.EventLaneChanged, events.LaneChange{From: from, To: target})
}

// SetInvincible toggles crash immunity. Called by power-up effects.
func (p *Player) SetInvincible(v bool) {
	p.invincible = v
}

// Invincible returns whether the player currently ignores crashes.
func (p *Player) Invincible() bool {
	return p.invincible
}

// SetSpeedMultiplier sets the forward speed multiplier. The value decays
// back toward 1 over time in Update.
func (p *Player) SetSpeedMultiplier(m float64) {
	if m <= 0 {
		return
	}
	p.speedMult = m
}

// SpeedMultiplier returns the current forward speed multiplier.
func (p *Player) SpeedMultiplier() float64 {
	return p.speedMult
}

// SetBaseSpeed sets the pre-multiplier forward speed. The game feeds the
// difficulty-scaled speed in every tick.
func (p *Player) SetBaseSpeed(s float64) {
	p.baseSpeed = s
}

// CurrentSpeed returns the effective forward speed in track units per second.
func (p *Player) CurrentSpeed() float64 {
	return p.baseSpeed * p.speedMult
}

// SetFlying suspends or restores gravity. While flying, altitude is driven
// externally (star power's interpolation).
func (p *Player) SetFlying(v bool) {
	p.flying = v
	p.verticalVel = 0
	if v {
		p.grounded = false
		return
	}
	p.grounded = p.altitude <= 0
}

// SetAltitude sets the player's height above the ground directly.
func (p *Player) SetAltitude(a float64) {
	if a < 0 {
		a = 0
	}
	p.altitude = a
	if a == 0 && !p.flying {
		p.grounded = true
		p.verticalVel = 0
	}
}

// Altitude returns the player's height above the ground.
func (p *Player) Altitude() float64 {
	return p.altitude
}

// Lane returns the player's current lane index.
func (p *Player) Lane() int {
	return p.lane
}

// Sliding returns whether the player is currently sliding.
func (p *Player) Sliding() bool {
	return p.sliding
}

// Grounded returns whether the player is on the ground.
func (p *Player) Grounded() bool {
	return p.grounded
}

// Distance returns the total track units traveled this run.
func (p *Player) Distance() float64 {
	return p.distance
}

// publish sends an event if a bus is attached.
func (p *Player) publish(name string, payload any) {
	if p.bus != nil {
		p.bus.Publish(name, payload)
	}
}
