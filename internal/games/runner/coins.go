package runner

import (
	"math"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/events"
)

// coinAttractSpeed is how fast attracted coins fly toward the player,
// in track units per second.
const coinAttractSpeed = 40.0

// Coin is a collectible on the track. LaneX is a fractional lane position so
// attracted coins can drift between lanes toward the player.
type Coin struct {
	LaneX     float64 // Lane position, fractional while being attracted
	Z         float64 // Forward position in track units
	Collected bool
}

// CoinManager owns every coin on the track and the magnet behavior.
// Exactly one power-up effect controls the magnet at a time, so the manager
// keeps a single anchor and radius.
type CoinManager struct {
	cfg   *config.RunnerConfig
	bus   *events.Bus
	score *ScoreManager

	coins []Coin

	magnetOn     bool
	magnetAnchor *Player
	magnetRadius float64
}

// NewCoinManager creates a coin manager. Bus and score may be nil; collection
// then happens without notifications or scoring.
func NewCoinManager(cfg *config.RunnerConfig, bus *events.Bus, score *ScoreManager) *CoinManager {
	return &CoinManager{cfg: cfg, bus: bus, score: score}
}

// Reset removes every coin and disables the magnet.
func (cm *CoinManager) Reset() {
	cm.coins = cm.coins[:0]
	cm.magnetOn = false
	cm.magnetAnchor = nil
	cm.magnetRadius = 0
}

// Add places a single coin on the track.
func (cm *CoinManager) Add(lane int, z float64) {
	cm.coins = append(cm.coins, Coin{LaneX: float64(lane), Z: z})
}

// AddRow places a row of coins along one lane starting at z.
func (cm *CoinManager) AddRow(lane int, z float64, count int, spacing float64) {
	for i := 0; i < count; i++ {
		cm.Add(lane, z+float64(i)*spacing)
	}
}

// EnableMagnet starts attracting coins within radius of the anchor player.
// Calling it again replaces the anchor and radius (a later effect re-applies
// its own parameters).
func (cm *CoinManager) EnableMagnet(anchor *Player, radius float64) {
	if anchor == nil || radius <= 0 {
		return
	}
	cm.magnetOn = true
	cm.magnetAnchor = anchor
	cm.magnetRadius = radius
}

// DisableMagnet stops coin attraction. Safe to call when already disabled.
func (cm *CoinManager) DisableMagnet() {
	cm.magnetOn = false
	cm.magnetAnchor = nil
	cm.magnetRadius = 0
}

// MagnetActive returns whether the magnet is currently attracting coins.
func (cm *CoinManager) MagnetActive() bool {
	return cm.magnetOn
}

// MagnetRadius returns the current attraction radius, 0 when disabled.
func (cm *CoinManager) MagnetRadius() float64 {
	return cm.magnetRadius
}

// Update attracts and collects coins around the player, then drops coins
// that fell behind the run.
func (cm *CoinManager) Update(dt float64, player *Player) {
	if player == nil {
		return
	}

	playerZ := player.Distance()
	playerLane := float64(player.Lane())

	for i := range cm.coins {
		c := &cm.coins[i]
		if c.Collected {
			continue
		}

		d := cm.distanceTo(c, playerLane, playerZ)

		// Magnet pull
		if cm.magnetOn && cm.magnetAnchor == player && d <= cm.magnetRadius && d > 0 {
			step := coinAttractSpeed * dt
			if step > d {
				step = d
			}
			c.LaneX += (playerLane - c.LaneX) / d * step
			c.Z += (playerZ - c.Z) / d * step
			d = cm.distanceTo(c, playerLane, playerZ)
		}

		// Collection
		if d <= cm.cfg.Player.CollectRange && math.Abs(c.LaneX-playerLane) < 0.6 {
			c.Collected = true
			if cm.score != nil {
				cm.score.CollectCoin()
			}
			if cm.bus != nil {
				cm.bus.Publish(events.EventCoinCollected, cm.score.coinsOrZero())
			}
		}
	}

	// Drop collected coins and coins far behind the player
	kept := cm.coins[:0]
	for _, c := range cm.coins {
		if c.Collected || c.Z < playerZ-10 {
			continue
		}
		kept = append(kept, c)
	}
	cm.coins = kept
}

// distanceTo measures the track-space distance between a coin and the player.
func (cm *CoinManager) distanceTo(c *Coin, playerLane, playerZ float64) float64 {
	dx := (c.LaneX - playerLane) * laneUnit
	dz := c.Z - playerZ
	return math.Hypot(dx, dz)
}

// Coins returns the live coins for rendering.
func (cm *CoinManager) Coins() []Coin {
	return cm.coins
}
