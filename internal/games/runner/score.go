package runner

import (
	"math"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/events"
)

// ScoreManager accumulates the run score from distance and coins and holds
// the global score multiplier set by the multiplier power-up.
type ScoreManager struct {
	cfg config.ScoreConfig
	bus *events.Bus

	points     float64 // Fractional accumulator, Score() floors it
	coins      int
	multiplier int
}

// NewScoreManager creates a score manager. The bus may be nil.
func NewScoreManager(cfg config.ScoreConfig, bus *events.Bus) *ScoreManager {
	sm := &ScoreManager{cfg: cfg, bus: bus}
	sm.Reset()
	return sm
}

// Reset zeroes the score and restores the multiplier to 1.
func (sm *ScoreManager) Reset() {
	sm.points = 0
	sm.coins = 0
	sm.multiplier = 1
}

// AddDistance credits score for track units traveled.
func (sm *ScoreManager) AddDistance(units float64) {
	if units <= 0 {
		return
	}
	sm.addPoints(units * sm.cfg.PointsPerUnit * float64(sm.multiplier))
}

// CollectCoin credits one collected coin.
func (sm *ScoreManager) CollectCoin() {
	sm.coins++
	sm.addPoints(float64(sm.cfg.CoinValue * sm.multiplier))
}

// addPoints adds score and publishes a change when the visible total moves.
func (sm *ScoreManager) addPoints(pts float64) {
	before := sm.Score()
	sm.points += pts
	after := sm.Score()
	if after != before && sm.bus != nil {
		sm.bus.Publish(events.EventScoreChanged, events.ScoreChange{
			Score: after,
			Delta: after - before,
		})
	}
}

// SetScoreMultiplier sets the global score multiplier. Values below 1 are
// clamped to 1.
func (sm *ScoreManager) SetScoreMultiplier(m int) {
	if m < 1 {
		m = 1
	}
	sm.multiplier = m
}

// Multiplier returns the current score multiplier.
func (sm *ScoreManager) Multiplier() int {
	return sm.multiplier
}

// Score returns the visible integer score.
func (sm *ScoreManager) Score() int {
	return int(math.Floor(sm.points))
}

// Coins returns the number of coins collected this run.
func (sm *ScoreManager) Coins() int {
	return sm.coins
}

// coinsOrZero tolerates a missing score manager; the coin subsystem uses it
// when publishing collection events.
func (sm *ScoreManager) coinsOrZero() int {
	if sm == nil {
		return 0
	}
	return sm.coins
}
