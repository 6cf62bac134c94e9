package runner

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/events"
)

// ObstacleKind distinguishes how an obstacle can be avoided.
type ObstacleKind int

const (
	ObstacleJumpable ObstacleKind = iota // Low barrier, jump over it
	ObstacleDuckable                     // Overhead bar, slide under it
	ObstacleBlock                        // Full-height, change lanes
)

// String returns the name of the obstacle kind.
func (k ObstacleKind) String() string {
	switch k {
	case ObstacleJumpable:
		return "jumpable"
	case ObstacleDuckable:
		return "duckable"
	case ObstacleBlock:
		return "block"
	default:
		return "?"
	}
}

// Obstacle is a hazard occupying one lane at one track position.
type Obstacle struct {
	Lane      int
	Z         float64
	Kind      ObstacleKind
	Destroyed bool // Plowed through by an invincible player
}

// Pickup is a power-up collectible placed on the track.
type Pickup struct {
	Lane  int
	Z     float64
	Type  PowerUpType
	Taken bool
}

// Segment is one generated stretch of track.
type Segment struct {
	Index     int
	Theme     string
	Start     float64 // Forward position where the segment begins
	Length    float64
	Obstacles []Obstacle
	Pickups   []Pickup
}

// End returns the forward position where the segment ends.
func (s *Segment) End() float64 {
	return s.Start + s.Length
}

// Track procedurally generates segments ahead of the player and retires them
// behind, announcing each spawn, despawn, and theme change on the bus.
type Track struct {
	cfg        *config.RunnerConfig
	difficulty *config.DifficultyManager
	bus        *events.Bus
	coins      *CoinManager
	rng        *rand.Rand

	segments  []*Segment
	nextIndex int
	theme     string
}

// NewTrack creates a track generator. Bus and coin manager may be nil.
func NewTrack(seed int64, cfg *config.RunnerConfig, diff *config.DifficultyManager, coins *CoinManager, bus *events.Bus) *Track {
	tr := &Track{
		cfg:        cfg,
		difficulty: diff,
		bus:        bus,
		coins:      coins,
	}
	tr.Reset(seed)
	return tr
}

// Reset clears all segments and reseeds generation.
func (t *Track) Reset(seed int64) {
	t.segments = t.segments[:0]
	t.nextIndex = 0
	t.rng = rand.New(rand.NewSource(seed))
	if len(t.cfg.Track.Themes) > 0 {
		t.theme = t.cfg.Track.Themes[0]
		t.publish(events.EventThemeSelected, t.theme)
	}
}

// Theme returns the theme of the most recently spawned segment.
func (t *Track) Theme() string {
	return t.theme
}

// Segments returns the live segments for rendering.
func (t *Track) Segments() []*Segment {
	return t.segments
}

// Update spawns segments ahead of the player and despawns those behind.
// Score and ticks feed difficulty scaling of obstacle density.
func (t *Track) Update(playerZ float64, score int, ticks int) {
	segLen := t.cfg.Track.SegmentLength
	if segLen <= 0 {
		return
	}

	// Spawn until enough track exists ahead
	horizon := playerZ + float64(t.cfg.Track.AheadSegments)*segLen
	for t.frontier() < horizon {
		t.spawnSegment(score, ticks)
	}

	// Despawn segments fully behind the player
	cutoff := playerZ - float64(t.cfg.Track.BehindSegments)*segLen
	kept := t.segments[:0]
	for _, seg := range t.segments {
		if seg.End() < cutoff {
			t.publish(events.EventSegmentDespawned, events.SegmentInfo{Index: seg.Index, Theme: seg.Theme})
			continue
		}
		kept = append(kept, seg)
	}
	t.segments = kept
}

// frontier returns the forward position up to which track has been generated.
func (t *Track) frontier() float64 {
	if len(t.segments) == 0 {
		// Leave a grace stretch with no hazards at the start of a run
		return t.cfg.Track.SegmentLength
	}
	return t.segments[len(t.segments)-1].End()
}

// spawnSegment generates the next segment and its contents.
func (t *Track) spawnSegment(score int, ticks int) {
	start := t.frontier()
	seg := &Segment{
		Index:  t.nextIndex,
		Theme:  t.currentTheme(),
		Start:  start,
		Length: t.cfg.Track.SegmentLength,
	}
	t.nextIndex++

	t.fillObstacles(seg, score, ticks)
	t.fillCoins(seg, score, ticks)
	t.fillPickup(seg)

	t.segments = append(t.segments, seg)
	t.publish(events.EventSegmentSpawned, events.SegmentInfo{Index: seg.Index, Theme: seg.Theme})
}

// currentTheme rotates themes every ThemeSegments segments.
func (t *Track) currentTheme() string {
	themes := t.cfg.Track.Themes
	if len(themes) == 0 {
		return ""
	}
	per := t.cfg.Track.ThemeSegments
	if per <= 0 {
		per = 1
	}
	theme := themes[(t.nextIndex/per)%len(themes)]
	if theme != t.theme {
		t.theme = theme
		t.publish(events.EventThemeChanged, theme)
	}
	return theme
}

// fillObstacles rolls obstacles into the segment's slots, keeping at least
// one passable lane at every slot so the track stays runnable.
func (t *Track) fillObstacles(seg *Segment, score int, ticks int) {
	slots := t.cfg.Track.ObstacleSlots
	if slots <= 0 {
		return
	}
	chance := t.cfg.Track.ObstacleChance
	if t.difficulty != nil {
		chance = t.difficulty.ObstacleChance(chance, score, ticks)
	}

	lanes := t.cfg.Lanes.Count
	slotSpacing := seg.Length / float64(slots+1)

	for slot := 1; slot <= slots; slot++ {
		z := seg.Start + float64(slot)*slotSpacing
		blocked := 0
		for lane := 0; lane < lanes; lane++ {
			if t.rng.Float64() >= chance {
				continue
			}
			// Never wall off the last open lane with a block
			kind := t.rollObstacleKind()
			if kind == ObstacleBlock && blocked == lanes-1 {
				kind = ObstacleJumpable
			}
			if kind == ObstacleBlock {
				blocked++
			}
			seg.Obstacles = append(seg.Obstacles, Obstacle{Lane: lane, Z: z, Kind: kind})
		}
	}
}

// rollObstacleKind picks an obstacle kind, favoring avoidable ones.
func (t *Track) rollObstacleKind() ObstacleKind {
	switch r := t.rng.Float64(); {
	case r < 0.45:
		return ObstacleJumpable
	case r < 0.75:
		return ObstacleDuckable
	default:
		return ObstacleBlock
	}
}

// fillCoins places a coin row in a random lane of the segment.
func (t *Track) fillCoins(seg *Segment, score int, ticks int) {
	if t.coins == nil {
		return
	}
	chance := t.cfg.Track.CoinRowChance
	if t.difficulty != nil {
		chance = t.difficulty.CoinRowChance(chance, score, ticks)
	}
	if t.rng.Float64() >= chance {
		return
	}

	lane := t.rng.Intn(t.cfg.Lanes.Count)
	count := t.cfg.Track.CoinRowLength
	spacing := t.cfg.Track.CoinSpacing
	rowLen := float64(count-1) * spacing
	z := seg.Start + t.rng.Float64()*math.Max(seg.Length-rowLen, 1)
	t.coins.AddRow(lane, z, count, spacing)
}

// fillPickup occasionally places one power-up pickup in the segment.
func (t *Track) fillPickup(seg *Segment) {
	if t.rng.Float64() >= t.cfg.Track.PowerUpChance {
		return
	}
	types := []PowerUpType{
		PowerUpMagnet, PowerUpShield, PowerUpSpeedBoost,
		PowerUpStarPower, PowerUpMultiplier, PowerUpMysteryBox,
	}
	seg.Pickups = append(seg.Pickups, Pickup{
		Lane: t.rng.Intn(t.cfg.Lanes.Count),
		Z:    seg.Start + t.rng.Float64()*seg.Length,
		Type: types[t.rng.Intn(len(types))],
	})
}

// CollisionAt returns the obstacle the player is currently hitting, or nil.
// Jumpable obstacles are cleared above jumpClearance; duckable ones require
// an active slide; blocks are only cleared by flying over them.
func (t *Track) CollisionAt(p *Player) *Obstacle {
	if p == nil {
		return nil
	}
	const (
		hitRange       = 0.8 // Forward tolerance in track units
		jumpClearance  = 1.0
		blockClearance = 2.5
	)

	for _, seg := range t.segments {
		for i := range seg.Obstacles {
			o := &seg.Obstacles[i]
			if o.Destroyed || o.Lane != p.Lane() {
				continue
			}
			if math.Abs(o.Z-p.Distance()) > hitRange {
				continue
			}
			switch o.Kind {
			case ObstacleJumpable:
				if p.Altitude() < jumpClearance {
					return o
				}
			case ObstacleDuckable:
				if !p.Sliding() && p.Altitude() < blockClearance {
					return o
				}
			case ObstacleBlock:
				if p.Altitude() < blockClearance {
					return o
				}
			}
		}
	}
	return nil
}

// TakePickup collects and returns the pickup within range of the player,
// or PowerUpNone when there is nothing to take.
func (t *Track) TakePickup(p *Player, pickupRange float64) PowerUpType {
	if p == nil {
		return PowerUpNone
	}
	for _, seg := range t.segments {
		for i := range seg.Pickups {
			pk := &seg.Pickups[i]
			if pk.Taken || pk.Lane != p.Lane() {
				continue
			}
			if math.Abs(pk.Z-p.Distance()) <= pickupRange {
				pk.Taken = true
				return pk.Type
			}
		}
	}
	return PowerUpNone
}

// publish sends an event if a bus is attached.
func (t *Track) publish(name string, payload any) {
	if t.bus != nil {
		t.bus.Publish(name, payload)
	}
}
