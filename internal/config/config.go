// Package config provides YAML-based game configuration loading and
// difficulty management for the runner.
package config

// RunnerConfig contains all tunable parameters for a run.
type RunnerConfig struct {
	Physics    PhysicsConfig    `yaml:"physics"`
	Lanes      LanesConfig      `yaml:"lanes"`
	Player     PlayerConfig     `yaml:"player"`
	Track      TrackConfig      `yaml:"track"`
	Score      ScoreConfig      `yaml:"score"`
	PowerUps   PowerUpsConfig   `yaml:"powerups"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PhysicsConfig defines movement parameters for the player.
type PhysicsConfig struct {
	Gravity       float64 `yaml:"gravity"`        // Altitude units per second squared
	JumpImpulse   float64 `yaml:"jump_impulse"`   // Initial upward velocity on jump
	MaxFallSpeed  float64 `yaml:"max_fall_speed"` // Terminal downward velocity
	BaseSpeed     float64 `yaml:"base_speed"`     // Forward speed in track units per second
	SpeedDecay    float64 `yaml:"speed_decay"`    // Per-second return rate of the speed multiplier to 1
	SlideDuration float64 `yaml:"slide_duration"` // Seconds a slide lasts
}

// LanesConfig defines the lane layout.
type LanesConfig struct {
	Count          int     `yaml:"count"`           // Number of lanes (3 for the classic layout)
	Width          int     `yaml:"width"`           // Screen columns per lane
	ChangeCooldown float64 `yaml:"change_cooldown"` // Seconds between lane changes
}

// PlayerConfig defines player pickup parameters.
type PlayerConfig struct {
	CollectRange float64 `yaml:"collect_range"` // Coin collection distance in track units
	PickupRange  float64 `yaml:"pickup_range"`  // Power-up collection distance in track units
}

// TrackConfig defines procedural segment generation.
type TrackConfig struct {
	SegmentLength  float64  `yaml:"segment_length"`  // Length of one segment in track units
	AheadSegments  int      `yaml:"ahead_segments"`  // Segments kept spawned ahead of the player
	BehindSegments int      `yaml:"behind_segments"` // Segments kept behind before despawning
	ObstacleSlots  int      `yaml:"obstacle_slots"`  // Candidate obstacle positions per segment
	ObstacleChance float64  `yaml:"obstacle_chance"` // Probability an obstacle slot is filled
	CoinRowChance  float64  `yaml:"coin_row_chance"` // Probability a segment carries a coin row
	CoinRowLength  int      `yaml:"coin_row_length"` // Coins per row
	CoinSpacing    float64  `yaml:"coin_spacing"`    // Distance between coins in a row
	PowerUpChance  float64  `yaml:"powerup_chance"`  // Probability a segment carries a pickup
	Themes         []string `yaml:"themes"`          // Theme rotation, in order
	ThemeSegments  int      `yaml:"theme_segments"`  // Segments per theme before rotating
}

// ScoreConfig defines scoring parameters.
type ScoreConfig struct {
	PointsPerUnit float64 `yaml:"points_per_unit"` // Score per track unit traveled
	CoinValue     int     `yaml:"coin_value"`      // Score per collected coin
}

// PowerUpsConfig defines all power-up parameters.
type PowerUpsConfig struct {
	AbilityScale   float64              `yaml:"ability_scale"` // External duration multiplier (character ability)
	Durations      PowerUpDurations     `yaml:"durations"`
	Magnet         MagnetConfig         `yaml:"magnet"`
	Shield         ShieldConfig         `yaml:"shield"`
	SpeedBoost     SpeedBoostConfig     `yaml:"speed_boost"`
	StarPower      StarPowerConfig      `yaml:"star_power"`
	Multiplier     MultiplierConfig     `yaml:"multiplier"`
	MysteryWeights MysteryWeightsConfig `yaml:"mystery_weights"`
}

// PowerUpDurations holds the active time of each power-up in seconds.
type PowerUpDurations struct {
	Magnet     float64 `yaml:"magnet"`
	Shield     float64 `yaml:"shield"`
	SpeedBoost float64 `yaml:"speed_boost"`
	StarPower  float64 `yaml:"star_power"`
	Multiplier float64 `yaml:"multiplier"`
}

// MagnetConfig defines the coin magnet effect.
type MagnetConfig struct {
	BaseRange       float64 `yaml:"base_range"`       // Attraction radius in track units
	RangeMultiplier float64 `yaml:"range_multiplier"` // Scales the base range (character upgrades)
}

// ShieldConfig defines the shield effect.
type ShieldConfig struct {
	PulseRate float64 `yaml:"pulse_rate"` // Bubble pulse animation speed in radians per second
}

// SpeedBoostConfig defines the speed boost effect.
type SpeedBoostConfig struct {
	Multiplier float64 `yaml:"multiplier"` // Forward speed multiplier while boosted
}

// StarPowerConfig defines the star power effect.
type StarPowerConfig struct {
	FlyHeight       float64 `yaml:"fly_height"`       // Altitude gained above the starting altitude
	TransitionSpeed float64 `yaml:"transition_speed"` // Exponential smoothing rate toward target altitude
	CollectRange    float64 `yaml:"collect_range"`    // Mega-magnet attraction radius
}

// MultiplierConfig defines the score multiplier effect.
type MultiplierConfig struct {
	Value int `yaml:"value"` // Integer score multiplier, at least 1
}

// MysteryWeightsConfig defines relative odds when a mystery box rerolls
// into a concrete power-up. Higher means more common.
type MysteryWeightsConfig struct {
	Magnet     int `yaml:"magnet"`
	Shield     int `yaml:"shield"`
	SpeedBoost int `yaml:"speed_boost"`
	StarPower  int `yaml:"star_power"`
	Multiplier int `yaml:"multiplier"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to speed at max difficulty
	ObstacleBonus   float64 `yaml:"obstacle_bonus"`   // Obstacle chance added at max difficulty
	CoinPenalty     float64 `yaml:"coin_penalty"`     // Coin row chance removed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
