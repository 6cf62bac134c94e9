package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the hardcoded default configuration.
// Used as the last-resort fallback if the embedded YAML cannot be parsed.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Physics: PhysicsConfig{
			Gravity:       28.0,
			JumpImpulse:   11.0,
			MaxFallSpeed:  22.0,
			BaseSpeed:     14.0,
			SpeedDecay:    1.5,
			SlideDuration: 0.8,
		},
		Lanes: LanesConfig{
			Count:          3,
			Width:          8,
			ChangeCooldown: 0.12,
		},
		Player: PlayerConfig{
			CollectRange: 1.2,
			PickupRange:  1.5,
		},
		Track: TrackConfig{
			SegmentLength:  40.0,
			AheadSegments:  3,
			BehindSegments: 1,
			ObstacleSlots:  4,
			ObstacleChance: 0.35,
			CoinRowChance:  0.5,
			CoinRowLength:  5,
			CoinSpacing:    1.5,
			PowerUpChance:  0.18,
			Themes:         []string{"meadow", "canyon", "ruins", "night"},
			ThemeSegments:  5,
		},
		Score: ScoreConfig{
			PointsPerUnit: 1.0,
			CoinValue:     10,
		},
		PowerUps: PowerUpsConfig{
			AbilityScale: 1.0,
			Durations: PowerUpDurations{
				Magnet:     8.0,
				Shield:     10.0,
				SpeedBoost: 5.0,
				StarPower:  6.0,
				Multiplier: 12.0,
			},
			Magnet: MagnetConfig{
				BaseRange:       5.0,
				RangeMultiplier: 1.0,
			},
			Shield: ShieldConfig{
				PulseRate: 6.0,
			},
			SpeedBoost: SpeedBoostConfig{
				Multiplier: 1.6,
			},
			StarPower: StarPowerConfig{
				FlyHeight:       3.0,
				TransitionSpeed: 5.0,
				CollectRange:    10.0,
			},
			Multiplier: MultiplierConfig{
				Value: 2,
			},
			MysteryWeights: MysteryWeightsConfig{
				Magnet:     25,
				Shield:     20,
				SpeedBoost: 20,
				StarPower:  10,
				Multiplier: 25,
			},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 5000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.8,
				ObstacleBonus:   0.25,
				CoinPenalty:     0.15,
			},
		},
	}
}
