package events

// Named gameplay events. Every cross-system notification in the game goes
// through the bus under one of these names.
const (
	EventGameStarted = "game_started"
	EventGamePaused  = "game_paused"
	EventGameResumed = "game_resumed"
	EventGameOver    = "game_over"

	EventScoreChanged  = "score_changed"
	EventCoinCollected = "coin_collected"
	EventHighScore     = "high_score"

	EventPowerUpActivated   = "powerup_activated"
	EventPowerUpDeactivated = "powerup_deactivated"
	EventHitAbsorbed        = "hit_absorbed"

	EventPlayerJumped  = "player_jumped"
	EventPlayerSlid    = "player_slid"
	EventPlayerCrashed = "player_crashed"
	EventLaneChanged   = "lane_changed"

	EventThemeChanged  = "theme_changed"
	EventThemeSelected = "theme_selected"

	EventSegmentSpawned   = "segment_spawned"
	EventSegmentDespawned = "segment_despawned"

	EventPanelShown  = "panel_shown"
	EventPanelHidden = "panel_hidden"
)

// GameOverData is the immutable snapshot of a finished run.
// Created once at round end and published with EventGameOver.
type GameOverData struct {
	FinalScore       int
	CoinsCollected   int
	DistanceTraveled float64
	IsHighScore      bool
	GameMode         string
	Duration         float64 // Seconds from game start to game over
}

// ScoreChange is the payload of EventScoreChanged.
type ScoreChange struct {
	Score int // New total score
	Delta int // Points added by this change
}

// LaneChange is the payload of EventLaneChanged.
type LaneChange struct {
	From int
	To   int
}

// SegmentInfo is the payload of EventSegmentSpawned/EventSegmentDespawned.
type SegmentInfo struct {
	Index int
	Theme string
}

// PanelInfo is the payload of EventPanelShown/EventPanelHidden.
type PanelInfo struct {
	Name string // e.g. "pause", "game_over"
}
