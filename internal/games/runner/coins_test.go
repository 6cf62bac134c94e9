package runner

import (
	"testing"

	"github.com/vovakirdan/lane-runner/internal/events"
)

func TestCoinCollectionOnContact(t *testing.T) {
	cfg := testCfg()
	bus := events.New()
	score := NewScoreManager(cfg.Score, bus)
	cm := NewCoinManager(&cfg, bus, score)
	p := NewPlayer(&cfg, bus)

	collected := 0
	bus.Subscribe(events.EventCoinCollected, func(any) { collected++ })

	// One coin right on the player, one far ahead
	cm.Add(p.Lane(), p.Distance())
	cm.Add(p.Lane(), p.Distance()+20)

	cm.Update(tickDt, p)

	if collected != 1 {
		t.Fatalf("collection events = %d, want 1", collected)
	}
	if score.Coins() != 1 {
		t.Errorf("coins = %d, want 1", score.Coins())
	}
	if got := len(cm.Coins()); got != 1 {
		t.Errorf("coins left on track = %d, want 1", got)
	}
}

func TestCoinAdjacentLaneNotCollected(t *testing.T) {
	cfg := testCfg()
	cm := NewCoinManager(&cfg, nil, nil)
	p := NewPlayer(&cfg, nil)

	cm.Add(p.Lane()+1, p.Distance())
	cm.Update(tickDt, p)

	if len(cm.Coins()) != 1 {
		t.Error("coin in the next lane should survive")
	}
}

func TestMagnetPullsCoinsAcrossLanes(t *testing.T) {
	cfg := testCfg()
	bus := events.New()
	score := NewScoreManager(cfg.Score, bus)
	cm := NewCoinManager(&cfg, bus, score)
	p := NewPlayer(&cfg, bus)

	cm.Add(p.Lane()+1, p.Distance()+3)
	cm.EnableMagnet(p, 8.0)

	// Enough ticks for the attraction to reel the coin in
	for i := 0; i < 30 && len(cm.Coins()) > 0; i++ {
		cm.Update(tickDt, p)
	}

	if score.Coins() != 1 {
		t.Errorf("coins collected = %d, want 1 via magnet", score.Coins())
	}
}

func TestMagnetRespectsRadius(t *testing.T) {
	cfg := testCfg()
	cm := NewCoinManager(&cfg, nil, nil)
	p := NewPlayer(&cfg, nil)

	cm.Add(p.Lane(), p.Distance()+6)
	cm.EnableMagnet(p, 3.0)

	cm.Update(tickDt, p)
	if got := cm.Coins()[0].Z; got != p.Distance()+6 {
		t.Errorf("coin outside the radius moved: z = %v", got)
	}
}

func TestMagnetDisableStopsAttraction(t *testing.T) {
	cfg := testCfg()
	cm := NewCoinManager(&cfg, nil, nil)
	p := NewPlayer(&cfg, nil)

	cm.Add(p.Lane(), p.Distance()+4)
	cm.EnableMagnet(p, 10.0)
	cm.Update(tickDt, p)
	moved := cm.Coins()[0].Z

	cm.DisableMagnet()
	if cm.MagnetActive() {
		t.Fatal("magnet should be off")
	}
	cm.Update(tickDt, p)
	if cm.Coins()[0].Z != moved {
		t.Error("coin kept moving after the magnet was disabled")
	}
}

func TestCoinsBehindPlayerArePruned(t *testing.T) {
	cfg := testCfg()
	cm := NewCoinManager(&cfg, nil, nil)
	p := NewPlayer(&cfg, nil)

	cm.Add(p.Lane()+1, -15) // Far behind
	cm.Add(p.Lane()+1, 5)   // Ahead, adjacent lane

	cm.Update(tickDt, p)
	if got := len(cm.Coins()); got != 1 {
		t.Fatalf("coins after prune = %d, want 1", got)
	}
	if cm.Coins()[0].Z != 5 {
		t.Error("wrong coin pruned")
	}
}

func TestAddRowPlacesSpacedCoins(t *testing.T) {
	cfg := testCfg()
	cm := NewCoinManager(&cfg, nil, nil)

	cm.AddRow(1, 100, 4, 1.5)
	coins := cm.Coins()
	if len(coins) != 4 {
		t.Fatalf("coins = %d, want 4", len(coins))
	}
	for i, c := range coins {
		if c.LaneX != 1 {
			t.Errorf("coin %d lane = %v, want 1", i, c.LaneX)
		}
		if want := 100 + float64(i)*1.5; c.Z != want {
			t.Errorf("coin %d z = %v, want %v", i, c.Z, want)
		}
	}
}

func TestCoinManagerReset(t *testing.T) {
	cfg := testCfg()
	cm := NewCoinManager(&cfg, nil, nil)
	p := NewPlayer(&cfg, nil)

	cm.AddRow(0, 10, 5, 1.0)
	cm.EnableMagnet(p, 5.0)
	cm.Reset()

	if len(cm.Coins()) != 0 {
		t.Error("coins survived reset")
	}
	if cm.MagnetActive() || cm.MagnetRadius() != 0 {
		t.Error("magnet survived reset")
	}
}
