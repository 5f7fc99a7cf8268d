package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Simulation ticks per second
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  100,
		ScreenH:  30,
		TickRate: 30,
	}
}

// TickDuration is the simulated time covered by one Step.
func (c RuntimeConfig) TickDuration() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(c.TickRate)
}

// GameState is the status of the running level as seen by the platform.
type GameState struct {
	Level  string // ID of the level being played
	Placed int    // Items the player currently has on the board
	Ticks  int    // Simulation ticks since the level started
	Won    bool   // Level has been cleared
	Paused bool
}

// LevelClear describes a finished level. It is reported exactly once per
// attempt so the platform can persist it.
type LevelClear struct {
	LevelID     string
	Ticks       int
	ItemsPlaced int
	Elapsed     time.Duration
	Score       int
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State   GameState
	Cleared *LevelClear // non-nil on the tick the level was won
}
