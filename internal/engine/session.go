package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Status is the session's play state.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// Mode selects which assists a session allows.
type Mode string

const (
	// ModeClassic disables undo and power-ups.
	ModeClassic Mode = "classic"
	// ModeFun enables undo, power-ups and hints.
	ModeFun Mode = "fun"
)

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

// Validate returns ErrInvalidArgument for unknown modes.
func (m Mode) Validate() error {
	if m != ModeClassic && m != ModeFun {
		return fmt.Errorf("%w: mode %q", ErrInvalidArgument, string(m))
	}
	return nil
}

// AllowsAssists reports whether undo and power-ups are available.
func (m Mode) AllowsAssists() bool {
	return m == ModeFun
}

// DefaultWinTarget is the tile value that wins a session.
const DefaultWinTarget = 2048

var (
	// ErrNotPlaying is returned by operations attempted on a won or lost
	// session.
	ErrNotPlaying = errors.New("engine: session is not playing")
	// ErrAssistsDisabled is returned for undo and power-ups in classic mode.
	ErrAssistsDisabled = errors.New("engine: assists are disabled in classic mode")
)

// SessionConfig configures a new Session.
type SessionConfig struct {
	Size              GridSize
	Mode              Mode
	Spawn4Probability float64
	WinTarget         int // 0 disables the win check
	HistoryLimit      int // 0 uses HistoryCapacity

	// Rand and IDs are injectable for deterministic sessions. Nil values
	// get a time-seeded source and a fresh counter.
	Rand *rand.Rand
	IDs  IDSource
}

// DefaultSessionConfig returns the standard 4x4 fun-mode configuration.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Size:              Size4,
		Mode:              ModeFun,
		Spawn4Probability: DefaultSpawn4Probability,
		WinTarget:         DefaultWinTarget,
		HistoryLimit:      HistoryCapacity,
	}
}

// MoveOutcome describes a committed (or rejected) move.
type MoveOutcome struct {
	Moved         bool
	ScoreIncrease int
	Spawned       *Tile
	Status        Status
}

// SessionSnapshot is a deep-copied view of a session.
type SessionSnapshot struct {
	Size      GridSize `json:"size"`
	Mode      Mode     `json:"mode"`
	Tiles     []Tile   `json:"tiles"`
	Score     int      `json:"score"`
	Status    Status   `json:"status"`
	HasWon    bool     `json:"hasWon"`
	MaxTile   int      `json:"maxTile"`
	UndoDepth int      `json:"undoDepth"`
	WinTarget int      `json:"winTarget"`
	Matrix    Matrix   `json:"matrix"`
	MoveCount int      `json:"moves"`
}

// Session owns the tile store of one game. It is not safe for concurrent
// use.
type Session struct {
	cfg     SessionConfig
	spawner *Spawner
	history *History

	tiles  []Tile
	score  int
	status Status
	hasWon bool
	moves  int
}

// NewSession validates cfg and starts a game with two spawned tiles.
func NewSession(cfg SessionConfig) (*Session, error) {
	s, err := newSession(cfg)
	if err != nil {
		return nil, err
	}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewSessionFrom starts a session on an existing board. Tile ids must not
// collide with those cfg.IDs will produce. A stuck board starts lost; a board
// already at the win target starts playing with the win latched.
func NewSessionFrom(cfg SessionConfig, tiles []Tile, score int) (*Session, error) {
	if score < 0 {
		return nil, fmt.Errorf("%w: score %d", ErrInvalidArgument, score)
	}
	s, err := newSession(cfg)
	if err != nil {
		return nil, err
	}
	if err := CheckInvariants(tiles, s.cfg.Size); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	stuck, err := IsTerminal(tiles, s.cfg.Size)
	if err != nil {
		return nil, err
	}

	s.tiles = cloneTiles(tiles)
	s.score = score
	s.status = StatusPlaying
	if stuck {
		s.status = StatusLost
	}
	s.hasWon = s.reachedTarget()
	return s, nil
}

func newSession(cfg SessionConfig) (*Session, error) {
	if err := cfg.Size.Validate(); err != nil {
		return nil, err
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeFun
	}
	if err := cfg.Mode.Validate(); err != nil {
		return nil, err
	}
	if cfg.WinTarget < 0 || (cfg.WinTarget > 0 && !isPowerOfTwo(cfg.WinTarget)) {
		return nil, fmt.Errorf("%w: win target %d", ErrInvalidArgument, cfg.WinTarget)
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.IDs == nil {
		cfg.IDs = NewCounter("tile")
	}

	spawner, err := NewSpawner(cfg.Rand, cfg.IDs, cfg.Spawn4Probability)
	if err != nil {
		return nil, err
	}

	return &Session{
		cfg:     cfg,
		spawner: spawner,
		history: NewHistory(cfg.HistoryLimit),
	}, nil
}

// Reset starts a new game with the same configuration. The id source keeps
// counting so identifiers are never reused.
func (s *Session) Reset() error {
	s.tiles = nil
	s.score = 0
	s.status = StatusPlaying
	s.hasWon = false
	s.moves = 0
	s.history.Clear()

	for range 2 {
		tiles, err := s.spawner.Spawn(s.tiles, s.cfg.Size)
		if err != nil {
			return err
		}
		s.tiles = tiles
	}
	return nil
}

// Move resolves a directional move, spawns a tile and updates the status.
// A move that changes nothing returns Moved=false and leaves the session
// untouched.
func (s *Session) Move(dir Direction) (MoveOutcome, error) {
	if err := dir.Validate(); err != nil {
		return MoveOutcome{}, err
	}
	if s.status != StatusPlaying {
		return MoveOutcome{Status: s.status}, ErrNotPlaying
	}

	res, err := Resolve(s.tiles, dir, s.cfg.Size)
	if err != nil {
		return MoveOutcome{}, err
	}
	if !res.Moved {
		return MoveOutcome{Status: s.status}, nil
	}

	next, spawned, err := s.spawner.spawn(res.Tiles, s.cfg.Size)
	if err != nil {
		return MoveOutcome{}, err
	}
	stuck, err := IsTerminal(next, s.cfg.Size)
	if err != nil {
		return MoveOutcome{}, err
	}

	s.remember()
	s.tiles = next
	s.score += res.ScoreIncrease
	s.moves++

	switch {
	case stuck:
		s.status = StatusLost
	case !s.hasWon && s.reachedTarget():
		s.status = StatusWon
		s.hasWon = true
	}

	return MoveOutcome{
		Moved:         true,
		ScoreIncrease: res.ScoreIncrease,
		Spawned:       spawned,
		Status:        s.status,
	}, nil
}

// Continue resumes play after a win. It reports false unless the session
// is in the won state.
func (s *Session) Continue() bool {
	if s.status != StatusWon {
		return false
	}
	s.status = StatusPlaying
	return true
}

// Undo restores the most recent snapshot and returns the session to
// playing. The win latch follows the restored board. It reports false when
// there is nothing to undo.
func (s *Session) Undo() (bool, error) {
	if !s.cfg.Mode.AllowsAssists() {
		return false, ErrAssistsDisabled
	}
	prev, ok := s.history.Pop()
	if !ok {
		return false, nil
	}
	s.tiles = prev.Tiles
	s.score = prev.Score
	s.moves = prev.Moves
	s.hasWon = s.reachedTarget()
	s.status = StatusPlaying
	return true, nil
}

// RemoveTile applies the remove power-up. A missing id is a no-op.
func (s *Session) RemoveTile(id TileID) (bool, error) {
	if err := s.checkAssist(); err != nil {
		return false, err
	}
	next := Remove(s.tiles, id)
	if len(next) == len(s.tiles) {
		return false, nil
	}
	s.remember()
	s.tiles = next
	return true, nil
}

// SwapTiles applies the swap power-up. Missing or identical ids are a
// no-op.
func (s *Session) SwapTiles(a, b TileID) (bool, error) {
	if err := s.checkAssist(); err != nil {
		return false, err
	}
	if a == b {
		return false, nil
	}
	if _, ok := Find(s.tiles, a); !ok {
		return false, nil
	}
	if _, ok := Find(s.tiles, b); !ok {
		return false, nil
	}
	s.remember()
	s.tiles = Swap(s.tiles, a, b)
	return true, nil
}

func (s *Session) checkAssist() error {
	if !s.cfg.Mode.AllowsAssists() {
		return ErrAssistsDisabled
	}
	if s.status != StatusPlaying {
		return ErrNotPlaying
	}
	return nil
}

// remember snapshots the current state ahead of a commit. Classic mode
// keeps no history.
func (s *Session) remember() {
	if !s.cfg.Mode.AllowsAssists() {
		return
	}
	s.history.Push(Snapshot{Tiles: s.tiles, Score: s.score, Moves: s.moves})
}

// reachedTarget reports whether the board holds a tile at the win target.
func (s *Session) reachedTarget() bool {
	return s.cfg.WinTarget > 0 && MaxValue(s.tiles) >= s.cfg.WinTarget
}

// Tiles returns a copy of the current tiles.
func (s *Session) Tiles() []Tile { return cloneTiles(s.tiles) }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Status returns the play state.
func (s *Session) Status() Status { return s.status }

// Size returns the grid size.
func (s *Session) Size() GridSize { return s.cfg.Size }

// Mode returns the session mode.
func (s *Session) Mode() Mode { return s.cfg.Mode }

// HasWon reports whether the win target was reached during this game.
func (s *Session) HasWon() bool { return s.hasWon }

// WinTarget returns the configured win tile, 0 if disabled.
func (s *Session) WinTarget() int { return s.cfg.WinTarget }

// UndoDepth returns the number of snapshots available to Undo.
func (s *Session) UndoDepth() int { return s.history.Len() }

// Moves returns the number of committed moves.
func (s *Session) Moves() int { return s.moves }

// Matrix returns a fresh value grid of the board.
func (s *Session) Matrix() Matrix {
	// Session tiles are always on the grid.
	m, _ := ToMatrix(s.tiles, s.cfg.Size)
	return m
}

// Snapshot returns a deep copy of the session state.
func (s *Session) Snapshot() SessionSnapshot {
	return SessionSnapshot{
		Size:      s.cfg.Size,
		Mode:      s.cfg.Mode,
		Tiles:     cloneTiles(s.tiles),
		Score:     s.score,
		Status:    s.status,
		HasWon:    s.hasWon,
		MaxTile:   MaxValue(s.tiles),
		UndoDepth: s.history.Len(),
		WinTarget: s.cfg.WinTarget,
		Matrix:    s.Matrix(),
		MoveCount: s.moves,
	}
}
