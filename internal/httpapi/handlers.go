package httpapi

import (
	"math/rand"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/neonsums/internal/advisor"
	"github.com/vovakirdan/neonsums/internal/engine"
	"github.com/vovakirdan/neonsums/internal/sessions"
	"github.com/vovakirdan/neonsums/internal/storage"
)

// createReq is the body of POST /sessions. Zero values use the configured
// defaults. A board resumes a game from that position; its dimension wins
// over size.
type createReq struct {
	Mode  string        `json:"mode"`
	Size  int           `json:"size"`
	Seed  *int64        `json:"seed,omitempty"`
	Board engine.Matrix `json:"board,omitempty"`
	Score int           `json:"score,omitempty"`
}

type sessionRes struct {
	ID      string                 `json:"id"`
	Session engine.SessionSnapshot `json:"session"`
}

type moveReq struct {
	Direction string `json:"direction"` // UP, DOWN, LEFT or RIGHT
}

type moveRes struct {
	Moved         bool                   `json:"moved"`
	ScoreIncrease int                    `json:"scoreIncrease"`
	Spawned       *engine.Tile           `json:"spawned,omitempty"`
	Session       engine.SessionSnapshot `json:"session"`
}

type removeReq struct {
	TileID engine.TileID `json:"tileId"`
}

type swapReq struct {
	A engine.TileID `json:"a"`
	B engine.TileID `json:"b"`
}

type actionRes struct {
	Applied bool                   `json:"applied"`
	Session engine.SessionSnapshot `json:"session"`
}

type commentaryRes struct {
	Commentary string `json:"commentary"`
}

// entry resolves the {id} URL parameter.
func (s *Server) entry(w http.ResponseWriter, r *http.Request) (*sessions.Entry, bool) {
	e, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return nil, false
	}
	return e, true
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	game := s.defaults
	if req.Mode != "" {
		game.Mode = req.Mode
	}
	if req.Size != 0 {
		game.GridSize = req.Size
	}

	cfg := game.SessionConfig()
	if req.Seed != nil {
		cfg.Rand = rand.New(rand.NewSource(*req.Seed))
	}

	var (
		e   *sessions.Entry
		err error
	)
	if req.Board != nil {
		e, err = s.restore(cfg, req.Board, req.Score)
	} else {
		e, err = s.sessions.Create(cfg)
	}
	if err != nil {
		writeErr(w, err)
		return
	}
	s.logger.Info("session created", "id", e.ID, "mode", cfg.Mode, "size", cfg.Size, "restored", req.Board != nil)

	writeJSON(w, http.StatusCreated, sessionRes{ID: e.ID, Session: e.Snapshot()})
}

// restore hosts a session on board. Restored tiles draw ids from the
// session's own counter so later spawns never collide with them.
func (s *Server) restore(cfg engine.SessionConfig, board engine.Matrix, score int) (*sessions.Entry, error) {
	cfg.IDs = engine.NewCounter("tile")
	tiles, size, err := engine.FromMatrix(board, cfg.IDs)
	if err != nil {
		return nil, err
	}
	cfg.Size = size
	return s.sessions.CreateFrom(cfg, tiles, score)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	list := s.sessions.List()
	out := make([]sessionRes, 0, len(list))
	for _, e := range list {
		out = append(out, sessionRes{ID: e.ID, Session: e.Snapshot()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	e, ok := s.entry(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sessionRes{ID: e.ID, Session: e.Snapshot()})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(chi.URLParam(r, "id")); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	e, ok := s.entry(w, r)
	if !ok {
		return
	}
	var req moveReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	dir, err := engine.ParseDirection(req.Direction)
	if err != nil {
		writeErr(w, err)
		return
	}

	var res moveRes
	err = e.Do(func(sess *engine.Session) error {
		out, err := sess.Move(dir)
		if err != nil {
			return err
		}
		res.Moved = out.Moved
		res.ScoreIncrease = out.ScoreIncrease
		res.Spawned = out.Spawned
		res.Session = sess.Snapshot()
		if e.ClaimRecord() {
			s.recordScore(res.Session)
		}
		return nil
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// recordScore saves a finished game. Failures are logged, not returned.
func (s *Server) recordScore(snap engine.SessionSnapshot) {
	if s.store == nil || snap.Score <= 0 {
		return
	}
	gameID := storage.GameID(snap.Mode, snap.Size)
	if _, err := s.store.SaveScore(gameID, snap.Score, snap.MaxTile); err != nil {
		s.logger.Warn("save score failed", "game", gameID, "error", err)
	}
}

// handleAction runs a boolean session operation and returns its result.
func (s *Server) handleAction(w http.ResponseWriter, e *sessions.Entry, op func(*engine.Session) (bool, error)) {
	var res actionRes
	err := e.Do(func(sess *engine.Session) error {
		applied, err := op(sess)
		if err != nil {
			return err
		}
		res.Applied = applied
		res.Session = sess.Snapshot()
		return nil
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	e, ok := s.entry(w, r)
	if !ok {
		return
	}
	s.handleAction(w, e, (*engine.Session).Undo)
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	e, ok := s.entry(w, r)
	if !ok {
		return
	}
	var req removeReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	s.handleAction(w, e, func(sess *engine.Session) (bool, error) {
		return sess.RemoveTile(req.TileID)
	})
}

func (s *Server) handleSwap(w http.ResponseWriter, r *http.Request) {
	e, ok := s.entry(w, r)
	if !ok {
		return
	}
	var req swapReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	s.handleAction(w, e, func(sess *engine.Session) (bool, error) {
		return sess.SwapTiles(req.A, req.B)
	})
}

func (s *Server) handleContinue(w http.ResponseWriter, r *http.Request) {
	e, ok := s.entry(w, r)
	if !ok {
		return
	}
	s.handleAction(w, e, func(sess *engine.Session) (bool, error) {
		return sess.Continue(), nil
	})
}

// handleHint asks the advisor about the current board. The advisor runs
// outside the session lock on a copy of the board.
func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	e, ok := s.entry(w, r)
	if !ok {
		return
	}

	var board engine.Matrix
	err := e.Do(func(sess *engine.Session) error {
		if !sess.Mode().AllowsAssists() {
			return engine.ErrAssistsDisabled
		}
		if sess.Status() != engine.StatusPlaying {
			return engine.ErrNotPlaying
		}
		board = sess.Matrix()
		return nil
	})
	if err != nil {
		writeErr(w, err)
		return
	}

	resp := advisor.Answer(r.Context(), s.advisor, advisor.Request{Kind: advisor.KindHint, Board: board})
	writeJSON(w, http.StatusOK, resp.Hint)
}

// handleCommentary returns the end-of-game remark for a won or lost session.
func (s *Server) handleCommentary(w http.ResponseWriter, r *http.Request) {
	e, ok := s.entry(w, r)
	if !ok {
		return
	}

	snap := e.Snapshot()
	if snap.Status == engine.StatusPlaying {
		writeErr(w, engine.ErrNotPlaying)
		return
	}

	req := advisor.Request{
		Kind:  advisor.KindCommentary,
		Score: snap.Score,
		Won:   snap.HasWon,
	}
	resp := advisor.Answer(r.Context(), s.advisor, req)
	writeJSON(w, http.StatusOK, commentaryRes{Commentary: resp.Commentary})
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "scores_disabled")
		return
	}

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "bad_limit")
			return
		}
		limit = n
	}

	scores, err := s.store.TopScores(chi.URLParam(r, "game"), limit)
	if err != nil {
		s.logger.Error("load scores failed", "error", err)
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	if scores == nil {
		scores = []storage.ScoreEntry{}
	}
	writeJSON(w, http.StatusOK, scores)
}

func (s *Server) handleAllStats(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "scores_disabled")
		return
	}

	stats, err := s.store.GetAllGamesStats()
	if err != nil {
		s.logger.Error("load stats failed", "error", err)
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
