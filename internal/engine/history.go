package engine

// HistoryCapacity is the default number of undo snapshots kept.
const HistoryCapacity = 10

// Snapshot is the state captured before a move or power-up, used for undo.
type Snapshot struct {
	Tiles []Tile `json:"tiles"`
	Score int    `json:"score"`
	Moves int    `json:"moves"`
}

// History is a fixed capacity ring of snapshots. When full, pushing evicts
// the oldest entry.
type History struct {
	buf   []Snapshot
	start int
	n     int
}

// NewHistory creates an empty history. A non-positive capacity uses
// HistoryCapacity.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = HistoryCapacity
	}
	return &History{buf: make([]Snapshot, capacity)}
}

// Push records a copy of s.
func (h *History) Push(s Snapshot) {
	s.Tiles = cloneTiles(s.Tiles)
	if h.n == len(h.buf) {
		h.buf[h.start] = Snapshot{}
		h.start = (h.start + 1) % len(h.buf)
		h.n--
	}
	h.buf[(h.start+h.n)%len(h.buf)] = s
	h.n++
}

// Pop removes and returns the most recent snapshot. It reports false when
// the history is empty.
func (h *History) Pop() (Snapshot, bool) {
	if h.n == 0 {
		return Snapshot{}, false
	}
	i := (h.start + h.n - 1) % len(h.buf)
	s := h.buf[i]
	h.buf[i] = Snapshot{}
	h.n--
	return s, true
}

// Len returns the number of stored snapshots.
func (h *History) Len() int { return h.n }

// Cap returns the ring capacity.
func (h *History) Cap() int { return len(h.buf) }

// Clear drops every snapshot.
func (h *History) Clear() {
	for i := range h.buf {
		h.buf[i] = Snapshot{}
	}
	h.start, h.n = 0, 0
}
