package phh

import (
	"io"
	"sync"

	"github.com/coder/quartz"

	"github.com/lox/holdem-coach/internal/table"
)

// Recorder collects completed hands as PHH histories. It is a
// table.ResultSink and is safe for concurrent use.
type Recorder struct {
	clock     quartz.Clock
	tableName string

	mu    sync.Mutex
	hands []*HandHistory
	err   error
}

// NewRecorder creates a recorder that timestamps hands with clock.
func NewRecorder(clock quartz.Clock, tableName string) *Recorder {
	return &Recorder{clock: clock, tableName: tableName}
}

// HandComplete records a finished hand. The first conversion error is kept
// and reported by Err.
func (r *Recorder) HandComplete(summary table.HandSummary) {
	hist, err := FromHand(summary.ID, r.tableName, summary.Final, r.clock.Now())

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		if r.err == nil {
			r.err = err
		}
		return
	}
	r.hands = append(r.hands, hist)
}

// Len returns the number of recorded hands.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.hands)
}

// Err returns the first error seen while recording.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Write encodes every recorded hand to w as a .phhs file.
func (r *Recorder) Write(w io.Writer) error {
	r.mu.Lock()
	hands := append([]*HandHistory(nil), r.hands...)
	r.mu.Unlock()
	return EncodeAll(w, hands)
}
