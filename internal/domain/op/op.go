package op

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// seqCounter is an atomic counter giving each operation a monotonic sequence
// number alongside its UUID, useful for ordering log lines.
var seqCounter uint64

// Kind identifies the kind of store mutation.
type Kind string

const (
	KindAdd           Kind = "ADD"
	KindUpdate        Kind = "UPDATE"
	KindDelete        Kind = "DELETE"
	KindAddColumn     Kind = "ADD_COLUMN"
	KindDeleteColumn  Kind = "DELETE_COLUMN"
	KindReplaceColumn Kind = "REPLACE_COLUMN"
	KindSwitchPath    Kind = "SWITCH_PATH"
)

// Op is the audit context of a single store mutation. Every mutation runs
// under exactly one Op from start through the terminal save.
type Op struct {
	ID        string // unique operation identifier (UUID)
	Seq       uint64 // monotonic sequence number
	Kind      Kind
	StartTime time.Time
}

// New creates an operation context with a unique ID.
func New(kind Kind) *Op {
	return &Op{
		ID:        uuid.New().String(),
		Seq:       atomic.AddUint64(&seqCounter, 1),
		Kind:      kind,
		StartTime: time.Now(),
	}
}

// Elapsed returns the time since the operation began.
func (o *Op) Elapsed() time.Duration {
	return time.Since(o.StartTime)
}
