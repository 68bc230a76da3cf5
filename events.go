package popgen

// Stage identifies a pipeline state. Transitions run strictly in order;
// StageFailed is reachable only from StageAnalyzing, because caption
// extraction is the only stage without a fallback.
type Stage string

const (
	StageIdle             Stage = "idle"
	StageAnalyzing        Stage = "analyzing"
	StageDerivingTraits   Stage = "deriving_traits"
	StageGenerating       Stage = "generating"
	StageRenderingPreview Stage = "rendering_preview"
	StageDone             Stage = "done"
	StageFailed           Stage = "failed"
)

// StageEvent is emitted at each stage boundary.
type StageEvent struct {
	Stage   Stage
	Label   string
	Payload any
}

// StageObserver receives progress events. Callbacks run synchronously on the
// pipeline's goroutine and are panic-isolated: a misbehaving observer cannot
// abort a run.
type StageObserver interface {
	OnStage(event StageEvent)
}

// ObserverFunc adapts a plain function to StageObserver.
type ObserverFunc func(event StageEvent)

func (f ObserverFunc) OnStage(event StageEvent) { f(event) }

// ChannelObserver forwards events to a buffered channel, letting callers
// consume progress asynchronously. Sends never block: when the buffer is
// full the event is dropped rather than stalling the pipeline.
type ChannelObserver struct {
	events chan StageEvent
}

// NewChannelObserver creates an observer with the given buffer size.
func NewChannelObserver(buffer int) *ChannelObserver {
	if buffer < 1 {
		buffer = 16
	}
	return &ChannelObserver{events: make(chan StageEvent, buffer)}
}

// Events is the stream of stage events.
func (o *ChannelObserver) Events() <-chan StageEvent { return o.events }

func (o *ChannelObserver) OnStage(event StageEvent) {
	select {
	case o.events <- event:
	default:
	}
}

// Close closes the event stream. Call only after the pipeline run returned.
func (o *ChannelObserver) Close() { close(o.events) }
