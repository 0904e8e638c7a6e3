package consts

const (
	FeedBubbleKey  = "feed:bubble:"
	FeedRiverKey   = "feed:river:"
	FeedTreemapKey = "feed:treemap"
)

const (
	PipelineRunLock = "lock:pipeline:run"
)
