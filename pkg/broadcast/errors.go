package broadcast

import "errors"

var (
	ErrBroadcasterClosed = errors.New("broadcast: broadcaster is closed")
	ErrNilProducer       = errors.New("broadcast: stream producer is nil")
)
