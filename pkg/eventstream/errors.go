package eventstream

import "errors"

// ErrNilSearchEvent indicates a nil search event payload was provided to a publisher.
var ErrNilSearchEvent = errors.New("nil search event")
