// internal/domain/printing/errors.go
package printing

import "errors"

// ErrTransportUnavailable marks a capability-class failure: the tier cannot
// work in this session at all (unsupported hardware API, print service that
// doesn't exist). The dispatcher disables the tier for the rest of the
// session. Transient failures must NOT wrap this sentinel.
var ErrTransportUnavailable = errors.New("print transport unavailable")

// ErrNotConnected is returned when the hardware tier has no established
// link. It is transient: connecting later makes the tier usable again.
var ErrNotConnected = errors.New("printer not connected")

// ErrAllTiersFailed is returned when every tier was skipped or failed.
var ErrAllTiersFailed = errors.New("all print tiers failed")
