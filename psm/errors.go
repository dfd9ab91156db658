package psm

import "errors"

// ErrAlreadyPresent indicates on_item_add was called for a position
// already tracked as a publisher or subscriber (spec §4.6 asserts this).
var ErrAlreadyPresent = errors.New("psm: position already registered")
