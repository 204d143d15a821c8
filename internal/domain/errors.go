package domain

import "errors"

var ErrUnknownMode = errors.New("domain: unknown categorization mode")
