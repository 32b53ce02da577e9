package types

import "errors"

var ErrNotFound = errors.New("not found")
var ErrRateLimited = errors.New("too many requests, wait a minute and try again")
