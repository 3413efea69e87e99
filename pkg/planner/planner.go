package planner

import "errors"

var ErrEmptyInput = errors.New("no travel notes to work with")
