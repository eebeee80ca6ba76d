package workarea

import "errors"

var (
	ErrWorkAreaNotFound = errors.New("work area not found")
)
