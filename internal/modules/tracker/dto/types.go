package dto

import "time"

type EventInput struct {
	Kind      string
	Path      string
	Line      int
	Column    int
	HasCursor bool
}

type EventOutput struct {
	Emitted bool
	Reason  string
}

type EmitInput struct {
	Path      string
	IsWrite   bool
	Line      int
	Column    int
	HasCursor bool
	At        time.Time
}

const (
	ReasonDisabled  = "disabled"
	ReasonNoFile    = "no-file"
	ReasonIgnored   = "ignored"
	ReasonDebounced = "debounced"
)
