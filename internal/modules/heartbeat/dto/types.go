package dto

import "time"

type SendInput struct {
	RelativePath string
	IsWrite      bool
	Line         int
	Column       int
	HasCursor    bool
	At           time.Time
}

type SendOutput struct {
	Entity   string
	Project  string
	Language string
	Category string
	IsWrite  bool
}

type OutcomeOutput struct {
	At         time.Time
	Entity     string
	Project    string
	StatusCode int
	Err        string
	OK         bool
}
