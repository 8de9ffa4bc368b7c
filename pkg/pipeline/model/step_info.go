package model

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// StepInfo describes one step of a pipeline.
type StepInfo struct {
	Kwargs   map[string]string `json:"kwargs"`
	Name     string            `json:"name"`
	Category string            `json:"category"`
	Args     []string          `json:"args"`
	Index    int               `json:"index"`
	// Duration is the time spent in the step during the last run, in nanoseconds.
	Duration time.Duration `json:"duration"`
}

var (
	StartStep = &StepInfo{Name: "start"}
	EndStep   = &StepInfo{Name: "end"}
)

// ID identifies the step in rendered graphs. The same function can appear at
// several positions, so the index is part of it.
func (s *StepInfo) ID() string {
	if s.Index == 0 {
		return s.Name
	}

	return fmt.Sprintf("%d. %s", s.Index, s.Name)
}

// Params renders the recorded arguments as "a, b, k=v", keyword arguments sorted by key.
func (s *StepInfo) Params() string {
	params := append([]string(nil), s.Args...)

	keys := make([]string, 0, len(s.Kwargs))
	for k := range s.Kwargs {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		params = append(params, k+"="+s.Kwargs[k])
	}

	return strings.Join(params, ", ")
}

// String renders the step as "1. [category] name(params)".
func (s *StepInfo) String() string {
	return fmt.Sprintf("%d. [%s] %s(%s)", s.Index, s.Category, s.Name, s.Params())
}
