package flowpilot

import "github.com/pkg/errors"

var ErrProjectDirectory = errors.New("unable to create project directory")
