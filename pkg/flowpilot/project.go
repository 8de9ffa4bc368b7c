package flowpilot

import (
	"os"

	"github.com/pkg/errors"
)

// Project is a named output directory, created when the project is opened.
type Project struct {
	Name string
	Dir  string
}

func openProject(name, dir string) (*Project, error) {
	if dir == "" {
		dir = name
	}

	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return nil, errors.Wrapf(ErrProjectDirectory, "%s: %v", dir, err)
	}

	return &Project{Name: name, Dir: dir}, nil
}
