package routes

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/parkd-dev/parkd/internal/pages"
	"github.com/parkd-dev/parkd/internal/roles"
)

// fileEntry is one route as written in a routes YAML file:
//
//	- path: /admin/dashboard
//	  page: admin-dashboard
//	  role: admin
type fileEntry struct {
	Path     string `yaml:"path"`
	Page     string `yaml:"page"`
	Redirect string `yaml:"redirect"`
	Auth     bool   `yaml:"auth"`
	Role     string `yaml:"role"`
	Lazy     bool   `yaml:"lazy"`
}

func (e fileEntry) descriptor() (Descriptor, error) {
	role, err := roles.Parse(e.Role)
	if err != nil {
		return Descriptor{}, err
	}

	d := Descriptor{
		Path:       e.Path,
		Page:       pages.ID(e.Page),
		RedirectTo: e.Redirect,
		Lazy:       e.Lazy,
	}
	if e.Auth || role != roles.None {
		d.Access = &Access{Role: role}
	}
	return d, nil
}

// Parse builds a table from YAML route entries
func Parse(data []byte) (*Table, error) {
	var entries []fileEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse routes yaml: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: routes file declares no routes", ErrInvalidRoute)
	}

	descs := make([]Descriptor, 0, len(entries))
	for i, e := range entries {
		d, err := e.descriptor()
		if err != nil {
			return nil, fmt.Errorf("route entry #%d (%s): %w", i+1, e.Path, err)
		}
		descs = append(descs, d)
	}

	return New(descs...)
}

// LoadFile reads a routes YAML file
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read routes file: %w", err)
	}
	return Parse(data)
}
