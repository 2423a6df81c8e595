package config

import (
	"github.com/alexisbeaulieu97/regsync/internal/livestore"
	"github.com/alexisbeaulieu97/regsync/internal/regimport"
)

// Config represents the full regsync configuration document.
type Config struct {
	Version     string    `yaml:"version" validate:"required,semver"`
	Name        string    `yaml:"name" validate:"required,min=1,max=100"`
	Description string    `yaml:"description,omitempty"`
	Settings    Settings  `yaml:"settings,omitempty"`
	Subjects    []Subject `yaml:"subjects" validate:"required,min=1,dive"`
}

// Settings holds global execution parameters.
type Settings struct {
	DryRun   bool   `yaml:"dry_run,omitempty"`
	Verbose  bool   `yaml:"verbose,omitempty"`
	LogLevel string `yaml:"log_level,omitempty" validate:"omitempty,oneof=trace debug info warn error"`
	RegTool  string `yaml:"reg_tool,omitempty"`
}

// Subject declares one reconciliation subject: a registry-export artifact
// and the view it targets.
type Subject struct {
	ID     string  `yaml:"id" validate:"required,subject_id"`
	Name   string  `yaml:"name,omitempty"`
	Source Source  `yaml:"source"`
	View   string  `yaml:"view,omitempty" validate:"omitempty,oneof=32 64"`
}

// Source locates the artifact. Exactly one of Path or Git must be set.
type Source struct {
	Path string     `yaml:"path,omitempty"`
	Git  *GitSource `yaml:"git,omitempty"`
}

// GitSource names an artifact inside a git repository.
type GitSource struct {
	URL  string `yaml:"url" validate:"required"`
	Ref  string `yaml:"ref,omitempty"`
	Path string `yaml:"path" validate:"required"`
}

// TaskSource converts the declared source into the fetcher's form.
func (s Subject) TaskSource() regimport.Source {
	src := regimport.Source{Path: s.Source.Path}
	if s.Source.Git != nil {
		src.Git = &regimport.GitSource{
			URL:  s.Source.Git.URL,
			Ref:  s.Source.Git.Ref,
			Path: s.Source.Git.Path,
		}
	}
	return src
}

// TaskView converts the declared view into the live-store form.
func (s Subject) TaskView() livestore.View {
	switch s.View {
	case "32":
		return livestore.View32
	case "64":
		return livestore.View64
	default:
		return livestore.ViewDefault
	}
}
