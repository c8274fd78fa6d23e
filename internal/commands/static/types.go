package staticcmd

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-press/internal/generator"
)

const (
	buildSiteMessageType = "press.static.build"
	diffSiteMessageType  = "press.static.diff"
	cleanSiteMessageType = "press.static.clean"
)

// ResultCallback receives build results produced by generator operations. The
// callback is optional and is invoked synchronously from the handler when a
// BuildResult is available.
type ResultCallback func(ResultEnvelope)

// ResultEnvelope captures the outcome of a static command execution.
type ResultEnvelope struct {
	Result   *generator.BuildResult
	Metadata map[string]any
}

// BuildSiteCommand executes a full site build.
type BuildSiteCommand struct {
	DryRun         bool           `json:"dry_run,omitempty"`
	BuildTime      time.Time      `json:"build_time,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (BuildSiteCommand) Type() string { return buildSiteMessageType }

// Validate ensures the build time, when pinned, is not the distant past.
func (m BuildSiteCommand) Validate() error {
	errs := validation.Errors{}
	if !m.BuildTime.IsZero() && m.BuildTime.Year() < 1970 {
		errs["build_time"] = validation.NewError("press.static.build.time_invalid", "build_time must be a modern timestamp")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DiffSiteCommand performs a dry-run build to surface differences without
// writing artifacts.
type DiffSiteCommand struct {
	BuildTime      time.Time      `json:"build_time,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (DiffSiteCommand) Type() string { return diffSiteMessageType }

// Validate satisfies command.Message.
func (m DiffSiteCommand) Validate() error {
	errs := validation.Errors{}
	if !m.BuildTime.IsZero() && m.BuildTime.Year() < 1970 {
		errs["build_time"] = validation.NewError("press.static.diff.time_invalid", "build_time must be a modern timestamp")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CleanSiteCommand removes the published output directory.
type CleanSiteCommand struct{}

// Type implements command.Message.
func (CleanSiteCommand) Type() string { return cleanSiteMessageType }

// Validate satisfies command.Message; there are no payload constraints.
func (CleanSiteCommand) Validate() error { return nil }
