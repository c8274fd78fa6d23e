package staticcmd

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-press/internal/generator"
)

type fakeGeneratorService struct {
	buildFunc func(ctx context.Context, opts generator.BuildOptions) (*generator.BuildResult, error)
	cleanFunc func(ctx context.Context) error
}

func (f *fakeGeneratorService) Build(ctx context.Context, opts generator.BuildOptions) (*generator.BuildResult, error) {
	if f.buildFunc == nil {
		return &generator.BuildResult{}, nil
	}
	return f.buildFunc(ctx, opts)
}

func (f *fakeGeneratorService) Clean(ctx context.Context) error {
	if f.cleanFunc == nil {
		return nil
	}
	return f.cleanFunc(ctx)
}

func TestBuildSiteHandlerExecute(t *testing.T) {
	buildTime := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	var capturedOpts generator.BuildOptions
	svc := &fakeGeneratorService{
		buildFunc: func(ctx context.Context, opts generator.BuildOptions) (*generator.BuildResult, error) {
			capturedOpts = opts
			return &generator.BuildResult{State: generator.StatePublished, PagesWritten: 3}, nil
		},
	}

	handler := NewBuildSiteHandler(svc, nil)

	callbackInvoked := false
	cmd := BuildSiteCommand{
		BuildTime: buildTime,
		ResultCallback: func(env ResultEnvelope) {
			callbackInvoked = true
			if env.Result == nil {
				t.Fatal("expected build result, got nil")
			}
			if env.Result.PagesWritten != 3 {
				t.Fatalf("expected 3 pages written, got %d", env.Result.PagesWritten)
			}
			if env.Metadata["operation"] != "build" {
				t.Fatalf("expected operation build, got %v", env.Metadata["operation"])
			}
		},
	}

	if err := handler.Execute(context.Background(), cmd); err != nil {
		t.Fatalf("execute build: %v", err)
	}
	if !capturedOpts.BuildTime.Equal(buildTime) {
		t.Fatalf("expected build time forwarded, got %v", capturedOpts.BuildTime)
	}
	if capturedOpts.DryRun {
		t.Fatal("expected DryRun false")
	}
	if !callbackInvoked {
		t.Fatal("expected callback to be invoked")
	}
}

func TestBuildSiteHandlerPropagatesFailure(t *testing.T) {
	buildErr := errors.New("render exploded")
	svc := &fakeGeneratorService{
		buildFunc: func(ctx context.Context, opts generator.BuildOptions) (*generator.BuildResult, error) {
			return &generator.BuildResult{State: generator.StateFailed}, buildErr
		},
	}

	handler := NewBuildSiteHandler(svc, nil)

	err := handler.Execute(context.Background(), BuildSiteCommand{})
	if err == nil {
		t.Fatal("expected build failure")
	}
	if !errors.Is(err, buildErr) {
		t.Fatalf("expected wrapped build error, got %v", err)
	}
}

func TestBuildSiteHandlerRequiresService(t *testing.T) {
	handler := NewBuildSiteHandler(nil, nil)
	err := handler.Execute(context.Background(), BuildSiteCommand{})
	if !errors.Is(err, ErrServiceRequired) {
		t.Fatalf("expected ErrServiceRequired, got %v", err)
	}
}

func TestDiffSiteHandlerForcesDryRun(t *testing.T) {
	var capturedOpts generator.BuildOptions
	svc := &fakeGeneratorService{
		buildFunc: func(ctx context.Context, opts generator.BuildOptions) (*generator.BuildResult, error) {
			capturedOpts = opts
			return &generator.BuildResult{DryRun: true}, nil
		},
	}

	handler := NewDiffSiteHandler(svc, nil)

	callbackInvoked := false
	cmd := DiffSiteCommand{
		ResultCallback: func(env ResultEnvelope) {
			callbackInvoked = true
			if env.Metadata["operation"] != "diff" {
				t.Fatalf("expected operation diff, got %v", env.Metadata["operation"])
			}
		},
	}

	if err := handler.Execute(context.Background(), cmd); err != nil {
		t.Fatalf("execute diff: %v", err)
	}
	if !capturedOpts.DryRun {
		t.Fatal("expected diff to force dry run")
	}
	if !callbackInvoked {
		t.Fatal("expected callback to be invoked")
	}
}

func TestCleanSiteHandlerExecute(t *testing.T) {
	cleaned := false
	svc := &fakeGeneratorService{
		cleanFunc: func(ctx context.Context) error {
			cleaned = true
			return nil
		},
	}

	handler := NewCleanSiteHandler(svc, nil)
	if err := handler.Execute(context.Background(), CleanSiteCommand{}); err != nil {
		t.Fatalf("execute clean: %v", err)
	}
	if !cleaned {
		t.Fatal("expected clean to be invoked")
	}
}

func TestBuildSiteCommandValidation(t *testing.T) {
	bad := BuildSiteCommand{BuildTime: time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)}
	if err := bad.Validate(); err == nil {
		t.Fatal("expected validation error for ancient build time")
	}
	good := BuildSiteCommand{BuildTime: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected valid command, got %v", err)
	}
	if err := (BuildSiteCommand{}).Validate(); err != nil {
		t.Fatalf("expected zero build time to be valid, got %v", err)
	}
}
