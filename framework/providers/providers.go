package providers

import (
	"github.com/km-arc/go-uploads/framework/config"
	"github.com/km-arc/go-uploads/framework/container"
	"github.com/km-arc/go-uploads/framework/http/upload"
	"github.com/km-arc/go-uploads/framework/http/validation"
	"github.com/km-arc/go-uploads/framework/log"
	"github.com/km-arc/go-uploads/framework/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider loads the application configuration from .env and
// binds it into the container as "config".
//
// Laravel equivalent:
//
//	// Illuminate\Foundation\Bootstrap\LoadConfiguration
//	$app->singleton('config', fn() => new Repository($items));
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(app *container.Container) {
	envFiles := p.EnvFiles
	app.Singleton("config", func(c *container.Container) any {
		return config.Load(envFiles...)
	})
}

// ── LogServiceProvider ────────────────────────────────────────────────────────

// LogServiceProvider initializes the global zerolog logger from config.
// Boot-phase only: it needs "config" resolved.
type LogServiceProvider struct {
	container.BaseProvider
}

func (p *LogServiceProvider) Register(_ *container.Container) {}

func (p *LogServiceProvider) Boot(app *container.Container) {
	cfg := container.Resolve[*config.Config](app, "config")
	log.Init(log.Options{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router as "router".
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) {
	app.Singleton("router", func(c *container.Container) any {
		return routing.New()
	})
}

// ── UploadServiceProvider ─────────────────────────────────────────────────────

// UploadServiceProvider derives the multipart intake limits from config and
// binds them as "upload.limits". Handlers resolve the limits once and pass
// them to Request.Uploads.
type UploadServiceProvider struct {
	container.BaseProvider
}

func (p *UploadServiceProvider) Register(app *container.Container) {
	app.Singleton("upload.limits", func(c *container.Container) any {
		cfg := container.Resolve[*config.Config](c, "config")
		return upload.Limits{
			TmpDir:       cfg.Upload.TmpDir,
			MaxFileBytes: cfg.Upload.MaxBytes,
			MaxMemory:    cfg.Upload.MaxMemory,
		}
	})
}

// ── ValidationServiceProvider ─────────────────────────────────────────────────

// ValidationServiceProvider binds the run context file validators execute
// under as "validation.context". HTTP handlers get Web; command-line entry
// points rebind CLI before booting.
//
// Laravel equivalent:
//
//	// Illuminate\Validation\ValidationServiceProvider
//	$this->app->singleton('validator', fn($app) => new Factory(...));
type ValidationServiceProvider struct {
	container.BaseProvider
	Context validation.RunContext
}

func (p *ValidationServiceProvider) Register(app *container.Container) {
	rc := p.Context
	app.Singleton("validation.context", func(c *container.Container) any {
		return rc
	})
}
