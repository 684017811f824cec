package container

// ServiceProvider mirrors Laravel's Illuminate\Support\ServiceProvider.
//
// Register binds services into the container and must not resolve other
// bindings; Boot runs after every provider has registered, so resolving
// is safe there.
type ServiceProvider interface {
	Register(app *Container)
	Boot(app *Container)
}

// BaseProvider is an embeddable no-op Boot. Embed it and override only
// what the provider needs.
//
//	type UploadServiceProvider struct{ container.BaseProvider }
//	func (p *UploadServiceProvider) Register(app *container.Container) { ... }
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container) {}

// ProviderRegistry manages registration and booting of ServiceProviders —
// the two-phase bootstrap of Laravel's Application.
type ProviderRegistry struct {
	app        *Container
	providers  []ServiceProvider
	registered map[ServiceProvider]bool
	booted     bool
}

// NewProviderRegistry creates a registry bound to app.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	return &ProviderRegistry{
		app:        app,
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider and calls its Register() method. Registering
// after Boot() boots the provider immediately.
func (r *ProviderRegistry) Register(provider ServiceProvider) {
	if r.registered[provider] {
		return
	}
	r.registered[provider] = true

	provider.Register(r.app)
	r.providers = append(r.providers, provider)

	if r.booted {
		provider.Boot(r.app)
	}
}

// Boot calls Boot() on all providers, once.
func (r *ProviderRegistry) Boot() {
	if r.booted {
		return
	}
	r.booted = true
	for _, provider := range r.providers {
		provider.Boot(r.app)
	}
}

// Booted returns true if Boot() has been called.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns all registered providers.
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.providers }
