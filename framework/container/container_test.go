package container_test

import (
	"testing"

	"github.com/km-arc/go-uploads/framework/container"
)

func TestContainer_BindIsTransient(t *testing.T) {
	c := container.New()

	n := 0
	c.Bind("counter", func(_ *container.Container) any {
		n++
		return n
	})

	if c.Make("counter") == c.Make("counter") {
		t.Error("Bind should build a fresh instance per Make")
	}
}

func TestContainer_SingletonIsCached(t *testing.T) {
	c := container.New()

	calls := 0
	c.Singleton("limits", func(_ *container.Container) any {
		calls++
		return &struct{ Max int }{Max: 10}
	})

	first := c.Make("limits")
	second := c.Make("limits")
	if first != second {
		t.Error("Singleton should cache the resolved instance")
	}
	if calls != 1 {
		t.Errorf("factory ran %d times, want 1", calls)
	}
}

func TestContainer_Instance(t *testing.T) {
	c := container.New()
	cfg := &struct{ Name string }{Name: "app"}
	c.Instance("config", cfg)

	if got := c.Make("config"); got != cfg {
		t.Error("Instance should resolve to the exact value")
	}
}

func TestContainer_Alias(t *testing.T) {
	c := container.New()
	c.Instance("upload.limits", 42)
	c.Alias("upload.limits", "limits")

	if got := c.Make("limits"); got != 42 {
		t.Errorf("alias resolution: got %v", got)
	}
}

func TestContainer_SelfAliasPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for self-alias")
		}
	}()
	container.New().Alias("x", "x")
}

func TestContainer_MissingBindingPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for missing binding")
		}
	}()
	container.New().Make("nope")
}

func TestContainer_BoundAndResolved(t *testing.T) {
	c := container.New()
	c.Singleton("svc", func(_ *container.Container) any { return 1 })

	if !c.Bound("svc") {
		t.Error("Bound should be true after Singleton")
	}
	if c.Resolved("svc") {
		t.Error("Resolved should be false before first Make")
	}
	_ = c.Make("svc")
	if !c.Resolved("svc") {
		t.Error("Resolved should be true after Make")
	}
}

func TestContainer_RebindDropsStaleSingleton(t *testing.T) {
	c := container.New()
	c.Singleton("svc", func(_ *container.Container) any { return "old" })
	_ = c.Make("svc")

	c.Singleton("svc", func(_ *container.Container) any { return "new" })
	if got := c.Make("svc"); got != "new" {
		t.Errorf("rebind: got %v", got)
	}
}

func TestResolve_Generic(t *testing.T) {
	c := container.New()
	c.Instance("port", 8000)

	if got := container.Resolve[int](c, "port"); got != 8000 {
		t.Errorf("Resolve[int]: got %d", got)
	}

	if _, ok := container.MustResolve[string](c, "port"); ok {
		t.Error("MustResolve with wrong type should report !ok")
	}
}

// ── providers ────────────────────────────────────────────────────────────────

type recordingProvider struct {
	container.BaseProvider
	registered bool
	booted     bool
}

func (p *recordingProvider) Register(app *container.Container) {
	p.registered = true
	app.Instance("recorded", true)
}

func (p *recordingProvider) Boot(_ *container.Container) { p.booted = true }

func TestProviderRegistry_TwoPhase(t *testing.T) {
	c := container.New()
	r := container.NewProviderRegistry(c)

	p := &recordingProvider{}
	r.Register(p)

	if !p.registered {
		t.Error("Register phase should run immediately")
	}
	if p.booted {
		t.Error("Boot must not run before registry.Boot()")
	}

	r.Boot()
	if !p.booted {
		t.Error("Boot phase should run on registry.Boot()")
	}
	if !r.Booted() {
		t.Error("Booted() should be true")
	}
}

func TestProviderRegistry_LateRegisterBootsImmediately(t *testing.T) {
	c := container.New()
	r := container.NewProviderRegistry(c)
	r.Boot()

	p := &recordingProvider{}
	r.Register(p)
	if !p.booted {
		t.Error("provider registered after Boot() should boot immediately")
	}
}

func TestProviderRegistry_RegisterIsIdempotent(t *testing.T) {
	c := container.New()
	r := container.NewProviderRegistry(c)

	p := &recordingProvider{}
	r.Register(p)
	r.Register(p)

	if got := len(r.Providers()); got != 1 {
		t.Errorf("duplicate Register should be ignored, have %d providers", got)
	}
}
