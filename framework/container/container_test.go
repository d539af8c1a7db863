package container_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-starter/framework/container"
)

// ── fixtures ──────────────────────────────────────────────────────────────────

type Transport struct{ Host string }

type Mailer struct {
	Transport *Transport
}

func NewMailer(t *Transport) *Mailer { return &Mailer{Transport: t} }

type Notifier struct {
	Mailer  *Mailer
	Retries int
}

func NewNotifier(m *Mailer, retries int) *Notifier {
	return &Notifier{Mailer: m, Retries: retries}
}

type Envelope struct{ Mailer Mailer }

func NewEnvelope(m Mailer) *Envelope { return &Envelope{Mailer: m} }

type Sender interface{ Send(to string) error }

type Outbox struct{ Sender Sender }

type SelfAware struct{ C *container.Container }

type chicken struct{ egg *egg }
type egg struct{ chicken *chicken }

func newContainer(t *testing.T, entries ...container.Entry) *container.Container {
	t.Helper()
	c := container.New(container.NewRegistry(entries...))
	require.NoError(t, c.Provide(NewMailer))
	require.NoError(t, c.Provide(NewNotifier,
		container.WithParams("mailer", "retries"),
		container.WithDefault("retries", 3)))
	c.Register()
	return c
}

// ── Get / Set ─────────────────────────────────────────────────────────────────

func TestGet_SingletonEntryReturnsCachedInstance(t *testing.T) {
	c := newContainer(t, container.Entry{Name: "mailer", Type: "container_test.Mailer", Singleton: true})

	a, err := c.Get("mailer")
	require.NoError(t, err)
	b, err := c.Get("mailer")
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.True(t, c.Resolved("mailer"))
}

func TestGet_BareEntryIsTransient(t *testing.T) {
	c := newContainer(t, container.Entry{Name: "mailer", Type: "container_test.Mailer"})

	a, err := c.Get("mailer")
	require.NoError(t, err)
	b, err := c.Get("mailer")
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.False(t, c.Resolved("mailer"))
}

func TestGet_UnknownName(t *testing.T) {
	c := container.New(nil)

	_, err := c.Get("missing")
	assert.ErrorIs(t, err, container.ErrServiceNotFound)
}

func TestGet_ContainerBindsItself(t *testing.T) {
	c := container.New(nil)

	got, err := c.Get("container")
	require.NoError(t, err)
	assert.Same(t, c, got)
}

func TestSet_Instance(t *testing.T) {
	c := container.New(nil)
	tr := &Transport{Host: "smtp.local"}
	c.Set("transport", tr, false)

	got, err := c.Get("transport")
	require.NoError(t, err)
	assert.Same(t, tr, got)
}

func TestSet_FactoryTransientAndSingleton(t *testing.T) {
	c := container.New(nil)
	calls := 0
	factory := func(*container.Container) (any, error) {
		calls++
		return &Transport{}, nil
	}

	c.Bind("transient", factory)
	c.Singleton("shared", factory)

	for range 3 {
		_, err := c.Get("transient")
		require.NoError(t, err)
		_, err = c.Get("shared")
		require.NoError(t, err)
	}
	assert.Equal(t, 4, calls)
}

func TestSet_RebindDropsCachedInstance(t *testing.T) {
	c := container.New(nil)
	c.Singleton("t", func(*container.Container) (any, error) { return &Transport{Host: "a"}, nil })
	first, err := container.Resolve[*Transport](c, "t")
	require.NoError(t, err)

	c.Singleton("t", func(*container.Container) (any, error) { return &Transport{Host: "b"}, nil })
	second, err := container.Resolve[*Transport](c, "t")
	require.NoError(t, err)

	assert.Equal(t, "a", first.Host)
	assert.Equal(t, "b", second.Host)
}

func TestGet_FactoryErrorIsWrapped(t *testing.T) {
	c := container.New(nil)
	boom := errors.New("boom")
	c.Bind("broken", func(*container.Container) (any, error) { return nil, boom })

	_, err := c.Get("broken")
	assert.ErrorIs(t, err, boom)
}

func TestGet_ConcurrentSingletonIsShared(t *testing.T) {
	c := newContainer(t, container.Entry{Name: "mailer", Type: "container_test.Mailer", Singleton: true})

	var wg sync.WaitGroup
	got := make([]any, 16)
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i], _ = c.Get("mailer")
		}()
	}
	wg.Wait()

	for _, inst := range got[1:] {
		assert.Same(t, got[0], inst)
	}
}

// ── Resolve ───────────────────────────────────────────────────────────────────

func TestResolve_BypassesSingletonCache(t *testing.T) {
	c := newContainer(t, container.Entry{Name: "mailer", Type: "container_test.Mailer", Singleton: true})

	a, err := c.Resolve("container_test.Mailer")
	require.NoError(t, err)
	b, err := c.Resolve("container_test.Mailer")
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.False(t, c.Resolved("mailer"))
}

func TestResolve_RegistryAliasedParameterUsesGet(t *testing.T) {
	c := newContainer(t, container.Entry{Name: "mailer", Type: "container_test.Mailer", Singleton: true})

	a, err := container.Make[*Notifier](c)
	require.NoError(t, err)
	b, err := container.Make[*Notifier](c)
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.Same(t, a.Mailer, b.Mailer, "aliased singleton must be shared")
	assert.True(t, c.Resolved("mailer"))
}

func TestResolve_ValueParameterIgnoresPointerEntry(t *testing.T) {
	c := newContainer(t, container.Entry{Name: "mailer", Type: "container_test.Mailer", Singleton: true})
	require.NoError(t, c.Provide(NewEnvelope))

	env, err := container.Make[*Envelope](c)
	require.NoError(t, err)
	assert.Nil(t, env.Mailer.Transport, "value parameter is zero-constructed")
	assert.False(t, c.Resolved("mailer"), "pointer-producing entry is not used for a value parameter")
}

func TestResolve_UnaliasedParameterIsBuiltFresh(t *testing.T) {
	c := newContainer(t)

	a, err := container.Make[*Notifier](c)
	require.NoError(t, err)
	b, err := container.Make[*Notifier](c)
	require.NoError(t, err)

	assert.NotSame(t, a.Mailer, b.Mailer)
	assert.NotNil(t, a.Mailer.Transport, "constructor-less dependency is zero-constructed")
}

func TestResolve_PrimitiveDefault(t *testing.T) {
	c := newContainer(t)

	n, err := container.Make[*Notifier](c)
	require.NoError(t, err)
	assert.Equal(t, 3, n.Retries)
}

func TestResolve_PrimitiveWithoutDefaultFails(t *testing.T) {
	c := container.New(nil)
	require.NoError(t, c.Provide(NewNotifier, container.WithParams("mailer", "retries")))

	_, err := c.Resolve("container_test.Notifier")
	require.ErrorIs(t, err, container.ErrUnresolvableParameter)

	var perr *container.ParameterError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "retries", perr.Param)
	assert.Equal(t, "int", perr.Type)
	assert.Equal(t, "container_test.Notifier", perr.Owner)
}

func TestResolve_UnnamedParameterReportsPosition(t *testing.T) {
	c := container.New(nil)
	require.NoError(t, c.Provide(NewNotifier))

	_, err := c.Resolve("container_test.Notifier")

	var perr *container.ParameterError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "arg1", perr.Param)
}

func TestResolve_NonPrimitiveDefaultWins(t *testing.T) {
	c := newContainer(t, container.Entry{Name: "mailer", Type: "container_test.Mailer", Singleton: true})
	fixed := &Transport{Host: "fixed"}
	require.NoError(t, c.Provide(NewMailer,
		container.WithParams("transport"),
		container.WithDefault("transport", fixed)))

	m, err := container.Make[*Mailer](c)
	require.NoError(t, err)
	assert.Same(t, fixed, m.Transport)
}

func TestResolve_InjectsContainer(t *testing.T) {
	c := container.New(nil)
	require.NoError(t, c.Provide(func(c *container.Container) *SelfAware { return &SelfAware{C: c} }))

	got, err := container.Make[*SelfAware](c)
	require.NoError(t, err)
	assert.Same(t, c, got.C)
}

func TestResolve_InterfaceParameter(t *testing.T) {
	t.Run("not instantiable without a provider", func(t *testing.T) {
		c := container.New(nil)
		require.NoError(t, c.Provide(func(s Sender) *Outbox { return &Outbox{Sender: s} }))

		_, err := c.Resolve("container_test.Outbox")
		assert.ErrorIs(t, err, container.ErrNotInstantiable)
	})

	t.Run("provided interface constructor", func(t *testing.T) {
		c := container.New(nil)
		require.NoError(t, c.Provide(func(s Sender) *Outbox { return &Outbox{Sender: s} }))
		require.NoError(t, c.Provide(func() Sender { return stubSender{} }))

		got, err := container.Make[*Outbox](c)
		require.NoError(t, err)
		assert.IsType(t, stubSender{}, got.Sender)
	})
}

type stubSender struct{}

func (stubSender) Send(string) error { return nil }

func TestResolve_UnknownType(t *testing.T) {
	c := container.New(nil)

	_, err := c.Resolve("nope.Missing")
	assert.ErrorIs(t, err, container.ErrUnknownType)
}

func TestResolve_CircularDependency(t *testing.T) {
	c := container.New(nil)
	require.NoError(t, c.Provide(func(e *egg) *chicken { return &chicken{egg: e} }))
	require.NoError(t, c.Provide(func(ch *chicken) *egg { return &egg{chicken: ch} }))

	_, err := c.Resolve("container_test.chicken")
	assert.ErrorIs(t, err, container.ErrCircularDependency)
}

func TestResolve_ConstructorError(t *testing.T) {
	c := container.New(nil)
	boom := errors.New("dial failed")
	require.NoError(t, c.Provide(func() (*Transport, error) { return nil, boom }))

	_, err := c.Resolve("container_test.Transport")
	assert.ErrorIs(t, err, boom)
}

func TestResolve_VariadicTailIsOptional(t *testing.T) {
	c := container.New(nil)
	require.NoError(t, c.Provide(func(hosts ...string) *Transport {
		return &Transport{Host: "n=" + string(rune('0'+len(hosts)))}
	}))

	got, err := container.Make[*Transport](c)
	require.NoError(t, err)
	assert.Equal(t, "n=0", got.Host)
}

func TestDeclare_ZeroValueConstruction(t *testing.T) {
	c := container.New(nil)
	c.Declare((*Transport)(nil))

	assert.True(t, c.Provides("container_test.Transport"))
	got, err := c.Resolve("container_test.Transport")
	require.NoError(t, err)
	assert.IsType(t, &Transport{}, got)
}

// ── Provide ───────────────────────────────────────────────────────────────────

func TestProvide_RejectsNonConstructors(t *testing.T) {
	c := container.New(nil)

	tests := []struct {
		name string
		ctor any
	}{
		{"not a func", 42},
		{"no results", func() {}},
		{"second result not error", func() (*Transport, int) { return nil, 0 }},
		{"too many names", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.ctor == nil {
				err = c.Provide(NewMailer, container.WithParams("a", "b"))
			} else {
				err = c.Provide(tt.ctor)
			}
			assert.ErrorIs(t, err, container.ErrInvalidConstructor)
		})
	}
}

func TestProvide_BadDefaultFailsAtResolve(t *testing.T) {
	c := container.New(nil)
	require.NoError(t, c.Provide(NewNotifier,
		container.WithParams("mailer", "retries"),
		container.WithDefault("retries", "three")))

	_, err := c.Resolve("container_test.Notifier")
	assert.ErrorIs(t, err, container.ErrInvalidConstructor)
}

// ── Generics ──────────────────────────────────────────────────────────────────

func TestResolveGeneric_TypeMismatch(t *testing.T) {
	c := container.New(nil)
	c.Instance("transport", &Transport{})

	_, err := container.Resolve[*Mailer](c, "transport")
	assert.Error(t, err)
}

func TestKeyOf(t *testing.T) {
	assert.Equal(t, "container_test.Mailer", container.KeyOf[*Mailer]())
	assert.Equal(t, "container_test.Sender", container.KeyOf[Sender]())
	assert.Equal(t, "container_test.Mailer", container.TypeKey(&Mailer{}))
}

// ── Registry ──────────────────────────────────────────────────────────────────

func TestRegistry_OrderAndLookup(t *testing.T) {
	r := container.NewRegistry(
		container.Entry{Name: "a", Type: "pkg.A"},
		container.Entry{Name: "b", Type: "pkg.B", Singleton: true},
		container.Entry{Name: "a2", Type: "pkg.A"},
		container.Entry{Name: "a", Type: "pkg.C"},
	)

	require.Equal(t, 3, r.Len())
	assert.Equal(t, []string{"a", "b", "a2"}, names(r.Entries()))

	e, ok := r.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, "pkg.C", e.Type)

	name, ok := r.NameForType("pkg.A")
	require.True(t, ok)
	assert.Equal(t, "a2", name)

	_, ok = r.NameForType("pkg.Z")
	assert.False(t, ok)
}

func names(entries []container.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}
