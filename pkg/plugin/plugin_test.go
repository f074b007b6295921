package plugin

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.evaluator/pkg/assertion"
	"digital.vasic.evaluator/pkg/bank"
	"digital.vasic.evaluator/pkg/logging"
)

type mockPlugin struct {
	name    string
	version string
	initErr error
	inits   int
}

func (m *mockPlugin) Name() string    { return m.name }
func (m *mockPlugin) Version() string { return m.version }
func (m *mockPlugin) Init(_ *Context) error {
	if m.initErr != nil {
		return m.initErr
	}
	m.inits++
	return nil
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register(&mockPlugin{name: "test", version: "1.0"}))
	assert.Equal(t, 1, r.Count())

	assert.ErrorContains(t,
		r.Register(&mockPlugin{name: "test"}), "already registered")
	assert.ErrorContains(t, r.Register(nil), "cannot be nil")
	assert.ErrorContains(t,
		r.Register(&mockPlugin{name: ""}), "name cannot be empty")

	p, ok := r.Get("test")
	assert.True(t, ok)
	assert.Equal(t, "1.0", p.Version())

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestRegistry_InitAll(t *testing.T) {
	r := NewRegistry()
	a := &mockPlugin{name: "a"}
	b := &mockPlugin{name: "b"}
	require.NoError(t, r.Register(b))
	require.NoError(t, r.Register(a))

	var logs bytes.Buffer
	ctx := &Context{Logger: logging.NewConsoleLoggerTo(&logs, logging.LevelDebug)}
	require.NoError(t, r.InitAll(ctx))
	require.NoError(t, r.InitAll(ctx))

	assert.Equal(t, 1, a.inits)
	assert.Equal(t, 1, b.inits)
	assert.True(t, r.IsLoaded("a"))
	assert.Equal(t, []string{"a", "b"}, r.List())
	assert.Contains(t, logs.String(), "plugin_loaded")
}

func TestRegistry_InitError(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&mockPlugin{
		name: "broken", initErr: errors.New("boom"),
	}))

	err := r.InitAll(&Context{})
	assert.ErrorContains(t, err, `init plugin "broken": boom`)
	assert.False(t, r.IsLoaded("broken"))
}

func TestRegistry_Init(t *testing.T) {
	r := NewRegistry()
	p := &mockPlugin{name: "one"}
	require.NoError(t, r.Register(p))

	require.NoError(t, r.Init("one", &Context{}))
	require.NoError(t, r.Init("one", &Context{}))
	assert.Equal(t, 1, p.inits)

	assert.ErrorContains(t, r.Init("two", &Context{}), "not found")
}

func TestRegistry_LoadAndInit(t *testing.T) {
	r := NewRegistry()
	engine := assertion.NewEngine()

	err := r.LoadAndInit(
		[]Plugin{NumericPlugin{}, &mockPlugin{name: "extra"}},
		&Context{Engine: engine},
	)
	require.NoError(t, err)
	assert.True(t, engine.HasEvaluator(TypeInRange))
	assert.Equal(t, 2, r.Count())

	err = r.LoadAndInit([]Plugin{NumericPlugin{}}, &Context{Engine: engine})
	assert.ErrorContains(t, err, "load plugin")
}

const extraSuite = `
version: "1"
name: extra
scenarios:
  - id: extra-add
    operation: add
    args: [20, 22]
    expect: ["equals:42"]
`

func TestSuitePlugin(t *testing.T) {
	b := bank.New()
	p := &SuitePlugin{PluginName: "extra", Data: []byte(extraSuite)}

	require.NoError(t, p.Init(&Context{Bank: b}))
	assert.Equal(t, 1, b.Count())
	assert.Equal(t, []string{"plugin:extra"}, b.Sources())

	assert.ErrorContains(t, p.Init(&Context{}), "needs a bank")
}
