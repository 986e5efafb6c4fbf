package orbitcam

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResource1 struct {
	name string
}
type MockResource2 struct {
	name string
}

type MockModule struct {
	installed bool
}

func (m *MockModule) Install(app *App, commands *Commands) {
	m.installed = true
}

// resourceModule registers a resource ahead of the modules under test.
type resourceModule struct {
	resource any
}

func (m resourceModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(m.resource)
}

type recordingLogger struct {
	nopLogger
	infos  []string
	warns  []string
	errors []string
}

func (l *recordingLogger) Infof(format string, args ...any) {
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Warnf(format string, args ...any) {
	l.warns = append(l.warns, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Errorf(format string, args ...any) {
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}

func TestAppBuilder_InstallsModules(t *testing.T) {
	module := &MockModule{}
	app := NewAppBuilder().UseModule(module).Build()

	require.NotNil(t, app)
	assert.True(t, module.installed)
}

func TestApp_AddResources(t *testing.T) {
	app := NewAppBuilder().Build()

	resource1 := &MockResource1{name: "Resource1"}
	app.addResources(resource1)

	stored, ok := app.resources[reflect.TypeOf(MockResource1{})]
	require.True(t, ok)
	assert.Same(t, resource1, stored)
}

func TestApp_AddDuplicateResourcePanics(t *testing.T) {
	app := NewAppBuilder().Build()
	app.addResources(&MockResource1{})

	assert.Panics(t, func() {
		app.addResources(&MockResource1{})
	})
}

func TestApp_AddValueResourcePanics(t *testing.T) {
	app := NewAppBuilder().Build()

	assert.Panics(t, func() {
		app.addResources(MockResource1{})
	})
}

func TestApp_SystemInjection(t *testing.T) {
	app := NewAppBuilder().Build()
	app.addResources(&MockResource1{name: "hello"})

	var got string
	app.UseSystem(System(func(res *MockResource1, cmd *Commands) {
		got = res.name
		require.NotNil(t, cmd)
	}))

	app.Update()
	assert.Equal(t, "hello", got)
}

func TestApp_UnresolvableSystemDependencyPanics(t *testing.T) {
	app := NewAppBuilder().Build()
	app.UseSystem(System(func(res *MockResource2) {}))

	assert.Panics(t, func() {
		app.Update()
	})
}

func TestApp_StageOrder(t *testing.T) {
	app := NewAppBuilder().Build()

	var order []string
	record := func(name string) systemScheduleBuilder {
		return System(func() {
			order = append(order, name)
		})
	}

	app.UseSystem(record("post").InStage(PostUpdate))
	app.UseSystem(record("update").InStage(Update))
	app.UseSystem(record("pre").InStage(PreUpdate))

	app.Update()
	assert.Equal(t, []string{"pre", "update", "post"}, order)
}

func TestApp_UseStageInsertsRelative(t *testing.T) {
	app := NewAppBuilder().Build()
	prelude := Stage{Name: "Prelude"}
	finale := Stage{Name: "Finale"}
	app.UseStage(prelude, BeforeStage(PreUpdate))
	app.UseStage(finale, AfterStage(PostUpdate))

	var order []string
	app.UseSystem(System(func() { order = append(order, "prelude") }).InStage(prelude))
	app.UseSystem(System(func() { order = append(order, "update") }).InStage(Update))
	app.UseSystem(System(func() { order = append(order, "finale") }).InStage(finale))

	app.Update()
	assert.Equal(t, []string{"prelude", "update", "finale"}, order)
}

func TestApp_UnknownStagePanics(t *testing.T) {
	app := NewAppBuilder().Build()

	assert.Panics(t, func() {
		app.UseSystem(System(func() {}).InStage(Stage{Name: "Nope"}))
	})
	assert.Panics(t, func() {
		app.UseStage(Stage{Name: "New"}, BeforeStage(Stage{Name: "Nope"}))
	})
}

func TestApp_RunStopsOnQuitRequest(t *testing.T) {
	app := NewAppBuilder().Build()

	frames := 0
	app.UseSystem(System(func(control *AppControl) {
		frames++
		if frames >= 3 {
			control.QuitRequested = true
		}
	}))

	app.Run()
	assert.Equal(t, 3, frames)
}

func TestApp_LoggerFallback(t *testing.T) {
	app := NewAppBuilder().Build()
	assert.NotNil(t, app.Logger())

	logger := NewDefaultLogger("test", true)
	app.addResources(logger)
	assert.Same(t, logger, app.Logger())
}
