package textcloud

import (
	"fmt"
	"reflect"
	"runtime"
)

type systemFn any

type Module interface {
	Install(app *App, cmd *Commands)
}

type App struct {
	modules   []Module
	stages    []Stage
	systems   map[string][]systemFn
	resources map[reflect.Type]any

	started  bool
	quit     bool
	cleanups []func()
}

func NewApp() *App {
	app := &App{
		systems:   make(map[string][]systemFn),
		resources: make(map[reflect.Type]any),
	}
	for _, stage := range defaultStages {
		app.stages = append(app.stages, stage)
		app.systems[stage.Name] = make([]systemFn, 0)
	}
	return app
}

// UseModules installs modules in order. Later modules can rely on the
// resources added by earlier ones.
func (app *App) UseModules(modules ...Module) *App {
	cmd := app.Commands()
	for _, module := range modules {
		app.modules = append(app.modules, module)
		module.Install(app, cmd)
	}
	return app
}

func (app *App) Commands() *Commands {
	return &Commands{
		app: app,
	}
}

// Run steps the app until a system requests quit, then runs cleanups in
// reverse registration order.
func (app *App) Run() {
	defer app.cleanup()

	app.Logger().Debugf("running %d modules in %d stages", len(app.modules), len(app.stages))
	for !app.quit {
		app.Step()
	}
}

// Step runs every stage once. Startup systems run on the first step only.
func (app *App) Step() {
	if !app.started {
		app.started = true
		for _, system := range app.systems[Startup.Name] {
			app.callSystem(system)
		}
	}

	for _, stage := range app.stages {
		if stage.Name == Startup.Name {
			continue
		}
		for _, system := range app.systems[stage.Name] {
			app.callSystem(system)
		}
	}
}

func (app *App) Quitting() bool {
	return app.quit
}

func (app *App) requestQuit() {
	app.quit = true
}

func (app *App) cleanup() {
	for i := len(app.cleanups) - 1; i >= 0; i-- {
		app.cleanups[i]()
	}
	app.cleanups = nil
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if resourceType.Kind() != reflect.Pointer {
			panic(fmt.Sprintf("%s is not a pointer", resourceType))
		}
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		app.resources[resourceType.Elem()] = resource
	}
	return app
}

// Resource looks up a resource added as *T.
func Resource[T any](app *App) (*T, bool) {
	r, ok := app.resources[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return nil, false
	}
	return r.(*T), true
}

var typeOfCommands = reflect.TypeOf(Commands{})

func (app *App) callSystem(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())

	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)

		if argType.Kind() == reflect.Interface {
			if impl, ok := app.resolveInterface(argType); ok {
				args[i] = impl
				continue
			}
		} else if argType.Kind() == reflect.Pointer {
			underlyingType := argType.Elem()
			if underlyingType == typeOfCommands {
				args[i] = reflect.ValueOf(app.Commands())
				continue
			}
			if resource, ok := app.resources[underlyingType]; ok {
				args[i] = reflect.ValueOf(resource)
				continue
			}
		}

		msg := fmt.Sprintf("Unable to resolve System dependency.\nSystem: %s\nSystem type: %s\nDependency: %s",
			runtime.FuncForPC(systemValue.Pointer()).Name(),
			fmt.Sprint(systemType),
			fmt.Sprint(argType),
		)
		panic(msg)
	}
	systemValue.Call(args)
}

// resolveInterface finds a resource implementing iface. A Logger is always
// resolvable.
func (app *App) resolveInterface(iface reflect.Type) (reflect.Value, bool) {
	for _, r := range app.resources {
		if reflect.TypeOf(r).Implements(iface) {
			v := reflect.New(iface).Elem()
			v.Set(reflect.ValueOf(r))
			return v, true
		}
	}
	if iface == typeOfLogger {
		v := reflect.New(iface).Elem()
		v.Set(reflect.ValueOf(NewNopLogger()))
		return v, true
	}
	return reflect.Value{}, false
}
