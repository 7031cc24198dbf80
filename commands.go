package textcloud

type Commands struct {
	app *App
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

func (cmd *Commands) UseSystem(system systemScheduleBuilder) *Commands {
	cmd.app.UseSystem(system)
	return cmd
}

// Quit stops the app after the current step.
func (cmd *Commands) Quit() {
	cmd.app.requestQuit()
}

// Defer registers fn to run when the app stops. Cleanups run last in, first out.
func (cmd *Commands) Defer(fn func()) {
	cmd.app.cleanups = append(cmd.app.cleanups, fn)
}

func (cmd *Commands) Logger() Logger {
	return cmd.app.Logger()
}
