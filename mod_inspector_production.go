//go:build production

package textcloud

type InspectorModule struct{}

func (m InspectorModule) Install(app *App, cmd *Commands) {}
