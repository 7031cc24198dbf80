package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/gekko3d/textcloud"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "TOML config file")
	text := flag.String("text", "", "text to draw, overrides the config")
	debug := flag.Bool("debug", false, "enable debug logging")
	watch := flag.Bool("watch", false, "reload the config file when it changes")
	snapshot := flag.String("snapshot", "", "PNG path written when S is pressed, or once with -headless")
	headless := flag.Bool("headless", false, "render the snapshot without a window and exit")
	flag.Parse()

	cfg := textcloud.DefaultConfig()
	if *configPath != "" {
		loaded, err := textcloud.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}

	app := textcloud.NewApp().UseModules(
		textcloud.LoggingModule{Prefix: "textcloud", Debug: *debug},
		textcloud.ConfigModule{Config: cfg},
	)

	if *headless {
		if *snapshot == "" {
			fmt.Fprintln(os.Stderr, "-headless needs -snapshot")
			os.Exit(2)
		}
		app.UseModules(
			textcloud.InputModule{},
			textcloud.TextParticlesModule{Text: *text},
			textcloud.SnapshotModule{Path: *snapshot, Headless: true},
		)
		app.Run()
		return
	}

	app.UseModules(
		textcloud.NewPlatformWindow(cfg.Window),
		textcloud.InputModule{},
		textcloud.TimeModule{},
		textcloud.TextParticlesModule{Text: *text},
		textcloud.RenderModule{},
		textcloud.InspectorModule{},
		textcloud.SnapshotModule{Path: *snapshot},
	)
	if *watch {
		if *configPath == "" {
			app.Logger().Warnf("-watch needs -config")
		}
		app.UseModules(textcloud.ConfigWatchModule{Path: *configPath})
	}
	app.Run()
}
