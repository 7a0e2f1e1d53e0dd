// Showcase opens a menu linking three small animated scenes: card stacks
// shuffling between piles, a random text and image collage, and a particle
// flame. Press 1, 2 or 3 to jump to a scene and Escape to return.
package main

import (
	"flag"
	"io/fs"
	"log"
	"os"

	"github.com/phanxgames/showcase"
	"github.com/phanxgames/showcase/app"
	"github.com/phanxgames/showcase/assets"
	"github.com/phanxgames/showcase/config"
)

var (
	configPath  = flag.String("config", "", "YAML settings file (defaults built in)")
	assetsDir   = flag.String("assets", "", "directory holding manifest.yaml (embedded set if empty)")
	seed        = flag.Uint64("seed", 0, "random seed, 0 picks one from the clock")
	scriptPath  = flag.String("script", "", "JSON test script to run; exits when done")
	screenshots = flag.String("screenshots", "", "directory for scripted screenshots")
	debug       = flag.Bool("debug", false, "log scene switches and resizes")
)

func main() {
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatal(err)
		}
	}

	var fsys fs.FS = assets.FS
	if *assetsDir != "" {
		fsys = os.DirFS(*assetsDir)
	}
	images, err := showcase.LoadAssets(fsys, assets.ManifestPath)
	if err != nil {
		log.Fatal(err)
	}

	var script *showcase.TestRunner
	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			log.Fatalf("read script: %v", err)
		}
		if script, err = showcase.LoadTestScript(data); err != nil {
			log.Fatal(err)
		}
	}

	a, err := app.New(app.Options{
		Config:        cfg,
		Assets:        images,
		Rand:          showcase.NewRand(*seed),
		Script:        script,
		ScreenshotDir: *screenshots,
		Debug:         *debug,
	})
	if err != nil {
		log.Fatal(err)
	}
	if err := a.Run(); err != nil {
		log.Fatal(err)
	}
}
