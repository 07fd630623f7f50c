package main

import (
	"os"

	"github.com/df07/go-sah-raytracer/pkg/log"
	"github.com/urfave/cli"
)

var logger = log.New("sah-raytracer")

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	// The default version flag claims -v, which is the verbose flag here
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "sah-raytracer"
	app.Usage = "render sphere scenes with a SAH bounding volume hierarchy"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "explicit log level (debug, info, notice, warning, error), overrides -v and -vv",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a built-in scene",
			Description: `
Build the selected scene, wrap its objects in a BVH and path trace it against
a sky gradient. Zero valued flags keep the scene's recommended settings.

The image is written as a plain PPM (P3) to stdout by default, or to the file
given with --out. Files ending in .png are encoded as PNG instead.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene, s",
					Value: "default",
					Usage: "built-in scene id, see the scenes command",
				},
				cli.IntFlag{
					Name:  "width",
					Usage: "image width, height follows the aspect ratio when omitted",
				},
				cli.IntFlag{
					Name:  "height",
					Usage: "image height, width follows the aspect ratio when omitted",
				},
				cli.IntFlag{
					Name:  "spp",
					Usage: "samples per pixel",
				},
				cli.IntFlag{
					Name:  "depth",
					Usage: "maximum ray bounce depth",
				},
				cli.Int64Flag{
					Name:  "seed",
					Usage: "base seed for per-row samplers, row j uses seed + j (default: scene seed)",
				},
				cli.IntFlag{
					Name:  "workers",
					Usage: "number of render workers, 0 uses every CPU",
				},
				cli.StringFlag{
					Name:  "split",
					Value: "median",
					Usage: "BVH partition strategy: median or sah",
				},
				cli.BoolFlag{
					Name:  "stats",
					Usage: "log BVH and render statistics tables",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "-",
					Usage: "output filename, - for stdout",
				},
			},
			Action: RenderScene,
		},
		{
			Name:   "scenes",
			Usage:  "list built-in scenes",
			Action: ListScenes,
		},
	}
	return app
}
