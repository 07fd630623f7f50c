package main

import (
	"github.com/df07/go-sah-raytracer/pkg/log"
	"github.com/urfave/cli"
)

func setupLogging(ctx *cli.Context) error {
	level := log.Verbosity(ctx.GlobalBool("v"), ctx.GlobalBool("vv"))
	if name := ctx.GlobalString("log-level"); name != "" {
		parsed, err := log.ParseLevel(name)
		if err != nil {
			return err
		}
		level = parsed
	}

	log.SetLevel(level)
	return nil
}
