package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"github.com/dmitrijs2005/cardcraft/internal/buildinfo"
	"github.com/dmitrijs2005/cardcraft/internal/passgen"
)

func main() {

	opts, err := passgen.ParseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("%v", err)
	}

	if opts.Version {
		buildinfo.PrintBuildData(os.Stdout)
		return
	}

	app := passgen.NewApp(opts, os.Stdin, os.Stdout)
	if _, err := app.Run(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}

}
