package main

import (
	"context"
	"log"
	"os"

	"github.com/ANITHAC1201/joicy/internal/buildinfo"
	"github.com/ANITHAC1201/joicy/internal/client/cli"
	"github.com/ANITHAC1201/joicy/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
