package main

import (
	"context"
	"log"
	"os"

	"github.com/ANITHAC1201/joicy/internal/buildinfo"
	"github.com/ANITHAC1201/joicy/internal/server"
	"github.com/ANITHAC1201/joicy/internal/server/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
