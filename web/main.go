package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/mattn/go-colorable"
	log "github.com/sirupsen/logrus"

	"github.com/df07/go-grid-raytracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	sceneDir := flag.String("scenes", "scenes", "Directory of YAML and JSON scene files")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	log.SetOutput(colorable.NewColorableStderr())
	log.SetFormatter(&log.TextFormatter{ForceColors: true, FullTimestamp: true})
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Infof("Grid Raytracer Web Server, API at http://localhost:%d/api", *port)
	if err := server.NewServer(*port, *sceneDir, log.StandardLogger()).Start(ctx); err != nil {
		log.WithError(err).Error("Server failed")
		os.Exit(1)
	}
}
