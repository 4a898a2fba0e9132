package main

import (
	"flag"
	"net/http"

	"nyayalens-backend/lib/configutil"
	"nyayalens-backend/lib/util/serviceutil"
	"nyayalens-backend/lib/util/sqliteutil"
	"nyayalens-backend/services/caselookup"
	caselookupdb "nyayalens-backend/services/caselookup/db"
)

type Config struct {
	DatabasePath string            `json:"database_path"`
	Port         int               `json:"port"`
	Lookup       caselookup.Config `json:"lookup"`
}

func main() {
	verbose := flag.Bool("v", false, "enable verbose logging")
	flag.Parse()

	ctx := serviceutil.SignalContext()
	InitTelemetry(ctx, *verbose)

	config, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	if config.DatabasePath == "" {
		config.DatabasePath = "caselookup.db"
	}
	if config.Port == 0 {
		config.Port = 8000
	}

	db, err := sqliteutil.OpenDB(caselookupdb.Schema, config.DatabasePath)
	if err != nil {
		serviceutil.Fatal("failed to open database", err)
	}

	mux := http.NewServeMux()
	caselookup.RegisterRoutes(mux, caselookup.NewService(db, config.Lookup))
	go serviceutil.StartHttpServer(config.Port, mux)

	<-ctx.Done()
}
