package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/madkins23/mongo-harness/mdb"
	"github.com/madkins23/mongo-harness/mdbenv"
)

func main() {
	if len(os.Args) > 2 {
		fmt.Println("usage: dbping [dbname]")
		os.Exit(2)
	}

	settings, err := mdbenv.Load()
	if err != nil {
		fmt.Printf("Unable to load settings: %s\n", err)
		os.Exit(1)
	}

	logger := mdb.Logger(settings)
	log.Logger = logger.With().Str("component", "dbping").Logger()
	zerolog.SetGlobalLevel(logger.GetLevel())

	dbName := settings.Database
	if len(os.Args) == 2 {
		dbName = os.Args[1]
	}
	timeout, err := time.ParseDuration(mdbenv.Read("DBPING_TIMEOUT", mdb.DefaultConnectTimeout.String()))
	if err != nil {
		log.Error().Err(err).Msg("Bad DBPING_TIMEOUT")
		os.Exit(2)
	}
	log.Debug().Strs("defaulted", mdbenv.Defaulted()).Msg("Settings")
	log.Debug().Str("uri", settings.Redacted()).Str("database", dbName).Dur("timeout", timeout).Msg("Connecting")

	access, err := mdb.Connect(dbName, &mdb.Config{Settings: settings, Timeout: mdb.Timeout{Connect: timeout}})
	if err != nil {
		log.Error().Err(err).Str("uri", settings.Redacted()).Msgf("Unable to connect to %s", dbName)
		os.Exit(1)
	}
	if err := access.Disconnect(); err != nil {
		log.Error().Err(err).Msgf("Unable to disconnect from %s", dbName)
		os.Exit(1)
	}
}
