package main

import (
	"log"
	"net/http"
	"os"

	"fuelops/internal/stationtest"

	"github.com/spf13/cobra"
)

var demoPort string

// demoCmd serves the in-memory fake station API locally, so the CLI can be
// exercised end to end without a real backend:
//
//	fuelops demo --port 9090 &
//	FUELOPS_API_URL=http://localhost:9090 fuelops login manager@station.test
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Serve a local in-memory demo of the station API",
	RunE: func(cmd *cobra.Command, args []string) error {
		log.SetOutput(os.Stderr)

		log.Println("═══════════════════════════════════════════════")
		log.Println("🚀 FUELOPS DEMO STATION STARTING")
		log.Println("═══════════════════════════════════════════════")
		log.Println("✅ Seeded demo data (login: manager@station.test / fuel123)")
		log.Printf("🚀 Serving on http://localhost:%s", demoPort)

		return http.ListenAndServe(":"+demoPort, stationtest.New().Handler())
	},
}

func init() {
	demoCmd.Flags().StringVar(&demoPort, "port", "9090", "port to serve on")
}
