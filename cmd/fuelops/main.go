package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"fuelops/internal/api"
	"fuelops/internal/attendance"
	"fuelops/internal/refdata"
	"fuelops/internal/session"
	"fuelops/internal/shift"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// app bundles the wired-up workflow services behind the commands
type app struct {
	cfg        Config
	client     *api.Client
	session    *session.Store
	refdata    *refdata.Service
	shifts     *shift.Manager
	attendance *attendance.Recorder
}

var (
	verbose bool
	a       app
)

var rootCmd = &cobra.Command{
	Use:          "fuelops",
	Short:        "Fuel station shift and attendance management",
	Long:         "fuelops is the terminal front end for the fuel-station management API:\nshift lifecycle (open, close with reconciliation readings) and employee\nattendance against the active shift.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !verbose && os.Getenv("FUELOPS_DEBUG") == "" {
			log.SetOutput(io.Discard)
		}

		// .env is optional; real configuration may come from the system env
		if err := godotenv.Load(); err == nil {
			log.Println("✅ .env file loaded")
		}

		cfg, err := LoadConfig()
		if err != nil {
			return err
		}

		a.cfg = cfg
		a.client = api.NewClient(cfg.APIURL)
		a.session = session.NewStore(a.client, cfg.SessionFile)
		a.refdata = refdata.NewService(a.client)
		a.shifts = shift.NewManager(a.client, a.refdata)
		a.attendance = attendance.NewRecorder(a.client, a.shifts)
		return nil
	},
}

// requireAuth gates commands that need a logged-in session
func requireAuth() error {
	if !a.session.IsAuthenticated() {
		return fmt.Errorf("not logged in - run 'fuelops login' first")
	}
	return nil
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable request logging")

	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
	rootCmd.AddCommand(shiftCmd)
	rootCmd.AddCommand(attendanceCmd)
	rootCmd.AddCommand(tanksCmd, pumpsCmd, employeesCmd, pricesCmd)
	rootCmd.AddCommand(demoCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
