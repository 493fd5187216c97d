package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"fuelops/internal/render"

	"github.com/spf13/cobra"
)

var tanksCmd = &cobra.Command{
	Use:   "tanks",
	Short: "List fuel tanks and current dip levels",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		tanks, err := a.refdata.Tanks(cmd.Context())
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "TANK\tFUEL\tLEVEL\tCAPACITY\tFILL")
		for i := range tanks {
			t := &tanks[i]
			low := ""
			if t.IsLow() {
				low = "  ⚠️ LOW"
			}
			fmt.Fprintf(tw, "%s\t%s\t%.1f L\t%.0f L\t%.0f%%%s\n",
				t.Name, t.FuelType, t.CurrentLevel, t.Capacity, t.FillPercentage()*100, low)
		}
		return tw.Flush()
	},
}

var pumpsCmd = &cobra.Command{
	Use:   "pumps",
	Short: "List pumps, nozzles and counter readings",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		pumps, err := a.refdata.Pumps(cmd.Context())
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "PUMP\tNOZZLE\tFUEL\tCOUNTER\tASSIGNED")
		for _, p := range pumps {
			for _, n := range p.Nozzles {
				assigned := "-"
				if n.AssignedEmployee != nil {
					assigned = *n.AssignedEmployee
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%s\n", p.Name, n.ID, n.FuelType, n.CurrentReading, assigned)
			}
		}
		return tw.Flush()
	},
}

var employeesCmd = &cobra.Command{
	Use:   "employees",
	Short: "List station employees",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		employees, err := a.refdata.Employees(cmd.Context())
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tROLE\tPHONE")
		for _, e := range employees {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.ID, e.Name, e.Role, e.Phone)
		}
		return tw.Flush()
	},
}

var pricesCmd = &cobra.Command{
	Use:   "prices",
	Short: "List current fuel prices",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		prices, err := a.refdata.FuelPrices(cmd.Context())
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "FUEL\tPRICE/L\tEFFECTIVE FROM")
		for _, p := range prices {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", p.FuelType, render.Money(p.PricePerLitre),
				time.Unix(p.EffectiveFrom, 0).Format("02 Jan 2006"))
		}
		return tw.Flush()
	},
}
