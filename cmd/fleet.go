package cmd

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kilianp07/skylark/app"
)

var listStatus string

var pilotsCmd = &cobra.Command{Use: "pilots", Short: "Pilot roster commands"}
var dronesCmd = &cobra.Command{Use: "drones", Short: "Drone fleet commands"}
var missionsCmd = &cobra.Command{Use: "missions", Short: "Mission commands"}

var pilotsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List pilots",
	RunE:  listCmd(listPilots),
}

var dronesLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List drones",
	RunE:  listCmd(listDrones),
}

var missionsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List missions",
	RunE:  listCmd(listMissions),
}

func init() {
	pilotsLsCmd.Flags().StringVar(&listStatus, "status", "", "only show pilots with this status")
	dronesLsCmd.Flags().StringVar(&listStatus, "status", "", "only show drones with this status")
	pilotsCmd.AddCommand(pilotsLsCmd)
	dronesCmd.AddCommand(dronesLsCmd)
	missionsCmd.AddCommand(missionsLsCmd)
	rootCmd.AddCommand(pilotsCmd, dronesCmd, missionsCmd)
}

type lister func(context.Context, *app.Service, *tabwriter.Writer) error

func listCmd(fn lister) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		return withService(cmd.Context(), func(ctx context.Context, svc *app.Service) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			if err := fn(ctx, svc, w); err != nil {
				return err
			}
			return w.Flush()
		})
	}
}

func keep(status string) bool {
	return listStatus == "" || strings.EqualFold(listStatus, status)
}

func listPilots(ctx context.Context, svc *app.Service, w *tabwriter.Writer) error {
	pilots, err := svc.Fleet.Pilots(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "NAME\tSTATUS\tLOCATION\tSKILLS\tCERTIFICATIONS\tASSIGNMENT")
	for _, p := range pilots {
		if !keep(string(p.Status)) {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", p.Name, p.Status, p.Location,
			strings.Join(p.Skills.Sorted(), ","), strings.Join(p.Certifications.Sorted(), ","), p.CurrentAssignment)
	}
	return nil
}

func listDrones(ctx context.Context, svc *app.Service, w *tabwriter.Writer) error {
	drones, err := svc.Fleet.Drones(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "ID\tMODEL\tSTATUS\tLOCATION\tCAPABILITIES")
	for _, d := range drones {
		if !keep(d.Status) {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", d.ID, d.Model, d.Status, d.Location, strings.Join(d.Capabilities.Sorted(), ","))
	}
	return nil
}

func listMissions(ctx context.Context, svc *app.Service, w *tabwriter.Writer) error {
	missions, err := svc.Fleet.Missions(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "PROJECT\tCLIENT\tLOCATION\tPRIORITY\tSKILLS\tCERTIFICATIONS\tCAPABILITIES")
	for _, m := range missions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", m.ProjectID, m.Client, m.Location, m.Priority,
			strings.Join(m.RequiredSkills.Sorted(), ","),
			strings.Join(m.RequiredCertifications.Sorted(), ","),
			strings.Join(m.RequiredCapabilities.Sorted(), ","))
	}
	return nil
}
