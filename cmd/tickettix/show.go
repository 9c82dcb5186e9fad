package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"ticket-tix/internal/catalog"
	"ticket-tix/internal/core/format"
)

func newShowCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <event-id>",
		Short: "Print one event with its ticket categories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid event id %q", args[0])
			}
			ev, err := a.client.Detail(cmd.Context(), id)
			if ev == nil && err == nil {
				err = catalog.ErrNotFound
			}
			if catalog.IsNotFound(err) {
				return fmt.Errorf("event %d: %w", id, catalog.ErrNotFound)
			}
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), ev)
			}
			return writeEvent(cmd.OutOrStdout(), ev)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func writeEvent(w io.Writer, ev *catalog.EventDetail) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (#%d)\n", ev.Name, ev.ID)
	fmt.Fprintf(&b, "  Starts    %s\n", format.DateTime(ev.StartTime))
	if !ev.EndTime.IsZero() {
		fmt.Fprintf(&b, "  Ends      %s\n", format.DateTime(ev.EndTime))
	}
	fmt.Fprintf(&b, "  Location  %s\n", ev.Location)
	if d := strings.TrimSpace(ev.Description); d != "" {
		fmt.Fprintf(&b, "\n%s\n", d)
	}
	for _, img := range ev.Images {
		mark := ""
		if img.IsPrimary {
			mark = " (cover)"
		}
		fmt.Fprintf(&b, "  image     %s%s\n", img.ImageURL, mark)
	}

	b.WriteString("\nTickets\n")
	if len(ev.Categories) == 0 {
		b.WriteString("  No categories available yet\n")
	}
	for _, c := range ev.Categories {
		av := format.AvailabilityOf(c)
		filled, empty := av.Bar(20)
		fmt.Fprintf(&b, "  %-20s %14s  %s%s %d/%d\n",
			c.Name, format.Currency(c.Price), filled, empty, av.Available, av.Total)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
