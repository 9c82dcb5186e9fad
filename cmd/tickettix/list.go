package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"ticket-tix/internal/catalog"
	"ticket-tix/internal/core/browse"
	"ticket-tix/internal/core/format"
	"ticket-tix/internal/infra/logx"
)

type listOptions struct {
	input browse.Input
	pages int
	all   bool
	json  bool
}

func newListCmd(a *app) *cobra.Command {
	var o listOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print events, one page at a time",
		Example: `  tickettix list --name jazz
  tickettix list --location Jakarta --from 2025-11-01 --to 2025-11-30 --all`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cr, errs := o.input.Criteria()
			if len(errs) > 0 {
				return fieldErrors(errs)
			}
			events, hasMore, err := collect(cmd.Context(), a.client, a.cfg.PageSize, cr, o.pages, o.all)
			if err != nil {
				return err
			}
			if o.json {
				return writeJSON(cmd.OutOrStdout(), events)
			}
			return writeEventTable(cmd.OutOrStdout(), events, hasMore)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.input.EventName, "name", "", "filter by event name")
	f.StringVar(&o.input.Location, "location", "", "filter by location")
	f.StringVar(&o.input.From, "from", "", "earliest start date (YYYY-MM-DD)")
	f.StringVar(&o.input.To, "to", "", "latest start date (YYYY-MM-DD)")
	f.IntVar(&o.pages, "pages", 1, "number of pages to fetch")
	f.BoolVar(&o.all, "all", false, "fetch every page")
	f.BoolVar(&o.json, "json", false, "print JSON")
	return cmd
}

// collect drives a browse controller without a UI: one search, then load-more
// until the page budget is spent or the catalog is exhausted.
func collect(ctx context.Context, f browse.Fetcher, pageSize int, cr browse.Criteria, pages int, all bool) ([]catalog.EventSummary, bool, error) {
	ctl := browse.NewController(pageSize).WithContext(ctx)
	defer ctl.Close()

	req := ctl.Search(cr)
	for n := 1; ; n++ {
		res := browse.Fetch(req.Context(), f, req)
		ctl.Apply(res)
		st := ctl.State()
		if st.Err != "" {
			if res.Err != nil {
				return st.Events, st.HasMore, res.Err
			}
			return st.Events, st.HasMore, errors.New(st.Err)
		}
		logx.Debugf("list: page %d of %d events, %d so far", n, ctl.PageSize(), len(st.Events))
		if !all && n >= pages {
			return st.Events, st.HasMore, nil
		}
		next, ok := ctl.LoadMore()
		if !ok {
			return st.Events, st.HasMore, nil
		}
		req = next
	}
}

func writeEventTable(w io.Writer, events []catalog.EventSummary, hasMore bool) error {
	if len(events) == 0 {
		_, err := fmt.Fprintln(w, "No events found")
		return err
	}
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "DATE", "TIME", "NAME", "LOCATION").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	for _, ev := range events {
		t.Row(strconv.FormatInt(ev.ID, 10), format.Date(ev.StartTime), format.Time(ev.StartTime), ev.Name, ev.Location)
	}
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	more := ""
	if hasMore {
		more = " (more available)"
	}
	_, err := fmt.Fprintf(w, "%d event(s)%s\n", len(events), more)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// fieldErrors turns per-field validation messages into one error.
func fieldErrors(errs map[string]string) error {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	joined := make([]error, 0, len(keys))
	for _, k := range keys {
		joined = append(joined, fmt.Errorf("--%s: %s", k, errs[k]))
	}
	return errors.Join(joined...)
}
