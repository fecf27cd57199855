package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"rentaldash/internal/api"
	"rentaldash/internal/reports"
	"rentaldash/internal/ui/sections"
	"rentaldash/internal/ui/views"
)

var entityAliases = map[string]string{
	"clientes":   api.Clients,
	"clients":    api.Clients,
	"vehiculos":  api.Vehicles,
	"vehículos":  api.Vehicles,
	"vehicles":   api.Vehicles,
	"alquileres": api.Rentals,
	"rentals":    api.Rentals,
}

func (a *app) section(entity string) (sections.Section, error) {
	name, ok := entityAliases[strings.ToLower(entity)]
	if !ok {
		return nil, fmt.Errorf("unknown collection %q (use clientes, vehiculos or alquileres)", entity)
	}
	switch name {
	case api.Clients:
		return sections.NewClients(a.client, nil, a.log, a.cfg.UI.PageSize), nil
	case api.Vehicles:
		return sections.NewVehicles(a.client, nil, a.log, a.cfg.UI.PageSize), nil
	default:
		return sections.NewRentals(a.client, nil, a.log, a.cfg.UI.PageSize), nil
	}
}

type listOptions struct {
	search string
	filter string
	page   int
}

func newListCmd(a *app) *cobra.Command {
	opts := &listOptions{}
	cmd := &cobra.Command{
		Use:   "list [clientes|vehiculos|alquileres]...",
		Short: "Print collections as tables",
		Long:  "Print one page of each collection. Without arguments every collection is listed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{api.Clients, api.Vehicles, api.Rentals}
			}
			return a.runList(cmd.Context(), cmd.OutOrStdout(), args, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.search, "search", "s", "", "local search over the loaded rows")
	cmd.Flags().StringVarP(&opts.filter, "filter", "f", "", "server filter as field=value, or a fixed field such as disponible")
	cmd.Flags().IntVarP(&opts.page, "page", "p", 1, "page to print")
	return cmd
}

func (a *app) runList(ctx context.Context, out io.Writer, entities []string, opts *listOptions) error {
	list := make([]sections.Section, len(entities))
	for i, e := range entities {
		s, err := a.section(e)
		if err != nil {
			return err
		}
		list[i] = s
	}

	field, value, filtered := strings.Cut(opts.filter, "=")
	if opts.filter != "" && !filtered {
		field, value = opts.filter, ""
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range list {
		g.Go(func() error {
			var err error
			if opts.filter != "" {
				err = s.ApplyFilter(gctx, strings.TrimSpace(field), value)
			} else {
				err = s.FetchAll(gctx)
			}
			if err != nil {
				return fmt.Errorf("%s: %s", s.Title(), api.Message(err))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, s := range list {
		if opts.search != "" {
			s.SetQuery(opts.search)
		}
		s.Len()
		s.Pager().GoToPage(opts.page)

		fmt.Fprintln(out, s.Title())
		if s.Len() == 0 {
			fmt.Fprintln(out, "No hay registros.")
		} else {
			fmt.Fprintln(out, views.RenderPlain(s.Headers(), s.Rows()))
		}
		p := s.Pager()
		fmt.Fprintf(out, "Página %d de %d • %d registros\n\n", max(p.CurrentPage(), 1), max(p.TotalPages(), 1), s.Count())
	}
	return nil
}

func newReportCmd(a *app) *cobra.Command {
	var clientID int64
	cmd := &cobra.Command{
		Use:   "report [name]...",
		Short: "Print backend reports",
		Long:  "Print the named reports, or all of them. " + reportNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runReports(cmd.Context(), cmd.OutOrStdout(), args, clientID)
		},
	}
	cmd.Flags().Int64Var(&clientID, "client", 0, "client id for client-history")
	return cmd
}

func reportNames() string {
	names := make([]string, 0, len(reports.All()))
	for _, r := range reports.All() {
		names = append(names, r.Name)
	}
	return "Available: " + strings.Join(names, ", ") + "."
}

func (a *app) runReports(ctx context.Context, out io.Writer, names []string, clientID int64) error {
	list := reports.All()
	if len(names) > 0 {
		list = list[:0]
		for _, n := range names {
			r, ok := reports.Lookup(n)
			if !ok {
				return fmt.Errorf("unknown report %q. %s", n, reportNames())
			}
			list = append(list, r)
		}
	}

	var firstErr error
	for _, res := range reports.RunAll(ctx, a.client, list, clientID) {
		if res.Table.Title == "" && res.Err == nil {
			// client reports are skipped without a client id
			continue
		}
		title := res.Table.Title
		if title == "" {
			title = res.Report.Title
		}
		fmt.Fprintln(out, title)
		switch {
		case res.Err != nil:
			fmt.Fprintf(out, "Error: %s\n\n", api.Message(res.Err))
			if firstErr == nil {
				firstErr = res.Err
			}
		case len(res.Table.Rows) == 0:
			fmt.Fprint(out, "Sin datos\n\n")
		default:
			fmt.Fprintln(out, views.RenderPlain(res.Table.Headers, res.Table.Rows))
			fmt.Fprintln(out)
		}
	}
	return firstErr
}
