package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func newAppsCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apps",
		Short: "Inspect the app registry and catalog",
	}
	cmd.AddCommand(newAppsListCmd(root), newAppsValidateCmd(root))
	return cmd
}

type appRow struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	HFSpace   string `json:"hf_space"`
	Pages     int    `json:"pages"`
	Forms     int    `json:"forms"`
	Blueprint string `json:"blueprint,omitempty"`
}

func newAppsListCmd(root *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the apps with their pages and forms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := root.runtime(cmd)
			if err != nil {
				return err
			}
			defer rt.close(context.Background())

			rows := make([]appRow, 0, rt.catalog.Len())
			for _, a := range rt.catalog.Apps() {
				row := appRow{
					ID:      a.ID(),
					Title:   a.Title(),
					URL:     a.Info().URL,
					HFSpace: a.Info().HFSpace,
					Pages:   len(a.Pages()),
					Forms:   len(a.Forms()),
				}
				if orch := a.Orchestrator(); orch != nil {
					row.Blueprint = orch.Blueprint().ID()
				}
				rows = append(rows, row)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				BorderStyle(mutedStyle).
				Headers("ID", "TITLE", "PAGES", "FORMS", "BLUEPRINT", "URL").
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == table.HeaderRow {
						return headerStyle
					}
					return lipgloss.NewStyle()
				})
			for _, row := range rows {
				t.Row(row.ID, row.Title, strconv.Itoa(row.Pages), strconv.Itoa(row.Forms), row.Blueprint, row.URL)
			}
			fmt.Fprintln(out, t.Render())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func newAppsValidateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the registry and every app page configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := root.runtime(cmd)
			if err != nil {
				return err
			}
			defer rt.close(context.Background())

			out := cmd.OutOrStdout()
			var problems []string
			if err := rt.registry.Validate(); err != nil {
				problems = append(problems, err.Error())
			}
			for _, a := range rt.catalog.Apps() {
				for _, p := range a.Pages() {
					if p.Err != nil {
						problems = append(problems, fmt.Sprintf("%s %s: %v", a.ID(), p.Path, p.Err))
					}
				}
			}
			for _, id := range rt.registry.IDs() {
				if _, ok := rt.catalog.Get(id); !ok {
					fmt.Fprintln(out, mutedStyle.Render("- "+id+": no app definition, skipped"))
				}
			}

			if len(problems) > 0 {
				for _, problem := range problems {
					fmt.Fprintln(out, errorStyle.Render("✗ ")+problem)
				}
				return errors.New(strconv.Itoa(len(problems)) + " problem(s) found")
			}
			fmt.Fprintln(out, successStyle.Render("✓ ")+fmt.Sprintf("%d apps valid (%s)", rt.catalog.Len(), strings.Join(rt.catalog.IDs(), ", ")))
			return nil
		},
	}
}
