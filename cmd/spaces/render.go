package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/LyzrCore/spaces/internal/config"
	"github.com/LyzrCore/spaces/pkg/app"
	"github.com/LyzrCore/spaces/pkg/render"
	"github.com/LyzrCore/spaces/pkg/renderers/html"
	"github.com/LyzrCore/spaces/pkg/renderers/terminal"
)

func renderers(width int, server config.ServerConfig) (*render.Registry, error) {
	registry := render.NewRegistry()
	registry.MustRegister(terminal.New(terminal.WithWidth(width)))
	htmlRenderer, err := html.New(html.WithAssetsPrefix(server.Assets), html.WithTemplatesDir(server.Templates))
	if err != nil {
		return nil, err
	}
	registry.MustRegister(htmlRenderer)
	return registry, nil
}

func newRenderCmd(root *rootOptions) *cobra.Command {
	var (
		pagePath string
		item     string
		format   string
		fragment bool
		width    int
		output   string
	)
	cmd := &cobra.Command{
		Use:   "render <app>",
		Short: "Render one page of an app",
		Long:  `Render a page as styled terminal text (default) or as an HTML document.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := root.runtime(cmd)
			if err != nil {
				return err
			}
			defer rt.close(context.Background())

			a, err := rt.app(args[0])
			if err != nil {
				return err
			}
			registry, err := renderers(width, rt.cfg.Server)
			if err != nil {
				return err
			}
			renderer, err := registry.Resolve(format)
			if err != nil {
				return err
			}

			view := app.View{Path: pagePath, Item: item}
			node, err := a.RenderPage(view)
			if fragment {
				node, err = a.Content(view)
			}
			if err != nil {
				return err
			}
			palette := a.Palette()
			out, err := renderer.Render(cmd.Context(), node, render.RenderOptions{
				Title:    a.Title(),
				Fragment: fragment,
				Palette:  &palette,
			})
			if err != nil {
				return err
			}

			if output != "" {
				if err := os.WriteFile(output, out, 0o644); err != nil {
					return err
				}
				cmd.Println(successStyle.Render("Page written to " + output))
				return nil
			}
			_, err = cmd.OutOrStdout().Write(append(out, '\n'))
			return err
		},
	}
	cmd.Flags().StringVarP(&pagePath, "page", "p", "", "page path (defaults to the home page)")
	cmd.Flags().StringVar(&item, "item", "", "record id for detail pages")
	cmd.Flags().StringVarP(&format, "format", "f", terminal.Name, "renderer: terminal or html")
	cmd.Flags().BoolVar(&fragment, "fragment", false, "render the page content without app chrome")
	cmd.Flags().IntVar(&width, "width", terminal.DefaultWidth, "terminal width")
	cmd.Flags().StringVar(&output, "output", "", "write to a file instead of stdout")
	return cmd
}
