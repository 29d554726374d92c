package main

import (
	"context"
	"os"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/spf13/cobra"

	"github.com/LyzrCore/spaces/pkg/apispec"
)

func newOpenAPICmd(root *rootOptions) *cobra.Command {
	var (
		server string
		output string
	)
	cmd := &cobra.Command{
		Use:   "openapi [app]",
		Short: "Print the OpenAPI document of one app or of all apps",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := root.runtime(cmd)
			if err != nil {
				return err
			}
			defer rt.close(context.Background())

			opts := []apispec.Option{apispec.WithVersion(version), apispec.WithServer(server)}
			var doc *openapi3.T
			if len(args) == 1 {
				a, err := rt.app(args[0])
				if err != nil {
					return err
				}
				doc, err = apispec.BuildApp(a, opts...)
				if err != nil {
					return err
				}
			} else if doc, err = apispec.Build(rt.catalog.Apps(), opts...); err != nil {
				return err
			}
			if err := apispec.Validate(cmd.Context(), doc); err != nil {
				return err
			}

			data, err := apispec.MarshalIndent(doc)
			if err != nil {
				return err
			}
			if output != "" {
				if err := os.WriteFile(output, data, 0o644); err != nil {
					return err
				}
				cmd.Println(successStyle.Render("OpenAPI document written to " + output))
				return nil
			}
			_, err = cmd.OutOrStdout().Write(append(data, '\n'))
			return err
		},
	}
	cmd.Flags().StringVar(&server, "server", "", "server URL to list in the document")
	cmd.Flags().StringVar(&output, "output", "", "write to a file instead of stdout")
	return cmd
}
