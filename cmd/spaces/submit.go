package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LyzrCore/spaces/internal/tui"
	"github.com/LyzrCore/spaces/pkg/app"
	"github.com/LyzrCore/spaces/pkg/page"
	"github.com/LyzrCore/spaces/pkg/render"
	"github.com/LyzrCore/spaces/pkg/renderers/terminal"
	"github.com/LyzrCore/spaces/pkg/ui"
)

// errInvalidSubmission is returned after printing the field errors.
var errInvalidSubmission = errors.New("submission is missing required fields")

type submitOptions struct {
	page        string
	fields      map[string]string
	interactive bool
	live        bool
	asJSON      bool
	width       int
}

func newSubmitCmd(root *rootOptions) *cobra.Command {
	opts := &submitOptions{}
	cmd := &cobra.Command{
		Use:   "submit <app>",
		Short: "Submit a form to the app's orchestrator",
		Long: `Submit a form page with values from --field flags, or prompt for them with
--interactive. --live follows the processing steps as they stream.`,
		Example: `  spaces submit it_service_desk -f title="API down" -f description="All users see 500s" -f affected_system="API Gateway"
  spaces submit it_service_desk --interactive --live`,
		Args: cobra.ExactArgs(1),
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
			return runSubmit(cmd, a, opts, terminal.NewPrompter(terminal.WithOutput(cmd.ErrOrStderr())))
		},
	}
	cmd.Flags().StringVarP(&opts.page, "page", "p", "", "form page path (defaults to the first form)")
	cmd.Flags().StringToStringVarP(&opts.fields, "field", "f", nil, "field value key=value (repeatable)")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "prompt for every field")
	cmd.Flags().BoolVar(&opts.live, "live", false, "show live processing steps")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the outcome as JSON")
	cmd.Flags().IntVar(&opts.width, "width", terminal.DefaultWidth, "terminal width")
	return cmd
}

func runSubmit(cmd *cobra.Command, a *app.App, opts *submitOptions, prompter *terminal.Prompter) error {
	ctx := cmd.Context()
	form, err := formPage(a, opts.page)
	if err != nil {
		return err
	}

	values := make(map[string]string, len(opts.fields))
	for key, value := range opts.fields {
		values[key] = value
	}
	if opts.interactive {
		node, err := a.Content(app.View{Path: form.Path, Form: &page.FormState{Values: values}})
		if err != nil {
			return err
		}
		uiForm, ok := node.(ui.Form)
		if !ok {
			return fmt.Errorf("page %s did not render a form", form.Path)
		}
		if values, err = prompter.Prompt(ctx, uiForm); err != nil {
			return err
		}
	}

	var outcome *app.Outcome
	if opts.live {
		cfg, _ := form.Form()
		updates, err := a.Stream(ctx, form.Path, values)
		if err != nil {
			return err
		}
		if outcome, err = tui.Run(ctx, cfg.WithDefaults().ProcessingLabel, updates, cmd.ErrOrStderr()); err != nil {
			return err
		}
	} else if outcome, err = a.Submit(ctx, form.Path, values); err != nil {
		return err
	}

	return printOutcome(cmd, outcome, opts)
}

// formPage resolves the page to submit: the named one, or the first form.
func formPage(a *app.App, path string) (*app.Page, error) {
	if path == "" {
		forms := a.Forms()
		if len(forms) == 0 {
			return nil, fmt.Errorf("app %s has no form pages", a.ID())
		}
		return forms[0], nil
	}
	p, ok := a.Page(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", app.ErrPageNotFound, path)
	}
	if _, ok := p.Form(); !ok {
		return nil, fmt.Errorf("%w: %s", app.ErrNotForm, p.Path)
	}
	return p, nil
}

func printOutcome(cmd *cobra.Command, outcome *app.Outcome, opts *submitOptions) error {
	out := cmd.OutOrStdout()
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(map[string]any{
			"page":     outcome.Path,
			"valid":    outcome.Valid(),
			"values":   outcome.Values,
			"errors":   outcome.Errors,
			"result":   outcome.Result,
			"markdown": outcome.Markdown,
		}); err != nil {
			return err
		}
		if !outcome.Valid() {
			return errInvalidSubmission
		}
		return nil
	}

	if !outcome.Valid() {
		keys := make([]string, 0, len(outcome.Errors))
		for key := range outcome.Errors {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintln(out, errorStyle.Render("✗ ")+outcome.Errors[key])
		}
		return errInvalidSubmission
	}

	nodes := []ui.Node{ui.Markdown{Source: outcome.Markdown}}
	if outcome.Steps != nil {
		nodes = append([]ui.Node{*outcome.Steps}, nodes...)
	}
	text, err := terminal.New(terminal.WithWidth(opts.width)).Render(cmd.Context(),
		ui.Container{Role: ui.RoleMain, Children: nodes},
		render.RenderOptions{Fragment: true},
	)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, strings.TrimRight(string(text), "\n"))
	return nil
}
