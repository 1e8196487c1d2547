package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/fileroutes/internal/build"
	"github.com/vango-dev/fileroutes/internal/errors"
	"github.com/vango-dev/fileroutes/pkg/routetree"
)

func newBuilder(p *project, onProgress func(string)) *build.Builder {
	compiler := routetree.NewCompiler(p.config.RouteConventions())
	return build.New(p.provider, compiler, build.Options{
		Logger:     p.logger,
		OnProgress: onProgress,
	})
}

func compileCmd(flags *globalFlags) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "compile [dir]",
		Short: "Compile route files and print the route tree",
		Long: `Compile the route files and print the resulting tree.

Examples:
  fileroutes compile
  fileroutes compile app/routes --format=json
  fileroutes compile --output=routes.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "tree" && format != "json" {
				return errors.New("C003").WithDetail(fmt.Sprintf("--format must be \"tree\" or \"json\", got %q", format))
			}

			p, err := loadProject(cmd.Context(), cmd, flags, args)
			if err != nil {
				return err
			}

			result, err := newBuilder(p, nil).Build(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output != "" {
				if err := result.WriteManifest(output); err != nil {
					return errors.New("S001").WithDetail("Could not write " + output).Wrap(err)
				}
				success(out, "Wrote %d routes to %s", len(result.Routes), output)
				return nil
			}

			if format == "json" {
				data, err := result.MarshalManifest()
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			}
			return routetree.Fprint(out, result.Tree)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "tree", "Output format: tree or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the JSON manifest to this file")

	return cmd
}

func checkCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [dir]",
		Short: "Validate route files without printing the tree",
		Long: `Validate the route files and report every configuration error.

Exits with a non-zero status when any route file is invalid.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(cmd.Context(), cmd, flags, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			result, err := newBuilder(p, func(step string) { info(out, "%s", step) }).Build(cmd.Context())
			if err != nil {
				return err
			}

			if len(result.Routes) == 0 {
				warn(out, "No routes found in %d files", len(result.Files))
				return nil
			}
			success(out, "%d routes from %d files in %s", len(result.Routes), len(result.Files), result.Duration.Round(time.Microsecond))
			return nil
		},
	}
	return cmd
}

func routesCmd(flags *globalFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "routes [dir]",
		Short: "List the routes of the compiled tree",
		Long: `List every route with its pattern, file and parameters.

Examples:
  fileroutes routes
  fileroutes routes --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(cmd.Context(), cmd, flags, args)
			if err != nil {
				return err
			}

			result, err := newBuilder(p, nil).Build(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result.Routes)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PATTERN\tFILE\tLAYOUTS")
			for _, r := range result.Routes {
				layouts := "-"
				if len(r.Layouts) > 0 {
					layouts = fmt.Sprint(r.Layouts)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Pattern, r.File, layouts)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print routes as JSON")

	return cmd
}
