package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/andreagrandi/pipecreate/internal/features"
	"github.com/andreagrandi/pipecreate/internal/pipeline"
	"github.com/spf13/cobra"
)

func init() {
	var typeName string

	cmd := &cobra.Command{
		Use:   "features",
		Short: "List the optional template features",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := features.Load(newOsFs(), features.DefaultDir())
			if err != nil {
				return fmt.Errorf("load features: %w", err)
			}

			list := catalog.All()
			if typeName != "" {
				t, err := pipeline.ParseType(typeName)
				if err != nil {
					return err
				}
				list = catalog.ForType(t)
			}

			printFeatureList(cmd.OutOrStdout(), list)
			return nil
		},
	}
	cmd.Flags().StringVar(&typeName, "type", "", "only show features for this pipeline type (nfcore or custom)")

	rootCmd.AddCommand(cmd)
}

func printFeatureList(output io.Writer, list []features.Feature) {
	if len(list) == 0 {
		fmt.Fprintln(output, "No template features available.")
		return
	}

	fmt.Fprintln(output, "Template features:")
	fmt.Fprintln(output)

	maxNameWidth := 0
	for _, f := range list {
		if len(f.Name) > maxNameWidth {
			maxNameWidth = len(f.Name)
		}
	}

	for _, f := range list {
		var types []string
		if f.NfcorePipelines {
			types = append(types, "nfcore")
		}
		if f.CustomPipelines {
			types = append(types, "custom")
		}

		state := "off"
		if f.Default {
			state = "on"
		}

		fmt.Fprintf(output, "  %-*s  %-3s  %-14s  %s\n", maxNameWidth, f.Name, state, strings.Join(types, ","), f.ShortDescription)
	}
}
