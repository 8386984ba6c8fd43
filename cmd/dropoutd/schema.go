package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/edurisk/dropout-predictor/internal/domain/model"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the feature slots the classifier expects, in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "INDEX\tFEATURE")
			for i, name := range model.FeatureNames() {
				fmt.Fprintf(w, "%d\t%s\n", i, name)
			}
			return w.Flush()
		},
	}
}
