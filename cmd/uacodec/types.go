// Copyright 2021 Converter Systems LLC. All rights reserved.

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newTypesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the structured data types that can be decoded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := a.cfg.EncodingContext().Registry()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDATATYPE\tBINARY\tXML\tJSON")
			for _, c := range r.Codecs() {
				ids := c.IDs()
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.Name(), ids.DataType, ids.Binary, ids.XML, ids.JSON)
			}
			return w.Flush()
		},
	}
}
