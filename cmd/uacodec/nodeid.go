// Copyright 2021 Converter Systems LLC. All rights reserved.

package main

import (
	"fmt"

	"github.com/awcullen/uacodec/ua"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newNodeIDCmd(a *app) *cobra.Command {
	var resolve bool
	cmd := &cobra.Command{
		Use:   "nodeid TEXT...",
		Short: "Parse NodeIds and print their canonical text",
		Long: `Nodeid parses each argument as an ExpandedNodeId and prints its canonical text.
With --resolve, the namespace uri or index is translated with the configured namespaces.

Examples:
  uacodec nodeid "ns=0;i=85" "ns=2;s=Demo.Static.Scalar.Float"
  uacodec nodeid --resolve "nsu=urn:example;i=1001"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table := a.cfg.EncodingContext().Namespaces()
			failed := 0
			for _, s := range args {
				text, err := canonicalNodeID(s, table, resolve)
				if err != nil {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "%q: %v\n", s, err)
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), text)
			}
			if failed > 0 {
				return errors.Errorf("%d of %d node ids are invalid", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&resolve, "resolve", "r", false, "translate between namespace uri and index")
	return cmd
}

// canonicalNodeID returns the canonical text of the id. When resolving, an id with a
// namespace uri is printed with its index, and an id with an index is printed with its uri.
func canonicalNodeID(s string, table *ua.NamespaceTable, resolve bool) (string, error) {
	id, err := ua.ParseExpandedNodeID(s)
	if err != nil {
		return "", err
	}
	if !resolve || id.ServerIndex() != 0 {
		return id.String(), nil
	}
	if id.NamespaceURI() != "" {
		n, err := id.ToNodeID(table)
		if err != nil {
			return "", err
		}
		return n.String(), nil
	}
	return id.NodeID().ToExpandedNodeID(table).String(), nil
}
