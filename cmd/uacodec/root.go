// Copyright 2021 Converter Systems LLC. All rights reserved.

package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app is shared by the commands once the config is loaded.
type app struct {
	cfg Config
	log *logrus.Logger
}

func newRootCmd() *cobra.Command {
	var configFile string
	a := &app{}
	cmd := &cobra.Command{
		Use:   "uacodec",
		Short: "Transcode OPC UA encoded messages",
		Long: `uacodec decodes ExtensionObjects written in one OPC UA encoding and
writes them in another.

Settings are read from uacodec.yaml or uacodec.json in the working directory,
and from UACODEC_* environment variables.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = newLogger(cfg.Logger, cmd.ErrOrStderr())
			return nil
		},
	}
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is ./uacodec.yaml)")
	cmd.AddCommand(newTranscodeCmd(a), newNodeIDCmd(a), newTypesCmd(a))
	return cmd
}
