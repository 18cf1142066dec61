// Copyright 2021 Converter Systems LLC. All rights reserved.

// Command uacodec transcodes OPC UA encoded messages between the binary, xml and json
// encodings and checks the text form of NodeIds.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
