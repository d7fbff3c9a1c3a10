//
// coult: fetches secrets from HashiCorp Vault, as a library (pkg/vault) or
//        through this thin CLI wrapper that prints them on STDOUT.
//
package main

import (
	"context"
	"os"

	"github.com/guaychou/coult/pkg/cli"
	"github.com/guaychou/coult/pkg/logger"
)

// These vars describe buildtime variables that are emitted when help or version info is printed.
var (
	// Stores the at-build-time version, like "1.1.99"
	BuildVersion string

	// Stores the at-build-time timestamp, like "2012-10-31 15:50:13.793654 +0000 UTC"
	BuildTimestamp string
)

func main() {
	// Start up our context var, which we pass down to other pkgs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cli.BuildVersion = BuildVersion
	cli.BuildTimestamp = BuildTimestamp

	if err := cli.Run(ctx, os.Args); err != nil {
		logger.Fatalf("%v", err)
	}
}
