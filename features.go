// features.go - build info backing the --build-info flag

package main

import (
	"fmt"
	"runtime"
)

// buildVersion is the amachine release string; set to "dev" for
// non-tagged builds.
const buildVersion = "dev"

// supportedFeatures lists the game dialects and surfaces this binary
// was built with.
var supportedFeatures = []string{
	"story versions: V2, V3, V4",
	"save/restore: snapshot + RAM-save slots",
	"pictures: bmp via golang.org/x/image",
}

func printBuildInfo() {
	fmt.Printf("amachine %s\n", buildVersion)
	fmt.Printf("  Go version: %s\n", runtime.Version())
	fmt.Printf("  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Println()
	fmt.Println("Features:")
	for _, f := range supportedFeatures {
		fmt.Printf("  %s\n", f)
	}
}
