// main.go - amachine CLI entry point

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var (
	flagVersion  string
	flagAssets   string
	flagSaveDir  string
	flagSeed     uint16
	flagHeadless bool
	flagBuildInfo bool
)

func main() {
	root := &cobra.Command{
		Use:   "amachine STORY",
		Short: "Run a Level 9-family text adventure story file",
		Args:  cobra.ExactArgs(1),
		RunE:  runStory,
	}

	root.Flags().StringVar(&flagVersion, "version", "", "game version digit (2, 3, or 4); inferred from a side-car file if omitted")
	root.Flags().StringVar(&flagAssets, "assets", ".", "directory containing picture assets")
	root.Flags().StringVar(&flagSaveDir, "save-dir", ".", "directory for save files and #play transcripts")
	root.Flags().Uint16Var(&flagSeed, "seed", 0, "initial random seed")
	root.Flags().BoolVar(&flagHeadless, "headless", false, "run without a terminal or graphics surface")
	root.Flags().BoolVar(&flagBuildInfo, "build-info", false, "print build info and exit")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runStory(cmd *cobra.Command, args []string) error {
	if flagBuildInfo {
		printBuildInfo()
		return nil
	}

	storyPath := args[0]
	store := NewFileStore(flagSaveDir)

	data, err := os.ReadFile(storyPath)
	if err != nil {
		return &LoadError{Operation: "read story", Details: storyPath, Err: err}
	}
	if len(data) < 256 || len(data) > 65535 {
		return &LoadError{Operation: "read story", Details: "story file must be 256..65535 bytes"}
	}

	version, err := resolveVersion(storyPath)
	if err != nil {
		return err
	}

	mem := NewStoryMemory(data)
	header, err := ParseStoryHeader(mem, version)
	if err != nil {
		return err
	}

	var host HostAdapter
	if flagHeadless {
		host = NewHeadlessHost(store, flagAssets)
	} else {
		host = NewLiveHost(store, flagAssets)
	}
	defer closeHost(host)

	ip := NewInterpreter(mem, header, host, filepath.Base(storyPath))
	ip.driver.SeedRandom(flagSeed)
	ip.Run()
	return nil
}

// resolveVersion uses the --version flag when given, otherwise it reads
// the side-car game-version descriptor (§6.1): the story path with its
// extension replaced by ".version".
func resolveVersion(storyPath string) (GameVersion, error) {
	if flagVersion != "" {
		v, err := ParseGameVersion(flagVersion[0])
		if err != nil {
			return 0, err
		}
		if v == GameV1 {
			return 0, &LoadError{Operation: "parse version", Details: "V1 games are not supported"}
		}
		return v, nil
	}

	descPath := strings.TrimSuffix(storyPath, filepath.Ext(storyPath)) + ".version"
	data, err := os.ReadFile(descPath)
	if err != nil || len(data) == 0 {
		return 0, &LoadError{Operation: "parse version", Details: "no --version flag and no side-car descriptor found"}
	}
	v, err := ParseGameVersion(data[0])
	if err != nil {
		return 0, &LoadError{Operation: "parse version", Details: "invalid side-car descriptor", Err: err}
	}
	if v == GameV1 {
		return 0, &LoadError{Operation: "parse version", Details: "V1 games are not supported"}
	}
	return v, nil
}

func closeHost(host HostAdapter) {
	if closer, ok := host.(interface{ Close() }); ok {
		closer.Close()
	}
}
