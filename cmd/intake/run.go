package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmunix/intake/internal/importer"
)

var runCmd = &cobra.Command{
	Use:   "run <title-or-path>",
	Short: "Import one completed download",
	Long: `Import one completed download.

The argument is either a torrent title (resolved against the
configured downloads directory, fuzzy-matched when needed) or a
directory path.

Examples:
  intake run "Some.Movie.2024.1080p.WEB-DL"
  intake run /downloads/Some.Movie.2024.1080p.WEB-DL --stage`,
	Args: cobra.ExactArgs(1),
	RunE: runRunCmd,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("stage", false, "Link classified files into the staging root")
}

func runRunCmd(cmd *cobra.Command, args []string) error {
	stage, _ := cmd.Flags().GetBool("stage")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Server.LogLevel)

	imp := importer.New(importer.Config{
		DownloadDir:  cfg.Downloads.Directory,
		UnpackPasses: cfg.Import.UnpackPasses,
	}, logger.With("component", "importer"))

	// A path argument names the source directory directly; anything
	// else is treated as a torrent title.
	var dir string
	if info, statErr := os.Stat(args[0]); statErr == nil && info.IsDir() {
		dir = args[0]
	} else {
		dir, err = imp.ResolveSource(args[0])
		if err != nil {
			return err
		}
	}

	classified, err := imp.ProcessDir(cmd.Context(), dir)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d files (%d video, %d subtitle)\n",
		dir, len(classified.All), len(classified.Videos), len(classified.Subtitles))
	for _, v := range classified.Videos {
		fmt.Printf("  video     %s\n", v)
	}
	for _, s := range classified.Subtitles {
		fmt.Printf("  subtitle  %s\n", s)
	}

	if stage {
		if cfg.Staging.Root == "" {
			return fmt.Errorf("staging.root not configured")
		}
		for _, res := range imp.Stage(classified, dir, cfg.Staging.Root) {
			if res.Failed() {
				fmt.Printf("  FAILED    %s (%v)\n", res.Source, res.Err)
				continue
			}
			fmt.Printf("  %-9s %s -> %s\n", res.Outcome, res.Source, res.Dest)
		}
	}

	return nil
}
