package main

import (
	"fmt"
	"os"

	"github.com/acm19/shrink/apps/cli/completion"
	"github.com/acm19/shrink/internal/logger"
	"github.com/acm19/shrink/internal/pics"
	"github.com/barasher/go-exiftool"
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "shrink [PATH...]",
	Short: "Recompress JPEG and PNG images in place",
	Long: `Shrink walks the given files and directories (default: public) and rewrites
images in place: JPEGs are always re-encoded at the configured quality, PNGs
only when larger than the size threshold. EXIF orientation is applied to the
pixels so every output is stored upright.`,
	Version: version,
	Args:    cobra.ArbitraryArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		opts, err = buildOptions(jpegQuality, pngThresholdKB)
		return err
	},
	Run: runCompress,
}

var (
	jpegQuality    int
	pngThresholdKB int64
	useExiftool    bool
	verbose        bool

	opts pics.Options
)

func init() {
	rootCmd.Flags().IntVarP(&jpegQuality, "quality", "q", pics.DefaultJPEGQuality, "JPEG quality (1-100)")
	rootCmd.Flags().Int64Var(&pngThresholdKB, "png-threshold", pics.DefaultPNGThreshold/1024, "Re-encode PNGs larger than this many KiB")
	rootCmd.Flags().BoolVar(&useExiftool, "exiftool", false, "Read EXIF orientation with exiftool instead of the built-in parser")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	// The installer below replaces cobra's generated completion command.
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(completion.NewInstallCmd(rootCmd))
	rootCmd.AddCommand(completion.NewUninstallCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCompress(cmd *cobra.Command, args []string) {
	if verbose {
		logger.Configure(os.Stderr, true)
	}

	reader := pics.NewExifOrientationReader()
	if useExiftool {
		et, err := exiftool.NewExiftool()
		if err != nil {
			logger.Error("Failed to initialise exiftool", "error", err)
			os.Exit(1)
		}
		defer et.Close()
		reader = pics.NewExiftoolOrientationReader(et)
	}

	roots := resolveRoots(args)
	logger.Debug("Starting compression", "roots", roots, "quality", opts.JPEGQuality, "png_threshold", opts.PNGThreshold)

	runner := pics.NewRunner(pics.NewWalker(), pics.NewImageCompressorWithReader(opts, reader))
	runner.Run(roots, cmd.OutOrStdout())
}

// resolveRoots returns the paths to walk, falling back to the default root.
func resolveRoots(args []string) []string {
	if len(args) == 0 {
		return []string{pics.DefaultRoot}
	}
	return args
}

// buildOptions validates flag values and converts them into pics.Options.
func buildOptions(quality int, thresholdKB int64) (pics.Options, error) {
	if quality < 1 || quality > 100 {
		return pics.Options{}, fmt.Errorf("invalid quality %d (must be 1-100)", quality)
	}
	if thresholdKB < 0 {
		return pics.Options{}, fmt.Errorf("invalid PNG threshold %d (must not be negative)", thresholdKB)
	}
	return pics.Options{
		JPEGQuality:  quality,
		PNGThreshold: thresholdKB * 1024,
	}, nil
}
