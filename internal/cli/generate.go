package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/lineart/pkg/buildinfo"
	lerrors "github.com/matzehuels/lineart/pkg/errors"
	"github.com/matzehuels/lineart/pkg/observability"
	"github.com/matzehuels/lineart/pkg/pipeline"
	"github.com/matzehuels/lineart/pkg/sweep"
)

// defaultOutput is where sweeps are written unless --output says otherwise.
const defaultOutput = "./multiple_images"

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	sweepFlags

	input    string // single source image
	inputDir string // directory of source images
	output   string // root of the per-image output directories
	jobs     int    // images processed at once in directory mode
	noGrid   bool   // skip summary.png
	noCache  bool   // bypass the drawing cache
	pick     bool   // choose one image from --input-dir interactively
}

// generateCommand creates the generate command, the main entry point.
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{output: defaultOutput, jobs: pipeline.DefaultJobs}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render the blur/darken sweep of one image or a directory",
		Long: `Render the blur/darken sweep of one image or a directory of images.

For every source image a directory named after the file stem is created
under --output. It receives one drawing per (blur radius, darken level)
pair, named blur_<radius>_darken_<level>.png, and a contact sheet
summary.png laying them out in a grid.

Examples:
  lineart generate -i photo.jpg
  lineart generate -i photo.jpg --method gaussian --blur-count 3 --darken-count 2
  lineart generate -d photos/ --width 1024 --height 768 --jobs 4
  lineart generate -d photos/ --pick`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.pick && opts.inputDir == "" {
				return lerrors.New(lerrors.ErrCodeInvalidInput, "--pick requires --input-dir")
			}
			return c.runGenerate(cmd.Context(), cmd.Flags(), &opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.input, "input", "i", "", "source image")
	flags.StringVarP(&opts.inputDir, "input-dir", "d", "", "directory of source images (png, jpg, jpeg)")
	flags.StringVarP(&opts.output, "output", "o", opts.output, "output root directory")
	flags.IntVar(&opts.jobs, "jobs", opts.jobs, "images processed in parallel with --input-dir")
	flags.BoolVar(&opts.noGrid, "no-grid", false, "do not write summary.png")
	flags.BoolVar(&opts.noCache, "no-cache", false, "disable the drawing cache")
	flags.BoolVar(&opts.pick, "pick", false, "choose one image from --input-dir interactively")
	opts.sweepFlags.register(flags)

	cmd.MarkFlagsMutuallyExclusive("input", "input-dir")
	cmd.MarkFlagsOneRequired("input", "input-dir")
	_ = cmd.MarkFlagFilename("input", "png", "jpg", "jpeg")
	_ = cmd.MarkFlagDirname("input-dir")
	_ = cmd.MarkFlagDirname("output")

	return cmd
}

// applyConfig resolves the sweep parameters and lets the config file supply
// output and jobs when the flags were left at their defaults.
func (o *generateOpts) applyConfig(flags *pflag.FlagSet) (sweep.Params, error) {
	p, cfg, err := o.sweepFlags.resolve(flags)
	if err != nil {
		return p, err
	}
	if cfg.Output != "" && !flags.Changed("output") {
		o.output = cfg.Output
	}
	if cfg.Jobs > 0 && !flags.Changed("jobs") {
		o.jobs = cfg.Jobs
	}
	return p, nil
}

func (c *CLI) runGenerate(ctx context.Context, flags *pflag.FlagSet, opts *generateOpts) error {
	logger := loggerFromContext(ctx)

	p, err := opts.applyConfig(flags)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(p, opts.noCache, opts.noGrid, opts.jobs)
	if err != nil {
		return err
	}
	defer runner.Close()

	counters := observability.NewCounters()
	observability.SetPipelineHooks(counters)
	observability.SetCacheHooks(counters)
	defer observability.Reset()

	logger.Debug("starting run", "version", buildinfo.String(), "run", runner.RunID, "method", p.Method,
		"blur", p.BlurRadii(), "darken", p.DarkenLevels())

	input := opts.input
	if opts.pick {
		paths, err := sweep.ListImages(opts.inputDir)
		if err != nil {
			return err
		}
		if input, err = pickImage(paths); err != nil {
			return err
		}
	}

	if input != "" {
		return c.generateOne(ctx, runner, input, opts.output)
	}
	return c.generateDir(ctx, runner, counters, opts.inputDir, opts.output)
}

func (c *CLI) generateOne(ctx context.Context, runner *pipeline.Runner, input, output string) error {
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Drawing %s...", input))
	spinner.Start()

	res, err := runner.ProcessFile(ctx, input, output)
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Failed: %s", input))
		return err
	}
	spinner.Stop()

	printResult(res)
	if res.Summary == "" {
		printNextStep("Draw the contact sheet", fmt.Sprintf("%s grid %s", appName, res.Dir))
	}
	return nil
}

func (c *CLI) generateDir(ctx context.Context, runner *pipeline.Runner, counters *observability.Counters, dir, output string) error {
	prog := newProgress(loggerFromContext(ctx))

	results, err := runner.ProcessDir(ctx, dir, output)
	for _, res := range results {
		if res == nil {
			continue
		}
		if res.OK() {
			printResult(res)
		} else {
			printError("%s: %s", res.Source, lerrors.UserMessage(res.Err))
		}
	}
	if err != nil {
		return err
	}

	ok, failed := pipeline.Summarize(results)
	prog.done(fmt.Sprintf("Swept %d images", ok+failed))
	if s := counters.Snapshot(); s.Images > 0 {
		printDetail("%s", countersLine(s))
	}
	if failed > 0 {
		printWarning("%d of %d images failed", failed, ok+failed)
	} else if ok == 0 {
		printInfo("No images in %s", dir)
	}
	return nil
}
