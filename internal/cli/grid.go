package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// gridCommand creates the grid command for redrawing a contact sheet.
func (c *CLI) gridCommand() *cobra.Command {
	var flags sweepFlags

	cmd := &cobra.Command{
		Use:   "grid <dir>",
		Short: "Redraw summary.png from the images in an output directory",
		Long: `Redraw summary.png from the images in an output directory.

The sweep flags must match the ones the directory was generated with,
since they determine which blur_<radius>_darken_<level>.png files are
laid out.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGrid(cmd.Context(), cmd.Flags(), &flags, args[0])
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

func (c *CLI) runGrid(ctx context.Context, flagSet *pflag.FlagSet, sf *sweepFlags, dir string) error {
	p, _, err := sf.resolve(flagSet)
	if err != nil {
		return err
	}
	composer, err := c.newComposer()
	if err != nil {
		return err
	}

	prog := newProgress(loggerFromContext(ctx))
	path, err := composer.Compose(ctx, dir, p)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Drew %dx%d contact sheet", p.BlurNumber, p.DarkenNumber))
	printFile(path)
	return nil
}
