package cli

import (
	"errors"

	"github.com/sandeepkv93/teleprompt/internal/storage"
	"github.com/spf13/cobra"
)

func newSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Display settings commands",
	}
	cmd.AddCommand(newSettingsShowCmd(app))
	cmd.AddCommand(newSettingsSetCmd(app))
	return cmd
}

func newSettingsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the saved display settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(commandContext(cmd), app, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer rt.Close()

			s, err := storage.LoadSettings(commandContext(cmd), rt.Local)
			if err != nil {
				app.logger.Warn("load settings failed, showing defaults", "error", err)
			}
			writeOut(cmd, "font size:   %s\nline height: %s\n", s.FontSizeLabel(), s.LineHeightLabel())
			return nil
		},
	}
}

func newSettingsSetCmd(app *App) *cobra.Command {
	var (
		fontSize   int
		lineHeight float64
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change display settings (values are clamped to the allowed range)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fontChanged := cmd.Flags().Changed("font-size")
			lineChanged := cmd.Flags().Changed("line-height")
			if !fontChanged && !lineChanged {
				return writeErr(cmd, errors.New("nothing to set: pass --font-size and/or --line-height"))
			}

			rt, err := openRuntime(commandContext(cmd), app, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer rt.Close()

			s, err := storage.LoadSettings(commandContext(cmd), rt.Local)
			if err != nil {
				app.logger.Warn("load settings failed, starting from defaults", "error", err)
			}
			if fontChanged {
				s.FontSize = fontSize
			}
			if lineChanged {
				s.LineHeight = lineHeight
			}
			s = s.Clamp()
			if err := storage.SaveSettings(commandContext(cmd), rt.Local, s); err != nil {
				return writeErr(cmd, err)
			}
			writeOut(cmd, "font size:   %s\nline height: %s\n", s.FontSizeLabel(), s.LineHeightLabel())
			return nil
		},
	}

	cmd.Flags().IntVar(&fontSize, "font-size", 0, "Font size in px")
	cmd.Flags().Float64Var(&lineHeight, "line-height", 0, "Line height multiplier")
	return cmd
}
