package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/sandeepkv93/teleprompt/internal/model"
	"github.com/spf13/cobra"
)

func newSlidesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slides",
		Short: "Slide script commands",
	}
	cmd.AddCommand(newSlidesListCmd(app))
	cmd.AddCommand(newSlidesShowCmd(app))
	cmd.AddCommand(newSlidesSetScriptCmd(app))
	cmd.AddCommand(newSlidesSetTitleCmd(app))
	cmd.AddCommand(newSlidesExportCmd(app))
	cmd.AddCommand(newSlidesImportCmd(app))
	return cmd
}

// loadStore reads every slide through the configured gateway.
func loadStore(cmd *cobra.Command, app *App) (*runtime, *model.Store, error) {
	rt, err := openRuntime(commandContext(cmd), app, false)
	if err != nil {
		return nil, nil, err
	}
	raw, err := rt.Gateway.LoadScripts(commandContext(cmd))
	if err != nil {
		_ = rt.Close()
		return nil, nil, fmt.Errorf("load scripts: %w", err)
	}
	store, err := model.Load(raw)
	if err != nil {
		_ = rt.Close()
		return nil, nil, fmt.Errorf("load scripts: %w", err)
	}
	return rt, store, nil
}

func newSlidesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List slides that have a script or title",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, store, err := loadStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer rt.Close()

			for _, n := range store.Numbers() {
				rec := store.Get(n)
				title := rec.Title
				if title == "" {
					title = "-"
				}
				writeOut(cmd, "%d\t%s\t%s\n", n, title, firstScriptLine(rec.Script))
			}
			return nil
		},
	}
}

func newSlidesShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <slide>",
		Short: "Print one slide's title and script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := model.ParseSlideNumber(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			rt, store, err := loadStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer rt.Close()

			rec := store.Get(n)
			if rec.Title != "" {
				writeOut(cmd, "# %s\n\n", rec.Title)
			}
			writeOut(cmd, "%s\n", rec.Script)
			return nil
		},
	}
}

func newSlidesSetScriptCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-script <slide> <text...>",
		Short: "Replace a slide's script (empty text clears it)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateSlide(cmd, app, args, func(s *model.Store, n int, text string) {
				s.SetScript(n, text)
			})
		},
	}
}

func newSlidesSetTitleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-title <slide> <text...>",
		Short: "Replace a slide's title (empty text clears it)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateSlide(cmd, app, args, func(s *model.Store, n int, text string) {
				s.SetTitle(n, text)
			})
		},
	}
}

func mutateSlide(cmd *cobra.Command, app *App, args []string, apply func(*model.Store, int, string)) error {
	n, err := model.ParseSlideNumber(args[0])
	if err != nil {
		return writeErr(cmd, err)
	}
	rt, store, err := loadStore(cmd, app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer rt.Close()

	apply(store, n, strings.Join(args[1:], " "))
	if err := rt.Gateway.SaveScripts(commandContext(cmd), store.Serialize()); err != nil {
		return writeErr(cmd, fmt.Errorf("save scripts: %w", err))
	}
	app.logger.Info("slide updated from cli", "slide", n, "command", cmd.Name())
	writeOut(cmd, "slide %d saved\n", n)
	return nil
}

func newSlidesExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write all slides as versioned JSON to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, store, err := loadStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer rt.Close()

			data, err := model.Encode(store.Serialize())
			if err != nil {
				return writeErr(cmd, err)
			}
			writeOut(cmd, "%s\n", data)
			return nil
		},
	}
}

func newSlidesImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all slides from a JSON file (legacy or versioned)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return writeErr(cmd, fmt.Errorf("read import file: %w", err))
			}
			raw, format, err := model.Decode(data)
			if err != nil {
				return writeErr(cmd, fmt.Errorf("decode import file: %w", err))
			}
			store, err := model.Load(raw)
			if err != nil {
				return writeErr(cmd, fmt.Errorf("decode import file: %w", err))
			}

			rt, err := openRuntime(commandContext(cmd), app, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer rt.Close()
			if err := rt.Gateway.SaveScripts(commandContext(cmd), store.Serialize()); err != nil {
				return writeErr(cmd, fmt.Errorf("save scripts: %w", err))
			}
			app.logger.Info("slides imported", "file", args[0], "format", string(format), "slides", store.Len())
			writeOut(cmd, "imported %d slide(s) (%s)\n", store.Len(), format)
			return nil
		},
	}
}

func firstScriptLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
