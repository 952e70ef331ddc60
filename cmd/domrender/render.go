package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/domrender/internal/config"
	"github.com/vango-dev/domrender/internal/errors"
	"github.com/vango-dev/domrender/internal/loader"
	"github.com/vango-dev/domrender/pkg/dom/memdom"
	"github.com/vango-dev/domrender/pkg/render"
)

func renderCmd(flags *globalFlags) *cobra.Command {
	var (
		format     string
		defaultTag string
		out        string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a vnode document to HTML",
		Long: `Render a vnode document and print the resulting markup.

The document format is taken from the file extension (.json, .yaml,
.yml, .msgpack, .mpk) unless --format is given. Use "-" to read the
document from stdin; --format is then required.

Examples:
  domrender render page.json
  domrender render page.yaml --default-tag section
  cat page.json | domrender render - --format json --out page.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd.ErrOrStderr(), override(flags.logLevel, cfg.Log.Level), override(flags.logFormat, cfg.Log.Format))
			if err != nil {
				return err
			}

			var f loader.Format
			if format != "" {
				if f, err = loader.ParseFormat(format); err != nil {
					return err
				}
			}

			var doc any
			if args[0] == "-" {
				if f == "" {
					return errors.New("E101").
						WithDetail("stdin has no file extension").
						WithSuggestion("Pass --format json, yaml or msgpack")
				}
				doc, err = loader.Decode(cmd.InOrStdin(), f)
			} else {
				doc, err = loader.LoadFile(args[0], f)
			}
			if err != nil {
				return err
			}

			mem := memdom.New()
			renderer := render.New(mem, render.Config{
				DefaultTag: override(defaultTag, cfg.Render.DefaultTag),
				Logger:     logger,
				Context:    cmd.Context(),
			})
			defer renderer.Abort()

			markup := memdom.RenderHTML(renderer.Render(doc)...)

			if out == "" {
				_, err := cmd.OutOrStdout().Write([]byte(markup + "\n"))
				return err
			}
			if err := os.WriteFile(out, []byte(markup), 0o644); err != nil {
				return errors.New("E160").Wrap(err)
			}
			success(cmd.ErrOrStderr(), "Wrote %s", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Document format: json, yaml or msgpack")
	cmd.Flags().StringVar(&defaultTag, "default-tag", "", "Element kind for vnodes without a tag (default from config)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write markup to this file instead of stdout")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to domrender.yaml or domrender.json")

	return cmd
}

// loadConfig loads path, or the config in the working directory when path
// is empty. A missing working-directory config means defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	cfg, err := config.Load(".")
	if err != nil {
		if errors.HasCode(err, "E141") {
			return config.New(), nil
		}
		return nil, err
	}
	return cfg, nil
}
