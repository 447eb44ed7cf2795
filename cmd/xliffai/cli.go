package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/ZaguanLabs/xliffai"
	"github.com/ZaguanLabs/xliffai/provider"
	"github.com/ZaguanLabs/xliffai/store"
)

// newApp creates the CLI application with all commands.
func newApp(stdout io.Writer) *cli.App {
	return &cli.App{
		Name:    "xliffai",
		Usage:   "XLIFF candidate matching and AI translation for Business Central",
		Version: xliffai.FullVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "policy", Usage: "YAML scoring policy file (defaults built in)"},
		},
		Commands: []*cli.Command{
			matchCmd(stdout),
			applyCmd(stdout),
			translateCmd(stdout),
			importCmd(stdout),
		},
	}
}

func loadPolicy(c *cli.Context) (xliffai.ScoringPolicy, error) {
	if path := c.String("policy"); path != "" {
		return xliffai.LoadScoringPolicy(path)
	}
	return xliffai.DefaultScoringPolicy(), nil
}

func matchCmd(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "match",
		Usage: "Rank trans-unit candidates for a captured text",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Required: true, Usage: "XLIFF file"},
			&cli.StringFlag{Name: "text", Aliases: []string{"t"}, Required: true, Usage: "Captured UI text"},
			&cli.StringFlag{Name: "element-type", Usage: "BC element type (Field, Column, Action, ...)"},
			&cli.StringFlag{Name: "property-type", Usage: "Caption or ToolTip"},
			&cli.StringFlag{Name: "ui-area", Usage: "ActionBar, ContentArea, List, FactBox, Group, FieldGroup"},
			&cli.StringFlag{Name: "page", Usage: "Page name for affinity filtering"},
			&cli.StringFlag{Name: "table", Usage: "Table name for affinity filtering"},
			&cli.StringFlag{Name: "html", Usage: "Captured HTML fragment to derive context from"},
			&cli.StringFlag{Name: "flags", Usage: "JSON flag bag (inActionBar, inGrid, ...)"},
		},
		Action: func(c *cli.Context) error {
			policy, err := loadPolicy(c)
			if err != nil {
				return err
			}
			document, err := os.ReadFile(c.String("file"))
			if err != nil {
				return err
			}

			ectx := xliffai.ElementContext{
				ElementType:  c.String("element-type"),
				PropertyType: c.String("property-type"),
				UIArea:       c.String("ui-area"),
				PageName:     c.String("page"),
				TableName:    c.String("table"),
				Flags:        xliffai.ParseFlagBag(c.String("flags")),
			}
			if fragment := c.String("html"); fragment != "" {
				ectx = xliffai.ContextFromHTML(fragment, ectx)
			}

			texts := xliffai.BuildTextCandidates(c.String("text"), ectx)
			result := xliffai.MatchCandidates(string(document), texts, ectx, policy)
			return writeJSON(stdout, result)
		},
	}
}

func applyCmd(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "apply",
		Usage: "Write a translation into a trans-unit's target element",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Required: true, Usage: "XLIFF file"},
			&cli.StringFlag{Name: "unit-id", Usage: "Trans-unit id to address"},
			&cli.StringFlag{Name: "source-text", Usage: "Address the first untranslated unit with this source text"},
			&cli.StringFlag{Name: "text", Aliases: []string{"t"}, Required: true, Usage: "Translated text"},
			&cli.Float64Flag{Name: "confidence", Value: 1.0, Usage: "Confidence to record"},
			&cli.StringFlag{Name: "label", Value: xliffai.TranslationSourceUserCorrection, Usage: "translationSource label"},
			&cli.BoolFlag{Name: "write", Aliases: []string{"w"}, Usage: "Rewrite the file in place (default: stdout)"},
		},
		Action: func(c *cli.Context) error {
			if c.String("unit-id") == "" && c.String("source-text") == "" {
				return fmt.Errorf("one of --unit-id or --source-text is required")
			}
			path := c.String("file")
			document, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			var result xliffai.ApplyResult
			if unitID := c.String("unit-id"); unitID != "" {
				result, err = xliffai.ApplyTranslation(string(document), unitID,
					c.String("text"), c.Float64("confidence"), c.String("label"))
			} else {
				result, err = xliffai.ApplyTranslationBySource(string(document), c.String("source-text"),
					c.String("text"), c.Float64("confidence"), c.String("label"))
			}
			if err != nil {
				return err
			}

			return writeDocument(stdout, path, result, c.Bool("write"))
		},
	}
}

func translateCmd(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "translate",
		Usage: "Translate free text with confidence scoring",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "text", Aliases: []string{"t"}, Required: true, Usage: "Text to translate"},
			&cli.StringFlag{Name: "target", Required: true, Usage: "Target language (e.g. de-DE)"},
			&cli.StringFlag{Name: "source-lang", Value: "en-US", Usage: "Source language"},
			&cli.IntFlag{Name: "options", Value: 3, Usage: "Samples to request per call"},
			&cli.StringFlag{Name: "api-key", Usage: "OpenAI API key (default: OPENAI_API_KEY env)", EnvVars: []string{"OPENAI_API_KEY"}},
			&cli.StringFlag{Name: "model", Value: "gpt-4o-mini", Usage: "OpenAI model"},
			&cli.StringFlag{Name: "db", Usage: "SQLite correction db for exact/fuzzy lookup"},
		},
		Action: func(c *cli.Context) error {
			policy, err := loadPolicy(c)
			if err != nil {
				return err
			}

			p := provider.NewOpenAIProvider(provider.OpenAIConfig{
				APIKey: c.String("api-key"),
				Model:  c.String("model"),
			})
			retrying := xliffai.NewRetryableProvider(p, xliffai.ModelWarmupRetryConfig())

			opts := []xliffai.EngineOption{
				xliffai.WithSourceLang(c.String("source-lang")),
				xliffai.WithScoringPolicy(policy),
				xliffai.WithNumOptions(c.Int("options")),
			}
			if path := c.String("db"); path != "" {
				s, err := store.OpenSQLite(path)
				if err != nil {
					return err
				}
				defer s.Close()
				opts = append(opts, xliffai.WithStore(s))
			}

			engine := xliffai.NewEngine(c.String("target"), retrying, opts...)
			result, err := engine.Translate(context.Background(), c.String("text"))
			if err != nil {
				return err
			}
			return writeJSON(stdout, result)
		},
	}
}

func importCmd(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Apply an exported corrections file to an XLIFF document",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Required: true, Usage: "XLIFF file"},
			&cli.StringFlag{Name: "corrections", Aliases: []string{"c"}, Required: true, Usage: "Corrections JSON export"},
			&cli.StringFlag{Name: "db", Usage: "Also import the records into this SQLite correction db"},
			&cli.BoolFlag{Name: "write", Aliases: []string{"w"}, Usage: "Rewrite the file in place (default: stdout)"},
		},
		Action: func(c *cli.Context) error {
			policy, err := loadPolicy(c)
			if err != nil {
				return err
			}
			path := c.String("file")
			document, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			export, err := store.ReadRecordsFile(c.String("corrections"))
			if err != nil {
				return err
			}

			if dbPath := c.String("db"); dbPath != "" {
				s, err := store.OpenSQLite(dbPath)
				if err != nil {
					return err
				}
				defer s.Close()
				store.Import(context.Background(), s, export)
			}

			updated, outcomes := xliffai.ApplyCorrections(string(document), export.Records, policy)
			if err := writeJSON(stdout, outcomes); err != nil {
				return err
			}
			return writeDocument(stdout, path, xliffai.ApplyResult{Document: updated, Changed: true}, c.Bool("write"))
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func writeDocument(stdout io.Writer, path string, result xliffai.ApplyResult, inPlace bool) error {
	if !inPlace {
		_, err := io.WriteString(stdout, result.Document)
		return err
	}
	if !result.Changed {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(result.Document), info.Mode())
}
