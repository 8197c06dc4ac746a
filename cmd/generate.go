package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/examgen/internal/examgen"
	"github.com/abhisek/examgen/internal/export"
	"github.com/abhisek/examgen/internal/llm"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one exam and print it",
	Long: "Generate one exam from --text or --file and print it as text or JSON. " +
		"With --pdf the exam is also written as a printable PDF.",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := generateOptionsFromFlags(cmd)
		if err != nil {
			return err
		}

		d, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		provider, err := d.factory.For(cmd.Context(), "")
		if err != nil {
			return err
		}
		opts.Model = d.selectModel(cmd, provider)
		opts.Timeout = d.timeout()

		return runGenerate(cmd.Context(), cmd.OutOrStdout(), provider, opts)
	},
}

// generateOptions is the parsed form of the generate flags.
type generateOptions struct {
	Source  examgen.Source
	Model   string
	Timeout time.Duration
	JSON    bool
	Answers bool
	Width   int
	PDFPath string
	PDF     export.Options
}

func generateOptionsFromFlags(cmd *cobra.Command) (generateOptions, error) {
	flags := cmd.Flags()
	text, _ := flags.GetString("text")
	file, _ := flags.GetString("file")

	var opts generateOptions
	switch {
	case text != "" && file != "":
		return opts, errors.New("use either --text or --file, not both")
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return opts, fmt.Errorf("read %s: %w", file, err)
		}
		opts.Source = examgen.NewDocumentSource(filepath.Base(file), data)
	default:
		opts.Source = examgen.NewTextSource(text)
	}

	opts.JSON, _ = flags.GetBool("json")
	opts.Answers, _ = flags.GetBool("answers")
	opts.Width, _ = flags.GetInt("width")
	opts.PDFPath, _ = flags.GetString("pdf")
	opts.PDF = export.DefaultOptions()
	if font, _ := flags.GetString("font"); font != "" {
		opts.PDF.FontPath = font
	}
	return opts, nil
}

// runGenerate validates the source, generates one exam and writes it to out.
func runGenerate(ctx context.Context, out io.Writer, p llm.Provider, opts generateOptions) error {
	if err := opts.Source.Validate(); err != nil {
		return err
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	exam, err := examgen.New(p, examgen.DefaultConfig()).Generate(ctx, opts.Source, opts.Model)
	if err != nil {
		return err
	}

	if opts.PDFPath != "" {
		if err := writePDFFile(opts.PDFPath, exam, opts.PDF); err != nil {
			return err
		}
	}

	if opts.JSON {
		data, err := json.MarshalIndent(exam, "", "  ")
		if err != nil {
			return fmt.Errorf("encode exam: %w", err)
		}
		_, err = fmt.Fprintf(out, "%s\n", data)
		return err
	}
	return examgen.WriteText(out, exam, opts.Answers, opts.Width)
}

func writePDFFile(path string, exam *examgen.Exam, opts export.Options) (err error) {
	if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
		path = filepath.Join(path, export.Filename(exam))
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	if err := export.WritePDF(f, exam, opts); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func init() {
	flags := generateCmd.Flags()
	flags.StringP("text", "t", "", "Topic or passage to build the exam from")
	flags.StringP("file", "f", "", "PDF to build the exam from")
	flags.Bool("json", false, "Print the exam as JSON")
	flags.BoolP("answers", "a", false, "Include answers and explanations in text output")
	flags.IntP("width", "w", 60, "Chart width in columns for text output")
	flags.String("pdf", "", "Also write the exam as PDF to this file or directory")
	flags.String("font", "", "TTF font for PDF export; needed for Japanese explanations")
}
