// Command brlex compiles the Breton analyzer expansion into the grammar
// checker lexicon and offers a few inspection subcommands.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/brezhoneg/brlex"
	"github.com/brezhoneg/brlex/internal/config"
	"github.com/brezhoneg/brlex/internal/store"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"
)

var cfgFile string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "brlex",
		Short:         "Breton lexicon compiler for the grammar checker",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Initialize(cfgFile); err != nil {
				return err
			}
			if err := config.BindFlags(cmd.Flags()); err != nil {
				return err
			}
			if err := config.BindFlags(cmd.InheritedFlags()); err != nil {
				return err
			}
			setupLogging()
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./brlex.yaml)")
	rootCmd.PersistentFlags().String("log-file", "", "write logs to a rotated file instead of stderr")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log every diagnostic")

	rootCmd.AddCommand(compileCmd())
	rootCmd.AddCommand(simplifyCmd())
	rootCmd.AddCommand(classifyCmd())
	rootCmd.AddCommand(lookupCmd())
	return rootCmd
}

func setupLogging() {
	if path := config.GetString("log-file"); path != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   path,
			MaxSize:    config.GetInt("log-max-size"),
			MaxBackups: config.GetInt("log-max-backups"),
		})
	}
}

func loadCompiler() (*brlex.Compiler, error) {
	var data *brlex.Data
	if path := config.GetString("data"); path != "" {
		d, err := brlex.LoadDataFile(path)
		if err != nil {
			return nil, err
		}
		data = d
	}
	return brlex.New(data)
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}

func createOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// logEmitter logs diagnostics other than unrecognized tags.
type logEmitter struct{}

func (logEmitter) Emit(brlex.OutputRecord) error { return nil }

func (logEmitter) Report(d brlex.Diagnostic) {
	if d.Kind == brlex.DiagUnrecognized {
		return
	}
	log.Printf("warning: %s: word=%q lemma=%q tag=%q: %s", d.Kind, d.Word, d.Lemma, d.Tag, d.Detail)
}

func compileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile [input]",
		Short: "Compile analyzer output into the lexicon",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := config.GetString("input")
			if len(args) == 1 {
				input = args[0]
			}
			return runCompile(cmd.ErrOrStderr(), input)
		},
	}
	cmd.Flags().StringP("output", "o", "-", "lexicon output file")
	cmd.Flags().String("errors", "", "diagnostic output file (default stderr)")
	cmd.Flags().String("report", "", "tag frequency report file")
	cmd.Flags().String("data", "", "YAML word lists replacing the embedded ones")
	cmd.Flags().String("sqlite", "", "also store the lexicon in this SQLite database")
	return cmd
}

// runCompile writes diagnostics to stderr unless --errors names a file.
func runCompile(stderr io.Writer, input string) (err error) {
	c, err := loadCompiler()
	if err != nil {
		return err
	}

	in, err := openInput(input)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := createOutput(config.GetString("output"))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close lexicon: %w", cerr)
		}
	}()

	diagW := stderr
	if path := config.GetString("errors"); path != "" {
		f, err := createOutput(path)
		if err != nil {
			return err
		}
		defer f.Close()
		diagW = f
	}

	tsv := brlex.NewTSVEmitter(out, diagW)
	emitters := []brlex.Emitter{tsv}
	if config.GetBool("verbose") {
		emitters = append(emitters, logEmitter{})
	}

	var run *store.Run
	if path := config.GetString("sqlite"); path != "" {
		s, err := store.New(path)
		if err != nil {
			return err
		}
		defer s.Close()
		run, err = s.BeginRun()
		if err != nil {
			return err
		}
		emitters = append(emitters, run)
	}

	st, err := c.Compile(in, brlex.Tee(emitters...))
	if err != nil {
		if run != nil {
			run.Abort()
		}
		return err
	}
	if err := tsv.Flush(); err != nil {
		if run != nil {
			run.Abort()
		}
		return fmt.Errorf("write lexicon: %w", err)
	}
	if run != nil {
		if err := run.Finish(st); err != nil {
			return err
		}
		log.Printf("stored run %s", run.ID)
	}

	if path := config.GetString("report"); path != "" {
		f, err := createOutput(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := brlex.WriteTagReport(f, st); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	log.Printf("recognized %d, unrecognized %d, mutation anomalies %d, synthesized %d, lemmas %d, words %d, tags %d",
		st.Recognized, st.Unrecognized, st.Anomalies, st.Synthesized, len(st.Lemmas), len(st.Words), len(st.TagCounts))
	if n := len(st.UnseenPlurals); n > 0 {
		log.Printf("%d plural trigger entries never matched: %s", n, strings.Join(st.UnseenPlurals, ", "))
	}
	return nil
}

func simplifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "simplify <tag>...",
		Short: "Show the simplified form of analyzer tags",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, raw := range args {
				if t, ok := brlex.Simplify(raw); ok {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", raw, t)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t(unrecognized)\n", raw)
				}
			}
			return nil
		},
	}
}

func classifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <lemma> <word>",
		Short: "Show the mutation between a lemma and a word",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, an := brlex.DetectMutation(args[0], args[1])
			if an != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "anomaly: %s\n", an)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", m.Class, m.Annotation())
			return nil
		},
	}
}

func lookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <word>",
		Short: "Look a word up in the latest run stored in SQLite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.GetString("sqlite")
			if path == "" {
				return fmt.Errorf("--sqlite is required")
			}
			s, err := store.New(path)
			if err != nil {
				return err
			}
			defer s.Close()

			run, err := s.LatestRun()
			if err != nil {
				return err
			}
			recs, err := s.Lookup(run.ID, args[0])
			if err != nil {
				return err
			}
			for _, r := range recs {
				fmt.Fprintln(cmd.OutOrStdout(), r.String())
			}
			return nil
		},
	}
	cmd.Flags().String("sqlite", "", "SQLite database written by compile --sqlite")
	return cmd
}
