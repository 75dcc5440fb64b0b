package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/amosWeiskopf/linksmith/internal/config"
	"github.com/amosWeiskopf/linksmith/internal/logging"
	"github.com/amosWeiskopf/linksmith/internal/models"
	"github.com/amosWeiskopf/linksmith/pkg/analyzer"
	"github.com/amosWeiskopf/linksmith/pkg/extractor"
	"github.com/amosWeiskopf/linksmith/pkg/fetcher"
	"github.com/amosWeiskopf/linksmith/pkg/reporter"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "linksmith",
		Short: "LinkSmith - extract the links of a web page to CSV",
		Long: `LinkSmith fetches a single web page, collects its hyperlinks with their
anchor text, resolves them to absolute URLs and saves them to a CSV file.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "Config file path")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose output")

	rootCmd.AddCommand(newExtractCmd())
	return rootCmd
}

func newExtractCmd() *cobra.Command {
	extractCmd := &cobra.Command{
		Use:          "extract [URL]",
		Short:        "Extract the links of a page and save them",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runExtract,
	}

	extractCmd.Flags().StringP("out", "o", "", "Output folder (created if missing)")
	extractCmd.Flags().StringP("filename", "f", "", "Output filename")
	extractCmd.Flags().IntP("max", "n", 0, "Maximum number of links to extract")
	extractCmd.Flags().String("format", "", "Output format (csv, json, markdown)")
	extractCmd.Flags().Duration("timeout", 0, "HTTP request timeout, 0 for no timeout")
	extractCmd.Flags().String("user-agent", "", "User agent sent with the request")
	extractCmd.Flags().Bool("print", false, "Print the extracted links as a table")
	extractCmd.Flags().Bool("summary", false, "Print a summary of internal and external links")

	return extractCmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, closer, err := logging.Open(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer closer.Close()

	req := cfg.Request(args[0])
	if err := req.Validate(); err != nil {
		return err
	}

	ext := extractor.New(fetcher.New(cfg.FetchOptions()), reporter.New(), logger)
	result := ext.Extract(cmd.Context(), req)
	if !result.Succeeded() {
		return fmt.Errorf("%s", result.Message())
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, result.Message())

	if printLinks, _ := cmd.Flags().GetBool("print"); printLinks {
		writeLinkTable(out, result.Links)
	}
	if summary, _ := cmd.Flags().GetBool("summary"); summary {
		s, err := analyzer.New().Summarize(result.SourceURL, result.Links)
		if err != nil {
			return fmt.Errorf("summary failed: %w", err)
		}
		writeSummaryTable(out, s)
	}

	return nil
}

// applyFlags overrides config values with the flags given explicitly
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("out") {
		cfg.Output.Folder, _ = flags.GetString("out")
	}
	if flags.Changed("filename") {
		cfg.Output.Filename, _ = flags.GetString("filename")
	}
	if flags.Changed("max") {
		cfg.Extract.MaxLinks, _ = flags.GetInt("max")
	}
	if flags.Changed("format") {
		cfg.Output.Format, _ = flags.GetString("format")
	}
	if flags.Changed("timeout") {
		cfg.Fetch.Timeout, _ = flags.GetDuration("timeout")
	}
	if flags.Changed("user-agent") {
		cfg.Fetch.UserAgent, _ = flags.GetString("user-agent")
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		cfg.Logging.Level = "debug"
	}
}

func writeLinkTable(w io.Writer, links []models.Link) {
	tbl := table.New("#", "Link Text", "URL").WithWriter(w)
	for i, link := range links {
		tbl.AddRow(i+1, link.Text, link.URL)
	}
	tbl.Print()
}

func writeSummaryTable(w io.Writer, s *analyzer.Summary) {
	tbl := table.New("Metric", "Count").WithWriter(w)
	tbl.AddRow("Total", s.Total)
	tbl.AddRow("Internal", s.Internal)
	tbl.AddRow("External", s.External)
	tbl.AddRow("Non-web", s.NonWeb)
	tbl.AddRow("Unique", s.Unique)
	tbl.Print()

	if len(s.TopDomains) == 0 {
		return
	}
	fmt.Fprintln(w)
	domains := table.New("External Domain", "Links").WithWriter(w)
	for _, d := range s.TopDomains {
		domains.AddRow(d.Domain, d.Count)
	}
	domains.Print()
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
