package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kataras/hoto"
	"github.com/kataras/hoto/pkg/config"
	"github.com/kataras/hoto/pkg/formatter"
	"github.com/kataras/hoto/pkg/loader"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	format     string
	suggest    bool
	renameMode bool
	noAction   bool
	overwrite  bool
	verbose    bool
	debug      bool
	configPath string
	maxChars   int
	report     string
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "hoto [flags] FILE...",
		Short: "Rename HTML and MAFF files using HTML tags and metadata",
		Long: `Rename saved web pages after their content.

The format is a template. Text in braces is replaced:
  {h1} {title} {ext} {year} {filename} {stem} {archived} {host}
  {sel.h2}  {sel('h2:first')}  {sel('h1', find='Tero', replace='Someone')}
  {rdf.originalurl}  {rdf.archived}  {path.name}

Try --suggest to see what a file offers.`,
		Example: `  hoto --suggest page.maff
  hoto --format '{archived} {title}.{ext}' --rename -n *.maff`,
		Run: run,
	}

	rootCmd.Flags().StringVarP(&format, "format", "f", hoto.DefaultFormat, "Output format, e.g. \"{rdf.archived} {title}.{ext}\"")
	rootCmd.Flags().BoolVarP(&suggest, "suggest", "s", false, "Show tags and metadata found in each file, with the expressions that select them")
	rootCmd.Flags().BoolVar(&renameMode, "rename", false, "Rename files to the rendered format")
	rootCmd.Flags().BoolVarP(&noAction, "no-action", "n", false, "Show what would be renamed without modifying any files")
	rootCmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace existing files when renaming")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.Flags().BoolVarP(&debug, "debug", "d", false, "Debug output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/hoto/config.toml, or $HOTO_CONFIG)")
	rootCmd.Flags().IntVar(&maxChars, "max-chars", 0, "Longest text taken from one selector match (default from config, 160)")
	rootCmd.Flags().StringVar(&report, "report", "auto", "Suggest report style: auto, plain, table, markdown")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("hoto version %s\n", hoto.Version)
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [PATH]",
		Short: "Write a commented sample configuration",
		Args:  cobra.MaximumNArgs(1),
		Run:   runConfigInit,
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(versionCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) {
	red := color.New(color.FgRed)
	logger := newCLILogger(verbose, debug)

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		red.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if exists {
		logger.Debugf("Loaded config %s", resolved)
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = format
	}
	if flags.Changed("max-chars") {
		cfg.MaxChars = maxChars
	}
	if flags.Changed("overwrite") {
		cfg.Overwrite = overwrite
	}
	if err := cfg.Validate(); err != nil {
		red.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	style, explicit, err := formatter.ParseStyle(report)
	if err != nil {
		red.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !explicit && isatty.IsTerminal(os.Stdout.Fd()) {
		style = formatter.StyleTable
	}

	if len(args) == 0 {
		logger.Warnf("Usage: 'hoto foo.html'. Try --help.")
		return
	}

	paths := make([]string, 0, len(args))
	for _, arg := range args {
		path, err := filepath.Abs(arg)
		if err != nil {
			red.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := loader.Stat(path); err != nil {
			red.Fprintf(os.Stderr, "Error: %v. Try --help. Exiting...\n", err)
			os.Exit(1)
		}
		paths = append(paths, path)
	}

	if noAction {
		logger.Warnf("Simulating only, no files will be modified. (--no-action)")
	}

	opts := hoto.Options{
		Format:       cfg.Format,
		Suggest:      suggest,
		Rename:       renameMode,
		DryRun:       noAction,
		Overwrite:    cfg.Overwrite,
		MaxChars:     cfg.MaxChars,
		SuggestExtra: cfg.Suggest,
		Logger:       logger,
	}

	err = hoto.Run(paths, opts, func(res *hoto.Result) {
		printResult(res, style, logger)
	})
	if err != nil {
		red.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printResult(res *hoto.Result, style formatter.Style, logger *cliLogger) {
	switch {
	case res.Suggestions != nil:
		fmt.Print(formatter.Report(res.Path, res.Suggestions, style))
	case res.NewPath != "":
		color.New(color.FgCyan).Printf("%q ->\n", res.Path)
		color.New(color.FgGreen).Printf("\t%q\n", res.NewPath)
		if res.Renamed {
			logger.Infof("Renamed file.")
		}
	default:
		fmt.Println(res.Output)
	}
}

func runConfigInit(cmd *cobra.Command, args []string) {
	red := color.New(color.FgRed)

	path := configPath
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		var err error
		path, err = config.DefaultConfigPath()
		if err != nil {
			red.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if err := config.CreateSample(path); err != nil {
		red.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	color.New(color.FgGreen).Printf("Wrote %s\n", path)
}
