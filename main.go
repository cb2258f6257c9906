package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// defaultOutputName is the reserved output filename placed in the root when
// no explicit output path is given. Its suffix matches outputSuffix so prior
// runs are never re-ingested.
const defaultOutputName = "microagents.md.llm"

var (
	// Input / output
	rootDir    string
	outputFile string

	// Alternate sinks
	copyToClipboard bool
	printToStdout   bool

	// Token counting
	disableTokens  bool
	tokenizerType  string
	tokenizerModel string
	tokenizerFile  string

	// Appended web sections
	webURLs []string

	// Interactive root selection
	interactiveMode bool
)

// version is the application version, set via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "llmify [ROOT]",
	Short: "llmify flattens a directory tree into a single markdown document.",
	Long: `llmify walks a directory, skips binary files and its own artifacts, and
concatenates every remaining file into one document, each file headed by its
relative path. The result is suited to feeding a tree of small documentation
files to a text-consuming process in one shot.`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := rootDir
		if len(args) == 1 {
			root = args[0]
		}

		if interactiveMode {
			picked, err := runInteractivePicker()
			if err != nil {
				return err
			}
			if picked == "" {
				return nil // user aborted
			}
			root = picked
		}

		output := outputFile

		if isGitURL(root) {
			// The default output path must be pinned before root becomes
			// the throwaway clone dir, or the document would be deleted
			// together with it. It lands in the invoking directory.
			if output == "" {
				output = defaultOutputName
			}
			tempDir, err := cloneGitRepo(root)
			if err != nil {
				return err
			}
			defer func() {
				fmt.Printf("Cleaning up temporary directory: %s\n", tempDir)
				_ = os.RemoveAll(tempDir)
			}()
			root = tempDir
		}

		if root == "" {
			root = defaultRoot()
		}
		if output == "" {
			output = filepath.Join(root, defaultOutputName)
		}

		cfg := Config{
			RootDir:     root,
			OutputPath:  output,
			URLs:        webURLs,
			CountTokens: !disableTokens,
			ToClipboard: copyToClipboard,
			ToStdout:    printToStdout,
		}

		if cfg.CountTokens {
			tk, err := newTokenizer()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error initializing tokenizer: %v\n", err)
				fmt.Fprintln(os.Stderr, "Token counting disabled due to error.")
				cfg.CountTokens = false
			} else {
				defer tk.Close()
				cfg.Tokenizer = tk
			}
		}

		return run(cfg)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Flags().StringVar(&rootDir, "root", "", "Directory to flatten (default: the directory containing the executable)")
	viper.BindPFlag("root", rootCmd.Flags().Lookup("root"))
	rootCmd.Flags().StringVarP(&outputFile, "file", "f", "", "Output file path (default: <root>/"+defaultOutputName+")")
	viper.BindPFlag("file", rootCmd.Flags().Lookup("file"))

	rootCmd.Flags().BoolVarP(&copyToClipboard, "clipboard", "c", false, "Copy the document to the clipboard instead of writing a file")
	viper.BindPFlag("clipboard", rootCmd.Flags().Lookup("clipboard"))
	rootCmd.Flags().BoolVarP(&printToStdout, "print", "p", false, "Print the document to stdout instead of writing a file")
	viper.BindPFlag("print", rootCmd.Flags().Lookup("print"))

	rootCmd.Flags().BoolVar(&disableTokens, "no-tokens", false, "Disable token counting")
	viper.BindPFlag("no_tokens", rootCmd.Flags().Lookup("no-tokens"))
	rootCmd.Flags().StringVar(&tokenizerType, "tokenizer", "tiktoken", "Tokenizer to use: tiktoken or huggingface")
	viper.BindPFlag("tokenizer", rootCmd.Flags().Lookup("tokenizer"))
	rootCmd.Flags().StringVar(&tokenizerModel, "model", "", "Model name for the tokenizer (e.g. gpt-4o, gpt2)")
	viper.BindPFlag("model", rootCmd.Flags().Lookup("model"))
	rootCmd.Flags().StringVar(&tokenizerFile, "tokenizer-file", "", "Path to a local tokenizer.json")
	viper.BindPFlag("tokenizer_file", rootCmd.Flags().Lookup("tokenizer-file"))

	rootCmd.Flags().StringArrayVar(&webURLs, "url", nil, "Web page appended to the document as an extra section (repeatable)")
	viper.BindPFlag("urls", rootCmd.Flags().Lookup("url"))

	rootCmd.Flags().BoolVar(&interactiveMode, "interactive", false, "Pick the root directory interactively")
	viper.BindPFlag("interactive", rootCmd.Flags().Lookup("interactive"))

	viper.SetDefault("tokenizer", "tiktoken")
	viper.SetDefault("no_tokens", false)
	viper.SetDefault("interactive", false)
}

// initConfig reads in the config file and LLMIFY_* environment variables.
func initConfig() {
	home, err := os.UserHomeDir()
	cobra.CheckErr(err)

	viper.AddConfigPath(filepath.Join(home, ".config", "llmify"))
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	viper.AutomaticEnv()
	viper.SetEnvPrefix("LLMIFY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config file: %s\n", err)
		}
	}

	// Config/env values only apply when the flag was not given explicitly.
	if !rootCmd.Flags().Changed("root") {
		rootDir = viper.GetString("root")
	}
	if !rootCmd.Flags().Changed("file") {
		outputFile = viper.GetString("file")
	}
}

// defaultRoot is the directory holding the running executable, matching the
// tool's original script-relative behavior. It falls back to the current
// directory when the executable path cannot be resolved.
func defaultRoot() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
