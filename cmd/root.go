package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sabhz/scribe/internal/config"
	"github.com/sabhz/scribe/internal/diagnostics"
	"github.com/sabhz/scribe/internal/paths"
	"github.com/sabhz/scribe/internal/transcribe"
	"github.com/spf13/cobra"
)

var (
	flagOutput   string
	flagInDir    string
	flagOutDir   string
	flagModel    string
	flagLanguage string
	flagDevice   string
	flagBackend  string
)

var rootCmd = &cobra.Command{
	Use:   "scribe <input>",
	Short: "Transcribe video/audio to plain text",
	Long: `Scribe converts a video or audio file into a plain-text transcript using
openai-whisper or faster-whisper. A bare input filename is looked up in the
input directory; the transcript lands in the output directory as <name>.txt.`,
	Args:          validateArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		cfg.ExpandPaths()
		cfg.ApplyDefaults()
		applyConfig(cfg)

		if err := validateChoices(); err != nil {
			return err
		}

		if err := diagnostics.NewGate().EnsureFFmpeg(); err != nil {
			return err
		}

		inputPath := paths.ResolveInput(args[0], flagInDir)
		if !paths.IsFile(inputPath) {
			return &paths.NotFoundError{
				Candidates: paths.InputCandidates(args[0], flagInDir),
			}
		}

		text, err := transcribe.NewDispatcher().Run(context.Background(), transcribe.Request{
			InputPath: inputPath,
			Model:     flagModel,
			Language:  flagLanguage,
			Device:    transcribe.Device(flagDevice),
			Backend:   flagBackend,
		})
		if err != nil {
			return err
		}

		outPath, err := paths.ResolveOutput(inputPath, flagOutput, flagOutDir)
		if err != nil {
			return err
		}
		if err := paths.WriteTranscript(outPath, text); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Done. Transcript written to: %s\n", outPath)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, message(err))
		os.Exit(1)
	}
}

// message keeps known failures as-is and marks anything outside the error
// taxonomy as unexpected so the raw cause survives into the output.
func message(err error) string {
	var dep *transcribe.DependencyMissingError
	var run *transcribe.TranscribeError
	var missing *paths.NotFoundError
	var usage *usageError
	if errors.As(err, &dep) || errors.As(err, &run) || errors.As(err, &missing) || errors.As(err, &usage) {
		return err.Error()
	}
	return "unexpected error: " + err.Error()
}

// usageError marks bad command-line input.
type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

func validateArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return &usageError{msg: err.Error()}
	}
	return nil
}

// validateChoices rejects flag values outside their closed vocabularies.
// Model and language stay unchecked: they are passed through opaquely to
// the engine, which owns that vocabulary.
func validateChoices() error {
	switch flagDevice {
	case "", "cpu", "cuda":
	default:
		return &usageError{msg: fmt.Sprintf("invalid --device %q (choices: cpu, cuda)", flagDevice)}
	}

	for _, b := range transcribe.Backends() {
		if flagBackend == b {
			return nil
		}
	}
	return &usageError{msg: fmt.Sprintf("invalid --backend %q (choices: %s)", flagBackend, strings.Join(transcribe.Backends(), ", "))}
}

// applyConfig fills values from the config file for flags the user left
// unset. Flags always win over the file.
func applyConfig(cfg *config.Config) {
	if flagInDir == "" {
		flagInDir = cfg.Paths.InputDir
	}
	if flagOutDir == "" {
		flagOutDir = cfg.Paths.OutputDir
	}
	if flagModel == "" {
		flagModel = cfg.Transcription.Model
	}
	if flagLanguage == "" {
		flagLanguage = cfg.Transcription.Language
	}
	if flagDevice == "" {
		flagDevice = cfg.Transcription.Device
	}
	if flagBackend == "" {
		flagBackend = cfg.Transcription.Backend
	}
}

func init() {
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{msg: err.Error()}
	})

	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output .txt filename or path (default: <input stem>.txt in --outdir)")
	rootCmd.Flags().StringVar(&flagInDir, "indir", "", "Directory searched for a bare input filename (default: media)")
	rootCmd.Flags().StringVar(&flagOutDir, "outdir", "", "Directory for transcripts given a bare or default output name (default: outputs)")
	rootCmd.Flags().StringVarP(&flagModel, "model", "m", "", "Model name (tiny, base, small, medium, large, ...) (default: small)")
	rootCmd.Flags().StringVarP(&flagLanguage, "language", "l", "", "Language code (e.g. en); omit to auto-detect")
	rootCmd.Flags().StringVar(&flagDevice, "device", "", "Force device, cpu or cuda (default: auto-detect)")
	rootCmd.Flags().StringVar(&flagBackend, "backend", "", "Engine, whisper or faster (default: whisper)")
}
