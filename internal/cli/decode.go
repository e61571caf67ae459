package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gork-labs/incomectl/internal/config"
	"github.com/gork-labs/incomectl/pkg/income"
	"github.com/gork-labs/incomectl/pkg/records"
	"github.com/gork-labs/incomectl/pkg/unions"
)

// DecodeConfig holds the flags of the decode command.
type DecodeConfig struct {
	Input      string
	Output     string
	OutputPath string
	Strict     bool
	Lenient    bool
}

func newDecodeCommand(root *rootOptions) *cobra.Command {
	var cfg DecodeConfig

	cmd := &cobra.Command{
		Use:   "decode [file|-]",
		Short: "Decode Income records and re-emit their canonical encoding",
		Long: `Decode reads a single record, a JSON or JSONC array, newline-delimited
JSON, a YAML stream or a CBOR sequence. Every record is decoded on its own;
rejected records are reported on stderr with their index and the command
exits non-zero if any record failed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			return runDecode(cmd, root, &cfg, path)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&cfg.Input, "input", "auto", "Input format: auto, json, jsonc, yaml or cbor")
	fs.StringVar(&cfg.Output, "output", "", "Output format: json, yaml or cbor (default from config)")
	fs.StringVarP(&cfg.OutputPath, "out", "o", "-", "Path to output file or '-' for stdout")
	addModeFlags(fs, &cfg.Strict, &cfg.Lenient)
	cmd.MarkFlagsMutuallyExclusive("strict", "lenient")

	return cmd
}

func addModeFlags(fs *pflag.FlagSet, strict, lenient *bool) {
	fs.BoolVar(strict, "strict", false, "Reject fields the selected variant does not declare")
	fs.BoolVar(lenient, "lenient", false, "Ignore fields the selected variant does not declare")
}

// resolveMode prefers the mode flags over the configured codec mode.
func resolveMode(cfg config.Config, strict, lenient bool) (unions.Mode, error) {
	switch {
	case strict:
		return unions.Strict, nil
	case lenient:
		return unions.Lenient, nil
	}
	return unions.ParseMode(cfg.Codec.Mode)
}

func resolveOutputFormat(flag string, cfg config.Config) (records.Format, error) {
	name := flag
	if name == "" {
		name = cfg.Output.Format
	}
	f, err := records.ParseFormat(name)
	if err != nil {
		return "", err
	}
	switch f {
	case records.JSON, records.YAML, records.CBOR:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", name)
	}
}

// recordFailure is a record the codec rejected.
type recordFailure struct {
	Index int
	Err   error
}

// decodeRecords decodes every record and re-encodes the accepted ones.
func decodeRecords(codec *unions.Tagged[income.Income], recs []unions.Record) ([]unions.Record, []recordFailure) {
	var (
		out      []unions.Record
		failures []recordFailure
	)
	for i, rec := range recs {
		v, err := codec.Decode(rec)
		if err == nil {
			var canonical unions.Record
			canonical, err = codec.Encode(v)
			if err == nil {
				out = append(out, canonical)
				continue
			}
		}
		failures = append(failures, recordFailure{Index: i, Err: err})
	}
	return out, failures
}

func runDecode(cmd *cobra.Command, root *rootOptions, cfg *DecodeConfig, path string) error {
	mode, err := resolveMode(root.cfg, cfg.Strict, cfg.Lenient)
	if err != nil {
		return err
	}
	inFormat, err := records.ParseFormat(cfg.Input)
	if err != nil {
		return err
	}
	outFormat, err := resolveOutputFormat(cfg.Output, root.cfg)
	if err != nil {
		return err
	}

	data, name, err := readInput(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}
	if inFormat == records.Auto {
		inFormat = records.DetectFormat(name, data)
		root.log.Debug("input format detected", "format", string(inFormat))
	}

	recs, err := records.Read(data, inFormat)
	if err != nil {
		return fmt.Errorf("read records: %w", err)
	}

	out, failures := decodeRecords(income.Codec.WithMode(mode), recs)
	for _, f := range failures {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "record %d: %v\n", f.Index, f.Err)
		root.log.Warn("record rejected",
			"index", f.Index,
			"kind", errorKind(f.Err),
			"error", f.Err.Error())
	}
	root.log.Info("decode finished",
		"records", len(recs),
		"rejected", len(failures),
		"mode", mode.String(),
		"input", string(inFormat),
		"output", string(outFormat))

	err = writeOutput(cmd.OutOrStdout(), cfg.OutputPath, func(w io.Writer) error {
		return records.Write(w, outFormat, out)
	})
	if err != nil {
		return err
	}

	if len(failures) > 0 {
		return fmt.Errorf("%d of %d records failed to decode", len(failures), len(recs))
	}
	return nil
}

// errorKind names the class of a decode failure for log output.
func errorKind(err error) string {
	switch {
	case errors.Is(err, unions.ErrMissingDiscriminant):
		return "missing_discriminator"
	case errors.Is(err, unions.ErrUnknownVariant):
		return "unknown_variant"
	case errors.Is(err, unions.ErrUnexpectedField):
		return "unexpected_field"
	case errors.Is(err, unions.ErrPayloadDecode):
		return "payload_decode"
	default:
		return "other"
	}
}
