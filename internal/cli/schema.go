package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gork-labs/incomectl/pkg/income"
	"github.com/gork-labs/incomectl/pkg/unions"
)

// SchemaConfig holds the flags of the schema command.
type SchemaConfig struct {
	Format     string
	Variant    string
	OutputPath string
	Strict     bool
	Lenient    bool
}

func newSchemaCommand(root *rootOptions) *cobra.Command {
	var cfg SchemaConfig

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Type Definition of the Income union",
		Long: `Schema prints the discriminator form describing every Income variant.
With --variant it prints the standalone properties form of that variant.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode, err := resolveMode(root.cfg, cfg.Strict, cfg.Lenient)
			if err != nil {
				return err
			}
			def, err := buildSchema(income.Codec.WithMode(mode), cfg.Variant)
			if err != nil {
				return err
			}
			root.log.Debug("schema built", "mode", mode.String(), "variant", cfg.Variant)
			return writeOutput(cmd.OutOrStdout(), cfg.OutputPath, func(w io.Writer) error {
				return writeSchema(w, cfg.Format, def)
			})
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&cfg.Format, "output", "json", "Output format: json or yaml")
	fs.StringVar(&cfg.Variant, "variant", "", "Print only this variant, e.g. EmploymentIncome")
	fs.StringVarP(&cfg.OutputPath, "out", "o", "-", "Path to output file or '-' for stdout")
	addModeFlags(fs, &cfg.Strict, &cfg.Lenient)
	cmd.MarkFlagsMutuallyExclusive("strict", "lenient")

	return cmd
}

func buildSchema(codec *unions.Tagged[income.Income], variant string) (*unions.Definition, error) {
	if variant == "" {
		return codec.Schema(), nil
	}
	def, ok := codec.CaseSchema(variant)
	if !ok {
		return nil, fmt.Errorf("%w (known: %s)",
			&unions.UnknownVariantError{Field: codec.Field(), Received: variant},
			strings.Join(codec.Names(), ", "))
	}
	return def, nil
}

func writeSchema(w io.Writer, format string, def *unions.Definition) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(def)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(def); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}
