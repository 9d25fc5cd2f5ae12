package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rgonek/md-wysiwyg/converter"
	"github.com/rgonek/md-wysiwyg/rich"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
)

func newConvertCmd() *cobra.Command {
	var reverse bool
	var output string
	var flags codecFlags

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert markdown to rich JSON/YAML, or back with --reverse",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			md, err := flags.codec(app)
			if err != nil {
				return err
			}
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			if reverse {
				doc, err := decodeDoc(data, args[0])
				if err != nil {
					return err
				}
				result, err := md.Serialize(cmd.Context(), doc)
				if err != nil {
					return fmt.Errorf("error converting file: %w", err)
				}
				printWarnings(cmd, result.Warnings)
				return writeMarkdown(cmd.OutOrStdout(), result.Markdown)
			}

			result, err := md.Parse(cmd.Context(), string(data))
			if err != nil {
				return fmt.Errorf("error converting file: %w", err)
			}
			printWarnings(cmd, result.Warnings)
			encoded, err := encodeDoc(result.Doc, output)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(encoded)
			return err
		},
	}
	cmd.Flags().BoolVar(&reverse, "reverse", false, "Convert rich JSON/YAML to markdown")
	cmd.Flags().StringVarP(&output, "output", "o", outputJSON, "Output format: json|yaml")
	flags.register(cmd)
	return cmd
}

// readInput reads path, or stdin for "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return data, nil
}

func encodeDoc(doc rich.Doc, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", outputJSON:
		pretty, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("error formatting rich JSON: %w", err)
		}
		return append(pretty, '\n'), nil
	case outputYAML:
		// through JSON so the YAML keys match the JSON field names
		raw, err := json.Marshal(doc)
		if err != nil {
			return nil, err
		}
		var generic any
		if err := json.Unmarshal(raw, &generic); err != nil {
			return nil, err
		}
		out, err := yaml.Marshal(generic)
		if err != nil {
			return nil, fmt.Errorf("error formatting rich YAML: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown output %q (allowed: json, yaml)", format)
	}
}

// decodeDoc reads a rich document as YAML when the file says so, else JSON.
func decodeDoc(data []byte, path string) (rich.Doc, error) {
	var doc rich.Doc
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var generic any
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return doc, fmt.Errorf("failed to parse rich YAML: %w", err)
		}
		raw, err := json.Marshal(generic)
		if err != nil {
			return doc, fmt.Errorf("failed to parse rich YAML: %w", err)
		}
		data = raw
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("failed to parse rich JSON: %w", err)
	}
	return doc, nil
}

// writeMarkdown writes markdown terminated by exactly one newline.
func writeMarkdown(w io.Writer, markdown string) error {
	if !strings.HasSuffix(markdown, "\n") {
		markdown += "\n"
	}
	_, err := io.WriteString(w, markdown)
	return err
}

func printWarnings(cmd *cobra.Command, warnings []converter.Warning) {
	for _, w := range warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %s\n", w.Type, w.Message)
	}
}
