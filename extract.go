package main

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wyg1997/VoiceRoute/internal/extractor"
)

type extractOutput struct {
	Source      *string `json:"source"`
	Destination *string `json:"destination"`
	Rule        string  `json:"rule,omitempty"`
}

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <command text>",
		Short: "Print the source and destination found in a command",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, rule := extractor.New().Extract(strings.Join(args, " "))

			enc := json.NewEncoder(cmd.OutOrStdout())
			if err := enc.Encode(extractOutput{
				Source:      result.Source,
				Destination: result.Destination,
				Rule:        rule,
			}); err != nil {
				return err
			}

			if !result.Ok() {
				return errors.New("no source and destination found")
			}
			return nil
		},
	}
}
