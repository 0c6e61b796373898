package cmd

import (
	"bufio"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"farm-market-session/dto"
	"farm-market-session/util"

	"github.com/spf13/cobra"
)

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode [token|-]",
		Short: "Verify a token and print its payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token := args[0]
			if token == "-" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("no token on stdin")
				}
				token = line
			}
			token = strings.TrimSpace(token)

			decoder, err := util.NewDecoderFromConfig(util.LoadConfig())
			if err != nil {
				return err
			}
			payload, err := decoder.Decode(token)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(dto.DecodeResponse{
				Payload: *payload,
				Expired: payload.IsExpired(time.Now()),
			})
		},
	}
}
