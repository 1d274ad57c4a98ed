package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/valentino/internal/encoding"
	"github.com/jonathan/valentino/internal/types"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Work with share tokens from the shell",
}

var tokenEncodeCmd = &cobra.Command{
	Use:   "encode [json]",
	Short: "Encode a ShareData JSON document into a URL-safe token",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenEncode,
}

var tokenDecodeCmd = &cobra.Command{
	Use:   "decode [token]",
	Short: "Decode a share token back into JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenDecode,
}

func init() {
	tokenCmd.AddCommand(tokenEncodeCmd)
	tokenCmd.AddCommand(tokenDecodeCmd)
	rootCmd.AddCommand(tokenCmd)
}

func runTokenEncode(_ *cobra.Command, args []string) error {
	var data types.ShareData
	if err := json.Unmarshal([]byte(args[0]), &data); err != nil {
		return fmt.Errorf("invalid ShareData JSON: %w", err)
	}

	token, err := encoding.EncodeJSONParam(data)
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}

func runTokenDecode(_ *cobra.Command, args []string) error {
	decoded := encoding.DecodeJSONParam[types.ShareData](args[0])
	if decoded == nil {
		return fmt.Errorf("token does not decode to ShareData")
	}

	out, err := json.MarshalIndent(decoded, "", "  ")
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, string(out))
	return nil
}
