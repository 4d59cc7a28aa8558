package client

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
	"github.com/tidwall/gjson"
)

// printResult pretty prints a gateway answer. Error answers are printed in
// red and returned.
func printResult(data []byte) error {
	if msg := gjson.GetBytes(data, "error"); msg.Exists() {
		color.Red("request failed: %s\n", msg.String())
		return fmt.Errorf("gateway error: %s", msg.String())
	}

	s, err := prettyjson.Format(data)
	if err != nil {
		return fmt.Errorf("format response: %w", err)
	}

	fmt.Println(string(s))

	return nil
}
