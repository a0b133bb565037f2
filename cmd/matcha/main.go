// Command matcha is the semantic CV/job matching CLI.
package main

import (
	"github.com/talenta-labs/matcha-cli/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
