package main

import (
	"context"

	"github.com/aexvir/ovrsdk/cmd/ovrsdk-setup/commands"
)

func main() {
	commands.ExecuteContext(context.Background())
}
