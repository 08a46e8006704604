package main

import (
	"fmt"
	"os"

	"github.com/jensroland/lineblame/cmd"
)

var version = "dev"

func main() {
	if len(os.Args) < 2 {
		cmd.RunBlame(os.Args[1:])
		return
	}

	switch os.Args[1] {
	case "record":
		cmd.RunRecord(os.Args[2:])
	case "diff":
		cmd.RunDiff(os.Args[2:])
	case "stats":
		cmd.RunStats(os.Args[2:])
	case "log":
		cmd.RunLog(os.Args[2:])
	case "--version", "-version":
		fmt.Println("lineblame", version)
	default:
		cmd.RunBlame(os.Args[1:])
	}
}
