// Command chesscore-uci runs the engine core behind a UCI protocol
// loop over stdin/stdout.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/chesscore/enginecore/internal/engine"
	"github.com/chesscore/enginecore/internal/uci"
)

const defaultHashMB = 64

var (
	weightsPath = flag.String("weights", "nnue.bin", "path to the NNUE weights file")
	hashMB      = flag.Int("hash", defaultHashMB, "transposition table size in megabytes")
)

func main() {
	flag.Parse()

	eng := engine.NewEngine()
	eng.SetHashSize(*hashMB)

	if err := eng.LoadNNUE(*weightsPath); err != nil {
		log.Fatalf("fatal: %v", err)
	}

	protocol := uci.New(eng, os.Stdout, os.Stderr)
	os.Exit(protocol.Run(os.Stdin))
}
