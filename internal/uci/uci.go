// Package uci implements the line-delimited UCI wire protocol that
// drives the engine core. Tokenization is the only responsibility
// this collaborator owns; every chess rule lives in board/nnue/engine.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/chesscore/enginecore/internal/board"
	"github.com/chesscore/enginecore/internal/engine"
)

// UCI holds the protocol handler's mutable session state: the current
// position and the engine it drives.
type UCI struct {
	eng *engine.Engine
	pos *board.Position

	out *log.Logger // protocol replies, unprefixed
	dbg *log.Logger // "info string" diagnostics, to stderr

	done chan struct{} // closed when the in-flight search's onDone fires
}

// New creates a UCI handler wired to eng, starting from the standard
// position.
func New(eng *engine.Engine, out io.Writer, dbg io.Writer) *UCI {
	return &UCI{
		eng: eng,
		pos: board.NewStartingPosition(),
		out: log.New(out, "", 0),
		dbg: log.New(dbg, "info string ", 0),
	}
}

// Run reads commands from r until EOF or "quit". It returns the
// process exit code the caller should use.
func (u *UCI) Run(r io.Reader) int {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			u.out.Println("readyok")
		case "ucinewgame":
			u.eng.NewGame()
			u.pos = board.NewStartingPosition()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "stop":
			u.handleStop()
		case "setoption":
			u.handleSetOption(args)
		case "d":
			u.handleDisplay(args)
		case "quit":
			u.handleStop()
			return 0
		default:
			u.dbg.Printf("unknown command %q", cmd)
		}
	}
	return 0
}

func (u *UCI) handleUCI() {
	u.out.Println("id name ChessCore")
	u.out.Println("id author ChessCore Contributors")
	u.out.Println()
	u.out.Println("option name Hash type spin default 64 min 1 max 4096")
	u.out.Println("option name EvalFile type string default <empty>")
	u.out.Println("uciok")
}

// handlePosition accepts "position {startpos|fen <6 tokens>} [moves ...]".
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	var moveStart int
	switch args[0] {
	case "startpos":
		u.pos = board.NewStartingPosition()
		moveStart = 1
	case "fen":
		end := len(args)
		for i := 1; i < len(args); i++ {
			if args[i] == "moves" {
				end = i
				break
			}
		}
		if end <= 1 {
			u.dbg.Printf("missing fen fields")
			return
		}
		p, err := board.ParseFEN(strings.Join(args[1:end], " "))
		if err != nil {
			u.dbg.Printf("invalid fen: %v", err)
			return
		}
		u.pos = p
		moveStart = end
	default:
		u.dbg.Printf("unrecognized position subcommand %q", args[0])
		return
	}

	for i := moveStart; i < len(args); i++ {
		if args[i] == "moves" {
			continue
		}
		m, ok := u.matchMove(args[i])
		if !ok {
			u.dbg.Printf("illegal or malformed move %q", args[i])
			return
		}
		child := u.pos.Clone()
		child.ApplyInPlace(m)
		if !child.IsLegal() {
			u.dbg.Printf("move %q leaves king in check", args[i])
			return
		}
		u.pos = child
	}
}

// matchMove resolves a LAN token against the current position's legal
// moves; the token carries no piece-type or capture information of
// its own.
func (u *UCI) matchMove(lan string) (board.Move, bool) {
	from, to, promo, err := board.ParseLAN(lan)
	if err != nil {
		return board.NoMove, false
	}
	legal := u.pos.GenerateLegalMoves()
	for i := 0; i < legal.Len(); i++ {
		m := legal.Get(i)
		if m.From == from && m.To == to && m.Promotion == promo {
			return m, true
		}
	}
	return board.NoMove, false
}

func (u *UCI) handleGo(args []string) {
	if len(args) > 0 && args[0] == "perft" {
		depth := 1
		if len(args) > 1 {
			depth, _ = strconv.Atoi(args[1])
		}
		u.runPerft(depth)
		return
	}
	if len(args) > 0 && args[0] == "zobrist" {
		depth := 1
		if len(args) > 1 {
			depth, _ = strconv.Atoi(args[1])
		}
		u.runZobristWalk(depth)
		return
	}

	limits := u.parseGoLimits(args)

	pos := u.pos.Clone()
	done := make(chan struct{})
	u.done = done

	err := u.eng.Go(pos, limits,
		func(info engine.SearchInfo) { u.sendInfo(info) },
		func(best board.Move, _ int) {
			defer close(done)
			if best.IsNone() {
				u.out.Println("bestmove 0000")
				return
			}
			u.out.Printf("bestmove %s\n", best.String())
		},
	)
	if err != nil {
		u.dbg.Printf("%v", err)
	}
}

func (u *UCI) parseGoLimits(args []string) engine.Limits {
	var l engine.Limits
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			i++
			if i < len(args) {
				l.Depth, _ = strconv.Atoi(args[i])
			}
		case "nodes":
			i++
			if i < len(args) {
				n, _ := strconv.ParseUint(args[i], 10, 64)
				l.Nodes = n
			}
		case "mate":
			i++
			if i < len(args) {
				l.Mate, _ = strconv.Atoi(args[i])
			}
		case "movetime":
			i++
			if i < len(args) {
				ms, _ := strconv.Atoi(args[i])
				l.MoveTime = time.Duration(ms) * time.Millisecond
			}
		case "wtime":
			i++
			if i < len(args) {
				ms, _ := strconv.Atoi(args[i])
				l.WTime = time.Duration(ms) * time.Millisecond
			}
		case "btime":
			i++
			if i < len(args) {
				ms, _ := strconv.Atoi(args[i])
				l.BTime = time.Duration(ms) * time.Millisecond
			}
		case "winc":
			i++
			if i < len(args) {
				ms, _ := strconv.Atoi(args[i])
				l.WInc = time.Duration(ms) * time.Millisecond
			}
		case "binc":
			i++
			if i < len(args) {
				ms, _ := strconv.Atoi(args[i])
				l.BInc = time.Duration(ms) * time.Millisecond
			}
		case "movestogo":
			i++
			if i < len(args) {
				l.MovesToGo, _ = strconv.Atoi(args[i])
			}
		case "infinite":
			l.Infinite = true
		case "ponder", "searchmoves":
			// Pondering and restricted root move sets are Non-goals;
			// the tokens are accepted and otherwise ignored.
		}
	}
	return l
}

func (u *UCI) handleStop() {
	u.eng.Stop()
	if u.done != nil {
		<-u.done
		u.done = nil
	}
}

func (u *UCI) handleSetOption(args []string) {
	name, value := parseNameValue(args)
	switch strings.ToLower(name) {
	case "hash":
		if mb, err := strconv.Atoi(value); err == nil && mb > 0 {
			u.eng.SetHashSize(mb)
		}
	case "evalfile":
		if value != "" {
			if err := u.eng.LoadNNUE(value); err != nil {
				u.dbg.Printf("%v", err)
			}
		}
	default:
		u.dbg.Printf("unrecognized option %q", name)
	}
}

func parseNameValue(args []string) (name, value string) {
	var readingName, readingValue bool
	for _, a := range args {
		switch a {
		case "name":
			readingName, readingValue = true, false
		case "value":
			readingName, readingValue = false, true
		default:
			if readingName {
				name = appendWord(name, a)
			} else if readingValue {
				value = appendWord(value, a)
			}
		}
	}
	return name, value
}

func appendWord(s, w string) string {
	if s == "" {
		return w
	}
	return s + " " + w
}

func (u *UCI) handleDisplay(args []string) {
	u.out.Println(u.pos.String())
	if u.pos.IsInsufficientMaterial() {
		u.out.Println("insufficient material")
	}
	if len(args) > 0 && args[0] == "moves" {
		legal := u.pos.GenerateLegalMoves()
		moves := make([]string, legal.Len())
		for i := range moves {
			moves[i] = legal.Get(i).String()
		}
		u.out.Printf("legal moves: %s\n", strings.Join(moves, " "))
	}
}

func (u *UCI) sendInfo(info engine.SearchInfo) {
	var b strings.Builder
	fmt.Fprintf(&b, "info depth %d score ", info.Depth)
	if info.IsMate {
		fmt.Fprintf(&b, "mate %d", info.MateIn)
	} else {
		fmt.Fprintf(&b, "cp %d", info.Score)
	}
	fmt.Fprintf(&b, " nodes %d", info.Nodes)
	if info.Elapsed > 0 {
		nps := float64(info.Nodes) / info.Elapsed.Seconds()
		fmt.Fprintf(&b, " nps %.0f", nps)
	}
	if len(info.PV) > 0 {
		strs := make([]string, len(info.PV))
		for i, m := range info.PV {
			strs[i] = m.String()
		}
		fmt.Fprintf(&b, " pv %s", strings.Join(strs, " "))
	}
	u.out.Println(b.String())
}

// runPerft counts leaf nodes at depth from the current position,
// walking only the legal move tree (no undo: every node clones).
func (u *UCI) runPerft(depth int) {
	start := time.Now()
	nodes := perft(u.pos, depth)
	elapsed := time.Since(start)
	u.out.Printf("Nodes: %d\n", nodes)
	u.out.Printf("Time: %s\n", elapsed)
	if elapsed > 0 {
		u.out.Printf("NPS: %.0f\n", float64(nodes)/elapsed.Seconds())
	}
}

func perft(pos *board.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	legal := pos.GenerateLegalMoves()
	if depth == 1 {
		return uint64(legal.Len())
	}
	var total uint64
	for i := 0; i < legal.Len(); i++ {
		child := pos.Clone()
		child.ApplyInPlace(legal.Get(i))
		total += perft(child, depth-1)
	}
	return total
}

// runZobristWalk walks the legal move tree to depth, asserting at
// every node that the incrementally-maintained hash matches a
// from-scratch recomputation.
func (u *UCI) runZobristWalk(depth int) {
	mismatches := zobristWalk(u.pos, depth)
	if mismatches == 0 {
		u.out.Printf("zobrist ok: %d plies, no mismatches\n", depth)
	} else {
		u.out.Printf("zobrist FAILED: %d mismatches found\n", mismatches)
	}
}

func zobristWalk(pos *board.Position, depth int) int {
	mismatches := 0
	if pos.Hash() != pos.ComputeZobristFromScratch() {
		mismatches++
	}
	if depth == 0 {
		return mismatches
	}
	legal := pos.GenerateLegalMoves()
	for i := 0; i < legal.Len(); i++ {
		child := pos.Clone()
		child.ApplyInPlace(legal.Get(i))
		mismatches += zobristWalk(child, depth-1)
	}
	return mismatches
}
