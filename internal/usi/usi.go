// Package usi implements a line-oriented subset of the Universal Shogi
// Interface for setting up and inspecting positions.
package usi

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/hailam/shogiplay/internal/board"
	"github.com/hailam/shogiplay/internal/perft"
)

// Defaults for the perft options
const (
	defaultHashMB  = 16
	defaultThreads = 1
)

// USI reads commands from in and writes responses to out.
type USI struct {
	position *board.Position
	counter  *perft.Counter

	hashMB  int
	threads int

	in  io.Reader
	out io.Writer

	// CPU profiling
	profileFile *os.File
}

// New creates a USI protocol handler on the starting position.
func New(in io.Reader, out io.Writer) *USI {
	return &USI{
		position: board.NewPosition(),
		counter:  perft.NewCounter(defaultHashMB, defaultThreads),
		hashMB:   defaultHashMB,
		threads:  defaultThreads,
		in:       in,
		out:      out,
	}
}

// Position returns the current position.
func (u *USI) Position() *board.Position {
	return u.position
}

// Run processes commands until "quit" or the end of input.
func (u *USI) Run() error {
	scanner := bufio.NewScanner(u.in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "usi":
			u.handleUSI()
		case "isready":
			u.println("readyok")
		case "usinewgame":
			u.position = board.NewPosition()
		case "position":
			if board.DebugMoveValidation {
				log.Printf("position %s", strings.Join(args, " "))
			}
			u.handlePosition(line)
		case "setoption":
			u.handleSetOption(args)
		case "quit":
			u.stopProfile()
			return nil
		// Debug commands
		case "d":
			u.println(u.position.String())
		case "kif":
			u.println(u.position.KIF())
		case "sfen":
			u.println("sfen " + u.position.SFEN())
		case "moves":
			u.handleMoves()
		case "legal":
			u.handleLegal(args)
		case "status":
			u.handleStatus()
		case "perft":
			u.handlePerft(args)
		case "divide":
			u.handleDivide(args)
		default:
			u.infof("unknown command: %s", cmd)
		}
	}

	u.stopProfile()
	return scanner.Err()
}

func (u *USI) println(s string) {
	fmt.Fprintln(u.out, s)
}

// infof reports a message to the GUI as an info string.
func (u *USI) infof(format string, args ...any) {
	fmt.Fprintf(u.out, "info string %s\n", fmt.Sprintf(format, args...))
}

// handleUSI responds to the "usi" command.
func (u *USI) handleUSI() {
	u.println("id name ShogiPlay")
	u.println("id author ShogiPlay Team")
	u.println("option name Debug type check default false")
	u.println("option name CPUProfile type string default <empty>")
	fmt.Fprintf(u.out, "option name USI_Hash type spin default %d min 0 max 4096\n", defaultHashMB)
	fmt.Fprintf(u.out, "option name Threads type spin default %d min 1 max 256\n", defaultThreads)
	u.println("usiok")
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves 7g7f 3c3d
//   - position sfen <sfen>
//   - position sfen <sfen> moves 7g7f
func (u *USI) handlePosition(line string) {
	if err := u.position.PushUSIPositionCmd(line); err != nil {
		u.infof("%v", err)
	}
}

// handleMoves lists the legal moves of the current position.
func (u *USI) handleMoves() {
	var moves []string
	for m := range u.position.LegalMoves(board.GenAll) {
		moves = append(moves, m.String())
	}
	u.println(strings.Join(moves, " "))
}

// handleLegal classifies one move: legal, pseudo-legal or illegal.
func (u *USI) handleLegal(args []string) {
	if len(args) != 1 {
		u.infof("usage: legal <move>")
		return
	}
	m, err := board.ParseMove(args[0])
	if err != nil {
		u.infof("%v", err)
		return
	}
	switch {
	case u.position.IsLegal(m):
		u.println(m.String() + " legal")
	case u.position.IsPseudoLegal(m):
		u.println(m.String() + " pseudo-legal")
	default:
		u.println(m.String() + " illegal")
	}
}

// handleStatus reports check and game end state.
func (u *USI) handleStatus() {
	status := u.position.Status()
	if u.position.IsCheck() {
		u.println("status " + status.String() + " check")
		return
	}
	u.println("status " + status.String())
}

// handleSetOption processes "setoption" commands.
func (u *USI) handleSetOption(args []string) {
	// Format: setoption name <name> value <value>
	var name, value string
	readingName := false
	readingValue := false

	for _, arg := range args {
		switch arg {
		case "name":
			readingName = true
			readingValue = false
		case "value":
			readingName = false
			readingValue = true
		default:
			if readingName {
				if name != "" {
					name += " "
				}
				name += arg
			} else if readingValue {
				if value != "" {
					value += " "
				}
				value += arg
			}
		}
	}

	switch strings.ToLower(name) {
	case "debug":
		enabled := strings.ToLower(value) == "true"
		board.DebugMoveValidation = enabled
		if enabled {
			u.infof("Debug mode enabled")
		}
	case "usi_hash", "hash":
		mb, err := strconv.Atoi(value)
		if err != nil || mb < 0 {
			u.infof("invalid hash size: %s", value)
			return
		}
		u.hashMB = mb
		u.counter = perft.NewCounter(u.hashMB, u.threads)
	case "threads":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			u.infof("invalid thread count: %s", value)
			return
		}
		u.threads = n
		u.counter = perft.NewCounter(u.hashMB, u.threads)
	case "cpuprofile":
		u.stopProfile()
		if value != "" && value != "stop" {
			if err := u.StartProfile(value); err != nil {
				u.infof("Failed to start profile: %v", err)
			}
		}
	default:
		u.infof("unknown option: %s", name)
	}
}

// StartProfile writes a CPU profile to path until quit.
func (u *USI) StartProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return err
	}
	u.profileFile = f
	u.infof("CPU profiling to %s", path)
	return nil
}

func (u *USI) stopProfile() {
	if u.profileFile == nil {
		return
	}
	pprof.StopCPUProfile()
	u.profileFile.Close()
	u.profileFile = nil
	u.infof("CPU profile saved")
}

func parseDepth(args []string) (int, error) {
	if len(args) == 0 {
		return 3, nil
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil || depth < 0 {
		return 0, fmt.Errorf("invalid depth: %s", args[0])
	}
	return depth, nil
}

// handlePerft runs a perft test.
func (u *USI) handlePerft(args []string) {
	depth, err := parseDepth(args)
	if err != nil {
		u.infof("%v", err)
		return
	}

	start := time.Now()
	nodes, err := u.counter.Count(context.Background(), u.position, depth)
	elapsed := time.Since(start)
	if err != nil {
		u.infof("perft: %v", err)
		return
	}

	fmt.Fprintf(u.out, "Nodes: %d\n", nodes)
	fmt.Fprintf(u.out, "Time: %v\n", elapsed)
	if elapsed > 0 {
		nps := float64(nodes) / elapsed.Seconds()
		fmt.Fprintf(u.out, "NPS: %.0f\n", nps)
	}
}

// handleDivide prints the perft count below each root move.
func (u *USI) handleDivide(args []string) {
	depth, err := parseDepth(args)
	if err != nil {
		u.infof("%v", err)
		return
	}
	if depth < 1 {
		u.infof("divide needs depth 1 or more")
		return
	}

	divide, err := u.counter.Divide(context.Background(), u.position, depth)
	if err != nil {
		u.infof("divide: %v", err)
		return
	}
	lines := make([]string, 0, len(divide))
	var total uint64
	for m, n := range divide {
		lines = append(lines, fmt.Sprintf("%s: %d", m, n))
		total += n
	}
	slices.Sort(lines)
	for _, l := range lines {
		u.println(l)
	}
	fmt.Fprintf(u.out, "Nodes: %d\n", total)
}
