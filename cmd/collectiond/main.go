// Package main implements collectiond, a minimal line-oriented TCP
// command server standing in for "the command dispatch loop,
// wire-protocol codec" spec.md §1 declares external to the collection
// engine. It exists only so the blocking rendezvous protocol (spec.md
// §4.E) has real concurrent client connections to coordinate rather than
// being exercised solely through unit tests.
//
// Wire format: newline-terminated lines of space-separated arguments
// (e.g. "RPUSH mylist a b c"), replied to with a small RESP-like framing
// (":N\r\n" integers, "$N\r\n...\r\n" bulk strings, "$-1\r\n" nil, "*N\r\n"
// multi-bulk headers, "-message\r\n" errors) — just enough structure for
// a reply to be unambiguous, not a claim of RESP compatibility.
//
// One goroutine per connection parses requests and forwards them on a
// channel to a single engine goroutine, the concrete realization of
// spec.md §5's "single-threaded cooperative" core sitting next to
// naturally-concurrent Go I/O — mirroring the teacher's cmd/node and
// cmd/coordinator graceful-shutdown pattern (signal.Notify +
// context.WithCancel + sync.WaitGroup).
//
// Configuration:
//   - COLLECTIOND_LISTEN: listen address (default ":6400")
//   - SET_MAX_INTSET_ENTRIES, LIST_MAX_ZIPLIST_ENTRIES,
//     LIST_MAX_ZIPLIST_VALUE, BLOCKING_SWEEP_INTERVAL: see internal/config
package main

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dreamware/torua/internal/blocking"
	"github.com/dreamware/torua/internal/command"
	"github.com/dreamware/torua/internal/config"
	"github.com/dreamware/torua/internal/engine"
	"github.com/dreamware/torua/internal/keyspace"
)

// job is one parsed command line forwarded from a connection goroutine
// to the single engine goroutine.
type job struct {
	clientID string
	name     string
	args     []string
	replyCh  chan jobResult
}

type jobResult struct {
	res command.Result
	err error
}

func main() {
	logConfig := zap.NewDevelopmentConfig()
	logConfig.EncoderConfig.TimeKey = ""
	logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logConfig.DisableStacktrace = true
	log := zap.Must(logConfig.Build())
	defer log.Sync()
	log = log.Named("collectiond")

	listen := getenv("COLLECTIOND_LISTEN", ":6400")
	cfg := config.Load()

	ks := keyspace.New()
	tbl := blocking.New()
	eng := engine.New(ks, tbl, cfg, log)
	cmds := command.New(eng)

	ln, err := net.Listen("tcp", listen)
	if err != nil {
		log.Fatal("listen", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	jobs := make(chan job)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		runEngineLoop(ctx, jobs, tbl, cmds, cfg.BlockingSweepInterval, log)
	}()

	var connID int64
	wg.Add(1)
	go func() {
		defer wg.Done()
		acceptLoop(ctx, ln, jobs, &connID, log)
	}()

	log.Info("collectiond listening", zap.String("addr", listen))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	cancel()
	ln.Close()
	wg.Wait()
	log.Info("stopped")
}

// runEngineLoop is the single goroutine spec.md §5 requires: every
// command and every deadline sweep lands here in arrival order, so the
// keyspace, blocking table, and dirty counter see no concurrent
// mutation. Sweeps are driven by a local ticker rather than
// internal/blocking.Sweeper, precisely so the sweep itself serializes
// through this same loop instead of running on its own goroutine.
func runEngineLoop(ctx context.Context, jobs <-chan job, tbl *blocking.Table, cmds *command.Command, sweepInterval time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case j := <-jobs:
			res, err := cmds.Dispatch(j.clientID, j.name, j.args, time.Now())
			j.replyCh <- jobResult{res: res, err: err}
		case now := <-ticker.C:
			expired := tbl.Sweep(now)
			if len(expired) > 0 {
				log.Debug("waiters expired", zap.Int("count", len(expired)))
			}
		case <-ctx.Done():
			return
		}
	}
}

func acceptLoop(ctx context.Context, ln net.Listener, jobs chan<- job, connID *int64, log *zap.Logger) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Warn("accept", zap.Error(err))
			continue
		}
		id := fmt.Sprintf("conn-%d", atomic.AddInt64(connID, 1))
		go handleConn(ctx, conn, jobs, id, log)
	}
}

func handleConn(ctx context.Context, conn net.Conn, jobs chan<- job, clientID string, log *zap.Logger) {
	defer conn.Close()
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		name := strings.ToUpper(fields[0])
		args := fields[1:]

		replyCh := make(chan jobResult, 1)
		select {
		case jobs <- job{clientID: clientID, name: name, args: args, replyCh: replyCh}:
		case <-ctx.Done():
			return
		}

		jr := <-replyCh
		if jr.err != nil {
			writeError(conn, jr.err)
			continue
		}
		if jr.res.Waiter != nil {
			reply := jr.res.Waiter.Wait()
			writeReply(conn, reply)
			continue
		}
		writeReply(conn, jr.res.Reply)
	}
}

func writeError(conn net.Conn, err error) {
	fmt.Fprintf(conn, "-%s\r\n", err.Error())
}

func writeReply(conn net.Conn, r command.Reply) {
	switch r.Kind {
	case command.KindInteger:
		fmt.Fprintf(conn, ":%d\r\n", r.Int)
	case command.KindBulk:
		fmt.Fprintf(conn, "$%d\r\n%s\r\n", len(r.Bulk), r.Bulk)
	case command.KindNilBulk:
		fmt.Fprint(conn, "$-1\r\n")
	case command.KindMultiBulk:
		fmt.Fprintf(conn, "*%d\r\n", len(r.Multi))
		for _, item := range r.Multi {
			fmt.Fprintf(conn, "$%d\r\n%s\r\n", len(item), item)
		}
	case command.KindError:
		writeError(conn, r.Err)
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
