// Command poolbench exercises an alloc.Allocator with a configurable
// acquire/release workload and prints its final statistics and JSON dump.
package main

import (
	"flag"
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/exp/slog"

	"github.com/Hert97/CSD2181-memory-allocator"
)

func main() {
	objectSize := flag.Int("object-size", 32, "size in bytes of each pooled object")
	objectsPerPage := flag.Int("objects-per-page", 64, "slots per page")
	maxPages := flag.Int("max-pages", 0, "page cap; 0 means unbounded")
	alignment := flag.Uint("alignment", 8, "required alignment of each user region; 0 or 1 disables it")
	leftPad := flag.Int("left-pad", 4, "pad bytes flanking each user region")
	cycles := flag.Int("cycles", 10000, "number of acquire/release cycles to run")
	debugChecks := flag.Bool("debug-checks", true, "enable double-free, boundary, and corruption checks")
	verbose := flag.Bool("v", false, "log every acquire and release")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.HandlerOptions{Level: level}.NewTextHandler(os.Stderr))

	pool, err := alloc.New(*objectSize, alloc.Configuration{
		ObjectsPerPage: *objectsPerPage,
		MaxPages:       *maxPages,
		Alignment:      *alignment,
		LeftPadBytes:   *leftPad,
		HeaderKind:     alloc.HeaderBasic,
		DebugChecks:    *debugChecks,
		Logger:         logger,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "poolbench: build pool:", err)
		os.Exit(1)
	}
	defer pool.Destroy()

	var held []unsafe.Pointer
	for i := 0; i < *cycles; i++ {
		p, err := pool.Acquire("poolbench")
		if err != nil {
			fmt.Fprintln(os.Stderr, "poolbench: acquire:", err)
			os.Exit(1)
		}
		held = append(held, p)
		if len(held) > 8 {
			victim := held[0]
			held = held[1:]
			if err := pool.Release(victim); err != nil {
				fmt.Fprintln(os.Stderr, "poolbench: release:", err)
				os.Exit(1)
			}
		}
	}

	stats := pool.GetStatistics()
	fmt.Printf("allocations=%d deallocations=%d pagesInUse=%d objectsInUse=%d mostObjects=%d\n",
		stats.Allocations, stats.Deallocations, stats.PagesInUse, stats.ObjectsInUse, stats.MostObjects)

	dump, err := pool.DumpJSON()
	if err != nil {
		fmt.Fprintln(os.Stderr, "poolbench: dump json:", err)
		os.Exit(1)
	}
	fmt.Println(string(dump))
}
