package flashlog_test

import (
	"fmt"

	"github.com/hupe1980/flashlog"
	"github.com/hupe1980/flashlog/blockstore"
)

func Example() {
	store, err := blockstore.NewMemoryStore(8192)
	if err != nil {
		panic(err)
	}

	log, err := flashlog.Open(store, 12)
	if err != nil {
		panic(err)
	}
	defer log.Close()

	for _, msg := range []string{"boot ok.....", "wifi up.....", "pump started"} {
		copy(log.Payload(), msg)
		if err := log.Append(); err != nil {
			panic(err)
		}
	}

	// Walk oldest to newest; GotoNext fails at the newest entry.
	for err := log.GotoOldest(); err == nil; err = log.GotoNext() {
		if err := log.Read(); err != nil {
			panic(err)
		}
		fmt.Printf("%d %s\n", log.Sequence(), log.Payload())
	}

	// Output:
	// 1 boot ok.....
	// 2 wifi up.....
	// 3 pump started
}
