package worker

import (
	"fmt"
	"strings"
)

/*
	Ways of running the jobs of one render
	sequential: every job runs in the calling goroutine, in order (used to cross check the others)
	threads: one goroutine per job, joined with a wait group
	futures: jobs are submitted to an errgroup and each result is awaited
	mapreduce: jobs are handed to go-zero's mr.Finish
*/
const (
	Sequential Strategy = iota
	Threads
	Futures
	MapReduce
)

type Strategy int

var strategyNames = []string{
	"Sequential", "Threads", "Futures", "MapReduce",
}

func (s Strategy) String() string {
	if s < Sequential || s > MapReduce {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// ParseStrategy maps a case-insensitive strategy name to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	for i, n := range strategyNames {
		if strings.EqualFold(n, name) {
			return Strategy(i), nil
		}
	}
	return Sequential, fmt.Errorf("unknown strategy %q", name)
}

// Strategies lists every strategy, in declaration order.
func Strategies() []Strategy {
	return []Strategy{Sequential, Threads, Futures, MapReduce}
}
