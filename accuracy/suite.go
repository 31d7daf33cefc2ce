package accuracy

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Suite runs a list of tests concurrently.
type Suite struct {
	Tests []*Test
	// Workers bounds the number of tests running at once.
	// It defaults to the number of CPUs.
	Workers int
}

// Run returns the reports of the tests, in the order of s.Tests.
// It stops at the first internal error.
func (s *Suite) Run(ctx context.Context) ([]*Report, error) {
	workers := s.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	reports := make([]*Report, len(s.Tests))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for i, test := range s.Tests {
		i, test := i, test
		group.Go(func() error {
			report, err := test.Run(ctx)
			reports[i] = report
			return err
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
