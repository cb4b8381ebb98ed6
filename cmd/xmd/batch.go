package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/xmd"
	"github.com/fwojciec/xmd/batch"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	urls, err := readLines(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fetcher, err := deps.OpenFetcher(c.Static)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	runner := &batch.Runner{
		Fetcher:     fetcher,
		Extractor:   deps.Extractor,
		Writer:      deps.NewWriter(c.Out, c.Frontmatter),
		Concurrency: c.Concurrency,
		Log: func(format string, args ...any) {
			fmt.Fprintf(deps.Stderr, format+"\n", args...)
		},
	}
	if c.Rate > 0 {
		runner.RateLimiter = batch.NewDomainLimiter(c.Rate)
	}
	if c.Archive {
		runner.Store = deps.Documents
	}

	progress := func(event batch.ProgressEvent) {
		switch event.Type {
		case batch.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d URLs\n", event.Total)
		case batch.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s: %s\n",
				event.Completed, event.Total, batch.SavedMessage(event.Kind), event.Path)
		case batch.ProgressSkipped:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] duplicate %s\n",
				event.Completed, event.Total, batch.TruncateURL(event.URL, 60))
		case batch.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n",
				batch.TruncateURL(event.URL, 60), xmd.ErrorMessage(event.Error))
		}
	}

	result, err := runner.Run(deps.Ctx, urls, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "  Saved %d documents (%s), %d failed, %d skipped\n",
		result.Saved, batch.FormatBytes(result.Bytes), result.Failed, result.Skipped)
	if result.Saved == 0 && result.Failed > 0 {
		return xmd.Errorf(xmd.EINVALID, "no documents saved")
	}
	return nil
}

// readLines reads a URL list from a file, or from stdin when path is "-".
func readLines(path string) ([]string, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}
