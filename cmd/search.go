package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/weddingwander/weddingwander/internal/model"
	"github.com/weddingwander/weddingwander/internal/service"
)

// runSearch reads search text line by line and prints the matching weddings
// once input has been quiet for delay. A line of the form "country:Italy"
// sets the country filter instead.
func runSearch(ctx context.Context, catalog *service.Catalog, delay time.Duration, in io.Reader, out io.Writer) error {
	var mu sync.Mutex
	show := func(events []model.Event, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			return
		}
		fmt.Fprintf(out, "%d wedding(s)\n", len(events))
		for _, e := range events {
			fmt.Fprintf(out, "  %s  %s  %s, %s  (%d seats left)\n",
				e.Date, e.Title, e.Location.City, e.Location.Country, e.Remaining())
		}
	}

	live := service.NewLiveSearch(catalog, delay, show)
	defer live.Close()

	var f model.Filter
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if country, ok := strings.CutPrefix(line, "country:"); ok {
			f.Country = strings.TrimSpace(country)
		} else {
			f.Search = line
		}
		live.Update(f)
	}
	if err := sc.Err(); err != nil {
		return err
	}

	// Let the last pending query finish before returning.
	time.Sleep(delay + 50*time.Millisecond)
	return nil
}
