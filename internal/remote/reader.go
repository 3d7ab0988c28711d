package remote

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Feed reads newline-delimited JSON events from r and pushes them into s
// until r is exhausted or ctx is cancelled. Malformed lines are logged and
// skipped. The returned error is nil on clean EOF.
func Feed(ctx context.Context, r io.Reader, s *Stream, logger *log.Logger) error {
	if logger == nil {
		logger = log.Default()
	}

	lines := make(chan []byte)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			line := bytes.TrimSpace(sc.Bytes())
			if len(line) == 0 {
				continue
			}
			buf := append([]byte(nil), line...)
			select {
			case lines <- buf:
			case <-ctx.Done():
				return
			}
		}
		errc <- sc.Err()
	}()

	n := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-errc:
					if err != nil {
						return fmt.Errorf("remote: read: %w", err)
					}
				default:
				}
				logger.Debug("controller feed closed", "events", n)
				return nil
			}
			n++
			var evt Event
			if err := json.Unmarshal(line, &evt); err != nil {
				logger.Warn("skipping undecodable controller line", "line", n, "err", err)
				continue
			}
			if err := evt.Validate(); err != nil {
				logger.Warn("skipping controller event", "line", n, "err", err)
				continue
			}
			s.Send(evt)
		}
	}
}

// FollowFile opens path (a regular file or a FIFO) and feeds it into s.
// Opening a FIFO blocks until a writer connects.
func FollowFile(ctx context.Context, path string, s *Stream, logger *log.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("remote: open %s: %w", path, err)
	}
	defer f.Close()
	return Feed(ctx, f, s, logger)
}
