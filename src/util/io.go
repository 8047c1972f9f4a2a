// Package util holds small I/O helpers shared by the CLI driver. The
// teacher's util package additionally carried a parallel-codegen output
// buffer (Writer/ListenWrite), a channel-based label generator, and a
// generic thread-safe stack; all three supported the teacher's multi-
// threaded backend and have no role once codegen is the strictly
// single-threaded pass spec.md §5 requires (see DESIGN.md).
package util

import (
	"bufio"
	"errors"
	"os"
	"time"
)

// ReadSource reads source code from path, or from stdin (with a short
// grace period) when path is empty, mirroring the teacher's ReadSource.
func ReadSource(path string) (string, error) {
	if len(path) > 0 {
		b, err := os.ReadFile(path)
		return string(b), err
	}

	c := make(chan string, 1)
	go func() {
		reader := bufio.NewReader(os.Stdin)
		buf := make([]byte, 0, 4096)
		for {
			b, err := reader.ReadByte()
			if err != nil {
				break
			}
			buf = append(buf, b)
		}
		c <- string(buf)
	}()

	select {
	case <-time.After(500 * time.Millisecond):
		return "", errors.New("expected input from stdin, got none")
	case s := <-c:
		return s, nil
	}
}

// WriteOutput writes text to path, or to stdout when path is empty.
func WriteOutput(path, text string) error {
	if len(path) == 0 {
		_, err := os.Stdout.WriteString(text)
		return err
	}
	f, err := os.OpenFile(path, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(text)
	return err
}
