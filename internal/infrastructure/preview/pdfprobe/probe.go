// Package pdfprobe backs the preview fallback rule: a document classified
// as PDF that cannot actually be opened within a bounded wait is demoted
// to the "preview unavailable" affordance instead of hanging the preview.
package pdfprobe

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/bersekolah/beswanadmin/internal/core/domain"
)

const defaultWait = 3 * time.Second

type Result struct {
	Pages int
}

// ProbeFile opens a local PDF and reports its page count, giving up after
// wait (or defaultWait when zero).
func ProbeFile(ctx context.Context, path string, wait time.Duration) (*Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	return Probe(ctx, raw, wait)
}

// Probe parses an in-memory PDF under a deadline. Parse failures and
// timeouts both come back as domain.ErrInvalidInput so callers can fall
// through to the unsupported rendering uniformly.
func Probe(ctx context.Context, data []byte, wait time.Duration) (*Result, error) {
	if wait <= 0 {
		wait = defaultWait
	}
	ctx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	type outcome struct {
		result *Result
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			// the parser panics on some malformed files
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("parse pdf: %v", r)}
			}
		}()
		reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			done <- outcome{err: fmt.Errorf("parse pdf: %w", err)}
			return
		}
		done <- outcome{result: &Result{Pages: reader.NumPage()}}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: pratinjau pdf melebihi batas waktu", domain.ErrInvalidInput)
	case out := <-done:
		if out.err != nil {
			return nil, domain.WrapError(domain.ErrInvalidInput, "pdf preview", out.err)
		}
		return out.result, nil
	}
}
