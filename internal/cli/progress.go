// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/carteakey/lllms/pkg/modelfetch"
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
)

// printSuccess writes a "✓" status line. Suppressed in --json mode so
// stdout stays machine-readable.
func printSuccess(w io.Writer, ro *RootOpts, format string, args ...any) {
	if ro.JSONOut {
		return
	}
	successColor.Fprintf(w, "✓ "+format+"\n", args...)
}

// printFailure writes a "✗" status line.
func printFailure(w io.Writer, ro *RootOpts, format string, args ...any) {
	if ro.JSONOut {
		return
	}
	errorColor.Fprintf(w, "✗ "+format+"\n", args...)
}

// logProgress returns a handler that turns file events into debug logs.
func logProgress(logger *slog.Logger) modelfetch.ProgressFunc {
	return func(ev modelfetch.ProgressEvent) {
		switch ev.Event {
		case "scan_start":
			logger.Debug("scanning", "repo", ev.Repo, "revision", ev.Revision)
		case "plan_item":
			logger.Debug("selected", "repo", ev.Repo, "path", ev.Path, "n", fmt.Sprintf("%d/%d", ev.Index, ev.Count))
		case "file_start":
			logger.Info("fetching", "repo", ev.Repo, "path", ev.Path, "n", fmt.Sprintf("%d/%d", ev.Index, ev.Count))
		case "file_done":
			logger.Debug("placed", "repo", ev.Repo, "path", ev.Path)
		case "error":
			logger.Debug("fetch error", "repo", ev.Repo, "path", ev.Path, "msg", ev.Message)
		case "done":
			logger.Debug("fetched", "repo", ev.Repo, "msg", ev.Message)
		}
	}
}

// jsonProgress returns a JSON-lines progress handler.
func jsonProgress(w io.Writer) modelfetch.ProgressFunc {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	var mu sync.Mutex
	return func(ev modelfetch.ProgressEvent) {
		mu.Lock()
		_ = enc.Encode(ev)
		mu.Unlock()
	}
}

// batchBar tracks finished jobs of a manifest run. A nil bar is a no-op,
// which is what non-terminal and --json runs get.
type batchBar struct {
	bar *pb.ProgressBar
}

const batchBarTemplate = `{{string . "prefix"}} {{counters . }} {{bar . }} {{percent . }} {{etime . }}`

func newBatchBar(ro *RootOpts, w io.Writer, total int) *batchBar {
	if !ro.Progress || ro.JSONOut || total == 0 || !isTerminal(w) {
		return &batchBar{}
	}
	bar := pb.New(total).
		SetWriter(w).
		SetTemplateString(batchBarTemplate).
		Set("prefix", "models").
		Start()
	return &batchBar{bar: bar}
}

// Start labels the bar with the job being processed.
func (b *batchBar) Start(repo string) {
	if b.bar == nil {
		return
	}
	b.bar.Set("prefix", repo)
}

// Done counts one processed job.
func (b *batchBar) Done() {
	if b.bar == nil {
		return
	}
	b.bar.Increment()
}

// Skip counts jobs that were never attempted.
func (b *batchBar) Skip(n int) {
	if b.bar == nil || n <= 0 {
		return
	}
	b.bar.Add(n)
}

func (b *batchBar) Finish() {
	if b.bar == nil {
		return
	}
	b.bar.Finish()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
