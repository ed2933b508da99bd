// Package view binds a form state machine to the department directory and
// the submission endpoint, and exposes render-ready frames.
package view

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/userform/internal/directory"
	"github.com/dshills/userform/internal/form"
	"github.com/dshills/userform/internal/logger"
	"github.com/dshills/userform/internal/metrics"
	"github.com/dshills/userform/internal/record"
	"github.com/dshills/userform/internal/redact"
	"github.com/dshills/userform/internal/submission"
)

// AckMessage is shown once when the store accepts a record.
const AckMessage = "Data submitted successfully"

var (
	ErrSubmitDisabled    = errors.New("submit is disabled")
	ErrAlreadyMounted    = errors.New("view already mounted")
	ErrUnmounted         = errors.New("view unmounted")
	ErrUnknownDepartment = errors.New("unknown department")
)

// Notifier delivers the blocking success acknowledgment.
type Notifier interface {
	Acknowledge(ctx context.Context, message string)
}

type mountState int

const (
	created mountState = iota
	mounted
	unmounted
)

// View is safe for concurrent use. Network calls run without the lock held.
type View struct {
	mu          sync.Mutex
	machine     *form.Machine
	departments []record.Department
	loading     bool
	state       mountState

	directory directory.Fetcher
	submitter submission.Submitter
	notifier  Notifier
	log       logger.Logger
	metrics   *metrics.Metrics
}

// ViewOption configures a View.
type ViewOption func(*View)

// WithLogger sets the diagnostic logger. The default discards everything;
// a nil l keeps it.
func WithLogger(l logger.Logger) ViewOption {
	return func(v *View) {
		if l != nil {
			v.log = l
		}
	}
}

// WithMetrics sets the counters that record fetch and submission outcomes.
// A nil m keeps the view's own private counters.
func WithMetrics(m *metrics.Metrics) ViewOption {
	return func(v *View) {
		if m != nil {
			v.metrics = m
		}
	}
}

// New returns an unmounted view holding a fresh form.
func New(dir directory.Fetcher, sub submission.Submitter, n Notifier, opts ...ViewOption) *View {
	v := &View{
		machine:   form.New(),
		directory: dir,
		submitter: sub,
		notifier:  n,
		log:       logger.Nop(),
		metrics:   metrics.New(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Mount fetches the departments once. A failed fetch leaves the option list
// empty and is only logged. Either way the department field keeps its
// default selection and counts as validated. A result arriving after
// Unmount is dropped.
func (v *View) Mount(ctx context.Context) error {
	v.mu.Lock()
	if v.state != created {
		v.mu.Unlock()
		return ErrAlreadyMounted
	}
	v.state = mounted
	v.loading = true
	v.mu.Unlock()

	deps, err := v.directory.Fetch(ctx)
	v.metrics.ObserveFetch(err)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = false
	if v.state == unmounted {
		v.log.Debugw("discarding department list after unmount", "count", len(deps), "error", err)
		return ErrUnmounted
	}
	if err != nil {
		v.log.Warnw("department directory unavailable", "error", redact.Redact(err.Error()))
		deps = nil
	} else {
		v.log.Debugw("departments loaded", "count", len(deps))
	}
	v.departments = deps
	return v.machine.Settle(record.FieldDepartment)
}

// Unmount discards the view. Pending network results are ignored.
func (v *View) Unmount() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = unmounted
}

// Change stores a new raw value for a text field. The department and terms
// change only through Select and ToggleTerms.
func (v *View) Change(f record.Field, value string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.machine.Edit(f, value)
}

// Blur validates f as the user leaves it.
func (v *View) Blur(f record.Field) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.machine.Blur(f)
}

// Select picks a department by option value. Only loaded options can be
// selected.
func (v *View) Select(optionValue string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, d := range v.departments {
		if d.OptionValue() == optionValue {
			v.machine.Select(optionValue)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownDepartment, optionValue)
}

// ToggleTerms flips the terms checkbox.
func (v *View) ToggleTerms() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.machine.ToggleTerms()
}

// Submit posts a snapshot of the form. It returns ErrSubmitDisabled without
// any network call while the submit control is disabled, which includes the
// time another submission is pending. On acceptance the notifier runs once
// and the form resets; on rejection the values stay as they were and the
// returned error wraps submission.ErrRejected.
func (v *View) Submit(ctx context.Context) (submission.Outcome, error) {
	v.mu.Lock()
	snap, err := v.machine.BeginSubmit()
	v.mu.Unlock()
	if err != nil {
		return submission.Outcome{}, fmt.Errorf("%w: %w", ErrSubmitDisabled, err)
	}

	out, err := v.submitter.Submit(ctx, snap)
	v.metrics.ObserveSubmission(err)

	if err != nil {
		v.mu.Lock()
		defer v.mu.Unlock()
		logArgs := append([]interface{}{"attempt", out.AttemptID, "error", redact.Redact(err.Error())}, redact.Record(snap)...)
		v.log.Warnw("submission rejected", logArgs...)
		if rerr := v.machine.Reject(); rerr != nil {
			return out, rerr
		}
		return out, err
	}

	v.log.Infow("submission accepted", "attempt", out.AttemptID, "name", out.Name)

	v.mu.Lock()
	gone := v.state == unmounted
	v.mu.Unlock()
	if !gone && v.notifier != nil {
		v.notifier.Acknowledge(ctx, AckMessage)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	return out, v.machine.Accept()
}

// Values returns the current raw field values.
func (v *View) Values() record.FormRecord {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.machine.Values()
}

// Departments returns the loaded options in directory order.
func (v *View) Departments() []record.Department {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]record.Department(nil), v.departments...)
}

// CanSubmit reports whether the submit control is enabled.
func (v *View) CanSubmit() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.machine.CanSubmit()
}

// Message returns the inline message currently shown for f.
func (v *View) Message(f record.Field) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.machine.Message(f)
}
