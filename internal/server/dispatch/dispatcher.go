// Package dispatch maps a request's function name to a service operation.
//
// Every function is described by a Command: the arguments it requires and
// the handler that runs it. The Dispatcher validates the arguments, calls
// the handler and converts the outcome into a Response. Domain failures and
// even panics end up as {succeed:false, error} envelopes; nothing escapes.
package dispatch

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/dmitrijs2005/paintmap/internal/common"
	"github.com/dmitrijs2005/paintmap/internal/logging"
	"github.com/dmitrijs2005/paintmap/internal/server/models"
	"github.com/dmitrijs2005/paintmap/internal/server/services"
)

// UndefinedFunction is the label reported to observers for unknown names.
const UndefinedFunction = "undefined"

type accountService interface {
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, userName, password, mapType string, shareLevel int) (string, error)
	Authenticate(ctx context.Context, userName, password string) (services.AuthResult, error)
	Resolve(ctx context.Context, userName, password string) (*models.Account, error)
	ChangePassword(ctx context.Context, userName, oldPassword, newPassword string) error
	Delete(ctx context.Context, userName, password string) error
}

type mapService interface {
	GetByAccount(ctx context.Context, accountID string) (*models.MapView, error)
	GetEmpty(mapType string, shareLevel int) models.MapView
	Save(ctx context.Context, accountID string, payload []byte) error
	GetShared(ctx context.Context, id string) (*models.MapView, error)
	UploadImage(ctx context.Context, accountID string, image string) error
}

// HandlerFunc runs one function. A returned error becomes a failed
// envelope.
type HandlerFunc func(ctx context.Context, args Args) (*Response, error)

// Command describes one dispatchable function.
type Command struct {
	Required []string
	Handle   HandlerFunc
}

// Observer is told about every dispatched request.
type Observer interface {
	Observe(function string, succeed bool, elapsed time.Duration)
}

type Option func(*Dispatcher)

// WithObserver registers o to receive per-request outcomes.
func WithObserver(o Observer) Option {
	return func(d *Dispatcher) { d.observer = o }
}

type Dispatcher struct {
	accounts accountService
	maps     mapService
	logger   logging.Logger
	observer Observer
	commands map[string]Command
}

func New(accounts accountService, maps mapService, logger logging.Logger, opts ...Option) *Dispatcher {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	d := &Dispatcher{
		accounts: accounts,
		maps:     maps,
		logger:   logger.With("module", "dispatcher"),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.commands = d.commandTable()
	return d
}

// Functions lists the registered function names in sorted order.
func (d *Dispatcher) Functions() []string {
	names := make([]string, 0, len(d.commands))
	for name := range d.commands {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Lookup returns the command registered under name.
func (d *Dispatcher) Lookup(name string) (Command, bool) {
	c, ok := d.commands[name]
	return c, ok
}

// Dispatch runs the function named by args["function"].
func (d *Dispatcher) Dispatch(ctx context.Context, args Args) (resp *Response) {
	start := time.Now()
	name := args.Get(common.ArgFunction)
	label := name

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error(ctx, "handler panicked", "function", name, "panic", r)
			resp = failed(fmt.Sprint(r))
		}
		if d.observer != nil {
			d.observer.Observe(label, resp.Succeed, time.Since(start))
		}
	}()

	cmd, ok := d.commands[name]
	if !ok {
		label = UndefinedFunction
		d.logger.Debug(ctx, "undefined function", "function", name)
		return failed(common.ErrorUndefinedFunction.Error())
	}

	if !args.Has(cmd.Required...) {
		d.logger.Debug(ctx, "missing arguments", "function", name, "required", cmd.Required)
		return failed(common.ErrorInvalidArguments.Error())
	}

	resp, err := cmd.Handle(ctx, args)
	if err != nil {
		d.logger.Info(ctx, "request failed", "function", name, "error", err, "cause", causeOf(err))
		return failed(messageFor(err))
	}

	d.logger.Debug(ctx, "request handled", "function", name, "succeed", resp.Succeed)
	return resp
}

func causeOf(err error) string {
	if f, ok := err.(*failure); ok && f.err != nil {
		return f.err.Error()
	}
	return ""
}
