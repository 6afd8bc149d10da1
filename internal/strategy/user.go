package strategy

import (
	"context"
	"fmt"
	"time"

	"github.com/nerrad567/gray-logic-hub/internal/command"
	"github.com/nerrad567/gray-logic-hub/internal/device"
)

// recordTimeout bounds how long persisting an execution may take.
const recordTimeout = 5 * time.Second

// Executor runs a bound command. The hub implements it so execution holds
// the hub's device lock.
type Executor interface {
	Execute(cmd command.Command) command.Result
}

// Recorder persists execution records. SQLiteRepository implements it.
type Recorder interface {
	CreateExecution(ctx context.Context, exec *Execution) error
}

// StateSink receives a device's state after a command changed it.
// The MQTT and InfluxDB adapters implement it.
type StateSink interface {
	PublishState(kind device.Kind, state device.State, at time.Time) error
}

// Logger is the logging interface used by the strategy builder.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// directExecutor calls Execute with no locking.
type directExecutor struct{}

func (directExecutor) Execute(cmd command.Command) command.Result { return cmd.Execute() }

// Option configures a User.
type Option func(*User)

// WithExecutor routes command execution through e.
func WithExecutor(e Executor) Option {
	return func(u *User) { u.exec = e }
}

// WithRecorder persists every execution through r.
func WithRecorder(r Recorder) Option {
	return func(u *User) { u.recorder = r }
}

// WithStateSink adds a sink that receives device state after each step.
func WithStateSink(s StateSink) Option {
	return func(u *User) { u.sinks = append(u.sinks, s) }
}

// WithLogger sets the user's logger.
func WithLogger(l Logger) Option {
	return func(u *User) { u.logger = l }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(u *User) { u.now = now }
}

// User is an observer of the hub that builds and runs a strategy.
type User struct {
	id  string
	ids IDGenerator

	replica  command.Catalog
	strategy []int
	state    State

	exec     Executor
	recorder Recorder
	sinks    []StateSink
	logger   Logger
	now      func() time.Time
}

// NewUser creates a user in the Collecting state with an empty replica.
// The user's ID and every execution ID come from ids.
func NewUser(ids IDGenerator, opts ...Option) *User {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	u := &User{
		ids:    ids,
		state:  StateCollecting,
		exec:   directExecutor{},
		logger: noopLogger{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	u.id = ids.NewID()
	return u
}

// ID returns the user's identifier.
func (u *User) ID() string { return u.id }

// State returns the builder state.
func (u *User) State() State { return u.state }

// Catalog returns the user's catalog replica.
func (u *User) Catalog() command.Catalog { return u.replica }

// Strategy returns a copy of the recorded catalog indices.
func (u *User) Strategy() []int {
	out := make([]int, len(u.strategy))
	copy(out, u.strategy)
	return out
}

// Update replaces the catalog replica wholesale. Recorded indices are kept
// and resolved against the new replica when the strategy runs.
func (u *User) Update(catalog command.Catalog) {
	u.replica = catalog
	u.logger.Debug("catalog updated", "user", u.id, "commands", len(catalog))
}

// Select appends catalog index i to the strategy.
//
// Returns ErrIndexOutOfRange if i is outside the replica and
// ErrStrategyClosed once the strategy has been finished.
func (u *User) Select(i int) error {
	if u.state != StateCollecting {
		return ErrStrategyClosed
	}
	if _, ok := u.replica.At(i); !ok {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(u.replica))
	}
	u.strategy = append(u.strategy, i)
	return nil
}

// Run executes the recorded strategy against current device state, in
// order. It may be called any number of times while the strategy is being
// collected; it does not change the builder state and performs no
// staleness checks.
//
// Returns ErrStrategyClosed once the strategy is Done.
func (u *User) Run() (*Execution, error) {
	if u.state != StateCollecting {
		return nil, ErrStrategyClosed
	}
	return u.execute(ModeRun, nil), nil
}

// Finish terminates strategy construction and executes it:
// Collecting → Executing → Done.
func (u *User) Finish() (*Execution, error) {
	if u.state != StateCollecting {
		return nil, ErrStrategyClosed
	}
	return u.finish(ModeFinish, nil), nil
}

// RunAll builds and executes a strategy in one pass.
//
// Add picks are appended in order until the first FinishPick; picks after
// it are ignored. Add picks outside the replica are dropped and listed in
// Execution.Rejected. Without a FinishPick the valid picks stay recorded,
// the user stays Collecting, and ErrUnterminated is returned.
func (u *User) RunAll(picks []Pick) (*Execution, error) {
	if u.state != StateCollecting {
		return nil, ErrStrategyClosed
	}

	var rejected []int
	for _, p := range picks {
		if p.IsFinish() {
			return u.finish(ModeRunAll, rejected), nil
		}
		if err := u.Select(p.Index()); err != nil {
			rejected = append(rejected, p.Index())
		}
	}
	return nil, fmt.Errorf("%w: %d picks, %d rejected", ErrUnterminated, len(picks), len(rejected))
}

func (u *User) finish(mode Mode, rejected []int) *Execution {
	u.state = StateExecuting
	exec := u.execute(mode, rejected)
	u.state = StateDone
	return exec
}

func (u *User) execute(mode Mode, rejected []int) *Execution {
	start := u.now()
	exec := &Execution{
		ID:         u.ids.NewID(),
		ObserverID: u.id,
		Mode:       mode,
		Status:     StatusCompleted,
		Steps:      make([]Step, 0, len(u.strategy)),
		Rejected:   rejected,
		StartedAt:  start.UTC(),
	}

	for _, i := range u.strategy {
		cmd, ok := u.replica.At(i)
		if !ok {
			// Replica shrank since Select; nothing to run for this slot.
			exec.Skipped = append(exec.Skipped, i)
			continue
		}

		res := u.exec.Execute(cmd)
		step := Step{Index: i, Result: res}
		if !step.Ready() {
			exec.Status = StatusPartial
		}
		exec.Steps = append(exec.Steps, step)
		u.logger.Debug("strategy step", "user", u.id, "index", i, "command", res.Command, "status", res.Status)

		u.publishStates(res, u.now())
	}

	end := u.now()
	exec.CompletedAt = end.UTC()
	exec.DurationMS = int(end.Sub(start).Milliseconds())

	u.logger.Info("strategy executed",
		"user", u.id,
		"execution_id", exec.ID,
		"mode", exec.Mode,
		"steps", len(exec.Steps),
		"status", exec.Status,
	)
	u.record(exec)
	return exec
}

// publishStates sends the state of every device a result touched.
func (u *User) publishStates(res command.Result, at time.Time) {
	if len(u.sinks) == 0 {
		return
	}
	if res.Device != "" && res.State != nil {
		for _, s := range u.sinks {
			if err := s.PublishState(res.Device, res.State, at); err != nil {
				u.logger.Warn("publishing device state", "device", res.Device, "error", err)
			}
		}
	}
	for _, child := range res.Children {
		u.publishStates(child, at)
	}
}

func (u *User) record(exec *Execution) {
	if u.recorder == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	if err := u.recorder.CreateExecution(ctx, exec); err != nil {
		u.logger.Error("recording execution", "execution_id", exec.ID, "error", err)
	}
}
