package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/chzyer/readline"

	"github.com/nerrad567/gray-logic-hub/internal/hub"
	"github.com/nerrad567/gray-logic-hub/internal/strategy"
)

// Console drives one strategy user from an interactive terminal.
type Console struct {
	hub  *hub.Hub
	user *strategy.User
	out  io.Writer
	rl   *readline.Instance

	closeOnce sync.Once
}

// New opens a readline prompt on the process terminal. The console is
// opened before the rest of the hub starts so that log output can go
// through Stdout; call SetUser before Run.
func New() (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "grayhub> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    completer(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	c := newConsole(nil, nil, rl.Stdout())
	c.rl = rl
	return c, nil
}

// SetUser sets the hub and the strategy user the console drives.
func (c *Console) SetUser(h *hub.Hub, user *strategy.User) {
	c.hub = h
	c.user = user
}

func newConsole(h *hub.Hub, user *strategy.User, out io.Writer) *Console {
	return &Console{hub: h, user: user, out: out}
}

// Stdout returns a writer that redraws the readline prompt after each
// write. Log output goes through it while the console is open.
func (c *Console) Stdout() io.Writer {
	return c.out
}

// Run reads commands until exit, EOF or ctx is cancelled. On exit or
// EOF it calls cancel so the rest of the process shuts down too.
func (c *Console) Run(ctx context.Context, cancel context.CancelFunc) {
	defer c.Close()

	fmt.Fprintf(c.out, "User %s joins the hub\n", c.user.ID())
	c.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintf(c.out, "User %s leaves the hub\n", c.user.ID())
			cancel()
			return
		}

		if quit := c.Exec(line); quit {
			cancel()
			return
		}
	}
}

// Close releases the terminal. A blocked Run returns and cancels.
func (c *Console) Close() {
	c.closeOnce.Do(func() {
		if c.rl != nil {
			c.rl.Close()
		}
	})
}

// Exec runs one console command line and reports whether the console
// should exit.
func (c *Console) Exec(line string) bool {
	parts := strings.Fields(strings.TrimSpace(line))
	if len(parts) == 0 {
		return false
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		c.printHelp()

	case "list", "l":
		renderCatalog(c.out, c.user.ID(), c.user.Catalog())

	case "strategy", "s":
		renderStrategy(c.out, c.user.Catalog(), c.user.Strategy())

	case "add", "a":
		c.cmdAdd(args)

	case "run", "r":
		exec, err := c.user.Run()
		if err != nil {
			c.printError(err)
			return false
		}
		renderExecution(c.out, exec)

	case "finish", "f":
		exec, err := c.user.Finish()
		if err != nil {
			c.printError(err)
			return false
		}
		renderExecution(c.out, exec)

	case "runall":
		c.cmdRunAll(args)

	case "devices", "d":
		renderDevices(c.out, c.hub.DeviceInfos())

	case "device":
		c.cmdDevice(args)

	case "ops", "o":
		c.cmdOps(args)

	case "quit", "exit", "q":
		fmt.Fprintf(c.out, "User %s leaves the hub\n", c.user.ID())
		return true

	default:
		fmt.Fprintf(c.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func (c *Console) cmdAdd(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(c.out, "Usage: add <index> [index...]")
		return
	}
	for _, arg := range args {
		i, err := strconv.Atoi(arg)
		if err != nil {
			fmt.Fprintf(c.out, "Not a command number: %s\n", arg)
			continue
		}
		if err := c.user.Select(i); err != nil {
			if errors.Is(err, strategy.ErrIndexOutOfRange) {
				fmt.Fprintf(c.out, "Command #%d does not exist!\n", i)
				continue
			}
			c.printError(err)
			return
		}
		cmd, _ := c.user.Catalog().At(i)
		fmt.Fprintf(c.out, "Adding command: %s...\n", cmd.Name())
	}
}

// cmdRunAll builds and runs a strategy in one pass. "finish" (or "f")
// is the terminate signal; anything after it is ignored.
func (c *Console) cmdRunAll(args []string) {
	picks, err := parsePicks(args)
	if err != nil {
		fmt.Fprintln(c.out, err)
		return
	}

	exec, err := c.user.RunAll(picks)
	if errors.Is(err, strategy.ErrUnterminated) {
		fmt.Fprintln(c.out, "No finish given; commands kept in the strategy.")
		return
	}
	if err != nil {
		c.printError(err)
		return
	}
	renderExecution(c.out, exec)
}

func (c *Console) cmdDevice(args []string) {
	index, ok := c.indexArg("device", args)
	if !ok {
		return
	}
	info, err := c.hub.DeviceInfo(index)
	if err != nil {
		c.printError(err)
		return
	}
	renderDevice(c.out, info)
}

func (c *Console) cmdOps(args []string) {
	index, ok := c.indexArg("ops", args)
	if !ok {
		return
	}
	ops, err := c.hub.ListOperations(index)
	if err != nil {
		c.printError(err)
		return
	}
	for _, op := range ops {
		fmt.Fprintln(c.out, op)
	}
}

func (c *Console) indexArg(name string, args []string) (int, bool) {
	if len(args) != 1 {
		fmt.Fprintf(c.out, "Usage: %s <index>\n", name)
		return 0, false
	}
	i, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(c.out, "Not a device number: %s\n", args[0])
		return 0, false
	}
	return i, true
}

func (c *Console) printError(err error) {
	fmt.Fprintf(c.out, "Error: %v\n", err)
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.out, `
Hub Commands:
  Strategy:
    list               - List the commands available to you
    strategy           - Show the current strategy
    add <n> [n...]     - Append catalog commands to the strategy
    run                - Run the strategy and keep it open
    finish             - Run the strategy and close it
    runall <n...> f    - Add each n, then finish at "f"

  Devices:
    devices            - Describe every device
    device <n>         - Show one device with its state
    ops <n>            - List the operations of device n

  Other:
    help               - Show this help
    exit               - Leave the console`)
}

// parsePicks turns console arguments into RunAll picks.
func parsePicks(args []string) ([]strategy.Pick, error) {
	picks := make([]strategy.Pick, 0, len(args))
	for _, arg := range args {
		switch strings.ToLower(arg) {
		case "f", "finish":
			picks = append(picks, strategy.FinishPick())
			continue
		}
		i, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("not a command number: %s", arg)
		}
		picks = append(picks, strategy.Add(i))
	}
	return picks, nil
}

func completer() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("help"),
		readline.PcItem("list"),
		readline.PcItem("strategy"),
		readline.PcItem("add"),
		readline.PcItem("run"),
		readline.PcItem("runall"),
		readline.PcItem("finish"),
		readline.PcItem("devices"),
		readline.PcItem("device"),
		readline.PcItem("ops"),
		readline.PcItem("exit"),
	)
}
