package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"github.com/jangala-dev/tinygo-sifiveuart/regsim"
	"github.com/jangala-dev/tinygo-sifiveuart/sifiveuart"
)

var errQuit = errors.New("quit")

const helpText = `commands:
  baud <baud> [bus_hz]   program DIV (bus_hz defaults to -bus)
  ie tx|rx on|off        toggle a watermark interrupt enable
  send <text>...         transmit text through the driver
  inject <text>...       put text on the simulated RX line
  recv [n]               receive up to n bytes (default 8)
  line                   drain and show the simulated TX line
  regs                   show the simulated register state
  help                   this text
  quit                   leave
`

// console runs driver operations against a simulated device, one command
// line at a time.
type console struct {
	out   io.Writer
	uart  *sifiveuart.UART
	dev   *regsim.Device
	busHz uint32
}

func newConsole(out io.Writer, cfg sifiveuart.Config, busHz uint32) (*console, error) {
	dev := regsim.NewDevice()
	u, err := sifiveuart.NewRegisters(dev, cfg)
	if err != nil {
		return nil, err
	}
	return &console{out: out, uart: u, dev: dev, busHz: busHz}, nil
}

// exec runs one command line. It returns errQuit for quit.
func (c *console) exec(line string) error {
	args, err := shlex.Split(line)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}
	cmd, args := args[0], args[1:]

	switch cmd {
	case "baud":
		return c.baud(args)
	case "ie":
		return c.ie(args)
	case "send":
		n, err := c.uart.Write([]byte(strings.Join(args, " ")))
		fmt.Fprintf(c.out, "sent %d bytes\n", n)
		return err
	case "inject":
		n := c.dev.Inject([]byte(strings.Join(args, " ")))
		fmt.Fprintf(c.out, "injected %d bytes\n", n)
	case "recv":
		return c.recv(args)
	case "line":
		fmt.Fprintf(c.out, "%q\n", c.dev.Transmitted())
	case "regs":
		s := c.dev.Snapshot()
		fmt.Fprintf(c.out, "txctrl=%#x rxctrl=%#x ie=%#x ip=%#x div=%d tx=%d/%d rx=%d/%d\n",
			s.TXCTRL, s.RXCTRL, s.IE, s.IP, s.DIV,
			s.TxLevel, regsim.FIFODepth, s.RxLevel, regsim.FIFODepth)
	case "help":
		io.WriteString(c.out, helpText)
	case "quit", "exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}
	return nil
}

func (c *console) baud(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.New("usage: baud <baud> [bus_hz]")
	}
	baud, err := parseU32(args[0])
	if err != nil {
		return err
	}
	bus := c.busHz
	if len(args) == 2 {
		if bus, err = parseU32(args[1]); err != nil {
			return err
		}
	}
	if err := c.uart.SetBaud(baud, bus); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "div=%d\n", bus/baud)
	return nil
}

func (c *console) ie(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: ie tx|rx on|off")
	}
	var on bool
	switch args[1] {
	case "on":
		on = true
	case "off":
	default:
		return fmt.Errorf("want on or off, got %q", args[1])
	}
	switch args[0] {
	case "tx":
		c.uart.SetTxWatermarkInterrupt(on)
	case "rx":
		c.uart.SetRxWatermarkInterrupt(on)
	default:
		return fmt.Errorf("want tx or rx, got %q", args[0])
	}
	return nil
}

func (c *console) recv(args []string) error {
	n := 8
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v <= 0 {
			return fmt.Errorf("bad count %q", args[0])
		}
		n = v
	}
	buf := make([]byte, n)
	got, err := c.uart.Read(buf)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%q\n", buf[:got])
	return nil
}

func parseU32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("bad number %q", s)
	}
	return uint32(v), nil
}
