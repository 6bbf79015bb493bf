// Command uartsim drives a sifiveuart.UART bound to a simulated register
// block from an interactive terminal. Text sent through the driver shows up
// on the simulated TX line; text injected on the RX line can be received.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"strconv"

	tty "github.com/mattn/go-tty"

	"github.com/jangala-dev/tinygo-sifiveuart/sifiveuart"
)

// uint32Var defines a uint32 flag on fs. Values that do not fit are rejected
// by flag parsing.
func uint32Var(fs *flag.FlagSet, p *uint32, name string, value uint32, usage string) {
	*p = value
	fs.Func(name, usage+" (default "+strconv.FormatUint(uint64(value), 10)+")", func(s string) error {
		v, err := parseU32(s)
		if err != nil {
			return err
		}
		*p = v
		return nil
	})
}

func main() {
	var busHz, baud uint32
	uint32Var(flag.CommandLine, &busHz, "bus", 32_000_000, "bus clock in Hz")
	uint32Var(flag.CommandLine, &baud, "baud", 115200, "initial baud rate")
	budget := flag.Int("budget", sifiveuart.DefaultRetryBudget, "status polls per transfer")
	flag.Parse()

	t, err := tty.Open()
	if err != nil {
		log.Fatalf("open tty: %v", err)
	}
	defer t.Close()
	out := t.Output()

	c, err := newConsole(out, sifiveuart.Config{RetryBudget: *budget}, busHz)
	if err != nil {
		log.Fatalf("uart: %v", err)
	}
	if err := c.uart.SetBaud(baud, c.busHz); err != nil {
		log.Fatalf("baud: %v", err)
	}
	fmt.Fprintf(out, "sifive uart simulator, %d baud on a %d Hz bus; type help\n", baud, busHz)

	for {
		fmt.Fprint(out, "uart> ")
		line, err := t.ReadString()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Printf("read: %v", err)
			}
			return
		}
		if err := c.exec(line); err != nil {
			if err == errQuit {
				return
			}
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}
