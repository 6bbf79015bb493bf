//go:build sifive && sifiveuartdebug

// Command sifiveuart_probe exercises FE310 UART1 in loopback (wire TX to RX)
// and prints the driver counters and control registers after each phase.
package main

import (
	"context"
	"crypto/sha1"
	"machine"
	"time"

	"github.com/jangala-dev/tinygo-sifiveuart/sifiveuart"
)

const baud = 115200

func must[T any](v T, err error) T {
	if err != nil {
		fatal(err)
	}
	return v
}

func fatal(err error) {
	println("fatal:", err.Error())
	for {
		time.Sleep(time.Hour)
	}
}

func printStats(u *sifiveuart.UART, label string) {
	s := u.DebugStats()
	r := u.DebugRegs()
	println("==", label)
	println("Polls:    ", s.Polls)
	println("Bytes:    sent=", s.BytesSent, " recv=", s.BytesReceived)
	println("Timeouts: tx=", s.TxTimeouts, " rx=", s.RxTimeouts, " ctx=", s.CtxTimeouts)
	println("Regs:     TXCTRL=", r.TXCTRL, " RXCTRL=", r.RXCTRL, " IE=", r.IE, " DIV=", r.DIV)
}

// drain discards whatever is sitting in the RX FIFO.
func drain(u *sifiveuart.UART) {
	for {
		if _, err := u.ReceiveByte(); err != nil {
			return
		}
	}
}

func main() {
	delay := 5
	for i := 0; i < delay; i++ {
		println("probe starting in ", delay-i, " seconds")
		time.Sleep(time.Second)
	}
	println("sifiveuart probe (diagnostic)")

	u := must(sifiveuart.New(sifiveuart.FE310UART1, sifiveuart.Config{}))
	// tlclk runs at the core clock on the FE310.
	if err := u.SetBaud(baud, machine.CPUFrequency()); err != nil {
		fatal(err)
	}
	u.DebugReset()
	drain(u)

	// Phase 1: 256 byte lockstep integrity. The RX FIFO is only 8 deep and
	// nothing drains it in the background, so each byte is read back before
	// the next is sent.
	println("\n[phase] lockstep-256")
	src := make([]byte, 256)
	var x uint32 = 0x12345678
	for i := range src {
		x = 1664525*x + 1013904223
		src[i] = byte(x >> 24)
	}
	want := sha1.Sum(src)
	got := make([]byte, 0, len(src))
	ctx1, cancel1 := context.WithTimeout(context.Background(), 2*time.Second)
	for _, b := range src {
		if err := u.SendByteContext(ctx1, b); err != nil {
			break
		}
		r, err := u.RecvByteContext(ctx1)
		if err != nil {
			break
		}
		got = append(got, r)
	}
	cancel1()
	if len(got) != len(src) {
		println(" result: TIMEOUT (received", len(got), "bytes)")
	} else if sha1.Sum(got) != want {
		println(" result: HASH MISMATCH")
	} else {
		println(" result: OK (256 B)")
	}
	printStats(u, "after lockstep-256")

	// Phase 2: burst of one FIFO's worth, then read it all back.
	println("\n[phase] burst-8")
	u.DebugReset()
	drain(u)
	n, err := u.Write([]byte("01234567"))
	time.Sleep(2 * time.Millisecond)
	buf := make([]byte, 8)
	ctx2, cancel2 := context.WithTimeout(context.Background(), 200*time.Millisecond)
	m, _ := u.ReadFullContext(ctx2, buf)
	cancel2()
	println(" result: wrote", n, "read", m, "'", string(buf[:m]), "'")
	if err != nil {
		println(" write error:", err.Error())
	}
	printStats(u, "after burst-8")

	// Phase 3: idle line must fail within the retry budget.
	println("\n[phase] idle-timeout")
	u.DebugReset()
	drain(u)
	start := time.Now()
	_, err = u.ReceiveByte()
	println(" result:", err.Error(), "after", time.Since(start).Microseconds(), "us")
	printStats(u, "after idle-timeout")

	println("\ndone")
	for {
		time.Sleep(time.Hour)
	}
}
