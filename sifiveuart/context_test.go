package sifiveuart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jangala-dev/tinygo-sifiveuart/internal/reg"
	"github.com/jangala-dev/tinygo-sifiveuart/regsim"
)

func newDeviceUART(t *testing.T) (*UART, *regsim.Device) {
	t.Helper()
	d := regsim.NewDevice()
	u, err := NewRegisters(d, Config{RetryBudget: 16})
	if err != nil {
		t.Fatalf("NewRegisters: %v", err)
	}
	return u, d
}

func TestRecvByteContext_UnblocksOnData(t *testing.T) {
	u, d := newDeviceUART(t)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	var got byte
	var err error

	go func() {
		defer close(done)
		got, err = u.RecvByteContext(ctx)
	}()

	time.Sleep(20 * time.Millisecond)
	d.Inject([]byte{'Z'})

	select {
	case <-done:
	case <-time.After(300 * time.Millisecond):
		t.Fatal("timeout waiting for RecvByteContext")
	}

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 'Z' {
		t.Fatalf("got %q want %q", got, 'Z')
	}
}

func TestRecvByteContext_Deadline(t *testing.T) {
	u, _ := newDeviceUART(t)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := u.RecvByteContext(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err=%v want DeadlineExceeded", err)
	}
}

func TestSendByteContext_WaitsForSpace(t *testing.T) {
	u, d := newDeviceUART(t)

	for i := uint8(0); i < regsim.FIFODepth; i++ {
		if err := u.SendByte('a' + i); err != nil {
			t.Fatalf("fill: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- u.SendByteContext(ctx, '!') }()

	time.Sleep(20 * time.Millisecond)
	if got := string(d.Transmitted()); got != "abcdefgh" {
		t.Fatalf("line=%q", got)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(300 * time.Millisecond):
		t.Fatal("timeout waiting for SendByteContext")
	}
	if got := string(d.Transmitted()); got != "!" {
		t.Fatalf("line=%q want %q", got, "!")
	}
}

func TestSendByteContext_Cancelled(t *testing.T) {
	b := &regsim.Block{}
	b.Pin(reg.TXDATA, reg.TXDATA_FULL)
	u, err := NewRegisters(b, Config{RetryBudget: 2})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := u.SendByteContext(ctx, 'x'); !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v want Canceled", err)
	}
	if b.Writes(reg.TXDATA) != 0 {
		t.Fatal("TXDATA written while full")
	}
	// One bounded attempt runs before ctx is checked.
	if r := b.Reads(reg.TXDATA); r != 2 {
		t.Fatalf("polled %d times, want 2", r)
	}
}

func TestWriteContext_ReadFullContext(t *testing.T) {
	u, d := newDeviceUART(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// Drain the TX line in the background so a message longer than the
	// FIFO gets through.
	stop := make(chan struct{})
	line := make(chan []byte, 1)
	go func() {
		var out []byte
		for {
			out = append(out, d.Transmitted()...)
			select {
			case <-stop:
				out = append(out, d.Transmitted()...)
				line <- out
				return
			case <-time.After(time.Millisecond):
			}
		}
	}()

	want := "hello, sifive uart"
	n, err := u.WriteContext(ctx, []byte(want))
	close(stop)
	if err != nil || n != len(want) {
		t.Fatalf("WriteContext n=%d err=%v", n, err)
	}
	if got := string(<-line); got != want {
		t.Fatalf("line=%q want %q", got, want)
	}

	go func() {
		for _, c := range []byte("HELLO") {
			d.Inject([]byte{c})
			time.Sleep(5 * time.Millisecond)
		}
	}()
	got := make([]byte, 5)
	n, err = u.ReadFullContext(ctx, got)
	if err != nil || n != 5 || string(got) != "HELLO" {
		t.Fatalf("ReadFullContext=%q (n=%d) err=%v", string(got), n, err)
	}
}

func TestWaitWritableContext(t *testing.T) {
	u, d := newDeviceUART(t)

	if err := u.WaitWritableContext(context.Background()); err != nil {
		t.Fatalf("empty FIFO: %v", err)
	}

	_, _ = u.Write([]byte("12345678"))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := u.WaitWritableContext(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("full FIFO: err=%v want DeadlineExceeded", err)
	}

	d.Transmitted()
	if err := u.WaitWritableContext(context.Background()); err != nil {
		t.Fatalf("after drain: %v", err)
	}
}
