package regsim

import (
	"testing"

	"github.com/jangala-dev/tinygo-sifiveuart/internal/reg"
)

func enabled() *Device {
	d := NewDevice()
	d.Write32(reg.TXCTRL, reg.Cnt(1)|reg.TXCTRL_TXEN)
	d.Write32(reg.RXCTRL, reg.Cnt(6)|reg.RXCTRL_RXEN)
	return d
}

func TestDevice_TxFullFlag(t *testing.T) {
	d := enabled()
	for i := 0; i < int(FIFODepth); i++ {
		if d.Read32(reg.TXDATA)&reg.TXDATA_FULL != 0 {
			t.Fatalf("full after %d bytes", i)
		}
		d.Write32(reg.TXDATA, uint32('a'+i))
	}
	if d.Read32(reg.TXDATA)&reg.TXDATA_FULL == 0 {
		t.Fatal("expected full flag")
	}
	d.Write32(reg.TXDATA, 'z')
	if tx, _ := d.Dropped(); tx != 1 {
		t.Fatalf("tx dropped=%d want 1", tx)
	}
	if got := string(d.Transmitted()); got != "abcdefgh" {
		t.Fatalf("line=%q", got)
	}
	if d.Read32(reg.TXDATA) != 0 {
		t.Fatal("full flag set after drain")
	}
}

func TestDevice_TxDisabledDrops(t *testing.T) {
	d := NewDevice()
	d.Write32(reg.TXDATA, 'a')
	if got := d.Transmitted(); len(got) != 0 {
		t.Fatalf("sent %q with TX disabled", got)
	}
}

func TestDevice_RxPopsOnRead(t *testing.T) {
	d := enabled()
	if d.Read32(reg.RXDATA) != reg.RXDATA_EMPTY {
		t.Fatal("expected empty flag")
	}
	if n := d.Inject([]byte("hi")); n != 2 {
		t.Fatalf("Inject=%d", n)
	}
	if v := d.Read32(reg.RXDATA); v != 'h' {
		t.Fatalf("RXDATA=%#x", v)
	}
	if v := d.Read32(reg.RXDATA); v != 'i' {
		t.Fatalf("RXDATA=%#x", v)
	}
	if d.Read32(reg.RXDATA) != reg.RXDATA_EMPTY {
		t.Fatal("expected empty after two reads")
	}
}

func TestDevice_RxOverrunAndDisabled(t *testing.T) {
	d := NewDevice()
	if n := d.Inject([]byte("x")); n != 0 {
		t.Fatalf("accepted %d bytes with RX disabled", n)
	}
	d = enabled()
	if n := d.Inject(make([]byte, 10)); n != int(FIFODepth) {
		t.Fatalf("accepted %d want %d", n, FIFODepth)
	}
	if _, rx := d.Dropped(); rx != 2 {
		t.Fatalf("rx dropped=%d want 2", rx)
	}
}

func TestDevice_Watermarks(t *testing.T) {
	d := enabled()

	// Empty TX FIFO is below the tx watermark of 1.
	if s := d.Snapshot(); s.IP != reg.IP_TXWM {
		t.Fatalf("IP=%#x want txwm", s.IP)
	}
	if d.Pending() != 0 {
		t.Fatal("pending reported with IE clear")
	}

	d.Write32(reg.IE, reg.IE_TXWM|reg.IE_RXWM)
	d.Write32(reg.TXDATA, 'a')
	if d.Pending()&reg.IP_TXWM != 0 {
		t.Fatal("txwm pending with one byte queued")
	}

	d.Inject([]byte("123456"))
	if d.Pending()&reg.IP_RXWM != 0 {
		t.Fatal("rxwm pending at exactly 6 bytes")
	}
	d.Inject([]byte("7"))
	if d.Pending()&reg.IP_RXWM == 0 {
		t.Fatal("rxwm not pending at 7 bytes")
	}

	// IP is read only.
	d.Write32(reg.IP, 0)
	if d.Read32(reg.IP)&reg.IP_RXWM == 0 {
		t.Fatal("IP write took effect")
	}
}

func TestDevice_SnapshotAndReset(t *testing.T) {
	d := enabled()
	d.Write32(reg.DIV, 277)
	d.Inject([]byte("ab"))
	d.Write32(reg.TXDATA, 'x')

	s := d.Snapshot()
	if s.DIV != 277 || s.RxLevel != 2 || s.TxLevel != 1 || s.TXCTRL != 0x10001 {
		t.Fatalf("snapshot=%+v", s)
	}

	d.Reset()
	if s := d.Snapshot(); s != (Snapshot{}) {
		t.Fatalf("after reset: %+v", s)
	}
}
