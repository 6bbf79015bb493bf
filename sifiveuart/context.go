package sifiveuart

import "context"

// The helpers below are the caller-level timeout layer: they re-invoke the
// bounded operations until they succeed or ctx is done. ctx is checked
// between attempts, so one attempt (at most the retry budget of polls) may
// run after cancellation.

// SendByteContext retries SendByte until the byte is queued or ctx is done.
func (u *UART) SendByteContext(ctx context.Context, b byte) error {
	for {
		err := u.SendByte(b)
		if err != ErrTxNotEmpty {
			return err
		}
		if err := ctx.Err(); err != nil {
			u.dbgCtxTimeout()
			return err
		}
	}
}

// RecvByteContext retries ReceiveByte until a byte arrives or ctx is done.
func (u *UART) RecvByteContext(ctx context.Context) (byte, error) {
	for {
		b, err := u.ReceiveByte()
		if err != ErrDataNotReady {
			return b, err
		}
		if err := ctx.Err(); err != nil {
			u.dbgCtxTimeout()
			return 0, err
		}
	}
}

// WriteContext sends all of p, waiting as long as ctx allows. It returns the
// number of bytes queued.
func (u *UART) WriteContext(ctx context.Context, p []byte) (int, error) {
	for i, b := range p {
		if err := u.SendByteContext(ctx, b); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

// ReadFullContext fills p, waiting as long as ctx allows. It returns the
// number of bytes read.
func (u *UART) ReadFullContext(ctx context.Context, p []byte) (int, error) {
	for i := range p {
		b, err := u.RecvByteContext(ctx)
		if err != nil {
			return i, err
		}
		p[i] = b
	}
	return len(p), nil
}

// WaitWritableContext blocks until TXDATA reports the FIFO not full or ctx is
// done. It does not write.
func (u *UART) WaitWritableContext(ctx context.Context) error {
	for {
		for i := 0; i < u.budget; i++ {
			u.dbgPoll()
			if !u.txFull() {
				return nil
			}
		}
		if err := ctx.Err(); err != nil {
			u.dbgCtxTimeout()
			return err
		}
	}
}
