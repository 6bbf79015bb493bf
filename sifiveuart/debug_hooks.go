//go:build sifiveuartdebug

package sifiveuart

import "sync/atomic"

func (u *UART) dbgPoll()       { atomic.AddUint32(&u.stats.Polls, 1) }
func (u *UART) dbgSent()       { atomic.AddUint32(&u.stats.BytesSent, 1) }
func (u *UART) dbgRecv()       { atomic.AddUint32(&u.stats.BytesReceived, 1) }
func (u *UART) dbgTxTimeout()  { atomic.AddUint32(&u.stats.TxTimeouts, 1) }
func (u *UART) dbgRxTimeout()  { atomic.AddUint32(&u.stats.RxTimeouts, 1) }
func (u *UART) dbgCtxTimeout() { atomic.AddUint32(&u.stats.CtxTimeouts, 1) }
