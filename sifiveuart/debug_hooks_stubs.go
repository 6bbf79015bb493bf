//go:build !sifiveuartdebug

package sifiveuart

func (u *UART) dbgPoll()       {}
func (u *UART) dbgSent()       {}
func (u *UART) dbgRecv()       {}
func (u *UART) dbgTxTimeout()  {}
func (u *UART) dbgRxTimeout()  {}
func (u *UART) dbgCtxTimeout() {}
