//go:build !sifiveuartdebug

package sifiveuart

// Stats is empty unless built with the sifiveuartdebug tag.
type Stats struct{}

func (u *UART) DebugReset()       {}
func (u *UART) DebugStats() Stats { return Stats{} }

// Regs is empty unless built with the sifiveuartdebug tag.
type Regs struct{}

func (u *UART) DebugRegs() Regs { return Regs{} }
