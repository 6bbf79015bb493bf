package sifiveuart

// Base addresses of the UART register blocks on known SoCs. The driver takes
// any base; these are here so board code does not have to look them up.
const (
	FE310UART0 uintptr = 0x1001_3000
	FE310UART1 uintptr = 0x1002_3000

	FU540UART0 uintptr = 0x1001_0000
	FU540UART1 uintptr = 0x1001_1000

	// FU740 keeps the FU540 map.
	FU740UART0 = FU540UART0
	FU740UART1 = FU540UART1
)
