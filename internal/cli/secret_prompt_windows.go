//go:build windows

package cli

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

func readSecretNoEcho(stdin *os.File) ([]byte, error) {
	handle := windows.Handle(stdin.Fd())
	var original uint32
	if err := windows.GetConsoleMode(handle, &original); err != nil {
		return nil, fmt.Errorf("%w: %v", errNotTerminal, err)
	}

	if err := windows.SetConsoleMode(handle, original&^windows.ENABLE_ECHO_INPUT); err != nil {
		return nil, err
	}
	defer func() {
		_ = windows.SetConsoleMode(handle, original)
	}()

	return readSecretLine(stdin)
}
