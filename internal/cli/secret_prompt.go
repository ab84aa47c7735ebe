package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var errNotTerminal = errors.New("stdin is not a terminal")

// PromptSecret prints label and reads one line from in with echo disabled.
// When in is not a terminal the line is read as is, so secrets can be piped.
func PromptSecret(in *os.File, out io.Writer, label string) (string, error) {
	if in == nil {
		return "", errors.New("stdin unavailable")
	}
	fmt.Fprint(out, label)

	secret, err := readSecretNoEcho(in)
	switch {
	case err == nil:
		fmt.Fprintln(out)
	case errors.Is(err, errNotTerminal):
		secret, err = readSecretLine(in)
		if err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("read secret: %w", err)
	}

	if strings.TrimSpace(string(secret)) == "" {
		return "", errors.New("secret must not be empty")
	}
	return string(secret), nil
}

func readSecretLine(in io.Reader) ([]byte, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read secret: %w", err)
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}
