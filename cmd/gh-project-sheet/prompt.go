package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// promptMilestone asks for a sprint number. An empty answer or closed input
// means no filter.
func promptMilestone(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Enter milestone number (leave empty for all issues): ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
