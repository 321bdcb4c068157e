package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

// readLine reads one answer line. A final line without a newline is returned
// together with io.EOF.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), err
}

// promptString asks for a non-empty value. An empty answer takes
// defaultValue when there is one, otherwise the question is repeated.
func promptString(reader *bufio.Reader, out io.Writer, label, defaultValue string) (string, error) {
	for {
		if defaultValue != "" {
			fmt.Fprintf(out, "%s [%s]: ", label, defaultValue)
		} else {
			fmt.Fprintf(out, "%s: ", label)
		}
		line, err := readLine(reader)
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		switch {
		case line != "":
			return line, nil
		case defaultValue != "":
			return defaultValue, nil
		case err != nil:
			return "", fmt.Errorf("missing input for %s", label)
		}
	}
}

// promptChoice asks until the answer is one of choices. Matching ignores case.
func promptChoice(reader *bufio.Reader, out io.Writer, label string, choices []string, defaultValue string) (string, error) {
	question := fmt.Sprintf("%s (%s)", label, strings.Join(choices, "|"))
	for {
		answer, err := promptString(reader, out, question, defaultValue)
		if err != nil {
			return "", err
		}
		answer = strings.ToLower(answer)
		if slices.Contains(choices, answer) {
			return answer, nil
		}
		fmt.Fprintf(out, "Unknown %s %q.\n", strings.ToLower(label), answer)
	}
}

// promptYesNo prompts for a yes/no response with a default.
func promptYesNo(reader *bufio.Reader, out io.Writer, label string, defaultYes bool) (bool, error) {
	suffix := "y/N"
	if defaultYes {
		suffix = "Y/n"
	}
	for {
		fmt.Fprintf(out, "%s [%s]: ", label, suffix)
		line, err := readLine(reader)
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		switch strings.ToLower(line) {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("invalid response %q", line)
		}
		fmt.Fprintln(out, "Please answer yes or no.")
	}
}
