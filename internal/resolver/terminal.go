package resolver

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/tallyhq/tally/internal/model"
)

// Terminal is the interactive Prompter. Invalid input re-prompts without
// advancing to the next transaction.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminal creates a Terminal prompter over the given streams.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// Resolve shows one uncategorized transaction and reads the operator's
// choice.
func (t *Terminal) Resolve(txn model.Transaction) (Response, error) {
	fmt.Fprintf(t.out, "\nUncategorized: %s  %s  %s\n",
		txn.Date.Format(model.DateFormat), txn.Description, txn.AmountSource.StringFixed(2))

	for {
		fmt.Fprintln(t.out, "  1) add rule  2) edit description  3) skip")
		choice, err := t.readLine("> ")
		if err != nil {
			return Response{}, err
		}

		switch choice {
		case "1":
			keyword, err := t.readLine("keyword: ")
			if err != nil {
				return Response{}, err
			}
			if keyword == "" {
				fmt.Fprintln(t.out, "keyword cannot be empty")
				continue
			}
			category, err := t.readLine("category (Main/Sub): ")
			if err != nil {
				return Response{}, err
			}
			main, sub := SplitCategory(category)
			if main == "" {
				fmt.Fprintln(t.out, "category cannot be empty")
				continue
			}
			return Response{Action: ActionAddRule, Keyword: keyword, Main: main, Sub: sub}, nil

		case "2":
			desc, err := t.readLine("new description: ")
			if err != nil {
				return Response{}, err
			}
			if desc == "" {
				fmt.Fprintln(t.out, "description cannot be empty")
				continue
			}
			return Response{Action: ActionEditDescription, Description: desc}, nil

		case "3":
			return Response{Action: ActionSkip}, nil

		default:
			fmt.Fprintf(t.out, "invalid choice %q\n", choice)
		}
	}
}

// Categorize asks for a keyword and category after a description edit that
// still matched no rule.
func (t *Terminal) Categorize(txn model.Transaction) (string, string, string, error) {
	fmt.Fprintf(t.out, "no rule matches %q\n", txn.Description)

	for {
		keyword, err := t.readLine("keyword: ")
		if err != nil {
			return "", "", "", err
		}
		category, err := t.readLine("category (Main/Sub): ")
		if err != nil {
			return "", "", "", err
		}
		main, sub := SplitCategory(category)
		if keyword == "" || main == "" {
			fmt.Fprintln(t.out, "keyword and category are required")
			continue
		}
		return keyword, main, sub, nil
	}
}

func (t *Terminal) readLine(prompt string) (string, error) {
	fmt.Fprint(t.out, prompt)
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading operator input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// SplitCategory splits "Main/Sub" operator input. Without a slash the sub
// category repeats the main, matching how single-level rules are stored.
func SplitCategory(s string) (main, sub string) {
	parts := strings.SplitN(s, "/", 2)
	main = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		sub = strings.TrimSpace(parts[1])
	}
	if sub == "" {
		sub = main
	}
	return main, sub
}
