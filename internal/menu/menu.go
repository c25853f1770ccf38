// Package menu implements the interactive text menu over a catalog Store.
package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/matsen/shelf/internal/catalog"
	"github.com/matsen/shelf/internal/item"
)

// Menu choices.
const (
	choiceAdd    = "1"
	choiceSell   = "2"
	choiceSearch = "3"
	choiceExit   = "4"
)

// Sale confirmation answers (case-insensitive).
const (
	answerYes = "y"
	answerNo  = "n"
)

const msgNotAvailable = "Item not available."

// Menu reads choices from in and writes prompts and results to out.
type Menu struct {
	store *catalog.Store
	in    *bufio.Reader
	out   io.Writer
}

// New creates a Menu over store.
func New(store *catalog.Store, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		store: store,
		in:    bufio.NewReader(in),
		out:   out,
	}
}

// Run loops until the user exits or input ends.
// Only store failures (e.g. the backing file cannot be written) are returned.
func (m *Menu) Run() error {
	m.println("Welcome to the Store!")
	for {
		m.println("\nSelect an option:")
		m.println("1. Add new item")
		m.println("2. Sell item")
		m.println("3. Search item")
		m.println("4. Exit")

		choice, err := m.prompt("Enter choice (1-4): ")
		if err != nil {
			return ignoreEOF(err)
		}

		switch choice {
		case choiceAdd:
			err = m.add()
		case choiceSell:
			err = m.sell()
		case choiceSearch:
			err = m.search()
		case choiceExit:
			return nil
		default:
			m.println("Please enter a valid choice (1-4)")
		}
		if err != nil {
			return ignoreEOF(err)
		}
	}
}

func (m *Menu) add() error {
	title, err := m.prompt("Enter item title: ")
	if err != nil {
		return err
	}
	author, err := m.prompt("Enter author/publisher name: ")
	if err != nil {
		return err
	}
	price, err := m.promptInt("Enter item price: ", "Please enter a valid integer price.")
	if err != nil {
		return err
	}
	stock, err := m.promptInt("Enter item stock: ", "Please enter a valid integer stock.")
	if err != nil {
		return err
	}

	var kind item.Kind
	for {
		input, err := m.prompt("Enter item type (Book/Magazine): ")
		if err != nil {
			return err
		}
		if kind, err = item.ValidateKind(input); err == nil {
			break
		}
		m.println("Please enter a valid item type.")
	}

	it := item.Item{Title: title, Author: author, Price: price, Stock: stock, Kind: kind}
	if err := m.store.Add(it); err != nil {
		return err
	}
	m.printf("%s added successfully.\n", it.Kind)
	return nil
}

func (m *Menu) sell() error {
	title, err := m.prompt("Enter item title to sell: ")
	if err != nil {
		return err
	}

	res, err := m.store.Sell(title, m.confirmSale)
	switch {
	case errors.Is(err, catalog.ErrNotAvailable):
		m.println(msgNotAvailable)
		return nil
	case errors.Is(err, catalog.ErrOutOfStock):
		m.println(res.Item.String())
		m.println("Item out of stock.")
		return nil
	case err != nil:
		return err
	}

	if res.Cancelled {
		m.println("Sale cancelled.")
	} else {
		m.printf("%s sold successfully.\n", res.Item.Kind)
	}
	return nil
}

// confirmSale shows the entry and asks until the answer is y or n.
func (m *Menu) confirmSale(it item.Item) (bool, error) {
	m.println(it.String())
	for {
		input, err := m.prompt("Do you want to sale this item? (y/n) ")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(input) {
		case answerYes:
			return true, nil
		case answerNo:
			return false, nil
		}
		m.println("Please enter 'y' or 'n'.")
	}
}

func (m *Menu) search() error {
	title, err := m.prompt("Enter item title to search: ")
	if err != nil {
		return err
	}

	it, err := m.store.Search(title)
	if errors.Is(err, catalog.ErrNotAvailable) {
		m.println(msgNotAvailable)
		return nil
	}
	if err != nil {
		return err
	}
	m.println(it.String())
	return nil
}

// prompt writes label and returns the next line with surrounding whitespace removed.
// A final line without a newline is returned normally; io.EOF is returned once input is exhausted.
func (m *Menu) prompt(label string) (string, error) {
	fmt.Fprint(m.out, label)
	line, err := m.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptInt re-prompts with invalidMsg until the input parses as an integer.
func (m *Menu) promptInt(label, invalidMsg string) (int, error) {
	for {
		input, err := m.prompt(label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(input)
		if err == nil {
			return n, nil
		}
		m.println(invalidMsg)
	}
}

func (m *Menu) println(s string) {
	fmt.Fprintln(m.out, s)
}

func (m *Menu) printf(format string, args ...interface{}) {
	fmt.Fprintf(m.out, format, args...)
}

// ignoreEOF treats exhausted input as a normal exit.
func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
