package menu

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"pisetup/internal/provision"
)

// Menu is the interactive selection adapter. It only translates prompts and
// keystrokes into a provision.Selection; it never executes anything itself.
type Menu struct {
	in  *bufio.Reader
	out io.Writer
}

// New builds a Menu over the given streams.
func New(in io.Reader, out io.Writer) *Menu {
	return &Menu{in: bufio.NewReader(in), out: out}
}

// customChoice is the menu number for the multi-select path; group entries
// occupy 2 through customChoice-1, so adding a group shifts it instead of
// colliding with it.
func customChoice() int { return 2 + len(provision.CanonicalOrder) }

// print renders the numeric menu. Group choices follow the canonical order.
func (m *Menu) print() {
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, "pisetup - select what to provision")
	fmt.Fprintln(m.out, "  1) Everything")
	for i, id := range provision.CanonicalOrder {
		fmt.Fprintf(m.out, "  %d) %s\n", i+2, id)
	}
	fmt.Fprintf(m.out, "  %d) Custom selection\n", customChoice())
	fmt.Fprintln(m.out, "  0) Exit")
}

// Read prompts until it gets a valid choice and returns the resulting selection.
// The second return is false when the user chose to exit (or input ended).
func (m *Menu) Read() (provision.Selection, bool) {
	for {
		m.print()
		fmt.Fprint(m.out, "Choice: ")

		line, err := m.in.ReadString('\n')
		if err != nil {
			// EOF on stdin is an intentional exit, not an error.
			return provision.Selection{}, false
		}

		choice := strings.TrimSpace(line)
		if choice == "0" || choice == "q" {
			return provision.Selection{}, false
		}

		n, err := strconv.Atoi(choice)
		switch {
		case err != nil:
			fmt.Fprintf(m.out, "Invalid choice %q\n", choice)
		case n == 1:
			return provision.SelectAll(), true
		case n >= 2 && n < customChoice():
			return provision.SelectOne(provision.CanonicalOrder[n-2]), true
		case n == customChoice():
			if sel, ok := m.readCustom(); ok {
				return sel, true
			}
			// invalid custom input: back to the menu
		default:
			fmt.Fprintf(m.out, "Invalid choice %q\n", choice)
		}
	}
}

// readCustom reads a multi-select line of group numbers (2-8), separated by
// spaces or commas, e.g. "2 4 7" or "3,6".
func (m *Menu) readCustom() (provision.Selection, bool) {
	fmt.Fprint(m.out, "Groups to run (numbers, space or comma separated): ")
	line, err := m.in.ReadString('\n')
	if err != nil {
		return provision.Selection{}, false
	}

	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n' || r == '\r'
	})

	var ids []provision.GroupID
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 2 || n >= customChoice() {
			fmt.Fprintf(m.out, "Invalid group number %q\n", f)
			return provision.Selection{}, false
		}
		ids = append(ids, provision.CanonicalOrder[n-2])
	}
	if len(ids) == 0 {
		fmt.Fprintln(m.out, "Nothing selected")
		return provision.Selection{}, false
	}
	return provision.SelectSet(ids...), true
}
