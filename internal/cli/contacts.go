package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/lazypower/meetkeeper/internal/engine"
	"github.com/lazypower/meetkeeper/internal/store"
	"github.com/spf13/cobra"
)

// openDB is a helper that opens the database for CLI commands.
func openDB() (*store.DB, error) {
	dbPath := os.Getenv("MEETKEEPER_DB")
	if dbPath == "" {
		var err error
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
	}
	return store.Open(dbPath)
}

var contactsQuery string

var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "List contacts, most neglected first",
	Long:  "List contacts in sidebar order: people you have never met first, then by days since the last meeting, longest gap first.",
	RunE:  runContacts,
}

func init() {
	contactsCmd.Flags().StringVarP(&contactsQuery, "search", "q", "", "Filter by name substring")
}

// daysColor mirrors the staleness bands of the web UI: recent green,
// future-dated cyan, aging yellow, neglected red.
func daysColor(days int) *color.Color {
	switch {
	case days < 0:
		return color.New(color.FgCyan)
	case days <= 7:
		return color.New(color.FgGreen)
	case days <= 30:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

func runContacts(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	persons, err := db.AllPersons()
	if err != nil {
		return err
	}
	meetings, err := db.AllMeetings()
	if err != nil {
		return err
	}

	contacts := engine.OrderContacts(persons, meetings, time.Now())
	contacts = engine.FilterContacts(contacts, contactsQuery)

	if len(contacts) == 0 {
		fmt.Println("No contacts found.")
		return nil
	}

	for _, c := range contacts {
		fmt.Printf("%-4d %s", c.Person.ID, c.Person.Name)
		if c.Person.Email != "" {
			fmt.Printf(" <%s>", c.Person.Email)
		}
		fmt.Printf("  (coffee %d, lunch %d)\n", c.CoffeeCount, c.LunchCount)

		if !c.HasMet {
			fmt.Println("     no meeting yet")
			continue
		}

		col := daysColor(c.DaysSince)
		switch {
		case c.DaysSince == 0:
			col.Println("     last met today")
		case c.DaysSince > 0:
			col.Printf("     last met %d days ago (%s)\n", c.DaysSince, c.LastMeeting.Date)
		default:
			col.Printf("     next meeting in %d days (%s)\n", -c.DaysSince, c.LastMeeting.Date)
		}
		if c.ReminderDue {
			color.New(color.FgRed, color.Bold).Println("     next meeting due")
		}
	}
	return nil
}

var (
	meetingsType   string
	meetingsStatus string
	meetingsPerson int64
)

var meetingsCmd = &cobra.Command{
	Use:   "meetings",
	Short: "List meetings, most recent first",
	RunE:  runMeetings,
}

func init() {
	meetingsCmd.Flags().StringVarP(&meetingsType, "type", "t", "all", "Filter by type (coffee, lunch, all)")
	meetingsCmd.Flags().StringVarP(&meetingsStatus, "status", "s", "all", "Filter by status (past, upcoming, overdue, all)")
	meetingsCmd.Flags().Int64VarP(&meetingsPerson, "person", "p", 0, "Filter by contact id")
}

func runMeetings(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	persons, err := db.AllPersons()
	if err != nil {
		return err
	}
	meetings, err := db.AllMeetings()
	if err != nil {
		return err
	}

	names := make(map[int64]string, len(persons))
	for _, p := range persons {
		names[p.ID] = p.Name
	}

	f := engine.Filter{
		Type:     meetingsType,
		Status:   meetingsStatus,
		PersonID: meetingsPerson,
	}
	filtered := engine.FilterMeetings(meetings, f, time.Now())

	if len(filtered) == 0 {
		fmt.Println("No meetings found.")
		return nil
	}

	for _, m := range filtered {
		name, ok := names[m.PersonID]
		if !ok {
			name = "Unknown"
		}
		line := fmt.Sprintf("%-4d %s  %-6s  %s", m.ID, m.Date, m.Type, name)
		if m.Time != "" {
			line += " at " + m.Time
		}
		if engine.IsOverdue(&m, time.Now()) {
			color.New(color.FgRed).Println(line + "  [overdue]")
		} else {
			fmt.Println(line)
		}
	}
	return nil
}
