package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/lazypower/meetkeeper/internal/store"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export all data to a backup JSON file",
	Long:  "Write a full snapshot of contacts and meetings. Without an argument the file is named meetingmanager-backup-<date>.json in the current directory.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	now := time.Now()
	b, err := db.Export(now)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	path := store.BackupFilename(now)
	if len(args) > 0 {
		path = args[0]
	}

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}

	fmt.Printf("Exported %d person(s) and %d meeting(s) to %s\n", len(b.Persons), len(b.Meetings), path)
	return nil
}

var importForce bool

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace all data with a backup JSON file",
	Long:  "Import a backup produced by export. All existing contacts and meetings are replaced; the import is atomic, so a bad file leaves the database untouched.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	importCmd.Flags().BoolVarP(&importForce, "yes", "y", false, "Skip the confirmation prompt")
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read backup: %w", err)
	}

	b, err := store.ParseBackup(data)
	if err != nil {
		return err
	}

	if !importForce {
		fmt.Printf("The file contains %d person(s) and %d meeting(s).\n", len(b.Persons), len(b.Meetings))
		fmt.Print("Existing data will be replaced. Continue? [y/N] ")
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	if err := db.ImportReplace(b); err != nil {
		return fmt.Errorf("import: %w", err)
	}

	fmt.Printf("Imported %d person(s) and %d meeting(s)\n", len(b.Persons), len(b.Meetings))
	return nil
}
