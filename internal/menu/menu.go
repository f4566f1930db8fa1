// Package menu drives the interactive menu loop. It owns all prompt text
// and user I/O; the record store only sees ValueSource callbacks.
package menu

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	dberrors "github.com/leengari/studentdb/internal/domain/errors"
	"github.com/leengari/studentdb/internal/domain/schema"
	"github.com/leengari/studentdb/internal/store"
)

// Menu is the interactive front end over a record store. setDefault is
// called when the user opts to persist a new default data file path; the
// menu itself never touches configuration state.
type Menu struct {
	store      *store.Store
	rl         *readline.Instance
	out        io.Writer
	logger     *slog.Logger
	setDefault func(path string) error
}

func New(st *store.Store, logger *slog.Logger, setDefault func(string) error) (*Menu, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize prompt: %w", err)
	}
	return &Menu{
		store:      st,
		rl:         rl,
		out:        os.Stdout,
		logger:     logger,
		setDefault: setDefault,
	}, nil
}

// Close releases the terminal.
func (m *Menu) Close() error { return m.rl.Close() }

// ask prompts for one line of input and trims it. io.EOF means end of
// input and must unwind to the run loop.
func (m *Menu) ask(prompt string) (string, error) {
	m.rl.SetPrompt(prompt)
	line, err := m.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// askYesNo returns true for a "y"/"Y" answer.
func (m *Menu) askYesNo(prompt string) (bool, error) {
	answer, err := m.ask(prompt)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "y"), nil
}

// promptSource feeds store operations from the terminal. prefix lets the
// update flow ask for "new Age" while storing under "Age".
type promptSource struct {
	menu   *Menu
	prefix string
}

func (p *promptSource) Value(field string, _ schema.ColumnType) (string, error) {
	return p.menu.ask(fmt.Sprintf("Enter %s%s: ", p.prefix, field))
}

func (p *promptSource) Reject(_ string, err error) {
	fmt.Fprintln(p.menu.out, err.Error())
}

// Run executes the menu loop until the user exits or input ends.
func (m *Menu) Run() error {
	m.logger.Debug("menu loop started", slog.String("file", m.store.Path()))
	for {
		m.printMenu()
		choice, err := m.ask("Enter your choice: ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(m.out, "\nNo more input. Exiting...")
				return nil
			}
			return err
		}

		var opErr error
		switch choice {
		case "1":
			opErr = m.addStudent()
		case "2":
			m.viewStudents()
		case "3":
			opErr = m.updateStudent()
		case "4":
			opErr = m.deleteStudent()
		case "5":
			opErr = m.addColumn()
		case "6":
			opErr = m.deleteColumn()
		case "7":
			opErr = m.replaceColumn()
		case "8":
			opErr = m.changeFilePath()
		case "9":
			fmt.Fprintln(m.out, "Exiting program.")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice! Please try again.")
		}

		if opErr != nil {
			if errors.Is(opErr, io.EOF) {
				fmt.Fprintln(m.out, "\nNo more input. Exiting...")
				return nil
			}
			fmt.Fprintf(m.out, "Error: %v\n", opErr)
		}
	}
}

func (m *Menu) printMenu() {
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, "1. Add Student")
	fmt.Fprintln(m.out, "2. View Students")
	fmt.Fprintln(m.out, "3. Update Student")
	fmt.Fprintln(m.out, "4. Delete Student")
	fmt.Fprintln(m.out, "5. Add Column")
	fmt.Fprintln(m.out, "6. Delete Column")
	fmt.Fprintln(m.out, "7. Replace Column")
	fmt.Fprintln(m.out, "8. Change File Path")
	fmt.Fprintln(m.out, "9. Exit")
}

func (m *Menu) addStudent() error {
	if !m.store.HasSchema() {
		fmt.Fprintf(m.out, "File '%s' has no columns yet. Setting up a new file...\n", m.store.Path())
		if err := m.SetupSchema(); err != nil {
			return err
		}
	}

	for {
		id, err := m.ask("Enter student ID (numbers only): ")
		if err != nil {
			return err
		}

		fmt.Fprintln(m.out, "\nEnter the student data:")
		err = m.store.Add(id, &promptSource{menu: m})
		if err == nil {
			fmt.Fprintln(m.out, "Student added successfully!")
			return nil
		}

		var vErr *dberrors.ValidationError
		var uErr *dberrors.UniquenessError
		if errors.As(err, &vErr) || errors.As(err, &uErr) {
			// Bad or duplicate ID: report and ask again.
			fmt.Fprintln(m.out, err.Error())
			continue
		}
		return err
	}
}

func (m *Menu) viewStudents() {
	renderRecords(m.out, m.store.Path(), m.store.Schema(), m.store.Records())
}

func (m *Menu) updateStudent() error {
	id, err := m.ask("Enter student ID to update: ")
	if err != nil {
		return err
	}
	if err := m.store.Update(id, &promptSource{menu: m, prefix: "new "}); err != nil {
		var nf *dberrors.NotFoundError
		if errors.As(err, &nf) {
			fmt.Fprintln(m.out, err.Error())
			return nil
		}
		return err
	}
	fmt.Fprintln(m.out, "Student information updated successfully!")
	return nil
}

func (m *Menu) deleteStudent() error {
	id, err := m.ask("Enter student ID to delete: ")
	if err != nil {
		return err
	}
	if err := m.store.Delete(id); err != nil {
		var nf *dberrors.NotFoundError
		if errors.As(err, &nf) {
			fmt.Fprintln(m.out, err.Error())
			return nil
		}
		return err
	}
	fmt.Fprintf(m.out, "Student with ID %s deleted.\n", id)
	return nil
}

func (m *Menu) addColumn() error {
	name, err := m.ask("Enter new column name: ")
	if err != nil {
		return err
	}
	if name == "" {
		fmt.Fprintln(m.out, "Column name cannot be empty. Operation canceled.")
		return nil
	}
	if m.store.Schema().Has(name) {
		fmt.Fprintf(m.out, "Column '%s' already exists. Please use a different name.\n", name)
		return nil
	}

	pos, err := m.askPosition()
	if err != nil {
		return err
	}

	typ, err := m.askColumnType(name)
	if err != nil {
		return err
	}

	if n := m.store.Len(); n > 0 {
		fmt.Fprintf(m.out, "\nEnter a %s value for each of the %d existing students:\n", name, n)
	}
	if err := m.store.AddColumn(name, typ, pos, &promptSource{menu: m}); err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Column '%s' added successfully.\n", name)
	return nil
}

// askPosition implements the start/end/index placement dialog.
func (m *Menu) askPosition() (schema.Position, error) {
	fmt.Fprintln(m.out, "\nWhere would you like to add the new column?")
	fmt.Fprintln(m.out, "1. At the beginning")
	fmt.Fprintln(m.out, "2. At the end")
	fmt.Fprintln(m.out, "3. At a specific position")

	for {
		choice, err := m.ask("Enter your choice (1-3): ")
		if err != nil {
			return schema.Position{}, err
		}
		switch choice {
		case "1":
			return schema.AtStart(), nil
		case "2":
			return schema.AtEnd(), nil
		case "3":
			sch := m.store.Schema()
			if sch.Len() == 0 {
				return schema.AtEnd(), nil
			}
			fmt.Fprintln(m.out, "\nCurrent columns:")
			for i, colName := range sch.Names() {
				fmt.Fprintf(m.out, "%d. %s\n", i+1, colName)
			}
			for {
				raw, err := m.ask(fmt.Sprintf("Enter position (1-%d): ", sch.Len()+1))
				if err != nil {
					return schema.Position{}, err
				}
				idx, convErr := strconv.Atoi(raw)
				if convErr != nil || idx < 1 || idx > sch.Len()+1 {
					fmt.Fprintf(m.out, "Please enter a number between 1 and %d.\n", sch.Len()+1)
					continue
				}
				return schema.AtIndex(idx), nil
			}
		default:
			fmt.Fprintln(m.out, "Invalid choice. Please enter 1, 2, or 3.")
		}
	}
}

func (m *Menu) askColumnType(column string) (schema.ColumnType, error) {
	raw, err := m.ask(fmt.Sprintf("Enter the expected type for column %s (str, int, float): ", column))
	if err != nil {
		return "", err
	}
	typ, ok := schema.ParseColumnType(raw)
	if !ok {
		fmt.Fprintf(m.out, "Invalid type '%s'. Using 'str' as default.\n", raw)
		return schema.ColumnTypeText, nil
	}
	return typ, nil
}

// chooseColumn lists the schema's columns and returns the chosen name, or
// "" when the user cancels.
func (m *Menu) chooseColumn(verb string) (string, error) {
	names := m.store.Schema().Names()
	if len(names) == 0 {
		fmt.Fprintf(m.out, "No columns available to %s.\n", verb)
		return "", nil
	}

	fmt.Fprintln(m.out, "Available columns:")
	for i, name := range names {
		fmt.Fprintf(m.out, "%d. %s\n", i+1, name)
	}

	for {
		choice, err := m.ask(fmt.Sprintf("\nEnter the number of the column to %s (0 to cancel): ", verb))
		if err != nil {
			return "", err
		}
		if choice == "0" {
			fmt.Fprintf(m.out, "Column %s cancelled.\n", verb)
			return "", nil
		}
		idx, convErr := strconv.Atoi(choice)
		if convErr != nil || idx < 1 || idx > len(names) {
			fmt.Fprintln(m.out, "Invalid column number. Please try again.")
			continue
		}
		return names[idx-1], nil
	}
}

func (m *Menu) deleteColumn() error {
	name, err := m.chooseColumn("delete")
	if err != nil || name == "" {
		return err
	}

	confirmed, err := m.askYesNo(fmt.Sprintf("Are you sure you want to delete the '%s' column? (y/n): ", name))
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Fprintln(m.out, "Column deletion cancelled.")
		return nil
	}

	if err := m.store.DeleteColumn(name); err != nil {
		var pErr *dberrors.ProtectedColumnError
		if errors.As(err, &pErr) {
			fmt.Fprintln(m.out, err.Error())
			return nil
		}
		return err
	}
	fmt.Fprintf(m.out, "Column '%s' deleted successfully.\n", name)
	return nil
}

func (m *Menu) replaceColumn() error {
	oldName, err := m.chooseColumn("replace")
	if err != nil || oldName == "" {
		return err
	}

	newName, err := m.ask(fmt.Sprintf("Enter new name for column '%s': ", oldName))
	if err != nil {
		return err
	}
	if newName == "" {
		fmt.Fprintln(m.out, "Column name cannot be empty. Operation canceled.")
		return nil
	}

	sch := m.store.Schema()
	newType := sch.TypeOf(oldName)
	changeType, err := m.askYesNo(fmt.Sprintf("Current data type is '%s'. Do you want to change it? (y/n): ", newType))
	if err != nil {
		return err
	}
	if changeType {
		newType, err = m.askColumnType(newName)
		if err != nil {
			return err
		}
	}

	confirmed, err := m.askYesNo(fmt.Sprintf("Are you sure you want to replace '%s' with '%s'? (y/n): ", oldName, newName))
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Fprintln(m.out, "Column replacement cancelled.")
		return nil
	}

	if changeType && m.store.Len() > 0 {
		fmt.Fprintf(m.out, "\nExisting values must be re-entered as %s for each of the %d students:\n", newType, m.store.Len())
	}
	if err := m.store.ReplaceColumn(oldName, newName, newType, &promptSource{menu: m}); err != nil {
		var pErr *dberrors.ProtectedColumnError
		if errors.As(err, &pErr) {
			fmt.Fprintln(m.out, err.Error())
			return nil
		}
		return err
	}
	fmt.Fprintf(m.out, "Column '%s' replaced with '%s' successfully.\n", oldName, newName)
	return nil
}

// OfferSetup asks whether to create a new data file and runs the first-time
// schema setup when accepted. Returns false when the user declines.
func (m *Menu) OfferSetup() (bool, error) {
	create, err := m.askYesNo("Would you like to create a new file? (y/n): ")
	if err != nil {
		return false, err
	}
	if !create {
		return false, nil
	}
	return true, m.SetupSchema()
}

// SetupSchema runs the first-time column setup dialog (default columns or a
// custom set) and persists the empty store.
func (m *Menu) SetupSchema() error {
	fmt.Fprintln(m.out, "Choose column setup:")
	fmt.Fprintln(m.out, "1. Use default columns (Name, Roll Number, Age, Email, Phone, Address, Class, Grades)")
	fmt.Fprintln(m.out, "2. Define custom columns")

	for {
		choice, err := m.ask("Enter your choice (1 or 2): ")
		if err != nil {
			return err
		}
		switch choice {
		case "1":
			fmt.Fprintln(m.out, "\nCreating new file with default columns:")
			for _, col := range schema.DefaultColumns {
				fmt.Fprintf(m.out, "- %s (%s)\n", col.Name, col.Type)
			}
			return m.store.InitSchema(schema.DefaultColumns)
		case "2":
			cols, err := m.askCustomColumns()
			if err != nil {
				return err
			}
			if len(cols) == 0 {
				fmt.Fprintln(m.out, "No columns defined. Using default columns.")
				cols = schema.DefaultColumns
			}
			return m.store.InitSchema(cols)
		default:
			fmt.Fprintln(m.out, "Invalid choice! Please enter 1 or 2.")
		}
	}
}

func (m *Menu) askCustomColumns() ([]schema.Column, error) {
	fmt.Fprintln(m.out, "\nDefine your custom columns:")
	fmt.Fprintln(m.out, "Enter column names and types. Type 'done' when finished.")
	fmt.Fprintln(m.out, "Available types: str, int, float")

	var cols []schema.Column
	for {
		name, err := m.ask("Enter column name (or 'done' to finish): ")
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(name, "done") {
			return cols, nil
		}
		if name == "" {
			fmt.Fprintln(m.out, "Column name cannot be empty. Please try again.")
			continue
		}
		for {
			raw, err := m.ask(fmt.Sprintf("Enter type for '%s' (str, int, float): ", name))
			if err != nil {
				return nil, err
			}
			typ, ok := schema.ParseColumnType(raw)
			if !ok {
				fmt.Fprintln(m.out, "Invalid type. Please use 'str', 'int', or 'float'.")
				continue
			}
			cols = append(cols, schema.Column{Name: name, Type: typ})
			break
		}
	}
}

func (m *Menu) changeFilePath() error {
	fmt.Fprintln(m.out, "\nChange File Path Options:")
	fmt.Fprintln(m.out, "1. Create new file in current directory")
	fmt.Fprintln(m.out, "2. Browse existing CSV files in current directory")
	fmt.Fprintln(m.out, "3. Enter an absolute path")
	fmt.Fprintln(m.out, "4. Cancel")

	choice, err := m.ask("\nEnter your choice (1-4): ")
	if err != nil {
		return err
	}

	var newPath string
	switch choice {
	case "1":
		newPath, err = m.askNewFilePath()
	case "2":
		newPath, err = m.browseCSVFiles()
	case "3":
		newPath, err = m.askAbsolutePath()
	case "4":
		fmt.Fprintln(m.out, "Operation canceled.")
		return nil
	default:
		fmt.Fprintln(m.out, "Invalid choice. Operation canceled.")
		return nil
	}
	if err != nil || newPath == "" {
		return err
	}

	fmt.Fprintf(m.out, "\nChanging file path from '%s' to '%s'\n", m.store.Path(), newPath)
	loaded, err := m.store.SwitchPath(newPath)
	if err != nil {
		fmt.Fprintf(m.out, "Error loading data from new file: %v\n", err)
		fmt.Fprintf(m.out, "Keeping previous file: %s\n", m.store.Path())
		return nil
	}
	if loaded {
		fmt.Fprintf(m.out, "Successfully loaded %d student records.\n", m.store.Len())
	} else {
		fmt.Fprintf(m.out, "File '%s' does not exist. Creating a new file...\n", newPath)
		if err := m.SetupSchema(); err != nil {
			return err
		}
	}

	fmt.Fprintf(m.out, "File path changed to: %s\n", m.store.Path())
	makeDefault, err := m.askYesNo("Would you like to make this the default file for future runs? (y/n): ")
	if err != nil {
		return err
	}
	if makeDefault && m.setDefault != nil {
		if err := m.setDefault(m.store.Path()); err != nil {
			fmt.Fprintf(m.out, "Failed to save config: %v\n", err)
		} else {
			fmt.Fprintf(m.out, "Default file set to: %s\n", m.store.Path())
		}
	}
	return nil
}

func (m *Menu) askNewFilePath() (string, error) {
	fmt.Fprintln(m.out, "\nCreate a new file in the current directory:")
	name, err := m.ask("Enter new file name (without extension): ")
	if err != nil {
		return "", err
	}
	if name == "" {
		fmt.Fprintln(m.out, "File name cannot be empty. Operation canceled.")
		return "", nil
	}
	path := normalizeDataPath(name)

	if _, statErr := os.Stat(path); statErr == nil {
		overwrite, err := m.askYesNo(fmt.Sprintf("File '%s' already exists. Overwrite? (y/n): ", path))
		if err != nil {
			return "", err
		}
		if !overwrite {
			fmt.Fprintln(m.out, "Operation canceled.")
			return "", nil
		}
		fmt.Fprintf(m.out, "Existing file '%s' will be overwritten.\n", path)
	} else {
		fmt.Fprintf(m.out, "New file '%s' will be created in the current directory.\n", path)
	}

	confirmed, err := m.askYesNo("Confirm file creation? (y/n): ")
	if err != nil {
		return "", err
	}
	if !confirmed {
		fmt.Fprintln(m.out, "Operation canceled.")
		return "", nil
	}
	return path, nil
}

func (m *Menu) browseCSVFiles() (string, error) {
	files, err := listCSVFiles(".")
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		fmt.Fprintln(m.out, "No CSV files found in current directory.")
		return "", nil
	}

	fmt.Fprintln(m.out, "\nAvailable CSV files in current directory:")
	for i, f := range files {
		fmt.Fprintf(m.out, "%d. %s\n", i+1, f)
	}

	for {
		choice, err := m.ask("\nSelect a file (0 to cancel): ")
		if err != nil {
			return "", err
		}
		if choice == "0" {
			fmt.Fprintln(m.out, "Operation canceled.")
			return "", nil
		}
		idx, convErr := strconv.Atoi(choice)
		if convErr != nil || idx < 1 || idx > len(files) {
			fmt.Fprintf(m.out, "Please enter a number between 1 and %d.\n", len(files))
			continue
		}
		return files[idx-1], nil
	}
}

func (m *Menu) askAbsolutePath() (string, error) {
	path, err := m.ask("Enter absolute file path: ")
	if err != nil {
		return "", err
	}
	if path == "" {
		fmt.Fprintln(m.out, "File path cannot be empty. Operation canceled.")
		return "", nil
	}
	path = normalizeDataPath(path)
	if err := ensureDirExists(path); err != nil {
		fmt.Fprintf(m.out, "Failed to create directory: %v\n", err)
		return "", nil
	}
	return path, nil
}
